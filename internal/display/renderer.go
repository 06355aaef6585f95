package display

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/pleimann/swipepad/internal/gesture"
)

var (
	pixelOn  = color.Gray{Y: 255}
	pixelOff = color.Gray{Y: 0}
)

// Renderer draws into a grayscale image that is thresholded to 1-bit
// for the OLED
type Renderer struct {
	width  int
	height int
	img    *image.Gray
	face   font.Face
}

func NewRenderer(width, height int) *Renderer {
	return &Renderer{
		width:  width,
		height: height,
		img:    image.NewGray(image.Rect(0, 0, width, height)),
		face:   basicfont.Face7x13,
	}
}

func (r *Renderer) Clear() {
	draw.Draw(r.img, r.img.Bounds(), image.Black, image.Point{}, draw.Src)
}

// LineHeight is the font's line height in pixels
func (r *Renderer) LineHeight() int {
	return r.face.Metrics().Height.Ceil()
}

// DrawText draws text with its baseline at y
func (r *Renderer) DrawText(x, y int, text string) {
	d := &font.Drawer{
		Dst:  r.img,
		Src:  image.White,
		Face: r.face,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(text)
}

// DrawTextWrapped draws text with word wrapping and returns the height
// used
func (r *Renderer) DrawTextWrapped(x, y, maxWidth int, text string) int {
	lineHeight := r.LineHeight()
	currentY := y
	line := ""

	for _, word := range strings.Fields(text) {
		candidate := word
		if line != "" {
			candidate = line + " " + word
		}

		if font.MeasureString(r.face, candidate).Ceil() > maxWidth && line != "" {
			r.DrawText(x, currentY, line)
			currentY += lineHeight
			line = word
		} else {
			line = candidate
		}
	}

	if line != "" {
		r.DrawText(x, currentY, line)
		currentY += lineHeight
	}

	return currentY - y
}

// DrawRect draws a rectangle outline
func (r *Renderer) DrawRect(x, y, width, height int) {
	r.DrawLine(x, y, x+width-1, y)
	r.DrawLine(x, y+height-1, x+width-1, y+height-1)
	r.DrawLine(x, y, x, y+height-1)
	r.DrawLine(x+width-1, y, x+width-1, y+height-1)
}

func (r *Renderer) FillRect(x, y, width, height int) {
	draw.Draw(r.img, image.Rect(x, y, x+width, y+height), image.White, image.Point{}, draw.Src)
}

func (r *Renderer) SetPixel(x, y int, on bool) {
	if on {
		r.img.SetGray(x, y, pixelOn)
	} else {
		r.img.SetGray(x, y, pixelOff)
	}
}

// Pixel reports whether the pixel at (x, y) is lit
func (r *Renderer) Pixel(x, y int) bool {
	return r.img.GrayAt(x, y).Y > 127
}

// DrawLine draws a one pixel line between two points
func (r *Renderer) DrawLine(x0, y0, x1, y1 int) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy

	for {
		r.img.SetGray(x0, y0, pixelOn)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// sectorAngle is the centre of a direction sector in radians,
// counter-clockwise from screen right
func sectorAngle(d gesture.Direction) float64 {
	return float64(int(d)-int(gesture.DirectionRight)) * (2 * math.Pi / gesture.NumDirections)
}

// compassPoint returns the screen point at radius along sector d
func compassPoint(cx, cy int, radius float64, d gesture.Direction) (int, int) {
	a := sectorAngle(d)
	return cx + int(math.Round(radius*math.Cos(a))), cy - int(math.Round(radius*math.Sin(a)))
}

// DrawCompass draws a tick for each direction sector around (cx, cy)
// and a needle along active. An invalid active draws ticks only.
func (r *Renderer) DrawCompass(cx, cy, radius int, active gesture.Direction) {
	outer := float64(radius)
	inner := outer * 0.7

	for d := gesture.Direction(0); d < gesture.NumDirections; d++ {
		x0, y0 := compassPoint(cx, cy, inner, d)
		x1, y1 := compassPoint(cx, cy, outer, d)
		r.DrawLine(x0, y0, x1, y1)
	}

	r.SetPixel(cx, cy, true)
	if !active.Valid() {
		return
	}

	tx, ty := compassPoint(cx, cy, outer, active)
	r.DrawLine(cx, cy, tx, ty)
	// Thicken the needle so it reads at a glance
	r.DrawLine(cx+1, cy, tx+1, ty)
	r.DrawLine(cx, cy+1, tx, ty+1)
}

// GetFrameBuffer returns the whole frame as 1-bit packed data
// Format: row-major, 8 pixels per byte, MSB first
func (r *Renderer) GetFrameBuffer() []byte {
	return r.GetRegion(0, 0, r.width, r.height)
}

// GetRegion returns a portion of the frame in the same packing as
// GetFrameBuffer
func (r *Renderer) GetRegion(x, y, width, height int) []byte {
	bytesPerRow := (width + 7) / 8
	data := make([]byte, bytesPerRow*height)

	for dy := 0; dy < height; dy++ {
		for dx := 0; dx < width; dx++ {
			if r.Pixel(x+dx, y+dy) {
				data[dy*bytesPerRow+dx/8] |= 1 << (7 - dx%8)
			}
		}
	}

	return data
}

func (r *Renderer) Width() int {
	return r.width
}

func (r *Renderer) Height() int {
	return r.height
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
