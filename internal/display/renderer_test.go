package display

import (
	"testing"

	"github.com/pleimann/swipepad/internal/gesture"
)

func anyPixel(data []byte) bool {
	for _, b := range data {
		if b != 0 {
			return true
		}
	}
	return false
}

func TestRendererClear(t *testing.T) {
	r := NewRenderer(8, 8)
	r.SetPixel(0, 0, true)
	r.SetPixel(7, 7, true)

	r.Clear()

	if anyPixel(r.GetFrameBuffer()) {
		t.Error("pixels lit after Clear()")
	}
}

func TestRendererSetPixel(t *testing.T) {
	r := NewRenderer(16, 8)

	r.SetPixel(0, 0, true)
	r.SetPixel(7, 0, true)
	r.SetPixel(8, 0, true)
	r.SetPixel(15, 0, true)
	r.SetPixel(3, 1, true)
	r.SetPixel(3, 1, false)

	data := r.GetFrameBuffer()

	// MSB first: pixel 0 is bit 7, pixel 7 is bit 0
	if data[0] != 0x81 || data[1] != 0x81 {
		t.Errorf("row 0 = 0x%02X%02X, want 0x8181", data[0], data[1])
	}
	if data[2] != 0 {
		t.Errorf("row 1 = 0x%02X, want 0 after SetPixel(off)", data[2])
	}
}

func TestRendererRects(t *testing.T) {
	tests := []struct {
		name string
		draw func(r *Renderer)
		want []byte
	}{
		{
			name: "fill",
			draw: func(r *Renderer) { r.FillRect(2, 1, 4, 2) },
			want: []byte{0x00, 0x3C, 0x3C, 0x00},
		},
		{
			name: "outline",
			draw: func(r *Renderer) { r.DrawRect(2, 0, 4, 3) },
			want: []byte{0x3C, 0x24, 0x3C, 0x00},
		},
		{
			name: "diagonal",
			draw: func(r *Renderer) { r.DrawLine(0, 0, 3, 3) },
			want: []byte{0x80, 0x40, 0x20, 0x10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRenderer(8, 4)
			tt.draw(r)
			got := r.GetFrameBuffer()
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("row %d = 0x%02X, want 0x%02X", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestRendererGetRegion(t *testing.T) {
	r := NewRenderer(16, 8)
	r.SetPixel(8, 2, true)
	r.SetPixel(15, 5, true)

	region := r.GetRegion(8, 2, 8, 4)

	if len(region) != 4 {
		t.Fatalf("len(region) = %d, want 4", len(region))
	}
	if region[0] != 0x80 {
		t.Errorf("region row 0 = 0x%02X, want 0x80", region[0])
	}
	if region[3] != 0x01 {
		t.Errorf("region row 3 = 0x%02X, want 0x01", region[3])
	}
}

func TestRendererFrameBufferSize(t *testing.T) {
	// 12 pixels pad to 2 bytes per row
	r := NewRenderer(12, 4)
	if got := len(r.GetFrameBuffer()); got != 8 {
		t.Errorf("len(GetFrameBuffer()) = %d, want 8", got)
	}
}

func TestRendererText(t *testing.T) {
	r := NewRenderer(64, 32)

	r.DrawText(0, 13, "Hello")
	if !anyPixel(r.GetFrameBuffer()) {
		t.Error("DrawText() didn't set any pixels")
	}

	r.Clear()
	// 7px glyphs, 64px wide: "Hello World" needs two lines
	height := r.DrawTextWrapped(0, 13, 64, "Hello World")
	if height != 2*r.LineHeight() {
		t.Errorf("DrawTextWrapped() height = %d, want %d", height, 2*r.LineHeight())
	}
	if got := r.DrawTextWrapped(0, 13, 64, "   "); got != 0 {
		t.Errorf("DrawTextWrapped() of blank text = %d, want 0", got)
	}
}

func TestRendererCompass(t *testing.T) {
	const cx, cy, radius = 32, 32, 20

	tests := []struct {
		active gesture.Direction
		lit    [2]int // a point on the needle, inside the tick ring
	}{
		{gesture.DirectionRight, [2]int{cx + 10, cy}},
		{gesture.DirectionUp, [2]int{cx, cy - 10}},
		{gesture.DirectionLeft, [2]int{cx - 10, cy}},
		{gesture.DirectionDown, [2]int{cx, cy + 10}},
	}

	for _, tt := range tests {
		t.Run(tt.active.String(), func(t *testing.T) {
			r := NewRenderer(64, 64)
			r.DrawCompass(cx, cy, radius, tt.active)

			if !r.Pixel(tt.lit[0], tt.lit[1]) {
				t.Errorf("needle pixel %v not lit", tt.lit)
			}
			// Ticks only touch the outer ring, so the opposite side is dark
			if r.Pixel(2*cx-tt.lit[0], 2*cy-tt.lit[1]) {
				t.Errorf("opposite pixel of %v lit", tt.lit)
			}
		})
	}
}

func TestRendererCompassNoActive(t *testing.T) {
	r := NewRenderer(64, 64)
	r.DrawCompass(32, 32, 20, gesture.Direction(-1))

	if !r.Pixel(52, 32) {
		t.Error("right tick not drawn")
	}
	if r.Pixel(42, 32) {
		t.Error("needle drawn without an active direction")
	}
}
