package display

import (
	"github.com/pleimann/swipepad/internal/hid"
)

// maxReportSize is the HID output report size of the digitizer
const maxReportSize = 64

// displayHeaderSize is the DisplayFrame header preceding pixel data
const displayHeaderSize = 10

// FrameEncoder splits rendered frames into HID display reports
type FrameEncoder struct {
	width  int
	height int
}

func NewFrameEncoder(width, height int) *FrameEncoder {
	return &FrameEncoder{
		width:  width,
		height: height,
	}
}

func (e *FrameEncoder) EncodeClear() *hid.DisplayFrame {
	return hid.NewClearCommand()
}

// MaxPayloadSize is the pixel data that fits in one report
func (e *FrameEncoder) MaxPayloadSize() int {
	return maxReportSize - displayHeaderSize
}

// ChunkFrame splits a packed frame into full-width bands of rows that
// each fit in one report
func (e *FrameEncoder) ChunkFrame(data []byte) []*hid.DisplayFrame {
	bytesPerRow := (e.width + 7) / 8
	rowsPerChunk := max(e.MaxPayloadSize()/bytesPerRow, 1)

	var frames []*hid.DisplayFrame
	for y := 0; y < e.height; y += rowsPerChunk {
		h := min(rowsPerChunk, e.height-y)

		start := min(y*bytesPerRow, len(data))
		end := min((y+h)*bytesPerRow, len(data))

		frames = append(frames, hid.NewPartialFrame(0, uint16(y), uint16(e.width), uint16(h), data[start:end]))
	}

	return frames
}

// ChangedFrames returns only the bands of next that differ from prev.
// A nil or mis-sized prev sends every band.
func (e *FrameEncoder) ChangedFrames(prev, next []byte) []*hid.DisplayFrame {
	frames := e.ChunkFrame(next)
	if len(prev) != len(next) {
		return frames
	}

	bytesPerRow := (e.width + 7) / 8
	changed := frames[:0]
	for _, f := range frames {
		start := int(f.Y) * bytesPerRow
		end := start + len(f.Data)
		if string(prev[start:end]) != string(f.Data) {
			changed = append(changed, f)
		}
	}
	return changed
}
