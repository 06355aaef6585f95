package hid

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/pleimann/swipepad/internal/gesture"
)

// Report IDs
const (
	ReportIDTouch   byte = 0x01
	ReportIDDisplay byte = 0x02
)

// TouchReportSize is the length of a touch report including its ID
const TouchReportSize = 12

// Touch actions as sent by the device
const (
	TouchDown      byte = 0x01
	TouchMove      byte = 0x02
	TouchUp        byte = 0x03
	TouchPointerUp byte = 0x04
	TouchCancel    byte = 0x05
)

// Display commands
const (
	DisplayCmdFullFrame byte = 0x01
	DisplayCmdPartial   byte = 0x02
	DisplayCmdClear     byte = 0x03
)

var touchActions = map[byte]gesture.Action{
	TouchDown:      gesture.ActionDown,
	TouchMove:      gesture.ActionMove,
	TouchUp:        gesture.ActionUp,
	TouchPointerUp: gesture.ActionPointerUp,
	TouchCancel:    gesture.ActionCancel,
}

// TouchReport is a decoded touch report from the digitizer
type TouchReport struct {
	Action   gesture.Action
	Contacts int
	X        uint16
	Y        uint16
	DeviceMs uint32 // ms since device boot
}

// ParseTouchReport parses a raw HID report.
// Expected format:
//
//	Byte 0:    Report ID (0x01)
//	Byte 1:    Action (0x01 down, 0x02 move, 0x03 up, 0x04 pointer up, 0x05 cancel)
//	Byte 2:    Contact count
//	Byte 3-4:  X (little-endian u16)
//	Byte 5-6:  Y (little-endian u16)
//	Byte 7-10: Timestamp (ms since boot, little-endian u32)
//	Byte 11:   Reserved
func ParseTouchReport(data []byte) (*TouchReport, error) {
	if len(data) < TouchReportSize {
		return nil, fmt.Errorf("touch report too short: %d bytes", len(data))
	}

	if data[0] != ReportIDTouch {
		return nil, fmt.Errorf("unexpected report ID: 0x%02X", data[0])
	}

	action, ok := touchActions[data[1]]
	if !ok {
		return nil, fmt.Errorf("unknown touch action: 0x%02X", data[1])
	}

	return &TouchReport{
		Action:   action,
		Contacts: int(data[2]),
		X:        binary.LittleEndian.Uint16(data[3:5]),
		Y:        binary.LittleEndian.Uint16(data[5:7]),
		DeviceMs: binary.LittleEndian.Uint32(data[7:11]),
	}, nil
}

// Event converts the report to a pointer event stamped with the host
// receive time. Device timestamps are not comparable with the host clock
// the detector polls against.
func (r *TouchReport) Event(received time.Time) gesture.PointerEvent {
	return gesture.PointerEvent{
		Action:   r.Action,
		Sample:   gesture.NewSample(float64(r.X), float64(r.Y), received),
		Contacts: r.Contacts,
	}
}

// DisplayFrame represents a frame to be sent to the OLED display
type DisplayFrame struct {
	Command byte
	X       uint16
	Y       uint16
	Width   uint16
	Height  uint16
	Data    []byte // 1-bit packed pixel data, row-major
}

// Encode serializes the DisplayFrame for transmission
// Format:
//
//	Byte 0:    Report ID (0x02)
//	Byte 1:    Command (0x01 full frame, 0x02 partial, 0x03 clear)
//	Byte 2-3:  X offset
//	Byte 4-5:  Y offset
//	Byte 6-7:  Width
//	Byte 8-9:  Height
//	Byte 10+:  Pixel data (1-bit packed, row-major)
func (f *DisplayFrame) Encode() []byte {
	const headerSize = 10
	buf := make([]byte, headerSize+len(f.Data))

	buf[0] = ReportIDDisplay
	buf[1] = f.Command
	binary.LittleEndian.PutUint16(buf[2:4], f.X)
	binary.LittleEndian.PutUint16(buf[4:6], f.Y)
	binary.LittleEndian.PutUint16(buf[6:8], f.Width)
	binary.LittleEndian.PutUint16(buf[8:10], f.Height)
	copy(buf[headerSize:], f.Data)

	return buf
}

// NewPartialFrame creates a partial frame display update
func NewPartialFrame(x, y, width, height uint16, data []byte) *DisplayFrame {
	return &DisplayFrame{
		Command: DisplayCmdPartial,
		X:       x,
		Y:       y,
		Width:   width,
		Height:  height,
		Data:    data,
	}
}

// NewClearCommand creates a display clear command
func NewClearCommand() *DisplayFrame {
	return &DisplayFrame{Command: DisplayCmdClear}
}
