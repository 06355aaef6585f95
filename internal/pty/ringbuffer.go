package pty

import "strings"

// RingBuffer keeps the most recent bytes written to it
type RingBuffer struct {
	data  []byte
	size  int
	write int
	full  bool
}

func NewRingBuffer(size int) *RingBuffer {
	return &RingBuffer{
		data: make([]byte, size),
		size: size,
	}
}

func (rb *RingBuffer) Write(p []byte) {
	if len(p) >= rb.size {
		copy(rb.data, p[len(p)-rb.size:])
		rb.write = 0
		rb.full = true
		return
	}
	n := copy(rb.data[rb.write:], p)
	if n < len(p) {
		copy(rb.data, p[n:])
		rb.full = true
	}
	next := (rb.write + len(p)) % rb.size
	if next <= rb.write && len(p) > 0 {
		rb.full = true
	}
	rb.write = next
}

// Bytes returns the contents from oldest to newest
func (rb *RingBuffer) Bytes() []byte {
	if !rb.full {
		out := make([]byte, rb.write)
		copy(out, rb.data[:rb.write])
		return out
	}
	out := make([]byte, 0, rb.size)
	out = append(out, rb.data[rb.write:]...)
	return append(out, rb.data[:rb.write]...)
}

func (rb *RingBuffer) String() string {
	return string(rb.Bytes())
}

// LastLine returns the last non-empty line, without carriage returns
func (rb *RingBuffer) LastLine() string {
	lines := strings.Split(strings.ReplaceAll(rb.String(), "\r", ""), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}
