package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/pleimann/swipepad/internal/gesture"
)

func TestFormatGesture(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	start := gesture.NewSample(0, 0, t0)
	end := gesture.NewSample(30, 40, t0.Add(120*time.Millisecond))

	tests := []struct {
		name string
		g    gesture.Gesture
		axes []string
		want []string
	}{
		{
			name: "swipe",
			g:    gesture.NewMotionGesture(gesture.GestureSwipe, start, end, gesture.DirectionRight),
			axes: []string{"down"},
			want: []string{"12:00:00.120", "swipe", "right", "50px", "down", "120ms"},
		},
		{
			name: "tap",
			g:    gesture.NewTapGesture(end),
			want: []string{"tap", "(30,40)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatGesture(tt.g, tt.axes)
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("FormatGesture() = %q, missing %q", got, w)
				}
			}
		})
	}
}

func TestParseExamples(t *testing.T) {
	got := ParseExamples(`
  swipepad set-device             Interactive selection
  swipepad set-device 0x1 0x2     Set IDs directly
  swipepad version
`)

	want := []Example{
		{Cmd: "swipepad set-device", Desc: "Interactive selection"},
		{Cmd: "swipepad set-device 0x1 0x2", Desc: "Set IDs directly"},
		{Cmd: "swipepad version", Desc: ""},
	}
	if len(got) != len(want) {
		t.Fatalf("ParseExamples() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("example %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}
