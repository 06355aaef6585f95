package gesture

import (
	"testing"
	"time"
)

func TestGestureTypeString(t *testing.T) {
	tests := []struct {
		gt   GestureType
		want string
	}{
		{GestureTap, "tap"},
		{GestureLongPress, "long_press"},
		{GestureLongPressTap, "long_press_tap"},
		{GestureMove, "move"},
		{GestureLongPressMove, "long_press_move"},
		{GestureSwipe, "swipe"},
		{GestureLongPressSwipe, "long_press_swipe"},
		{GestureType(99), "unknown(99)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.gt.String(); got != tt.want {
				t.Errorf("GestureType.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseGestureType(t *testing.T) {
	for _, name := range []string{"tap", "long_press", "long_press_tap", "move", "long_press_move", "swipe", "long_press_swipe"} {
		gt, err := ParseGestureType(name)
		if err != nil {
			t.Fatalf("ParseGestureType(%q) error = %v", name, err)
		}
		if gt.String() != name {
			t.Errorf("ParseGestureType(%q) = %v", name, gt)
		}
	}

	if _, err := ParseGestureType("double_tap"); err == nil {
		t.Error("ParseGestureType(double_tap) should fail")
	}
}

func TestGestureKey(t *testing.T) {
	now := time.Now()
	a := NewSample(0, 0, now)
	b := NewSample(100, 0, now.Add(50*time.Millisecond))

	tests := []struct {
		name    string
		gesture Gesture
		want    string
	}{
		{"tap", NewTapGesture(a), "tap"},
		{"long press", NewLongPressGesture(a), "long_press"},
		{"long press tap", NewLongPressTapGesture(a), "long_press_tap"},
		{"swipe right", NewMotionGesture(GestureSwipe, a, b, DirectionRight), "swipe:3"},
		{"long press swipe up", NewMotionGesture(GestureLongPressSwipe, a, b, DirectionUp), "long_press_swipe:6"},
		{"move sector 11", NewMotionGesture(GestureMove, a, b, 11), "move:11"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.gesture.Key(); got != tt.want {
				t.Errorf("Key() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGestureString(t *testing.T) {
	g := NewMotionGesture(GestureSwipe, Sample{}, Sample{}, DirectionLeft)
	if s := g.String(); s != "swipe(left)" {
		t.Errorf("String() = %q, want %q", s, "swipe(left)")
	}
	if s := NewTapGesture(Sample{}).String(); s != "tap" {
		t.Errorf("String() = %q, want %q", s, "tap")
	}
}
