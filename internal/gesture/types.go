package gesture

import (
	"fmt"
	"strings"
)

// GestureType represents the kind of gesture classified
type GestureType int

const (
	GestureTap GestureType = iota
	GestureLongPress
	GestureLongPressTap
	GestureMove
	GestureLongPressMove
	GestureSwipe
	GestureLongPressSwipe
)

var gestureTypeNames = [...]string{
	GestureTap:            "tap",
	GestureLongPress:      "long_press",
	GestureLongPressTap:   "long_press_tap",
	GestureMove:           "move",
	GestureLongPressMove:  "long_press_move",
	GestureSwipe:          "swipe",
	GestureLongPressSwipe: "long_press_swipe",
}

func (g GestureType) String() string {
	if g >= 0 && int(g) < len(gestureTypeNames) {
		return gestureTypeNames[g]
	}
	return fmt.Sprintf("unknown(%d)", g)
}

// Directional reports whether gestures of this type carry a direction
func (g GestureType) Directional() bool {
	switch g {
	case GestureMove, GestureLongPressMove, GestureSwipe, GestureLongPressSwipe:
		return true
	}
	return false
}

// ParseGestureType converts a config name like "long_press_swipe"
func ParseGestureType(s string) (GestureType, error) {
	for i, name := range gestureTypeNames {
		if name == s {
			return GestureType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown gesture type %q", s)
}

// Gesture represents a classified gesture
type Gesture struct {
	Type      GestureType
	Direction Direction // only meaningful when Type.Directional()
	Start     Sample
	End       Sample
}

func (g Gesture) String() string {
	if g.Type.Directional() {
		return fmt.Sprintf("%s(%s)", g.Type, g.Direction)
	}
	return g.Type.String()
}

// Key returns a unique key for this gesture, used for mapping lookups.
// Directional gestures are keyed "type:sector", others by type alone.
func (g Gesture) Key() string {
	if !g.Type.Directional() {
		return g.Type.String()
	}
	return DirectionalKey(g.Type, g.Direction)
}

// DirectionalKey builds the lookup key for a directional gesture
func DirectionalKey(t GestureType, d Direction) string {
	var sb strings.Builder
	sb.WriteString(t.String())
	sb.WriteString(":")
	fmt.Fprintf(&sb, "%d", int(d))
	return sb.String()
}

// NewTapGesture creates a tap gesture completed at s
func NewTapGesture(s Sample) Gesture {
	return Gesture{Type: GestureTap, Start: s, End: s}
}

// NewLongPressGesture creates a long-press gesture held at s
func NewLongPressGesture(s Sample) Gesture {
	return Gesture{Type: GestureLongPress, Start: s, End: s}
}

// NewLongPressTapGesture creates a long-press released without moving
func NewLongPressTapGesture(s Sample) Gesture {
	return Gesture{Type: GestureLongPressTap, Start: s, End: s}
}

// NewMotionGesture creates one of the directional gestures for the
// travel from start to end
func NewMotionGesture(t GestureType, start, end Sample, dir Direction) Gesture {
	return Gesture{Type: t, Direction: dir, Start: start, End: end}
}
