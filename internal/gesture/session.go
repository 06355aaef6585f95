package gesture

import "time"

// phase is where the live contact sits in classification. The set of
// phases replaces independent flags so combinations like "moved
// immediately and long-pressed" cannot be represented.
type phase int

const (
	phaseIdle            phase = iota // no contact
	phasePressed                      // down, not yet classified
	phaseImmediateMove                // moved past threshold before long-press
	phaseLongPressed                  // held past threshold, not moved
	phaseLongPressedMove              // moved past threshold after long-press
)

func (p phase) String() string {
	switch p {
	case phaseIdle:
		return "idle"
	case phasePressed:
		return "pressed"
	case phaseImmediateMove:
		return "immediate_move"
	case phaseLongPressed:
		return "long_pressed"
	case phaseLongPressedMove:
		return "long_pressed_move"
	default:
		return "unknown"
	}
}

// session is the bookkeeping for one down-to-release contact
type session struct {
	initial   Sample
	phase     phase
	armed     bool          // long-press detection enabled
	threshold time.Duration // long-press threshold latched at down
}

func (s *session) longPressed() bool {
	return s.phase == phaseLongPressed || s.phase == phaseLongPressedMove
}

func (s *session) immediateMove() bool {
	return s.phase == phaseImmediateMove
}

func (s *session) longPressedMove() bool {
	return s.phase == phaseLongPressedMove
}

// awaitingLongPress reports whether the poller should time this contact
func (s *session) awaitingLongPress() bool {
	return s.armed && s.phase == phasePressed
}

func (s *session) reset() {
	*s = session{}
}
