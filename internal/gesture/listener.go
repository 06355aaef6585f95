package gesture

// Listener receives classified gestures from a Detector. Methods that
// return bool report whether the event was consumed.
//
// Methods are called with the detector's lock held and must not call
// back into the detector's Handle methods.
type Listener interface {
	// OnDown is called when a contact starts. Returning false disables
	// long-press detection for this contact.
	OnDown(s Sample) bool
	// OnLongPressed is called once the contact has been held still past
	// the long-press threshold. s is the initial down sample.
	OnLongPressed(s Sample)
	// OnMove is called on every move after an immediate move is recognized
	OnMove(start, current Sample, dir Direction)
	// OnLongPressedMove is called on every move after a long-pressed move
	// is recognized
	OnLongPressedMove(start, current Sample, dir Direction)
	OnSwipe(start, end Sample, dir Direction) bool
	OnLongPressedSwipe(start, end Sample, dir Direction) bool
	OnSingleTapUp(s Sample) bool
	OnLongPressedTapUp(s Sample) bool
}

// BaseListener consumes every event and does nothing. Embed it to
// implement only the callbacks you care about.
type BaseListener struct{}

func (BaseListener) OnDown(Sample) bool                                { return true }
func (BaseListener) OnLongPressed(Sample)                              {}
func (BaseListener) OnMove(Sample, Sample, Direction)                  {}
func (BaseListener) OnLongPressedMove(Sample, Sample, Direction)       {}
func (BaseListener) OnSwipe(Sample, Sample, Direction) bool            { return true }
func (BaseListener) OnLongPressedSwipe(Sample, Sample, Direction) bool { return true }
func (BaseListener) OnSingleTapUp(Sample) bool                         { return true }
func (BaseListener) OnLongPressedTapUp(Sample) bool                    { return true }

// Emitter adapts Listener callbacks into Gesture values delivered to a
// single function. Every contact is accepted; OnDown produces nothing.
type Emitter struct {
	onGesture func(Gesture)
}

// NewEmitter creates an Emitter delivering to onGesture
func NewEmitter(onGesture func(Gesture)) *Emitter {
	return &Emitter{onGesture: onGesture}
}

func (e *Emitter) OnDown(Sample) bool { return true }

func (e *Emitter) OnLongPressed(s Sample) {
	e.onGesture(NewLongPressGesture(s))
}

func (e *Emitter) OnMove(start, current Sample, dir Direction) {
	e.onGesture(NewMotionGesture(GestureMove, start, current, dir))
}

func (e *Emitter) OnLongPressedMove(start, current Sample, dir Direction) {
	e.onGesture(NewMotionGesture(GestureLongPressMove, start, current, dir))
}

func (e *Emitter) OnSwipe(start, end Sample, dir Direction) bool {
	e.onGesture(NewMotionGesture(GestureSwipe, start, end, dir))
	return true
}

func (e *Emitter) OnLongPressedSwipe(start, end Sample, dir Direction) bool {
	e.onGesture(NewMotionGesture(GestureLongPressSwipe, start, end, dir))
	return true
}

func (e *Emitter) OnSingleTapUp(s Sample) bool {
	e.onGesture(NewTapGesture(s))
	return true
}

func (e *Emitter) OnLongPressedTapUp(s Sample) bool {
	e.onGesture(NewLongPressTapGesture(s))
	return true
}
