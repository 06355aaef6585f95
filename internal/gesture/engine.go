package gesture

import (
	"context"
	"fmt"
	"time"
)

// Action is the kind of pointer event delivered by an input source
type Action int

const (
	ActionDown Action = iota + 1
	ActionMove
	ActionUp
	ActionPointerUp
	ActionCancel
)

func (a Action) String() string {
	switch a {
	case ActionDown:
		return "down"
	case ActionMove:
		return "move"
	case ActionUp:
		return "up"
	case ActionPointerUp:
		return "pointer_up"
	case ActionCancel:
		return "cancel"
	default:
		return fmt.Sprintf("unknown(%d)", int(a))
	}
}

// PointerEvent is one sample from an input source
type PointerEvent struct {
	Action   Action
	Sample   Sample
	Contacts int // simultaneous contacts; 0 is treated as 1
}

func (e PointerEvent) String() string {
	return fmt.Sprintf("%s(%.0f,%.0f)x%d", e.Action, e.Sample.X, e.Sample.Y, e.Contacts)
}

// Engine owns a Detector and delivers its classifications as Gesture
// values to a single callback
type Engine struct {
	detector *Detector
	cancel   context.CancelFunc
}

// NewEngine creates a new gesture engine
func NewEngine(opts Options, onGesture func(Gesture)) *Engine {
	return &Engine{
		detector: NewDetector(opts, NewEmitter(onGesture)),
	}
}

// Start starts long-press detection
func (e *Engine) Start(ctx context.Context) {
	ctx, e.cancel = context.WithCancel(ctx)
	e.detector.Start(ctx)
}

// Stop stops long-press detection
func (e *Engine) Stop() {
	if e.cancel != nil {
		e.cancel()
	}
}

// ProcessEvent feeds one pointer event to the detector
func (e *Engine) ProcessEvent(ev PointerEvent) bool {
	return e.detector.HandleEvent(ev)
}

// SetLongPressThreshold changes the long-press threshold from the next
// contact on
func (e *Engine) SetLongPressThreshold(t time.Duration) {
	e.detector.SetLongPressThreshold(t)
}

// Detector returns the underlying detector
func (e *Engine) Detector() *Detector {
	return e.detector
}
