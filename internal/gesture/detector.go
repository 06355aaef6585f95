package gesture

import (
	"log"
	"math"
	"sync"
	"sync/atomic"
	"time"
)

const (
	DefaultLongPressThreshold = 400 * time.Millisecond
	DefaultPollInterval       = 50 * time.Millisecond

	// viewportMoveFraction divides the viewport width to get the
	// minimum move distance
	viewportMoveFraction = 15
)

// Options configures a Detector
type Options struct {
	LongPressThreshold time.Duration
	PollInterval       time.Duration
	// MinMoveDistance is the travel in pixels, measured from the down
	// sample, that turns a contact into a move
	MinMoveDistance float64
}

// MinMoveForViewport returns the minimum move distance for a viewport
// of the given width in pixels: a fifteenth of the width, truncated to
// whole pixels.
func MinMoveForViewport(widthPx int) float64 {
	return math.Floor(float64(widthPx) / viewportMoveFraction)
}

func (o Options) withDefaults() Options {
	if o.LongPressThreshold <= 0 {
		o.LongPressThreshold = DefaultLongPressThreshold
	}
	if o.PollInterval <= 0 {
		o.PollInterval = DefaultPollInterval
	}
	return o
}

// Detector classifies a single-pointer touch stream into gestures and
// reports them to a Listener. All event handling and long-press
// promotion is serialized on the detector's lock.
type Detector struct {
	listener     Listener
	minMove      float64
	pollInterval time.Duration
	threshold    atomic.Int64 // nanoseconds, latched by the next down

	now   func() time.Time
	fatal func(error)

	mu   sync.Mutex
	sess session
}

// NewDetector creates a gesture detector. Call Start to run long-press
// detection.
func NewDetector(opts Options, listener Listener) *Detector {
	opts = opts.withDefaults()
	d := &Detector{
		listener:     listener,
		minMove:      opts.MinMoveDistance,
		pollInterval: opts.PollInterval,
		now:          time.Now,
		fatal: func(err error) {
			log.Fatalf("Gesture detector halted: %v", err)
		},
	}
	d.threshold.Store(int64(opts.LongPressThreshold))
	return d
}

// SetNowFunc overrides the clock used to time long presses
func (d *Detector) SetNowFunc(fn func() time.Time) {
	if fn == nil {
		return
	}
	d.mu.Lock()
	d.now = fn
	d.mu.Unlock()
}

// SetFatalFunc overrides how an unrecoverable poller failure is reported.
// It may be called while the poller runs.
func (d *Detector) SetFatalFunc(fn func(error)) {
	if fn == nil {
		return
	}
	d.mu.Lock()
	d.fatal = fn
	d.mu.Unlock()
}

func (d *Detector) fatalFunc() func(error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.fatal
}

// SetLongPressThreshold changes the hold time needed for a long press.
// The contact in progress keeps the threshold it started with.
func (d *Detector) SetLongPressThreshold(t time.Duration) {
	if t <= 0 {
		t = DefaultLongPressThreshold
	}
	d.threshold.Store(int64(t))
}

// LongPressThreshold returns the threshold the next contact will use
func (d *Detector) LongPressThreshold() time.Duration {
	return time.Duration(d.threshold.Load())
}

// MinMoveDistance returns the move threshold in pixels
func (d *Detector) MinMoveDistance() float64 {
	return d.minMove
}

// HandleEvent routes a pointer event to the matching handler. Events
// reporting more than one contact are ignored and not consumed.
func (d *Detector) HandleEvent(ev PointerEvent) bool {
	if ev.Contacts > 1 {
		return false
	}

	switch ev.Action {
	case ActionDown:
		return d.HandleDown(ev.Sample)
	case ActionMove:
		return d.HandleMove(ev.Sample)
	case ActionUp, ActionPointerUp, ActionCancel:
		return d.HandleRelease(ev.Sample)
	default:
		return false
	}
}

// HandleDown starts a new contact at s
func (d *Detector) HandleDown(s Sample) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if s.Time.IsZero() {
		s.Time = d.now()
	}

	d.sess.reset()
	d.sess.initial = s
	d.sess.phase = phasePressed
	d.sess.threshold = d.LongPressThreshold()

	consumed := d.listener.OnDown(s)
	d.sess.armed = consumed
	return consumed
}

// HandleMove processes a move of the live contact to s
func (d *Detector) HandleMove(s Sample) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	start := d.sess.initial

	switch d.sess.phase {
	case phaseIdle:
		return false
	case phaseImmediateMove:
		d.listener.OnMove(start, s, DirectionOf(start.Point, s.Point))
	case phaseLongPressedMove:
		d.listener.OnLongPressedMove(start, s, DirectionOf(start.Point, s.Point))
	default:
		if Distance(start.Point, s.Point) > d.minMove {
			if d.sess.longPressed() {
				d.sess.phase = phaseLongPressedMove
			} else {
				d.sess.phase = phaseImmediateMove
			}
		}
	}
	return true
}

// HandleRelease ends the live contact at s and reports the completed
// gesture. Up, secondary pointer up and cancel all end here.
func (d *Detector) HandleRelease(s Sample) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.sess.phase == phaseIdle {
		return false
	}

	d.sess.armed = false
	start := d.sess.initial
	p := d.sess.phase
	d.sess.reset()

	switch p {
	case phaseImmediateMove:
		return d.listener.OnSwipe(start, s, DirectionOf(start.Point, s.Point))
	case phaseLongPressedMove:
		return d.listener.OnLongPressedSwipe(start, s, DirectionOf(start.Point, s.Point))
	case phaseLongPressed:
		return d.listener.OnLongPressedTapUp(s)
	default:
		return d.listener.OnSingleTapUp(s)
	}
}

// handleLongPressTimeout promotes the live contact to a long press. The
// poller may call it late, after the contact moved or lifted, so the
// session is checked again here.
func (d *Detector) handleLongPressTimeout() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.sess.awaitingLongPress() {
		return
	}

	d.sess.phase = phaseLongPressed
	d.listener.OnLongPressed(d.sess.initial)
}

// phase returns the current session phase
func (d *Detector) phase() phase {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.sess.phase
}
