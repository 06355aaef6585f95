package gesture

import (
	"context"
	"fmt"
	"reflect"
	"sync"
	"testing"
	"time"
)

// recorder logs every listener call as a short string
type recorder struct {
	mu         sync.Mutex
	calls      []string
	downResult bool
	upResult   bool
	onLong     func()
}

func newRecorder() *recorder {
	return &recorder{downResult: true, upResult: true}
}

func (r *recorder) add(format string, args ...any) {
	r.mu.Lock()
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
	r.mu.Unlock()
}

func (r *recorder) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

func (r *recorder) OnDown(s Sample) bool {
	r.add("down")
	return r.downResult
}

func (r *recorder) OnLongPressed(s Sample) {
	if r.onLong != nil {
		r.onLong()
	}
	r.add("long_pressed")
}

func (r *recorder) OnMove(start, cur Sample, dir Direction) {
	r.add("move:%d", dir)
}

func (r *recorder) OnLongPressedMove(start, cur Sample, dir Direction) {
	r.add("long_pressed_move:%d", dir)
}

func (r *recorder) OnSwipe(start, end Sample, dir Direction) bool {
	r.add("swipe:%d", dir)
	return r.upResult
}

func (r *recorder) OnLongPressedSwipe(start, end Sample, dir Direction) bool {
	r.add("long_pressed_swipe:%d", dir)
	return r.upResult
}

func (r *recorder) OnSingleTapUp(s Sample) bool {
	r.add("single_tap_up")
	return r.upResult
}

func (r *recorder) OnLongPressedTapUp(s Sample) bool {
	r.add("long_pressed_tap_up")
	return r.upResult
}

// fakeClock is a manually advanced clock
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func (c *fakeClock) Sample(x, y float64) Sample { return NewSample(x, y, c.now) }

// newTestDetector returns a detector for a 1080px wide viewport (72px
// move threshold) driven by a fake clock, without a running poller
func newTestDetector(r *recorder) (*Detector, *fakeClock) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	d := NewDetector(Options{MinMoveDistance: MinMoveForViewport(1080)}, r)
	d.SetNowFunc(clock.Now)
	return d, clock
}

func assertCalls(t *testing.T, r *recorder, want ...string) {
	t.Helper()
	if got := r.Calls(); !reflect.DeepEqual(got, want) {
		t.Errorf("calls = %v, want %v", got, want)
	}
}

func TestMinMoveForViewport(t *testing.T) {
	if got := MinMoveForViewport(1080); got != 72 {
		t.Errorf("MinMoveForViewport(1080) = %v, want 72", got)
	}
	if got := MinMoveForViewport(1000); got != 66 {
		t.Errorf("MinMoveForViewport(1000) = %v, want 66", got)
	}
}

func TestDetectorImmediateSwipe(t *testing.T) {
	r := newRecorder()
	d, clock := newTestDetector(r)

	d.HandleDown(clock.Sample(100, 100))
	clock.Advance(20 * time.Millisecond)
	d.HandleMove(clock.Sample(200, 100)) // crosses threshold, no callback
	clock.Advance(20 * time.Millisecond)
	d.HandleMove(clock.Sample(250, 100))

	// Even a late poll must not turn this into a long press
	clock.Advance(time.Second)
	d.tick()

	if !d.HandleRelease(clock.Sample(300, 100)) {
		t.Error("HandleRelease() = false, want true")
	}

	assertCalls(t, r, "down", "move:3", "swipe:3")
	if p := d.phase(); p != phaseIdle {
		t.Errorf("phase after release = %v, want idle", p)
	}
}

func TestDetectorLongPressedSwipe(t *testing.T) {
	r := newRecorder()
	d, clock := newTestDetector(r)

	d.HandleDown(clock.Sample(100, 100))
	clock.Advance(450 * time.Millisecond)
	d.tick()
	d.HandleMove(clock.Sample(100, 200))
	d.HandleMove(clock.Sample(100, 260))
	d.HandleRelease(clock.Sample(100, 300))

	assertCalls(t, r, "down", "long_pressed", "long_pressed_move:0", "long_pressed_swipe:0")
}

func TestDetectorLongPressedTapUp(t *testing.T) {
	r := newRecorder()
	d, clock := newTestDetector(r)

	d.HandleDown(clock.Sample(100, 100))
	clock.Advance(401 * time.Millisecond)
	d.tick()
	// Further polls do not repeat the long press
	clock.Advance(100 * time.Millisecond)
	d.tick()
	d.HandleRelease(clock.Sample(102, 101))

	assertCalls(t, r, "down", "long_pressed", "long_pressed_tap_up")
}

func TestDetectorSingleTapUp(t *testing.T) {
	r := newRecorder()
	d, clock := newTestDetector(r)

	d.HandleDown(clock.Sample(100, 100))
	clock.Advance(100 * time.Millisecond)
	d.tick()
	d.HandleMove(clock.Sample(110, 105)) // under the move threshold
	d.HandleRelease(clock.Sample(110, 105))

	assertCalls(t, r, "down", "single_tap_up")
}

func TestDetectorThresholdIsStrict(t *testing.T) {
	r := newRecorder()
	d, clock := newTestDetector(r)

	d.HandleDown(clock.Sample(0, 0))
	clock.Advance(DefaultLongPressThreshold)
	d.tick()
	assertCalls(t, r, "down")

	clock.Advance(time.Millisecond)
	d.tick()
	assertCalls(t, r, "down", "long_pressed")
}

func TestDetectorSmallMoveDoesNotBlockLongPress(t *testing.T) {
	r := newRecorder()
	d, clock := newTestDetector(r)

	d.HandleDown(clock.Sample(100, 100))
	d.HandleMove(clock.Sample(130, 130))
	clock.Advance(500 * time.Millisecond)
	d.tick()
	d.HandleRelease(clock.Sample(130, 130))

	assertCalls(t, r, "down", "long_pressed", "long_pressed_tap_up")
}

func TestDetectorReleaseBeforeLongPressHandled(t *testing.T) {
	r := newRecorder()
	d, clock := newTestDetector(r)

	d.HandleDown(clock.Sample(100, 100))
	clock.Advance(500 * time.Millisecond)

	if !d.longPressDue() {
		t.Fatal("longPressDue() = false, want true")
	}
	// The finger lifts before the timeout is handled
	d.HandleRelease(clock.Sample(100, 100))
	d.handleLongPressTimeout()

	assertCalls(t, r, "down", "single_tap_up")
}

func TestDetectorMoveBeforeLongPressHandled(t *testing.T) {
	r := newRecorder()
	d, clock := newTestDetector(r)

	d.HandleDown(clock.Sample(100, 100))
	clock.Advance(500 * time.Millisecond)

	if !d.longPressDue() {
		t.Fatal("longPressDue() = false, want true")
	}
	d.HandleMove(clock.Sample(300, 100))
	d.handleLongPressTimeout()
	d.HandleRelease(clock.Sample(300, 100))

	assertCalls(t, r, "down", "swipe:3")
}

func TestDetectorRejectsMultipleContacts(t *testing.T) {
	r := newRecorder()
	d, clock := newTestDetector(r)

	down := clock.Sample(100, 100)
	if !d.HandleEvent(PointerEvent{Action: ActionDown, Sample: down, Contacts: 1}) {
		t.Fatal("single contact down should be consumed")
	}

	second := PointerEvent{Action: ActionDown, Sample: clock.Sample(500, 500), Contacts: 2}
	if d.HandleEvent(second) {
		t.Error("second contact down should not be consumed")
	}
	moveTwo := PointerEvent{Action: ActionMove, Sample: clock.Sample(900, 900), Contacts: 2}
	if d.HandleEvent(moveTwo) {
		t.Error("two contact move should not be consumed")
	}
	upTwo := PointerEvent{Action: ActionPointerUp, Sample: clock.Sample(500, 500), Contacts: 2}
	if d.HandleEvent(upTwo) {
		t.Error("secondary pointer up with two contacts should not be consumed")
	}

	if p := d.phase(); p != phasePressed {
		t.Errorf("phase = %v, want pressed", p)
	}
	d.mu.Lock()
	initial := d.sess.initial
	d.mu.Unlock()
	if initial != down {
		t.Errorf("initial sample = %v, want %v", initial, down)
	}

	d.HandleEvent(PointerEvent{Action: ActionUp, Sample: clock.Sample(100, 100)})
	assertCalls(t, r, "down", "single_tap_up")
}

func TestDetectorCancelEndsContact(t *testing.T) {
	r := newRecorder()
	d, clock := newTestDetector(r)

	d.HandleEvent(PointerEvent{Action: ActionDown, Sample: clock.Sample(0, 0), Contacts: 1})
	d.HandleEvent(PointerEvent{Action: ActionMove, Sample: clock.Sample(-200, 0), Contacts: 1})
	d.HandleEvent(PointerEvent{Action: ActionCancel, Sample: clock.Sample(-250, 0), Contacts: 1})

	assertCalls(t, r, "down", "swipe:9")
}

func TestDetectorDownNotConsumed(t *testing.T) {
	r := newRecorder()
	r.downResult = false
	d, clock := newTestDetector(r)

	if d.HandleDown(clock.Sample(0, 0)) {
		t.Error("HandleDown() = true, want false")
	}
	clock.Advance(time.Second)
	d.tick()
	d.HandleRelease(clock.Sample(0, 0))

	assertCalls(t, r, "down", "single_tap_up")
}

func TestDetectorReleaseResultFromListener(t *testing.T) {
	r := newRecorder()
	r.upResult = false
	d, clock := newTestDetector(r)

	d.HandleDown(clock.Sample(0, 0))
	if d.HandleRelease(clock.Sample(0, 0)) {
		t.Error("HandleRelease() = true, want listener's false")
	}
}

func TestDetectorIgnoresEventsWithoutContact(t *testing.T) {
	r := newRecorder()
	d, clock := newTestDetector(r)

	if d.HandleMove(clock.Sample(10, 10)) {
		t.Error("HandleMove() without contact = true, want false")
	}
	if d.HandleRelease(clock.Sample(10, 10)) {
		t.Error("HandleRelease() without contact = true, want false")
	}
	d.tick()
	assertCalls(t, r)
}

func TestDetectorThresholdAppliesToNextContact(t *testing.T) {
	r := newRecorder()
	d, clock := newTestDetector(r)

	d.HandleDown(clock.Sample(0, 0))
	d.SetLongPressThreshold(time.Second)
	clock.Advance(500 * time.Millisecond)
	d.tick()
	d.HandleRelease(clock.Sample(0, 0))

	d.HandleDown(clock.Sample(0, 0))
	clock.Advance(500 * time.Millisecond)
	d.tick()
	d.HandleRelease(clock.Sample(0, 0))

	assertCalls(t, r, "down", "long_pressed", "long_pressed_tap_up", "down", "single_tap_up")
	if got := d.LongPressThreshold(); got != time.Second {
		t.Errorf("LongPressThreshold() = %v, want 1s", got)
	}
}

func TestDetectorStampsZeroTime(t *testing.T) {
	r := newRecorder()
	d, clock := newTestDetector(r)

	d.HandleDown(Sample{Point: Point{X: 1, Y: 1}})
	d.tick()
	assertCalls(t, r, "down")

	clock.Advance(500 * time.Millisecond)
	d.tick()
	assertCalls(t, r, "down", "long_pressed")
}

func TestDetectorPollerLongPress(t *testing.T) {
	r := newRecorder()
	d := NewDetector(Options{
		LongPressThreshold: 60 * time.Millisecond,
		PollInterval:       10 * time.Millisecond,
		MinMoveDistance:    72,
	}, r)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.HandleDown(NewSample(0, 0, time.Now()))
	time.Sleep(200 * time.Millisecond)
	d.HandleRelease(NewSample(0, 0, time.Now()))

	assertCalls(t, r, "down", "long_pressed", "long_pressed_tap_up")
}

func TestDetectorPollerQuickTap(t *testing.T) {
	r := newRecorder()
	d := NewDetector(Options{
		LongPressThreshold: 300 * time.Millisecond,
		PollInterval:       10 * time.Millisecond,
		MinMoveDistance:    72,
	}, r)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.HandleDown(NewSample(0, 0, time.Now()))
	time.Sleep(20 * time.Millisecond)
	d.HandleRelease(NewSample(0, 0, time.Now()))
	time.Sleep(350 * time.Millisecond)

	assertCalls(t, r, "down", "single_tap_up")
}

func TestDetectorPollerPanicIsFatal(t *testing.T) {
	r := newRecorder()
	r.onLong = func() { panic("listener exploded") }

	d := NewDetector(Options{
		LongPressThreshold: 20 * time.Millisecond,
		PollInterval:       5 * time.Millisecond,
	}, r)

	fatal := make(chan error, 1)
	d.SetFatalFunc(func(err error) { fatal <- err })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.HandleDown(NewSample(0, 0, time.Now()))

	select {
	case err := <-fatal:
		if err == nil {
			t.Fatal("fatal error is nil")
		}
	case <-time.After(time.Second):
		t.Fatal("poller panic was not reported")
	}
}

func TestDetectorSetFatalFuncWhileRunning(t *testing.T) {
	r := newRecorder()
	r.onLong = func() { panic("listener exploded") }

	d := NewDetector(Options{
		LongPressThreshold: 20 * time.Millisecond,
		PollInterval:       5 * time.Millisecond,
	}, r)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	// Replaced after the poller is already ticking
	fatal := make(chan error, 1)
	d.SetFatalFunc(func(err error) { fatal <- err })
	d.HandleDown(NewSample(0, 0, time.Now()))

	select {
	case err := <-fatal:
		if err == nil {
			t.Fatal("fatal error is nil")
		}
	case <-time.After(time.Second):
		t.Fatal("poller panic was not reported to the replaced hook")
	}
}
