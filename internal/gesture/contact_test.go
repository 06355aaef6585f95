package gesture

import (
	"testing"
	"time"
)

func TestContactCancel(t *testing.T) {
	t0 := time.Unix(100, 0)
	at := t0.Add(time.Second)

	tests := []struct {
		name   string
		events []PointerEvent
		wantOK bool
		wantX  float64
		wantY  float64
	}{
		{
			name:   "no events",
			wantOK: false,
		},
		{
			name: "down and moves",
			events: []PointerEvent{
				{Action: ActionDown, Sample: NewSample(500, 500, t0), Contacts: 1},
				{Action: ActionMove, Sample: NewSample(700, 500, t0), Contacts: 1},
				{Action: ActionMove, Sample: NewSample(800, 500, t0), Contacts: 1},
			},
			wantOK: true,
			wantX:  800,
			wantY:  500,
		},
		{
			name: "released",
			events: []PointerEvent{
				{Action: ActionDown, Sample: NewSample(10, 10, t0), Contacts: 1},
				{Action: ActionUp, Sample: NewSample(10, 10, t0), Contacts: 1},
			},
			wantOK: false,
		},
		{
			name: "cancelled",
			events: []PointerEvent{
				{Action: ActionDown, Sample: NewSample(10, 10, t0), Contacts: 1},
				{Action: ActionCancel, Sample: NewSample(10, 10, t0), Contacts: 1},
			},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Contact
			for _, ev := range tt.events {
				c.Observe(ev)
			}

			ev, ok := c.Cancel(at)
			if ok != tt.wantOK {
				t.Fatalf("Cancel() ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if ev.Action != ActionCancel {
				t.Errorf("Action = %s, want cancel", ev.Action)
			}
			if ev.Sample.X != tt.wantX || ev.Sample.Y != tt.wantY {
				t.Errorf("position = (%v,%v), want (%v,%v)", ev.Sample.X, ev.Sample.Y, tt.wantX, tt.wantY)
			}
			if !ev.Sample.Time.Equal(at) {
				t.Errorf("time = %v, want %v", ev.Sample.Time, at)
			}
			if c.Live() {
				t.Error("contact still live after Cancel")
			}
		})
	}
}

func TestContactCancelKeepsSwipeDirection(t *testing.T) {
	r := newRecorder()
	d := NewDetector(Options{MinMoveDistance: 72}, r)

	var c Contact
	t0 := time.Now()
	for _, ev := range []PointerEvent{
		{Action: ActionDown, Sample: NewSample(500, 500, t0), Contacts: 1},
		{Action: ActionMove, Sample: NewSample(700, 500, t0), Contacts: 1},
		{Action: ActionMove, Sample: NewSample(800, 500, t0), Contacts: 1},
	} {
		d.HandleEvent(ev)
		c.Observe(ev)
	}

	ev, ok := c.Cancel(t0)
	if !ok {
		t.Fatal("no cancel for a live contact")
	}
	d.HandleEvent(ev)

	// The first move only classifies; the cancel lands where the finger was
	assertCalls(t, r, "down", "move:3", "swipe:3")
}
