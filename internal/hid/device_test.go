package hid

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pleimann/swipepad/internal/gesture"
)

// scriptedReads replays reports, then fails once with err, then reports
// the device as closed
func scriptedReads(reports [][]byte, err error) func([]byte) (int, error) {
	i := 0
	failed := false
	return func(buf []byte) (int, error) {
		if i < len(reports) {
			n := copy(buf, reports[i])
			i++
			return n, nil
		}
		if !failed {
			failed = true
			return 0, err
		}
		return 0, errDeviceClosed
	}
}

func collect(events <-chan gesture.PointerEvent) []gesture.PointerEvent {
	var got []gesture.PointerEvent
	for {
		select {
		case ev := <-events:
			got = append(got, ev)
		default:
			return got
		}
	}
}

func TestReportReaderCancelsOnDisconnect(t *testing.T) {
	reconnects := 0
	r := &reportReader{
		read: scriptedReads([][]byte{
			touchReport(TouchDown, 1, 500, 500, 1),
			touchReport(TouchMove, 1, 700, 500, 2),
			touchReport(TouchMove, 1, 800, 500, 3),
		}, errors.New("unplugged")),
		reconnect: func(context.Context) error {
			reconnects++
			return nil
		},
		now: time.Now,
	}

	events := make(chan gesture.PointerEvent, 8)
	if err := r.run(context.Background(), events); !errors.Is(err, errDeviceClosed) {
		t.Fatalf("run() error = %v, want device closed", err)
	}

	got := collect(events)
	if len(got) != 4 {
		t.Fatalf("got %d events, want 4: %v", len(got), got)
	}
	cancel := got[3]
	if cancel.Action != gesture.ActionCancel {
		t.Errorf("last event = %s, want cancel", cancel)
	}
	if cancel.Sample.X != 800 || cancel.Sample.Y != 500 {
		t.Errorf("cancel at (%v,%v), want (800,500)", cancel.Sample.X, cancel.Sample.Y)
	}
	if reconnects != 1 {
		t.Errorf("reconnects = %d, want 1", reconnects)
	}
}

func TestReportReaderNoCancelWithoutContact(t *testing.T) {
	r := &reportReader{
		read: scriptedReads([][]byte{
			touchReport(TouchDown, 1, 10, 10, 1),
			touchReport(TouchUp, 1, 10, 10, 2),
		}, errors.New("unplugged")),
		reconnect: func(context.Context) error { return nil },
		now:       time.Now,
	}

	events := make(chan gesture.PointerEvent, 8)
	r.run(context.Background(), events)

	got := collect(events)
	if len(got) != 2 {
		t.Fatalf("got %d events, want 2: %v", len(got), got)
	}
	if got[1].Action != gesture.ActionUp {
		t.Errorf("last event = %s, want up", got[1])
	}
}

func TestReportReaderReconnectFailure(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	r := &reportReader{
		read: scriptedReads([][]byte{
			touchReport(TouchDown, 1, 40, 60, 1),
		}, errors.New("unplugged")),
		reconnect: func(ctx context.Context) error {
			cancel()
			return ctx.Err()
		},
		now: time.Now,
	}

	events := make(chan gesture.PointerEvent, 8)
	err := r.run(ctx, events)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("run() error = %v, want context canceled", err)
	}

	// The held contact is cancelled before reconnecting starts
	got := collect(events)
	if len(got) != 2 || got[1].Action != gesture.ActionCancel {
		t.Fatalf("events = %v, want down then cancel", got)
	}
}
