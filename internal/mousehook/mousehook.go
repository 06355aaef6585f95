// Package mousehook drives the gesture detector from the host mouse,
// treating the left button as a single touch contact.
package mousehook

import (
	"context"
	"time"

	hook "github.com/robotn/gohook"

	"github.com/pleimann/swipepad/internal/gesture"
)

// Translator turns global mouse events into pointer events. Drags are
// forwarded only while the left button is held.
type Translator struct {
	pressed bool
	now     func() time.Time
}

func NewTranslator() *Translator {
	return &Translator{now: time.Now}
}

// Translate converts e, reporting false for events that are not part
// of a left-button contact. uiohook reports a press as MouseHold and a
// release as MouseDown.
func (t *Translator) Translate(e hook.Event) (gesture.PointerEvent, bool) {
	var action gesture.Action

	switch e.Kind {
	case hook.MouseHold:
		if e.Button != hook.MouseMap["left"] {
			return gesture.PointerEvent{}, false
		}
		t.pressed = true
		action = gesture.ActionDown
	case hook.MouseDrag:
		if !t.pressed {
			return gesture.PointerEvent{}, false
		}
		action = gesture.ActionMove
	case hook.MouseDown:
		if e.Button != hook.MouseMap["left"] || !t.pressed {
			return gesture.PointerEvent{}, false
		}
		t.pressed = false
		action = gesture.ActionUp
	default:
		return gesture.PointerEvent{}, false
	}

	when := e.When
	if when.IsZero() {
		when = t.now()
	}

	return gesture.PointerEvent{
		Action:   action,
		Sample:   gesture.NewSample(float64(e.X), float64(e.Y), when),
		Contacts: 1,
	}, true
}

// Run hooks the mouse and sends pointer events until ctx is done. Only
// one hook can be active per process.
func Run(ctx context.Context, events chan<- gesture.PointerEvent) error {
	raw := hook.Start()
	defer hook.End()

	t := NewTranslator()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case e, ok := <-raw:
			if !ok {
				return nil
			}
			ev, ok := t.Translate(e)
			if !ok {
				continue
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}
