package gesture

import "time"

// Contact follows the pointer events of one input so a transport that
// loses its client or device can end the contact where it was last seen.
// The zero value has no live contact.
type Contact struct {
	last Sample
	live bool
}

// Observe records an event that was delivered downstream. Multi-contact
// events are ignored, as the detector ignores them.
func (c *Contact) Observe(ev PointerEvent) {
	if ev.Contacts > 1 {
		return
	}
	switch ev.Action {
	case ActionDown, ActionMove:
		c.last, c.live = ev.Sample, true
	case ActionUp, ActionPointerUp, ActionCancel:
		c.live = false
	}
}

// Live reports whether a contact is in progress
func (c *Contact) Live() bool {
	return c.live
}

// Cancel returns a cancel event at the last observed position, stamped
// with at, and ends the contact. ok is false when no contact is live.
func (c *Contact) Cancel(at time.Time) (ev PointerEvent, ok bool) {
	if !c.live {
		return PointerEvent{}, false
	}
	c.live = false
	return PointerEvent{
		Action:   ActionCancel,
		Sample:   NewSample(c.last.X, c.last.Y, at),
		Contacts: 1,
	}, true
}
