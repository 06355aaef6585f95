package gesture

import (
	"context"
	"fmt"
	"time"
)

// Start runs long-press detection until ctx is cancelled. It must be
// called at most once per detector.
func (d *Detector) Start(ctx context.Context) {
	go d.poll(ctx)
}

// poll checks the live contact every poll interval and hands a due long
// press to handleLongPressTimeout. The detector cannot work without this
// loop, so a panic here is reported as fatal rather than recovered.
func (d *Detector) poll(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			d.fatalFunc()(fmt.Errorf("long-press poller: %v", r))
		}
	}()

	ticker := time.NewTicker(d.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.tick()
		}
	}
}

// tick runs one poll step
func (d *Detector) tick() {
	if d.longPressDue() {
		d.handleLongPressTimeout()
	}
}

// longPressDue reports whether the live contact has been held past its
// threshold while still unclassified
func (d *Detector) longPressDue() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.sess.awaitingLongPress() {
		return false
	}
	return d.now().Sub(d.sess.initial.Time) > d.sess.threshold
}
