package display

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/pleimann/swipepad/internal/config"
	"github.com/pleimann/swipepad/internal/gesture"
	"github.com/pleimann/swipepad/internal/hid"
)

// DeviceWriter is the interface for sending frames to the device
type DeviceWriter interface {
	SendFrame(frame *hid.DisplayFrame) error
}

// StatusSource supplies a line of text for the bottom of the screen
type StatusSource interface {
	StatusLine() string
}

// Manager shows the last classified gesture and a status line on the
// digitizer's OLED
type Manager struct {
	config   config.DisplayConfig
	device   DeviceWriter
	renderer *Renderer
	encoder  *FrameEncoder

	mu      sync.Mutex
	last    *gesture.Gesture
	status  string
	dirty   bool
	sent    []byte
	cancel  context.CancelFunc
	stopped chan struct{}
}

func NewManager(cfg config.DisplayConfig, device DeviceWriter) *Manager {
	return &Manager{
		config:   cfg,
		device:   device,
		renderer: NewRenderer(cfg.Width, cfg.Height),
		encoder:  NewFrameEncoder(cfg.Width, cfg.Height),
		dirty:    true,
	}
}

// Start starts the display update loop. status may be nil.
func (m *Manager) Start(ctx context.Context, status StatusSource) {
	ctx, cancel := context.WithCancel(ctx)
	stopped := make(chan struct{})

	m.mu.Lock()
	m.cancel = cancel
	m.stopped = stopped
	m.mu.Unlock()

	interval := time.Duration(m.config.UpdateIntervalMs) * time.Millisecond
	ticker := time.NewTicker(interval)

	go func() {
		defer close(stopped)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if status != nil {
					m.SetStatus(status.StatusLine())
				}
				m.Flush()
			}
		}
	}()
}

// Stop stops the update loop and clears the screen
func (m *Manager) Stop() {
	m.mu.Lock()
	cancel, stopped := m.cancel, m.stopped
	m.mu.Unlock()

	if cancel != nil {
		cancel()
		<-stopped
	}

	if err := m.device.SendFrame(m.encoder.EncodeClear()); err != nil {
		log.Printf("Failed to clear display: %v", err)
	}
}

// ShowGesture queues g for the next update
func (m *Manager) ShowGesture(g gesture.Gesture) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.last = &g
	m.dirty = true
}

// SetStatus queues a new status line
func (m *Manager) SetStatus(s string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s != m.status {
		m.status = s
		m.dirty = true
	}
}

// Flush renders and sends the bands that changed, if anything was
// queued since the last flush
func (m *Manager) Flush() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.dirty {
		return
	}
	m.dirty = false

	m.render()
	next := m.renderer.GetFrameBuffer()

	for _, frame := range m.encoder.ChangedFrames(m.sent, next) {
		if err := m.device.SendFrame(frame); err != nil {
			log.Printf("Failed to send display frame: %v", err)
			// Resend everything next time
			m.sent = nil
			m.dirty = true
			return
		}
	}
	m.sent = next
}

// render lays out the gesture name on the left, a compass on the right
// and the status along the bottom
func (m *Manager) render() {
	r := m.renderer
	r.Clear()

	lh := r.LineHeight()
	radius := max(min(r.Height()-lh, r.Width()/2)/2-2, 4)
	cx := r.Width() - radius - 2
	cy := radius + 2

	active := gesture.Direction(-1)
	label := "ready"
	if m.last != nil {
		label = m.last.Type.String()
		if m.last.Type.Directional() {
			active = m.last.Direction
			r.DrawText(2, 2*lh, m.last.Direction.String())
		}
	}
	r.DrawText(2, lh, label)
	r.DrawCompass(cx, cy, radius, active)

	if m.status != "" {
		r.DrawText(2, r.Height()-2, m.status)
	}
}
