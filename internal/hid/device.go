package hid

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/karalabe/hid"

	"github.com/pleimann/swipepad/internal/gesture"
	"github.com/pleimann/swipepad/internal/utils"
)

const permissionHint = "  This may be a permissions issue. On macOS, try:\n" +
	"  1. System Settings > Privacy & Security > Input Monitoring\n" +
	"  2. Add Terminal (or your terminal app) to the list"

// Device is a connection to a touch digitizer with an optional OLED
type Device struct {
	vendorID  uint16
	productID uint16
	device    *hid.Device
	mu        sync.Mutex
	closed    bool
	now       func() time.Time
}

// NewDevice opens the first openable interface of the given device
func NewDevice(vendorID, productID uint16) (*Device, error) {
	devices := hid.Enumerate(vendorID, productID)
	if len(devices) == 0 {
		if len(hid.Enumerate(0, 0)) == 0 {
			return nil, fmt.Errorf("no HID devices found on system - check USB connection")
		}
		return nil, fmt.Errorf("no device found with VendorID=0x%04X, ProductID=0x%04X\n"+
			"  Run '%s list-devices' to see available devices\n"+
			"  Run '%s set-device' to configure the correct device",
			vendorID, productID, utils.ExecutableName(), utils.ExecutableName())
	}

	dev, err := openFirst(devices)
	if err != nil {
		if len(devices) == 1 {
			return nil, fmt.Errorf("failed to open device 0x%04X:0x%04X: %w\n%s",
				vendorID, productID, err, permissionHint)
		}
		return nil, fmt.Errorf("failed to open any of %d interfaces for device 0x%04X:0x%04X: %w\n%s",
			len(devices), vendorID, productID, err, permissionHint)
	}

	return &Device{
		vendorID:  vendorID,
		productID: productID,
		device:    dev,
		now:       time.Now,
	}, nil
}

// openFirst tries each interface in turn; composite devices often
// expose interfaces that cannot be opened
func openFirst(devices []hid.DeviceInfo) (*hid.Device, error) {
	var lastErr error
	for _, info := range devices {
		dev, err := info.Open()
		if err == nil {
			return dev, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

// Close closes the HID device connection
func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil
	}
	d.closed = true

	if d.device != nil {
		return d.device.Close()
	}
	return nil
}

// ReadEvents reads touch reports and sends them as pointer events until
// ctx is cancelled or the device is closed. When a read fails the device
// is reopened, polling every reconnectInterval; a contact held when the
// device went away is cancelled at its last position first.
func (d *Device) ReadEvents(ctx context.Context, events chan<- gesture.PointerEvent, reconnectInterval time.Duration) error {
	r := &reportReader{
		read: d.read,
		reconnect: func(ctx context.Context) error {
			return d.WaitForDevice(ctx, reconnectInterval)
		},
		now: d.now,
	}
	return r.run(ctx, events)
}

// read reads one report from the current connection
func (d *Device) read(buf []byte) (int, error) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return 0, errDeviceClosed
	}
	dev := d.device
	d.mu.Unlock()

	if dev == nil {
		return 0, fmt.Errorf("device disconnected")
	}
	return dev.Read(buf)
}

var errDeviceClosed = errors.New("device closed")

// reportReader turns raw reports into pointer events and survives
// disconnects
type reportReader struct {
	read      func([]byte) (int, error)
	reconnect func(context.Context) error
	now       func() time.Time
	contact   gesture.Contact
}

func (r *reportReader) run(ctx context.Context, events chan<- gesture.PointerEvent) error {
	buf := make([]byte, 64)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		n, err := r.read(buf)
		if errors.Is(err, errDeviceClosed) {
			return err
		}
		if err != nil {
			log.Printf("HID read error, reconnecting: %v", err)
			if ev, ok := r.contact.Cancel(r.now()); ok {
				if err := send(ctx, events, ev); err != nil {
					return err
				}
			}
			if err := r.reconnect(ctx); err != nil {
				return fmt.Errorf("read error: %w", err)
			}
			continue
		}

		if n == 0 {
			continue
		}

		report, err := ParseTouchReport(buf[:n])
		if err != nil {
			// Non-touch reports share the interface
			continue
		}

		ev := report.Event(r.now())
		if err := send(ctx, events, ev); err != nil {
			return err
		}
		r.contact.Observe(ev)
	}
}

func send(ctx context.Context, events chan<- gesture.PointerEvent, ev gesture.PointerEvent) error {
	select {
	case events <- ev:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Write sends data to the HID device
func (d *Device) Write(data []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return errDeviceClosed
	}
	if d.device == nil {
		return fmt.Errorf("device disconnected")
	}

	_, err := d.device.Write(data)
	return err
}

// SendFrame sends a display frame to the device
func (d *Device) SendFrame(frame *DisplayFrame) error {
	return d.Write(frame.Encode())
}

// Reconnect reopens the device
func (d *Device) Reconnect() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return fmt.Errorf("device closed")
	}

	if d.device != nil {
		d.device.Close()
		d.device = nil
	}

	devices := hid.Enumerate(d.vendorID, d.productID)
	if len(devices) == 0 {
		return fmt.Errorf("device not found")
	}

	dev, err := openFirst(devices)
	if err != nil {
		return fmt.Errorf("failed to open device: %w", err)
	}
	d.device = dev
	return nil
}

// WaitForDevice polls until the device can be reopened
func (d *Device) WaitForDevice(ctx context.Context, pollInterval time.Duration) error {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			err := d.Reconnect()
			if err == nil {
				return nil
			}
			d.mu.Lock()
			closed := d.closed
			d.mu.Unlock()
			if closed {
				return err
			}
		}
	}
}
