package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/pleimann/swipepad/internal/action"
	"github.com/pleimann/swipepad/internal/config"
	"github.com/pleimann/swipepad/internal/debugtree"
	"github.com/pleimann/swipepad/internal/display"
	"github.com/pleimann/swipepad/internal/gesture"
	"github.com/pleimann/swipepad/internal/hid"
	"github.com/pleimann/swipepad/internal/mousehook"
	"github.com/pleimann/swipepad/internal/pty"
	"github.com/pleimann/swipepad/internal/units"
	"github.com/pleimann/swipepad/internal/wsinput"
)

// inputSource feeds pointer events until ctx is done
type inputSource interface {
	Describe() string
	Run(ctx context.Context, events chan<- gesture.PointerEvent) error
	Close() error
}

type hidSource struct {
	device    *hid.Device
	reconnect time.Duration
	vendorID  uint16
	productID uint16
}

func (s *hidSource) Describe() string {
	return fmt.Sprintf("hid 0x%04X:0x%04X (reconnect every %s)", s.vendorID, s.productID, s.reconnect)
}

func (s *hidSource) Run(ctx context.Context, events chan<- gesture.PointerEvent) error {
	return s.device.ReadEvents(ctx, events, s.reconnect)
}

func (s *hidSource) Close() error { return s.device.Close() }

type websocketSource struct {
	addr string
}

func (s *websocketSource) Describe() string {
	return fmt.Sprintf("websocket ws://%s%s", s.addr, wsinput.Path)
}

func (s *websocketSource) Run(ctx context.Context, events chan<- gesture.PointerEvent) error {
	return wsinput.NewServer(events).ListenAndServe(ctx, s.addr)
}

func (s *websocketSource) Close() error { return nil }

type mouseSource struct{}

func (mouseSource) Describe() string { return "mouse (left button)" }

func (mouseSource) Run(ctx context.Context, events chan<- gesture.PointerEvent) error {
	return mousehook.Run(ctx, events)
}

func (mouseSource) Close() error { return nil }

// openInput opens the configured input. The HID device is returned
// separately so the display can share it.
func openInput(cfg config.InputConfig) (inputSource, *hid.Device, error) {
	switch cfg.Source {
	case config.SourceHID:
		dev, err := hid.NewDevice(cfg.VendorID, cfg.ProductID)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open HID device: %w", err)
		}
		return &hidSource{
			device:    dev,
			reconnect: time.Duration(cfg.PollIntervalMs) * time.Millisecond,
			vendorID:  cfg.VendorID,
			productID: cfg.ProductID,
		}, dev, nil
	case config.SourceWebsocket:
		return &websocketSource{addr: cfg.ListenAddr}, nil, nil
	case config.SourceMouse:
		return mouseSource{}, nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown input source %q", cfg.Source)
	}
}

// swipeAxes lists the cardinal swipes the travel of g qualifies for
func swipeAxes(t gesture.SwipeTester, g gesture.Gesture) []string {
	if !g.Type.Directional() {
		return nil
	}
	start, end := g.Start.Point, g.End.Point

	var axes []string
	for _, c := range []struct {
		name string
		ok   func(gesture.Point, gesture.Point) bool
	}{
		{"right", t.Right},
		{"left", t.Left},
		{"up", t.Up},
		{"down", t.Down},
	} {
		if c.ok(start, end) {
			axes = append(axes, c.name)
		}
	}
	return axes
}

type App struct {
	watcher   *config.Watcher
	verbose   bool
	input     inputSource
	hidDevice *hid.Device

	engine   *gesture.Engine
	swipes   gesture.SwipeTester
	gestures chan gesture.Gesture

	actionMapper   *action.Mapper
	actionExecutor *action.Executor
	keyWriter      *pty.Writer
	ptyManager     *pty.Manager
	displayManager *display.Manager
}

func newApp(watcher *config.Watcher, verbose bool) (*App, error) {
	cfg := watcher.Get()

	app := &App{
		watcher:  watcher,
		verbose:  verbose,
		swipes:   gesture.NewSwipeTester(units.NewConverter(cfg.Screen.Density)),
		gestures: make(chan gesture.Gesture, 32),
	}

	input, dev, err := openInput(cfg.Input)
	if err != nil {
		return nil, err
	}
	app.input = input
	app.hidDevice = dev

	ptyManager, err := pty.NewManager(cfg.TUI.Command, cfg.TUI.Args, cfg.TUI.WorkingDir, os.Stdout)
	if err != nil {
		input.Close()
		return nil, fmt.Errorf("failed to create PTY manager: %w", err)
	}
	app.ptyManager = ptyManager
	app.keyWriter = pty.NewWriter(ptyManager, time.Duration(cfg.TUI.KeyDelayMs)*time.Millisecond)
	app.actionExecutor = action.NewExecutor(app.keyWriter)
	app.actionMapper = action.NewMapper(cfg)

	// Gestures are queued so key writes never run under the detector lock
	app.engine = gesture.NewEngine(cfg.GestureOptions(), func(g gesture.Gesture) {
		select {
		case app.gestures <- g:
		default:
			log.Printf("Dropping gesture %s: dispatcher is behind", g)
		}
	})

	if cfg.Display.Enabled && dev != nil {
		app.displayManager = display.NewManager(cfg.Display, dev)
	}

	watcher.OnReload(app.reload)

	return app, nil
}

// reload applies the settings that can change while running
func (a *App) reload(cfg *config.Config) {
	a.engine.SetLongPressThreshold(cfg.Timing.LongPressThreshold())
	a.actionMapper.Reload(cfg)
	a.keyWriter.SetKeyDelay(time.Duration(cfg.TUI.KeyDelayMs) * time.Millisecond)

	if a.verbose {
		log.Printf("Applied reload: long press %s, %d binding(s)",
			cfg.Timing.LongPressThreshold(), a.actionMapper.Len())
	}
}

func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := a.ptyManager.Start(ctx); err != nil {
		return fmt.Errorf("failed to start PTY: %w", err)
	}
	if term.IsTerminal(int(os.Stdout.Fd())) {
		if cols, rows, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			a.ptyManager.Resize(uint16(rows), uint16(cols))
		}
	}

	a.watcher.Start()

	if a.displayManager != nil {
		a.displayManager.Start(ctx, a.ptyManager)
	}

	a.engine.Start(ctx)
	go a.dispatch(ctx)

	events := make(chan gesture.PointerEvent, 64)
	inputErr := make(chan error, 1)
	go func() {
		inputErr <- a.input.Run(ctx, events)
	}()

	if a.verbose {
		log.Printf("Reading input from %s", a.input.Describe())
	}

	for {
		select {
		case <-ctx.Done():
			a.shutdown()
			return nil
		case <-a.ptyManager.Done():
			a.shutdown()
			return nil
		case err := <-inputErr:
			a.shutdown()
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("input stopped: %w", err)
		case ev := <-events:
			consumed := a.engine.ProcessEvent(ev)
			if a.verbose && !consumed && ev.Contacts > 1 {
				log.Printf("Ignoring %d-contact %s", ev.Contacts, ev.Action)
			}
		}
	}
}

// dispatch turns queued gestures into key presses
func (a *App) dispatch(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case g := <-a.gestures:
			a.handleGesture(g)
		}
	}
}

func (a *App) handleGesture(g gesture.Gesture) {
	if a.verbose {
		if axes := swipeAxes(a.swipes, g); len(axes) > 0 {
			log.Printf("Gesture detected: %s (swipe %s)", g, strings.Join(axes, ","))
		} else {
			log.Printf("Gesture detected: %s", g)
		}
	}

	if a.displayManager != nil {
		a.displayManager.ShowGesture(g)
	}

	keys := a.actionMapper.Map(g)
	if len(keys) == 0 {
		return
	}
	if err := a.actionExecutor.Execute(keys); err != nil {
		log.Printf("Failed to execute action: %v", err)
	}
}

func (a *App) shutdown() {
	if a.verbose {
		log.Println("Shutting down...")
	}
	a.engine.Stop()
	a.watcher.Stop()
	if a.displayManager != nil {
		a.displayManager.Stop()
	}
	a.ptyManager.Stop()
	a.input.Close()
}

// wiringTree describes how input reaches the TUI for the inspect command
func wiringTree(path string, cfg *config.Config) debugtree.Node {
	opts := cfg.GestureOptions()
	swipes := gesture.NewSwipeTester(units.NewConverter(cfg.Screen.Density))

	var input string
	switch cfg.Input.Source {
	case config.SourceHID:
		input = (&hidSource{
			reconnect: time.Duration(cfg.Input.PollIntervalMs) * time.Millisecond,
			vendorID:  cfg.Input.VendorID,
			productID: cfg.Input.ProductID,
		}).Describe()
	case config.SourceWebsocket:
		input = (&websocketSource{addr: cfg.Input.ListenAddr}).Describe()
	default:
		input = mouseSource{}.Describe()
	}

	mapper := action.NewMapper(cfg)
	bindings := debugtree.NewBranch("mapper: %d binding(s)", mapper.Len())
	for _, e := range mapper.Entries() {
		bindings.Add(debugtree.NewBranch("%s -> %s", e.Gesture, strings.Join(e.Keys, " ")))
	}

	tui := debugtree.NewBranch("pty: %s %s", cfg.TUI.Command, strings.Join(cfg.TUI.Args, " "))
	if cfg.TUI.KeyDelayMs > 0 {
		tui.Add(debugtree.NewBranch("key delay %dms", cfg.TUI.KeyDelayMs))
	}

	detector := debugtree.NewBranch("detector: long press %s, poll %s", opts.LongPressThreshold, opts.PollInterval).Add(
		debugtree.NewBranch("move threshold %.0fpx (screen %dpx wide)", opts.MinMoveDistance, cfg.Screen.WidthPx),
		debugtree.NewBranch("swipe threshold %.0fpx (%gdp at density %g)", swipes.MinDistance(), gesture.MinSwipeDp, cfg.Screen.Density),
		bindings.Add(tui),
	)

	root := debugtree.NewBranch("%s", path).Add(
		debugtree.NewBranch("input: %s", input).Add(detector),
	)

	if cfg.Display.Enabled {
		root.Add(debugtree.NewBranch("display: %dx%d every %dms", cfg.Display.Width, cfg.Display.Height, cfg.Display.UpdateIntervalMs))
	} else {
		root.Add(debugtree.NewBranch("display: off"))
	}

	return root
}
