package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pleimann/swipepad/internal/gesture"
)

// Input sources
const (
	SourceHID       = "hid"
	SourceWebsocket = "websocket"
	SourceMouse     = "mouse"
)

type Config struct {
	Input    InputConfig   `yaml:"input"`
	Timing   TimingConfig  `yaml:"timing"`
	Screen   ScreenConfig  `yaml:"screen"`
	TUI      TUIConfig     `yaml:"tui"`
	Bindings []Binding     `yaml:"bindings"`
	Display  DisplayConfig `yaml:"display"`
}

type InputConfig struct {
	Source         string `yaml:"source"`
	VendorID       uint16 `yaml:"vendor_id"`
	ProductID      uint16 `yaml:"product_id"`
	PollIntervalMs int    `yaml:"poll_interval_ms"`
	ListenAddr     string `yaml:"listen_addr,omitempty"`
}

type TimingConfig struct {
	LongPressThresholdMs int `yaml:"long_press_threshold_ms"`
	PollIntervalMs       int `yaml:"poll_interval_ms"`
}

// ScreenConfig describes the touch surface. Width decides the move
// threshold, density converts dp thresholds to pixels.
type ScreenConfig struct {
	WidthPx  int     `yaml:"width_px"`
	HeightPx int     `yaml:"height_px"`
	Density  float64 `yaml:"density"`
}

type TUIConfig struct {
	Command    string   `yaml:"command"`
	Args       []string `yaml:"args"`
	WorkingDir string   `yaml:"working_dir,omitempty"`
	KeyDelayMs int      `yaml:"key_delay_ms,omitempty"`
}

// Binding maps a gesture, optionally restricted to some directions, to
// a key sequence
type Binding struct {
	Gesture    string   `yaml:"gesture"`
	Directions []string `yaml:"directions,omitempty"`
	Keys       []string `yaml:"keys"`
}

type DisplayConfig struct {
	Enabled          bool `yaml:"enabled"`
	Width            int  `yaml:"width"`
	Height           int  `yaml:"height"`
	UpdateIntervalMs int  `yaml:"update_interval_ms"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes, validates and fills defaults for a YAML config
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Input.Source == "" {
		cfg.Input.Source = SourceHID
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg.applyDefaults()

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Input.Source {
	case SourceHID:
		if c.Input.VendorID == 0 {
			return fmt.Errorf("input.vendor_id is required for hid input")
		}
		if c.Input.ProductID == 0 {
			return fmt.Errorf("input.product_id is required for hid input")
		}
	case SourceWebsocket, SourceMouse:
	default:
		return fmt.Errorf("unknown input.source %q", c.Input.Source)
	}

	if c.Screen.WidthPx <= 0 {
		return fmt.Errorf("screen.width_px is required")
	}
	if c.TUI.KeyDelayMs < 0 {
		return fmt.Errorf("tui.key_delay_ms must not be negative")
	}
	if c.Screen.Density < 0 {
		return fmt.Errorf("screen.density must not be negative")
	}
	if c.TUI.Command == "" {
		return fmt.Errorf("tui.command is required")
	}
	if c.Display.Enabled && c.Input.Source != SourceHID {
		return fmt.Errorf("display requires hid input")
	}

	for i, b := range c.Bindings {
		if err := b.validate(); err != nil {
			return fmt.Errorf("binding %d: %w", i, err)
		}
	}

	return nil
}

func (b Binding) validate() error {
	gt, err := gesture.ParseGestureType(b.Gesture)
	if err != nil {
		return err
	}
	if len(b.Directions) > 0 && !gt.Directional() {
		return fmt.Errorf("gesture %s does not take directions", gt)
	}
	for _, d := range b.Directions {
		if _, err := gesture.ParseDirection(d); err != nil {
			return err
		}
	}
	if len(b.Keys) == 0 {
		return fmt.Errorf("keys are required")
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Input.PollIntervalMs == 0 {
		c.Input.PollIntervalMs = 10
	}
	if c.Input.ListenAddr == "" {
		c.Input.ListenAddr = ":8765"
	}
	if c.Timing.LongPressThresholdMs == 0 {
		c.Timing.LongPressThresholdMs = 400
	}
	if c.Timing.PollIntervalMs == 0 {
		c.Timing.PollIntervalMs = 50
	}
	if c.Screen.Density == 0 {
		c.Screen.Density = 1
	}
	if c.Display.Width == 0 {
		c.Display.Width = 128
	}
	if c.Display.Height == 0 {
		c.Display.Height = 64
	}
	if c.Display.UpdateIntervalMs == 0 {
		c.Display.UpdateIntervalMs = 100
	}
}

// LongPressThreshold returns the configured long-press hold time
func (t TimingConfig) LongPressThreshold() time.Duration {
	return time.Duration(t.LongPressThresholdMs) * time.Millisecond
}

// GestureOptions builds detector options from the timing and screen
// sections
func (c *Config) GestureOptions() gesture.Options {
	return gesture.Options{
		LongPressThreshold: c.Timing.LongPressThreshold(),
		PollInterval:       time.Duration(c.Timing.PollIntervalMs) * time.Millisecond,
		MinMoveDistance:    gesture.MinMoveForViewport(c.Screen.WidthPx),
	}
}

// UpdateDeviceIDs updates the vendor_id and product_id in a config file
// while preserving the rest of the file structure and comments
func UpdateDeviceIDs(path string, vendorID, productID uint16) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	content := string(data)

	vendorRegex := regexp.MustCompile(`(?m)^(\s*vendor_id:\s*)(?:0x[0-9A-Fa-f]+|\d+)`)
	content = vendorRegex.ReplaceAllString(content, fmt.Sprintf("${1}0x%04X", vendorID))

	productRegex := regexp.MustCompile(`(?m)^(\s*product_id:\s*)(?:0x[0-9A-Fa-f]+|\d+)`)
	content = productRegex.ReplaceAllString(content, fmt.Sprintf("${1}0x%04X", productID))

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// CreateDefaultConfig writes a starter config for a HID touch device
func CreateDefaultConfig(path string, vendorID, productID uint16) error {
	content := fmt.Sprintf(`# swipepad configuration

input:
  source: hid
  vendor_id: 0x%04X
  product_id: 0x%04X
  poll_interval_ms: 10

timing:
  long_press_threshold_ms: 400
  poll_interval_ms: 50

screen:
  width_px: 1080
  height_px: 720
  density: 1.0

tui:
  command: "your-tui-app"
  args: []

# Gesture bindings. Directions are sectors 0-11 (0 down, 3 right,
# 6 up, 9 left) or the names down/right/up/left.
bindings:
  - gesture: tap
    keys: ["enter"]
  - gesture: swipe
    directions: [right]
    keys: ["right"]
  - gesture: swipe
    directions: [left]
    keys: ["left"]
  - gesture: long_press_tap
    keys: ["esc"]

display:
  enabled: false
  width: 128
  height: 64
  update_interval_ms: 100
`, vendorID, productID)

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	return nil
}

// Exists checks if a config file exists
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
