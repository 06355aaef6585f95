package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pleimann/swipepad/internal/config"
	"github.com/pleimann/swipepad/internal/debugtree"
	"github.com/pleimann/swipepad/internal/gesture"
	"github.com/pleimann/swipepad/internal/hid"
	"github.com/pleimann/swipepad/internal/ui"
	"github.com/pleimann/swipepad/internal/units"
	"github.com/pleimann/swipepad/internal/utils"
)

const Version = "0.1.0"

var (
	configPath string
	verbose    bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           utils.ExecutableName(),
		Short:         "Touch gesture middleware for TUI applications",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          runMain,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "path to configuration file")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable verbose logging")

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "list-devices",
			Short: "List available HID devices",
			Args:  cobra.NoArgs,
			RunE:  runListDevices,
		},
		&cobra.Command{
			Use:   "set-device [vendor_id product_id]",
			Short: "Set the HID digitizer in the config file",
			Long: `Set the HID device in the configuration file.
If vendor_id and product_id are given (hex with 0x prefix or decimal),
the config is updated directly. Otherwise connected devices are listed
to choose from.`,
			Example: `  swipepad set-device                        Interactive selection
  swipepad set-device 0x1234 0x5678          Set IDs directly
  swipepad set-device --config my.yaml       Use different config`,
			Args: func(cmd *cobra.Command, args []string) error {
				if len(args) != 0 && len(args) != 2 {
					return fmt.Errorf("both vendor_id and product_id must be provided, or neither")
				}
				return nil
			},
			RunE: runSetDevice,
		},
		&cobra.Command{
			Use:   "monitor",
			Short: "Print classified gestures without starting the TUI",
			Long: `Read the configured input and print each gesture as it is classified.
Useful for tuning long_press_threshold_ms and checking directions
before binding keys.`,
			Args: cobra.NoArgs,
			RunE: runMonitor,
		},
		&cobra.Command{
			Use:   "inspect",
			Short: "Show how input reaches the TUI",
			Long:  `Load the config and print the input, detector, bindings and outputs as a tree.`,
			Args:  cobra.NoArgs,
			RunE:  runInspect,
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print version and exit",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, args []string) {
				ui.PrintVersion(Version)
			},
		},
	)

	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if cmd == rootCmd {
			ui.PrintUsage(Version, commandList(rootCmd), rootCmd.Flags().FlagUsages())
			return
		}
		desc := cmd.Long
		if desc == "" {
			desc = cmd.Short
		}
		ui.PrintCommandUsage(cmd.Use, desc, cmd.Flags().FlagUsages(), cmd.Example)
	})

	return rootCmd
}

func commandList(root *cobra.Command) []ui.Command {
	var cmds []ui.Command
	for _, c := range root.Commands() {
		if !c.IsAvailableCommand() {
			continue
		}
		cmds = append(cmds, ui.Command{Name: c.Name(), Use: c.Use, Short: c.Short})
	}
	return cmds
}

func runMain(cmd *cobra.Command, args []string) error {
	watcher, err := config.NewWatcher(configPath)
	if err != nil {
		ui.PrintFatalError("Failed to load config", err.Error())
		return err
	}
	cfg := watcher.Get()

	if verbose {
		log.Printf("Loaded configuration from %s", configPath)
		log.Printf("Input: %s", cfg.Input.Source)
		log.Printf("TUI command: %s %v", cfg.TUI.Command, cfg.TUI.Args)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	app, err := newApp(watcher, verbose)
	if err != nil {
		watcher.Stop()
		ui.PrintFatalError("Failed to initialize application", err.Error())
		return err
	}

	if err := app.Run(ctx); err != nil {
		ui.PrintFatalError("Application error", err.Error())
		return err
	}

	if verbose {
		log.Println("Shutdown complete")
	}
	return nil
}

func runListDevices(cmd *cobra.Command, args []string) error {
	devices, err := hid.ListDevices()
	if err != nil {
		ui.PrintFatalError("Failed to list devices", err.Error())
		return err
	}
	uiDevices := make([]ui.DeviceInfo, len(devices))
	for i, d := range devices {
		uiDevices[i] = toUIDevice(d)
	}
	ui.PrintDeviceList(uiDevices)
	return nil
}

func toUIDevice(d hid.DeviceInfo) ui.DeviceInfo {
	return ui.DeviceInfo{
		VendorID:     d.VendorID,
		ProductID:    d.ProductID,
		Manufacturer: d.Manufacturer,
		Product:      d.Product,
		Digitizer:    d.Digitizer(),
	}
}

func runSetDevice(cmd *cobra.Command, args []string) error {
	var vendorID, productID uint16

	if len(args) == 2 {
		vid, err := parseID(args[0])
		if err != nil {
			ui.PrintFatalError("Invalid vendor_id", fmt.Sprintf("%q: %v", args[0], err))
			return err
		}
		pid, err := parseID(args[1])
		if err != nil {
			ui.PrintFatalError("Invalid product_id", fmt.Sprintf("%q: %v", args[1], err))
			return err
		}
		vendorID, productID = vid, pid

		// Saving an absent device is allowed; it may be plugged in later
		switch info, err := hid.FindDevice(vid, pid); {
		case err != nil:
			log.Printf("Could not check for device: %v", err)
		case info == nil:
			fmt.Println(ui.Warning(fmt.Sprintf("Device 0x%04X:0x%04X is not connected", vid, pid)))
		case !info.Digitizer():
			fmt.Println(ui.Warning(fmt.Sprintf("Device 0x%04X:0x%04X does not report a digitizer interface", vid, pid)))
		}
	} else {
		device, err := selectDevice()
		if err != nil {
			ui.PrintFatalError("Device selection failed", err.Error())
			return err
		}
		if device == nil {
			fmt.Println(ui.Muted("No device selected"))
			return nil
		}
		vendorID, productID = device.VendorID, device.ProductID
	}

	if config.Exists(configPath) {
		if err := config.UpdateDeviceIDs(configPath, vendorID, productID); err != nil {
			ui.PrintFatalError("Failed to update config", err.Error())
			return err
		}
		ui.PrintDeviceSaved(configPath, vendorID, productID, false)
		return nil
	}

	if err := config.CreateDefaultConfig(configPath, vendorID, productID); err != nil {
		ui.PrintFatalError("Failed to create config", err.Error())
		return err
	}
	ui.PrintDeviceSaved(configPath, vendorID, productID, true)
	return nil
}

func runMonitor(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		ui.PrintFatalError("Failed to load config", err.Error())
		return err
	}

	input, _, err := openInput(cfg.Input)
	if err != nil {
		ui.PrintFatalError("Failed to open input", err.Error())
		return err
	}
	defer input.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := cfg.GestureOptions()
	swipes := gesture.NewSwipeTester(units.NewConverter(cfg.Screen.Density))

	engine := gesture.NewEngine(opts, func(g gesture.Gesture) {
		// Move updates arrive per event; show them only when asked
		if !verbose && (g.Type == gesture.GestureMove || g.Type == gesture.GestureLongPressMove) {
			return
		}
		ui.PrintGesture(g, swipeAxes(swipes, g))
	})
	engine.Start(ctx)
	defer engine.Stop()

	ui.PrintMonitorHeader(input.Describe(), opts.LongPressThreshold, engine.Detector().MinMoveDistance(), swipes.MinDistance())

	events := make(chan gesture.PointerEvent, 64)
	inputErr := make(chan error, 1)
	go func() {
		inputErr <- input.Run(ctx, events)
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-inputErr:
			if ctx.Err() != nil {
				return nil
			}
			ui.PrintFatalError("Input stopped", err.Error())
			return err
		case ev := <-events:
			if verbose {
				log.Printf("Event: %s", ev)
			}
			engine.ProcessEvent(ev)
		}
	}
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		ui.PrintFatalError("Failed to load config", err.Error())
		return err
	}

	log.SetFlags(0)
	debugtree.Print("inspect", wiringTree(configPath, cfg))
	return nil
}

// parseID parses a vendor or product ID from string (supports hex with 0x prefix or decimal)
func parseID(s string) (uint16, error) {
	s = strings.TrimSpace(s)

	var val uint64
	var err error

	if strings.HasPrefix(strings.ToLower(s), "0x") {
		val, err = strconv.ParseUint(s[2:], 16, 16)
	} else {
		val, err = strconv.ParseUint(s, 10, 16)
	}

	if err != nil {
		return 0, err
	}

	return uint16(val), nil
}

// selectDevice displays an interactive device selection menu using huh
func selectDevice() (*ui.DeviceInfo, error) {
	devices, err := hid.ListDevices()
	if err != nil {
		return nil, fmt.Errorf("failed to list devices: %w", err)
	}

	if len(devices) == 0 {
		return nil, fmt.Errorf("no HID devices found")
	}

	var unique []ui.DeviceInfo
	for _, d := range hid.Unique(devices) {
		unique = append(unique, toUIDevice(d))
	}

	if len(unique) == 0 {
		return nil, fmt.Errorf("no identifiable HID devices found")
	}

	return ui.SelectDevice(unique)
}
