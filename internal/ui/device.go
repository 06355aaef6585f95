package ui

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// DeviceInfo contains information about a HID device for display
type DeviceInfo struct {
	VendorID     uint16
	ProductID    uint16
	Manufacturer string
	Product      string
	Digitizer    bool
}

// deviceSelectModel wraps huh form in Bubble Tea for proper escape handling
type deviceSelectModel struct {
	form     *huh.Form
	devices  []DeviceInfo
	selected int
	aborted  bool
}

func (m deviceSelectModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m deviceSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			m.aborted = true
			return m, tea.Quit
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, tea.Quit
	}

	return m, cmd
}

func (m deviceSelectModel) View() string {
	if m.form.State == huh.StateCompleted {
		return ""
	}
	return m.form.View()
}

// Interactive reports whether stdin and stdout are both terminals
func Interactive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// SelectDevice presents an interactive device selection using huh with Bubble Tea
func SelectDevice(devices []DeviceInfo) (*DeviceInfo, error) {
	if len(devices) == 0 {
		return nil, fmt.Errorf("no devices to select from")
	}
	if !Interactive() {
		return nil, fmt.Errorf("interactive selection needs a terminal; pass vendor_id and product_id instead")
	}

	options := make([]huh.Option[int], len(devices))
	for i, d := range devices {
		name := formatDeviceName(d)
		label := fmt.Sprintf("%s  %s",
			DeviceIDStyle.Render(fmt.Sprintf("0x%04X:0x%04X", d.VendorID, d.ProductID)),
			name,
		)
		options[i] = huh.NewOption(label, i)
	}

	var selectedIndex int

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Select HID Device").
				Description("Choose the touch digitizer to configure (esc to cancel)").
				Options(options...).
				Value(&selectedIndex),
		),
	).WithTheme(customTheme()).WithShowHelp(false)

	model := deviceSelectModel{
		form:    form,
		devices: devices,
	}

	p := tea.NewProgram(model)
	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	m := finalModel.(deviceSelectModel)
	if m.aborted {
		return nil, nil // User cancelled
	}

	return &devices[selectedIndex], nil
}

// formatDeviceName creates a readable name for the device
func formatDeviceName(d DeviceInfo) string {
	name := d.Product
	if name == "" {
		name = "Unknown Device"
	}
	if d.Manufacturer != "" {
		name = d.Manufacturer + " " + name
	}
	return name
}

// PrintDeviceList displays a styled list of HID devices
func PrintDeviceList(devices []DeviceInfo) {
	if len(devices) == 0 {
		fmt.Println(Warning("No HID devices found"))
		return
	}

	fmt.Println()
	fmt.Println(Title("HID Devices"))
	digitizers := 0
	for _, d := range devices {
		if d.Digitizer {
			digitizers++
		}
	}
	fmt.Println(Muted(fmt.Sprintf("Found %d interface(s), %d digitizer", len(devices), digitizers)))
	fmt.Println()

	for _, d := range devices {
		printDevice(d)
	}
	fmt.Println()
}

func printDevice(d DeviceInfo) {
	idLine := DeviceIDStyle.Render(fmt.Sprintf("  0x%04X:0x%04X", d.VendorID, d.ProductID))

	name := d.Product
	if name == "" {
		name = "Unknown Device"
	}

	var details []string
	details = append(details, DeviceNameStyle.Render(name))
	if d.Manufacturer != "" {
		details = append(details, DeviceManufacturerStyle.Render("by "+d.Manufacturer))
	}
	if d.Digitizer {
		details = append(details, DigitizerTagStyle.Render("[digitizer]"))
	}

	fmt.Printf("%s  %s\n", idLine, strings.Join(details, " "))
}

// PrintDeviceSaved shows a success message after writing the device to
// the config. created is true when the config file was new.
func PrintDeviceSaved(configPath string, vendorID, productID uint16, created bool) {
	msg := "Device configuration updated"
	if created {
		msg = "Device configuration created"
	}
	fmt.Println()
	fmt.Println(Success(msg))
	fmt.Println()
	fmt.Printf("  %s %s\n", Muted("Config:"), configPath)
	fmt.Printf("  %s %s\n", Muted("Device:"), DeviceIDStyle.Render(fmt.Sprintf("0x%04X:0x%04X", vendorID, productID)))
	fmt.Println()
}

// customTheme returns a custom huh theme matching our style palette
func customTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = t.Focused.Title.Foreground(ColorPrimary).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(ColorMuted)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(ColorPrimary)
	t.Focused.UnselectedOption = t.Focused.UnselectedOption.Foreground(ColorText)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(ColorPrimary)

	return t
}
