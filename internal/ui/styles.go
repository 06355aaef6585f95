package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/pleimann/swipepad/internal/gesture"
)

// Color palette
var (
	ColorPrimary   = lipgloss.Color("#0EA5E9") // Sky
	ColorSecondary = lipgloss.Color("#6366F1") // Indigo
	ColorSuccess   = lipgloss.Color("#10B981") // Green
	ColorWarning   = lipgloss.Color("#F59E0B") // Amber
	ColorError     = lipgloss.Color("#EF4444") // Red
	ColorMuted     = lipgloss.Color("#6B7280") // Gray
	ColorSubtle    = lipgloss.Color("#9CA3AF") // Light gray
	ColorText      = lipgloss.Color("#F9FAFB")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorError)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	BoldStyle = lipgloss.NewStyle().
			Bold(true)

	// HeaderBoxStyle frames the monitor settings
	HeaderBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(0, 1)
)

// Device listing styles
var (
	DeviceIDStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Bold(true)

	DeviceNameStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	DeviceManufacturerStyle = lipgloss.NewStyle().
				Foreground(ColorMuted)

	DigitizerTagStyle = lipgloss.NewStyle().
				Foreground(ColorSuccess)
)

// Monitor styles
var (
	DirectionStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	TimestampStyle = lipgloss.NewStyle().
			Foreground(ColorSubtle)
)

// gestureColors groups the terminal gestures by how they end
var gestureColors = map[gesture.GestureType]lipgloss.Color{
	gesture.GestureTap:            ColorPrimary,
	gesture.GestureLongPress:      ColorWarning,
	gesture.GestureLongPressTap:   ColorWarning,
	gesture.GestureSwipe:          ColorSecondary,
	gesture.GestureLongPressSwipe: ColorSecondary,
	gesture.GestureMove:           ColorSubtle,
	gesture.GestureLongPressMove:  ColorSubtle,
}

// GestureStyle returns the label style for a gesture type
func GestureStyle(t gesture.GestureType) lipgloss.Style {
	c, ok := gestureColors[t]
	if !ok {
		c = ColorText
	}
	return lipgloss.NewStyle().Foreground(c).Bold(true)
}

// Title renders a styled title
func Title(text string) string {
	return TitleStyle.Render(text)
}

// Subtitle renders a styled subtitle
func Subtitle(text string) string {
	return SubtitleStyle.Render(text)
}

// Success renders success text with a checkmark
func Success(text string) string {
	return SuccessStyle.Render("✓ " + text)
}

// Warning renders warning text
func Warning(text string) string {
	return WarningStyle.Render("⚠ " + text)
}

// Error renders error text
func Error(text string) string {
	return ErrorStyle.Render("✗ " + text)
}

// Muted renders muted/dimmed text
func Muted(text string) string {
	return MutedStyle.Render(text)
}

// Bold renders bold text
func Bold(text string) string {
	return BoldStyle.Render(text)
}
