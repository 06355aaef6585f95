package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pleimann/swipepad/internal/utils"
)

// Command describes a subcommand for the usage screen
type Command struct {
	Name  string
	Use   string
	Short string
}

// Example is a sample invocation shown under Examples
type Example struct {
	Cmd  string
	Desc string
}

var commandStyle = lipgloss.NewStyle().
	Foreground(ColorSecondary).
	Bold(true)

// PrintUsage displays the styled help text for the root command. flags
// is the pre-formatted flag table.
func PrintUsage(version string, commands []Command, flags string) {
	printBanner(version, ColorMuted)
	fmt.Println(Muted("Touch gesture middleware for TUI applications"))
	fmt.Println()

	usage := []string{utils.ExecutableName() + " [flags]    Run the middleware"}
	for _, c := range commands {
		usage = append(usage, fmt.Sprintf("%s %s", utils.ExecutableName(), c.Use))
	}
	printSection("Usage", usage)

	if flags != "" {
		fmt.Println(Bold("Flags"))
		fmt.Print(flags)
		fmt.Println()
	}

	if len(commands) > 0 {
		fmt.Println(Bold("Commands"))
		for _, c := range commands {
			fmt.Printf("  %s\n", commandStyle.Render(c.Name))
			fmt.Printf("      %s\n", c.Short)
		}
		fmt.Println()
	}

	exe := utils.ExecutableName()
	printExamples([]Example{
		{exe, "Run with default config.yaml"},
		{exe + " --config my.yaml", "Run with custom config file"},
		{exe + " monitor", "Print gestures without starting the TUI"},
		{exe + " inspect", "Show how input reaches the TUI"},
		{exe + " set-device 0x1234 0x5678", "Set digitizer by vendor/product ID"},
	})
}

// PrintCommandUsage displays the styled help text for a subcommand.
// example holds one "command  description" pair per line.
func PrintCommandUsage(use, long, flags, example string) {
	fmt.Println(Bold("Usage:"), utils.ExecutableName()+" "+use)
	fmt.Println()
	for _, line := range strings.Split(strings.TrimSpace(long), "\n") {
		fmt.Println(line)
	}
	fmt.Println()

	if flags != "" {
		fmt.Println(Bold("Options"))
		fmt.Print(flags)
		fmt.Println()
	}

	printExamples(ParseExamples(example))
}

// ParseExamples splits "cmd  desc" lines on the first run of two or
// more spaces
func ParseExamples(s string) []Example {
	var examples []Example
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		cmd, desc, _ := strings.Cut(line, "  ")
		examples = append(examples, Example{
			Cmd:  strings.TrimSpace(cmd),
			Desc: strings.TrimSpace(desc),
		})
	}
	return examples
}

func printBanner(version string, versionColor lipgloss.Color) {
	banner := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		Render(utils.ExecutableName())

	versionTag := lipgloss.NewStyle().
		Foreground(versionColor).
		Render("v" + version)

	fmt.Printf("%s %s\n", banner, versionTag)
}

func printSection(title string, items []string) {
	fmt.Println(Bold(title))
	for _, item := range items {
		fmt.Printf("  %s\n", item)
	}
	fmt.Println()
}

func printExamples(examples []Example) {
	if len(examples) == 0 {
		return
	}
	fmt.Println(Bold("Examples"))

	cmdStyle := lipgloss.NewStyle().
		Foreground(ColorSecondary)

	maxLen := 0
	for _, ex := range examples {
		maxLen = max(maxLen, len(ex.Cmd))
	}

	for _, ex := range examples {
		padding := strings.Repeat(" ", maxLen-len(ex.Cmd)+2)
		fmt.Printf("  %s%s%s\n", cmdStyle.Render(ex.Cmd), padding, Muted(ex.Desc))
	}
	fmt.Println()
}

// PrintVersion displays the styled version information
func PrintVersion(version string) {
	printBanner(version, ColorSuccess)
}

// PrintError displays a styled error message
func PrintError(message string) {
	fmt.Println(Error(message))
}

// PrintFatalError displays a styled fatal error message with context
func PrintFatalError(context, message string) {
	fmt.Println()
	fmt.Println(Error(context))
	fmt.Printf("  %s\n", Muted(message))
	fmt.Println()
}
