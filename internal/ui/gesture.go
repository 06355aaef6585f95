package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/pleimann/swipepad/internal/gesture"
)

// FormatGesture renders one monitor line for g. axes lists the swipe
// axes the travel qualifies for, if any.
func FormatGesture(g gesture.Gesture, axes []string) string {
	var sb strings.Builder

	sb.WriteString(TimestampStyle.Render(g.End.Time.Format("15:04:05.000")))
	sb.WriteString("  ")
	sb.WriteString(GestureStyle(g.Type).Render(fmt.Sprintf("%-16s", g.Type)))

	if g.Type.Directional() {
		sb.WriteString(DirectionStyle.Render(fmt.Sprintf("%-6s", g.Direction)))
		fmt.Fprintf(&sb, " %s", Muted(fmt.Sprintf("(%.0f,%.0f)→(%.0f,%.0f) %.0fpx",
			g.Start.X, g.Start.Y, g.End.X, g.End.Y, gesture.Distance(g.Start.Point, g.End.Point))))
		if len(axes) > 0 {
			fmt.Fprintf(&sb, " %s", Subtitle(strings.Join(axes, ",")))
		}
	} else {
		fmt.Fprintf(&sb, "%s", Muted(fmt.Sprintf("(%.0f,%.0f)", g.End.X, g.End.Y)))
	}

	if held := g.End.Time.Sub(g.Start.Time); held > 0 {
		fmt.Fprintf(&sb, " %s", Muted(held.Round(time.Millisecond).String()))
	}

	return sb.String()
}

// PrintGesture prints one monitor line
func PrintGesture(g gesture.Gesture, axes []string) {
	fmt.Println(FormatGesture(g, axes))
}

// PrintMonitorHeader prints the detector settings monitor runs with
func PrintMonitorHeader(source string, threshold time.Duration, minMove, minSwipe float64) {
	lines := []string{
		Title("Gesture monitor"),
		fmt.Sprintf("%s %s", Muted("Input:          "), source),
		fmt.Sprintf("%s %s", Muted("Long press:     "), threshold),
		fmt.Sprintf("%s %.0fpx", Muted("Move threshold: "), minMove),
		fmt.Sprintf("%s %.0fpx", Muted("Swipe threshold:"), minSwipe),
	}
	fmt.Println()
	fmt.Println(HeaderBoxStyle.Render(strings.Join(lines, "\n")))
	fmt.Println(Muted("  ctrl+c to stop"))
	fmt.Println()
}
