package gesture

import (
	"math"

	"github.com/pleimann/swipepad/internal/units"
)

const (
	// MinSwipeDp is the straight-line travel a swipe must exceed
	MinSwipeDp = 15.0

	horizontalSwipeMaxDeg = 30.0
	verticalSwipeMinDeg   = 60.0
)

// SwipeTester answers standalone "was this a swipe in direction X"
// questions about two points. It holds no session state.
type SwipeTester struct {
	minDistance float64
}

// NewSwipeTester creates a tester whose minimum travel is MinSwipeDp
// converted to pixels with conv.
func NewSwipeTester(conv units.Converter) SwipeTester {
	return SwipeTester{minDistance: conv.DpToPx(MinSwipeDp)}
}

// MinDistance returns the minimum travel in pixels
func (s SwipeTester) MinDistance() float64 {
	return s.minDistance
}

// Right reports a rightward swipe within 30 degrees of horizontal
func (s SwipeTester) Right(start, end Point) bool {
	if end.X <= start.X {
		return false
	}
	return s.horizontal(start, end)
}

// Left reports a leftward swipe within 30 degrees of horizontal
func (s SwipeTester) Left(start, end Point) bool {
	if end.X >= start.X {
		return false
	}
	return s.horizontal(start, end)
}

// Up reports an upward swipe within 30 degrees of vertical
func (s SwipeTester) Up(start, end Point) bool {
	if end.Y >= start.Y {
		return false
	}
	return s.vertical(start, end)
}

// Down reports a downward swipe within 30 degrees of vertical
func (s SwipeTester) Down(start, end Point) bool {
	if end.Y <= start.Y {
		return false
	}
	return s.vertical(start, end)
}

func (s SwipeTester) horizontal(start, end Point) bool {
	return axisAngle(start, end) <= horizontalSwipeMaxDeg && Distance(start, end) > s.minDistance
}

func (s SwipeTester) vertical(start, end Point) bool {
	return axisAngle(start, end) > verticalSwipeMinDeg && Distance(start, end) > s.minDistance
}

// axisAngle is the angle in degrees between the travel vector and the
// horizontal axis, in [0, 90]. Callers guarantee a non-zero delta on the
// axis they test, so a zero dx yields +Inf and 90 degrees.
func axisAngle(start, end Point) float64 {
	dx := math.Abs(end.X - start.X)
	dy := math.Abs(end.Y - start.Y)
	return math.Atan(dy/dx) * 180 / math.Pi
}
