package gesture

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// Point is a position in screen pixels, Y growing downward
type Point struct {
	X float64
	Y float64
}

// Sample is a single pointer position captured at a moment in time
type Sample struct {
	Point
	Time time.Time
}

// NewSample creates a sample at (x, y) taken at t
func NewSample(x, y float64, t time.Time) Sample {
	return Sample{Point: Point{X: x, Y: y}, Time: t}
}

// Direction is one of 12 sectors of 30 degrees each. Sector 0 points
// straight down the screen and numbering runs counter-clockwise, so 3 is
// right, 6 is up and 9 is left.
type Direction int

const (
	DirectionDown  Direction = 0
	DirectionRight Direction = 3
	DirectionUp    Direction = 6
	DirectionLeft  Direction = 9

	// NumDirections is the number of direction sectors
	NumDirections = 12
)

var directionNames = map[Direction]string{
	DirectionDown:  "down",
	DirectionRight: "right",
	DirectionUp:    "up",
	DirectionLeft:  "left",
}

func (d Direction) String() string {
	if name, ok := directionNames[d]; ok {
		return name
	}
	return fmt.Sprintf("dir%d", int(d))
}

// Valid reports whether d is in [0, NumDirections)
func (d Direction) Valid() bool {
	return d >= 0 && d < NumDirections
}

// ParseDirection accepts a cardinal name or a sector number
func ParseDirection(s string) (Direction, error) {
	for d, name := range directionNames {
		if name == s {
			return d, nil
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid direction %q", s)
	}
	d := Direction(n)
	if !d.Valid() {
		return 0, fmt.Errorf("direction %d out of range [0,%d)", n, NumDirections)
	}
	return d, nil
}

// Distance returns the euclidean distance between two points
func Distance(p1, p2 Point) float64 {
	return math.Hypot(p2.X-p1.X, p2.Y-p1.Y)
}

// sectorBounds are the upper angle limits, in degrees, of sectors 0..6
// on the right half-plane.
var sectorBounds = [...]float64{-75, -45, -15, 15, 45, 75, 90}

// DirectionOf classifies the movement from start to end into a sector.
// A zero horizontal or vertical delta is replaced with 1 before the
// angle is taken, which nudges exact-axis moves into the neighbouring
// sector and puts a zero-length move in sector 5.
func DirectionOf(start, end Point) Direction {
	dx := end.X - start.X
	dy := -(end.Y - start.Y)

	if dx == 0 {
		dx = 1
	}
	if dy == 0 {
		dy = 1
	}

	degree := math.Atan(dy/dx) * 180 / math.Pi

	var sector Direction
	for i, bound := range sectorBounds {
		if degree < bound {
			sector = Direction(i)
			break
		}
	}

	if dx < 0 {
		sector = (sector + 6) % NumDirections
	}
	return sector
}
