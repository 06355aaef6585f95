// Package units converts between density-independent lengths and
// physical pixels for a single display.
package units

// Converter translates dp to px using a fixed device density.
type Converter struct {
	density float64
}

// NewConverter creates a converter for the given density factor.
// A non-positive density is treated as 1 (mdpi).
func NewConverter(density float64) Converter {
	if density <= 0 {
		density = 1
	}
	return Converter{density: density}
}

// Density returns the density factor in use
func (c Converter) Density() float64 {
	if c.density == 0 {
		return 1
	}
	return c.density
}

// DpToPx converts density-independent units to pixels
func (c Converter) DpToPx(dp float64) float64 {
	return dp * c.Density()
}

// PxToDp converts pixels to density-independent units
func (c Converter) PxToDp(px float64) float64 {
	return px / c.Density()
}
