package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConverterRoundTrip(t *testing.T) {
	c := NewConverter(2.75)

	assert.InDelta(t, 41.25, c.DpToPx(15), 1e-9)
	assert.InDelta(t, 15.0, c.PxToDp(41.25), 1e-9)
}

func TestConverterDefaultsDensity(t *testing.T) {
	tests := []struct {
		name    string
		density float64
	}{
		{"zero", 0},
		{"negative", -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewConverter(tt.density)
			assert.Equal(t, 1.0, c.Density())
			assert.Equal(t, 15.0, c.DpToPx(15))
		})
	}

	var zero Converter
	assert.Equal(t, 10.0, zero.PxToDp(10))
}
