package spectrum_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/astrokit/spectra/spectrum"
	"github.com/astrokit/spectra/units"
)

func TestAddDisjointConcatenates(t *testing.T) {
	a := mustSpec(t, []float64{1, 1.25, 1.5}, []float64{1, 2, 3}, spectrum.WithName("blue"))
	b := mustSpec(t, []float64{2, 2.25, 2.5}, []float64{4, 5, 6}, spectrum.WithName("red"))

	out, err := a.Add(b)
	require.NoError(t, err)
	require.Equal(t, []float64{1, 1.25, 1.5, 2, 2.25, 2.5}, out.Wavelength())
	require.Equal(t, []float64{1, 2, 3, 4, 5, 6}, out.Flux())
	require.Equal(t, "blue + red", out.Name())

	// Order of operands does not change the sorted result.
	rev, err := b.Add(a)
	require.NoError(t, err)
	require.Equal(t, out.Wavelength(), rev.Wavelength())
	require.Equal(t, out.Flux(), rev.Flux())
}

func TestAddIdenticalGridsInverseVarianceWeights(t *testing.T) {
	wave := []float64{1, 1.2, 1.4, 1.6}
	a := mustSpec(t, wave, []float64{10, 10, 10, 10},
		spectrum.WithUncertainty([]float64{1, 1, 1, 1}))
	b := mustSpec(t, wave, []float64{20, 20, 20, 20},
		spectrum.WithUncertainty([]float64{2, 2, 2, 2}))

	out, err := a.Add(b)
	require.NoError(t, err)
	require.Equal(t, wave, out.Wavelength())

	// Weights 1 and 1/4: (10 + 0.25*20) / 1.25 = 12.
	for i, f := range out.Flux() {
		require.InDelta(t, 12, f, 1e-9, "index %d", i)
	}
	// Combined error 1/sqrt(1.25).
	for _, u := range out.Uncertainty() {
		require.InDelta(t, 1/math.Sqrt(1.25), u, 1e-9)
	}
}

func TestAddEqualWeightFallback(t *testing.T) {
	wave := []float64{1, 1.2, 1.4}
	a := mustSpec(t, wave, []float64{10, 10, 10})
	b := mustSpec(t, wave, []float64{20, 20, 20})

	out, err := a.Add(b)
	require.NoError(t, err)
	for _, f := range out.Flux() {
		require.InDelta(t, 15, f, 1e-9)
	}
	require.False(t, out.HasUncertainty())
}

func TestAddConvertsUnits(t *testing.T) {
	a := mustSpec(t, []float64{1, 1.5, 2}, []float64{1, 1, 1})
	b, err := spectrum.New(
		[]float64{30000, 35000, 40000},
		[]float64{10, 10, 10}, // 1 FLAM in W m^-2 um^-1
		units.Angstrom, units.WattPerM2Micron)
	require.NoError(t, err)

	out, err := a.Add(b)
	require.NoError(t, err)
	require.Equal(t, units.Micron, out.WaveUnit())
	require.Equal(t, units.FLAM, out.FluxUnit())
	require.InDelta(t, 4.0, out.WaveMax(), 1e-9)
	for _, f := range out.Flux() {
		require.InDelta(t, 1, f, 1e-9)
	}
}

func TestAddPartialOverlapKeepsWings(t *testing.T) {
	a := mustSpec(t, []float64{1, 1.5, 2, 2.5}, []float64{1, 1, 1, 1})
	b := mustSpec(t, []float64{2, 2.5, 3, 3.5}, []float64{3, 3, 3, 3})

	out, err := a.Add(b)
	require.NoError(t, err)

	wave := out.Wavelength()
	flux := out.Flux()
	require.Equal(t, 1.0, wave[0])
	require.Equal(t, 3.5, wave[len(wave)-1])
	// Left wing is a's flux alone, right wing is b's.
	require.InDelta(t, 1, flux[0], 1e-9)
	require.InDelta(t, 3, flux[len(flux)-1], 1e-9)
	// The shared samples blend to the midpoint.
	i := -1
	for k, w := range wave {
		if w == 2 {
			i = k
			break
		}
	}
	require.GreaterOrEqual(t, i, 0)
	require.InDelta(t, 2, flux[i], 1e-9)
}
