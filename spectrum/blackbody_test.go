package spectrum_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/astrokit/spectra/spectrum"
	"github.com/astrokit/spectra/units"
)

func TestFromBlackbodyWienPeak(t *testing.T) {
	// Wien's displacement law: lambda_max = 2897.77 um K / T.
	const temp = 5000.0
	wave := make([]float64, 2001)
	for i := range wave {
		wave[i] = 0.1 + 0.001*float64(i)
	}

	s, err := spectrum.FromBlackbody(wave, units.Micron, units.New(temp, units.Kelvin))
	require.NoError(t, err)

	flux := s.Flux()
	best := 0
	for i, f := range flux {
		if f > flux[best] {
			best = i
		}
	}
	require.InDelta(t, 2897.77/temp, wave[best], 2e-3)

	// Hotter body is brighter everywhere.
	hot, err := spectrum.FromBlackbody(wave, units.Micron, units.New(temp+1000, units.Kelvin))
	require.NoError(t, err)
	for i, f := range hot.Flux() {
		require.Greater(t, f, flux[i])
	}
}

func TestFromBlackbodyUnitsAndValidation(t *testing.T) {
	wave := []float64{10000, 20000}
	s, err := spectrum.FromBlackbody(wave, units.Angstrom, units.New(3000, units.Kelvin))
	require.NoError(t, err)
	require.Equal(t, units.FLAM, s.FluxUnit())
	require.Equal(t, units.Angstrom, s.WaveUnit())
	require.Equal(t, "blackbody 3000K", s.Name())

	// Temperature in any unit of the wrong family is rejected.
	_, err = spectrum.FromBlackbody(wave, units.Angstrom, units.New(3000, units.Parsec))
	require.ErrorIs(t, err, units.ErrUnit)
	_, err = spectrum.FromBlackbody(wave, units.Angstrom, units.New(-10, units.Kelvin))
	require.ErrorIs(t, err, units.ErrUnit)
}

func TestReferenceRegistry(t *testing.T) {
	vega := mustSpec(t, []float64{1, 2}, []float64{1, 1})
	require.NoError(t, spectrum.RegisterReference("vega-test", vega))

	got, err := spectrum.FromReference("vega-test")
	require.NoError(t, err)
	require.Same(t, vega, got)
	require.Contains(t, spectrum.References(), "vega-test")

	_, err = spectrum.FromReference("no-such-standard")
	require.ErrorIs(t, err, spectrum.ErrParameter)

	err = spectrum.RegisterReference("", vega)
	require.ErrorIs(t, err, spectrum.ErrParameter)
	err = spectrum.RegisterReference("x", nil)
	require.ErrorIs(t, err, spectrum.ErrParameter)
}
