package spectrum_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/astrokit/spectra/spectrum"
	"github.com/astrokit/spectra/units"
)

func TestInterpolateLinear(t *testing.T) {
	s := mustSpec(t, []float64{1, 2, 3}, []float64{10, 20, 40})

	out, err := s.Interpolate([]float64{1.5, 2, 2.5})
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{15, 20, 30}, out.Flux(), 1e-12)
}

func TestInterpolateOutsideRangeIsNaN(t *testing.T) {
	s := mustSpec(t, []float64{1, 2, 3}, []float64{10, 20, 40})

	out, err := s.Interpolate([]float64{0.5, 1.5, 3.5})
	require.NoError(t, err)
	flux := out.Flux()
	require.True(t, math.IsNaN(flux[0]), "below range must be NaN, not extrapolated")
	require.InDelta(t, 15, flux[1], 1e-12)
	require.True(t, math.IsNaN(flux[2]), "above range must be NaN, not extrapolated")
}

func TestInterpolateVariancePropagation(t *testing.T) {
	s := mustSpec(t, []float64{1, 2}, []float64{10, 20},
		spectrum.WithUncertainty([]float64{3, 4}))

	out, err := s.Interpolate([]float64{1.5, 2})
	require.NoError(t, err)
	// Variance interpolates linearly: 0.5*9 + 0.5*16 = 12.5.
	require.InDelta(t, math.Sqrt(12.5), out.Uncertainty()[0], 1e-12)
	require.InDelta(t, 4, out.Uncertainty()[1], 1e-12)
}

func TestInterpolateRejectsBadGrid(t *testing.T) {
	s := mustSpec(t, []float64{1, 2, 3}, []float64{1, 2, 3})

	_, err := s.Interpolate([]float64{2, 1})
	require.ErrorIs(t, err, spectrum.ErrOrdering)

	_, err = s.Interpolate([]float64{1.5})
	require.ErrorIs(t, err, spectrum.ErrShape)
}

func TestResampleIdentityRoundTrip(t *testing.T) {
	s := mustSpec(t,
		[]float64{1, 1.2, 1.5, 1.9, 2.4, 3},
		[]float64{1, 4, 2, 8, 5, 7},
		spectrum.WithUncertainty([]float64{0.1, 0.4, 0.2, 0.8, 0.5, 0.7}))

	out, err := s.Resample(s.Wavelength())
	require.NoError(t, err)
	require.InDeltaSlice(t, s.Flux(), out.Flux(), 1e-12)
	require.InDeltaSlice(t, s.Uncertainty(), out.Uncertainty(), 1e-12)
}

func TestResampleConservesFlux(t *testing.T) {
	wave := make([]float64, 101)
	flux := make([]float64, 101)
	for i := range wave {
		wave[i] = 1 + 0.02*float64(i)
		flux[i] = 2 + math.Sin(4*wave[i])
	}
	s := mustSpec(t, wave, flux)

	// A 4x coarser grid spanning the same range.
	coarse := make([]float64, 26)
	for i := range coarse {
		coarse[i] = 1 + 2*float64(i)/25
	}
	res, err := s.Resample(coarse)
	require.NoError(t, err)

	orig, _, err := s.Integrate()
	require.NoError(t, err)
	got, _, err := res.Integrate()
	require.NoError(t, err)
	require.InDelta(t, orig.Value, got.Value, 0.02*math.Abs(orig.Value))
}

func TestResampleCoarseBinAverages(t *testing.T) {
	// Two source bins of equal width merge into one target bin holding
	// their mean: rebinning, not point sampling.
	s := mustSpec(t, []float64{1, 2, 3, 4}, []float64{0, 10, 20, 30})

	out, err := s.Resample([]float64{1.5, 3.5})
	require.NoError(t, err)
	flux := out.Flux()
	require.InDelta(t, 5, flux[0], 1e-9)
	require.InDelta(t, 25, flux[1], 1e-9)
}

func TestResampleOutsideCoverageIsNaN(t *testing.T) {
	s := mustSpec(t, []float64{10, 11, 12}, []float64{1, 1, 1})

	out, err := s.Resample([]float64{1, 2, 10.5, 11.5})
	require.NoError(t, err)
	flux := out.Flux()
	require.True(t, math.IsNaN(flux[0]))
	require.True(t, math.IsNaN(flux[1]))
	require.InDelta(t, 1, flux[2], 1e-12)
}

func TestIntegrateTrapezoid(t *testing.T) {
	// wavelength [1, 1.5, 2] um, flux [1, 2, 1]:
	// 0.5*0.5*(1+2) + 0.5*0.5*(2+1) = 1.5 in flux unit x um.
	s := mustSpec(t, []float64{1, 1.5, 2}, []float64{1, 2, 1})

	total, sigma, err := s.Integrate()
	require.NoError(t, err)
	require.InDelta(t, 1.5, total.Value, 1e-12)
	require.Equal(t, units.IntegratedFlux, total.Unit.Dim)
	require.True(t, math.IsNaN(sigma.Value), "unknown uncertainty propagates as NaN")
}

func TestIntegrateUncertainty(t *testing.T) {
	s := mustSpec(t, []float64{1, 2, 3}, []float64{1, 1, 1},
		spectrum.WithUncertainty([]float64{1, 1, 1}))

	// Trapezoid weights are [0.5, 1, 0.5], so the variance is
	// 0.25 + 1 + 0.25 = 1.5.
	_, sigma, err := s.Integrate()
	require.NoError(t, err)
	require.InDelta(t, math.Sqrt(1.5), sigma.Value, 1e-12)
}
