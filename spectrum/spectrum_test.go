package spectrum_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/astrokit/spectra/spectrum"
	"github.com/astrokit/spectra/units"
)

// mustSpec builds a micron/FLAM spectrum or fails the test.
func mustSpec(t *testing.T, wave, flux []float64, opts ...spectrum.Option) *spectrum.Spectrum {
	t.Helper()
	s, err := spectrum.New(wave, flux, units.Micron, units.FLAM, opts...)
	require.NoError(t, err)
	return s
}

// tophat is a flat test bandpass over [min, max] micron.
type tophat struct {
	name     string
	min, max float64
	zp       float64
}

func (b tophat) Name() string              { return b.name }
func (b tophat) WaveUnit() units.Unit      { return units.Micron }
func (b tophat) Range() (float64, float64) { return b.min, b.max }
func (b tophat) ZeroPoint() units.Quantity { return units.New(b.zp, units.FLAM) }

func (b tophat) Evaluate(wave []float64) []float64 {
	out := make([]float64, len(wave))
	for i, w := range wave {
		if w >= b.min && w <= b.max {
			out[i] = 1
		}
	}
	return out
}

func TestNewValidation(t *testing.T) {
	wave := []float64{1, 2, 3}
	flux := []float64{1, 1, 1}

	for _, tc := range []struct {
		name string
		call func() (*spectrum.Spectrum, error)
		want error
	}{
		{
			"length mismatch",
			func() (*spectrum.Spectrum, error) {
				return spectrum.New(wave, []float64{1, 1}, units.Micron, units.FLAM)
			},
			spectrum.ErrShape,
		},
		{
			"too short",
			func() (*spectrum.Spectrum, error) {
				return spectrum.New([]float64{1}, []float64{1}, units.Micron, units.FLAM)
			},
			spectrum.ErrShape,
		},
		{
			"uncertainty length mismatch",
			func() (*spectrum.Spectrum, error) {
				return spectrum.New(wave, flux, units.Micron, units.FLAM,
					spectrum.WithUncertainty([]float64{1}))
			},
			spectrum.ErrShape,
		},
		{
			"wrong wavelength unit",
			func() (*spectrum.Spectrum, error) {
				return spectrum.New(wave, flux, units.Parsec, units.FLAM)
			},
			units.ErrUnit,
		},
		{
			"wrong flux unit",
			func() (*spectrum.Spectrum, error) {
				return spectrum.New(wave, flux, units.Micron, units.Kelvin)
			},
			units.ErrUnit,
		},
		{
			"duplicate wavelength",
			func() (*spectrum.Spectrum, error) {
				return spectrum.New([]float64{1, 1, 2}, flux, units.Micron, units.FLAM)
			},
			spectrum.ErrOrdering,
		},
		{
			"decreasing wavelength",
			func() (*spectrum.Spectrum, error) {
				return spectrum.New([]float64{3, 2, 1}, flux, units.Micron, units.FLAM)
			},
			spectrum.ErrOrdering,
		},
		{
			"non-finite wavelength",
			func() (*spectrum.Spectrum, error) {
				return spectrum.New([]float64{1, math.NaN(), 3}, flux, units.Micron, units.FLAM)
			},
			spectrum.ErrOrdering,
		},
		{
			"non-positive wavelength",
			func() (*spectrum.Spectrum, error) {
				return spectrum.New([]float64{0, 1, 2}, flux, units.Micron, units.FLAM)
			},
			spectrum.ErrOrdering,
		},
		{
			"negative uncertainty",
			func() (*spectrum.Spectrum, error) {
				return spectrum.New(wave, flux, units.Micron, units.FLAM,
					spectrum.WithUncertainty([]float64{1, -1, 1}))
			},
			spectrum.ErrDomain,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.call()
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestNewCopiesInputs(t *testing.T) {
	wave := []float64{1, 2, 3}
	flux := []float64{1, 2, 1}
	s := mustSpec(t, wave, flux)

	wave[0] = 99
	flux[0] = 99
	require.Equal(t, 1.0, s.Wavelength()[0])
	require.Equal(t, 1.0, s.Flux()[0])

	// Accessors return copies too.
	s.Flux()[1] = 99
	require.Equal(t, 2.0, s.Flux()[1])
}

func TestDerivedFields(t *testing.T) {
	s := mustSpec(t, []float64{1, 1.5, 2}, []float64{1, 2, 1},
		spectrum.WithName("target"), spectrum.WithReference("test suite"))

	require.Equal(t, 3, s.Size())
	require.Equal(t, 1.0, s.WaveMin())
	require.Equal(t, 2.0, s.WaveMax())
	require.Equal(t, "target", s.Name())
	require.Equal(t, "test suite", s.Reference())
	require.False(t, s.HasUncertainty())
	require.Nil(t, s.Uncertainty())

	s.SetName("renamed")
	require.Equal(t, "renamed", s.Name())
}

func TestToConvertsBothAxes(t *testing.T) {
	s := mustSpec(t, []float64{1, 2}, []float64{0.5, 0.5})

	out, err := s.To(units.Angstrom, units.WattPerM2Micron)
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{1e4, 2e4}, out.Wavelength(), 1e-9)
	require.InDeltaSlice(t, []float64{5, 5}, out.Flux(), 1e-9)
	require.Equal(t, units.Angstrom, out.WaveUnit())

	// Integrated energy agrees across the conversion.
	a, _, err := s.Integrate()
	require.NoError(t, err)
	b, _, err := out.Integrate()
	require.NoError(t, err)
	fa, err := units.Factor(b.Unit, a.Unit)
	require.NoError(t, err)
	require.InDelta(t, a.Value, b.Value*fa, 1e-9*a.Value)

	_, err = s.To(units.Parsec, units.FLAM)
	require.ErrorIs(t, err, units.ErrUnit)
}

func TestScale(t *testing.T) {
	s := mustSpec(t, []float64{1, 2}, []float64{3, 4},
		spectrum.WithUncertainty([]float64{0.3, 0.4}))

	out, err := s.Scale(2)
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{6, 8}, out.Flux(), 1e-12)
	require.InDeltaSlice(t, []float64{0.6, 0.8}, out.Uncertainty(), 1e-12)

	// Receiver untouched.
	require.InDeltaSlice(t, []float64{3, 4}, s.Flux(), 1e-12)

	_, err = s.Scale(math.NaN())
	require.ErrorIs(t, err, spectrum.ErrParameter)
}

func TestExport(t *testing.T) {
	s := mustSpec(t, []float64{1, 2}, []float64{3, 4},
		spectrum.WithUncertainty([]float64{0.1, 0.2}), spectrum.WithName("exported"))

	d := s.Export()
	require.Equal(t, []float64{1, 2}, d.Wavelength)
	require.Equal(t, []float64{3, 4}, d.Flux)
	require.Equal(t, []float64{0.1, 0.2}, d.Uncertainty)
	require.Equal(t, units.Micron, d.WaveUnit)
	require.Equal(t, units.FLAM, d.FluxUnit)
	require.Equal(t, "exported", d.Name)

	// Export is a copy, not a view.
	d.Flux[0] = 99
	require.Equal(t, 3.0, s.Flux()[0])
}
