package spectrum

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/astrokit/spectra/units"
)

// Spectrum is an immutable 1D spectrum: parallel wavelength, flux density,
// and optional uncertainty arrays plus unit metadata and identity.
type Spectrum struct {
	wave []float64
	flux []float64
	unc  []float64 // nil when uncertainty is unknown

	waveUnit units.Unit
	fluxUnit units.Unit

	name      string
	reference string
}

// Option configures optional construction attributes.
type Option func(*Spectrum)

// WithUncertainty attaches per-point flux uncertainties (same unit as flux).
func WithUncertainty(unc []float64) Option {
	return func(s *Spectrum) {
		s.unc = append([]float64(nil), unc...)
	}
}

// WithName sets the spectrum name.
func WithName(name string) Option {
	return func(s *Spectrum) {
		s.name = name
	}
}

// WithReference sets free-text provenance.
func WithReference(ref string) Option {
	return func(s *Spectrum) {
		s.reference = ref
	}
}

// New constructs a Spectrum from parallel wavelength and flux arrays.
// Inputs are copied, never aliased, so later changes to the arguments
// cannot reach the spectrum or any spectrum derived from it.
func New(wave, flux []float64, waveUnit, fluxUnit units.Unit, opts ...Option) (*Spectrum, error) {
	if waveUnit.Dim != units.Wavelength {
		return nil, fmt.Errorf("%w: %s is not a wavelength unit", units.ErrUnit, waveUnit)
	}
	if fluxUnit.Dim != units.FluxDensity {
		return nil, fmt.Errorf("%w: %s is not a spectral flux density unit", units.ErrUnit, fluxUnit)
	}
	if len(wave) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 points, got %d", ErrShape, len(wave))
	}
	if len(flux) != len(wave) {
		return nil, fmt.Errorf("%w: %d wavelengths vs %d fluxes", ErrShape, len(wave), len(flux))
	}

	s := &Spectrum{
		wave:     append([]float64(nil), wave...),
		flux:     append([]float64(nil), flux...),
		waveUnit: waveUnit,
		fluxUnit: fluxUnit,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	if s.unc != nil && len(s.unc) != len(wave) {
		return nil, fmt.Errorf("%w: %d wavelengths vs %d uncertainties", ErrShape, len(wave), len(s.unc))
	}
	if err := validateGrid(s.wave); err != nil {
		return nil, err
	}
	for i, u := range s.unc {
		if u < 0 {
			return nil, fmt.Errorf("%w: negative uncertainty %g at index %d", ErrDomain, u, i)
		}
	}
	return s, nil
}

// validateGrid rejects wavelength arrays that are not finite, positive,
// and strictly increasing.
func validateGrid(wave []float64) error {
	for i, w := range wave {
		if math.IsNaN(w) || math.IsInf(w, 0) || w <= 0 {
			return fmt.Errorf("%w: value %g at index %d", ErrOrdering, w, i)
		}
		if i > 0 && w <= wave[i-1] {
			return fmt.Errorf("%w: %g after %g at index %d", ErrOrdering, w, wave[i-1], i)
		}
	}
	return nil
}

// derive builds a Spectrum from slices this package already owns,
// carrying over unit and identity metadata from s.
func (s *Spectrum) derive(wave, flux, unc []float64) *Spectrum {
	return &Spectrum{
		wave:      wave,
		flux:      flux,
		unc:       unc,
		waveUnit:  s.waveUnit,
		fluxUnit:  s.fluxUnit,
		name:      s.name,
		reference: s.reference,
	}
}

// Size returns the number of points.
func (s *Spectrum) Size() int { return len(s.wave) }

// WaveMin returns the first (smallest) wavelength.
func (s *Spectrum) WaveMin() float64 { return s.wave[0] }

// WaveMax returns the last (largest) wavelength.
func (s *Spectrum) WaveMax() float64 { return s.wave[len(s.wave)-1] }

// WaveUnit returns the wavelength unit.
func (s *Spectrum) WaveUnit() units.Unit { return s.waveUnit }

// FluxUnit returns the flux density unit.
func (s *Spectrum) FluxUnit() units.Unit { return s.fluxUnit }

// Name returns the spectrum name.
func (s *Spectrum) Name() string { return s.name }

// SetName renames the spectrum. Identity is the only mutable attribute.
func (s *Spectrum) SetName(name string) { s.name = name }

// Reference returns free-text provenance.
func (s *Spectrum) Reference() string { return s.reference }

// Wavelength returns a copy of the wavelength array.
func (s *Spectrum) Wavelength() []float64 {
	return append([]float64(nil), s.wave...)
}

// Flux returns a copy of the flux array.
func (s *Spectrum) Flux() []float64 {
	return append([]float64(nil), s.flux...)
}

// Uncertainty returns a copy of the uncertainty array, or nil if unknown.
func (s *Spectrum) Uncertainty() []float64 {
	if s.unc == nil {
		return nil
	}
	return append([]float64(nil), s.unc...)
}

// HasUncertainty reports whether per-point uncertainties are known.
func (s *Spectrum) HasUncertainty() bool { return s.unc != nil }

// Data is the pure export form consumed by serialization layers.
type Data struct {
	Wavelength  []float64
	Flux        []float64
	Uncertainty []float64 // nil when unknown
	WaveUnit    units.Unit
	FluxUnit    units.Unit
	Name        string
	Reference   string
}

// Export returns the three parallel arrays plus units as copies.
func (s *Spectrum) Export() Data {
	return Data{
		Wavelength:  s.Wavelength(),
		Flux:        s.Flux(),
		Uncertainty: s.Uncertainty(),
		WaveUnit:    s.waveUnit,
		FluxUnit:    s.fluxUnit,
		Name:        s.name,
		Reference:   s.reference,
	}
}

// To converts the spectrum to new wavelength and flux density units.
// Both axes convert by their family tables; the per-wavelength base of the
// flux unit keeps integrated energy consistent across the conversion.
func (s *Spectrum) To(waveUnit, fluxUnit units.Unit) (*Spectrum, error) {
	wf, err := units.Factor(s.waveUnit, waveUnit)
	if err != nil {
		return nil, err
	}
	ff, err := units.Factor(s.fluxUnit, fluxUnit)
	if err != nil {
		return nil, err
	}
	if waveUnit.Dim != units.Wavelength || fluxUnit.Dim != units.FluxDensity {
		return nil, fmt.Errorf("%w: need wavelength and flux density units", units.ErrUnit)
	}

	wave := make([]float64, len(s.wave))
	flux := make([]float64, len(s.flux))
	vecmath.ScaleBlock(wave, s.wave, wf)
	vecmath.ScaleBlock(flux, s.flux, ff)

	var unc []float64
	if s.unc != nil {
		unc = make([]float64, len(s.unc))
		vecmath.ScaleBlock(unc, s.unc, ff)
	}

	out := s.derive(wave, flux, unc)
	out.waveUnit = waveUnit
	out.fluxUnit = fluxUnit
	return out, nil
}

// Scale returns the spectrum multiplied by a dimensionless factor,
// applied to both flux and uncertainty.
func (s *Spectrum) Scale(factor float64) (*Spectrum, error) {
	if math.IsNaN(factor) || math.IsInf(factor, 0) {
		return nil, fmt.Errorf("%w: scale factor %g", ErrParameter, factor)
	}

	flux := make([]float64, len(s.flux))
	vecmath.ScaleBlock(flux, s.flux, factor)

	var unc []float64
	if s.unc != nil {
		unc = make([]float64, len(s.unc))
		vecmath.ScaleBlock(unc, s.unc, math.Abs(factor))
	}
	return s.derive(append([]float64(nil), s.wave...), flux, unc), nil
}

// variance returns sigma^2 at index i, or NaN when unknown.
func (s *Spectrum) variance(i int) float64 {
	if s.unc == nil {
		return math.NaN()
	}
	return s.unc[i] * s.unc[i]
}
