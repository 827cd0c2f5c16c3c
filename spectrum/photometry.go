package spectrum

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/astrokit/spectra/units"
)

// Bandpass is the external filter capability consumed by photometry
// operations. The core never constructs one; implementations come from a
// filter-catalog layer.
//
// Evaluate takes wavelengths in the unit reported by WaveUnit and returns
// a transmission array of the same length with values in [0, 1], zero
// outside the bandpass's native range. ZeroPoint is the flux density used
// for magnitude conversion.
type Bandpass interface {
	Name() string
	WaveUnit() units.Unit
	Range() (min, max float64)
	Evaluate(wave []float64) []float64
	ZeroPoint() units.Quantity
}

// FluxCalibrate rescales flux and uncertainty by (old/new)^2, following
// the inverse-square law for moving the source between distances. Both
// distances must be positive distance quantities.
func (s *Spectrum) FluxCalibrate(oldDist, newDist units.Quantity) (*Spectrum, error) {
	nd, err := newDist.To(oldDist.Unit)
	if err != nil {
		return nil, err
	}
	if oldDist.Unit.Dim != units.Distance {
		return nil, fmt.Errorf("%w: %s is not a distance unit", units.ErrUnit, oldDist.Unit)
	}
	if !(oldDist.Value > 0) || !(nd.Value > 0) || math.IsInf(oldDist.Value, 0) || math.IsInf(nd.Value, 0) {
		return nil, fmt.Errorf("%w: distances must be positive and finite", units.ErrUnit)
	}

	ratio := oldDist.Value / nd.Value
	return s.Scale(ratio * ratio)
}

// bandOverlap returns the index range [i, j) of samples inside the
// intersection of the spectrum's range and the bandpass's native range,
// plus the transmission evaluated there. At least two samples must fall
// in the intersection.
func (s *Spectrum) bandOverlap(b Bandpass) (i, j int, trans []float64, err error) {
	factor, err := units.Factor(b.WaveUnit(), s.waveUnit)
	if err != nil {
		return 0, 0, nil, err
	}
	bmin, bmax := b.Range()
	lo := math.Max(s.WaveMin(), bmin*factor)
	hi := math.Min(s.WaveMax(), bmax*factor)
	if lo > hi {
		return 0, 0, nil, fmt.Errorf("%w: spectrum [%g, %g] vs bandpass %s [%g, %g] %s",
			ErrNoOverlap, s.WaveMin(), s.WaveMax(), b.Name(), bmin*factor, bmax*factor, s.waveUnit)
	}

	i = 0
	for i < len(s.wave) && s.wave[i] < lo {
		i++
	}
	j = len(s.wave)
	for j > i && s.wave[j-1] > hi {
		j--
	}
	if j-i < 2 {
		return 0, 0, nil, fmt.Errorf("%w: fewer than 2 samples inside bandpass %s", ErrNoOverlap, b.Name())
	}

	native := make([]float64, j-i)
	vecmath.ScaleBlock(native, s.wave[i:j], 1/factor)
	return i, j, b.Evaluate(native), nil
}

// ConvolveFilter returns the spectrum restricted to the overlap with the
// bandpass, with flux (and uncertainty) weighted by the transmission
// curve.
func (s *Spectrum) ConvolveFilter(b Bandpass) (*Spectrum, error) {
	i, j, trans, err := s.bandOverlap(b)
	if err != nil {
		return nil, err
	}

	flux := make([]float64, j-i)
	vecmath.MulBlock(flux, s.flux[i:j], trans)

	var unc []float64
	if s.unc != nil {
		unc = make([]float64, j-i)
		vecmath.MulBlock(unc, s.unc[i:j], trans)
	}
	out := s.derive(append([]float64(nil), s.wave[i:j]...), flux, unc)
	out.name = s.name + " * " + b.Name()
	return out, nil
}

// SyntheticFlux returns the transmission-weighted mean flux density over
// the overlap region: integral of flux*r over the integral of r. The
// uncertainty applies the same weights in quadrature and is NaN when the
// spectrum carries none.
func (s *Spectrum) SyntheticFlux(b Bandpass) (flux, sigma units.Quantity, err error) {
	i, j, trans, err := s.bandOverlap(b)
	if err != nil {
		return units.Quantity{}, units.Quantity{}, err
	}

	weights := trapezoidWeights(s.wave[i:j])
	var num, den float64
	for k, r := range trans {
		num += weights[k] * r * s.flux[i+k]
		den += weights[k] * r
	}
	if den <= 0 {
		return units.Quantity{}, units.Quantity{},
			fmt.Errorf("%w: bandpass %s transmission integrates to zero over the overlap", ErrDomain, b.Name())
	}

	variance := math.NaN()
	if s.unc != nil {
		variance = 0
		for k, r := range trans {
			c := weights[k] * r / den
			variance += c * c * s.variance(i+k)
		}
	}
	return units.New(num/den, s.fluxUnit), units.New(math.Sqrt(variance), s.fluxUnit), nil
}

// SyntheticMagnitude returns -2.5*log10(SyntheticFlux / zero point) and
// the propagated magnitude uncertainty (NaN when unknown). A synthetic
// flux that is not positive fails with ErrDomain.
func (s *Spectrum) SyntheticMagnitude(b Bandpass) (mag, sigma float64, err error) {
	f, fsig, err := s.SyntheticFlux(b)
	if err != nil {
		return 0, 0, err
	}
	zp, err := b.ZeroPoint().To(s.fluxUnit)
	if err != nil {
		return 0, 0, err
	}
	if !(f.Value > 0) || math.IsNaN(f.Value) {
		return 0, 0, fmt.Errorf("%w: synthetic flux %g in %s is not positive", ErrDomain, f.Value, b.Name())
	}
	if !(zp.Value > 0) {
		return 0, 0, fmt.Errorf("%w: zero point %g for %s is not positive", ErrDomain, zp.Value, b.Name())
	}

	mag = -2.5 * math.Log10(f.Value/zp.Value)
	sigma = 2.5 / math.Ln10 * fsig.Value / f.Value
	return mag, sigma, nil
}

// Renormalize scales the whole spectrum so that its synthetic magnitude
// through the bandpass equals target.
func (s *Spectrum) Renormalize(target float64, b Bandpass) (*Spectrum, error) {
	if math.IsNaN(target) || math.IsInf(target, 0) {
		return nil, fmt.Errorf("%w: target magnitude %g", ErrParameter, target)
	}
	current, _, err := s.SyntheticMagnitude(b)
	if err != nil {
		return nil, err
	}
	return s.Scale(math.Pow(10, -0.4*(target-current)))
}

// PhotometricPoint is one observed magnitude through a bandpass.
// A non-positive or NaN Uncertainty means unknown and weighs as 1.
type PhotometricPoint struct {
	Band        Bandpass
	Magnitude   float64
	Uncertainty float64
}

// NormToMags scales the spectrum by the single factor minimizing the
// uncertainty-weighted sum of squared magnitude residuals across all
// points simultaneously: a weighted least-squares fit in log-flux space,
// not an independent per-band renormalization. Each band contributes
// with weight 1/Uncertainty^2.
func (s *Spectrum) NormToMags(points []PhotometricPoint) (*Spectrum, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("%w: no photometric points", ErrParameter)
	}

	// With flux scaled by c, every model magnitude shifts by the same
	// -2.5*log10(c), so the weighted fit has the closed form below.
	var num, den float64
	for _, p := range points {
		m, _, err := s.SyntheticMagnitude(p.Band)
		if err != nil {
			return nil, err
		}
		w := 1.0
		if p.Uncertainty > 0 && !math.IsInf(p.Uncertainty, 0) {
			w = 1 / (p.Uncertainty * p.Uncertainty)
		}
		num += w * (p.Magnitude - m)
		den += w
	}
	shift := num / den
	return s.Scale(math.Pow(10, -0.4*shift))
}

// NormToSpec returns the factor that, multiplying this spectrum, best
// matches other in the least-squares sense over their wavelength
// overlap. Both spectra are brought onto this spectrum's grid restricted
// to the overlap via Resample first. Residuals are weighted by other's
// inverse variance when it carries uncertainties.
func (s *Spectrum) NormToSpec(other *Spectrum) (float64, error) {
	o, err := other.To(s.waveUnit, s.fluxUnit)
	if err != nil {
		return 0, err
	}

	lo := math.Max(s.WaveMin(), o.WaveMin())
	hi := math.Min(s.WaveMax(), o.WaveMax())
	if lo > hi {
		return 0, fmt.Errorf("%w: [%g, %g] vs [%g, %g] %s",
			ErrNoOverlap, s.WaveMin(), s.WaveMax(), o.WaveMin(), o.WaveMax(), s.waveUnit)
	}

	var grid []float64
	for _, w := range s.wave {
		if w >= lo && w <= hi {
			grid = append(grid, w)
		}
	}
	if len(grid) < 2 {
		return 0, fmt.Errorf("%w: fewer than 2 shared samples", ErrNoOverlap)
	}

	res, err := o.Resample(grid)
	if err != nil {
		return 0, err
	}

	var num, den float64
	for i, w := range grid {
		k := indexOf(s.wave, w)
		a, b := s.flux[k], res.flux[i]
		if math.IsNaN(a) || math.IsNaN(b) {
			continue
		}
		weight := 1.0
		if res.unc != nil {
			v := res.variance(i)
			if v > 0 && !math.IsNaN(v) {
				weight = 1 / v
			}
		}
		num += weight * a * b
		den += weight * a * a
	}
	if den == 0 {
		return 0, fmt.Errorf("%w: zero flux over the overlap", ErrDomain)
	}
	return num / den, nil
}

// indexOf returns the index of w in the sorted grid wave. The caller
// guarantees membership.
func indexOf(wave []float64, w float64) int {
	lo, hi := 0, len(wave)-1
	for lo < hi {
		mid := (lo + hi) / 2
		if wave[mid] < w {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}
