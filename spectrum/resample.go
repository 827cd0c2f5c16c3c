package spectrum

import (
	"fmt"
	"math"
	"sort"

	"github.com/astrokit/spectra/units"
)

// Interpolate returns the spectrum evaluated on newWave (in the
// spectrum's wavelength unit) by piecewise-linear interpolation.
// Target points outside [WaveMin, WaveMax] are NaN, never extrapolated.
//
// Uncertainty is propagated by linear interpolation of the variance, not
// of the raw uncertainty values, so the error between two noisy samples
// is not underestimated.
func (s *Spectrum) Interpolate(newWave []float64) (*Spectrum, error) {
	if err := validateTarget(newWave); err != nil {
		return nil, err
	}

	flux := make([]float64, len(newWave))
	var unc []float64
	if s.unc != nil {
		unc = make([]float64, len(newWave))
	}

	for i, w := range newWave {
		if w < s.WaveMin() || w > s.WaveMax() {
			flux[i] = math.NaN()
			if unc != nil {
				unc[i] = math.NaN()
			}
			continue
		}
		j := sort.SearchFloat64s(s.wave, w)
		if j < len(s.wave) && s.wave[j] == w {
			flux[i] = s.flux[j]
			if unc != nil {
				unc[i] = s.unc[j]
			}
			continue
		}
		// s.wave[j-1] < w < s.wave[j]
		t := (w - s.wave[j-1]) / (s.wave[j] - s.wave[j-1])
		flux[i] = s.flux[j-1] + t*(s.flux[j]-s.flux[j-1])
		if unc != nil {
			v := (1-t)*s.variance(j-1) + t*s.variance(j)
			unc[i] = math.Sqrt(v)
		}
	}
	return s.derive(append([]float64(nil), newWave...), flux, unc), nil
}

// Resample rebins the spectrum onto newWave conserving flux: the integral
// over each output bin (bounded by midpoints between consecutive target
// wavelengths) equals the integral of the source over the same physical
// interval. Source-bin flux is redistributed onto target bins by overlap
// fraction, so coarsening the grid neither loses nor manufactures energy.
//
// Target bins wholly outside the source coverage are NaN; bins partially
// covered are normalized over the covered width.
func (s *Spectrum) Resample(newWave []float64) (*Spectrum, error) {
	if err := validateTarget(newWave); err != nil {
		return nil, err
	}

	srcEdges := binEdges(s.wave)
	dstEdges := binEdges(newWave)

	flux := make([]float64, len(newWave))
	var unc []float64
	if s.unc != nil {
		unc = make([]float64, len(newWave))
	}

	j := 0
	for i := range newWave {
		lo, hi := dstEdges[i], dstEdges[i+1]

		for j > 0 && srcEdges[j] > lo {
			j--
		}
		for j < len(s.wave)-1 && srcEdges[j+1] <= lo {
			j++
		}

		var sumFlux, sumVar, covered float64
		for k := j; k < len(s.wave); k++ {
			if srcEdges[k] >= hi {
				break
			}
			ov := math.Min(srcEdges[k+1], hi) - math.Max(srcEdges[k], lo)
			if ov <= 0 {
				continue
			}
			sumFlux += s.flux[k] * ov
			sumVar += s.variance(k) * ov * ov
			covered += ov
		}

		if covered <= 0 {
			flux[i] = math.NaN()
			if unc != nil {
				unc[i] = math.NaN()
			}
			continue
		}
		flux[i] = sumFlux / covered
		if unc != nil {
			unc[i] = math.Sqrt(sumVar) / covered
		}
	}
	return s.derive(append([]float64(nil), newWave...), flux, unc), nil
}

// Integrate returns the trapezoidal-rule integral of flux over the full
// stored wavelength range, tagged with the flux x wavelength product
// unit, together with its propagated uncertainty. The uncertainty value
// is NaN when the spectrum carries none.
func (s *Spectrum) Integrate() (total, sigma units.Quantity, err error) {
	unit, err := units.Mul(s.fluxUnit, s.waveUnit)
	if err != nil {
		return units.Quantity{}, units.Quantity{}, err
	}

	sum := 0.0
	for i := 0; i < len(s.wave)-1; i++ {
		sum += 0.5 * (s.flux[i] + s.flux[i+1]) * (s.wave[i+1] - s.wave[i])
	}

	variance := math.NaN()
	if s.unc != nil {
		variance = 0
		for i, c := range trapezoidWeights(s.wave) {
			variance += c * c * s.variance(i)
		}
	}
	return units.New(sum, unit), units.New(math.Sqrt(variance), unit), nil
}

// validateTarget applies the same grid contract as construction and
// additionally requires at least 2 points so the result is a Spectrum.
func validateTarget(wave []float64) error {
	if len(wave) < 2 {
		return fmt.Errorf("%w: target grid needs at least 2 points, got %d", ErrShape, len(wave))
	}
	return validateGrid(wave)
}

// binEdges returns len(wave)+1 bin boundaries: midpoints between
// consecutive samples, with the outermost edges extended by half the
// neighboring spacing.
func binEdges(wave []float64) []float64 {
	n := len(wave)
	edges := make([]float64, n+1)
	edges[0] = wave[0] - 0.5*(wave[1]-wave[0])
	for i := 1; i < n; i++ {
		edges[i] = 0.5 * (wave[i-1] + wave[i])
	}
	edges[n] = wave[n-1] + 0.5*(wave[n-1]-wave[n-2])
	return edges
}

// trapezoidWeights returns the coefficient of each flux sample in the
// trapezoidal-rule sum.
func trapezoidWeights(wave []float64) []float64 {
	n := len(wave)
	w := make([]float64, n)
	for i := 0; i < n-1; i++ {
		d := 0.5 * (wave[i+1] - wave[i])
		w[i] += d
		w[i+1] += d
	}
	return w
}
