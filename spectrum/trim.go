package spectrum

import "fmt"

// Range is an inclusive wavelength interval in the spectrum's wavelength
// unit.
type Range struct {
	Low  float64
	High float64
}

// Contains reports whether w falls inside the range, bounds inclusive.
func (r Range) Contains(w float64) bool {
	return w >= r.Low && w <= r.High
}

// Trim keeps the union of the include ranges (the full range when include
// is empty) minus the union of the exclude ranges. Points exactly on a
// boundary are kept on both sides of it.
//
// The kept region may be disjoint; each contiguous run of surviving
// points becomes its own segment. With concat true, all surviving points
// are concatenated in wavelength order into a single Spectrum.
//
// Returns ErrEmptyResult if no points survive, and ErrParameter for a
// range with Low > High.
func (s *Spectrum) Trim(include, exclude []Range, concat bool) ([]*Spectrum, error) {
	for _, r := range append(append([]Range(nil), include...), exclude...) {
		if r.Low > r.High {
			return nil, fmt.Errorf("%w: range low %g > high %g", ErrParameter, r.Low, r.High)
		}
	}

	keep := make([]bool, len(s.wave))
	for i, w := range s.wave {
		kept := len(include) == 0
		for _, r := range include {
			if r.Contains(w) {
				kept = true
				break
			}
		}
		for _, r := range exclude {
			if r.Contains(w) {
				kept = false
				break
			}
		}
		keep[i] = kept
	}

	var segments []*Spectrum
	for i := 0; i < len(keep); {
		if !keep[i] {
			i++
			continue
		}
		j := i
		for j < len(keep) && keep[j] {
			j++
		}
		segments = append(segments, s.slice(i, j))
		i = j
	}
	if len(segments) == 0 {
		return nil, fmt.Errorf("%w: trim left no points", ErrEmptyResult)
	}
	if !concat || len(segments) == 1 {
		return segments, nil
	}

	wave := make([]float64, 0, len(s.wave))
	flux := make([]float64, 0, len(s.wave))
	var unc []float64
	if s.unc != nil {
		unc = make([]float64, 0, len(s.wave))
	}
	for _, seg := range segments {
		wave = append(wave, seg.wave...)
		flux = append(flux, seg.flux...)
		if unc != nil {
			unc = append(unc, seg.unc...)
		}
	}
	return []*Spectrum{s.derive(wave, flux, unc)}, nil
}

// slice copies the half-open index range [i, j) into a new segment.
func (s *Spectrum) slice(i, j int) *Spectrum {
	var unc []float64
	if s.unc != nil {
		unc = append([]float64(nil), s.unc[i:j]...)
	}
	return s.derive(
		append([]float64(nil), s.wave[i:j]...),
		append([]float64(nil), s.flux[i:j]...),
		unc,
	)
}
