package spectrum

import (
	"math"
	"sort"
)

// Add combines two spectra. Over the wavelength overlap the result is
// the uncertainty-weighted mean of both spectra resampled onto the union
// of their grids; points where either uncertainty is unknown fall back to
// equal weighting. Outside the overlap each spectrum contributes its own
// points unchanged. With no overlap at all, the result is the sorted
// concatenation of both spectra.
//
// The other spectrum is converted to this spectrum's units first.
func (s *Spectrum) Add(other *Spectrum) (*Spectrum, error) {
	o, err := other.To(s.waveUnit, s.fluxUnit)
	if err != nil {
		return nil, err
	}

	lo := math.Max(s.WaveMin(), o.WaveMin())
	hi := math.Min(s.WaveMax(), o.WaveMax())

	type point struct {
		w, f, u float64
	}
	var pts []point
	anyUnc := s.unc != nil || o.unc != nil

	appendOutside := func(sp *Spectrum) {
		for i, w := range sp.wave {
			if w >= lo && w <= hi {
				continue
			}
			u := math.NaN()
			if sp.unc != nil {
				u = sp.unc[i]
			}
			pts = append(pts, point{w, sp.flux[i], u})
		}
	}
	appendOutside(s)
	appendOutside(o)

	if lo <= hi {
		union := unionGrid(s.wave, o.wave, lo, hi)
		fa, ua := s.overlapValues(union)
		fb, ub := o.overlapValues(union)
		for i, w := range union {
			f, u := weightedMean(fa[i], ua[i], fb[i], ub[i])
			pts = append(pts, point{w, f, u})
		}
	}

	sort.Slice(pts, func(i, j int) bool { return pts[i].w < pts[j].w })

	wave := make([]float64, len(pts))
	flux := make([]float64, len(pts))
	var unc []float64
	if anyUnc {
		unc = make([]float64, len(pts))
	}
	for i, p := range pts {
		wave[i] = p.w
		flux[i] = p.f
		if unc != nil {
			unc[i] = p.u
		}
	}

	out := s.derive(wave, flux, unc)
	if s.name != "" && o.name != "" {
		out.name = s.name + " + " + o.name
	}
	return out, nil
}

// overlapValues evaluates the spectrum on the union grid, resampling
// when the grid has enough points for flux-conserving rebinning and
// falling back to exact sample lookup for a degenerate single point.
func (s *Spectrum) overlapValues(grid []float64) (flux, unc []float64) {
	if len(grid) >= 2 {
		res, err := s.Resample(grid)
		if err == nil {
			flux = res.flux
			unc = res.unc
			if unc == nil {
				unc = nanSlice(len(grid))
			}
			return flux, unc
		}
	}

	flux = make([]float64, len(grid))
	unc = nanSlice(len(grid))
	for i, w := range grid {
		k := sort.SearchFloat64s(s.wave, w)
		if k < len(s.wave) && s.wave[k] == w {
			flux[i] = s.flux[k]
			if s.unc != nil {
				unc[i] = s.unc[k]
			}
		} else {
			flux[i] = math.NaN()
		}
	}
	return flux, unc
}

// weightedMean combines two flux samples. Both variances known: inverse
// variance weights and 1/sqrt(sum of weights) error. Otherwise: equal
// weights and unknown error.
func weightedMean(fa, ua, fb, ub float64) (f, u float64) {
	switch {
	case math.IsNaN(fa):
		return fb, ub
	case math.IsNaN(fb):
		return fa, ua
	}
	if ua > 0 && ub > 0 && !math.IsNaN(ua) && !math.IsNaN(ub) {
		wa := 1 / (ua * ua)
		wb := 1 / (ub * ub)
		return (wa*fa + wb*fb) / (wa + wb), 1 / math.Sqrt(wa+wb)
	}
	return 0.5 * (fa + fb), math.NaN()
}

// unionGrid merges both sorted grids restricted to [lo, hi], dropping
// duplicates.
func unionGrid(a, b []float64, lo, hi float64) []float64 {
	out := make([]float64, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) || j < len(b) {
		var w float64
		switch {
		case i >= len(a):
			w = b[j]
			j++
		case j >= len(b):
			w = a[i]
			i++
		case a[i] < b[j]:
			w = a[i]
			i++
		case b[j] < a[i]:
			w = b[j]
			j++
		default:
			w = a[i]
			i++
			j++
		}
		if w < lo || w > hi {
			continue
		}
		if len(out) == 0 || w > out[len(out)-1] {
			out = append(out, w)
		}
	}
	return out
}

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}
