package uncert

import (
	"math"
	"math/rand"
)

// SkewNormal is an Azzalini skew-normal distribution with location Mu,
// scale Sigma, and shape Alpha.
type SkewNormal struct {
	Mu    float64
	Sigma float64
	Alpha float64
}

// PDF returns the density at x.
func (sn SkewNormal) PDF(x float64) float64 {
	z := (x - sn.Mu) / sn.Sigma
	phi := math.Exp(-0.5*z*z) / math.Sqrt(2*math.Pi)
	cdf := 0.5 * (1 + math.Erf(sn.Alpha*z/math.Sqrt2))
	return 2 * phi * cdf / sn.Sigma
}

// CDF returns the cumulative probability at x, by Simpson integration of
// the density from far into the left tail.
func (sn SkewNormal) CDF(x float64) float64 {
	lo := sn.Mu - 12*sn.Sigma*(1+math.Abs(sn.Alpha))
	if x <= lo {
		return 0
	}
	const steps = 400 // even
	h := (x - lo) / steps
	sum := sn.PDF(lo) + sn.PDF(x)
	for i := 1; i < steps; i++ {
		w := 4.0
		if i%2 == 0 {
			w = 2.0
		}
		sum += w * sn.PDF(lo+float64(i)*h)
	}
	return math.Min(1, sum*h/3)
}

// Fit adjusts the parameters so the distribution's 15.866th, 50th, and
// 84.134th percentiles match (median - lower, median, median + upper).
// The shape sign is fixed by which error bar is larger; the optimization
// runs over square-rooted scale and shape so both stay sign-constrained,
// starting from the matching Gaussian.
func (sn *SkewNormal) Fit(median, upper, lower float64) {
	alphaSign := sign(upper - lower)
	x := [3]float64{median - lower, median, median + upper}
	y := [3]float64{qLower, 0.5, qUpper}

	residual := func(p []float64) float64 {
		trial := SkewNormal{
			Mu:    p[0],
			Sigma: p[1] * p[1],
			Alpha: alphaSign * p[2] * p[2],
		}
		if trial.Sigma <= 0 {
			return math.Inf(1)
		}
		sum := 0.0
		for i := range x {
			d := trial.CDF(x[i]) - y[i]
			sum += d * d
		}
		return sum
	}

	guess := []float64{median, math.Sqrt(0.5 * (upper + lower)), 0}
	best := nelderMead(residual, guess, 200)

	sn.Mu = best[0]
	sn.Sigma = best[1] * best[1]
	sn.Alpha = alphaSign * best[2] * best[2]
}

// Sample draws n values using Azzalini's conditioning construction: two
// correlated standard normals, with the sign of one flipped by the other.
func (sn SkewNormal) Sample(n int, rng *rand.Rand) []float64 {
	delta := sn.Alpha / math.Sqrt(1+sn.Alpha*sn.Alpha)
	out := make([]float64, n)
	for i := range out {
		u0 := rng.NormFloat64()
		v := rng.NormFloat64()
		u1 := delta*u0 + math.Sqrt(1-delta*delta)*v
		if u0 < 0 {
			u1 = -u1
		}
		out[i] = sn.Mu + sn.Sigma*u1
	}
	return out
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// nelderMead minimizes f by the downhill simplex method. Deterministic:
// the initial simplex is built from fixed per-coordinate steps.
func nelderMead(f func([]float64) float64, x0 []float64, iters int) []float64 {
	const (
		reflect  = 1.0
		expand   = 2.0
		contract = 0.5
		shrink   = 0.5
	)
	dim := len(x0)

	simplex := make([][]float64, dim+1)
	values := make([]float64, dim+1)
	for i := range simplex {
		p := append([]float64(nil), x0...)
		if i > 0 {
			step := 0.1 * math.Abs(p[i-1])
			if step == 0 {
				step = 0.1
			}
			p[i-1] += step
		}
		simplex[i] = p
		values[i] = f(p)
	}

	order := func() {
		for i := 1; i < len(simplex); i++ {
			for j := i; j > 0 && values[j] < values[j-1]; j-- {
				values[j], values[j-1] = values[j-1], values[j]
				simplex[j], simplex[j-1] = simplex[j-1], simplex[j]
			}
		}
	}
	centroid := func() []float64 {
		c := make([]float64, dim)
		for _, p := range simplex[:dim] {
			for k, v := range p {
				c[k] += v
			}
		}
		for k := range c {
			c[k] /= float64(dim)
		}
		return c
	}
	at := func(c, worst []float64, t float64) []float64 {
		p := make([]float64, dim)
		for k := range p {
			p[k] = c[k] + t*(c[k]-worst[k])
		}
		return p
	}

	order()
	for it := 0; it < iters; it++ {
		c := centroid()
		worst := simplex[dim]

		pr := at(c, worst, reflect)
		fr := f(pr)
		switch {
		case fr < values[0]:
			pe := at(c, worst, expand)
			if fe := f(pe); fe < fr {
				simplex[dim], values[dim] = pe, fe
			} else {
				simplex[dim], values[dim] = pr, fr
			}
		case fr < values[dim-1]:
			simplex[dim], values[dim] = pr, fr
		default:
			pc := at(c, worst, -contract)
			if fc := f(pc); fc < values[dim] {
				simplex[dim], values[dim] = pc, fc
			} else {
				for i := 1; i <= dim; i++ {
					for k := range simplex[i] {
						simplex[i][k] = simplex[0][k] + shrink*(simplex[i][k]-simplex[0][k])
					}
					values[i] = f(simplex[i])
				}
			}
		}
		order()
	}
	return simplex[0]
}
