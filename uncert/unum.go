// Package uncert provides scalars with asymmetric uncertainties and
// Monte-Carlo arithmetic over them.
//
// A [Unum] holds a nominal value with upper and lower error bars, read as
// the 50th, 84.134th, and 15.866th percentiles of the underlying
// distribution. Arithmetic samples both operands (skew-normal when the
// bars are asymmetric, Gaussian otherwise), applies the operation to the
// sample clouds, and summarizes the result back into quantiles. Sampling
// is deterministically seeded, so repeated evaluation of the same
// expression yields the same Unum.
package uncert

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
)

const (
	defaultSamples = 10000
	defaultSeed    = 1

	// One-sigma central interval quantiles.
	qLower = 0.15866
	qUpper = 0.84134
)

// Unum is a value with upper and lower one-sigma uncertainties.
type Unum struct {
	Nominal float64
	Upper   float64
	Lower   float64
}

// New returns a Unum with asymmetric error bars.
func New(nominal, upper, lower float64) Unum {
	return Unum{Nominal: nominal, Upper: upper, Lower: lower}
}

// Symmetric returns a Unum with equal error bars.
func Symmetric(nominal, sigma float64) Unum {
	return Unum{Nominal: nominal, Upper: sigma, Lower: sigma}
}

// String formats the value as nominal(+upper,-lower).
func (u Unum) String() string {
	if u.Upper == u.Lower {
		return fmt.Sprintf("%g(%g)", u.Nominal, u.Upper)
	}
	return fmt.Sprintf("%g(+%g,-%g)", u.Nominal, u.Upper, u.Lower)
}

// Quantiles returns the 15.866th, 50th, and 84.134th percentile values.
func (u Unum) Quantiles() (lower, nominal, upper float64) {
	return u.Nominal - u.Lower, u.Nominal, u.Nominal + u.Upper
}

// Option configures Monte-Carlo evaluation.
type Option func(*config)

type config struct {
	samples int
	seed    int64
}

// WithSamples sets the Monte-Carlo sample count.
func WithSamples(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.samples = n
		}
	}
}

// WithSeed sets the random seed used for sampling.
func WithSeed(seed int64) Option {
	return func(c *config) {
		c.seed = seed
	}
}

func evalConfig(opts []Option) config {
	cfg := config{samples: defaultSamples, seed: defaultSeed}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Sample draws n values from the distribution matching the quantiles:
// Gaussian when the error bars are equal, a fitted skew-normal when not.
func (u Unum) Sample(n int, rng *rand.Rand) []float64 {
	if u.Upper == u.Lower {
		out := make([]float64, n)
		for i := range out {
			out[i] = u.Nominal + u.Upper*rng.NormFloat64()
		}
		return out
	}

	var sn SkewNormal
	sn.Fit(u.Nominal, u.Upper, u.Lower)
	return sn.Sample(n, rng)
}

// Add returns u + v with Monte-Carlo error propagation.
func (u Unum) Add(v Unum, opts ...Option) Unum {
	return combine(u, v, opts, func(a, b float64) float64 { return a + b })
}

// Sub returns u - v with Monte-Carlo error propagation.
func (u Unum) Sub(v Unum, opts ...Option) Unum {
	return combine(u, v, opts, func(a, b float64) float64 { return a - b })
}

// Mul returns u * v with Monte-Carlo error propagation.
func (u Unum) Mul(v Unum, opts ...Option) Unum {
	return combine(u, v, opts, func(a, b float64) float64 { return a * b })
}

// Div returns u / v with Monte-Carlo error propagation.
func (u Unum) Div(v Unum, opts ...Option) Unum {
	return combine(u, v, opts, func(a, b float64) float64 { return a / b })
}

// Pow returns u raised to a fixed exponent.
func (u Unum) Pow(exp float64, opts ...Option) Unum {
	return apply(u, opts, func(a float64) float64 { return math.Pow(a, exp) })
}

// Log10 returns the base-10 logarithm of u.
func (u Unum) Log10(opts ...Option) Unum {
	return apply(u, opts, math.Log10)
}

func combine(u, v Unum, opts []Option, op func(a, b float64) float64) Unum {
	cfg := evalConfig(opts)
	rng := rand.New(rand.NewSource(cfg.seed))
	a := u.Sample(cfg.samples, rng)
	b := v.Sample(cfg.samples, rng)
	for i := range a {
		a[i] = op(a[i], b[i])
	}
	return Summarize(a)
}

func apply(u Unum, opts []Option, op func(a float64) float64) Unum {
	cfg := evalConfig(opts)
	rng := rand.New(rand.NewSource(cfg.seed))
	a := u.Sample(cfg.samples, rng)
	for i := range a {
		a[i] = op(a[i])
	}
	return Summarize(a)
}

// Summarize reduces a sample cloud to a Unum via its median and one-sigma
// quantiles. NaN samples are dropped first.
func Summarize(samples []float64) Unum {
	clean := samples[:0:0]
	for _, v := range samples {
		if !math.IsNaN(v) {
			clean = append(clean, v)
		}
	}
	if len(clean) == 0 {
		return Unum{Nominal: math.NaN(), Upper: math.NaN(), Lower: math.NaN()}
	}
	sorted := append([]float64(nil), clean...)
	sort.Float64s(sorted)

	median := Quantile(sorted, 0.5)
	return Unum{
		Nominal: median,
		Upper:   Quantile(sorted, qUpper) - median,
		Lower:   median - Quantile(sorted, qLower),
	}
}

// Quantile returns the p-quantile of sorted data by linear interpolation.
func Quantile(sorted []float64, p float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := p * float64(len(sorted)-1)
	i := int(pos)
	if i >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := pos - float64(i)
	return sorted[i] + frac*(sorted[i+1]-sorted[i])
}
