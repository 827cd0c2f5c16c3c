package fit

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"github.com/astrokit/spectra/spectrum"
	"github.com/astrokit/spectra/uncert"
)

// MCMC samples the posterior over the named subset of the grid's
// parameter axes with a seeded Metropolis-Hastings chain, using the same
// goodness-of-fit statistic as BestFit as a negative log-likelihood.
// Axes not named in params are anchored at the values found by a
// preliminary grid search, which also initializes the chain.
//
// The returned parameters are posterior medians with uncertainties from
// the 16th and 84th percentiles. A chain whose effective sample size
// falls below the configured threshold fails with ErrConvergence rather
// than being silently accepted.
func MCMC(ctx context.Context, target *spectrum.Spectrum, grid ModelGrid, params []string, opts ...Option) (*Result, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	axes := grid.ParameterSpace()
	if _, err := enumerable(axes); err != nil {
		return nil, err
	}
	free, err := freeAxes(axes, params)
	if err != nil {
		return nil, err
	}
	eval, err := newEvaluation(target, len(free))
	if err != nil {
		return nil, err
	}

	// Anchor fixed axes and the chain start at the grid optimum.
	anchor, err := BestFit(ctx, target, grid, opts...)
	if err != nil {
		return nil, err
	}
	state := make([]float64, len(axes))
	for i, ax := range axes {
		state[i] = anchor.Parameters[ax.Name].Nominal
	}

	rng := rand.New(rand.NewSource(cfg.seed))
	logL, err := logLikelihood(eval, grid, state)
	if err != nil {
		return nil, err
	}

	samples := make([][]float64, len(free))
	for i := range samples {
		samples[i] = make([]float64, 0, cfg.steps)
	}
	accepted := 0

	proposal := make([]float64, len(axes))
	for step := 0; step < cfg.burn+cfg.steps; step++ {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %v", ErrCancelled, ctx.Err())
		}

		copy(proposal, state)
		inBounds := true
		for _, fi := range free {
			ax := axes[fi]
			proposal[fi] = state[fi] + rng.NormFloat64()*cfg.stepScale*(ax.Max-ax.Min)
			if proposal[fi] < ax.Min || proposal[fi] > ax.Max {
				inBounds = false
			}
		}

		if inBounds {
			propL, err := logLikelihood(eval, grid, proposal)
			if err != nil {
				return nil, err
			}
			if propL-logL >= math.Log(rng.Float64()) {
				copy(state, proposal)
				logL = propL
				accepted++
			}
		}

		if step >= cfg.burn {
			for si, fi := range free {
				samples[si] = append(samples[si], state[fi])
			}
		}
	}

	if accepted == 0 {
		return nil, fmt.Errorf("%w: no proposals accepted", ErrConvergence)
	}
	for si, fi := range free {
		ess := effectiveSampleSize(samples[si])
		if ess < cfg.minESS {
			return nil, fmt.Errorf("%w: axis %q effective sample size %.1f < %.1f",
				ErrConvergence, axes[fi].Name, ess, cfg.minESS)
		}
	}

	out := make(map[string]uncert.Unum, len(axes))
	for si, fi := range free {
		out[axes[fi].Name] = uncert.Summarize(samples[si])
	}
	for _, ax := range axes {
		if _, ok := out[ax.Name]; !ok {
			out[ax.Name] = anchor.Parameters[ax.Name]
		}
	}

	stat, err := statisticAt(eval, grid, medianVector(axes, out))
	if err != nil {
		return nil, err
	}
	return newResult(MethodMCMC, stat, target.Size()-len(free), out), nil
}

// freeAxes resolves parameter names to axis indices.
func freeAxes(axes []Axis, params []string) ([]int, error) {
	if len(params) == 0 {
		return nil, fmt.Errorf("%w: no parameters named for sampling", ErrParameter)
	}
	free := make([]int, 0, len(params))
	for _, name := range params {
		found := -1
		for i, ax := range axes {
			if ax.Name == name {
				found = i
				break
			}
		}
		if found < 0 {
			return nil, fmt.Errorf("%w: unknown axis %q", ErrParameter, name)
		}
		free = append(free, found)
	}
	return free, nil
}

func medianVector(axes []Axis, params map[string]uncert.Unum) []float64 {
	vec := make([]float64, len(axes))
	for i, ax := range axes {
		vec[i] = params[ax.Name].Nominal
	}
	return vec
}

func logLikelihood(eval *evaluation, grid ModelGrid, vec []float64) (float64, error) {
	stat, err := statisticAt(eval, grid, vec)
	if err != nil {
		return 0, err
	}
	return -0.5 * stat, nil
}

func statisticAt(eval *evaluation, grid ModelGrid, vec []float64) (float64, error) {
	model, err := grid.Lookup(vec)
	if err != nil {
		return 0, err
	}
	return eval.score(model)
}

// effectiveSampleSize estimates N / (1 + 2*sum of autocorrelations),
// truncating the sum at the first non-positive autocorrelation.
func effectiveSampleSize(samples []float64) float64 {
	n := len(samples)
	if n < 2 {
		return float64(n)
	}

	mean := 0.0
	for _, v := range samples {
		mean += v
	}
	mean /= float64(n)

	var c0 float64
	for _, v := range samples {
		d := v - mean
		c0 += d * d
	}
	if c0 == 0 {
		// A frozen chain explored nothing.
		return 0
	}

	tau := 1.0
	for lag := 1; lag < n/2; lag++ {
		var ck float64
		for i := 0; i+lag < n; i++ {
			ck += (samples[i] - mean) * (samples[i+lag] - mean)
		}
		rho := ck / c0
		if rho <= 0 {
			break
		}
		tau += 2 * rho
	}
	return float64(n) / tau
}
