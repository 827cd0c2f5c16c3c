package fit

import (
	"context"
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/astrokit/spectra/spectrum"
	"github.com/astrokit/spectra/uncert"
)

// Option configures a fit.
type Option func(*config)

type config struct {
	workers   int
	seed      int64
	steps     int
	burn      int
	stepScale float64
	minESS    float64
}

func defaultConfig() config {
	return config{
		workers:   runtime.GOMAXPROCS(0),
		seed:      1,
		steps:     4000,
		burn:      1000,
		stepScale: 0.1,
		minESS:    50,
	}
}

// WithWorkers sets the number of parallel candidate evaluations.
// The result does not depend on the worker count.
func WithWorkers(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithSeed sets the MCMC random seed for reproducible chains.
func WithSeed(seed int64) Option {
	return func(c *config) {
		c.seed = seed
	}
}

// WithSteps sets the MCMC chain length after burn-in.
func WithSteps(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.steps = n
		}
	}
}

// WithBurnIn sets the number of discarded initial MCMC steps.
func WithBurnIn(n int) Option {
	return func(c *config) {
		if n >= 0 {
			c.burn = n
		}
	}
}

// WithStepScale sets the MCMC proposal width as a fraction of each
// axis span.
func WithStepScale(v float64) Option {
	return func(c *config) {
		if v > 0 {
			c.stepScale = v
		}
	}
}

// WithMinESS sets the effective-sample-size threshold below which the
// chain is rejected with ErrConvergence.
func WithMinESS(v float64) Option {
	return func(c *config) {
		if v > 0 {
			c.minESS = v
		}
	}
}

// evaluation holds what candidate scoring needs: the immutable target
// and its wavelength grid. Concurrent evaluations share it read-only.
type evaluation struct {
	target     *spectrum.Spectrum
	targetWave []float64
	targetFlux []float64
	targetUnc  []float64
	nParams    int
}

func newEvaluation(target *spectrum.Spectrum, nParams int) (*evaluation, error) {
	if target == nil {
		return nil, fmt.Errorf("%w: nil target spectrum", ErrParameter)
	}
	if target.Size()-nParams < 1 {
		return nil, fmt.Errorf("%w: %d points cannot constrain %d parameters", ErrParameter, target.Size(), nParams)
	}
	return &evaluation{
		target:     target,
		targetWave: target.Wavelength(),
		targetFlux: target.Flux(),
		targetUnc:  target.Uncertainty(),
		nParams:    nParams,
	}, nil
}

// score returns the reduced chi-square of one candidate model against
// the target: the model is converted to the target's units, scaled onto
// it by least squares, resampled onto the target grid, and compared with
// uncertainty weights where the target has them.
func (e *evaluation) score(model *spectrum.Spectrum) (float64, error) {
	m, err := model.To(e.target.WaveUnit(), e.target.FluxUnit())
	if err != nil {
		return 0, err
	}
	factor, err := m.NormToSpec(e.target)
	if err != nil {
		return 0, err
	}
	scaled, err := m.Scale(factor)
	if err != nil {
		return 0, err
	}
	res, err := scaled.Resample(e.targetWave)
	if err != nil {
		return 0, err
	}
	resFlux := res.Flux()

	chi2 := 0.0
	n := 0
	for i, f := range resFlux {
		if math.IsNaN(f) || math.IsNaN(e.targetFlux[i]) {
			continue
		}
		d := e.targetFlux[i] - f
		if e.targetUnc != nil && e.targetUnc[i] > 0 && !math.IsNaN(e.targetUnc[i]) {
			d /= e.targetUnc[i]
		}
		chi2 += d * d
		n++
	}
	dof := n - e.nParams
	if dof < 1 {
		return 0, fmt.Errorf("%w: only %d comparable points for %d parameters", ErrParameter, n, e.nParams)
	}
	return chi2 / float64(dof), nil
}

// BestFit finds the grid candidate minimizing the goodness-of-fit
// statistic against the target. Candidates are evaluated across a worker
// pool; ties break toward the smallest candidate index, so the winner is
// deterministic regardless of evaluation order. Cancellation through ctx
// aborts with ErrCancelled and no partial result.
func BestFit(ctx context.Context, target *spectrum.Spectrum, grid ModelGrid, opts ...Option) (*Result, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	axes := grid.ParameterSpace()
	total, err := enumerable(axes)
	if err != nil {
		return nil, err
	}
	eval, err := newEvaluation(target, len(axes))
	if err != nil {
		return nil, err
	}

	stats := make([]float64, total)
	g, gctx := errgroup.WithContext(ctx)
	jobs := make(chan int)

	g.Go(func() error {
		defer close(jobs)
		for i := 0; i < total; i++ {
			select {
			case jobs <- i:
			case <-gctx.Done():
				return fmt.Errorf("%w: %v", ErrCancelled, gctx.Err())
			}
		}
		return nil
	})
	for w := 0; w < cfg.workers; w++ {
		g.Go(func() error {
			for i := range jobs {
				if gctx.Err() != nil {
					return fmt.Errorf("%w: %v", ErrCancelled, gctx.Err())
				}
				model, err := grid.Lookup(vectorAt(axes, i))
				if err != nil {
					return err
				}
				stat, err := eval.score(model)
				if err != nil {
					return err
				}
				stats[i] = stat
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	best := 0
	for i, s := range stats {
		if s < stats[best] {
			best = i
		}
	}

	vec := vectorAt(axes, best)
	params := make(map[string]uncert.Unum, len(axes))
	for i, ax := range axes {
		params[ax.Name] = gridEstimate(ax, vec[i])
	}
	return newResult(MethodGrid, stats[best], target.Size()-len(axes), params), nil
}

// gridEstimate bounds a point estimate by half the spacing to the
// neighboring grid values, zero on an axis edge.
func gridEstimate(ax Axis, value float64) uncert.Unum {
	idx := 0
	for i, v := range ax.Values {
		if v == value {
			idx = i
			break
		}
	}
	var upper, lower float64
	if idx+1 < len(ax.Values) {
		upper = 0.5 * (ax.Values[idx+1] - ax.Values[idx])
	}
	if idx > 0 {
		lower = 0.5 * (ax.Values[idx] - ax.Values[idx-1])
	}
	return uncert.New(value, upper, lower)
}
