// Package fit estimates model parameters for an observed spectrum
// against a model grid.
//
// Two estimators are provided. [BestFit] densely enumerates the grid's
// parameter space, scores every candidate with an uncertainty-weighted
// reduced chi-square after least-squares normalization, and returns the
// minimum; ties break toward the smallest enumeration index, so the
// result is identical at any worker count. [MCMC] samples the posterior
// over a named subset of the parameters with a seeded Metropolis-Hastings
// chain and summarizes it by the median and one-sigma percentiles.
//
// Both estimators honor cooperative cancellation through their context
// and never return partial results: an interrupted run fails with
// [ErrCancelled], and a chain that fails its convergence diagnostics
// fails with [ErrConvergence] instead of degrading silently.
package fit
