package fit

import (
	"github.com/google/uuid"

	"github.com/astrokit/spectra/uncert"
)

// Method distinguishes a point best-fit from an MCMC posterior summary.
type Method int

const (
	// MethodGrid marks a point estimate from dense grid enumeration;
	// parameter uncertainties reflect grid spacing, not a posterior.
	MethodGrid Method = iota
	// MethodMCMC marks a posterior summary: medians with 16th/84th
	// percentile bounds.
	MethodMCMC
)

// String returns the method tag.
func (m Method) String() string {
	switch m {
	case MethodGrid:
		return "grid"
	case MethodMCMC:
		return "mcmc"
	default:
		return "unknown"
	}
}

// Result is the immutable record of a completed fit.
type Result struct {
	// ID uniquely identifies this fit run.
	ID string
	// Method tags how the estimate was produced.
	Method Method
	// Parameters maps axis names to estimates with uncertainties.
	Parameters map[string]uncert.Unum
	// Statistic is the reduced chi-square of the winning model.
	Statistic float64
	// DOF is the degrees of freedom behind Statistic.
	DOF int
}

func newResult(method Method, statistic float64, dof int, params map[string]uncert.Unum) *Result {
	return &Result{
		ID:         uuid.NewString(),
		Method:     method,
		Parameters: params,
		Statistic:  statistic,
		DOF:        dof,
	}
}
