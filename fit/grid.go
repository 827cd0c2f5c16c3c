package fit

import (
	"errors"
	"fmt"

	"github.com/astrokit/spectra/spectrum"
)

// Errors returned by the fitting engine.
var (
	// ErrOutOfRange indicates a model-grid lookup outside its declared
	// parameter space. Grid implementations must return it from Lookup.
	ErrOutOfRange = errors.New("fit: parameter vector outside grid bounds")
	// ErrConvergence indicates MCMC diagnostics rejected the chain.
	ErrConvergence = errors.New("fit: chain failed convergence diagnostics")
	// ErrCancelled indicates cooperative cancellation was honored.
	ErrCancelled = errors.New("fit: cancelled")
	// ErrParameter indicates an invalid fitting parameter or axis name.
	ErrParameter = errors.New("fit: invalid parameter")
	// ErrEmptyGrid indicates a grid that enumerates no candidates.
	ErrEmptyGrid = errors.New("fit: grid enumerates no candidates")
)

// Axis is one named dimension of a grid's parameter space. Values holds
// the enumerable grid points in ascending order; Min and Max bound the
// continuous range accepted by Lookup.
type Axis struct {
	Name   string
	Min    float64
	Max    float64
	Values []float64
}

// ModelGrid is the external model-library capability. Lookup must be
// pure (same vector, same spectrum) and total over the declared
// parameter space, returning ErrOutOfRange beyond it. Vectors follow the
// axis order of ParameterSpace; for grids without continuous
// interpolation, Lookup resolves to the nearest grid point.
type ModelGrid interface {
	ParameterSpace() []Axis
	Lookup(params []float64) (*spectrum.Spectrum, error)
}

// enumerable validates that every axis carries grid values and returns
// the total candidate count.
func enumerable(axes []Axis) (int, error) {
	if len(axes) == 0 {
		return 0, ErrEmptyGrid
	}
	total := 1
	for _, ax := range axes {
		if len(ax.Values) == 0 {
			return 0, fmt.Errorf("%w: axis %q has no values", ErrEmptyGrid, ax.Name)
		}
		total *= len(ax.Values)
	}
	return total, nil
}

// vectorAt decodes the row-major candidate index (last axis fastest)
// into a parameter vector.
func vectorAt(axes []Axis, index int) []float64 {
	vec := make([]float64, len(axes))
	for i := len(axes) - 1; i >= 0; i-- {
		n := len(axes[i].Values)
		vec[i] = axes[i].Values[index%n]
		index /= n
	}
	return vec
}
