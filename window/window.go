// Package window generates tapering windows used as smoothing kernels.
//
// Only the symmetric forms needed for spectral smoothing are provided:
//
//   - [Rectangular]: boxcar (moving average)
//   - [Hann], [Hamming], [Blackman]: fixed cosine-sum windows
//   - [Gaussian]: parametric, alpha controls width
//   - [Kaiser]: parametric, beta trades main-lobe width for sidelobe level
package window

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Errors returned by window constructors.
var (
	ErrSize           = errors.New("window: size must be > 0")
	ErrParameter      = errors.New("window: invalid shape parameter")
	ErrLengthMismatch = errors.New("window: samples and coefficients must have same length")
)

// Type identifies a window function.
type Type int

const (
	TypeRectangular Type = iota
	TypeHann
	TypeHamming
	TypeBlackman
	TypeGaussian
	TypeKaiser
)

// String returns the window name.
func (t Type) String() string {
	switch t {
	case TypeRectangular:
		return "rectangular"
	case TypeHann:
		return "hann"
	case TypeHamming:
		return "hamming"
	case TypeBlackman:
		return "blackman"
	case TypeGaussian:
		return "gaussian"
	case TypeKaiser:
		return "kaiser"
	default:
		return "unknown"
	}
}

// Cosine-sum coefficients, highest-order term last.
var (
	hannCoeffs     = []float64{0.5, -0.5}
	hammingCoeffs  = []float64{0.54, -0.46}
	blackmanCoeffs = []float64{0.42, -0.5, 0.08}
)

// Generate returns symmetric window coefficients of the given length.
// For parametric windows, param is the Kaiser beta or Gaussian alpha;
// it is ignored for the fixed types.
func Generate(t Type, length int, param float64) ([]float64, error) {
	if length <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrSize, length)
	}
	switch t {
	case TypeKaiser:
		if param < 0 || math.IsNaN(param) {
			return nil, fmt.Errorf("%w: kaiser beta must be >= 0, got %g", ErrParameter, param)
		}
	case TypeGaussian:
		if param <= 0 || math.IsNaN(param) {
			return nil, fmt.Errorf("%w: gaussian alpha must be > 0, got %g", ErrParameter, param)
		}
	}

	out := make([]float64, length)
	for i := range out {
		out[i] = at(t, position(i, length), param)
	}
	return out, nil
}

// Kaiser returns Kaiser window coefficients with shape parameter beta.
func Kaiser(size int, beta float64) ([]float64, error) {
	return Generate(TypeKaiser, size, beta)
}

// Hann returns Hann window coefficients.
func Hann(size int) ([]float64, error) {
	return Generate(TypeHann, size, 0)
}

// Apply multiplies samples with coefficients and returns a new slice.
func Apply(samples, coeffs []float64) ([]float64, error) {
	if len(samples) != len(coeffs) {
		return nil, ErrLengthMismatch
	}
	out := make([]float64, len(samples))
	vecmath.MulBlock(out, samples, coeffs)
	return out, nil
}

// ApplyInPlace multiplies samples with coefficients in place.
func ApplyInPlace(samples, coeffs []float64) error {
	if len(samples) != len(coeffs) {
		return ErrLengthMismatch
	}
	vecmath.MulBlockInPlace(samples, coeffs)
	return nil
}

// position maps sample index to x in [0, 1] for a symmetric window.
func position(n, size int) float64 {
	if size <= 1 {
		return 0.5
	}
	return float64(n) / float64(size-1)
}

func at(t Type, x, param float64) float64 {
	switch t {
	case TypeHann:
		return cosineSum(x, hannCoeffs)
	case TypeHamming:
		return cosineSum(x, hammingCoeffs)
	case TypeBlackman:
		return cosineSum(x, blackmanCoeffs)
	case TypeGaussian:
		v := (2*x - 1) * param
		return math.Exp(-math.Ln2 * v * v)
	case TypeKaiser:
		return kaiserAt(x, param)
	default:
		return 1
	}
}

func cosineSum(x float64, coeffs []float64) float64 {
	phase := 2 * math.Pi * x
	sum := 0.0
	for k, c := range coeffs {
		sum += c * math.Cos(float64(k)*phase)
	}
	return sum
}

func kaiserAt(x, beta float64) float64 {
	if beta <= 0 {
		return 1
	}
	r := 2*x - 1
	arg := math.Sqrt(math.Max(0, 1-r*r))
	return besselI0(beta*arg) / besselI0(beta)
}

// besselI0 approximates the modified Bessel function of the first kind,
// order zero (Abramowitz & Stegun 9.8.1 / 9.8.2 polynomial fits).
func besselI0(x float64) float64 {
	ax := math.Abs(x)
	if ax < 3.75 {
		y := x / 3.75
		y *= y
		return 1.0 + y*(3.5156229+y*(3.0899424+y*(1.2067492+y*(0.2659732+y*(0.0360768+y*0.0045813)))))
	}
	y := 3.75 / ax
	return (math.Exp(ax) / math.Sqrt(ax)) *
		(0.39894228 + y*(0.01328592+y*(0.00225319+y*(-0.00157565+y*(0.00916281+y*(-0.02057706+y*(0.02635537+y*(-0.01647633+y*0.00392377))))))))
}
