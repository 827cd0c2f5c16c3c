package spectrum

import (
	"fmt"
	"math"

	"github.com/astrokit/spectra/internal/fftconv"
	"github.com/astrokit/spectra/window"
)

// Smooth convolves the flux with a Kaiser-Bessel window of shape
// parameter beta and the given length. The window length must be odd and
// at least 3; even or too-long windows are rejected with ErrParameter.
//
// Near the array edges the window is truncated to the in-bounds portion
// and its weights renormalized over it, so total flux is approximately
// preserved; zero-padding would bias edge flux systematically downward.
//
// Uncertainty propagates with the same weights applied in quadrature.
func (s *Spectrum) Smooth(beta float64, windowLen int) (*Spectrum, error) {
	if windowLen < 3 || windowLen%2 == 0 {
		return nil, fmt.Errorf("%w: window length must be odd and >= 3, got %d", ErrParameter, windowLen)
	}
	if windowLen > s.Size() {
		return nil, fmt.Errorf("%w: window length %d exceeds spectrum size %d", ErrParameter, windowLen, s.Size())
	}
	if beta < 0 || math.IsNaN(beta) {
		return nil, fmt.Errorf("%w: kaiser beta must be >= 0, got %g", ErrParameter, beta)
	}

	coeffs, err := window.Kaiser(windowLen, beta)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParameter, err)
	}

	// Truncated/renormalized convolution as a quotient of two same-mode
	// convolutions: the numerator accumulates windowed flux, the
	// denominator the in-bounds window weight at each position.
	ones := make([]float64, s.Size())
	for i := range ones {
		ones[i] = 1
	}
	num, err := fftconv.Same(s.flux, coeffs)
	if err != nil {
		return nil, err
	}
	norm, err := fftconv.Same(ones, coeffs)
	if err != nil {
		return nil, err
	}

	flux := make([]float64, s.Size())
	for i := range flux {
		flux[i] = num[i] / norm[i]
	}

	var unc []float64
	if s.unc != nil {
		sq := make([]float64, len(coeffs))
		variance := make([]float64, s.Size())
		for i, c := range coeffs {
			sq[i] = c * c
		}
		for i := range variance {
			variance[i] = s.variance(i)
		}
		varNum, err := fftconv.Same(variance, sq)
		if err != nil {
			return nil, err
		}
		unc = make([]float64, s.Size())
		for i := range unc {
			unc[i] = math.Sqrt(math.Max(0, varNum[i])) / norm[i]
		}
	}
	return s.derive(append([]float64(nil), s.wave...), flux, unc), nil
}
