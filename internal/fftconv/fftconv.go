// Package fftconv provides one-shot linear convolution with automatic
// algorithm selection: direct accumulation for short kernels, FFT
// multiplication for long ones. Spectra are convolved whole, so no
// streaming state is kept.
package fftconv

import (
	"errors"
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// Errors returned by convolution functions.
var (
	ErrEmptyInput  = errors.New("fftconv: empty input")
	ErrEmptyKernel = errors.New("fftconv: empty kernel")
)

// Kernels at or below this length run faster in the time domain.
const directThreshold = 64

// Full returns the full linear convolution of signal and kernel, with
// length len(signal) + len(kernel) - 1.
func Full(signal, kernel []float64) ([]float64, error) {
	if len(signal) == 0 {
		return nil, ErrEmptyInput
	}
	if len(kernel) == 0 {
		return nil, ErrEmptyKernel
	}
	if len(kernel) <= directThreshold {
		return direct(signal, kernel), nil
	}
	return viaFFT(signal, kernel)
}

// Same returns the central portion of the full convolution, aligned so
// that output i corresponds to the kernel centered on signal i. The
// kernel length must be odd.
func Same(signal, kernel []float64) ([]float64, error) {
	if len(kernel)%2 == 0 {
		return nil, fmt.Errorf("%w: same-mode kernel length must be odd, got %d", ErrEmptyKernel, len(kernel))
	}
	full, err := Full(signal, kernel)
	if err != nil {
		return nil, err
	}
	half := (len(kernel) - 1) / 2
	return full[half : half+len(signal)], nil
}

// direct performs time-domain convolution, vectorizing the inner loop by
// scaling the kernel with each signal sample and accumulating.
func direct(signal, kernel []float64) []float64 {
	out := make([]float64, len(signal)+len(kernel)-1)
	scratch := make([]float64, len(kernel))
	for i, s := range signal {
		if s == 0 {
			continue
		}
		vecmath.ScaleBlock(scratch, kernel, s)
		vecmath.AddBlockInPlace(out[i:i+len(kernel)], scratch)
	}
	return out
}

// viaFFT performs convolution as a pointwise product in the frequency
// domain, zero-padded to the next power of two.
func viaFFT(signal, kernel []float64) ([]float64, error) {
	outLen := len(signal) + len(kernel) - 1
	size := nextPowerOf2(outLen)

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("fftconv: plan: %w", err)
	}

	a := make([]complex128, size)
	b := make([]complex128, size)
	for i, v := range signal {
		a[i] = complex(v, 0)
	}
	for i, v := range kernel {
		b[i] = complex(v, 0)
	}

	if err := plan.Forward(a, a); err != nil {
		return nil, fmt.Errorf("fftconv: forward: %w", err)
	}
	if err := plan.Forward(b, b); err != nil {
		return nil, fmt.Errorf("fftconv: forward: %w", err)
	}
	for i := range a {
		a[i] *= b[i]
	}
	if err := plan.Inverse(a, a); err != nil {
		return nil, fmt.Errorf("fftconv: inverse: %w", err)
	}

	out := make([]float64, outLen)
	for i := range out {
		out[i] = real(a[i])
	}
	return out, nil
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p *= 2
	}
	return p
}
