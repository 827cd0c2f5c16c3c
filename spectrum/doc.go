// Package spectrum models a one-dimensional astronomical spectrum:
// wavelength-indexed flux density with optional per-point uncertainty,
// tagged with explicit units.
//
// A [Spectrum] is immutable once constructed. Every transform returns a
// new Spectrum and leaves its receiver and arguments untouched; the only
// post-hoc mutation allowed is the non-physical name via [Spectrum.SetName].
//
// Transforms:
//
//   - [Spectrum.Trim]: keep/drop wavelength ranges, segment or concatenate
//   - [Spectrum.Interpolate]: piecewise-linear onto a new grid
//   - [Spectrum.Resample]: flux-conserving rebinning onto a new grid
//   - [Spectrum.Integrate]: trapezoidal total flux
//   - [Spectrum.Smooth]: Kaiser-window convolution with renormalized edges
//   - [Spectrum.FluxCalibrate]: inverse-square distance rescaling
//   - [Spectrum.ConvolveFilter], [Spectrum.SyntheticFlux],
//     [Spectrum.SyntheticMagnitude], [Spectrum.Renormalize],
//     [Spectrum.NormToMags]: synthetic photometry against a [Bandpass]
//   - [Spectrum.NormToSpec]: least-squares scale onto another spectrum
//   - [Spectrum.Add]: combination across overlapping wavelength regions
//
// Missing uncertainty is "unknown", represented as a nil slice on input
// and propagated as NaN, never as zero.
package spectrum
