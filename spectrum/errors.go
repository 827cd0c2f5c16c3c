package spectrum

import "errors"

// Errors returned by spectrum construction and transforms. Unit problems
// are reported with [github.com/astrokit/spectra/units.ErrUnit].
var (
	// ErrShape indicates mismatched or too-short input array lengths.
	ErrShape = errors.New("spectrum: wavelength, flux, and uncertainty lengths must agree")
	// ErrOrdering indicates a wavelength grid that is not finite, positive,
	// and strictly increasing. Unordered input is rejected, never sorted.
	ErrOrdering = errors.New("spectrum: wavelength must be finite, positive, and strictly increasing")
	// ErrEmptyResult indicates a transform that would leave zero points.
	ErrEmptyResult = errors.New("spectrum: no points remain")
	// ErrNoOverlap indicates two spectra, or a spectrum and a bandpass,
	// that share no wavelength range.
	ErrNoOverlap = errors.New("spectrum: no wavelength overlap")
	// ErrDomain indicates a mathematically undefined result.
	ErrDomain = errors.New("spectrum: result is not mathematically defined")
	// ErrParameter indicates an invalid operation parameter.
	ErrParameter = errors.New("spectrum: invalid parameter")
)
