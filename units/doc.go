// Package units provides explicit physical units for spectral quantities.
//
// Four unit families are recognized: wavelength, spectral flux density
// (per-wavelength), distance, and temperature. Conversion is table-driven
// and total within a family; any conversion across families fails with
// [ErrUnit] instead of reinterpreting magnitudes.
//
// Flux-density units carry their own per-wavelength base, so wavelength
// and flux axes convert independently while integrated energy stays
// consistent: the product unit from [Mul] absorbs the wavelength scale.
package units
