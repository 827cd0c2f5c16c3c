package units

import (
	"errors"
	"fmt"
)

// ErrUnit indicates a conversion between incompatible or unrecognized units.
var ErrUnit = errors.New("units: incompatible units")

// Dimension identifies a unit family.
type Dimension int

const (
	// Wavelength units (base: angstrom).
	Wavelength Dimension = iota
	// FluxDensity units, energy per area, time, and wavelength interval
	// (base: erg s^-1 cm^-2 angstrom^-1).
	FluxDensity
	// Distance units (base: parsec).
	Distance
	// Temperature units (base: kelvin).
	Temperature
	// IntegratedFlux is the product family flux density x wavelength,
	// produced by integration (base: erg s^-1 cm^-2).
	IntegratedFlux
)

// String returns the family name.
func (d Dimension) String() string {
	switch d {
	case Wavelength:
		return "wavelength"
	case FluxDensity:
		return "flux density"
	case Distance:
		return "distance"
	case Temperature:
		return "temperature"
	case IntegratedFlux:
		return "integrated flux"
	default:
		return "unknown"
	}
}

// Unit tags a value with a physical unit. The zero Unit is invalid.
type Unit struct {
	Name   string
	Symbol string
	Dim    Dimension

	// scale converts a value in this unit to the family base unit.
	scale float64
}

// Recognized units. The set is closed: conversions are table lookups over
// these values, never inferred.
var (
	Angstrom  = Unit{Name: "angstrom", Symbol: "AA", Dim: Wavelength, scale: 1}
	Nanometer = Unit{Name: "nanometer", Symbol: "nm", Dim: Wavelength, scale: 10}
	Micron    = Unit{Name: "micron", Symbol: "um", Dim: Wavelength, scale: 1e4}

	// FLAM is the astronomical erg s^-1 cm^-2 AA^-1 flux density unit.
	FLAM = Unit{Name: "flam", Symbol: "erg/(s cm2 AA)", Dim: FluxDensity, scale: 1}
	// WattPerM2Micron is the SI-style W m^-2 um^-1 flux density unit.
	WattPerM2Micron = Unit{Name: "watt per m2 micron", Symbol: "W/(m2 um)", Dim: FluxDensity, scale: 0.1}

	Parsec     = Unit{Name: "parsec", Symbol: "pc", Dim: Distance, scale: 1}
	Kiloparsec = Unit{Name: "kiloparsec", Symbol: "kpc", Dim: Distance, scale: 1e3}
	LightYear  = Unit{Name: "light-year", Symbol: "ly", Dim: Distance, scale: 1.0 / 3.2615638}
	AU         = Unit{Name: "astronomical unit", Symbol: "au", Dim: Distance, scale: 1.0 / 206264.806}

	Kelvin = Unit{Name: "kelvin", Symbol: "K", Dim: Temperature, scale: 1}
)

// Valid reports whether u is a usable unit.
func (u Unit) Valid() bool { return u.scale > 0 }

// String returns the unit symbol.
func (u Unit) String() string { return u.Symbol }

// Factor returns the multiplier converting values in u to values in to.
func Factor(u, to Unit) (float64, error) {
	if !u.Valid() || !to.Valid() {
		return 0, fmt.Errorf("%w: invalid unit", ErrUnit)
	}
	if u.Dim != to.Dim {
		return 0, fmt.Errorf("%w: %s (%s) -> %s (%s)", ErrUnit, u.Symbol, u.Dim, to.Symbol, to.Dim)
	}
	return u.scale / to.scale, nil
}

// Convert converts v from one unit to another within the same family.
func Convert(v float64, from, to Unit) (float64, error) {
	f, err := Factor(from, to)
	if err != nil {
		return 0, err
	}
	return v * f, nil
}

// Mul returns the product unit of a flux density and a wavelength unit,
// as produced by integrating flux over wavelength.
func Mul(flux, wave Unit) (Unit, error) {
	if flux.Dim != FluxDensity || wave.Dim != Wavelength {
		return Unit{}, fmt.Errorf("%w: cannot form product of %s and %s", ErrUnit, flux.Dim, wave.Dim)
	}
	return Unit{
		Name:   flux.Name + " " + wave.Name,
		Symbol: flux.Symbol + " " + wave.Symbol,
		Dim:    IntegratedFlux,
		scale:  flux.scale * wave.scale,
	}, nil
}

// Quantity is a scalar tagged with a unit.
type Quantity struct {
	Value float64
	Unit  Unit
}

// New returns a quantity of the given value and unit.
func New(value float64, unit Unit) Quantity {
	return Quantity{Value: value, Unit: unit}
}

// To converts the quantity to another unit of the same family.
func (q Quantity) To(u Unit) (Quantity, error) {
	v, err := Convert(q.Value, q.Unit, u)
	if err != nil {
		return Quantity{}, err
	}
	return Quantity{Value: v, Unit: u}, nil
}

// String formats the quantity with its unit symbol.
func (q Quantity) String() string {
	return fmt.Sprintf("%g %s", q.Value, q.Unit.Symbol)
}
