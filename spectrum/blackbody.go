package spectrum

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/astrokit/spectra/units"
)

// CGS constants for the Planck law.
const (
	planckH    = 6.62607015e-27 // erg s
	lightSpeed = 2.99792458e10  // cm/s
	boltzmannK = 1.380649e-16   // erg/K
)

// FromBlackbody constructs the surface flux density of a blackbody of the
// given temperature, evaluated on the wavelength grid: pi * B_lambda(T)
// in erg s^-1 cm^-2 AA^-1. The result is an ordinary Spectrum; no
// subtype is needed since all downstream operations are identical.
func FromBlackbody(wave []float64, waveUnit units.Unit, temp units.Quantity) (*Spectrum, error) {
	t, err := temp.To(units.Kelvin)
	if err != nil {
		return nil, err
	}
	if !(t.Value > 0) || math.IsInf(t.Value, 0) {
		return nil, fmt.Errorf("%w: temperature must be positive and finite, got %s", units.ErrUnit, temp)
	}

	toAA, err := units.Factor(waveUnit, units.Angstrom)
	if err != nil {
		return nil, err
	}

	flux := make([]float64, len(wave))
	for i, w := range wave {
		cm := w * toAA * 1e-8
		// Planck spectral radiance per cm, integrated over the outward
		// hemisphere (factor pi), then rebased to per angstrom.
		arg := planckH * lightSpeed / (cm * boltzmannK * t.Value)
		radiance := 2 * planckH * lightSpeed * lightSpeed / math.Pow(cm, 5) / math.Expm1(arg)
		flux[i] = math.Pi * radiance * 1e-8
	}

	s, err := New(wave, flux, waveUnit, units.FLAM)
	if err != nil {
		return nil, err
	}
	s.name = fmt.Sprintf("blackbody %gK", t.Value)
	return s, nil
}

// The reference registry maps names of reference-standard spectra
// (e.g. spectrophotometric standards) to instances supplied by the
// ingestion layer at startup. Spectra are immutable, so registered
// instances are shared, not copied.
var (
	refMu       sync.RWMutex
	refRegistry = map[string]*Spectrum{}
)

// RegisterReference makes a reference-standard spectrum available to
// FromReference under the given name, replacing any previous entry.
func RegisterReference(name string, s *Spectrum) error {
	if name == "" || s == nil {
		return fmt.Errorf("%w: reference name and spectrum are required", ErrParameter)
	}
	refMu.Lock()
	defer refMu.Unlock()
	refRegistry[name] = s
	return nil
}

// FromReference returns the registered reference-standard spectrum.
func FromReference(name string) (*Spectrum, error) {
	refMu.RLock()
	defer refMu.RUnlock()
	if s, ok := refRegistry[name]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("%w: unknown reference spectrum %q (have %v)", ErrParameter, name, referenceNamesLocked())
}

// References returns the sorted names of all registered reference spectra.
func References() []string {
	refMu.RLock()
	defer refMu.RUnlock()
	return referenceNamesLocked()
}

func referenceNamesLocked() []string {
	names := make([]string, 0, len(refRegistry))
	for name := range refRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
