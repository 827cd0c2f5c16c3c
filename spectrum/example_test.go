package spectrum_test

import (
	"fmt"

	"github.com/astrokit/spectra/spectrum"
	"github.com/astrokit/spectra/units"
)

func ExampleSpectrum_Integrate() {
	s, err := spectrum.New(
		[]float64{1, 1.5, 2},
		[]float64{1, 2, 1},
		units.Micron, units.FLAM,
	)
	if err != nil {
		panic(err)
	}

	total, _, err := s.Integrate()
	if err != nil {
		panic(err)
	}
	fmt.Println(total)
	// Output:
	// 1.5 erg/(s cm2 AA) um
}

func ExampleSpectrum_Trim() {
	s, err := spectrum.New(
		[]float64{1.0, 1.1, 1.2, 1.3, 1.4, 1.5},
		[]float64{1, 2, 3, 4, 5, 6},
		units.Micron, units.FLAM,
	)
	if err != nil {
		panic(err)
	}

	// Cut out the middle and keep the two remaining pieces separate.
	segments, err := s.Trim(nil, []spectrum.Range{{Low: 1.15, High: 1.35}}, false)
	if err != nil {
		panic(err)
	}
	for _, seg := range segments {
		fmt.Println(seg.Wavelength())
	}
	// Output:
	// [1 1.1]
	// [1.4 1.5]
}
