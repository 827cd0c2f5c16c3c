// Command specinfo prints synthetic photometry of a blackbody spectrum
// through a set of built-in demonstration bandpasses.
//
// Usage:
//
//	specinfo [flags] [band-name ...]
//
// Without arguments it prints all built-in bands.
//
// Examples:
//
//	specinfo -temp 5800
//	specinfo -temp 3200 -points 5000 J Ks
//	specinfo -list
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/astrokit/spectra/spectrum"
	"github.com/astrokit/spectra/units"
)

// tophat is a flat-transmission demonstration bandpass. Real filter
// curves come from a filter-catalog service; this command only needs
// plausible wavelength coverage and zero points.
type tophat struct {
	name     string
	min, max float64 // micron
	zp       float64 // erg s^-1 cm^-2 AA^-1
}

func (t tophat) Name() string              { return t.name }
func (t tophat) WaveUnit() units.Unit      { return units.Micron }
func (t tophat) Range() (float64, float64) { return t.min, t.max }
func (t tophat) ZeroPoint() units.Quantity { return units.New(t.zp, units.FLAM) }

func (t tophat) Evaluate(wave []float64) []float64 {
	out := make([]float64, len(wave))
	for i, w := range wave {
		if w >= t.min && w <= t.max {
			out[i] = 1
		}
	}
	return out
}

// 2MASS-like bands with Vega zero points.
var registry = []tophat{
	{"J", 1.10, 1.35, 3.129e-10},
	{"H", 1.50, 1.80, 1.133e-10},
	{"Ks", 2.00, 2.30, 4.283e-11},
}

func main() {
	temp := flag.Float64("temp", 5800, "blackbody temperature in kelvin")
	points := flag.Int("points", 2000, "number of wavelength samples")
	minW := flag.Float64("min", 0.5, "minimum wavelength in micron")
	maxW := flag.Float64("max", 3.0, "maximum wavelength in micron")
	list := flag.Bool("list", false, "list available band names")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: specinfo [flags] [band-name ...]\n\n")
		fmt.Fprintf(os.Stderr, "Prints synthetic photometry of a blackbody through built-in bands.\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *list {
		for _, b := range registry {
			fmt.Println(b.name)
		}
		return
	}

	bands, err := selectBands(flag.Args())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	wave := make([]float64, *points)
	for i := range wave {
		wave[i] = *minW + (*maxW-*minW)*float64(i)/float64(*points-1)
	}
	bb, err := spectrum.FromBlackbody(wave, units.Micron, units.New(*temp, units.Kelvin))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "band\trange [um]\tflux [erg/(s cm2 AA)]\tmag")
	for _, b := range bands {
		flux, _, err := bb.SyntheticFlux(b)
		if err != nil {
			fmt.Fprintf(w, "%s\t%.2f-%.2f\terror: %v\t\n", b.name, b.min, b.max, err)
			continue
		}
		mag, _, err := bb.SyntheticMagnitude(b)
		if err != nil {
			fmt.Fprintf(w, "%s\t%.2f-%.2f\t%.4g\terror: %v\n", b.name, b.min, b.max, flux.Value, err)
			continue
		}
		fmt.Fprintf(w, "%s\t%.2f-%.2f\t%.4g\t%.3f\n", b.name, b.min, b.max, flux.Value, mag)
	}
	w.Flush()
}

func selectBands(names []string) ([]tophat, error) {
	if len(names) == 0 {
		return registry, nil
	}
	var out []tophat
	for _, name := range names {
		found := false
		for _, b := range registry {
			if strings.EqualFold(b.name, name) {
				out = append(out, b)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("unknown band %q (use -list)", name)
		}
	}
	return out, nil
}
