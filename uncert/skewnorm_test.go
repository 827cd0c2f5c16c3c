package uncert_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/astrokit/spectra/uncert"
)

func TestSkewNormalPDFReducesToGaussian(t *testing.T) {
	sn := uncert.SkewNormal{Mu: 0, Sigma: 1, Alpha: 0}
	require.InDelta(t, 1/math.Sqrt(2*math.Pi), sn.PDF(0), 1e-12)
	require.InDelta(t, math.Exp(-0.5)/math.Sqrt(2*math.Pi), sn.PDF(1), 1e-12)
}

func TestSkewNormalCDF(t *testing.T) {
	sn := uncert.SkewNormal{Mu: 2, Sigma: 3, Alpha: 0}
	require.InDelta(t, 0.5, sn.CDF(2), 1e-6)
	require.InDelta(t, 0.8413, sn.CDF(5), 1e-3)
	require.Equal(t, 0.0, sn.CDF(-1e3))

	// Positive skew shifts mass to the right of the location parameter.
	skewed := uncert.SkewNormal{Mu: 0, Sigma: 1, Alpha: 4}
	require.Less(t, skewed.CDF(1), 0.8413)
}

func TestSkewNormalFitRecoversQuantiles(t *testing.T) {
	var sn uncert.SkewNormal
	sn.Fit(10, 3, 1)

	require.Greater(t, sn.Alpha, 0.0, "larger upper bar means positive shape")
	require.InDelta(t, 0.5, sn.CDF(10), 0.05)
	require.InDelta(t, 0.84134, sn.CDF(13), 0.05)
	require.InDelta(t, 0.15866, sn.CDF(9), 0.05)
}

func TestSkewNormalFitSymmetricIsGaussian(t *testing.T) {
	var sn uncert.SkewNormal
	sn.Fit(5, 2, 2)
	require.InDelta(t, 0, sn.Alpha, 1e-9)
	require.InDelta(t, 5, sn.Mu, 0.1)
	require.InDelta(t, 2, sn.Sigma, 0.2)
}

func TestSkewNormalSampleMatchesCDF(t *testing.T) {
	sn := uncert.SkewNormal{Mu: 1, Sigma: 2, Alpha: 3}
	rng := rand.New(rand.NewSource(11))
	samples := sn.Sample(50000, rng)

	for _, x := range []float64{0, 1, 2, 4} {
		var below int
		for _, v := range samples {
			if v <= x {
				below++
			}
		}
		got := float64(below) / float64(len(samples))
		require.InDelta(t, sn.CDF(x), got, 0.01, "x=%g", x)
	}
}
