package regression

import (
	"math"
	"slices"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"
)

// rSquared calculates the coefficient of determination of a fit in log
// space.
//
// Formula: R² = 1 - (SS_res / SS_tot)
//   - SS_res: Sum of squared residuals (observed - fitted)²
//   - SS_tot: Total sum of squares (observed - mean)²
//
// Returns 0 when the observed values have no variance to explain.
func rSquared(observed, fitted []float64) float64 {
	if len(observed) == 0 {
		return 0
	}

	mean := 0.0
	for _, v := range observed {
		mean += v
	}
	mean /= float64(len(observed))

	ssTot := 0.0
	ssRes := 0.0
	for i := range observed {
		ssTot += (observed[i] - mean) * (observed[i] - mean)
		ssRes += (observed[i] - fitted[i]) * (observed[i] - fitted[i])
	}

	if ssTot == 0 {
		return 0
	}

	return 1.0 - (ssRes / ssTot)
}

// gaussianDeviance is the common -2·log-likelihood core of the information
// criteria: n·ln(2πσ̂²) + n with σ̂² = RSS/n.
func gaussianDeviance(n int, rss float64) float64 {
	fn := float64(n)

	return fn*math.Log(2*math.Pi*rss/fn) + fn
}

// aic is Akaike's information criterion for a Gaussian log-space fit with p
// coefficients; the +1 counts the variance as an estimated parameter. Lower
// is better. Only differences between candidates on the same data are
// meaningful.
func aic(n, p int, rss float64) float64 {
	return gaussianDeviance(n, rss) + 2*float64(p+1)
}

// sppc is the Schwarz posterior probability criterion (BIC): like aic but
// with a ln(n) penalty per parameter, favoring smaller models as the record
// grows.
func sppc(n, p int, rss float64) float64 {
	return gaussianDeviance(n, rss) + math.Log(float64(n))*float64(p+1)
}

// ppcc is the probability plot correlation coefficient: the correlation
// between the sorted residuals and the normal quantiles at Blom plotting
// positions Φ⁻¹((i - 0.375) / (n + 0.25)).
//
// Values near 1 mean the residuals look normal, which the log-space model
// assumes. Degenerate inputs (fewer than two residuals, or an exact fit
// with zero spread) report 1, since nothing contradicts normality.
func ppcc(residuals []float64) float64 {
	n := len(residuals)
	if n < 2 {
		return 1
	}

	sorted := slices.Clone(residuals)
	slices.Sort(sorted)

	normal := distuv.Normal{Mu: 0, Sigma: 1}
	quantiles := make([]float64, n)
	for i := range n {
		pos := (float64(i+1) - 0.375) / (float64(n) + 0.25)
		quantiles[i] = normal.Quantile(pos)
	}

	r, err := stats.Correlation(sorted, quantiles)
	if err != nil || math.IsNaN(r) {
		// Zero-variance residuals: an exact fit.
		return 1
	}

	return r
}

// calibrationPercentBias compares total estimated load against total
// observed load over the calibration observations:
//
//	Bp = 100 · (Σ estimated - Σ observed) / Σ observed
//
// Estimates are back-transformed with the Duan smearing factor, matching the
// default prediction path, so this is the bias a caller would actually see.
func calibrationPercentBias(observed, fitted []float64, duan float64) float64 {
	sumObs := 0.0
	sumEst := 0.0
	for i := range observed {
		sumObs += math.Exp(observed[i])
		sumEst += duan * math.Exp(fitted[i])
	}
	if sumObs == 0 {
		return 0
	}

	return 100 * (sumEst - sumObs) / sumObs
}
