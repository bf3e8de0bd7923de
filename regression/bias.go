package regression

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"

	"github.com/kashenfelter/rloadest/errs"
)

// Correction selects which retransformation bias factor to apply when
// back-transforming log-space predictions.
type Correction uint8

const (
	// CorrectionDuan applies Duan's smearing factor, the default. It makes
	// no distributional assumption about the residuals.
	CorrectionDuan Correction = iota + 1
	// CorrectionMLE applies the lognormal maximum-likelihood factor
	// exp(s²/2), appropriate when residuals are close to normal.
	CorrectionMLE
	// CorrectionNone back-transforms with plain exp, accepting the
	// systematic low bias.
	CorrectionNone
)

// String returns the correction name.
func (c Correction) String() string {
	switch c {
	case CorrectionDuan:
		return "Duan"
	case CorrectionMLE:
		return "MLE"
	case CorrectionNone:
		return "None"
	default:
		return "unknown"
	}
}

// Factors holds the two retransformation bias correction factors of a fitted
// log-space model.
//
// Back-transforming a log-space prediction with plain exp systematically
// underestimates the mean of the original quantity; multiplying by one of
// these factors corrects that. Both are close to 1 for well-behaved models
// and grow with residual spread.
type Factors struct {
	// MLE is the lognormal maximum-likelihood factor exp(s²/2), where s² is
	// the residual variance.
	MLE float64
	// Duan is Duan's smearing estimator, the mean of exp(residual).
	Duan float64
}

// String returns both factors in a compact form.
func (f Factors) String() string {
	return fmt.Sprintf("Factors{MLE: %.4f, Duan: %.4f}", f.MLE, f.Duan)
}

// factor returns the multiplier for the chosen correction.
func (f Factors) factor(c Correction) (float64, error) {
	switch c {
	case CorrectionDuan:
		return f.Duan, nil
	case CorrectionMLE:
		return f.MLE, nil
	case CorrectionNone:
		return 1, nil
	default:
		return 0, fmt.Errorf("%w: %d", errs.ErrInvalidCorrection, c)
	}
}

// BiasFactors computes both retransformation factors from a residual sample.
//
// The MLE factor uses the sample variance of the residuals (n-1 denominator);
// the Duan factor is the mean of the exponentiated residuals. Fitted models
// carry their own Factors computed from the model residual variance, so this
// function is for standalone residual vectors.
//
// Parameters:
//   - residuals: Log-space residuals, at least two
//
// Returns:
//   - Factors: Both factors
//   - error: errs.ErrEmptyResiduals when residuals is empty,
//     errs.ErrSeriesTooShort when only one residual is given (the variance
//     is undefined), errs.ErrMissingValue when a residual is NaN
//
// Example:
//
//	factors, err := regression.BiasFactors(model.Residuals())
func BiasFactors(residuals []float64) (Factors, error) {
	if len(residuals) == 0 {
		return Factors{}, errs.ErrEmptyResiduals
	}
	if len(residuals) < 2 {
		return Factors{}, fmt.Errorf("%w: variance of a single residual is undefined", errs.ErrSeriesTooShort)
	}
	for i, r := range residuals {
		if math.IsNaN(r) {
			return Factors{}, fmt.Errorf("%w: residual %d is NaN", errs.ErrMissingValue, i)
		}
	}

	variance, err := stats.SampleVariance(residuals)
	if err != nil {
		return Factors{}, fmt.Errorf("residual variance: %w", err)
	}

	return Factors{
		MLE:  math.Exp(variance / 2),
		Duan: duanFactor(residuals),
	}, nil
}

// duanFactor is the smearing estimator: the mean of exp(residual).
func duanFactor(residuals []float64) float64 {
	sum := 0.0
	for _, r := range residuals {
		sum += math.Exp(r)
	}

	return sum / float64(len(residuals))
}
