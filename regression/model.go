package regression

import (
	"fmt"
	"slices"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/kashenfelter/rloadest/errs"
	"github.com/kashenfelter/rloadest/timeseries"
)

// Coefficient is one estimated model coefficient with its sampling
// uncertainty.
type Coefficient struct {
	// Name is the design-matrix column name ("Intercept", "lnQ", "sin1", ...).
	Name string
	// Value is the least-squares estimate.
	Value float64
	// StdErr is the estimated standard error.
	StdErr float64
	// TValue is Value / StdErr.
	TValue float64
	// PValue is the two-sided p-value of TValue under the t distribution
	// with the fit's residual degrees of freedom.
	PValue float64
}

// Model is a fitted load regression.
//
// A Model is immutable: refitting builds a new value, and two fits of the
// same specification on the same data are identical down to the last bit.
// The centering constants estimated during calibration travel with the
// model, so predictions on new data reuse them.
//
// Fields:
//   - Spec: The specification that was fitted
//   - Formula: Human-readable model equation, response included
//   - Coefficients: Estimates with standard errors and p-values, intercept first
//   - RSquared, AIC, SPPC, PPCC, PercentBias: Fit diagnostics
//   - Bias: Retransformation bias correction factors
type Model struct {
	// Spec is the fitted specification.
	Spec Spec
	// Formula is the model equation, e.g.
	// "ln(Load) ~ Intercept + lnQ + lnQ2 + sin1 + cos1 + dectime".
	Formula string
	// Response records whether load or concentration was modeled.
	Response ResponseKind
	// UnitFactor is the concentration × flow → mass/day factor used.
	UnitFactor float64
	// N is the number of observations the fit used.
	N int
	// CensoredDropped is the number of censored observations excluded.
	CensoredDropped int
	// Coefficients holds the estimates in design order, intercept first.
	Coefficients []Coefficient
	// RSquared is the coefficient of determination in log space.
	RSquared float64
	// AIC is Akaike's information criterion (lower is better).
	AIC float64
	// SPPC is the Schwarz posterior probability criterion (lower is better).
	SPPC float64
	// PPCC is the probability plot correlation coefficient of the residuals.
	PPCC float64
	// PercentBias compares Duan-corrected estimates against observations
	// over the calibration data, in percent.
	PercentBias float64
	// ResidualVariance is RSS / (N - number of coefficients).
	ResidualVariance float64
	// Bias holds the retransformation correction factors.
	Bias Factors

	dates     []timeseries.Date
	observed  []float64
	fitted    []float64
	residuals []float64
	terms     []fittedTerm
	design    *mat.Dense
}

// Dates returns the calibration dates the fit used, in row order.
func (m *Model) Dates() []timeseries.Date {
	return slices.Clone(m.dates)
}

// Observed returns the log-space response values the fit used.
func (m *Model) Observed() []float64 {
	return slices.Clone(m.observed)
}

// Fitted returns the log-space fitted values.
func (m *Model) Fitted() []float64 {
	return slices.Clone(m.fitted)
}

// Residuals returns the log-space residuals (observed - fitted).
func (m *Model) Residuals() []float64 {
	return slices.Clone(m.residuals)
}

// Centers returns the centering constant of each centered variable, keyed by
// variable token ("lnQ", "dectime"). Predictions subtract these same
// constants.
func (m *Model) Centers() map[string]float64 {
	centers := make(map[string]float64)
	for _, ft := range m.terms {
		if ft.term.Kind == KindLinear || ft.term.Kind == KindQuadratic {
			centers[ft.term.Variable.String()] = ft.center
		}
	}

	return centers
}

// PartialResiduals returns the partial residual series of the i-th
// specification term: residual plus the term's fitted contribution, per
// observation. Plotted against the term's variable, it shows the
// relationship the model attributes to that term alone.
//
// Parameters:
//   - i: Index into Spec.Terms
//
// Returns:
//   - []float64: One value per calibration observation
//   - error: errs.ErrInvalidTerm when i is out of range
func (m *Model) PartialResiduals(i int) ([]float64, error) {
	if i < 0 || i >= len(m.terms) {
		return nil, fmt.Errorf("%w: term index %d of %d", errs.ErrInvalidTerm, i, len(m.terms))
	}

	// Locate the term's column span: intercept is column 0, terms follow in
	// specification order.
	start := 1
	for j := 0; j < i; j++ {
		start += m.terms[j].term.width()
	}
	width := m.terms[i].term.width()

	partial := slices.Clone(m.residuals)
	for col := start; col < start+width; col++ {
		beta := m.Coefficients[col].Value
		for row := range partial {
			partial[row] += beta * m.design.At(row, col)
		}
	}

	return partial, nil
}

// Summary returns a multi-line report of the fit: formula, observation
// counts, the coefficient table, and the diagnostic statistics.
func (m *Model) Summary() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Model: %s\n", m.Formula)
	fmt.Fprintf(&b, "Observations: %d", m.N)
	if m.CensoredDropped > 0 {
		fmt.Fprintf(&b, " (%d censored dropped)", m.CensoredDropped)
	}
	b.WriteByte('\n')

	fmt.Fprintf(&b, "%-12s %12s %12s %8s %8s\n", "Coefficient", "Estimate", "StdErr", "t", "p")
	for _, c := range m.Coefficients {
		fmt.Fprintf(&b, "%-12s %12.5f %12.5f %8.3f %8.4f\n", c.Name, c.Value, c.StdErr, c.TValue, c.PValue)
	}

	fmt.Fprintf(&b, "R²: %.4f  AIC: %.2f  SPPC: %.2f  PPCC: %.4f\n", m.RSquared, m.AIC, m.SPPC, m.PPCC)
	fmt.Fprintf(&b, "Residual variance: %.5f  Percent bias: %.2f%%\n", m.ResidualVariance, m.PercentBias)
	fmt.Fprintf(&b, "Bias correction: MLE %.4f, Duan %.4f\n", m.Bias.MLE, m.Bias.Duan)

	return b.String()
}

// String returns a one-line summary of the model.
func (m *Model) String() string {
	return fmt.Sprintf("Model{Formula: %s, N: %d, R²: %.4f, AIC: %.2f, PPCC: %.4f}",
		m.Formula, m.N, m.RSquared, m.AIC, m.PPCC)
}
