package regression

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/kashenfelter/rloadest/errs"
	"github.com/kashenfelter/rloadest/internal/options"
	"github.com/kashenfelter/rloadest/timeseries"
)

// rcond is the reciprocal condition number below which singular values are
// treated as zero when measuring the rank of a design matrix.
const rcond = 1e-12

// Fit estimates a load model on a calibration dataset by ordinary least
// squares on the log-transformed response.
//
// Censored rows are excluded before fitting and counted on the returned
// model. Fitting is deterministic: the same dataset, specification and
// options reproduce coefficients and residuals exactly.
//
// Parameters:
//   - ds: Calibration dataset from timeseries.Merge
//   - spec: Model specification (terms; the intercept is implicit)
//   - opts: WithResponseKind, WithUnitFactor
//
// Returns:
//   - *Model: Fitted model with coefficients, diagnostics and bias factors
//   - error: errs.ErrEmptyDataset, errs.ErrNoResponse, errs.ErrNoTerms,
//     errs.ErrUnknownColumn for a covariate the dataset lacks,
//     errs.ErrNonPositiveValue when the response or flow cannot be logged,
//     errs.ErrTooFewObservations, or errs.ErrRankDeficient when the design
//     matrix has linearly dependent columns
//
// Example:
//
//	spec := regression.NewSpec("lnQ2 f2 dectime dQ1",
//	    regression.Quadratic(regression.FlowLog),
//	    regression.Fourier(2),
//	    regression.Linear(regression.DecimalTime),
//	    regression.Covariate("dQ1"),
//	)
//	model, err := regression.Fit(ds, spec)
func Fit(ds *timeseries.Dataset, spec Spec, opts ...Option) (*Model, error) {
	cfg := defaultConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	return fit(ds, spec, cfg)
}

// fit is the option-resolved core shared by Fit and SelectModel.
func fit(ds *timeseries.Dataset, spec Spec, cfg Config) (*Model, error) {
	if ds == nil || ds.Len() == 0 {
		return nil, errs.ErrEmptyDataset
	}
	if !ds.HasResponse() {
		return nil, errs.ErrNoResponse
	}
	if err := spec.validate(); err != nil {
		return nil, err
	}

	rows := make([]int, 0, ds.Len())
	for i := range ds.Len() {
		if !ds.Censored(i) {
			rows = append(rows, i)
		}
	}
	censored := ds.Len() - len(rows)
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: every observation is censored", errs.ErrTooFewObservations)
	}

	fr, err := newFrame(ds, rows)
	if err != nil {
		return nil, err
	}

	y, err := logResponse(ds, fr, cfg)
	if err != nil {
		return nil, err
	}

	terms, err := resolveTerms(fr, spec)
	if err != nil {
		return nil, err
	}

	x, names, err := design(fr, terms)
	if err != nil {
		return nil, err
	}

	n, p := x.Dims()
	if n < p+1 {
		return nil, fmt.Errorf("%w: %d usable observations for %d coefficients",
			errs.ErrTooFewObservations, n, p)
	}

	coef, diagXtXInv, err := solve(x, y)
	if err != nil {
		return nil, fmt.Errorf("spec %q: %w", spec.Name, err)
	}

	fitted := make([]float64, n)
	residuals := make([]float64, n)
	fittedVec := mat.NewVecDense(n, fitted)
	fittedVec.MulVec(x, coef)
	rss := 0.0
	for i := range n {
		residuals[i] = y[i] - fitted[i]
		rss += residuals[i] * residuals[i]
	}

	dof := n - p
	sigma2 := rss / float64(dof)

	coefficients := make([]Coefficient, p)
	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(dof)}
	for j := range p {
		value := coef.AtVec(j)
		stderr := math.Sqrt(sigma2 * diagXtXInv[j])
		c := Coefficient{Name: names[j], Value: value, StdErr: stderr}
		if stderr > 0 {
			c.TValue = value / stderr
			c.PValue = 2 * (1 - tDist.CDF(math.Abs(c.TValue)))
		}
		coefficients[j] = c
	}

	factors := Factors{
		MLE:  math.Exp(sigma2 / 2),
		Duan: duanFactor(residuals),
	}

	model := &Model{
		Spec:             spec,
		Formula:          cfg.Response.String() + " ~ " + spec.RightHandSide(),
		Response:         cfg.Response,
		UnitFactor:       cfg.UnitFactor,
		N:                n,
		CensoredDropped:  censored,
		Coefficients:     coefficients,
		RSquared:         rSquared(y, fitted),
		AIC:              aic(n, p, rss),
		SPPC:             sppc(n, p, rss),
		PPCC:             ppcc(residuals),
		ResidualVariance: sigma2,
		Bias:             factors,
		dates:            fr.dates,
		observed:         y,
		fitted:           fitted,
		residuals:        residuals,
		terms:            terms,
		design:           x,
	}
	model.PercentBias = calibrationPercentBias(y, fitted, factors.Duan)

	return model, nil
}

// logResponse builds the log-space response vector for the frame's rows.
func logResponse(ds *timeseries.Dataset, fr *frame, cfg Config) ([]float64, error) {
	response := ds.Response()
	logFactor := 0.0
	if cfg.Response == ResponseLoad {
		logFactor = math.Log(cfg.UnitFactor)
	}

	y := make([]float64, len(fr.rows))
	for i, row := range fr.rows {
		v := response[row]
		if math.IsNaN(v) {
			return nil, fmt.Errorf("%w: response at %s", errs.ErrMissingValue, fr.dates[i])
		}
		if v <= 0 {
			return nil, fmt.Errorf("%w: response %g at %s", errs.ErrNonPositiveValue, v, fr.dates[i])
		}

		y[i] = math.Log(v)
		if cfg.Response == ResponseLoad {
			y[i] += fr.lnQ[i] + logFactor
		}
	}

	return y, nil
}

// solve computes the least-squares coefficients of x·β = y via the singular
// value decomposition, along with the diagonal of (XᵀX)⁻¹ needed for the
// coefficient standard errors.
func solve(x *mat.Dense, y []float64) (*mat.VecDense, []float64, error) {
	n, p := x.Dims()

	var svd mat.SVD
	if !svd.Factorize(x, mat.SVDThin) {
		return nil, nil, fmt.Errorf("%w: factorization failed", errs.ErrRankDeficient)
	}

	rank := svd.Rank(rcond)
	if rank < p {
		return nil, nil, fmt.Errorf("%w: rank %d of %d columns", errs.ErrRankDeficient, rank, p)
	}

	var coef mat.VecDense
	svd.SolveVecTo(&coef, mat.NewVecDense(n, y), rank)

	var v mat.Dense
	svd.VTo(&v)
	values := svd.Values(nil)

	// diag((XᵀX)⁻¹)[j] = Σ_k (V[j,k] / σ_k)²
	diag := make([]float64, p)
	for j := range p {
		sum := 0.0
		for k := range p {
			r := v.At(j, k) / values[k]
			sum += r * r
		}
		diag[j] = sum
	}

	return &coef, diag, nil
}
