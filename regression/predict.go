package regression

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/kashenfelter/rloadest/errs"
	"github.com/kashenfelter/rloadest/internal/options"
	"github.com/kashenfelter/rloadest/timeseries"
)

// Prediction holds back-transformed model estimates over an estimation
// dataset, one value per row.
type Prediction struct {
	// Dates are the estimation dates in row order.
	Dates []timeseries.Date
	// Values are the back-transformed estimates: mass per day for load
	// models, concentration for concentration models.
	Values []float64
	// Correction records which bias correction produced Values.
	Correction Correction
	// Factor is the multiplicative factor that was applied.
	Factor float64
}

// Predict evaluates the fitted model on an estimation dataset and
// back-transforms to the original scale.
//
// The estimation dataset needs flow plus every covariate column the model's
// specification uses; Fourier and trend terms only need the row dates. The
// calibration centering constants are reused, never re-estimated. The
// log-space prediction is exponentiated and multiplied by the selected bias
// correction factor (Duan by default).
//
// Parameters:
//   - ds: Estimation dataset, typically from timeseries.NewEstimationDataset
//   - opts: WithCorrection
//
// Returns:
//   - *Prediction: One estimate per usable estimation row
//   - error: errs.ErrEmptyDataset, errs.ErrUnknownColumn for a missing
//     covariate, errs.ErrMissingValue for NaN inputs, or
//     errs.ErrNonPositiveValue when flow cannot be logged
//
// Example:
//
//	est, _, err := timeseries.NewEstimationDataset(flow, dq1)
//	if err != nil {
//	    return err
//	}
//	pred, err := model.Predict(est)
func (m *Model) Predict(ds *timeseries.Dataset, opts ...Option) (*Prediction, error) {
	cfg := defaultConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	if ds == nil || ds.Len() == 0 {
		return nil, errs.ErrEmptyDataset
	}

	factor, err := m.Bias.factor(cfg.Correction)
	if err != nil {
		return nil, err
	}

	rows := make([]int, ds.Len())
	for i := range rows {
		rows[i] = i
	}

	fr, err := newFrame(ds, rows)
	if err != nil {
		return nil, err
	}

	x, _, err := design(fr, m.terms)
	if err != nil {
		return nil, err
	}

	n, p := x.Dims()
	coef := make([]float64, p)
	for j, c := range m.Coefficients {
		coef[j] = c.Value
	}

	logEst := make([]float64, n)
	est := mat.NewVecDense(n, logEst)
	est.MulVec(x, mat.NewVecDense(p, coef))

	values := make([]float64, n)
	for i := range n {
		values[i] = factor * math.Exp(logEst[i])
	}

	return &Prediction{
		Dates:      fr.dates,
		Values:     values,
		Correction: cfg.Correction,
		Factor:     factor,
	}, nil
}

// Total aggregates daily estimates over one period.
type Total struct {
	// Label identifies the period: "WY2004" for water years, "2004-01" for
	// months.
	Label string
	// Days is the number of daily estimates in the period.
	Days int
	// Mass is the summed daily values (mass for load models).
	Mass float64
	// Mean is Mass / Days.
	Mean float64
}

// String returns a one-line table row for the total.
func (t Total) String() string {
	return fmt.Sprintf("%-8s days %4d  total %14.2f  mean %12.3f", t.Label, t.Days, t.Mass, t.Mean)
}

// TotalsByWaterYear sums the daily estimates per water year, in
// chronological order.
//
// Each row counts one day, so the mass total assumes the prediction covers
// consecutive days (the shape NewEstimationDataset produces).
func (p *Prediction) TotalsByWaterYear() []Total {
	return p.totals(func(d timeseries.Date) string {
		return fmt.Sprintf("WY%d", d.WaterYear())
	})
}

// TotalsByMonth sums the daily estimates per calendar month, in
// chronological order.
func (p *Prediction) TotalsByMonth() []Total {
	return p.totals(func(d timeseries.Date) string {
		return fmt.Sprintf("%04d-%02d", d.Year(), int(d.Month()))
	})
}

func (p *Prediction) totals(label func(timeseries.Date) string) []Total {
	var out []Total
	index := make(map[string]int)

	for i, d := range p.Dates {
		key := label(d)
		at, ok := index[key]
		if !ok {
			at = len(out)
			index[key] = at
			out = append(out, Total{Label: key})
		}
		out[at].Days++
		out[at].Mass += p.Values[i]
	}

	for i := range out {
		out[i].Mean = out[i].Mass / float64(out[i].Days)
	}

	return out
}
