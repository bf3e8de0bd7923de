package regression

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/mat"

	"github.com/kashenfelter/rloadest/errs"
	"github.com/kashenfelter/rloadest/timeseries"
)

// fittedTerm is a term bound to the centering constant estimated from the
// calibration data. Predictions must reuse the calibration center, so these
// travel with the fitted model.
type fittedTerm struct {
	term   Term
	center float64
}

// frame holds the per-row variables a design matrix is built from: the log
// of flow, the decimal-time clock, and the dataset's covariate columns
// restricted to the selected rows.
type frame struct {
	ds      *timeseries.Dataset
	rows    []int
	dates   []timeseries.Date
	lnQ     []float64
	dectime []float64
	cols    map[string][]float64
}

// newFrame extracts the built-in variables for the selected dataset rows,
// validating that flow can be log-transformed.
func newFrame(ds *timeseries.Dataset, rows []int) (*frame, error) {
	flow := ds.Flow()
	allDates := ds.Dates()

	fr := &frame{
		ds:      ds,
		rows:    rows,
		dates:   make([]timeseries.Date, len(rows)),
		lnQ:     make([]float64, len(rows)),
		dectime: make([]float64, len(rows)),
		cols:    make(map[string][]float64),
	}

	for i, row := range rows {
		q := flow[row]
		if math.IsNaN(q) {
			return nil, fmt.Errorf("%w: flow at %s", errs.ErrMissingValue, allDates[row])
		}
		if q <= 0 {
			return nil, fmt.Errorf("%w: flow %g at %s", errs.ErrNonPositiveValue, q, allDates[row])
		}

		fr.dates[i] = allDates[row]
		fr.lnQ[i] = math.Log(q)
		fr.dectime[i] = allDates[row].DecimalYear()
	}

	return fr, nil
}

// column returns a covariate column restricted to the frame's rows,
// rejecting NaN entries.
func (fr *frame) column(name string) ([]float64, error) {
	if cached, ok := fr.cols[name]; ok {
		return cached, nil
	}

	full, err := fr.ds.Column(name)
	if err != nil {
		return nil, err
	}

	values := make([]float64, len(fr.rows))
	for i, row := range fr.rows {
		if math.IsNaN(full[row]) {
			return nil, fmt.Errorf("%w: column %q at %s", errs.ErrMissingValue, name, fr.dates[i])
		}
		values[i] = full[row]
	}
	fr.cols[name] = values

	return values, nil
}

// variable returns the built-in variable values for the frame's rows.
func (fr *frame) variable(v Variable) []float64 {
	if v == FlowLog {
		return fr.lnQ
	}

	return fr.dectime
}

// resolveTerms estimates each term's centering constant from the calibration
// frame and binds it, so later design matrices (calibration and estimation
// alike) subtract the same constants.
func resolveTerms(fr *frame, spec Spec) ([]fittedTerm, error) {
	terms := make([]fittedTerm, len(spec.Terms))
	for i, t := range spec.Terms {
		ft := fittedTerm{term: t}

		switch t.Kind {
		case KindLinear:
			m, err := stats.Mean(fr.variable(t.Variable))
			if err != nil {
				return nil, fmt.Errorf("center %s: %w", t.Variable, err)
			}
			ft.center = m
		case KindQuadratic:
			ft.center = orthogonalCenter(fr.variable(t.Variable))
		case KindCovariate:
			// Validate the column exists up front so a bad name fails the
			// fit, not the first prediction.
			if _, err := fr.column(t.Column); err != nil {
				return nil, err
			}
		}

		terms[i] = ft
	}

	return terms, nil
}

// orthogonalCenter returns the constant that makes (x - c) and (x - c)²
// uncorrelated over the sample:
//
//	c = mean(x) + Σ(x - mean)³ / (2 Σ(x - mean)²)
//
// Centering a quadratic pair this way lets the linear coefficient keep its
// slope interpretation at mid-range values.
func orthogonalCenter(x []float64) float64 {
	n := float64(len(x))
	mean := 0.0
	for _, v := range x {
		mean += v
	}
	mean /= n

	sum2 := 0.0
	sum3 := 0.0
	for _, v := range x {
		d := v - mean
		sum2 += d * d
		sum3 += d * d * d
	}
	if sum2 == 0 {
		return mean
	}

	return mean + sum3/(2*sum2)
}

// design assembles the n×p design matrix for the frame under the given
// bound terms, intercept first.
func design(fr *frame, terms []fittedTerm) (*mat.Dense, []string, error) {
	n := len(fr.rows)
	p := 1
	for _, ft := range terms {
		p += ft.term.width()
	}

	x := mat.NewDense(n, p, nil)
	names := make([]string, 0, p)
	names = append(names, "Intercept")

	ones := make([]float64, n)
	for i := range ones {
		ones[i] = 1
	}
	x.SetCol(0, ones)

	col := 1
	scratch := make([]float64, n)

	for _, ft := range terms {
		switch ft.term.Kind {
		case KindLinear:
			src := fr.variable(ft.term.Variable)
			for i := range n {
				scratch[i] = src[i] - ft.center
			}
			x.SetCol(col, scratch)
			col++
		case KindQuadratic:
			src := fr.variable(ft.term.Variable)
			for i := range n {
				scratch[i] = src[i] - ft.center
			}
			x.SetCol(col, scratch)
			for i := range n {
				scratch[i] = scratch[i] * scratch[i]
			}
			x.SetCol(col+1, scratch)
			col += 2
		case KindFourier:
			for j := 1; j <= ft.term.Order; j++ {
				w := 2 * math.Pi * float64(j)
				for i := range n {
					scratch[i] = math.Sin(w * fr.dectime[i])
				}
				x.SetCol(col, scratch)
				for i := range n {
					scratch[i] = math.Cos(w * fr.dectime[i])
				}
				x.SetCol(col+1, scratch)
				col += 2
			}
		case KindCovariate:
			values, err := fr.column(ft.term.Column)
			if err != nil {
				return nil, nil, err
			}
			x.SetCol(col, values)
			col++
		}

		names = append(names, ft.term.columnNames()...)
	}

	return x, names, nil
}
