package timeseries

import (
	"fmt"
	"math"
	"slices"

	"github.com/kashenfelter/rloadest/errs"
)

// MergeReport accounts for every sample offered to a merge: Samples =
// Matched + NoFlow + NoAux always holds.
type MergeReport struct {
	// Samples is the number of observations offered to the merge.
	Samples int
	// Matched is the number of rows retained in the merged dataset.
	Matched int
	// NoFlow counts observations dropped because the flow record has no
	// value on their date.
	NoFlow int
	// NoAux counts observations dropped because an auxiliary series was
	// absent or NaN on their date (hysteresis warm-up rows, typically).
	NoAux int
}

// String returns a one-line summary of the merge outcome.
func (r MergeReport) String() string {
	return fmt.Sprintf("MergeReport{Samples: %d, Matched: %d, NoFlow: %d, NoAux: %d}",
		r.Samples, r.Matched, r.NoFlow, r.NoAux)
}

// Merge joins water-quality samples to a daily flow record by exact date,
// building a calibration dataset.
//
// Each sample whose date appears in the flow record becomes one row carrying
// the sample value, its censor flag, the flow on that date, and one value
// from each auxiliary series (derived flow metrics such as hysteresis).
// Samples are matched on date equality only; there is no interpolation.
// Samples with no flow on their date are dropped and counted, as are samples
// for which an auxiliary series has no usable value. Replicate samples on
// one date each produce their own row.
//
// Parameters:
//   - samples: Water-quality observations, in any order
//   - flow: Daily flow record (unique dates guaranteed by Series)
//   - aux: Auxiliary series to join on the same dates
//
// Returns:
//   - *Dataset: Calibration dataset in non-decreasing date order
//   - MergeReport: Accounting of retained and dropped samples
//   - error: errs.ErrEmptySeries when samples or flow is empty,
//     errs.ErrDuplicateColumn when two auxiliary series share a name, or
//     errs.ErrEmptyDataset when no sample date matches the flow record
//
// Example:
//
//	dq1, _ := flow.Hysteresis(1)
//	ds, report, err := timeseries.Merge(samples, flow, dq1)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("calibration rows: %d (%d samples had no flow)\n", ds.Len(), report.NoFlow)
func Merge(samples []Sample, flow *Series, aux ...*Series) (*Dataset, MergeReport, error) {
	report := MergeReport{Samples: len(samples)}

	if len(samples) == 0 {
		return nil, report, fmt.Errorf("%w: no samples to merge", errs.ErrEmptySeries)
	}
	if flow == nil {
		return nil, report, fmt.Errorf("%w: no flow record", errs.ErrEmptySeries)
	}

	seen := make(map[string]struct{}, len(aux))
	for _, a := range aux {
		if a == nil {
			return nil, report, fmt.Errorf("%w: nil auxiliary series", errs.ErrEmptySeries)
		}
		if _, dup := seen[a.Name()]; dup {
			return nil, report, fmt.Errorf("%w: auxiliary series %q", errs.ErrDuplicateColumn, a.Name())
		}
		seen[a.Name()] = struct{}{}
	}

	ordered := slices.Clone(samples)
	slices.SortStableFunc(ordered, func(a, b Sample) int {
		return int(a.Date) - int(b.Date)
	})

	ds := &Dataset{}
	for _, a := range aux {
		ds.extra = append(ds.extra, Column{Name: a.Name()})
	}

	anyCensored := false
	auxRow := make([]float64, len(aux))

	for _, sample := range ordered {
		flowValue, ok := flow.Value(sample.Date)
		if !ok || math.IsNaN(flowValue) {
			report.NoFlow++
			continue
		}

		usable := true
		for i, a := range aux {
			v, ok := a.Value(sample.Date)
			if !ok || math.IsNaN(v) {
				report.NoAux++
				usable = false

				break
			}
			auxRow[i] = v
		}
		if !usable {
			continue
		}

		ds.dates = append(ds.dates, sample.Date)
		ds.flow = append(ds.flow, flowValue)
		ds.response = append(ds.response, sample.Value)
		ds.censored = append(ds.censored, sample.Censored)
		for i := range aux {
			ds.extra[i].Values = append(ds.extra[i].Values, auxRow[i])
		}
		if sample.Censored {
			anyCensored = true
		}
	}

	report.Matched = len(ds.dates)
	if report.Matched == 0 {
		return nil, report, fmt.Errorf("%w: no sample date matches the flow record", errs.ErrEmptyDataset)
	}
	if !anyCensored {
		ds.censored = nil
	}

	return ds, report, nil
}

// NewEstimationDataset builds a response-less dataset with one row per flow
// date, for load prediction over a continuous period.
//
// Rows where an auxiliary series has no usable value are dropped and counted
// in the report's NoAux field, so a prediction over a record that starts with
// hysteresis warm-up days simply starts after the warm-up.
//
// Parameters:
//   - flow: Daily flow record
//   - aux: Auxiliary series the model's covariates need
//
// Returns:
//   - *Dataset: Estimation dataset (HasResponse reports false)
//   - MergeReport: Samples holds the number of flow days offered
//   - error: errs.ErrEmptySeries, errs.ErrDuplicateColumn, or
//     errs.ErrEmptyDataset when no row survives
func NewEstimationDataset(flow *Series, aux ...*Series) (*Dataset, MergeReport, error) {
	report := MergeReport{}

	if flow == nil {
		return nil, report, fmt.Errorf("%w: no flow record", errs.ErrEmptySeries)
	}
	report.Samples = flow.Len()

	seen := make(map[string]struct{}, len(aux))
	for _, a := range aux {
		if a == nil {
			return nil, report, fmt.Errorf("%w: nil auxiliary series", errs.ErrEmptySeries)
		}
		if _, dup := seen[a.Name()]; dup {
			return nil, report, fmt.Errorf("%w: auxiliary series %q", errs.ErrDuplicateColumn, a.Name())
		}
		seen[a.Name()] = struct{}{}
	}

	ds := &Dataset{}
	for _, a := range aux {
		ds.extra = append(ds.extra, Column{Name: a.Name()})
	}

	auxRow := make([]float64, len(aux))
	for _, p := range flow.points {
		if math.IsNaN(p.Value) {
			report.NoFlow++
			continue
		}

		usable := true
		for i, a := range aux {
			v, ok := a.Value(p.Date)
			if !ok || math.IsNaN(v) {
				report.NoAux++
				usable = false

				break
			}
			auxRow[i] = v
		}
		if !usable {
			continue
		}

		ds.dates = append(ds.dates, p.Date)
		ds.flow = append(ds.flow, p.Value)
		for i := range aux {
			ds.extra[i].Values = append(ds.extra[i].Values, auxRow[i])
		}
	}

	report.Matched = len(ds.dates)
	if report.Matched == 0 {
		return nil, report, fmt.Errorf("%w: no usable flow days", errs.ErrEmptyDataset)
	}

	return ds, report, nil
}
