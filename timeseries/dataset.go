package timeseries

import (
	"fmt"
	"slices"

	"github.com/kashenfelter/rloadest/errs"
)

// Column is a named auxiliary variable aligned row-for-row with a dataset.
type Column struct {
	Name   string
	Values []float64
}

// Dataset is a rectangular table of dated observations: one flow value per
// row, optional response (constituent concentration) and censor flags, and
// any number of named auxiliary columns.
//
// Two shapes occur in practice:
//
//   - Calibration datasets carry a response and come out of Merge; each row
//     is one water-quality sample joined to its daily flow.
//   - Estimation datasets carry no response and come out of
//     NewEstimationDataset; each row is one day to predict a load for.
//
// Rows are in non-decreasing date order (replicate samples may share a
// date). A Dataset is immutable after construction.
type Dataset struct {
	dates    []Date
	flow     []float64
	response []float64 // nil for estimation datasets
	censored []bool    // nil when no row is censored
	extra    []Column
}

// NewDataset creates a Dataset from parallel row slices.
//
// Parameters:
//   - dates: Row dates in non-decreasing order
//   - flow: Daily flow per row, same length as dates
//   - response: Constituent concentration per row, or nil for an estimation
//     dataset
//   - censored: Censor flag per row, or nil when no row is censored
//   - extra: Auxiliary columns, each the same length as dates
//
// Returns:
//   - *Dataset: Validated dataset (all slices are copied)
//   - error: errs.ErrEmptyDataset, errs.ErrUnsortedDates on out-of-order
//     rows, errs.ErrDuplicateColumn on repeated column names, or
//     errs.ErrSeriesTooShort on length mismatches
func NewDataset(dates []Date, flow, response []float64, censored []bool, extra ...Column) (*Dataset, error) {
	n := len(dates)
	if n == 0 {
		return nil, errs.ErrEmptyDataset
	}
	if len(flow) != n {
		return nil, fmt.Errorf("%w: %d flow values for %d rows", errs.ErrSeriesTooShort, len(flow), n)
	}
	if response != nil && len(response) != n {
		return nil, fmt.Errorf("%w: %d response values for %d rows", errs.ErrSeriesTooShort, len(response), n)
	}
	if censored != nil && len(censored) != n {
		return nil, fmt.Errorf("%w: %d censor flags for %d rows", errs.ErrSeriesTooShort, len(censored), n)
	}

	for i := 1; i < n; i++ {
		if dates[i] < dates[i-1] {
			return nil, fmt.Errorf("%w: row %d (%s)", errs.ErrUnsortedDates, i, dates[i])
		}
	}

	ds := &Dataset{
		dates: slices.Clone(dates),
		flow:  slices.Clone(flow),
	}
	if response != nil {
		ds.response = slices.Clone(response)
	}
	if censored != nil {
		ds.censored = slices.Clone(censored)
	}

	seen := make(map[string]struct{}, len(extra))
	for _, col := range extra {
		if _, dup := seen[col.Name]; dup {
			return nil, fmt.Errorf("%w: %q", errs.ErrDuplicateColumn, col.Name)
		}
		seen[col.Name] = struct{}{}

		if len(col.Values) != n {
			return nil, fmt.Errorf("%w: column %q has %d values for %d rows",
				errs.ErrSeriesTooShort, col.Name, len(col.Values), n)
		}
		ds.extra = append(ds.extra, Column{Name: col.Name, Values: slices.Clone(col.Values)})
	}

	return ds, nil
}

// Len returns the number of rows.
func (ds *Dataset) Len() int {
	return len(ds.dates)
}

// Date returns the date of row i.
func (ds *Dataset) Date(i int) Date {
	return ds.dates[i]
}

// Dates returns a copy of all row dates.
func (ds *Dataset) Dates() []Date {
	return slices.Clone(ds.dates)
}

// Flow returns a copy of the flow column.
func (ds *Dataset) Flow() []float64 {
	return slices.Clone(ds.flow)
}

// HasResponse reports whether the dataset carries a response column, i.e.
// whether it can be used for calibration.
func (ds *Dataset) HasResponse() bool {
	return ds.response != nil
}

// Response returns a copy of the response column, or nil for estimation
// datasets.
func (ds *Dataset) Response() []float64 {
	if ds.response == nil {
		return nil
	}

	return slices.Clone(ds.response)
}

// Censored reports whether row i is a censored (less-than) observation.
func (ds *Dataset) Censored(i int) bool {
	return ds.censored != nil && ds.censored[i]
}

// CensoredCount returns the number of censored rows.
func (ds *Dataset) CensoredCount() int {
	count := 0
	for _, c := range ds.censored {
		if c {
			count++
		}
	}

	return count
}

// ColumnNames returns the auxiliary column names in column order.
func (ds *Dataset) ColumnNames() []string {
	names := make([]string, len(ds.extra))
	for i, col := range ds.extra {
		names[i] = col.Name
	}

	return names
}

// Column returns a copy of the named auxiliary column.
//
// Returns:
//   - []float64: Column values in row order
//   - error: errs.ErrUnknownColumn when the dataset has no such column
func (ds *Dataset) Column(name string) ([]float64, error) {
	for _, col := range ds.extra {
		if col.Name == name {
			return slices.Clone(col.Values), nil
		}
	}

	return nil, fmt.Errorf("%w: %q (have %v)", errs.ErrUnknownColumn, name, ds.ColumnNames())
}
