package timeseries

import (
	"fmt"
	"iter"
	"math"
	"slices"

	"github.com/kashenfelter/rloadest/errs"
)

// Point is a single dated observation in a series.
//
// A NaN value marks a date that is present in the record but has no usable
// observation (for example the warm-up rows of a hysteresis series).
type Point struct {
	Date  Date
	Value float64
}

// Sample is a single water-quality observation.
//
// Censored marks a "less-than" value: the constituent was not detected and
// Value holds the laboratory reporting limit rather than a measurement.
type Sample struct {
	Date     Date
	Value    float64
	Censored bool
}

// Series is a named, date-ascending sequence of daily observations with
// unique dates.
//
// The ordering and uniqueness invariants are established at construction and
// hold for the life of the value, so consumers (merging, hysteresis) can
// binary-search and difference positions without re-validating. A Series is
// immutable after construction and safe for concurrent readers.
type Series struct {
	name   string
	points []Point
}

// NewSeries creates a Series from points that must already be in strictly
// ascending date order.
//
// Parameters:
//   - name: Series name, used as the column name when merged into a dataset
//   - points: Observations in ascending date order, unique dates
//
// Returns:
//   - *Series: Validated series
//   - error: errs.ErrEmptySeries when points is empty, errs.ErrUnsortedDates
//     or errs.ErrDuplicateDate when the date order invariant does not hold
//
// The points slice is copied; the caller keeps ownership of its argument.
func NewSeries(name string, points []Point) (*Series, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("%w: series %q", errs.ErrEmptySeries, name)
	}

	for i := 1; i < len(points); i++ {
		switch {
		case points[i].Date == points[i-1].Date:
			return nil, fmt.Errorf("%w: series %q has two observations on %s",
				errs.ErrDuplicateDate, name, points[i].Date)
		case points[i].Date < points[i-1].Date:
			return nil, fmt.Errorf("%w: series %q at %s", errs.ErrUnsortedDates, name, points[i].Date)
		}
	}

	return &Series{name: name, points: slices.Clone(points)}, nil
}

// NewDailySeries creates a gap-free daily Series starting at start, with one
// point per element of values.
//
// This is the natural constructor for daily discharge records, where the
// source provides a start date and a dense slice of daily means.
//
// Parameters:
//   - name: Series name
//   - start: Date of values[0]
//   - values: One value per consecutive calendar day
//
// Returns:
//   - *Series: Gap-free daily series
//   - error: errs.ErrEmptySeries when values is empty
func NewDailySeries(name string, start Date, values []float64) (*Series, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: series %q", errs.ErrEmptySeries, name)
	}

	points := make([]Point, len(values))
	for i, v := range values {
		points[i] = Point{Date: start.AddDays(i), Value: v}
	}

	return &Series{name: name, points: points}, nil
}

// Name returns the series name.
func (s *Series) Name() string {
	return s.name
}

// Len returns the number of observations.
func (s *Series) Len() int {
	return len(s.points)
}

// At returns the observation at position i.
func (s *Series) At(i int) Point {
	return s.points[i]
}

// Start returns the first date in the series.
func (s *Series) Start() Date {
	return s.points[0].Date
}

// End returns the last date in the series.
func (s *Series) End() Date {
	return s.points[len(s.points)-1].Date
}

// Value returns the observation for the given date and whether the date is
// present in the series.
func (s *Series) Value(date Date) (float64, bool) {
	i, ok := slices.BinarySearchFunc(s.points, date, func(p Point, d Date) int {
		return int(p.Date) - int(d)
	})
	if !ok {
		return 0, false
	}

	return s.points[i].Value, true
}

// Dates returns a copy of all dates in order.
func (s *Series) Dates() []Date {
	dates := make([]Date, len(s.points))
	for i, p := range s.points {
		dates[i] = p.Date
	}

	return dates
}

// Values returns a copy of all values in date order.
func (s *Series) Values() []float64 {
	values := make([]float64, len(s.points))
	for i, p := range s.points {
		values[i] = p.Value
	}

	return values
}

// All returns an iterator over (date, value) pairs in date order.
//
// Example:
//
//	for date, value := range flow.All() {
//	    fmt.Printf("%s %f\n", date, value)
//	}
func (s *Series) All() iter.Seq2[Date, float64] {
	return func(yield func(Date, float64) bool) {
		for _, p := range s.points {
			if !yield(p.Date, p.Value) {
				return
			}
		}
	}
}

// LogValues returns the natural log of every value in date order.
//
// Returns:
//   - []float64: ln of each value
//   - error: errs.ErrNonPositiveValue naming the first offending date when a
//     value is zero or negative, errs.ErrMissingValue when a value is NaN
func (s *Series) LogValues() ([]float64, error) {
	logs := make([]float64, len(s.points))
	for i, p := range s.points {
		if math.IsNaN(p.Value) {
			return nil, fmt.Errorf("%w: series %q at %s", errs.ErrMissingValue, s.name, p.Date)
		}
		if p.Value <= 0 {
			return nil, fmt.Errorf("%w: series %q has %g at %s",
				errs.ErrNonPositiveValue, s.name, p.Value, p.Date)
		}
		logs[i] = math.Log(p.Value)
	}

	return logs, nil
}

// continuous reports whether the series has one observation per calendar day
// with no gaps.
func (s *Series) continuous() bool {
	return int(s.End()-s.Start()) == len(s.points)-1
}
