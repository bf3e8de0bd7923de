package timeseries

import (
	"fmt"
	"math"
	"strconv"

	"github.com/kashenfelter/rloadest/errs"
)

// Hysteresis computes the lagged difference of a log-flow record:
//
//	out[i] = logFlow[i] - logFlow[i-lag]
//
// The first lag positions have no antecedent value and are NaN. The metric
// captures whether the hydrograph is rising (positive) or falling (negative)
// relative to lag days earlier, which separates samples taken on the rising
// and falling limbs of a storm event.
//
// Parameters:
//   - logFlow: Natural log of daily flow, one element per consecutive day
//   - lag: Antecedent offset in days, at least 1
//
// Returns:
//   - []float64: Lagged differences, NaN for the first lag positions
//   - error: errs.ErrInvalidLag when lag < 1, errs.ErrSeriesTooShort when
//     len(logFlow) < lag+1
//
// Example:
//
//	dq, err := timeseries.Hysteresis(logFlow, 1)
func Hysteresis(logFlow []float64, lag int) ([]float64, error) {
	if lag < 1 {
		return nil, fmt.Errorf("%w: got %d", errs.ErrInvalidLag, lag)
	}
	if len(logFlow) < lag+1 {
		return nil, fmt.Errorf("%w: need at least %d observations for lag %d, got %d",
			errs.ErrSeriesTooShort, lag+1, lag, len(logFlow))
	}

	out := make([]float64, len(logFlow))
	for i := range lag {
		out[i] = math.NaN()
	}
	for i := lag; i < len(logFlow); i++ {
		out[i] = logFlow[i] - logFlow[i-lag]
	}

	return out, nil
}

// Hysteresis derives the lagged log-flow difference series from a gap-free
// daily flow record.
//
// The receiver holds raw (untransformed) daily flow; values are logged before
// differencing so index offsets equal day offsets. The result keeps the flow
// record's dates and is named "dQ" followed by the lag ("dQ1" for lag 1),
// ready to be passed to Merge as an auxiliary column.
//
// Returns:
//   - *Series: Hysteresis series aligned to the flow record, NaN warm-up rows
//   - error: errs.ErrInvalidLag, errs.ErrSeriesTooShort, errs.ErrGappedSeries
//     when the record is not daily-continuous, or errs.ErrNonPositiveValue
//     when flow cannot be logged
func (s *Series) Hysteresis(lag int) (*Series, error) {
	if lag < 1 {
		return nil, fmt.Errorf("%w: got %d", errs.ErrInvalidLag, lag)
	}
	if !s.continuous() {
		return nil, fmt.Errorf("%w: series %q spans %s to %s with %d observations",
			errs.ErrGappedSeries, s.name, s.Start(), s.End(), len(s.points))
	}

	logFlow, err := s.LogValues()
	if err != nil {
		return nil, err
	}

	diffs, err := Hysteresis(logFlow, lag)
	if err != nil {
		return nil, err
	}

	points := make([]Point, len(diffs))
	for i, d := range diffs {
		points[i] = Point{Date: s.points[i].Date, Value: d}
	}

	return &Series{name: "dQ" + strconv.Itoa(lag), points: points}, nil
}
