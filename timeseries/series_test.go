package timeseries

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kashenfelter/rloadest/errs"
)

// createTestFlow returns a 10-day daily flow record starting 2003-10-01 with
// strictly positive values.
func createTestFlow(t *testing.T) *Series {
	t.Helper()

	values := []float64{120, 150, 310, 480, 390, 260, 200, 170, 155, 140}
	s, err := NewDailySeries("Flow", NewDate(2003, time.October, 1), values)
	require.NoError(t, err)

	return s
}

func TestNewSeries(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		points := []Point{
			{Date: NewDate(2003, time.October, 1), Value: 120},
			{Date: NewDate(2003, time.October, 5), Value: 390},
			{Date: NewDate(2003, time.November, 2), Value: 150},
		}
		s, err := NewSeries("Flow", points)
		require.NoError(t, err)
		require.Equal(t, "Flow", s.Name())
		require.Equal(t, 3, s.Len())
		require.Equal(t, points[1], s.At(1))
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := NewSeries("Flow", nil)
		require.ErrorIs(t, err, errs.ErrEmptySeries)
		require.True(t, errs.IsInvalidArgument(err))
	})

	t.Run("DuplicateDate", func(t *testing.T) {
		d := NewDate(2003, time.October, 1)
		_, err := NewSeries("Flow", []Point{{Date: d, Value: 1}, {Date: d, Value: 2}})
		require.ErrorIs(t, err, errs.ErrDuplicateDate)
		require.True(t, errs.IsFormat(err))
	})

	t.Run("UnsortedDates", func(t *testing.T) {
		points := []Point{
			{Date: NewDate(2003, time.October, 2), Value: 1},
			{Date: NewDate(2003, time.October, 1), Value: 2},
		}
		_, err := NewSeries("Flow", points)
		require.ErrorIs(t, err, errs.ErrUnsortedDates)
		require.True(t, errs.IsFormat(err))
	})

	t.Run("CopiesInput", func(t *testing.T) {
		points := []Point{{Date: NewDate(2003, time.October, 1), Value: 120}}
		s, err := NewSeries("Flow", points)
		require.NoError(t, err)

		points[0].Value = -1
		require.Equal(t, 120.0, s.At(0).Value)
	})
}

func TestNewDailySeries(t *testing.T) {
	flow := createTestFlow(t)

	require.Equal(t, 10, flow.Len())
	require.Equal(t, "2003-10-01", flow.Start().String())
	require.Equal(t, "2003-10-10", flow.End().String())

	for i := 1; i < flow.Len(); i++ {
		require.Equal(t, flow.At(i-1).Date.AddDays(1), flow.At(i).Date)
	}
}

func TestSeriesValue(t *testing.T) {
	flow := createTestFlow(t)

	t.Run("Present", func(t *testing.T) {
		v, ok := flow.Value(NewDate(2003, time.October, 4))
		require.True(t, ok)
		require.Equal(t, 480.0, v)
	})

	t.Run("Absent", func(t *testing.T) {
		_, ok := flow.Value(NewDate(2003, time.September, 30))
		require.False(t, ok)

		_, ok = flow.Value(NewDate(2003, time.October, 11))
		require.False(t, ok)
	})
}

func TestSeriesAll(t *testing.T) {
	flow := createTestFlow(t)

	var dates []Date
	var values []float64
	for date, value := range flow.All() {
		dates = append(dates, date)
		values = append(values, value)
	}

	require.Equal(t, flow.Dates(), dates)
	require.Equal(t, flow.Values(), values)
}

func TestLogValues(t *testing.T) {
	t.Run("Positive", func(t *testing.T) {
		flow := createTestFlow(t)
		logs, err := flow.LogValues()
		require.NoError(t, err)
		require.Len(t, logs, flow.Len())
		for i, v := range flow.Values() {
			require.Equal(t, math.Log(v), logs[i])
		}
	})

	t.Run("NonPositive", func(t *testing.T) {
		s, err := NewDailySeries("Flow", NewDate(2003, time.October, 1), []float64{10, 0, 20})
		require.NoError(t, err)

		_, err = s.LogValues()
		require.ErrorIs(t, err, errs.ErrNonPositiveValue)
		require.True(t, errs.IsInvalidArgument(err))
	})

	t.Run("NaN", func(t *testing.T) {
		s, err := NewDailySeries("Flow", NewDate(2003, time.October, 1), []float64{10, math.NaN(), 20})
		require.NoError(t, err)

		_, err = s.LogValues()
		require.ErrorIs(t, err, errs.ErrMissingValue)
	})
}
