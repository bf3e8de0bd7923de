package timeseries

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kashenfelter/rloadest/errs"
)

func TestHysteresis(t *testing.T) {
	logFlow := []float64{4.5, 4.7, 5.2, 5.0, 4.8}

	t.Run("Lag1", func(t *testing.T) {
		out, err := Hysteresis(logFlow, 1)
		require.NoError(t, err)
		require.Len(t, out, len(logFlow))

		require.True(t, math.IsNaN(out[0]))
		for i := 1; i < len(logFlow); i++ {
			require.Equal(t, logFlow[i]-logFlow[i-1], out[i])
		}
	})

	t.Run("Lag3", func(t *testing.T) {
		out, err := Hysteresis(logFlow, 3)
		require.NoError(t, err)

		for i := range 3 {
			require.True(t, math.IsNaN(out[i]))
		}
		require.Equal(t, logFlow[3]-logFlow[0], out[3])
		require.Equal(t, logFlow[4]-logFlow[1], out[4])
	})

	t.Run("LagZero", func(t *testing.T) {
		_, err := Hysteresis(logFlow, 0)
		require.ErrorIs(t, err, errs.ErrInvalidLag)
		require.True(t, errs.IsInvalidArgument(err))
	})

	t.Run("LagNegative", func(t *testing.T) {
		_, err := Hysteresis(logFlow, -2)
		require.ErrorIs(t, err, errs.ErrInvalidLag)
	})

	t.Run("TooShort", func(t *testing.T) {
		_, err := Hysteresis(logFlow, 5)
		require.ErrorIs(t, err, errs.ErrSeriesTooShort)
		require.True(t, errs.IsInvalidArgument(err))
	})

	t.Run("ExactlyLongEnough", func(t *testing.T) {
		out, err := Hysteresis(logFlow, 4)
		require.NoError(t, err)
		require.Equal(t, logFlow[4]-logFlow[0], out[4])
	})
}

func TestSeriesHysteresis(t *testing.T) {
	flow := createTestFlow(t)

	t.Run("NameAndAlignment", func(t *testing.T) {
		dq1, err := flow.Hysteresis(1)
		require.NoError(t, err)
		require.Equal(t, "dQ1", dq1.Name())
		require.Equal(t, flow.Dates(), dq1.Dates())

		require.True(t, math.IsNaN(dq1.At(0).Value))
		values := flow.Values()
		for i := 1; i < flow.Len(); i++ {
			require.InDelta(t, math.Log(values[i])-math.Log(values[i-1]), dq1.At(i).Value, 1e-15)
		}
	})

	t.Run("RisingAndFallingLimbs", func(t *testing.T) {
		// The test record peaks on day 4, so hysteresis is positive
		// through the peak and negative after it.
		dq1, err := flow.Hysteresis(1)
		require.NoError(t, err)

		require.Positive(t, dq1.At(2).Value)
		require.Positive(t, dq1.At(3).Value)
		require.Negative(t, dq1.At(4).Value)
		require.Negative(t, dq1.At(5).Value)
	})

	t.Run("LagName", func(t *testing.T) {
		dq3, err := flow.Hysteresis(3)
		require.NoError(t, err)
		require.Equal(t, "dQ3", dq3.Name())
	})

	t.Run("GappedRecord", func(t *testing.T) {
		points := []Point{
			{Date: NewDate(2003, time.October, 1), Value: 120},
			{Date: NewDate(2003, time.October, 3), Value: 310},
		}
		gapped, err := NewSeries("Flow", points)
		require.NoError(t, err)

		_, err = gapped.Hysteresis(1)
		require.ErrorIs(t, err, errs.ErrGappedSeries)
		require.True(t, errs.IsInvalidArgument(err))
	})

	t.Run("InvalidLag", func(t *testing.T) {
		_, err := flow.Hysteresis(0)
		require.ErrorIs(t, err, errs.ErrInvalidLag)
	})

	t.Run("NonPositiveFlow", func(t *testing.T) {
		s, err := NewDailySeries("Flow", NewDate(2003, time.October, 1), []float64{10, -5, 20})
		require.NoError(t, err)

		_, err = s.Hysteresis(1)
		require.ErrorIs(t, err, errs.ErrNonPositiveValue)
	})
}
