package timeseries

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kashenfelter/rloadest/errs"
)

func TestNewDataset(t *testing.T) {
	dates := []Date{
		NewDate(2003, time.October, 1),
		NewDate(2003, time.October, 2),
		NewDate(2003, time.October, 2), // replicate sample date
	}
	flow := []float64{120, 150, 150}
	response := []float64{1.2, 1.4, 1.5}

	t.Run("Calibration", func(t *testing.T) {
		ds, err := NewDataset(dates, flow, response, []bool{false, true, false},
			Column{Name: "dQ1", Values: []float64{0.1, 0.2, 0.2}})
		require.NoError(t, err)

		require.Equal(t, 3, ds.Len())
		require.True(t, ds.HasResponse())
		require.True(t, ds.Censored(1))
		require.Equal(t, 1, ds.CensoredCount())
		require.Equal(t, []string{"dQ1"}, ds.ColumnNames())

		col, err := ds.Column("dQ1")
		require.NoError(t, err)
		require.Equal(t, []float64{0.1, 0.2, 0.2}, col)
	})

	t.Run("Estimation", func(t *testing.T) {
		ds, err := NewDataset(dates, flow, nil, nil)
		require.NoError(t, err)
		require.False(t, ds.HasResponse())
		require.Nil(t, ds.Response())
		require.False(t, ds.Censored(0))
		require.Zero(t, ds.CensoredCount())
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := NewDataset(nil, nil, nil, nil)
		require.ErrorIs(t, err, errs.ErrEmptyDataset)
	})

	t.Run("FlowLengthMismatch", func(t *testing.T) {
		_, err := NewDataset(dates, []float64{120}, nil, nil)
		require.ErrorIs(t, err, errs.ErrSeriesTooShort)
	})

	t.Run("ResponseLengthMismatch", func(t *testing.T) {
		_, err := NewDataset(dates, flow, []float64{1.2}, nil)
		require.ErrorIs(t, err, errs.ErrSeriesTooShort)
	})

	t.Run("ColumnLengthMismatch", func(t *testing.T) {
		_, err := NewDataset(dates, flow, nil, nil, Column{Name: "dQ1", Values: []float64{0.1}})
		require.ErrorIs(t, err, errs.ErrSeriesTooShort)
	})

	t.Run("UnsortedRows", func(t *testing.T) {
		bad := []Date{NewDate(2003, time.October, 2), NewDate(2003, time.October, 1)}
		_, err := NewDataset(bad, []float64{1, 2}, nil, nil)
		require.ErrorIs(t, err, errs.ErrUnsortedDates)
	})

	t.Run("DuplicateColumn", func(t *testing.T) {
		_, err := NewDataset(dates, flow, nil, nil,
			Column{Name: "dQ1", Values: []float64{1, 2, 3}},
			Column{Name: "dQ1", Values: []float64{4, 5, 6}})
		require.ErrorIs(t, err, errs.ErrDuplicateColumn)
	})

	t.Run("UnknownColumn", func(t *testing.T) {
		ds, err := NewDataset(dates, flow, nil, nil)
		require.NoError(t, err)

		_, err = ds.Column("dQ1")
		require.ErrorIs(t, err, errs.ErrUnknownColumn)
		require.True(t, errs.IsInvalidArgument(err))
	})

	t.Run("CopiesInput", func(t *testing.T) {
		ds, err := NewDataset(dates, flow, response, nil)
		require.NoError(t, err)

		flow[0] = -999
		require.Equal(t, 120.0, ds.Flow()[0])
		flow[0] = 120
	})
}
