package timeseries

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewDate(t *testing.T) {
	t.Run("Epoch", func(t *testing.T) {
		d := NewDate(1970, time.January, 1)
		require.Equal(t, Date(0), d)
		require.Equal(t, "1970-01-01", d.String())
	})

	t.Run("CalendarRoundTrip", func(t *testing.T) {
		d := NewDate(2003, time.October, 1)
		require.Equal(t, 2003, d.Year())
		require.Equal(t, time.October, d.Month())
		require.Equal(t, 1, d.Day())
	})

	t.Run("BeforeEpoch", func(t *testing.T) {
		d := NewDate(1969, time.December, 31)
		require.Equal(t, Date(-1), d)
		require.Equal(t, "1969-12-31", d.String())
	})
}

func TestParseDate(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		d, err := ParseDate("2012-09-30")
		require.NoError(t, err)
		require.Equal(t, NewDate(2012, time.September, 30), d)
	})

	t.Run("Malformed", func(t *testing.T) {
		_, err := ParseDate("09/30/2012")
		require.Error(t, err)
	})
}

func TestDateArithmetic(t *testing.T) {
	start := NewDate(2003, time.October, 1)

	t.Run("AddDays", func(t *testing.T) {
		require.Equal(t, "2003-10-02", start.AddDays(1).String())
		require.Equal(t, "2003-09-30", start.AddDays(-1).String())
		require.Equal(t, "2004-09-30", start.AddDays(365).String()) // crosses 2004-02-29
	})

	t.Run("Sub", func(t *testing.T) {
		end := NewDate(2012, time.September, 30)
		require.Equal(t, 3287, end.Sub(start))
		require.Equal(t, -3287, start.Sub(end))
	})
}

func TestDecimalYear(t *testing.T) {
	t.Run("FirstDayOfYear", func(t *testing.T) {
		d := NewDate(2003, time.January, 1)
		require.InDelta(t, 2003.0+0.5/365.0, d.DecimalYear(), 1e-12)
	})

	t.Run("LastDayOfYear", func(t *testing.T) {
		d := NewDate(2003, time.December, 31)
		require.InDelta(t, 2003.0+364.5/365.0, d.DecimalYear(), 1e-12)
	})

	t.Run("LeapYear", func(t *testing.T) {
		d := NewDate(2004, time.December, 31)
		require.InDelta(t, 2004.0+365.5/366.0, d.DecimalYear(), 1e-12)
	})

	t.Run("StrictlyInsideYear", func(t *testing.T) {
		for _, d := range []Date{
			NewDate(2000, time.January, 1),
			NewDate(2000, time.December, 31),
			NewDate(2001, time.January, 1),
		} {
			frac := d.DecimalYear() - float64(d.Year())
			require.Greater(t, frac, 0.0)
			require.Less(t, frac, 1.0)
		}
	})
}

func TestWaterYear(t *testing.T) {
	require.Equal(t, 2004, NewDate(2003, time.October, 1).WaterYear())
	require.Equal(t, 2003, NewDate(2003, time.September, 30).WaterYear())
	require.Equal(t, 2004, NewDate(2004, time.September, 30).WaterYear())
	require.Equal(t, 2004, NewDate(2003, time.December, 31).WaterYear())
	require.Equal(t, 2004, NewDate(2004, time.January, 1).WaterYear())
}
