package rloadest

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kashenfelter/rloadest/archive"
	"github.com/kashenfelter/rloadest/regression"
	"github.com/kashenfelter/rloadest/timeseries"
)

// TestCalibrationDataset verifies sample-to-flow matching and the merge report
func TestCalibrationDataset(t *testing.T) {
	flow, samples := createTestRecord(t)

	// One sample dated after the flow record ends, so it cannot be matched.
	stray := timeseries.Sample{Date: timeseries.NewDate(2008, time.March, 1), Value: 0.05}
	ds, report, err := CalibrationDataset(append(samples, stray), flow)

	require.NoError(t, err)
	require.Equal(t, 15, ds.Len())
	require.True(t, ds.HasResponse())
	require.Equal(t, 16, report.Samples)
	require.Equal(t, 15, report.Matched)
	require.Equal(t, 1, report.NoFlow)
}

// TestEstimationDataset verifies a gap-free daily record merges completely
func TestEstimationDataset(t *testing.T) {
	flow, _ := createTestRecord(t)

	ds, report, err := EstimationDataset(flow)

	require.NoError(t, err)
	require.Equal(t, 60, ds.Len())
	require.False(t, ds.HasResponse())
	require.Equal(t, 60, report.Samples)
	require.Equal(t, 60, report.Matched)
}

// TestFitLoadModel verifies coefficient recovery on a noiseless record
func TestFitLoadModel(t *testing.T) {
	flow, samples := createTestRecord(t)
	ds, _, err := CalibrationDataset(samples, flow)
	require.NoError(t, err)

	model, err := FitLoadModel(ds, regression.NewSpec("lnQ",
		regression.Linear(regression.FlowLog),
	))
	require.NoError(t, err)
	require.Len(t, model.Coefficients, 2)

	// lnQ is centered at its calibration mean, which shifts the intercept.
	center := 0.0
	for _, q := range ds.Flow() {
		center += math.Log(q)
	}
	center /= float64(ds.Len())

	require.InDelta(t, 1.1+0.7*center, model.Coefficients[0].Value, 1e-9)
	require.InDelta(t, 0.7, model.Coefficients[1].Value, 1e-9)
	require.InDelta(t, 1.0, model.RSquared, 1e-9)
}

// TestSelectLoadModel verifies the comparison table covers every candidate
func TestSelectLoadModel(t *testing.T) {
	flow, samples := createTestRecord(t)
	ds, _, err := CalibrationDataset(samples, flow)
	require.NoError(t, err)

	selection, err := SelectLoadModel(ds)
	require.NoError(t, err)
	require.Len(t, selection.Candidates, 9)

	for _, c := range selection.Candidates {
		require.NoError(t, c.Err, "candidate %s", c.Spec.Name)
	}

	best, err := selection.Best()
	require.NoError(t, err)
	require.Greater(t, best.RSquared, 0.999)
}

// TestEstimateLoads verifies daily estimates reproduce the generating curve
func TestEstimateLoads(t *testing.T) {
	flow, samples := createTestRecord(t)
	ds, _, err := CalibrationDataset(samples, flow)
	require.NoError(t, err)

	model, err := FitLoadModel(ds, regression.NewSpec("lnQ",
		regression.Linear(regression.FlowLog),
	))
	require.NoError(t, err)

	pred, report, err := EstimateLoads(model, flow, nil,
		regression.WithCorrection(regression.CorrectionNone),
	)
	require.NoError(t, err)
	require.Equal(t, 60, report.Matched)
	require.Len(t, pred.Values, 60)
	require.Equal(t, regression.CorrectionNone, pred.Correction)
	require.Equal(t, 1.0, pred.Factor)

	est, _, err := EstimationDataset(flow)
	require.NoError(t, err)
	for i, q := range est.Flow() {
		want := math.Exp(1.1 + 0.7*math.Log(q))
		require.InEpsilon(t, want, pred.Values[i], 1e-9)
	}

	// The whole record falls in water year 2008.
	totals := pred.TotalsByWaterYear()
	require.Len(t, totals, 1)
	require.Equal(t, "WY2008", totals[0].Label)
	require.Equal(t, 60, totals[0].Days)
}

// TestArchiveRoundTrip verifies a dataset survives archival unchanged
func TestArchiveRoundTrip(t *testing.T) {
	flow, samples := createTestRecord(t)
	ds, _, err := CalibrationDataset(samples, flow)
	require.NoError(t, err)

	data, err := ArchiveDataset(ds,
		archive.WithStation("05586100"),
		archive.WithConstituent("Atrazine"),
	)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	arch, err := RestoreDataset(data)
	require.NoError(t, err)
	require.Equal(t, "05586100", arch.Station)
	require.Equal(t, "Atrazine", arch.Constituent)
	require.Equal(t, ds, arch.Data)
}

// TestDatasetID verifies identity hashing is deterministic and order-sensitive
func TestDatasetID(t *testing.T) {
	id1 := DatasetID("05586100", "Atrazine")
	id2 := DatasetID("05586100", "Atrazine")

	require.Equal(t, id1, id2, "DatasetID should be deterministic")
	require.NotZero(t, id1)

	require.NotEqual(t, id1, DatasetID("Atrazine", "05586100"))
	require.NotEqual(t, DatasetID("ab", "c"), DatasetID("a", "bc"))
}

// Helper function to create a synthetic gauging record: a 60-day daily flow
// series and 15 concentration samples generated from ln(load) = 1.1 + 0.7·lnQ
// with no noise, so fitted coefficients are known in advance.
func createTestRecord(t *testing.T) (*timeseries.Series, []timeseries.Sample) {
	t.Helper()

	start := timeseries.NewDate(2007, time.October, 1)
	flows := make([]float64, 60)
	for i := range flows {
		flows[i] = 140 + 90*math.Sin(0.41*float64(i))
	}

	flow, err := timeseries.NewDailySeries("Q", start, flows)
	require.NoError(t, err)

	samples := make([]timeseries.Sample, 0, 15)
	for k := 0; k < 15; k++ {
		i := k * 4
		load := math.Exp(1.1 + 0.7*math.Log(flows[i]))
		samples = append(samples, timeseries.Sample{
			Date:  start.AddDays(i),
			Value: load / (flows[i] * regression.KgPerDayCFS),
		})
	}

	return flow, samples
}
