// Package rloadest estimates constituent loads in streams and rivers.
//
// Water-quality constituents (nutrients, pesticides, sediment) are sampled a
// few dozen times a year, while streamflow is gaged every day. This package
// bridges the gap with rating-curve regression: calibrate a model of log
// load on flow and season from the sampled days, then run it over the full
// daily-flow record to estimate loads for the days nobody sampled.
//
// # Core Features
//
//   - Exact-date merging of sample sets with daily flow records, with an
//     accounting of every dropped row
//   - Flow and seasonal predictors: log flow, quadratic log flow, decimal
//     time, Fourier harmonics, hysteresis (lagged log-flow difference) and
//     arbitrary user covariates
//   - Ordinary least squares calibration on centered predictors, with an
//     AIC/PPCC selection table over the nine standard rating-curve forms
//   - Duan smearing and MLE retransformation bias corrections
//   - Daily load prediction with water-year and monthly mass totals
//   - Compact compressed archives of calibration and estimation datasets
//
// # Basic Usage
//
// Calibrate a model and estimate daily loads:
//
//	flow, err := timeseries.NewDailySeries("Q", start, dailyFlows)
//	if err != nil {
//	    return err
//	}
//	dq1, err := flow.Hysteresis(1)
//	if err != nil {
//	    return err
//	}
//
//	ds, report, err := rloadest.CalibrationDataset(samples, flow, dq1)
//	if err != nil {
//	    return err
//	}
//	log.Printf("calibration rows: %s", report)
//
//	model, err := rloadest.FitLoadModel(ds, regression.NewSpec("storm model",
//	    regression.Quadratic(regression.FlowLog),
//	    regression.Fourier(2),
//	    regression.Linear(regression.DecimalTime),
//	    regression.Covariate("dQ1"),
//	))
//	if err != nil {
//	    return err
//	}
//
//	pred, _, err := rloadest.EstimateLoads(model, flow, []*timeseries.Series{dq1})
//	if err != nil {
//	    return err
//	}
//	for _, total := range pred.TotalsByWaterYear() {
//	    fmt.Println(total)
//	}
//
// Let the selection table pick the model form:
//
//	sel, err := rloadest.SelectLoadModel(ds)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(sel) // one line per candidate, AIC and PPCC included
//	model, err := sel.Best()
//
// Cache a merged dataset for later runs:
//
//	data, err := rloadest.ArchiveDataset(ds,
//	    archive.WithStation("05586100"),
//	    archive.WithConstituent("Atrazine"),
//	)
//	// ... later ...
//	arch, err := rloadest.RestoreDataset(data)
//	model, err := rloadest.FitLoadModel(arch.Data, spec)
//
// # Package Structure
//
//   - timeseries: dates, daily series, sample sets, hysteresis, merging
//   - regression: model terms, fitting, selection, bias correction, prediction
//   - archive: binary dataset serialization with selectable compression
//   - errs: sentinel errors and error-kind predicates
//
// The functions below cover the common workflow; the subpackages expose the
// full surface.
package rloadest

import (
	"github.com/kashenfelter/rloadest/archive"
	"github.com/kashenfelter/rloadest/internal/hash"
	"github.com/kashenfelter/rloadest/regression"
	"github.com/kashenfelter/rloadest/timeseries"
)

// CalibrationDataset joins water-quality samples to a daily flow record by
// exact date, producing the table FitLoadModel and SelectLoadModel calibrate
// on.
//
// Samples on days the flow record misses, or days any auxiliary series
// misses, are dropped and counted in the report rather than failing the
// merge.
//
// Parameters:
//   - samples: Dated constituent observations, in any order
//   - flow: Daily flow series covering the sampled period
//   - aux: Optional auxiliary series (hysteresis, storm flags) joined by the
//     same dates
//
// Returns:
//   - *timeseries.Dataset: One row per matched sample
//   - timeseries.MergeReport: How many samples matched, lacked flow, or
//     lacked an auxiliary value
//   - error: errs.ErrEmptySeries when samples or flow are empty, or
//     errs.ErrDuplicateDate when the flow record repeats a date
//
// Example:
//
//	ds, report, err := rloadest.CalibrationDataset(samples, flow, dq1)
//	if err != nil {
//	    return err
//	}
//	if report.NoFlow > 0 {
//	    log.Printf("dropped %d samples outside the flow record", report.NoFlow)
//	}
func CalibrationDataset(samples []timeseries.Sample, flow *timeseries.Series, aux ...*timeseries.Series) (*timeseries.Dataset, timeseries.MergeReport, error) {
	return timeseries.Merge(samples, flow, aux...)
}

// EstimationDataset builds the response-less daily table a fitted model
// predicts over: one row per flow day carrying a finite flow value and a
// value from every auxiliary series.
//
// Parameters:
//   - flow: Daily flow series for the estimation period
//   - aux: Auxiliary series for every covariate the model uses
//
// Returns:
//   - *timeseries.Dataset: One row per usable flow day
//   - timeseries.MergeReport: How many days were kept or dropped
//   - error: errs.ErrEmptySeries when flow is empty or no day survives
func EstimationDataset(flow *timeseries.Series, aux ...*timeseries.Series) (*timeseries.Dataset, timeseries.MergeReport, error) {
	return timeseries.NewEstimationDataset(flow, aux...)
}

// FitLoadModel calibrates a load regression on a merged dataset.
//
// The model regresses the log response on the spec's terms, centers
// predictors the way rating-curve calibration requires, and reports
// coefficients, residual diagnostics and retransformation bias factors.
// Censored rows are dropped and counted; fitting the same dataset and spec
// twice yields identical results.
//
// Parameters:
//   - ds: Calibration dataset from CalibrationDataset
//   - spec: Model form, e.g. regression.NewSpec("7-param",
//     regression.Quadratic(regression.FlowLog), regression.Fourier(1),
//     regression.Quadratic(regression.DecimalTime))
//   - opts: Optional settings (regression.WithResponseKind,
//     regression.WithUnitFactor)
//
// Returns:
//   - *regression.Model: Fitted model
//   - error: errs.ErrRankDeficient or errs.ErrTooFewObservations when the
//     data cannot support the spec, or validation errors from the spec and
//     dataset
//
// Example:
//
//	model, err := rloadest.FitLoadModel(ds, regression.NewSpec("linear",
//	    regression.Linear(regression.FlowLog),
//	))
//	if err != nil {
//	    return err
//	}
//	fmt.Println(model.Summary())
func FitLoadModel(ds *timeseries.Dataset, spec regression.Spec, opts ...regression.Option) (*regression.Model, error) {
	return regression.Fit(ds, spec, opts...)
}

// SelectLoadModel fits a library of candidate model forms and ranks them for
// review.
//
// By default the nine standard rating-curve forms are evaluated; replace
// them with regression.WithCandidates. Every candidate appears in the
// selection table, fitted or failed, so model choice stays an informed
// decision rather than an automatic one.
//
// Parameters:
//   - ds: Calibration dataset from CalibrationDataset
//   - opts: Optional settings (regression.WithCandidates,
//     regression.WithResponseKind, regression.WithUnitFactor)
//
// Returns:
//   - *regression.Selection: Per-candidate fits and diagnostics, with
//     Ranked() ordered by AIC and Best() returning the lowest-AIC model
//   - error: Dataset validation errors; individual candidate failures are
//     recorded in the table instead of failing the call
func SelectLoadModel(ds *timeseries.Dataset, opts ...regression.Option) (*regression.Selection, error) {
	return regression.SelectModel(ds, opts...)
}

// EstimateLoads runs a fitted model over a daily flow record, producing
// bias-corrected daily loads ready for water-year or monthly totals.
//
// This wraps EstimationDataset and Model.Predict in one call for the common
// case where the estimation table is not reused.
//
// Parameters:
//   - model: Fitted model from FitLoadModel or SelectLoadModel
//   - flow: Daily flow series for the estimation period
//   - aux: Auxiliary series for every covariate the model uses, nil when the
//     model uses none
//   - opts: Optional settings (regression.WithCorrection)
//
// Returns:
//   - *regression.Prediction: Daily load estimates
//   - timeseries.MergeReport: Estimation days kept and dropped
//   - error: errs.ErrUnknownColumn when an auxiliary series the model needs
//     is missing, or validation errors from the inputs
//
// Example:
//
//	pred, report, err := rloadest.EstimateLoads(model, flow, nil)
//	if err != nil {
//	    return err
//	}
//	log.Printf("estimated %d of %d days", len(pred.Values), report.Samples)
//	for _, total := range pred.TotalsByMonth() {
//	    fmt.Println(total)
//	}
func EstimateLoads(model *regression.Model, flow *timeseries.Series, aux []*timeseries.Series, opts ...regression.Option) (*regression.Prediction, timeseries.MergeReport, error) {
	ds, report, err := timeseries.NewEstimationDataset(flow, aux...)
	if err != nil {
		return nil, timeseries.MergeReport{}, err
	}

	pred, err := model.Predict(ds, opts...)
	if err != nil {
		return nil, report, err
	}

	return pred, report, nil
}

// ArchiveDataset serializes a dataset into compact binary archive bytes.
//
// Parameters:
//   - ds: Calibration or estimation dataset
//   - opts: Optional settings (archive.WithStation, archive.WithConstituent,
//     archive.WithCompression)
//
// Returns:
//   - []byte: Archive bytes suitable for a file or object store
//   - error: errs.ErrEmptyDataset for a nil or empty dataset
func ArchiveDataset(ds *timeseries.Dataset, opts ...archive.Option) ([]byte, error) {
	return archive.Encode(ds, opts...)
}

// RestoreDataset decodes archive bytes produced by ArchiveDataset.
//
// Parameters:
//   - data: Complete archive bytes
//
// Returns:
//   - *archive.Archive: Station and constituent identity plus the dataset
//   - error: Format errors (errs.IsFormat) for damaged or foreign bytes
func RestoreDataset(data []byte) (*archive.Archive, error) {
	return archive.Decode(data)
}

// DatasetID returns the stable numeric identity for a (station, constituent)
// pair, the same xxHash64-based value archive headers carry.
//
// Use it to key archives in a store without parsing them.
//
// Parameters:
//   - station: Gaging station name, e.g. "05586100"
//   - constituent: Constituent name, e.g. "Atrazine"
//
// Returns:
//   - uint64: Combined hash, stable across processes and platforms
func DatasetID(station, constituent string) uint64 {
	return hash.DatasetID(station, constituent)
}
