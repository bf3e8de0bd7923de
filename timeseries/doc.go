// Package timeseries provides the dated data model for load estimation:
// daily flow records, water-quality samples, derived flow metrics, and the
// exact-date merge that turns them into calibration datasets.
//
// # Core Types
//
//   - Date: civil date as days since 1970-01-01, the join key everywhere
//   - Series: named, date-ascending daily record with unique dates
//   - Sample: one water-quality observation, possibly censored
//   - Dataset: rectangular calibration or estimation table
//
// # Typical Flow
//
// Build a daily flow record, derive hysteresis from it, then merge samples
// against both:
//
//	flow, err := timeseries.NewDailySeries("Flow", start, dailyMeans)
//	if err != nil {
//	    return err
//	}
//
//	dq1, err := flow.Hysteresis(1)
//	if err != nil {
//	    return err
//	}
//
//	ds, report, err := timeseries.Merge(samples, flow, dq1)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("%d of %d samples matched\n", report.Matched, report.Samples)
//
// Merging matches on date equality only. Samples the flow record does not
// cover are dropped and counted in the MergeReport, never interpolated; the
// drop counters make silent data loss visible to the caller.
//
// # Missing Values
//
// NaN marks a date that exists in a record without a usable value. The first
// lag rows of a hysteresis series are NaN, and Merge drops sample dates that
// land on them, so calibration datasets are always NaN-free.
package timeseries
