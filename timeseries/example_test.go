package timeseries_test

import (
	"fmt"
	"log"

	"github.com/kashenfelter/rloadest/timeseries"
)

// ExampleSeries_Hysteresis demonstrates deriving the lagged log-flow
// difference from a daily record. The first lag days have no predecessor and
// carry NaN.
func ExampleSeries_Hysteresis() {
	flow, err := timeseries.NewDailySeries("Flow", timeseries.NewDate(2003, 10, 1),
		[]float64{100, 200, 400, 400})
	if err != nil {
		log.Fatal(err)
	}

	dq1, err := flow.Hysteresis(1)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(dq1.Name())
	for d, v := range dq1.All() {
		fmt.Printf("%s %.3f\n", d, v)
	}

	// Output:
	// dQ1
	// 2003-10-01 NaN
	// 2003-10-02 0.693
	// 2003-10-03 0.693
	// 2003-10-04 0.000
}

// ExampleMerge demonstrates joining water-quality samples to a daily flow
// record by exact date.
func ExampleMerge() {
	flow, err := timeseries.NewDailySeries("Flow", timeseries.NewDate(2003, 10, 1),
		[]float64{120, 150, 310, 480})
	if err != nil {
		log.Fatal(err)
	}

	samples := []timeseries.Sample{
		{Date: timeseries.NewDate(2003, 10, 2), Value: 1.5},
		{Date: timeseries.NewDate(2003, 10, 4), Value: 3.1},
		{Date: timeseries.NewDate(2003, 11, 7), Value: 2.0}, // past the record
	}

	ds, report, err := timeseries.Merge(samples, flow)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(report)
	fmt.Printf("rows: %d\n", ds.Len())
	fmt.Printf("flow on first row: %.0f\n", ds.Flow()[0])

	// Output:
	// MergeReport{Samples: 3, Matched: 2, NoFlow: 1, NoAux: 0}
	// rows: 2
	// flow on first row: 150
}

// ExampleParseDate demonstrates the calendar helpers on Date.
func ExampleParseDate() {
	d, err := timeseries.ParseDate("2003-10-01")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(d)
	fmt.Println(d.WaterYear())
	fmt.Printf("%.4f\n", d.DecimalYear())
	fmt.Println(d.AddDays(30))

	// Output:
	// 2003-10-01
	// 2004
	// 2003.7493
	// 2003-10-31
}
