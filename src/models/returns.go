package models

// MReturnPoint is one day-over-day percentage change of the selected
// price field. The first candle of a series has no prior value, so a
// return series is always one entry shorter than its price series.
type MReturnPoint struct {
	Timestamp int64   `json:"timestamp"`
	Value     float64 `json:"value"`
}

// -----------------------------------------------------------------------------

// MSummaryStats describes the return distribution of one query.
type MSummaryStats struct {
	Count int     `json:"count"`
	Mean  float64 `json:"mean"`
	Std   float64 `json:"std"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

// -----------------------------------------------------------------------------

// MHistogramBin is one equal-width bin of the return histogram.
// Bins are half-open [Start, End) except the last, which is closed.
type MHistogramBin struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Count int     `json:"count"`
}
