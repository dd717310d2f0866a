package models

import "time"

// Supported data frequencies, matching the Yahoo chart API interval values.
const (
	IntervalDaily   = "1d"
	IntervalWeekly  = "1wk"
	IntervalMonthly = "1mo"
)

// -----------------------------------------------------------------------------

// MQuery is one dashboard request: ticker, date range and display options.
type MQuery struct {
	Symbol     string    `json:"symbol"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	Interval   string    `json:"interval"`
	MAShort    int       `json:"ma_short"`
	MALong     int       `json:"ma_long"`
	PriceField string    `json:"price_field"`
}
