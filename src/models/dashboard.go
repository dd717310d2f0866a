package models

// -----------------------------------------------------------------------------
// Dashboard payload structures
// -----------------------------------------------------------------------------

// MOverview is the KPI row shown above the charts.
type MOverview struct {
	Symbol        string  `json:"symbol"`
	LastClose     float64 `json:"last_close"`
	PrevClose     float64 `json:"prev_close"`
	DailyChange   float64 `json:"daily_change_pct"`
	AnnualizedVol float64 `json:"annualized_vol"`
	AvgVolume     float64 `json:"avg_volume"`
	TradingDays   int     `json:"trading_days"`
}

// -----------------------------------------------------------------------------

// MMovingAverage is one rolling-mean series aligned with the candle axis.
// Values[i] is nil while fewer than Window observations are available.
type MMovingAverage struct {
	Window int        `json:"window"`
	Values []*float64 `json:"values"`
}

// -----------------------------------------------------------------------------

// MDashboard is the complete state of one rendered dashboard view.
// It is recomputed from scratch for every query.
type MDashboard struct {
	Query          MQuery           `json:"query"`
	Candles        []MCandle        `json:"candles"`
	MovingAverages []MMovingAverage `json:"moving_averages"`
	Returns        []MReturnPoint   `json:"returns"`
	Stats          MSummaryStats    `json:"stats"`
	Histogram      []MHistogramBin  `json:"histogram"`
	Overview       MOverview        `json:"overview"`
	FromCache      bool             `json:"from_cache"`
}
