package models

import "time"

// MCandle represents one OHLCV bar of the fetched price series.
type MCandle struct {
	Symbol    string    `json:"symbol"`
	Timestamp int64     `json:"timestamp"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	AdjClose  float64   `json:"adj_close"`
	Volume    float64   `json:"volume"`
	FetchedAt time.Time `json:"fetched_at,omitempty"`
}

// -----------------------------------------------------------------------------

// Price field identifiers for charts, returns and moving averages.
const (
	PriceFieldAdjClose = "adjclose"
	PriceFieldClose    = "close"
	PriceFieldOpen     = "open"
)

// -----------------------------------------------------------------------------

// PriceValue returns the candle value for the given price field.
// Unknown fields fall back to the adjusted close.
func (c MCandle) PriceValue(field string) float64 {
	switch field {
	case PriceFieldClose:
		return c.Close
	case PriceFieldOpen:
		return c.Open
	default:
		return c.AdjClose
	}
}

// -----------------------------------------------------------------------------

// Date returns the trading date of the candle in UTC.
func (c MCandle) Date() time.Time {
	return time.Unix(c.Timestamp, 0).UTC()
}
