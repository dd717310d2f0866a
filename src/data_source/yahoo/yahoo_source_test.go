package yahoo

import (
	"errors"
	"testing"

	"stock-dashboard/src/helpers"
	"stock-dashboard/src/logger"
	"stock-dashboard/src/models"
)

func testSource() *YahooFinanceSource {
	return &YahooFinanceSource{
		Config: &models.MConfig{LogLevel: "ERROR"},
		Logger: logger.NewLogger("ERROR", "test"),
	}
}

// -----------------------------------------------------------------------------

func TestParseChartResponseValid(t *testing.T) {
	body := []byte(`{
		"chart": {
			"result": [{
				"meta": {"symbol": "AAPL", "currency": "USD"},
				"timestamp": [1704153600, 1704240000, 1704326400],
				"indicators": {
					"quote": [{
						"open":   [184.2, 183.9, 182.1],
						"high":   [185.9, 184.3, 183.1],
						"low":    [183.4, 181.9, 180.9],
						"close":  [185.6, 184.2, 181.9],
						"volume": [82488700, 58414500, 71983600]
					}],
					"adjclose": [{"adjclose": [184.9, 183.5, 181.2]}]
				}
			}],
			"error": null
		}
	}`)

	candles, err := testSource().parseChartResponse("AAPL", body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(candles) != 3 {
		t.Fatalf("got %d candles, want 3", len(candles))
	}
	if candles[0].Close != 185.6 {
		t.Errorf("close = %v, want 185.6", candles[0].Close)
	}
	if candles[0].AdjClose != 184.9 {
		t.Errorf("adj close = %v, want 184.9", candles[0].AdjClose)
	}
	for i := 1; i < len(candles); i++ {
		if candles[i].Timestamp <= candles[i-1].Timestamp {
			t.Fatalf("timestamps not strictly increasing at %d", i)
		}
	}
}

// -----------------------------------------------------------------------------

func TestParseChartResponseNullEntries(t *testing.T) {
	// Null rows (holidays) must be dropped, not zero-filled
	body := []byte(`{
		"chart": {
			"result": [{
				"meta": {"symbol": "AAPL"},
				"timestamp": [1704153600, 1704240000, 1704326400],
				"indicators": {
					"quote": [{
						"open":   [184.2, null, 182.1],
						"high":   [185.9, null, 183.1],
						"low":    [183.4, null, 180.9],
						"close":  [185.6, null, 181.9],
						"volume": [82488700, null, 71983600]
					}]
				}
			}],
			"error": null
		}
	}`)

	candles, err := testSource().parseChartResponse("AAPL", body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(candles) != 2 {
		t.Fatalf("got %d candles, want 2 (null row dropped)", len(candles))
	}
	// Without an adjclose block, adjusted close falls back to close
	if candles[0].AdjClose != candles[0].Close {
		t.Errorf("adj close fallback: got %v, want %v", candles[0].AdjClose, candles[0].Close)
	}
}

// -----------------------------------------------------------------------------

func TestParseChartResponseUnknownSymbol(t *testing.T) {
	body := []byte(`{
		"chart": {
			"result": null,
			"error": {"code": "Not Found", "description": "No data found, symbol may be delisted"}
		}
	}`)

	_, err := testSource().parseChartResponse("NOPE", body)
	if !errors.Is(err, helpers.ErrUnknownSymbol) {
		t.Fatalf("got %v, want ErrUnknownSymbol", err)
	}
}

func TestParseChartResponseEmptyRange(t *testing.T) {
	body := []byte(`{
		"chart": {
			"result": [{
				"meta": {"symbol": "AAPL"},
				"timestamp": [],
				"indicators": {"quote": [{}]}
			}],
			"error": null
		}
	}`)

	_, err := testSource().parseChartResponse("AAPL", body)
	if !errors.Is(err, helpers.ErrNoData) {
		t.Fatalf("got %v, want ErrNoData", err)
	}
}

// -----------------------------------------------------------------------------

func TestParseChartResponseAlignmentMismatch(t *testing.T) {
	body := []byte(`{
		"chart": {
			"result": [{
				"meta": {"symbol": "AAPL"},
				"timestamp": [1704153600, 1704240000],
				"indicators": {
					"quote": [{
						"open":   [184.2],
						"high":   [185.9],
						"low":    [183.4],
						"close":  [185.6],
						"volume": [82488700]
					}]
				}
			}],
			"error": null
		}
	}`)

	_, err := testSource().parseChartResponse("AAPL", body)
	if err == nil {
		t.Fatal("expected alignment error, got nil")
	}
}

// -----------------------------------------------------------------------------

func TestParseChartResponseSortsAndDeduplicates(t *testing.T) {
	body := []byte(`{
		"chart": {
			"result": [{
				"meta": {"symbol": "AAPL"},
				"timestamp": [1704240000, 1704153600, 1704240000],
				"indicators": {
					"quote": [{
						"open":   [183.9, 184.2, 183.9],
						"high":   [184.3, 185.9, 184.3],
						"low":    [181.9, 183.4, 181.9],
						"close":  [184.2, 185.6, 184.2],
						"volume": [58414500, 82488700, 58414500]
					}]
				}
			}],
			"error": null
		}
	}`)

	candles, err := testSource().parseChartResponse("AAPL", body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(candles) != 2 {
		t.Fatalf("got %d candles, want 2 after dedup", len(candles))
	}
	if candles[0].Timestamp != 1704153600 || candles[1].Timestamp != 1704240000 {
		t.Errorf("candles not sorted: %d, %d", candles[0].Timestamp, candles[1].Timestamp)
	}
}

// -----------------------------------------------------------------------------

func TestParseChartResponseBadJSON(t *testing.T) {
	_, err := testSource().parseChartResponse("AAPL", []byte("<html>blocked</html>"))
	if err == nil {
		t.Fatal("expected unmarshal error, got nil")
	}
}

func TestParseChartResponseInvalidPrices(t *testing.T) {
	// Zero close and negative volume are provider glitches and must be dropped
	body := []byte(`{
		"chart": {
			"result": [{
				"meta": {"symbol": "AAPL"},
				"timestamp": [1704153600, 1704240000, 1704326400],
				"indicators": {
					"quote": [{
						"open":   [184.2, 183.9, 182.1],
						"high":   [185.9, 184.3, 183.1],
						"low":    [183.4, 181.9, 180.9],
						"close":  [0, 184.2, 181.9],
						"volume": [82488700, -5, 71983600]
					}]
				}
			}],
			"error": null
		}
	}`)

	candles, err := testSource().parseChartResponse("AAPL", body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(candles) != 1 {
		t.Fatalf("got %d candles, want 1", len(candles))
	}
	if candles[0].Timestamp != 1704326400 {
		t.Errorf("surviving candle = %d, want 1704326400", candles[0].Timestamp)
	}
}
