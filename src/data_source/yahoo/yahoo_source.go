package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"stock-dashboard/src/helpers"
	"stock-dashboard/src/interfaces"
	"stock-dashboard/src/logger"
	"stock-dashboard/src/models"
)

// YahooFinanceSource fetches historical OHLCV candles from the Yahoo
// Finance v8 chart API.
type YahooFinanceSource struct {
	Config  *models.MConfig
	Network interfaces.INetworkManager
	Logger  *logger.Logger
}

// -----------------------------------------------------------------------------

func NewYahooFinanceSource(cfg *models.MConfig, netMgr interfaces.INetworkManager) *YahooFinanceSource {
	return &YahooFinanceSource{
		Config:  cfg,
		Network: netMgr,
		Logger:  logger.NewLogger(cfg.LogLevel, "YahooFinanceSource"),
	}
}

// -----------------------------------------------------------------------------

func (s *YahooFinanceSource) Name() string {
	return s.Config.Provider.Name
}

// -----------------------------------------------------------------------------

// FetchHistory fetches candles for [start, end] at the given interval.
func (s *YahooFinanceSource) FetchHistory(ctx context.Context, symbol string, start, end time.Time, interval string) ([]models.MCandle, error) {
	params := map[string]string{
		"period1":        strconv.FormatInt(start.Unix(), 10),
		"period2":        strconv.FormatInt(end.Unix(), 10),
		"interval":       interval,
		"includePrePost": "false",
		"events":         "div,splits",
	}

	url := fmt.Sprintf("%s/%s", strings.TrimRight(s.Config.Provider.BaseURL, "/"), symbol)

	respBytes, err := s.Network.Get(ctx, url, params)
	if err != nil {
		return nil, fmt.Errorf("network error for %s: %w", symbol, err)
	}

	return s.parseChartResponse(symbol, respBytes)
}

// -----------------------------------------------------------------------------

type YahooChartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Currency             string  `json:"currency"`
				Symbol               string  `json:"symbol"`
				ExchangeName         string  `json:"exchangeName"`
				InstrumentType       string  `json:"instrumentType"`
				FirstTradeDate       int64   `json:"firstTradeDate"`
				RegularMarketTime    int64   `json:"regularMarketTime"`
				Gmtoffset            int     `json:"gmtoffset"`
				Timezone             string  `json:"timezone"`
				ExchangeTimezoneName string  `json:"exchangeTimezoneName"`
				RegularMarketPrice   float64 `json:"regularMarketPrice"`
				ChartPreviousClose   float64 `json:"chartPreviousClose"`
				DataGranularity      string  `json:"dataGranularity"`
				Range                string  `json:"range"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					High   []*float64 `json:"high"`   // Use pointers to handle null
					Low    []*float64 `json:"low"`    // Use pointers to handle null
					Open   []*float64 `json:"open"`   // Use pointers to handle null
					Close  []*float64 `json:"close"`  // Use pointers to handle null
					Volume []*float64 `json:"volume"` // Use pointers to handle null
				} `json:"quote"`
				Adjclose []struct {
					Adjclose []*float64 `json:"adjclose"`
				} `json:"adjclose"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// -----------------------------------------------------------------------------

func (s *YahooFinanceSource) parseChartResponse(symbol string, data []byte) ([]models.MCandle, error) {
	var resp YahooChartResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("json unmarshal failed: %w", err)
	}

	if resp.Chart.Error != nil {
		// "Not Found" is how the API reports a ticker it does not know.
		if strings.EqualFold(resp.Chart.Error.Code, "Not Found") {
			return nil, fmt.Errorf("%w: %s", helpers.ErrUnknownSymbol, symbol)
		}
		return nil, &helpers.DataSourceError{DashboardError: helpers.DashboardError{
			Message: fmt.Sprintf("yahoo api error: %s - %s", resp.Chart.Error.Code, resp.Chart.Error.Description),
		}}
	}

	if len(resp.Chart.Result) == 0 {
		return nil, fmt.Errorf("%w: %s", helpers.ErrUnknownSymbol, symbol)
	}

	result := resp.Chart.Result[0]
	if len(result.Timestamp) == 0 {
		return nil, fmt.Errorf("%w: %s", helpers.ErrNoData, symbol)
	}

	indicators := result.Indicators.Quote
	if len(indicators) == 0 {
		return nil, fmt.Errorf("%w: %s", helpers.ErrNoData, symbol)
	}

	quote := indicators[0]

	// 1. Validation: Alignment check
	if len(result.Timestamp) != len(quote.Close) ||
		len(result.Timestamp) != len(quote.Open) ||
		len(result.Timestamp) != len(quote.High) ||
		len(result.Timestamp) != len(quote.Low) ||
		len(result.Timestamp) != len(quote.Volume) {
		s.Logger.Warning("Data alignment error for %s: Mismatched array lengths", symbol)
		return nil, fmt.Errorf("data alignment error for %s", symbol)
	}

	// Adjusted close is its own indicator block; absent for some instruments.
	var adjclose []*float64
	if len(result.Indicators.Adjclose) > 0 && len(result.Indicators.Adjclose[0].Adjclose) == len(result.Timestamp) {
		adjclose = result.Indicators.Adjclose[0].Adjclose
	}

	// 2. Build candles with data cleaning
	fetchedAt := time.Now().UTC()
	candles := make([]models.MCandle, 0, len(result.Timestamp))

	for i := 0; i < len(result.Timestamp); i++ {
		ts := result.Timestamp[i]

		// Handle null values (pointers can be nil)
		if quote.Open[i] == nil || quote.High[i] == nil || quote.Low[i] == nil ||
			quote.Close[i] == nil || quote.Volume[i] == nil {
			s.Logger.Debug("Invalid OHLCV data received for %s at index %d", symbol, i)
			continue
		}

		closeVal := *quote.Close[i]
		volume := *quote.Volume[i]
		if closeVal <= 0 || volume < 0 {
			s.Logger.Debug("Skipping invalid point for %s: close=%f, volume=%f", symbol, closeVal, volume)
			continue
		}

		adj := closeVal
		if adjclose != nil && adjclose[i] != nil && *adjclose[i] > 0 {
			adj = *adjclose[i]
		}

		candles = append(candles, models.MCandle{
			Symbol:    symbol,
			Timestamp: ts,
			Open:      *quote.Open[i],
			High:      *quote.High[i],
			Low:       *quote.Low[i],
			Close:     closeVal,
			AdjClose:  adj,
			Volume:    volume,
			FetchedAt: fetchedAt,
		})
	}

	if len(candles) == 0 {
		return nil, fmt.Errorf("%w: %s", helpers.ErrNoData, symbol)
	}

	// 3. Sort by timestamp and drop duplicates so dates stay strictly increasing
	sort.Slice(candles, func(i, j int) bool {
		return candles[i].Timestamp < candles[j].Timestamp
	})

	deduped := candles[:1]
	for _, c := range candles[1:] {
		if c.Timestamp != deduped[len(deduped)-1].Timestamp {
			deduped = append(deduped, c)
		}
	}

	s.Logger.Info("Fetched %s: %d valid candles [%d -> %d]",
		symbol, len(deduped), deduped[0].Timestamp, deduped[len(deduped)-1].Timestamp)

	return deduped, nil
}
