package interfaces

import (
	"context"
	"time"

	"stock-dashboard/src/models"
)

// -----------------------------------------------------------------------------
// IDataSource defines the contract for a historical market data provider.
// -----------------------------------------------------------------------------

type IDataSource interface {

	// -----------------------------------------------------------------------------

	// Name returns the provider name (e.g. "yahoo").
	Name() string

	// -----------------------------------------------------------------------------

	// FetchHistory retrieves OHLCV candles for a symbol between start and end
	// (inclusive) at the given interval ("1d", "1wk", "1mo"). The result is
	// sorted by timestamp, strictly increasing and unique.
	//
	// Returns helpers.ErrUnknownSymbol for tickers the provider rejects and
	// helpers.ErrNoData when the range contains no candles.
	FetchHistory(ctx context.Context, symbol string, start, end time.Time, interval string) ([]models.MCandle, error)
}
