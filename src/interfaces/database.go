package interfaces

import (
	"time"

	"stock-dashboard/src/models"
)

// -----------------------------------------------------------------------------
// IDatabase defines the contract for the candle cache. A cache entry is one
// provider fetch: the candles plus the range it covered. Lookups only hit
// when a fresh fetch covers the requested range entirely.
// -----------------------------------------------------------------------------

type IDatabase interface {

	// -----------------------------------------------------------------------------

	// Initialize opens the connection and creates the schema.
	Initialize() error

	// -----------------------------------------------------------------------------

	// SaveFetch stores the candles of one completed provider fetch.
	SaveFetch(symbol, interval string, start, end time.Time, candles []models.MCandle) error

	// -----------------------------------------------------------------------------

	// LoadFetch returns cached candles within [start, end] if a fetch covering
	// that range exists and is younger than ttl. The bool reports a cache hit.
	LoadFetch(symbol, interval string, start, end time.Time, ttl time.Duration) ([]models.MCandle, bool, error)

	// -----------------------------------------------------------------------------

	// CleanupExpired removes fetches older than the retention period.
	CleanupExpired(retention time.Duration) error

	// -----------------------------------------------------------------------------

	// Close releases the underlying connection.
	Close() error
}
