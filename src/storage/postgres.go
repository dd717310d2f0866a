package storage

import (
	"database/sql"
	"fmt"
	"time"

	"stock-dashboard/src/logger"
	"stock-dashboard/src/models"

	_ "github.com/lib/pq"
)

// -----------------------------------------------------------------------------

// PostgresCache is the Postgres-backed candle cache, selectable via
// storage.db_type when the dashboard runs next to an existing database.
type PostgresCache struct {
	Config *models.MConfig
	DB     *sql.DB
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewPostgresCache(cfg *models.MConfig, log *logger.Logger) (*PostgresCache, error) {
	return &PostgresCache{
		Config: cfg,
		Logger: log,
	}, nil
}

// -----------------------------------------------------------------------------

func (d *PostgresCache) Initialize() error {
	db, err := sql.Open("postgres", d.Config.Storage.DBConnectionString)
	if err != nil {
		return err
	}

	if err := db.Ping(); err != nil {
		return err
	}

	d.DB = db
	return d.createTables()
}

// -----------------------------------------------------------------------------

func (d *PostgresCache) createTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS fetches (
			id BIGSERIAL PRIMARY KEY,
			symbol TEXT NOT NULL,
			interval TEXT NOT NULL,
			period_start BIGINT NOT NULL,
			period_end BIGINT NOT NULL,
			fetched_at BIGINT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_fetches_lookup
			ON fetches (symbol, interval, period_start, period_end);`,
		`CREATE TABLE IF NOT EXISTS candles (
			symbol TEXT NOT NULL,
			interval TEXT NOT NULL,
			timestamp BIGINT NOT NULL,
			open DOUBLE PRECISION,
			high DOUBLE PRECISION,
			low DOUBLE PRECISION,
			close DOUBLE PRECISION,
			adj_close DOUBLE PRECISION,
			volume DOUBLE PRECISION,
			fetched_at BIGINT NOT NULL,
			PRIMARY KEY (symbol, interval, timestamp)
		);`,
	}

	for _, q := range queries {
		if _, err := d.DB.Exec(q); err != nil {
			return fmt.Errorf("failed to create cache schema: %w", err)
		}
	}
	return nil
}

// -----------------------------------------------------------------------------

func (d *PostgresCache) SaveFetch(symbol, interval string, start, end time.Time, candles []models.MCandle) error {
	if len(candles) == 0 {
		return nil
	}

	now := time.Now().Unix()

	tx, err := d.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO candles (symbol, interval, timestamp, open, high, low, close, adj_close, volume, fetched_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (symbol, interval, timestamp) DO UPDATE SET
			open = excluded.open,
			high = excluded.high,
			low = excluded.low,
			close = excluded.close,
			adj_close = excluded.adj_close,
			volume = excluded.volume,
			fetched_at = excluded.fetched_at
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, c := range candles {
		_, err := stmt.Exec(symbol, interval, c.Timestamp, c.Open, c.High, c.Low, c.Close, c.AdjClose, c.Volume, now)
		if err != nil {
			return err
		}
	}

	if _, err := tx.Exec(`
		INSERT INTO fetches (symbol, interval, period_start, period_end, fetched_at)
		VALUES ($1, $2, $3, $4, $5)
	`, symbol, interval, start.Unix(), end.Unix(), now); err != nil {
		return err
	}

	return tx.Commit()
}

// -----------------------------------------------------------------------------

func (d *PostgresCache) LoadFetch(symbol, interval string, start, end time.Time, ttl time.Duration) ([]models.MCandle, bool, error) {
	cutoff := time.Now().Add(-ttl).Unix()

	var fetchID int64
	err := d.DB.QueryRow(`
		SELECT id FROM fetches
		WHERE symbol = $1 AND interval = $2
		  AND period_start <= $3 AND period_end >= $4
		  AND fetched_at >= $5
		ORDER BY fetched_at DESC
		LIMIT 1
	`, symbol, interval, start.Unix(), end.Unix(), cutoff).Scan(&fetchID)

	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	rows, err := d.DB.Query(`
		SELECT symbol, timestamp, open, high, low, close, adj_close, volume
		FROM candles
		WHERE symbol = $1 AND interval = $2 AND timestamp BETWEEN $3 AND $4
		ORDER BY timestamp ASC
	`, symbol, interval, start.Unix(), end.Unix())
	if err != nil {
		return nil, false, err
	}
	defer rows.Close()

	var candles []models.MCandle
	for rows.Next() {
		var c models.MCandle
		if err := rows.Scan(&c.Symbol, &c.Timestamp, &c.Open, &c.High, &c.Low, &c.Close, &c.AdjClose, &c.Volume); err != nil {
			return nil, false, err
		}
		candles = append(candles, c)
	}

	return candles, true, rows.Err()
}

// -----------------------------------------------------------------------------

func (d *PostgresCache) CleanupExpired(retention time.Duration) error {
	cutoff := time.Now().Add(-retention).Unix()

	if _, err := d.DB.Exec("DELETE FROM fetches WHERE fetched_at < $1", cutoff); err != nil {
		return err
	}
	if _, err := d.DB.Exec("DELETE FROM candles WHERE fetched_at < $1", cutoff); err != nil {
		return err
	}
	return nil
}

// -----------------------------------------------------------------------------

func (d *PostgresCache) Close() error {
	if d.DB == nil {
		return nil
	}
	return d.DB.Close()
}
