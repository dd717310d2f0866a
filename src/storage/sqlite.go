package storage

import (
	"database/sql"
	"fmt"
	"time"

	"stock-dashboard/src/logger"
	"stock-dashboard/src/models"

	_ "modernc.org/sqlite"
)

// -----------------------------------------------------------------------------

// SQLiteCache stores completed provider fetches so repeated queries for the
// same symbol/range do not hit the provider again within the TTL.
type SQLiteCache struct {
	Config *models.MConfig
	DB     *sql.DB
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewSQLiteCache(cfg *models.MConfig, log *logger.Logger) (*SQLiteCache, error) {
	return &SQLiteCache{
		Config: cfg,
		Logger: log,
	}, nil
}

// -----------------------------------------------------------------------------

func (d *SQLiteCache) Initialize() error {
	dsn := d.Config.Storage.DBPath

	// Open DB
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return err
	}

	if err := db.Ping(); err != nil {
		return err
	}

	d.DB = db

	// PRAGMA optimizations
	if _, err := db.Exec("PRAGMA journal_mode = WAL;"); err != nil {
		d.Logger.Warning("Failed to set WAL mode: %v", err)
	}
	if _, err := db.Exec("PRAGMA synchronous = NORMAL;"); err != nil {
		d.Logger.Warning("Failed to set synchronous mode: %v", err)
	}

	return d.createTables()
}

// -----------------------------------------------------------------------------

func (d *SQLiteCache) createTables() error {
	// SQLite types: INTEGER for int64, REAL for float64, TEXT for string
	queries := []string{
		`CREATE TABLE IF NOT EXISTS fetches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			symbol TEXT NOT NULL,
			interval TEXT NOT NULL,
			period_start INTEGER NOT NULL,
			period_end INTEGER NOT NULL,
			fetched_at INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_fetches_lookup
			ON fetches (symbol, interval, period_start, period_end);`,
		`CREATE TABLE IF NOT EXISTS candles (
			symbol TEXT NOT NULL,
			interval TEXT NOT NULL,
			timestamp INTEGER NOT NULL,
			open REAL,
			high REAL,
			low REAL,
			close REAL,
			adj_close REAL,
			volume REAL,
			fetched_at INTEGER NOT NULL,
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

func (d *SQLiteCache) SaveFetch(symbol, interval string, start, end time.Time, candles []models.MCandle) error {
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
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
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
		VALUES (?, ?, ?, ?, ?)
	`, symbol, interval, start.Unix(), end.Unix(), now); err != nil {
		return err
	}

	return tx.Commit()
}

// -----------------------------------------------------------------------------

func (d *SQLiteCache) LoadFetch(symbol, interval string, start, end time.Time, ttl time.Duration) ([]models.MCandle, bool, error) {
	cutoff := time.Now().Add(-ttl).Unix()

	var fetchID int64
	err := d.DB.QueryRow(`
		SELECT id FROM fetches
		WHERE symbol = ? AND interval = ?
		  AND period_start <= ? AND period_end >= ?
		  AND fetched_at >= ?
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
		WHERE symbol = ? AND interval = ? AND timestamp BETWEEN ? AND ?
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

func (d *SQLiteCache) CleanupExpired(retention time.Duration) error {
	cutoff := time.Now().Add(-retention).Unix()

	if _, err := d.DB.Exec("DELETE FROM fetches WHERE fetched_at < ?", cutoff); err != nil {
		return err
	}
	if _, err := d.DB.Exec("DELETE FROM candles WHERE fetched_at < ?", cutoff); err != nil {
		return err
	}
	return nil
}

// -----------------------------------------------------------------------------

func (d *SQLiteCache) Close() error {
	if d.DB == nil {
		return nil
	}
	return d.DB.Close()
}
