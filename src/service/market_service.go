package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"stock-dashboard/src/analysis"
	"stock-dashboard/src/helpers"
	"stock-dashboard/src/interfaces"
	"stock-dashboard/src/logger"
	"stock-dashboard/src/models"
	"stock-dashboard/src/utils"
)

// MarketService runs the query pipeline: validate, cache lookup, provider
// fetch on miss, analytics transform. One instance serves all requests;
// every method recomputes from scratch, no state is shared across queries.
type MarketService struct {
	Config   *models.MConfig
	Source   interfaces.IDataSource
	Cache    interfaces.IDatabase
	Analyzer *analysis.AnalysisFacade
	Logger   *logger.Logger
}

// -----------------------------------------------------------------------------

func NewMarketService(cfg *models.MConfig, source interfaces.IDataSource, cache interfaces.IDatabase, analyzer *analysis.AnalysisFacade, log *logger.Logger) *MarketService {
	return &MarketService{
		Config:   cfg,
		Source:   source,
		Cache:    cache,
		Analyzer: analyzer,
		Logger:   log,
	}
}

// -----------------------------------------------------------------------------

// Defaults returns a query populated with the configured default values.
func (s *MarketService) Defaults() models.MQuery {
	d := s.Config.Dashboard
	now := time.Now().UTC()

	return models.MQuery{
		Symbol:     d.DefaultSymbol,
		Start:      now.AddDate(-1, 0, 0),
		End:        now,
		Interval:   d.DefaultInterval,
		MAShort:    d.MAShortDefault,
		MALong:     d.MALongDefault,
		PriceField: models.PriceFieldAdjClose,
	}
}

// -----------------------------------------------------------------------------

// normalizeQuery fills unset fields from config defaults and validates the rest.
func (s *MarketService) normalizeQuery(q *models.MQuery) error {
	d := s.Config.Dashboard

	q.Symbol = strings.ToUpper(strings.TrimSpace(q.Symbol))
	if q.Symbol == "" {
		return helpers.NewValidationError("ticker symbol is required")
	}

	if q.Interval == "" {
		q.Interval = d.DefaultInterval
	}
	switch q.Interval {
	case models.IntervalDaily, models.IntervalWeekly, models.IntervalMonthly:
	default:
		return helpers.NewValidationError("unsupported interval %q", q.Interval)
	}

	if q.PriceField == "" {
		q.PriceField = models.PriceFieldAdjClose
	}
	switch q.PriceField {
	case models.PriceFieldAdjClose, models.PriceFieldClose, models.PriceFieldOpen:
	default:
		return helpers.NewValidationError("unsupported price field %q", q.PriceField)
	}

	if q.MAShort == 0 {
		q.MAShort = d.MAShortDefault
	}
	if q.MALong == 0 {
		q.MALong = d.MALongDefault
	}
	if q.MAShort < d.MAShortMin || q.MAShort > d.MAShortMax {
		return helpers.NewValidationError("short moving average window %d outside [%d, %d]", q.MAShort, d.MAShortMin, d.MAShortMax)
	}
	if q.MALong < d.MALongMin || q.MALong > d.MALongMax {
		return helpers.NewValidationError("long moving average window %d outside [%d, %d]", q.MALong, d.MALongMin, d.MALongMax)
	}

	now := time.Now().UTC()
	if q.End.IsZero() || q.End.After(now) {
		q.End = now
	}
	if q.Start.IsZero() {
		q.Start = q.End.AddDate(-1, 0, 0)
	}
	if !q.Start.Before(q.End) {
		return helpers.NewValidationError("start date must be before end date")
	}
	if q.End.After(q.Start.AddDate(s.Config.Provider.MaxSpanYears, 0, 0)) {
		return helpers.NewValidationError("date range exceeds %d years", s.Config.Provider.MaxSpanYears)
	}

	return nil
}

// -----------------------------------------------------------------------------

// BuildDashboard runs the full pipeline for one query.
func (s *MarketService) BuildDashboard(ctx context.Context, q models.MQuery) (*models.MDashboard, error) {
	if err := s.normalizeQuery(&q); err != nil {
		return nil, err
	}

	cal := utils.GetCalendar(q.Symbol)
	tradingDays := cal.TradingDaysBetween(q.Start, q.End)
	if tradingDays == 0 {
		return nil, fmt.Errorf("%w: no trading sessions between %s and %s",
			helpers.ErrNoData, q.Start.Format("2006-01-02"), q.End.Format("2006-01-02"))
	}

	candles, fromCache, err := s.loadCandles(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(candles) == 0 {
		return nil, fmt.Errorf("%w: %s", helpers.ErrNoData, q.Symbol)
	}

	returns := s.Analyzer.ComputeReturns(candles, q.PriceField)

	mas := []models.MMovingAverage{
		s.Analyzer.ComputeMovingAverage(candles, q.MAShort, q.PriceField),
	}
	if q.MALong != q.MAShort {
		mas = append(mas, s.Analyzer.ComputeMovingAverage(candles, q.MALong, q.PriceField))
	}

	dashboard := &models.MDashboard{
		Query:          q,
		Candles:        candles,
		MovingAverages: mas,
		Returns:        returns,
		Stats:          s.Analyzer.Summarize(returns),
		Histogram:      s.Analyzer.Histogram(returns, s.Config.Dashboard.HistogramBins),
		Overview:       s.Analyzer.Overview(candles, returns, tradingDays),
		FromCache:      fromCache,
	}

	return dashboard, nil
}

// -----------------------------------------------------------------------------

// loadCandles consults the cache first and falls back to the provider.
// Cache faults are logged but never fail the query.
func (s *MarketService) loadCandles(ctx context.Context, q models.MQuery) ([]models.MCandle, bool, error) {
	ttl := time.Duration(s.Config.Storage.CacheTTLMinutes) * time.Minute

	if s.Cache != nil {
		cached, hit, err := s.Cache.LoadFetch(q.Symbol, q.Interval, q.Start, q.End, ttl)
		if err != nil {
			s.Logger.Warning("Cache lookup failed for %s: %v", q.Symbol, err)
		} else if hit {
			s.Logger.Debug("Cache hit for %s %s [%s -> %s]", q.Symbol, q.Interval,
				q.Start.Format("2006-01-02"), q.End.Format("2006-01-02"))
			return cached, true, nil
		}
	}

	candles, err := s.Source.FetchHistory(ctx, q.Symbol, q.Start, q.End, q.Interval)
	if err != nil {
		return nil, false, err
	}

	if s.Cache != nil {
		if err := s.Cache.SaveFetch(q.Symbol, q.Interval, q.Start, q.End, candles); err != nil {
			s.Logger.Warning("Cache write failed for %s: %v", q.Symbol, err)
		}
		retention := time.Duration(s.Config.Storage.RetentionDays) * 24 * time.Hour
		if err := s.Cache.CleanupExpired(retention); err != nil {
			s.Logger.Warning("Cache cleanup failed: %v", err)
		}
	}

	return candles, false, nil
}

// -----------------------------------------------------------------------------
// CSV Export
// -----------------------------------------------------------------------------

// ExportCSV writes the tabular view of the query result. The columns match
// the displayed table; floats are formatted shortest-round-trip so parsing
// the file reproduces the table exactly.
func (s *MarketService) ExportCSV(ctx context.Context, q models.MQuery, w io.Writer) error {
	dashboard, err := s.BuildDashboard(ctx, q)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)

	header := []string{
		"Date", "Open", "High", "Low", "Close", "Adj Close", "Volume", "Return",
		fmt.Sprintf("MA %d", dashboard.Query.MAShort),
	}
	if dashboard.Query.MALong != dashboard.Query.MAShort {
		header = append(header, fmt.Sprintf("MA %d", dashboard.Query.MALong))
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for i, c := range dashboard.Candles {
		record := []string{
			c.Date().Format("2006-01-02"),
			formatFloat(c.Open),
			formatFloat(c.High),
			formatFloat(c.Low),
			formatFloat(c.Close),
			formatFloat(c.AdjClose),
			formatFloat(c.Volume),
			"",
		}
		if i > 0 {
			record[7] = formatFloat(dashboard.Returns[i-1].Value)
		}

		for _, ma := range dashboard.MovingAverages {
			cell := ""
			if ma.Values[i] != nil {
				cell = formatFloat(*ma.Values[i])
			}
			record = append(record, cell)
		}

		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// -----------------------------------------------------------------------------

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
