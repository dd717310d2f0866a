package analysis

import (
	"stock-dashboard/src/analysis/core"
	"stock-dashboard/src/logger"
	"stock-dashboard/src/models"
)

// AnalysisFacade turns a fetched price series into the derived views the
// dashboard renders: returns, moving averages, summary stats, histogram
// and the KPI overview. Every method is a pure function of its input.
type AnalysisFacade struct {
	Config *models.MConfig
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewAnalysisFacade(cfg *models.MConfig, log *logger.Logger) *AnalysisFacade {
	return &AnalysisFacade{
		Config: cfg,
		Logger: log,
	}
}

// -----------------------------------------------------------------------------

// ComputeReturns derives the day-over-day percentage change series for the
// selected price field. Always one entry shorter than the candle series.
func (a *AnalysisFacade) ComputeReturns(candles []models.MCandle, field string) []models.MReturnPoint {
	values := extractField(candles, field)
	raw := core.CalculateReturns(values)

	points := make([]models.MReturnPoint, len(raw))
	for i, r := range raw {
		points[i] = models.MReturnPoint{
			Timestamp: candles[i+1].Timestamp,
			Value:     r,
		}
	}
	return points
}

// -----------------------------------------------------------------------------

// ComputeMovingAverage builds a rolling-mean series aligned with the candles.
func (a *AnalysisFacade) ComputeMovingAverage(candles []models.MCandle, window int, field string) models.MMovingAverage {
	values := extractField(candles, field)
	return models.MMovingAverage{
		Window: window,
		Values: core.CalculateRollingMean(values, window),
	}
}

// -----------------------------------------------------------------------------

// Summarize computes the summary statistics of a return series.
func (a *AnalysisFacade) Summarize(returns []models.MReturnPoint) models.MSummaryStats {
	values := make([]float64, len(returns))
	for i, r := range returns {
		values[i] = r.Value
	}

	mean, std := core.CalculateMeanStd(values)
	min, max := core.CalculateMinMax(values)

	return models.MSummaryStats{
		Count: len(values),
		Mean:  mean,
		Std:   std,
		Min:   min,
		Max:   max,
	}
}

// -----------------------------------------------------------------------------

// Histogram bins the return distribution.
func (a *AnalysisFacade) Histogram(returns []models.MReturnPoint, bins int) []models.MHistogramBin {
	values := make([]float64, len(returns))
	for i, r := range returns {
		values[i] = r.Value
	}

	edges, counts := core.CalculateHistogram(values, bins)
	if len(counts) == 0 {
		return []models.MHistogramBin{}
	}

	result := make([]models.MHistogramBin, len(counts))
	for i := range counts {
		result[i] = models.MHistogramBin{
			Start: edges[i],
			End:   edges[i+1],
			Count: counts[i],
		}
	}
	return result
}

// -----------------------------------------------------------------------------

// Overview computes the KPI row: last close, daily change, annualized
// volatility and average volume.
func (a *AnalysisFacade) Overview(candles []models.MCandle, returns []models.MReturnPoint, tradingDays int) models.MOverview {
	if len(candles) == 0 {
		return models.MOverview{TradingDays: tradingDays}
	}

	last := candles[len(candles)-1]

	var prevClose, dailyChange float64
	if len(candles) > 1 {
		prevClose = candles[len(candles)-2].AdjClose
		dailyChange = core.CalculateChangePercent(last.AdjClose, prevClose) * 100
	}

	retValues := make([]float64, len(returns))
	for i, r := range returns {
		retValues[i] = r.Value
	}

	volSum := 0.0
	for _, c := range candles {
		volSum += c.Volume
	}

	return models.MOverview{
		Symbol:        last.Symbol,
		LastClose:     last.AdjClose,
		PrevClose:     prevClose,
		DailyChange:   dailyChange,
		AnnualizedVol: core.CalculateAnnualizedVolatility(retValues),
		AvgVolume:     volSum / float64(len(candles)),
		TradingDays:   tradingDays,
	}
}

// -----------------------------------------------------------------------------

func extractField(candles []models.MCandle, field string) []float64 {
	values := make([]float64, len(candles))
	for i, c := range candles {
		values[i] = c.PriceValue(field)
	}
	return values
}
