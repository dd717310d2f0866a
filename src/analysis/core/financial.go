package core

import "math"

// TradingDaysPerYear is the conventional annualization factor for daily returns.
const TradingDaysPerYear = 252

// -----------------------------------------------------------------------------

// CalculateChangePercent calculates percentage change.
func CalculateChangePercent(current, previous float64) float64 {
	if previous == 0 {
		return 0.0
	}
	return (current - previous) / previous
}

// -----------------------------------------------------------------------------

// CalculateReturns computes day-over-day percentage changes. The result is
// always one entry shorter than the input; empty or single-element input
// yields an empty slice.
func CalculateReturns(values []float64) []float64 {
	if len(values) < 2 {
		return []float64{}
	}

	returns := make([]float64, len(values)-1)
	for i := 1; i < len(values); i++ {
		returns[i-1] = CalculateChangePercent(values[i], values[i-1])
	}
	return returns
}

// -----------------------------------------------------------------------------

// CalculateRollingMean computes the simple moving average with the given
// window. Result[i] is nil while fewer than `window` observations exist, so
// the series stays aligned with its input.
func CalculateRollingMean(values []float64, window int) []*float64 {
	result := make([]*float64, len(values))
	if window <= 0 || window > len(values) {
		return result
	}

	// Sliding sum: add the newest value, drop the one leaving the window
	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		if i >= window-1 {
			mean := sum / float64(window)
			result[i] = &mean
		}
	}
	return result
}

// -----------------------------------------------------------------------------

// CalculateAnnualizedVolatility scales the sample std of daily returns by
// the square root of the trading-day count of a year.
func CalculateAnnualizedVolatility(returns []float64) float64 {
	if len(returns) < 2 {
		return 0.0
	}
	_, std := CalculateMeanStd(returns)
	return std * math.Sqrt(TradingDaysPerYear)
}
