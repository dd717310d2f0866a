package utils

import (
	"log"
	"strings"
	"time"

	"github.com/scmhub/calendar"
)

// TradingCalendar calculates trading days using scmhub/calendar.
type TradingCalendar struct {
	Calendar *calendar.Calendar
	Fallback bool
	Timezone *time.Location
}

// -----------------------------------------------------------------------------

// Ticker suffix to MIC code (ISO 10383). Bare tickers default to NYSE.
// See scmhub/calendar for the supported MICs.
var micBySuffix = map[string]string{
	".L":  "xlon",
	".PA": "xpar",
	".DE": "xfra",
	".AS": "xams",
	".BR": "xbru",
	".MI": "xmil",
	".MC": "xmad",
	".ST": "xsto",
	".CO": "xcse",
	".HE": "xhel",
	".VI": "xwbo",
	".SW": "xswx",
	".TO": "xtse",
	".V":  "xtsx",
	".T":  "xtks",
	".HK": "xhkg",
	".AX": "xasx",
	".KS": "xkrx",
	".TW": "xtai",
	".SS": "xshg",
	".SZ": "xshe",
}

// -----------------------------------------------------------------------------

func GetCalendar(symbol string) *TradingCalendar {
	mic := "xnys"
	if i := strings.LastIndex(symbol, "."); i >= 0 {
		if m, ok := micBySuffix[symbol[i:]]; ok {
			mic = m
		}
	}

	cal := calendar.GetCalendar(mic)
	if cal == nil {
		// Fallback to xnys if not found
		cal = calendar.GetCalendar("xnys")
	}

	if cal == nil {
		log.Printf("WARNING: Failed to load calendar for MIC '%s' and fallback 'xnys'. Using simple fallback (Mon-Fri).", mic)
		nyLoc, _ := time.LoadLocation("America/New_York")
		if nyLoc == nil {
			nyLoc = time.UTC // Worst case
		}
		return &TradingCalendar{Fallback: true, Timezone: nyLoc}
	}

	return &TradingCalendar{Calendar: cal, Fallback: false, Timezone: cal.Loc}
}

// -----------------------------------------------------------------------------

func (tc *TradingCalendar) IsTradingDay(date time.Time) bool {
	// Normalize to timezone if available
	if tc.Timezone != nil {
		date = date.In(tc.Timezone)
	}

	if tc.Fallback {
		// Simple fallback: Mon-Fri
		weekday := date.Weekday()
		return weekday != time.Saturday && weekday != time.Sunday
	}
	// Library handles IsHoliday / IsBusinessDay
	return tc.Calendar.IsBusinessDay(date)
}

// -----------------------------------------------------------------------------

// TradingDaysBetween counts the trading sessions in [start, end]. A query
// whose range contains zero sessions can only produce an empty result, so
// the pipeline rejects it before fetching.
//
// The range is walked by calendar date, anchored at noon in the exchange
// timezone: a UTC-midnight instant would otherwise land on the previous
// local day for western exchanges and shift every session by one.
func (tc *TradingCalendar) TradingDaysBetween(start, end time.Time) int {
	if end.Before(start) {
		return 0
	}

	loc := tc.Timezone
	if loc == nil {
		loc = time.UTC
	}

	sy, sm, sd := start.Date()
	ey, em, ed := end.Date()
	day := time.Date(sy, sm, sd, 12, 0, 0, 0, loc)
	last := time.Date(ey, em, ed, 12, 0, 0, 0, loc)

	count := 0
	for !day.After(last) {
		if tc.IsTradingDay(day) {
			count++
		}
		day = day.AddDate(0, 0, 1)
	}
	return count
}
