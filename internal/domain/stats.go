package domain

import (
	"sort"
	"time"
)

// DateLayout is the calendar-date format used for ledger keys and the
// lastSessionDate setting.
const DateLayout = "2006-01-02"

// LedgerDays is the size of the trailing window kept in the weekly ledger,
// inclusive of today.
const LedgerDays = 7

// DailyStat is one day's aggregated focus activity. The JSON field names
// are part of the persisted ledger format.
type DailyStat struct {
	Date     string  `json:"date"`
	Sessions int     `json:"sessions"`
	Minutes  float64 `json:"minutes"`
}

// Weekday returns the short weekday label for the stat's date, or "?" if
// the date does not parse.
func (d DailyStat) Weekday() string {
	t, err := time.Parse(DateLayout, d.Date)
	if err != nil {
		return "?"
	}
	return t.Format("Mon")
}

// WeeklyReport is a derived view over the ledger. It is recomputed on
// demand and never persisted.
type WeeklyReport struct {
	Days          []DailyStat
	TotalSessions int
	TotalMinutes  float64
	BestDay       *DailyStat
	DailyAverage  float64
}

// NewWeeklyReport reduces a ledger into weekly totals, the best day by
// minutes, and the average minutes across days that have activity.
func NewWeeklyReport(days []DailyStat) WeeklyReport {
	r := WeeklyReport{Days: days}
	for i := range days {
		r.TotalSessions += days[i].Sessions
		r.TotalMinutes += days[i].Minutes
		if r.BestDay == nil || days[i].Minutes > r.BestDay.Minutes {
			r.BestDay = &days[i]
		}
	}
	if len(days) > 0 {
		r.DailyAverage = r.TotalMinutes / float64(len(days))
	}
	return r
}

// PruneLedger drops entries outside the trailing LedgerDays-day window
// ending at now, and deduplicates by date keeping the last entry seen.
func PruneLedger(days []DailyStat, now time.Time) []DailyStat {
	window := make(map[string]bool, LedgerDays)
	for i := 0; i < LedgerDays; i++ {
		window[now.AddDate(0, 0, -i).Format(DateLayout)] = true
	}

	byDate := make(map[string]DailyStat, len(days))
	for _, d := range days {
		if window[d.Date] {
			byDate[d.Date] = d
		}
	}

	pruned := make([]DailyStat, 0, len(byDate))
	for _, d := range byDate {
		pruned = append(pruned, d)
	}
	sort.Slice(pruned, func(i, j int) bool { return pruned[i].Date < pruned[j].Date })
	return pruned
}

// Streak counts consecutive calendar days with recorded sessions, walking
// backward from today. The cursor starts at today whether or not today has
// an entry, so a chain ending yesterday still counts.
func Streak(days []DailyStat, now time.Time) int {
	if len(days) == 0 {
		return 0
	}

	dates := make([]time.Time, 0, len(days))
	for _, d := range days {
		t, err := time.Parse(DateLayout, d.Date)
		if err != nil {
			continue
		}
		dates = append(dates, t)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].After(dates[j]) })

	cursor := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	count := 0
	for _, d := range dates {
		switch {
		case sameDay(d, cursor):
			count++
			cursor = d
		case sameDay(d, cursor.AddDate(0, 0, -1)):
			count++
			cursor = d
		default:
			return count
		}
	}
	return count
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
