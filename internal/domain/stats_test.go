package domain

import (
	"testing"
	"time"
)

var statsNow = time.Date(2026, 8, 25, 14, 30, 0, 0, time.UTC)

func day(offset int) string {
	return statsNow.AddDate(0, 0, offset).Format(DateLayout)
}

func TestPruneLedger(t *testing.T) {
	t.Run("drops entries outside the window", func(t *testing.T) {
		ledger := []DailyStat{
			{Date: day(-10), Sessions: 3, Minutes: 75},
			{Date: day(-7), Sessions: 1, Minutes: 25},
			{Date: day(-6), Sessions: 2, Minutes: 50},
			{Date: day(0), Sessions: 1, Minutes: 25},
		}

		got := PruneLedger(ledger, statsNow)
		if len(got) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(got))
		}
		if got[0].Date != day(-6) || got[1].Date != day(0) {
			t.Errorf("unexpected dates: %s, %s", got[0].Date, got[1].Date)
		}
	})

	t.Run("sorts ascending by date", func(t *testing.T) {
		ledger := []DailyStat{
			{Date: day(0), Sessions: 1},
			{Date: day(-3), Sessions: 1},
			{Date: day(-1), Sessions: 1},
		}

		got := PruneLedger(ledger, statsNow)
		for i := 1; i < len(got); i++ {
			if got[i-1].Date >= got[i].Date {
				t.Errorf("not sorted at %d: %s >= %s", i, got[i-1].Date, got[i].Date)
			}
		}
	})

	t.Run("deduplicates by date keeping the last entry", func(t *testing.T) {
		ledger := []DailyStat{
			{Date: day(0), Sessions: 1, Minutes: 25},
			{Date: day(0), Sessions: 4, Minutes: 100},
		}

		got := PruneLedger(ledger, statsNow)
		if len(got) != 1 {
			t.Fatalf("expected 1 entry, got %d", len(got))
		}
		if got[0].Sessions != 4 {
			t.Errorf("expected last entry to win, got sessions=%d", got[0].Sessions)
		}
	})

	t.Run("empty ledger", func(t *testing.T) {
		if got := PruneLedger(nil, statsNow); len(got) != 0 {
			t.Errorf("expected empty result, got %v", got)
		}
	})
}

func TestStreak(t *testing.T) {
	tests := []struct {
		name    string
		offsets []int
		want    int
	}{
		{"empty", nil, 0},
		{"today only", []int{0}, 1},
		{"three day chain ending today", []int{0, -1, -2}, 3},
		{"chain ending yesterday", []int{-1, -2, -3}, 3},
		{"chain ending two days ago", []int{-2, -3}, 0},
		{"gap after two days", []int{0, -1, -3, -4, -5}, 2},
		{"unsorted input", []int{-2, 0, -1}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ledger []DailyStat
			for _, off := range tt.offsets {
				ledger = append(ledger, DailyStat{Date: day(off), Sessions: 1})
			}
			if got := Streak(ledger, statsNow); got != tt.want {
				t.Errorf("Streak() = %d, want %d", got, tt.want)
			}
		})
	}

	t.Run("ignores unparsable dates", func(t *testing.T) {
		ledger := []DailyStat{
			{Date: "not-a-date", Sessions: 1},
			{Date: day(0), Sessions: 1},
		}
		if got := Streak(ledger, statsNow); got != 1 {
			t.Errorf("Streak() = %d, want 1", got)
		}
	})
}

func TestNewWeeklyReport(t *testing.T) {
	t.Run("totals and best day", func(t *testing.T) {
		report := NewWeeklyReport([]DailyStat{
			{Date: day(-2), Sessions: 2, Minutes: 50},
			{Date: day(-1), Sessions: 4, Minutes: 100},
			{Date: day(0), Sessions: 1, Minutes: 25},
		})

		if report.TotalSessions != 7 {
			t.Errorf("TotalSessions = %d, want 7", report.TotalSessions)
		}
		if report.TotalMinutes != 175 {
			t.Errorf("TotalMinutes = %f, want 175", report.TotalMinutes)
		}
		if report.BestDay == nil || report.BestDay.Date != day(-1) {
			t.Errorf("BestDay = %v, want %s", report.BestDay, day(-1))
		}
		if want := 175.0 / 3; report.DailyAverage != want {
			t.Errorf("DailyAverage = %f, want %f", report.DailyAverage, want)
		}
	})

	t.Run("empty ledger", func(t *testing.T) {
		report := NewWeeklyReport(nil)
		if report.TotalSessions != 0 || report.BestDay != nil || report.DailyAverage != 0 {
			t.Errorf("expected zero report, got %+v", report)
		}
	})
}

func TestDailyStatWeekday(t *testing.T) {
	d := DailyStat{Date: "2026-08-25"}
	if got := d.Weekday(); got != "Tue" {
		t.Errorf("Weekday() = %q, want Tue", got)
	}

	bad := DailyStat{Date: "garbage"}
	if got := bad.Weekday(); got != "?" {
		t.Errorf("Weekday() = %q, want ?", got)
	}
}
