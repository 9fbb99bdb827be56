package engine

import (
	"context"
	"encoding/json"
	"time"

	"github.com/xvierd/pomo-cli/internal/domain"
	"github.com/xvierd/pomo-cli/internal/ports"
)

// recordFocusLocked folds a completed focus session into the weekly
// ledger, persists the counters, and appends to the session log. Called
// with the session baseline still intact.
func (e *Engine) recordFocusLocked(elapsedSeconds float64, now time.Time) {
	today := now.Format(domain.DateLayout)

	ledger := e.loadLedgerLocked()
	found := false
	for i := range ledger {
		if ledger[i].Date == today {
			ledger[i].Sessions++
			ledger[i].Minutes += elapsedSeconds / 60
			found = true
			break
		}
	}
	if !found {
		ledger = append(ledger, domain.DailyStat{
			Date:     today,
			Sessions: 1,
			Minutes:  elapsedSeconds / 60,
		})
	}

	e.saveLedgerLocked(domain.PruneLedger(ledger, now))

	e.lastSessionDate = today
	e.saveCountersLocked()

	if e.log != nil {
		start := e.sessionStart
		if start.IsZero() {
			start = now
		}
		session := domain.NewFocusSession(start, now, elapsedSeconds)
		if e.git != nil && e.git.IsAvailable() {
			if info, err := e.git.Detect(context.Background(), ""); err == nil && info != nil {
				session.GitBranch = info.Branch
				session.GitCommit = info.Commit
			}
		}
		_ = e.log.Append(context.Background(), session)
	}
}

// WeeklyData returns the trailing 7-day ledger ordered by date.
func (e *Engine) WeeklyData() []domain.DailyStat {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loadLedgerLocked()
}

// CurrentStreak returns the count of consecutive calendar days, ending
// today or yesterday, with at least one recorded focus session.
func (e *Engine) CurrentStreak() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return domain.Streak(e.loadLedgerLocked(), e.now())
}

// loadLedgerLocked reads the stored ledger, pruned to the trailing 7-day
// window. A stored value can hold dates that have since aged out (the last
// write may be days old), so every read prunes. A missing key yields an
// empty ledger; a malformed value is replaced with an empty one so the
// corruption does not persist.
func (e *Engine) loadLedgerLocked() []domain.DailyStat {
	raw, err := e.settings.Get(ports.KeyWeeklyData)
	if err != nil || raw == "" {
		return nil
	}

	var ledger []domain.DailyStat
	if err := json.Unmarshal([]byte(raw), &ledger); err != nil {
		_ = e.settings.Set(ports.KeyWeeklyData, "[]")
		return nil
	}
	return domain.PruneLedger(ledger, e.now())
}

func (e *Engine) saveLedgerLocked(ledger []domain.DailyStat) {
	if ledger == nil {
		ledger = []domain.DailyStat{}
	}
	data, err := json.Marshal(ledger)
	if err != nil {
		return
	}
	_ = e.settings.Set(ports.KeyWeeklyData, string(data))
}
