package ledger

import (
	"context"
	"sort"
	"time"

	"github.com/macrofit/macrofit-cli/internal/clock"
	"github.com/macrofit/macrofit-cli/internal/model"
	"github.com/macrofit/macrofit-cli/internal/store"
)

// Entries younger than this many logical days are never archived.
const archiveWindowDays = 7

type LifecycleReport struct {
	ArchivedEntries int      `json:"archived_entries"`
	ArchivedDays    []string `json:"archived_days,omitempty"`
	PrunedSummaries int      `json:"pruned_summaries"`
}

func (r LifecycleReport) Changed() bool {
	return r.ArchivedEntries > 0 || r.PrunedSummaries > 0
}

// RunLifecycle folds entries older than the archive window into daily
// summaries and prunes summaries beyond the retention horizon. Running it
// again with no new entries is a no-op.
func (l *Ledger) RunLifecycle() LifecycleReport {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clk.Now()
	resetHour := l.prefs.DayResetHour
	archiveCutoff := clock.DayBucket(now.AddDate(0, 0, -archiveWindowDays), resetHour)
	retentionCutoff := clock.DayBucket(now.AddDate(0, 0, -l.prefs.RetentionDays), resetHour)

	report := LifecycleReport{}

	// Phase 1: archive. Group stale entries by day and fold each group
	// into a summary unless the day already has one (persisted summaries
	// are authoritative and never overwritten).
	keep := make([]model.MealPlanEntry, 0, len(l.entries))
	stale := map[string][]model.MealPlanEntry{}
	for _, e := range l.entries {
		bucket := clock.DayBucket(e.CreatedAt, resetHour)
		if bucket < archiveCutoff {
			stale[bucket] = append(stale[bucket], e)
		} else {
			keep = append(keep, e)
		}
	}
	for bucket, dayEntries := range stale {
		report.ArchivedEntries += len(dayEntries)
		report.ArchivedDays = append(report.ArchivedDays, bucket)
		if _, exists := l.summaries[bucket]; exists {
			continue
		}
		sort.SliceStable(dayEntries, func(i, j int) bool {
			return dayEntries[i].CreatedAt.Before(dayEntries[j].CreatedAt)
		})
		l.summaries[bucket] = l.buildSummary(bucket, dayEntries)
	}
	sort.Strings(report.ArchivedDays)

	// Phase 2: prune summaries past the retention horizon.
	for date := range l.summaries {
		if date < retentionCutoff {
			delete(l.summaries, date)
			report.PrunedSummaries++
		}
	}

	if report.ArchivedEntries > 0 {
		l.entries = keep
		l.persistLocked(store.KeyMealPlanEntries, l.entries)
	}
	if report.Changed() {
		l.persistLocked(store.KeyDailySummaries, l.summaries)
	}
	return report
}

// Watch runs the lifecycle immediately and then on a fixed interval until
// the context is cancelled. Runs are sequential, so a slow pass can never
// overlap the next tick.
func (l *Ledger) Watch(ctx context.Context, interval time.Duration) {
	run := func() {
		report := l.RunLifecycle()
		if report.Changed() {
			l.logger.Info("lifecycle compaction",
				"archived_entries", report.ArchivedEntries,
				"archived_days", len(report.ArchivedDays),
				"pruned_summaries", report.PrunedSummaries)
		}
	}

	run()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			run()
		}
	}
}
