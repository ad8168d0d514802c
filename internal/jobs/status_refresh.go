// Package jobs hosts the background tickers the server runs alongside the
// HTTP surface.
package jobs

import (
	"context"
	"log/slog"
	"time"

	"englishcenter/admin/internal/config"
	"englishcenter/admin/internal/db"
	"englishcenter/admin/internal/model"
)

// StatusFor derives a classroom status from its date range at the given
// instant. Classrooms without a date range keep their stored status.
func StatusFor(schedule model.Schedule, now time.Time) (model.Status, bool) {
	if schedule.Start == 0 || schedule.End == 0 {
		return "", false
	}
	ms := now.UnixMilli()
	switch {
	case ms < schedule.Start:
		return model.StatusUpcoming, true
	case ms > schedule.End:
		return model.StatusInactive, true
	default:
		return model.StatusActive, true
	}
}

// StartStatusRefreshJob periodically reconciles classroom statuses with
// their date ranges. The goroutine exits when ctx is cancelled.
func StartStatusRefreshJob(ctx context.Context, cfg config.Config, store *db.Store, logger *slog.Logger) {
	if !cfg.StatusJobEnabled {
		return
	}
	if logger == nil {
		logger = slog.Default()
	}
	interval := cfg.StatusJobInterval
	if interval <= 0 {
		interval = time.Minute
	}
	timeout := cfg.StatusJobTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				tickCtx, cancel := context.WithTimeout(ctx, timeout)
				updated, err := refreshStatuses(tickCtx, store, time.Now().UTC())
				cancel()
				if err != nil {
					logger.Error("status refresh failed", "error", err)
					continue
				}
				if updated > 0 {
					logger.Info("status refresh updated classrooms", "count", updated)
				}
			}
		}
	}()
}

func refreshStatuses(ctx context.Context, store *db.Store, now time.Time) (int, error) {
	classrooms, err := store.ListClassrooms(ctx)
	if err != nil {
		return 0, err
	}
	updated := 0
	for _, classroom := range classrooms {
		status, ok := StatusFor(classroom.Schedule, now)
		if !ok || status == classroom.Status {
			continue
		}
		if err := store.UpdateClassroomStatus(ctx, classroom.ID, status, now); err != nil {
			return updated, err
		}
		updated++
	}
	return updated, nil
}
