package parking

import (
	"context"
	"log/slog"
)

// RolloverSummary is what a period boundary leaves behind.
type RolloverSummary struct {
	Deleted int64 `json:"deletedCount"`
}

// Rollover is the billing-period boundary batch. Somebody external decides
// when a period ends and calls Run; the job never schedules itself.
//
// The treatment is deliberately uneven: OFFICIAL sessions are purged
// outright, RESIDENT sessions keep their rows but lose their minutes, and
// STANDARD sessions carry their minutes into the next period untouched.
type Rollover struct {
	Logger   *slog.Logger
	Sessions SessionStore
}

func NewRollover(logger *slog.Logger, sessions SessionStore) *Rollover {
	return &Rollover{
		Logger:   logger.With("service", "rollover"),
		Sessions: sessions,
	}
}

func (job *Rollover) Run(ctx context.Context) (RolloverSummary, error) {
	deleted, err := job.Sessions.MonthlyRollover(ctx)
	if err != nil {
		return RolloverSummary{}, err
	}

	job.Logger.Info("monthly rollover done", "deletedSessions", deleted)

	return RolloverSummary{Deleted: deleted}, nil
}
