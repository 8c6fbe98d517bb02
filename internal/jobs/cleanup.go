package jobs

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dukerupert/vitrina/internal/worker"
)

// SessionPruner deletes expired sessions and the guest cart lines they
// leave behind.
type SessionPruner interface {
	DeleteExpiredSessions(ctx context.Context) (int64, error)
	DeleteOrphanGuestCartLines(ctx context.Context) (int64, error)
}

// CleanupResult holds the result of a cleanup run
type CleanupResult struct {
	SessionsDeleted  int64 `json:"sessions_deleted"`
	CartLinesDeleted int64 `json:"cart_lines_deleted"`
}

// PruneSessions removes expired sessions, then guest cart lines whose
// session no longer exists.
func PruneSessions(ctx context.Context, q SessionPruner) (*CleanupResult, error) {
	sessions, err := q.DeleteExpiredSessions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to delete expired sessions: %w", err)
	}

	lines, err := q.DeleteOrphanGuestCartLines(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to delete orphan cart lines: %w", err)
	}

	return &CleanupResult{SessionsDeleted: sessions, CartLinesDeleted: lines}, nil
}

// PruneSessionsTask wraps PruneSessions for the worker schedule.
func PruneSessionsTask(q SessionPruner, logger *slog.Logger) worker.TaskFunc {
	return func(ctx context.Context) error {
		result, err := PruneSessions(ctx, q)
		if err != nil {
			return err
		}
		logger.Info("pruned sessions",
			"sessions_deleted", result.SessionsDeleted,
			"cart_lines_deleted", result.CartLinesDeleted,
		)
		return nil
	}
}
