package worker

import (
	"context"
	"fmt"

	"jobboard/internal/matcher"
	"jobboard/pkg/domain"
	"jobboard/pkg/logger"

	"github.com/riverqueue/river"
	"go.uber.org/zap"
)

// MatchSyncWorker reconciles saved-search notification buckets for one job
// seeker after their profile changed.
type MatchSyncWorker struct {
	river.WorkerDefaults[matcher.SyncArgs]

	matcher matcher.Matcher
}

// NewMatchSyncWorker constructs a MatchSyncWorker using the provided matcher.
func NewMatchSyncWorker(m matcher.Matcher) *MatchSyncWorker {
	return &MatchSyncWorker{matcher: m}
}

func (w *MatchSyncWorker) Work(ctx context.Context, job *river.Job[matcher.SyncArgs]) error {
	ctx = logger.WithFields(ctx,
		zap.Int64("jobID", job.ID),
		zap.String("userID", job.Args.UserID.String()))

	updated, err := w.matcher.SyncProfile(ctx, domain.UserID(job.Args.UserID))
	if err != nil {
		logger.Error(ctx, "error syncing profile matches", zap.Error(err))

		return fmt.Errorf("could not sync profile matches: %w", err)
	}

	logger.Info(ctx, "profile matches synced", zap.Int("bucketsUpdated", updated))

	return nil
}

// SweepWorker periodically re-checks recently updated profiles against all
// notify-enabled saved searches, backstopping the per-update sync.
type SweepWorker struct {
	river.WorkerDefaults[matcher.SweepArgs]

	matcher matcher.Matcher
}

// NewSweepWorker constructs a SweepWorker using the provided matcher.
func NewSweepWorker(m matcher.Matcher) *SweepWorker {
	return &SweepWorker{matcher: m}
}

func (w *SweepWorker) Work(ctx context.Context, job *river.Job[matcher.SweepArgs]) error {
	ctx = logger.WithFields(ctx, zap.Int64("jobID", job.ID))

	updated, err := w.matcher.Sweep(ctx)
	if err != nil {
		logger.Error(ctx, "error sweeping saved searches", zap.Error(err))

		return fmt.Errorf("could not sweep saved searches: %w", err)
	}

	logger.Info(ctx, "saved-search sweep finished", zap.Int("bucketsUpdated", updated))

	return nil
}
