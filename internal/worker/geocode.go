package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"jobboard/internal/jobs"
	"jobboard/pkg/domain"
	"jobboard/pkg/logger"
	"jobboard/pkg/serrors"

	"github.com/riverqueue/river"
	"go.uber.org/zap"
)

// geocodeRateLimitSnooze is how long a geocode job is deferred when the
// provider reports rate limiting.
const geocodeRateLimitSnooze = time.Minute

// GeocodeWorker resolves a posting's location into coordinates.
type GeocodeWorker struct {
	river.WorkerDefaults[jobs.GeocodeArgs]

	jobs jobs.Jobs
}

// NewGeocodeWorker constructs a GeocodeWorker using the provided jobs service.
func NewGeocodeWorker(j jobs.Jobs) *GeocodeWorker {
	return &GeocodeWorker{jobs: j}
}

func (w *GeocodeWorker) Work(ctx context.Context, job *river.Job[jobs.GeocodeArgs]) error {
	ctx = logger.WithFields(ctx,
		zap.Int64("jobID", job.ID),
		zap.String("postingID", job.Args.JobID.String()))

	if err := w.jobs.Geocode(ctx, domain.JobID(job.Args.JobID)); err != nil {
		// the posting may have been deleted between enqueue and run
		if errors.Is(err, serrors.ErrNotFound) {
			return river.JobCancel(err) //nolint: wrapcheck
		}

		logger.Error(ctx, "error geocoding job location", zap.Error(err))

		if errors.Is(err, serrors.ErrRateLimited) {
			return river.JobSnooze(geocodeRateLimitSnooze) //nolint: wrapcheck
		}

		return fmt.Errorf("could not geocode job location: %w", err)
	}

	logger.Info(ctx, "job location geocoded")

	return nil
}
