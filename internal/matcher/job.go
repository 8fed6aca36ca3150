package matcher

import (
	"github.com/google/uuid"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/rivertype"
)

// SyncArgs contains the arguments for a profile reconciliation job submitted
// to River. The user ID is the unique key so a burst of profile edits
// collapses into a single pending job.
type SyncArgs struct {
	// UserID is the job seeker whose profile changed.
	UserID uuid.UUID `json:"userId" river:"unique"`
}

// Kind returns the River job kind used to register and dispatch the sync worker.
func (args SyncArgs) Kind() string { return "ProfileMatchSyncJob" }

// InsertOpts deduplicates queued syncs per user: while one is waiting to run,
// further edits don't enqueue another.
func (args SyncArgs) InsertOpts() river.InsertOpts {
	return river.InsertOpts{
		UniqueOpts: river.UniqueOpts{
			ByArgs: true,
			ByState: []rivertype.JobState{
				rivertype.JobStateAvailable,
				rivertype.JobStatePending,
				rivertype.JobStateRetryable,
				rivertype.JobStateScheduled,
			},
		},
	}
}

// SweepArgs contains the arguments for the periodic saved-search sweep.
type SweepArgs struct{}

// Kind returns the River job kind used to register and dispatch the sweep worker.
func (args SweepArgs) Kind() string { return "SavedSearchSweepJob" }
