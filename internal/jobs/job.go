package jobs

import (
	"github.com/google/uuid"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/rivertype"
)

// GeocodeArgs contains the arguments for a geocode job submitted to River.
// The job ID is the unique key so repeated edits collapse into one lookup.
type GeocodeArgs struct {
	// JobID is the posting whose location should be resolved.
	JobID uuid.UUID `json:"jobId" river:"unique"`
}

// Kind returns the River job kind used to register and dispatch the geocode worker.
func (args GeocodeArgs) Kind() string { return "GeocodeJobLocationJob" }

// InsertOpts deduplicates queued geocodes per posting.
func (args GeocodeArgs) InsertOpts() river.InsertOpts {
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
