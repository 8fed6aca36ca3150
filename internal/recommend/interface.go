package recommend

import (
	"context"

	"jobboard/pkg/domain"
)

// JobRecommendation is an active posting scored against a seeker's skills,
// with the overlapping skill names broken out for display.
type JobRecommendation struct {
	Job             domain.Job `json:"job"`
	Score           int        `json:"score"`
	MatchedRequired []string   `json:"matchedRequired"`
	MatchedNice     []string   `json:"matchedNice"`
}

// CandidateRecommendation is a job-seeker profile scored against a posting.
type CandidateRecommendation struct {
	Profile domain.Profile `json:"profile"`
	Score   int            `json:"score"`
}

//go:generate mockgen -package mockrecommend -source=interface.go -destination=mock/mockrecommend.go *
type Recommend interface {
	// JobsForSeeker scores active postings against the seeker's skills and
	// returns those with a positive score, best first.
	JobsForSeeker(ctx context.Context, user *domain.User) ([]JobRecommendation, error)
	// CandidatesForJob scores all job-seeker profiles against one of the
	// recruiter's own postings and returns those with a positive score,
	// best first.
	CandidatesForJob(ctx context.Context,
		user *domain.User,
		jobID domain.JobID) ([]CandidateRecommendation, error)
}
