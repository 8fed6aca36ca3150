// Package recommend scores postings against job seekers and job seekers
// against postings.
package recommend

import (
	"context"
	"fmt"
	"sort"
	"time"

	"jobboard/pkg/domain"
	"jobboard/pkg/serrors"
	"jobboard/pkg/storage"
)

// service is the concrete implementation of the Recommend interface.
type service struct {
	storage storage.Storage
}

// JobsForSeeker returns active postings overlapping the seeker's skills,
// best score first, then newest.
func (s service) JobsForSeeker(ctx context.Context, user *domain.User) ([]JobRecommendation, error) {
	if !user.IsJobSeeker() {
		return nil, serrors.With(serrors.ErrNotFound, "page not found")
	}

	profile, err := s.storage.ProfileByUserID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("could not get profile: %w", err)
	}
	if profile == nil {
		return nil, serrors.With(serrors.ErrNotFound, "profile not found")
	}

	jobs, err := s.storage.ActiveJobs(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not get active jobs: %w", err)
	}

	recommendations := make([]JobRecommendation, 0, len(jobs))
	for i := range jobs {
		score, matchedRequired, matchedNice := ScoreJobForSeeker(&jobs[i], profile.Skills)
		if score <= 0 {
			continue
		}

		recommendations = append(recommendations, JobRecommendation{
			Job:             jobs[i],
			Score:           score,
			MatchedRequired: matchedRequired,
			MatchedNice:     matchedNice,
		})
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		if recommendations[i].Score != recommendations[j].Score {
			return recommendations[i].Score > recommendations[j].Score
		}

		return recommendations[i].Job.CreatedAt.After(recommendations[j].Job.CreatedAt)
	})

	return recommendations, nil
}

// CandidatesForJob returns job-seeker profiles scored against one of the
// recruiter's own postings, best first.
func (s service) CandidatesForJob(ctx context.Context,
	user *domain.User,
	jobID domain.JobID) ([]CandidateRecommendation, error) {
	if !user.IsRecruiter() {
		return nil, serrors.With(serrors.ErrNotFound, "page not found")
	}

	job, err := s.storage.JobByID(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("could not get job: %w", err)
	}
	if job == nil || job.PostedBy != user.ID {
		return nil, serrors.With(serrors.ErrNotFound, "job not found")
	}

	profiles, err := s.storage.ProfilesUpdatedSince(ctx, time.Time{})
	if err != nil {
		return nil, fmt.Errorf("could not get profiles: %w", err)
	}

	recommendations := make([]CandidateRecommendation, 0, len(profiles))
	for i := range profiles {
		score := ScoreCandidateForJob(job, &profiles[i])
		if score <= 0 {
			continue
		}

		recommendations = append(recommendations, CandidateRecommendation{
			Profile: profiles[i],
			Score:   score,
		})
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].Score > recommendations[j].Score
	})

	return recommendations, nil
}

// New creates a new Recommend instance backed by the provided storage.
func New(storage storage.Storage) Recommend {
	return &service{storage: storage}
}
