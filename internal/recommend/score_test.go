package recommend_test

import (
	"testing"

	"jobboard/internal/recommend"
	"jobboard/pkg/domain"

	"github.com/stretchr/testify/require"
)

func TestScoreJobForSeeker(t *testing.T) {
	job := &domain.Job{
		RequiredSkills:   []string{"Go", "PostgreSQL"},
		NiceToHaveSkills: []string{"Docker", "Kubernetes"},
	}

	// two required (2 each) + one nice-to-have (1) = 5
	score, matchedRequired, matchedNice := recommend.ScoreJobForSeeker(job,
		[]string{"go", "postgresql", "docker"})
	require.Equal(t, 5, score)
	require.Equal(t, []string{"Go", "PostgreSQL"}, matchedRequired)
	require.Equal(t, []string{"Docker"}, matchedNice)

	// no overlap
	score, matchedRequired, matchedNice = recommend.ScoreJobForSeeker(job, []string{"Rust"})
	require.Equal(t, 0, score)
	require.Empty(t, matchedRequired)
	require.Empty(t, matchedNice)
}

func TestScoreCandidateForJob_Skills(t *testing.T) {
	job := &domain.Job{
		Title:            "Platform Engineer",
		RequiredSkills:   []string{"Go", "PostgreSQL"},
		NiceToHaveSkills: []string{"Docker"},
	}

	profile := &domain.Profile{Skills: []string{"go", "docker"}}

	// one required (10) + one nice-to-have (3) = 13
	require.Equal(t, 13, recommend.ScoreCandidateForJob(job, profile))
}

func TestScoreCandidateForJob_LocationBonus(t *testing.T) {
	base := domain.Job{
		Title:          "Engineer",
		Location:       "Austin, TX",
		RequiredSkills: []string{"Go"},
	}
	profile := &domain.Profile{Skills: []string{"Go"}, Location: "Austin, TX"}

	// exact location match adds 5
	job := base
	require.Equal(t, 15, recommend.ScoreCandidateForJob(&job, profile))

	// exact match is case insensitive
	profile.Location = "austin, tx"
	require.Equal(t, 15, recommend.ScoreCandidateForJob(&job, profile))

	// different location on a remote job adds 2
	profile.Location = "Denver, CO"
	job.WorkType = domain.WorkTypeRemote
	require.Equal(t, 12, recommend.ScoreCandidateForJob(&job, profile))

	// different location on an on-site job adds nothing
	job.WorkType = domain.WorkTypeOnSite
	require.Equal(t, 10, recommend.ScoreCandidateForJob(&job, profile))

	// blank profile location earns no bonus
	profile.Location = ""
	job.WorkType = domain.WorkTypeRemote
	require.Equal(t, 10, recommend.ScoreCandidateForJob(&job, profile))
}

func TestScoreCandidateForJob_TitleWords(t *testing.T) {
	job := &domain.Job{
		Title:          "Senior Go Engineer",
		RequiredSkills: []string{"Go"},
	}
	profile := &domain.Profile{
		Skills:  []string{"Go"},
		Summary: "Senior engineer working on Go services.",
	}

	// 10 for the skill + 1 per title word found in the summary (senior, go, engineer)
	require.Equal(t, 13, recommend.ScoreCandidateForJob(job, profile))
}
