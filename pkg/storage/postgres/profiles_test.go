package postgres_test

import (
	"context"
	"testing"
	"time"

	"jobboard/pkg/domain"
	"jobboard/pkg/storage"

	"github.com/stretchr/testify/require"
)

func TestPgSQL_EnsureProfile(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	seeker := createUser(t, pg, "seeker", domain.AccountTypeJobSeeker)

	created, err := pg.EnsureProfile(ctx, seeker.ID)
	require.NoError(t, err)
	require.NotNil(t, created)
	require.Equal(t, seeker.ID, created.UserID)

	// idempotent: a second call returns the same row
	again, err := pg.EnsureProfile(ctx, seeker.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, again.ID)
}

func TestPgSQL_UpdateProfile_OverwritesChildren(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	seeker := createUser(t, pg, "seeker", domain.AccountTypeJobSeeker)

	profile, err := pg.EnsureProfile(ctx, seeker.ID)
	require.NoError(t, err)

	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	profile.Headline = "Backend engineer"
	profile.Summary = "Go and Postgres"
	profile.Location = "Austin, TX"
	profile.Skills = []string{"Go", "PostgreSQL"}
	profile.Experiences = []domain.Experience{
		{Title: "Engineer", Company: "Acme", StartDate: &start, Current: true, Show: true},
	}
	profile.Educations = []domain.Education{
		{School: "State U", Degree: "BSc", FieldOfStudy: "CS", Show: true},
	}
	profile.Links = []domain.Link{
		{Kind: domain.LinkKindGitHub, Label: "gh", URL: "https://github.com/seeker", Show: true},
	}

	updated, err := pg.UpdateProfile(ctx, *profile)
	require.NoError(t, err)
	require.NotNil(t, updated)
	require.Equal(t, "Backend engineer", updated.Headline)
	require.ElementsMatch(t, []string{"Go", "PostgreSQL"}, updated.Skills)
	require.Len(t, updated.Experiences, 1)
	require.Len(t, updated.Educations, 1)
	require.Len(t, updated.Links, 1)
	require.NotNil(t, updated.User)
	require.Equal(t, "seeker", updated.User.Username)

	// children not present in the input are deleted
	updated.Skills = []string{"Go"}
	updated.Experiences = nil
	final, err := pg.UpdateProfile(ctx, *updated)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"Go"}, final.Skills)
	require.Empty(t, final.Experiences)
	require.Len(t, final.Educations, 1)
}

func TestPgSQL_SearchCandidates(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	alice := createUser(t, pg, "alice", domain.AccountTypeJobSeeker)
	bob := createUser(t, pg, "bob", domain.AccountTypeJobSeeker)

	aliceProfile, err := pg.EnsureProfile(ctx, alice.ID)
	require.NoError(t, err)
	aliceProfile.Headline = "Senior Go developer"
	aliceProfile.Location = "Austin, TX"
	aliceProfile.Skills = []string{"Go", "PostgreSQL"}
	_, err = pg.UpdateProfile(ctx, *aliceProfile)
	require.NoError(t, err)

	bobProfile, err := pg.EnsureProfile(ctx, bob.ID)
	require.NoError(t, err)
	bobProfile.Headline = "React developer"
	bobProfile.Location = "Denver, CO"
	bobProfile.Skills = []string{"React"}
	_, err = pg.UpdateProfile(ctx, *bobProfile)
	require.NoError(t, err)

	// ALL listed skills must be present
	page, err := pg.SearchCandidates(ctx, storage.CandidateFilters{
		Skills: []string{"go", "postgresql"},
	}, time.Time{}, 10)
	require.NoError(t, err)
	require.Len(t, page.Profiles, 1)
	require.Equal(t, alice.ID, page.Profiles[0].UserID)

	page, err = pg.SearchCandidates(ctx, storage.CandidateFilters{
		Skills: []string{"go", "react"},
	}, time.Time{}, 10)
	require.NoError(t, err)
	require.Empty(t, page.Profiles)

	// free-text query spans username, headline and summary
	page, err = pg.SearchCandidates(ctx, storage.CandidateFilters{Query: "react"}, time.Time{}, 10)
	require.NoError(t, err)
	require.Len(t, page.Profiles, 1)
	require.Equal(t, bob.ID, page.Profiles[0].UserID)

	// location substring
	page, err = pg.SearchCandidates(ctx, storage.CandidateFilters{Location: "austin"}, time.Time{}, 10)
	require.NoError(t, err)
	require.Len(t, page.Profiles, 1)

	// loaded profiles carry their user
	require.NotNil(t, page.Profiles[0].User)
	require.Equal(t, "alice", page.Profiles[0].User.Username)
}
