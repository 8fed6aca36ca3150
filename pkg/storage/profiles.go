package storage

import (
	"context"
	"time"

	"jobboard/pkg/domain"
)

// CandidateFilters describes the optional criteria of a candidate search.
type CandidateFilters struct {
	// Query is matched case-insensitively against first name, last name,
	// username, headline and summary.
	Query string
	// Skills must ALL be present on the profile (case-insensitive).
	Skills []string
	// Location is a case-insensitive substring filter on the profile location.
	Location string
	// UpdatedSince keeps only profiles updated at or after the given time.
	UpdatedSince time.Time
}

// CandidatePage groups a page of profiles with an optional NextCursor for
// pagination (profiles are ordered by updated_at DESC).
type CandidatePage struct {
	Profiles   []domain.Profile
	NextCursor *time.Time
}

// ProfileStorage defines persistence operations for job-seeker profiles.
// Loaded profiles carry their skills, child collections and owning user.
type ProfileStorage interface {
	// EnsureProfile returns the profile owned by the user, creating an empty
	// one when absent (get-or-create).
	EnsureProfile(ctx context.Context, userID domain.UserID) (*domain.Profile, error)
	// ProfileByUserID fetches a fully loaded profile. Returns nil when the
	// user has no profile.
	ProfileByUserID(ctx context.Context, userID domain.UserID) (*domain.Profile, error)
	// UpdateProfile replaces the profile fields, skills and child collections
	// with the given state (overwrite semantics: stored children not present
	// in the input are deleted) and stamps updated_at.
	UpdateProfile(ctx context.Context, profile domain.Profile) (*domain.Profile, error)
	// SearchCandidates returns a page of profiles matching the filters,
	// ordered by updated_at DESC, updated before the optional cursor.
	SearchCandidates(ctx context.Context,
		filters CandidateFilters,
		cursor time.Time,
		limit uint) (CandidatePage, error)
	// ProfilesUpdatedSince returns fully loaded profiles updated at or after
	// the given time, for the periodic match sweep.
	ProfilesUpdatedSince(ctx context.Context, since time.Time) ([]domain.Profile, error)
}
