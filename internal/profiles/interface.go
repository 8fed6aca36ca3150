package profiles

import (
	"context"

	"jobboard/pkg/domain"
)

// UpdateParams carries the writable fields of a profile. Child collections
// replace the stored ones wholesale.
type UpdateParams struct {
	Headline     string
	Summary      string
	Location     string
	ShowHeadline bool
	ShowLocation bool
	ShowSummary  bool
	ShowSkills   bool
	Skills       []string
	Educations   []domain.Education
	Experiences  []domain.Experience
	Links        []domain.Link
}

//go:generate mockgen -package mockprofiles -source=interface.go -destination=mock/mockprofiles.go *
type Profiles interface {
	// Me returns the caller's profile, creating an empty one for job seekers
	// that somehow lack it.
	Me(ctx context.Context, user *domain.User) (*domain.Profile, error)
	// Update overwrites the caller's profile and schedules saved-search
	// reconciliation.
	Update(ctx context.Context, user *domain.User, params UpdateParams) (*domain.Profile, error)
	// PublicByUsername returns another user's profile with hidden sections
	// stripped per its visibility flags.
	PublicByUsername(ctx context.Context, username string) (*domain.Profile, error)
}
