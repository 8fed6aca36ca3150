// Package profiles implements job-seeker profile management and the public
// profile view.
package profiles

import (
	"context"
	"fmt"

	"jobboard/internal/matcher"
	"jobboard/pkg/domain"
	"jobboard/pkg/serrors"
	"jobboard/pkg/storage"

	"github.com/google/uuid"
)

// service is the concrete implementation of the Profiles interface.
type service struct {
	storage storage.Storage
}

// Me returns the caller's profile. Job seekers always have one; it is created
// lazily if missing.
func (s service) Me(ctx context.Context, user *domain.User) (*domain.Profile, error) {
	if !user.IsJobSeeker() {
		return nil, serrors.With(serrors.ErrNotFound, "profile not found")
	}

	profile, err := s.storage.EnsureProfile(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("could not get profile: %w", err)
	}

	return profile, nil
}

// Update overwrites the caller's profile. Children not present in the input
// are deleted. A reconciliation job is enqueued in the same transaction so
// saved-search notifications follow every committed change.
func (s service) Update(ctx context.Context,
	user *domain.User,
	params UpdateParams) (*domain.Profile, error) {
	if !user.IsJobSeeker() {
		return nil, serrors.With(serrors.ErrNotFound, "profile not found")
	}

	var profile *domain.Profile
	if err := s.storage.WithTx(ctx, func(tx storage.AllStorage) error {
		existing, err := tx.EnsureProfile(ctx, user.ID)
		if err != nil {
			return fmt.Errorf("could not get profile: %w", err)
		}

		updated, err := tx.UpdateProfile(ctx, domain.Profile{
			ID:           existing.ID,
			UserID:       user.ID,
			Headline:     params.Headline,
			Summary:      params.Summary,
			Location:     params.Location,
			ShowHeadline: params.ShowHeadline,
			ShowLocation: params.ShowLocation,
			ShowSummary:  params.ShowSummary,
			ShowSkills:   params.ShowSkills,
			Skills:       params.Skills,
			Educations:   params.Educations,
			Experiences:  params.Experiences,
			Links:        params.Links,
		})
		if err != nil {
			return fmt.Errorf("could not update profile: %w", err)
		}
		if updated == nil {
			return serrors.With(serrors.ErrNotFound, "profile not found")
		}
		profile = updated

		if _, err := tx.AddJob(ctx, matcher.SyncArgs{UserID: uuid.UUID(user.ID)}, nil); err != nil {
			return fmt.Errorf("could not add sync job: %w", err)
		}

		return nil
	}); err != nil {
		return nil, err
	}

	return profile, nil
}

// PublicByUsername returns a profile as visitors see it: sections whose
// visibility flag is off are blanked, and hidden children are dropped.
func (s service) PublicByUsername(ctx context.Context, username string) (*domain.Profile, error) {
	user, err := s.storage.UserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("could not get user: %w", err)
	}
	if user == nil {
		return nil, serrors.With(serrors.ErrNotFound, "profile not found")
	}

	profile, err := s.storage.ProfileByUserID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("could not get profile: %w", err)
	}
	if profile == nil {
		return nil, serrors.With(serrors.ErrNotFound, "profile not found")
	}

	redact(profile)

	return profile, nil
}

// redact blanks hidden sections and drops hidden children in place.
func redact(profile *domain.Profile) {
	if !profile.ShowHeadline {
		profile.Headline = ""
	}
	if !profile.ShowSummary {
		profile.Summary = ""
	}
	if !profile.ShowLocation {
		profile.Location = ""
	}
	if !profile.ShowSkills {
		profile.Skills = nil
	}

	educations := profile.Educations[:0]
	for _, e := range profile.Educations {
		if e.Show {
			educations = append(educations, e)
		}
	}
	profile.Educations = educations

	experiences := profile.Experiences[:0]
	for _, e := range profile.Experiences {
		if e.Show {
			experiences = append(experiences, e)
		}
	}
	profile.Experiences = experiences

	links := profile.Links[:0]
	for _, l := range profile.Links {
		if l.Show {
			links = append(links, l)
		}
	}
	profile.Links = links

	if profile.User != nil {
		profile.User.Email = ""
	}
}

// New creates a new Profiles instance backed by the provided storage.
func New(storage storage.Storage) Profiles {
	return &service{storage: storage}
}
