// Package searches implements recruiter candidate search, saved searches and
// the notification inbox built on top of the matcher's buckets.
package searches

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"jobboard/pkg/domain"
	"jobboard/pkg/serrors"
	"jobboard/pkg/storage"
)

// service is the concrete implementation of the Searches interface.
type service struct {
	storage storage.Storage
}

// recruiterGate mirrors the recruiter-only pages of the web UI: anyone else
// sees not-found rather than forbidden.
func recruiterGate(user *domain.User) error {
	if !user.IsRecruiter() {
		return serrors.With(serrors.ErrNotFound, "page not found")
	}

	return nil
}

// SearchCandidates returns a page of matching profiles, most recently updated
// first. When the criteria came from a saved search, its last_run is stamped.
func (s service) SearchCandidates(ctx context.Context,
	user *domain.User,
	params CandidateParams,
	cursor string,
	limit uint) ([]domain.Profile, string, error) {
	if err := recruiterGate(user); err != nil {
		return nil, "", err
	}

	var cursorTime time.Time
	if cursor != "" {
		t, err := time.Parse(time.RFC3339, cursor)
		if err != nil {
			return nil, "", serrors.Wrap(serrors.ErrBadRequest, err, "invalid cursor")
		}
		cursorTime = t
	}

	page, err := s.storage.SearchCandidates(ctx, storage.CandidateFilters{
		Query:    params.Query,
		Skills:   params.Skills,
		Location: params.Location,
	}, cursorTime, limit)
	if err != nil {
		return nil, "", fmt.Errorf("could not search candidates: %w", err)
	}

	if params.SavedSearchID != nil {
		if err := s.storage.TouchSearchLastRun(ctx, user.ID, *params.SavedSearchID); err != nil {
			return nil, "", fmt.Errorf("could not touch last_run: %w", err)
		}
	}

	var next string
	if page.NextCursor != nil {
		next = page.NextCursor.Format(time.RFC3339)
	}

	return page.Profiles, next, nil
}

// Save stores the recruiter's current criteria as a saved search.
func (s service) Save(ctx context.Context,
	user *domain.User,
	params SaveParams) (*domain.SavedSearch, error) {
	if err := recruiterGate(user); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, serrors.With(serrors.ErrBadRequest, "name is required")
	}

	search, err := s.storage.StoreSavedSearch(ctx, domain.SavedSearch{
		RecruiterID:        user.ID,
		Name:               name,
		Skills:             strings.TrimSpace(params.Skills),
		Location:           strings.TrimSpace(params.Location),
		NotifyOnNewMatches: params.NotifyOnNewMatches,
	})
	if err != nil {
		return nil, fmt.Errorf("could not store saved search: %w", err)
	}

	return search, nil
}

// List returns the recruiter's saved searches with notification counts.
func (s service) List(ctx context.Context, user *domain.User) ([]domain.SavedSearch, error) {
	if err := recruiterGate(user); err != nil {
		return nil, err
	}

	searches, err := s.storage.SavedSearchesByRecruiter(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("could not get saved searches: %w", err)
	}

	return searches, nil
}

// Delete removes a saved search and its notification buckets.
func (s service) Delete(ctx context.Context, user *domain.User, id domain.SearchID) error {
	if err := recruiterGate(user); err != nil {
		return err
	}

	deleted, err := s.storage.DeleteSavedSearch(ctx, user.ID, id)
	if err != nil {
		return fmt.Errorf("could not delete saved search: %w", err)
	}
	if !deleted {
		return serrors.With(serrors.ErrNotFound, "saved search not found")
	}

	return nil
}

// ToggleNotify flips the notify-on-new-matches flag.
func (s service) ToggleNotify(ctx context.Context,
	user *domain.User,
	id domain.SearchID) (*domain.SavedSearch, error) {
	if err := recruiterGate(user); err != nil {
		return nil, err
	}

	search, err := s.storage.SavedSearchByID(ctx, user.ID, id)
	if err != nil {
		return nil, fmt.Errorf("could not get saved search: %w", err)
	}
	if search == nil {
		return nil, serrors.With(serrors.ErrNotFound, "saved search not found")
	}

	updated, err := s.storage.SetSearchNotify(ctx, user.ID, id, !search.NotifyOnNewMatches)
	if err != nil {
		return nil, fmt.Errorf("could not update saved search: %w", err)
	}
	if updated == nil {
		return nil, serrors.With(serrors.ErrNotFound, "saved search not found")
	}

	return updated, nil
}

// Notifications returns the recruiter's buckets ordered unread first, then
// newest, plus the unread count.
func (s service) Notifications(ctx context.Context,
	user *domain.User) ([]domain.SearchNotification, int64, error) {
	if err := recruiterGate(user); err != nil {
		return nil, 0, err
	}

	notifications, err := s.storage.NotificationsByRecruiter(ctx, user.ID)
	if err != nil {
		return nil, 0, fmt.Errorf("could not get notifications: %w", err)
	}

	sort.SliceStable(notifications, func(i, j int) bool {
		if notifications[i].IsRead != notifications[j].IsRead {
			return !notifications[i].IsRead
		}

		return notifications[i].SentAt.After(notifications[j].SentAt)
	})

	unread, err := s.storage.UnreadNotificationCount(ctx, user.ID)
	if err != nil {
		return nil, 0, fmt.Errorf("could not count unread notifications: %w", err)
	}

	return notifications, unread, nil
}

// OpenNotification marks a bucket read and returns it fully loaded, so the
// client can re-run the owning search's criteria.
func (s service) OpenNotification(ctx context.Context,
	user *domain.User,
	id domain.NotificationID) (*domain.SearchNotification, error) {
	if err := recruiterGate(user); err != nil {
		return nil, err
	}

	notification, err := s.storage.NotificationByID(ctx, user.ID, id)
	if err != nil {
		return nil, fmt.Errorf("could not get notification: %w", err)
	}
	if notification == nil {
		return nil, serrors.With(serrors.ErrNotFound, "notification not found")
	}

	if !notification.IsRead {
		marked, err := s.storage.MarkNotificationRead(ctx, user.ID, id)
		if err != nil {
			return nil, fmt.Errorf("could not mark notification read: %w", err)
		}
		if marked != nil {
			notification.IsRead = marked.IsRead
			notification.ReadAt = marked.ReadAt
		}
	}

	return notification, nil
}

// MarkRead marks one bucket read.
func (s service) MarkRead(ctx context.Context, user *domain.User, id domain.NotificationID) error {
	if err := recruiterGate(user); err != nil {
		return err
	}

	marked, err := s.storage.MarkNotificationRead(ctx, user.ID, id)
	if err != nil {
		return fmt.Errorf("could not mark notification read: %w", err)
	}
	if marked == nil {
		return serrors.With(serrors.ErrNotFound, "notification not found")
	}

	return nil
}

// MarkAllRead marks every unread bucket read.
func (s service) MarkAllRead(ctx context.Context, user *domain.User) (int64, error) {
	if err := recruiterGate(user); err != nil {
		return 0, err
	}

	changed, err := s.storage.MarkAllNotificationsRead(ctx, user.ID)
	if err != nil {
		return 0, fmt.Errorf("could not mark notifications read: %w", err)
	}

	return changed, nil
}

// New creates a new Searches instance backed by the provided storage.
func New(storage storage.Storage) Searches {
	return &service{storage: storage}
}
