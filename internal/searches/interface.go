package searches

import (
	"context"

	"jobboard/pkg/domain"
)

// CandidateParams carries the recruiter candidate search criteria.
type CandidateParams struct {
	// Query is a free-text filter over name, username, headline and summary.
	Query string
	// Skills must ALL be present on matching profiles.
	Skills []string
	// Location is a substring filter on the profile location.
	Location string
	// SavedSearchID, when set, stamps that search's last_run.
	SavedSearchID *domain.SearchID
}

// SaveParams carries the fields of a new saved search.
type SaveParams struct {
	Name string
	// Skills is the raw criteria text: a CSV of required skills, or a
	// free-text query behind the "Name:" sentinel.
	Skills             string
	Location           string
	NotifyOnNewMatches bool
}

//go:generate mockgen -package mocksearches -source=interface.go -destination=mock/mocksearches.go *
type Searches interface {
	// SearchCandidates returns a page of matching job-seeker profiles,
	// recently updated first. Recruiter only.
	SearchCandidates(ctx context.Context,
		user *domain.User,
		params CandidateParams,
		cursor string,
		limit uint) ([]domain.Profile, string, error)

	// Save stores the recruiter's current criteria as a saved search.
	Save(ctx context.Context, user *domain.User, params SaveParams) (*domain.SavedSearch, error)
	// List returns the recruiter's saved searches with notification counts.
	List(ctx context.Context, user *domain.User) ([]domain.SavedSearch, error)
	// Delete removes a saved search and its notifications.
	Delete(ctx context.Context, user *domain.User, id domain.SearchID) error
	// ToggleNotify flips the notify-on-new-matches flag.
	ToggleNotify(ctx context.Context, user *domain.User, id domain.SearchID) (*domain.SavedSearch, error)

	// Notifications returns the recruiter's buckets, unread first then newest,
	// plus the unread count.
	Notifications(ctx context.Context, user *domain.User) ([]domain.SearchNotification, int64, error)
	// OpenNotification marks a bucket read and returns it with its candidate
	// set and the owning search attached.
	OpenNotification(ctx context.Context,
		user *domain.User,
		id domain.NotificationID) (*domain.SearchNotification, error)
	// MarkRead marks one bucket read.
	MarkRead(ctx context.Context, user *domain.User, id domain.NotificationID) error
	// MarkAllRead marks every unread bucket read and returns how many changed.
	MarkAllRead(ctx context.Context, user *domain.User) (int64, error)
}
