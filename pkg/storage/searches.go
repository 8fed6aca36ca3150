package storage

import (
	"context"

	"jobboard/pkg/domain"
)

// SearchStorage defines persistence operations for saved candidate searches.
// All recruiter-scoped methods treat rows owned by other recruiters as absent.
type SearchStorage interface {
	// StoreSavedSearch inserts a saved search and returns the stored row.
	StoreSavedSearch(ctx context.Context, search domain.SavedSearch) (*domain.SavedSearch, error)
	// SavedSearchByID fetches a recruiter's saved search. Returns nil when not found.
	SavedSearchByID(ctx context.Context,
		recruiterID domain.UserID,
		id domain.SearchID) (*domain.SavedSearch, error)
	// SavedSearchesByRecruiter returns the recruiter's saved searches, newest
	// first, each annotated with its notification count.
	SavedSearchesByRecruiter(ctx context.Context, recruiterID domain.UserID) ([]domain.SavedSearch, error)
	// DeleteSavedSearch removes a recruiter's saved search (its notifications
	// cascade). Reports whether a row was deleted.
	DeleteSavedSearch(ctx context.Context, recruiterID domain.UserID, id domain.SearchID) (bool, error)
	// SetSearchNotify enables or disables match notifications. Returns nil
	// when the search does not exist.
	SetSearchNotify(ctx context.Context,
		recruiterID domain.UserID,
		id domain.SearchID,
		notify bool) (*domain.SavedSearch, error)
	// TouchSearchLastRun stamps last_run for a recruiter's saved search.
	TouchSearchLastRun(ctx context.Context, recruiterID domain.UserID, id domain.SearchID) error
	// TouchSearchLastNotified stamps last_notified (called by the sweep).
	TouchSearchLastNotified(ctx context.Context, id domain.SearchID) error
	// NotifyEnabledSearches returns every saved search with notifications
	// enabled, across all recruiters.
	NotifyEnabledSearches(ctx context.Context) ([]domain.SavedSearch, error)
}

// NotificationStorage defines persistence operations for search notification
// buckets: the recruiter-facing reads plus the reconciliation primitives used
// by the matcher (the latter are expected to run inside a transaction).
type NotificationStorage interface {
	// NotificationsByRecruiter returns all buckets belonging to the
	// recruiter's saved searches, newest first, with Search attached.
	NotificationsByRecruiter(ctx context.Context, recruiterID domain.UserID) ([]domain.SearchNotification, error)
	// NotificationByID fetches a recruiter's bucket with its candidate set and
	// Search attached. Returns nil when not found.
	NotificationByID(ctx context.Context,
		recruiterID domain.UserID,
		id domain.NotificationID) (*domain.SearchNotification, error)
	// UnreadNotificationCount returns the number of unread buckets for the recruiter.
	UnreadNotificationCount(ctx context.Context, recruiterID domain.UserID) (int64, error)
	// MarkNotificationRead marks one bucket read. Returns nil when not found.
	MarkNotificationRead(ctx context.Context,
		recruiterID domain.UserID,
		id domain.NotificationID) (*domain.SearchNotification, error)
	// MarkAllNotificationsRead marks every unread bucket read and returns how
	// many rows changed.
	MarkAllNotificationsRead(ctx context.Context, recruiterID domain.UserID) (int64, error)

	// BucketsContainingUser returns every bucket that currently aggregates the
	// given candidate, used for stale-membership removal.
	BucketsContainingUser(ctx context.Context, userID domain.UserID) ([]domain.SearchNotification, error)
	// NewestBucketForUpdate locks (FOR UPDATE) and returns the newest bucket
	// of a saved search, or nil when none exists. Must run inside a transaction.
	NewestBucketForUpdate(ctx context.Context, searchID domain.SearchID) (*domain.SearchNotification, error)
	// CreateBucket inserts an empty bucket for a saved search.
	CreateBucket(ctx context.Context, searchID domain.SearchID) (*domain.SearchNotification, error)
	// DuplicateBuckets returns all buckets of a saved search except the kept one.
	DuplicateBuckets(ctx context.Context,
		searchID domain.SearchID,
		keep domain.NotificationID) ([]domain.SearchNotification, error)
	// BucketCandidates returns the candidate user IDs aggregated in a bucket.
	BucketCandidates(ctx context.Context, id domain.NotificationID) ([]domain.UserID, error)
	// AddBucketCandidate adds a candidate to a bucket, reporting whether the
	// membership was newly created.
	AddBucketCandidate(ctx context.Context, id domain.NotificationID, userID domain.UserID) (bool, error)
	// RemoveBucketCandidate removes a candidate from a bucket, fixes the
	// stored count and returns the number of candidates remaining.
	RemoveBucketCandidate(ctx context.Context, id domain.NotificationID, userID domain.UserID) (int64, error)
	// DeleteBucket removes a bucket and its memberships.
	DeleteBucket(ctx context.Context, id domain.NotificationID) error
	// RefreshBucket recounts candidates, bumps sent_at so the newest bucket
	// floats to the top, and re-opens the bucket if it was previously read.
	RefreshBucket(ctx context.Context, id domain.NotificationID) (*domain.SearchNotification, error)
}

// GeoStorage defines the geocode cache operations.
type GeoStorage interface {
	// CityCoord returns the cached coordinates for (city, state), compared
	// case-insensitively. Returns nil on a cache miss.
	CityCoord(ctx context.Context, city, state string) (*domain.CityCoord, error)
	// StoreCityCoord caches a geocoding result. Concurrent duplicate inserts
	// are ignored.
	StoreCityCoord(ctx context.Context, coord domain.CityCoord) error
}
