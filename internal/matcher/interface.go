package matcher

import (
	"context"

	"jobboard/pkg/domain"
)

//go:generate mockgen -package mockmatcher -source=interface.go -destination=mock/mockmatcher.go *
type Matcher interface {
	// SyncProfile reconciles notification buckets for one job seeker after
	// their profile changed. It returns the number of buckets created or
	// updated.
	SyncProfile(ctx context.Context, userID domain.UserID) (int, error)
	// Sweep re-checks recently updated profiles against all notify-enabled
	// saved searches and returns the number of buckets created or updated.
	Sweep(ctx context.Context) (int, error)
}
