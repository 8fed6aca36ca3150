// Package matcher reconciles saved candidate searches with job-seeker
// profiles and maintains the aggregated notification buckets recruiters see.
package matcher

import (
	"context"
	"fmt"
	"time"

	"jobboard/internal/config"
	"jobboard/pkg/domain"
	"jobboard/pkg/logger"
	"jobboard/pkg/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Options configure the periodic sweep.
type Options struct {
	// SweepLookback is how far back the sweep considers profile updates.
	SweepLookback time.Duration
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		SweepLookback: cfg.Matcher.SweepLookback,
	}
}

// matcher is the concrete implementation of the Matcher interface.
type matcher struct {
	options Options
	storage storage.Storage
}

// SyncProfile reconciles notification buckets for one job seeker.
//
// Invariant maintained here: at most ONE notification bucket exists per saved
// search. All matching candidates aggregate into that bucket, stray duplicate
// rows are merged into it, and new matches re-open a previously read bucket.
func (m matcher) SyncProfile(ctx context.Context, userID domain.UserID) (int, error) {
	profile, err := m.storage.ProfileByUserID(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("could not get profile: %w", err)
	}
	if profile == nil {
		return 0, nil
	}

	return m.syncProfile(ctx, profile)
}

func (m *matcher) syncProfile(ctx context.Context, profile *domain.Profile) (int, error) {
	searches, err := m.storage.NotifyEnabledSearches(ctx)
	if err != nil {
		return 0, fmt.Errorf("could not get notify-enabled searches: %w", err)
	}

	matched := make([]domain.SavedSearch, 0, len(searches))
	matchedIDs := make(map[domain.SearchID]struct{}, len(searches))
	for i := range searches {
		if MatchesSearch(profile, &searches[i]) {
			matched = append(matched, searches[i])
			matchedIDs[searches[i].ID] = struct{}{}
		}
	}

	if err := m.removeStaleMemberships(ctx, profile.UserID, matchedIDs); err != nil {
		return 0, err
	}

	updated := 0
	for i := range matched {
		if err := m.upsertBucket(ctx, profile.UserID, matched[i].ID); err != nil {
			return updated, err
		}
		updated++
	}

	return updated, nil
}

// removeStaleMemberships takes the candidate out of buckets belonging to
// searches they no longer match, deleting buckets that end up empty.
func (m *matcher) removeStaleMemberships(ctx context.Context,
	userID domain.UserID,
	stillMatching map[domain.SearchID]struct{}) error {
	buckets, err := m.storage.BucketsContainingUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("could not get buckets containing user: %w", err)
	}

	for i := range buckets {
		if _, ok := stillMatching[buckets[i].SearchID]; ok {
			continue
		}

		remaining, err := m.storage.RemoveBucketCandidate(ctx, buckets[i].ID, userID)
		if err != nil {
			return fmt.Errorf("could not remove stale bucket candidate: %w", err)
		}
		if remaining == 0 {
			if err := m.storage.DeleteBucket(ctx, buckets[i].ID); err != nil {
				return fmt.Errorf("could not delete empty bucket: %w", err)
			}
		}
	}

	return nil
}

// upsertBucket aggregates the candidate into the single bucket of a saved
// search, merging stray duplicates and re-opening the bucket. The whole
// operation runs inside one transaction with the newest bucket row locked.
func (m *matcher) upsertBucket(ctx context.Context,
	userID domain.UserID,
	searchID domain.SearchID) error {
	if err := m.storage.WithTx(ctx, func(tx storage.AllStorage) error {
		bucket, err := tx.NewestBucketForUpdate(ctx, searchID)
		if err != nil {
			return fmt.Errorf("could not lock bucket: %w", err)
		}
		if bucket == nil {
			if bucket, err = tx.CreateBucket(ctx, searchID); err != nil {
				return fmt.Errorf("could not create bucket: %w", err)
			}
		}

		// merge any duplicate rows for this search into the bucket
		dupes, err := tx.DuplicateBuckets(ctx, searchID, bucket.ID)
		if err != nil {
			return fmt.Errorf("could not get duplicate buckets: %w", err)
		}
		for i := range dupes {
			candidates, err := tx.BucketCandidates(ctx, dupes[i].ID)
			if err != nil {
				return fmt.Errorf("could not get duplicate bucket candidates: %w", err)
			}
			for _, candidateID := range candidates {
				if _, err := tx.AddBucketCandidate(ctx, bucket.ID, candidateID); err != nil {
					return fmt.Errorf("could not merge bucket candidate: %w", err)
				}
			}
			if err := tx.DeleteBucket(ctx, dupes[i].ID); err != nil {
				return fmt.Errorf("could not delete duplicate bucket: %w", err)
			}
		}

		if _, err := tx.AddBucketCandidate(ctx, bucket.ID, userID); err != nil {
			return fmt.Errorf("could not add bucket candidate: %w", err)
		}

		// fix the counter, bump sent_at and re-open if previously read
		if _, err := tx.RefreshBucket(ctx, bucket.ID); err != nil {
			return fmt.Errorf("could not refresh bucket: %w", err)
		}

		if err := tx.TouchSearchLastNotified(ctx, searchID); err != nil {
			return fmt.Errorf("could not touch last_notified: %w", err)
		}

		return nil
	}); err != nil {
		return fmt.Errorf("could not upsert bucket: %w", err)
	}

	return nil
}

// Sweep re-checks profiles updated within the lookback window. It backstops
// the per-update sync so matches are not lost when the queue falls behind.
func (m matcher) Sweep(ctx context.Context) (int, error) {
	since := time.Now().Add(-m.options.SweepLookback)
	profiles, err := m.storage.ProfilesUpdatedSince(ctx, since)
	if err != nil {
		return 0, fmt.Errorf("could not get updated profiles: %w", err)
	}

	total := 0
	for i := range profiles {
		updated, err := m.syncProfile(ctx, &profiles[i])
		if err != nil {
			logger.Error(ctx, "error syncing profile during sweep",
				zap.String("userID", uuid.UUID(profiles[i].UserID).String()),
				zap.Error(err))

			continue
		}
		total += updated
	}

	return total, nil
}

// New creates a new Matcher instance backed by the provided storage.
func New(storage storage.Storage, options Options) Matcher {
	return &matcher{
		options: options,
		storage: storage,
	}
}
