package postgres

import (
	"context"
	"fmt"

	"jobboard/pkg/domain"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"
)

const (
	notificationsTable          = "search_notifications"
	notificationCandidatesTable = "notification_candidates"
)

// recruiterSearchIDs is a subquery selecting the IDs of a recruiter's saved
// searches, used to scope notification reads.
func recruiterSearchIDs(recruiterID domain.UserID) *goqu.SelectDataset {
	return goqu.From(savedSearchesTable).
		Select("id").
		Where(goqu.I("recruiter_id").Eq(uuid.UUID(recruiterID)))
}

// NotificationsByRecruiter returns all buckets belonging to the recruiter's
// saved searches, newest first, with Search attached.
func (p *PgSQL) NotificationsByRecruiter(ctx context.Context,
	recruiterID domain.UserID) ([]domain.SearchNotification, error) {
	searches, err := p.SavedSearchesByRecruiter(ctx, recruiterID)
	if err != nil {
		return nil, err
	}
	searchByID := make(map[domain.SearchID]*domain.SavedSearch, len(searches))
	for i := range searches {
		searchByID[searches[i].ID] = &searches[i]
	}

	var rows []PgNotification
	if err := p.Builder.From(notificationsTable).
		Where(goqu.I("search_id").In(recruiterSearchIDs(recruiterID))).
		Order(goqu.I("sent_at").Desc(), goqu.I("id").Desc()).
		Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, fmt.Errorf("could not fetch notifications from pg: %w", err)
	}

	notifications := make([]domain.SearchNotification, 0, len(rows))
	for _, r := range rows {
		n := r.ToDomain()
		n.Search = searchByID[n.SearchID]
		notifications = append(notifications, *n)
	}

	return notifications, nil
}

// NotificationByID returns a recruiter's bucket with its candidate set and
// Search attached, or nil when it does not exist.
func (p *PgSQL) NotificationByID(ctx context.Context,
	recruiterID domain.UserID,
	id domain.NotificationID) (*domain.SearchNotification, error) {
	var row PgNotification
	found, err := p.Builder.From(notificationsTable).
		Where(
			goqu.I("id").Eq(uuid.UUID(id)),
			goqu.I("search_id").In(recruiterSearchIDs(recruiterID)),
		).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch notification by id: %w", err)
	}
	if !found {
		return nil, nil
	}

	notification := row.ToDomain()
	if notification.CandidateIDs, err = p.BucketCandidates(ctx, notification.ID); err != nil {
		return nil, err
	}
	if notification.Search, err = p.SavedSearchByID(ctx, recruiterID, notification.SearchID); err != nil {
		return nil, err
	}

	return notification, nil
}

// UnreadNotificationCount returns the number of unread buckets for the
// recruiter.
func (p *PgSQL) UnreadNotificationCount(ctx context.Context,
	recruiterID domain.UserID) (int64, error) {
	count, err := p.Builder.From(notificationsTable).
		Where(
			goqu.I("is_read").IsFalse(),
			goqu.I("search_id").In(recruiterSearchIDs(recruiterID)),
		).
		CountContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("could not count unread notifications: %w", err)
	}

	return count, nil
}

// MarkNotificationRead marks one bucket read, or returns nil when the bucket
// does not exist for the recruiter.
func (p *PgSQL) MarkNotificationRead(ctx context.Context,
	recruiterID domain.UserID,
	id domain.NotificationID) (*domain.SearchNotification, error) {
	var row PgNotification
	found, err := p.Builder.Update(notificationsTable).
		Set(goqu.Record{
			"is_read": true,
			"read_at": goqu.L("CURRENT_TIMESTAMP"),
		}).
		Where(
			goqu.I("id").Eq(uuid.UUID(id)),
			goqu.I("search_id").In(recruiterSearchIDs(recruiterID)),
		).
		Returning(&PgNotification{}).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not mark notification read in pg: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain(), nil
}

// MarkAllNotificationsRead marks every unread bucket of the recruiter read.
func (p *PgSQL) MarkAllNotificationsRead(ctx context.Context,
	recruiterID domain.UserID) (int64, error) {
	result, err := p.Builder.Update(notificationsTable).
		Set(goqu.Record{
			"is_read": true,
			"read_at": goqu.L("CURRENT_TIMESTAMP"),
		}).
		Where(
			goqu.I("is_read").IsFalse(),
			goqu.I("search_id").In(recruiterSearchIDs(recruiterID)),
		).
		Executor().ExecContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("could not mark notifications read in pg: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("could not read affected rows: %w", err)
	}

	return affected, nil
}

// BucketsContainingUser returns every bucket currently aggregating the given
// candidate.
func (p *PgSQL) BucketsContainingUser(ctx context.Context,
	userID domain.UserID) ([]domain.SearchNotification, error) {
	membership := goqu.From(notificationCandidatesTable).
		Select("notification_id").
		Where(goqu.I("user_id").Eq(uuid.UUID(userID)))

	var rows []PgNotification
	if err := p.Builder.From(notificationsTable).
		Where(goqu.I("id").In(membership)).
		Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, fmt.Errorf("could not fetch buckets containing user: %w", err)
	}

	notifications := make([]domain.SearchNotification, 0, len(rows))
	for _, r := range rows {
		notifications = append(notifications, *r.ToDomain())
	}

	return notifications, nil
}

// NewestBucketForUpdate locks and returns the newest bucket of a saved
// search, or nil when none exists. Must run inside a transaction.
func (p *PgSQL) NewestBucketForUpdate(ctx context.Context,
	searchID domain.SearchID) (*domain.SearchNotification, error) {
	var row PgNotification
	found, err := p.Builder.From(notificationsTable).
		Where(goqu.I("search_id").Eq(uuid.UUID(searchID))).
		Order(goqu.I("sent_at").Desc(), goqu.I("id").Desc()).
		Limit(1).
		ForUpdate(exp.Wait).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not lock newest bucket: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain(), nil
}

// CreateBucket inserts an empty bucket for a saved search.
func (p *PgSQL) CreateBucket(ctx context.Context,
	searchID domain.SearchID) (*domain.SearchNotification, error) {
	var row PgNotification
	if _, err := p.Builder.Insert(notificationsTable).
		Rows(goqu.Record{"search_id": uuid.UUID(searchID)}).
		Returning(&PgNotification{}).
		Executor().ScanStructContext(ctx, &row); err != nil {
		return nil, fmt.Errorf("could not store bucket into pg: %w", err)
	}

	return row.ToDomain(), nil
}

// DuplicateBuckets returns all buckets of a saved search except the kept one.
func (p *PgSQL) DuplicateBuckets(ctx context.Context,
	searchID domain.SearchID,
	keep domain.NotificationID) ([]domain.SearchNotification, error) {
	var rows []PgNotification
	if err := p.Builder.From(notificationsTable).
		Where(
			goqu.I("search_id").Eq(uuid.UUID(searchID)),
			goqu.I("id").Neq(uuid.UUID(keep)),
		).
		Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, fmt.Errorf("could not fetch duplicate buckets: %w", err)
	}

	notifications := make([]domain.SearchNotification, 0, len(rows))
	for _, r := range rows {
		notifications = append(notifications, *r.ToDomain())
	}

	return notifications, nil
}

// BucketCandidates returns the candidate user IDs aggregated in a bucket.
func (p *PgSQL) BucketCandidates(ctx context.Context,
	id domain.NotificationID) ([]domain.UserID, error) {
	var ids []uuid.UUID
	if err := p.Builder.From(notificationCandidatesTable).
		Select("user_id").
		Where(goqu.I("notification_id").Eq(uuid.UUID(id))).
		Executor().ScanValsContext(ctx, &ids); err != nil {
		return nil, fmt.Errorf("could not fetch bucket candidates: %w", err)
	}

	candidates := make([]domain.UserID, 0, len(ids))
	for _, candidateID := range ids {
		candidates = append(candidates, domain.UserID(candidateID))
	}

	return candidates, nil
}

// AddBucketCandidate adds a candidate to a bucket, reporting whether the
// membership was newly created.
func (p *PgSQL) AddBucketCandidate(ctx context.Context,
	id domain.NotificationID,
	userID domain.UserID) (bool, error) {
	result, err := p.Builder.Insert(notificationCandidatesTable).
		Rows(goqu.Record{
			"notification_id": uuid.UUID(id),
			"user_id":         uuid.UUID(userID),
		}).
		OnConflict(goqu.DoNothing()).
		Executor().ExecContext(ctx)
	if err != nil {
		return false, fmt.Errorf("could not store bucket candidate into pg: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("could not read affected rows: %w", err)
	}

	return affected > 0, nil
}

// RemoveBucketCandidate removes a candidate from a bucket, fixes the stored
// count and returns the number of candidates remaining.
func (p *PgSQL) RemoveBucketCandidate(ctx context.Context,
	id domain.NotificationID,
	userID domain.UserID) (int64, error) {
	if _, err := p.Builder.Delete(notificationCandidatesTable).
		Where(
			goqu.I("notification_id").Eq(uuid.UUID(id)),
			goqu.I("user_id").Eq(uuid.UUID(userID)),
		).
		Executor().ExecContext(ctx); err != nil {
		return 0, fmt.Errorf("could not delete bucket candidate in pg: %w", err)
	}

	var remaining int64
	if _, err := p.Builder.Update(notificationsTable).
		Set(goqu.Record{"candidates_count": bucketCountSub(id)}).
		Where(goqu.I("id").Eq(uuid.UUID(id))).
		Returning("candidates_count").
		Executor().ScanValContext(ctx, &remaining); err != nil {
		return 0, fmt.Errorf("could not fix bucket count in pg: %w", err)
	}

	return remaining, nil
}

// DeleteBucket removes a bucket; its memberships cascade.
func (p *PgSQL) DeleteBucket(ctx context.Context, id domain.NotificationID) error {
	if _, err := p.Builder.Delete(notificationsTable).
		Where(goqu.I("id").Eq(uuid.UUID(id))).
		Executor().ExecContext(ctx); err != nil {
		return fmt.Errorf("could not delete bucket in pg: %w", err)
	}

	return nil
}

// RefreshBucket recounts candidates, bumps sent_at so the bucket floats to
// the top of the list, and re-opens it if it was previously read.
func (p *PgSQL) RefreshBucket(ctx context.Context,
	id domain.NotificationID) (*domain.SearchNotification, error) {
	var row PgNotification
	found, err := p.Builder.Update(notificationsTable).
		Set(goqu.Record{
			"candidates_count": bucketCountSub(id),
			"sent_at":          goqu.L("CURRENT_TIMESTAMP"),
			"is_read":          false,
			"read_at":          goqu.L("NULL"),
		}).
		Where(goqu.I("id").Eq(uuid.UUID(id))).
		Returning(&PgNotification{}).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not refresh bucket in pg: %w", err)
	}
	if !found {
		return nil, nil
	}

	notification := row.ToDomain()
	if notification.CandidateIDs, err = p.BucketCandidates(ctx, notification.ID); err != nil {
		return nil, err
	}

	return notification, nil
}

func bucketCountSub(id domain.NotificationID) goqu.Expression {
	return goqu.L(
		"(SELECT COUNT(*) FROM notification_candidates nc WHERE nc.notification_id = ?)",
		uuid.UUID(id))
}
