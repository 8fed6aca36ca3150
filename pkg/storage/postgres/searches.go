package postgres

import (
	"context"
	"fmt"

	"jobboard/pkg/domain"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

const (
	savedSearchesTable = "saved_searches"
)

// StoreSavedSearch inserts a saved candidate search.
func (p *PgSQL) StoreSavedSearch(ctx context.Context,
	search domain.SavedSearch) (*domain.SavedSearch, error) {
	var pgSearch PgSavedSearch
	pgSearch.FromDomain(search)

	var row PgSavedSearch
	if _, err := p.Builder.Insert(savedSearchesTable).
		Rows(pgSearch).
		Returning(&PgSavedSearch{}).
		Executor().ScanStructContext(ctx, &row); err != nil {
		return nil, fmt.Errorf("could not store saved search into pg: %w", err)
	}

	return row.ToDomain(), nil
}

// SavedSearchByID returns a recruiter's saved search, or nil when it does not
// exist or belongs to someone else.
func (p *PgSQL) SavedSearchByID(ctx context.Context,
	recruiterID domain.UserID,
	id domain.SearchID) (*domain.SavedSearch, error) {
	var row PgSavedSearch
	found, err := p.Builder.From(savedSearchesTable).
		Where(
			goqu.I("id").Eq(uuid.UUID(id)),
			goqu.I("recruiter_id").Eq(uuid.UUID(recruiterID)),
		).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch saved search by id: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain(), nil
}

// pgSavedSearchWithCount carries a saved search row annotated with its
// notification count.
type pgSavedSearchWithCount struct {
	PgSavedSearch
	NotificationCount int `db:"notification_count"`
}

// SavedSearchesByRecruiter returns the recruiter's saved searches, newest
// first, each annotated with its notification count.
func (p *PgSQL) SavedSearchesByRecruiter(ctx context.Context,
	recruiterID domain.UserID) ([]domain.SavedSearch, error) {
	countSub := goqu.L(
		"(SELECT COUNT(*) FROM search_notifications sn WHERE sn.search_id = saved_searches.id)")

	var rows []pgSavedSearchWithCount
	if err := p.Builder.From(savedSearchesTable).
		Select(goqu.I("saved_searches.*"), countSub.As("notification_count")).
		Where(goqu.I("recruiter_id").Eq(uuid.UUID(recruiterID))).
		Order(goqu.I("created_at").Desc()).
		Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, fmt.Errorf("could not fetch saved searches from pg: %w", err)
	}

	searches := make([]domain.SavedSearch, 0, len(rows))
	for _, r := range rows {
		search := r.ToDomain()
		search.NotificationCount = r.NotificationCount
		searches = append(searches, *search)
	}

	return searches, nil
}

// DeleteSavedSearch removes a recruiter's saved search. Its notification
// buckets cascade.
func (p *PgSQL) DeleteSavedSearch(ctx context.Context,
	recruiterID domain.UserID,
	id domain.SearchID) (bool, error) {
	result, err := p.Builder.Delete(savedSearchesTable).
		Where(
			goqu.I("id").Eq(uuid.UUID(id)),
			goqu.I("recruiter_id").Eq(uuid.UUID(recruiterID)),
		).
		Executor().ExecContext(ctx)
	if err != nil {
		return false, fmt.Errorf("could not delete saved search in pg: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("could not read affected rows: %w", err)
	}

	return affected > 0, nil
}

// SetSearchNotify enables or disables match notifications for a saved search.
func (p *PgSQL) SetSearchNotify(ctx context.Context,
	recruiterID domain.UserID,
	id domain.SearchID,
	notify bool) (*domain.SavedSearch, error) {
	var row PgSavedSearch
	found, err := p.Builder.Update(savedSearchesTable).
		Set(goqu.Record{"notify_on_new_matches": notify}).
		Where(
			goqu.I("id").Eq(uuid.UUID(id)),
			goqu.I("recruiter_id").Eq(uuid.UUID(recruiterID)),
		).
		Returning(&PgSavedSearch{}).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not update saved search notify flag in pg: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain(), nil
}

// TouchSearchLastRun stamps last_run for a recruiter's saved search.
func (p *PgSQL) TouchSearchLastRun(ctx context.Context,
	recruiterID domain.UserID,
	id domain.SearchID) error {
	if _, err := p.Builder.Update(savedSearchesTable).
		Set(goqu.Record{"last_run": goqu.L("CURRENT_TIMESTAMP")}).
		Where(
			goqu.I("id").Eq(uuid.UUID(id)),
			goqu.I("recruiter_id").Eq(uuid.UUID(recruiterID)),
		).
		Executor().ExecContext(ctx); err != nil {
		return fmt.Errorf("could not touch saved search last_run in pg: %w", err)
	}

	return nil
}

// TouchSearchLastNotified stamps last_notified for a saved search.
func (p *PgSQL) TouchSearchLastNotified(ctx context.Context, id domain.SearchID) error {
	if _, err := p.Builder.Update(savedSearchesTable).
		Set(goqu.Record{"last_notified": goqu.L("CURRENT_TIMESTAMP")}).
		Where(goqu.I("id").Eq(uuid.UUID(id))).
		Executor().ExecContext(ctx); err != nil {
		return fmt.Errorf("could not touch saved search last_notified in pg: %w", err)
	}

	return nil
}

// NotifyEnabledSearches returns every saved search with notifications enabled.
func (p *PgSQL) NotifyEnabledSearches(ctx context.Context) ([]domain.SavedSearch, error) {
	var rows []PgSavedSearch
	if err := p.Builder.From(savedSearchesTable).
		Where(goqu.I("notify_on_new_matches").IsTrue()).
		Order(goqu.I("created_at").Asc()).
		Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, fmt.Errorf("could not fetch notify-enabled searches from pg: %w", err)
	}

	searches := make([]domain.SavedSearch, 0, len(rows))
	for _, r := range rows {
		searches = append(searches, *r.ToDomain())
	}

	return searches, nil
}
