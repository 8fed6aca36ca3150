package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

const (
	skillsTable = "skills"
)

// ensureSkillIDs resolves skill names to their IDs, creating missing Skill
// rows. Names are deduplicated and compared case-insensitively; the first
// spelling seen wins for newly created rows.
func (p *PgSQL) ensureSkillIDs(ctx context.Context, names []string) ([]uuid.UUID, error) {
	seen := make(map[string]struct{}, len(names))
	ids := make([]uuid.UUID, 0, len(names))

	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		key := strings.ToLower(name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		id, err := p.ensureSkillID(ctx, name)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, nil
}

func (p *PgSQL) ensureSkillID(ctx context.Context, name string) (uuid.UUID, error) {
	var id uuid.UUID
	found, err := p.Builder.From(skillsTable).
		Select("id").
		Where(goqu.Func("LOWER", goqu.I("name")).Eq(strings.ToLower(name))).
		Executor().ScanValContext(ctx, &id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("could not fetch skill by name: %w", err)
	}
	if found {
		return id, nil
	}

	inserted, err := p.Builder.Insert(skillsTable).
		Rows(goqu.Record{"name": name}).
		OnConflict(goqu.DoNothing()).
		Returning("id").
		Executor().ScanValContext(ctx, &id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("could not store skill into pg: %w", err)
	}
	if inserted {
		return id, nil
	}

	// lost the race against a concurrent insert, the row exists now
	if _, err := p.Builder.From(skillsTable).
		Select("id").
		Where(goqu.Func("LOWER", goqu.I("name")).Eq(strings.ToLower(name))).
		Executor().ScanValContext(ctx, &id); err != nil {
		return uuid.Nil, fmt.Errorf("could not fetch skill by name: %w", err)
	}

	return id, nil
}

// skillNameRow carries one (owner, skill name) pair from a join-table query.
type skillNameRow struct {
	OwnerID uuid.UUID `db:"owner_id"`
	Name    string    `db:"name"`
}

// skillNamesByOwner returns the skill names attached to each owner row via the
// given join table, keyed by the owner ID column.
func (p *PgSQL) skillNamesByOwner(ctx context.Context,
	joinTable, ownerColumn string,
	ownerIDs []uuid.UUID) (map[uuid.UUID][]string, error) {
	if len(ownerIDs) == 0 {
		return map[uuid.UUID][]string{}, nil
	}

	var rows []skillNameRow
	if err := p.Builder.From(goqu.T(joinTable).As("j")).
		Join(goqu.T(skillsTable).As("s"), goqu.On(goqu.I("s.id").Eq(goqu.I("j.skill_id")))).
		Select(goqu.I("j."+ownerColumn).As("owner_id"), goqu.I("s.name")).
		Where(goqu.I("j." + ownerColumn).In(ownerIDs)).
		Order(goqu.I("s.name").Asc()).
		Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, fmt.Errorf("could not fetch skill names from %s: %w", joinTable, err)
	}

	out := make(map[uuid.UUID][]string, len(ownerIDs))
	for _, r := range rows {
		out[r.OwnerID] = append(out[r.OwnerID], r.Name)
	}

	return out, nil
}

// replaceSkillRelations overwrites the skill rows an owner points at in the
// given join table.
func (p *PgSQL) replaceSkillRelations(ctx context.Context,
	joinTable, ownerColumn string,
	ownerID uuid.UUID,
	names []string) error {
	skillIDs, err := p.ensureSkillIDs(ctx, names)
	if err != nil {
		return err
	}

	if _, err := p.Builder.Delete(joinTable).
		Where(goqu.I(ownerColumn).Eq(ownerID)).
		Executor().ExecContext(ctx); err != nil {
		return fmt.Errorf("could not clear %s: %w", joinTable, err)
	}

	if len(skillIDs) == 0 {
		return nil
	}

	rows := make([]goqu.Record, 0, len(skillIDs))
	for _, skillID := range skillIDs {
		rows = append(rows, goqu.Record{ownerColumn: ownerID, "skill_id": skillID})
	}

	if _, err := p.Builder.Insert(joinTable).
		Rows(rows).
		Executor().ExecContext(ctx); err != nil {
		return fmt.Errorf("could not store %s rows: %w", joinTable, err)
	}

	return nil
}
