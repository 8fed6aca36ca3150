package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"jobboard/pkg/domain"
	"jobboard/pkg/storage"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

const (
	profilesTable      = "profiles"
	profileSkillsTable = "profile_skills"
	educationsTable    = "educations"
	experiencesTable   = "experiences"
	linksTable         = "links"
)

// EnsureProfile returns the profile owned by the user, creating an empty one
// when absent.
func (p *PgSQL) EnsureProfile(ctx context.Context, userID domain.UserID) (*domain.Profile, error) {
	profile, err := p.ProfileByUserID(ctx, userID)
	if err != nil || profile != nil {
		return profile, err
	}

	if _, err := p.Builder.Insert(profilesTable).
		Rows(goqu.Record{"user_id": uuid.UUID(userID)}).
		OnConflict(goqu.DoNothing()).
		Executor().ExecContext(ctx); err != nil {
		return nil, fmt.Errorf("could not store profile into pg: %w", err)
	}

	return p.ProfileByUserID(ctx, userID)
}

// ProfileByUserID returns a fully loaded profile, or nil when the user has
// none.
func (p *PgSQL) ProfileByUserID(ctx context.Context, userID domain.UserID) (*domain.Profile, error) {
	var row PgProfile
	found, err := p.Builder.From(profilesTable).
		Where(goqu.I("user_id").Eq(uuid.UUID(userID))).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch profile by user id: %w", err)
	}
	if !found {
		return nil, nil
	}

	return p.loadProfile(ctx, row)
}

// UpdateProfile replaces the profile fields, skills and child collections.
// Stored children not present in the input are deleted.
func (p *PgSQL) UpdateProfile(ctx context.Context, profile domain.Profile) (*domain.Profile, error) {
	var row PgProfile
	found, err := p.Builder.Update(profilesTable).
		Set(goqu.Record{
			"headline":      profile.Headline,
			"summary":       profile.Summary,
			"location":      profile.Location,
			"show_headline": profile.ShowHeadline,
			"show_location": profile.ShowLocation,
			"show_summary":  profile.ShowSummary,
			"show_skills":   profile.ShowSkills,
			"updated_at":    goqu.L("CURRENT_TIMESTAMP"),
		}).
		Where(goqu.I("id").Eq(uuid.UUID(profile.ID))).
		Returning(&PgProfile{}).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not update profile in pg: %w", err)
	}
	if !found {
		return nil, nil
	}

	if err := p.replaceSkillRelations(ctx, profileSkillsTable, "profile_id", row.ID, profile.Skills); err != nil {
		return nil, err
	}
	if err := p.replaceEducations(ctx, row.ID, profile.Educations); err != nil {
		return nil, err
	}
	if err := p.replaceExperiences(ctx, row.ID, profile.Experiences); err != nil {
		return nil, err
	}
	if err := p.replaceLinks(ctx, row.ID, profile.Links); err != nil {
		return nil, err
	}

	return p.loadProfile(ctx, row)
}

// SearchCandidates returns a page of profiles matching the filters, ordered by
// updated_at DESC, id DESC.
func (p *PgSQL) SearchCandidates(ctx context.Context,
	filters storage.CandidateFilters,
	cursor time.Time,
	limit uint) (storage.CandidatePage, error) {
	w := candidateFilterExpressions(filters)
	if !cursor.IsZero() {
		w = append(w, goqu.I("profiles.updated_at").Lt(cursor))
	}

	// fetch one extra to determine if there is a next page
	fetch := limit + 1
	ds := p.Builder.From(profilesTable).
		Join(goqu.T(usersTable), goqu.On(goqu.I("users.id").Eq(goqu.I("profiles.user_id")))).
		Select(goqu.I("profiles.*")).
		Where(w...).
		Order(goqu.I("profiles.updated_at").Desc(), goqu.I("profiles.id").Desc()).
		Limit(fetch)

	var rows []PgProfile
	if err := ds.Executor().ScanStructsContext(ctx, &rows); err != nil {
		return storage.CandidatePage{}, fmt.Errorf("could not search candidates in pg: %w", err)
	}

	var nextCursor *time.Time
	if uint(len(rows)) > limit {
		trimmed := rows[:limit]
		nextCursor = &trimmed[len(trimmed)-1].UpdatedAt
		rows = trimmed
	}

	profiles := make([]domain.Profile, 0, len(rows))
	for _, r := range rows {
		loaded, err := p.loadProfile(ctx, r)
		if err != nil {
			return storage.CandidatePage{}, err
		}
		profiles = append(profiles, *loaded)
	}

	return storage.CandidatePage{
		Profiles:   profiles,
		NextCursor: nextCursor,
	}, nil
}

// ProfilesUpdatedSince returns fully loaded profiles updated at or after the
// given time.
func (p *PgSQL) ProfilesUpdatedSince(ctx context.Context, since time.Time) ([]domain.Profile, error) {
	var rows []PgProfile
	if err := p.Builder.From(profilesTable).
		Where(goqu.I("updated_at").Gte(since)).
		Order(goqu.I("updated_at").Desc()).
		Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, fmt.Errorf("could not fetch updated profiles from pg: %w", err)
	}

	profiles := make([]domain.Profile, 0, len(rows))
	for _, r := range rows {
		loaded, err := p.loadProfile(ctx, r)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *loaded)
	}

	return profiles, nil
}

func candidateFilterExpressions(filters storage.CandidateFilters) []goqu.Expression {
	var w []goqu.Expression

	if q := strings.TrimSpace(filters.Query); q != "" {
		pattern := "%" + q + "%"
		w = append(w, goqu.Or(
			goqu.I("users.first_name").ILike(pattern),
			goqu.I("users.last_name").ILike(pattern),
			goqu.I("users.username").ILike(pattern),
			goqu.I("profiles.headline").ILike(pattern),
			goqu.I("profiles.summary").ILike(pattern),
		))
	}

	// every requested skill must be present on the profile
	for _, skill := range filters.Skills {
		if skill = strings.ToLower(strings.TrimSpace(skill)); skill != "" {
			w = append(w, skillExists(profileSkillsTable, "profile_id", profilesTable, []string{skill}))
		}
	}

	if loc := strings.TrimSpace(filters.Location); loc != "" {
		w = append(w, goqu.I("profiles.location").ILike("%"+loc+"%"))
	}

	if !filters.UpdatedSince.IsZero() {
		w = append(w, goqu.I("profiles.updated_at").Gte(filters.UpdatedSince))
	}

	return w
}

// loadProfile attaches the skills, child collections and owning user to a
// profile row.
func (p *PgSQL) loadProfile(ctx context.Context, row PgProfile) (*domain.Profile, error) {
	profile := row.ToDomain()

	skills, err := p.skillNamesByOwner(ctx, profileSkillsTable, "profile_id", []uuid.UUID{row.ID})
	if err != nil {
		return nil, err
	}
	profile.Skills = skills[row.ID]

	var educations []PgEducation
	if err := p.Builder.From(educationsTable).
		Where(goqu.I("profile_id").Eq(row.ID)).
		Order(goqu.I("start_date").Desc()).
		Executor().ScanStructsContext(ctx, &educations); err != nil {
		return nil, fmt.Errorf("could not fetch educations from pg: %w", err)
	}
	for _, e := range educations {
		profile.Educations = append(profile.Educations, e.ToDomain())
	}

	var experiences []PgExperience
	if err := p.Builder.From(experiencesTable).
		Where(goqu.I("profile_id").Eq(row.ID)).
		Order(goqu.I("start_date").Desc()).
		Executor().ScanStructsContext(ctx, &experiences); err != nil {
		return nil, fmt.Errorf("could not fetch experiences from pg: %w", err)
	}
	for _, e := range experiences {
		profile.Experiences = append(profile.Experiences, e.ToDomain())
	}

	var links []PgLink
	if err := p.Builder.From(linksTable).
		Where(goqu.I("profile_id").Eq(row.ID)).
		Order(goqu.I("label").Asc()).
		Executor().ScanStructsContext(ctx, &links); err != nil {
		return nil, fmt.Errorf("could not fetch links from pg: %w", err)
	}
	for _, l := range links {
		profile.Links = append(profile.Links, l.ToDomain())
	}

	user, err := p.UserByID(ctx, domain.UserID(row.UserID))
	if err != nil {
		return nil, err
	}
	profile.User = user

	return profile, nil
}

func (p *PgSQL) replaceEducations(ctx context.Context, profileID uuid.UUID, educations []domain.Education) error {
	if _, err := p.Builder.Delete(educationsTable).
		Where(goqu.I("profile_id").Eq(profileID)).
		Executor().ExecContext(ctx); err != nil {
		return fmt.Errorf("could not clear educations: %w", err)
	}

	if len(educations) == 0 {
		return nil
	}

	rows := make([]goqu.Record, 0, len(educations))
	for _, e := range educations {
		rows = append(rows, goqu.Record{
			"profile_id":     profileID,
			"school":         e.School,
			"degree":         e.Degree,
			"field_of_study": e.FieldOfStudy,
			"start_date":     e.StartDate,
			"end_date":       e.EndDate,
			"current":        e.Current,
			"description":    e.Description,
			"show":           e.Show,
		})
	}

	if _, err := p.Builder.Insert(educationsTable).
		Rows(rows).
		Executor().ExecContext(ctx); err != nil {
		return fmt.Errorf("could not store educations into pg: %w", err)
	}

	return nil
}

func (p *PgSQL) replaceExperiences(ctx context.Context, profileID uuid.UUID, experiences []domain.Experience) error {
	if _, err := p.Builder.Delete(experiencesTable).
		Where(goqu.I("profile_id").Eq(profileID)).
		Executor().ExecContext(ctx); err != nil {
		return fmt.Errorf("could not clear experiences: %w", err)
	}

	if len(experiences) == 0 {
		return nil
	}

	rows := make([]goqu.Record, 0, len(experiences))
	for _, e := range experiences {
		rows = append(rows, goqu.Record{
			"profile_id":  profileID,
			"title":       e.Title,
			"company":     e.Company,
			"start_date":  e.StartDate,
			"end_date":    e.EndDate,
			"current":     e.Current,
			"description": e.Description,
			"show":        e.Show,
		})
	}

	if _, err := p.Builder.Insert(experiencesTable).
		Rows(rows).
		Executor().ExecContext(ctx); err != nil {
		return fmt.Errorf("could not store experiences into pg: %w", err)
	}

	return nil
}

func (p *PgSQL) replaceLinks(ctx context.Context, profileID uuid.UUID, links []domain.Link) error {
	if _, err := p.Builder.Delete(linksTable).
		Where(goqu.I("profile_id").Eq(profileID)).
		Executor().ExecContext(ctx); err != nil {
		return fmt.Errorf("could not clear links: %w", err)
	}

	if len(links) == 0 {
		return nil
	}

	rows := make([]goqu.Record, 0, len(links))
	for _, l := range links {
		rows = append(rows, goqu.Record{
			"profile_id": profileID,
			"kind":       string(l.Kind),
			"label":      l.Label,
			"url":        l.URL,
			"show":       l.Show,
		})
	}

	if _, err := p.Builder.Insert(linksTable).
		Rows(rows).
		Executor().ExecContext(ctx); err != nil {
		return fmt.Errorf("could not store links into pg: %w", err)
	}

	return nil
}
