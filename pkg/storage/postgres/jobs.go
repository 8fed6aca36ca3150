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
	jobsTable           = "jobs"
	jobRequiredSkills   = "job_required_skills"
	jobNiceToHaveSkills = "job_nice_skills"
)

// withinRadiusKm matches rows whose stored coordinates lie within radiusKm
// kilometers of the given point (great-circle distance). The acos argument is
// clamped to [-1, 1] to guard against floating point drift.
func withinRadiusKm(lat, lng, radiusKm float64) goqu.Expression {
	return goqu.L(
		"(6371 * acos(least(1.0, greatest(-1.0, "+
			"cos(radians(?)) * cos(radians(latitude)) * cos(radians(longitude) - radians(?)) + "+
			"sin(radians(?)) * sin(radians(latitude)))))) <= ?",
		lat, lng, lat, radiusKm)
}

// StoreJob inserts a posting and its skill relations.
func (p *PgSQL) StoreJob(ctx context.Context, job domain.Job) (*domain.Job, error) {
	var pgJob PgJob
	pgJob.FromDomain(job)

	var row PgJob
	if _, err := p.Builder.Insert(jobsTable).
		Rows(pgJob).
		Returning(&PgJob{}).
		Executor().ScanStructContext(ctx, &row); err != nil {
		return nil, fmt.Errorf("could not store job into pg: %w", err)
	}

	if err := p.replaceSkillRelations(ctx, jobRequiredSkills, "job_id", row.ID, job.RequiredSkills); err != nil {
		return nil, err
	}
	if err := p.replaceSkillRelations(ctx, jobNiceToHaveSkills, "job_id", row.ID, job.NiceToHaveSkills); err != nil {
		return nil, err
	}

	stored := row.ToDomain()

	return stored, p.attachJobSkillsPtr(ctx, stored)
}

// UpdateJob replaces the posting's mutable fields and skill relations.
func (p *PgSQL) UpdateJob(ctx context.Context, job domain.Job) (*domain.Job, error) {
	var pgJob PgJob
	pgJob.FromDomain(job)

	var row PgJob
	found, err := p.Builder.Update(jobsTable).
		Set(goqu.Record{
			"title":            pgJob.Title,
			"company":          pgJob.Company,
			"location":         pgJob.Location,
			"work_type":        pgJob.WorkType,
			"description":      pgJob.Description,
			"requirements":     pgJob.Requirements,
			"salary_min":       pgJob.SalaryMin,
			"salary_max":       pgJob.SalaryMax,
			"salary_currency":  pgJob.SalaryCurrency,
			"visa_sponsorship": pgJob.VisaSponsorship,
			"benefits":         pgJob.Benefits,
			"status":           pgJob.Status,
			"expires_at":       pgJob.ExpiresAt,
			"updated_at":       goqu.L("CURRENT_TIMESTAMP"),
		}).
		Where(goqu.I("id").Eq(uuid.UUID(job.ID))).
		Returning(&PgJob{}).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not update job in pg: %w", err)
	}
	if !found {
		return nil, nil
	}

	if err := p.replaceSkillRelations(ctx, jobRequiredSkills, "job_id", row.ID, job.RequiredSkills); err != nil {
		return nil, err
	}
	if err := p.replaceSkillRelations(ctx, jobNiceToHaveSkills, "job_id", row.ID, job.NiceToHaveSkills); err != nil {
		return nil, err
	}

	stored := row.ToDomain()

	return stored, p.attachJobSkillsPtr(ctx, stored)
}

// JobByID returns a posting with its skills, or nil when it does not exist.
func (p *PgSQL) JobByID(ctx context.Context, id domain.JobID) (*domain.Job, error) {
	var row PgJob
	found, err := p.Builder.From(jobsTable).
		Where(goqu.I("id").Eq(uuid.UUID(id))).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch job by id: %w", err)
	}
	if !found {
		return nil, nil
	}

	job := row.ToDomain()

	return job, p.attachJobSkillsPtr(ctx, job)
}

// SearchJobs returns a page of postings matching the filters, ordered by
// created_at DESC, id DESC. An empty Statuses filter means currently active
// postings only.
func (p *PgSQL) SearchJobs(ctx context.Context,
	filters storage.JobFilters,
	cursor time.Time,
	limit uint) (storage.JobPage, error) {
	w := jobFilterExpressions(filters)
	if !cursor.IsZero() {
		w = append(w, goqu.I("created_at").Lt(cursor))
	}

	// fetch one extra to determine if there is a next page
	fetch := limit + 1
	ds := p.Builder.From(jobsTable).
		Where(w...).
		Order(goqu.I("created_at").Desc(), goqu.I("id").Desc()).
		Limit(fetch)

	var rows []PgJob
	if err := ds.Executor().ScanStructsContext(ctx, &rows); err != nil {
		return storage.JobPage{}, fmt.Errorf("could not search jobs in pg: %w", err)
	}

	var nextCursor *time.Time
	if uint(len(rows)) > limit {
		trimmed := rows[:limit]
		nextCursor = &trimmed[len(trimmed)-1].CreatedAt
		rows = trimmed
	}

	jobs := make([]domain.Job, 0, len(rows))
	for _, r := range rows {
		jobs = append(jobs, *r.ToDomain())
	}
	if err := p.attachJobSkills(ctx, jobs); err != nil {
		return storage.JobPage{}, err
	}

	return storage.JobPage{
		Jobs:       jobs,
		NextCursor: nextCursor,
	}, nil
}

// JobsByPoster returns all postings owned by the recruiter, newest first.
func (p *PgSQL) JobsByPoster(ctx context.Context, posterID domain.UserID) ([]domain.Job, error) {
	var rows []PgJob
	if err := p.Builder.From(jobsTable).
		Where(goqu.I("posted_by").Eq(uuid.UUID(posterID))).
		Order(goqu.I("created_at").Desc()).
		Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, fmt.Errorf("could not fetch jobs by poster: %w", err)
	}

	jobs := make([]domain.Job, 0, len(rows))
	for _, r := range rows {
		jobs = append(jobs, *r.ToDomain())
	}

	return jobs, p.attachJobSkills(ctx, jobs)
}

// SetJobCoords stores the geocoded coordinates of a posting. Passing nils
// clears them.
func (p *PgSQL) SetJobCoords(ctx context.Context, id domain.JobID, lat, lng *float64) error {
	if _, err := p.Builder.Update(jobsTable).
		Set(goqu.Record{
			"latitude":  toNullFloat(lat),
			"longitude": toNullFloat(lng),
		}).
		Where(goqu.I("id").Eq(uuid.UUID(id))).
		Executor().ExecContext(ctx); err != nil {
		return fmt.Errorf("could not set job coords in pg: %w", err)
	}

	return nil
}

// ActiveJobs returns all currently active, unexpired postings, newest first.
func (p *PgSQL) ActiveJobs(ctx context.Context) ([]domain.Job, error) {
	var rows []PgJob
	if err := p.Builder.From(jobsTable).
		Where(
			goqu.I("status").Eq(string(domain.JobStatusActive)),
			goqu.Or(goqu.I("expires_at").IsNull(), goqu.I("expires_at").Gt(goqu.L("CURRENT_TIMESTAMP"))),
		).
		Order(goqu.I("created_at").Desc()).
		Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, fmt.Errorf("could not fetch active jobs from pg: %w", err)
	}

	jobs := make([]domain.Job, 0, len(rows))
	for _, r := range rows {
		jobs = append(jobs, *r.ToDomain())
	}

	return jobs, p.attachJobSkills(ctx, jobs)
}

// ActiveJobsForMap returns active, unexpired postings that carry coordinates.
func (p *PgSQL) ActiveJobsForMap(ctx context.Context) ([]domain.Job, error) {
	var rows []PgJob
	if err := p.Builder.From(jobsTable).
		Where(
			goqu.I("status").Eq(string(domain.JobStatusActive)),
			goqu.Or(goqu.I("expires_at").IsNull(), goqu.I("expires_at").Gt(goqu.L("CURRENT_TIMESTAMP"))),
			goqu.I("latitude").IsNotNull(),
			goqu.I("longitude").IsNotNull(),
		).
		Order(goqu.I("created_at").Desc()).
		Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, fmt.Errorf("could not fetch map jobs from pg: %w", err)
	}

	jobs := make([]domain.Job, 0, len(rows))
	for _, r := range rows {
		jobs = append(jobs, *r.ToDomain())
	}

	return jobs, p.attachJobSkills(ctx, jobs)
}

func jobFilterExpressions(filters storage.JobFilters) []goqu.Expression {
	var w []goqu.Expression

	if len(filters.Statuses) == 0 {
		w = append(w,
			goqu.I("status").Eq(string(domain.JobStatusActive)),
			goqu.Or(goqu.I("expires_at").IsNull(), goqu.I("expires_at").Gt(goqu.L("CURRENT_TIMESTAMP"))),
		)
	} else {
		statuses := make([]string, 0, len(filters.Statuses))
		for _, s := range filters.Statuses {
			statuses = append(statuses, string(s))
		}
		w = append(w, goqu.I("status").In(statuses))
	}

	if q := strings.TrimSpace(filters.Query); q != "" {
		pattern := "%" + q + "%"
		w = append(w, goqu.Or(
			goqu.I("title").ILike(pattern),
			goqu.I("company").ILike(pattern),
			goqu.I("description").ILike(pattern),
		))
	}

	if loc := strings.TrimSpace(filters.Location); loc != "" {
		w = append(w, goqu.I("location").ILike("%"+loc+"%"))
	}

	if filters.WorkType != "" {
		w = append(w, goqu.I("work_type").Eq(string(filters.WorkType)))
	}

	if filters.SalaryMin != nil {
		w = append(w, goqu.Or(
			goqu.I("salary_max").IsNull(),
			goqu.I("salary_max").Gte(*filters.SalaryMin),
		))
	}
	if filters.SalaryMax != nil {
		w = append(w, goqu.Or(
			goqu.I("salary_min").IsNull(),
			goqu.I("salary_min").Lte(*filters.SalaryMax),
		))
	}

	if filters.VisaSponsorship {
		w = append(w, goqu.I("visa_sponsorship").IsTrue())
	}

	if len(filters.Skills) > 0 {
		names := make([]string, 0, len(filters.Skills))
		for _, s := range filters.Skills {
			if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
				names = append(names, s)
			}
		}
		if len(names) > 0 {
			w = append(w, goqu.Or(
				skillExists(jobRequiredSkills, "job_id", jobsTable, names),
				skillExists(jobNiceToHaveSkills, "job_id", jobsTable, names),
			))
		}
	}

	if filters.CenterLat != nil && filters.CenterLng != nil && filters.RadiusKm != nil {
		w = append(w,
			goqu.I("latitude").IsNotNull(),
			goqu.I("longitude").IsNotNull(),
			withinRadiusKm(*filters.CenterLat, *filters.CenterLng, *filters.RadiusKm),
		)
	}

	return w
}

// skillExists builds an EXISTS predicate matching owner rows whose join table
// points at any skill whose lowercase name is in names.
func skillExists(joinTable, ownerColumn, ownerTable string, lowerNames []string) goqu.Expression {
	sub := goqu.From(goqu.T(joinTable).As("j")).
		Join(goqu.T(skillsTable).As("s"), goqu.On(goqu.I("s.id").Eq(goqu.I("j.skill_id")))).
		Select(goqu.L("1")).
		Where(
			goqu.I("j."+ownerColumn).Eq(goqu.I(ownerTable+".id")),
			goqu.Func("LOWER", goqu.I("s.name")).In(lowerNames),
		)

	return goqu.L("EXISTS ?", sub)
}

func (p *PgSQL) attachJobSkills(ctx context.Context, jobs []domain.Job) error {
	if len(jobs) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(jobs))
	for i := range jobs {
		ids = append(ids, uuid.UUID(jobs[i].ID))
	}

	required, err := p.skillNamesByOwner(ctx, jobRequiredSkills, "job_id", ids)
	if err != nil {
		return err
	}
	nice, err := p.skillNamesByOwner(ctx, jobNiceToHaveSkills, "job_id", ids)
	if err != nil {
		return err
	}

	for i := range jobs {
		jobs[i].RequiredSkills = required[uuid.UUID(jobs[i].ID)]
		jobs[i].NiceToHaveSkills = nice[uuid.UUID(jobs[i].ID)]
	}

	return nil
}

func (p *PgSQL) attachJobSkillsPtr(ctx context.Context, job *domain.Job) error {
	page := []domain.Job{*job}
	if err := p.attachJobSkills(ctx, page); err != nil {
		return err
	}
	*job = page[0]

	return nil
}
