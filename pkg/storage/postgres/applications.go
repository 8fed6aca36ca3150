package postgres

import (
	"context"
	"fmt"

	"jobboard/pkg/domain"
	"jobboard/pkg/storage"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

const (
	applicationsTable = "job_applications"
)

// StoreApplication inserts an application. The (job, applicant) pair is
// unique; a second application surfaces as storage.ErrDuplicate.
func (p *PgSQL) StoreApplication(ctx context.Context,
	app domain.JobApplication) (*domain.JobApplication, error) {
	var pgApp PgApplication
	pgApp.FromDomain(app)

	var row PgApplication
	if _, err := p.Builder.Insert(applicationsTable).
		Rows(pgApp).
		Returning(&PgApplication{}).
		Executor().ScanStructContext(ctx, &row); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("application for job %s: %w", uuid.UUID(app.JobID), storage.ErrDuplicate)
		}

		return nil, fmt.Errorf("could not store application into pg: %w", err)
	}

	return row.ToDomain(), nil
}

// ApplicationByID returns an application, or nil when it does not exist.
func (p *PgSQL) ApplicationByID(ctx context.Context,
	id domain.ApplicationID) (*domain.JobApplication, error) {
	var row PgApplication
	found, err := p.Builder.From(applicationsTable).
		Where(goqu.I("id").Eq(uuid.UUID(id))).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch application by id: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain(), nil
}

// ApplicationByJobAndApplicant returns the unique application for the
// (job, applicant) pair, or nil.
func (p *PgSQL) ApplicationByJobAndApplicant(ctx context.Context,
	jobID domain.JobID,
	applicantID domain.UserID) (*domain.JobApplication, error) {
	var row PgApplication
	found, err := p.Builder.From(applicationsTable).
		Where(
			goqu.I("job_id").Eq(uuid.UUID(jobID)),
			goqu.I("applicant_id").Eq(uuid.UUID(applicantID)),
		).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch application by job and applicant: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain(), nil
}

// ApplicationsByJob returns all applications for a job, newest first.
func (p *PgSQL) ApplicationsByJob(ctx context.Context,
	jobID domain.JobID) ([]domain.JobApplication, error) {
	var rows []PgApplication
	if err := p.Builder.From(applicationsTable).
		Where(goqu.I("job_id").Eq(uuid.UUID(jobID))).
		Order(goqu.I("applied_at").Desc()).
		Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, fmt.Errorf("could not fetch applications by job: %w", err)
	}

	apps := make([]domain.JobApplication, 0, len(rows))
	for _, r := range rows {
		apps = append(apps, *r.ToDomain())
	}

	return apps, nil
}

// ApplicationsByApplicant returns all applications made by a user, newest first.
func (p *PgSQL) ApplicationsByApplicant(ctx context.Context,
	applicantID domain.UserID) ([]domain.JobApplication, error) {
	var rows []PgApplication
	if err := p.Builder.From(applicationsTable).
		Where(goqu.I("applicant_id").Eq(uuid.UUID(applicantID))).
		Order(goqu.I("applied_at").Desc()).
		Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, fmt.Errorf("could not fetch applications by applicant: %w", err)
	}

	apps := make([]domain.JobApplication, 0, len(rows))
	for _, r := range rows {
		apps = append(apps, *r.ToDomain())
	}

	return apps, nil
}

// UpdateApplicationStatus sets the lifecycle state and stamps updated_at.
func (p *PgSQL) UpdateApplicationStatus(ctx context.Context,
	id domain.ApplicationID,
	status domain.ApplicationStatus) (*domain.JobApplication, error) {
	var row PgApplication
	found, err := p.Builder.Update(applicationsTable).
		Set(goqu.Record{
			"status":     string(status),
			"updated_at": goqu.L("CURRENT_TIMESTAMP"),
		}).
		Where(goqu.I("id").Eq(uuid.UUID(id))).
		Returning(&PgApplication{}).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not update application status in pg: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain(), nil
}
