package postgres

import (
	"context"
	"fmt"

	"jobboard/pkg/domain"
	"jobboard/pkg/storage"

	"github.com/google/uuid"
)

const (
	reportsTable = "job_reports"
)

// StoreReport inserts a job report. One report per user per job; duplicates
// surface as storage.ErrDuplicate.
func (p *PgSQL) StoreReport(ctx context.Context, report domain.JobReport) (*domain.JobReport, error) {
	pgReport := PgReport{
		JobID:       uuid.UUID(report.JobID),
		ReportedBy:  uuid.UUID(report.ReportedBy),
		Reason:      string(report.Reason),
		Description: report.Description,
	}

	var row PgReport
	if _, err := p.Builder.Insert(reportsTable).
		Rows(pgReport).
		Returning(&PgReport{}).
		Executor().ScanStructContext(ctx, &row); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("report for job %s: %w", uuid.UUID(report.JobID), storage.ErrDuplicate)
		}

		return nil, fmt.Errorf("could not store report into pg: %w", err)
	}

	return row.ToDomain(), nil
}
