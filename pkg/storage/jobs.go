package storage

import (
	"context"
	"time"

	"jobboard/pkg/domain"
)

// JobFilters describes the optional criteria of a job search. Zero values
// mean "no filter" for the respective field.
type JobFilters struct {
	// Query is matched case-insensitively against title, company and description.
	Query string
	// Location is a case-insensitive substring filter on the job location.
	Location string
	// WorkType restricts results to a single work arrangement.
	WorkType domain.WorkType
	// SalaryMin keeps jobs whose salary_max is at least this value or unset.
	SalaryMin *int
	// SalaryMax keeps jobs whose salary_min is at most this value or unset.
	SalaryMax *int
	// VisaSponsorship keeps only jobs offering sponsorship when true.
	VisaSponsorship bool
	// Skills keeps jobs that list ANY of these names as required or nice-to-have.
	Skills []string
	// CenterLat/CenterLng/RadiusKm keep jobs with coordinates within RadiusKm
	// of the center (haversine). All three must be set together.
	CenterLat *float64
	CenterLng *float64
	RadiusKm  *float64
	// Statuses restricts results to the given lifecycle states. Empty means
	// ACTIVE only (the public search default).
	Statuses []domain.JobStatus
}

// JobPage groups a page of jobs with an optional NextCursor for pagination.
type JobPage struct {
	Jobs       []domain.Job
	NextCursor *time.Time
}

// JobStorage defines persistence and query operations for job postings.
// Skill relations are maintained alongside the row: StoreJob and UpdateJob
// resolve skill names case-insensitively, creating missing Skill rows.
type JobStorage interface {
	// StoreJob inserts a posting together with its skill relations and returns
	// the stored row.
	StoreJob(ctx context.Context, job domain.Job) (*domain.Job, error)
	// UpdateJob replaces the posting's mutable fields and skill relations,
	// stamping updated_at. Returns nil when the job does not exist.
	UpdateJob(ctx context.Context, job domain.Job) (*domain.Job, error)
	// JobByID fetches a posting with its skills. Returns nil when not found.
	JobByID(ctx context.Context, id domain.JobID) (*domain.Job, error)
	// SearchJobs returns a page of postings matching the filters, ordered by
	// created_at DESC, id DESC, created before the optional cursor.
	SearchJobs(ctx context.Context, filters JobFilters, cursor time.Time, limit uint) (JobPage, error)
	// JobsByPoster returns all postings owned by the given recruiter, newest first.
	JobsByPoster(ctx context.Context, posterID domain.UserID) ([]domain.Job, error)
	// SetJobCoords updates the geocoded coordinates of a posting. Passing nils
	// clears them.
	SetJobCoords(ctx context.Context, id domain.JobID, lat, lng *float64) error
	// ActiveJobsForMap returns active postings that carry coordinates.
	ActiveJobsForMap(ctx context.Context) ([]domain.Job, error)
	// ActiveJobs returns all currently active postings with their skills,
	// newest first. Used by the recommendation scorer.
	ActiveJobs(ctx context.Context) ([]domain.Job, error)
}

// ApplicationStorage defines persistence operations for job applications.
type ApplicationStorage interface {
	// StoreApplication inserts an application. Returns ErrDuplicate when the
	// applicant already applied to the job (database uniqueness constraint).
	StoreApplication(ctx context.Context, app domain.JobApplication) (*domain.JobApplication, error)
	// ApplicationByID fetches an application. Returns nil when not found.
	ApplicationByID(ctx context.Context, id domain.ApplicationID) (*domain.JobApplication, error)
	// ApplicationByJobAndApplicant returns the unique application for the
	// (job, applicant) pair, or nil.
	ApplicationByJobAndApplicant(ctx context.Context,
		jobID domain.JobID,
		applicantID domain.UserID) (*domain.JobApplication, error)
	// ApplicationsByJob returns all applications for a job, newest first.
	ApplicationsByJob(ctx context.Context, jobID domain.JobID) ([]domain.JobApplication, error)
	// ApplicationsByApplicant returns all applications made by a user, newest first.
	ApplicationsByApplicant(ctx context.Context, applicantID domain.UserID) ([]domain.JobApplication, error)
	// UpdateApplicationStatus sets the lifecycle state and stamps updated_at.
	// Returns nil when the application does not exist.
	UpdateApplicationStatus(ctx context.Context,
		id domain.ApplicationID,
		status domain.ApplicationStatus) (*domain.JobApplication, error)
}

// ReportStorage defines persistence operations for job reports.
type ReportStorage interface {
	// StoreReport inserts a report. Returns ErrDuplicate when the user already
	// reported the job.
	StoreReport(ctx context.Context, report domain.JobReport) (*domain.JobReport, error)
}
