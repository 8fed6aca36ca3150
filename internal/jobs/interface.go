package jobs

import (
	"context"
	"time"

	"jobboard/pkg/domain"
)

// PostParams carries the writable fields of a job posting.
type PostParams struct {
	Title            string
	Company          string
	Location         string
	WorkType         domain.WorkType
	Description      string
	Requirements     string
	SalaryMin        *int
	SalaryMax        *int
	SalaryCurrency   string
	VisaSponsorship  bool
	Benefits         string
	RequiredSkills   []string
	NiceToHaveSkills []string
	Status           domain.JobStatus
	ExpiresAt        time.Time
}

// SearchParams carries the public job search criteria.
type SearchParams struct {
	Query           string
	Location        string
	WorkType        domain.WorkType
	SalaryMin       *int
	SalaryMax       *int
	VisaSponsorship bool
	Skills          []string
	// RadiusKm, when positive and Location resolves to coordinates, switches
	// the location filter to a haversine radius search.
	RadiusKm float64
}

//go:generate mockgen -package mockjobs -source=interface.go -destination=mock/mockjobs.go *
type Jobs interface {
	// Post creates a posting for a recruiter and schedules geocoding.
	Post(ctx context.Context, poster *domain.User, params PostParams) (*domain.Job, error)
	// Update edits a posting its owner controls, re-geocoding when the
	// location changed.
	Update(ctx context.Context, user *domain.User, id domain.JobID, params PostParams) (*domain.Job, error)
	// Get returns a posting plus the viewer's application, if any. Inactive
	// postings are visible only to their owner.
	Get(ctx context.Context,
		viewer *domain.User,
		id domain.JobID) (*domain.Job, *domain.JobApplication, error)
	// Search returns a page of active postings matching the criteria.
	Search(ctx context.Context, params SearchParams, cursor string, limit uint) ([]domain.Job, string, error)
	// MapJobs returns active postings that carry coordinates.
	MapJobs(ctx context.Context) ([]domain.Job, error)

	// Apply files a job seeker's application.
	Apply(ctx context.Context,
		user *domain.User,
		id domain.JobID,
		coverLetter string) (*domain.JobApplication, error)
	// ApplicationsForJob lists a posting's applications for its owner.
	ApplicationsForJob(ctx context.Context,
		user *domain.User,
		id domain.JobID) ([]domain.JobApplication, error)
	// UpdateApplicationStatus moves an application through its lifecycle; only
	// the posting's owner may do so.
	UpdateApplicationStatus(ctx context.Context,
		user *domain.User,
		id domain.ApplicationID,
		status domain.ApplicationStatus) (*domain.JobApplication, error)
	// PostedJobs lists the recruiter's own postings, any status.
	PostedJobs(ctx context.Context, user *domain.User) ([]domain.Job, error)
	// MyApplications lists the seeker's applications.
	MyApplications(ctx context.Context, user *domain.User) ([]domain.JobApplication, error)

	// Report flags a posting; one report per user per job.
	Report(ctx context.Context,
		user *domain.User,
		id domain.JobID,
		reason domain.ReportReason,
		description string) (*domain.JobReport, error)

	// Geocode resolves a posting's location into coordinates. Run by the
	// background worker.
	Geocode(ctx context.Context, id domain.JobID) error
}
