// Package jobs implements posting, searching, applying to and reporting job
// postings, plus the background geocoding of their locations.
package jobs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"jobboard/pkg/domain"
	"jobboard/pkg/geocoder"
	"jobboard/pkg/serrors"
	"jobboard/pkg/storage"

	"github.com/google/uuid"
)

// service is the concrete implementation of the Jobs interface.
type service struct {
	storage  storage.Storage
	geocoder geocoder.Client
}

// Post creates a posting. Non-recruiters get a not-found error, mirroring the
// recruiter-only pages of the web UI.
func (s service) Post(ctx context.Context, poster *domain.User, params PostParams) (*domain.Job, error) {
	if !poster.IsRecruiter() {
		return nil, serrors.With(serrors.ErrNotFound, "page not found")
	}
	if err := validatePostParams(&params); err != nil {
		return nil, err
	}

	var job *domain.Job
	if err := s.storage.WithTx(ctx, func(tx storage.AllStorage) error {
		stored, err := tx.StoreJob(ctx, domain.Job{
			Title:            params.Title,
			Company:          params.Company,
			Location:         params.Location,
			WorkType:         params.WorkType,
			Description:      params.Description,
			Requirements:     params.Requirements,
			SalaryMin:        params.SalaryMin,
			SalaryMax:        params.SalaryMax,
			SalaryCurrency:   params.SalaryCurrency,
			VisaSponsorship:  params.VisaSponsorship,
			Benefits:         params.Benefits,
			RequiredSkills:   params.RequiredSkills,
			NiceToHaveSkills: params.NiceToHaveSkills,
			PostedBy:         poster.ID,
			Status:           params.Status,
			ExpiresAt:        params.ExpiresAt,
		})
		if err != nil {
			return fmt.Errorf("could not store job: %w", err)
		}
		job = stored

		if _, err := tx.AddJob(ctx, GeocodeArgs{JobID: uuid.UUID(job.ID)}, nil); err != nil {
			return fmt.Errorf("could not add geocode job: %w", err)
		}

		return nil
	}); err != nil {
		return nil, err
	}

	return job, nil
}

// Update edits a posting. Non-owners get a not-found error so the posting's
// existence leaks nothing.
func (s service) Update(ctx context.Context,
	user *domain.User,
	id domain.JobID,
	params PostParams) (*domain.Job, error) {
	existing, err := s.storage.JobByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("could not get job: %w", err)
	}
	if existing == nil || existing.PostedBy != user.ID {
		return nil, serrors.With(serrors.ErrNotFound, "job not found")
	}
	if err := validatePostParams(&params); err != nil {
		return nil, err
	}

	locationChanged := !strings.EqualFold(
		strings.TrimSpace(existing.Location),
		strings.TrimSpace(params.Location))

	var job *domain.Job
	if err := s.storage.WithTx(ctx, func(tx storage.AllStorage) error {
		updated, err := tx.UpdateJob(ctx, domain.Job{
			ID:               id,
			Title:            params.Title,
			Company:          params.Company,
			Location:         params.Location,
			WorkType:         params.WorkType,
			Description:      params.Description,
			Requirements:     params.Requirements,
			SalaryMin:        params.SalaryMin,
			SalaryMax:        params.SalaryMax,
			SalaryCurrency:   params.SalaryCurrency,
			VisaSponsorship:  params.VisaSponsorship,
			Benefits:         params.Benefits,
			RequiredSkills:   params.RequiredSkills,
			NiceToHaveSkills: params.NiceToHaveSkills,
			Status:           params.Status,
			ExpiresAt:        params.ExpiresAt,
		})
		if err != nil {
			return fmt.Errorf("could not update job: %w", err)
		}
		if updated == nil {
			return serrors.With(serrors.ErrNotFound, "job not found")
		}
		job = updated

		if locationChanged || existing.Latitude == nil || existing.Longitude == nil {
			if _, err := tx.AddJob(ctx, GeocodeArgs{JobID: uuid.UUID(id)}, nil); err != nil {
				return fmt.Errorf("could not add geocode job: %w", err)
			}
		}

		return nil
	}); err != nil {
		return nil, err
	}

	return job, nil
}

// Get returns a posting plus the viewer's application, if any.
func (s service) Get(ctx context.Context,
	viewer *domain.User,
	id domain.JobID) (*domain.Job, *domain.JobApplication, error) {
	job, err := s.storage.JobByID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("could not get job: %w", err)
	}
	if job == nil {
		return nil, nil, serrors.With(serrors.ErrNotFound, "job not found")
	}
	if !job.IsActive() && (viewer == nil || viewer.ID != job.PostedBy) {
		return nil, nil, serrors.With(serrors.ErrNotFound, "job not found")
	}

	var application *domain.JobApplication
	if viewer != nil {
		if application, err = s.storage.ApplicationByJobAndApplicant(ctx, id, viewer.ID); err != nil {
			return nil, nil, fmt.Errorf("could not get application: %w", err)
		}
	}

	return job, application, nil
}

// Search returns a page of active postings. When RadiusKm is set and the
// location resolves to coordinates, the substring location filter is replaced
// by a haversine radius filter.
func (s service) Search(ctx context.Context,
	params SearchParams,
	cursor string,
	limit uint) ([]domain.Job, string, error) {
	var cursorTime time.Time
	if cursor != "" {
		t, err := time.Parse(time.RFC3339, cursor)
		if err != nil {
			return nil, "", serrors.Wrap(serrors.ErrBadRequest, err, "invalid cursor")
		}
		cursorTime = t
	}

	filters := storage.JobFilters{
		Query:           params.Query,
		Location:        params.Location,
		WorkType:        params.WorkType,
		SalaryMin:       params.SalaryMin,
		SalaryMax:       params.SalaryMax,
		VisaSponsorship: params.VisaSponsorship,
		Skills:          params.Skills,
	}

	if params.RadiusKm > 0 {
		if center := s.resolveCenter(ctx, params.Location); center != nil {
			filters.Location = ""
			filters.CenterLat = &center.Lat
			filters.CenterLng = &center.Lng
			radius := params.RadiusKm
			filters.RadiusKm = &radius
		}
	}

	page, err := s.storage.SearchJobs(ctx, filters, cursorTime, limit)
	if err != nil {
		return nil, "", fmt.Errorf("could not search jobs: %w", err)
	}

	var next string
	if page.NextCursor != nil {
		next = page.NextCursor.Format(time.RFC3339)
	}

	return page.Jobs, next, nil
}

// MapJobs returns active postings that carry coordinates.
func (s service) MapJobs(ctx context.Context) ([]domain.Job, error) {
	jobs, err := s.storage.ActiveJobsForMap(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not get map jobs: %w", err)
	}

	return jobs, nil
}

// Apply files an application for a job seeker. Applying twice to the same job
// is a conflict.
func (s service) Apply(ctx context.Context,
	user *domain.User,
	id domain.JobID,
	coverLetter string) (*domain.JobApplication, error) {
	if !user.IsJobSeeker() {
		return nil, serrors.With(serrors.ErrForbidden, "only job seekers can apply")
	}

	job, err := s.storage.JobByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("could not get job: %w", err)
	}
	if job == nil || !job.IsActive() {
		return nil, serrors.With(serrors.ErrNotFound, "job not found")
	}

	application, err := s.storage.StoreApplication(ctx, domain.JobApplication{
		JobID:       id,
		ApplicantID: user.ID,
		Status:      domain.ApplicationStatusPending,
		CoverLetter: coverLetter,
	})
	if err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return nil, serrors.With(serrors.ErrConflict, "already applied to this job")
		}

		return nil, fmt.Errorf("could not store application: %w", err)
	}

	return application, nil
}

// ApplicationsForJob lists a posting's applications for its owner.
func (s service) ApplicationsForJob(ctx context.Context,
	user *domain.User,
	id domain.JobID) ([]domain.JobApplication, error) {
	job, err := s.storage.JobByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("could not get job: %w", err)
	}
	if job == nil || job.PostedBy != user.ID {
		return nil, serrors.With(serrors.ErrNotFound, "job not found")
	}

	applications, err := s.storage.ApplicationsByJob(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("could not get applications: %w", err)
	}

	return applications, nil
}

// UpdateApplicationStatus moves an application through its lifecycle.
func (s service) UpdateApplicationStatus(ctx context.Context,
	user *domain.User,
	id domain.ApplicationID,
	status domain.ApplicationStatus) (*domain.JobApplication, error) {
	if !domain.ValidApplicationStatus(status) {
		return nil, serrors.With(serrors.ErrBadRequest, "unknown application status %q", status)
	}

	application, err := s.storage.ApplicationByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("could not get application: %w", err)
	}
	if application == nil {
		return nil, serrors.With(serrors.ErrNotFound, "application not found")
	}

	job, err := s.storage.JobByID(ctx, application.JobID)
	if err != nil {
		return nil, fmt.Errorf("could not get job: %w", err)
	}
	if job == nil || job.PostedBy != user.ID {
		return nil, serrors.With(serrors.ErrNotFound, "application not found")
	}

	updated, err := s.storage.UpdateApplicationStatus(ctx, id, status)
	if err != nil {
		return nil, fmt.Errorf("could not update application status: %w", err)
	}
	if updated == nil {
		return nil, serrors.With(serrors.ErrNotFound, "application not found")
	}

	return updated, nil
}

// PostedJobs lists the recruiter's own postings.
func (s service) PostedJobs(ctx context.Context, user *domain.User) ([]domain.Job, error) {
	if !user.IsRecruiter() {
		return nil, serrors.With(serrors.ErrNotFound, "page not found")
	}

	jobs, err := s.storage.JobsByPoster(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("could not get posted jobs: %w", err)
	}

	return jobs, nil
}

// MyApplications lists the seeker's applications.
func (s service) MyApplications(ctx context.Context, user *domain.User) ([]domain.JobApplication, error) {
	applications, err := s.storage.ApplicationsByApplicant(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("could not get applications: %w", err)
	}

	return applications, nil
}

// Report flags a posting. A user can report a given job once.
func (s service) Report(ctx context.Context,
	user *domain.User,
	id domain.JobID,
	reason domain.ReportReason,
	description string) (*domain.JobReport, error) {
	if !domain.ValidReportReason(reason) {
		return nil, serrors.With(serrors.ErrBadRequest, "unknown report reason %q", reason)
	}

	job, err := s.storage.JobByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("could not get job: %w", err)
	}
	if job == nil {
		return nil, serrors.With(serrors.ErrNotFound, "job not found")
	}

	report, err := s.storage.StoreReport(ctx, domain.JobReport{
		JobID:       id,
		ReportedBy:  user.ID,
		Reason:      reason,
		Description: description,
	})
	if err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return nil, serrors.With(serrors.ErrConflict, "already reported this job")
		}

		return nil, fmt.Errorf("could not store report: %w", err)
	}

	return report, nil
}

func validatePostParams(params *PostParams) error {
	params.Title = strings.TrimSpace(params.Title)
	params.Company = strings.TrimSpace(params.Company)
	params.Location = strings.TrimSpace(params.Location)

	if params.Title == "" || params.Company == "" || strings.TrimSpace(params.Description) == "" {
		return serrors.With(serrors.ErrBadRequest, "title, company and description are required")
	}

	switch params.WorkType {
	case domain.WorkTypeRemote, domain.WorkTypeOnSite, domain.WorkTypeHybrid:
	case "":
		params.WorkType = domain.WorkTypeOnSite
	default:
		return serrors.With(serrors.ErrBadRequest, "unknown work type %q", params.WorkType)
	}

	switch params.Status {
	case domain.JobStatusActive, domain.JobStatusClosed, domain.JobStatusDraft:
	case "":
		params.Status = domain.JobStatusActive
	default:
		return serrors.With(serrors.ErrBadRequest, "unknown job status %q", params.Status)
	}

	if params.SalaryMin != nil && params.SalaryMax != nil && *params.SalaryMin > *params.SalaryMax {
		return serrors.With(serrors.ErrBadRequest, "salary_min exceeds salary_max")
	}

	if params.SalaryCurrency == "" {
		params.SalaryCurrency = "USD"
	}

	return nil
}

// New creates a new Jobs instance backed by the provided storage and geocoder.
func New(storage storage.Storage, geocoderClient geocoder.Client) Jobs {
	return &service{
		storage:  storage,
		geocoder: geocoderClient,
	}
}
