package domain

import (
	"time"

	"github.com/google/uuid"
)

// JobID uniquely identifies a job posting.
type JobID uuid.UUID

// WorkType describes where the work happens.
type WorkType string

const (
	WorkTypeRemote WorkType = "REMOTE"
	WorkTypeOnSite WorkType = "ON_SITE"
	WorkTypeHybrid WorkType = "HYBRID"
)

// JobStatus represents the lifecycle state of a posting.
type JobStatus string

const (
	// JobStatusActive postings are visible in search and accept applications.
	JobStatusActive JobStatus = "ACTIVE"
	// JobStatusClosed postings are hidden from search.
	JobStatusClosed JobStatus = "CLOSED"
	// JobStatusDraft postings are visible only to their owner.
	JobStatusDraft JobStatus = "DRAFT"
)

// Job is a posting created by a recruiter describing an open position.
type Job struct {
	// ID is the unique identifier of the posting.
	ID JobID `json:"id"`
	// Title and Company describe the position.
	Title   string `json:"title"`
	Company string `json:"company"`
	// Location is free text, "City, State" or "Remote".
	Location string   `json:"location"`
	WorkType WorkType `json:"workType"`

	Description  string `json:"description"`
	Requirements string `json:"requirements"`

	// SalaryMin/SalaryMax bound the offered salary; nil means unspecified.
	SalaryMin      *int   `json:"salaryMin,omitempty"`
	SalaryMax      *int   `json:"salaryMax,omitempty"`
	SalaryCurrency string `json:"salaryCurrency"`

	VisaSponsorship bool   `json:"visaSponsorship"`
	Benefits        string `json:"benefits"`

	// RequiredSkills must-have and NiceToHaveSkills optional skill names.
	RequiredSkills   []string `json:"requiredSkills"`
	NiceToHaveSkills []string `json:"niceToHaveSkills"`

	// PostedBy is the recruiter who owns the posting.
	PostedBy UserID    `json:"postedBy"`
	Status   JobStatus `json:"status"`

	// Latitude/Longitude are resolved from Location by the geocoding worker;
	// nil when the location is blank, remote or could not be resolved.
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	// ExpiresAt, when set, bounds how long the posting stays active.
	ExpiresAt time.Time `json:"expiresAt,omitzero"`
}

// IsActive reports whether the posting is open: status ACTIVE and not expired.
func (j *Job) IsActive() bool {
	return j.Status == JobStatusActive && (j.ExpiresAt.IsZero() || j.ExpiresAt.After(time.Now()))
}

// ApplicationID uniquely identifies a job application.
type ApplicationID uuid.UUID

// ApplicationStatus is the lifecycle state of an application.
type ApplicationStatus string

const (
	ApplicationStatusPending     ApplicationStatus = "PENDING"
	ApplicationStatusReviewing   ApplicationStatus = "REVIEWING"
	ApplicationStatusInterviewed ApplicationStatus = "INTERVIEWED"
	ApplicationStatusAccepted    ApplicationStatus = "ACCEPTED"
	ApplicationStatusRejected    ApplicationStatus = "REJECTED"
	ApplicationStatusWithdrawn   ApplicationStatus = "WITHDRAWN"
)

// ValidApplicationStatus reports whether s is one of the known lifecycle states.
func ValidApplicationStatus(s ApplicationStatus) bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusReviewing, ApplicationStatusInterviewed,
		ApplicationStatusAccepted, ApplicationStatusRejected, ApplicationStatusWithdrawn:
		return true
	}

	return false
}

// JobApplication links a job seeker to a job they applied to.
// A given user can apply to a given job at most once.
type JobApplication struct {
	ID          ApplicationID     `json:"id"`
	JobID       JobID             `json:"jobId"`
	ApplicantID UserID            `json:"applicantId"`
	Status      ApplicationStatus `json:"status"`
	CoverLetter string            `json:"coverLetter"`
	AppliedAt   time.Time         `json:"appliedAt"`
	UpdatedAt   time.Time         `json:"updatedAt,omitzero"`
}

// ReportID uniquely identifies a job report.
type ReportID uuid.UUID

// ReportReason categorizes why a posting was reported.
type ReportReason string

const (
	ReportReasonSpam           ReportReason = "spam"
	ReportReasonInappropriate  ReportReason = "inappropriate"
	ReportReasonFake           ReportReason = "fake"
	ReportReasonDiscriminatory ReportReason = "discriminatory"
	ReportReasonOther          ReportReason = "other"
)

// ValidReportReason reports whether r is one of the accepted report reasons.
func ValidReportReason(r ReportReason) bool {
	switch r {
	case ReportReasonSpam, ReportReasonInappropriate, ReportReasonFake,
		ReportReasonDiscriminatory, ReportReasonOther:
		return true
	}

	return false
}

// JobReport flags a posting for review. One report per user per job.
type JobReport struct {
	ID          ReportID     `json:"id"`
	JobID       JobID        `json:"jobId"`
	ReportedBy  UserID       `json:"reportedBy"`
	Reason      ReportReason `json:"reason"`
	Description string       `json:"description"`
	CreatedAt   time.Time    `json:"createdAt"`
	Reviewed    bool         `json:"reviewed"`
	ReviewedBy  *UserID      `json:"reviewedBy,omitempty"`
	ReviewedAt  *time.Time   `json:"reviewedAt,omitempty"`
}
