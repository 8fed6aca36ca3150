package v1handler

import (
	"net/http"
	"time"

	"jobboard/internal/jobs"
	"jobboard/pkg/domain"
	"jobboard/pkg/serrors"

	"github.com/gin-gonic/gin"
)

// JobRequest is the body of POST /jobs and PUT /jobs/:id.
type JobRequest struct {
	Title            string    `json:"title" binding:"required"`
	Company          string    `json:"company" binding:"required"`
	Location         string    `json:"location"`
	WorkType         string    `json:"workType"`
	Description      string    `json:"description" binding:"required"`
	Requirements     string    `json:"requirements"`
	SalaryMin        *int      `json:"salaryMin"`
	SalaryMax        *int      `json:"salaryMax"`
	SalaryCurrency   string    `json:"salaryCurrency"`
	VisaSponsorship  bool      `json:"visaSponsorship"`
	Benefits         string    `json:"benefits"`
	RequiredSkills   []string  `json:"requiredSkills"`
	NiceToHaveSkills []string  `json:"niceToHaveSkills"`
	Status           string    `json:"status"`
	ExpiresAt        time.Time `json:"expiresAt"`
}

func (r *JobRequest) params() jobs.PostParams {
	return jobs.PostParams{
		Title:            r.Title,
		Company:          r.Company,
		Location:         r.Location,
		WorkType:         domain.WorkType(r.WorkType),
		Description:      r.Description,
		Requirements:     r.Requirements,
		SalaryMin:        r.SalaryMin,
		SalaryMax:        r.SalaryMax,
		SalaryCurrency:   r.SalaryCurrency,
		VisaSponsorship:  r.VisaSponsorship,
		Benefits:         r.Benefits,
		RequiredSkills:   r.RequiredSkills,
		NiceToHaveSkills: r.NiceToHaveSkills,
		Status:           domain.JobStatus(r.Status),
		ExpiresAt:        r.ExpiresAt,
	}
}

// JobPage is a page of postings.
type JobPage struct {
	Items      []domain.Job `json:"items"`
	NextCursor string       `json:"nextCursor,omitempty"`
}

// JobDetails is a posting plus the viewer's application, if any.
type JobDetails struct {
	Job         *domain.Job            `json:"job"`
	Application *domain.JobApplication `json:"application,omitempty"`
}

// SearchJobs returns a page of active postings matching the query parameters.
func (h *Handler) SearchJobs(c *gin.Context) {
	cursor, limit := pageQuery(c)

	items, next, err := h.deps.Jobs.Search(c.Request.Context(), jobs.SearchParams{
		Query:           c.Query("q"),
		Location:        c.Query("location"),
		WorkType:        domain.WorkType(c.Query("workType")),
		SalaryMin:       intPtrQuery(c, "salaryMin"),
		SalaryMax:       intPtrQuery(c, "salaryMax"),
		VisaSponsorship: boolQuery(c, "visaSponsorship"),
		Skills:          csvQuery(c, "skills"),
		RadiusKm:        floatQuery(c, "radiusKm"),
	}, cursor, limit)
	if err != nil {
		respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, JobPage{Items: items, NextCursor: next})
}

// MapJobs returns active postings that carry coordinates.
func (h *Handler) MapJobs(c *gin.Context) {
	items, err := h.deps.Jobs.MapJobs(c.Request.Context())
	if err != nil {
		respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// GetJob returns a posting plus the viewer's own application when logged in.
func (h *Handler) GetJob(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	job, application, err := h.deps.Jobs.Get(c.Request.Context(), currentUser(c), domain.JobID(id))
	if err != nil {
		respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, JobDetails{Job: job, Application: application})
}

// PostJob creates a posting.
func (h *Handler) PostJob(c *gin.Context) {
	var req JobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, serrors.Wrap(serrors.ErrBadRequest, err, "invalid request body"))

		return
	}

	job, err := h.deps.Jobs.Post(c.Request.Context(), currentUser(c), req.params())
	if err != nil {
		respondError(c, err)

		return
	}

	c.JSON(http.StatusCreated, job)
}

// UpdateJob edits a posting.
func (h *Handler) UpdateJob(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req JobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, serrors.Wrap(serrors.ErrBadRequest, err, "invalid request body"))

		return
	}

	job, err := h.deps.Jobs.Update(c.Request.Context(), currentUser(c), domain.JobID(id), req.params())
	if err != nil {
		respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, job)
}

// ApplyRequest is the body of POST /jobs/:id/apply.
type ApplyRequest struct {
	CoverLetter string `json:"coverLetter"`
}

// Apply files the caller's application to a posting.
func (h *Handler) Apply(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, serrors.Wrap(serrors.ErrBadRequest, err, "invalid request body"))

		return
	}

	application, err := h.deps.Jobs.Apply(c.Request.Context(), currentUser(c), domain.JobID(id), req.CoverLetter)
	if err != nil {
		respondError(c, err)

		return
	}

	c.JSON(http.StatusCreated, application)
}

// JobApplications lists a posting's applications for its owner.
func (h *Handler) JobApplications(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	items, err := h.deps.Jobs.ApplicationsForJob(c.Request.Context(), currentUser(c), domain.JobID(id))
	if err != nil {
		respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// ApplicationStatusRequest is the body of PUT /applications/:id/status.
type ApplicationStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateApplicationStatus moves an application through its lifecycle.
func (h *Handler) UpdateApplicationStatus(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req ApplicationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, serrors.Wrap(serrors.ErrBadRequest, err, "invalid request body"))

		return
	}

	application, err := h.deps.Jobs.UpdateApplicationStatus(c.Request.Context(),
		currentUser(c),
		domain.ApplicationID(id),
		domain.ApplicationStatus(req.Status))
	if err != nil {
		respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, application)
}

// MyJobs lists the caller's own postings.
func (h *Handler) MyJobs(c *gin.Context) {
	items, err := h.deps.Jobs.PostedJobs(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// MyApplications lists the caller's applications.
func (h *Handler) MyApplications(c *gin.Context) {
	items, err := h.deps.Jobs.MyApplications(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// ReportRequest is the body of POST /jobs/:id/report.
type ReportRequest struct {
	Reason      string `json:"reason" binding:"required"`
	Description string `json:"description"`
}

// ReportJob flags a posting for review.
func (h *Handler) ReportJob(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, serrors.Wrap(serrors.ErrBadRequest, err, "invalid request body"))

		return
	}

	report, err := h.deps.Jobs.Report(c.Request.Context(),
		currentUser(c),
		domain.JobID(id),
		domain.ReportReason(req.Reason),
		req.Description)
	if err != nil {
		respondError(c, err)

		return
	}

	c.JSON(http.StatusCreated, report)
}
