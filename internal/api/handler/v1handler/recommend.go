package v1handler

import (
	"net/http"

	"jobboard/pkg/domain"

	"github.com/gin-gonic/gin"
)

// RecommendedJobs returns active postings scored against the caller's skills.
func (h *Handler) RecommendedJobs(c *gin.Context) {
	items, err := h.deps.Recommend.JobsForSeeker(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// RecommendedCandidates returns job-seeker profiles scored against one of the
// caller's own postings.
func (h *Handler) RecommendedCandidates(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	items, err := h.deps.Recommend.CandidatesForJob(c.Request.Context(), currentUser(c), domain.JobID(id))
	if err != nil {
		respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}
