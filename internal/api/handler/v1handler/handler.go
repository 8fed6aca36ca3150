// Package v1handler implements the v1 HTTP handlers on top of the domain
// services.
package v1handler

import (
	"errors"
	"net/http"

	"jobboard/internal/auth"
	"jobboard/internal/jobs"
	"jobboard/internal/messages"
	"jobboard/internal/profiles"
	"jobboard/internal/recommend"
	"jobboard/internal/searches"
	"jobboard/pkg/logger"
	"jobboard/pkg/serrors"

	"github.com/gin-gonic/gin"
)

// DefaultLimit is the page size used when the client does not pass one.
const DefaultLimit = 20

// MaxLimit caps the page size a client may request.
const MaxLimit = 100

// Deps carries the services the v1 handlers delegate to.
type Deps struct {
	Auth      auth.Auth
	Profiles  profiles.Profiles
	Jobs      jobs.Jobs
	Searches  searches.Searches
	Recommend recommend.Recommend
	Messages  messages.Messages
}

// Handler exposes the v1 API over the domain services.
type Handler struct {
	deps Deps
}

// New creates a new Handler backed by the provided services.
func New(deps Deps) *Handler {
	return &Handler{deps: deps}
}

// Register mounts the v1 routes onto the given router.
func (h *Handler) Register(r gin.IRouter) {
	r.POST("/auth/signup", h.Signup)
	r.POST("/auth/login", h.Login)

	r.GET("/jobs", h.SearchJobs)
	r.GET("/jobs/map", h.MapJobs)
	r.GET("/jobs/:id", h.OptionalAuth, h.GetJob)
	r.GET("/profiles/:username", h.PublicProfile)

	authed := r.Group("", h.RequireAuth)

	authed.POST("/jobs", h.PostJob)
	authed.PUT("/jobs/:id", h.UpdateJob)
	authed.POST("/jobs/:id/apply", h.Apply)
	authed.GET("/jobs/:id/applications", h.JobApplications)
	authed.GET("/jobs/:id/candidates", h.RecommendedCandidates)
	authed.POST("/jobs/:id/report", h.ReportJob)
	authed.PUT("/applications/:id/status", h.UpdateApplicationStatus)

	authed.GET("/me/profile", h.MyProfile)
	authed.PUT("/me/profile", h.UpdateMyProfile)
	authed.GET("/me/jobs", h.MyJobs)
	authed.GET("/me/applications", h.MyApplications)

	authed.GET("/candidates", h.SearchCandidates)
	authed.POST("/searches", h.SaveSearch)
	authed.GET("/searches", h.ListSearches)
	authed.DELETE("/searches/:id", h.DeleteSearch)
	authed.POST("/searches/:id/toggle-notify", h.ToggleSearchNotify)

	authed.GET("/notifications", h.Notifications)
	authed.GET("/notifications/:id", h.OpenNotification)
	authed.POST("/notifications/:id/read", h.MarkNotificationRead)
	authed.POST("/notifications/read-all", h.MarkAllNotificationsRead)

	authed.GET("/recommended/jobs", h.RecommendedJobs)

	authed.POST("/messages", h.SendMessage)
	authed.GET("/messages", h.Inbox)
}

// respondError translates a service error into an HTTP status and a JSON
// error body. Errors without a semantic kind are logged and masked as 500s.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, serrors.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, serrors.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, serrors.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, serrors.ErrBadRequest):
		status = http.StatusBadRequest
	case errors.Is(err, serrors.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, serrors.ErrRateLimited):
		status = http.StatusTooManyRequests
	case errors.Is(err, serrors.ErrTimeout):
		status = http.StatusGatewayTimeout
	case errors.Is(err, serrors.ErrUnavailable):
		status = http.StatusServiceUnavailable
	}

	if status == http.StatusInternalServerError {
		logger.Error(c.Request.Context(), err.Error())
		c.JSON(status, gin.H{"error": "internal server error"})

		return
	}

	c.JSON(status, gin.H{"error": err.Error()})
}

// pageQuery reads the cursor and limit query parameters.
func pageQuery(c *gin.Context) (cursor string, limit uint) {
	cursor = c.Query("cursor")
	limit = uintQuery(c, "limit", DefaultLimit)
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return cursor, limit
}
