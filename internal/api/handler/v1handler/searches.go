package v1handler

import (
	"net/http"

	"jobboard/internal/searches"
	"jobboard/pkg/domain"
	"jobboard/pkg/serrors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CandidatePage is a page of matching job-seeker profiles.
type CandidatePage struct {
	Items      []domain.Profile `json:"items"`
	NextCursor string           `json:"nextCursor,omitempty"`
}

// SearchCandidates returns a page of job-seeker profiles matching the query
// parameters. Recruiter only.
func (h *Handler) SearchCandidates(c *gin.Context) {
	cursor, limit := pageQuery(c)

	params := searches.CandidateParams{
		Query:    c.Query("q"),
		Skills:   csvQuery(c, "skills"),
		Location: c.Query("location"),
	}
	if raw := c.Query("savedSearchId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			respondError(c, serrors.With(serrors.ErrBadRequest, "invalid savedSearchId"))

			return
		}

		searchID := domain.SearchID(id)
		params.SavedSearchID = &searchID
	}

	items, next, err := h.deps.Searches.SearchCandidates(c.Request.Context(), currentUser(c), params, cursor, limit)
	if err != nil {
		respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, CandidatePage{Items: items, NextCursor: next})
}

// SaveSearchRequest is the body of POST /searches.
type SaveSearchRequest struct {
	Name               string `json:"name" binding:"required"`
	Skills             string `json:"skills"`
	Location           string `json:"location"`
	NotifyOnNewMatches bool   `json:"notifyOnNewMatches"`
}

// SaveSearch stores the caller's current candidate criteria.
func (h *Handler) SaveSearch(c *gin.Context) {
	var req SaveSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, serrors.Wrap(serrors.ErrBadRequest, err, "invalid request body"))

		return
	}

	search, err := h.deps.Searches.Save(c.Request.Context(), currentUser(c), searches.SaveParams{
		Name:               req.Name,
		Skills:             req.Skills,
		Location:           req.Location,
		NotifyOnNewMatches: req.NotifyOnNewMatches,
	})
	if err != nil {
		respondError(c, err)

		return
	}

	c.JSON(http.StatusCreated, search)
}

// ListSearches returns the caller's saved searches.
func (h *Handler) ListSearches(c *gin.Context) {
	items, err := h.deps.Searches.List(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// DeleteSearch removes a saved search and its notifications.
func (h *Handler) DeleteSearch(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.deps.Searches.Delete(c.Request.Context(), currentUser(c), domain.SearchID(id)); err != nil {
		respondError(c, err)

		return
	}

	c.Status(http.StatusNoContent)
}

// ToggleSearchNotify flips a saved search's notify-on-new-matches flag.
func (h *Handler) ToggleSearchNotify(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	search, err := h.deps.Searches.ToggleNotify(c.Request.Context(), currentUser(c), domain.SearchID(id))
	if err != nil {
		respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, search)
}

// NotificationList is the caller's buckets plus the unread count.
type NotificationList struct {
	Items       []domain.SearchNotification `json:"items"`
	UnreadCount int64                       `json:"unreadCount"`
}

// Notifications returns the caller's notification buckets, unread first.
func (h *Handler) Notifications(c *gin.Context) {
	items, unread, err := h.deps.Searches.Notifications(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, NotificationList{Items: items, UnreadCount: unread})
}

// OpenNotification marks a bucket read and returns it with its candidates.
func (h *Handler) OpenNotification(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	notification, err := h.deps.Searches.OpenNotification(c.Request.Context(),
		currentUser(c),
		domain.NotificationID(id))
	if err != nil {
		respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, notification)
}

// MarkNotificationRead marks one bucket read.
func (h *Handler) MarkNotificationRead(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.deps.Searches.MarkRead(c.Request.Context(), currentUser(c), domain.NotificationID(id)); err != nil {
		respondError(c, err)

		return
	}

	c.Status(http.StatusNoContent)
}

// MarkAllNotificationsRead marks every unread bucket read.
func (h *Handler) MarkAllNotificationsRead(c *gin.Context) {
	updated, err := h.deps.Searches.MarkAllRead(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": updated})
}
