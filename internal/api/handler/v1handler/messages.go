package v1handler

import (
	"net/http"

	"jobboard/pkg/domain"
	"jobboard/pkg/serrors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SendMessageRequest is the body of POST /messages.
type SendMessageRequest struct {
	RecipientID uuid.UUID `json:"recipientId" binding:"required"`
	Content     string    `json:"content" binding:"required"`
}

// MessagePage is a page of received messages.
type MessagePage struct {
	Items      []domain.Message `json:"items"`
	NextCursor string           `json:"nextCursor,omitempty"`
}

// SendMessage delivers a direct message to another user.
func (h *Handler) SendMessage(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, serrors.Wrap(serrors.ErrBadRequest, err, "invalid request body"))

		return
	}

	message, err := h.deps.Messages.Send(c.Request.Context(),
		currentUser(c),
		domain.UserID(req.RecipientID),
		req.Content)
	if err != nil {
		respondError(c, err)

		return
	}

	c.JSON(http.StatusCreated, message)
}

// Inbox returns a page of the caller's received messages, newest first.
func (h *Handler) Inbox(c *gin.Context) {
	cursor, limit := pageQuery(c)

	items, next, err := h.deps.Messages.Inbox(c.Request.Context(), currentUser(c), cursor, limit)
	if err != nil {
		respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, MessagePage{Items: items, NextCursor: next})
}
