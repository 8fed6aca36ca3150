// Package messages implements direct messages between users.
package messages

import (
	"context"
	"fmt"
	"strings"
	"time"

	"jobboard/pkg/domain"
	"jobboard/pkg/serrors"
	"jobboard/pkg/storage"
)

//go:generate mockgen -package mockmessages -source=messages.go -destination=mock/mockmessages.go *
type Messages interface {
	// Send delivers a message to another user.
	Send(ctx context.Context,
		sender *domain.User,
		recipientID domain.UserID,
		content string) (*domain.Message, error)
	// Inbox returns a page of the user's received messages, newest first.
	Inbox(ctx context.Context,
		user *domain.User,
		cursor string,
		limit uint) ([]domain.Message, string, error)
}

// service is the concrete implementation of the Messages interface.
type service struct {
	storage storage.Storage
}

// Send delivers a message. Senders cannot message themselves.
func (s service) Send(ctx context.Context,
	sender *domain.User,
	recipientID domain.UserID,
	content string) (*domain.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, serrors.With(serrors.ErrBadRequest, "content is required")
	}
	if recipientID == sender.ID {
		return nil, serrors.With(serrors.ErrBadRequest, "cannot message yourself")
	}

	recipient, err := s.storage.UserByID(ctx, recipientID)
	if err != nil {
		return nil, fmt.Errorf("could not get recipient: %w", err)
	}
	if recipient == nil {
		return nil, serrors.With(serrors.ErrNotFound, "recipient not found")
	}

	message, err := s.storage.StoreMessage(ctx, domain.Message{
		SenderID:    sender.ID,
		RecipientID: recipientID,
		Content:     content,
	})
	if err != nil {
		return nil, fmt.Errorf("could not store message: %w", err)
	}

	return message, nil
}

// Inbox returns a page of received messages.
func (s service) Inbox(ctx context.Context,
	user *domain.User,
	cursor string,
	limit uint) ([]domain.Message, string, error) {
	var cursorTime time.Time
	if cursor != "" {
		t, err := time.Parse(time.RFC3339, cursor)
		if err != nil {
			return nil, "", serrors.Wrap(serrors.ErrBadRequest, err, "invalid cursor")
		}
		cursorTime = t
	}

	page, err := s.storage.InboxMessages(ctx, user.ID, cursorTime, limit)
	if err != nil {
		return nil, "", fmt.Errorf("could not get inbox: %w", err)
	}

	var next string
	if page.NextCursor != nil {
		next = page.NextCursor.Format(time.RFC3339)
	}

	return page.Messages, next, nil
}

// New creates a new Messages instance backed by the provided storage.
func New(storage storage.Storage) Messages {
	return &service{storage: storage}
}
