package storage

import (
	"context"
	"time"

	"jobboard/pkg/domain"
)

// UserStorage defines persistence operations for accounts.
type UserStorage interface {
	// StoreUser inserts a new account and returns the stored row (including
	// generated fields). Returns ErrDuplicate when the username is taken.
	StoreUser(ctx context.Context, user domain.User) (*domain.User, error)
	// UserByID fetches an account by ID. Returns nil when not found.
	UserByID(ctx context.Context, id domain.UserID) (*domain.User, error)
	// UserByUsername fetches an account by username (case-insensitive).
	// Returns nil when not found.
	UserByUsername(ctx context.Context, username string) (*domain.User, error)
}

// MessagePage groups a page of inbox messages with an optional NextCursor
// used for pagination.
type MessagePage struct {
	Messages   []domain.Message
	NextCursor *time.Time
}

// MessageStorage defines persistence operations for direct messages.
type MessageStorage interface {
	// StoreMessage inserts a message and returns the stored row.
	StoreMessage(ctx context.Context, msg domain.Message) (*domain.Message, error)
	// InboxMessages returns a page of messages sent to the given user created
	// before the optional cursor, newest first.
	InboxMessages(ctx context.Context, recipientID domain.UserID, cursor time.Time, limit uint) (MessagePage, error)
}
