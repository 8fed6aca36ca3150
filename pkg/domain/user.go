package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserID uniquely identifies a user within the system.
// It is a thin wrapper around uuid.UUID to provide type safety at the domain layer.
type UserID uuid.UUID

// AccountType controls which features an account can access.
type AccountType string

const (
	// AccountTypeJobSeeker marks accounts that maintain a profile and apply to jobs.
	AccountTypeJobSeeker AccountType = "JOB_SEEKER"
	// AccountTypeRecruiter marks accounts that post jobs and search candidates.
	AccountTypeRecruiter AccountType = "RECRUITER"
)

// User is an account on the marketplace, either a job seeker or a recruiter.
type User struct {
	// ID is the unique identifier of the user.
	ID UserID `json:"id"`
	// Username is the unique login name (compared case-insensitively).
	Username string `json:"username"`
	// Email is the contact address supplied at signup.
	Email string `json:"email"`
	// FirstName and LastName are optional display names, also searched by
	// recruiter free-text candidate queries.
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash string `json:"-"`
	// AccountType gates recruiter-only and seeker-only operations.
	AccountType AccountType `json:"accountType"`
	// CreatedAt is the signup time.
	CreatedAt time.Time `json:"createdAt"`
}

// IsJobSeeker reports whether the account can maintain a profile and apply to jobs.
func (u *User) IsJobSeeker() bool { return u.AccountType == AccountTypeJobSeeker }

// IsRecruiter reports whether the account can post jobs and search candidates.
func (u *User) IsRecruiter() bool { return u.AccountType == AccountTypeRecruiter }

// MessageID uniquely identifies a direct message.
type MessageID uuid.UUID

// Message is a direct message between two users.
type Message struct {
	ID          MessageID  `json:"id"`
	SenderID    UserID     `json:"senderId"`
	RecipientID UserID     `json:"recipientId"`
	Content     string     `json:"content"`
	SentAt      time.Time  `json:"sentAt"`
	ReadAt      *time.Time `json:"readAt,omitempty"`
}
