package domain

import (
	"time"

	"github.com/google/uuid"
)

// ProfileID uniquely identifies a job-seeker profile.
type ProfileID uuid.UUID

// Profile is a job seeker's public profile. Every job-seeker account owns
// exactly one, created automatically at signup.
type Profile struct {
	ID     ProfileID `json:"id"`
	UserID UserID    `json:"userId"`

	Headline string `json:"headline"`
	Summary  string `json:"summary"`
	// Location is free text, matched by substring in candidate searches.
	Location string `json:"location"`

	// Visibility flags control which sections appear on the public view.
	ShowHeadline bool `json:"showHeadline"`
	ShowLocation bool `json:"showLocation"`
	ShowSummary  bool `json:"showSummary"`
	ShowSkills   bool `json:"showSkills"`

	// Skills are the profile's skill names (shared Skill table, unique by
	// name case-insensitively).
	Skills []string `json:"skills"`

	Educations  []Education  `json:"educations"`
	Experiences []Experience `json:"experiences"`
	Links       []Link       `json:"links"`

	// User carries the owning account when loaded for display or matching.
	User *User `json:"user,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Education is a schooling entry on a profile.
type Education struct {
	ID           uuid.UUID  `json:"id"`
	School       string     `json:"school"`
	Degree       string     `json:"degree"`
	FieldOfStudy string     `json:"fieldOfStudy"`
	StartDate    *time.Time `json:"startDate,omitempty"`
	EndDate      *time.Time `json:"endDate,omitempty"`
	Current      bool       `json:"current"`
	Description  string     `json:"description"`
	Show         bool       `json:"show"`
}

// Experience is a work-history entry on a profile.
type Experience struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	Current     bool       `json:"current"`
	Description string     `json:"description"`
	Show        bool       `json:"show"`
}

// LinkKind categorizes an external profile link.
type LinkKind string

const (
	LinkKindWebsite   LinkKind = "WEBSITE"
	LinkKindLinkedIn  LinkKind = "LINKEDIN"
	LinkKindGitHub    LinkKind = "GITHUB"
	LinkKindPortfolio LinkKind = "PORTFOLIO"
	LinkKindOther     LinkKind = "OTHER"
)

// Link is an external URL attached to a profile.
type Link struct {
	ID    uuid.UUID `json:"id"`
	Kind  LinkKind  `json:"kind"`
	Label string    `json:"label"`
	URL   string    `json:"url"`
	Show  bool      `json:"show"`
}
