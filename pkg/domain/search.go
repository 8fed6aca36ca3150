package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// SearchID uniquely identifies a saved candidate search.
type SearchID uuid.UUID

// NameSentinel prefixes the skills text of a saved search whose criteria is a
// free-text name/keyword query rather than a CSV of required skills.
const NameSentinel = "name:"

// SavedSearch is a recruiter's stored candidate search criteria, optionally
// with notification-on-new-match enabled.
type SavedSearch struct {
	ID          SearchID `json:"id"`
	RecruiterID UserID   `json:"recruiterId"`
	Name        string   `json:"name"`

	// Skills is the stored criteria text. Either a CSV of required skill
	// names, or a free-text query prefixed with "Name:".
	Skills string `json:"skills"`
	// Location, when set, must be a substring of a candidate's location.
	Location string `json:"location"`

	// NotifyOnNewMatches enables notification buckets for this search.
	NotifyOnNewMatches bool `json:"notifyOnNewMatches"`

	CreatedAt    time.Time  `json:"createdAt"`
	LastRun      *time.Time `json:"lastRun,omitempty"`
	LastNotified *time.Time `json:"lastNotified,omitempty"`

	// NotificationCount is the number of notification buckets ever created
	// for this search; populated on list queries.
	NotificationCount int `json:"notificationCount"`
}

// SkillList returns the skills criteria parsed as a clean CSV list. It returns
// nil when the criteria carries the Name: sentinel.
func (s *SavedSearch) SkillList() []string {
	text := strings.TrimSpace(s.Skills)
	if text == "" || strings.HasPrefix(strings.ToLower(text), NameSentinel) {
		return nil
	}

	return SplitCSV(text)
}

// NameQuery returns the free-text query carried by the Name: sentinel, or ""
// when the criteria is a plain skills CSV.
func (s *SavedSearch) NameQuery() string {
	text := strings.TrimSpace(s.Skills)
	if !strings.HasPrefix(strings.ToLower(text), NameSentinel) {
		return ""
	}

	_, rest, _ := strings.Cut(text, ":")

	return strings.TrimSpace(rest)
}

// SplitCSV splits a comma-separated string of tokens into a clean list.
// Empty tokens are dropped, whitespace is stripped.
func SplitCSV(text string) []string {
	if text == "" {
		return nil
	}

	var out []string
	for _, t := range strings.Split(text, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}

	return out
}

// NotificationID uniquely identifies a search notification bucket.
type NotificationID uuid.UUID

// SearchNotification is an aggregated "bucket" of job-seeker users newly
// matching a saved search. At most one bucket exists per saved search; new
// matches re-open a previously read bucket.
type SearchNotification struct {
	ID       NotificationID `json:"id"`
	SearchID SearchID       `json:"searchId"`

	// CandidateIDs are the users currently aggregated into the bucket.
	CandidateIDs []UserID `json:"candidateIds"`
	// CandidatesCount mirrors len(CandidateIDs) in storage so list queries
	// don't need the join table.
	CandidatesCount int `json:"candidatesCount"`

	SentAt time.Time  `json:"sentAt"`
	IsRead bool       `json:"isRead"`
	ReadAt *time.Time `json:"readAt,omitempty"`

	// Search carries the owning saved search when loaded for display.
	Search *SavedSearch `json:"search,omitempty"`
}
