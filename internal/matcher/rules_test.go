package matcher_test

import (
	"testing"

	"jobboard/internal/matcher"
	"jobboard/pkg/domain"

	"github.com/stretchr/testify/require"
)

func seekerProfile() *domain.Profile {
	return &domain.Profile{
		Headline: "Backend engineer",
		Summary:  "Builds distributed systems in Go and Postgres.",
		Location: "Austin, TX",
		Skills:   []string{"Go", "PostgreSQL", "Docker"},
		User: &domain.User{
			Username:  "jdoe",
			FirstName: "Jane",
			LastName:  "Doe",
		},
	}
}

func TestMatchesSearch_SkillsCSV(t *testing.T) {
	profile := seekerProfile()

	tests := []struct {
		name   string
		skills string
		want   bool
	}{
		{"all present", "go, docker", true},
		{"case insensitive", "GO, postgresql", true},
		{"one missing", "go, kubernetes", false},
		{"empty criteria matches everyone", "", true},
		{"whitespace only", "  ,  ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			search := &domain.SavedSearch{Skills: tt.skills}
			require.Equal(t, tt.want, matcher.MatchesSearch(profile, search))
		})
	}
}

func TestMatchesSearch_NameQuery(t *testing.T) {
	profile := seekerProfile()

	tests := []struct {
		name   string
		skills string
		want   bool
	}{
		{"first name", "Name: jane", true},
		{"username", "name:jdoe", true},
		{"headline", "name: backend", true},
		{"summary", "name: distributed", true},
		{"no hit", "name: frontend wizard", false},
		{"empty query matches nothing", "name:", false},
		{"empty query with spaces", "Name:   ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			search := &domain.SavedSearch{Skills: tt.skills}
			require.Equal(t, tt.want, matcher.MatchesSearch(profile, search))
		})
	}
}

func TestMatchesSearch_NameQueryWithoutUser(t *testing.T) {
	profile := seekerProfile()
	profile.User = nil

	// falls back to headline/summary only
	require.True(t, matcher.MatchesSearch(profile, &domain.SavedSearch{Skills: "name: backend"}))
	require.False(t, matcher.MatchesSearch(profile, &domain.SavedSearch{Skills: "name: jdoe"}))
}

func TestMatchesSearch_Location(t *testing.T) {
	profile := seekerProfile()

	tests := []struct {
		name     string
		skills   string
		location string
		want     bool
	}{
		{"substring match", "go", "austin", true},
		{"state only", "go", "TX", true},
		{"wrong city", "go", "Denver", false},
		{"location gates name queries too", "name: jane", "Denver", false},
		{"blank location ignored", "go", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			search := &domain.SavedSearch{Skills: tt.skills, Location: tt.location}
			require.Equal(t, tt.want, matcher.MatchesSearch(profile, search))
		})
	}
}
