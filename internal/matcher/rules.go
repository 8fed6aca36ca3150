package matcher

import (
	"strings"

	"jobboard/pkg/domain"
)

// MatchesSearch reports whether a job-seeker profile satisfies a saved
// candidate search.
//
// Rules:
//   - When the search criteria carries the "Name:" sentinel, the remainder is
//     a free-text query matched case-insensitively against the seeker's first
//     name, last name, username, headline and summary. An empty query matches
//     nothing.
//   - Otherwise the criteria is a CSV of required skill names: ALL of them
//     must be present on the profile (case-insensitive).
//   - When the search sets a location, it must be a substring of the
//     profile's location text.
func MatchesSearch(profile *domain.Profile, search *domain.SavedSearch) bool {
	if query := strings.ToLower(search.NameQuery()); query != "" ||
		strings.HasPrefix(strings.ToLower(strings.TrimSpace(search.Skills)), domain.NameSentinel) {
		if query == "" {
			return false
		}

		haystacks := []string{profile.Headline, profile.Summary}
		if profile.User != nil {
			haystacks = append(haystacks,
				profile.User.FirstName,
				profile.User.LastName,
				profile.User.Username)
		}

		found := false
		for _, h := range haystacks {
			if strings.Contains(strings.ToLower(h), query) {
				found = true

				break
			}
		}
		if !found {
			return false
		}
	} else if required := search.SkillList(); len(required) > 0 {
		have := make(map[string]struct{}, len(profile.Skills))
		for _, s := range profile.Skills {
			have[strings.ToLower(s)] = struct{}{}
		}

		for _, r := range required {
			if _, ok := have[strings.ToLower(r)]; !ok {
				return false
			}
		}
	}

	if location := strings.TrimSpace(search.Location); location != "" {
		if !strings.Contains(strings.ToLower(profile.Location), strings.ToLower(location)) {
			return false
		}
	}

	return true
}
