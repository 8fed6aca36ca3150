package recommend

import (
	"strings"

	"jobboard/pkg/domain"
)

// Skill-overlap weights for the seeker-facing job list.
const (
	jobRequiredWeight = 2
	jobNiceWeight     = 1
)

// Weights for the recruiter-facing candidate list. Required skills dominate;
// location and title-keyword hits nudge the ordering.
const (
	candidateRequiredWeight = 10
	candidateNiceWeight     = 3
	locationExactBonus      = 5
	locationRemoteBonus     = 2
)

func lowerSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[strings.ToLower(n)] = struct{}{}
	}

	return set
}

func overlap(names []string, set map[string]struct{}) []string {
	var out []string
	for _, n := range names {
		if _, ok := set[strings.ToLower(n)]; ok {
			out = append(out, n)
		}
	}

	return out
}

// ScoreJobForSeeker scores a posting against a seeker's skill set.
func ScoreJobForSeeker(job *domain.Job, seekerSkills []string) (score int, matchedRequired, matchedNice []string) {
	skills := lowerSet(seekerSkills)
	matchedRequired = overlap(job.RequiredSkills, skills)
	matchedNice = overlap(job.NiceToHaveSkills, skills)

	score = len(matchedRequired)*jobRequiredWeight + len(matchedNice)*jobNiceWeight

	return score, matchedRequired, matchedNice
}

// ScoreCandidateForJob scores a profile against a posting: skill overlap,
// a location bonus (exact match, or a smaller one when the job is remote)
// and one point per job-title word contained in the seeker's summary.
func ScoreCandidateForJob(job *domain.Job, profile *domain.Profile) int {
	skills := lowerSet(profile.Skills)

	score := len(overlap(job.RequiredSkills, skills))*candidateRequiredWeight +
		len(overlap(job.NiceToHaveSkills, skills))*candidateNiceWeight

	if profile.Location != "" && job.Location != "" {
		if strings.EqualFold(profile.Location, job.Location) {
			score += locationExactBonus
		} else if job.WorkType == domain.WorkTypeRemote {
			score += locationRemoteBonus
		}
	}

	if profile.Summary != "" && job.Title != "" {
		summary := strings.ToLower(profile.Summary)
		for _, word := range strings.Fields(strings.ToLower(job.Title)) {
			if strings.Contains(summary, word) {
				score++
			}
		}
	}

	return score
}
