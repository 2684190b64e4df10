package similarity

import "sort"

// MaxPerCompany is the diversity cap for a result list of the given size
func MaxPerCompany(limit int) int {
	if limit <= 0 {
		return 0
	}
	return (limit + 1) / 2
}

// SelectDiverse ranks candidates by score, ties going to the earlier fetched
// candidate, and picks up to limit of them.
//
// By default the per-company cap is soft: a candidate over the cap is still
// admitted while fewer than limit candidates have been picked, so a pool
// dominated by one company can fill the whole list. strict makes the cap hard.
func SelectDiverse(scored []ScoredCandidate, limit int, strict bool) []ScoredCandidate {
	if limit <= 0 || len(scored) == 0 {
		return []ScoredCandidate{}
	}

	ranked := make([]ScoredCandidate, len(scored))
	copy(ranked, scored)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Index < ranked[j].Index
	})

	maxPerCompany := MaxPerCompany(limit)
	perCompany := make(map[string]int)
	selected := make([]ScoredCandidate, 0, min(limit, len(ranked)))

	for _, c := range ranked {
		if len(selected) >= limit {
			break
		}
		company := c.Job.CompanyID
		underCap := perCompany[company] < maxPerCompany
		if !underCap && (strict || len(selected) >= limit) {
			continue
		}
		perCompany[company]++
		selected = append(selected, c)
	}

	return selected
}
