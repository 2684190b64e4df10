package similarity

import (
	"math"
	"strings"
	"time"

	"github.com/vijay-prabhu/jobboard/internal/database"
)

// Neutral values used when one or both sides lack a categorical field
const (
	bothMissingScore  = 0.5
	oneMissingScore   = 0.3
	unrecognizedScore = 0.2
)

// TextSimilarity compares two free-text fields. Identical normalized text
// scores 1; otherwise 0.7 of word-set Jaccard plus 0.3 of edit similarity.
func TextSimilarity(a, b string) float64 {
	na, nb := normalizeText(a), normalizeText(b)
	if na == "" || nb == "" {
		return 0
	}
	if na == nb {
		return 1
	}

	j := jaccard(wordSet(na, 2), wordSet(nb, 2))

	maxLen := max(len([]rune(na)), len([]rune(nb)))
	edit := 1 - float64(levenshtein(na, nb))/float64(maxLen)

	return clamp01(0.7*j + 0.3*edit)
}

// ArraySimilarity is the Jaccard similarity of two normalized string sets.
// With weights, intersection members contribute their weight (1 when
// unlisted) instead of 1.
func ArraySimilarity(a, b []string, weights map[string]float64) float64 {
	setA, setB := normalizedSet(a), normalizedSet(b)
	if len(setA) == 0 && len(setB) == 0 {
		return 1
	}
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	if weights == nil {
		return jaccard(setA, setB)
	}

	normalizedWeights := make(map[string]float64, len(weights))
	for k, v := range weights {
		normalizedWeights[normalizeText(k)] = v
	}

	intersection, common := 0.0, 0
	for item := range setA {
		if _, ok := setB[item]; !ok {
			continue
		}
		common++
		if w, ok := normalizedWeights[item]; ok {
			intersection += w
		} else {
			intersection++
		}
	}
	union := len(setA) + len(setB) - common
	return clamp01(intersection / float64(union))
}

func normalizedSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		if n := normalizeText(item); n != "" {
			set[n] = struct{}{}
		}
	}
	return set
}

// SalaryRange is an optional salary band
type SalaryRange struct {
	Min *float64
	Max *float64
}

func (r SalaryRange) empty() bool {
	return r.Min == nil && r.Max == nil
}

// bounds treats a missing min as 0 and a missing max as unbounded
func (r SalaryRange) bounds() (float64, float64) {
	lo, hi := 0.0, math.Inf(1)
	if r.Min != nil {
		lo = *r.Min
	}
	if r.Max != nil {
		hi = *r.Max
	}
	return lo, hi
}

// ratio divides a by b where both may be infinite or zero
func ratio(a, b float64) float64 {
	switch {
	case math.IsInf(b, 1):
		if math.IsInf(a, 1) {
			return 1
		}
		return 0
	case b == 0:
		return 1
	}
	return clamp01(a / b)
}

// SalaryCompatibility scores two salary bands by overlap, relative width and
// midpoint distance.
func SalaryCompatibility(target, candidate SalaryRange) float64 {
	switch {
	case target.empty() && candidate.empty():
		return bothMissingScore
	case target.empty() || candidate.empty():
		return oneMissingScore
	}

	tMin, tMax := target.bounds()
	cMin, cMax := candidate.bounds()

	overlapStart, overlapEnd := max(tMin, cMin), min(tMax, cMax)
	if overlapEnd < overlapStart {
		return 0
	}

	tRange, cRange := tMax-tMin, cMax-cMin
	if tRange < 0 || cRange < 0 {
		// inverted band
		return 0
	}
	narrow, wide := min(tRange, cRange), max(tRange, cRange)

	overlapRatio := ratio(overlapEnd-overlapStart, narrow)
	rangeRatio := ratio(narrow, wide)

	tMid, cMid := (tMin+tMax)/2, (cMin+cMax)/2
	var midpointScore float64
	switch {
	case math.IsInf(tMid, 1) && math.IsInf(cMid, 1):
		midpointScore = 1
	case math.IsInf(tMid, 1) || math.IsInf(cMid, 1):
		midpointScore = 0
	case max(tMid, cMid) <= 0:
		midpointScore = 1
	default:
		midpointScore = 1 - clamp01(math.Abs(tMid-cMid)/max(tMid, cMid))
	}

	return clamp01(0.5*overlapRatio + 0.3*rangeRatio + 0.2*midpointScore)
}

func locationSegments(s string) []string {
	var segments []string
	for _, part := range strings.Split(s, ",") {
		if n := normalizeText(part); n != "" {
			segments = append(segments, n)
		}
	}
	return segments
}

// LocationProximity compares comma-separated locations segment by segment,
// most specific first.
func LocationProximity(a, b string) float64 {
	segA, segB := locationSegments(a), locationSegments(b)
	if len(segA) == 0 || len(segB) == 0 {
		return 0
	}

	switch {
	case strings.Join(segA, ",") == strings.Join(segB, ","):
		return 1
	case segA[0] == segB[0]:
		return 0.95
	case len(segA) >= 2 && len(segB) >= 2 && segA[1] == segB[1]:
		return 0.75
	case segA[len(segA)-1] == segB[len(segB)-1]:
		return 0.4
	}

	wordsA := wordSet(strings.Join(segA, " "), 0)
	wordsB := wordSet(strings.Join(segB, " "), 0)
	shared := 0
	for w := range wordsA {
		if _, ok := wordsB[w]; ok {
			shared++
		}
	}
	return min(0.3, 0.1*float64(shared))
}

// categorical applies the shared missing/unrecognized rules before a matrix
// lookup.
func categorical(target, candidate string, lookup func(t, c string) (float64, bool)) float64 {
	tEmpty := strings.TrimSpace(target) == ""
	cEmpty := strings.TrimSpace(candidate) == ""
	switch {
	case tEmpty && cEmpty:
		return bothMissingScore
	case tEmpty || cEmpty:
		return oneMissingScore
	}
	score, ok := lookup(target, candidate)
	if !ok {
		return unrecognizedScore
	}
	return score
}

// ExperienceCompatibility looks up the level pair in the experience matrix
func ExperienceCompatibility(target, candidate string) float64 {
	return categorical(target, candidate, func(t, c string) (float64, bool) {
		tl, ok1 := ParseLevel(t)
		cl, ok2 := ParseLevel(c)
		if !ok1 || !ok2 {
			return 0, false
		}
		return experienceMatrix[tl][cl], true
	})
}

// JobTypeCompatibility looks up the job type pair
func JobTypeCompatibility(target, candidate string) float64 {
	return categorical(target, candidate, func(t, c string) (float64, bool) {
		tt, ok1 := ParseJobType(t)
		ct, ok2 := ParseJobType(c)
		if !ok1 || !ok2 {
			return 0, false
		}
		return jobTypeMatrix[tt][ct], true
	})
}

// WorkModeCompatibility looks up the work mode pair
func WorkModeCompatibility(target, candidate string) float64 {
	return categorical(target, candidate, func(t, c string) (float64, bool) {
		tm, ok1 := ParseWorkMode(t)
		cm, ok2 := ParseWorkMode(c)
		if !ok1 || !ok2 {
			return 0, false
		}
		return workModeMatrix[tm][cm], true
	})
}

// CompanySizeMatch returns 1 for equal sizes and 0.3 otherwise. ok is false
// when either side is unknown, in which case the factor is omitted.
func CompanySizeMatch(target, candidate string) (score float64, ok bool) {
	t, c := strings.TrimSpace(target), strings.TrimSpace(candidate)
	if t == "" || c == "" {
		return 0, false
	}
	if strings.EqualFold(t, c) {
		return 1, true
	}
	return 0.3, true
}

// FeaturedBoost rewards promoted postings and well-rated companies
func FeaturedBoost(job *database.Job) float64 {
	score := 0.0
	if job.IsFeatured || job.IsPremium {
		score += 0.5
	}
	if job.Company != nil {
		if job.Company.IsFeatured {
			score += 0.3
		}
		if job.Company.Rating != nil && *job.Company.Rating > 4 {
			score += 0.2
		}
	}
	return min(1, score)
}

// Recency decays by posting age in buckets
func Recency(created, now time.Time) float64 {
	days := now.Sub(created).Hours() / 24
	switch {
	case days < 1:
		return 1
	case days < 7:
		return 0.8
	case days < 30:
		return 0.6
	case days < 90:
		return 0.4
	default:
		return 0.2
	}
}

// Popularity combines view and application counts
func Popularity(views, applications int) float64 {
	return min(1, float64(max(views, 0))/1000+float64(max(applications, 0))/100)
}

// CareerProgression returns the bonus when the candidate is a strictly
// higher level than the target.
func CareerProgression(target, candidate string) float64 {
	tl, ok1 := ParseLevel(target)
	cl, ok2 := ParseLevel(candidate)
	if ok1 && ok2 && cl > tl {
		return careerProgressionBonus
	}
	return 0
}
