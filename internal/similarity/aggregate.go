package similarity

import (
	"time"

	"github.com/vijay-prabhu/jobboard/internal/database"
)

// pair is the input every factor scorer sees
type pair struct {
	target    *database.Job
	candidate *database.Job
	now       time.Time
}

// scorerFunc returns a factor score in [0,1]. ok is false when the factor
// does not apply to this pair and must be left out of the weighted sum.
type scorerFunc func(p pair) (score float64, ok bool)

func always(fn func(p pair) float64) scorerFunc {
	return func(p pair) (float64, bool) { return fn(p), true }
}

func companyOf(j *database.Job) database.Company {
	if j.Company == nil {
		return database.Company{}
	}
	return *j.Company
}

var factorScorers = map[Factor]scorerFunc{
	FactorTitle: always(func(p pair) float64 {
		return TextSimilarity(p.target.Title, p.candidate.Title)
	}),
	FactorSkills: always(func(p pair) float64 {
		return ArraySimilarity(p.target.Skills, p.candidate.Skills, nil)
	}),
	FactorLocation: always(func(p pair) float64 {
		return LocationProximity(p.target.Location, p.candidate.Location)
	}),
	FactorSalary: always(func(p pair) float64 {
		return SalaryCompatibility(
			SalaryRange{Min: p.target.SalaryMin, Max: p.target.SalaryMax},
			SalaryRange{Min: p.candidate.SalaryMin, Max: p.candidate.SalaryMax},
		)
	}),
	FactorExperience: always(func(p pair) float64 {
		return ExperienceCompatibility(p.target.ExperienceLevel, p.candidate.ExperienceLevel)
	}),
	FactorIndustry: func(p pair) (float64, bool) {
		t, c := companyOf(p.target).Industry, companyOf(p.candidate).Industry
		if normalizeText(t) == "" || normalizeText(c) == "" {
			return 0, false
		}
		return TextSimilarity(t, c), true
	},
	FactorJobType: always(func(p pair) float64 {
		return JobTypeCompatibility(p.target.JobType, p.candidate.JobType)
	}),
	FactorDepartment: always(func(p pair) float64 {
		return TextSimilarity(p.target.Department, p.candidate.Department)
	}),
	FactorWorkMode: always(func(p pair) float64 {
		return WorkModeCompatibility(p.target.RemoteWork, p.candidate.RemoteWork)
	}),
	FactorCompanySize: func(p pair) (float64, bool) {
		return CompanySizeMatch(companyOf(p.target).Size, companyOf(p.candidate).Size)
	},
	FactorFeatured: always(func(p pair) float64 {
		return FeaturedBoost(p.candidate)
	}),
	FactorRecency: always(func(p pair) float64 {
		return Recency(p.candidate.CreatedAt, p.now)
	}),
}

// ScoredCandidate is one candidate with its composite and per-factor scores
type ScoredCandidate struct {
	Job     database.Job
	Score   float64
	Factors map[Factor]float64
	// Index is the candidate's position in the fetched pool
	Index int
}

// Aggregator combines factor scores into a composite score
type Aggregator struct {
	weights          WeightTable
	sameCompanyBoost float64
}

// NewAggregator validates the weight table and returns an Aggregator
func NewAggregator(weights WeightTable, sameCompanyBoost float64) (*Aggregator, error) {
	if err := weights.Validate(); err != nil {
		return nil, err
	}
	if sameCompanyBoost < 1 {
		sameCompanyBoost = 1
	}
	return &Aggregator{weights: weights, sameCompanyBoost: sameCompanyBoost}, nil
}

// SameCompany reports whether both postings belong to the same known company
func SameCompany(a, b *database.Job) bool {
	return a.CompanyID != "" && a.CompanyID == b.CompanyID
}

// Score computes the composite score of candidate against target
func (a *Aggregator) Score(target, candidate *database.Job, now time.Time) (float64, map[Factor]float64) {
	p := pair{target: target, candidate: candidate, now: now}
	factors := make(map[Factor]float64, len(a.weights)+2)

	total := 0.0
	for _, w := range a.weights {
		score, ok := factorScorers[w.Factor](p)
		if !ok {
			continue
		}
		score = clamp01(score)
		factors[w.Factor] = score
		total += w.Value * score
	}

	popularity := Popularity(candidate.Views, candidate.Applications)
	factors[FactorPopularity] = popularity
	total += popularityWeight * popularity

	progression := CareerProgression(target.ExperienceLevel, candidate.ExperienceLevel)
	factors[FactorCareerProgression] = progression
	total += progression

	if SameCompany(target, candidate) {
		total *= a.sameCompanyBoost
	}

	return clamp01(total), factors
}
