package similarity

import (
	"errors"
	"fmt"
	"math"
)

// Factor names one similarity dimension
type Factor string

const (
	FactorTitle       Factor = "title"
	FactorSkills      Factor = "skills"
	FactorLocation    Factor = "location"
	FactorSalary      Factor = "salary"
	FactorExperience  Factor = "experience"
	FactorIndustry    Factor = "industry"
	FactorJobType     Factor = "jobType"
	FactorDepartment  Factor = "department"
	FactorWorkMode    Factor = "workMode"
	FactorCompanySize Factor = "companySize"
	FactorFeatured    Factor = "featured"
	FactorRecency     Factor = "recency"

	// Unweighted extras added on top of the weighted sum
	FactorPopularity        Factor = "popularity"
	FactorCareerProgression Factor = "careerProgression"
)

const (
	popularityWeight       = 0.01
	careerProgressionBonus = 0.1
	weightSumTolerance     = 1e-9
)

// Weight is one row of a WeightTable
type Weight struct {
	Factor Factor
	Value  float64
}

// WeightTable is the ordered set of weighted factors. Values sum to 1.
type WeightTable []Weight

// DefaultWeights is the production weighting
var DefaultWeights = WeightTable{
	{FactorTitle, 0.18},
	{FactorSkills, 0.16},
	{FactorLocation, 0.14},
	{FactorSalary, 0.12},
	{FactorExperience, 0.12},
	{FactorIndustry, 0.08},
	{FactorJobType, 0.06},
	{FactorDepartment, 0.05},
	{FactorWorkMode, 0.04},
	{FactorCompanySize, 0.02},
	{FactorFeatured, 0.02},
	{FactorRecency, 0.01},
}

// Sum returns the total of all weights
func (t WeightTable) Sum() float64 {
	sum := 0.0
	for _, w := range t {
		sum += w.Value
	}
	return sum
}

// Validate checks that every factor has a scorer, appears once, carries a
// weight in [0,1], and that the weights sum to 1.
func (t WeightTable) Validate() error {
	if len(t) == 0 {
		return errors.New("weight table is empty")
	}

	var errs []error
	seen := make(map[Factor]bool, len(t))
	for _, w := range t {
		if _, ok := factorScorers[w.Factor]; !ok {
			errs = append(errs, fmt.Errorf("unknown factor %q", w.Factor))
		}
		if seen[w.Factor] {
			errs = append(errs, fmt.Errorf("factor %q listed more than once", w.Factor))
		}
		seen[w.Factor] = true
		if w.Value < 0 || w.Value > 1 || math.IsNaN(w.Value) {
			errs = append(errs, fmt.Errorf("weight for %q must be between 0 and 1, got %v", w.Factor, w.Value))
		}
	}

	if sum := t.Sum(); math.Abs(sum-1) > weightSumTolerance {
		errs = append(errs, fmt.Errorf("weights must sum to 1, got %v", sum))
	}

	return errors.Join(errs...)
}
