package similarity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vijay-prabhu/jobboard/internal/database"
)

func ptr[T any](v T) *T { return &v }

func TestTextSimilarity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{name: "identical after normalization", a: "Senior Go Engineer!", b: "  senior   go engineer", want: 1},
		{name: "punctuation removed not spaced", a: "Back-end Developer", b: "backend developer", want: 1},
		{name: "empty left", a: "", b: "Engineer", want: 0},
		{name: "punctuation only", a: "!!!", b: "Engineer", want: 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, TextSimilarity(tt.a, tt.b), 1e-9)
		})
	}

	t.Run("partial overlap is between 0 and 1", func(t *testing.T) {
		got := TextSimilarity("Senior Backend Engineer", "Backend Engineer")
		assert.Greater(t, got, 0.5)
		assert.Less(t, got, 1.0)
	})

	t.Run("short tokens ignored by jaccard", func(t *testing.T) {
		// no token is long enough, so only the edit score counts: 4 edits over 5 runes
		got := TextSimilarity("ab cd", "cd ab")
		assert.InDelta(t, 0.3*(1-4.0/5.0), got, 1e-9)
	})
}

func TestLevenshtein(t *testing.T) {
	assert.Equal(t, 3, levenshtein("kitten", "sitting"))
	assert.Equal(t, 0, levenshtein("go", "go"))
	assert.Equal(t, 4, levenshtein("", "rust"))
	assert.Equal(t, 1, levenshtein("café", "cafe"))
}

func TestArraySimilarity(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1.0, ArraySimilarity(nil, []string{}, nil))
	assert.Equal(t, 0.0, ArraySimilarity([]string{"go"}, nil, nil))
	assert.Equal(t, 1.0, ArraySimilarity([]string{"Go", "SQL"}, []string{"sql", "go."}, nil))
	assert.InDelta(t, 1.0/3.0, ArraySimilarity([]string{"go", "sql"}, []string{"go", "k8s"}, nil), 1e-9)

	t.Run("weighted intersection", func(t *testing.T) {
		weights := map[string]float64{"Go": 2}
		got := ArraySimilarity([]string{"go", "sql"}, []string{"go", "k8s"}, weights)
		assert.InDelta(t, 2.0/3.0, got, 1e-9)
	})

	t.Run("weighted capped at 1", func(t *testing.T) {
		weights := map[string]float64{"go": 10}
		got := ArraySimilarity([]string{"go"}, []string{"go"}, weights)
		assert.Equal(t, 1.0, got)
	})
}

func TestSalaryCompatibility(t *testing.T) {
	t.Parallel()

	t.Run("both missing is neutral", func(t *testing.T) {
		assert.Equal(t, 0.5, SalaryCompatibility(SalaryRange{}, SalaryRange{}))
	})

	t.Run("one side missing", func(t *testing.T) {
		assert.Equal(t, 0.3, SalaryCompatibility(SalaryRange{Min: ptr(100.0)}, SalaryRange{}))
		assert.Equal(t, 0.3, SalaryCompatibility(SalaryRange{}, SalaryRange{Max: ptr(100.0)}))
	})

	t.Run("full containment scores above 0.8", func(t *testing.T) {
		target := SalaryRange{Min: ptr(800000.0), Max: ptr(1200000.0)}
		candidate := SalaryRange{Min: ptr(900000.0), Max: ptr(1100000.0)}
		got := SalaryCompatibility(target, candidate)
		assert.Greater(t, got, 0.8)
		assert.InDelta(t, 0.85, got, 1e-9)
	})

	t.Run("identical ranges", func(t *testing.T) {
		r := SalaryRange{Min: ptr(50000.0), Max: ptr(70000.0)}
		assert.InDelta(t, 1.0, SalaryCompatibility(r, r), 1e-9)
	})

	t.Run("disjoint ranges", func(t *testing.T) {
		a := SalaryRange{Min: ptr(10.0), Max: ptr(20.0)}
		b := SalaryRange{Min: ptr(30.0), Max: ptr(40.0)}
		assert.Equal(t, 0.0, SalaryCompatibility(a, b))
	})

	t.Run("open ended ranges stay in range", func(t *testing.T) {
		cases := [][2]SalaryRange{
			{{Min: ptr(100.0)}, {Min: ptr(200.0)}},
			{{Min: ptr(100.0)}, {Min: ptr(150.0), Max: ptr(300.0)}},
			{{Max: ptr(100.0)}, {Max: ptr(100.0)}},
			{{Min: ptr(100.0), Max: ptr(100.0)}, {Min: ptr(100.0), Max: ptr(100.0)}},
			{{Min: ptr(0.0), Max: ptr(0.0)}, {Min: ptr(0.0), Max: ptr(0.0)}},
		}
		for _, c := range cases {
			got := SalaryCompatibility(c[0], c[1])
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 1.0)
		}
	})
}

func TestLocationProximity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{name: "exact", a: "Berlin, Berlin, Germany", b: "berlin,  berlin , germany", want: 1},
		{name: "same city different state", a: "Springfield, Illinois, USA", b: "Springfield, Missouri, USA", want: 0.95},
		{name: "same state", a: "Oakland, California, USA", b: "San Jose, California, USA", want: 0.75},
		{name: "same country", a: "Austin, Texas, USA", b: "Boston, Massachusetts, USA", want: 0.4},
		{name: "shared words", a: "New York", b: "New Delhi", want: 0.1},
		{name: "nothing shared", a: "Paris, France", b: "Tokyo, Japan", want: 0},
		{name: "empty", a: "", b: "Tokyo", want: 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, LocationProximity(tt.a, tt.b), 1e-9)
		})
	}
}

func TestCategoricalFactors(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0.5, ExperienceCompatibility("", " "))
	assert.Equal(t, 0.3, ExperienceCompatibility("senior", ""))
	assert.Equal(t, 0.2, ExperienceCompatibility("senior", "wizard"))
	assert.Equal(t, 1.0, ExperienceCompatibility("Senior", "sr"))
	assert.Equal(t, 0.8, ExperienceCompatibility("entry", "junior"))
	assert.Equal(t, 0.7, ExperienceCompatibility("junior", "entry-level"))
	assert.Equal(t, 0.1, ExperienceCompatibility("entry", "senior"))

	assert.Equal(t, 0.6, JobTypeCompatibility("Full Time", "contract"))
	assert.Equal(t, 0.6, JobTypeCompatibility("contract", "full_time"))
	assert.Equal(t, 1.0, JobTypeCompatibility("intern", "internship"))
	assert.Equal(t, 0.2, JobTypeCompatibility("gig", "contract"))

	assert.Equal(t, 0.2, WorkModeCompatibility("onsite", "remote"))
	assert.Equal(t, 0.8, WorkModeCompatibility("remote", "hybrid"))
	assert.Equal(t, 0.7, WorkModeCompatibility("hybrid", "in-office"))
}

func TestMatricesDiagonal(t *testing.T) {
	for i := range experienceMatrix {
		assert.Equal(t, 1.0, experienceMatrix[i][i], "experience %s", Level(i))
	}
	for i := range jobTypeMatrix {
		assert.Equal(t, 1.0, jobTypeMatrix[i][i], "job type %s", JobType(i))
	}
	for i := range workModeMatrix {
		assert.Equal(t, 1.0, workModeMatrix[i][i], "work mode %s", WorkMode(i))
	}
}

func TestParseLabels(t *testing.T) {
	level, ok := ParseLevel("Mid Level")
	require.True(t, ok)
	assert.Equal(t, LevelMid, level)
	assert.Equal(t, "mid", level.String())

	_, ok = ParseLevel("guru")
	assert.False(t, ok)
	assert.Equal(t, "unknown", LevelUnknown.String())

	jt, ok := ParseJobType("PART_TIME")
	require.True(t, ok)
	assert.Equal(t, "part-time", jt.String())

	wm, ok := ParseWorkMode("On Site")
	require.True(t, ok)
	assert.Equal(t, WorkModeOnSite, wm)
}

func TestCompanySizeMatch(t *testing.T) {
	score, ok := CompanySizeMatch("51-200", "51-200")
	assert.True(t, ok)
	assert.Equal(t, 1.0, score)

	score, ok = CompanySizeMatch("51-200", "1000+")
	assert.True(t, ok)
	assert.Equal(t, 0.3, score)

	_, ok = CompanySizeMatch("", "1000+")
	assert.False(t, ok)
}

func TestFeaturedBoost(t *testing.T) {
	assert.Equal(t, 0.0, FeaturedBoost(&database.Job{}))
	assert.Equal(t, 0.5, FeaturedBoost(&database.Job{IsPremium: true}))

	full := &database.Job{
		IsFeatured: true,
		Company:    &database.Company{IsFeatured: true, Rating: ptr(4.5)},
	}
	assert.InDelta(t, 1.0, FeaturedBoost(full), 1e-9)

	rating4 := &database.Job{Company: &database.Company{Rating: ptr(4.0)}}
	assert.Equal(t, 0.0, FeaturedBoost(rating4))
}

func TestRecency(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	day := 24 * time.Hour

	tests := []struct {
		age  time.Duration
		want float64
	}{
		{time.Hour, 1},
		{3 * day, 0.8},
		{10 * day, 0.6},
		{60 * day, 0.4},
		{200 * day, 0.2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Recency(now.Add(-tt.age), now), "age %s", tt.age)
	}
}

func TestPopularityAndProgression(t *testing.T) {
	assert.InDelta(t, 0.6, Popularity(500, 10), 1e-9)
	assert.Equal(t, 1.0, Popularity(5000, 0))
	assert.Equal(t, 0.0, Popularity(-10, -1))

	assert.Equal(t, 0.1, CareerProgression("mid", "senior"))
	assert.Equal(t, 0.0, CareerProgression("senior", "senior"))
	assert.Equal(t, 0.0, CareerProgression("senior", "junior"))
	assert.Equal(t, 0.0, CareerProgression("", "senior"))
}
