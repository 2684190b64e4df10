package seed

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/vijay-prabhu/jobboard/internal/database"
)

const sampleYAML = `
companies:
  - id: 3b241101-e2bb-4255-8caf-4136c566a962
    name: Acme
    industry: Software
    size: 51-200
    rating: 4.2
  - name: Globex
jobs:
  - id: 6f1c2a3b-9d4e-4f00-8a00-000000000001
    company: acme
    title: Backend Engineer
    location: Berlin, Germany
    region: emea
    salary_min: 70000
    salary_max: 90000
    experience_level: Senior
    job_type: Full Time
    remote_work: hybrid
    skills: [go, postgres]
    created_at: "2026-02-20"
    expires_at: "2026-06-01T00:00:00Z"
  - company: Globex
    title: Data Analyst
    region: emea
    status: draft
`

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestParseAndBuild(t *testing.T) {
	f, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)
	require.Len(t, f.Companies, 2)
	require.Len(t, f.Jobs, 2)

	companies, jobs, err := f.Build(testNow)
	require.NoError(t, err)

	assert.Equal(t, "3b241101-e2bb-4255-8caf-4136c566a962", companies[0].ID)
	require.NotNil(t, companies[0].Rating)
	assert.InDelta(t, 4.2, *companies[0].Rating, 1e-9)
	assert.NotEmpty(t, companies[1].ID)
	assert.Equal(t, testNow, companies[1].CreatedAt)

	backend := jobs[0]
	assert.Equal(t, companies[0].ID, backend.CompanyID)
	assert.Equal(t, database.JobStatusActive, backend.Status)
	assert.Equal(t, []string{"go", "postgres"}, backend.Skills)
	assert.Equal(t, time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC), backend.CreatedAt)
	require.NotNil(t, backend.ExpiresAt)
	assert.Equal(t, 2026, backend.ExpiresAt.Year())
	require.NotNil(t, backend.SalaryMax)
	assert.Equal(t, 90000.0, *backend.SalaryMax)

	analyst := jobs[1]
	assert.NotEmpty(t, analyst.ID)
	assert.Equal(t, companies[1].ID, analyst.CompanyID)
	assert.Equal(t, database.JobStatusDraft, analyst.Status)
	assert.Equal(t, testNow, analyst.CreatedAt)
}

func TestParseJSON(t *testing.T) {
	f, err := Parse([]byte(`{"companies":[{"name":"Initech"}],"jobs":[{"company":"Initech","title":"QA","views":12}]}`))
	require.NoError(t, err)

	_, jobs, err := f.Build(testNow)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, 12, jobs[0].Views)
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"missing title", `{"companies":[{"name":"A"}],"jobs":[{"company":"A"}]}`, "title is required"},
		{"unknown company", `{"jobs":[{"company":"Nope","title":"X"}]}`, `unknown company "Nope"`},
		{"no company", `{"jobs":[{"title":"X"}]}`, "company or company_id is required"},
		{"bad status", `{"jobs":[{"company_id":"c","title":"X","status":"paused"}]}`, `invalid status "paused"`},
		{"bad id", `{"jobs":[{"id":"nope","company_id":"c","title":"X"}]}`, "jobs[0].id"},
		{"v7 id", `{"jobs":[{"id":"017f22e2-79b0-7cc3-98c4-dc0c0c07398f","company_id":"c","title":"X"}]}`, "jobs[0].id"},
		{"undashed id", `{"jobs":[{"id":"6f1c2a3b9d4e4f008a00000000000001","company_id":"c","title":"X"}]}`, "jobs[0].id"},
		{"urn id", `{"jobs":[{"id":"urn:uuid:6f1c2a3b-9d4e-4f00-8a00-000000000001","company_id":"c","title":"X"}]}`, "jobs[0].id"},
		{"bad date", `{"jobs":[{"company_id":"c","title":"X","created_at":"yesterday"}]}`, "jobs[0].created_at"},
		{"bad rating", `{"companies":[{"name":"A","rating":7}]}`, "rating must be between 0 and 5"},
		{"nameless company", `{"companies":[{"industry":"x"}]}`, "name is required"},
		{"negative counters", `{"jobs":[{"company_id":"c","title":"X","views":-1}]}`, "must not be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Parse([]byte(tt.doc))
			require.NoError(t, err)
			_, _, err = f.Build(testNow)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseInvalid(t *testing.T) {
	_, err := Parse([]byte("companies: [unterminated"))
	assert.Error(t, err)
}

func TestImport(t *testing.T) {
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	core, logs := observer.New(zapcore.InfoLevel)
	importer := NewImporter(db, zap.New(core))
	importer.now = func() time.Time { return testNow }

	f, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)

	ctx := context.Background()
	summary, err := importer.Import(ctx, f)
	require.NoError(t, err)
	assert.Equal(t, &Summary{CompaniesCreated: 2, JobsCreated: 2}, summary)

	job, err := db.GetJob(ctx, "6f1c2a3b-9d4e-4f00-8a00-000000000001")
	require.NoError(t, err)
	require.NotNil(t, job)
	assert.Equal(t, "Acme", job.CompanyName())
	assert.Equal(t, []string{"go", "postgres"}, job.Skills)

	// Generated ids differ on every Build, so only the fixed ids are skipped.
	summary, err = importer.Import(ctx, f)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.CompaniesSkipped)
	assert.Equal(t, 1, summary.JobsSkipped)

	assert.Equal(t, 2, logs.FilterMessage("import complete").Len())
}

func TestImportRollsBackOnFailure(t *testing.T) {
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	core, logs := observer.New(zapcore.InfoLevel)
	importer := NewImporter(db, zap.New(core))
	importer.now = func() time.Time { return testNow }

	f, err := Parse([]byte(`
companies:
  - name: Acme
jobs:
  - company: Acme
    title: Backend Engineer
  - company_id: 9b2f7c1e-4d3a-4b5c-8e6f-0a1b2c3d4e5f
    title: Orphan
`))
	require.NoError(t, err)

	ctx := context.Background()
	summary, err := importer.Import(ctx, f)
	require.Error(t, err)
	assert.Nil(t, summary)
	assert.Contains(t, err.Error(), `failed to create job "Orphan"`)

	stats, err := db.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalCompanies)
	assert.Equal(t, 0, stats.TotalJobs)
	assert.Equal(t, 0, logs.FilterMessage("import complete").Len())
}

func TestBuildLowercasesJobID(t *testing.T) {
	f, err := Parse([]byte(`{"jobs":[{"id":"6F1C2A3B-9D4E-4F00-8A00-000000000001","company_id":"c","title":"X"}]}`))
	require.NoError(t, err)

	_, jobs, err := f.Build(testNow)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "6f1c2a3b-9d4e-4f00-8a00-000000000001", jobs[0].ID)
}
