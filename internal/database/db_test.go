package database

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

var errRollback = errors.New("rollback")

func setupTestDB(t *testing.T) (*DB, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "jobboard-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}

	dbPath := filepath.Join(tmpDir, "test.db")
	db, err := Open(dbPath)
	if err != nil {
		os.RemoveAll(tmpDir)
		t.Fatalf("failed to open database: %v", err)
	}

	cleanup := func() {
		db.Close()
		os.RemoveAll(tmpDir)
	}

	return db, cleanup
}

func createTestCompany(t *testing.T, db *DB, name string) *Company {
	t.Helper()

	rating := 4.5
	c := &Company{Name: name, Industry: "Software", Size: "51-200", Rating: &rating}
	if err := db.CreateCompany(context.Background(), c); err != nil {
		t.Fatalf("CreateCompany failed: %v", err)
	}
	return c
}

func createTestJob(t *testing.T, db *DB, j *Job) *Job {
	t.Helper()

	if err := db.CreateJob(context.Background(), j); err != nil {
		t.Fatalf("CreateJob failed: %v", err)
	}
	return j
}

func TestOpen(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	if db == nil {
		t.Fatal("expected non-nil database")
	}

	for _, table := range []string{"companies", "jobs"} {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&count)
		if err != nil {
			t.Fatalf("failed to query tables: %v", err)
		}
		if count != 1 {
			t.Errorf("expected %s table to exist", table)
		}
	}

	if err := db.Health(context.Background()); err != nil {
		t.Errorf("Health failed: %v", err)
	}
}

func TestCompanyCRUD(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	c := createTestCompany(t, db, "Acme")
	if c.ID == "" {
		t.Fatal("expected ID to be set")
	}

	got, err := db.GetCompany(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetCompany failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected company, got nil")
	}
	if got.Name != "Acme" {
		t.Errorf("expected name Acme, got %s", got.Name)
	}
	if got.Rating == nil || *got.Rating != 4.5 {
		t.Errorf("expected rating 4.5, got %v", got.Rating)
	}

	missing, err := db.GetCompany(ctx, "nonexistent")
	if err != nil {
		t.Fatalf("GetCompany failed: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for missing company")
	}
}

func TestJobCRUD(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	c := createTestCompany(t, db, "Acme")

	salaryMin := 90000.0
	salaryMax := 120000.0
	j := createTestJob(t, db, &Job{
		CompanyID:       c.ID,
		Title:           "Senior Go Engineer",
		Description:     "Build services",
		Location:        "Berlin, Berlin, Germany",
		Region:          "emea",
		SalaryMin:       &salaryMin,
		SalaryMax:       &salaryMax,
		ExperienceLevel: "senior",
		JobType:         "full-time",
		RemoteWork:      "hybrid",
		Department:      "Engineering",
		Skills:          []string{"Go", "SQL"},
		Views:           10,
	})

	if j.ID == "" {
		t.Fatal("expected ID to be set")
	}
	if j.Status != JobStatusActive {
		t.Errorf("expected default status active, got %s", j.Status)
	}

	got, err := db.GetJob(ctx, j.ID)
	if err != nil {
		t.Fatalf("GetJob failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected job, got nil")
	}
	if got.Title != j.Title {
		t.Errorf("expected title %s, got %s", j.Title, got.Title)
	}
	if len(got.Skills) != 2 || got.Skills[0] != "Go" {
		t.Errorf("unexpected skills: %v", got.Skills)
	}
	if got.SalaryMin == nil || *got.SalaryMin != salaryMin {
		t.Errorf("expected salary_min %v, got %v", salaryMin, got.SalaryMin)
	}
	if got.Salary != nil {
		t.Errorf("expected nil salary string, got %v", *got.Salary)
	}
	if got.Company == nil || got.Company.Name != "Acme" {
		t.Errorf("expected joined company Acme, got %+v", got.Company)
	}
	if got.CompanyName() != "Acme" {
		t.Errorf("CompanyName() = %s", got.CompanyName())
	}

	// Update status
	if err := db.UpdateJobStatus(ctx, j.ID, JobStatusClosed); err != nil {
		t.Fatalf("UpdateJobStatus failed: %v", err)
	}
	got, _ = db.GetJob(ctx, j.ID)
	if got.Status != JobStatusClosed {
		t.Errorf("expected status closed, got %s", got.Status)
	}

	if err := db.UpdateJobStatus(ctx, j.ID, JobStatus("bogus")); err == nil {
		t.Error("expected error for invalid status")
	}
	if err := db.UpdateJobStatus(ctx, "nonexistent", JobStatusActive); err == nil {
		t.Error("expected error for missing job")
	}

	missing, err := db.GetJob(ctx, "nonexistent")
	if err != nil {
		t.Fatalf("GetJob failed: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for missing job")
	}
}

func TestListCandidateJobs(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	c := createTestCompany(t, db, "Acme")
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(24 * time.Hour)

	target := createTestJob(t, db, &Job{CompanyID: c.ID, Title: "Target", Region: "emea", CreatedAt: now.Add(-time.Minute)})
	older := createTestJob(t, db, &Job{CompanyID: c.ID, Title: "Older", Region: "emea", CreatedAt: now.Add(-48 * time.Hour)})
	newer := createTestJob(t, db, &Job{CompanyID: c.ID, Title: "Newer", Region: "emea", CreatedAt: now.Add(-2 * time.Hour), ExpiresAt: &future})
	createTestJob(t, db, &Job{CompanyID: c.ID, Title: "Expired", Region: "emea", ExpiresAt: &past})
	createTestJob(t, db, &Job{CompanyID: c.ID, Title: "Draft", Region: "emea", Status: JobStatusDraft})
	createTestJob(t, db, &Job{CompanyID: c.ID, Title: "Other region", Region: "apac"})

	jobs, err := db.ListCandidateJobs(ctx, CandidateQuery{
		ExcludeID: target.ID,
		Region:    "emea",
		Now:       now,
		Limit:     200,
	})
	if err != nil {
		t.Fatalf("ListCandidateJobs failed: %v", err)
	}

	if len(jobs) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(jobs))
	}
	if jobs[0].ID != newer.ID || jobs[1].ID != older.ID {
		t.Errorf("expected most recent first, got %s then %s", jobs[0].Title, jobs[1].Title)
	}
	for _, j := range jobs {
		if j.ID == target.ID {
			t.Error("target must not be among candidates")
		}
	}

	// Bound
	jobs, err = db.ListCandidateJobs(ctx, CandidateQuery{ExcludeID: target.ID, Region: "emea", Now: now, Limit: 1})
	if err != nil {
		t.Fatalf("ListCandidateJobs failed: %v", err)
	}
	if len(jobs) != 1 {
		t.Errorf("expected 1 candidate with limit 1, got %d", len(jobs))
	}

	// Empty region is a successful empty result
	jobs, err = db.ListCandidateJobs(ctx, CandidateQuery{ExcludeID: target.ID, Region: "latam", Now: now, Limit: 200})
	if err != nil {
		t.Fatalf("ListCandidateJobs failed: %v", err)
	}
	if jobs == nil || len(jobs) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", jobs)
	}
}

func TestListJobsFilters(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	acme := createTestCompany(t, db, "Acme")
	globex := createTestCompany(t, db, "Globex")

	createTestJob(t, db, &Job{CompanyID: acme.ID, Title: "A1", Region: "emea"})
	createTestJob(t, db, &Job{CompanyID: acme.ID, Title: "A2", Region: "apac", Status: JobStatusClosed})
	createTestJob(t, db, &Job{CompanyID: globex.ID, Title: "G1", Region: "emea"})

	active := JobStatusActive
	emea := "emea"

	tests := []struct {
		name     string
		opts     ListOptions
		expected int
	}{
		{"all", ListOptions{}, 3},
		{"active", ListOptions{Status: &active}, 2},
		{"region", ListOptions{Region: &emea}, 2},
		{"company", ListOptions{CompanyID: &acme.ID}, 2},
		{"limit", ListOptions{Limit: 1}, 1},
		{"limit offset", ListOptions{Limit: 2, Offset: 2}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jobs, err := db.ListJobs(ctx, tt.opts)
			if err != nil {
				t.Fatalf("ListJobs failed: %v", err)
			}
			if len(jobs) != tt.expected {
				t.Errorf("expected %d jobs, got %d", tt.expected, len(jobs))
			}
		})
	}
}

func TestSearchJobs(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	acme := createTestCompany(t, db, "Acme Robotics")
	createTestJob(t, db, &Job{CompanyID: acme.ID, Title: "Backend Engineer", Skills: []string{"Go"}})
	createTestJob(t, db, &Job{CompanyID: acme.ID, Title: "Designer", Department: "Product"})

	tests := []struct {
		query    string
		expected int
	}{
		{"backend", 1},
		{"PRODUCT", 1},
		{"robotics", 2},
		{"go", 1},
		{"nothing-matches", 0},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			jobs, err := db.SearchJobs(ctx, tt.query)
			if err != nil {
				t.Fatalf("SearchJobs failed: %v", err)
			}
			if len(jobs) != tt.expected {
				t.Errorf("expected %d results for %q, got %d", tt.expected, tt.query, len(jobs))
			}
		})
	}
}

func TestGetStats(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	c := createTestCompany(t, db, "Acme")
	createTestJob(t, db, &Job{CompanyID: c.ID, Title: "A", Region: "emea"})
	createTestJob(t, db, &Job{CompanyID: c.ID, Title: "B", Region: "emea"})
	createTestJob(t, db, &Job{CompanyID: c.ID, Title: "C", Region: "apac", Status: JobStatusDraft})

	stats, err := db.GetStats(ctx)
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}

	if stats.TotalJobs != 3 {
		t.Errorf("expected 3 total, got %d", stats.TotalJobs)
	}
	if stats.ActiveJobs != 2 {
		t.Errorf("expected 2 active, got %d", stats.ActiveJobs)
	}
	if stats.DraftJobs != 1 {
		t.Errorf("expected 1 draft, got %d", stats.DraftJobs)
	}
	if stats.TotalCompanies != 1 {
		t.Errorf("expected 1 company, got %d", stats.TotalCompanies)
	}
	if stats.ByRegion["emea"] != 2 {
		t.Errorf("expected 2 active in emea, got %d", stats.ByRegion["emea"])
	}
}

func TestTransaction(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	c := createTestCompany(t, db, "Acme")

	// Rolled back on error
	_ = db.Transaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM companies WHERE id = ?", c.ID); err != nil {
			return err
		}
		return errRollback
	})

	got, err := db.GetCompany(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetCompany failed: %v", err)
	}
	if got == nil {
		t.Error("expected company to survive rolled back transaction")
	}
}

func TestWithTx(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	// A failed insert rolls back the company written before it
	err := db.WithTx(ctx, func(tx *Tx) error {
		c := &Company{Name: "Acme"}
		if err := tx.CreateCompany(ctx, c); err != nil {
			return err
		}
		got, err := tx.GetCompany(ctx, c.ID)
		if err != nil || got == nil {
			t.Errorf("GetCompany inside tx = %v, %v", got, err)
		}
		return tx.CreateJob(ctx, &Job{CompanyID: "missing-company", Title: "Orphan"})
	})
	if err == nil {
		t.Fatal("expected foreign key error from WithTx")
	}

	stats, err := db.GetStats(ctx)
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	if stats.TotalCompanies != 0 || stats.TotalJobs != 0 {
		t.Errorf("expected empty store after rollback, got %d companies and %d jobs", stats.TotalCompanies, stats.TotalJobs)
	}

	// Committed on success
	var jobID string
	err = db.WithTx(ctx, func(tx *Tx) error {
		c := &Company{Name: "Globex"}
		if err := tx.CreateCompany(ctx, c); err != nil {
			return err
		}
		j := &Job{CompanyID: c.ID, Title: "Engineer"}
		if err := tx.CreateJob(ctx, j); err != nil {
			return err
		}
		jobID = j.ID
		got, err := tx.GetJob(ctx, j.ID)
		if err != nil || got == nil || got.CompanyName() != "Globex" {
			t.Errorf("GetJob inside tx = %v, %v", got, err)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WithTx failed: %v", err)
	}

	got, err := db.GetJob(ctx, jobID)
	if err != nil || got == nil {
		t.Errorf("expected committed job, got %v, %v", got, err)
	}
}

func TestSkillsEncoding(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  string
	}{
		{"nil", nil, "[]"},
		{"empty", []string{}, "[]"},
		{"values", []string{"go", "sql"}, `["go","sql"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := encodeSkills(tt.input)
			if err != nil {
				t.Fatalf("encodeSkills failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("encodeSkills() = %s, want %s", got, tt.want)
			}
		})
	}

	if _, err := decodeSkills("not json"); err == nil {
		t.Error("expected error for invalid skills json")
	}
	decoded, err := decodeSkills("")
	if err != nil || decoded == nil || len(decoded) != 0 {
		t.Errorf("decodeSkills(\"\") = %v, %v", decoded, err)
	}
}
