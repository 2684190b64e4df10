package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// jobColumns is the select list shared by every job read; it joins the owning company
const jobColumns = `
	j.id, j.company_id, j.title, j.description, j.location, j.region,
	j.salary_min, j.salary_max, j.salary, j.experience_level, j.job_type,
	j.remote_work, j.department, j.skills, j.is_featured, j.is_premium,
	j.views, j.applications, j.status, j.expires_at, j.created_at, j.updated_at,
	c.id, c.name, c.industry, c.size, c.is_featured, c.rating, c.created_at
`

const jobFrom = `FROM jobs j LEFT JOIN companies c ON c.id = j.company_id`

// rowScanner is satisfied by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanJob(row rowScanner) (*Job, error) {
	j := &Job{}
	var salaryMin, salaryMax sql.NullFloat64
	var salary sql.NullString
	var skills string
	var expiresAt sql.NullTime

	var companyID, companyName, industry, size sql.NullString
	var companyFeatured sql.NullBool
	var rating sql.NullFloat64
	var companyCreated sql.NullTime

	if err := row.Scan(
		&j.ID, &j.CompanyID, &j.Title, &j.Description, &j.Location, &j.Region,
		&salaryMin, &salaryMax, &salary, &j.ExperienceLevel, &j.JobType,
		&j.RemoteWork, &j.Department, &skills, &j.IsFeatured, &j.IsPremium,
		&j.Views, &j.Applications, &j.Status, &expiresAt, &j.CreatedAt, &j.UpdatedAt,
		&companyID, &companyName, &industry, &size, &companyFeatured, &rating, &companyCreated,
	); err != nil {
		return nil, err
	}

	j.SalaryMin = Float64Ptr(salaryMin)
	j.SalaryMax = Float64Ptr(salaryMax)
	j.Salary = StringPtr(salary)
	j.ExpiresAt = TimePtr(expiresAt)

	decoded, err := decodeSkills(skills)
	if err != nil {
		return nil, fmt.Errorf("invalid skills for job %s: %w", j.ID, err)
	}
	j.Skills = decoded

	if companyID.Valid {
		j.Company = &Company{
			ID:         companyID.String,
			Name:       companyName.String,
			Industry:   industry.String,
			Size:       size.String,
			IsFeatured: companyFeatured.Bool,
			Rating:     Float64Ptr(rating),
			CreatedAt:  companyCreated.Time,
		}
	}

	return j, nil
}

func scanJobs(rows *sql.Rows) ([]Job, error) {
	defer rows.Close()

	var jobs []Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *j)
	}

	return jobs, rows.Err()
}

// querier is satisfied by *sql.DB and *sql.Tx
type querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// CreateCompany inserts a new company
func (db *DB) CreateCompany(ctx context.Context, c *Company) error {
	return createCompany(ctx, db.DB, c)
}

// GetCompany retrieves a company by ID
func (db *DB) GetCompany(ctx context.Context, id string) (*Company, error) {
	return getCompany(ctx, db.DB, id)
}

// CreateJob inserts a new job posting
func (db *DB) CreateJob(ctx context.Context, j *Job) error {
	return createJob(ctx, db.DB, j)
}

// GetJob retrieves a job by ID together with its company
func (db *DB) GetJob(ctx context.Context, id string) (*Job, error) {
	return getJob(ctx, db.DB, id)
}

func createCompany(ctx context.Context, q querier, c *Company) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	c.CreatedAt = c.CreatedAt.UTC()

	_, err := q.ExecContext(ctx, `
		INSERT INTO companies (id, name, industry, size, is_featured, rating, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, c.ID, c.Name, c.Industry, c.Size, c.IsFeatured, NullFloat64(c.Rating), c.CreatedAt)
	return err
}

func getCompany(ctx context.Context, q querier, id string) (*Company, error) {
	c := &Company{}
	var rating sql.NullFloat64

	err := q.QueryRowContext(ctx, `
		SELECT id, name, industry, size, is_featured, rating, created_at
		FROM companies WHERE id = ?
	`, id).Scan(&c.ID, &c.Name, &c.Industry, &c.Size, &c.IsFeatured, &rating, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	c.Rating = Float64Ptr(rating)
	return c, nil
}

func createJob(ctx context.Context, q querier, j *Job) error {
	if j.ID == "" {
		j.ID = uuid.New().String()
	}
	if j.Status == "" {
		j.Status = JobStatusActive
	}
	if j.CreatedAt.IsZero() {
		j.CreatedAt = time.Now()
	}
	j.CreatedAt = j.CreatedAt.UTC()
	j.UpdatedAt = time.Now().UTC()
	if j.ExpiresAt != nil {
		expires := j.ExpiresAt.UTC()
		j.ExpiresAt = &expires
	}

	skills, err := encodeSkills(j.Skills)
	if err != nil {
		return fmt.Errorf("failed to encode skills: %w", err)
	}

	_, err = q.ExecContext(ctx, `
		INSERT INTO jobs (
			id, company_id, title, description, location, region,
			salary_min, salary_max, salary, experience_level, job_type,
			remote_work, department, skills, is_featured, is_premium,
			views, applications, status, expires_at, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		j.ID, j.CompanyID, j.Title, j.Description, j.Location, j.Region,
		NullFloat64(j.SalaryMin), NullFloat64(j.SalaryMax), NullString(j.Salary),
		j.ExperienceLevel, j.JobType, j.RemoteWork, j.Department, skills,
		j.IsFeatured, j.IsPremium, j.Views, j.Applications, j.Status,
		NullTime(j.ExpiresAt), j.CreatedAt, j.UpdatedAt,
	)
	return err
}

func getJob(ctx context.Context, q querier, id string) (*Job, error) {
	row := q.QueryRowContext(ctx, `SELECT `+jobColumns+` `+jobFrom+` WHERE j.id = ?`, id)

	j, err := scanJob(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return j, nil
}

// UpdateJobStatus changes the status of a job
func (db *DB) UpdateJobStatus(ctx context.Context, id string, status JobStatus) error {
	if !status.Valid() {
		return fmt.Errorf("invalid job status: %s", status)
	}

	result, err := db.ExecContext(ctx, `
		UPDATE jobs SET status = ?, updated_at = ? WHERE id = ?
	`, status, time.Now().UTC(), id)
	if err != nil {
		return err
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("job not found: %s", id)
	}
	return nil
}

// ListJobs retrieves jobs with optional filters, newest first
func (db *DB) ListJobs(ctx context.Context, opts ListOptions) ([]Job, error) {
	query := `SELECT ` + jobColumns + ` ` + jobFrom + ` WHERE 1=1`
	args := []interface{}{}

	if opts.Status != nil {
		query += " AND j.status = ?"
		args = append(args, *opts.Status)
	}
	if opts.Region != nil {
		query += " AND j.region = ?"
		args = append(args, *opts.Region)
	}
	if opts.CompanyID != nil {
		query += " AND j.company_id = ?"
		args = append(args, *opts.CompanyID)
	}
	if opts.Since != nil {
		query += " AND j.created_at >= ?"
		args = append(args, opts.Since.UTC())
	}

	query += " ORDER BY j.created_at DESC"

	if opts.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", opts.Limit)
		if opts.Offset > 0 {
			query += fmt.Sprintf(" OFFSET %d", opts.Offset)
		}
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return scanJobs(rows)
}

// ListCandidateJobs returns the pool of postings a target is compared against:
// active, not expired, same region, excluding the target, newest first, bounded.
func (db *DB) ListCandidateJobs(ctx context.Context, q CandidateQuery) ([]Job, error) {
	if q.Limit <= 0 {
		return []Job{}, nil
	}
	now := q.Now
	if now.IsZero() {
		now = time.Now()
	}

	rows, err := db.QueryContext(ctx, `SELECT `+jobColumns+` `+jobFrom+`
		WHERE j.id != ?
		  AND j.status = ?
		  AND (j.expires_at IS NULL OR j.expires_at >= ?)
		  AND j.region = ?
		ORDER BY j.created_at DESC
		LIMIT ?
	`, q.ExcludeID, JobStatusActive, now.UTC(), q.Region, q.Limit)
	if err != nil {
		return nil, err
	}

	jobs, err := scanJobs(rows)
	if err != nil {
		return nil, err
	}
	if jobs == nil {
		jobs = []Job{}
	}
	return jobs, nil
}

// SearchJobs searches jobs by text across title, department, location, skills and company
func (db *DB) SearchJobs(ctx context.Context, query string) ([]Job, error) {
	searchPattern := "%" + strings.ToLower(query) + "%"

	rows, err := db.QueryContext(ctx, `SELECT `+jobColumns+` `+jobFrom+`
		WHERE LOWER(j.title) LIKE ?
		   OR LOWER(j.department) LIKE ?
		   OR LOWER(j.location) LIKE ?
		   OR LOWER(j.skills) LIKE ?
		   OR LOWER(c.name) LIKE ?
		ORDER BY j.created_at DESC
	`, searchPattern, searchPattern, searchPattern, searchPattern, searchPattern)
	if err != nil {
		return nil, err
	}
	return scanJobs(rows)
}

// GetStats retrieves aggregate statistics
func (db *DB) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{ByRegion: make(map[string]int)}

	// Get job counts by status
	if err := db.QueryRowContext(ctx, `
		SELECT
			COUNT(*) as total,
			COALESCE(SUM(CASE WHEN status = 'active' THEN 1 ELSE 0 END), 0) as active,
			COALESCE(SUM(CASE WHEN status = 'draft' THEN 1 ELSE 0 END), 0) as draft,
			COALESCE(SUM(CASE WHEN status = 'closed' THEN 1 ELSE 0 END), 0) as closed,
			COALESCE(SUM(CASE WHEN status = 'expired' THEN 1 ELSE 0 END), 0) as expired
		FROM jobs
	`).Scan(
		&stats.TotalJobs, &stats.ActiveJobs, &stats.DraftJobs,
		&stats.ClosedJobs, &stats.ExpiredJobs,
	); err != nil {
		return nil, err
	}

	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM companies").Scan(&stats.TotalCompanies); err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT region, COUNT(*) FROM jobs WHERE status = 'active' GROUP BY region
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var region string
		var count int
		if err := rows.Scan(&region, &count); err != nil {
			return nil, err
		}
		stats.ByRegion[region] = count
	}

	return stats, rows.Err()
}
