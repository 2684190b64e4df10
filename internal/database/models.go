package database

import (
	"database/sql"
	"encoding/json"
	"time"
)

// JobStatus represents the lifecycle state of a job posting
type JobStatus string

const (
	JobStatusActive  JobStatus = "active"
	JobStatusDraft   JobStatus = "draft"
	JobStatusClosed  JobStatus = "closed"
	JobStatusExpired JobStatus = "expired"
)

// Valid reports whether s is a known status
func (s JobStatus) Valid() bool {
	switch s {
	case JobStatusActive, JobStatusDraft, JobStatusClosed, JobStatusExpired:
		return true
	}
	return false
}

// Company represents an employer
type Company struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Industry   string    `json:"industry,omitempty"`
	Size       string    `json:"size,omitempty"`
	IsFeatured bool      `json:"is_featured"`
	Rating     *float64  `json:"rating,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Job represents a job posting. Level, type and work mode are kept as the
// raw text the employer entered; the similarity engine parses them.
type Job struct {
	ID              string     `json:"id"`
	CompanyID       string     `json:"company_id"`
	Title           string     `json:"title"`
	Description     string     `json:"description,omitempty"`
	Location        string     `json:"location,omitempty"`
	Region          string     `json:"region,omitempty"`
	SalaryMin       *float64   `json:"salary_min,omitempty"`
	SalaryMax       *float64   `json:"salary_max,omitempty"`
	Salary          *string    `json:"salary,omitempty"`
	ExperienceLevel string     `json:"experience_level,omitempty"`
	JobType         string     `json:"job_type,omitempty"`
	RemoteWork      string     `json:"remote_work,omitempty"`
	Department      string     `json:"department,omitempty"`
	Skills          []string   `json:"skills"`
	IsFeatured      bool       `json:"is_featured"`
	IsPremium       bool       `json:"is_premium"`
	Views           int        `json:"views"`
	Applications    int        `json:"applications"`
	Status          JobStatus  `json:"status"`
	ExpiresAt       *time.Time `json:"expires_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	// Company is populated by reads that join the owning company
	Company *Company `json:"company,omitempty"`
}

// DaysSincePosted returns the number of days since the job was created
func (j *Job) DaysSincePosted() int {
	return int(time.Since(j.CreatedAt).Hours() / 24)
}

// IsExpired reports whether the posting's expiry is before now
func (j *Job) IsExpired(now time.Time) bool {
	return j.ExpiresAt != nil && j.ExpiresAt.Before(now)
}

// CompanyName returns the joined company name, or an empty string
func (j *Job) CompanyName() string {
	if j.Company == nil {
		return ""
	}
	return j.Company.Name
}

// Stats represents aggregate statistics
type Stats struct {
	TotalJobs      int            `json:"total_jobs"`
	ActiveJobs     int            `json:"active_jobs"`
	DraftJobs      int            `json:"draft_jobs"`
	ClosedJobs     int            `json:"closed_jobs"`
	ExpiredJobs    int            `json:"expired_jobs"`
	TotalCompanies int            `json:"total_companies"`
	ByRegion       map[string]int `json:"by_region,omitempty"`
}

// ListOptions contains options for listing jobs
type ListOptions struct {
	Status    *JobStatus
	Region    *string
	CompanyID *string
	Since     *time.Time
	Limit     int
	Offset    int
}

// CandidateQuery selects the pool of postings compared against a target
type CandidateQuery struct {
	ExcludeID string
	Region    string
	Now       time.Time
	Limit     int
}

// NullString is a helper to convert *string to sql.NullString
func NullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// NullFloat64 is a helper to convert *float64 to sql.NullFloat64
func NullFloat64(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

// NullTime is a helper to convert *time.Time to sql.NullTime
func NullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

// StringPtr converts sql.NullString to *string
func StringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}

// Float64Ptr converts sql.NullFloat64 to *float64
func Float64Ptr(nf sql.NullFloat64) *float64 {
	if !nf.Valid {
		return nil
	}
	return &nf.Float64
}

// TimePtr converts sql.NullTime to *time.Time
func TimePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	return &nt.Time
}

// encodeSkills serializes the skill list for the skills column
func encodeSkills(skills []string) (string, error) {
	if skills == nil {
		skills = []string{}
	}
	data, err := json.Marshal(skills)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// decodeSkills parses the skills column
func decodeSkills(raw string) ([]string, error) {
	if raw == "" {
		return []string{}, nil
	}
	var skills []string
	if err := json.Unmarshal([]byte(raw), &skills); err != nil {
		return nil, err
	}
	if skills == nil {
		skills = []string{}
	}
	return skills, nil
}
