// Package seed loads companies and job postings from YAML or JSON files.
package seed

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/google/uuid"

	"github.com/vijay-prabhu/jobboard/internal/database"
	"github.com/vijay-prabhu/jobboard/internal/similarity"
)

// File is the document layout of a seed file
type File struct {
	Companies []CompanySeed `yaml:"companies"`
	Jobs      []JobSeed     `yaml:"jobs"`
}

// CompanySeed describes one company in a seed file
type CompanySeed struct {
	ID         string   `yaml:"id"`
	Name       string   `yaml:"name"`
	Industry   string   `yaml:"industry"`
	Size       string   `yaml:"size"`
	IsFeatured bool     `yaml:"is_featured"`
	Rating     *float64 `yaml:"rating"`
	CreatedAt  string   `yaml:"created_at"`
}

// JobSeed describes one posting. Company may name a company from the same
// file instead of giving its id.
type JobSeed struct {
	ID              string   `yaml:"id"`
	CompanyID       string   `yaml:"company_id"`
	Company         string   `yaml:"company"`
	Title           string   `yaml:"title"`
	Description     string   `yaml:"description"`
	Location        string   `yaml:"location"`
	Region          string   `yaml:"region"`
	SalaryMin       *float64 `yaml:"salary_min"`
	SalaryMax       *float64 `yaml:"salary_max"`
	Salary          *string  `yaml:"salary"`
	ExperienceLevel string   `yaml:"experience_level"`
	JobType         string   `yaml:"job_type"`
	RemoteWork      string   `yaml:"remote_work"`
	Department      string   `yaml:"department"`
	Skills          []string `yaml:"skills"`
	IsFeatured      bool     `yaml:"is_featured"`
	IsPremium       bool     `yaml:"is_premium"`
	Views           int      `yaml:"views"`
	Applications    int      `yaml:"applications"`
	Status          string   `yaml:"status"`
	ExpiresAt       string   `yaml:"expires_at"`
	CreatedAt       string   `yaml:"created_at"`
}

// Load reads and parses a seed file
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a seed document. JSON input is accepted as YAML.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	return &f, nil
}

var timeLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

func parseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q", s)
}

// Build converts the document into store records. Missing ids are
// generated and missing creation times default to now. Every problem is
// reported, not just the first.
func (f *File) Build(now time.Time) ([]database.Company, []database.Job, error) {
	var errs []error

	companies := make([]database.Company, 0, len(f.Companies))
	byName := make(map[string]string, len(f.Companies))

	for i, cs := range f.Companies {
		c := database.Company{
			ID:         cs.ID,
			Name:       strings.TrimSpace(cs.Name),
			Industry:   cs.Industry,
			Size:       cs.Size,
			IsFeatured: cs.IsFeatured,
			Rating:     cs.Rating,
			CreatedAt:  now,
		}
		if c.Name == "" {
			errs = append(errs, fmt.Errorf("companies[%d]: name is required", i))
		}
		if c.ID == "" {
			c.ID = uuid.NewString()
		}
		if cs.CreatedAt != "" {
			t, err := parseTime(cs.CreatedAt)
			if err != nil {
				errs = append(errs, fmt.Errorf("companies[%d].created_at: %w", i, err))
			}
			c.CreatedAt = t
		}
		if c.Rating != nil && (*c.Rating < 0 || *c.Rating > 5) {
			errs = append(errs, fmt.Errorf("companies[%d].rating must be between 0 and 5", i))
		}

		byName[strings.ToLower(c.Name)] = c.ID
		companies = append(companies, c)
	}

	jobs := make([]database.Job, 0, len(f.Jobs))
	for i, js := range f.Jobs {
		j := database.Job{
			ID:              js.ID,
			CompanyID:       js.CompanyID,
			Title:           strings.TrimSpace(js.Title),
			Description:     js.Description,
			Location:        js.Location,
			Region:          js.Region,
			SalaryMin:       js.SalaryMin,
			SalaryMax:       js.SalaryMax,
			Salary:          js.Salary,
			ExperienceLevel: js.ExperienceLevel,
			JobType:         js.JobType,
			RemoteWork:      js.RemoteWork,
			Department:      js.Department,
			Skills:          js.Skills,
			IsFeatured:      js.IsFeatured,
			IsPremium:       js.IsPremium,
			Views:           js.Views,
			Applications:    js.Applications,
			Status:          database.JobStatus(js.Status),
			CreatedAt:       now,
		}

		if j.Title == "" {
			errs = append(errs, fmt.Errorf("jobs[%d]: title is required", i))
		}
		if j.ID == "" {
			j.ID = uuid.NewString()
		} else if id, err := similarity.ParseJobID(j.ID); err != nil {
			errs = append(errs, fmt.Errorf("jobs[%d].id: %w", i, err))
		} else {
			j.ID = id
		}
		if j.CompanyID == "" && js.Company != "" {
			id, ok := byName[strings.ToLower(strings.TrimSpace(js.Company))]
			if !ok {
				errs = append(errs, fmt.Errorf("jobs[%d]: unknown company %q", i, js.Company))
			}
			j.CompanyID = id
		}
		if j.CompanyID == "" && js.Company == "" {
			errs = append(errs, fmt.Errorf("jobs[%d]: company or company_id is required", i))
		}
		if j.Status == "" {
			j.Status = database.JobStatusActive
		} else if !j.Status.Valid() {
			errs = append(errs, fmt.Errorf("jobs[%d]: invalid status %q", i, js.Status))
		}
		if js.CreatedAt != "" {
			t, err := parseTime(js.CreatedAt)
			if err != nil {
				errs = append(errs, fmt.Errorf("jobs[%d].created_at: %w", i, err))
			}
			j.CreatedAt = t
		}
		if js.ExpiresAt != "" {
			t, err := parseTime(js.ExpiresAt)
			if err != nil {
				errs = append(errs, fmt.Errorf("jobs[%d].expires_at: %w", i, err))
			}
			j.ExpiresAt = &t
		}
		if j.Views < 0 || j.Applications < 0 {
			errs = append(errs, fmt.Errorf("jobs[%d]: views and applications must not be negative", i))
		}
		j.UpdatedAt = j.CreatedAt

		jobs = append(jobs, j)
	}

	if len(errs) > 0 {
		return nil, nil, errors.Join(errs...)
	}
	return companies, jobs, nil
}
