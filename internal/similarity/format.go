package similarity

import (
	"fmt"
	"math"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/vijay-prabhu/jobboard/internal/database"
)

const (
	postedDateLayout   = "Jan 02, 2006"
	salaryNotDisclosed = "not disclosed"
)

// CompanySummary is the company block of a Record
type CompanySummary struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Industry string   `json:"industry,omitempty"`
	Size     string   `json:"size,omitempty"`
	Rating   *float64 `json:"rating,omitempty"`
}

// Record is the display form of a recommended job
type Record struct {
	ID              string         `json:"id"`
	Title           string         `json:"title"`
	CompanyID       string         `json:"companyId"`
	CompanyName     string         `json:"companyName"`
	Location        string         `json:"location"`
	Salary          string         `json:"salary"`
	JobType         string         `json:"jobType"`
	ExperienceLevel string         `json:"experienceLevel"`
	Department      string         `json:"department"`
	Skills          []string       `json:"skills"`
	RemoteWork      string         `json:"remoteWork"`
	PostedDate      string         `json:"postedDate"`
	PostedAgo       string         `json:"postedAgo"`
	Applications    int            `json:"applications"`
	Views           int            `json:"views"`
	Description     string         `json:"description"`
	Company         CompanySummary `json:"company"`
	SimilarityScore string         `json:"similarityScore"`

	// Debug only
	Score        *float64           `json:"score,omitempty"`
	FactorScores map[Factor]float64 `json:"factorScores,omitempty"`
}

// Formatter turns scored candidates into display records
type Formatter struct {
	descriptionLength int
	printer           *message.Printer
}

// NewFormatter returns a Formatter truncating descriptions to descriptionLength runes
func NewFormatter(descriptionLength int) *Formatter {
	return &Formatter{
		descriptionLength: descriptionLength,
		printer:           message.NewPrinter(language.English),
	}
}

// Format builds the record for c, attaching raw scores when debug is set
func (f *Formatter) Format(c ScoredCandidate, now time.Time, debug bool) Record {
	j := c.Job
	company := companyOf(&j)

	skills := j.Skills
	if skills == nil {
		skills = []string{}
	}

	r := Record{
		ID:              j.ID,
		Title:           j.Title,
		CompanyID:       j.CompanyID,
		CompanyName:     company.Name,
		Location:        j.Location,
		Salary:          f.Salary(&j),
		JobType:         j.JobType,
		ExperienceLevel: j.ExperienceLevel,
		Department:      j.Department,
		Skills:          skills,
		RemoteWork:      j.RemoteWork,
		PostedDate:      j.CreatedAt.Format(postedDateLayout),
		PostedAgo:       PostedAgo(j.CreatedAt, now),
		Applications:    max(j.Applications, 0),
		Views:           max(j.Views, 0),
		Description:     Truncate(j.Description, f.descriptionLength),
		Company: CompanySummary{
			ID:       j.CompanyID,
			Name:     company.Name,
			Industry: company.Industry,
			Size:     company.Size,
			Rating:   company.Rating,
		},
		SimilarityScore: FormatScore(c.Score),
	}

	if debug {
		score := c.Score
		r.Score = &score
		r.FactorScores = c.Factors
	}

	return r
}

// Salary returns the display salary: the explicit text when present,
// otherwise a range built from min and max.
func (f *Formatter) Salary(j *database.Job) string {
	if j.Salary != nil && strings.TrimSpace(*j.Salary) != "" {
		return strings.TrimSpace(*j.Salary)
	}

	switch {
	case j.SalaryMin != nil && j.SalaryMax != nil:
		return f.printer.Sprintf("%d – %d", amount(*j.SalaryMin), amount(*j.SalaryMax))
	case j.SalaryMin != nil:
		return f.printer.Sprintf("%d+", amount(*j.SalaryMin))
	case j.SalaryMax != nil:
		return f.printer.Sprintf("up to %d", amount(*j.SalaryMax))
	}
	return salaryNotDisclosed
}

func amount(v float64) int64 {
	return int64(math.Round(v))
}

// FormatScore renders a [0,1] score as a one-decimal percentage
func FormatScore(score float64) string {
	return fmt.Sprintf("%.1f%%", score*100)
}

// Truncate shortens s to limit runes, appending "..." when cut
func Truncate(s string, limit int) string {
	runes := []rune(s)
	if limit <= 0 || len(runes) <= limit {
		return s
	}
	return strings.TrimRightFunc(string(runes[:limit]), func(r rune) bool { return r == ' ' }) + "..."
}

// PostedAgo describes how long ago created was relative to now
func PostedAgo(created, now time.Time) string {
	days := int(now.Sub(created).Hours() / 24)
	switch {
	case days <= 0:
		return "today"
	case days == 1:
		return "yesterday"
	case days < 7:
		return fmt.Sprintf("%d days ago", days)
	case days < 30:
		weeks := days / 7
		if weeks == 1 {
			return "1 week ago"
		}
		return fmt.Sprintf("%d weeks ago", weeks)
	default:
		months := days / 30
		if months == 1 {
			return "1 month ago"
		}
		return fmt.Sprintf("%d months ago", months)
	}
}
