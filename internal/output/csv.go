package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/vijay-prabhu/jobboard/internal/database"
	"github.com/vijay-prabhu/jobboard/internal/similarity"
)

var jobCSVHeader = []string{
	"id", "title", "company", "region", "location", "status",
	"experience_level", "job_type", "remote_work", "department",
	"salary_min", "salary_max", "skills", "views", "applications",
	"created_at", "expires_at",
}

// CSVTo writes jobs or similar-job records as CSV
func CSVTo(w io.Writer, data interface{}) error {
	cw := csv.NewWriter(w)

	switch v := data.(type) {
	case []database.Job:
		if err := cw.Write(jobCSVHeader); err != nil {
			return err
		}
		for i := range v {
			if err := cw.Write(jobRecord(&v[i])); err != nil {
				return err
			}
		}
	case *similarity.Result:
		if err := cw.Write([]string{"id", "title", "company", "location", "salary", "similarity_score", "posted_ago"}); err != nil {
			return err
		}
		for _, r := range v.Records {
			if err := cw.Write([]string{r.ID, r.Title, r.CompanyName, r.Location, r.Salary, r.SimilarityScore, r.PostedAgo}); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("unsupported data type for csv output: %T", data)
	}

	cw.Flush()
	return cw.Error()
}

func jobRecord(j *database.Job) []string {
	expires := ""
	if j.ExpiresAt != nil {
		expires = j.ExpiresAt.UTC().Format(time.RFC3339)
	}
	return []string{
		j.ID,
		j.Title,
		j.CompanyName(),
		j.Region,
		j.Location,
		string(j.Status),
		j.ExperienceLevel,
		j.JobType,
		j.RemoteWork,
		j.Department,
		optionalFloat(j.SalaryMin),
		optionalFloat(j.SalaryMax),
		strings.Join(j.Skills, ";"),
		strconv.Itoa(j.Views),
		strconv.Itoa(j.Applications),
		j.CreatedAt.UTC().Format(time.RFC3339),
		expires,
	}
}

func optionalFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
