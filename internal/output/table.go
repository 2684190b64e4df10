package output

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/vijay-prabhu/jobboard/internal/database"
	"github.com/vijay-prabhu/jobboard/internal/similarity"
	"github.com/vijay-prabhu/jobboard/internal/tracker"
)

// Table writes data as a formatted table to stdout
func Table(data interface{}) error {
	return TableTo(os.Stdout, data)
}

// TableTo writes data as a formatted table to the given writer
func TableTo(w io.Writer, data interface{}) error {
	switch v := data.(type) {
	case []database.Job:
		return jobsTable(w, v)
	case *database.Job:
		return jobDetail(w, v)
	case *database.Stats:
		return statsTable(w, v)
	case *similarity.Result:
		return similarTable(w, v)
	default:
		return fmt.Errorf("unsupported data type for table output: %T", data)
	}
}

func jobsTable(w io.Writer, jobs []database.Job) error {
	if len(jobs) == 0 {
		fmt.Fprintln(w, "No jobs found.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tCOMPANY\tREGION\tSTATUS\tPOSTED")
	fmt.Fprintln(tw, "--\t-----\t-------\t------\t------\t------")

	for _, j := range jobs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			shortID(j.ID),
			truncate(j.Title, 35),
			truncate(j.CompanyName(), 20),
			j.Region,
			j.Status,
			similarity.PostedAgo(j.CreatedAt, time.Now()),
		)
	}

	return tw.Flush()
}

func jobDetail(w io.Writer, j *database.Job) error {
	fmt.Fprintf(w, "Title:       %s\n", j.Title)
	fmt.Fprintf(w, "ID:          %s\n", j.ID)

	if j.Company != nil {
		fmt.Fprintf(w, "Company:     %s", j.Company.Name)
		var extra []string
		if j.Company.Industry != "" {
			extra = append(extra, j.Company.Industry)
		}
		if j.Company.Size != "" {
			extra = append(extra, j.Company.Size)
		}
		if j.Company.Rating != nil {
			extra = append(extra, fmt.Sprintf("rated %.1f", *j.Company.Rating))
		}
		if len(extra) > 0 {
			fmt.Fprintf(w, " (%s)", strings.Join(extra, ", "))
		}
		fmt.Fprintln(w)
	}

	if j.Location != "" {
		fmt.Fprintf(w, "Location:    %s\n", j.Location)
	}
	fmt.Fprintf(w, "Region:      %s\n", j.Region)
	fmt.Fprintf(w, "Salary:      %s\n", similarity.NewFormatter(0).Salary(j))

	for _, field := range [][2]string{
		{"Level", j.ExperienceLevel},
		{"Type", j.JobType},
		{"Work mode", j.RemoteWork},
		{"Department", j.Department},
	} {
		if field[1] != "" {
			fmt.Fprintf(w, "%-12s %s\n", field[0]+":", field[1])
		}
	}

	if len(j.Skills) > 0 {
		fmt.Fprintf(w, "Skills:      %s\n", strings.Join(j.Skills, ", "))
	}

	fmt.Fprintf(w, "Status:      %s\n", j.Status)
	now := time.Now()
	fmt.Fprintf(w, "Posted:      %s (%s)\n", j.CreatedAt.Format("Jan 02, 2006"), similarity.PostedAgo(j.CreatedAt, now))
	if left, ok := tracker.ExpiresIn(j, now); ok {
		fmt.Fprintf(w, "Expires:     %s (%s)\n", j.ExpiresAt.Format("Jan 02, 2006"), expiresLabel(left))
	}
	fmt.Fprintf(w, "Views:       %d\n", j.Views)
	fmt.Fprintf(w, "Applicants:  %d\n", j.Applications)

	if j.Description != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, wordWrap(j.Description, 78))
	}

	return nil
}

func similarTable(w io.Writer, r *similarity.Result) error {
	if len(r.Records) == 0 {
		fmt.Fprintf(w, "No similar jobs found (%d candidates considered).\n", r.Metadata.TotalCandidates)
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("#", "Score", "Title", "Company", "Location", "Salary", "Posted")

	rows := make([][]string, 0, len(r.Records))
	for i, rec := range r.Records {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			rec.SimilarityScore,
			truncate(rec.Title, 35),
			truncate(rec.CompanyName, 20),
			truncate(rec.Location, 25),
			rec.Salary,
			rec.PostedAgo,
		})
	}
	if err := table.Bulk(rows); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\n%d of %d candidates, max %d per company, %dms\n",
		r.Metadata.ReturnedJobs, r.Metadata.TotalCandidates, r.Metadata.MaxPerCompany, r.Metadata.ProcessingTimeMs)

	if r.Debug != nil {
		return debugTables(w, r)
	}
	return nil
}

// debugTables prints the ranking trace and a factor breakdown per record
func debugTables(w io.Writer, r *similarity.Result) error {
	fmt.Fprintln(w, "\nSteps:")
	for i, step := range r.Debug.Steps {
		fmt.Fprintf(w, "  %d. %s\n", i+1, step)
	}

	factors := make([]string, 0, len(r.Debug.Weights)+2)
	for f := range r.Debug.Weights {
		factors = append(factors, string(f))
	}
	sort.Slice(factors, func(i, j int) bool {
		wi := r.Debug.Weights[similarity.Factor(factors[i])]
		wj := r.Debug.Weights[similarity.Factor(factors[j])]
		if wi != wj {
			return wi > wj
		}
		return factors[i] < factors[j]
	})
	factors = append(factors, string(similarity.FactorPopularity), string(similarity.FactorCareerProgression))

	header := []any{"Factor", "Weight"}
	for i := range r.Records {
		header = append(header, fmt.Sprintf("#%d", i+1))
	}

	fmt.Fprintln(w)
	table := tablewriter.NewWriter(w)
	table.Header(header...)

	rows := make([][]string, 0, len(factors))
	for _, f := range factors {
		weight := "extra"
		if v, ok := r.Debug.Weights[similarity.Factor(f)]; ok {
			weight = fmt.Sprintf("%.2f", v)
		}
		row := []string{f, weight}
		for _, rec := range r.Records {
			if v, ok := rec.FactorScores[similarity.Factor(f)]; ok {
				row = append(row, fmt.Sprintf("%.2f", v))
			} else {
				row = append(row, "-")
			}
		}
		rows = append(rows, row)
	}
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}

func statsTable(w io.Writer, s *database.Stats) error {
	fmt.Fprintln(w, "Job Board Statistics")
	fmt.Fprintln(w, strings.Repeat("-", 30))
	fmt.Fprintf(w, "Total jobs:             %d\n", s.TotalJobs)
	fmt.Fprintf(w, "Active:                 %d\n", s.ActiveJobs)
	fmt.Fprintf(w, "Draft:                  %d\n", s.DraftJobs)
	fmt.Fprintf(w, "Closed:                 %d\n", s.ClosedJobs)
	fmt.Fprintf(w, "Expired:                %d\n", s.ExpiredJobs)
	fmt.Fprintf(w, "Companies:              %d\n", s.TotalCompanies)

	if len(s.ByRegion) > 0 {
		regions := make([]string, 0, len(s.ByRegion))
		for region := range s.ByRegion {
			regions = append(regions, region)
		}
		sort.Strings(regions)

		fmt.Fprintln(w)
		fmt.Fprintln(w, "Active by region")
		for _, region := range regions {
			name := region
			if name == "" {
				name = "(none)"
			}
			fmt.Fprintf(w, "  %-20s  %d\n", name, s.ByRegion[region])
		}
	}

	return nil
}

func expiresLabel(left time.Duration) string {
	switch days := int(left.Hours() / 24); {
	case left <= 0:
		return "expired"
	case days == 0:
		return "in under a day"
	case days == 1:
		return "in 1 day"
	default:
		return fmt.Sprintf("in %d days", days)
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

// wordWrap wraps text at the specified width
func wordWrap(text string, width int) string {
	var result strings.Builder
	lines := strings.Split(text, "\n")

	for _, line := range lines {
		if len(line) <= width {
			result.WriteString(line)
			result.WriteString("\n")
			continue
		}

		words := strings.Fields(line)
		if len(words) == 0 {
			result.WriteString("\n")
			continue
		}

		currentLine := words[0]
		for _, word := range words[1:] {
			if len(currentLine)+1+len(word) <= width {
				currentLine += " " + word
			} else {
				result.WriteString(currentLine)
				result.WriteString("\n")
				currentLine = word
			}
		}
		result.WriteString(currentLine)
		result.WriteString("\n")
	}

	return strings.TrimSuffix(result.String(), "\n")
}
