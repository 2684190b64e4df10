package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/vijay-prabhu/jobboard/internal/database"
	apperrors "github.com/vijay-prabhu/jobboard/internal/errors"
	"github.com/vijay-prabhu/jobboard/internal/logger"
	"github.com/vijay-prabhu/jobboard/internal/similarity"
)

func (s *Server) registerHandlers() {
	s.handlers["find_similar_jobs"] = s.handleFindSimilarJobs
	s.handlers["get_job"] = s.handleGetJob
	s.handlers["list_jobs"] = s.handleListJobs
	s.handlers["search_jobs"] = s.handleSearchJobs
	s.handlers["get_stats"] = s.handleGetStats
}

// toolError keeps internal detail out of tool output
func toolError(err error) error {
	if apperrors.Is(err, apperrors.ErrTypeInternal) {
		return fmt.Errorf("internal error: %s", apperrors.PublicMessage(err, "unexpected failure"))
	}
	return fmt.Errorf("%s", apperrors.PublicMessage(err, err.Error()))
}

type findSimilarParams struct {
	JobID string `json:"job_id"`
	Limit int    `json:"limit"`
	Debug bool   `json:"debug"`
}

func (s *Server) handleFindSimilarJobs(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p findSimilarParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	if p.JobID == "" {
		return nil, fmt.Errorf("job_id is required")
	}

	result, err := s.engine.FindSimilar(ctx, p.JobID, similarity.Options{Limit: p.Limit, Debug: p.Debug})
	if err != nil {
		return nil, toolError(err)
	}

	return result, nil
}

type getJobParams struct {
	JobID string `json:"job_id"`
}

func (s *Server) handleGetJob(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p getJobParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	if p.JobID == "" {
		return nil, fmt.Errorf("job_id is required")
	}

	job, err := s.engine.Job(ctx, p.JobID)
	if err != nil {
		return nil, toolError(err)
	}

	return job, nil
}

type listJobsParams struct {
	Status    string `json:"status"`
	Region    string `json:"region"`
	SinceDays int    `json:"since_days"`
	Limit     int    `json:"limit"`
}

func (s *Server) handleListJobs(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p listJobsParams
	if params != nil {
		if err := json.Unmarshal(params, &p); err != nil {
			return nil, fmt.Errorf("invalid parameters: %w", err)
		}
	}

	opts := database.ListOptions{}

	if p.Status != "" && p.Status != "all" {
		status := database.JobStatus(p.Status)
		if !status.Valid() {
			return nil, fmt.Errorf("invalid status: %s", p.Status)
		}
		opts.Status = &status
	}

	if p.Region != "" {
		opts.Region = &p.Region
	}

	if p.SinceDays > 0 {
		since := time.Now().AddDate(0, 0, -p.SinceDays)
		opts.Since = &since
	}

	if p.Limit > 0 {
		opts.Limit = p.Limit
	} else {
		opts.Limit = 20
	}

	jobs, err := s.store.ListJobs(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	return jobs, nil
}

type searchParams struct {
	Query string `json:"query"`
}

func (s *Server) handleSearchJobs(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p searchParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	if p.Query == "" {
		return nil, fmt.Errorf("query is required")
	}

	results, err := s.store.SearchJobs(ctx, p.Query)
	if err != nil {
		return nil, fmt.Errorf("search error: %w", err)
	}
	s.logger.Debug("search jobs",
		zap.String("query", logger.TruncateForLog(p.Query, 80)),
		zap.Int("results", len(results)),
	)

	return results, nil
}

func (s *Server) handleGetStats(ctx context.Context, _ json.RawMessage) (interface{}, error) {
	stats, err := s.store.GetStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	return stats, nil
}

// Resource handlers

func (s *Server) handleReadResource(ctx context.Context, uri string) (string, error) {
	switch uri {
	case uriSummary:
		return s.getResourceSummary(ctx)
	case uriRecent:
		return s.getResourceRecent(ctx)
	default:
		return "", fmt.Errorf("unknown resource: %s", uri)
	}
}

func (s *Server) getResourceSummary(ctx context.Context) (string, error) {
	stats, err := s.store.GetStats(ctx)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, `Job Board Summary
=================
Total Jobs: %d
  - Active:  %d
  - Draft:   %d
  - Closed:  %d
  - Expired: %d

Companies: %d
`, stats.TotalJobs, stats.ActiveJobs, stats.DraftJobs, stats.ClosedJobs, stats.ExpiredJobs,
		stats.TotalCompanies)

	if len(stats.ByRegion) > 0 {
		regions := make([]string, 0, len(stats.ByRegion))
		for region := range stats.ByRegion {
			regions = append(regions, region)
		}
		sort.Strings(regions)

		b.WriteString("\nActive by region:\n")
		for _, region := range regions {
			name := region
			if name == "" {
				name = "(none)"
			}
			fmt.Fprintf(&b, "  - %s: %d\n", name, stats.ByRegion[region])
		}
	}

	return b.String(), nil
}

func (s *Server) getResourceRecent(ctx context.Context) (string, error) {
	jobs, err := s.store.ListJobs(ctx, database.ListOptions{
		Limit: 10,
	})
	if err != nil {
		return "", err
	}

	result := "Recent Postings (Last 10)\n=========================\n\n"

	if len(jobs) == 0 {
		result += "No jobs yet. Run 'jobboard import <file>' to load postings.\n"
		return result, nil
	}

	for _, j := range jobs {
		result += fmt.Sprintf("- %s | %s | %s | %s | %d day(s) ago\n",
			j.Title, j.CompanyName(), j.Region, j.Status, j.DaysSincePosted())
	}

	return result, nil
}
