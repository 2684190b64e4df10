// Package tracker keeps stored posting statuses in line with their expiry dates.
package tracker

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/vijay-prabhu/jobboard/internal/database"
	"github.com/vijay-prabhu/jobboard/internal/logger"
)

// Store is the subset of the database the tracker reads and updates
type Store interface {
	ListJobs(ctx context.Context, opts database.ListOptions) ([]database.Job, error)
	UpdateJobStatus(ctx context.Context, id string, status database.JobStatus) error
}

// SweepResult contains the results of a sweep
type SweepResult struct {
	Checked int
	Expired []string
	Errors  []error
}

// Tracker expires active postings whose expiry date has passed
type Tracker struct {
	store  Store
	logger *zap.Logger
	now    func() time.Time
}

// New creates a new Tracker
func New(store Store, log *zap.Logger) *Tracker {
	return &Tracker{
		store:  store,
		logger: logger.WithFields(log, zap.String("component", "tracker")),
		now:    time.Now,
	}
}

// Sweep checks every active posting once. A failed update is recorded and
// the sweep continues with the next posting.
func (t *Tracker) Sweep(ctx context.Context) (*SweepResult, error) {
	active := database.JobStatusActive
	jobs, err := t.store.ListJobs(ctx, database.ListOptions{Status: &active})
	if err != nil {
		return nil, fmt.Errorf("failed to list active jobs: %w", err)
	}

	now := t.now()
	result := &SweepResult{Checked: len(jobs)}

	for i := range jobs {
		j := &jobs[i]
		status := ComputeStatus(j, now)
		if status == j.Status {
			continue
		}

		if err := t.store.UpdateJobStatus(ctx, j.ID, status); err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("job %s: %w", j.ID, err))
			continue
		}
		t.logger.Debug("job expired", logger.JobFields(j.ID, j.CompanyID, j.Region)...)
		result.Expired = append(result.Expired, j.ID)
	}

	t.logger.Info("sweep complete",
		zap.Int("checked", result.Checked),
		zap.Int("expired", len(result.Expired)),
		zap.Int("errors", len(result.Errors)),
	)

	return result, nil
}

// Run sweeps immediately and then every interval until ctx is done
func (t *Tracker) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := t.Sweep(ctx); err != nil && ctx.Err() == nil {
			t.logger.Warn("sweep failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
