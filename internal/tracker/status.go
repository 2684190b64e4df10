package tracker

import (
	"time"

	"github.com/vijay-prabhu/jobboard/internal/database"
)

// ComputeStatus determines the status a posting should have at now.
// Only active postings change: once their expiry passes they become expired.
func ComputeStatus(job *database.Job, now time.Time) database.JobStatus {
	if job.Status == database.JobStatusActive && job.IsExpired(now) {
		return database.JobStatusExpired
	}
	return job.Status
}

// ExpiresIn returns the time left before the posting expires, or false when
// it has no expiry
func ExpiresIn(job *database.Job, now time.Time) (time.Duration, bool) {
	if job.ExpiresAt == nil {
		return 0, false
	}
	return job.ExpiresAt.Sub(now), true
}
