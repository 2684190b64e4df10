package seed

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/vijay-prabhu/jobboard/internal/database"
	"github.com/vijay-prabhu/jobboard/internal/logger"
)

// Writer is the subset of a transaction the importer writes through
type Writer interface {
	GetCompany(ctx context.Context, id string) (*database.Company, error)
	CreateCompany(ctx context.Context, c *database.Company) error
	GetJob(ctx context.Context, id string) (*database.Job, error)
	CreateJob(ctx context.Context, j *database.Job) error
}

// Summary counts what an import did
type Summary struct {
	CompaniesCreated int `json:"companies_created"`
	CompaniesSkipped int `json:"companies_skipped"`
	JobsCreated      int `json:"jobs_created"`
	JobsSkipped      int `json:"jobs_skipped"`
}

// Importer writes seed files into the database
type Importer struct {
	db     *database.DB
	logger *zap.Logger
	now    func() time.Time
}

// NewImporter creates an importer writing to db
func NewImporter(db *database.DB, log *zap.Logger) *Importer {
	return &Importer{
		db:     db,
		logger: logger.WithFields(log, zap.String("component", "seed")),
		now:    time.Now,
	}
}

// Import validates f and creates its companies and jobs in one
// transaction: a failure leaves the store untouched. Records whose id
// already exists are skipped, so re-importing a file is harmless.
func (im *Importer) Import(ctx context.Context, f *File) (*Summary, error) {
	companies, jobs, err := f.Build(im.now())
	if err != nil {
		return nil, err
	}

	var summary *Summary
	err = im.db.WithTx(ctx, func(tx *database.Tx) error {
		var werr error
		summary, werr = im.write(ctx, tx, companies, jobs)
		return werr
	})
	if err != nil {
		return nil, err
	}

	im.logger.Info("import complete",
		zap.Int("companies_created", summary.CompaniesCreated),
		zap.Int("companies_skipped", summary.CompaniesSkipped),
		zap.Int("jobs_created", summary.JobsCreated),
		zap.Int("jobs_skipped", summary.JobsSkipped),
	)

	return summary, nil
}

func (im *Importer) write(ctx context.Context, w Writer, companies []database.Company, jobs []database.Job) (*Summary, error) {
	summary := &Summary{}

	for i := range companies {
		c := &companies[i]
		existing, err := w.GetCompany(ctx, c.ID)
		if err != nil {
			return summary, fmt.Errorf("failed to check company %s: %w", c.ID, err)
		}
		if existing != nil {
			im.logger.Debug("company exists, skipping", zap.String("company_id", c.ID))
			summary.CompaniesSkipped++
			continue
		}
		if err := w.CreateCompany(ctx, c); err != nil {
			return summary, fmt.Errorf("failed to create company %q: %w", c.Name, err)
		}
		summary.CompaniesCreated++
	}

	for i := range jobs {
		j := &jobs[i]
		existing, err := w.GetJob(ctx, j.ID)
		if err != nil {
			return summary, fmt.Errorf("failed to check job %s: %w", j.ID, err)
		}
		if existing != nil {
			im.logger.Debug("job exists, skipping", append(logger.JobFields(j.ID, j.CompanyID, j.Region),
				zap.String("title", logger.TruncateForLog(j.Title, 60)))...)
			summary.JobsSkipped++
			continue
		}
		if err := w.CreateJob(ctx, j); err != nil {
			return summary, fmt.Errorf("failed to create job %q: %w", j.Title, err)
		}
		summary.JobsCreated++
	}

	return summary, nil
}
