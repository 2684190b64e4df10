package similarity

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/vijay-prabhu/jobboard/internal/config"
	"github.com/vijay-prabhu/jobboard/internal/database"
	apperrors "github.com/vijay-prabhu/jobboard/internal/errors"
	"github.com/vijay-prabhu/jobboard/internal/logger"
	"github.com/vijay-prabhu/jobboard/internal/telemetry"
)

const (
	MsgInvalidJobID = "Invalid job ID format"
	MsgJobNotFound  = "Job not found"
)

// Store is the read surface the engine needs from the job store
type Store interface {
	GetJob(ctx context.Context, id string) (*database.Job, error)
	ListCandidateJobs(ctx context.Context, q database.CandidateQuery) ([]database.Job, error)
}

// Options controls one FindSimilar call
type Options struct {
	// Limit is clamped into [1, max_limit]; zero means the configured default
	Limit int
	Debug bool
}

// Metadata describes how a result was produced
type Metadata struct {
	TotalCandidates  int   `json:"totalCandidates"`
	ReturnedJobs     int   `json:"returnedJobs"`
	ProcessingTimeMs int64 `json:"processingTimeMs"`
	DiversityApplied bool  `json:"diversityApplied"`
	MaxPerCompany    int   `json:"maxPerCompany"`
}

// DebugInfo is attached to results when debug is requested
type DebugInfo struct {
	Steps   []string           `json:"steps"`
	Weights map[Factor]float64 `json:"weights"`
}

// Result is the outcome of FindSimilar
type Result struct {
	TargetID string     `json:"targetId"`
	Records  []Record   `json:"data"`
	Metadata Metadata   `json:"metadata"`
	Debug    *DebugInfo `json:"debug,omitempty"`
}

// Engine ranks similar jobs. It holds only immutable configuration and is
// safe for concurrent use.
type Engine struct {
	store      Store
	cfg        config.RecommendConfig
	aggregator *Aggregator
	formatter  *Formatter
	logger     *zap.Logger
	tracer     trace.Tracer
	now        func() time.Time
}

// NewEngine validates cfg and the default weight table and returns an Engine
func NewEngine(store Store, cfg config.RecommendConfig, log *zap.Logger) (*Engine, error) {
	if store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid recommend config: %w", err)
	}

	aggregator, err := NewAggregator(DefaultWeights, cfg.SameCompanyBoost)
	if err != nil {
		return nil, fmt.Errorf("invalid weight table: %w", err)
	}

	return &Engine{
		store:      store,
		cfg:        cfg,
		aggregator: aggregator,
		formatter:  NewFormatter(cfg.DescriptionLength),
		logger:     logger.WithFields(log, zap.String("component", "similarity")),
		tracer:     telemetry.GetTracer("similarity"),
		now:        time.Now,
	}, nil
}

// ClampLimit resolves the requested limit against the configured bounds
func (e *Engine) ClampLimit(limit int) int {
	if limit == 0 {
		limit = e.cfg.DefaultLimit
	}
	return min(max(limit, 1), e.cfg.MaxLimit)
}

// ValidateJobID accepts canonical RFC 4122 UUIDs of version 1 to 5
func ValidateJobID(id string) error {
	_, err := ParseJobID(id)
	return err
}

// ParseJobID validates id like ValidateJobID and returns its lowercase
// form, which is how ids are stored.
func ParseJobID(id string) (string, error) {
	if len(id) != 36 {
		return "", apperrors.InvalidInput(MsgInvalidJobID, nil)
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", apperrors.InvalidInput(MsgInvalidJobID, err)
	}
	if v := parsed.Version(); v < 1 || v > 5 || parsed.Variant() != uuid.RFC4122 {
		return "", apperrors.InvalidInput(MsgInvalidJobID, nil)
	}
	return parsed.String(), nil
}

// Job loads a single posting with the same validation as FindSimilar
func (e *Engine) Job(ctx context.Context, id string) (*database.Job, error) {
	id, err := ParseJobID(id)
	if err != nil {
		return nil, err
	}

	job, err := e.store.GetJob(ctx, id)
	if err != nil {
		return nil, apperrors.Internal("Failed to load job", err)
	}
	if job == nil {
		return nil, apperrors.NotFound(MsgJobNotFound, nil)
	}
	return job, nil
}

// FindSimilar returns the jobs most similar to the job with the given id
func (e *Engine) FindSimilar(ctx context.Context, id string, opts Options) (*Result, error) {
	ctx, span := e.tracer.Start(ctx, "similarity.FindSimilar")
	defer span.End()

	start := time.Now()
	now := e.now()
	limit := e.ClampLimit(opts.Limit)

	var steps []string
	step := func(format string, args ...interface{}) {
		if opts.Debug {
			steps = append(steps, fmt.Sprintf(format, args...))
		}
	}

	log := e.logger.With(zap.String("job_id", id), zap.Int("limit", limit))
	span.SetAttributes(
		telemetry.String("job.id", id),
		telemetry.Int("limit", limit),
		telemetry.Bool("debug", opts.Debug),
	)

	fail := func(err error) (*Result, error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if apperrors.Is(err, apperrors.ErrTypeInternal) {
			log.Error("find similar failed", zap.Error(err))
		} else {
			log.Debug("find similar rejected", zap.Error(err))
		}
		return nil, err
	}

	step("Requested limit %d, clamped to %d", opts.Limit, limit)

	target, err := e.Job(ctx, id)
	if err != nil {
		return fail(err)
	}
	step("Loaded target job %q (region %q, company %s)", target.Title, target.Region, target.CompanyID)

	pool, err := e.store.ListCandidateJobs(ctx, database.CandidateQuery{
		ExcludeID: target.ID,
		Region:    target.Region,
		Now:       now,
		Limit:     e.cfg.CandidatePoolSize,
	})
	if err != nil {
		return fail(apperrors.Internal("Failed to fetch candidate jobs", err))
	}
	pool = excludeJob(pool, target.ID)
	step("Fetched %d candidates from region %q (pool size %d)", len(pool), target.Region, e.cfg.CandidatePoolSize)

	scored, err := e.scoreAll(target, pool, now)
	if err != nil {
		return fail(apperrors.Internal("Failed to score candidate jobs", err))
	}
	step("Scored %d candidates across %d weighted factors", len(scored), len(DefaultWeights))

	maxPerCompany := MaxPerCompany(limit)
	selected := SelectDiverse(scored, limit, e.cfg.StrictDiversity)
	capKind := "soft"
	if e.cfg.StrictDiversity {
		capKind = "hard"
	}
	step("Selected %d of %d candidates (max %d per company, %s cap)", len(selected), len(scored), maxPerCompany, capKind)

	records := make([]Record, 0, len(selected))
	for _, c := range selected {
		records = append(records, e.formatter.Format(c, now, opts.Debug))
	}
	step("Formatted %d records", len(records))

	result := &Result{
		TargetID: target.ID,
		Records:  records,
		Metadata: Metadata{
			TotalCandidates:  len(pool),
			ReturnedJobs:     len(records),
			ProcessingTimeMs: time.Since(start).Milliseconds(),
			DiversityApplied: len(pool) > 0,
			MaxPerCompany:    maxPerCompany,
		},
	}

	if opts.Debug {
		weights := make(map[Factor]float64, len(DefaultWeights))
		for _, w := range DefaultWeights {
			weights[w.Factor] = w.Value
		}
		result.Debug = &DebugInfo{Steps: steps, Weights: weights}
	}

	span.SetAttributes(
		telemetry.Int("candidates", len(pool)),
		telemetry.Int("returned", len(records)),
	)
	log.Info("found similar jobs",
		zap.Int("candidates", len(pool)),
		zap.Int("returned", len(records)),
		zap.Int64("duration_ms", result.Metadata.ProcessingTimeMs),
	)

	return result, nil
}

func excludeJob(pool []database.Job, id string) []database.Job {
	filtered := pool[:0:0]
	for _, j := range pool {
		if j.ID != id {
			filtered = append(filtered, j)
		}
	}
	return filtered
}

// scoreAll scores every candidate, fanning out over the configured workers.
// Results keep the pool's order.
func (e *Engine) scoreAll(target *database.Job, pool []database.Job, now time.Time) ([]ScoredCandidate, error) {
	scored := make([]ScoredCandidate, len(pool))

	score := func(i int) {
		s, factors := e.aggregator.Score(target, &pool[i], now)
		scored[i] = ScoredCandidate{Job: pool[i], Score: s, Factors: factors, Index: i}
	}

	if e.cfg.Workers <= 1 || len(pool) < 2 {
		for i := range pool {
			score(i)
		}
		return scored, nil
	}

	var g errgroup.Group
	g.SetLimit(e.cfg.Workers)
	for i := range pool {
		g.Go(func() error {
			score(i)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return scored, nil
}
