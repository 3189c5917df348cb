// Package scheduler runs reconciliation passes as jobs. A single worker
// executes jobs one at a time: two passes must never run concurrently
// because both would read the ledger before either commit lands.
package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrNotRunning is returned when submitting to a stopped runner.
	ErrNotRunning = errors.New("scheduler: runner not running")
	// ErrQueueFull is returned when the job queue is saturated.
	ErrQueueFull = errors.New("scheduler: job queue full")
	// ErrInvalidConfig is returned for invalid runner configuration.
	ErrInvalidConfig = errors.New("scheduler: invalid configuration")
)

// JobStatus represents the lifecycle state of a reconciliation job.
type JobStatus string

const (
	JobStatusPending JobStatus = "PENDING"
	JobStatusRunning JobStatus = "RUNNING"
	JobStatusSuccess JobStatus = "SUCCESS"
	JobStatusFailed  JobStatus = "FAILED"
)

// Job is one scheduled reconciliation pass.
type Job struct {
	ID          uuid.UUID
	Trigger     string // "operator", "admin", "interval"
	Status      JobStatus
	Error       string
	SubmittedAt time.Time
	StartedAt   *time.Time
	CompletedAt *time.Time

	// Pass results
	Records   int
	Skipped   int
	NewIDs    int
	Actions   []string
	LedgerLen int
}

// NewJob creates a pending job for the given trigger source.
func NewJob(trigger string) *Job {
	return &Job{
		ID:          uuid.New(),
		Trigger:     trigger,
		Status:      JobStatusPending,
		SubmittedAt: time.Now(),
	}
}

// Start marks the job as running.
func (j *Job) Start() {
	now := time.Now()
	j.Status = JobStatusRunning
	j.StartedAt = &now
	j.Error = ""
}

// Complete marks the job as successful with its pass results.
func (j *Job) Complete() {
	now := time.Now()
	j.Status = JobStatusSuccess
	j.CompletedAt = &now
}

// Fail marks the job as failed.
func (j *Job) Fail(err string) {
	now := time.Now()
	j.Status = JobStatusFailed
	j.CompletedAt = &now
	j.Error = err
}

// Executor runs one reconciliation pass and fills in the job results.
type Executor interface {
	Execute(ctx context.Context, job *Job) error
}

// Config holds runner configuration.
type Config struct {
	// JobTimeout bounds a single pass.
	JobTimeout time.Duration
	// Interval enables a periodic trigger when positive.
	Interval time.Duration
	// QueueSize bounds pending jobs.
	QueueSize int
	// MaxHistory bounds the in-memory job history.
	MaxHistory int
}

// DefaultConfig returns default runner configuration.
func DefaultConfig() Config {
	return Config{
		JobTimeout: 10 * time.Minute,
		QueueSize:  16,
		MaxHistory: 50,
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.JobTimeout <= 0 {
		return ErrInvalidConfig
	}
	if c.QueueSize <= 0 {
		return ErrInvalidConfig
	}
	if c.MaxHistory <= 0 {
		return ErrInvalidConfig
	}
	return nil
}

// Runner executes reconciliation jobs sequentially and keeps a bounded
// in-memory history for the admin surface.
type Runner struct {
	config   Config
	executor Executor
	logger   *zap.Logger

	jobs      chan *Job
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool

	historyMu sync.RWMutex
	history   []*Job
}

// NewRunner creates a job runner.
func NewRunner(config Config, executor Executor, logger *zap.Logger) (*Runner, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Runner{
		config:   config,
		executor: executor,
		logger:   logger.Named("scheduler"),
		jobs:     make(chan *Job, config.QueueSize),
		history:  make([]*Job, 0, config.MaxHistory),
	}, nil
}

// Start starts the worker and, when configured, the periodic trigger.
func (r *Runner) Start(ctx context.Context) error {
	r.mu.Lock()
	if r.isRunning {
		r.mu.Unlock()
		return nil
	}
	r.isRunning = true
	r.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	r.wg.Add(1)
	go r.worker(ctx)

	if r.config.Interval > 0 {
		r.wg.Add(1)
		go r.ticker(ctx)
	}

	r.logger.Info("Reconciliation runner started",
		zap.Duration("job_timeout", r.config.JobTimeout),
		zap.Duration("interval", r.config.Interval),
	)
	return nil
}

// Stop gracefully stops the runner, waiting for an in-flight job.
func (r *Runner) Stop(ctx context.Context) error {
	r.mu.Lock()
	if !r.isRunning {
		r.mu.Unlock()
		return nil
	}
	r.isRunning = false
	r.mu.Unlock()

	if r.cancel != nil {
		r.cancel()
	}
	close(r.jobs)

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		r.logger.Info("Reconciliation runner stopped")
		return nil
	case <-ctx.Done():
		r.logger.Warn("Reconciliation runner stop timed out")
		return ctx.Err()
	}
}

// Submit queues a job for execution.
func (r *Runner) Submit(job *Job) error {
	r.mu.Lock()
	if !r.isRunning {
		r.mu.Unlock()
		return ErrNotRunning
	}
	r.mu.Unlock()

	select {
	case r.jobs <- job:
		r.logger.Debug("Reconciliation job submitted",
			zap.String("job_id", job.ID.String()),
			zap.String("trigger", job.Trigger),
		)
		return nil
	default:
		return ErrQueueFull
	}
}

// worker processes jobs one at a time.
func (r *Runner) worker(ctx context.Context) {
	defer r.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-r.jobs:
			if !ok {
				return
			}
			r.processJob(ctx, job)
		}
	}
}

// ticker submits an interval-triggered job per period.
func (r *Runner) ticker(ctx context.Context) {
	defer r.wg.Done()
	t := time.NewTicker(r.config.Interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if err := r.Submit(NewJob("interval")); err != nil {
				r.logger.Warn("Interval reconciliation not submitted", zap.Error(err))
			}
		}
	}
}

// processJob executes a single job with a timeout.
func (r *Runner) processJob(ctx context.Context, job *Job) {
	job.Start()
	r.logger.Info("Reconciliation job started",
		zap.String("job_id", job.ID.String()),
		zap.String("trigger", job.Trigger),
	)

	jobCtx, cancel := context.WithTimeout(ctx, r.config.JobTimeout)
	defer cancel()

	if err := r.executor.Execute(jobCtx, job); err != nil {
		job.Fail(err.Error())
		r.logger.Error("Reconciliation job failed",
			zap.String("job_id", job.ID.String()),
			zap.Error(err),
		)
		r.addToHistory(job)
		return
	}

	job.Complete()
	r.logger.Info("Reconciliation job completed",
		zap.String("job_id", job.ID.String()),
		zap.Int("records", job.Records),
		zap.Int("skipped", job.Skipped),
		zap.Int("new_ids", job.NewIDs),
	)
	r.addToHistory(job)
}

// addToHistory prepends a completed job, trimming to the bound.
func (r *Runner) addToHistory(job *Job) {
	r.historyMu.Lock()
	defer r.historyMu.Unlock()
	r.history = append([]*Job{job}, r.history...)
	if len(r.history) > r.config.MaxHistory {
		r.history = r.history[:r.config.MaxHistory]
	}
}

// History returns recent jobs, newest first.
func (r *Runner) History(limit int) []*Job {
	r.historyMu.RLock()
	defer r.historyMu.RUnlock()
	if limit <= 0 || limit > len(r.history) {
		limit = len(r.history)
	}
	out := make([]*Job, limit)
	copy(out, r.history[:limit])
	return out
}
