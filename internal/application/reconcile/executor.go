package reconcile

import (
	"context"

	"github.com/vanshgehlot9/nikkifashionbot/internal/domain/tracking"
	"github.com/vanshgehlot9/nikkifashionbot/internal/infrastructure/scheduler"
)

// JobExecutor adapts the reconciliation service to the job runner.
type JobExecutor struct {
	service *Service
	ledger  tracking.Ledger
}

// NewJobExecutor creates a scheduler executor backed by the service.
func NewJobExecutor(service *Service, ledger tracking.Ledger) *JobExecutor {
	return &JobExecutor{service: service, ledger: ledger}
}

// Execute runs one pass and copies the results onto the job.
func (e *JobExecutor) Execute(ctx context.Context, job *scheduler.Job) error {
	result, err := e.service.Run(ctx)
	if result != nil {
		job.Records = result.Records
		job.Skipped = result.Skipped
		job.NewIDs = len(result.NewIDs)
		job.Actions = result.Actions
		job.LedgerLen = e.ledger.Size()
	}
	return err
}
