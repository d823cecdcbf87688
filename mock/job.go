package mock

import (
	"context"

	"github.com/fwojciec/readdoc"
)

var _ readdoc.JobService = (*JobService)(nil)

// JobService is a mock implementation of readdoc.JobService.
type JobService struct {
	CreateJobFn   func(ctx context.Context, job *readdoc.Job) error
	FindJobByIDFn func(ctx context.Context, id string) (*readdoc.Job, error)
	FindJobsFn    func(ctx context.Context, filter readdoc.JobFilter) ([]*readdoc.Job, error)
}

func (s *JobService) CreateJob(ctx context.Context, job *readdoc.Job) error {
	return s.CreateJobFn(ctx, job)
}

func (s *JobService) FindJobByID(ctx context.Context, id string) (*readdoc.Job, error) {
	return s.FindJobByIDFn(ctx, id)
}

func (s *JobService) FindJobs(ctx context.Context, filter readdoc.JobFilter) ([]*readdoc.Job, error) {
	return s.FindJobsFn(ctx, filter)
}
