package mock

import (
	"context"

	"github.com/fwojciec/readdoc"
)

var _ readdoc.ProcessService = (*ProcessService)(nil)

// ProcessService is a mock implementation of readdoc.ProcessService.
type ProcessService struct {
	UploadFn  func(ctx context.Context, id *readdoc.Identity, filename string, data []byte) (string, error)
	ProcessFn func(ctx context.Context, id *readdoc.Identity, req *readdoc.ProcessRequest) (*readdoc.ProcessResult, error)
}

func (s *ProcessService) Upload(ctx context.Context, id *readdoc.Identity, filename string, data []byte) (string, error) {
	return s.UploadFn(ctx, id, filename, data)
}

func (s *ProcessService) Process(ctx context.Context, id *readdoc.Identity, req *readdoc.ProcessRequest) (*readdoc.ProcessResult, error) {
	return s.ProcessFn(ctx, id, req)
}
