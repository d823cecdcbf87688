package extract

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync/atomic"

	"github.com/fwojciec/readdoc"
	"github.com/fwojciec/readdoc/fs"
	"golang.org/x/sync/errgroup"
)

// LocalUser is the job owner recorded for command-line extractions.
const LocalUser = "local"

// Batch extracts local files concurrently, writing each result next to
// its input.
type Batch struct {
	Extractor   readdoc.Extractor
	Jobs        readdoc.JobService // optional
	Concurrency int
}

// BatchResult holds the outcome of a batch run.
type BatchResult struct {
	Files     []*FileResult
	Succeeded int
	Failed    int
}

// FileResult is the outcome for one input file.
type FileResult struct {
	Path       string
	OutputPath string
	Result     readdoc.ExtractResult
	InputHash  string
	Bytes      int
	JobID      string
	Err        error
}

// ProgressEvent reports progress during a batch run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	File      *FileResult
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is called as files are processed.
type ProgressFunc func(ProgressEvent)

// Run extracts every path under mode. Progress is reported as files finish.
// A failing file does not stop the others; Run returns an error when any
// file failed, along with the full result.
func (b *Batch) Run(ctx context.Context, paths []string, mode readdoc.Mode, progress ProgressFunc) (*BatchResult, error) {
	concurrency := b.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	total := len(paths)
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	resultCh := make(chan int, total)
	files := make([]*FileResult, total)
	var completed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, path := range paths {
			g.Go(func() error {
				files[i] = b.processFile(gctx, path, mode)
				resultCh <- i
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	result := &BatchResult{Files: files}
	for i := range resultCh {
		f := files[i]
		if f.Err == nil && b.Jobs != nil {
			f.Err = b.recordJob(ctx, f)
		}

		typ := ProgressCompleted
		if f.Err != nil {
			typ = ProgressFailed
			result.Failed++
		} else {
			result.Succeeded++
		}

		if progress != nil {
			progress(ProgressEvent{
				Type:      typ,
				Completed: int(completed.Add(1)),
				Total:     total,
				File:      f,
			})
		}
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}
	if result.Failed > 0 {
		return result, fmt.Errorf("%d of %d files failed", result.Failed, total)
	}
	return result, nil
}

func (b *Batch) processFile(ctx context.Context, path string, mode readdoc.Mode) *FileResult {
	f := &FileResult{Path: path, OutputPath: readdoc.OutputPath(path)}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		f.Err = readdoc.Errorf(readdoc.ENOTFOUND, "File not found: %s", path)
		return f
	} else if err != nil {
		f.Err = err
		return f
	}

	ext, err := b.Extractor.Extract(ctx, data, mode)
	if err != nil {
		f.Err = err
		return f
	}

	if err := fs.WriteFile(f.OutputPath, ext.Data, 0644); err != nil {
		f.Err = fmt.Errorf("saving %s: %w", f.OutputPath, err)
		return f
	}

	f.Result = ext.ExtractResult
	f.Bytes = len(ext.Data)
	f.InputHash = ext.InputHash
	return f
}

func (b *Batch) recordJob(ctx context.Context, f *FileResult) error {
	job := readdoc.NewJob(LocalUser, f.Path, f.OutputPath, &readdoc.Extraction{
		ExtractResult: f.Result,
		InputHash:     f.InputHash,
	})
	if err := b.Jobs.CreateJob(ctx, job); err != nil {
		return fmt.Errorf("recording job: %w", err)
	}
	f.JobID = job.ID
	return nil
}
