package extract_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/fwojciec/readdoc"
	"github.com/fwojciec/readdoc/extract"
	"github.com/fwojciec/readdoc/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// upperExtractor returns its input upper-cased, failing on inputs
// that contain "bad".
func upperExtractor() *mock.Extractor {
	return &mock.Extractor{
		ExtractFn: func(_ context.Context, data []byte, mode readdoc.Mode) (*readdoc.Extraction, error) {
			if bytes.Contains(data, []byte("bad")) {
				return nil, readdoc.Errorf(readdoc.EMALFORMED, "not a docx package")
			}
			return &readdoc.Extraction{
				ExtractResult: readdoc.ExtractResult{Mode: mode, Before: 3, After: 2, Removed: 1},
				Data:          bytes.ToUpper(data),
				InputHash:     extract.ComputeHash(data),
			}, nil
		},
	}
}

func writeInput(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	return p
}

func TestBatch_Run(t *testing.T) {
	t.Parallel()

	t.Run("writes each result next to its input", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		a := writeInput(t, dir, "aff.docx", "aff")
		b := writeInput(t, dir, "neg.docx", "neg")
		batch := &extract.Batch{Extractor: upperExtractor(), Concurrency: 2}

		res, err := batch.Run(context.Background(), []string{a, b}, readdoc.Both, nil)

		require.NoError(t, err)
		assert.Equal(t, 2, res.Succeeded)
		assert.Zero(t, res.Failed)
		got, err := os.ReadFile(filepath.Join(dir, "aff_read-doc.docx"))
		require.NoError(t, err)
		assert.Equal(t, "AFF", string(got))
		got, err = os.ReadFile(filepath.Join(dir, "neg_read-doc.docx"))
		require.NoError(t, err)
		assert.Equal(t, "NEG", string(got))
		assert.Equal(t, 1, res.Files[0].Result.Removed)
	})

	t.Run("one failure does not stop the others", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		good := writeInput(t, dir, "good.docx", "good")
		bad := writeInput(t, dir, "bad.docx", "bad")
		missing := filepath.Join(dir, "missing.docx")
		batch := &extract.Batch{Extractor: upperExtractor()}

		res, err := batch.Run(context.Background(), []string{bad, missing, good}, readdoc.Highlighted, nil)

		require.Error(t, err)
		assert.Equal(t, 1, res.Succeeded)
		assert.Equal(t, 2, res.Failed)
		assert.Equal(t, readdoc.EMALFORMED, readdoc.ErrorCode(res.Files[0].Err))
		assert.Equal(t, readdoc.ENOTFOUND, readdoc.ErrorCode(res.Files[1].Err))
		assert.NoError(t, res.Files[2].Err)
		_, statErr := os.Stat(filepath.Join(dir, "bad_read-doc.docx"))
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("reports progress for every file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		paths := []string{
			writeInput(t, dir, "1.docx", "one"),
			writeInput(t, dir, "2.docx", "bad"),
			writeInput(t, dir, "3.docx", "three"),
		}
		batch := &extract.Batch{Extractor: upperExtractor(), Concurrency: 3}

		var mu sync.Mutex
		var events []extract.ProgressEvent
		_, _ = batch.Run(context.Background(), paths, readdoc.Both, func(e extract.ProgressEvent) {
			mu.Lock()
			defer mu.Unlock()
			events = append(events, e)
		})

		require.Len(t, events, 5)
		assert.Equal(t, extract.ProgressStarted, events[0].Type)
		assert.Equal(t, extract.ProgressFinished, events[4].Type)
		var completed, failed int
		for _, e := range events[1:4] {
			switch e.Type {
			case extract.ProgressCompleted:
				completed++
			case extract.ProgressFailed:
				failed++
			}
		}
		assert.Equal(t, 2, completed)
		assert.Equal(t, 1, failed)
		assert.Equal(t, 3, events[3].Completed)
	})

	t.Run("records a job per successful file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		p := writeInput(t, dir, "aff.docx", "aff")

		var created []*readdoc.Job
		jobs := &mock.JobService{
			CreateJobFn: func(_ context.Context, job *readdoc.Job) error {
				job.ID = "job-1"
				created = append(created, job)
				return nil
			},
		}
		batch := &extract.Batch{Extractor: upperExtractor(), Jobs: jobs}

		res, err := batch.Run(context.Background(), []string{p}, readdoc.Underlined, nil)

		require.NoError(t, err)
		require.Len(t, created, 1)
		assert.Equal(t, extract.LocalUser, created[0].UserID)
		assert.Equal(t, p, created[0].InputName)
		assert.Equal(t, readdoc.Underlined, created[0].Mode)
		assert.Equal(t, extract.ComputeHash([]byte("aff")), created[0].InputHash)
		assert.Equal(t, "job-1", res.Files[0].JobID)
	})

	t.Run("job recording failure fails the file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		p := writeInput(t, dir, "aff.docx", "aff")
		jobs := &mock.JobService{
			CreateJobFn: func(context.Context, *readdoc.Job) error {
				return readdoc.Errorf(readdoc.EINTERNAL, "disk full")
			},
		}
		batch := &extract.Batch{Extractor: upperExtractor(), Jobs: jobs}

		res, err := batch.Run(context.Background(), []string{p}, readdoc.Both, nil)

		require.Error(t, err)
		assert.Equal(t, 1, res.Failed)
	})
}
