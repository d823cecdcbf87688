package extract_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/readdoc"
	"github.com/fwojciec/readdoc/extract"
	"github.com/fwojciec/readdoc/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory object store recording deletes.
type memStore struct {
	objects map[string]*readdoc.Object
	deleted []string
}

func newMemStore() *memStore {
	return &memStore{objects: map[string]*readdoc.Object{}}
}

func (m *memStore) mock() *mock.ObjectStore {
	return &mock.ObjectStore{
		GetFn: func(_ context.Context, key string) (*readdoc.Object, error) {
			obj, ok := m.objects[key]
			if !ok {
				return nil, readdoc.Errorf(readdoc.ENOTFOUND, "Object not found.")
			}
			return obj, nil
		},
		PutFn: func(_ context.Context, obj *readdoc.Object) error {
			m.objects[obj.Key] = obj
			return nil
		},
		DeleteFn: func(_ context.Context, key string) error {
			m.deleted = append(m.deleted, key)
			delete(m.objects, key)
			return nil
		},
		SignURLFn: func(_ context.Context, key string, ttl time.Duration) (string, time.Time, error) {
			return "https://files.test/" + key, time.Unix(0, 0).Add(ttl), nil
		},
	}
}

var alice = &readdoc.Identity{UserID: "alice"}

func processRequest() *readdoc.ProcessRequest {
	return &readdoc.ProcessRequest{
		StoragePath: "uploads/alice/1700000000_aff.docx",
		Filename:    "aff.docx",
		Mode:        "both",
		UserID:      "alice",
	}
}

func TestService_Process(t *testing.T) {
	t.Parallel()

	t.Run("stores the result and returns a signed link", func(t *testing.T) {
		t.Parallel()

		store := newMemStore()
		store.objects["uploads/alice/1700000000_aff.docx"] = &readdoc.Object{Data: []byte("aff")}
		svc := &extract.Service{Store: store.mock(), Extractor: upperExtractor(), DeleteInputs: true}

		res, err := svc.Process(context.Background(), alice, processRequest())

		require.NoError(t, err)
		assert.Equal(t, "aff_read-doc.docx", res.OutputFilename)
		assert.Equal(t, "https://files.test/outputs/alice/aff_read-doc.docx", res.DownloadURL)
		assert.Equal(t, time.Unix(0, 0).Add(time.Hour), res.ExpiresAt)
		assert.Equal(t, 1, res.Removed)
		assert.Equal(t, 2, res.Paragraphs)

		out := store.objects["outputs/alice/aff_read-doc.docx"]
		require.NotNil(t, out)
		assert.Equal(t, []byte("AFF"), out.Data)
		assert.Equal(t, readdoc.DocxContentType, out.ContentType)
		assert.Equal(t, []string{"uploads/alice/1700000000_aff.docx"}, store.deleted)
	})

	t.Run("keeps inputs unless configured to delete them", func(t *testing.T) {
		t.Parallel()

		store := newMemStore()
		store.objects["uploads/alice/1700000000_aff.docx"] = &readdoc.Object{Data: []byte("aff")}
		svc := &extract.Service{Store: store.mock(), Extractor: upperExtractor(), URLTTL: time.Minute}

		res, err := svc.Process(context.Background(), alice, processRequest())

		require.NoError(t, err)
		assert.Empty(t, store.deleted)
		assert.Equal(t, time.Unix(0, 0).Add(time.Minute), res.ExpiresAt)
	})

	t.Run("ignores delete failures", func(t *testing.T) {
		t.Parallel()

		store := newMemStore()
		store.objects["uploads/alice/1700000000_aff.docx"] = &readdoc.Object{Data: []byte("aff")}
		m := store.mock()
		m.DeleteFn = func(context.Context, string) error {
			return readdoc.Errorf(readdoc.EINTERNAL, "boom")
		}
		svc := &extract.Service{Store: m, Extractor: upperExtractor(), DeleteInputs: true}

		_, err := svc.Process(context.Background(), alice, processRequest())

		assert.NoError(t, err)
	})

	t.Run("rejects a user ID that does not match the token", func(t *testing.T) {
		t.Parallel()

		svc := &extract.Service{Store: newMemStore().mock(), Extractor: upperExtractor()}

		_, err := svc.Process(context.Background(), &readdoc.Identity{UserID: "mallory"}, processRequest())

		assert.Equal(t, readdoc.EFORBIDDEN, readdoc.ErrorCode(err))
		assert.Equal(t, "User ID mismatch", readdoc.ErrorMessage(err))
	})

	t.Run("rejects storage paths outside the caller's uploads", func(t *testing.T) {
		t.Parallel()

		svc := &extract.Service{Store: newMemStore().mock(), Extractor: upperExtractor()}

		for _, p := range []string{
			"uploads/bob/1_aff.docx",
			"outputs/alice/aff_read-doc.docx",
			"uploads/alice/../bob/1_aff.docx",
		} {
			req := processRequest()
			req.StoragePath = p

			_, err := svc.Process(context.Background(), alice, req)

			assert.Equal(t, readdoc.EFORBIDDEN, readdoc.ErrorCode(err), p)
		}
	})

	t.Run("requires an identity", func(t *testing.T) {
		t.Parallel()

		svc := &extract.Service{Store: newMemStore().mock(), Extractor: upperExtractor()}

		_, err := svc.Process(context.Background(), nil, processRequest())

		assert.Equal(t, readdoc.EUNAUTHORIZED, readdoc.ErrorCode(err))
	})

	t.Run("validates the mode", func(t *testing.T) {
		t.Parallel()

		svc := &extract.Service{Store: newMemStore().mock(), Extractor: upperExtractor()}
		req := processRequest()
		req.Mode = "both-required"

		_, err := svc.Process(context.Background(), alice, req)

		assert.Equal(t, readdoc.EINVALID, readdoc.ErrorCode(err))
	})

	t.Run("returns not found for missing objects", func(t *testing.T) {
		t.Parallel()

		svc := &extract.Service{Store: newMemStore().mock(), Extractor: upperExtractor()}

		_, err := svc.Process(context.Background(), alice, processRequest())

		assert.Equal(t, readdoc.ENOTFOUND, readdoc.ErrorCode(err))
	})

	t.Run("passes through malformed documents", func(t *testing.T) {
		t.Parallel()

		store := newMemStore()
		store.objects["uploads/alice/1700000000_aff.docx"] = &readdoc.Object{Data: []byte("bad")}
		svc := &extract.Service{Store: store.mock(), Extractor: upperExtractor(), DeleteInputs: true}

		_, err := svc.Process(context.Background(), alice, processRequest())

		assert.Equal(t, readdoc.EMALFORMED, readdoc.ErrorCode(err))
		assert.Empty(t, store.deleted)
	})

	t.Run("records a job", func(t *testing.T) {
		t.Parallel()

		store := newMemStore()
		store.objects["uploads/alice/1700000000_aff.docx"] = &readdoc.Object{Data: []byte("aff")}
		var created *readdoc.Job
		jobs := &mock.JobService{
			CreateJobFn: func(_ context.Context, job *readdoc.Job) error {
				job.ID = "job-7"
				created = job
				return nil
			},
		}
		svc := &extract.Service{Store: store.mock(), Extractor: upperExtractor(), Jobs: jobs}

		res, err := svc.Process(context.Background(), alice, processRequest())

		require.NoError(t, err)
		assert.Equal(t, "job-7", res.JobID)
		assert.Equal(t, "alice", created.UserID)
		assert.Equal(t, "aff.docx", created.InputName)
		assert.Equal(t, "aff_read-doc.docx", created.OutputName)
		assert.Equal(t, readdoc.Both, created.Mode)
	})
}

func TestService_Upload(t *testing.T) {
	t.Parallel()

	now := func() time.Time { return time.Unix(1700000000, 0) }

	t.Run("stores under the caller's upload prefix", func(t *testing.T) {
		t.Parallel()

		store := newMemStore()
		svc := &extract.Service{Store: store.mock(), Now: now}

		key, err := svc.Upload(context.Background(), alice, "my cards.docx", []byte("data"))

		require.NoError(t, err)
		assert.Equal(t, "uploads/alice/1700000000_my_cards.docx", key)
		assert.Equal(t, []byte("data"), store.objects[key].Data)
	})

	t.Run("strips directory components from the name", func(t *testing.T) {
		t.Parallel()

		svc := &extract.Service{Store: newMemStore().mock(), Now: now}

		key, err := svc.Upload(context.Background(), alice, `..\..\evil.docx`, []byte("data"))

		require.NoError(t, err)
		assert.Equal(t, "uploads/alice/1700000000_evil.docx", key)
	})

	t.Run("rejects empty uploads", func(t *testing.T) {
		t.Parallel()

		svc := &extract.Service{Store: newMemStore().mock(), Now: now}

		_, err := svc.Upload(context.Background(), alice, "a.docx", nil)

		assert.Equal(t, readdoc.EINVALID, readdoc.ErrorCode(err))
	})

	t.Run("the stored key can be processed", func(t *testing.T) {
		t.Parallel()

		store := newMemStore()
		svc := &extract.Service{Store: store.mock(), Extractor: upperExtractor(), Now: now}
		key, err := svc.Upload(context.Background(), alice, "aff.docx", []byte("aff"))
		require.NoError(t, err)

		res, err := svc.Process(context.Background(), alice, &readdoc.ProcessRequest{
			StoragePath: key, Filename: "aff.docx", Mode: "highlighted", UserID: "alice",
		})

		require.NoError(t, err)
		assert.Equal(t, "aff_read-doc.docx", res.OutputFilename)
	})
}
