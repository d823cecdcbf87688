package extract

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/fwojciec/readdoc"
)

// DefaultURLTTL is how long download links stay valid when Service.URLTTL
// is zero.
const DefaultURLTTL = time.Hour

// Ensure Service implements readdoc.ProcessService at compile time.
var _ readdoc.ProcessService = (*Service)(nil)

// Service runs extractions against an object store.
type Service struct {
	Store     readdoc.ObjectStore
	Extractor readdoc.Extractor
	Jobs      readdoc.JobService // optional

	// URLTTL is the lifetime of signed download links.
	URLTTL time.Duration

	// DeleteInputs removes the uploaded input after a successful extraction.
	DeleteInputs bool

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// UploadKey returns the storage key for a document uploaded by userID.
func UploadKey(userID string, at time.Time, filename string) string {
	return fmt.Sprintf("uploads/%s/%d_%s", userID, at.Unix(), sanitizeName(filename))
}

// OutputKey returns the storage key for an extraction result.
func OutputKey(userID, outputFilename string) string {
	return "outputs/" + userID + "/" + outputFilename
}

// Upload stores data under the caller's upload prefix.
func (s *Service) Upload(ctx context.Context, id *readdoc.Identity, filename string, data []byte) (string, error) {
	if id == nil {
		return "", readdoc.Errorf(readdoc.EUNAUTHORIZED, "Authentication required.")
	}
	if sanitizeName(filename) == "" {
		return "", readdoc.Errorf(readdoc.EINVALID, "filename required")
	}
	if len(data) == 0 {
		return "", readdoc.Errorf(readdoc.EINVALID, "empty upload")
	}

	key := UploadKey(id.UserID, s.now(), filename)
	if err := s.Store.Put(ctx, &readdoc.Object{
		Key:         key,
		ContentType: readdoc.DocxContentType,
		Data:        data,
	}); err != nil {
		return "", err
	}
	return key, nil
}

// Process extracts the object named by req and stores the result under the
// caller's output prefix.
func (s *Service) Process(ctx context.Context, id *readdoc.Identity, req *readdoc.ProcessRequest) (*readdoc.ProcessResult, error) {
	if id == nil {
		return nil, readdoc.Errorf(readdoc.EUNAUTHORIZED, "Authentication required.")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.UserID != id.UserID {
		return nil, readdoc.Errorf(readdoc.EFORBIDDEN, "User ID mismatch")
	}
	if !ownsKey(id.UserID, req.StoragePath) {
		return nil, readdoc.Errorf(readdoc.EFORBIDDEN, "Storage path does not belong to user")
	}

	mode, err := readdoc.ParseMode(req.Mode)
	if err != nil {
		return nil, err
	}

	obj, err := s.Store.Get(ctx, req.StoragePath)
	if err != nil {
		return nil, err
	}

	ext, err := s.Extractor.Extract(ctx, obj.Data, mode)
	if err != nil {
		return nil, err
	}

	outName := readdoc.OutputFilename(req.Filename)
	outKey := OutputKey(id.UserID, outName)
	if err := s.Store.Put(ctx, &readdoc.Object{
		Key:         outKey,
		ContentType: readdoc.DocxContentType,
		Data:        ext.Data,
	}); err != nil {
		return nil, fmt.Errorf("storing result: %w", err)
	}

	ttl := s.URLTTL
	if ttl <= 0 {
		ttl = DefaultURLTTL
	}
	url, expires, err := s.Store.SignURL(ctx, outKey, ttl)
	if err != nil {
		return nil, fmt.Errorf("signing download URL: %w", err)
	}

	if s.DeleteInputs {
		// Failure leaves the input in place; the result is already stored.
		_ = s.Store.Delete(ctx, req.StoragePath)
	}

	result := &readdoc.ProcessResult{
		DownloadURL:    url,
		OutputFilename: outName,
		ExpiresAt:      expires,
		Removed:        ext.Removed,
		Paragraphs:     ext.After,
	}

	if s.Jobs != nil {
		job := readdoc.NewJob(id.UserID, req.Filename, outName, ext)
		if err := s.Jobs.CreateJob(ctx, job); err != nil {
			return nil, fmt.Errorf("recording job: %w", err)
		}
		result.JobID = job.ID
	}

	return result, nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// ownsKey reports whether key lies under userID's upload prefix.
func ownsKey(userID, key string) bool {
	if strings.Contains(key, "..") {
		return false
	}
	return strings.HasPrefix(key, "uploads/"+userID+"/")
}

// sanitizeName reduces a client-supplied filename to a safe base name.
func sanitizeName(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" || name == ".." {
		return ""
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r < 0x20, r == 0x7f:
			return -1
		case r == ' ':
			return '_'
		}
		return r
	}, name)
}
