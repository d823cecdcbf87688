package readdoc

import (
	"context"
	"time"
)

// DocxContentType is the media type of WordprocessingML documents.
const DocxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// Extraction is the output of extracting one serialized document.
type Extraction struct {
	ExtractResult

	// Data is the serialized reduced document.
	Data []byte

	// InputHash identifies the input bytes (hex xxhash).
	InputHash string
}

// Extractor reduces serialized documents to their marked content.
// Implementations hide the container format and codec details.
type Extractor interface {
	// Extract decodes data, filters it under mode and encodes the result.
	// Returns EMALFORMED if data is not a readable document.
	Extract(ctx context.Context, data []byte, mode Mode) (*Extraction, error)
}

// ProcessRequest asks the service to extract a previously uploaded object.
type ProcessRequest struct {
	StoragePath string `json:"storage_path"`
	Filename    string `json:"filename"`
	Mode        string `json:"mode"`
	UserID      string `json:"user_id"`
}

// Validate returns an error if the request contains invalid fields.
func (r *ProcessRequest) Validate() error {
	if r.StoragePath == "" {
		return Errorf(EINVALID, "storage path required")
	}
	if r.Filename == "" {
		return Errorf(EINVALID, "filename required")
	}
	if r.UserID == "" {
		return Errorf(EINVALID, "user ID required")
	}
	if _, err := ParseMode(r.Mode); err != nil {
		return err
	}
	return nil
}

// ProcessResult describes the stored output of a processed request.
type ProcessResult struct {
	DownloadURL    string    `json:"download_url"`
	OutputFilename string    `json:"output_filename"`
	ExpiresAt      time.Time `json:"expires_at"`
	JobID          string    `json:"job_id,omitempty"`
	Removed        int       `json:"removed"`
	Paragraphs     int       `json:"paragraphs"`
}

// ProcessService runs extractions against object storage on behalf of an
// authenticated user.
type ProcessService interface {
	// Upload stores a document for later processing and returns its
	// storage path. Returns EINVALID if the filename or data is empty.
	Upload(ctx context.Context, id *Identity, filename string, data []byte) (storagePath string, err error)

	// Process fetches the request's object, extracts it and stores the
	// result. Returns EFORBIDDEN if the identity does not own the request,
	// ENOTFOUND if the object does not exist.
	Process(ctx context.Context, id *Identity, req *ProcessRequest) (*ProcessResult, error)
}
