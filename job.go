package readdoc

import (
	"context"
	"time"
)

// Job records one completed extraction.
type Job struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	InputName  string    `json:"inputName"`
	OutputName string    `json:"outputName"`
	Mode       Mode      `json:"mode"`
	InputHash  string    `json:"inputHash"`
	Before     int       `json:"before"`
	After      int       `json:"after"`
	Removed    int       `json:"removed"`
	Collapsed  int       `json:"collapsed"`
	CreatedAt  time.Time `json:"createdAt"`
}

// NewJob returns a job describing an extraction of inputName into outputName.
func NewJob(userID, inputName, outputName string, ext *Extraction) *Job {
	return &Job{
		UserID:     userID,
		InputName:  inputName,
		OutputName: outputName,
		Mode:       ext.Mode,
		InputHash:  ext.InputHash,
		Before:     ext.Before,
		After:      ext.After,
		Removed:    ext.Removed,
		Collapsed:  ext.Collapsed,
	}
}

// Validate returns an error if the job contains invalid fields.
func (j *Job) Validate() error {
	if j.UserID == "" {
		return Errorf(EINVALID, "job user ID required")
	}
	if j.InputName == "" {
		return Errorf(EINVALID, "job input name required")
	}
	if !j.Mode.Valid() {
		return Errorf(EINVALID, "job mode %q invalid", j.Mode)
	}
	return nil
}

// JobService represents a service for recording extraction jobs.
type JobService interface {
	// CreateJob records a job, assigning its ID and creation time.
	CreateJob(ctx context.Context, job *Job) error

	// FindJobByID retrieves a job by ID.
	// Returns ENOTFOUND if job does not exist.
	FindJobByID(ctx context.Context, id string) (*Job, error)

	// FindJobs retrieves jobs matching the filter, newest first.
	FindJobs(ctx context.Context, filter JobFilter) ([]*Job, error)
}

// JobFilter represents a filter for FindJobs.
type JobFilter struct {
	UserID *string `json:"userId"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
