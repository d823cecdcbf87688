package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/readdoc"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ readdoc.JobService = (*JobService)(nil)

// JobService implements readdoc.JobService using SQLite.
type JobService struct {
	db *DB
}

// NewJobService creates a new JobService.
func NewJobService(db *DB) *JobService {
	return &JobService{db: db}
}

const jobColumns = `id, user_id, input_name, output_name, mode, input_hash,
	paragraphs_before, paragraphs_after, removed, collapsed, created_at`

// CreateJob records a new job.
func (s *JobService) CreateJob(ctx context.Context, job *readdoc.Job) error {
	if err := job.Validate(); err != nil {
		return err
	}

	job.ID = uuid.New().String()
	job.CreatedAt = time.Now().UTC().Truncate(time.Second)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO jobs (`+jobColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, job.ID, job.UserID, job.InputName, job.OutputName, string(job.Mode), job.InputHash,
		job.Before, job.After, job.Removed, job.Collapsed,
		job.CreatedAt.Format(time.RFC3339))

	return err
}

// FindJobByID retrieves a job by ID.
func (s *JobService) FindJobByID(ctx context.Context, id string) (*readdoc.Job, error) {
	job, err := scanJob(s.db.QueryRowContext(ctx, `
		SELECT `+jobColumns+`
		FROM jobs
		WHERE id = ?
	`, id))
	if err == sql.ErrNoRows {
		return nil, readdoc.Errorf(readdoc.ENOTFOUND, "job not found")
	}
	if err != nil {
		return nil, err
	}
	return job, nil
}

// FindJobs retrieves jobs matching the filter, newest first.
func (s *JobService) FindJobs(ctx context.Context, filter readdoc.JobFilter) ([]*readdoc.Job, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + jobColumns + " FROM jobs WHERE 1=1")

	if filter.UserID != nil {
		query.WriteString(" AND user_id = ?")
		args = append(args, *filter.UserID)
	}

	query.WriteString(" ORDER BY created_at DESC, rowid DESC")

	// SQLite only accepts OFFSET after a LIMIT; -1 means no limit.
	if filter.Limit > 0 || filter.Offset > 0 {
		limit := filter.Limit
		if limit <= 0 {
			limit = -1
		}
		query.WriteString(" LIMIT ?")
		args = append(args, limit)
	}
	if filter.Offset > 0 {
		query.WriteString(" OFFSET ?")
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []*readdoc.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}

	return jobs, rows.Err()
}

// scanner is implemented by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanJob(row scanner) (*readdoc.Job, error) {
	var job readdoc.Job
	var mode, createdAt string

	if err := row.Scan(&job.ID, &job.UserID, &job.InputName, &job.OutputName, &mode, &job.InputHash,
		&job.Before, &job.After, &job.Removed, &job.Collapsed, &createdAt); err != nil {
		return nil, err
	}
	job.Mode = readdoc.Mode(mode)

	t, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("job %s: created_at: %w", job.ID, err)
	}
	job.CreatedAt = t

	return &job, nil
}
