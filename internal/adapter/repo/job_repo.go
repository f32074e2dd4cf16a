package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"garage/internal/domain"
	"garage/internal/infra"
	"garage/internal/sequence"
	"garage/internal/sqlinline"
)

// JobRepositoryPG implements domain.JobRepository.
type JobRepositoryPG struct {
	sql infra.TxRunner
}

// NewJobRepository creates a new job repository backed by PostgreSQL.
func NewJobRepository(sql infra.TxRunner) *JobRepositoryPG {
	return &JobRepositoryPG{sql: sql}
}

// Create inserts a job and its segments in one transaction.
func (r *JobRepositoryPG) Create(ctx context.Context, job *domain.Job) error {
	return r.sql.InTx(ctx, func(tx infra.SQLExecutor) error {
		row := tx.QueryRow(ctx, sqlinline.QInsertJob,
			job.ID,
			job.EntityID,
			job.Reference,
			job.Description,
			job.VehicleRegistration,
			job.EstimatedHours,
			job.Status,
		)
		if err := row.Scan(&job.CreatedAt, &job.UpdatedAt); err != nil {
			return fmt.Errorf("insert job: %w", err)
		}
		return writeSegments(ctx, tx, job)
	})
}

// GetByID fetches a job with its segments.
func (r *JobRepositoryPG) GetByID(ctx context.Context, jobID string) (*domain.Job, error) {
	job, err := scanJob(r.sql.QueryRow(ctx, sqlinline.QSelectJob, jobID))
	if err != nil {
		return nil, err
	}
	segments, err := loadSegments(ctx, r.sql, []string{job.ID})
	if err != nil {
		return nil, err
	}
	job.Segments = segments[job.ID]
	return job, nil
}

// ListByEntity returns the newest jobs of an entity with their segments.
func (r *JobRepositoryPG) ListByEntity(ctx context.Context, entityID string, limit int) ([]domain.Job, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListJobsByEntity, entityID, limit)
	if err != nil {
		// a malformed entity id owns no jobs
		if isMissing(err) {
			return nil, nil
		}
		return nil, err
	}
	defer rows.Close()

	var jobs []domain.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *job)
	}
	if err := rows.Err(); err != nil {
		if isMissing(err) {
			return nil, nil
		}
		return nil, err
	}
	if len(jobs) == 0 {
		return jobs, nil
	}

	ids := sequence.IDs(jobs, func(j domain.Job) string { return j.ID })
	segments, err := loadSegments(ctx, r.sql, ids)
	if err != nil {
		return nil, err
	}
	for i := range jobs {
		jobs[i].Segments = segments[jobs[i].ID]
	}
	return jobs, nil
}

// Update locks the job row, applies fn and rewrites the job's segments.
func (r *JobRepositoryPG) Update(ctx context.Context, jobID string, fn domain.JobMutator) (*domain.Job, error) {
	var job *domain.Job
	err := r.sql.InTx(ctx, func(tx infra.SQLExecutor) error {
		var err error
		job, err = scanJob(tx.QueryRow(ctx, sqlinline.QSelectJobForUpdate, jobID))
		if err != nil {
			return err
		}
		segments, err := loadSegments(ctx, tx, []string{job.ID})
		if err != nil {
			return err
		}
		job.Segments = segments[job.ID]

		if err := fn(job); err != nil {
			return err
		}

		row := tx.QueryRow(ctx, sqlinline.QUpdateJob, job.ID, job.EstimatedHours, job.Status)
		if err := row.Scan(&job.UpdatedAt); err != nil {
			return fmt.Errorf("update job: %w", err)
		}
		if _, err := tx.Exec(ctx, sqlinline.QDeleteJobSegments, job.ID); err != nil {
			return fmt.Errorf("clear segments: %w", err)
		}
		return writeSegments(ctx, tx, job)
	})
	if err != nil {
		return nil, err
	}
	return job, nil
}

// ListIDsForReconcile returns jobs with derived statuses, least recently
// reconciled first.
func (r *JobRepositoryPG) ListIDsForReconcile(ctx context.Context, limit int) ([]string, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListJobsForReconcile, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func scanJob(row pgx.Row) (*domain.Job, error) {
	var job domain.Job
	if err := row.Scan(
		&job.ID,
		&job.EntityID,
		&job.Reference,
		&job.Description,
		&job.VehicleRegistration,
		&job.EstimatedHours,
		&job.Status,
		&job.CreatedAt,
		&job.UpdatedAt,
	); err != nil {
		if isMissing(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &job, nil
}

func loadSegments(ctx context.Context, q infra.SQLExecutor, jobIDs []string) (map[string][]domain.JobSegment, error) {
	rows, err := q.Query(ctx, sqlinline.QListJobSegments, jobIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]domain.JobSegment, len(jobIDs))
	for rows.Next() {
		var (
			seg   domain.JobSegment
			jobID string
		)
		if err := rows.Scan(
			&seg.SegmentID,
			&jobID,
			&seg.Duration,
			&seg.Date,
			&seg.ScheduledStartSegment,
			&seg.AllocatedLift,
			&seg.Status,
			&seg.EngineerID,
		); err != nil {
			return nil, err
		}
		out[jobID] = append(out[jobID], seg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func writeSegments(ctx context.Context, tx infra.SQLExecutor, job *domain.Job) error {
	for i, seg := range job.Segments {
		date := ""
		if seg.Date != nil {
			date = *seg.Date
		}
		if _, err := tx.Exec(ctx, sqlinline.QInsertJobSegment,
			seg.SegmentID,
			job.ID,
			i,
			seg.Duration,
			date,
			seg.ScheduledStartSegment,
			seg.AllocatedLift,
			seg.Status,
			seg.EngineerID,
		); err != nil {
			return fmt.Errorf("insert segment %s: %w", seg.SegmentID, err)
		}
	}
	return nil
}
