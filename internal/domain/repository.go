package domain

import "context"

// JobMutator edits a job loaded inside a repository transaction.
type JobMutator func(job *Job) error

// JobRepository defines persistence for jobs and their segments.
type JobRepository interface {
	Create(ctx context.Context, job *Job) error
	GetByID(ctx context.Context, jobID string) (*Job, error)
	ListByEntity(ctx context.Context, entityID string, limit int) ([]Job, error)
	// Update locks the job, applies fn and writes segments and status back
	// atomically. The job is not written when fn returns an error.
	Update(ctx context.Context, jobID string, fn JobMutator) (*Job, error)
	// ListIDsForReconcile returns ids of jobs with a derived status, oldest
	// update first.
	ListIDsForReconcile(ctx context.Context, limit int) ([]string, error)
}

// EntityRepository stores business entities.
type EntityRepository interface {
	Create(ctx context.Context, e *BusinessEntity) error
	GetByID(ctx context.Context, entityID string) (*BusinessEntity, error)
}

// SequenceRepository mints human-readable references. Implementations must
// serialize concurrent reservations for the same entity.
type SequenceRepository interface {
	Reserve(ctx context.Context, entityID, numericPrefix string) (string, error)
}

// NominalRuleRepository stores nominal code rules.
type NominalRuleRepository interface {
	ListForEntity(ctx context.Context, entityID string) ([]NominalCodeRule, error)
	ReplaceAll(ctx context.Context, codes []NominalCode, rules []NominalCodeRule) error
}
