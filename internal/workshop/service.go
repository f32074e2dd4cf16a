// Package workshop runs the job, reference and nominal code workflows on top
// of the pure scheduling, sequence and nominal packages. Every change to a
// job's segments goes through Service so the stored job status is recomputed
// in the same transaction.
package workshop

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"garage/internal/domain"
	"garage/internal/nominal"
	"garage/internal/scheduling"
	"garage/internal/sequence"
)

// DefaultListLimit caps job listings.
const DefaultListLimit = 200

// Service coordinates workshop workflows.
type Service struct {
	entities domain.EntityRepository
	jobs     domain.JobRepository
	refs     domain.SequenceRepository
	rules    domain.NominalRuleRepository
	splitter *scheduling.Splitter
	logger   zerolog.Logger
}

// Deps bundles Service collaborators.
type Deps struct {
	Entities domain.EntityRepository
	Jobs     domain.JobRepository
	Refs     domain.SequenceRepository
	Rules    domain.NominalRuleRepository
	Clock    scheduling.Clock
	Logger   zerolog.Logger
}

func NewService(d Deps) *Service {
	return &Service{
		entities: d.Entities,
		jobs:     d.Jobs,
		refs:     d.Refs,
		rules:    d.Rules,
		splitter: scheduling.NewSplitter(d.Clock),
		logger:   d.Logger.With().Str("component", "workshop").Logger(),
	}
}

// ShortCodeLen is the length of an entity short code.
const ShortCodeLen = 3

// CreateEntity registers a business entity. The short code is stored
// upper-cased and must be unique. Short codes are exactly three letters so
// no entity's reference prefix is a string prefix of another's.
func (s *Service) CreateEntity(ctx context.Context, name, shortCode string) (*domain.BusinessEntity, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("entity name is required: %w", domain.ErrInvalidArgument)
	}
	if strings.TrimSpace(shortCode) == "" {
		return nil, fmt.Errorf("short code is required: %w", domain.ErrInvalidArgument)
	}
	prefix, err := sequence.FullPrefix(shortCode, "")
	if err != nil {
		return nil, err
	}
	if !validShortCode(prefix) {
		return nil, fmt.Errorf("short code %q must be %d letters: %w", shortCode, ShortCodeLen, domain.ErrInvalidArgument)
	}
	e := &domain.BusinessEntity{ID: uuid.NewString(), Name: name, ShortCode: prefix}
	if err := s.entities.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("create entity: %w", err)
	}
	s.logger.Info().Str("entity_id", e.ID).Str("short_code", e.ShortCode).Msg("entity created")
	return e, nil
}

func validShortCode(code string) bool {
	if len(code) != ShortCodeLen {
		return false
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

func (s *Service) GetEntity(ctx context.Context, entityID string) (*domain.BusinessEntity, error) {
	return s.entities.GetByID(ctx, entityID)
}

// CreateJobInput describes a new job. A nil StartDate schedules from today.
type CreateJobInput struct {
	EntityID            string
	Description         string
	VehicleRegistration string
	EstimatedHours      float64
	StartDate           *time.Time
}

// CreateJob reserves a job reference, splits the estimate into daily
// segments and stores the job.
func (s *Service) CreateJob(ctx context.Context, in CreateJobInput) (*domain.Job, error) {
	if strings.TrimSpace(in.EntityID) == "" {
		return nil, fmt.Errorf("entity id is required: %w", domain.ErrInvalidArgument)
	}
	segments, err := s.splitter.Split(in.EstimatedHours, in.StartDate)
	if err != nil {
		return nil, err
	}
	reference, err := s.ReserveReference(ctx, in.EntityID, sequence.KindJob)
	if err != nil {
		return nil, err
	}

	job := &domain.Job{
		ID:                  uuid.NewString(),
		EntityID:            in.EntityID,
		Reference:           reference,
		Description:         strings.TrimSpace(in.Description),
		VehicleRegistration: strings.ToUpper(strings.TrimSpace(in.VehicleRegistration)),
		EstimatedHours:      in.EstimatedHours,
		Segments:            segments,
		Status:              scheduling.CalculateJobStatus(segments),
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("create job %s: %w", reference, err)
	}
	s.logger.Info().
		Str("job_id", job.ID).
		Str("reference", job.Reference).
		Float64("hours", job.EstimatedHours).
		Int("segments", len(job.Segments)).
		Msg("job created")
	return job, nil
}

func (s *Service) GetJob(ctx context.Context, jobID string) (*domain.Job, error) {
	return s.jobs.GetByID(ctx, jobID)
}

func (s *Service) ListJobs(ctx context.Context, entityID string) ([]domain.Job, error) {
	return s.jobs.ListByEntity(ctx, entityID, DefaultListLimit)
}

// RescheduleJob re-splits a job that has not started yet.
func (s *Service) RescheduleJob(ctx context.Context, jobID string, estimatedHours float64, start *time.Time) (*domain.Job, error) {
	fresh, err := s.splitter.Split(estimatedHours, start)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, jobID, "reschedule", func(job *domain.Job) error {
		return scheduling.Reschedule(job, fresh, estimatedHours)
	})
}

// AllocateSegment places a segment on a lift.
func (s *Service) AllocateSegment(ctx context.Context, jobID, segmentID string, a scheduling.Allocation) (*domain.Job, error) {
	return s.mutate(ctx, jobID, "allocate", func(job *domain.Job) error {
		return scheduling.Allocate(job, segmentID, a)
	})
}

// TransitionSegment moves a segment to a new workshop state.
func (s *Service) TransitionSegment(ctx context.Context, jobID, segmentID string, to domain.SegmentStatus) (*domain.Job, error) {
	return s.mutate(ctx, jobID, "transition", func(job *domain.Job) error {
		return scheduling.Transition(job, segmentID, to)
	})
}

// MarkInvoiced records that billing has invoiced the job. Only completed jobs
// can be invoiced.
func (s *Service) MarkInvoiced(ctx context.Context, jobID string) (*domain.Job, error) {
	return s.mutate(ctx, jobID, "invoice", func(job *domain.Job) error {
		if job.Status != domain.JobComplete {
			return fmt.Errorf("job %s is %s, want %s: %w", job.ID, job.Status, domain.JobComplete, domain.ErrJobLocked)
		}
		job.Status = domain.JobInvoiced
		return nil
	})
}

// CloseJob closes a job. Closing an already closed job is a no-op.
func (s *Service) CloseJob(ctx context.Context, jobID string) (*domain.Job, error) {
	return s.mutate(ctx, jobID, "close", func(job *domain.Job) error {
		job.Status = domain.JobClosed
		return nil
	})
}

// ReserveReference mints the next reference of kind for an entity.
func (s *Service) ReserveReference(ctx context.Context, entityID string, kind sequence.Kind) (string, error) {
	prefix, err := kind.Prefix()
	if err != nil {
		return "", err
	}
	ref, err := s.refs.Reserve(ctx, entityID, prefix)
	if err != nil {
		if sequence.IsMissingShortCode(err) {
			s.logger.Error().Err(err).Str("entity_id", entityID).Msg("entity has no short code")
		}
		return "", fmt.Errorf("reserve %s reference: %w", kind, err)
	}
	return ref, nil
}

// AssignNominalCodes classifies each line item and matches it against the
// entity's rules. Items without a match carry a nil code.
func (s *Service) AssignNominalCodes(ctx context.Context, entityID string, items []domain.LineItem) ([]nominal.Assignment, error) {
	rules, err := s.rules.ListForEntity(ctx, entityID)
	if err != nil {
		return nil, fmt.Errorf("load nominal rules: %w", err)
	}
	return nominal.AssignAll(items, entityID, rules), nil
}

// ImportRules replaces the stored nominal code rule set.
func (s *Service) ImportRules(ctx context.Context, file *nominal.RuleFile) error {
	if err := s.rules.ReplaceAll(ctx, file.Codes, file.Rules); err != nil {
		return fmt.Errorf("import nominal rules: %w", err)
	}
	s.logger.Info().Int("codes", len(file.Codes)).Int("rules", len(file.Rules)).Msg("nominal rules imported")
	return nil
}

// mutate runs fn inside a job transaction and recomputes the derived status
// afterwards, so callers cannot forget to keep it in sync.
func (s *Service) mutate(ctx context.Context, jobID, op string, fn domain.JobMutator) (*domain.Job, error) {
	var before domain.JobStatus
	job, err := s.jobs.Update(ctx, jobID, func(job *domain.Job) error {
		before = job.Status
		if err := fn(job); err != nil {
			return err
		}
		if job.Status.Derived() {
			job.Status = scheduling.CalculateJobStatus(job.Segments)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s job %s: %w", op, jobID, err)
	}
	if before != job.Status {
		s.logger.Info().
			Str("job_id", job.ID).
			Str("op", op).
			Str("from", string(before)).
			Str("to", string(job.Status)).
			Msg("job status changed")
	}
	return job, nil
}
