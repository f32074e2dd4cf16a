package workshop

import (
	"context"
	"errors"
	"fmt"
	"time"

	"garage/internal/domain"
	"garage/internal/scheduling"
)

// ReconcileResult summarises one reconcile pass.
type ReconcileResult struct {
	Checked int
	Fixed   int
	Failed  int
}

// ReconcileStatuses recomputes the stored status of up to limit jobs whose
// status is derived from segments, fixing any that drifted.
func (s *Service) ReconcileStatuses(ctx context.Context, limit int) (ReconcileResult, error) {
	var res ReconcileResult
	ids, err := s.jobs.ListIDsForReconcile(ctx, limit)
	if err != nil {
		return res, err
	}
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		res.Checked++
		var drifted bool
		_, err := s.jobs.Update(ctx, id, func(job *domain.Job) error {
			if !job.Status.Derived() {
				return nil
			}
			want := scheduling.CalculateJobStatus(job.Segments)
			drifted = want != job.Status
			job.Status = want
			return nil
		})
		switch {
		case err == nil && drifted:
			res.Fixed++
		case err != nil && !errors.Is(err, domain.ErrNotFound):
			res.Failed++
			s.logger.Error().Err(err).Str("job_id", id).Msg("reconcile failed")
		}
	}
	return res, nil
}

// RunReconciler reconciles in batches every interval until ctx is done.
func (s *Service) RunReconciler(ctx context.Context, interval time.Duration, batch int) error {
	if interval <= 0 {
		return fmt.Errorf("reconcile interval %s must be positive: %w", interval, domain.ErrInvalidArgument)
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		res, err := s.ReconcileStatuses(ctx, batch)
		if err != nil && !errors.Is(err, context.Canceled) {
			s.logger.Error().Err(err).Msg("reconcile pass failed")
		}
		if res.Fixed > 0 || res.Failed > 0 {
			s.logger.Info().Int("checked", res.Checked).Int("fixed", res.Fixed).Int("failed", res.Failed).Msg("reconcile pass")
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
