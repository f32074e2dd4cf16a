package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"garage/internal/domain"
	"garage/internal/middleware"
	"garage/internal/nominal"
	"garage/internal/scheduling"
	"garage/internal/sequence"
	"garage/internal/workshop"
)

// Service is the slice of workshop.Service the HTTP layer needs.
type Service interface {
	CreateEntity(ctx context.Context, name, shortCode string) (*domain.BusinessEntity, error)
	GetEntity(ctx context.Context, entityID string) (*domain.BusinessEntity, error)
	CreateJob(ctx context.Context, in workshop.CreateJobInput) (*domain.Job, error)
	GetJob(ctx context.Context, jobID string) (*domain.Job, error)
	ListJobs(ctx context.Context, entityID string) ([]domain.Job, error)
	RescheduleJob(ctx context.Context, jobID string, estimatedHours float64, start *time.Time) (*domain.Job, error)
	AllocateSegment(ctx context.Context, jobID, segmentID string, a scheduling.Allocation) (*domain.Job, error)
	TransitionSegment(ctx context.Context, jobID, segmentID string, to domain.SegmentStatus) (*domain.Job, error)
	MarkInvoiced(ctx context.Context, jobID string) (*domain.Job, error)
	CloseJob(ctx context.Context, jobID string) (*domain.Job, error)
	ReserveReference(ctx context.Context, entityID string, kind sequence.Kind) (string, error)
	AssignNominalCodes(ctx context.Context, entityID string, items []domain.LineItem) ([]nominal.Assignment, error)
}

type App struct {
	Svc      Service
	Splitter *scheduling.Splitter
	Logger   zerolog.Logger
}

func NewApp(svc Service, splitter *scheduling.Splitter, logger zerolog.Logger) *App {
	if splitter == nil {
		splitter = scheduling.NewSplitter(nil)
	}
	return &App{Svc: svc, Splitter: splitter, Logger: logger}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, errCode, message string) {
	a.json(w, code, map[string]any{
		"error": map[string]string{"code": errCode, "message": message},
	})
}

func (a *App) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return false
	}
	return true
}

// fail maps domain errors onto HTTP statuses. Unexpected errors are logged and
// hidden behind a generic message.
func (a *App) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, domain.ErrInvalidHours):
		a.error(w, http.StatusBadRequest, "invalid_hours", err.Error())
	case errors.Is(err, domain.ErrInvalidArgument):
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, domain.ErrInvalidTransition):
		a.error(w, http.StatusConflict, "invalid_transition", err.Error())
	case errors.Is(err, domain.ErrJobLocked):
		a.error(w, http.StatusConflict, "job_locked", err.Error())
	case errors.Is(err, domain.ErrConfiguration):
		a.error(w, http.StatusUnprocessableEntity, "configuration", err.Error())
	default:
		a.Logger.Error().
			Err(err).
			Str("request_id", middleware.RequestIDFromContext(r.Context())).
			Str("path", r.URL.Path).
			Msg("request failed")
		a.error(w, http.StatusInternalServerError, "internal", "internal error")
	}
}
