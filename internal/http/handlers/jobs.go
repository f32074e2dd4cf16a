package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"garage/internal/domain"
	"garage/internal/scheduling"
	"garage/internal/workshop"
)

type createJobRequest struct {
	Description         string  `json:"description"`
	VehicleRegistration string  `json:"vehicleRegistration"`
	EstimatedHours      float64 `json:"estimatedHours"`
	StartDate           *string `json:"startDate"`
}

type rescheduleRequest struct {
	EstimatedHours float64 `json:"estimatedHours"`
	StartDate      *string `json:"startDate"`
}

type allocateRequest struct {
	Lift         string  `json:"lift"`
	Date         *string `json:"date"`
	StartSegment *int    `json:"startSegment"`
	EngineerID   *string `json:"engineerId"`
}

type transitionRequest struct {
	Status domain.SegmentStatus `json:"status"`
}

func parseStart(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := scheduling.ParseDate(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (a *App) CreateJob(w http.ResponseWriter, r *http.Request) {
	var req createJobRequest
	if !a.decode(w, r, &req) {
		return
	}
	start, err := parseStart(req.StartDate)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	job, err := a.Svc.CreateJob(r.Context(), workshop.CreateJobInput{
		EntityID:            chi.URLParam(r, "entityID"),
		Description:         req.Description,
		VehicleRegistration: req.VehicleRegistration,
		EstimatedHours:      req.EstimatedHours,
		StartDate:           start,
	})
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusCreated, job)
}

func (a *App) ListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := a.Svc.ListJobs(r.Context(), chi.URLParam(r, "entityID"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	if jobs == nil {
		jobs = []domain.Job{}
	}
	a.json(w, http.StatusOK, map[string]any{"items": jobs})
}

func (a *App) GetJob(w http.ResponseWriter, r *http.Request) {
	job, err := a.Svc.GetJob(r.Context(), chi.URLParam(r, "jobID"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, job)
}

func (a *App) RescheduleJob(w http.ResponseWriter, r *http.Request) {
	var req rescheduleRequest
	if !a.decode(w, r, &req) {
		return
	}
	start, err := parseStart(req.StartDate)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	job, err := a.Svc.RescheduleJob(r.Context(), chi.URLParam(r, "jobID"), req.EstimatedHours, start)
	a.respondJob(w, r, job, err)
}

func (a *App) AllocateSegment(w http.ResponseWriter, r *http.Request) {
	var req allocateRequest
	if !a.decode(w, r, &req) {
		return
	}
	job, err := a.Svc.AllocateSegment(r.Context(), chi.URLParam(r, "jobID"), chi.URLParam(r, "segmentID"), scheduling.Allocation{
		Lift:         req.Lift,
		Date:         req.Date,
		StartSegment: req.StartSegment,
		EngineerID:   req.EngineerID,
	})
	a.respondJob(w, r, job, err)
}

func (a *App) TransitionSegment(w http.ResponseWriter, r *http.Request) {
	var req transitionRequest
	if !a.decode(w, r, &req) {
		return
	}
	job, err := a.Svc.TransitionSegment(r.Context(), chi.URLParam(r, "jobID"), chi.URLParam(r, "segmentID"), req.Status)
	a.respondJob(w, r, job, err)
}

func (a *App) InvoiceJob(w http.ResponseWriter, r *http.Request) {
	job, err := a.Svc.MarkInvoiced(r.Context(), chi.URLParam(r, "jobID"))
	a.respondJob(w, r, job, err)
}

func (a *App) CloseJob(w http.ResponseWriter, r *http.Request) {
	job, err := a.Svc.CloseJob(r.Context(), chi.URLParam(r, "jobID"))
	a.respondJob(w, r, job, err)
}

func (a *App) respondJob(w http.ResponseWriter, r *http.Request, job *domain.Job, err error) {
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, job)
}
