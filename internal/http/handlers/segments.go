package handlers

import (
	"net/http"

	"garage/internal/domain"
)

type previewRequest struct {
	EstimatedHours float64 `json:"estimatedHours"`
	StartDate      *string `json:"startDate"`
}

type previewResponse struct {
	Segments []domain.JobSegment `json:"segments"`
	Status   domain.JobStatus    `json:"status"`
}

// PreviewSegments splits an estimate without storing anything, so the
// scheduling UI can show the planned days before a job is created.
func (a *App) PreviewSegments(w http.ResponseWriter, r *http.Request) {
	var req previewRequest
	if !a.decode(w, r, &req) {
		return
	}
	start, err := parseStart(req.StartDate)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	segments, err := a.Splitter.Split(req.EstimatedHours, start)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, previewResponse{Segments: segments, Status: domain.JobUnallocated})
}
