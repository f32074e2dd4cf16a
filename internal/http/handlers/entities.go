package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type createEntityRequest struct {
	Name      string `json:"name"`
	ShortCode string `json:"shortCode"`
}

func (a *App) CreateEntity(w http.ResponseWriter, r *http.Request) {
	var req createEntityRequest
	if !a.decode(w, r, &req) {
		return
	}
	e, err := a.Svc.CreateEntity(r.Context(), req.Name, req.ShortCode)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusCreated, e)
}

func (a *App) GetEntity(w http.ResponseWriter, r *http.Request) {
	e, err := a.Svc.GetEntity(r.Context(), chi.URLParam(r, "entityID"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, e)
}
