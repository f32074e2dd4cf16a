package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"garage/internal/sequence"
)

func (a *App) ReserveReference(w http.ResponseWriter, r *http.Request) {
	kind := sequence.Kind(chi.URLParam(r, "kind"))
	ref, err := a.Svc.ReserveReference(r.Context(), chi.URLParam(r, "entityID"), kind)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusCreated, map[string]string{"kind": string(kind), "reference": ref})
}
