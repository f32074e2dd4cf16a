package handlers

import (
	"encoding/csv"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"garage/internal/domain"
	"garage/internal/nominal"
)

// Unassigned marks line items no rule matched.
const Unassigned = "Unassigned"

type assignRequest struct {
	Items []domain.LineItem `json:"items"`
}

func (a *App) assign(w http.ResponseWriter, r *http.Request) ([]nominal.Assignment, bool) {
	var req assignRequest
	if !a.decode(w, r, &req) {
		return nil, false
	}
	out, err := a.Svc.AssignNominalCodes(r.Context(), chi.URLParam(r, "entityID"), req.Items)
	if err != nil {
		a.fail(w, r, err)
		return nil, false
	}
	return out, true
}

func (a *App) AssignNominalCodes(w http.ResponseWriter, r *http.Request) {
	out, ok := a.assign(w, r)
	if !ok {
		return
	}
	if out == nil {
		out = []nominal.Assignment{}
	}
	a.json(w, http.StatusOK, map[string]any{"items": out})
}

// ExportNominalCodes renders the assignments as the CSV the accounting
// package imports.
func (a *App) ExportNominalCodes(w http.ResponseWriter, r *http.Request) {
	out, ok := a.assign(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="nominal-codes.csv"`)
	w.WriteHeader(http.StatusOK)

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"description", "item_type", "nominal_code", "net_amount"})
	for _, as := range out {
		code := Unassigned
		if as.NominalCodeID != nil {
			code = *as.NominalCodeID
		}
		_ = cw.Write([]string{
			as.Item.Description,
			string(as.ItemType),
			code,
			strconv.FormatFloat(as.Item.NetAmount, 'f', 2, 64),
		})
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		a.Logger.Error().Err(err).Msg("write nominal csv")
	}
}
