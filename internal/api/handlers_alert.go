package api

import (
	"net/http"

	"github.com/rs/zerolog"

	respond "github.com/knowyourrights/cards/server/internal/api/respond"
	"github.com/knowyourrights/cards/server/internal/model"
	"github.com/knowyourrights/cards/server/internal/services"
)

type AlertHandler struct {
	svc *services.AlertService
	log zerolog.Logger
}

func NewAlertHandler(svc *services.AlertService, log zerolog.Logger) *AlertHandler {
	return &AlertHandler{svc: svc, log: log}
}

// alertResponse flattens the dispatch result next to a success flag.
type alertResponse struct {
	Success bool `json:"success"`
	model.AlertDispatchResult
}

// DispatchAlert POST /api/alerts
func (h *AlertHandler) DispatchAlert(w http.ResponseWriter, r *http.Request) {
	var req model.AlertRequest
	if err := decodeJSON(r, &req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	res, err := h.svc.Dispatch(r.Context(), req)
	if err != nil {
		respond.WriteServiceError(w, h.log, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, alertResponse{Success: true, AlertDispatchResult: *res})
}

// AlertHistory GET /api/alerts?userId=
func (h *AlertHandler) AlertHistory(w http.ResponseWriter, r *http.Request) {
	hist, err := h.svc.History(r.Context(), r.URL.Query().Get("userId"))
	if err != nil {
		respond.WriteServiceError(w, h.log, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"alerts": hist})
}
