package api

import (
	"net/http"

	"github.com/rs/zerolog"

	respond "github.com/knowyourrights/cards/server/internal/api/respond"
	"github.com/knowyourrights/cards/server/internal/model"
	"github.com/knowyourrights/cards/server/internal/services"
)

type EncounterHandler struct {
	svc *services.EncounterService
	log zerolog.Logger
}

func NewEncounterHandler(svc *services.EncounterService, log zerolog.Logger) *EncounterHandler {
	return &EncounterHandler{svc: svc, log: log}
}

// GetEncounters GET /api/encounters?userId= lists by owner; ?encounterId= fetches one.
func (h *EncounterHandler) GetEncounters(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if id := q.Get("encounterId"); id != "" {
		e, err := h.svc.Get(r.Context(), id)
		if err != nil {
			respond.WriteServiceError(w, h.log, err)
			return
		}
		respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"encounter": e})
		return
	}
	lst, err := h.svc.ListByUser(r.Context(), q.Get("userId"))
	if err != nil {
		respond.WriteServiceError(w, h.log, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"encounters": lst})
}

// CreateEncounter POST /api/encounters
func (h *EncounterHandler) CreateEncounter(w http.ResponseWriter, r *http.Request) {
	var req model.NewEncounter
	if err := decodeJSON(r, &req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	e, err := h.svc.Create(r.Context(), req)
	if err != nil {
		respond.WriteServiceError(w, h.log, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, map[string]interface{}{"encounter": e})
}

// UpdateEncounter PUT /api/encounters
func (h *EncounterHandler) UpdateEncounter(w http.ResponseWriter, r *http.Request) {
	var req struct {
		EncounterID string               `json:"encounterId"`
		Updates     model.EncounterPatch `json:"updates"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	e, err := h.svc.Update(r.Context(), req.EncounterID, req.Updates)
	if err != nil {
		respond.WriteServiceError(w, h.log, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"encounter": e})
}

// ShareEncounter POST /api/encounters/share
func (h *EncounterHandler) ShareEncounter(w http.ResponseWriter, r *http.Request) {
	var req struct {
		EncounterID string   `json:"encounterId"`
		SharedWith  []string `json:"sharedWith"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	e, err := h.svc.Share(r.Context(), req.EncounterID, req.SharedWith)
	if err != nil {
		respond.WriteServiceError(w, h.log, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"encounter": e})
}
