package api

import (
	"net/http"

	"github.com/rs/zerolog"

	respond "github.com/knowyourrights/cards/server/internal/api/respond"
	"github.com/knowyourrights/cards/server/internal/model"
	"github.com/knowyourrights/cards/server/internal/services"
)

type ContactHandler struct {
	svc *services.ContactService
	log zerolog.Logger
}

func NewContactHandler(svc *services.ContactService, log zerolog.Logger) *ContactHandler {
	return &ContactHandler{svc: svc, log: log}
}

// AddContact POST /api/trusted-contacts
func (h *ContactHandler) AddContact(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID  string           `json:"userId"`
		Contact model.NewContact `json:"contact"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	c, err := h.svc.Add(r.Context(), req.UserID, req.Contact)
	if err != nil {
		respond.WriteServiceError(w, h.log, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, map[string]interface{}{"contact": c})
}

// RemoveContact DELETE /api/trusted-contacts?userId=&contactId=
func (h *ContactHandler) RemoveContact(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if err := h.svc.Remove(r.Context(), q.Get("userId"), q.Get("contactId")); err != nil {
		respond.WriteServiceError(w, h.log, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// ListContacts GET /api/trusted-contacts?userId=
func (h *ContactHandler) ListContacts(w http.ResponseWriter, r *http.Request) {
	lst, err := h.svc.List(r.Context(), r.URL.Query().Get("userId"))
	if err != nil {
		respond.WriteServiceError(w, h.log, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"contacts": lst})
}
