package api

import (
	"net/http"

	"github.com/rs/zerolog"

	respond "github.com/knowyourrights/cards/server/internal/api/respond"
	"github.com/knowyourrights/cards/server/internal/model"
	"github.com/knowyourrights/cards/server/internal/services"
)

type UserHandler struct {
	svc *services.UserService
	log zerolog.Logger
}

func NewUserHandler(svc *services.UserService, log zerolog.Logger) *UserHandler {
	return &UserHandler{svc: svc, log: log}
}

// FindOrCreateUser GET /api/user?userId=&farcasterId=
func (h *UserHandler) FindOrCreateUser(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	u, outcome, err := h.svc.FindOrCreate(r.Context(), q.Get("userId"), q.Get("farcasterId"))
	if err != nil {
		respond.WriteServiceError(w, h.log, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"user": u, "outcome": outcome})
}

// UpdateUser PUT /api/user
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID  string          `json:"userId"`
		Updates model.UserPatch `json:"updates"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	u, err := h.svc.Update(r.Context(), req.UserID, req.Updates)
	if err != nil {
		respond.WriteServiceError(w, h.log, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"user": u})
}

// CreateUser POST /api/user
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FarcasterID     string `json:"farcasterId"`
		CurrentLocation string `json:"currentLocation"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	u, err := h.svc.Create(r.Context(), req.FarcasterID, req.CurrentLocation)
	if err != nil {
		respond.WriteServiceError(w, h.log, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, map[string]interface{}{"user": u})
}
