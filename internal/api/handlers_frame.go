package api

import (
	"net/http"

	respond "github.com/knowyourrights/cards/server/internal/api/respond"
	"github.com/knowyourrights/cards/server/internal/services"
)

type FrameHandler struct {
	svc *services.FrameService
}

func NewFrameHandler(svc *services.FrameService) *FrameHandler { return &FrameHandler{svc: svc} }

// FrameAction POST /api/frame/action
func (h *FrameHandler) FrameAction(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UntrustedData struct {
			ButtonIndex int    `json:"buttonIndex"`
			State       string `json:"state"`
		} `json:"untrustedData"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	respond.WriteJSON(w, http.StatusOK, h.svc.Action(req.UntrustedData.ButtonIndex, req.UntrustedData.State))
}
