package services

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/knowyourrights/cards/server/internal/model"
)

const maxFrameButtons = 4

// Frame button indexes, 1-based as sent by Farcaster clients.
const (
	FrameViewLaws    = 1
	FrameRecord      = 2
	FrameAlert       = 3
	FrameChangeState = 4
)

// FrameService answers Farcaster frame button presses with the next view.
type FrameService struct {
	baseURL             string
	defaultJurisdiction string
}

func NewFrameService(baseURL, defaultJurisdiction string) *FrameService {
	return &FrameService{baseURL: strings.TrimRight(baseURL, "/"), defaultJurisdiction: defaultJurisdiction}
}

func (s *FrameService) image(query url.Values) string {
	return s.baseURL + "/api/frame/image?" + query.Encode()
}

func (s *FrameService) openApp() model.FrameButton {
	return model.FrameButton{Text: "Open App", Action: "link", Target: s.baseURL}
}

// Action maps a pressed button to the next frame. Unknown indexes return the main menu.
func (s *FrameService) Action(buttonIndex int, state string) model.FrameResponse {
	if state == "" {
		state = s.defaultJurisdiction
	}
	back := model.FrameButton{Text: "Back to Menu"}

	var resp model.FrameResponse
	switch buttonIndex {
	case FrameViewLaws:
		resp.Image = s.image(url.Values{"state": {state}, "view": {"laws"}})
		resp.Buttons = []model.FrameButton{back, {Text: "Change State"}, {Text: "View Scripts"}, s.openApp()}
	case FrameRecord:
		resp.Image = s.image(url.Values{"view": {"record"}})
		resp.Buttons = []model.FrameButton{back, s.openApp()}
	case FrameAlert:
		resp.Image = s.image(url.Values{"view": {"alert"}})
		resp.Buttons = []model.FrameButton{back, s.openApp()}
	case FrameChangeState:
		resp.Image = s.image(url.Values{"view": {"states"}})
		resp.Buttons = []model.FrameButton{{Text: "California"}, {Text: "New York"}, {Text: "Texas"}, back}
	default:
		resp.Image = s.image(url.Values{"state": {state}})
		resp.Buttons = []model.FrameButton{
			{Text: fmt.Sprintf("View %s Laws", state)},
			{Text: "Record"},
			{Text: "Alert"},
			{Text: "Change State"},
		}
	}
	if len(resp.Buttons) > maxFrameButtons {
		resp.Buttons = resp.Buttons[:maxFrameButtons]
	}
	return resp
}
