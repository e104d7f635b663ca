package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/knowyourrights/cards/server/internal/metrics"
	"github.com/knowyourrights/cards/server/internal/model"
	"github.com/knowyourrights/cards/server/internal/validate"
)

// AlertService fans an emergency alert out to the contacts supplied by the
// caller. There is no transport: every delivery is reported as sent and
// nothing is stored.
type AlertService struct {
	appName string
	log     zerolog.Logger

	now   func() time.Time
	newID func(prefix string) string
}

func NewAlertService(appName string, log zerolog.Logger) *AlertService {
	return &AlertService{appName: appName, log: log, now: utcNow, newID: newID}
}

// DefaultMessage is the alert text used when the caller supplies none.
func (s *AlertService) DefaultMessage(location string) string {
	if location == "" {
		location = "Unknown"
	}
	return fmt.Sprintf("Emergency alert from %s. Location: %s. Please check on me.", s.appName, location)
}

func (s *AlertService) Dispatch(ctx context.Context, req model.AlertRequest) (*model.AlertDispatchResult, error) {
	if err := validate.NonEmpty("userId", req.UserID); err != nil {
		return nil, err
	}
	if len(req.Contacts) == 0 {
		return nil, fmt.Errorf("%w: contacts must not be empty", model.ErrInvalidArgument)
	}

	msg := req.Message
	if msg == "" {
		msg = s.DefaultMessage(req.Location)
	}

	results := make([]model.AlertDelivery, 0, len(req.Contacts))
	for _, c := range req.Contacts {
		results = append(results, model.AlertDelivery{
			ContactID:    c.ID,
			ContactName:  c.Name,
			ContactPhone: c.Phone,
			Status:       model.DeliverySent,
			Timestamp:    s.now(),
		})
		metrics.AlertDeliveriesTotal.WithLabelValues(string(model.DeliverySent)).Inc()
	}
	out := &model.AlertDispatchResult{
		AlertID: s.newID(prefixAlert),
		Message: msg,
		SentTo:  len(results),
		Results: results,
	}
	metrics.AlertsDispatchedTotal.Inc()

	s.log.Info().
		Str("alert_id", out.AlertID).
		Str("user_id", req.UserID).
		Str("location", req.Location).
		Int("sent_to", out.SentTo).
		Msg("alert dispatched")
	return out, nil
}

// History returns past alerts for userID. Alerts are never persisted, so the
// history is always empty.
func (s *AlertService) History(ctx context.Context, userID string) ([]model.AlertDispatchResult, error) {
	if err := validate.NonEmpty("userId", userID); err != nil {
		return nil, err
	}
	return []model.AlertDispatchResult{}, nil
}
