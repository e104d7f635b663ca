package client

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knowyourrights/cards/server/internal/api"
	"github.com/knowyourrights/cards/server/internal/model"
	"github.com/knowyourrights/cards/server/internal/services"
	"github.com/knowyourrights/cards/server/internal/store/kv/memory"
	"github.com/knowyourrights/cards/server/internal/store/kvstore"
)

type alwaysHealthy struct{}

func (alwaysHealthy) IsHealthy() bool { return true }
func (alwaysHealthy) Components() map[string]bool {
	return map[string]bool{"store": true}
}

func newTestClient(t *testing.T) *Client {
	t.Helper()
	st := kvstore.New(memory.New())
	svc := api.Services{
		Users:      services.NewUserService(st, "CA"),
		Encounters: services.NewEncounterService(st),
		Contacts:   services.NewContactService(st),
		Alerts:     services.NewAlertService("Know Your Rights Cards app", zerolog.Nop()),
		Frames:     services.NewFrameService("http://localhost:3000", "CA"),
	}
	srv := httptest.NewServer(api.NewRouter(svc, alwaysHealthy{}, zerolog.Nop()))
	t.Cleanup(srv.Close)
	return New(srv.URL)
}

func TestClient_UserRoundTrip(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	u, outcome, err := c.FindOrCreateUser(ctx, "u1", "")
	require.NoError(t, err)
	assert.Equal(t, model.OutcomeCreated, outcome)
	assert.Equal(t, "u1", u.UserID)

	_, outcome, err = c.FindOrCreateUser(ctx, "u1", "")
	require.NoError(t, err)
	assert.Equal(t, model.OutcomeFound, outcome)

	tier := model.TierPremium
	u, err = c.UpdateUser(ctx, "u1", model.UserPatch{SubscriptionStatus: &tier})
	require.NoError(t, err)
	assert.Equal(t, model.TierPremium, u.SubscriptionStatus)

	stale := int64(1)
	_, err = c.UpdateUser(ctx, "u1", model.UserPatch{SubscriptionStatus: &tier, ExpectedVersion: &stale})
	assert.ErrorIs(t, err, model.ErrConflict)

	_, err = c.UpdateUser(ctx, "ghost", model.UserPatch{SubscriptionStatus: &tier})
	assert.ErrorIs(t, err, model.ErrNotFound)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 404, apiErr.Status)
	assert.Contains(t, apiErr.Message, "ghost")

	created, err := c.CreateUser(ctx, "fc-1", "NY")
	require.NoError(t, err)
	assert.Equal(t, "NY", created.CurrentLocation)

	_, _, err = c.FindOrCreateUser(ctx, "", "")
	assert.ErrorIs(t, err, model.ErrInvalidArgument)
}

func TestClient_EncountersContactsAlerts(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	e, err := c.CreateEncounter(ctx, model.NewEncounter{UserID: "u2"})
	require.NoError(t, err)
	assert.Equal(t, "Unknown", e.Location)

	notes := "traffic stop"
	e, err = c.UpdateEncounter(ctx, e.EncounterID, model.EncounterPatch{Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, notes, e.Notes)

	e, err = c.ShareEncounter(ctx, e.EncounterID, "fc-9")
	require.NoError(t, err)
	assert.Equal(t, []string{"fc-9"}, e.SharedWith)

	got, err := c.GetEncounter(ctx, e.EncounterID)
	require.NoError(t, err)
	assert.Equal(t, e.Version, got.Version)

	lst, err := c.ListEncounters(ctx, "u2")
	require.NoError(t, err)
	assert.Len(t, lst, 1)

	contact, err := c.AddContact(ctx, "u2", model.NewContact{Name: "Jane Doe", Phone: "555-0100"})
	require.NoError(t, err)
	contacts, err := c.ListContacts(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, []model.TrustedContact{*contact}, contacts)

	res, err := c.DispatchAlert(ctx, model.AlertRequest{UserID: "u2", Location: "CA", Contacts: contacts})
	require.NoError(t, err)
	assert.Equal(t, 1, res.SentTo)
	assert.Equal(t, "Emergency alert from Know Your Rights Cards app. Location: CA. Please check on me.", res.Message)

	require.NoError(t, c.RemoveContact(ctx, "u2", contact.ID))
	contacts, err = c.ListContacts(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, contacts)

	hist, err := c.AlertHistory(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, hist)

	status, err := c.Health(ctx)
	require.NoError(t, err)
	assert.Equal(t, "healthy", status)
}
