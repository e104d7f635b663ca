//go:build e2e
// +build e2e

package e2e

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knowyourrights/cards/server/internal/model"
)

// Blackbox checks of store guarantees through the public API only.

func TestInvariant_FindOrCreateIsIdempotent(t *testing.T) {
	c := devClient(t)
	ctx := context.Background()
	userID := uniq("user")

	first, _, err := c.FindOrCreateUser(ctx, userID, "")
	require.NoError(t, err)
	second, outcome, err := c.FindOrCreateUser(ctx, userID, "")
	require.NoError(t, err)
	assert.Equal(t, model.OutcomeFound, outcome)
	assert.Equal(t, first.UserID, second.UserID)
	assert.Equal(t, first.Version, second.Version)
}

func TestInvariant_RemovedContactNeverListed(t *testing.T) {
	c := devClient(t)
	ctx := context.Background()
	userID := uniq("user")

	a, err := c.AddContact(ctx, userID, model.NewContact{Name: "A", Phone: "1"})
	require.NoError(t, err)
	for _, id := range []string{a.ID, "contact-never-existed"} {
		require.NoError(t, c.RemoveContact(ctx, userID, id))
		lst, err := c.ListContacts(ctx, userID)
		require.NoError(t, err)
		for _, got := range lst {
			assert.NotEqual(t, id, got.ID)
		}
	}
}

func TestInvariant_UpdateUnknownChangesNothing(t *testing.T) {
	c := devClient(t)
	ctx := context.Background()
	ghost := uniq("ghost")
	loc := "TX"

	_, err := c.UpdateUser(ctx, ghost, model.UserPatch{CurrentLocation: &loc})
	assert.ErrorIs(t, err, model.ErrNotFound)
	notes := "x"
	_, err = c.UpdateEncounter(ctx, ghost, model.EncounterPatch{Notes: &notes})
	assert.ErrorIs(t, err, model.ErrNotFound)

	lst, err := c.ListEncounters(ctx, ghost)
	require.NoError(t, err)
	assert.Empty(t, lst)
}
