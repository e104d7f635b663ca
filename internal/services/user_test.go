package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knowyourrights/cards/server/internal/model"
)

func newTestUserService(t *testing.T) *UserService {
	t.Helper()
	svc := NewUserService(newTestStore(t), "CA")
	svc.now = fixedClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	svc.newID = seqIDs()
	return svc
}

func TestFindOrCreate_RequiresIdentifier(t *testing.T) {
	svc := newTestUserService(t)
	_, _, err := svc.FindOrCreate(ctx, "", "")
	assert.ErrorIs(t, err, model.ErrInvalidArgument)
}

func TestFindOrCreate_IdempotentByUserID(t *testing.T) {
	svc := newTestUserService(t)

	first, outcome, err := svc.FindOrCreate(ctx, "u1", "")
	require.NoError(t, err)
	assert.Equal(t, model.OutcomeCreated, outcome)
	assert.Equal(t, "u1", first.UserID)
	assert.Equal(t, "CA", first.CurrentLocation)
	assert.Equal(t, []string{"CA"}, first.SavedStates)
	assert.Equal(t, model.TierFree, first.SubscriptionStatus)
	assert.Empty(t, first.TrustedContacts)

	second, outcome, err := svc.FindOrCreate(ctx, "u1", "")
	require.NoError(t, err)
	assert.Equal(t, model.OutcomeFound, outcome)
	assert.Equal(t, first, second)
}

func TestFindOrCreate_ByFarcasterID(t *testing.T) {
	svc := newTestUserService(t)

	u, outcome, err := svc.FindOrCreate(ctx, "", "fc-42")
	require.NoError(t, err)
	assert.Equal(t, model.OutcomeCreated, outcome)
	assert.Equal(t, "user-1", u.UserID)
	assert.Equal(t, "fc-42", u.FarcasterID)

	again, outcome, err := svc.FindOrCreate(ctx, "", "fc-42")
	require.NoError(t, err)
	assert.Equal(t, model.OutcomeFound, outcome)
	assert.Equal(t, u.UserID, again.UserID)
}

func TestFindOrCreate_SharedFarcasterIDReturnsOldest(t *testing.T) {
	svc := newTestUserService(t)
	ids := []string{"user-b", "user-a"}
	svc.newID = func(string) string {
		id := ids[0]
		ids = ids[1:]
		return id
	}

	older, err := svc.Create(ctx, "fc-dup", "")
	require.NoError(t, err)
	newer, err := svc.Create(ctx, "fc-dup", "")
	require.NoError(t, err)
	require.True(t, newer.CreationTime.After(older.CreationTime))

	for i := 0; i < 50; i++ {
		u, outcome, err := svc.FindOrCreate(ctx, "", "fc-dup")
		require.NoError(t, err)
		assert.Equal(t, model.OutcomeFound, outcome)
		assert.Equal(t, "user-b", u.UserID)
	}
}

func TestFindOrCreate_BlankIdentifiers(t *testing.T) {
	svc := newTestUserService(t)

	_, _, err := svc.FindOrCreate(ctx, "  ", "\t")
	assert.ErrorIs(t, err, model.ErrInvalidArgument)

	u, outcome, err := svc.FindOrCreate(ctx, "  ", "fc-9")
	require.NoError(t, err)
	assert.Equal(t, model.OutcomeCreated, outcome)
	assert.Equal(t, "user-1", u.UserID)

	_, err = svc.store.Users().Get(ctx, "  ")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestUpdateUser_MergesPresentFields(t *testing.T) {
	svc := newTestUserService(t)
	created, _, err := svc.FindOrCreate(ctx, "u1", "fc-1")
	require.NoError(t, err)

	loc := "ny"
	states := []string{"ca", "NY"}
	tier := model.TierPremium
	got, err := svc.Update(ctx, "u1", model.UserPatch{
		CurrentLocation:    &loc,
		SavedStates:        &states,
		SubscriptionStatus: &tier,
	})
	require.NoError(t, err)
	assert.Equal(t, "NY", got.CurrentLocation)
	assert.Equal(t, []string{"CA", "NY"}, got.SavedStates)
	assert.Equal(t, model.TierPremium, got.SubscriptionStatus)
	assert.Equal(t, "fc-1", got.FarcasterID)
	assert.Equal(t, int64(2), got.Version)
	assert.Equal(t, created.CreationTime, got.CreationTime)
	assert.True(t, got.UpdateTime.After(created.UpdateTime))
}

func TestUpdateUser_UnknownLeavesStoreUnchanged(t *testing.T) {
	svc := newTestUserService(t)
	loc := "TX"

	_, err := svc.Update(ctx, "ghost", model.UserPatch{CurrentLocation: &loc})
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = svc.store.Users().Get(ctx, "ghost")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestUpdateUser_StaleVersionConflicts(t *testing.T) {
	svc := newTestUserService(t)
	_, _, err := svc.FindOrCreate(ctx, "u1", "")
	require.NoError(t, err)

	loc := "TX"
	v := int64(1)
	_, err = svc.Update(ctx, "u1", model.UserPatch{CurrentLocation: &loc, ExpectedVersion: &v})
	require.NoError(t, err)

	loc2 := "NY"
	_, err = svc.Update(ctx, "u1", model.UserPatch{CurrentLocation: &loc2, ExpectedVersion: &v})
	assert.ErrorIs(t, err, model.ErrConflict)

	u, err := svc.store.Users().Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "TX", u.CurrentLocation)
	assert.Equal(t, int64(2), u.Version)
}

func TestUpdateUser_RejectsInvalidPatch(t *testing.T) {
	svc := newTestUserService(t)
	_, _, err := svc.FindOrCreate(ctx, "u1", "")
	require.NoError(t, err)

	bad := "California"
	_, err = svc.Update(ctx, "u1", model.UserPatch{CurrentLocation: &bad})
	assert.ErrorIs(t, err, model.ErrInvalidArgument)

	tier := model.SubscriptionTier("gold")
	_, err = svc.Update(ctx, "u1", model.UserPatch{SubscriptionStatus: &tier})
	assert.ErrorIs(t, err, model.ErrInvalidArgument)

	_, err = svc.Update(ctx, "", model.UserPatch{})
	assert.ErrorIs(t, err, model.ErrInvalidArgument)
}

func TestCreateUser(t *testing.T) {
	svc := newTestUserService(t)

	u, err := svc.Create(ctx, "fc-9", "")
	require.NoError(t, err)
	assert.Equal(t, "user-1", u.UserID)
	assert.Equal(t, "CA", u.CurrentLocation)
	assert.Equal(t, int64(1), u.Version)

	tx, err := svc.Create(ctx, "fc-9", "tx")
	require.NoError(t, err)
	assert.Equal(t, "TX", tx.CurrentLocation)
	assert.NotEqual(t, u.UserID, tx.UserID)

	_, err = svc.Create(ctx, "", "Texas")
	assert.ErrorIs(t, err, model.ErrInvalidArgument)
}
