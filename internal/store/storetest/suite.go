package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/knowyourrights/cards/server/internal/model"
	"github.com/knowyourrights/cards/server/internal/store"
)

// Run exercises a minimal compliance suite against a store.Store implementation.
// Implementations should provide a clean, isolated store and return it from makeStore.
func Run(t *testing.T, makeStore func(t *testing.T) store.Store) {
	t.Helper()

	s := makeStore(t)
	ctx := context.Background()

	// Unique test identifiers
	userID := "u-" + uuid.New().String()
	fid := "fc-" + uuid.New().String()

	// Users
	u := &model.User{UserID: userID, FarcasterID: fid, CurrentLocation: "CA", SavedStates: []string{"CA"}, SubscriptionStatus: model.TierFree}
	got, created, err := s.Users().CreateIfAbsent(ctx, u)
	if err != nil || !created || got.Version != 1 {
		t.Fatalf("CreateIfAbsent: got=%v created=%v err=%v", got, created, err)
	}
	again, created, err := s.Users().CreateIfAbsent(ctx, &model.User{UserID: userID, CurrentLocation: "NY"})
	if err != nil || created || again.CurrentLocation != "CA" {
		t.Fatalf("CreateIfAbsent existing: got=%v created=%v err=%v", again, created, err)
	}
	if got, err := s.Users().Get(ctx, userID); err != nil || got.FarcasterID != fid {
		t.Fatalf("GetUser: got=%v err=%v", got, err)
	}
	if got, err := s.Users().GetByFarcasterID(ctx, fid); err != nil || got.UserID != userID {
		t.Fatalf("GetByFarcasterID: got=%v err=%v", got, err)
	}
	// Several users may share a farcasterID; the oldest one wins.
	shared := "fc-shared-" + uuid.New().String()
	t0 := time.Now().UTC().Truncate(time.Millisecond)
	newer := &model.User{UserID: "u-" + uuid.New().String(), FarcasterID: shared, CreationTime: t0.Add(time.Minute)}
	older := &model.User{UserID: "u-" + uuid.New().String(), FarcasterID: shared, CreationTime: t0}
	for _, m := range []*model.User{newer, older} {
		if _, _, err := s.Users().CreateIfAbsent(ctx, m); err != nil {
			t.Fatalf("CreateIfAbsent shared: %v", err)
		}
	}
	for i := 0; i < 10; i++ {
		if got, err := s.Users().GetByFarcasterID(ctx, shared); err != nil || got.UserID != older.UserID {
			t.Fatalf("GetByFarcasterID shared: got=%v err=%v want %s", got, err, older.UserID)
		}
	}
	if _, err := s.Users().GetByFarcasterID(ctx, "fc-missing-"+uuid.New().String()); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("GetByFarcasterID missing: err=%v", err)
	}
	if _, err := s.Users().Get(ctx, "u-missing-"+uuid.New().String()); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("GetUser missing: err=%v", err)
	}

	updated, err := s.Users().Update(ctx, userID, func(m *model.User) error {
		m.SubscriptionStatus = model.TierPremium
		m.UserID = "hijacked"
		return nil
	})
	if err != nil || updated.SubscriptionStatus != model.TierPremium || updated.UserID != userID || updated.Version != 2 {
		t.Fatalf("UpdateUser: got=%v err=%v", updated, err)
	}
	sentinel := errors.New("abort")
	if _, err := s.Users().Update(ctx, userID, func(m *model.User) error {
		m.CurrentLocation = "TX"
		return sentinel
	}); !errors.Is(err, sentinel) {
		t.Fatalf("UpdateUser abort: err=%v", err)
	}
	if got, _ := s.Users().Get(ctx, userID); got == nil || got.CurrentLocation != "CA" || got.Version != 2 {
		t.Fatalf("aborted update leaked: got=%v", got)
	}
	if _, err := s.Users().Update(ctx, "u-missing-"+uuid.New().String(), func(*model.User) error { return nil }); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("UpdateUser missing: err=%v", err)
	}

	// Encounters
	base := time.Now().UTC().Truncate(time.Millisecond)
	e1 := &model.Encounter{EncounterID: "e-" + uuid.New().String(), UserID: userID, Timestamp: base, Location: "Unknown", SharedWith: []string{}}
	e2 := &model.Encounter{EncounterID: "e-" + uuid.New().String(), UserID: userID, Timestamp: base.Add(time.Second), Location: "CA", SharedWith: []string{}}
	for _, e := range []*model.Encounter{e1, e2} {
		if _, err := s.Encounters().Create(ctx, e); err != nil {
			t.Fatalf("CreateEncounter: %v", err)
		}
	}
	if _, err := s.Encounters().Create(ctx, e1); !errors.Is(err, model.ErrConflict) {
		t.Fatalf("CreateEncounter duplicate: err=%v", err)
	}
	if got, err := s.Encounters().Get(ctx, e1.EncounterID); err != nil || got.Location != "Unknown" || !got.Timestamp.Equal(base) {
		t.Fatalf("GetEncounter: got=%v err=%v", got, err)
	}
	if lst, err := s.Encounters().ListByUser(ctx, userID); err != nil || len(lst) != 2 {
		t.Fatalf("ListByUser: n=%d err=%v", len(lst), err)
	}
	if lst, err := s.Encounters().ListByUser(ctx, "u-none-"+uuid.New().String()); err != nil || len(lst) != 0 {
		t.Fatalf("ListByUser empty: n=%d err=%v", len(lst), err)
	}
	enc, err := s.Encounters().Update(ctx, e1.EncounterID, func(m *model.Encounter) error {
		m.Notes = "stopped at light"
		m.UserID = "someone-else"
		return nil
	})
	if err != nil || enc.Notes != "stopped at light" || enc.UserID != userID || enc.Version != 2 {
		t.Fatalf("UpdateEncounter: got=%v err=%v", enc, err)
	}
	if _, err := s.Encounters().Update(ctx, "e-missing", func(*model.Encounter) error { return nil }); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("UpdateEncounter missing: err=%v", err)
	}

	// Contacts
	if _, err := s.Contacts().List(ctx, userID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("ListContacts before add: err=%v", err)
	}
	if err := s.Contacts().Remove(ctx, userID, "c-x"); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("RemoveContact without list: err=%v", err)
	}
	c1 := model.TrustedContact{ID: "c-1", Name: "Jane", Phone: "555-0100"}
	c2 := model.TrustedContact{ID: "c-2", Name: "Ana", Phone: "555-0101", Email: "ana@example.test"}
	for _, c := range []model.TrustedContact{c1, c2} {
		if err := s.Contacts().Append(ctx, userID, c); err != nil {
			t.Fatalf("AppendContact: %v", err)
		}
	}
	lst, err := s.Contacts().List(ctx, userID)
	if err != nil || len(lst) != 2 || lst[0].ID != "c-1" || lst[1].ID != "c-2" {
		t.Fatalf("ListContacts order: got=%v err=%v", lst, err)
	}
	if err := s.Contacts().Remove(ctx, userID, "c-unknown"); err != nil {
		t.Fatalf("RemoveContact unknown id: %v", err)
	}
	if err := s.Contacts().Remove(ctx, userID, "c-1"); err != nil {
		t.Fatalf("RemoveContact: %v", err)
	}
	if err := s.Contacts().Remove(ctx, userID, "c-2"); err != nil {
		t.Fatalf("RemoveContact: %v", err)
	}
	// The list survives being emptied.
	if lst, err := s.Contacts().List(ctx, userID); err != nil || len(lst) != 0 {
		t.Fatalf("ListContacts after removal: got=%v err=%v", lst, err)
	}
	if err := s.Contacts().Remove(ctx, userID, "c-1"); err != nil {
		t.Fatalf("RemoveContact on empty list: %v", err)
	}
}
