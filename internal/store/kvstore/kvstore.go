// Package kvstore implements store.Store on top of any kv.Backend.
package kvstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/knowyourrights/cards/server/internal/model"
	"github.com/knowyourrights/cards/server/internal/store"
	"github.com/knowyourrights/cards/server/internal/store/kv"
)

const (
	nsUsers      = "users"
	nsEncounters = "encounters"
	nsContacts   = "contacts"
)

type kvStore struct {
	backend    kv.Backend
	users      *users
	encounters *encounters
	contacts   *contacts
}

// New builds a store over b. The collections are shared so that the
// per-collection write lock covers every caller of the returned store.
func New(b kv.Backend) store.Store {
	return &kvStore{
		backend:    b,
		users:      &users{c: kv.NewCollection[model.User](b, nsUsers)},
		encounters: &encounters{c: kv.NewCollection[model.Encounter](b, nsEncounters)},
		contacts:   &contacts{c: kv.NewCollection[model.ContactList](b, nsContacts)},
	}
}

func (s *kvStore) Users() store.Users           { return s.users }
func (s *kvStore) Encounters() store.Encounters { return s.encounters }
func (s *kvStore) Contacts() store.Contacts     { return s.contacts }

// HealthPing implements health.HealthPinger when the backend can ping.
func (s *kvStore) HealthPing(ctx context.Context) error {
	if p, ok := s.backend.(kv.Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

// Close releases the backend.
func (s *kvStore) Close() error { return s.backend.Close() }

func mapErr(err error) error {
	if errors.Is(err, kv.ErrNotFound) {
		return model.ErrNotFound
	}
	return err
}

// --- Users ---
type users struct{ c *kv.Collection[model.User] }

func (u *users) Get(ctx context.Context, userID string) (*model.User, error) {
	out, err := u.c.Get(ctx, userID)
	return out, mapErr(err)
}

func (u *users) GetByFarcasterID(ctx context.Context, farcasterID string) (*model.User, error) {
	out, err := u.c.Min(ctx,
		func(m *model.User) bool { return m.FarcasterID == farcasterID },
		olderUser)
	return out, mapErr(err)
}

// olderUser orders by creation time, then by ID.
func olderUser(a, b *model.User) bool {
	if !a.CreationTime.Equal(b.CreationTime) {
		return a.CreationTime.Before(b.CreationTime)
	}
	return a.UserID < b.UserID
}

func (u *users) CreateIfAbsent(ctx context.Context, m *model.User) (*model.User, bool, error) {
	created := false
	out, err := u.c.Mutate(ctx, m.UserID, func(cur *model.User) (*model.User, error) {
		if cur != nil {
			return cur, nil
		}
		next := *m
		next.Version = 1
		created = true
		return &next, nil
	})
	if err != nil {
		return nil, false, err
	}
	return out, created, nil
}

func (u *users) Update(ctx context.Context, userID string, fn func(*model.User) error) (*model.User, error) {
	return u.c.Mutate(ctx, userID, func(cur *model.User) (*model.User, error) {
		if cur == nil {
			return nil, fmt.Errorf("%w: user %s", model.ErrNotFound, userID)
		}
		if err := fn(cur); err != nil {
			return nil, err
		}
		cur.UserID = userID
		cur.Version++
		return cur, nil
	})
}

// --- Encounters ---
type encounters struct{ c *kv.Collection[model.Encounter] }

func (e *encounters) Create(ctx context.Context, m *model.Encounter) (*model.Encounter, error) {
	return e.c.Mutate(ctx, m.EncounterID, func(cur *model.Encounter) (*model.Encounter, error) {
		if cur != nil {
			return nil, fmt.Errorf("%w: encounter %s exists", model.ErrConflict, m.EncounterID)
		}
		next := *m
		next.Version = 1
		return &next, nil
	})
}

func (e *encounters) Get(ctx context.Context, encounterID string) (*model.Encounter, error) {
	out, err := e.c.Get(ctx, encounterID)
	return out, mapErr(err)
}

func (e *encounters) ListByUser(ctx context.Context, userID string) ([]*model.Encounter, error) {
	return e.c.Filter(ctx, func(m *model.Encounter) bool { return m.UserID == userID })
}

func (e *encounters) Update(ctx context.Context, encounterID string, fn func(*model.Encounter) error) (*model.Encounter, error) {
	return e.c.Mutate(ctx, encounterID, func(cur *model.Encounter) (*model.Encounter, error) {
		if cur == nil {
			return nil, fmt.Errorf("%w: encounter %s", model.ErrNotFound, encounterID)
		}
		owner := cur.UserID
		if err := fn(cur); err != nil {
			return nil, err
		}
		cur.EncounterID = encounterID
		cur.UserID = owner
		cur.Version++
		return cur, nil
	})
}

// --- Contacts ---
type contacts struct{ c *kv.Collection[model.ContactList] }

func (c *contacts) List(ctx context.Context, userID string) ([]model.TrustedContact, error) {
	l, err := c.c.Get(ctx, userID)
	if err != nil {
		return nil, mapErr(err)
	}
	if l.Contacts == nil {
		return []model.TrustedContact{}, nil
	}
	return l.Contacts, nil
}

func (c *contacts) Append(ctx context.Context, userID string, tc model.TrustedContact) error {
	_, err := c.c.Mutate(ctx, userID, func(cur *model.ContactList) (*model.ContactList, error) {
		if cur == nil {
			cur = &model.ContactList{UserID: userID}
		}
		cur.Contacts = append(cur.Contacts, tc)
		cur.Version++
		return cur, nil
	})
	return err
}

func (c *contacts) Remove(ctx context.Context, userID, contactID string) error {
	_, err := c.c.Mutate(ctx, userID, func(cur *model.ContactList) (*model.ContactList, error) {
		if cur == nil {
			return nil, fmt.Errorf("%w: no contacts for user %s", model.ErrNotFound, userID)
		}
		kept := make([]model.TrustedContact, 0, len(cur.Contacts))
		for _, tc := range cur.Contacts {
			if tc.ID != contactID {
				kept = append(kept, tc)
			}
		}
		cur.Contacts = kept
		cur.Version++
		return cur, nil
	})
	return err
}
