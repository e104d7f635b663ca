package store

import (
	"context"

	"github.com/knowyourrights/cards/server/internal/model"
)

// Store exposes persistence operations required by services.
// The implementation lives in internal/store/kvstore on top of a kv.Backend.
// Lookups that miss return model.ErrNotFound.
type Store interface {
	Users() Users
	Encounters() Encounters
	Contacts() Contacts
}

type Users interface {
	Get(ctx context.Context, userID string) (*model.User, error)
	// GetByFarcasterID returns the oldest user carrying farcasterID.
	GetByFarcasterID(ctx context.Context, farcasterID string) (*model.User, error)
	// CreateIfAbsent stores u unless a record with the same UserID exists, in
	// which case the existing record is returned and created is false.
	CreateIfAbsent(ctx context.Context, u *model.User) (out *model.User, created bool, err error)
	// Update applies fn to the stored record and persists the result with an
	// incremented version. An error from fn aborts the write.
	Update(ctx context.Context, userID string, fn func(*model.User) error) (*model.User, error)
}

type Encounters interface {
	// Create fails with model.ErrConflict when the ID is already taken.
	Create(ctx context.Context, e *model.Encounter) (*model.Encounter, error)
	Get(ctx context.Context, encounterID string) (*model.Encounter, error)
	ListByUser(ctx context.Context, userID string) ([]*model.Encounter, error)
	Update(ctx context.Context, encounterID string, fn func(*model.Encounter) error) (*model.Encounter, error)
}

type Contacts interface {
	// List returns model.ErrNotFound when the user has never had a contact list.
	List(ctx context.Context, userID string) ([]model.TrustedContact, error)
	Append(ctx context.Context, userID string, c model.TrustedContact) error
	// Remove returns model.ErrNotFound when the user has no contact list.
	// Removing an unknown contact ID is not an error.
	Remove(ctx context.Context, userID, contactID string) error
}
