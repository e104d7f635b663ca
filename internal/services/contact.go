package services

import (
	"context"
	"errors"

	"github.com/knowyourrights/cards/server/internal/model"
	"github.com/knowyourrights/cards/server/internal/store"
	"github.com/knowyourrights/cards/server/internal/validate"
)

// ContactService manages each user's ordered list of trusted contacts.
type ContactService struct {
	store store.Store

	newID func(prefix string) string
}

func NewContactService(s store.Store) *ContactService {
	return &ContactService{store: s, newID: newID}
}

// Add appends a new contact to the end of the user's list, creating the list on first use.
func (s *ContactService) Add(ctx context.Context, userID string, in model.NewContact) (*model.TrustedContact, error) {
	if err := validate.Contact(userID, in); err != nil {
		return nil, err
	}
	c := model.TrustedContact{
		ID:    s.newID(prefixContact),
		Name:  in.Name,
		Phone: in.Phone,
		Email: in.Email,
	}
	if err := s.store.Contacts().Append(ctx, userID, c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Remove filters contactID out of the user's list. The user must have a list;
// an absent contactID is not an error.
func (s *ContactService) Remove(ctx context.Context, userID, contactID string) error {
	if err := validate.NonEmpty("userId", userID); err != nil {
		return err
	}
	if err := validate.NonEmpty("contactId", contactID); err != nil {
		return err
	}
	return s.store.Contacts().Remove(ctx, userID, contactID)
}

// List returns the user's contacts in insertion order; unknown users have none.
func (s *ContactService) List(ctx context.Context, userID string) ([]model.TrustedContact, error) {
	if err := validate.NonEmpty("userId", userID); err != nil {
		return nil, err
	}
	out, err := s.store.Contacts().List(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		return []model.TrustedContact{}, nil
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}
