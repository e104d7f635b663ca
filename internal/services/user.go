package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/knowyourrights/cards/server/internal/metrics"
	"github.com/knowyourrights/cards/server/internal/model"
	"github.com/knowyourrights/cards/server/internal/store"
	"github.com/knowyourrights/cards/server/internal/validate"
)

// UserService handles user-related operations.
type UserService struct {
	store               store.Store
	defaultJurisdiction string

	now   func() time.Time
	newID func(prefix string) string
}

func NewUserService(s store.Store, defaultJurisdiction string) *UserService {
	return &UserService{store: s, defaultJurisdiction: defaultJurisdiction, now: utcNow, newID: newID}
}

func (s *UserService) newUser(userID, farcasterID, jurisdiction string) *model.User {
	now := s.now()
	return &model.User{
		UserID:             userID,
		FarcasterID:        farcasterID,
		CurrentLocation:    jurisdiction,
		SavedStates:        []string{jurisdiction},
		SubscriptionStatus: model.TierFree,
		TrustedContacts:    []model.TrustedContact{},
		CreationTime:       now,
		UpdateTime:         now,
	}
}

// FindOrCreate looks a user up by userID, or by farcasterID when userID is
// blank, creating the record when the lookup misses. A farcasterID shared by
// several users resolves to the oldest of them. A record created for a
// given userID keeps that ID so repeated calls return the same user.
func (s *UserService) FindOrCreate(ctx context.Context, userID, farcasterID string) (*model.User, model.LookupOutcome, error) {
	userID, farcasterID = strings.TrimSpace(userID), strings.TrimSpace(farcasterID)
	if userID == "" && farcasterID == "" {
		return nil, "", fmt.Errorf("%w: userId or farcasterId required", model.ErrInvalidArgument)
	}

	if userID == "" {
		u, err := s.store.Users().GetByFarcasterID(ctx, farcasterID)
		if err == nil {
			return u, model.OutcomeFound, nil
		}
		if !errors.Is(err, model.ErrNotFound) {
			return nil, "", err
		}
		userID = s.newID(prefixUser)
	}

	u, created, err := s.store.Users().CreateIfAbsent(ctx, s.newUser(userID, farcasterID, s.defaultJurisdiction))
	if err != nil {
		return nil, "", err
	}
	if !created {
		return u, model.OutcomeFound, nil
	}
	metrics.UsersCreatedTotal.WithLabelValues("find_or_create").Inc()
	return u, model.OutcomeCreated, nil
}

// Update merges the fields present in patch into the stored user.
func (s *UserService) Update(ctx context.Context, userID string, patch model.UserPatch) (*model.User, error) {
	if err := validate.NonEmpty("userId", userID); err != nil {
		return nil, err
	}
	if err := validate.UserPatch(&patch); err != nil {
		return nil, err
	}
	return s.store.Users().Update(ctx, userID, func(u *model.User) error {
		if patch.ExpectedVersion != nil && *patch.ExpectedVersion != u.Version {
			return fmt.Errorf("%w: user %s is at version %d, not %d", model.ErrConflict, userID, u.Version, *patch.ExpectedVersion)
		}
		if patch.FarcasterID != nil {
			u.FarcasterID = *patch.FarcasterID
		}
		if patch.CurrentLocation != nil {
			u.CurrentLocation = *patch.CurrentLocation
		}
		if patch.SavedStates != nil {
			u.SavedStates = *patch.SavedStates
		}
		if patch.SubscriptionStatus != nil {
			u.SubscriptionStatus = *patch.SubscriptionStatus
		}
		if patch.TrustedContacts != nil {
			u.TrustedContacts = *patch.TrustedContacts
		}
		u.UpdateTime = s.now()
		return nil
	})
}

// Create always makes a new user with a fresh ID. It does not check for an
// existing record with the same farcasterID.
func (s *UserService) Create(ctx context.Context, farcasterID, jurisdiction string) (*model.User, error) {
	if jurisdiction == "" {
		jurisdiction = s.defaultJurisdiction
	}
	jurisdiction, err := validate.Jurisdiction("currentLocation", jurisdiction)
	if err != nil {
		return nil, err
	}
	u, created, err := s.store.Users().CreateIfAbsent(ctx, s.newUser(s.newID(prefixUser), farcasterID, jurisdiction))
	if err != nil {
		return nil, err
	}
	if !created {
		return nil, fmt.Errorf("%w: generated user id %s already taken", model.ErrConflict, u.UserID)
	}
	metrics.UsersCreatedTotal.WithLabelValues("create").Inc()
	return u, nil
}
