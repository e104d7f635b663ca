package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/knowyourrights/cards/server/internal/metrics"
	"github.com/knowyourrights/cards/server/internal/model"
	"github.com/knowyourrights/cards/server/internal/store"
	"github.com/knowyourrights/cards/server/internal/validate"
)

const defaultEncounterLocation = "Unknown"

// EncounterService documents police encounters.
type EncounterService struct {
	store store.Store

	now   func() time.Time
	newID func(prefix string) string
}

func NewEncounterService(s store.Store) *EncounterService {
	return &EncounterService{store: s, now: utcNow, newID: newID}
}

func (s *EncounterService) Create(ctx context.Context, in model.NewEncounter) (*model.Encounter, error) {
	if err := validate.NonEmpty("userId", in.UserID); err != nil {
		return nil, err
	}
	location := in.Location
	if location == "" {
		location = defaultEncounterLocation
	}
	e := &model.Encounter{
		EncounterID:  s.newID(prefixEncounter),
		UserID:       in.UserID,
		Timestamp:    s.now(),
		Location:     location,
		ScriptUsed:   in.ScriptUsed,
		RecordingURL: in.RecordingURL,
		Notes:        in.Notes,
		SharedWith:   []string{},
	}
	out, err := s.store.Encounters().Create(ctx, e)
	if err != nil {
		return nil, err
	}
	metrics.EncountersCreatedTotal.Inc()
	return out, nil
}

func (s *EncounterService) Get(ctx context.Context, encounterID string) (*model.Encounter, error) {
	if err := validate.NonEmpty("encounterId", encounterID); err != nil {
		return nil, err
	}
	return s.store.Encounters().Get(ctx, encounterID)
}

// ListByUser returns the user's encounters, most recent first. An unknown
// user yields an empty list.
func (s *EncounterService) ListByUser(ctx context.Context, userID string) ([]*model.Encounter, error) {
	if err := validate.NonEmpty("userId", userID); err != nil {
		return nil, err
	}
	out, err := s.store.Encounters().ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []*model.Encounter{}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.After(out[j].Timestamp)
		}
		return out[i].EncounterID > out[j].EncounterID
	})
	return out, nil
}

// Update merges the fields present in patch. Owner and ID never change.
func (s *EncounterService) Update(ctx context.Context, encounterID string, patch model.EncounterPatch) (*model.Encounter, error) {
	if err := validate.NonEmpty("encounterId", encounterID); err != nil {
		return nil, err
	}
	return s.store.Encounters().Update(ctx, encounterID, func(e *model.Encounter) error {
		if patch.ExpectedVersion != nil && *patch.ExpectedVersion != e.Version {
			return fmt.Errorf("%w: encounter %s is at version %d, not %d", model.ErrConflict, encounterID, e.Version, *patch.ExpectedVersion)
		}
		if patch.Location != nil {
			e.Location = *patch.Location
		}
		if patch.ScriptUsed != nil {
			e.ScriptUsed = *patch.ScriptUsed
		}
		if patch.RecordingURL != nil {
			e.RecordingURL = *patch.RecordingURL
		}
		if patch.Notes != nil {
			e.Notes = *patch.Notes
		}
		if patch.SharedWith != nil {
			e.SharedWith = append([]string{}, *patch.SharedWith...)
		}
		return nil
	})
}

// Share appends identities to the encounter's sharedWith list, skipping
// empty values and ones already present.
func (s *EncounterService) Share(ctx context.Context, encounterID string, identities []string) (*model.Encounter, error) {
	if err := validate.NonEmpty("encounterId", encounterID); err != nil {
		return nil, err
	}
	if len(identities) == 0 {
		return nil, fmt.Errorf("%w: sharedWith must not be empty", model.ErrInvalidArgument)
	}
	return s.store.Encounters().Update(ctx, encounterID, func(e *model.Encounter) error {
		seen := make(map[string]struct{}, len(e.SharedWith))
		for _, id := range e.SharedWith {
			seen[id] = struct{}{}
		}
		for _, id := range identities {
			if id == "" {
				continue
			}
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			e.SharedWith = append(e.SharedWith, id)
		}
		return nil
	})
}
