package validate

import (
	"errors"
	"strings"
	"testing"

	"github.com/knowyourrights/cards/server/internal/model"
)

func strPtr(s string) *string { return &s }

func TestJurisdiction(t *testing.T) {
	tests := []struct {
		name        string
		code        string
		want        string
		expectError bool
	}{
		{name: "upper", code: "CA", want: "CA"},
		{name: "lower is normalised", code: "ny", want: "NY"},
		{name: "padded", code: " tx ", want: "TX"},
		{name: "empty", code: "", expectError: true},
		{name: "too long", code: "CAL", expectError: true},
		{name: "digits", code: "C1", expectError: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Jurisdiction("currentLocation", tt.code)
			if tt.expectError {
				if !errors.Is(err, model.ErrInvalidArgument) {
					t.Fatalf("expected invalid argument for %q, got %v", tt.code, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Fatalf("Jurisdiction(%q) = %q, %v; want %q", tt.code, got, err, tt.want)
			}
		})
	}
}

func TestContact(t *testing.T) {
	tests := []struct {
		name        string
		userID      string
		in          model.NewContact
		expectError bool
		errorMsg    string
	}{
		{name: "valid", userID: "u1", in: model.NewContact{Name: "Jane Doe", Phone: "555-0100"}},
		{name: "valid with email", userID: "u1", in: model.NewContact{Name: "Jane", Phone: "555-0100", Email: "jane@example.com"}},
		{name: "missing user", userID: "", in: model.NewContact{Name: "Jane", Phone: "1"}, expectError: true, errorMsg: "userId is required"},
		{name: "missing name", userID: "u1", in: model.NewContact{Phone: "1"}, expectError: true, errorMsg: "name is required"},
		{name: "blank phone", userID: "u1", in: model.NewContact{Name: "Jane", Phone: "   "}, expectError: true, errorMsg: "phone is required"},
		{name: "bad email", userID: "u1", in: model.NewContact{Name: "Jane", Phone: "1", Email: "not an email"}, expectError: true, errorMsg: "invalid email"},
		{name: "multi-byte name", userID: "u1", in: model.NewContact{Name: strings.Repeat("名", 200), Phone: "555-0100"}},
		{name: "extension phone", userID: "u1", in: model.NewContact{Name: "Jane", Phone: "+1 (555) 010-0100 ext. 12345, ask for Jane"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Contact(tt.userID, tt.in)
			if !tt.expectError {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, model.ErrInvalidArgument) {
				t.Fatalf("expected invalid argument, got %v", err)
			}
			if tt.errorMsg != "" && !strings.HasSuffix(err.Error(), tt.errorMsg) {
				t.Fatalf("expected message %q, got %q", tt.errorMsg, err.Error())
			}
		})
	}
}

func TestUserPatch_Normalises(t *testing.T) {
	states := []string{"ca", "ny", "ca"}
	premium := model.TierPremium
	p := model.UserPatch{CurrentLocation: strPtr("tx"), SavedStates: &states, SubscriptionStatus: &premium}
	if err := UserPatch(&p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *p.CurrentLocation != "TX" {
		t.Fatalf("currentLocation not normalised: %s", *p.CurrentLocation)
	}
	// Duplicates are permitted.
	if got := strings.Join(*p.SavedStates, ","); got != "CA,NY,CA" {
		t.Fatalf("savedStates not normalised: %s", got)
	}
}

func TestUserPatch_Rejects(t *testing.T) {
	gold := model.SubscriptionTier("gold")
	badStates := []string{"CA", "Texas"}
	dupContacts := []model.TrustedContact{{ID: "c1", Name: "a", Phone: "1"}, {ID: "c1", Name: "b", Phone: "2"}}
	cases := map[string]model.UserPatch{
		"tier":     {SubscriptionStatus: &gold},
		"states":   {SavedStates: &badStates},
		"location": {CurrentLocation: strPtr("California")},
		"contacts": {TrustedContacts: &dupContacts},
	}
	for name, p := range cases {
		p := p
		if err := UserPatch(&p); !errors.Is(err, model.ErrInvalidArgument) {
			t.Fatalf("%s: expected invalid argument, got %v", name, err)
		}
	}
}

func TestEmailOptional(t *testing.T) {
	if err := Email(""); err != nil {
		t.Fatalf("empty email must be accepted: %v", err)
	}
}
