// Package validate checks request inputs. Every error wraps
// model.ErrInvalidArgument so callers can map it to a 400.
package validate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-openapi/strfmt"

	"github.com/knowyourrights/cards/server/internal/model"
)

// Jurisdiction codes are two ASCII letters after upper-casing.
var jurisdictionRx = regexp.MustCompile(`^[A-Z]{2}$`)

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", model.ErrInvalidArgument, fmt.Sprintf(format, args...))
}

func NonEmpty(field, v string) error {
	if strings.TrimSpace(v) == "" {
		return invalid("%s is required", field)
	}
	return nil
}

// Jurisdiction upper-cases code and checks it is a two-letter region code.
func Jurisdiction(field, code string) (string, error) {
	up := strings.ToUpper(strings.TrimSpace(code))
	if !jurisdictionRx.MatchString(up) {
		return "", invalid("%s must be a two-letter state code", field)
	}
	return up, nil
}

// Jurisdictions normalises every code in codes.
func Jurisdictions(field string, codes []string) ([]string, error) {
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		up, err := Jurisdiction(field, c)
		if err != nil {
			return nil, err
		}
		out = append(out, up)
	}
	return out, nil
}

func Tier(t model.SubscriptionTier) error {
	if !t.Valid() {
		return invalid("subscriptionStatus must be %q or %q", model.TierFree, model.TierPremium)
	}
	return nil
}

// Email accepts an empty value; a non-empty one must be an RFC 5322 address.
func Email(v string) error {
	if v == "" {
		return nil
	}
	if !strfmt.IsEmail(v) {
		return invalid("invalid email")
	}
	return nil
}

// -------- Request specific helpers ----------

// Contact validates input for adding a trusted contact. Name and phone are
// free text; only presence is checked.
func Contact(userID string, c model.NewContact) error {
	if err := NonEmpty("userId", userID); err != nil {
		return err
	}
	if err := NonEmpty("name", c.Name); err != nil {
		return err
	}
	if err := NonEmpty("phone", c.Phone); err != nil {
		return err
	}
	return Email(c.Email)
}

// TrustedContacts validates a full contact list supplied in a user patch.
func TrustedContacts(cs []model.TrustedContact) error {
	seen := make(map[string]struct{}, len(cs))
	for _, c := range cs {
		if err := NonEmpty("trustedContacts.id", c.ID); err != nil {
			return err
		}
		if _, dup := seen[c.ID]; dup {
			return invalid("duplicate contact id %s", c.ID)
		}
		seen[c.ID] = struct{}{}
		if err := NonEmpty("trustedContacts.name", c.Name); err != nil {
			return err
		}
		if err := NonEmpty("trustedContacts.phone", c.Phone); err != nil {
			return err
		}
		if err := Email(c.Email); err != nil {
			return err
		}
	}
	return nil
}

// UserPatch validates and normalises the fields present in p.
func UserPatch(p *model.UserPatch) error {
	if p.CurrentLocation != nil {
		up, err := Jurisdiction("currentLocation", *p.CurrentLocation)
		if err != nil {
			return err
		}
		p.CurrentLocation = &up
	}
	if p.SavedStates != nil {
		states, err := Jurisdictions("savedStates", *p.SavedStates)
		if err != nil {
			return err
		}
		p.SavedStates = &states
	}
	if p.SubscriptionStatus != nil {
		if err := Tier(*p.SubscriptionStatus); err != nil {
			return err
		}
	}
	if p.TrustedContacts != nil {
		if err := TrustedContacts(*p.TrustedContacts); err != nil {
			return err
		}
	}
	return nil
}
