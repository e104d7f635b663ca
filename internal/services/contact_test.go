package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knowyourrights/cards/server/internal/model"
)

func newTestContactService(t *testing.T) *ContactService {
	t.Helper()
	return NewContactService(newTestStore(t))
}

func TestAddAndListContacts(t *testing.T) {
	svc := newTestContactService(t)

	c, err := svc.Add(ctx, "u1", model.NewContact{Name: "Jane Doe", Phone: "555-0100"})
	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "Jane Doe", c.Name)

	lst, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, lst, 1)
	assert.Equal(t, *c, lst[0])
}

func TestAddContact_FreeTextNameAndPhone(t *testing.T) {
	svc := newTestContactService(t)
	name := strings.Repeat("名", 34)
	phone := "+1 (555) 010-0100 ext. 12345, ask for Jane"

	c, err := svc.Add(ctx, "u1", model.NewContact{Name: name, Phone: phone})
	require.NoError(t, err)

	lst, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, lst, 1)
	assert.Equal(t, c.ID, lst[0].ID)
	assert.Equal(t, name, lst[0].Name)
	assert.Equal(t, phone, lst[0].Phone)
}

func TestAddContact_Validation(t *testing.T) {
	svc := newTestContactService(t)

	cases := map[string]struct {
		userID string
		in     model.NewContact
	}{
		"missing user":  {"", model.NewContact{Name: "Jane", Phone: "555"}},
		"missing name":  {"u1", model.NewContact{Phone: "555"}},
		"missing phone": {"u1", model.NewContact{Name: "Jane"}},
		"bad email":     {"u1", model.NewContact{Name: "Jane", Phone: "555", Email: "not-an-email"}},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Add(ctx, tc.userID, tc.in)
			assert.ErrorIs(t, err, model.ErrInvalidArgument)
		})
	}
}

func TestListContacts_UnknownUserIsEmpty(t *testing.T) {
	svc := newTestContactService(t)

	lst, err := svc.List(ctx, "nobody")
	require.NoError(t, err)
	assert.NotNil(t, lst)
	assert.Empty(t, lst)

	_, err = svc.List(ctx, "")
	assert.ErrorIs(t, err, model.ErrInvalidArgument)
}

func TestRemoveContact(t *testing.T) {
	svc := newTestContactService(t)

	assert.ErrorIs(t, svc.Remove(ctx, "u1", "contact-1"), model.ErrNotFound)
	assert.ErrorIs(t, svc.Remove(ctx, "", "contact-1"), model.ErrInvalidArgument)
	assert.ErrorIs(t, svc.Remove(ctx, "u1", ""), model.ErrInvalidArgument)

	a, err := svc.Add(ctx, "u1", model.NewContact{Name: "Jane", Phone: "555-0100"})
	require.NoError(t, err)
	b, err := svc.Add(ctx, "u1", model.NewContact{Name: "Ana", Phone: "555-0101"})
	require.NoError(t, err)

	require.NoError(t, svc.Remove(ctx, "u1", "contact-unknown"))
	require.NoError(t, svc.Remove(ctx, "u1", a.ID))
	// Idempotent.
	require.NoError(t, svc.Remove(ctx, "u1", a.ID))

	lst, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []model.TrustedContact{*b}, lst)
}
