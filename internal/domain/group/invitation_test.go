package group

import (
	"errors"
	"strings"
	"testing"

	"github.com/financetracking/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPendingInvitation(t *testing.T) *Invitation {
	t.Helper()
	inv, err := NewInvitation(uuid.New(), uuid.New(), uuid.New(), "join us")
	require.NoError(t, err)
	return inv
}

func TestNewInvitation(t *testing.T) {
	groupID := uuid.New()
	inviter := uuid.New()
	target := uuid.New()

	inv, err := NewInvitation(groupID, inviter, target, "  note  ")
	require.NoError(t, err)

	assert.Equal(t, InvitationStatusPending, inv.Status)
	assert.Equal(t, groupID, inv.GroupID)
	assert.Equal(t, inviter, inv.InvitedByUserID)
	assert.Equal(t, target, inv.TargetUserID)
	assert.Equal(t, "note", inv.Note)
	assert.NotEqual(t, uuid.Nil, inv.ID)
	assert.True(t, inv.IsPending())
}

func TestNewInvitationValidation(t *testing.T) {
	self := uuid.New()

	tests := []struct {
		name    string
		groupID uuid.UUID
		inviter uuid.UUID
		target  uuid.UUID
		note    string
	}{
		{"missing group", uuid.Nil, uuid.New(), uuid.New(), ""},
		{"missing inviter", uuid.New(), uuid.Nil, uuid.New(), ""},
		{"missing target", uuid.New(), uuid.New(), uuid.Nil, ""},
		{"self invitation", uuid.New(), self, self, ""},
		{"oversized note", uuid.New(), uuid.New(), uuid.New(), strings.Repeat("x", 501)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewInvitation(tt.groupID, tt.inviter, tt.target, tt.note)
			assert.Error(t, err)

			var domainErr *shared.DomainError
			assert.True(t, errors.As(err, &domainErr))
		})
	}
}

func TestInvitationTransitions(t *testing.T) {
	tests := []struct {
		name   string
		settle func(*Invitation) error
		want   InvitationStatus
	}{
		{"accept", (*Invitation).Accept, InvitationStatusAccepted},
		{"reject", (*Invitation).Reject, InvitationStatusRejected},
		{"cancel", (*Invitation).Cancel, InvitationStatusCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := newPendingInvitation(t)
			require.NoError(t, tt.settle(inv))
			assert.Equal(t, tt.want, inv.Status)
			assert.False(t, inv.IsPending())
		})
	}
}

func TestInvitationSettledIsTerminal(t *testing.T) {
	settlers := map[string]func(*Invitation) error{
		"accept": (*Invitation).Accept,
		"reject": (*Invitation).Reject,
		"cancel": (*Invitation).Cancel,
	}

	for firstName, first := range settlers {
		for secondName, second := range settlers {
			t.Run(firstName+" then "+secondName, func(t *testing.T) {
				inv := newPendingInvitation(t)
				require.NoError(t, first(inv))

				err := second(inv)
				require.Error(t, err)

				var domainErr *shared.DomainError
				require.True(t, errors.As(err, &domainErr))
				assert.Equal(t, "INVALID_STATE", domainErr.Code)
			})
		}
	}
}

func TestInvitationStatusValid(t *testing.T) {
	assert.True(t, InvitationStatusPending.Valid())
	assert.True(t, InvitationStatusAccepted.Valid())
	assert.True(t, InvitationStatusRejected.Valid())
	assert.True(t, InvitationStatusCancelled.Valid())
	assert.False(t, InvitationStatus("expired").Valid())
}
