package identity

import (
	"github.com/financetracking/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant for User
const AggregateTypeUser = "User"

// Identity notification event types, delivered by the external
// identity provider
const (
	EventTypeUserCreated = "UserCreated"
	EventTypeUserDeleted = "UserDeleted"
)

// UserCreatedEvent notifies that a user was created in the identity
// provider and needs local provisioning
type UserCreatedEvent struct {
	shared.BaseDomainEvent
	Username string `json:"username"`
	Email    string `json:"email"`
}

// NewUserCreatedEvent creates a new UserCreatedEvent
func NewUserCreatedEvent(userID uuid.UUID, username, email string) *UserCreatedEvent {
	return &UserCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserCreated, AggregateTypeUser, userID),
		Username:        username,
		Email:           email,
	}
}

// UserDeletedEvent notifies that a user was deleted from the identity
// provider and the local projection should be removed
type UserDeletedEvent struct {
	shared.BaseDomainEvent
}

// NewUserDeletedEvent creates a new UserDeletedEvent
func NewUserDeletedEvent(userID uuid.UUID) *UserDeletedEvent {
	return &UserDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserDeleted, AggregateTypeUser, userID),
	}
}
