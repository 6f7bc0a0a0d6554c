package identity

import (
	"context"
	"fmt"

	"github.com/financetracking/backend/internal/domain/identity"
	"github.com/financetracking/backend/internal/domain/shared"
)

// UserCreatedHandler provisions users from UserCreated notifications
type UserCreatedHandler struct {
	service *ProvisioningService
}

// NewUserCreatedHandler creates a handler for UserCreated events
func NewUserCreatedHandler(service *ProvisioningService) *UserCreatedHandler {
	return &UserCreatedHandler{service: service}
}

// Handle processes a UserCreated event
func (h *UserCreatedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	e, ok := event.(*identity.UserCreatedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type %T for %s", event, event.EventType())
	}
	return h.service.HandleUserCreated(ctx, e.AggregateID(), e.Username, e.Email)
}

// EventTypes returns the event types this handler is interested in
func (h *UserCreatedHandler) EventTypes() []string {
	return []string{identity.EventTypeUserCreated}
}

// UserDeletedHandler removes user projections on UserDeleted notifications
type UserDeletedHandler struct {
	service *ProvisioningService
}

// NewUserDeletedHandler creates a handler for UserDeleted events
func NewUserDeletedHandler(service *ProvisioningService) *UserDeletedHandler {
	return &UserDeletedHandler{service: service}
}

// Handle processes a UserDeleted event
func (h *UserDeletedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	if _, ok := event.(*identity.UserDeletedEvent); !ok {
		return fmt.Errorf("unexpected event type %T for %s", event, event.EventType())
	}
	return h.service.HandleUserDeleted(ctx, event.AggregateID())
}

// EventTypes returns the event types this handler is interested in
func (h *UserDeletedHandler) EventTypes() []string {
	return []string{identity.EventTypeUserDeleted}
}

// Ensure handlers implement shared.EventHandler
var (
	_ shared.EventHandler = (*UserCreatedHandler)(nil)
	_ shared.EventHandler = (*UserDeletedHandler)(nil)
)
