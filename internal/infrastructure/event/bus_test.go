package event

import (
	"context"
	"errors"
	"testing"

	"github.com/financetracking/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingHandler struct {
	types   []string
	handled []shared.DomainEvent
	err     error
	panics  bool
}

func (h *recordingHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	if h.panics {
		panic("boom")
	}
	h.handled = append(h.handled, event)
	return h.err
}

func (h *recordingHandler) EventTypes() []string { return h.types }

func testEvent(eventType string) shared.DomainEvent {
	evt := shared.NewBaseDomainEvent(eventType, "user", uuid.New())
	return &evt
}

func TestBusDispatchesToSubscribedHandler(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	handler := &recordingHandler{types: []string{"user.created"}}
	bus.Subscribe(handler)

	require.NoError(t, bus.Publish(context.Background(), testEvent("user.created")))
	require.Len(t, handler.handled, 1)
	assert.Equal(t, "user.created", handler.handled[0].EventType())
}

func TestBusSkipsUnrelatedEventTypes(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	handler := &recordingHandler{types: []string{"user.created"}}
	bus.Subscribe(handler)

	require.NoError(t, bus.Publish(context.Background(), testEvent("user.deleted")))
	assert.Empty(t, handler.handled)
}

func TestBusPropagatesHandlerError(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	failing := &recordingHandler{types: []string{"user.created"}, err: errors.New("db down")}
	ok := &recordingHandler{types: []string{"user.created"}}
	bus.Subscribe(failing)
	bus.Subscribe(ok)

	err := bus.Publish(context.Background(), testEvent("user.created"))
	require.Error(t, err)
	// A failing handler must not starve the others
	assert.Len(t, ok.handled, 1)
}

func TestBusRecoversFromHandlerPanic(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	bus.Subscribe(&recordingHandler{types: []string{"user.created"}, panics: true})

	err := bus.Publish(context.Background(), testEvent("user.created"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "panicked")
}

func TestBusUnsubscribe(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	handler := &recordingHandler{types: []string{"user.created"}}
	bus.Subscribe(handler)
	bus.Unsubscribe(handler)

	require.NoError(t, bus.Publish(context.Background(), testEvent("user.created")))
	assert.Empty(t, handler.handled)
}
