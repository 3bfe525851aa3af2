package event

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubEvent struct {
	shared.BaseDomainEvent
}

func newStubEvent(eventType string) *stubEvent {
	return &stubEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, "Product", uuid.New()),
	}
}

type stubHandler struct {
	types    []string
	received []shared.DomainEvent
	fail     bool
	panics   bool
}

func (h *stubHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	if h.panics {
		panic("handler exploded")
	}
	h.received = append(h.received, event)
	if h.fail {
		return errors.New("handler failed")
	}
	return nil
}

func (h *stubHandler) EventTypes() []string {
	return h.types
}

func TestInMemoryEventBus_PublishToSubscribedHandler(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	handler := &stubHandler{types: []string{"product.created"}}
	bus.Subscribe(handler)

	require.NoError(t, bus.Publish(context.Background(), newStubEvent("product.created")))
	require.NoError(t, bus.Publish(context.Background(), newStubEvent("product.deleted")))

	assert.Len(t, handler.received, 1)
	assert.Equal(t, "product.created", handler.received[0].EventType())
}

func TestInMemoryEventBus_WildcardHandler(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	handler := &stubHandler{}
	bus.Subscribe(handler)

	require.NoError(t, bus.Publish(context.Background(),
		newStubEvent("product.created"),
		newStubEvent("category.moved"),
	))

	assert.Len(t, handler.received, 2)
}

func TestInMemoryEventBus_HandlerFailureDoesNotStopDelivery(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	failing := &stubHandler{types: []string{"product.created"}, fail: true}
	healthy := &stubHandler{types: []string{"product.created"}}
	bus.Subscribe(failing)
	bus.Subscribe(healthy)

	require.NoError(t, bus.Publish(context.Background(), newStubEvent("product.created")))

	assert.Len(t, failing.received, 1)
	assert.Len(t, healthy.received, 1)
}

func TestInMemoryEventBus_HandlerPanicIsRecovered(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	panicking := &stubHandler{types: []string{"product.created"}, panics: true}
	healthy := &stubHandler{types: []string{"product.created"}}
	bus.Subscribe(panicking)
	bus.Subscribe(healthy)

	require.NoError(t, bus.Publish(context.Background(), newStubEvent("product.created")))
	assert.Len(t, healthy.received, 1)
}

func TestInMemoryEventBus_Unsubscribe(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	handler := &stubHandler{types: []string{"product.created"}}
	bus.Subscribe(handler)
	bus.Unsubscribe(handler)

	require.NoError(t, bus.Publish(context.Background(), newStubEvent("product.created")))
	assert.Empty(t, handler.received)
}
