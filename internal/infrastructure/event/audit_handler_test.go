package event

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestAuditLogHandlerReceivesAllEvents(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	bus := NewInMemoryEventBus(zap.NewNop())
	bus.Subscribe(NewAuditLogHandler(zap.New(core)))

	evt := newStubEvent("product.created")
	require.NoError(t, bus.Publish(context.Background(), evt))

	entries := logs.FilterMessage("Domain event").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "product.created", entries[0].ContextMap()["event_type"])
	assert.Equal(t, evt.AggregateID().String(), entries[0].ContextMap()["aggregate_id"])
}
