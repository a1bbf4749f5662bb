package events

import (
	"sync"

	evbus "github.com/asaskevich/EventBus"
)

// Topics published by the client layer.
const (
	// TopicUnauthorized fires when the backend rejects the current
	// credential with HTTP 401. Publishing requires no subscriber.
	TopicUnauthorized = "auth:unauthorized"
)

// Unauthorized carries the context of a rejected request.
type Unauthorized struct {
	Endpoint   string
	StatusCode int
}

// Bus is a thin wrapper over EventBus scoped to the client's topics.
type Bus struct {
	bus evbus.Bus
}

// New creates an isolated bus, used by tests and by callers that want
// per-client subscription scopes.
func New() *Bus {
	return &Bus{bus: evbus.New()}
}

var (
	instance *Bus
	once     sync.Once
)

// Default returns the process-wide bus instance.
func Default() *Bus {
	once.Do(func() {
		instance = New()
	})
	return instance
}

// PublishUnauthorized dispatches the session-invalidated signal,
// fire-and-forget.
func (b *Bus) PublishUnauthorized(ev Unauthorized) {
	b.bus.Publish(TopicUnauthorized, ev)
}

// SubscribeUnauthorized registers a handler for session invalidation.
func (b *Bus) SubscribeUnauthorized(fn func(Unauthorized)) error {
	return b.bus.Subscribe(TopicUnauthorized, fn)
}

// UnsubscribeUnauthorized removes a previously registered handler.
func (b *Bus) UnsubscribeUnauthorized(fn func(Unauthorized)) error {
	return b.bus.Unsubscribe(TopicUnauthorized, fn)
}
