package events

import "testing"

func TestPublishWithoutSubscriberDoesNotPanic(t *testing.T) {
	bus := New()
	bus.PublishUnauthorized(Unauthorized{Endpoint: "/api/profile", StatusCode: 401})
}

func TestSubscribeReceivesEvent(t *testing.T) {
	bus := New()

	var got Unauthorized
	handler := func(ev Unauthorized) { got = ev }
	if err := bus.SubscribeUnauthorized(handler); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	bus.PublishUnauthorized(Unauthorized{Endpoint: "/api/User", StatusCode: 401})

	if got.Endpoint != "/api/User" || got.StatusCode != 401 {
		t.Fatalf("unexpected event: %+v", got)
	}

	if err := bus.UnsubscribeUnauthorized(handler); err != nil {
		t.Fatalf("unsubscribe: %v", err)
	}
}
