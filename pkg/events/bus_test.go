package events

import (
	"testing"

	"github.com/jscyril/grootman/api"
)

func TestSubscribeReceivesOnlyItsType(t *testing.T) {
	bus := NewEventBus()
	ended := bus.Subscribe(api.EventEnded)

	bus.Publish(api.AudioEvent{Type: api.EventError, Generation: 1})
	bus.Publish(api.AudioEvent{Type: api.EventEnded, Generation: 2})

	select {
	case ev := <-ended:
		if ev.Generation != 2 {
			t.Errorf("Expected generation 2, got %d", ev.Generation)
		}
	default:
		t.Fatal("Expected an ended event")
	}

	select {
	case ev := <-ended:
		t.Errorf("Unexpected extra event %v", ev.Type)
	default:
	}
}

func TestSubscribeAll(t *testing.T) {
	bus := NewEventBus()
	all := bus.SubscribeAll()

	types := []api.EventType{api.EventMetadataReady, api.EventTimeUpdate, api.EventEnded, api.EventError}
	for _, typ := range types {
		bus.Publish(api.AudioEvent{Type: typ})
	}

	for _, want := range types {
		got := <-all
		if got.Type != want {
			t.Errorf("Expected %v, got %v", want, got.Type)
		}
	}
}

func TestTimeUpdatesDropWhenFull(t *testing.T) {
	bus := NewEventBus()
	ch := bus.Subscribe(api.EventTimeUpdate)

	// Subscribe buffers 16 events; the rest must be dropped without blocking
	for i := 0; i < 100; i++ {
		bus.Publish(api.AudioEvent{Type: api.EventTimeUpdate})
	}

	if len(ch) != cap(ch) {
		t.Errorf("Expected full buffer of %d, got %d", cap(ch), len(ch))
	}
}

func TestUnsubscribe(t *testing.T) {
	bus := NewEventBus()
	ch := bus.Subscribe(api.EventError)
	bus.Unsubscribe(ch)

	bus.Publish(api.AudioEvent{Type: api.EventError})

	select {
	case <-ch:
		t.Error("Unsubscribed channel should not receive events")
	default:
	}
}

func TestCloseStopsDelivery(t *testing.T) {
	bus := NewEventBus()
	ch := bus.SubscribeAll()
	bus.Close()

	if _, ok := <-ch; ok {
		t.Error("Expected closed channel")
	}

	// Publishing after close must not panic
	bus.Publish(api.AudioEvent{Type: api.EventEnded})
}
