package eventbus

import (
	"testing"
	"time"
)

func TestPublishReachesAllSubscribers(t *testing.T) {
	bus := New()
	id1, ch1 := bus.Subscribe(4)
	defer bus.Unsubscribe(id1)
	id2, ch2 := bus.Subscribe(4)
	defer bus.Unsubscribe(id2)

	bus.PublishNew(EventTaskUpdated, "t1", "", nil)

	for i, ch := range []<-chan *Event{ch1, ch2} {
		select {
		case ev := <-ch:
			if ev.Type != EventTaskUpdated || ev.TaskID != "t1" {
				t.Errorf("subscriber %d got %s/%s", i, ev.Type, ev.TaskID)
			}
			if ev.ID == "" {
				t.Errorf("subscriber %d got event without id", i)
			}
		case <-time.After(time.Second):
			t.Fatalf("subscriber %d never received the event", i)
		}
	}
}

func TestPublishDropsWhenSubscriberFull(t *testing.T) {
	bus := New()
	id, ch := bus.Subscribe(1)
	defer bus.Unsubscribe(id)

	// Second publish must not block even though the buffer is full.
	done := make(chan struct{})
	go func() {
		bus.PublishNew(EventTaskUpdated, "t1", "", nil)
		bus.PublishNew(EventTaskUpdated, "t2", "", nil)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a full subscriber")
	}

	ev := <-ch
	if ev.TaskID != "t1" {
		t.Errorf("TaskID = %q, want t1", ev.TaskID)
	}
	select {
	case ev := <-ch:
		t.Errorf("unexpected second event: %v", ev)
	default:
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	bus := New()
	id, ch := bus.Subscribe(1)
	bus.Unsubscribe(id)

	if _, ok := <-ch; ok {
		t.Error("channel still open after Unsubscribe")
	}
	// Unsubscribing twice is harmless.
	bus.Unsubscribe(id)
}
