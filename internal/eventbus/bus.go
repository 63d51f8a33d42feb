package eventbus

import (
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

type EventType string

const (
	// EventTaskCreated and EventTaskUpdated are the coarse invalidation
	// signals: listeners re-read the task collection on either.
	EventTaskCreated EventType = "task.created"
	EventTaskUpdated EventType = "task.updated"

	// EventStorageChanged reports a mutation made by another process,
	// detected by the storage watcher. Listeners treat it exactly like
	// EventTaskUpdated.
	EventStorageChanged EventType = "storage.changed"

	EventCommentCreated EventType = "comment.created"

	EventChecklistStepCompleted EventType = "onboarding.step_completed"
	EventOnboardingCompleted    EventType = "onboarding.completed"

	EventToastShown     EventType = "toast.shown"
	EventToastDismissed EventType = "toast.dismissed"
)

type Event struct {
	ID        string            `json:"id"`
	Type      EventType         `json:"type"`
	TaskID    string            `json:"taskId,omitempty"`
	Payload   string            `json:"payload,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
}

// Bus is the in-process broadcast channel between mutations and views.
// Publishing never blocks; a subscriber that falls behind loses events, which
// is acceptable because every listener re-reads full state on receipt.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[string]chan *Event
}

func New() *Bus {
	return &Bus{
		subscribers: make(map[string]chan *Event),
	}
}

func (b *Bus) Subscribe(bufSize int) (string, <-chan *Event) {
	id := ulid.Make().String()
	ch := make(chan *Event, bufSize)
	b.mu.Lock()
	b.subscribers[id] = ch
	b.mu.Unlock()
	return id, ch
}

func (b *Bus) Unsubscribe(id string) {
	b.mu.Lock()
	if ch, ok := b.subscribers[id]; ok {
		close(ch)
		delete(b.subscribers, id)
	}
	b.mu.Unlock()
}

func (b *Bus) Publish(event *Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, ch := range b.subscribers {
		select {
		case ch <- event:
		default:
			// buffer full, drop event for this subscriber
		}
	}
}

func (b *Bus) PublishNew(eventType EventType, taskID, payload string, metadata map[string]string) {
	b.Publish(&Event{
		ID:        ulid.Make().String(),
		Type:      eventType,
		TaskID:    taskID,
		Payload:   payload,
		Metadata:  metadata,
		CreatedAt: time.Now(),
	})
}
