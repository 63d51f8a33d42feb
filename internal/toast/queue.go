package toast

import (
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/way2b1/nextgen-onboarding/internal/eventbus"
)

// DefaultDisplayDuration matches the UI toast auto-dismiss timing.
const DefaultDisplayDuration = 3 * time.Second

type Toast struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// Queue shows transient confirmation toasts one at a time. Overlapping
// triggers enqueue; each toast is published on the bus when shown and again
// when dismissed after the display duration, and the next one follows.
type Queue struct {
	bus        *eventbus.Bus
	displayFor time.Duration

	mu      sync.Mutex
	pending []Toast
	active  bool
}

type Option func(*Queue)

func WithDisplayDuration(d time.Duration) Option {
	return func(q *Queue) {
		q.displayFor = d
	}
}

func NewQueue(bus *eventbus.Bus, opts ...Option) *Queue {
	q := &Queue{
		bus:        bus,
		displayFor: DefaultDisplayDuration,
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Show enqueues a toast and returns its id. The toast appears immediately
// when nothing is showing, otherwise after the queue drains to it.
func (q *Queue) Show(message string) string {
	t := Toast{ID: ulid.Make().String(), Message: message}
	q.mu.Lock()
	q.pending = append(q.pending, t)
	if q.active {
		q.mu.Unlock()
		return t.ID
	}
	q.active = true
	q.mu.Unlock()

	q.next()
	return t.ID
}

func (q *Queue) next() {
	q.mu.Lock()
	if len(q.pending) == 0 {
		q.active = false
		q.mu.Unlock()
		return
	}
	t := q.pending[0]
	q.pending = q.pending[1:]
	q.mu.Unlock()

	q.bus.PublishNew(eventbus.EventToastShown, "", t.Message, map[string]string{"toast_id": t.ID})
	time.AfterFunc(q.displayFor, func() {
		q.bus.PublishNew(eventbus.EventToastDismissed, "", t.Message, map[string]string{"toast_id": t.ID})
		q.next()
	})
}
