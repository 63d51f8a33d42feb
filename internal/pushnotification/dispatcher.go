package pushnotification

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/way2b1/nextgen-onboarding/internal/eventbus"
)

// Dispatcher watches the bus and pushes a notification when onboarding
// completes, so the user hears about it even with the tab closed.
type Dispatcher struct {
	bus    *eventbus.Bus
	sender *Sender
}

func NewDispatcher(bus *eventbus.Bus, sender *Sender) *Dispatcher {
	return &Dispatcher{bus: bus, sender: sender}
}

// Start consumes bus events until ctx is canceled.
func (d *Dispatcher) Start(ctx context.Context) {
	id, ch := d.bus.Subscribe(16)
	defer d.bus.Unsubscribe(id)

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-ch:
			if !ok {
				return
			}
			if ev.Type != eventbus.EventOnboardingCompleted {
				continue
			}
			d.dispatch(ctx, ev)
		}
	}
}

func (d *Dispatcher) dispatch(ctx context.Context, ev *eventbus.Event) {
	n := Notification{
		Title: "Onboarding Complete!",
		Body:  "Congratulations! You've completed all the onboarding steps.",
	}
	if ev.Payload != "" {
		var c struct {
			Title string `json:"title"`
			Body  string `json:"body"`
		}
		if err := json.Unmarshal([]byte(ev.Payload), &c); err == nil && c.Title != "" {
			n.Title = c.Title
			n.Body = c.Body
		}
	}
	if ev.TaskID != "" {
		n.URL = "/tasks/" + ev.TaskID
	}
	if err := d.sender.Broadcast(ctx, n); err != nil {
		slog.Warn("failed to broadcast completion notification", "error", err)
	}
}
