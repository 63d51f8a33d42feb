package onboarding

import (
	"context"
	"encoding/json"
	"time"

	"github.com/way2b1/nextgen-onboarding/internal/eventbus"
	"github.com/way2b1/nextgen-onboarding/internal/task"
)

// DefaultCelebrationDelay leaves room for the checkbox animation before the
// completion modal appears.
const DefaultCelebrationDelay = 500 * time.Millisecond

// Celebration is the payload of the onboarding-completed event, carried as
// JSON so any view can render the modal without hardcoding copy.
type Celebration struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

var completionCelebration = Celebration{
	Title: "🎉 Onboarding Complete!",
	Body: "Congratulations! You've completed all the onboarding steps. " +
		"You're now ready to explore Way2B1 NextGen and make the most of its features.",
}

// Engine applies checklist toggles and detects the transition into the
// all-complete state.
type Engine struct {
	repo             task.Repository
	bus              *eventbus.Bus
	celebrationDelay time.Duration
}

type EngineOption func(*Engine)

func WithCelebrationDelay(d time.Duration) EngineOption {
	return func(e *Engine) {
		e.celebrationDelay = d
	}
}

func NewEngine(repo task.Repository, bus *eventbus.Bus, opts ...EngineOption) *Engine {
	e := &Engine{
		repo:             repo,
		bus:              bus,
		celebrationDelay: DefaultCelebrationDelay,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ToggleItem sets one checklist item's completed flag and persists the task.
// An unknown itemID is a silent no-op returning the task unchanged. Only a
// genuine transition into the all-complete state schedules the celebration;
// re-completing an already complete item fires nothing, and un-completing
// then completing again fires a fresh one.
func (e *Engine) ToggleItem(ctx context.Context, taskID, itemID string, completed bool) (*task.Task, error) {
	t, err := e.repo.Get(ctx, taskID)
	if err != nil {
		return nil, err
	}
	i := t.ChecklistItemIndex(itemID)
	if i < 0 {
		return t, nil
	}

	wasComplete := t.ChecklistComplete()
	itemWasCompleted := t.ChecklistItems[i].Completed

	updated := t.Clone()
	updated.ChecklistItems[i].Completed = completed
	updated.LastModified = time.Now()
	if err := e.repo.Replace(ctx, updated); err != nil {
		return nil, err
	}
	e.bus.PublishNew(eventbus.EventTaskUpdated, updated.ID, "", nil)

	if updated.IsOnboarding() {
		if completed && !itemWasCompleted {
			e.bus.PublishNew(eventbus.EventChecklistStepCompleted, updated.ID, itemID, nil)
		}
		if !wasComplete && updated.ChecklistComplete() {
			e.scheduleCelebration(updated.ID)
		}
	}
	return updated, nil
}

// scheduleCelebration publishes the completion event after the delay. The
// publish is fire-and-forget: with no subscribers the event is simply
// dropped.
func (e *Engine) scheduleCelebration(taskID string) {
	payload, _ := json.Marshal(completionCelebration)
	time.AfterFunc(e.celebrationDelay, func() {
		e.bus.PublishNew(eventbus.EventOnboardingCompleted, taskID, string(payload), nil)
	})
}
