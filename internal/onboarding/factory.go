package onboarding

import (
	"context"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/way2b1/nextgen-onboarding/internal/eventbus"
	"github.com/way2b1/nextgen-onboarding/internal/task"
)

// Identity is the signed-in user as far as this service cares: just enough
// to derive an assignee display name.
type Identity struct {
	FirstName string
	LastName  string
	Email     string
}

// DisplayName falls back from full name to email to a generic label.
func (id Identity) DisplayName() string {
	if id.FirstName != "" && id.LastName != "" {
		return id.FirstName + " " + id.LastName
	}
	if id.Email != "" {
		return id.Email
	}
	return "Current User"
}

const taskDescription = "A new IT onboarding task that guides users through NextGen " +
	"with a short checklist (review homepage, explore navigation/modules, leave a comment, " +
	"change status, and mark complete); the task was just created and remains open."

// Factory creates the single onboarding task. EnsureTask is safe to call on
// every boot.
type Factory struct {
	repo task.Repository
	bus  *eventbus.Bus
	now  func() time.Time
}

func NewFactory(repo task.Repository, bus *eventbus.Bus) *Factory {
	return &Factory{
		repo: repo,
		bus:  bus,
		now:  time.Now,
	}
}

// EnsureTask returns the existing onboarding task, or creates it when the
// collection has none. At most one onboarding task exists at a time.
func (f *Factory) EnsureTask(ctx context.Context, user Identity) (*task.Task, error) {
	existing, err := f.repo.FindOnboarding(ctx)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	now := f.now()
	assignee := user.DisplayName()
	t := &task.Task{
		ID:             ulid.Make().String(),
		DisplayID:      fmt.Sprintf("ONBOARD-%04d", now.UnixMilli()%10000),
		Kind:           task.KindOnboarding,
		Name:           task.OnboardingTaskName,
		Description:    taskDescription,
		Status:         task.StatusCreated,
		Priority:       "Normal",
		Assignee:       assignee,
		Reporter:       assignee,
		DueDate:        "—",
		Category:       "Onboarding",
		Project:        "Onboarding",
		Amount:         "—",
		ChecklistItems: defaultChecklist(),
		CreatedAt:      now,
		LastModified:   now,
	}
	if err := f.repo.Replace(ctx, t); err != nil {
		return nil, err
	}
	f.bus.PublishNew(eventbus.EventTaskCreated, t.ID, "", nil)
	return t, nil
}
