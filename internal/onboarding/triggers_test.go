package onboarding

import (
	"context"
	"testing"
	"time"

	"github.com/way2b1/nextgen-onboarding/internal/eventbus"
	"github.com/way2b1/nextgen-onboarding/internal/task"
	"github.com/way2b1/nextgen-onboarding/internal/toast"
)

func newTestTriggers(t *testing.T) (*Triggers, task.Repository, *eventbus.Bus, *task.Task) {
	t.Helper()
	repo := newTestRepo(t)
	bus := eventbus.New()
	engine := NewEngine(repo, bus, WithCelebrationDelay(time.Millisecond))
	queue := toast.NewQueue(bus, toast.WithDisplayDuration(time.Millisecond))
	triggers := NewTriggers(engine, queue, WithStagger(time.Millisecond))
	created, err := NewFactory(repo, bus).EnsureTask(context.Background(), Identity{})
	if err != nil {
		t.Fatalf("EnsureTask() error = %v", err)
	}
	return triggers, repo, bus, created
}

func TestStatusChangedCompletesChangeStatusStep(t *testing.T) {
	triggers, repo, bus, created := newTestTriggers(t)
	ctx := context.Background()

	ch := collectEvents(t, bus)
	if err := triggers.StatusChanged(ctx, created, task.StatusCreated, task.StatusInProgress); err != nil {
		t.Fatalf("StatusChanged() error = %v", err)
	}

	stored, err := repo.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !stored.ChecklistItemCompleted(ItemChangeStatus) {
		t.Error("change status step not completed")
	}
	if stored.ChecklistItemCompleted(ItemMarkComplete) {
		t.Error("mark complete step completed on non-Done status")
	}
	if n := countEvents(ch, eventbus.EventToastShown, 50*time.Millisecond); n != 1 {
		t.Errorf("toasts shown = %d, want 1", n)
	}
}

func TestStatusChangedToDoneAlsoCompletesMarkCompleteStep(t *testing.T) {
	triggers, repo, bus, created := newTestTriggers(t)
	ctx := context.Background()

	ch := collectEvents(t, bus)
	if err := triggers.StatusChanged(ctx, created, task.StatusCreated, task.StatusDone); err != nil {
		t.Fatalf("StatusChanged() error = %v", err)
	}
	// The mark-complete step lands after the stagger.
	time.Sleep(50 * time.Millisecond)

	stored, err := repo.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !stored.ChecklistItemCompleted(ItemChangeStatus) {
		t.Error("change status step not completed")
	}
	if !stored.ChecklistItemCompleted(ItemMarkComplete) {
		t.Error("mark complete step not completed on Done")
	}
	if n := countEvents(ch, eventbus.EventToastShown, 50*time.Millisecond); n != 2 {
		t.Errorf("toasts shown = %d, want 2", n)
	}
}

func TestStatusChangedIsIdempotent(t *testing.T) {
	triggers, repo, bus, created := newTestTriggers(t)
	ctx := context.Background()

	if err := triggers.StatusChanged(ctx, created, task.StatusCreated, task.StatusInProgress); err != nil {
		t.Fatalf("StatusChanged() error = %v", err)
	}
	time.Sleep(20 * time.Millisecond)

	stored, err := repo.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	ch := collectEvents(t, bus)
	if err := triggers.StatusChanged(ctx, stored, task.StatusInProgress, task.StatusReview); err != nil {
		t.Fatalf("StatusChanged() error = %v", err)
	}
	if n := countEvents(ch, eventbus.EventToastShown, 50*time.Millisecond); n != 0 {
		t.Errorf("toasts shown on repeat = %d, want 0", n)
	}
}

func TestStatusChangedIgnoresNonOnboardingTask(t *testing.T) {
	triggers, repo, _, _ := newTestTriggers(t)
	ctx := context.Background()

	other := &task.Task{
		ID:     "regular-1",
		Name:   "Quarterly budget review",
		Status: task.StatusCreated,
		ChecklistItems: []task.ChecklistItem{
			{ID: ItemChangeStatus, Text: "unrelated"},
		},
	}
	if err := repo.Replace(ctx, other); err != nil {
		t.Fatalf("Replace() error = %v", err)
	}
	if err := triggers.StatusChanged(ctx, other, task.StatusCreated, task.StatusDone); err != nil {
		t.Fatalf("StatusChanged() error = %v", err)
	}
	time.Sleep(20 * time.Millisecond)

	stored, err := repo.Get(ctx, "regular-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if stored.ChecklistItemCompleted(ItemChangeStatus) {
		t.Error("trigger mutated a non-onboarding task")
	}
}

func TestCommentSubmittedMentionDetection(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"mention", "hello @Jane", true},
		{"no mention", "hello Jane", false},
		{"bare at sign", "@", true},
		{"empty", "", false},
		{"whitespace only", "   ", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			triggers, repo, _, created := newTestTriggers(t)
			ctx := context.Background()

			if err := triggers.CommentSubmitted(ctx, created, tt.text); err != nil {
				t.Fatalf("CommentSubmitted() error = %v", err)
			}
			stored, err := repo.Get(ctx, created.ID)
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if got := stored.ChecklistItemCompleted(ItemCommentMention); got != tt.want {
				t.Errorf("mention step completed = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCommentSubmittedIsIdempotent(t *testing.T) {
	triggers, repo, bus, created := newTestTriggers(t)
	ctx := context.Background()

	if err := triggers.CommentSubmitted(ctx, created, "hi @Jane"); err != nil {
		t.Fatalf("CommentSubmitted() error = %v", err)
	}
	stored, err := repo.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	ch := collectEvents(t, bus)
	if err := triggers.CommentSubmitted(ctx, stored, "hi again @Jane"); err != nil {
		t.Fatalf("CommentSubmitted() error = %v", err)
	}
	if n := countEvents(ch, eventbus.EventToastShown, 50*time.Millisecond); n != 0 {
		t.Errorf("toasts shown on repeat = %d, want 0", n)
	}
}

func TestHomepageVisitedCompletesStepOnce(t *testing.T) {
	triggers, repo, bus, created := newTestTriggers(t)
	ctx := context.Background()

	if err := triggers.HomepageVisited(ctx, created); err != nil {
		t.Fatalf("HomepageVisited() error = %v", err)
	}
	stored, err := repo.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !stored.ChecklistItemCompleted(ItemReviewHomepage) {
		t.Error("homepage step not completed")
	}

	ch := collectEvents(t, bus)
	if err := triggers.HomepageVisited(ctx, stored); err != nil {
		t.Fatalf("HomepageVisited() error = %v", err)
	}
	if n := countEvents(ch, eventbus.EventToastShown, 50*time.Millisecond); n != 0 {
		t.Errorf("toasts shown on repeat = %d, want 0", n)
	}
}
