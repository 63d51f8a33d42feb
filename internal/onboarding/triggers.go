package onboarding

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/way2b1/nextgen-onboarding/internal/task"
	"github.com/way2b1/nextgen-onboarding/internal/toast"
)

// DefaultTriggerStagger spaces the "Done" confirmation away from the status
// change confirmation when both fire from one action.
const DefaultTriggerStagger = 500 * time.Millisecond

const (
	toastHomepageReviewed = "Great! You've completed: Review your homepage"
	toastStatusChanged    = "Great! You've completed: Change task status"
	toastMarkedComplete   = "Great! You've completed: Mark task as complete"
	toastMentionLeft      = "Great! You've completed: Leave a comment with @mention"
)

// Triggers turns incidental user actions elsewhere in the UI into checklist
// completions. Every trigger is inert on non-onboarding tasks and never
// re-completes an already completed item.
type Triggers struct {
	engine  *Engine
	toasts  *toast.Queue
	stagger time.Duration
}

type TriggersOption func(*Triggers)

func WithStagger(d time.Duration) TriggersOption {
	return func(tr *Triggers) {
		tr.stagger = d
	}
}

func NewTriggers(engine *Engine, toasts *toast.Queue, opts ...TriggersOption) *Triggers {
	tr := &Triggers{
		engine:  engine,
		toasts:  toasts,
		stagger: DefaultTriggerStagger,
	}
	for _, opt := range opts {
		opt(tr)
	}
	return tr
}

// StatusChanged runs after a task's status moved from oldStatus to
// newStatus. It completes the "change status" step, and additionally the
// "mark complete" step (after a stagger) when the new status is Done.
func (tr *Triggers) StatusChanged(ctx context.Context, t *task.Task, oldStatus, newStatus task.Status) error {
	if !t.IsOnboarding() || newStatus == oldStatus {
		return nil
	}
	if !t.ChecklistItemCompleted(ItemChangeStatus) {
		if _, err := tr.engine.ToggleItem(ctx, t.ID, ItemChangeStatus, true); err != nil {
			return err
		}
		tr.toasts.Show(toastStatusChanged)
	}
	if newStatus == task.StatusDone && !t.ChecklistItemCompleted(ItemMarkComplete) {
		taskID := t.ID
		time.AfterFunc(tr.stagger, func() {
			if _, err := tr.engine.ToggleItem(context.Background(), taskID, ItemMarkComplete, true); err != nil {
				slog.Error("failed to complete checklist step after status change", "task_id", taskID, "error", err)
				return
			}
			tr.toasts.Show(toastMarkedComplete)
		})
	}
	return nil
}

// CommentSubmitted completes the mention step when a non-empty comment
// contains an @.
func (tr *Triggers) CommentSubmitted(ctx context.Context, t *task.Task, text string) error {
	if !t.IsOnboarding() {
		return nil
	}
	if strings.TrimSpace(text) == "" || !strings.Contains(text, "@") {
		return nil
	}
	if t.ChecklistItemCompleted(ItemCommentMention) {
		return nil
	}
	if _, err := tr.engine.ToggleItem(ctx, t.ID, ItemCommentMention, true); err != nil {
		return err
	}
	tr.toasts.Show(toastMentionLeft)
	return nil
}

// HomepageVisited completes the homepage step when the user follows the
// homepage hint.
func (tr *Triggers) HomepageVisited(ctx context.Context, t *task.Task) error {
	if !t.IsOnboarding() || t.ChecklistItemCompleted(ItemReviewHomepage) {
		return nil
	}
	if _, err := tr.engine.ToggleItem(ctx, t.ID, ItemReviewHomepage, true); err != nil {
		return err
	}
	tr.toasts.Show(toastHomepageReviewed)
	return nil
}
