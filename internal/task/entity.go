package task

import "time"

type Status string

const (
	StatusCreated    Status = "Created"
	StatusInProgress Status = "In Progress"
	StatusReview     Status = "Review"
	StatusDone       Status = "Done"
)

func (s Status) Valid() bool {
	switch s {
	case StatusCreated, StatusInProgress, StatusReview, StatusDone:
		return true
	}
	return false
}

type Kind string

// KindOnboarding tags the single quick-start guide task. Older stores
// identified it only by its display name; IsOnboarding keeps that as a
// fallback so pre-tag records still work.
const KindOnboarding Kind = "onboarding"

// OnboardingTaskName is the legacy display name of the onboarding task.
const OnboardingTaskName = "Welcome to NextGen — Your Quick Start Guide"

type ChecklistItem struct {
	ID        string `yaml:"id" json:"id"`
	Text      string `yaml:"text" json:"text"`
	Completed bool   `yaml:"completed" json:"completed"`
}

type Task struct {
	ID             string          `yaml:"id" json:"id"`
	DisplayID      string          `yaml:"display_id" json:"taskId"`
	Kind           Kind            `yaml:"kind,omitempty" json:"kind,omitempty"`
	Name           string          `yaml:"name" json:"name"`
	Title          string          `yaml:"title,omitempty" json:"title,omitempty"`
	Description    string          `yaml:"description,omitempty" json:"description,omitempty"`
	Status         Status          `yaml:"status" json:"status"`
	Priority       string          `yaml:"priority" json:"priority"`
	Assignee       string          `yaml:"assignee,omitempty" json:"assignee,omitempty"`
	DueDate        string          `yaml:"due_date,omitempty" json:"dueDate,omitempty"`
	Reporter       string          `yaml:"reporter,omitempty" json:"reporter,omitempty"`
	Category       string          `yaml:"category,omitempty" json:"category,omitempty"`
	Project        string          `yaml:"project,omitempty" json:"project,omitempty"`
	Amount         string          `yaml:"amount,omitempty" json:"amount,omitempty"`
	ChecklistItems []ChecklistItem `yaml:"checklist_items,omitempty" json:"checklistItems,omitempty"`
	CreatedAt      time.Time       `yaml:"created_at" json:"createdAt"`
	LastModified   time.Time       `yaml:"last_modified" json:"lastModified"`
}

func (t *Task) IsOnboarding() bool {
	return t.Kind == KindOnboarding || t.Name == OnboardingTaskName
}

// ChecklistItemByID returns the index of the item, or -1 when absent.
func (t *Task) ChecklistItemIndex(itemID string) int {
	for i, item := range t.ChecklistItems {
		if item.ID == itemID {
			return i
		}
	}
	return -1
}

func (t *Task) ChecklistItemCompleted(itemID string) bool {
	i := t.ChecklistItemIndex(itemID)
	return i >= 0 && t.ChecklistItems[i].Completed
}

func (t *Task) ChecklistCompletedCount() int {
	n := 0
	for _, item := range t.ChecklistItems {
		if item.Completed {
			n++
		}
	}
	return n
}

// ChecklistComplete reports whether every item is done. An empty checklist is
// never complete.
func (t *Task) ChecklistComplete() bool {
	return len(t.ChecklistItems) > 0 && t.ChecklistCompletedCount() == len(t.ChecklistItems)
}

// Clone returns a deep copy. The repository owns the stored records;
// callers mutate copies and write them back.
func (t *Task) Clone() *Task {
	c := *t
	if t.ChecklistItems != nil {
		c.ChecklistItems = make([]ChecklistItem, len(t.ChecklistItems))
		copy(c.ChecklistItems, t.ChecklistItems)
	}
	return &c
}
