package onboarding

import (
	"math"

	"github.com/way2b1/nextgen-onboarding/internal/task"
)

type State string

const (
	StateNotStarted State = "not_started"
	StateInProgress State = "in_progress"
	StateComplete   State = "complete"
)

type Progress struct {
	Completed int   `json:"completed"`
	Total     int   `json:"total"`
	Percent   int   `json:"percent"`
	State     State `json:"state"`
}

// ComputeProgress derives checklist progress. An empty checklist is 0%
// and not started.
func ComputeProgress(t *task.Task) Progress {
	total := len(t.ChecklistItems)
	completed := t.ChecklistCompletedCount()

	p := Progress{
		Completed: completed,
		Total:     total,
		State:     StateNotStarted,
	}
	if total == 0 {
		return p
	}
	p.Percent = int(math.Round(float64(completed) / float64(total) * 100))
	switch {
	case completed == total:
		p.State = StateComplete
	case completed > 0:
		p.State = StateInProgress
	}
	return p
}
