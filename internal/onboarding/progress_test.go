package onboarding

import (
	"testing"

	"github.com/way2b1/nextgen-onboarding/internal/task"
)

func checklistWithCompleted(total, completed int) []task.ChecklistItem {
	items := make([]task.ChecklistItem, total)
	for i := range items {
		items[i] = task.ChecklistItem{ID: "item", Completed: i < completed}
	}
	return items
}

func TestComputeProgress(t *testing.T) {
	tests := []struct {
		name        string
		total       int
		completed   int
		wantPercent int
		wantState   State
	}{
		{"no items", 0, 0, 0, StateNotStarted},
		{"nothing done", 6, 0, 0, StateNotStarted},
		{"half done", 6, 3, 50, StateInProgress},
		{"three of four", 4, 3, 75, StateInProgress},
		{"one of six rounds", 6, 1, 17, StateInProgress},
		{"all done", 6, 6, 100, StateComplete},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ComputeProgress(&task.Task{ChecklistItems: checklistWithCompleted(tt.total, tt.completed)})
			if p.Percent != tt.wantPercent {
				t.Errorf("Percent = %d, want %d", p.Percent, tt.wantPercent)
			}
			if p.State != tt.wantState {
				t.Errorf("State = %q, want %q", p.State, tt.wantState)
			}
			if p.Completed != tt.completed || p.Total != tt.total {
				t.Errorf("Completed/Total = %d/%d, want %d/%d", p.Completed, p.Total, tt.completed, tt.total)
			}
		})
	}
}
