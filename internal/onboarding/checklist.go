package onboarding

import "github.com/way2b1/nextgen-onboarding/internal/task"

// Checklist item ids. They are stable within the onboarding task and the
// cross-feature triggers address items by these ids.
const (
	ItemReviewHomepage    = "checklist-1"
	ItemExploreNavigation = "checklist-2"
	ItemCommentMention    = "checklist-3"
	ItemChangeStatus      = "checklist-4"
	ItemExploreModule     = "checklist-5"
	ItemMarkComplete      = "checklist-6"
)

// defaultChecklist returns the canonical six onboarding steps, in display
// order, all incomplete.
func defaultChecklist() []task.ChecklistItem {
	return []task.ChecklistItem{
		{ID: ItemReviewHomepage, Text: "Review your homepage—this is where your assigned items appear"},
		{ID: ItemExploreNavigation, Text: "Check the left navigation to see Decisions, Projects, and other modules"},
		{ID: ItemCommentMention, Text: "Leave a comment on this task (By the way, you can @mentioning someone)"},
		{ID: ItemChangeStatus, Text: "Try changing this task's status using the dropdown"},
		{ID: ItemExploreModule, Text: "Explore one module that interests you (Decisions, Projects, etc.)"},
		{ID: ItemMarkComplete, Text: "Mark this task complete when you're ready"},
	}
}
