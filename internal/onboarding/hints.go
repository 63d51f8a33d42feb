package onboarding

// Hint tells a client where to direct the user for one checklist item. The
// target fields mirror what the web client needs: an element to highlight, a
// page to navigate to, or a section to scroll into view.
type Hint struct {
	ChecklistID     string `json:"checklistId"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	TargetElementID string `json:"targetElementId,omitempty"`
	TargetURL       string `json:"targetUrl,omitempty"`
	ScrollToSection string `json:"scrollToSection,omitempty"`
}

var checklistHints = []Hint{
	{
		ChecklistID: ItemReviewHomepage,
		Title:       "Homepage",
		Description: "This is your homepage. Here you'll see all tasks and decisions assigned to you.",
		TargetURL:   "/",
	},
	{
		ChecklistID:     ItemExploreNavigation,
		Title:           "Navigation",
		Description:     "The left navigation panel contains all modules: Decisions, Projects, Tasks, Budgets, and more.",
		TargetElementID: "navigation",
	},
	{
		ChecklistID:     ItemCommentMention,
		Title:           "Comments with @mention",
		Description:     "Add a comment below and use @ to mention users. For example: @John Doe",
		TargetElementID: "comment-input",
		ScrollToSection: "comments",
	},
	{
		ChecklistID:     ItemChangeStatus,
		Title:           "Change Status",
		Description:     "Use the status dropdown in the Details section to change the task status.",
		TargetElementID: "task-status",
		ScrollToSection: "details",
	},
	{
		ChecklistID:     ItemExploreModule,
		Title:           "Explore Modules",
		Description:     "Navigate to any module through the left navigation: Decisions, Projects, Tasks, etc.",
		TargetElementID: "navigation",
	},
	{
		ChecklistID: ItemMarkComplete,
		Title:       "Complete Task",
		Description: "After completing all items, you can mark this task as complete by changing the status to 'Done'.",
	},
}

// Hints returns the hint table in checklist display order.
func Hints() []Hint {
	out := make([]Hint, len(checklistHints))
	copy(out, checklistHints)
	return out
}

// HintFor returns the hint for one checklist item, or nil when the item has
// no hint.
func HintFor(checklistID string) *Hint {
	for i := range checklistHints {
		if checklistHints[i].ChecklistID == checklistID {
			h := checklistHints[i]
			return &h
		}
	}
	return nil
}
