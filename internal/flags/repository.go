package flags

import "context"

// Repository stores the per-feature "seen" booleans. Each flag lives under
// its own well-known key; a flag is either "true" or absent.
type Repository interface {
	Seen(ctx context.Context, key string) (bool, error)
	MarkSeen(ctx context.Context, key string) error
}

// Flag keys used by the UI. Tooltip keys are derived per tooltip/target pair
// via TooltipKey.
const (
	KeyTasksHotspotSeen      = "tasks_onboarding_hotspot_seen"
	KeyTutorialAISeen        = "tutorial_ai_seen"
	KeyTutorialDecisionsSeen = "tutorial_decisions_seen"
)

func TooltipKey(tooltipKey, targetElementID string) string {
	return "tooltip_" + tooltipKey + "_" + targetElementID
}
