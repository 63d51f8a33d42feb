package onboarding

import (
	"context"

	"github.com/way2b1/nextgen-onboarding/internal/flags"
	"github.com/way2b1/nextgen-onboarding/internal/task"
)

// BannerDismissedKey is the permanent dismissal flag. Dismissal sticks
// across sessions; completion hides the banner regardless of the flag.
const BannerDismissedKey = "onboarding_banner_dismissed"

type BannerState struct {
	Visible bool   `json:"visible"`
	TaskID  string `json:"taskId,omitempty"`
}

// Banner derives the dashboard banner's visibility from the onboarding
// task's existence, its completion, and the dismissal flag.
type Banner struct {
	repo  task.Repository
	flags *flags.Service
}

func NewBanner(repo task.Repository, flagService *flags.Service) *Banner {
	return &Banner{repo: repo, flags: flagService}
}

func (b *Banner) State(ctx context.Context) (BannerState, error) {
	t, err := b.repo.FindOnboarding(ctx)
	if err != nil {
		return BannerState{}, err
	}
	if t == nil || t.ChecklistComplete() {
		return BannerState{}, nil
	}
	if !b.flags.IsFirstTime(ctx, BannerDismissedKey) {
		return BannerState{TaskID: t.ID}, nil
	}
	return BannerState{Visible: true, TaskID: t.ID}, nil
}

func (b *Banner) Dismiss(ctx context.Context) error {
	return b.flags.MarkAsSeen(ctx, BannerDismissedKey)
}
