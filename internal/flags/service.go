package flags

import (
	"context"
	"log/slog"
)

// Service is the read side used throughout the app: "is this the first time
// the user meets this feature?". Storage problems fail open to "first time"
// so a broken store can only re-show a hint, never hide content.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) IsFirstTime(ctx context.Context, key string) bool {
	seen, err := s.repo.Seen(ctx, key)
	if err != nil {
		slog.Warn("failed to read seen flag", "key", key, "error", err)
		return true
	}
	return !seen
}

func (s *Service) MarkAsSeen(ctx context.Context, key string) error {
	return s.repo.MarkSeen(ctx, key)
}
