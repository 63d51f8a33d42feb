package repositoryimpl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/way2b1/nextgen-onboarding/internal/comment"
	"github.com/way2b1/nextgen-onboarding/pkg/cerr"
	"github.com/way2b1/nextgen-onboarding/pkg/storage"
)

type YAMLRepository struct {
	storage storage.Storage
	mu      sync.Mutex
}

func NewYAMLRepository(s storage.Storage) *YAMLRepository {
	return &YAMLRepository{storage: s}
}

func commentsKey(taskID string) string {
	return fmt.Sprintf("comments/%s.yaml", taskID)
}

func (r *YAMLRepository) List(ctx context.Context, taskID string) ([]*comment.Comment, error) {
	data, err := r.storage.Read(ctx, commentsKey(taskID))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return nil, cerr.WrapStorageReadError("comments", err)
	}
	var comments []*comment.Comment
	if err := yaml.Unmarshal(data, &comments); err != nil {
		slog.Warn("comment collection is malformed, treating as empty", "task_id", taskID, "error", err)
		return nil, nil
	}
	return comments, nil
}

func (r *YAMLRepository) Add(ctx context.Context, c *comment.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	comments, err := r.List(ctx, c.TaskID)
	if err != nil {
		return err
	}
	comments = append(comments, c)
	data, err := yaml.Marshal(comments)
	if err != nil {
		return cerr.NewError(cerr.Internal, "server error", fmt.Errorf("failed to marshal comments: %w", err))
	}
	if err := r.storage.Write(ctx, commentsKey(c.TaskID), data); err != nil {
		return cerr.WrapStorageWriteError("comments", err)
	}
	return nil
}
