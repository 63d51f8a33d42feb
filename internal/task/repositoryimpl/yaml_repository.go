package repositoryimpl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/way2b1/nextgen-onboarding/internal/task"
	"github.com/way2b1/nextgen-onboarding/pkg/cerr"
	"github.com/way2b1/nextgen-onboarding/pkg/storage"
)

// tasksKey is the single well-known key holding the whole task collection.
const tasksKey = "tasks/tasks.yaml"

type YAMLRepository struct {
	storage storage.Storage
	// mu serializes read-modify-write cycles within this process. Writers in
	// other processes are not covered; see Replace.
	mu sync.Mutex
}

func NewYAMLRepository(s storage.Storage) *YAMLRepository {
	return &YAMLRepository{storage: s}
}

func (r *YAMLRepository) Load(ctx context.Context) ([]*task.Task, error) {
	data, err := r.storage.Read(ctx, tasksKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return nil, cerr.WrapStorageReadError("tasks", err)
	}
	var tasks []*task.Task
	if err := yaml.Unmarshal(data, &tasks); err != nil {
		// Fails open: a corrupt collection reads as empty instead of taking
		// the whole feature down.
		slog.Warn("task collection is malformed, treating as empty", "error", err)
		return nil, nil
	}
	return tasks, nil
}

func (r *YAMLRepository) Save(ctx context.Context, tasks []*task.Task) error {
	data, err := yaml.Marshal(tasks)
	if err != nil {
		return cerr.NewError(cerr.Internal, "server error", fmt.Errorf("failed to marshal tasks: %w", err))
	}
	if err := r.storage.Write(ctx, tasksKey, data); err != nil {
		return cerr.WrapStorageWriteError("tasks", err)
	}
	return nil
}

func (r *YAMLRepository) Get(ctx context.Context, id string) (*task.Task, error) {
	tasks, err := r.Load(ctx)
	if err != nil {
		return nil, err
	}
	for _, t := range tasks {
		if t.ID == id || t.DisplayID == id {
			return t, nil
		}
	}
	return nil, cerr.NewError(cerr.NotFound, "task not found", nil)
}

func (r *YAMLRepository) Replace(ctx context.Context, t *task.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tasks, err := r.Load(ctx)
	if err != nil {
		return err
	}
	replaced := false
	for i, existing := range tasks {
		if existing.ID == t.ID {
			tasks[i] = t
			replaced = true
			break
		}
	}
	if !replaced {
		tasks = append(tasks, t)
	}
	return r.Save(ctx, tasks)
}

func (r *YAMLRepository) FindOnboarding(ctx context.Context) (*task.Task, error) {
	tasks, err := r.Load(ctx)
	if err != nil {
		return nil, err
	}
	for _, t := range tasks {
		if t.IsOnboarding() {
			return t, nil
		}
	}
	return nil, nil
}
