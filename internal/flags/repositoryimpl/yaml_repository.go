package repositoryimpl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/way2b1/nextgen-onboarding/pkg/cerr"
	"github.com/way2b1/nextgen-onboarding/pkg/storage"
)

const flagsKey = "flags/flags.yaml"

// YAMLRepository keeps all seen flags in one YAML map.
type YAMLRepository struct {
	storage storage.Storage
	mu      sync.Mutex
}

func NewYAMLRepository(s storage.Storage) *YAMLRepository {
	return &YAMLRepository{storage: s}
}

func (r *YAMLRepository) load(ctx context.Context) (map[string]bool, error) {
	data, err := r.storage.Read(ctx, flagsKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return map[string]bool{}, nil
		}
		return nil, cerr.WrapStorageReadError("flags", err)
	}
	flags := map[string]bool{}
	if err := yaml.Unmarshal(data, &flags); err != nil {
		slog.Warn("flags document is malformed, treating as empty", "error", err)
		return map[string]bool{}, nil
	}
	return flags, nil
}

func (r *YAMLRepository) Seen(ctx context.Context, key string) (bool, error) {
	flags, err := r.load(ctx)
	if err != nil {
		return false, err
	}
	return flags[key], nil
}

func (r *YAMLRepository) MarkSeen(ctx context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	flags, err := r.load(ctx)
	if err != nil {
		return err
	}
	if flags[key] {
		return nil
	}
	flags[key] = true
	data, err := yaml.Marshal(flags)
	if err != nil {
		return cerr.NewError(cerr.Internal, "server error", fmt.Errorf("failed to marshal flags: %w", err))
	}
	if err := r.storage.Write(ctx, flagsKey, data); err != nil {
		return cerr.WrapStorageWriteError("flags", err)
	}
	return nil
}
