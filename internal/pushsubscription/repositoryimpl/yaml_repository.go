package repositoryimpl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/way2b1/nextgen-onboarding/internal/pushsubscription"
	"github.com/way2b1/nextgen-onboarding/pkg/cerr"
	"github.com/way2b1/nextgen-onboarding/pkg/storage"
)

const subscriptionsKey = "push/subscriptions.yaml"

type YAMLRepository struct {
	storage storage.Storage
	mu      sync.Mutex
}

func NewYAMLRepository(s storage.Storage) *YAMLRepository {
	return &YAMLRepository{storage: s}
}

func (r *YAMLRepository) List(ctx context.Context) ([]*pushsubscription.Subscription, error) {
	data, err := r.storage.Read(ctx, subscriptionsKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return nil, cerr.WrapStorageReadError("push subscriptions", err)
	}
	var subs []*pushsubscription.Subscription
	if err := yaml.Unmarshal(data, &subs); err != nil {
		slog.Warn("push subscription collection is malformed, treating as empty", "error", err)
		return nil, nil
	}
	return subs, nil
}

func (r *YAMLRepository) Save(ctx context.Context, sub *pushsubscription.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	subs, err := r.List(ctx)
	if err != nil {
		return err
	}
	replaced := false
	for i, existing := range subs {
		if existing.Endpoint == sub.Endpoint {
			subs[i] = sub
			replaced = true
			break
		}
	}
	if !replaced {
		subs = append(subs, sub)
	}
	return r.save(ctx, subs)
}

func (r *YAMLRepository) DeleteByEndpoint(ctx context.Context, endpoint string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	subs, err := r.List(ctx)
	if err != nil {
		return err
	}
	kept := subs[:0]
	for _, existing := range subs {
		if existing.Endpoint != endpoint {
			kept = append(kept, existing)
		}
	}
	return r.save(ctx, kept)
}

func (r *YAMLRepository) save(ctx context.Context, subs []*pushsubscription.Subscription) error {
	data, err := yaml.Marshal(subs)
	if err != nil {
		return cerr.NewError(cerr.Internal, "server error", fmt.Errorf("failed to marshal push subscriptions: %w", err))
	}
	if err := r.storage.Write(ctx, subscriptionsKey, data); err != nil {
		return cerr.WrapStorageWriteError("push subscriptions", err)
	}
	return nil
}
