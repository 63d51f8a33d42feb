package repositoryimpl

import (
	"context"
	"testing"

	"github.com/way2b1/nextgen-onboarding/internal/pushsubscription"
	"github.com/way2b1/nextgen-onboarding/pkg/storage"
)

func newTestRepository(t *testing.T) *YAMLRepository {
	t.Helper()
	store, err := storage.NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	return NewYAMLRepository(store)
}

func TestSaveUpsertsByEndpoint(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	first := &pushsubscription.Subscription{ID: "s1", Endpoint: "https://push.example/a", Auth: "old"}
	if err := repo.Save(ctx, first); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	renewed := &pushsubscription.Subscription{ID: "s2", Endpoint: "https://push.example/a", Auth: "new"}
	if err := repo.Save(ctx, renewed); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	other := &pushsubscription.Subscription{ID: "s3", Endpoint: "https://push.example/b"}
	if err := repo.Save(ctx, other); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	subs, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(subs) != 2 {
		t.Fatalf("len(subs) = %d, want 2", len(subs))
	}
	for _, sub := range subs {
		if sub.Endpoint == "https://push.example/a" && sub.Auth != "new" {
			t.Errorf("re-subscribe did not replace the old record: %+v", sub)
		}
	}
}

func TestDeleteByEndpoint(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	if err := repo.Save(ctx, &pushsubscription.Subscription{ID: "s1", Endpoint: "https://push.example/a"}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := repo.DeleteByEndpoint(ctx, "https://push.example/a"); err != nil {
		t.Fatalf("DeleteByEndpoint() error = %v", err)
	}
	// Deleting an unknown endpoint is a no-op.
	if err := repo.DeleteByEndpoint(ctx, "https://push.example/gone"); err != nil {
		t.Fatalf("DeleteByEndpoint() error = %v", err)
	}

	subs, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(subs) != 0 {
		t.Errorf("len(subs) = %d, want 0", len(subs))
	}
}
