package repositoryimpl

import (
	"context"
	"testing"

	"github.com/way2b1/nextgen-onboarding/internal/task"
	"github.com/way2b1/nextgen-onboarding/pkg/cerr"
	"github.com/way2b1/nextgen-onboarding/pkg/storage"
)

func newTestStorage(t *testing.T) storage.Storage {
	t.Helper()
	store, err := storage.NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	return store
}

func TestLoadMissingCollectionIsEmpty(t *testing.T) {
	repo := NewYAMLRepository(newTestStorage(t))

	tasks, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("len(tasks) = %d, want 0", len(tasks))
	}
}

func TestLoadMalformedCollectionFailsOpen(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()
	if err := store.Write(ctx, "tasks/tasks.yaml", []byte("{{{ not yaml")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	repo := NewYAMLRepository(store)

	tasks, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v, want fails-open nil", err)
	}
	if len(tasks) != 0 {
		t.Errorf("len(tasks) = %d, want 0", len(tasks))
	}
}

func TestReplaceInsertsAndUpdates(t *testing.T) {
	repo := NewYAMLRepository(newTestStorage(t))
	ctx := context.Background()

	t1 := &task.Task{ID: "t1", DisplayID: "TASK-0001", Name: "first", Status: task.StatusCreated}
	t2 := &task.Task{ID: "t2", DisplayID: "TASK-0002", Name: "second", Status: task.StatusCreated}
	for _, tk := range []*task.Task{t1, t2} {
		if err := repo.Replace(ctx, tk); err != nil {
			t.Fatalf("Replace(%s) error = %v", tk.ID, err)
		}
	}

	updated := t1.Clone()
	updated.Status = task.StatusDone
	if err := repo.Replace(ctx, updated); err != nil {
		t.Fatalf("Replace() error = %v", err)
	}

	tasks, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("len(tasks) = %d, want 2", len(tasks))
	}
	got, err := repo.Get(ctx, "t1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Status != task.StatusDone {
		t.Errorf("Status = %q, want %q", got.Status, task.StatusDone)
	}
	// Untouched sibling stays as written.
	other, err := repo.Get(ctx, "t2")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if other.Name != "second" {
		t.Errorf("Name = %q, want %q", other.Name, "second")
	}
}

func TestGetByDisplayID(t *testing.T) {
	repo := NewYAMLRepository(newTestStorage(t))
	ctx := context.Background()

	if err := repo.Replace(ctx, &task.Task{ID: "t1", DisplayID: "TASK-0001", Name: "first"}); err != nil {
		t.Fatalf("Replace() error = %v", err)
	}
	got, err := repo.Get(ctx, "TASK-0001")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.ID != "t1" {
		t.Errorf("ID = %q, want t1", got.ID)
	}
}

func TestGetUnknownReturnsNotFound(t *testing.T) {
	repo := NewYAMLRepository(newTestStorage(t))

	_, err := repo.Get(context.Background(), "missing")
	if !cerr.IsCode(err, cerr.NotFound) {
		t.Errorf("Get() error = %v, want NotFound", err)
	}
}

func TestFindOnboarding(t *testing.T) {
	repo := NewYAMLRepository(newTestStorage(t))
	ctx := context.Background()

	got, err := repo.FindOnboarding(ctx)
	if err != nil {
		t.Fatalf("FindOnboarding() error = %v", err)
	}
	if got != nil {
		t.Errorf("FindOnboarding() = %v, want nil on empty store", got)
	}

	if err := repo.Replace(ctx, &task.Task{ID: "r1", Name: "regular"}); err != nil {
		t.Fatalf("Replace() error = %v", err)
	}
	if err := repo.Replace(ctx, &task.Task{ID: "o1", Kind: task.KindOnboarding, Name: "guide"}); err != nil {
		t.Fatalf("Replace() error = %v", err)
	}

	got, err = repo.FindOnboarding(ctx)
	if err != nil {
		t.Fatalf("FindOnboarding() error = %v", err)
	}
	if got == nil || got.ID != "o1" {
		t.Errorf("FindOnboarding() = %v, want task o1", got)
	}
}
