package storagewatch

import (
	"context"
	"testing"
	"time"

	"github.com/way2b1/nextgen-onboarding/internal/eventbus"
	"github.com/way2b1/nextgen-onboarding/pkg/storage"
)

func TestWatcherPublishesOnExternalWrite(t *testing.T) {
	store, err := storage.NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	ctx := context.Background()
	if err := store.Write(ctx, "tasks/tasks.yaml", []byte("before")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	bus := eventbus.New()
	id, ch := bus.Subscribe(8)
	defer bus.Unsubscribe(id)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	w := New(store.BasePath(), bus)
	go func() { _ = w.Run(runCtx) }()

	// Let the watcher take its initial snapshot.
	time.Sleep(200 * time.Millisecond)

	if err := store.Write(ctx, "tasks/tasks.yaml", []byte("after")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	select {
	case ev := <-ch:
		if ev.Type != eventbus.EventStorageChanged {
			t.Errorf("event type = %s, want %s", ev.Type, eventbus.EventStorageChanged)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("never saw storage.changed after external write")
	}
}

func TestWatcherIgnoresContentPreservingRewrite(t *testing.T) {
	store, err := storage.NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	ctx := context.Background()
	if err := store.Write(ctx, "tasks/tasks.yaml", []byte("same")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	bus := eventbus.New()
	id, ch := bus.Subscribe(8)
	defer bus.Unsubscribe(id)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	w := New(store.BasePath(), bus)
	go func() { _ = w.Run(runCtx) }()

	time.Sleep(200 * time.Millisecond)

	// Identical content: events fire at the fs level but the digest is
	// unchanged, so nothing is published.
	if err := store.Write(ctx, "tasks/tasks.yaml", []byte("same")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	select {
	case ev := <-ch:
		t.Errorf("unexpected event %s for unchanged content", ev.Type)
	case <-time.After(500 * time.Millisecond):
	}
}
