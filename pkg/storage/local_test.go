package storage

import (
	"context"
	"errors"
	"testing"
)

func TestLocalStorageReadWrite(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStorage() error = %v", err)
	}
	ctx := context.Background()

	if err := store.Write(ctx, "tasks/tasks.yaml", []byte("hello")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	data, err := store.Read(ctx, "tasks/tasks.yaml")
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("Read() = %q, want hello", data)
	}

	exists, err := store.Exists(ctx, "tasks/tasks.yaml")
	if err != nil {
		t.Fatalf("Exists() error = %v", err)
	}
	if !exists {
		t.Error("Exists() = false for written key")
	}
}

func TestLocalStorageReadMissingKey(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStorage() error = %v", err)
	}

	_, err = store.Read(context.Background(), "tasks/missing.yaml")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Read() error = %v, want ErrNotFound", err)
	}
}

func TestLocalStorageDelete(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStorage() error = %v", err)
	}
	ctx := context.Background()

	if err := store.Write(ctx, "flags/flags.yaml", []byte("x")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := store.Delete(ctx, "flags/flags.yaml"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := store.Delete(ctx, "flags/flags.yaml"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete() error = %v, want ErrNotFound", err)
	}
}

func TestLocalStorageList(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStorage() error = %v", err)
	}
	ctx := context.Background()

	for _, key := range []string{"comments/t1.yaml", "comments/t2.yaml", "tasks/tasks.yaml"} {
		if err := store.Write(ctx, key, []byte("x")); err != nil {
			t.Fatalf("Write(%s) error = %v", key, err)
		}
	}

	keys, err := store.List(ctx, "comments")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(keys) != 2 {
		t.Errorf("len(keys) = %d, want 2: %v", len(keys), keys)
	}

	empty, err := store.List(ctx, "nothing")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("List(missing prefix) = %v, want empty", empty)
	}
}
