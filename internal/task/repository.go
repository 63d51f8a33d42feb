package task

import "context"

// Repository persists the task collection as one document under a single
// storage key. Load and Save operate on the whole collection; Replace is the
// read-modify-write helper every mutation goes through.
type Repository interface {
	// Load returns the full collection. Missing or malformed data loads as
	// an empty collection rather than an error.
	Load(ctx context.Context) ([]*Task, error)
	// Save overwrites the full collection.
	Save(ctx context.Context, tasks []*Task) error
	// Get finds a task by ID or DisplayID.
	Get(ctx context.Context, id string) (*Task, error)
	// Replace loads the collection, swaps in t by ID (appending when absent),
	// and saves. Concurrent Replace calls from this process are serialized;
	// writers in other processes can still race (last write wins).
	Replace(ctx context.Context, t *Task) error
	// FindOnboarding returns the onboarding task, or (nil, nil) when none
	// exists.
	FindOnboarding(ctx context.Context) (*Task, error)
}
