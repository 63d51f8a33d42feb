package comment

import "context"

// Repository stores comments grouped per task. List returns comments in
// creation order.
type Repository interface {
	List(ctx context.Context, taskID string) ([]*Comment, error)
	Add(ctx context.Context, c *Comment) error
}
