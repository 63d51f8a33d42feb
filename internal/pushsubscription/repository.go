package pushsubscription

import "context"

type Repository interface {
	List(ctx context.Context) ([]*Subscription, error)
	// Save upserts by endpoint so re-subscribing from the same browser does
	// not pile up duplicates.
	Save(ctx context.Context, sub *Subscription) error
	DeleteByEndpoint(ctx context.Context, endpoint string) error
}
