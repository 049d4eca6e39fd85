package feedback

import "context"

type Repository interface {
	Create(ctx context.Context, e Entry) error
	// List returns every entry, newest first.
	List(ctx context.Context) ([]Entry, error)
	GroupCounts(ctx context.Context) ([]Count, error)
	UpdateStatus(ctx context.Context, id string, status Status) (Entry, error)
	AppendReply(ctx context.Context, id string, reply Reply) (Entry, error)
}
