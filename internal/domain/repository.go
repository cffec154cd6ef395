package domain

import "context"

// JobRepository is the read side the pages render from.
type JobRepository interface {
	// FetchJobs returns the records matching f in repository order.
	FetchJobs(ctx context.Context, f Filter) ([]Job, error)

	// FetchJobByID returns ErrNotFound (wrapped) for unknown ids.
	FetchJobByID(ctx context.Context, id JobID) (Job, error)
}

// JobStore adds the write side used by imports and the JSON API.
type JobStore interface {
	JobRepository

	// UpsertJob inserts j at the end, or replaces an existing record in place.
	UpsertJob(ctx context.Context, j Job) error

	DeleteJob(ctx context.Context, id JobID) error
}
