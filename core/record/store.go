package record

import (
	"context"
	"errors"
)

// ErrNotFound is returned for record ids that (no longer) exist in an app.
var ErrNotFound = errors.New("record not found")

// TransportError marks a network or backend failure underneath an operation.
// It is never retried here; callers surface it.
type TransportError struct {
	Op  string
	Err error
}

func NewTransportError(op string, err error) error {
	return &TransportError{Op: op, Err: err}
}

func (e *TransportError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *TransportError) Unwrap() error { return e.Err }

// Store is the uniform CRUD surface over one backend app per call.
// Implementations perform no caching and no retries; every call hits the
// backend and the returned ordering is whatever the backend produced.
type Store interface {
	List(ctx context.Context, appID string) ([]Record, error)
	Get(ctx context.Context, appID, recordID string) (Record, error)
	Create(ctx context.Context, appID string, fields map[string]interface{}) (Record, error)
	// Update replaces the full field set of the record.
	Update(ctx context.Context, appID, recordID string, fields map[string]interface{}) error
	// Delete fails with ErrNotFound on an already-deleted id; callers treat
	// that as "already gone" rather than a hard failure.
	Delete(ctx context.Context, appID, recordID string) error
}
