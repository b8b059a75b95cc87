package transcript

import (
	"context"
)

// Repository owns all durable transcript records. Implementations must keep
// ids unique, listing order newest-first, and every operation total: List on
// an empty repository returns an empty slice, never an error.
type Repository interface {
	// Create assigns a fresh id and creation time, inserts the record at the
	// front of the listing order and returns the frozen record.
	Create(ctx context.Context, title string, content Content, size string, notes string) (*Transcript, error)

	// List returns previews of all records, newest first, computed on read.
	List(ctx context.Context) ([]Preview, error)

	// GetById returns the record or a not-found error.
	GetById(ctx context.Context, id string) (*Transcript, error)
}
