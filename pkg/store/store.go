package store

import (
	"context"
	"errors"

	"github.com/matzehuels/orrery/pkg/layout"
)

// ErrNotFound is returned by Get when no layout is stored under the id.
var ErrNotFound = errors.New("layout not found")

// Store persists solved layouts under generated ids so they can be fetched
// again later, typically through the HTTP API.
type Store interface {
	// Save stores the layout and returns its generated id.
	Save(ctx context.Context, l *layout.Layout) (string, error)

	// Get retrieves a stored layout by id. Returns ErrNotFound when no
	// layout is stored under it.
	Get(ctx context.Context, id string) (*layout.Layout, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}
