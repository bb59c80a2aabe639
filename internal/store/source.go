// Package store provides the record source adapters that feed the
// in-memory search indexes. Each adapter performs one bulk read of the
// active entities of its catalog, flattening relations into the
// denormalized catalog.Record shape.
package store

import (
	"context"

	"github.com/tripline/catsearch/internal/catalog"
)

// Source produces the full current set of index records for one entity
// type. Implementations must return only active/published entities and
// must propagate read failures to the caller; silently returning an
// empty set would make a backing-store outage look like an empty catalog.
type Source interface {
	FetchActive(ctx context.Context) ([]catalog.Record, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context) ([]catalog.Record, error)

// FetchActive calls f.
func (f SourceFunc) FetchActive(ctx context.Context) ([]catalog.Record, error) {
	return f(ctx)
}
