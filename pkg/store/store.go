// Package store persists composition documents keyed by banner identifier.
//
// The engine treats persistence as an external key-value contract: load
// and save whole documents, nothing else. The stored form is the JSON
// serialization of banner.Composition with RFC3339 timestamps; there is no
// versioning or migration - a document that fails to decode surfaces as a
// STORE_ERROR, and deciding how to migrate old shapes is left to the host.
//
// Backends:
//   - MemoryStore: tests and throwaway sessions
//   - FileStore: one JSON file per banner under a directory (CLI default)
//   - RedisStore: shared key-value deployment
//   - MongoStore: document-database deployment
//
// Saves are read-only snapshots of the document: callers should pass
// Composition.Clone() when the live document may still be mutated.
package store

import (
	"context"
	"errors"

	"github.com/matzehuels/bannersmith/pkg/banner"
	"github.com/matzehuels/bannersmith/pkg/observability"
)

// ErrNotFound is returned by Load when no document exists for the banner.
var ErrNotFound = errors.New("composition not found")

// Store is the persistence contract for composition documents.
type Store interface {
	// Load retrieves the composition for bannerID.
	// Returns ErrNotFound when the banner has never been saved.
	Load(ctx context.Context, bannerID string) (*banner.Composition, error)

	// Save persists the composition under bannerID, replacing any previous
	// document.
	Save(ctx context.Context, bannerID string, comp *banner.Composition) error

	// Close releases backend resources.
	Close() error
}

// observeLoad reports a load outcome to the registered store hooks. A miss
// is not an error; it is reported as found=false.
func observeLoad(ctx context.Context, bannerID string, err error) {
	found := err == nil
	if errors.Is(err, ErrNotFound) {
		err = nil
	}
	observability.Store().OnLoad(ctx, bannerID, found, err)
}

// observeSave reports a save outcome to the registered store hooks.
func observeSave(ctx context.Context, bannerID string, err error) {
	observability.Store().OnSave(ctx, bannerID, err)
}
