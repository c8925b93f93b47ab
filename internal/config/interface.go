package config

import (
	"context"

	"github.com/qdb-debug/qdb/internal/launch"
)

// Loader is the interface for a format-specific launch-configuration
// loader.
type Loader interface {
	// Load reads stored configurations from the given paths and returns
	// them in file order. Loaders keep only entries belonging to the qdb
	// debug type; a path with no qdb entries yields an empty slice, not an
	// error.
	Load(ctx context.Context, paths ...string) ([]launch.Request, error)
}
