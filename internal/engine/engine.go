// Package engine declares the boundary to the instruction-level ARM64
// execution runtime. No implementation ships in this module: the runtime is
// an external collaborator, and everything here exists so the bootstrap
// layer can be wired and tested against the contract a real runtime must
// satisfy.
package engine

import (
	"context"
	"errors"

	"github.com/qdb-debug/qdb/internal/fileaccess"
	"github.com/qdb-debug/qdb/internal/launch"
)

var (
	ErrNotAvailable   = errors.New("debug engine not available")
	ErrNotLaunched    = errors.New("no program launched")
	ErrAlreadyRunning = errors.New("program already launched")
)

// OutputFormat selects how the runtime renders register and memory values.
type OutputFormat int

const (
	FormatDecimal OutputFormat = iota
	FormatHex
)

// Runtime is a running instance of the execution engine. The bootstrap
// layer constructs one per debug session from a resolved launch request and
// a file accessor, then lets the host drive it through the adapter.
type Runtime interface {
	// Launch loads the program named by req through the accessor and starts
	// execution, honoring req.StopOnEntry. The request must already be
	// resolved: Launch may assume req.Program is non-empty.
	Launch(ctx context.Context, req launch.Request, fa fileaccess.Accessor) error

	// Configure switches the runtime's value formatting. Valid at any point
	// in the session, including before Launch.
	Configure(ctx context.Context, format OutputFormat) error

	// Terminate stops execution and releases the runtime's resources.
	Terminate(ctx context.Context) error
}

// Factory constructs a fresh Runtime per debug session. A nil Factory means
// the engine is absent and no adapter can be produced.
type Factory func() Runtime
