// Package adapter defines the debug-adapter descriptor produced for each
// validated launch, and the factory that creates one. A descriptor is an
// opaque handle the host uses to reach a running session; its lifetime is
// owned by the host session manager, never by the factory.
package adapter

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/qdb-debug/qdb/internal/engine"
	"github.com/qdb-debug/qdb/internal/launch"
)

// SessionMeta carries what the factory may consult when creating a
// descriptor: the resolved launch request, the host's session identifier
// if it assigned one, and whether the host asked to run without debugging.
type SessionMeta struct {
	Request   launch.Request
	SessionID string
	NoDebug   bool
}

// Descriptor identifies how to reach a running debug session.
type Descriptor interface {
	// ID is a unique handle for the descriptor's lifetime.
	ID() string
}

// ServerDescriptor points the host at an out-of-process DAP endpoint.
type ServerDescriptor struct {
	id   string
	Host string
	Port int
}

func (d *ServerDescriptor) ID() string { return d.id }

// InlineDescriptor hands the host an in-process runtime directly.
type InlineDescriptor struct {
	id      string
	Runtime engine.Runtime
}

func (d *InlineDescriptor) ID() string { return d.id }

// ErrUnresolvedRequest reports a request that reached the factory without a
// program. Resolution is the caller's job; this is a programming error, not
// a user-facing condition.
var ErrUnresolvedRequest = errors.New("unresolved launch request reached the descriptor factory")

// Factory produces a descriptor per launch, or reports that none is
// available. A nil descriptor with a nil error means "no adapter": the host
// must treat the launch as silently not started, never as a crash.
//
// The factory is stateless across calls. If it holds a disposable resource
// (such as a shared transport listener), Dispose releases it exactly once
// at teardown; a created Descriptor is not the factory's to release.
type Factory interface {
	CreateDescriptor(ctx context.Context, meta SessionMeta) (Descriptor, error)
	Dispose() error
}

// validateMeta enforces the resolver invariant at the factory boundary.
func validateMeta(meta SessionMeta) error {
	if err := launch.Validate(meta.Request); err != nil {
		return err
	}
	if meta.Request.Program == "" {
		return fmt.Errorf("%w: %q", ErrUnresolvedRequest, meta.Request.Name)
	}
	return nil
}

// newDescriptorID mints a handle for a descriptor.
func newDescriptorID() string {
	return uuid.NewString()
}
