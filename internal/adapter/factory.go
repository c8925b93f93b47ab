package adapter

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"sync"

	"github.com/qdb-debug/qdb/internal/ctxlog"
	"github.com/qdb-debug/qdb/internal/dapserver"
	"github.com/qdb-debug/qdb/internal/engine"
	"github.com/qdb-debug/qdb/internal/fileaccess"
)

// NullFactory is the descriptor factory used while the execution engine is
// absent: every launch yields "no adapter available". The host treats that
// as a failed launch without crashing.
type NullFactory struct{}

// NewNullFactory returns the engine-absent factory.
func NewNullFactory() *NullFactory {
	return &NullFactory{}
}

// CreateDescriptor never produces a descriptor.
func (*NullFactory) CreateDescriptor(ctx context.Context, meta SessionMeta) (Descriptor, error) {
	if err := validateMeta(meta); err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).Debug("No debug engine bound; no adapter descriptor produced.", "program", meta.Request.Program)
	return nil, nil
}

// Dispose is a no-op; the null factory holds nothing.
func (*NullFactory) Dispose() error { return nil }

// ServerFactory produces descriptors pointing at a shared DAP listener,
// started lazily on the first launch. The listener is the factory's only
// held resource and is released exactly once by Dispose.
type ServerFactory struct {
	engineFactory engine.Factory
	accessor      fileaccess.Accessor
	addr          string

	mu       sync.Mutex
	server   *dapserver.Server
	bound    net.Addr
	disposed bool
}

// NewServerFactory creates a factory that serves sessions on addr
// (host:port; port 0 picks a free one).
func NewServerFactory(engineFactory engine.Factory, accessor fileaccess.Accessor, addr string) *ServerFactory {
	return &ServerFactory{engineFactory: engineFactory, accessor: accessor, addr: addr}
}

// Start eagerly binds the shared listener and returns its address. Serve
// hosts use it to report where the adapter listens before any launch
// arrives; CreateDescriptor reuses the same listener.
func (f *ServerFactory) Start(ctx context.Context) (net.Addr, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listenLocked(ctx)
}

func (f *ServerFactory) listenLocked(ctx context.Context) (net.Addr, error) {
	if f.disposed {
		return nil, fmt.Errorf("descriptor factory already disposed")
	}
	if f.server == nil {
		server := dapserver.New(f.engineFactory, f.accessor)
		bound, err := server.Listen(ctx, f.addr)
		if err != nil {
			return nil, fmt.Errorf("failed to start debug adapter listener: %w", err)
		}
		f.server = server
		f.bound = bound
	}
	return f.bound, nil
}

// CreateDescriptor returns a descriptor for the shared listener, starting
// it on first use.
func (f *ServerFactory) CreateDescriptor(ctx context.Context, meta SessionMeta) (Descriptor, error) {
	if err := validateMeta(meta); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	bound, err := f.listenLocked(ctx)
	if err != nil {
		return nil, err
	}

	host, portStr, err := net.SplitHostPort(bound.String())
	if err != nil {
		return nil, fmt.Errorf("unexpected listener address %q: %w", f.bound, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("unexpected listener port %q: %w", portStr, err)
	}

	return &ServerDescriptor{id: newDescriptorID(), Host: host, Port: port}, nil
}

// Dispose closes the shared listener. Safe to call exactly once per the
// factory contract, and tolerant of never having served.
func (f *ServerFactory) Dispose() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.disposed {
		return fmt.Errorf("descriptor factory disposed twice")
	}
	f.disposed = true
	if f.server == nil {
		return nil
	}
	return f.server.Close()
}

// InlineFactory produces in-process descriptors, one fresh runtime per
// session. It exists for hosts that embed the engine in the same process.
type InlineFactory struct {
	engineFactory engine.Factory
}

// NewInlineFactory creates a factory producing in-process descriptors.
// engineFactory must be non-nil; with no engine use NewNullFactory.
func NewInlineFactory(engineFactory engine.Factory) *InlineFactory {
	if engineFactory == nil {
		panic("adapter: InlineFactory requires an engine factory")
	}
	return &InlineFactory{engineFactory: engineFactory}
}

// CreateDescriptor binds a fresh runtime instance for the session.
func (f *InlineFactory) CreateDescriptor(ctx context.Context, meta SessionMeta) (Descriptor, error) {
	if err := validateMeta(meta); err != nil {
		return nil, err
	}
	return &InlineDescriptor{id: newDescriptorID(), Runtime: f.engineFactory()}, nil
}

// Dispose is a no-op; runtimes are owned by their sessions.
func (*InlineFactory) Dispose() error { return nil }
