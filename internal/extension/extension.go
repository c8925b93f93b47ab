package extension

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/qdb-debug/qdb/internal/adapter"
	"github.com/qdb-debug/qdb/internal/config"
	"github.com/qdb-debug/qdb/internal/ctxlog"
	"github.com/qdb-debug/qdb/internal/engine"
	"github.com/qdb-debug/qdb/internal/launch"
	"github.com/qdb-debug/qdb/internal/registry"
)

// NoProgramMessage is shown when resolution aborts for lack of a program.
const NoProgramMessage = "Cannot find a program to debug"

// Extension owns the qdb registrations and the launch pipeline.
type Extension struct {
	host    Host
	store   *config.Store
	factory adapter.Factory
	reg     *registry.Registry

	mu     sync.Mutex
	active engine.Runtime
	hex    bool
}

// New creates an Extension over the given collaborators. Call Setup to
// register it before use.
func New(host Host, store *config.Store, factory adapter.Factory) *Extension {
	return &Extension{
		host:    host,
		store:   store,
		factory: factory,
		reg:     registry.New(),
	}
}

// Registry exposes the populated registry, primarily for the host adapter
// and tests.
func (e *Extension) Registry() *registry.Registry {
	return e.reg
}

// Setup performs the one-time registration of providers, factory and
// commands, and returns the disposal handles released together at
// teardown.
func (e *Extension) Setup() *registry.Disposables {
	e.reg.RegisterResolver(launch.DebugType, func(ctx context.Context, req *launch.Request, rctx launch.Context) (launch.Request, error) {
		return launch.Resolve(ctx, req, rctx)
	})
	e.reg.RegisterDynamicProvider(launch.DebugType, launch.ProvideDefaults)
	e.reg.RegisterFactory(launch.DebugType, e.factory)

	for _, mod := range []registry.Module{&commandSurface{ext: e}} {
		mod.Register(e.reg)
	}

	disposables := &registry.Disposables{}
	disposables.Add(registry.DisposeFunc(e.factory.Dispose))
	return disposables
}

// StartDebugging is the single path from a launch request to a session:
// resolve, then create a descriptor. A resolution abort notifies the user
// and cancels the launch; a nil descriptor means no adapter is available
// and the launch silently does not start. Neither is an error.
func (e *Extension) StartDebugging(ctx context.Context, req *launch.Request, noDebug bool) error {
	logger := ctxlog.FromContext(ctx)

	var rctx launch.Context
	if doc, ok := e.host.ActiveDocument(); ok {
		rctx = doc
	}

	resolver, ok := e.reg.Resolver(launch.DebugType)
	if !ok {
		return errors.New("no resolver registered; Setup not called")
	}

	resolved, err := resolver(ctx, req, rctx)
	if errors.Is(err, launch.ErrNoProgram) {
		e.host.ShowMessage(ctx, NoProgramMessage)
		logger.Info("Launch cancelled: no program to debug.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("configuration resolution failed: %w", err)
	}

	factory, ok := e.reg.Factory(launch.DebugType)
	if !ok {
		return errors.New("no descriptor factory registered; Setup not called")
	}

	descriptor, err := factory.CreateDescriptor(ctx, adapter.SessionMeta{
		Request:   resolved,
		SessionID: uuid.NewString(),
		NoDebug:   noDebug,
	})
	if err != nil {
		return fmt.Errorf("failed to create debug adapter descriptor: %w", err)
	}
	if descriptor == nil {
		logger.Info("No debug adapter available; launch not started.", "program", resolved.Program)
		return nil
	}

	logger.Info("Debug adapter descriptor created.", "descriptor_id", descriptor.ID(), "program", resolved.Program, "no_debug", noDebug)

	if inline, ok := descriptor.(*adapter.InlineDescriptor); ok {
		e.mu.Lock()
		e.active = inline.Runtime
		e.mu.Unlock()
	}
	return nil
}

// LaunchStored starts a session from a saved configuration: the named one,
// the first one, or — when none are stored — an empty request handed to
// the resolver for synthesis.
func (e *Extension) LaunchStored(ctx context.Context, name string, noDebug bool) error {
	var req *launch.Request
	if name != "" {
		stored, ok := e.store.Lookup(name)
		if !ok {
			return fmt.Errorf("no stored configuration named %q", name)
		}
		req = &stored
	} else if stored, ok := e.store.First(); ok {
		req = &stored
	}
	return e.StartDebugging(ctx, req, noDebug)
}

// toggleFormatting flips hex formatting on the active in-process session.
// With no active session it is a no-op.
func (e *Extension) toggleFormatting(ctx context.Context) error {
	e.mu.Lock()
	runtime := e.active
	if runtime == nil {
		e.mu.Unlock()
		ctxlog.FromContext(ctx).Debug("Toggle formatting ignored: no active session.")
		return nil
	}
	e.hex = !e.hex
	format := engine.FormatDecimal
	if e.hex {
		format = engine.FormatHex
	}
	e.mu.Unlock()

	return runtime.Configure(ctx, format)
}
