package registry

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/qdb-debug/qdb/internal/adapter"
	"github.com/qdb-debug/qdb/internal/launch"
)

// Resolver fills in a possibly-empty launch request from the focused
// document, or aborts with launch.ErrNoProgram.
type Resolver func(ctx context.Context, req *launch.Request, rctx launch.Context) (launch.Request, error)

// DynamicProvider offers canned configurations when the user has none.
type DynamicProvider func(scope string) []launch.Request

// CommandHandler executes one named host command. The argument carries the
// command's opaque input (a document path, a prompt default) and the return
// value its opaque output; both may be empty.
type CommandHandler func(ctx context.Context, arg string) (string, error)

// Module registers a related group of providers or commands against the
// registry. Modules are the unit of wiring at bootstrap.
type Module interface {
	Register(r *Registry)
}

// entry holds everything registered for one debug type.
type entry struct {
	resolver Resolver
	provider DynamicProvider
	factory  adapter.Factory
}

// Registry holds the registrations for a single application instance.
type Registry struct {
	entries  map[string]*entry
	commands map[string]CommandHandler
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		entries:  make(map[string]*entry),
		commands: make(map[string]CommandHandler),
	}
}

func (r *Registry) entryFor(debugType string) *entry {
	e, ok := r.entries[debugType]
	if !ok {
		e = &entry{}
		r.entries[debugType] = e
	}
	return e
}

// RegisterResolver registers the configuration resolver for a debug type.
func (r *Registry) RegisterResolver(debugType string, resolver Resolver) {
	e := r.entryFor(debugType)
	if e.resolver != nil {
		panic(fmt.Sprintf("resolver for debug type '%s' already registered", debugType))
	}
	slog.Debug("Registering configuration resolver.", "type", debugType)
	e.resolver = resolver
}

// RegisterDynamicProvider registers the dynamic configuration provider for
// a debug type.
func (r *Registry) RegisterDynamicProvider(debugType string, provider DynamicProvider) {
	e := r.entryFor(debugType)
	if e.provider != nil {
		panic(fmt.Sprintf("dynamic provider for debug type '%s' already registered", debugType))
	}
	slog.Debug("Registering dynamic configuration provider.", "type", debugType)
	e.provider = provider
}

// RegisterFactory registers the descriptor factory for a debug type.
func (r *Registry) RegisterFactory(debugType string, factory adapter.Factory) {
	e := r.entryFor(debugType)
	if e.factory != nil {
		panic(fmt.Sprintf("descriptor factory for debug type '%s' already registered", debugType))
	}
	slog.Debug("Registering descriptor factory.", "type", debugType)
	e.factory = factory
}

// RegisterCommand registers a named host command.
func (r *Registry) RegisterCommand(name string, handler CommandHandler) {
	if _, exists := r.commands[name]; exists {
		panic(fmt.Sprintf("command '%s' already registered", name))
	}
	slog.Debug("Registering command.", "name", name)
	r.commands[name] = handler
}

// Resolver returns the resolver registered for a debug type.
func (r *Registry) Resolver(debugType string) (Resolver, bool) {
	e, ok := r.entries[debugType]
	if !ok || e.resolver == nil {
		return nil, false
	}
	return e.resolver, true
}

// DynamicProvider returns the dynamic provider registered for a debug type.
func (r *Registry) DynamicProvider(debugType string) (DynamicProvider, bool) {
	e, ok := r.entries[debugType]
	if !ok || e.provider == nil {
		return nil, false
	}
	return e.provider, true
}

// Factory returns the descriptor factory registered for a debug type.
func (r *Registry) Factory(debugType string) (adapter.Factory, bool) {
	e, ok := r.entries[debugType]
	if !ok || e.factory == nil {
		return nil, false
	}
	return e.factory, true
}

// Command returns the handler registered under name.
func (r *Registry) Command(name string) (CommandHandler, bool) {
	handler, ok := r.commands[name]
	return handler, ok
}
