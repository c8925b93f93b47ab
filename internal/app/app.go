package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/qdb-debug/qdb/internal/adapter"
	"github.com/qdb-debug/qdb/internal/config"
	"github.com/qdb-debug/qdb/internal/ctxlog"
	"github.com/qdb-debug/qdb/internal/extension"
	"github.com/qdb-debug/qdb/internal/fileaccess"
	"github.com/qdb-debug/qdb/internal/hclconf"
	"github.com/qdb-debug/qdb/internal/launchjson"
	"github.com/qdb-debug/qdb/internal/registry"
)

// App encapsulates the application's dependencies, configuration and
// lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config

	host          *consoleHost
	store         *config.Store
	factory       adapter.Factory
	serverFactory *adapter.ServerFactory
	ext           *extension.Extension
	disposables   *registry.Disposables
	httpServer    *http.Server
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger, store and
// extension registration.
func NewApp(outW io.Writer, inR io.Reader, appConfig *Config) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	logger.Debug("Logger configured successfully.")

	host := newConsoleHost(outW, inR)
	store := config.NewStore(loaderFor(appConfig.ConfigPath), storePaths(appConfig.ConfigPath)...)

	// No execution engine ships with the bootstrap. Serve mode still runs
	// the DAP listener (its sessions answer launches with "engine not
	// available"); one-shot mode gets the explicit no-adapter factory.
	var factory adapter.Factory
	var serverFactory *adapter.ServerFactory
	if appConfig.Command == CommandServe {
		serverFactory = adapter.NewServerFactory(nil, fileaccess.NewOS(), appConfig.Listen)
		factory = serverFactory
	} else {
		factory = adapter.NewNullFactory()
	}

	ext := extension.New(host, store, factory)
	disposables := ext.Setup()
	logger.Debug("Extension registered.", "debug_type", "qdb")

	return &App{
		outW:          outW,
		logger:        logger,
		config:        appConfig,
		host:          host,
		store:         store,
		factory:       factory,
		serverFactory: serverFactory,
		ext:           ext,
		disposables:   disposables,
	}
}

// Extension returns the application's extension. This is primarily for
// testing.
func (a *App) Extension() *extension.Extension {
	return a.ext
}

// Run executes the configured command. It blocks for serve mode until ctx
// is cancelled; one-shot commands return when done.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	defer func() {
		if err := a.disposables.Dispose(ctx); err != nil {
			a.logger.Warn("Teardown reported failures.", "error", err)
		}
	}()

	if a.config.ConfigPath != "" {
		if err := a.store.Reload(ctx); err != nil {
			return err
		}
	}

	switch a.config.Command {
	case CommandServe:
		return a.runServe(ctx)
	case CommandRun:
		return a.runOneShot(ctx, extension.CommandRunFile)
	case CommandDebug:
		return a.runOneShot(ctx, extension.CommandDebugFile)
	case CommandInit:
		return a.runInit(ctx)
	case CommandName:
		return a.runOneShot(ctx, extension.CommandGetProgramName)
	default:
		return fmt.Errorf("unknown command %q", a.config.Command)
	}
}

// runServe starts the shared DAP listener, the health check server and the
// configuration watcher, then blocks until ctx is cancelled.
func (a *App) runServe(ctx context.Context) error {
	if a.config.HealthcheckPort > 0 {
		a.healthCheckServer(ctx)
		defer a.closeHealthCheckServer(ctx)
	}

	if a.config.Watch {
		go func() {
			if err := a.store.Watch(ctx); err != nil {
				a.logger.Warn("Configuration watcher stopped.", "error", err)
			}
		}()
	}

	bound, err := a.serverFactory.Start(ctx)
	if err != nil {
		return err
	}
	a.logger.Info("🚀 Debug adapter listening.", "addr", bound.String())

	<-ctx.Done()
	a.logger.Info("🏁 Shutting down.")
	return nil
}

// runOneShot drives one registered command through the console host.
func (a *App) runOneShot(ctx context.Context, command string) error {
	if a.config.Arg != "" {
		abs, err := filepath.Abs(a.config.Arg)
		if err != nil {
			return fmt.Errorf("cannot resolve program path %q: %w", a.config.Arg, err)
		}
		a.host.focus(abs)
	}

	handler, ok := a.ext.Registry().Command(command)
	if !ok {
		return fmt.Errorf("command %q not registered", command)
	}
	out, err := handler(ctx, "")
	if err != nil {
		return err
	}
	if out != "" {
		fmt.Fprintln(a.outW, out)
	}
	return nil
}

// runInit persists the canned dynamic configurations into a launch.json.
func (a *App) runInit(ctx context.Context) error {
	provider, ok := a.ext.Registry().DynamicProvider("qdb")
	if !ok {
		return fmt.Errorf("dynamic provider not registered")
	}
	for _, req := range provider("") {
		if err := launchjson.Append(ctx, a.config.Arg, req); err != nil {
			return err
		}
	}
	fmt.Fprintf(a.outW, "Wrote default configuration to %s\n", a.config.Arg)
	return nil
}

// loaderFor picks the stored-configuration loader by path shape: a
// launch.json gets the JSON loader, everything else the HCL one rooted at
// the path's directory.
func loaderFor(configPath string) config.Loader {
	if strings.HasSuffix(configPath, ".json") {
		return launchjson.NewLoader()
	}
	workspace := configPath
	if filepath.Ext(configPath) != "" {
		workspace = filepath.Dir(configPath)
	}
	return hclconf.NewLoader(workspace)
}

func storePaths(configPath string) []string {
	if configPath == "" {
		return nil
	}
	return []string{configPath}
}
