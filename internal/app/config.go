package app

import (
	"errors"
	"fmt"
)

// Commands the CLI dispatches on.
const (
	CommandServe = "serve"
	CommandRun   = "run"
	CommandDebug = "debug"
	CommandInit  = "init"
	CommandName  = "name"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// Command is one of the Command* constants; Arg is its positional
	// argument (a program file for run/debug, a launch.json path for init).
	Command string
	Arg     string

	// ConfigPath points at stored launch configurations: a launch.json
	// file, a *.qdb.hcl file, or a directory of the latter. Empty means no
	// stored configurations.
	ConfigPath string

	// Listen is the DAP listen address for serve mode.
	Listen string

	// Watch reloads stored configurations when ConfigPath changes.
	Watch bool

	LogFormat       string
	LogLevel        string
	HealthcheckPort int
}

// NewConfig validates a Config and applies command-specific requirements.
func NewConfig(cfg Config) (*Config, error) {
	switch cfg.Command {
	case CommandServe:
		if cfg.Listen == "" {
			return nil, errors.New("serve requires a listen address")
		}
	case CommandRun, CommandDebug:
		if cfg.Arg == "" {
			return nil, fmt.Errorf("%s requires a program file argument", cfg.Command)
		}
	case CommandInit:
		if cfg.Arg == "" {
			return nil, errors.New("init requires a launch.json path argument")
		}
	case CommandName:
		// No arguments.
	default:
		return nil, fmt.Errorf("unknown command %q", cfg.Command)
	}

	if cfg.Watch && cfg.ConfigPath == "" {
		return nil, errors.New("-watch requires -config")
	}

	return &cfg, nil
}
