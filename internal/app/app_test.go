package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func mustConfig(t *testing.T, cfg Config) *Config {
	t.Helper()
	out, err := NewConfig(cfg)
	require.NoError(t, err)
	return out
}

func TestNewConfig_Validation(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name: "serve requires listen",
			cfg:  Config{Command: CommandServe},

			wantErr: "serve requires a listen address",
		},
		{
			name:    "run requires file",
			cfg:     Config{Command: CommandRun},
			wantErr: "run requires a program file argument",
		},
		{
			name:    "init requires path",
			cfg:     Config{Command: CommandInit},
			wantErr: "init requires a launch.json path argument",
		},
		{
			name:    "watch requires config",
			cfg:     Config{Command: CommandName, Watch: true},
			wantErr: "-watch requires -config",
		},
		{
			name:    "unknown command",
			cfg:     Config{Command: "frobnicate"},
			wantErr: `unknown command "frobnicate"`,
		},
		{
			name: "valid serve",
			cfg:  Config{Command: CommandServe, Listen: "127.0.0.1:0"},
		},
		{
			name: "valid debug",
			cfg:  Config{Command: CommandDebug, Arg: "main.s"},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// --- Act ---
			cfg, err := NewConfig(tc.cfg)

			// --- Assert ---
			if tc.wantErr != "" {
				require.Error(t, err)
				require.Contains(t, err.Error(), tc.wantErr)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, cfg)
		})
	}
}

func TestRun_RunCommand_NoAdapterAvailable(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// A real assembly file so the resolver synthesizes a launch request,
	// against the engine-absent factory which yields no descriptor.
	dir := t.TempDir()
	program := filepath.Join(dir, "main.s")
	require.NoError(t, os.WriteFile(program, []byte("mov x0, #0\n"), 0600))

	out := &bytes.Buffer{}
	cfg := mustConfig(t, Config{Command: CommandRun, Arg: program, LogLevel: "error"})
	application := NewApp(out, strings.NewReader(""), cfg)

	// --- Act ---
	err := application.Run(context.Background())

	// --- Assert ---
	// The launch silently does not start; that is not an error.
	require.NoError(t, err)
}

func TestRun_DebugCommand_UnrecognizedFile(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// A file whose extension maps to no recognized language; resolution
	// cannot synthesize a request and the user is notified.
	dir := t.TempDir()
	program := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(program, []byte("hello\n"), 0600))

	out := &bytes.Buffer{}
	cfg := mustConfig(t, Config{Command: CommandDebug, Arg: program, LogLevel: "error"})
	application := NewApp(out, strings.NewReader(""), cfg)

	// --- Act ---
	err := application.Run(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	require.Contains(t, out.String(), "Cannot find a program to debug")
}

func TestRun_InitCommand_WritesLaunchJSON(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	target := filepath.Join(dir, "launch.json")
	out := &bytes.Buffer{}
	cfg := mustConfig(t, Config{Command: CommandInit, Arg: target, LogLevel: "error"})
	application := NewApp(out, strings.NewReader(""), cfg)

	// --- Act ---
	err := application.Run(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	data, err := os.ReadFile(target)
	require.NoError(t, err)
	first := gjson.GetBytes(data, "configurations.0")
	require.Equal(t, "qdb", first.Get("type").String())
	require.Equal(t, "Dynamic Launch", first.Get("name").String())
	require.Equal(t, "launch", first.Get("request").String())
	require.Equal(t, "${file}", first.Get("program").String())
	require.True(t, first.Get("stopOnEntry").Bool())
}

func TestRun_NameCommand_DefaultAnswer(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	out := &bytes.Buffer{}
	cfg := mustConfig(t, Config{Command: CommandName, LogLevel: "error"})
	application := NewApp(out, strings.NewReader("\n"), cfg)

	// --- Act ---
	err := application.Run(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	require.Contains(t, out.String(), "Please enter the name of an assembly file in the workspace folder")
	require.Contains(t, out.String(), "program.s")
}

func TestRun_ServeCommand_StartsAndStops(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	out := &bytes.Buffer{}
	cfg := mustConfig(t, Config{Command: CommandServe, Listen: "127.0.0.1:0", LogLevel: "error"})
	application := NewApp(out, strings.NewReader(""), cfg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	// --- Act ---
	go func() { done <- application.Run(ctx) }()
	cancel()

	// --- Assert ---
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve mode did not shut down after cancellation")
	}
}

func TestRun_StoredConfigurations_HCL(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	content := `
launch "checks" {
  program = "${workspace}/checks.s"
}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.qdb.hcl"), []byte(content), 0600))

	out := &bytes.Buffer{}
	cfg := mustConfig(t, Config{Command: CommandName, ConfigPath: dir, LogLevel: "error"})
	application := NewApp(out, strings.NewReader("\n"), cfg)

	// --- Act ---
	err := application.Run(context.Background())

	// --- Assert ---
	// The stored configuration loads during startup without disturbing the
	// one-shot command.
	require.NoError(t, err)
	stored, ok := application.store.Lookup("checks")
	require.True(t, ok)
	require.Equal(t, filepath.Join(dir, "checks.s"), stored.Program)
}
