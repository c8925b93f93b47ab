package launchjson

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/qdb-debug/qdb/internal/launch"
)

const sample = `{
  "version": "0.2.0",
  "configurations": [
    {
      "type": "qdb",
      "request": "launch",
      "name": "Launch",
      "program": "/work/prog.s",
      "stopOnEntry": true
    },
    {
      "type": "node",
      "request": "launch",
      "name": "Someone else's",
      "program": "/work/app.js"
    }
  ]
}`

func TestLoad_KeepsOnlyQdbEntries(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := filepath.Join(t.TempDir(), "launch.json")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	// --- Act ---
	got, err := NewLoader().Load(context.Background(), path)

	// --- Assert ---
	require.NoError(t, err)
	require.Len(t, got, 1, "entries of other debug types must be skipped")
	require.Equal(t, launch.Request{
		Type:        launch.DebugType,
		Name:        "Launch",
		Request:     launch.RequestLaunch,
		Program:     "/work/prog.s",
		StopOnEntry: true,
	}, got[0])
}

func TestLoad_MalformedFileFails(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := filepath.Join(t.TempDir(), "launch.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"configurations": [`), 0o600))

	// --- Act ---
	_, err := NewLoader().Load(context.Background(), path)

	// --- Assert ---
	require.Error(t, err)
}

func TestLoad_MissingConfigurationsArrayFails(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "launch.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version":"0.2.0"}`), 0o600))

	_, err := NewLoader().Load(context.Background(), path)

	require.Error(t, err)
}

func TestAppend_CreatesSkeletonAndRoundTrips(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "launch.json")
	req := launch.ProvideDefaults("")[0]

	// --- Act ---
	err := Append(ctx, path, req)

	// --- Assert ---
	require.NoError(t, err)
	got, err := NewLoader().Load(ctx, path)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, req, got[0])
}

func TestAppend_PreservesExistingEntries(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "launch.json")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	// --- Act ---
	err := Append(ctx, path, launch.Request{
		Type:    launch.DebugType,
		Name:    "Added",
		Request: launch.RequestLaunch,
		Program: "/work/new.s",
	})

	// --- Assert ---
	require.NoError(t, err)
	data, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	require.Equal(t, int64(3), gjson.GetBytes(data, "configurations.#").Int())
	require.Equal(t, "Someone else's", gjson.GetBytes(data, "configurations.1.name").String(),
		"foreign entries must survive an append untouched")
}

func TestAppend_RejectsInvalidRequest(t *testing.T) {
	t.Parallel()

	err := Append(context.Background(), filepath.Join(t.TempDir(), "launch.json"), launch.Request{Type: "gdb"})

	require.ErrorIs(t, err, launch.ErrWrongType)
}
