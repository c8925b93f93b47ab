package launch

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProvideDefaults_AlwaysOneCannedConfiguration(t *testing.T) {
	t.Parallel()

	// --- Act ---
	got := ProvideDefaults("/any/workspace")
	again := ProvideDefaults("")

	// --- Assert ---
	require.Len(t, got, 1, "the dynamic provider never returns an empty list")
	require.Equal(t, got, again, "the provider is pure; scope must not change the result")

	cfg := got[0]
	require.Equal(t, DebugType, cfg.Type)
	require.Equal(t, RequestLaunch, cfg.Request)
	require.Equal(t, FileTemplate, cfg.Program, "the program is templated on the currently open file, bound lazily by the host")
	require.True(t, cfg.StopOnEntry)
	require.NoError(t, Validate(cfg))
}
