package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// The "-h" (help) flag should cause cli.Parse to return `shouldExit=true`.
	args := []string{"-h"}
	out := &bytes.Buffer{}

	// --- Act ---
	// The run function should see `shouldExit=true` and return a nil error.
	err := run(out, strings.NewReader(""), args)

	// --- Assert ---
	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// Providing an unknown flag will cause cli.Parse to return an error.
	args := []string{"--this-is-not-a-valid-flag"}
	out := &bytes.Buffer{}

	// --- Act ---
	// The run function should propagate the error from cli.Parse.
	err := run(out, strings.NewReader(""), args)

	// --- Assert ---
	require.Error(t, err, "run() should return an error when argument parsing fails")
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}

func TestRun_MissingProgramArgument(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	args := []string{"run"}
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(out, strings.NewReader(""), args)

	// --- Assert ---
	require.Error(t, err)
	require.Contains(t, err.Error(), "run requires a program file argument")
}

func TestRun_NameCommand(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// The name command prompts for a file name; an empty stdin accepts the
	// default answer.
	args := []string{"-log-level", "error", "name"}
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(out, strings.NewReader(""), args)

	// --- Assert ---
	require.NoError(t, err)
	require.Contains(t, out.String(), "program.s")
}
