package fileaccess

import (
	"context"
	"fmt"
	"strings"
)

// Accessor is the file-access contract the debug engine depends on.
//
// ReadFile returns the bytes at path. It never returns an error: on any
// failure the result is a diagnostic sentinel containing the requested
// path (see ReadDiagnostic). WriteFile persists bytes at path best-effort,
// single-shot, and propagates I/O faults. IsWindows is a static capability
// flag for callers with path-separator-sensitive logic; it is not mutable
// state.
type Accessor interface {
	ReadFile(ctx context.Context, path string) []byte
	WriteFile(ctx context.Context, path string, data []byte) error
	IsWindows() bool
}

// readSentinel formats the diagnostic placed in ReadFile's result when a
// path cannot be read. The wording is part of the engine-facing contract.
func readSentinel(path string) []byte {
	return []byte(fmt.Sprintf("cannot read '%s'", path))
}

// ReadDiagnostic reports whether the bytes returned by ReadFile are the
// unreadable-path sentinel rather than program content.
func ReadDiagnostic(data []byte) bool {
	return strings.HasPrefix(string(data), "cannot read '")
}
