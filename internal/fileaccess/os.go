package fileaccess

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/qdb-debug/qdb/internal/ctxlog"
)

// OS is an Accessor backed by the host filesystem.
type OS struct{}

// NewOS returns an Accessor over the host filesystem.
func NewOS() *OS {
	return &OS{}
}

// ReadFileChecked reads path and reports failures as errors.
func (*OS) ReadFileChecked(ctx context.Context, path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", path, err)
	}
	return data, nil
}

// ReadFile implements the engine-facing sentinel contract in terms of
// ReadFileChecked.
func (a *OS) ReadFile(ctx context.Context, path string) []byte {
	data, err := a.ReadFileChecked(ctx, path)
	if err != nil {
		ctxlog.FromContext(ctx).Debug("Program read failed; returning diagnostic sentinel.", "path", path, "error", err)
		return readSentinel(path)
	}
	return data
}

// WriteFile persists data at path. There is no partial-write guarantee.
func (*OS) WriteFile(ctx context.Context, path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %q: %w", path, err)
	}
	return nil
}

// IsWindows reports whether host-native paths use Windows separators.
func (*OS) IsWindows() bool {
	return runtime.GOOS == "windows"
}
