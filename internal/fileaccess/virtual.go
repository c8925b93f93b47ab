package fileaccess

import (
	"context"
	"fmt"
	"sync"
)

// Virtual is an in-memory Accessor. It backs tests and embedded runs where
// no host filesystem is available, the same role a virtual filesystem plays
// under an emulated debug target.
type Virtual struct {
	mu      sync.RWMutex
	files   map[string][]byte
	windows bool
}

// NewVirtual returns an empty in-memory accessor posing as a POSIX host.
func NewVirtual() *Virtual {
	return &Virtual{files: make(map[string][]byte)}
}

// NewVirtualWindows returns an empty in-memory accessor posing as a
// Windows host, for exercising path-separator-sensitive callers.
func NewVirtualWindows() *Virtual {
	return &Virtual{files: make(map[string][]byte), windows: true}
}

// ReadFileChecked reads path and reports a missing path as an error.
func (a *Virtual) ReadFileChecked(ctx context.Context, path string) ([]byte, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	data, ok := a.files[path]
	if !ok {
		return nil, fmt.Errorf("read %q: file does not exist", path)
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// ReadFile implements the engine-facing sentinel contract.
func (a *Virtual) ReadFile(ctx context.Context, path string) []byte {
	data, err := a.ReadFileChecked(ctx, path)
	if err != nil {
		return readSentinel(path)
	}
	return data
}

// WriteFile stores a copy of data at path.
func (a *Virtual) WriteFile(ctx context.Context, path string, data []byte) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	stored := make([]byte, len(data))
	copy(stored, data)
	a.files[path] = stored
	return nil
}

// IsWindows reports the platform flavor this accessor was built with.
func (a *Virtual) IsWindows() bool {
	return a.windows
}
