package registry

import (
	"context"
	"errors"
	"sync"

	"github.com/qdb-debug/qdb/internal/ctxlog"
)

// Disposable releases one resource acquired during registration.
type Disposable interface {
	Dispose() error
}

// DisposeFunc adapts a function to the Disposable interface.
type DisposeFunc func() error

func (f DisposeFunc) Dispose() error { return f() }

// Disposables aggregates the handles produced by one-time registration so
// they can be released together at teardown, in reverse registration
// order. Dispose runs at most once; later calls are no-ops.
type Disposables struct {
	mu       sync.Mutex
	items    []Disposable
	disposed bool
}

// Add appends a handle. Nil handles are ignored.
func (d *Disposables) Add(items ...Disposable) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, item := range items {
		if item != nil {
			d.items = append(d.items, item)
		}
	}
}

// Dispose releases all handles in reverse order, joining any failures.
func (d *Disposables) Dispose(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.disposed {
		return nil
	}
	d.disposed = true

	logger := ctxlog.FromContext(ctx)
	var errs []error
	for i := len(d.items) - 1; i >= 0; i-- {
		if err := d.items[i].Dispose(); err != nil {
			logger.Warn("Disposal failed.", "error", err)
			errs = append(errs, err)
		}
	}
	d.items = nil
	return errors.Join(errs...)
}
