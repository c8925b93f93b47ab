// Package launchjson implements the config.Loader interface for VS
// Code-style launch.json files, so configurations saved by an editor keep
// working unchanged. Only entries with type "qdb" are kept; entries of
// other debuggers in the same file are skipped silently.
package launchjson

import (
	"context"
	"fmt"
	"os"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/qdb-debug/qdb/internal/ctxlog"
	"github.com/qdb-debug/qdb/internal/launch"
)

// skeleton is written when Append targets a file that does not exist yet.
const skeleton = `{"version":"0.2.0","configurations":[]}`

// Loader implements config.Loader for launch.json files.
type Loader struct{}

// NewLoader creates a launch.json loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads the configurations array of each given launch.json file and
// returns the qdb entries, in file order.
func (l *Loader) Load(ctx context.Context, paths ...string) ([]launch.Request, error) {
	logger := ctxlog.FromContext(ctx)

	var requests []launch.Request
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		if !gjson.ValidBytes(data) {
			return nil, fmt.Errorf("malformed JSON in %s", path)
		}

		configurations := gjson.GetBytes(data, "configurations")
		if !configurations.IsArray() {
			return nil, fmt.Errorf("%s has no configurations array", path)
		}

		for _, entry := range configurations.Array() {
			if entry.Get("type").String() != launch.DebugType {
				continue
			}
			req := launch.Request{
				Type:        launch.DebugType,
				Name:        entry.Get("name").String(),
				Request:     entry.Get("request").String(),
				Program:     entry.Get("program").String(),
				StopOnEntry: entry.Get("stopOnEntry").Bool(),
			}
			if err := launch.Validate(req); err != nil {
				return nil, fmt.Errorf("invalid configuration %q in %s: %w", req.Name, path, err)
			}
			requests = append(requests, req)
		}
		logger.Debug("launch.json processed.", "path", path, "qdb_entries", len(requests))
	}

	return requests, nil
}

// Append persists req as a new entry in the configurations array at path,
// creating the file with a minimal skeleton when absent. The rest of the
// file is left byte-for-byte untouched.
func Append(ctx context.Context, path string, req launch.Request) error {
	if err := launch.Validate(req); err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		data = []byte(skeleton)
	} else if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("malformed JSON in %s", path)
	}

	out, err := sjson.SetBytes(data, "configurations.-1", req)
	if err != nil {
		return fmt.Errorf("failed to append configuration: %w", err)
	}

	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	ctxlog.FromContext(ctx).Info("Configuration saved.", "path", path, "name", req.Name)
	return nil
}
