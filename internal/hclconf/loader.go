// Package hclconf implements the config.Loader interface for launch
// configurations stored as HCL. Each *.qdb.hcl file carries any number of
// `launch "<name>"` blocks; program paths may reference the `workspace`
// variable, which is bound when the loader is constructed.
package hclconf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/qdb-debug/qdb/internal/ctxlog"
	"github.com/qdb-debug/qdb/internal/fsutil"
	"github.com/qdb-debug/qdb/internal/launch"
)

// Extension is the file suffix recognized for stored qdb configurations.
const Extension = ".qdb.hcl"

// Loader implements config.Loader for HCL files.
type Loader struct {
	evalCtx *hcl.EvalContext
}

// NewLoader creates an HCL loader. The workspace folder is exposed to
// configuration files as the `workspace` variable.
func NewLoader(workspace string) *Loader {
	return &Loader{
		evalCtx: &hcl.EvalContext{
			Variables: map[string]cty.Value{
				"workspace": cty.StringVal(workspace),
			},
		},
	}
}

// Load reads every *.qdb.hcl file under the given paths and returns the
// launch configurations they define, in file order.
func (l *Loader) Load(ctx context.Context, paths ...string) ([]launch.Request, error) {
	logger := ctxlog.FromContext(ctx)

	var requests []launch.Request
	for _, path := range paths {
		files, err := resolvePath(path)
		if err != nil {
			return nil, err
		}
		if len(files) == 0 {
			logger.Warn("No stored configuration files found.", "path", path)
			continue
		}
		for _, file := range files {
			reqs, err := l.decodeFile(ctx, file)
			if err != nil {
				return nil, err
			}
			requests = append(requests, reqs...)
		}
	}

	logger.Debug("HCL configurations loaded.", "count", len(requests))
	return requests, nil
}

// decodeFile parses and decodes a single stored-configuration file.
func (l *Loader) decodeFile(ctx context.Context, path string) ([]launch.Request, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Decoding stored configuration file.", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse %s: %s", path, diags.Error())
	}

	var cfg fileConfig
	diags = gohcl.DecodeBody(file.Body, l.evalCtx, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode %s: %s", path, diags.Error())
	}

	requests := make([]launch.Request, 0, len(cfg.Launches))
	for _, block := range cfg.Launches {
		req := launch.Request{
			Type:        launch.DebugType,
			Name:        block.Name,
			Request:     block.Request,
			Program:     block.Program,
			StopOnEntry: block.StopOnEntry,
		}
		if req.Request == "" {
			req.Request = launch.RequestLaunch
		}
		if err := launch.Validate(req); err != nil {
			return nil, fmt.Errorf("invalid launch block %q in %s: %w", block.Name, path, err)
		}
		requests = append(requests, req)
	}
	return requests, nil
}

// resolvePath expands a file-or-directory path into the stored
// configuration files it names. A single file must carry the .qdb.hcl
// suffix; a directory is searched recursively.
func resolvePath(path string) ([]string, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration path not found: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("error accessing path %s: %w", path, err)
	}

	if info.IsDir() {
		return fsutil.FindFilesByExtension(path, Extension)
	}
	if !strings.HasSuffix(filepath.Base(path), Extension) {
		return nil, fmt.Errorf("specified file is not a %s file: %s", Extension, path)
	}
	return []string{path}, nil
}
