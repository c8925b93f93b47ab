package launch

import (
	"errors"
	"fmt"
)

const (
	// DebugType is the debug-type identifier this module registers against.
	DebugType = "qdb"

	// LanguageID is the language identifier of ARM64 assembly documents.
	// Matching is exact string equality; there is no fuzzy matching.
	LanguageID = "arm64asm"

	// RequestLaunch is the only request kind the qdb adapter accepts.
	RequestLaunch = "launch"

	// FileTemplate is the placeholder a canned configuration uses for "the
	// currently open file". The host binds it to a concrete path at launch
	// time; this module never expands it.
	FileTemplate = "${file}"
)

// Request describes what to debug or run and how. Field names follow the
// DAP launch-arguments wire shape so a Request can be decoded directly from
// a launch request body or a stored configuration entry.
type Request struct {
	Type        string `json:"type"`
	Name        string `json:"name"`
	Request     string `json:"request"`
	Program     string `json:"program"`
	StopOnEntry bool   `json:"stopOnEntry,omitempty"`
}

// Context is the read-only resolution input: the currently focused
// document's path and language identifier, plus an optional workspace
// folder scope. It is never persisted.
type Context struct {
	Path            string
	LanguageID      string
	WorkspaceFolder string
}

var (
	// ErrNoProgram signals that resolution could not determine a program to
	// debug. It is a terminal outcome for the invocation, not a crash: the
	// caller notifies the user and cancels the launch.
	ErrNoProgram = errors.New("cannot find a program to debug")

	// ErrWrongType signals a request whose type is not "qdb".
	ErrWrongType = errors.New("unsupported debug type")

	// ErrWrongRequest signals a request kind other than "launch".
	ErrWrongRequest = errors.New("unsupported request kind")
)

// Validate checks the fixed fields of a request against the qdb wire shape.
// It does not check Program; that is the resolver's job.
func Validate(req Request) error {
	if req.Type != DebugType {
		return fmt.Errorf("%w: %q", ErrWrongType, req.Type)
	}
	if req.Request != RequestLaunch {
		return fmt.Errorf("%w: %q", ErrWrongRequest, req.Request)
	}
	return nil
}
