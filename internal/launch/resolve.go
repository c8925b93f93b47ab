package launch

import (
	"context"

	"github.com/qdb-debug/qdb/internal/ctxlog"
)

// Resolve turns a possibly-empty request into a well-formed one, or aborts.
//
// Synthesis only triggers when Type, Request and Name are all absent (no
// stored configuration exists at all); a partially populated request skips
// synthesis entirely and proceeds straight to the missing-program check.
// Fields supplied by the user are never overwritten, so resolving an
// already-resolved request is a no-op.
//
// A nil request is treated the same as an empty one. On abort the returned
// error is ErrNoProgram; the caller owns the user notification.
func Resolve(ctx context.Context, req *Request, rctx Context) (Request, error) {
	logger := ctxlog.FromContext(ctx)

	var out Request
	if req != nil {
		out = *req
	}

	if out.Type == "" && out.Request == "" && out.Name == "" {
		if rctx.LanguageID == LanguageID {
			logger.Debug("No stored configuration; synthesizing from focused document.", "path", rctx.Path)
			out = Request{
				Type:        DebugType,
				Name:        "Launch",
				Request:     RequestLaunch,
				Program:     rctx.Path,
				StopOnEntry: true,
			}
		}
	}

	if out.Program == "" {
		logger.Debug("Resolution aborted: no program determinable.", "language_id", rctx.LanguageID)
		return Request{}, ErrNoProgram
	}

	return out, nil
}
