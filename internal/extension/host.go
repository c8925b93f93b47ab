package extension

import (
	"context"

	"github.com/qdb-debug/qdb/internal/launch"
)

// Host is the editor-facing boundary the extension consumes. It is the
// only channel through which the bootstrap ever talks back to the user.
type Host interface {
	// ActiveDocument reports the currently focused document, if any.
	ActiveDocument() (launch.Context, bool)

	// ShowMessage displays an informational message to the user.
	ShowMessage(ctx context.Context, message string)

	// PromptString asks the user for a string, offering a default. An
	// empty answer with a nil error means the user accepted the default.
	PromptString(ctx context.Context, prompt, defaultValue string) (string, error)
}
