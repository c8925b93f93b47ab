package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/qdb-debug/qdb/internal/launch"
)

// consoleHost implements extension.Host for headless one-shot commands:
// the "focused document" is the file named on the command line, messages
// go to the output writer, and prompts read from the input reader.
type consoleHost struct {
	outW io.Writer
	inR  *bufio.Reader
	doc  *launch.Context
}

func newConsoleHost(outW io.Writer, inR io.Reader) *consoleHost {
	return &consoleHost{outW: outW, inR: bufio.NewReader(inR)}
}

// focus points the host at a program file, as an editor focus would.
func (h *consoleHost) focus(path string) {
	h.doc = &launch.Context{
		Path:            path,
		LanguageID:      languageIDForPath(path),
		WorkspaceFolder: filepath.Dir(path),
	}
}

func (h *consoleHost) ActiveDocument() (launch.Context, bool) {
	if h.doc == nil {
		return launch.Context{}, false
	}
	return *h.doc, true
}

func (h *consoleHost) ShowMessage(ctx context.Context, message string) {
	fmt.Fprintln(h.outW, message)
}

func (h *consoleHost) PromptString(ctx context.Context, prompt, defaultValue string) (string, error) {
	fmt.Fprintf(h.outW, "%s [%s]: ", prompt, defaultValue)
	line, err := h.inR.ReadString('\n')
	if err != nil && line == "" {
		// EOF before any input accepts the default.
		return "", nil
	}
	return strings.TrimSpace(line), nil
}

// languageIDForPath maps an assembly file extension to the recognized
// language identifier; anything else yields an empty identifier, which the
// resolver will refuse to synthesize from.
func languageIDForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".s", ".asm":
		return launch.LanguageID
	default:
		return ""
	}
}
