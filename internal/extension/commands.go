package extension

import (
	"context"

	"github.com/qdb-debug/qdb/internal/registry"
)

// Names of the commands the extension exposes to the host UI.
const (
	CommandRunFile          = "qdb.runEditorContents"
	CommandDebugFile        = "qdb.debugEditorContents"
	CommandToggleFormatting = "qdb.toggleFormatting"
	CommandGetProgramName   = "qdb.getProgramName"
)

const programNamePrompt = "Please enter the name of an assembly file in the workspace folder"

// commandSurface registers the host-facing commands as a registry module.
type commandSurface struct {
	ext *Extension
}

// Register implements registry.Module.
func (c *commandSurface) Register(r *registry.Registry) {
	r.RegisterCommand(CommandRunFile, c.runEditorContents)
	r.RegisterCommand(CommandDebugFile, c.debugEditorContents)
	r.RegisterCommand(CommandToggleFormatting, c.toggleFormatting)
	r.RegisterCommand(CommandGetProgramName, c.getProgramName)
}

// runEditorContents launches the focused document without debugging. The
// request is left empty so the resolver synthesizes it from the document;
// with no matching document the launch aborts with the usual notification.
func (c *commandSurface) runEditorContents(ctx context.Context, arg string) (string, error) {
	return "", c.ext.StartDebugging(ctx, nil, true)
}

// debugEditorContents launches the focused document under the debugger.
func (c *commandSurface) debugEditorContents(ctx context.Context, arg string) (string, error) {
	return "", c.ext.StartDebugging(ctx, nil, false)
}

// toggleFormatting forwards the toggle to the active session, if any.
func (c *commandSurface) toggleFormatting(ctx context.Context, arg string) (string, error) {
	return "", c.ext.toggleFormatting(ctx)
}

// getProgramName prompts for and returns a program file name.
func (c *commandSurface) getProgramName(ctx context.Context, arg string) (string, error) {
	defaultValue := arg
	if defaultValue == "" {
		defaultValue = "program.s"
	}
	answer, err := c.ext.host.PromptString(ctx, programNamePrompt, defaultValue)
	if err != nil {
		return "", err
	}
	if answer == "" {
		return defaultValue, nil
	}
	return answer, nil
}
