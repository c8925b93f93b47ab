package launch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolve_SynthesizesFromFocusedAssemblyDocument(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	rctx := Context{Path: "/work/foo.s", LanguageID: LanguageID}

	// --- Act ---
	got, err := Resolve(context.Background(), nil, rctx)

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, Request{
		Type:        DebugType,
		Name:        "Launch",
		Request:     RequestLaunch,
		Program:     "/work/foo.s",
		StopOnEntry: true,
	}, got)
}

func TestResolve_EmptyRequestNonAssemblyDocumentAborts(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	rctx := Context{Path: "/work/notes.md", LanguageID: "markdown"}

	// --- Act ---
	_, err := Resolve(context.Background(), &Request{}, rctx)

	// --- Assert ---
	require.ErrorIs(t, err, ErrNoProgram, "a non-matching document must not be synthesized into a program")
}

func TestResolve_ResolvedRequestIsUntouched(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	in := Request{
		Type:    DebugType,
		Name:    "My session",
		Request: RequestLaunch,
		Program: "/work/bar.s",
		// StopOnEntry deliberately false: the resolver must not default it
		// for a user-supplied configuration.
	}
	// The focused document differs from the configured program.
	rctx := Context{Path: "/work/other.s", LanguageID: LanguageID}

	// --- Act ---
	got, err := Resolve(context.Background(), &in, rctx)

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, in, got, "resolving an already-resolved request must be a no-op")
}

func TestResolve_PartiallySetRequestSkipsSynthesis(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// Name is set, so synthesis must not trigger even though the focused
	// document matches the assembly language.
	in := Request{Name: "Leftover"}
	rctx := Context{Path: "/work/foo.s", LanguageID: LanguageID}

	// --- Act ---
	_, err := Resolve(context.Background(), &in, rctx)

	// --- Assert ---
	require.ErrorIs(t, err, ErrNoProgram, "a mixed request with no program must abort, not be synthesized")
}

func TestResolve_MissingProgramAlwaysAborts(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		req  *Request
		rctx Context
	}{
		{"nil request, no editor", nil, Context{}},
		{"empty request, no editor", &Request{}, Context{}},
		{"full header, no program", &Request{Type: DebugType, Name: "Launch", Request: RequestLaunch}, Context{Path: "/f.s", LanguageID: LanguageID}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := Resolve(context.Background(), tc.req, tc.rctx)

			require.ErrorIs(t, err, ErrNoProgram)
		})
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	// --- Act / Assert ---
	require.NoError(t, Validate(Request{Type: DebugType, Request: RequestLaunch, Program: "/p.s"}))
	require.ErrorIs(t, Validate(Request{Type: "gdb", Request: RequestLaunch}), ErrWrongType)
	require.ErrorIs(t, Validate(Request{Type: DebugType, Request: "attach"}), ErrWrongRequest)
}
