// Package launch defines the launch-request model for the qdb debug type,
// along with the two host-facing operations performed on it before a debug
// session exists: resolution (filling in missing fields from the focused
// document, or aborting) and dynamic provision (offering a canned
// configuration when the user has none saved).
//
// A Request never outlives the command invocation that produced it. The
// resolver is the only gatekeeper between an ambiguous user action and the
// descriptor factory: a request without a program must not travel further.
package launch
