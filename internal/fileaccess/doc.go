// Package fileaccess abstracts reading and writing a target program's bytes
// given a path-like identifier, isolating the debug engine from the host's
// filesystem details.
//
// The engine-facing read contract is unusual and deliberate: ReadFile never
// fails across the boundary. When a path cannot be read, the returned bytes
// carry a textual diagnostic instead, and consumers must check for that
// sentinel. Callers that can handle errors should use ReadFileChecked on
// the concrete accessors instead.
package fileaccess
