// Package registry is the host registration surface: the central glue that
// binds a debug-type identifier to its configuration resolver, dynamic
// configuration provider, descriptor factory and named commands.
//
// Registration happens exactly once at startup and panics on duplicates,
// mismatches between what the host calls and what the code registers being
// programmer errors. Everything registered is released together through
// the Disposables aggregate at teardown; there is no re-initialization
// path.
package registry
