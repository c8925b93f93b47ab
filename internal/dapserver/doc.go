// Package dapserver speaks the Debug Adapter Protocol to a host editor on
// behalf of the qdb runtime. It deliberately implements only the bootstrap
// slice of the protocol: initialize, the launch sequence, threads and
// session teardown. Execution requests (stepping, breakpoints, variables)
// belong to the engine and are answered as unsupported until a runtime
// implementing them is bound.
package dapserver
