// Package app encapsulates the application's dependencies, configuration
// and lifecycle: logger construction, stored-configuration loading, the
// extension registration, and the serve / one-shot command modes.
package app
