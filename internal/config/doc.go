// Package config defines the format-agnostic interface for loading stored
// launch configurations, and the Store that caches the loaded requests for
// the lifetime of the process.
//
// Concrete loaders live in separate packages: internal/hclconf reads
// *.qdb.hcl files, internal/launchjson reads VS Code-style launch.json
// files. The Store can watch its source paths and reload when they change.
package config
