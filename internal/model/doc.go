// Package model defines the domain types and value objects for the
// alids CLI.
//
// This package contains pure data structures with no external dependencies.
// All entities (ExtensionRecord, FreeIDEntry, IDRange) are transient
// representations built from AL source files during a single invocation —
// there are no persistent state files.
//
// The package also defines exit codes (ExitCode) and a custom error type
// (CLIError) that carries exit codes for proper OS process exit handling.
package model
