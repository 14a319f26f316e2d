// Package project loads the AL project manifest (app.json).
//
// app.json is JSON, but AL tooling tolerates comments and trailing commas,
// so this package uses github.com/tidwall/jsonc to strip them before
// parsing with the standard encoding/json library.
//
// Only the fields alids needs are decoded: identity for display, and the
// ID ranges the project is allowed to allocate object numbers from.
package project
