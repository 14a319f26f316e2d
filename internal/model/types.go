// Package model defines the domain types for the alids CLI.
//
// These types are passed between the extractor, the gap finder and the CLI
// output layer. None of them are persisted.
package model

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"
)

// ErrInvalidArgument is returned when the caller supplies input that is not
// a usable collection of source files (nil entries, empty paths).
// Callers should test for it with errors.Is.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrNoFreeID is returned when every identifier in the declared ID ranges
// is already taken for a category.
var ErrNoFreeID = errors.New("no free identifier")

// SourceFile is a handle to a single file considered for extraction.
//
// It exposes the full path and the base name separately because the
// extractor may derive the object name or the identifier from the name
// alone. IsDir is the directory/file distinguishing attribute: directories
// are accepted in the input collection but never produce a record.
type SourceFile interface {
	// Path is the absolute or relative path to the file.
	Path() string

	// Name is the file's base name including its extension.
	Name() string

	// IsDir reports whether the handle refers to a directory.
	IsDir() bool

	// Open returns a reader over the file's full content.
	// The caller must close it.
	Open() (io.ReadCloser, error)
}

// ExtensionRecord describes one AL extension object found in a source file.
//
// Identifier is expected to be unique per category in a well-formed project,
// but this is not enforced — duplicates are passed through unchanged.
type ExtensionRecord struct {
	// FilePath is the path of the source file the record was extracted from.
	FilePath string `json:"filePath"`

	// ObjectName is the name of the object being extended, taken either from
	// the text after "extends " on the matched line or from the file name.
	// Empty when neither source yields a name.
	ObjectName string `json:"objectName"`

	// Identifier is the numeric object ID.
	Identifier int `json:"identifier"`

	// Category is the leading word of the matched line
	// (e.g. "pageextension", "tableextension"), kept in its original case.
	Category string `json:"category"`
}

// String returns a compact human-readable form: "category identifier name".
func (r ExtensionRecord) String() string {
	if r.ObjectName == "" {
		return fmt.Sprintf("%s %d", r.Category, r.Identifier)
	}
	return fmt.Sprintf("%s %d %q", r.Category, r.Identifier, r.ObjectName)
}

// FreeIDEntry is an identifier that no known extension of Category uses.
type FreeIDEntry struct {
	// Identifier is the unused value.
	Identifier int `json:"identifier"`

	// Category is copied from the records that bound the gap.
	Category string `json:"category"`
}

// IDRange is an inclusive window of identifiers a project may allocate
// from, as declared by the "idRanges" field of an AL app.json manifest.
type IDRange struct {
	// From is the first identifier in the range.
	From int `json:"from"`

	// To is the last identifier in the range (inclusive).
	To int `json:"to"`
}

// Validate checks that the range is non-empty and non-negative.
func (r IDRange) Validate() error {
	if r.From < 0 || r.To < 0 {
		return fmt.Errorf("id range %d-%d: bounds must not be negative", r.From, r.To)
	}
	if r.From > r.To {
		return fmt.Errorf("id range %d-%d: from must not exceed to", r.From, r.To)
	}
	return nil
}

// Contains reports whether id lies inside the range.
func (r IDRange) Contains(id int) bool {
	return id >= r.From && id <= r.To
}

// String returns the range as "from-to".
func (r IDRange) String() string {
	return fmt.Sprintf("%d-%d", r.From, r.To)
}

// categoryRegex validates category names supplied on the command line:
// a single word token, the same shape the extractor captures.
var categoryRegex = regexp.MustCompile(`^\w+$`)

// ValidateCategory checks if the given name is a usable category.
func ValidateCategory(name string) error {
	if name == "" {
		return fmt.Errorf("category must not be empty")
	}
	if !categoryRegex.MatchString(name) {
		return fmt.Errorf("invalid category %q: must be a single word (letters, digits, underscore)", name)
	}
	return nil
}

// CategoryKey returns the key used to order and group categories.
// Categories compare case-insensitively, so "PageExtension" and
// "pageextension" fall into the same group.
func CategoryKey(category string) string {
	return strings.ToLower(category)
}

// SameCategory reports whether a and b belong to the same group.
func SameCategory(a, b string) bool {
	return strings.EqualFold(a, b)
}

// ExitCode defines the CLI exit codes.
// These codes allow scripts and CI systems to programmatically determine
// the outcome of a command.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitInvalidArgument indicates the supplied paths or flags could not
	// be turned into a list of source files.
	ExitInvalidArgument ExitCode = 2

	// ExitManifestNotFound indicates app.json was not found where expected.
	ExitManifestNotFound ExitCode = 3

	// ExitNoFreeID indicates the declared ID ranges are exhausted.
	ExitNoFreeID ExitCode = 4
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}

// SortRecords orders records in place by category (case-insensitive) and
// then by identifier ascending. The sort is stable, so records with equal
// keys keep their input order.
func SortRecords(records []ExtensionRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		ki, kj := CategoryKey(records[i].Category), CategoryKey(records[j].Category)
		if ki != kj {
			return ki < kj
		}
		return records[i].Identifier < records[j].Identifier
	})
}
