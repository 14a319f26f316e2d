// Package inventory is the single entry point that turns a collection of
// source files into either the extension inventory or its free identifiers.
//
// It wires the extractor and the gap finder together; see packages extract
// and gap for the details of each step.
package inventory

import (
	"github.com/shinji-kodama/alids/internal/extract"
	"github.com/shinji-kodama/alids/internal/gap"
	"github.com/shinji-kodama/alids/internal/model"
)

// Options controls one inventory run.
type Options struct {
	// Extract selects how record fields are derived.
	Extract extract.Options

	// FreeOnly returns the free identifiers between observed objects
	// instead of the records themselves.
	FreeOnly bool
}

// Result is the outcome of Run. Exactly one of Records and Free is
// populated, depending on Options.FreeOnly; the other is nil.
type Result struct {
	// Records is the sorted inventory.
	Records []model.ExtensionRecord

	// Free lists the unused identifiers between observed objects.
	Free []model.FreeIDEntry

	// Unmatched lists source files without a line carrying an identifier.
	Unmatched []string
}

// Run extracts records from files and, when opts.FreeOnly is set, feeds the
// sorted records to gap.FindFree.
//
// It fails only on the precondition check of the input collection
// (model.ErrInvalidArgument) or when a source file cannot be read.
func Run(files []model.SourceFile, opts Options) (*Result, error) {
	extracted, err := extract.Extract(files, opts.Extract)
	if err != nil {
		return nil, err
	}

	result := &Result{Unmatched: extracted.Unmatched}
	if opts.FreeOnly {
		result.Free = gap.FindFree(extracted.Records)
	} else {
		result.Records = extracted.Records
	}
	return result, nil
}
