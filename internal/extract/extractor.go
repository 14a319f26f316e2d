package extract

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/shinji-kodama/alids/internal/model"
)

// DefaultExtension is the source extension processed when Options.Extension
// is empty. Matching is case-sensitive: "x.AL" is not an AL source file.
const DefaultExtension = ".al"

// Options selects how the fields of a record are derived.
type Options struct {
	// IdentifierFromName switches to name mode: lines are matched on a
	// letters+digits token, and the identifier is read from the file name
	// when it carries such a token.
	IdentifierFromName bool

	// ObjectNameFromFileName derives ObjectName from the text after
	// "<prefix> - " in the file name instead of the "extends" clause.
	ObjectNameFromFileName bool

	// Extension is the recognized source extension, including the dot.
	// Defaults to DefaultExtension.
	Extension string
}

func (o Options) extension() string {
	if o.Extension == "" {
		return DefaultExtension
	}
	return o.Extension
}

// Result holds the outcome of one extraction run.
type Result struct {
	// Records are sorted by (category, identifier); see model.SortRecords.
	Records []model.ExtensionRecord

	// Unmatched lists the paths of source files that had no line matching
	// the identifier pattern. Such files contribute no record.
	Unmatched []string
}

// Extract builds an ExtensionRecord for every recognized source file in
// files, in input order, and returns them sorted.
//
// The collection is checked up front: a nil collection, a nil element or an
// element without a path fails with an error wrapping
// model.ErrInvalidArgument before any file is read. Files with another
// extension and directories are skipped silently. A file whose content
// cannot be read aborts the run.
func Extract(files []model.SourceFile, opts Options) (*Result, error) {
	if err := checkSourceFiles(files); err != nil {
		return nil, err
	}

	result := &Result{
		Records: make([]model.ExtensionRecord, 0, len(files)),
	}
	for _, f := range files {
		if !IsSourceFile(f, opts.extension()) {
			continue
		}

		rec, ok, err := ExtractFile(f, opts)
		if err != nil {
			return nil, err
		}
		if !ok {
			result.Unmatched = append(result.Unmatched, f.Path())
			continue
		}
		result.Records = append(result.Records, rec)
	}

	model.SortRecords(result.Records)
	return result, nil
}

// checkSourceFiles is the precondition check on the input collection.
func checkSourceFiles(files []model.SourceFile) error {
	if files == nil {
		return fmt.Errorf("source file list is nil: %w", model.ErrInvalidArgument)
	}
	for i, f := range files {
		if f == nil {
			return fmt.Errorf("source file #%d is nil: %w", i, model.ErrInvalidArgument)
		}
		if f.Path() == "" {
			return fmt.Errorf("source file #%d has no path: %w", i, model.ErrInvalidArgument)
		}
	}
	return nil
}

// IsSourceFile reports whether f is a regular file whose extension equals ext
// exactly.
func IsSourceFile(f model.SourceFile, ext string) bool {
	if f.IsDir() {
		return false
	}
	return filepath.Ext(f.Name()) == ext
}

// ExtractFile reads f and builds its record from the first matching line.
// The boolean result is false when no line matches.
func ExtractFile(f model.SourceFile, opts Options) (model.ExtensionRecord, bool, error) {
	line, lineID, ok, err := firstMatchingLine(f, opts.IdentifierFromName)
	if err != nil {
		return model.ExtensionRecord{}, false, err
	}
	if !ok {
		return model.ExtensionRecord{}, false, nil
	}

	rec := model.ExtensionRecord{
		FilePath:   f.Path(),
		Identifier: lineID,
		Category:   categoryOf(line),
	}

	if opts.IdentifierFromName {
		base := strings.TrimSuffix(f.Name(), filepath.Ext(f.Name()))
		if id, found := matchPrefixedNumber(base); found {
			rec.Identifier = id
		}
	}

	if opts.ObjectNameFromFileName {
		rec.ObjectName = objectNameFromFileName(f.Name())
	} else {
		rec.ObjectName = objectNameFromLine(line)
	}

	return rec, true, nil
}

// firstMatchingLine scans f line by line and returns the first line the
// mode's pattern matches, together with the captured identifier.
func firstMatchingLine(f model.SourceFile, nameMode bool) (string, int, bool, error) {
	match := matchContentNumber
	if nameMode {
		match = matchPrefixedNumber
	}

	rc, err := f.Open()
	if err != nil {
		return "", 0, false, fmt.Errorf("failed to open %s: %w", f.Path(), err)
	}
	defer func() { _ = rc.Close() }()

	// Lines have no length limit; generated AL files can carry very long
	// comment or data lines ahead of the declaration.
	reader := bufio.NewReader(rc)
	first := true
	for {
		raw, readErr := reader.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return "", 0, false, fmt.Errorf("failed to read %s: %w", f.Path(), readErr)
		}

		if raw != "" {
			line := strings.TrimSuffix(strings.TrimSuffix(raw, "\n"), "\r")
			if first {
				line = strings.TrimPrefix(line, utf8BOM)
				first = false
			}
			if id, ok := match(line); ok {
				return line, id, true, nil
			}
		}

		if readErr != nil {
			return "", 0, false, nil
		}
	}
}
