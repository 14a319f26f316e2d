// Package discovery turns command-line path arguments into the list of
// source files handed to the extractor.
//
// Directories are walked recursively in lexical order; files given
// explicitly are taken as-is. Exclude patterns use gobwas/glob syntax and
// are matched against slash-separated paths relative to each walked root,
// so "**/*.Test.al" and ".alpackages/**" work on every OS.
package discovery

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"github.com/shinji-kodama/alids/internal/model"
)

// File is a model.SourceFile backed by the operating system's filesystem.
type File struct {
	path  string
	isDir bool
}

// NewFile returns a handle for path. It does not touch the filesystem.
func NewFile(path string, isDir bool) *File {
	return &File{path: path, isDir: isDir}
}

// Path returns the path the file was discovered under.
func (f *File) Path() string { return f.path }

// Name returns the base name of the file.
func (f *File) Name() string { return filepath.Base(f.path) }

// IsDir reports whether the handle refers to a directory.
func (f *File) IsDir() bool { return f.isDir }

// Open opens the file for reading.
func (f *File) Open() (io.ReadCloser, error) {
	return os.Open(f.path)
}

// compiledPattern holds both the pattern string and compiled glob.
type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

// Discovery resolves path arguments into source files.
type Discovery struct {
	excludes []compiledPattern
}

// New compiles the exclude patterns. An invalid pattern is an error
// wrapping model.ErrInvalidArgument.
func New(excludes []string) (*Discovery, error) {
	d := &Discovery{}
	for _, pattern := range excludes {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %v: %w", pattern, err, model.ErrInvalidArgument)
		}
		d.excludes = append(d.excludes, compiledPattern{pattern: pattern, glob: g})
	}
	return d, nil
}

// Files returns a handle for every regular file under paths. Explicit file
// arguments are never excluded. A path that does not exist is an error
// wrapping model.ErrInvalidArgument.
//
// The result is never nil, so it always passes the extractor's
// precondition check.
func (d *Discovery) Files(paths []string) ([]model.SourceFile, error) {
	files := make([]model.SourceFile, 0)

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("path %s does not exist: %w", root, model.ErrInvalidArgument)
			}
			return nil, fmt.Errorf("failed to stat %s: %w", root, err)
		}

		if !info.IsDir() {
			files = append(files, NewFile(root, false))
			continue
		}

		walked, err := d.walk(root)
		if err != nil {
			return nil, err
		}
		files = append(files, walked...)
	}

	return files, nil
}

// walk collects the regular files under root that no exclude pattern hits.
func (d *Discovery) walk(root string) ([]model.SourceFile, error) {
	var files []model.SourceFile

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)

		if entry.IsDir() {
			if d.excludesDir(relPath) {
				return filepath.SkipDir
			}
			return nil
		}

		if !entry.Type().IsRegular() || d.excludesFile(relPath) {
			return nil
		}
		files = append(files, NewFile(path, false))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}
	return files, nil
}

// excludesFile checks if a relative file path matches any exclude pattern.
func (d *Discovery) excludesFile(relPath string) bool {
	if d.matchesAny(relPath) {
		return true
	}
	// Patterns like "**/*.Test.al" should also match files in the root.
	if !strings.Contains(relPath, "/") {
		for _, cp := range d.excludes {
			if strings.HasPrefix(cp.pattern, "**/") {
				if g, err := glob.Compile(strings.TrimPrefix(cp.pattern, "**/"), '/'); err == nil && g.Match(relPath) {
					return true
				}
			}
		}
	}
	return false
}

// excludesDir checks if a directory is excluded, either directly or
// through a "dir/**" pattern.
func (d *Discovery) excludesDir(relPath string) bool {
	return d.matchesAny(relPath) || d.matchesAny(relPath+"/**")
}

func (d *Discovery) matchesAny(path string) bool {
	for _, cp := range d.excludes {
		if cp.glob.Match(path) {
			return true
		}
	}
	return false
}
