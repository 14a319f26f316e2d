package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/alids/internal/config"
	"github.com/shinji-kodama/alids/internal/discovery"
	"github.com/shinji-kodama/alids/internal/extract"
	"github.com/shinji-kodama/alids/internal/model"
	"github.com/shinji-kodama/alids/internal/project"
)

// scanFlags holds the flags shared by every command that scans sources.
// Values only override .alids.yml when the flag is set explicitly.
type scanFlags struct {
	identifierFromName     bool
	objectNameFromFileName bool
	extension              string
	excludes               []string
	manifest               string
}

// bind registers the scan flags on cmd.
func (f *scanFlags) bind(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.identifierFromName, "id-from-name", false,
		"Read object IDs from letters+digits tokens (e.g. PEX50292) in file names")
	cmd.Flags().BoolVar(&f.objectNameFromFileName, "name-from-file", false,
		"Read the extended object's name from the file name (\"PEX - Customer Card.al\")")
	cmd.Flags().StringVar(&f.extension, "extension", "",
		"Source file extension, case-sensitive (default: .al)")
	cmd.Flags().StringArrayVar(&f.excludes, "exclude", nil,
		"Glob pattern of paths to skip, relative to each scanned directory (repeatable)")
	cmd.Flags().StringVar(&f.manifest, "manifest", "",
		"Path to app.json (default: searched upward from the first path)")
}

// scanSettings is the effective configuration after merging config file
// and flags.
type scanSettings struct {
	cfg          *config.Config
	manifestPath string
	options      extract.Options
}

// resolve loads the config file and applies explicitly set flags on top.
func (f *scanFlags) resolve(cmd *cobra.Command) (*scanSettings, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, model.WrapCLIError(model.ExitInvalidArgument, "failed to load configuration", err)
	}
	if cfg.Path != "" {
		VerboseLog("Using config file %s", cfg.Path)
	}

	flags := cmd.Flags()
	if flags.Changed("id-from-name") {
		cfg.IdentifierFromName = f.identifierFromName
	}
	if flags.Changed("name-from-file") {
		cfg.ObjectNameFromFileName = f.objectNameFromFileName
	}
	if flags.Changed("extension") {
		cfg.Extension = f.extension
	}
	if flags.Changed("exclude") {
		cfg.Exclude = f.excludes
	}
	manifestPath := cfg.ManifestPath()
	if flags.Changed("manifest") {
		// Flag values are relative to the working directory, not the config file.
		manifestPath = f.manifest
	}

	if err := cfg.Validate(); err != nil {
		return nil, model.WrapCLIError(model.ExitInvalidArgument, "invalid settings", err)
	}

	return &scanSettings{
		cfg:          cfg,
		manifestPath: manifestPath,
		options: extract.Options{
			IdentifierFromName:     cfg.IdentifierFromName,
			ObjectNameFromFileName: cfg.ObjectNameFromFileName,
			Extension:              cfg.Extension,
		},
	}, nil
}

// loadConfig honours --config, falling back to the working directory.
func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.Load(configPath)
	}
	return config.LoadDir(".")
}

// collectFiles resolves path arguments into source files. No arguments
// means the current directory.
func (s *scanSettings) collectFiles(paths []string) ([]model.SourceFile, error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}

	d, err := discovery.New(s.cfg.Exclude)
	if err != nil {
		return nil, toCLIError("invalid exclude pattern", err)
	}

	files, err := d.Files(paths)
	if err != nil {
		return nil, toCLIError("failed to collect source files", err)
	}
	VerboseLog("Found %d files under %v", len(files), paths)
	return files, nil
}

// loadManifest locates and loads app.json. An explicit path (flag or config)
// wins; otherwise the search starts at the first path argument.
func (s *scanSettings) loadManifest(paths []string) (*project.Manifest, error) {
	path := s.manifestPath
	if path == "" {
		start := "."
		if len(paths) > 0 {
			start = paths[0]
			if info, err := os.Stat(start); err == nil && !info.IsDir() {
				start = filepath.Dir(start)
			}
		}

		found, err := project.FindManifest(start)
		if err != nil {
			return nil, err
		}
		path = found
	}

	m, err := project.LoadManifest(path)
	if err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, model.WrapCLIError(model.ExitInvalidArgument, "invalid app.json", err)
	}

	VerboseLog("Using %s (%s) with ranges %v", m.Path, m.Name, m.Ranges())
	return m, nil
}

// logUnmatched reports files that carried no identifier.
func logUnmatched(unmatched []string) {
	for _, path := range unmatched {
		VerboseLog("No identifier found in %s, skipped", path)
	}
}

// describeMode renders the extraction options for verbose output.
func describeMode(opts extract.Options) string {
	idSource := "content"
	if opts.IdentifierFromName {
		idSource = "file name"
	}
	nameSource := "extends clause"
	if opts.ObjectNameFromFileName {
		nameSource = "file name"
	}
	return fmt.Sprintf("ids from %s, object names from %s, extension %s", idSource, nameSource, opts.Extension)
}
