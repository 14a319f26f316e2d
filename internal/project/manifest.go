package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"

	"github.com/shinji-kodama/alids/internal/model"
)

// ManifestFileName is the name of the AL project manifest.
const ManifestFileName = "app.json"

// Manifest represents the subset of app.json alids reads. Other fields are
// silently ignored during parsing.
type Manifest struct {
	// ID is the app's GUID.
	ID string `json:"id"`

	// Name is the display name of the app.
	Name string `json:"name"`

	// Publisher is the app's publisher.
	Publisher string `json:"publisher"`

	// Version is the app version ("1.0.0.0").
	Version string `json:"version"`

	// IDRanges are the object ID windows the app may use.
	IDRanges []model.IDRange `json:"idRanges,omitempty"`

	// IDRange is the legacy single-range form, still accepted by the
	// AL compiler. It is folded into Ranges().
	IDRange *model.IDRange `json:"idRange,omitempty"`

	// Path is the file the manifest was loaded from. Not part of app.json.
	Path string `json:"-"`
}

// Ranges returns every declared ID range, including the legacy idRange.
func (m *Manifest) Ranges() []model.IDRange {
	ranges := make([]model.IDRange, 0, len(m.IDRanges)+1)
	ranges = append(ranges, m.IDRanges...)
	if m.IDRange != nil {
		ranges = append(ranges, *m.IDRange)
	}
	return ranges
}

// Validate checks that the manifest declares at least one well-formed range.
func (m *Manifest) Validate() error {
	ranges := m.Ranges()
	if len(ranges) == 0 {
		return fmt.Errorf("%s declares no idRanges", m.Path)
	}
	for _, r := range ranges {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("%s: %w", m.Path, err)
		}
	}
	return nil
}

// LoadManifest reads an app.json file, strips JSONC comments and trailing
// commas, and parses it into a Manifest.
//
// Returns a CLIError with ExitManifestNotFound if the file does not exist.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, model.WrapCLIError(
				model.ExitManifestNotFound,
				fmt.Sprintf("%s not found: %s", ManifestFileName, path),
				err,
			)
		}
		return nil, fmt.Errorf("failed to read %s: %w", ManifestFileName, err)
	}

	// app.json files written by hand or by older tooling may carry a BOM.
	data = trimBOM(data)

	var m Manifest
	if err := json.Unmarshal(jsonc.ToJSON(data), &m); err != nil {
		return nil, fmt.Errorf("failed to parse %s at %s: %w", ManifestFileName, path, err)
	}
	m.Path = path

	return &m, nil
}

// FindManifest searches for app.json starting at dir and walking up through
// its parents, so it can be called with a source sub-directory.
//
// Returns the path of the first file found, or a CLIError with
// ExitManifestNotFound if no ancestor contains one.
func FindManifest(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", dir, err)
	}

	for current := abs; ; {
		candidate := filepath.Join(current, ManifestFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}

		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		current = parent
	}

	return "", model.NewCLIError(
		model.ExitManifestNotFound,
		fmt.Sprintf("%s not found in %s or any parent directory", ManifestFileName, abs),
	)
}

func trimBOM(data []byte) []byte {
	if len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF {
		return data[3:]
	}
	return data
}
