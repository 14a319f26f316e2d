package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testdataPath(t *testing.T, fixture string) string {
	t.Helper()

	_, filename, _, ok := runtime.Caller(0)
	require.True(t, ok, "runtime.Caller failed to return file info")
	return filepath.Join(filepath.Dir(filename), "..", "..", "tests", "testdata", fixture)
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".alids.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// TestDefault verifies the built-in defaults are valid.
func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, ".al", cfg.Extension)
	assert.False(t, cfg.IdentifierFromName)
	assert.False(t, cfg.ObjectNameFromFileName)
	assert.Contains(t, cfg.Exclude, ".alpackages/**")
	assert.NoError(t, cfg.Validate())
}

// TestLoadDir_SampleApp verifies loading the fixture's .alids.yml.
func TestLoadDir_SampleApp(t *testing.T) {
	dir := testdataPath(t, "sample-app")

	cfg, err := LoadDir(dir)
	require.NoError(t, err)

	assert.Equal(t, ".al", cfg.Extension)
	assert.Equal(t, []string{".alpackages/**"}, cfg.Exclude)
	assert.Equal(t, filepath.Join(dir, ".alids.yml"), cfg.Path)
}

// TestLoadDir_NoFile verifies defaults are returned when no file exists.
func TestLoadDir_NoFile(t *testing.T) {
	cfg, err := LoadDir(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

// TestLoad covers the individual keys and validation failures.
func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		hasError bool
		check    func(t *testing.T, cfg *Config)
	}{
		{
			name:    "empty file keeps defaults",
			content: "",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, ".al", cfg.Extension)
				assert.Equal(t, Default().Exclude, cfg.Exclude)
			},
		},
		{
			name: "naming convention flags",
			content: `identifierFromName: true
objectNameFromFileName: true
`,
			check: func(t *testing.T, cfg *Config) {
				assert.True(t, cfg.IdentifierFromName)
				assert.True(t, cfg.ObjectNameFromFileName)
				assert.Equal(t, ".al", cfg.Extension)
			},
		},
		{
			name:    "custom extension",
			content: "extension: .dal\n",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, ".dal", cfg.Extension)
			},
		},
		{
			name:     "extension without dot",
			content:  "extension: al\n",
			hasError: true,
		},
		{
			name:     "unknown key",
			content:  "identifierFromNames: true\n",
			hasError: true,
		},
		{
			name:     "empty exclude pattern",
			content:  "exclude: [\"\"]\n",
			hasError: true,
		},
		{
			name:     "malformed yaml",
			content:  "exclude: [unterminated\n",
			hasError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, tt.content))
			if tt.hasError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

// TestLoad_MissingFile verifies an explicit path must exist.
func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}

// TestManifestPath verifies resolution relative to the config file.
func TestManifestPath(t *testing.T) {
	cfg := &Config{Manifest: "app/app.json", Path: filepath.Join("repo", ".alids.yml")}
	assert.Equal(t, filepath.Join("repo", "app", "app.json"), cfg.ManifestPath())

	abs, err := filepath.Abs("app.json")
	require.NoError(t, err)
	cfg.Manifest = abs
	assert.Equal(t, abs, cfg.ManifestPath())

	assert.Empty(t, Default().ManifestPath())
}
