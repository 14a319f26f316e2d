package project

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/alids/internal/model"
)

// projectRoot returns the absolute path to the repository root, located
// from this test file rather than the current working directory.
func projectRoot(t *testing.T) string {
	t.Helper()

	_, filename, _, ok := runtime.Caller(0)
	require.True(t, ok, "runtime.Caller failed to return file info")

	return filepath.Join(filepath.Dir(filename), "..", "..")
}

// testdataPath returns the absolute path to a fixture directory.
func testdataPath(t *testing.T, fixture string) string {
	t.Helper()
	return filepath.Join(projectRoot(t), "tests", "testdata", fixture)
}

// TestLoadManifest_SampleApp verifies JSONC parsing (comments and trailing
// commas) and the idRanges field.
func TestLoadManifest_SampleApp(t *testing.T) {
	path := filepath.Join(testdataPath(t, "sample-app"), ManifestFileName)

	m, err := LoadManifest(path)
	require.NoError(t, err)

	assert.Equal(t, "Contoso Sales Extensions", m.Name)
	assert.Equal(t, "Contoso", m.Publisher)
	assert.Equal(t, "1.0.0.0", m.Version)
	assert.Equal(t, path, m.Path)
	assert.Equal(t, []model.IDRange{{From: 50100, To: 50110}, {From: 50250, To: 50260}}, m.Ranges())
	assert.NoError(t, m.Validate())
}

// TestLoadManifest_LegacyRange verifies the single idRange form.
func TestLoadManifest_LegacyRange(t *testing.T) {
	m, err := LoadManifest(filepath.Join(testdataPath(t, "legacy-range"), ManifestFileName))
	require.NoError(t, err)

	assert.Empty(t, m.IDRanges)
	assert.Equal(t, []model.IDRange{{From: 70000, To: 70009}}, m.Ranges())
	assert.NoError(t, m.Validate())
}

// TestLoadManifest_NoRanges verifies that loading succeeds but validation fails.
func TestLoadManifest_NoRanges(t *testing.T) {
	m, err := LoadManifest(filepath.Join(testdataPath(t, "no-ranges"), ManifestFileName))
	require.NoError(t, err)

	assert.Empty(t, m.Ranges())
	err = m.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no idRanges")
}

// TestLoadManifest_InvalidRange verifies per-range validation.
func TestLoadManifest_InvalidRange(t *testing.T) {
	m := &Manifest{Path: "app.json", IDRanges: []model.IDRange{{From: 10, To: 1}}}
	assert.Error(t, m.Validate())
}

// TestLoadManifest_NotFound verifies the CLIError exit code for a missing file.
func TestLoadManifest_NotFound(t *testing.T) {
	_, err := LoadManifest(filepath.Join(t.TempDir(), ManifestFileName))
	require.Error(t, err)

	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitManifestNotFound, cliErr.Code)
}

// TestLoadManifest_Malformed verifies that parse errors name the file.
func TestLoadManifest_Malformed(t *testing.T) {
	path := filepath.Join(testdataPath(t, "broken-manifest"), ManifestFileName)

	_, err := LoadManifest(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}

// TestLoadManifest_BOM verifies that a UTF-8 byte order mark is tolerated.
func TestLoadManifest_BOM(t *testing.T) {
	path := filepath.Join(t.TempDir(), ManifestFileName)
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte(`{"idRanges":[{"from":1,"to":5}]}`)...)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	m, err := LoadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, []model.IDRange{{From: 1, To: 5}}, m.Ranges())
}

// TestFindManifest verifies the upward search from a source sub-directory.
func TestFindManifest(t *testing.T) {
	root := testdataPath(t, "sample-app")
	want, err := filepath.Abs(filepath.Join(root, ManifestFileName))
	require.NoError(t, err)

	t.Run("from project root", func(t *testing.T) {
		got, err := FindManifest(root)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("from nested source dir", func(t *testing.T) {
		got, err := FindManifest(filepath.Join(root, "src", "pages"))
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})
}

// TestFindManifest_NotFound verifies the error when no ancestor has app.json.
// A temp dir is used; its ancestors are assumed not to contain app.json.
func TestFindManifest_NotFound(t *testing.T) {
	_, err := FindManifest(t.TempDir())
	require.Error(t, err)

	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitManifestNotFound, cliErr.Code)
}
