package model

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestExtensionRecord_String verifies the compact form used in verbose logs.
func TestExtensionRecord_String(t *testing.T) {
	tests := []struct {
		name     string
		record   ExtensionRecord
		expected string
	}{
		{
			name:     "with object name",
			record:   ExtensionRecord{Category: "pageextension", Identifier: 50100, ObjectName: "Customer Card"},
			expected: `pageextension 50100 "Customer Card"`,
		},
		{
			name:     "without object name",
			record:   ExtensionRecord{Category: "tableextension", Identifier: 50200},
			expected: "tableextension 50200",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.record.String())
		})
	}
}

// TestIDRange_Validate checks bound validation for manifest ID ranges.
func TestIDRange_Validate(t *testing.T) {
	tests := []struct {
		name     string
		r        IDRange
		hasError bool
	}{
		{"normal range", IDRange{From: 50100, To: 50149}, false},
		{"single id", IDRange{From: 50100, To: 50100}, false},
		{"inverted", IDRange{From: 50149, To: 50100}, true},
		{"negative from", IDRange{From: -1, To: 10}, true},
		{"negative to", IDRange{From: 0, To: -10}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.r.Validate()
			if tt.hasError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// TestIDRange_Contains verifies the inclusive bounds of Contains.
func TestIDRange_Contains(t *testing.T) {
	r := IDRange{From: 10, To: 12}
	assert.False(t, r.Contains(9))
	assert.True(t, r.Contains(10))
	assert.True(t, r.Contains(11))
	assert.True(t, r.Contains(12))
	assert.False(t, r.Contains(13))
	assert.Equal(t, "10-12", r.String())
}

// TestValidateCategory checks the shape accepted for --category style input.
func TestValidateCategory(t *testing.T) {
	tests := []struct {
		name     string
		hasError bool
	}{
		{"pageextension", false},
		{"TableExtension", false},
		{"enum_ext2", false},
		{"", true},
		{"page extension", true},
		{"page-extension", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCategory(tt.name)
			if tt.hasError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// TestCategoryKey verifies that grouping and ordering ignore case.
func TestCategoryKey(t *testing.T) {
	assert.Equal(t, "pageextension", CategoryKey("PageExtension"))
	assert.True(t, SameCategory("PageExtension", "pageextension"))
	assert.False(t, SameCategory("pageextension", "tableextension"))
}

// TestCLIError verifies the custom error type used for exit code mapping.
func TestCLIError(t *testing.T) {
	t.Run("simple error", func(t *testing.T) {
		err := NewCLIError(ExitManifestNotFound, "app.json not found")
		assert.Equal(t, ExitManifestNotFound, err.Code)
		assert.Equal(t, "app.json not found", err.Error())
		assert.Nil(t, err.Unwrap())
	})

	t.Run("wrapped error", func(t *testing.T) {
		inner := errors.New("permission denied")
		err := WrapCLIError(ExitGeneralError, "failed to read source", inner)
		assert.Equal(t, ExitGeneralError, err.Code)
		assert.Contains(t, err.Error(), "permission denied")
		assert.Equal(t, inner, err.Unwrap())
	})

	// errors.Is must see sentinel errors through both CLIError and fmt wrapping.
	t.Run("errors.Is chain", func(t *testing.T) {
		inner := fmt.Errorf("source list: %w", ErrInvalidArgument)
		err := WrapCLIError(ExitInvalidArgument, "invalid input", inner)
		require.True(t, errors.Is(err, ErrInvalidArgument))

		var cliErr *CLIError
		require.True(t, errors.As(error(err), &cliErr))
		assert.Equal(t, ExitInvalidArgument, cliErr.Code)
	})
}

// TestSortRecords verifies ordering by case-insensitive category, then id,
// and that the sort is stable for equal keys.
func TestSortRecords(t *testing.T) {
	records := []ExtensionRecord{
		{Category: "tableextension", Identifier: 2, FilePath: "t2"},
		{Category: "PageExtension", Identifier: 5, FilePath: "p5"},
		{Category: "pageextension", Identifier: 1, FilePath: "p1"},
		{Category: "pageextension", Identifier: 5, FilePath: "p5b"},
		{Category: "enumextension", Identifier: 9, FilePath: "e9"},
	}

	SortRecords(records)

	got := make([]string, 0, len(records))
	for _, r := range records {
		got = append(got, r.FilePath)
	}
	assert.Equal(t, []string{"e9", "p1", "p5", "p5b", "t2"}, got)
}
