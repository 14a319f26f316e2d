// Package cli — free.go implements the "alids free" command.
//
// By default the command reports the holes between the object IDs already
// in use in each category. With --ranges it reports every unused ID inside
// the ranges declared in app.json instead, which also covers IDs below the
// first and above the last object of a category.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/alids/internal/gap"
	"github.com/shinji-kodama/alids/internal/inventory"
	"github.com/shinji-kodama/alids/internal/model"
)

// freeFlags holds the flag values for the free command.
type freeFlags struct {
	scan scanFlags

	// ranges switches from gap detection to the app.json ID ranges.
	ranges bool

	// category restricts output to one category (case-insensitive).
	category string

	// summary prints one line per category with collapsed ID runs.
	summary bool
}

// NewFreeCommand creates the "free" cobra command.
func NewFreeCommand() *cobra.Command {
	flags := &freeFlags{}

	cmd := &cobra.Command{
		Use:   "free [paths...]",
		Short: "Report unused extension object IDs",
		Long: `Report object IDs that no extension of a category uses.

Without --ranges, a free ID is one strictly between two IDs already used
by the same category. With --ranges, every ID inside the idRanges of
app.json that the category does not use is reported.

Examples:
  alids free
  alids free src --summary
  alids free --ranges --category tableextension --json`,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runFree(cmd, flags, args)
		},
	}

	flags.scan.bind(cmd)
	cmd.Flags().BoolVar(&flags.ranges, "ranges", false,
		"Report free IDs inside the idRanges declared in app.json")
	cmd.Flags().StringVar(&flags.category, "category", "",
		"Only report free IDs of this category")
	cmd.Flags().BoolVar(&flags.summary, "summary", false,
		"Print one line per category with consecutive IDs collapsed (50102-50109)")

	return cmd
}

// runFree computes free IDs with the selected strategy and prints them.
func runFree(cmd *cobra.Command, flags *freeFlags, paths []string) error {
	if flags.category != "" {
		if err := model.ValidateCategory(flags.category); err != nil {
			return model.WrapCLIError(model.ExitInvalidArgument, "invalid --category", err)
		}
	}

	settings, err := flags.scan.resolve(cmd)
	if err != nil {
		return err
	}

	// Load the manifest before scanning so a missing app.json fails fast.
	var ranges []model.IDRange
	if flags.ranges {
		m, err := settings.loadManifest(paths)
		if err != nil {
			return toCLIError("failed to load app.json", err)
		}
		ranges = m.Ranges()
	}

	files, err := settings.collectFiles(paths)
	if err != nil {
		return err
	}

	VerboseLog("Extracting with %s", describeMode(settings.options))
	result, err := inventory.Run(files, inventory.Options{
		Extract:  settings.options,
		FreeOnly: !flags.ranges,
	})
	if err != nil {
		return toCLIError("failed to extract extension records", err)
	}
	logUnmatched(result.Unmatched)

	free := result.Free
	if flags.ranges {
		free, err = gap.FreeInRanges(result.Records, ranges)
		if err != nil {
			return toCLIError("failed to compute free IDs", err)
		}
	}

	free = filterFree(free, flags.category)
	VerboseLog("Found %d free IDs", len(free))

	out := cmd.OutOrStdout()
	switch {
	case IsJSONOutput():
		return printFreeResultJSON(out, free, ranges, result.Unmatched)
	case flags.summary:
		printFreeSummary(out, free)
	default:
		printFreeResultText(out, free)
	}
	return nil
}

// filterFree keeps entries of category; an empty category keeps all.
func filterFree(free []model.FreeIDEntry, category string) []model.FreeIDEntry {
	if category == "" {
		return free
	}
	filtered := make([]model.FreeIDEntry, 0, len(free))
	for _, e := range free {
		if model.SameCategory(e.Category, category) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// printFreeResultJSON writes the free IDs as structured JSON. "ranges" is
// present only when the app.json ranges were used.
func printFreeResultJSON(w io.Writer, free []model.FreeIDEntry, ranges []model.IDRange, unmatched []string) error {
	type resultJSON struct {
		Free      []model.FreeIDEntry `json:"free"`
		Ranges    []model.IDRange     `json:"ranges,omitempty"`
		Unmatched []string            `json:"unmatched"`
	}

	result := resultJSON{Free: free, Ranges: ranges, Unmatched: unmatched}
	if result.Free == nil {
		result.Free = []model.FreeIDEntry{}
	}
	if result.Unmatched == nil {
		result.Unmatched = []string{}
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode free result: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// printFreeResultText writes one row per free ID.
func printFreeResultText(w io.Writer, free []model.FreeIDEntry) {
	if len(free) == 0 {
		fmt.Fprintln(w, "No free IDs found.")
		return
	}

	fmt.Fprintf(w, "%-20s %s\n", "CATEGORY", "ID")
	for _, e := range free {
		fmt.Fprintf(w, "%-20s %d\n", e.Category, e.Identifier)
	}
}

// printFreeSummary writes one row per category with collapsed ID runs.
//
//	pageextension        50102-50103,50105
//	tableextension       50101
func printFreeSummary(w io.Writer, free []model.FreeIDEntry) {
	if len(free) == 0 {
		fmt.Fprintln(w, "No free IDs found.")
		return
	}

	var order []string
	byCategory := make(map[string][]int)
	for _, e := range free {
		if _, ok := byCategory[e.Category]; !ok {
			order = append(order, e.Category)
		}
		byCategory[e.Category] = append(byCategory[e.Category], e.Identifier)
	}

	fmt.Fprintf(w, "%-20s %-6s %s\n", "CATEGORY", "COUNT", "IDS")
	for _, category := range order {
		ids := byCategory[category]
		fmt.Fprintf(w, "%-20s %-6d %s\n", category, len(ids), FormatIDList(ids))
	}
}

// FormatIDList converts identifiers into a comma-separated string with
// consecutive runs collapsed. Returns "-" if ids is empty.
//
// This function is exported for testing purposes (tested in free_test.go).
//
// Example:
//
//	[50105, 50102, 50103] → "50102-50103,50105"
//	[]                    → "-"
func FormatIDList(ids []int) string {
	if len(ids) == 0 {
		return "-"
	}

	sorted := make([]int, len(ids))
	copy(sorted, ids)
	sort.Ints(sorted)

	var parts []string
	start, prev := sorted[0], sorted[0]
	flush := func() {
		if start == prev {
			parts = append(parts, strconv.Itoa(start))
		} else {
			parts = append(parts, strconv.Itoa(start)+"-"+strconv.Itoa(prev))
		}
	}
	for _, id := range sorted[1:] {
		if id == prev || id == prev+1 {
			prev = id
			continue
		}
		flush()
		start, prev = id, id
	}
	flush()

	return strings.Join(parts, ",")
}
