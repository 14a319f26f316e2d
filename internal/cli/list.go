// Package cli — list.go implements the "alids list" command.
//
// The list command prints the extension inventory: one row per AL
// extension object, ordered by category and then object ID. Output is a
// text table or, with --json, a JSON document.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/alids/internal/inventory"
	"github.com/shinji-kodama/alids/internal/model"
)

// listFlags holds the flag values for the list command.
type listFlags struct {
	scan scanFlags

	// category restricts output to one category (case-insensitive).
	category string
}

// NewListCommand creates the "list" cobra command.
func NewListCommand() *cobra.Command {
	flags := &listFlags{}

	cmd := &cobra.Command{
		Use:   "list [paths...]",
		Short: "List extension objects and their IDs",
		Long: `List every AL extension object found under the given paths
(default: the current directory), with its category, ID and the object it
extends.

Examples:
  alids list
  alids list src --category pageextension
  alids list --id-from-name --name-from-file --json`,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, flags, args)
		},
	}

	flags.scan.bind(cmd)
	cmd.Flags().StringVar(&flags.category, "category", "",
		"Only list objects of this category (e.g. pageextension)")

	return cmd
}

// runList collects source files, extracts the inventory and prints it.
func runList(cmd *cobra.Command, flags *listFlags, paths []string) error {
	if flags.category != "" {
		if err := model.ValidateCategory(flags.category); err != nil {
			return model.WrapCLIError(model.ExitInvalidArgument, "invalid --category", err)
		}
	}

	settings, err := flags.scan.resolve(cmd)
	if err != nil {
		return err
	}

	files, err := settings.collectFiles(paths)
	if err != nil {
		return err
	}

	VerboseLog("Extracting with %s", describeMode(settings.options))
	result, err := inventory.Run(files, inventory.Options{Extract: settings.options})
	if err != nil {
		return toCLIError("failed to extract extension records", err)
	}
	logUnmatched(result.Unmatched)

	records := filterRecords(result.Records, flags.category)
	VerboseLog("Listing %d extension objects", len(records))

	out := cmd.OutOrStdout()
	if IsJSONOutput() {
		return printListResultJSON(out, records, result.Unmatched)
	}
	printListResultText(out, records)
	return nil
}

// filterRecords keeps records of category; an empty category keeps all.
func filterRecords(records []model.ExtensionRecord, category string) []model.ExtensionRecord {
	if category == "" {
		return records
	}
	filtered := make([]model.ExtensionRecord, 0, len(records))
	for _, r := range records {
		if model.SameCategory(r.Category, category) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// printListResultJSON writes the inventory as structured JSON.
// The top-level keys are "extensions" and "unmatched".
func printListResultJSON(w io.Writer, records []model.ExtensionRecord, unmatched []string) error {
	type resultJSON struct {
		Extensions []model.ExtensionRecord `json:"extensions"`
		Unmatched  []string                `json:"unmatched"`
	}

	// Empty slices instead of nil so the JSON shows [] instead of null.
	result := resultJSON{
		Extensions: records,
		Unmatched:  unmatched,
	}
	if result.Extensions == nil {
		result.Extensions = []model.ExtensionRecord{}
	}
	if result.Unmatched == nil {
		result.Unmatched = []string{}
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode list result: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// printListResultText writes the inventory as an aligned text table.
//
// The table format is:
//
//	CATEGORY         ID      OBJECT              FILE
//	pageextension    50101   Customer Card       src/PEX50101 - Customer Card.al
//	tableextension   50100   Customer            src/TEX50100 - Customer.al
func printListResultText(w io.Writer, records []model.ExtensionRecord) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No extension objects found.")
		return
	}

	fmt.Fprintf(w, "%-20s %-8s %-32s %s\n", "CATEGORY", "ID", "OBJECT", "FILE")
	for _, r := range records {
		fmt.Fprintf(w, "%-20s %-8s %-32s %s\n",
			r.Category,
			strconv.Itoa(r.Identifier),
			orDash(r.ObjectName),
			r.FilePath,
		)
	}
}

// orDash returns "-" for empty strings so table columns stay readable.
func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
