// Package cli — next.go implements the "alids next" command.
//
// The next command suggests the lowest unused object ID for a category
// inside the idRanges of app.json, so a developer can create a new
// extension object without scanning the inventory by hand.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/alids/internal/gap"
	"github.com/shinji-kodama/alids/internal/inventory"
	"github.com/shinji-kodama/alids/internal/model"
)

// nextFlags holds the flag values for the next command.
type nextFlags struct {
	scan scanFlags
}

// NewNextCommand creates the "next" cobra command.
func NewNextCommand() *cobra.Command {
	flags := &nextFlags{}

	cmd := &cobra.Command{
		Use:   "next <category> [paths...]",
		Short: "Suggest the next free ID for a category",
		Long: `Print the lowest object ID inside the idRanges of app.json that no
extension of the given category uses yet.

Exits with code 4 when the ranges are exhausted.

Examples:
  alids next pageextension
  alids next tableextension src --json`,

		Args: cobra.MinimumNArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runNext(cmd, flags, args[0], args[1:])
		},
	}

	flags.scan.bind(cmd)

	return cmd
}

// runNext loads app.json, extracts the inventory and prints the suggestion.
func runNext(cmd *cobra.Command, flags *nextFlags, category string, paths []string) error {
	if err := model.ValidateCategory(category); err != nil {
		return model.WrapCLIError(model.ExitInvalidArgument, "invalid category", err)
	}

	settings, err := flags.scan.resolve(cmd)
	if err != nil {
		return err
	}

	m, err := settings.loadManifest(paths)
	if err != nil {
		return toCLIError("failed to load app.json", err)
	}

	files, err := settings.collectFiles(paths)
	if err != nil {
		return err
	}

	result, err := inventory.Run(files, inventory.Options{Extract: settings.options})
	if err != nil {
		return toCLIError("failed to extract extension records", err)
	}
	logUnmatched(result.Unmatched)

	entry, err := gap.NextFree(result.Records, m.Ranges(), category)
	if err != nil {
		return toCLIError(fmt.Sprintf("no free ID for %s", category), err)
	}

	out := cmd.OutOrStdout()
	if IsJSONOutput() {
		return printNextResultJSON(out, entry)
	}
	fmt.Fprintln(out, entry.Identifier)
	return nil
}

// printNextResultJSON writes the suggestion as a single JSON object.
func printNextResultJSON(w io.Writer, entry model.FreeIDEntry) error {
	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode next result: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
