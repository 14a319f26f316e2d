// Package cli is the alids command line: list prints the extension
// inventory, free reports unused object IDs and next suggests one ID for a
// new object.
//
// Source discovery, .alids.yml and app.json handling shared by the three
// commands live in scan.go. This file holds the root command, exit-code
// mapping and the stderr reporting used by all of them.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/alids/internal/model"
)

// Persistent flags of the root command.
var (
	// jsonOutput switches inventories, free lists and errors to JSON.
	jsonOutput bool

	// verbose reports config, manifest and unmatched files on stderr.
	verbose bool

	// configPath is an explicit .alids.yml path. Empty means look in the
	// current directory.
	configPath string
)

// Build metadata, copied in by cmd/alids from its ldflags variables.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// NewRootCommand builds the alids command tree. The root only carries help
// text and the --json, --verbose and --config flags.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "alids",
		Short: "Inventory of AL extension object IDs",
		Long: `alids scans AL source files, lists the extension objects they declare
(pageextension, tableextension, ...) and reports the object IDs that are
still free in each category.

Free IDs are either the holes between the IDs already in use, or, with
--ranges, every unused ID inside the ranges declared in app.json.`,

		// Errors are printed by Execute, as text or JSON.
		SilenceUsage:  true,
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),
	}

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to .alids.yml (default: ./.alids.yml if present)")

	rootCmd.AddCommand(NewListCommand())
	rootCmd.AddCommand(NewFreeCommand())
	rootCmd.AddCommand(NewNextCommand())

	return rootCmd
}

// Execute runs rootCmd and exits with the code of the failure: 2 for bad
// arguments or settings, 3 when app.json is missing, 4 when the ID ranges are
// exhausted and 1 for anything else, such as an unreadable source file.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		var cliErr *model.CLIError
		if errors.As(err, &cliErr) {
			printError(cliErr.Message, cliErr.Err)
			os.Exit(int(cliErr.Code))
		}

		printError(err.Error(), nil)
		os.Exit(int(model.ExitGeneralError))
	}
}

// toCLIError maps domain sentinel errors to CLIErrors with the matching
// exit code. Errors that already are CLIErrors pass through unchanged.
func toCLIError(message string, err error) error {
	if err == nil {
		return nil
	}

	var cliErr *model.CLIError
	if errors.As(err, &cliErr) {
		return err
	}

	switch {
	case errors.Is(err, model.ErrInvalidArgument):
		return model.WrapCLIError(model.ExitInvalidArgument, message, err)
	case errors.Is(err, model.ErrNoFreeID):
		return model.WrapCLIError(model.ExitNoFreeID, message, err)
	default:
		return model.WrapCLIError(model.ExitGeneralError, message, err)
	}
}

// printError writes a failed scan or allocation to stderr, as
// {"error":{"message","detail"}} under --json.
func printError(message string, underlying error) {
	if jsonOutput {
		errObj := map[string]interface{}{
			"error": map[string]interface{}{
				"message": message,
			},
		}
		if underlying != nil {
			if errMap, ok := errObj["error"].(map[string]interface{}); ok {
				errMap["detail"] = underlying.Error()
			}
		}
		// stdout stays parseable for list/free/next output.
		data, _ := json.MarshalIndent(errObj, "", "  ")
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		if underlying != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", message, underlying)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %s\n", message)
		}
	}
}

// VerboseLog prints a "[verbose]" line to stderr when --verbose is set. The
// core packages never log; commands report what they resolved through this.
func VerboseLog(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[verbose] "+format+"\n", args...)
	}
}

// IsJSONOutput reports whether --json is set.
func IsJSONOutput() bool {
	return jsonOutput
}
