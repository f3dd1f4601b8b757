package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"fstrify/internal/driver"
	"fstrify/internal/fix"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] <file.py>",
	Short: "Apply f-string conversions to a source file",
	Long:  "Scan a Python file for percent-format sites and rewrite the convertible ones in place according to the chosen strategy.",
	Args:  cobra.ExactArgs(1),
	RunE:  runFix,
}

func init() {
	fixCmd.Flags().Bool("all", false, "apply every available conversion")
	fixCmd.Flags().Bool("once", false, "apply the first available conversion (default)")
	fixCmd.Flags().String("id", "", "apply the conversion with a specific identifier")
	fixCmd.Flags().String("lines", "", "restrict to a line range FIRST:LAST (1-based, inclusive)")
	fixCmd.Flags().Bool("dry-run", false, "list conversions without modifying the file")
}

func runFix(cmd *cobra.Command, args []string) error {
	targetPath := args[0]

	applyAll, err := cmd.Flags().GetBool("all")
	if err != nil {
		return err
	}
	applyOnceFlag, err := cmd.Flags().GetBool("once")
	if err != nil {
		return err
	}
	targetID, err := cmd.Flags().GetString("id")
	if err != nil {
		return err
	}
	linesValue, err := cmd.Flags().GetString("lines")
	if err != nil {
		return err
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return err
	}

	if targetID != "" && (applyAll || applyOnceFlag) {
		return fmt.Errorf("--id cannot be combined with --all or --once")
	}
	if applyAll && applyOnceFlag {
		return fmt.Errorf("--all and --once are mutually exclusive")
	}

	firstLine, lastLine, err := parseLineRange(linesValue)
	if err != nil {
		return err
	}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}

	cleanup, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	opts := driver.FixOptions{
		MaxDiagnostics: maxDiagnostics,
		FirstLine:      firstLine,
		LastLine:       lastLine,
		All:            applyAll,
		FixID:          targetID,
		DryRun:         dryRun,
	}

	result, err := driver.FixFile(targetPath, opts)
	if result == nil {
		if err != nil {
			return fmt.Errorf("fix: %w", err)
		}
		return fmt.Errorf("fix: no result for %s", targetPath)
	}

	if dryRun {
		return printDryRun(result)
	}
	return handleApplyResult(result.Apply, err)
}

// printDryRun перечисляет кандидатов без применения.
func printDryRun(result *driver.FixResult) error {
	if len(result.Candidates) == 0 {
		_, err := fmt.Fprintln(os.Stdout, "No applicable fixes found.")
		return err
	}
	_, err := fmt.Fprintf(os.Stdout, "Would apply %d fix(es):\n", len(result.Candidates))
	if err != nil {
		return err
	}
	for idx := range result.Candidates {
		d := &result.Candidates[idx]
		for fixIdx := range d.Fixes {
			_, err = fmt.Fprintf(os.Stdout, "  %s [%s]\n", d.Fixes[fixIdx].Title, fix.FixID(*d, fixIdx))
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func handleApplyResult(res *fix.ApplyResult, applyErr error) error {
	if res == nil {
		return applyErr
	}
	var printErr error

	if len(res.Applied) > 0 {
		_, printErr = fmt.Fprintf(os.Stdout, "Applied %d fix(es):\n", len(res.Applied))
		if printErr != nil {
			return printErr
		}
		for _, item := range res.Applied {
			location := item.Path
			if location == "" {
				location = "(unknown location)"
			}
			_, printErr = fmt.Fprintf(
				os.Stdout,
				"  %s [%s] at %s (%d edits)\n",
				item.Title,
				item.ID,
				location,
				item.EditCount,
			)
			if printErr != nil {
				return printErr
			}
		}
	}

	if len(res.FileChanges) > 0 {
		_, printErr = fmt.Fprintln(os.Stdout, "Updated files:")
		if printErr != nil {
			return printErr
		}
		for _, change := range res.FileChanges {
			_, printErr = fmt.Fprintf(os.Stdout, "  %s (%d edits)\n", change.Path, change.EditCount)
			if printErr != nil {
				return printErr
			}
		}
	}

	if len(res.Skipped) > 0 {
		_, printErr = fmt.Fprintln(os.Stdout, "Skipped fixes:")
		if printErr != nil {
			return printErr
		}
		for _, skip := range res.Skipped {
			id := skip.ID
			if id == "" {
				id = "(unnamed)"
			}
			if skip.Title != "" {
				_, printErr = fmt.Fprintf(os.Stdout, "  %s [%s]: %s\n", skip.Title, id, skip.Reason)
				if printErr != nil {
					return printErr
				}
			} else {
				_, printErr = fmt.Fprintf(os.Stdout, "  [%s]: %s\n", id, skip.Reason)
				if printErr != nil {
					return printErr
				}
			}
		}
	}

	if applyErr != nil {
		if errors.Is(applyErr, fix.ErrNoFixes) && len(res.Applied) == 0 {
			_, printErr = fmt.Fprintln(os.Stdout, "No applicable fixes found.")
			if printErr != nil {
				return printErr
			}
			return nil
		}
		return applyErr
	}

	if len(res.Applied) == 0 {
		_, printErr = fmt.Fprintln(os.Stdout, "No fixes applied.")
		if printErr != nil {
			return printErr
		}
	}
	return nil
}
