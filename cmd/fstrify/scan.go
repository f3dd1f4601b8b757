package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"fstrify/internal/diag"
	"fstrify/internal/diagfmt"
	"fstrify/internal/driver"
	"fstrify/internal/scanpipeline"
	"fstrify/internal/source"
)

// cacheAppName задаёт поддиректорию кеша под XDG_CACHE_HOME.
const cacheAppName = "fstrify"

var scanCmd = &cobra.Command{
	Use:   "scan [flags] <file.py|directory>",
	Short: "List percent-format sites in a Python file or directory",
	Long:  `Scan parses Python sources and reports every percent-format site: convertible ones with their f-string replacement, skipped ones with the reason they are left alone`,
	Args:  cobra.ExactArgs(1),
	RunE:  runScan,
}

// init registers CLI flags for the scan command used by runScan.
// It configures output format, line-range restriction, concurrency,
// note/suggestion inclusion, caching, and the progress display.
func init() {
	scanCmd.Flags().String("format", "pretty", "output format (pretty|json|short)")
	scanCmd.Flags().String("lines", "", "restrict to a line range FIRST:LAST (1-based, inclusive)")
	scanCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	scanCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	scanCmd.Flags().Bool("suggest", false, "include f-string replacements in output")
	scanCmd.Flags().Bool("preview", false, "show replacement previews without modifying files")
	scanCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	scanCmd.Flags().Bool("cache", false, "reuse scan results for unchanged files (directories only)")
	scanCmd.Flags().Bool("cache-clear", false, "drop the scan cache before scanning")
	scanCmd.Flags().String("ui", "auto", "progress display for directories (auto|on|off)")
}

// parseLineRange разбирает значение --lines вида "FIRST:LAST".
// Пустая строка означает весь файл (обе границы нулевые).
func parseLineRange(value string) (first, last uint32, err error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, 0, nil
	}
	firstStr, lastStr, found := strings.Cut(trimmed, ":")
	if !found {
		return 0, 0, fmt.Errorf("invalid --lines value %q (expected FIRST:LAST)", value)
	}
	firstParsed, err := strconv.ParseUint(strings.TrimSpace(firstStr), 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid --lines value %q: %w", value, err)
	}
	lastParsed, err := strconv.ParseUint(strings.TrimSpace(lastStr), 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid --lines value %q: %w", value, err)
	}
	if firstParsed < 1 || firstParsed > lastParsed {
		return 0, 0, fmt.Errorf("invalid --lines value %q: range must satisfy 1 <= FIRST <= LAST", value)
	}
	return uint32(firstParsed), uint32(lastParsed), nil
}

// runScan executes the "scan" command: it parses flags, scans the provided
// path (single file or directory), prints the site diagnostics in the chosen
// format, and exits with a non-zero status when any diagnostics contain
// errors.
func runScan(cmd *cobra.Command, args []string) error {
	targetPath := args[0]

	// Получаем флаги
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	linesValue, err := cmd.Flags().GetString("lines")
	if err != nil {
		return fmt.Errorf("failed to get lines flag: %w", err)
	}

	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}

	suggest, err := cmd.Flags().GetBool("suggest")
	if err != nil {
		return fmt.Errorf("failed to get suggest flag: %w", err)
	}

	preview, err := cmd.Flags().GetBool("preview")
	if err != nil {
		return fmt.Errorf("failed to get preview flag: %w", err)
	}

	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}

	useCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return fmt.Errorf("failed to get cache flag: %w", err)
	}

	cacheClear, err := cmd.Flags().GetBool("cache-clear")
	if err != nil {
		return fmt.Errorf("failed to get cache-clear flag: %w", err)
	}

	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}

	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}

	firstLine, lastLine, err := parseLineRange(linesValue)
	if err != nil {
		return err
	}

	uiModeValue, err := readUIMode(uiValue)
	if err != nil {
		return err
	}

	switch format {
	case "pretty", "json", "short":
		// supported
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if cacheClear {
		cache, err := driver.OpenDiskCache(cacheAppName)
		if err != nil {
			return fmt.Errorf("failed to open scan cache: %w", err)
		}
		if err := cache.DropAll(); err != nil {
			return fmt.Errorf("failed to clear scan cache: %w", err)
		}
	}

	scanOpts := driver.ScanOptions{
		MaxDiagnostics: maxDiagnostics,
		FirstLine:      firstLine,
		LastLine:       lastLine,
		EnableTimings:  showTimings,
	}

	st, err := os.Stat(targetPath)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	cleanup, err := setupProfiling(cmd)
	if err != nil {
		return err
	}

	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return err
	}
	useColor := colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stdout))
	pathMode := diagfmt.PathModeAuto
	if fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}
	showFixes := suggest || preview
	prettyOpts := diagfmt.PrettyOpts{
		Color:       useColor,
		Context:     2,
		PathMode:    pathMode,
		ShowNotes:   withNotes,
		ShowFixes:   showFixes,
		ShowPreview: preview,
	}
	jsonOpts := diagfmt.JSONOpts{
		IncludePositions: true,
		PathMode:         pathMode,
		IncludeNotes:     withNotes,
		IncludeFixes:     showFixes,
		IncludePreviews:  preview,
	}

	runFile := func() (int, error) {
		result, err := driver.ScanFile(targetPath, scanOpts)
		if err != nil {
			return 0, fmt.Errorf("scan failed: %w", err)
		}

		exit := 0
		if result.Bag.HasErrors() {
			exit = 1
		}

		switch format {
		case "pretty":
			diagfmt.Pretty(os.Stdout, result.Bag, result.FileSet, prettyOpts)
		case "short":
			output := diag.FormatShortDiagnostics(result.Bag.Items(), result.FileSet, withNotes)
			if output != "" {
				fmt.Fprintln(os.Stdout, output)
			}
		case "json":
			if err := diagfmt.JSON(os.Stdout, result.Bag, result.FileSet, jsonOpts); err != nil {
				return 0, fmt.Errorf("failed to format diagnostics: %w", err)
			}
		}

		return exit, nil
	}

	runDir := func() (int, error) {
		jobs, err := cmd.Flags().GetInt("jobs")
		if err != nil {
			return 0, fmt.Errorf("failed to get jobs flag: %w", err)
		}

		dirOpts := driver.ScanDirOptions{
			Scan: scanOpts,
			Jobs: jobs,
		}
		if useCache {
			cache, err := driver.OpenDiskCache(cacheAppName)
			if err != nil {
				return 0, fmt.Errorf("failed to open scan cache: %w", err)
			}
			dirOpts.Cache = cache
		}
		var timings scanpipeline.Timings
		if showTimings {
			dirOpts.Timings = &timings
		}

		// TUI рисует в stdout, поэтому включаем его только для pretty.
		useTUI := shouldUseTUI(uiModeValue) && format == "pretty" && !quiet

		var (
			fs      *source.FileSet
			results []driver.ScanDirResult
		)
		if useTUI {
			fs, results, err = runScanWithUI(cmd.Context(), "fstrify scan", targetPath, dirOpts)
		} else {
			fs, results, err = driver.ScanDir(cmd.Context(), targetPath, dirOpts)
		}
		if err != nil {
			return 0, fmt.Errorf("scan failed: %w", err)
		}

		exit := 0
		for _, r := range results {
			if r.Bag.HasErrors() {
				exit = 1
				break
			}
		}

		switch format {
		case "short":
			allDiagnostics := make([]diag.Diagnostic, 0, len(results))
			for _, r := range results {
				allDiagnostics = append(allDiagnostics, r.Bag.Items()...)
			}
			output := diag.FormatShortDiagnostics(allDiagnostics, fs, withNotes)
			if output != "" {
				fmt.Fprintln(os.Stdout, output)
			}
		case "pretty":
			for idx, r := range results {
				if idx > 0 {
					fmt.Fprintln(os.Stdout)
				}
				fmt.Fprintf(os.Stdout, "== %s ==\n", displayResultPath(fs, r, fullPath))
				diagfmt.Pretty(os.Stdout, r.Bag, fs, prettyOpts)
			}
		case "json":
			output := make(map[string]diagfmt.DiagnosticsOutput, len(results))
			for _, r := range results {
				output[displayResultPath(fs, r, fullPath)] = diagfmt.BuildDiagnosticsOutput(r.Bag, fs, jsonOpts)
			}
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(output); err != nil {
				return 0, fmt.Errorf("failed to encode diagnostics output: %w", err)
			}
		}

		if showTimings {
			printStageTimings(os.Stderr, timings)
		}

		return exit, nil
	}

	var (
		exitCode  int
		resultErr error
	)
	if !st.IsDir() {
		exitCode, resultErr = runFile()
	} else {
		exitCode, resultErr = runDir()
	}

	// Always cleanup profiler
	cleanup()

	if resultErr != nil {
		return resultErr
	}
	if exitCode != 0 {
		return silentExit(cmd)
	}
	return nil
}

// displayResultPath резолвит путь результата для заголовков и ключей JSON.
func displayResultPath(fs *source.FileSet, r driver.ScanDirResult, fullPath bool) string {
	if r.FileID != 0 {
		if file := fs.Get(r.FileID); file != nil {
			mode := "auto"
			if fullPath {
				mode = "absolute"
			}
			return file.FormatPath(mode, fs.BaseDir())
		}
	}
	if fullPath {
		if abs, err := source.AbsolutePath(r.Path); err == nil {
			return abs
		}
	}
	return r.Path
}
