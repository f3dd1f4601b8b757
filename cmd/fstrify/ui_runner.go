package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"fstrify/internal/driver"
	"fstrify/internal/scanpipeline"
	"fstrify/internal/source"
	"fstrify/internal/ui"
)

type scanOutcome struct {
	fileSet *source.FileSet
	results []driver.ScanDirResult
	err     error
}

// runScanWithUI runs the directory scan with a live progress display. The
// scan itself runs in a goroutine and streams events into the Bubble Tea
// model; the scan outcome is returned once both have finished. An empty
// directory skips the display entirely.
func runScanWithUI(ctx context.Context, title, dir string, opts driver.ScanDirOptions) (*source.FileSet, []driver.ScanDirResult, error) {
	files, err := driver.ListPyFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	if len(files) == 0 {
		return driver.ScanDir(ctx, dir, opts)
	}

	events := make(chan scanpipeline.Event, 256)
	outcomeCh := make(chan scanOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = scanpipeline.ChannelSink{Ch: events}
		fileSet, results, err := driver.ScanDir(ctx, dir, optsCopy)
		outcomeCh <- scanOutcome{fileSet: fileSet, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fileSet, outcome.results, uiErr
	}
	return outcome.fileSet, outcome.results, outcome.err
}
