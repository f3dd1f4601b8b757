package main

import (
	"fmt"
	"io"
	"time"

	"fstrify/internal/scanpipeline"
)

// printStageTimings выводит длительности фаз обхода директории.
func printStageTimings(out io.Writer, timings scanpipeline.Timings) {
	if out == nil {
		return
	}
	if timings.Has(scanpipeline.StageLoad) {
		fmt.Fprintf(out, "loaded %.1f ms\n", toMillis(timings.Duration(scanpipeline.StageLoad)))
	}
	if timings.Has(scanpipeline.StageScan) {
		fmt.Fprintf(out, "scanned %.1f ms\n", toMillis(timings.Duration(scanpipeline.StageScan)))
	}
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
