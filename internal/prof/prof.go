// Package prof wraps the runtime profilers behind start/stop pairs so the
// CLI can hang them on flags. Состояние пакетное, как у runtime/pprof:
// один активный CPU-профиль и один трейс на процесс.
package prof

import (
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
)

var (
	cpuOut   *os.File
	traceOut *os.File
)

// StartCPU begins CPU sampling into the file at path.
func StartCPU(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("start cpu profile: %w", err)
	}
	cpuOut = f
	return nil
}

// StopCPU flushes and closes an active CPU profile; no-op without one.
func StopCPU() {
	if cpuOut == nil {
		return
	}
	pprof.StopCPUProfile()
	_ = cpuOut.Close()
	cpuOut = nil
}

// WriteMem dumps a heap profile to path. Перед снимком — принудительный GC,
// чтобы в профиле остались живые объекты, а не мусор.
func WriteMem(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, closeErr)
		}
	}()
	runtime.GC()
	if err := pprof.WriteHeapProfile(f); err != nil {
		return fmt.Errorf("write heap profile: %w", err)
	}
	return nil
}

// StartTrace begins a runtime execution trace into the file at path.
func StartTrace(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := trace.Start(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("start trace: %w", err)
	}
	traceOut = f
	return nil
}

// StopTrace ends an active runtime trace; no-op without one.
func StopTrace() {
	if traceOut == nil {
		return
	}
	trace.Stop()
	_ = traceOut.Close()
	traceOut = nil
}
