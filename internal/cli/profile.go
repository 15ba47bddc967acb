package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"lsbmark/internal/logging"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"sync"
	"time"
)

var (
	// MemorySampleRate How often to dump the memory to a file in HZ. Values of less than 1 are recommended to avoid
	// having to sort through too many dump files
	MemorySampleRate = 0.5

	profilersMu sync.Mutex
	cpuProfiler *CPUProfilerStruct
	memProfiler *MemProfilerStruct
)

type CPUProfilerStruct struct {
	profileOutput io.WriteCloser
}

type MemProfilerStruct struct {
	dumpPath           string
	heapDumps          [][]byte
	dumpsMu            sync.Mutex
	shouldProfilerStop chan struct{}
	stopped            chan struct{}
}

// StartProfilers starts the CPU and memory profilers for the non empty arguments
func StartProfilers(cpuProfile, memProfileDir string) error {
	if cpuProfile != "" {
		cpuProfileFile, err := os.Create(cpuProfile)
		if err != nil {
			return fmt.Errorf("create cpu profile: %w", err)
		}
		if err = StartCPUProfiler(cpuProfileFile); err != nil {
			cpuProfileFile.Close()
			return err
		}
	}
	if memProfileDir != "" {
		StartMemoryProfiler(memProfileDir)
	}
	return nil
}

// StopProfilers flushes whatever profilers are running. It is safe to call more than once
func StopProfilers() error {
	return errors.Join(StopCPUProfiler(), StopMemoryProfiler())
}

func StartCPUProfiler(profileOutput io.WriteCloser) error {
	profilersMu.Lock()
	defer profilersMu.Unlock()

	runtime.SetCPUProfileRate(500)
	if err := pprof.StartCPUProfile(profileOutput); err != nil {
		return fmt.Errorf("start cpu profiler: %w", err)
	}
	cpuProfiler = &CPUProfilerStruct{profileOutput: profileOutput}
	return nil
}

func StopCPUProfiler() error {
	profilersMu.Lock()
	defer profilersMu.Unlock()

	if cpuProfiler == nil {
		return nil
	}
	pprof.StopCPUProfile()
	err := cpuProfiler.profileOutput.Close()
	cpuProfiler = nil
	return err
}

func StartMemoryProfiler(profileDumpPath string) {
	if MemorySampleRate <= 0 {
		return
	}

	profilersMu.Lock()
	defer profilersMu.Unlock()

	profiler := &MemProfilerStruct{
		dumpPath:           profileDumpPath,
		shouldProfilerStop: make(chan struct{}),
		stopped:            make(chan struct{}),
	}
	memProfiler = profiler

	go func() {
		defer close(profiler.stopped)
		ticker := time.NewTicker(time.Duration((1/MemorySampleRate)*1000) * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-profiler.shouldProfilerStop:
				return
			case <-ticker.C:
				profiler.dump()
			}
		}
	}()
}

func (m *MemProfilerStruct) dump() {
	w := bytes.NewBuffer(nil)
	if err := pprof.WriteHeapProfile(w); err != nil {
		logging.BuildLogger().WithError(err).Warn("Error taking heap profile")
		return
	}
	m.dumpsMu.Lock()
	m.heapDumps = append(m.heapDumps, w.Bytes())
	m.dumpsMu.Unlock()
}

func StopMemoryProfiler() error {
	profilersMu.Lock()
	profiler := memProfiler
	memProfiler = nil
	profilersMu.Unlock()

	if profiler == nil {
		return nil
	}

	close(profiler.shouldProfilerStop)
	<-profiler.stopped
	profiler.dump()

	if err := os.MkdirAll(profiler.dumpPath, 0o755); err != nil {
		return fmt.Errorf("create memory profile dir: %w", err)
	}
	var errs []error
	for dIdx, dump := range profiler.heapDumps {
		err := os.WriteFile(filepath.Join(profiler.dumpPath, fmt.Sprintf("mem-%d.mprof", dIdx)), dump, 0o644)
		if err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		logging.BuildLogger().WithError(errs[0]).Error("Error writing memory profile to disk")
	}
	return errors.Join(errs...)
}
