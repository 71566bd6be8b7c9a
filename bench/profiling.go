package bench

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/pprof"
)

// SetupProfiling starts CPU profiling and arranges a heap profile, as
// requested. Messages go to w. The returned cleanup stops the CPU profile
// and writes the heap profile; it must be called once the run is done.
func SetupProfiling(w io.Writer, cpuProfile, memProfile string) (func(), error) {
	cleanups := make([]func(), 0, 2)

	if cpuProfile != "" {
		f, err := os.Create(cpuProfile)
		if err != nil {
			return nil, fmt.Errorf("create CPU profile: %w", err)
		}

		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("start CPU profile: %w", err)
		}

		fmt.Fprintf(w, "CPU profiling enabled, writing to: %s\n", cpuProfile)

		cleanups = append(cleanups, func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		})
	}

	if memProfile != "" {
		cleanups = append(cleanups, func() {
			f, err := os.Create(memProfile)
			if err != nil {
				colorFprintf(w, Red, "Error creating memory profile: %v\n", err)
				return
			}
			defer func(f *os.File) {
				err := f.Close()
				if err != nil {
					colorFprintf(w, Red, "Error closing memory profile file: %v\n", err)
				}
			}(f)

			runtime.GC()
			if err := pprof.WriteHeapProfile(f); err != nil {
				colorFprintf(w, Red, "Error writing memory profile: %v\n", err)
				return
			}
			fmt.Fprintf(w, "Memory profile written to: %s\n", memProfile)
		})
	}

	return func() {
		for _, cleanup := range cleanups {
			cleanup()
		}
	}, nil
}
