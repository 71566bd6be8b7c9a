//go:build !linux && !windows

package cpu

import "runtime"

func available() int {
	return runtime.NumCPU()
}

// CPU pinning is not available here; the goroutine is only locked to its thread.
func setupWorkerAffinity(_ int) func() {
	runtime.LockOSThread()

	return func() {
		runtime.UnlockOSThread()
	}
}
