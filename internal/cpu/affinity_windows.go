//go:build windows

package cpu

import (
	"runtime"
	"syscall"
)

var (
	kernel32              = syscall.NewLazyDLL("kernel32.dll")
	setThreadAffinityMask = kernel32.NewProc("SetThreadAffinityMask")
	getCurrentThread      = kernel32.NewProc("GetCurrentThread")
)

func available() int {
	return runtime.NumCPU()
}

// pinToCore pins the current OS thread to one CPU.
// Must be called after runtime.LockOSThread().
func pinToCore(workerID int) (uintptr, error) {
	numCPU := runtime.NumCPU()
	if workerID < 0 {
		workerID = -workerID
	}
	cpuID := workerID % numCPU

	handle, _, _ := getCurrentThread.Call()

	// Bit N = CPU N
	mask := uintptr(1) << uint(cpuID)

	prevMask, _, err := setThreadAffinityMask.Call(handle, mask)
	if prevMask == 0 {
		return 0, err
	}
	return prevMask, nil
}

func setupWorkerAffinity(workerID int) func() {
	runtime.LockOSThread()
	_, _ = pinToCore(workerID)

	return func() {
		runtime.UnlockOSThread()
	}
}
