//go:build linux

package cpu

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// allowedCPUs returns the CPU ids in the process affinity mask.
func allowedCPUs() []int {
	var mask unix.CPUSet
	if err := unix.SchedGetaffinity(0, &mask); err != nil {
		return nil
	}

	ids := make([]int, 0, mask.Count())
	for id := 0; len(ids) < mask.Count(); id++ {
		if mask.IsSet(id) {
			ids = append(ids, id)
		}
	}
	return ids
}

func available() int {
	if ids := allowedCPUs(); len(ids) > 0 {
		return len(ids)
	}
	return runtime.NumCPU()
}

// pinToCore pins the current OS thread to the workerID-th allowed CPU.
// Must be called after runtime.LockOSThread().
func pinToCore(workerID int) (int, error) {
	ids := allowedCPUs()
	if len(ids) == 0 {
		return -1, nil
	}
	if workerID < 0 {
		workerID = -workerID
	}
	cpuID := ids[workerID%len(ids)]

	var mask unix.CPUSet
	mask.Zero()
	mask.Set(cpuID)

	if err := unix.SchedSetaffinity(0, &mask); err != nil { // 0 = current thread
		return -1, err
	}
	return cpuID, nil
}

// setupWorkerAffinity restores the thread's previous mask on release so the
// runtime does not reuse a pinned thread for unrelated goroutines.
func setupWorkerAffinity(workerID int) func() {
	runtime.LockOSThread()

	var prev unix.CPUSet
	saved := unix.SchedGetaffinity(0, &prev) == nil
	_, _ = pinToCore(workerID)

	return func() {
		if saved {
			_ = unix.SchedSetaffinity(0, &prev)
		}
		runtime.UnlockOSThread()
	}
}
