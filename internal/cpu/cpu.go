// Package cpu reports how many CPUs the process may run on and pins worker
// goroutines to them.
package cpu

// Available returns the number of logical CPUs this process may be scheduled
// on. It is never less than 1.
func Available() int {
	return max(available(), 1)
}

// SetupWorkerAffinity locks the calling goroutine to its OS thread and, where
// the platform allows, pins that thread to one CPU chosen by workerID.
// The returned function unlocks the thread and must be deferred.
func SetupWorkerAffinity(workerID int) func() {
	return setupWorkerAffinity(workerID)
}
