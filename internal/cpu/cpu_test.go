package cpu

import (
	"runtime"
	"sync"
	"testing"
)

func TestAvailable(t *testing.T) {
	n := Available()
	if n < 1 {
		t.Fatalf("expected at least 1 CPU, got %d", n)
	}
	if n > runtime.NumCPU() {
		t.Errorf("available CPUs %d exceeds NumCPU %d", n, runtime.NumCPU())
	}
}

func TestSetupWorkerAffinity(t *testing.T) {
	var wg sync.WaitGroup
	for id := range 2 * Available() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release := SetupWorkerAffinity(id)
			defer release()

			sum := 0
			for i := range 1000 {
				sum += i
			}
			if sum != 499500 {
				t.Errorf("worker %d: unexpected sum %d", id, sum)
			}
		}()
	}
	wg.Wait()
}
