package toolchain

import (
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
)

// ParallelJobs returns the build parallelism hint: the number of logical
// CPUs, falling back to the Go runtime's view and finally to 1 when the
// host count cannot be determined.
func ParallelJobs() int {
	n, err := cpu.Counts(true)
	if err != nil || n < 1 {
		n = runtime.NumCPU()
	}
	if n < 1 {
		n = 1
	}
	return n
}
