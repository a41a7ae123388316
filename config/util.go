package config

import "runtime"

// DefaultWorkers is the hasher pool size used when none is configured.
func DefaultWorkers() int {
	n := runtime.NumCPU()
	if n < 1 {
		return 1
	}
	return n
}
