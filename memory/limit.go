package memory

import (
	"github.com/shirou/gopsutil/mem"
	"massnet.org/shasum/logging"
)

// SystemLimit returns the memory currently available to the process, the
// natural cap for a region. It falls back to the address space when the
// platform cannot report it.
func SystemLimit() uint64 {
	stat, err := mem.VirtualMemory()
	if err != nil || stat.Available == 0 {
		logging.VPrint(logging.WARN, "cannot read available memory", logging.LogFormat{"err": err})
		return uint64(maxInt)
	}
	return stat.Available
}
