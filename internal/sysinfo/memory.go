// Package sysinfo exposes the host memory readout shown in the sidebar. It
// is informational only and not part of the analysis path.
package sysinfo

import (
	"fmt"

	"github.com/shirou/gopsutil/v3/mem"
)

// MemoryUsedPercent reports the host's used virtual memory as a percentage.
func MemoryUsedPercent() (float64, error) {
	v, err := mem.VirtualMemory()
	if err != nil {
		return 0, fmt.Errorf("read virtual memory: %w", err)
	}
	return v.UsedPercent, nil
}
