// Package sysmon provides host and process resource sampling for the live
// dashboard. While a panel of experts is in flight the interesting load is
// network wait, so the snapshot also carries the goroutine count as a cheap
// proxy for outstanding work.
package sysmon

import (
	"runtime"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Stats holds a single snapshot of resource usage.
type Stats struct {
	CPUPercent float64 // 0.0 .. 100.0, system-wide
	MemPercent float64 // 0.0 .. 100.0, system-wide
	Goroutines int     // goroutines in this process
}

// Sample collects a single snapshot. CPU uses interval=0 (delta since last
// call). System-wide values fall back to zero on error.
func Sample() Stats {
	s := Stats{Goroutines: runtime.NumGoroutine()}
	cpuPcts, err := cpu.Percent(0, false)
	if err == nil && len(cpuPcts) > 0 {
		s.CPUPercent = cpuPcts[0]
	}
	vmem, err := mem.VirtualMemory()
	if err == nil && vmem != nil {
		s.MemPercent = vmem.UsedPercent
	}
	return s
}
