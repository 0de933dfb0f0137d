package system

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/slidewire/slidewire/internal/types"
)

// processName is the PowerPoint executable, compared without its
// extension.
const processName = "powerpnt"

func (p *Provider) host(ctx context.Context) (*types.Result, error) {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return failure(fmt.Sprintf("host info unavailable: %v", err))
	}

	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return failure(fmt.Sprintf("memory info unavailable: %v", err))
	}

	cores, err := cpu.CountsWithContext(ctx, true)
	if err != nil {
		cores = runtime.NumCPU()
	}

	data := map[string]interface{}{
		"hostname":       info.Hostname,
		"os":             info.OS,
		"platform":       info.Platform,
		"platform_ver":   info.PlatformVersion,
		"uptime_seconds": info.Uptime,
		"cores":          cores,
		"memory": map[string]interface{}{
			"total_bytes":     vm.Total,
			"available_bytes": vm.Available,
			"used_percent":    vm.UsedPercent,
		},
		"server": map[string]interface{}{
			"go_version":     runtime.Version(),
			"goroutines":     runtime.NumGoroutine(),
			"uptime_seconds": int64(time.Since(p.startTime).Seconds()),
		},
	}
	return success(data)
}

func (p *Provider) process(ctx context.Context) (*types.Result, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return failure(fmt.Sprintf("process list unavailable: %v", err))
	}

	matches := make([]map[string]interface{}, 0, 1)
	for _, proc := range procs {
		name, err := proc.NameWithContext(ctx)
		if err != nil {
			continue
		}
		if !matchesProcess(name) {
			continue
		}

		entry := map[string]interface{}{
			"pid": proc.Pid,
		}
		if pct, err := proc.CPUPercentWithContext(ctx); err == nil {
			entry["cpu_percent"] = pct
		}
		if mi, err := proc.MemoryInfoWithContext(ctx); err == nil {
			entry["rss_bytes"] = mi.RSS
		}
		if threads, err := proc.NumThreadsWithContext(ctx); err == nil {
			entry["threads"] = threads
		}
		matches = append(matches, entry)
	}

	return success(map[string]interface{}{
		"running":   len(matches) > 0,
		"processes": matches,
		"count":     len(matches),
	})
}

// matchesProcess compares a process name against the PowerPoint
// executable, ignoring case and any file extension.
func matchesProcess(name string) bool {
	name = strings.ToLower(name)
	if idx := strings.LastIndex(name, "."); idx > 0 {
		name = name[:idx]
	}
	return name == processName
}

func (p *Provider) bridgeStats() (*types.Result, error) {
	stats := p.bridge.BridgeStats()
	return success(map[string]interface{}{
		"running":     stats.Running,
		"queue_depth": stats.QueueDepth,
		"in_flight":   stats.InFlight,
		"executed":    stats.Executed,
		"retries":     stats.Retries,
		"dismissals":  stats.Dismissals,
		"timeouts":    stats.Timeouts,
	})
}
