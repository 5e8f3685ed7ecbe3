package main

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
)

// MetricSnapshot is a point-in-time view of host health. TempC of 0 means
// the sensor is unavailable, not that the CPU is cold.
type MetricSnapshot struct {
	TempC          float64
	RAMUsedPercent float64
	Load1          float64
	Uptime         uint64
}

// ReadSnapshot samples the host. Individual sensor failures degrade to
// zero values and never fail the snapshot as a whole.
func ReadSnapshot() MetricSnapshot {
	snap := MetricSnapshot{TempC: readCPUTemp()}

	if v, err := mem.VirtualMemory(); err == nil {
		snap.RAMUsedPercent = round1(v.UsedPercent)
	} else {
		slog.Debug("Could not read RAM info", "err", err)
	}

	if l, err := load.Avg(); err == nil {
		snap.Load1 = l.Load1
	}

	if h, err := host.Info(); err == nil {
		snap.Uptime = h.Uptime
	}

	return snap
}

// sensorPaths returns the ordered temperature sensor candidates; the first
// readable one wins.
func sensorPaths() []string {
	paths := make([]string, 0, 11)
	for i := 0; i < 10; i++ {
		paths = append(paths, fmt.Sprintf("/sys/class/hwmon/hwmon%d/temp1_input", i))
	}
	return append(paths, "/sys/class/thermal/thermal_zone0/temp")
}

// readCPUTemp reads the CPU temperature in Celsius, 0 when no sensor
// is readable. Sysfs reports millidegrees.
func readCPUTemp() float64 {
	for _, path := range sensorPaths() {
		raw, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		val, err := strconv.Atoi(strings.TrimSpace(string(raw)))
		if err != nil {
			slog.Debug("Unparseable temperature reading", "path", path)
			continue
		}
		return float64(val) / 1000.0
	}
	return 0
}

// ScanDisks returns used percent per mount point for physical and mapped
// block devices, excluding container-runtime managed mounts.
func ScanDisks() map[string]float64 {
	usage := make(map[string]float64)

	parts, err := disk.Partitions(true)
	if err != nil {
		slog.Error("Disk scanning error", "err", err)
		return usage
	}

	for _, p := range parts {
		if !monitoredDevice(p.Device) || excludedMount(p.Mountpoint) {
			continue
		}
		if _, seen := usage[p.Mountpoint]; seen {
			continue
		}
		du, err := disk.Usage(p.Mountpoint)
		if err != nil || du.Total == 0 {
			continue
		}
		usage[p.Mountpoint] = round1(du.UsedPercent)
	}

	slog.Info("Disk check completed", "mounts", len(usage))
	return usage
}

// monitoredDevice reports whether the device is a physical or mapped
// block device worth watching.
func monitoredDevice(device string) bool {
	for _, prefix := range []string{"/dev/sd", "/dev/nvme", "/dev/mapper"} {
		if strings.HasPrefix(device, prefix) {
			return true
		}
	}
	return false
}

// excludedMount filters out Docker/Kubernetes specific mount points.
func excludedMount(mount string) bool {
	for _, frag := range []string{"docker", "overlay", "kubelet", "containers"} {
		if strings.Contains(mount, frag) {
			return true
		}
	}
	return false
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
