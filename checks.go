package main

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
)

// runFastCheck samples the host and raises one combined critical alert
// listing every violated metric, or logs a health line when all is well.
func runFastCheck(app *AppContext) {
	snap := app.Sample()
	issues := EvaluateSnapshot(snap, app.Config.Thresholds())

	if len(issues) > 0 {
		app.Notify.Publish(Notification{
			Title:    "CRITICAL ALERT",
			Body:     strings.Join(issues, "\n"),
			Priority: 5,
			Tags:     []string{"fire", "warning"},
		})
		return
	}

	slog.Info("Health OK",
		"temp_c", snap.TempC,
		"ram_pct", snap.RAMUsedPercent,
		"load1", fmt.Sprintf("%.2f", snap.Load1))
}

// runDiskSweep performs a full disk scan, replaces the cached scan, and
// raises one warning per mount over the limit. Mounts are visited in
// sorted order so alert order is deterministic.
func runDiskSweep(app *AppContext) {
	usage := app.Scan()
	app.Disks.Set(usage)

	for _, mount := range sortedMounts(usage) {
		used := usage[mount]
		if used < float64(app.Config.DiskLimit) {
			continue
		}
		app.Notify.Publish(Notification{
			Title:    "STORAGE ALERT",
			Body:     fmt.Sprintf("Low Space on %s: %g%%", mount, used),
			Priority: 4,
			Tags:     []string{"floppy_disk"},
		})
	}
}

func sortedMounts(usage map[string]float64) []string {
	mounts := make([]string, 0, len(usage))
	for mount := range usage {
		mounts = append(mounts, mount)
	}
	sort.Strings(mounts)
	return mounts
}
