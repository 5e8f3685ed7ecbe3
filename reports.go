package main

import (
	"fmt"
	"strings"

	"nomadmon/internal/format"
)

// runReport sends a summary status notification. The disk section reads
// the cached scan from the last sweep, not a fresh one.
func runReport(app *AppContext, kind string) {
	snap := app.Sample()
	app.Notify.Publish(Notification{
		Title:    kind + " Status",
		Body:     buildReport(snap, app.Disks.Get()),
		Priority: 3,
		Tags:     []string{"calendar"},
	})
}

// buildReport renders the summary body. An unavailable temperature is
// rendered as N/A rather than 0.
func buildReport(snap MetricSnapshot, disks map[string]float64) string {
	var b strings.Builder

	b.WriteString("Status: Operational\n")
	if snap.TempC > 0 {
		b.WriteString(fmt.Sprintf("Temp: %gC\n", snap.TempC))
	} else {
		b.WriteString("Temp: N/A\n")
	}
	b.WriteString(fmt.Sprintf("RAM: %g%%\n", snap.RAMUsedPercent))
	b.WriteString(fmt.Sprintf("Load: %.2f\n", snap.Load1))
	b.WriteString(fmt.Sprintf("Uptime: %s\n", format.FormatUptime(snap.Uptime)))

	b.WriteString("\nDisks:\n")
	if len(disks) == 0 {
		b.WriteString("None detected")
		return b.String()
	}
	for i, mount := range sortedMounts(disks) {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(fmt.Sprintf("- %s: %g%%", mount, disks[mount]))
	}
	return b.String()
}
