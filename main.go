package main

import (
	"context"
	"log/slog"
	"runtime/debug"
	"time"

	"nomadmon/internal/format"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("PANIC", "panic", r, "stack", string(debug.Stack()))
		}
	}()

	setupLogger()
	cfg := LoadConfig()
	app := InitApp(cfg)

	slog.Info("--- Server Monitor Starting ---", "host", cfg.Hostname)

	// Seed the disk cache before the concurrent paths begin so the first
	// report has data even if the first hourly sweep has not run yet.
	app.Disks.Set(app.Scan())

	ctx := context.Background()

	stream := NewContainerEventStream(cfg.DockerSocket, app.Notify)
	go stream.Run(ctx)

	sched := NewScheduler(time.Duration(cfg.CheckIntervalSec)*time.Second, func() {
		runFastCheck(app)
	})
	sched.Add("daily-report", DailyTrigger(cfg.DailyTime), func() { runReport(app, "Daily") })
	sched.Add("weekly-report", WeeklyTrigger(cfg.WeeklyDay, cfg.DailyTime), func() { runReport(app, "Weekly") })
	sched.Add("disk-sweep", HourlyTrigger(), func() { runDiskSweep(app) })

	slog.Info("Monitoring started",
		"interval", format.FormatPeriod(cfg.CheckIntervalSec),
		"daily_report", cfg.DailyTime.String(),
		"weekly_day", cfg.WeeklyDay.String())

	sched.Run(ctx)
}
