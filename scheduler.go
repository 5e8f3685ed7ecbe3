package main

import (
	"context"
	"log/slog"
	"runtime/debug"
	"time"
)

// TriggerKind selects how a task's firing times are derived.
type TriggerKind int

const (
	TriggerHourly TriggerKind = iota
	TriggerDaily
	TriggerWeekly
)

// Trigger is an explicit recurrence rule evaluated against wall-clock
// local time. Matching yields an occurrence key so a task fires at most
// once per calendar occurrence even when several ticks fall inside the
// same trigger minute.
type Trigger struct {
	Kind    TriggerKind
	Weekday time.Weekday // weekly only
	At      TimePoint    // daily and weekly
}

func HourlyTrigger() Trigger {
	return Trigger{Kind: TriggerHourly}
}

func DailyTrigger(at TimePoint) Trigger {
	return Trigger{Kind: TriggerDaily, At: at}
}

func WeeklyTrigger(day time.Weekday, at TimePoint) Trigger {
	return Trigger{Kind: TriggerWeekly, Weekday: day, At: at}
}

// occurrence reports whether the trigger matches now, and the key
// identifying this calendar occurrence.
func (t Trigger) occurrence(now time.Time) (string, bool) {
	switch t.Kind {
	case TriggerHourly:
		return now.Format("2006-01-02T15"), true
	case TriggerDaily:
		return now.Format("2006-01-02"), now.Hour() == t.At.Hour && now.Minute() == t.At.Minute
	case TriggerWeekly:
		return now.Format("2006-01-02"), now.Weekday() == t.Weekday && now.Hour() == t.At.Hour && now.Minute() == t.At.Minute
	}
	return "", false
}

// Task is a named recurring action.
type Task struct {
	Name    string
	Trigger Trigger
	Run     func()

	lastFired string
}

// Scheduler drives all time-based behavior from a single sequential loop.
// Every tick runs the fast check first, then any calendar tasks due for an
// occurrence they have not fired for yet. Ticks never overlap.
type Scheduler struct {
	interval  time.Duration
	fastCheck func()
	tasks     []*Task

	now func() time.Time
}

func NewScheduler(interval time.Duration, fastCheck func()) *Scheduler {
	return &Scheduler{
		interval:  interval,
		fastCheck: fastCheck,
		now:       time.Now,
	}
}

func (s *Scheduler) Add(name string, trigger Trigger, run func()) {
	s.tasks = append(s.tasks, &Task{Name: name, Trigger: trigger, Run: run})
}

// Run loops until the context is cancelled. The process has no graceful
// shutdown path; the context exists so tests can stop the loop.
func (s *Scheduler) Run(ctx context.Context) {
	// Hourly tasks wait out the rest of the current hour before their
	// first firing, matching interval semantics rather than firing
	// immediately on the first tick.
	start := s.now()
	for _, task := range s.tasks {
		if task.Trigger.Kind == TriggerHourly {
			task.lastFired, _ = task.Trigger.occurrence(start)
		}
	}

	for {
		s.Tick()
		if !sleepWithContext(ctx, s.interval) {
			return
		}
	}
}

// Tick executes one scheduler pass. A panic inside a check or task is
// logged and absorbed here so a single bad pass never halts monitoring.
func (s *Scheduler) Tick() {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Error in main loop", "panic", r, "stack", string(debug.Stack()))
		}
	}()

	s.fastCheck()
	s.runPending(s.now())
}

func (s *Scheduler) runPending(now time.Time) {
	for _, task := range s.tasks {
		key, due := task.Trigger.occurrence(now)
		if !due || key == task.lastFired {
			continue
		}
		task.lastFired = key
		task.Run()
	}
}

// sleepWithContext sleeps for d unless the context ends first; it reports
// whether the full sleep elapsed.
func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
