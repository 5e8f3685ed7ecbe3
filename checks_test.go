package main

import (
	"strings"
	"testing"
)

func TestFastCheckHighRAM(t *testing.T) {
	ch := &fakeChannel{}
	app := newTestApp(ch)
	app.Sample = func() MetricSnapshot {
		return MetricSnapshot{TempC: 0, RAMUsedPercent: 95, Load1: 1.2}
	}

	runFastCheck(app)

	if len(ch.sent) != 1 {
		t.Fatalf("dispatched %d alerts, want exactly 1", len(ch.sent))
	}
	n := ch.sent[0]
	if n.Title != "CRITICAL ALERT" {
		t.Errorf("title = %q, want %q", n.Title, "CRITICAL ALERT")
	}
	if !strings.Contains(n.Body, "High RAM Usage: 95%") {
		t.Errorf("body = %q, want RAM violation text", n.Body)
	}
	if strings.Contains(n.Body, "Overheat") {
		t.Errorf("body = %q, temp=0 must not produce a temperature violation", n.Body)
	}
	if n.Priority != 5 {
		t.Errorf("priority = %d, want 5", n.Priority)
	}
}

func TestFastCheckCombinesViolations(t *testing.T) {
	ch := &fakeChannel{}
	app := newTestApp(ch)
	app.Sample = func() MetricSnapshot {
		return MetricSnapshot{TempC: 90, RAMUsedPercent: 95}
	}

	runFastCheck(app)

	if len(ch.sent) != 1 {
		t.Fatalf("dispatched %d alerts, want one combined alert", len(ch.sent))
	}
	body := ch.sent[0].Body
	tempIdx := strings.Index(body, "CPU Overheat")
	ramIdx := strings.Index(body, "High RAM Usage")
	if tempIdx < 0 || ramIdx < 0 || tempIdx > ramIdx {
		t.Errorf("body = %q, want temperature violation before RAM violation", body)
	}
}

func TestFastCheckHealthyIsQuiet(t *testing.T) {
	ch := &fakeChannel{}
	app := newTestApp(ch)
	app.Sample = func() MetricSnapshot {
		return MetricSnapshot{TempC: 45, RAMUsedPercent: 30, Load1: 12.5}
	}

	runFastCheck(app)

	if len(ch.sent) != 0 {
		t.Fatalf("dispatched %d alerts for a healthy host, want 0", len(ch.sent))
	}
}

func TestDiskSweepAlertsPerOffendingMount(t *testing.T) {
	ch := &fakeChannel{}
	app := newTestApp(ch)
	app.Scan = func() map[string]float64 {
		return map[string]float64{"/data": 95.0, "/": 40.0}
	}

	runDiskSweep(app)

	if len(ch.sent) != 1 {
		t.Fatalf("dispatched %d alerts, want exactly 1", len(ch.sent))
	}
	n := ch.sent[0]
	if n.Title != "STORAGE ALERT" {
		t.Errorf("title = %q, want %q", n.Title, "STORAGE ALERT")
	}
	if !strings.Contains(n.Body, "/data") || !strings.Contains(n.Body, "95%") {
		t.Errorf("body = %q, want mount and usage", n.Body)
	}
	if n.Priority != 4 {
		t.Errorf("priority = %d, want 4", n.Priority)
	}
}

func TestDiskSweepOneAlertPerMountNotBatched(t *testing.T) {
	ch := &fakeChannel{}
	app := newTestApp(ch)
	app.Scan = func() map[string]float64 {
		return map[string]float64{"/data": 95.0, "/backup": 91.5}
	}

	runDiskSweep(app)

	if len(ch.sent) != 2 {
		t.Fatalf("dispatched %d alerts, want one per offending mount", len(ch.sent))
	}
	// Sorted mount order keeps alert order deterministic.
	if !strings.Contains(ch.sent[0].Body, "/backup") || !strings.Contains(ch.sent[1].Body, "/data") {
		t.Errorf("alert order = [%q, %q]", ch.sent[0].Body, ch.sent[1].Body)
	}
}

func TestDiskSweepReplacesCachedScan(t *testing.T) {
	ch := &fakeChannel{}
	app := newTestApp(ch)
	app.Disks.Set(map[string]float64{"/old": 10})
	app.Scan = func() map[string]float64 {
		return map[string]float64{"/new": 20}
	}

	runDiskSweep(app)

	got := app.Disks.Get()
	if _, stale := got["/old"]; stale {
		t.Error("cached scan still holds stale mount after sweep")
	}
	if got["/new"] != 20 {
		t.Errorf("cached scan = %v, want the fresh result", got)
	}
}

func TestDiskStateGetReturnsCopy(t *testing.T) {
	d := &DiskState{}
	d.Set(map[string]float64{"/data": 50})

	snapshot := d.Get()
	snapshot["/data"] = 99

	if d.Get()["/data"] != 50 {
		t.Error("mutating a Get() result leaked into shared state")
	}
}
