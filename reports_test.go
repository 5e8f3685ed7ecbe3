package main

import (
	"strings"
	"testing"
)

func TestBuildReport(t *testing.T) {
	snap := MetricSnapshot{TempC: 52, RAMUsedPercent: 34.5, Load1: 0.42, Uptime: 2*86400 + 3600}
	disks := map[string]float64{"/data": 95, "/": 40.1}

	got := buildReport(snap, disks)

	for _, want := range []string{
		"Status: Operational",
		"Temp: 52C",
		"RAM: 34.5%",
		"Load: 0.42",
		"Uptime: 2d1h",
		"- /: 40.1%",
		"- /data: 95%",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("report missing %q:\n%s", want, got)
		}
	}

	// Sorted mount order.
	if strings.Index(got, "- /:") > strings.Index(got, "- /data:") {
		t.Errorf("disk lines not sorted:\n%s", got)
	}
}

func TestBuildReportUnavailableTemperature(t *testing.T) {
	got := buildReport(MetricSnapshot{TempC: 0, RAMUsedPercent: 10}, nil)

	if !strings.Contains(got, "Temp: N/A") {
		t.Errorf("report = %q, want temperature rendered as N/A", got)
	}
	if strings.Contains(got, "Temp: 0") {
		t.Errorf("report = %q, must not render 0 as a temperature", got)
	}
	if !strings.Contains(got, "None detected") {
		t.Errorf("report = %q, want empty disk section marker", got)
	}
}

func TestRunReportUsesCachedScan(t *testing.T) {
	ch := &fakeChannel{}
	app := newTestApp(ch)
	app.Sample = func() MetricSnapshot {
		return MetricSnapshot{TempC: 48, RAMUsedPercent: 60}
	}
	scans := 0
	app.Scan = func() map[string]float64 {
		scans++
		return map[string]float64{"/fresh": 1}
	}
	app.Disks.Set(map[string]float64{"/cached": 77})

	runReport(app, "Daily")

	if scans != 0 {
		t.Fatalf("report ran %d fresh scans, want 0 (must read the cache)", scans)
	}
	if len(ch.sent) != 1 {
		t.Fatalf("dispatched %d notifications, want 1", len(ch.sent))
	}
	n := ch.sent[0]
	if n.Title != "Daily Status" {
		t.Errorf("title = %q, want %q", n.Title, "Daily Status")
	}
	if n.Priority != 3 {
		t.Errorf("priority = %d, want 3", n.Priority)
	}
	if !strings.Contains(n.Body, "/cached: 77%") {
		t.Errorf("body = %q, want the cached disk scan", n.Body)
	}
}

func TestRunReportWeeklyTitle(t *testing.T) {
	ch := &fakeChannel{}
	app := newTestApp(ch)

	runReport(app, "Weekly")

	if len(ch.sent) != 1 || ch.sent[0].Title != "Weekly Status" {
		t.Fatalf("sent = %+v, want one Weekly Status notification", ch.sent)
	}
}
