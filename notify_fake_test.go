package main

// fakeChannel records published notifications for assertions.
type fakeChannel struct {
	sent []Notification
}

func (f *fakeChannel) Publish(n Notification) {
	f.sent = append(f.sent, n)
}

func newTestApp(ch Channel) *AppContext {
	return &AppContext{
		Config: &Config{
			TempLimit: 82,
			DiskLimit: 90,
			RAMLimit:  92,
		},
		Notify: NewDispatcher(ch),
		Disks:  &DiskState{},
		Sample: func() MetricSnapshot { return MetricSnapshot{} },
		Scan:   func() map[string]float64 { return map[string]float64{} },
	}
}
