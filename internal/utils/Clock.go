package utils

import "time"

// Clock supplies "now" to anything that anchors a window at the current day,
// week, or month. It is injected and read on every call, never snapshotted at
// startup, so rollovers are observed without a restart and tests can pin an
// arbitrary instant.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (s SystemClock) Now() time.Time {
	return time.Now()
}

type MockClock struct {
	FixedNow time.Time
}

func (m *MockClock) Now() time.Time {
	return m.FixedNow
}

func (m *MockClock) SetNow(now time.Time) {
	m.FixedNow = now
}
