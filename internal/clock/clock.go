// Package clock answers the time questions the marquee asks each frame.
package clock

import (
	"fmt"
	"sync"
	"time"
)

type Clock interface {
	Now() time.Time
}

// System is the wall clock.
type System struct{}

func (System) Now() time.Time { return time.Now() }

// Manual only moves when told to. Safe for concurrent use.
type Manual struct {
	mu sync.Mutex
	t  time.Time
}

func NewManual(t time.Time) *Manual { return &Manual{t: t} }

func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.t
}

func (m *Manual) Set(t time.Time) {
	m.mu.Lock()
	m.t = t
	m.mu.Unlock()
}

func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	m.t = m.t.Add(d)
	m.mu.Unlock()
}

// Countdown counts whole seconds down to Deadline.
type Countdown struct {
	Deadline time.Time
}

// SecondsLeft truncates toward zero and never goes negative.
func (c Countdown) SecondsLeft(now time.Time) int {
	d := c.Deadline.Sub(now)
	if d <= 0 {
		return 0
	}
	return int(d / time.Second)
}

// Digits right-aligns n in width columns, padding with spaces.
func Digits(n, width int) string {
	return fmt.Sprintf("%*d", width, n)
}

// DayNight splits the day by local hour. Night runs from NightFrom up to
// but excluding NightUntil and may wrap midnight.
type DayNight struct {
	NightFrom  int
	NightUntil int
	// Location defaults to UTC.
	Location *time.Location
}

// DefaultDayNight is night from 20:00 to 08:00.
func DefaultDayNight() DayNight {
	return DayNight{NightFrom: 20, NightUntil: 8, Location: time.UTC}
}

func (d DayNight) IsNight(now time.Time) bool {
	loc := d.Location
	if loc == nil {
		loc = time.UTC
	}
	h := now.In(loc).Hour()
	if d.NightFrom == d.NightUntil {
		return false
	}
	if d.NightFrom < d.NightUntil {
		return h >= d.NightFrom && h < d.NightUntil
	}
	return h >= d.NightFrom || h < d.NightUntil
}
