// Package clock resolves "now" and converts naive event times to comparable
// instants in the configured club timezone. All phase comparisons go through a
// Clock rather than ambient system time.
package clock

import (
	"fmt"
	"time"
)

// Clock resolves current time in a configured IANA timezone.
type Clock struct {
	loc     *time.Location
	nowFunc func() time.Time
}

// Opt is an optional argument for building a Clock.
type Opt = func(*Clock)

// WithNowFunc can be used to override the nowFunc. Useful for testing.
func WithNowFunc(nowFunc func() time.Time) Opt {
	return func(c *Clock) {
		c.nowFunc = nowFunc
	}
}

// New creates a Clock for the given IANA timezone identifier.
func New(zone string, opts ...Opt) (*Clock, error) {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("error loading timezone %q: %w", zone, err)
	}
	c := &Clock{loc: loc, nowFunc: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Location returns the configured timezone.
func (c *Clock) Location() *time.Location {
	return c.loc
}

// Now returns the current instant.
func (c *Clock) Now() time.Time {
	return c.nowFunc()
}

// NowLocal returns the current instant expressed in the configured timezone.
func (c *Clock) NowLocal() time.Time {
	return c.nowFunc().In(c.loc)
}

// ToAbsolute reinterprets the wall-clock fields of a naive time in the
// configured timezone, producing a comparable instant. Organizer-entered event
// times are stored naive, so every temporal comparison converts through here.
func (c *Clock) ToAbsolute(naive time.Time) time.Time {
	return time.Date(naive.Year(), naive.Month(), naive.Day(),
		naive.Hour(), naive.Minute(), naive.Second(), naive.Nanosecond(), c.loc)
}

// TodayLocalMidnight returns midnight of the current calendar day in the
// configured timezone.
func (c *Clock) TodayLocalMidnight() time.Time {
	now := c.NowLocal()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, c.loc)
}
