package tools

import (
	"context"
	"fmt"
	"time"
)

// ClockReading is the data returned by the clock tools.
type ClockReading struct {
	Time     string `json:"time"`
	Weekday  string `json:"weekday"`
	TimeZone string `json:"timeZone"`
}

// RegisterClock registers get_time and get_weekday, reading now in loc.
// A nil now uses time.Now.
func RegisterClock(r *Registry, loc *time.Location, now func() time.Time) error {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	read := func() ClockReading {
		t := now().In(loc)
		return ClockReading{
			Time:     t.Format(time.TimeOnly),
			Weekday:  t.Weekday().String(),
			TimeZone: loc.String(),
		}
	}

	if err := Add(r, "get_time",
		"Get the current time (HH:MM:SS).",
		func(context.Context, noArgs) (Result, error) {
			c := read()
			return Result{Content: fmt.Sprintf("The current time is %s (%s).", c.Time, c.TimeZone), Data: c}, nil
		}); err != nil {
		return err
	}

	return Add(r, "get_weekday",
		"Get the current day of the week.",
		func(context.Context, noArgs) (Result, error) {
			c := read()
			return Result{Content: fmt.Sprintf("Today is %s.", c.Weekday), Data: c}, nil
		})
}
