package internal

import "time"

// Time is a timestamp in nanoseconds since the Unix epoch.
type Time int64

func Now() Time { return FromStd(time.Now()) }

func FromStd(t time.Time) Time { return Time(t.UnixNano()) }

// Std converts to calendar time at millisecond precision.
func (t Time) Std() time.Time {
	return time.UnixMilli(int64(t) / 1_000_000)
}

func (t Time) Date() string { return t.Std().Format("2006-01-02") }
