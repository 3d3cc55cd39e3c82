// Package sequence provides the day-scoped atomic counter behind order
// numbering. Every implementation must make Next an atomic
// increment-and-read: counting existing orders and adding one is a race
// under concurrent creation and is deliberately not offered here.
package sequence

import (
	"context"
	"time"
)

// Day hands out strictly increasing values per calendar day, starting at 1.
type Day interface {
	Next(ctx context.Context, day string) (int64, error)
}

// DayKey formats t as the calendar-day key used by all implementations.
// Day boundaries follow t's location (local midnight to local midnight).
func DayKey(t time.Time) string {
	return t.Format("20060102")
}
