package order

import (
	"fmt"
	"time"
)

const orderNumberPrefix = "EV"

// FormatOrderNumber builds the human-readable order number: a fixed prefix,
// the calendar date, and the day's sequence value zero-padded to four
// digits (EV20250115 0001 → "EV202501150001"). The sequence comes from an
// atomic per-day counter, never from counting existing orders.
func FormatOrderNumber(t time.Time, seq int64) string {
	return fmt.Sprintf("%s%s%04d", orderNumberPrefix, t.Format("20060102"), seq)
}
