// Billing-month arithmetic. A billing month is always stored and compared
// as the first calendar day of that month at 00:00 UTC.
package dbtime

import "time"

// NormalizeBillingMonth truncates t to the first day of its month (UTC).
func NormalizeBillingMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// EndOfMonth returns the last instant of t's month.
func EndOfMonth(t time.Time) time.Time {
	first := NormalizeBillingMonth(t)
	return first.AddDate(0, 1, 0).Add(-time.Nanosecond)
}

// DaysOverdue returns how many whole days now is past due. Zero when the
// due date has not passed.
func DaysOverdue(due, now time.Time) int {
	if !now.After(due) {
		return 0
	}
	d := int(now.Sub(due).Hours() / 24)
	if d < 0 {
		return 0
	}
	return d
}
