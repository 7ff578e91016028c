// Package hold implements the business-day hold period between two-sided
// confirmation and fund release. The period is counted in business days, not
// wall-clock hours: Saturdays and Sundays do not advance the count, which
// materially shifts the release date near weekends.
package hold

import "time"

// DefaultBusinessDays is the number of business days a completed transaction
// waits before its net amount becomes releasable.
const DefaultBusinessDays = 3

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// Cutoff walks backward from now, one day at a time, skipping weekend days,
// until businessDays have been accumulated. A transaction completed at or
// before the returned instant has served its hold period.
func Cutoff(now time.Time, businessDays int) time.Time {
	date := now
	counted := 0
	for counted < businessDays {
		date = date.AddDate(0, 0, -1)
		if !isWeekend(date) {
			counted++
		}
	}
	return date
}

// ReleaseAt walks forward from completedAt until businessDays non-weekend
// days have passed. It is the earliest instant at which the release sweep
// will consider the transaction eligible.
func ReleaseAt(completedAt time.Time, businessDays int) time.Time {
	date := completedAt
	counted := 0
	for counted < businessDays {
		date = date.AddDate(0, 0, 1)
		if !isWeekend(date) {
			counted++
		}
	}
	return date
}

// Elapsed reports whether the hold period for a transaction completed at
// completedAt has fully elapsed as of now.
func Elapsed(completedAt, now time.Time, businessDays int) bool {
	return !completedAt.After(Cutoff(now, businessDays))
}
