// Package countdown turns a due time into the urgency flag and remaining-time
// text shown next to every deadline.
package countdown

import (
	"fmt"
	"strings"
	"time"
)

const (
	UrgentWithin = time.Hour

	day = 24 * time.Hour
)

type Status struct {
	Urgent bool
	Passed bool
	Rolled bool
	// Due is the due time the text was computed against. It differs from the
	// input only when Rolled is set.
	Due  time.Time
	Text string
}

// Evaluate computes the countdown for a deadline due at due with the given
// recurrence interval in days. A passed recurring deadline is advanced by a
// single interval only, even when several intervals have elapsed.
func Evaluate(due time.Time, recurrence int, now time.Time) Status {
	diff := due.Sub(now)
	st := Status{
		Urgent: IsUrgent(diff),
		Due:    due,
	}
	if diff <= 0 {
		if recurrence > 0 {
			st.Due = due.AddDate(0, 0, recurrence)
			st.Rolled = true
			st.Text = "Resets: " + Remaining(st.Due.Sub(now))
			return st
		}
		st.Passed = true
		st.Text = "Deadline passed"
		return st
	}
	if recurrence > 0 {
		st.Text = "Resets: " + Remaining(diff)
	} else {
		st.Text = "Ends: " + Remaining(diff)
	}
	return st
}

func IsUrgent(remaining time.Duration) bool {
	return remaining <= UrgentWithin
}

// Next advances due by whole recurrence intervals until it lies after now.
// Non-recurring or future deadlines are returned unchanged.
func Next(due time.Time, recurrence int, now time.Time) time.Time {
	if recurrence <= 0 {
		return due
	}
	for !due.After(now) {
		due = due.AddDate(0, 0, recurrence)
	}
	return due
}

// Remaining formats d as "N days M hours K minutes". Days and hours are left
// out when zero or negative; minutes are always present.
func Remaining(d time.Duration) string {
	ms := d.Milliseconds()
	days := floorDiv(ms, day.Milliseconds())
	hours := floorDiv(ms%day.Milliseconds(), time.Hour.Milliseconds())
	minutes := floorDiv(ms%time.Hour.Milliseconds(), time.Minute.Milliseconds())

	var b strings.Builder
	if days > 0 {
		fmt.Fprintf(&b, "%d days ", days)
	}
	if hours > 0 {
		fmt.Fprintf(&b, "%d hours ", hours)
	}
	fmt.Fprintf(&b, "%d minutes", minutes)
	return b.String()
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
