package dates

import "time"

// ReminderLeadDays is how many calendar days before a payment date the
// reminder for it becomes due.
const ReminderLeadDays = 3

// Midnight truncates t to the start of its calendar day, keeping the
// location.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return Midnight(a).Equal(Midnight(b))
}

// clampedDate builds the midnight instant for day-of-month day in the
// given month. A day past the end of the month is clamped to the last
// day of that month, never rolled into the next one.
func clampedDate(year int, month time.Month, day int, loc *time.Location) time.Time {
	candidate := time.Date(year, month, day, 0, 0, 0, 0, loc)
	if candidate.Day() != day {
		// Day zero of the following month is the last day of this one.
		candidate = time.Date(year, month+1, 0, 0, 0, 0, 0, loc)
	}
	return candidate
}

// NextPaymentDate returns the earliest occurrence of day-of-month day
// that is not strictly before now: this month's clamped date if it has
// not passed yet, otherwise next month's.
func NextPaymentDate(day int, now time.Time) time.Time {
	candidate := clampedDate(now.Year(), now.Month(), day, now.Location())
	if candidate.Before(now) && !SameDay(candidate, now) {
		candidate = clampedDate(now.Year(), now.Month()+1, day, now.Location())
	}
	return candidate
}

// ReminderDate returns the instant a reminder for the given payment
// date becomes due: exactly ReminderLeadDays calendar days earlier.
func ReminderDate(payment time.Time) time.Time {
	return payment.AddDate(0, 0, -ReminderLeadDays)
}

// ShouldRemindToday reports whether the reminder for the next payment
// on day-of-month day falls on now's calendar day.
func ShouldRemindToday(day int, now time.Time) bool {
	return SameDay(now, ReminderDate(NextPaymentDate(day, now)))
}

// UpcomingPaymentDates computes the clamped payment date for each of
// the next months starting with the current one, dropping dates that
// have already passed. The result is ascending and holds at most
// months entries.
func UpcomingPaymentDates(day int, now time.Time, months int) []time.Time {
	payments := make([]time.Time, 0, months)
	for i := 0; i < months; i++ {
		candidate := clampedDate(now.Year(), now.Month()+time.Month(i), day, now.Location())
		if candidate.After(now) || SameDay(candidate, now) {
			payments = append(payments, candidate)
		}
	}
	return payments
}
