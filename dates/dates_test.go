package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestNextPaymentDatePreservesDayForShortDays(t *testing.T) {
	t.Parallel()

	nows := []time.Time{
		date(2024, time.January, 1),
		date(2024, time.February, 15),
		date(2024, time.June, 30),
		date(2023, time.December, 31),
	}

	for day := 1; day <= 28; day++ {
		for _, now := range nows {
			next := NextPaymentDate(day, now)
			assert.Equal(t, day, next.Day(), "day %d from %s", day, now)
			assert.False(t, next.Before(Midnight(now)), "day %d from %s gave past date %s", day, now, next)
		}
	}
}

func TestNextPaymentDateClampsToMonthEnd(t *testing.T) {
	t.Parallel()

	// Non-leap February clamps day 30 to the 28th.
	next := NextPaymentDate(30, date(2023, time.February, 10))
	assert.Equal(t, date(2023, time.February, 28), next)

	// Leap year February clamps to the 29th.
	next = NextPaymentDate(30, date(2024, time.February, 10))
	assert.Equal(t, date(2024, time.February, 29), next)

	// April has 30 days, so day 31 clamps to the 30th.
	next = NextPaymentDate(31, date(2024, time.April, 15))
	assert.Equal(t, date(2024, time.April, 30), next)
}

func TestNextPaymentDateAdvancesPastDates(t *testing.T) {
	t.Parallel()

	// The 10th has passed by the 15th, so the next occurrence is in May.
	next := NextPaymentDate(10, date(2024, time.April, 15))
	assert.Equal(t, date(2024, time.May, 10), next)

	// Today's payment day still counts as the next payment.
	next = NextPaymentDate(15, time.Date(2024, time.April, 15, 13, 30, 0, 0, time.UTC))
	assert.Equal(t, date(2024, time.April, 15), next)

	// Advancing from December lands in January of the following year.
	next = NextPaymentDate(5, date(2023, time.December, 20))
	assert.Equal(t, date(2024, time.January, 5), next)
}

func TestNextPaymentDateClampWhenAdvancing(t *testing.T) {
	t.Parallel()

	// Day 31 seen from late February resolves to March 31.
	next := NextPaymentDate(31, date(2023, time.February, 28))
	assert.Equal(t, date(2023, time.March, 31), next)

	// Day 30 after January 30 has passed clamps within February.
	next = NextPaymentDate(30, date(2023, time.January, 31))
	assert.Equal(t, date(2023, time.February, 28), next)
}

func TestReminderDateIsThreeDaysBefore(t *testing.T) {
	t.Parallel()

	payments := []time.Time{
		date(2024, time.April, 30),
		date(2024, time.March, 1),
		date(2024, time.January, 2),
		time.Date(2024, time.July, 14, 9, 45, 0, 0, time.UTC),
	}

	for _, payment := range payments {
		reminder := ReminderDate(payment)
		assert.Equal(t, payment.AddDate(0, 0, -3), reminder)
		assert.Equal(t, 72*time.Hour, payment.Sub(reminder))
	}

	// The 2024-04-15 / day-31 scenario: payment April 30, reminder April 27.
	payment := NextPaymentDate(31, date(2024, time.April, 15))
	assert.Equal(t, date(2024, time.April, 27), ReminderDate(payment))
}

func TestShouldRemindToday(t *testing.T) {
	t.Parallel()

	// Payment on the 20th means the reminder day is the 17th.
	assert.True(t, ShouldRemindToday(20, date(2024, time.April, 17)))
	assert.False(t, ShouldRemindToday(20, date(2024, time.April, 16)))
	assert.False(t, ShouldRemindToday(20, date(2024, time.April, 18)))

	// Time of day is irrelevant.
	assert.True(t, ShouldRemindToday(20, time.Date(2024, time.April, 17, 23, 59, 0, 0, time.UTC)))
}

func TestShouldRemindTodayAcrossMonthBoundary(t *testing.T) {
	t.Parallel()

	// Payment on May 1 puts the reminder day at April 28.
	assert.True(t, ShouldRemindToday(1, date(2024, time.April, 28)))
	assert.False(t, ShouldRemindToday(1, date(2024, time.April, 27)))
}

func TestUpcomingPaymentDates(t *testing.T) {
	t.Parallel()

	now := date(2024, time.April, 15)

	upcoming := UpcomingPaymentDates(10, now, 3)
	// April 10 has passed, so only May and June remain.
	require.Len(t, upcoming, 2)
	assert.Equal(t, date(2024, time.May, 10), upcoming[0])
	assert.Equal(t, date(2024, time.June, 10), upcoming[1])

	upcoming = UpcomingPaymentDates(20, now, 3)
	require.Len(t, upcoming, 3)
	assert.Equal(t, date(2024, time.April, 20), upcoming[0])
	assert.Equal(t, date(2024, time.May, 20), upcoming[1])
	assert.Equal(t, date(2024, time.June, 20), upcoming[2])

	// Same-day payments are included.
	upcoming = UpcomingPaymentDates(15, now, 1)
	require.Len(t, upcoming, 1)
	assert.Equal(t, now, upcoming[0])
}

func TestUpcomingPaymentDatesClampsPerMonth(t *testing.T) {
	t.Parallel()

	upcoming := UpcomingPaymentDates(31, date(2024, time.January, 1), 4)
	require.Len(t, upcoming, 4)
	assert.Equal(t, date(2024, time.January, 31), upcoming[0])
	assert.Equal(t, date(2024, time.February, 29), upcoming[1])
	assert.Equal(t, date(2024, time.March, 31), upcoming[2])
	assert.Equal(t, date(2024, time.April, 30), upcoming[3])
}

func TestUpcomingPaymentDatesCrossesYearBoundary(t *testing.T) {
	t.Parallel()

	upcoming := UpcomingPaymentDates(5, date(2023, time.November, 1), 3)
	require.Len(t, upcoming, 3)
	assert.Equal(t, date(2023, time.November, 5), upcoming[0])
	assert.Equal(t, date(2023, time.December, 5), upcoming[1])
	assert.Equal(t, date(2024, time.January, 5), upcoming[2])
}

func TestFormatDate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "05 Mar 2024", FormatDate(date(2024, time.March, 5)))
	assert.Equal(t, "30 Apr 2024, 08:15 AM", FormatDateTime(time.Date(2024, time.April, 30, 8, 15, 0, 0, time.UTC)))
}
