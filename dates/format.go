package dates

import "time"

const (
	displayDateLayout     = "02 Jan 2006"
	displayDateTimeLayout = "02 Jan 2006, 03:04 PM"
)

// FormatDate renders a date for display, e.g. "05 Mar 2024".
func FormatDate(t time.Time) string {
	return t.Format(displayDateLayout)
}

// FormatDateTime renders a date with its time component, e.g.
// "05 Mar 2024, 08:00 AM".
func FormatDateTime(t time.Time) string {
	return t.Format(displayDateTimeLayout)
}
