package util

import "time"

// DateLayout is the ISO calendar date used by the travel APIs.
const DateLayout = "2006-01-02"

func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// TravelWindow returns departure and return dates leadDays from now, stayNights apart.
func TravelWindow(now time.Time, leadDays, stayNights int) (string, string) {
	depart := now.UTC().AddDate(0, 0, leadDays)
	return FormatDate(depart), FormatDate(depart.AddDate(0, 0, stayNights))
}
