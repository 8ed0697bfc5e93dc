package helper

import (
	"time"
)

// DateLayout is the calendar date format used by the checkout form.
const DateLayout = "2006-01-02"

func ParseDate(date string) (time.Time, error) {
	return time.Parse(DateLayout, date)
}

// DateIn returns the calendar date of t in loc, formatted as DateLayout.
func DateIn(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(DateLayout)
}

func TimeRightNow() time.Time {
	return time.Now().UTC()
}
