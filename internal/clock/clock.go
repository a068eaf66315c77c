// Package clock supplies the current instant and the custom day-boundary
// policy. The ledger takes a Clock so tests can pin time.
package clock

import "time"

type Clock interface {
	Now() time.Time
}

// System reads the wall clock.
type System struct{}

func (System) Now() time.Time { return time.Now() }

// Fixed always returns the same instant.
type Fixed struct {
	At time.Time
}

func (f Fixed) Now() time.Time { return f.At }

const bucketLayout = "2006-01-02"

// DayBucket maps a timestamp to its logical day. A day starts at
// resetHour, so timestamps before it belong to the previous calendar day.
func DayBucket(t time.Time, resetHour int) string {
	t = t.In(time.Local)
	if t.Hour() < resetHour {
		t = t.AddDate(0, 0, -1)
	}
	return t.Format(bucketLayout)
}

// BucketDate parses a day-bucket string back to its calendar date.
func BucketDate(bucket string) (time.Time, error) {
	return time.ParseInLocation(bucketLayout, bucket, time.Local)
}

// PeriodStart returns the instant the current cheat period began: the most
// recent Sunday (weekly) or the 1st of the month (monthly) of the logical
// day, anchored at resetHour.
func PeriodStart(now time.Time, period string, resetHour int) time.Time {
	day, err := BucketDate(DayBucket(now, resetHour))
	if err != nil {
		day = now.In(time.Local)
	}
	switch period {
	case "monthly":
		day = time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.Local)
	default:
		day = day.AddDate(0, 0, -int(day.Weekday()))
	}
	return time.Date(day.Year(), day.Month(), day.Day(), resetHour, 0, 0, 0, time.Local)
}
