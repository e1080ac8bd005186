package service

import "time"

const minReportYear = 2000

func locationOrLocal(loc *time.Location) *time.Location {
	if loc == nil {
		return time.Local
	}
	return loc
}

// dayRange turns two calendar dates into the half-open instant range
// [start 00:00, end+1 00:00), which covers the whole end day including
// sub-second timestamps.
func dayRange(start, end time.Time, loc *time.Location) (time.Time, time.Time, error) {
	if start.IsZero() || end.IsZero() {
		return time.Time{}, time.Time{}, validationError("start and end dates are required")
	}
	from := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)
	last := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, loc)
	if last.Before(from) {
		return time.Time{}, time.Time{}, validationError("end date %s is before start date %s", last.Format("2006-01-02"), from.Format("2006-01-02"))
	}
	return from, last.AddDate(0, 0, 1), nil
}

func monthRange(year int, month time.Month, loc *time.Location) (time.Time, time.Time) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	return from, from.AddDate(0, 1, 0)
}

func validateYear(year int) error {
	if year < minReportYear || year > timeNow().Year()+1 {
		return validationError("invalid year %d: must be between %d and %d", year, minReportYear, timeNow().Year()+1)
	}
	return nil
}

func validateMonth(month int) error {
	if month < 1 || month > 12 {
		return validationError("invalid month %d: must be between 1 and 12", month)
	}
	return nil
}
