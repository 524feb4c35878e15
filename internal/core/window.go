package core

import "time"

// Window is a half-open time interval [Start, End) used to bound
// aggregate queries.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// MonthWindow covers one calendar month in loc.
func MonthWindow(year int, month time.Month, loc *time.Location) Window {
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	return Window{Start: start, End: start.AddDate(0, 1, 0)}
}

// YearWindow covers one calendar year in loc.
func YearWindow(year int, loc *time.Location) Window {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
	return Window{Start: start, End: start.AddDate(1, 0, 0)}
}

// CurrentMonth covers the calendar month containing now, in now's
// location. This is the window every chat summary uses.
func CurrentMonth(now time.Time) Window {
	return MonthWindow(now.Year(), now.Month(), now.Location())
}

// DeriveWindow applies the query rules shared with the original web
// client. Zero means the parameter was absent:
//
//   - month in [1,12]: that month of year, or of the current year
//   - month absent but year given: the whole year
//   - neither: the calendar month containing now
//
// An out-of-range month is treated as absent.
func DeriveWindow(now time.Time, year, month int) Window {
	loc := now.Location()

	if month >= 1 && month <= 12 {
		targetYear := year
		if targetYear == 0 {
			targetYear = now.Year()
		}
		return MonthWindow(targetYear, time.Month(month), loc)
	}

	if year != 0 {
		return YearWindow(year, loc)
	}

	return CurrentMonth(now)
}
