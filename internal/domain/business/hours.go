package business

import (
	"strconv"
	"strings"
	"time"
)

// DayHours is a single day's opening window in "HH:MM" local time.
type DayHours struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

// WeeklyHours is a fixed seven-slot schedule. A nil day means closed.
type WeeklyHours struct {
	Sunday    *DayHours `json:"sunday,omitempty"`
	Monday    *DayHours `json:"monday,omitempty"`
	Tuesday   *DayHours `json:"tuesday,omitempty"`
	Wednesday *DayHours `json:"wednesday,omitempty"`
	Thursday  *DayHours `json:"thursday,omitempty"`
	Friday    *DayHours `json:"friday,omitempty"`
	Saturday  *DayHours `json:"saturday,omitempty"`
}

// Day returns the schedule entry for the given weekday.
func (w *WeeklyHours) Day(d time.Weekday) *DayHours {
	if w == nil {
		return nil
	}
	switch d {
	case time.Sunday:
		return w.Sunday
	case time.Monday:
		return w.Monday
	case time.Tuesday:
		return w.Tuesday
	case time.Wednesday:
		return w.Wednesday
	case time.Thursday:
		return w.Thursday
	case time.Friday:
		return w.Friday
	case time.Saturday:
		return w.Saturday
	}
	return nil
}

// OpenAt reports whether the schedule is open at t. The check fails closed:
// a nil schedule, a missing day entry, or an unparseable time means not open.
// The comparison is open <= now <= close on minutes since midnight, so an
// overnight window (close < open) never matches past midnight.
func (w *WeeklyHours) OpenAt(t time.Time) bool {
	day := w.Day(t.Weekday())
	if day == nil || day.Open == "" || day.Close == "" {
		return false
	}

	open, err := parseMinutes(day.Open)
	if err != nil {
		return false
	}
	closeAt, err := parseMinutes(day.Close)
	if err != nil {
		return false
	}

	now := t.Hour()*60 + t.Minute()
	return now >= open && now <= closeAt
}

// parseMinutes converts "HH:MM" to minutes since midnight.
func parseMinutes(s string) (int, error) {
	h, m, ok := strings.Cut(s, ":")
	if !ok {
		return 0, strconv.ErrSyntax
	}
	hour, err := strconv.Atoi(h)
	if err != nil {
		return 0, err
	}
	minute, err := strconv.Atoi(m)
	if err != nil {
		return 0, err
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, strconv.ErrRange
	}
	return hour*60 + minute, nil
}
