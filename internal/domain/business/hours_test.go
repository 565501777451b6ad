package business

import (
	"testing"
	"time"
)

// tuesday returns a fixed Tuesday at the given clock time.
func tuesday(t *testing.T, hour, minute int) time.Time {
	t.Helper()
	return time.Date(2026, time.March, 3, hour, minute, 0, 0, time.UTC)
}

func TestOpenAt_WithinWindow(t *testing.T) {
	w := &WeeklyHours{Tuesday: &DayHours{Open: "09:00", Close: "17:00"}}

	tests := []struct {
		hour, minute int
		want         bool
	}{
		{8, 59, false},
		{9, 0, true}, // open boundary inclusive
		{12, 30, true},
		{17, 0, true}, // close boundary inclusive
		{17, 1, false},
	}
	for _, tc := range tests {
		if got := w.OpenAt(tuesday(t, tc.hour, tc.minute)); got != tc.want {
			t.Errorf("OpenAt(%02d:%02d) = %v, want %v", tc.hour, tc.minute, got, tc.want)
		}
	}
}

func TestOpenAt_FailsClosed(t *testing.T) {
	noon := tuesday(t, 12, 0)

	var nilHours *WeeklyHours
	if nilHours.OpenAt(noon) {
		t.Error("nil schedule reported open")
	}

	missingDay := &WeeklyHours{Monday: &DayHours{Open: "09:00", Close: "17:00"}}
	if missingDay.OpenAt(noon) {
		t.Error("missing day entry reported open")
	}

	emptyTimes := &WeeklyHours{Tuesday: &DayHours{}}
	if emptyTimes.OpenAt(noon) {
		t.Error("empty open/close reported open")
	}

	garbage := &WeeklyHours{Tuesday: &DayHours{Open: "morning", Close: "17:00"}}
	if garbage.OpenAt(noon) {
		t.Error("unparseable open time reported open")
	}

	outOfRange := &WeeklyHours{Tuesday: &DayHours{Open: "09:00", Close: "25:00"}}
	if outOfRange.OpenAt(noon) {
		t.Error("out-of-range close time reported open")
	}
}

func TestOpenAt_OvernightAlwaysClosedPastMidnight(t *testing.T) {
	// close < open: a bar open 20:00-02:00. The literal minute comparison
	// means it never reports open, neither in the evening nor after
	// midnight. Preserved source behavior.
	w := &WeeklyHours{Tuesday: &DayHours{Open: "20:00", Close: "02:00"}}

	if w.OpenAt(tuesday(t, 22, 0)) {
		t.Error("overnight window reported open at 22:00")
	}
	if w.OpenAt(tuesday(t, 1, 0)) {
		t.Error("overnight window reported open at 01:00")
	}
}

func TestDay_CoversAllWeekdays(t *testing.T) {
	w := &WeeklyHours{
		Sunday:    &DayHours{Open: "10:00", Close: "16:00"},
		Monday:    &DayHours{Open: "09:00", Close: "17:00"},
		Tuesday:   &DayHours{Open: "09:00", Close: "17:00"},
		Wednesday: &DayHours{Open: "09:00", Close: "17:00"},
		Thursday:  &DayHours{Open: "09:00", Close: "17:00"},
		Friday:    &DayHours{Open: "09:00", Close: "18:00"},
		Saturday:  &DayHours{Open: "10:00", Close: "18:00"},
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		if w.Day(d) == nil {
			t.Errorf("Day(%s) = nil", d)
		}
	}
}

func TestParseMinutes(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:30", 570, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"noon", 0, true},
		{"", 0, true},
	}
	for _, tc := range tests {
		got, err := parseMinutes(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("parseMinutes(%q) err = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if err == nil && got != tc.want {
			t.Errorf("parseMinutes(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
