package assist

import (
	"testing"
	"time"
)

// Anchor: Wednesday 2024-03-13.
var anchor = time.Date(2024, 3, 13, 15, 30, 0, 0, time.UTC)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dayEnd(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 23, 59, 59, 999000000, time.UTC)
}

func TestResolveDateRange_Tokens(t *testing.T) {
	tests := []struct {
		token     string
		wantStart time.Time
		wantEnd   time.Time
	}{
		{"2024", day(2024, time.January, 1), dayEnd(2024, time.December, 31)},
		{"1999", day(1999, time.January, 1), dayEnd(1999, time.December, 31)},

		{"2024-03-01 to 2024-03-10", day(2024, time.March, 1), dayEnd(2024, time.March, 10)},
		{"2024-03-10 to 2024-03-01", day(2024, time.March, 10), dayEnd(2024, time.March, 1)},

		{"yesterday", day(2024, time.March, 12), dayEnd(2024, time.March, 12)},
		{"today", day(2024, time.March, 13), dayEnd(2024, time.March, 13)},
		{"tomorrow", day(2024, time.March, 14), dayEnd(2024, time.March, 14)},

		// Weeks run Sunday through Saturday.
		{"this_week", day(2024, time.March, 10), dayEnd(2024, time.March, 16)},
		{"last_week", day(2024, time.March, 3), dayEnd(2024, time.March, 9)},
		{"next_week", day(2024, time.March, 17), dayEnd(2024, time.March, 23)},

		{"this_month", day(2024, time.March, 1), dayEnd(2024, time.March, 31)},
		{"last_month", day(2024, time.February, 1), dayEnd(2024, time.February, 29)},
		{"next_month", day(2024, time.April, 1), dayEnd(2024, time.April, 30)},

		{"this_year", day(2024, time.January, 1), dayEnd(2024, time.December, 31)},
		{"last_year", day(2023, time.January, 1), dayEnd(2023, time.December, 31)},
		{"next_year", day(2025, time.January, 1), dayEnd(2025, time.December, 31)},

		{"LAST_WEEK", day(2024, time.March, 3), dayEnd(2024, time.March, 9)},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got := resolveDateRangeAt(tt.token, anchor)
			if got == nil {
				t.Fatalf("resolveDateRangeAt(%q) = nil, want range", tt.token)
			}
			if !got.Start.Equal(tt.wantStart) {
				t.Errorf("start = %v, want %v", got.Start, tt.wantStart)
			}
			if !got.End.Equal(tt.wantEnd) {
				t.Errorf("end = %v, want %v", got.End, tt.wantEnd)
			}
		})
	}
}

func TestResolveDateRange_Unrecognized(t *testing.T) {
	tokens := []string{
		"",
		"whenever",
		"20245",
		"202",
		"2024-03-01 to someday",
		"fortnight",
	}
	for _, token := range tokens {
		if got := resolveDateRangeAt(token, anchor); got != nil {
			t.Errorf("resolveDateRangeAt(%q) = %+v, want nil", token, got)
		}
	}
}

func TestResolveDateRange_MonthBoundary(t *testing.T) {
	// Anchored on the 31st, last_month must not skip February.
	endOfMarch := time.Date(2024, 3, 31, 10, 0, 0, 0, time.UTC)
	got := resolveDateRangeAt("last_month", endOfMarch)
	if got == nil {
		t.Fatal("resolveDateRangeAt returned nil")
	}
	if got.Start.Month() != time.February {
		t.Errorf("last_month start = %v, want February", got.Start)
	}
	if !got.End.Equal(dayEnd(2024, time.February, 29)) {
		t.Errorf("last_month end = %v, want %v", got.End, dayEnd(2024, time.February, 29))
	}
}

func TestResolveDateRange_WeekSpansSevenDays(t *testing.T) {
	for offset := 0; offset < 7; offset++ {
		now := anchor.AddDate(0, 0, offset)
		r := resolveDateRangeAt("this_week", now)
		if r == nil {
			t.Fatalf("nil range for anchor %v", now)
		}
		if r.Start.Weekday() != time.Sunday {
			t.Errorf("week start %v is %v, want Sunday", r.Start, r.Start.Weekday())
		}
		if days := r.End.Sub(r.Start).Hours() / 24; days < 6.9 || days > 7.0 {
			t.Errorf("week span = %.2f days", days)
		}
		if now.Before(r.Start) || now.After(r.End) {
			t.Errorf("anchor %v outside its own week [%v, %v]", now, r.Start, r.End)
		}
	}
}
