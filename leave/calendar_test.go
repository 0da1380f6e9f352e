package leave_test

import (
	"testing"
	"time"

	"github.com/atlashr/leave-engine/leave"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func date(year int, month time.Month, day int) leave.Date {
	return leave.NewDate(year, month, day)
}

// =============================================================================
// BUSINESS DAY TESTS
// =============================================================================

func TestBusinessDaysBetween_SingleDay(t *testing.T) {
	// GIVEN: A single date range [d, d]
	// THEN: Weekdays count as 1, weekend days as 0

	mon := date(2025, time.March, 10) // Monday
	if got := leave.BusinessDaysBetween(mon, mon); got != 1 {
		t.Errorf("single Monday: expected 1, got %d", got)
	}

	sat := date(2025, time.March, 8) // Saturday
	if got := leave.BusinessDaysBetween(sat, sat); got != 0 {
		t.Errorf("single Saturday: expected 0, got %d", got)
	}

	sun := date(2025, time.March, 9) // Sunday
	if got := leave.BusinessDaysBetween(sun, sun); got != 0 {
		t.Errorf("single Sunday: expected 0, got %d", got)
	}
}

func TestBusinessDaysBetween_FullWeeks(t *testing.T) {
	// GIVEN: Monday through Sunday of the same week
	// THEN: 5 business days; two consecutive full weeks give 10

	mon := date(2025, time.March, 10)
	sun := date(2025, time.March, 16)
	if got := leave.BusinessDaysBetween(mon, sun); got != 5 {
		t.Errorf("Mon..Sun: expected 5, got %d", got)
	}

	nextSun := date(2025, time.March, 23)
	if got := leave.BusinessDaysBetween(mon, nextSun); got != 10 {
		t.Errorf("two full weeks: expected 10, got %d", got)
	}
}

func TestBusinessDaysBetween_InvertedRange(t *testing.T) {
	// GIVEN: end < start
	// THEN: 0, not an error - callers read 0 as "nothing requested"

	start := date(2025, time.March, 14)
	end := date(2025, time.March, 10)
	if got := leave.BusinessDaysBetween(start, end); got != 0 {
		t.Errorf("inverted range: expected 0, got %d", got)
	}
}

func TestBusinessDaysBetween_WeekendOnlySpan(t *testing.T) {
	sat := date(2025, time.March, 8)
	sun := date(2025, time.March, 9)
	if got := leave.BusinessDaysBetween(sat, sun); got != 0 {
		t.Errorf("Sat..Sun: expected 0, got %d", got)
	}
}

// =============================================================================
// PROPORTIONAL ENTITLEMENT TESTS
// =============================================================================

func TestProportionalEntitlement_PriorYearHire(t *testing.T) {
	// GIVEN: Hired in a previous year
	// THEN: Full grant, no proration

	start := date(2019, time.June, 15)
	if got := leave.ProportionalAnnualEntitlementForYear(start, 26, 2025); got != 26 {
		t.Errorf("prior-year hire: expected 26, got %d", got)
	}
}

func TestProportionalEntitlement_MidYearHire(t *testing.T) {
	cases := []struct {
		name       string
		start      leave.Date
		annualDays int
		want       int
	}{
		{"january start keeps full year", date(2025, time.January, 1), 26, 26},
		{"january 20th still full year", date(2025, time.January, 20), 26, 26},
		{"july start halves the grant", date(2025, time.July, 1), 26, 13},
		{"december start rounds 2.17 up to 3", date(2025, time.December, 5), 26, 3},
		{"october start with 20 days rounds 5 exactly", date(2025, time.October, 1), 20, 5},
		{"november start with 20 days rounds 3.33 up to 4", date(2025, time.November, 12), 20, 4},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := leave.ProportionalAnnualEntitlementForYear(tc.start, tc.annualDays, 2025)
			if got != tc.want {
				t.Errorf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	d, err := leave.ParseDate("2025-03-10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !d.Equal(date(2025, time.March, 10)) {
		t.Errorf("expected 2025-03-10, got %s", d)
	}

	if _, err := leave.ParseDate("10.03.2025"); err == nil {
		t.Error("expected error for unsupported format")
	}
}
