package leave

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// DATE - Day-granularity time abstraction
// =============================================================================

// Date is a calendar day in UTC. Schedules and entitlements never care
// about the time of day, so everything is normalized to midnight.
type Date struct {
	Time time.Time
}

// Constructors
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

func Today() Date {
	return DateOf(time.Now())
}

// Comparison
func (d Date) Before(other Date) bool        { return d.normalize().Before(other.normalize()) }
func (d Date) Equal(other Date) bool         { return d.normalize().Equal(other.normalize()) }
func (d Date) After(other Date) bool         { return d.normalize().After(other.normalize()) }
func (d Date) BeforeOrEqual(other Date) bool { return d.Before(other) || d.Equal(other) }
func (d Date) AfterOrEqual(other Date) bool  { return d.After(other) || d.Equal(other) }

func (d Date) normalize() time.Time {
	return time.Date(d.Time.Year(), d.Time.Month(), d.Time.Day(), 0, 0, 0, 0, time.UTC)
}

// Arithmetic
func (d Date) AddDays(n int) Date { return Date{Time: d.Time.AddDate(0, 0, n)} }

// Properties
func (d Date) Year() int             { return d.Time.Year() }
func (d Date) Month() time.Month     { return d.Time.Month() }
func (d Date) Day() int              { return d.Time.Day() }
func (d Date) Weekday() time.Weekday { return d.Time.Weekday() }
func (d Date) IsZero() bool          { return d.Time.IsZero() }

func (d Date) IsWeekend() bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
func (d Date) IsBusinessDay() bool { return !d.IsWeekend() }

func (d Date) String() string { return d.Time.Format("2006-01-02") }

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, err
	}
	return DateOf(t), nil
}

// =============================================================================
// BUSINESS-DAY ARITHMETIC
// =============================================================================

// BusinessDaysBetween counts weekdays in [start, end] inclusive. Saturdays
// and Sundays are excluded; public holidays are not modeled. An inverted
// range yields 0 - callers interpret that as "nothing requested".
func BusinessDaysBetween(start, end Date) int {
	if end.Before(start) {
		return 0
	}
	count := 0
	for d := start; d.BeforeOrEqual(end); d = d.AddDays(1) {
		if d.IsBusinessDay() {
			count++
		}
	}
	return count
}

// =============================================================================
// PROPORTIONAL ENTITLEMENT - Mid-year hires
// =============================================================================

var twelve = decimal.NewFromInt(12)

// ProportionalAnnualEntitlement computes the annual grant for the current
// calendar year. See ProportionalAnnualEntitlementForYear.
func ProportionalAnnualEntitlement(employmentStart Date, annualDays int) int {
	return ProportionalAnnualEntitlementForYear(employmentStart, annualDays, Today().Year())
}

// ProportionalAnnualEntitlementForYear returns the full grant when the
// employee was hired before the given year. For hires within the year the
// grant is prorated by remaining months (a January start keeps the full
// year) and rounded UP: partial-month entitlement must never be rounded
// down against the employee.
func ProportionalAnnualEntitlementForYear(employmentStart Date, annualDays int, year int) int {
	if employmentStart.Year() < year {
		return annualDays
	}
	monthsRemaining := 12 - int(employmentStart.Month()) + 1
	prorated := decimal.NewFromInt(int64(annualDays)).
		Mul(decimal.NewFromInt(int64(monthsRemaining))).
		Div(twelve)
	return int(prorated.Ceil().IntPart())
}
