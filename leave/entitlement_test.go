package leave_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/atlashr/leave-engine/leave"
)

func TestAvailableAnnualDays(t *testing.T) {
	e := leave.Employee{AnnualVacationDays: 26, VacationDaysUsed: 10, CarriedOverVacationDays: 4}
	assert.Equal(t, 20, leave.AvailableAnnualDays(e))
}

func TestAvailableAnnualDays_NegativeIsPreserved(t *testing.T) {
	// Over-allocation is a signal for the caller, not something the
	// engine silently corrects.
	e := leave.Employee{AnnualVacationDays: 20, VacationDaysUsed: 23, CarriedOverVacationDays: 0}
	assert.Equal(t, -3, leave.AvailableAnnualDays(e))
}

func TestRemainingOnDemandDays(t *testing.T) {
	cases := []struct {
		used int
		want int
	}{
		{0, 4},
		{2, 2},
		{4, 0},
		{7, 0}, // out-of-range counter is clamped, never negative
	}
	for _, tc := range cases {
		e := leave.Employee{OnDemandVacationDaysUsed: tc.used}
		assert.Equalf(t, tc.want, leave.RemainingOnDemandDays(e), "used=%d", tc.used)
	}
}

// =============================================================================
// USED DAYS PER YEAR
// =============================================================================

func TestUsedDaysInYear_OnlyActiveAndCompletedCount(t *testing.T) {
	// GIVEN: Completed(5 business days) + Active(5 business days) in 2025
	//        plus a Cancelled and a Scheduled span of 5 days each
	// THEN: Total is 10 - cancelled/scheduled records are ignored

	userID := leave.EmployeeID("emp-1")
	schedules := []leave.VacationSchedule{
		{ID: "s1", UserID: userID, StartDate: date(2025, time.February, 3), EndDate: date(2025, time.February, 7), Status: leave.StatusCompleted},
		{ID: "s2", UserID: userID, StartDate: date(2025, time.June, 9), EndDate: date(2025, time.June, 13), Status: leave.StatusActive},
		{ID: "s3", UserID: userID, StartDate: date(2025, time.August, 4), EndDate: date(2025, time.August, 8), Status: leave.StatusCancelled},
		{ID: "s4", UserID: userID, StartDate: date(2025, time.September, 1), EndDate: date(2025, time.September, 5), Status: leave.StatusScheduled},
	}

	assert.Equal(t, 10, leave.UsedDaysInYear(userID, 2025, schedules))
}

func TestUsedDaysInYear_IgnoresOtherUsers(t *testing.T) {
	schedules := []leave.VacationSchedule{
		{ID: "s1", UserID: "emp-2", StartDate: date(2025, time.February, 3), EndDate: date(2025, time.February, 7), Status: leave.StatusCompleted},
	}
	assert.Equal(t, 0, leave.UsedDaysInYear("emp-1", 2025, schedules))
}

func TestUsedDaysInYear_CrossYearSpanCountsInFullForBothYears(t *testing.T) {
	// A span crossing the year boundary contributes its full business-day
	// count to each year it touches. Dec 29 2025 (Mon) .. Jan 2 2026 (Fri)
	// is 5 business days, attributed to 2025 AND 2026.
	userID := leave.EmployeeID("emp-1")
	schedules := []leave.VacationSchedule{
		{ID: "s1", UserID: userID, StartDate: date(2025, time.December, 29), EndDate: date(2026, time.January, 2), Status: leave.StatusCompleted},
	}

	assert.Equal(t, 5, leave.UsedDaysInYear(userID, 2025, schedules))
	assert.Equal(t, 5, leave.UsedDaysInYear(userID, 2026, schedules))
}

// =============================================================================
// SCHEDULE LIFECYCLE
// =============================================================================

func TestScheduleStatus_Transitions(t *testing.T) {
	cases := []struct {
		from, to leave.ScheduleStatus
		allowed  bool
	}{
		{leave.StatusScheduled, leave.StatusActive, true},
		{leave.StatusScheduled, leave.StatusCancelled, true},
		{leave.StatusScheduled, leave.StatusCompleted, false},
		{leave.StatusActive, leave.StatusCompleted, true},
		{leave.StatusActive, leave.StatusCancelled, true},
		{leave.StatusCompleted, leave.StatusCancelled, false},
		{leave.StatusCancelled, leave.StatusActive, false},
	}
	for _, tc := range cases {
		assert.Equalf(t, tc.allowed, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestScheduleOverlaps(t *testing.T) {
	s := leave.VacationSchedule{
		StartDate: date(2025, time.March, 10),
		EndDate:   date(2025, time.March, 14),
	}

	assert.True(t, s.Overlaps(date(2025, time.March, 14), date(2025, time.March, 20)), "shared boundary day overlaps")
	assert.True(t, s.Overlaps(date(2025, time.March, 1), date(2025, time.March, 31)), "containing range overlaps")
	assert.False(t, s.Overlaps(date(2025, time.March, 15), date(2025, time.March, 20)), "adjacent range does not overlap")
}
