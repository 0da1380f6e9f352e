/*
entitlement.go - Used/available/remaining day accounting

PURPOSE:
  Computes per-category day balances from an employee's accumulated
  counters. This is the central calculation that answers "how many days
  does this employee have left?"

BALANCE RULES:
  Annual:    base grant - used + carried over. NOT clamped to zero: a
             negative balance is a legitimate over-allocation signal the
             caller must surface, never silently corrected here.
  On-demand: statutory 4-day yearly cap, tracked separately from the
             annual pool it is drawn from. Clamped to zero because the
             cap forbids a negative representation.

USED-DAY ACCOUNTING:
  UsedDaysInYear sums business days of Active and Completed schedules
  only. Cancelled and not-yet-approved Scheduled records never count.
  A schedule spanning a year boundary contributes its FULL business-day
  span to every year it touches; the days are not clipped at the
  boundary. That matches the observed portal behavior and is kept as-is.

SEE ALSO:
  - calendar.go: BusinessDaysBetween
  - eligibility: per-leave-type admissibility on top of these balances
*/
package leave

// OnDemandYearlyCap is the statutory maximum of on-demand leave days per
// year. Drawn from the annual allowance but tracked separately.
const OnDemandYearlyCap = 4

// AvailableAnnualDays returns the employee's remaining annual allowance:
// base grant minus used days plus carryover. May be negative.
func AvailableAnnualDays(e Employee) int {
	return e.AnnualVacationDays - e.VacationDaysUsed + e.CarriedOverVacationDays
}

// RemainingOnDemandDays returns how many of the 4 statutory on-demand days
// are left. Never negative, even when the used counter is out of range.
func RemainingOnDemandDays(e Employee) int {
	remaining := OnDemandYearlyCap - e.OnDemandVacationDaysUsed
	if remaining < 0 {
		return 0
	}
	return remaining
}

// UsedDaysInYear sums the business days of the user's Active and Completed
// schedules that touch the given year.
func UsedDaysInYear(userID EmployeeID, year int, schedules []VacationSchedule) int {
	total := 0
	for _, s := range schedules {
		if s.UserID != userID {
			continue
		}
		if !s.Status.CountsTowardUsage() {
			continue
		}
		if !s.InYear(year) {
			continue
		}
		total += BusinessDaysBetween(s.StartDate, s.EndDate)
	}
	return total
}
