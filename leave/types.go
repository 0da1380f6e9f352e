/*
Package leave provides the core domain model for the vacation engine.

PURPOSE:
  This package contains the read models and shared types that the
  eligibility and conflict components operate on. Employees, departments
  and vacation schedules are consumed as immutable snapshots: nothing in
  this module mutates the persisted records, counter updates happen in
  the approval workflow outside this engine.

KEY CONCEPTS IN THIS FILE (types.go):
  - Employee: Read-only snapshot of vacation counters and org placement
  - VacationSchedule: A booked leave span with lifecycle status
  - LeaveType: Closed enum driving eligibility dispatch
  - Directory: Read-path interfaces into the persistence layer

DESIGN PRINCIPLES:
  1. Purity: The engine is a function of its inputs plus snapshots
  2. Type Safety: Strong typing for IDs prevents mixing user/department IDs
  3. Exhaustiveness: LeaveType is a closed set so dispatch can be total

SEE ALSO:
  - calendar.go: Business-day arithmetic and proportional entitlement
  - entitlement.go: Used/available/remaining day accounting
  - errors.go: Error taxonomy shared with eligibility and conflict
*/
package leave

import "context"

// =============================================================================
// IDENTIFIERS
// =============================================================================

type EmployeeID string
type DepartmentID string
type ScheduleID string

// =============================================================================
// LEAVE TYPE - Closed enum, drives eligibility dispatch
// =============================================================================

type LeaveType string

const (
	LeaveAnnual         LeaveType = "annual"
	LeaveOnDemand       LeaveType = "on_demand"
	LeaveCircumstantial LeaveType = "circumstantial"
	LeaveSick           LeaveType = "sick"
)

// AllLeaveTypes lists every supported type, in validation order.
func AllLeaveTypes() []LeaveType {
	return []LeaveType{LeaveAnnual, LeaveOnDemand, LeaveCircumstantial, LeaveSick}
}

// =============================================================================
// EMPLOYEE - Read-only snapshot of the user record
// =============================================================================

// Employee is the engine's read model of a portal user. The counters
// (VacationDaysUsed, OnDemandVacationDaysUsed, ...) are maintained by the
// approval workflow; the engine only reads them.
type Employee struct {
	ID    EmployeeID
	Name  string
	Email string

	// Entitlement counters for the current year
	AnnualVacationDays          int // base yearly grant
	VacationDaysUsed            int // cumulative annual days used
	CarriedOverVacationDays     int // carried from prior year, may expire
	OnDemandVacationDaysUsed    int // statutory cap: 0..4
	CircumstantialLeaveDaysUsed int

	// Org placement
	DepartmentID DepartmentID
	SupervisorID EmployeeID // empty = no supervisor (weak reference)

	EmploymentStart Date
	IsActive        bool
}

// HasSupervisor reports whether the employee has a supervisor on record.
func (e Employee) HasSupervisor() bool { return e.SupervisorID != "" }

// Department is the org unit an employee belongs to.
type Department struct {
	ID   DepartmentID
	Name string
}

// =============================================================================
// VACATION SCHEDULE - A booked leave span with lifecycle status
// =============================================================================

type ScheduleStatus string

const (
	StatusScheduled ScheduleStatus = "scheduled"
	StatusActive    ScheduleStatus = "active"
	StatusCompleted ScheduleStatus = "completed"
	StatusCancelled ScheduleStatus = "cancelled"
)

// CountsTowardUsage reports whether the schedule contributes to used-day
// accounting. Scheduled-but-unapproved and cancelled records do not.
func (s ScheduleStatus) CountsTowardUsage() bool {
	return s == StatusActive || s == StatusCompleted
}

// BlocksScheduling reports whether the schedule participates in overlap
// and coverage checks. Only cancelled records are ignored.
func (s ScheduleStatus) BlocksScheduling() bool {
	return s == StatusScheduled || s == StatusActive || s == StatusCompleted
}

// CanTransitionTo enforces the schedule lifecycle:
// Scheduled -> Active -> Completed, with cancellation allowed at any
// point before completion.
func (s ScheduleStatus) CanTransitionTo(next ScheduleStatus) bool {
	switch s {
	case StatusScheduled:
		return next == StatusActive || next == StatusCancelled
	case StatusActive:
		return next == StatusCompleted || next == StatusCancelled
	default:
		return false
	}
}

// VacationSchedule is a leave span booked for a user.
// StartDate <= EndDate is required; both ends are inclusive.
type VacationSchedule struct {
	ID        ScheduleID
	UserID    EmployeeID
	StartDate Date
	EndDate   Date
	Status    ScheduleStatus
	LeaveType LeaveType
}

// Overlaps reports whether the schedule intersects [start, end] (inclusive).
func (vs VacationSchedule) Overlaps(start, end Date) bool {
	return !vs.EndDate.Before(start) && !vs.StartDate.After(end)
}

// InYear reports whether any day of the span falls within the year.
func (vs VacationSchedule) InYear(year int) bool {
	return vs.StartDate.Year() <= year && vs.EndDate.Year() >= year
}

// =============================================================================
// DIRECTORY - Read path into the persistence layer
// =============================================================================

// Directory is the engine's view of the persistence layer. All lookups are
// reads; a missing record is reported as (nil, nil), not as an error.
// Implementations: store/memory (tests, dev) and store/sqlite.
type Directory interface {
	// GetEmployee returns the employee snapshot or nil when unknown.
	GetEmployee(ctx context.Context, id EmployeeID) (*Employee, error)

	// GetSchedulesForUser returns all schedules belonging to the user.
	GetSchedulesForUser(ctx context.Context, id EmployeeID) ([]VacationSchedule, error)

	// GetDepartmentRoster returns the full roster of a department,
	// including inactive members. Callers filter on IsActive.
	GetDepartmentRoster(ctx context.Context, id DepartmentID) ([]Employee, error)

	// GetDepartmentSchedulesInRange returns department members' schedules
	// intersecting [start, end].
	GetDepartmentSchedulesInRange(ctx context.Context, id DepartmentID, start, end Date) ([]VacationSchedule, error)

	// GetSupervisor resolves the user's supervisor or nil when none.
	GetSupervisor(ctx context.Context, id EmployeeID) (*Employee, error)
}
