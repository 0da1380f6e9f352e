/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Complex response wrappers

DATES:
  All dates on the wire are "YYYY-MM-DD" strings. parseDate is the single
  place they are decoded so every handler rejects malformed input the
  same way.

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"github.com/atlashr/leave-engine/conflict"
	"github.com/atlashr/leave-engine/eligibility"
	"github.com/atlashr/leave-engine/leave"
)

// =============================================================================
// EMPLOYEES / DEPARTMENTS
// =============================================================================

// EmployeeDTO is the employee representation returned to clients.
type EmployeeDTO struct {
	ID                      string `json:"id"`
	Name                    string `json:"name"`
	Email                   string `json:"email,omitempty"`
	AnnualVacationDays      int    `json:"annual_vacation_days"`
	VacationDaysUsed        int    `json:"vacation_days_used"`
	CarriedOverVacationDays int    `json:"carried_over_vacation_days"`
	OnDemandDaysUsed        int    `json:"on_demand_days_used"`
	CircumstantialDaysUsed  int    `json:"circumstantial_days_used"`
	DepartmentID            string `json:"department_id"`
	SupervisorID            string `json:"supervisor_id,omitempty"`
	EmploymentStart         string `json:"employment_start"`
	IsActive                bool   `json:"is_active"`
}

func toEmployeeDTO(e leave.Employee) EmployeeDTO {
	return EmployeeDTO{
		ID:                      string(e.ID),
		Name:                    e.Name,
		Email:                   e.Email,
		AnnualVacationDays:      e.AnnualVacationDays,
		VacationDaysUsed:        e.VacationDaysUsed,
		CarriedOverVacationDays: e.CarriedOverVacationDays,
		OnDemandDaysUsed:        e.OnDemandVacationDaysUsed,
		CircumstantialDaysUsed:  e.CircumstantialLeaveDaysUsed,
		DepartmentID:            string(e.DepartmentID),
		SupervisorID:            string(e.SupervisorID),
		EmploymentStart:         e.EmploymentStart.String(),
		IsActive:                e.IsActive,
	}
}

// CreateEmployeeRequest is the request body for creating an employee.
type CreateEmployeeRequest struct {
	ID                      string `json:"id,omitempty"`
	Name                    string `json:"name"`
	Email                   string `json:"email,omitempty"`
	AnnualVacationDays      int    `json:"annual_vacation_days"`
	VacationDaysUsed        int    `json:"vacation_days_used,omitempty"`
	CarriedOverVacationDays int    `json:"carried_over_vacation_days,omitempty"`
	OnDemandDaysUsed        int    `json:"on_demand_days_used,omitempty"`
	CircumstantialDaysUsed  int    `json:"circumstantial_days_used,omitempty"`
	DepartmentID            string `json:"department_id"`
	SupervisorID            string `json:"supervisor_id,omitempty"`
	EmploymentStart         string `json:"employment_start"`
}

// DepartmentDTO is the department representation returned to clients.
type DepartmentDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CreateDepartmentRequest is the request body for creating a department.
type CreateDepartmentRequest struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

// =============================================================================
// SCHEDULES
// =============================================================================

// ScheduleDTO is the vacation schedule representation returned to clients.
type ScheduleDTO struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Status    string `json:"status"`
	LeaveType string `json:"leave_type"`
	Days      int    `json:"days"`
}

func toScheduleDTO(vs leave.VacationSchedule) ScheduleDTO {
	return ScheduleDTO{
		ID:        string(vs.ID),
		UserID:    string(vs.UserID),
		StartDate: vs.StartDate.String(),
		EndDate:   vs.EndDate.String(),
		Status:    string(vs.Status),
		LeaveType: string(vs.LeaveType),
		Days:      leave.BusinessDaysBetween(vs.StartDate, vs.EndDate),
	}
}

// CreateScheduleRequest is the request body for booking a schedule.
// Reason and HasDocumentation matter for circumstantial leave only; the
// booking runs the same eligibility check as /api/leave/validate.
type CreateScheduleRequest struct {
	UserID           string `json:"user_id"`
	StartDate        string `json:"start_date"`
	EndDate          string `json:"end_date"`
	LeaveType        string `json:"leave_type"`
	Reason           string `json:"reason,omitempty"`
	HasDocumentation bool   `json:"has_documentation,omitempty"`
}

// UpdateScheduleStatusRequest moves a schedule through its lifecycle.
type UpdateScheduleStatusRequest struct {
	Status string `json:"status"`
}

// =============================================================================
// VALIDATION / CONFLICTS
// =============================================================================

// ValidateLeaveRequest is the request body for POST /api/leave/validate.
type ValidateLeaveRequest struct {
	UserID           string `json:"user_id"`
	LeaveType        string `json:"leave_type"`
	StartDate        string `json:"start_date"`
	EndDate          string `json:"end_date"`
	Reason           string `json:"reason,omitempty"`
	HasDocumentation bool   `json:"has_documentation,omitempty"`
}

// ValidationResultDTO mirrors eligibility.Result on the wire.
type ValidationResultDTO struct {
	CanTake                 bool   `json:"can_take"`
	ErrorKind               string `json:"error_kind,omitempty"`
	ErrorMessage            string `json:"error_message,omitempty"`
	LeaveType               string `json:"leave_type"`
	DaysRequested           int    `json:"days_requested"`
	DaysRemaining           int    `json:"days_remaining"`
	Year                    int    `json:"year"`
	ReasonCategory          string `json:"reason_category,omitempty"`
	MaxAllowedDays          int    `json:"max_allowed_days,omitempty"`
	DocumentationRequired   bool   `json:"documentation_required,omitempty"`
	DocumentationSufficient bool   `json:"documentation_sufficient"`
}

func toValidationResultDTO(r eligibility.Result) ValidationResultDTO {
	return ValidationResultDTO{
		CanTake:                 r.CanTake,
		ErrorKind:               string(r.ErrorKind),
		ErrorMessage:            r.ErrorMessage,
		LeaveType:               string(r.LeaveType),
		DaysRequested:           r.DaysRequested,
		DaysRemaining:           r.DaysRemaining,
		Year:                    r.Year,
		ReasonCategory:          r.ReasonCategory,
		MaxAllowedDays:          r.MaxAllowedDays,
		DocumentationRequired:   r.DocumentationRequired,
		DocumentationSufficient: r.DocumentationSufficient,
	}
}

// CheckConflictsRequest is the request body for POST /api/leave/conflicts.
type CheckConflictsRequest struct {
	UserID    string `json:"user_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// ConflictDTO is a single detected conflict on the wire.
type ConflictDTO struct {
	Type       string `json:"type"`
	Severity   string `json:"severity"`
	Message    string `json:"message"`
	Kind       string `json:"kind,omitempty"`
	ScheduleID string `json:"schedule_id,omitempty"`
	EmployeeID string `json:"employee_id,omitempty"`
}

// CoverageDTO summarizes team coverage for the requested window.
type CoverageDTO struct {
	TeamSize           int     `json:"team_size"`
	MembersUnavailable int     `json:"members_unavailable"`
	CoveragePercentage float64 `json:"coverage_percentage"`
	IsAdequateCoverage bool    `json:"is_adequate_coverage"`
}

// ConflictReportDTO mirrors conflict.Report on the wire.
type ConflictReportDTO struct {
	HasConflicts  bool          `json:"has_conflicts"`
	Conflicts     []ConflictDTO `json:"conflicts"`
	Coverage      *CoverageDTO  `json:"coverage,omitempty"`
	CanBeApproved bool          `json:"can_be_approved"`
}

func toConflictReportDTO(rep conflict.Report) ConflictReportDTO {
	dto := ConflictReportDTO{
		HasConflicts:  rep.HasConflicts,
		Conflicts:     make([]ConflictDTO, 0, len(rep.Conflicts)),
		CanBeApproved: rep.CanBeApproved,
	}
	for _, c := range rep.Conflicts {
		dto.Conflicts = append(dto.Conflicts, ConflictDTO{
			Type:       string(c.Type),
			Severity:   string(c.Severity),
			Message:    c.Message,
			Kind:       string(c.Kind),
			ScheduleID: string(c.ScheduleID),
			EmployeeID: string(c.EmployeeID),
		})
	}
	if rep.Coverage.TeamSize > 0 {
		dto.Coverage = &CoverageDTO{
			TeamSize:           rep.Coverage.TeamSize,
			MembersUnavailable: rep.Coverage.MembersUnavailable,
			CoveragePercentage: rep.Coverage.CoveragePercentage,
			IsAdequateCoverage: rep.Coverage.IsAdequateCoverage,
		}
	}
	return dto
}

// =============================================================================
// ENTITLEMENT
// =============================================================================

// EntitlementDTO summarizes an employee's vacation position.
type EntitlementDTO struct {
	UserID             string `json:"user_id"`
	Year               int    `json:"year"`
	AnnualVacationDays int    `json:"annual_vacation_days"`
	CarriedOverDays    int    `json:"carried_over_days"`
	AvailableDays      int    `json:"available_days"`
	OnDemandRemaining  int    `json:"on_demand_remaining"`
	UsedDaysInYear     int    `json:"used_days_in_year"`
}

// ScenarioDTO describes a loadable demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ErrorResponse is the standard error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
