/*
handlers.go - HTTP handler implementations

PURPOSE:
  Implements the HTTP endpoints of the leave engine. Each handler:
  1. Decodes the request
  2. Validates input shape (dates, required fields)
  3. Calls domain logic (eligibility validator, conflict detector, store)
  4. Serializes the response

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Resource not found
  - 409: Illegal lifecycle transitions
  - 500: Internal errors

  Domain verdicts (eligibility failures, detected conflicts) are NOT
  HTTP errors - the checks ran fine, the answer is just "no". They come
  back 200 with the verdict in the body so the frontend can render the
  Polish message verbatim.

SECURITY NOTE:
  Currently NO authentication or authorization. All endpoints are public.
  The intranet gateway in front of this service handles auth.

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo scenario loaders
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/atlashr/leave-engine/conflict"
	"github.com/atlashr/leave-engine/eligibility"
	"github.com/atlashr/leave-engine/leave"
	"github.com/atlashr/leave-engine/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store     *sqlite.Store
	Validator *eligibility.Validator
	Detector  *conflict.Detector

	// Track currently loaded scenario
	currentScenario string
}

// NewHandler creates a new handler with the given store and engine config.
func NewHandler(store *sqlite.Store, cfg conflict.Config) *Handler {
	return &Handler{
		Store:     store,
		Validator: eligibility.New(store),
		Detector:  conflict.New(store, cfg),
	}
}

// =============================================================================
// LEAVE ENGINE (validation + conflicts)
// =============================================================================

// ValidateLeave answers "can this user take this leave" without booking
// anything. POST /api/leave/validate
func (h *Handler) ValidateLeave(w http.ResponseWriter, r *http.Request) {
	var req ValidateLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, "user_id is required", nil)
		return
	}

	start, end, ok := parseDateRange(w, req.StartDate, req.EndDate)
	if !ok {
		return
	}

	result, err := h.Validator.Validate(r.Context(), eligibility.Request{
		UserID:           leave.EmployeeID(req.UserID),
		Type:             leave.LeaveType(req.LeaveType),
		StartDate:        start,
		EndDate:          end,
		Reason:           req.Reason,
		HasDocumentation: req.HasDocumentation,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed", err)
		return
	}

	writeJSON(w, http.StatusOK, toValidationResultDTO(result))
}

// CheckConflicts reports scheduling conflicts for a proposed window.
// POST /api/leave/conflicts
func (h *Handler) CheckConflicts(w http.ResponseWriter, r *http.Request) {
	var req CheckConflictsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, "user_id is required", nil)
		return
	}

	start, end, ok := parseDateRange(w, req.StartDate, req.EndDate)
	if !ok {
		return
	}
	if end.Before(start) {
		writeError(w, http.StatusBadRequest, "end_date is before start_date", nil)
		return
	}

	report, err := h.Detector.Check(r.Context(), leave.EmployeeID(req.UserID), start, end)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Conflict check failed", err)
		return
	}

	writeJSON(w, http.StatusOK, toConflictReportDTO(report))
}

// GetEntitlement summarizes an employee's vacation position for a year.
// GET /api/employees/{id}/entitlement?year=2025
func (h *Handler) GetEntitlement(w http.ResponseWriter, r *http.Request) {
	id := leave.EmployeeID(chi.URLParam(r, "id"))

	emp, err := h.Store.GetEmployee(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load employee", err)
		return
	}
	if emp == nil {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}

	year := time.Now().UTC().Year()
	if y := r.URL.Query().Get("year"); y != "" {
		parsed, err := time.Parse("2006", y)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid year", err)
			return
		}
		year = parsed.Year()
	}

	schedules, err := h.Store.GetSchedulesForUser(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load schedules", err)
		return
	}

	writeJSON(w, http.StatusOK, EntitlementDTO{
		UserID:             string(emp.ID),
		Year:               year,
		AnnualVacationDays: emp.AnnualVacationDays,
		CarriedOverDays:    emp.CarriedOverVacationDays,
		AvailableDays:      leave.AvailableAnnualDays(*emp),
		OnDemandRemaining:  leave.RemainingOnDemandDays(*emp),
		UsedDaysInYear:     leave.UsedDaysInYear(id, year, schedules),
	})
}

// =============================================================================
// EMPLOYEES
// =============================================================================

// ListEmployees returns all employees. GET /api/employees
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Store.ListEmployees(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list employees", err)
		return
	}

	dtos := make([]EmployeeDTO, 0, len(employees))
	for _, e := range employees {
		dtos = append(dtos, toEmployeeDTO(e))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetEmployee returns one employee. GET /api/employees/{id}
func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id := leave.EmployeeID(chi.URLParam(r, "id"))

	emp, err := h.Store.GetEmployee(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load employee", err)
		return
	}
	if emp == nil {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toEmployeeDTO(*emp))
}

// CreateEmployee creates an employee record. POST /api/employees
func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Name == "" || req.DepartmentID == "" {
		writeError(w, http.StatusBadRequest, "name and department_id are required", nil)
		return
	}

	start, err := leave.ParseDate(req.EmploymentStart)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid employment_start", err)
		return
	}

	id := req.ID
	if id == "" {
		id = uuid.NewString()
	}

	emp := leave.Employee{
		ID:                          leave.EmployeeID(id),
		Name:                        req.Name,
		Email:                       req.Email,
		AnnualVacationDays:          req.AnnualVacationDays,
		VacationDaysUsed:            req.VacationDaysUsed,
		CarriedOverVacationDays:     req.CarriedOverVacationDays,
		OnDemandVacationDaysUsed:    req.OnDemandDaysUsed,
		CircumstantialLeaveDaysUsed: req.CircumstantialDaysUsed,
		DepartmentID:                leave.DepartmentID(req.DepartmentID),
		SupervisorID:                leave.EmployeeID(req.SupervisorID),
		EmploymentStart:             start,
		IsActive:                    true,
	}
	if err := h.Store.SaveEmployee(r.Context(), emp); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save employee", err)
		return
	}
	writeJSON(w, http.StatusCreated, toEmployeeDTO(emp))
}

// =============================================================================
// DEPARTMENTS
// =============================================================================

// ListDepartments returns all departments. GET /api/departments
func (h *Handler) ListDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := h.Store.ListDepartments(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list departments", err)
		return
	}

	dtos := make([]DepartmentDTO, 0, len(departments))
	for _, d := range departments {
		dtos = append(dtos, DepartmentDTO{ID: string(d.ID), Name: d.Name})
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateDepartment creates a department. POST /api/departments
func (h *Handler) CreateDepartment(w http.ResponseWriter, r *http.Request) {
	var req CreateDepartmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required", nil)
		return
	}

	id := req.ID
	if id == "" {
		id = uuid.NewString()
	}

	dept := leave.Department{ID: leave.DepartmentID(id), Name: req.Name}
	if err := h.Store.SaveDepartment(r.Context(), dept); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save department", err)
		return
	}
	writeJSON(w, http.StatusCreated, DepartmentDTO{ID: id, Name: req.Name})
}

// GetDepartmentRoster lists department members. GET /api/departments/{id}/roster
func (h *Handler) GetDepartmentRoster(w http.ResponseWriter, r *http.Request) {
	id := leave.DepartmentID(chi.URLParam(r, "id"))

	roster, err := h.Store.GetDepartmentRoster(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load roster", err)
		return
	}

	dtos := make([]EmployeeDTO, 0, len(roster))
	for _, e := range roster {
		dtos = append(dtos, toEmployeeDTO(e))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// SCHEDULES
// =============================================================================

// ListSchedulesForUser returns a user's schedules.
// GET /api/employees/{id}/schedules
func (h *Handler) ListSchedulesForUser(w http.ResponseWriter, r *http.Request) {
	id := leave.EmployeeID(chi.URLParam(r, "id"))

	schedules, err := h.Store.GetSchedulesForUser(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load schedules", err)
		return
	}

	dtos := make([]ScheduleDTO, 0, len(schedules))
	for _, vs := range schedules {
		dtos = append(dtos, toScheduleDTO(vs))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateSchedule books a vacation schedule. The booking is refused when
// eligibility fails or a critical conflict exists. POST /api/schedules
func (h *Handler) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	var req CreateScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, "user_id is required", nil)
		return
	}

	start, end, ok := parseDateRange(w, req.StartDate, req.EndDate)
	if !ok {
		return
	}

	result, err := h.Validator.Validate(r.Context(), eligibility.Request{
		UserID:           leave.EmployeeID(req.UserID),
		Type:             leave.LeaveType(req.LeaveType),
		StartDate:        start,
		EndDate:          end,
		Reason:           req.Reason,
		HasDocumentation: req.HasDocumentation,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed", err)
		return
	}
	if !result.CanTake {
		writeError(w, http.StatusConflict, result.ErrorMessage, nil)
		return
	}

	report, err := h.Detector.Check(r.Context(), leave.EmployeeID(req.UserID), start, end)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Conflict check failed", err)
		return
	}
	if !report.CanBeApproved {
		writeJSON(w, http.StatusConflict, toConflictReportDTO(report))
		return
	}

	vs := leave.VacationSchedule{
		ID:        leave.ScheduleID(uuid.NewString()),
		UserID:    leave.EmployeeID(req.UserID),
		StartDate: start,
		EndDate:   end,
		Status:    leave.StatusScheduled,
		LeaveType: leave.LeaveType(req.LeaveType),
	}
	if err := h.Store.SaveSchedule(r.Context(), vs); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save schedule", err)
		return
	}
	writeJSON(w, http.StatusCreated, toScheduleDTO(vs))
}

// UpdateScheduleStatus moves a schedule through its lifecycle.
// PUT /api/schedules/{id}/status
func (h *Handler) UpdateScheduleStatus(w http.ResponseWriter, r *http.Request) {
	id := leave.ScheduleID(chi.URLParam(r, "id"))

	var req UpdateScheduleStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	err := h.Store.UpdateScheduleStatus(r.Context(), id, leave.ScheduleStatus(req.Status))
	var transErr *leave.StatusTransitionError
	switch {
	case err == nil:
	case errors.Is(err, leave.ErrScheduleNotFound):
		writeError(w, http.StatusNotFound, "Schedule not found", nil)
		return
	case errors.As(err, &transErr):
		writeError(w, http.StatusConflict, "Illegal status transition", err)
		return
	default:
		writeError(w, http.StatusInternalServerError, "Failed to update status", err)
		return
	}

	vs, err := h.Store.GetSchedule(r.Context(), id)
	if err != nil || vs == nil {
		writeError(w, http.StatusInternalServerError, "Failed to reload schedule", err)
		return
	}
	writeJSON(w, http.StatusOK, toScheduleDTO(*vs))
}

// =============================================================================
// HELPERS
// =============================================================================

// parseDateRange decodes both wire dates, writing the 400 itself on
// failure. The bool reports whether the handler should continue.
func parseDateRange(w http.ResponseWriter, startStr, endStr string) (leave.Date, leave.Date, bool) {
	start, err := leave.ParseDate(startStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start_date", err)
		return leave.Date{}, leave.Date{}, false
	}
	end, err := leave.ParseDate(endStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid end_date", err)
		return leave.Date{}, leave.Date{}, false
	}
	return start, end, true
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
