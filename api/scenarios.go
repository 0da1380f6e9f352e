/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:

	Provides pre-built scenarios that populate the database with realistic
	data for testing and demos. Each scenario creates departments,
	employees, and vacation schedules that demonstrate specific engine
	behavior.

AVAILABLE SCENARIOS:

	small-team:         One department, supervisor chain, a few bookings
	coverage-crunch:    Overlapping vacations pushing coverage past the floor
	new-hire:           Mid-year hire with prorated entitlement
	on-demand-spent:    Employee who already burned all on-demand days

HOW SCENARIOS WORK:
 1. Reset database (clear all data)
 2. Create departments
 3. Create employees with supervisor links
 4. Book vacation schedules in various lifecycle states

USAGE VIA API:

	POST /api/scenarios/load
	{"scenario_id": "coverage-crunch"}

ADDING NEW SCENARIOS:
 1. Add to 'scenarios' slice with ID, name, description
 2. Create loader function: loadXxxScenario(ctx, h)
 3. Add case to LoadScenario handler

NOTE:

	Scenarios reset the database. Only use in development/demo environments.

SEE ALSO:
  - handlers.go: Shared writeJSON/writeError helpers
  - server.go: /api/scenarios routes
*/
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/atlashr/leave-engine/leave"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "small-team",
		Name:        "Small Team",
		Description: "One department with a supervisor chain and a few bookings",
	},
	{
		ID:          "coverage-crunch",
		Name:        "Coverage Crunch",
		Description: "Overlapping vacations pushing team coverage below the floor",
	},
	{
		ID:          "new-hire",
		Name:        "New Hire",
		Description: "Mid-year hire with a prorated annual entitlement",
	},
	{
		ID:          "on-demand-spent",
		Name:        "On-Demand Spent",
		Description: "Employee who already used all on-demand days this year",
	},
}

// ListScenarios returns available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// GetCurrentScenario returns the currently loaded scenario, if any.
func (h *Handler) GetCurrentScenario(w http.ResponseWriter, r *http.Request) {
	if h.currentScenario == "" {
		writeJSON(w, http.StatusOK, nil)
		return
	}

	for _, s := range scenarios {
		if s.ID == h.currentScenario {
			writeJSON(w, http.StatusOK, s)
			return
		}
	}

	// Scenario ID exists but not in list (shouldn't happen)
	writeJSON(w, http.StatusOK, ScenarioDTO{
		ID:          h.currentScenario,
		Name:        h.currentScenario,
		Description: "Currently loaded scenario",
	})
}

// LoadScenario loads a predefined scenario.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ScenarioID string `json:"scenario_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	ctx := r.Context()

	// Reset first
	if err := h.Store.Reset(ctx); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}
	h.currentScenario = ""

	var err error
	switch req.ScenarioID {
	case "small-team":
		err = h.loadSmallTeamScenario(ctx)
	case "coverage-crunch":
		err = h.loadCoverageCrunchScenario(ctx)
	case "new-hire":
		err = h.loadNewHireScenario(ctx)
	case "on-demand-spent":
		err = h.loadOnDemandSpentScenario(ctx)
	default:
		writeError(w, http.StatusBadRequest, "Unknown scenario", nil)
		return
	}

	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to load scenario: %v", err), err)
		return
	}

	h.currentScenario = req.ScenarioID

	writeJSON(w, http.StatusOK, map[string]string{"status": "loaded", "scenario": req.ScenarioID})
}

// =============================================================================
// SCENARIO LOADERS
// =============================================================================

// seedEmployee cuts down on the field noise in loaders.
func seedEmployee(id, name, dept, supervisor string, annual, used, carried, onDemand int, start leave.Date) leave.Employee {
	return leave.Employee{
		ID:                       leave.EmployeeID(id),
		Name:                     name,
		Email:                    id + "@firma.example.pl",
		AnnualVacationDays:       annual,
		VacationDaysUsed:         used,
		CarriedOverVacationDays:  carried,
		OnDemandVacationDaysUsed: onDemand,
		DepartmentID:             leave.DepartmentID(dept),
		SupervisorID:             leave.EmployeeID(supervisor),
		EmploymentStart:          start,
		IsActive:                 true,
	}
}

func (h *Handler) seedAll(ctx context.Context, depts []leave.Department, emps []leave.Employee, schedules []leave.VacationSchedule) error {
	for _, d := range depts {
		if err := h.Store.SaveDepartment(ctx, d); err != nil {
			return err
		}
	}
	for _, e := range emps {
		if err := h.Store.SaveEmployee(ctx, e); err != nil {
			return err
		}
	}
	for _, vs := range schedules {
		if err := h.Store.SaveSchedule(ctx, vs); err != nil {
			return err
		}
	}
	return nil
}

func (h *Handler) loadSmallTeamScenario(ctx context.Context) error {
	hired := leave.NewDate(2021, time.March, 1)

	return h.seedAll(ctx,
		[]leave.Department{
			{ID: "ksiegowosc", Name: "Księgowość"},
			{ID: "zarzad", Name: "Zarząd"},
		},
		[]leave.Employee{
			seedEmployee("dyrektor", "Maria Dyrektor", "zarzad", "", 26, 4, 0, 0, hired),
			seedEmployee("kierownik", "Jan Kierownik", "ksiegowosc", "dyrektor", 26, 8, 2, 1, hired),
			seedEmployee("anna", "Anna Kowalska", "ksiegowosc", "kierownik", 26, 10, 4, 2, hired),
			seedEmployee("piotr", "Piotr Nowak", "ksiegowosc", "kierownik", 20, 5, 0, 0, hired),
		},
		[]leave.VacationSchedule{
			{
				ID: "vs-anna-lipiec", UserID: "anna",
				StartDate: leave.NewDate(2025, time.July, 7),
				EndDate:   leave.NewDate(2025, time.July, 18),
				Status:    leave.StatusCompleted, LeaveType: leave.LeaveAnnual,
			},
			{
				ID: "vs-piotr-wrzesien", UserID: "piotr",
				StartDate: leave.NewDate(2025, time.September, 8),
				EndDate:   leave.NewDate(2025, time.September, 12),
				Status:    leave.StatusScheduled, LeaveType: leave.LeaveAnnual,
			},
		},
	)
}

func (h *Handler) loadCoverageCrunchScenario(ctx context.Context) error {
	hired := leave.NewDate(2020, time.January, 7)

	emps := []leave.Employee{
		seedEmployee("szef", "Tomasz Szef", "zarzad", "", 26, 0, 0, 0, hired),
	}
	var schedules []leave.VacationSchedule
	for i, name := range []string{"Ewa", "Marek", "Ola", "Karol"} {
		id := fmt.Sprintf("it-%d", i+1)
		emps = append(emps, seedEmployee(id, name+" Zespołowa", "it", "szef", 26, 0, 0, 0, hired))
		// Three of four already booked for the same August week
		if i < 3 {
			schedules = append(schedules, leave.VacationSchedule{
				ID:        leave.ScheduleID(fmt.Sprintf("vs-crunch-%d", i+1)),
				UserID:    leave.EmployeeID(id),
				StartDate: leave.NewDate(2025, time.August, 4),
				EndDate:   leave.NewDate(2025, time.August, 8),
				Status:    leave.StatusScheduled,
				LeaveType: leave.LeaveAnnual,
			})
		}
	}

	return h.seedAll(ctx,
		[]leave.Department{
			{ID: "it", Name: "IT"},
			{ID: "zarzad", Name: "Zarząd"},
		},
		emps, schedules,
	)
}

func (h *Handler) loadNewHireScenario(ctx context.Context) error {
	return h.seedAll(ctx,
		[]leave.Department{{ID: "hr", Name: "Kadry"}},
		[]leave.Employee{
			seedEmployee("kadrowa", "Beata Kadrowa", "hr", "", 26, 6, 0, 0,
				leave.NewDate(2018, time.May, 14)),
			// Hired July 1st: entitled to ceil(26/12 * 6) = 13 days this year
			seedEmployee("nowy", "Michał Nowy", "hr", "kadrowa", 13, 0, 0, 0,
				leave.NewDate(2025, time.July, 1)),
		},
		nil,
	)
}

func (h *Handler) loadOnDemandSpentScenario(ctx context.Context) error {
	hired := leave.NewDate(2019, time.October, 1)

	return h.seedAll(ctx,
		[]leave.Department{{ID: "sprzedaz", Name: "Sprzedaż"}},
		[]leave.Employee{
			seedEmployee("handlowiec", "Paweł Handlowiec", "sprzedaz", "", 26, 12, 0, 4, hired),
		},
		[]leave.VacationSchedule{
			{
				ID: "vs-od-1", UserID: "handlowiec",
				StartDate: leave.NewDate(2025, time.February, 3),
				EndDate:   leave.NewDate(2025, time.February, 4),
				Status:    leave.StatusCompleted, LeaveType: leave.LeaveOnDemand,
			},
			{
				ID: "vs-od-2", UserID: "handlowiec",
				StartDate: leave.NewDate(2025, time.June, 9),
				EndDate:   leave.NewDate(2025, time.June, 10),
				Status:    leave.StatusCompleted, LeaveType: leave.LeaveOnDemand,
			},
		},
	)
}
