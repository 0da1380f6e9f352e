// Package memory provides an in-memory Directory implementation
// (for testing/dev).
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/atlashr/leave-engine/leave"
)

// =============================================================================
// MEMORY STORE - In-memory implementation of leave.Directory
// =============================================================================

type Store struct {
	mu          sync.RWMutex
	employees   map[leave.EmployeeID]leave.Employee
	departments map[leave.DepartmentID]leave.Department
	schedules   map[leave.ScheduleID]leave.VacationSchedule
}

func New() *Store {
	return &Store{
		employees:   make(map[leave.EmployeeID]leave.Employee),
		departments: make(map[leave.DepartmentID]leave.Department),
		schedules:   make(map[leave.ScheduleID]leave.VacationSchedule),
	}
}

// Compile-time check that Store implements leave.Directory
var _ leave.Directory = (*Store)(nil)

// =============================================================================
// SEEDING - Test/dev fixtures
// =============================================================================

func (s *Store) PutEmployee(e leave.Employee) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.employees[e.ID] = e
}

func (s *Store) PutDepartment(d leave.Department) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.departments[d.ID] = d
}

func (s *Store) PutSchedule(vs leave.VacationSchedule) error {
	if vs.EndDate.Before(vs.StartDate) {
		return leave.ErrInvalidScheduleRange
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.schedules[vs.ID] = vs
	return nil
}

// =============================================================================
// DIRECTORY IMPLEMENTATION
// =============================================================================

func (s *Store) GetEmployee(_ context.Context, id leave.EmployeeID) (*leave.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.employees[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (s *Store) GetSchedulesForUser(_ context.Context, id leave.EmployeeID) ([]leave.VacationSchedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []leave.VacationSchedule
	for _, vs := range s.schedules {
		if vs.UserID == id {
			result = append(result, vs)
		}
	}
	sortSchedules(result)
	return result, nil
}

func (s *Store) GetDepartmentRoster(_ context.Context, id leave.DepartmentID) ([]leave.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []leave.Employee
	for _, e := range s.employees {
		if e.DepartmentID == id {
			result = append(result, e)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (s *Store) GetDepartmentSchedulesInRange(_ context.Context, id leave.DepartmentID, start, end leave.Date) ([]leave.VacationSchedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	members := make(map[leave.EmployeeID]bool)
	for _, e := range s.employees {
		if e.DepartmentID == id {
			members[e.ID] = true
		}
	}

	var result []leave.VacationSchedule
	for _, vs := range s.schedules {
		if members[vs.UserID] && vs.Overlaps(start, end) {
			result = append(result, vs)
		}
	}
	sortSchedules(result)
	return result, nil
}

func (s *Store) GetSupervisor(ctx context.Context, id leave.EmployeeID) (*leave.Employee, error) {
	s.mu.RLock()
	e, ok := s.employees[id]
	s.mu.RUnlock()

	if !ok || e.SupervisorID == "" {
		return nil, nil
	}
	return s.GetEmployee(ctx, e.SupervisorID)
}

func sortSchedules(ss []leave.VacationSchedule) {
	sort.Slice(ss, func(i, j int) bool {
		if ss[i].StartDate.Equal(ss[j].StartDate) {
			return ss[i].ID < ss[j].ID
		}
		return ss[i].StartDate.Before(ss[j].StartDate)
	})
}
