package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlashr/leave-engine/leave"
	"github.com/atlashr/leave-engine/store/sqlite"
)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func date(t *testing.T, s string) leave.Date {
	t.Helper()
	d, err := leave.ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestEmployeeRoundTrip(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	// GIVEN an employee with a supervisor and carried-over days
	emp := leave.Employee{
		ID:                      "emp-1",
		Name:                    "Anna Kowalska",
		Email:                   "anna.kowalska@example.com",
		AnnualVacationDays:      26,
		VacationDaysUsed:        10,
		CarriedOverVacationDays: 4,
		DepartmentID:            "dept-1",
		SupervisorID:            "emp-9",
		EmploymentStart:         date(t, "2020-03-01"),
		IsActive:                true,
	}
	require.NoError(t, store.SaveEmployee(ctx, emp))

	// WHEN loading it back
	got, err := store.GetEmployee(ctx, "emp-1")
	require.NoError(t, err)
	require.NotNil(t, got)

	// THEN every field survives the round trip
	assert.Equal(t, emp.Name, got.Name)
	assert.Equal(t, emp.Email, got.Email)
	assert.Equal(t, 26, got.AnnualVacationDays)
	assert.Equal(t, 10, got.VacationDaysUsed)
	assert.Equal(t, 4, got.CarriedOverVacationDays)
	assert.Equal(t, leave.EmployeeID("emp-9"), got.SupervisorID)
	assert.True(t, got.EmploymentStart.Equal(emp.EmploymentStart))
	assert.True(t, got.IsActive)
}

func TestGetEmployeeUnknownReturnsNil(t *testing.T) {
	store := newStore(t)

	got, err := store.GetEmployee(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestEmployeeWithoutSupervisor(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	emp := leave.Employee{
		ID:              "emp-solo",
		Name:            "Dyrektor",
		DepartmentID:    "dept-mgmt",
		EmploymentStart: date(t, "2015-01-01"),
		IsActive:        true,
	}
	require.NoError(t, store.SaveEmployee(ctx, emp))

	got, err := store.GetEmployee(ctx, "emp-solo")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.False(t, got.HasSupervisor())

	sup, err := store.GetSupervisor(ctx, "emp-solo")
	require.NoError(t, err)
	assert.Nil(t, sup)
}

func TestGetSupervisorResolution(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	boss := leave.Employee{
		ID: "boss", Name: "Szef", DepartmentID: "dept-mgmt",
		EmploymentStart: date(t, "2010-06-01"), IsActive: true,
	}
	worker := leave.Employee{
		ID: "worker", Name: "Pracownik", DepartmentID: "dept-1",
		SupervisorID:    "boss",
		EmploymentStart: date(t, "2022-02-01"), IsActive: true,
	}
	require.NoError(t, store.SaveEmployee(ctx, boss))
	require.NoError(t, store.SaveEmployee(ctx, worker))

	sup, err := store.GetSupervisor(ctx, "worker")
	require.NoError(t, err)
	require.NotNil(t, sup)
	assert.Equal(t, leave.EmployeeID("boss"), sup.ID)
}

func TestScheduleLifecycle(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	vs := leave.VacationSchedule{
		ID:        "sched-1",
		UserID:    "emp-1",
		StartDate: date(t, "2025-07-07"),
		EndDate:   date(t, "2025-07-11"),
		Status:    leave.StatusScheduled,
		LeaveType: leave.LeaveAnnual,
	}
	require.NoError(t, store.SaveSchedule(ctx, vs))

	// Scheduled -> Active is legal
	require.NoError(t, store.UpdateScheduleStatus(ctx, "sched-1", leave.StatusActive))

	got, err := store.GetSchedule(ctx, "sched-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, leave.StatusActive, got.Status)

	// Active -> Scheduled is not
	err = store.UpdateScheduleStatus(ctx, "sched-1", leave.StatusScheduled)
	var transErr *leave.StatusTransitionError
	require.ErrorAs(t, err, &transErr)
	assert.Equal(t, leave.StatusActive, transErr.From)

	// Active -> Completed is legal; completed schedules are terminal
	require.NoError(t, store.UpdateScheduleStatus(ctx, "sched-1", leave.StatusCompleted))
	err = store.UpdateScheduleStatus(ctx, "sched-1", leave.StatusCancelled)
	require.ErrorAs(t, err, &transErr)
}

func TestUpdateScheduleStatusUnknown(t *testing.T) {
	store := newStore(t)

	err := store.UpdateScheduleStatus(context.Background(), "ghost", leave.StatusActive)
	assert.True(t, errors.Is(err, leave.ErrScheduleNotFound))
}

func TestSaveScheduleRejectsInvertedRange(t *testing.T) {
	store := newStore(t)

	vs := leave.VacationSchedule{
		ID:        "sched-bad",
		UserID:    "emp-1",
		StartDate: date(t, "2025-07-11"),
		EndDate:   date(t, "2025-07-07"),
		Status:    leave.StatusScheduled,
		LeaveType: leave.LeaveAnnual,
	}
	err := store.SaveSchedule(context.Background(), vs)
	assert.True(t, errors.Is(err, leave.ErrInvalidScheduleRange))
}

func TestDepartmentSchedulesInRange(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	for _, e := range []leave.Employee{
		{ID: "a", Name: "A", DepartmentID: "dept-1", EmploymentStart: date(t, "2020-01-01"), IsActive: true},
		{ID: "b", Name: "B", DepartmentID: "dept-1", EmploymentStart: date(t, "2020-01-01"), IsActive: true},
		{ID: "c", Name: "C", DepartmentID: "dept-2", EmploymentStart: date(t, "2020-01-01"), IsActive: true},
	} {
		require.NoError(t, store.SaveEmployee(ctx, e))
	}

	put := func(id string, user leave.EmployeeID, start, end string) {
		require.NoError(t, store.SaveSchedule(ctx, leave.VacationSchedule{
			ID: leave.ScheduleID(id), UserID: user,
			StartDate: date(t, start), EndDate: date(t, end),
			Status: leave.StatusScheduled, LeaveType: leave.LeaveAnnual,
		}))
	}
	put("s1", "a", "2025-07-07", "2025-07-11") // inside window
	put("s2", "b", "2025-07-10", "2025-07-18") // straddles window end
	put("s3", "b", "2025-08-04", "2025-08-08") // outside window
	put("s4", "c", "2025-07-07", "2025-07-11") // other department

	got, err := store.GetDepartmentSchedulesInRange(ctx, "dept-1",
		date(t, "2025-07-07"), date(t, "2025-07-14"))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, leave.ScheduleID("s1"), got[0].ID)
	assert.Equal(t, leave.ScheduleID("s2"), got[1].ID)
}

func TestDepartmentRosterAndListing(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveDepartment(ctx, leave.Department{ID: "dept-1", Name: "Księgowość"}))
	require.NoError(t, store.SaveDepartment(ctx, leave.Department{ID: "dept-2", Name: "IT"}))

	for _, e := range []leave.Employee{
		{ID: "a", Name: "A", DepartmentID: "dept-1", EmploymentStart: date(t, "2020-01-01"), IsActive: true},
		{ID: "b", Name: "B", DepartmentID: "dept-1", EmploymentStart: date(t, "2020-01-01"), IsActive: true},
		{ID: "c", Name: "C", DepartmentID: "dept-2", EmploymentStart: date(t, "2020-01-01"), IsActive: true},
	} {
		require.NoError(t, store.SaveEmployee(ctx, e))
	}

	roster, err := store.GetDepartmentRoster(ctx, "dept-1")
	require.NoError(t, err)
	assert.Len(t, roster, 2)

	depts, err := store.ListDepartments(ctx)
	require.NoError(t, err)
	assert.Len(t, depts, 2)

	emps, err := store.ListEmployees(ctx)
	require.NoError(t, err)
	assert.Len(t, emps, 3)

	dept, err := store.GetDepartment(ctx, "dept-1")
	require.NoError(t, err)
	require.NotNil(t, dept)
	assert.Equal(t, "Księgowość", dept.Name)
}
