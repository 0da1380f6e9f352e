/*
Package sqlite provides the SQLite-backed persistence for the leave engine.

PURPOSE:
  Implements leave.Directory plus the thin CRUD the portal surface needs
  (employees, departments, vacation schedules). In production the same
  patterns apply to PostgreSQL - only minor SQL dialect differences.

KEY TABLES:
  employees:          Org placement and the per-year vacation counters
  departments:        Org units for roster/coverage resolution
  vacation_schedules: Booked leave spans with lifecycle status

LIFECYCLE ENFORCEMENT:
  UpdateScheduleStatus refuses transitions outside
  Scheduled -> Active -> Completed (cancellation allowed before
  completion). Corrections to a completed schedule require a new record.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. In production with PostgreSQL,
  database-level concurrency control handles this instead.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency.

USAGE:
  store, err := sqlite.New("./data/portal.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - leave/types.go: Directory interface definition
  - store/memory: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/atlashr/leave-engine/leave"
)

// Store implements leave.Directory and the portal CRUD using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Compile-time check that Store implements leave.Directory
var _ leave.Directory = (*Store)(nil)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Departments (org units)
	CREATE TABLE IF NOT EXISTS departments (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	-- Employees with vacation counters
	CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT,
		annual_vacation_days INTEGER NOT NULL DEFAULT 0,
		vacation_days_used INTEGER NOT NULL DEFAULT 0,
		carried_over_days INTEGER NOT NULL DEFAULT 0,
		on_demand_days_used INTEGER NOT NULL DEFAULT 0,
		circumstantial_days_used INTEGER NOT NULL DEFAULT 0,
		department_id TEXT NOT NULL,
		supervisor_id TEXT,
		employment_start TEXT NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_employees_department
		ON employees(department_id);
	CREATE INDEX IF NOT EXISTS idx_employees_supervisor
		ON employees(supervisor_id) WHERE supervisor_id IS NOT NULL;

	-- Vacation schedules (booked leave spans)
	CREATE TABLE IF NOT EXISTS vacation_schedules (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'scheduled',
		leave_type TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_schedules_user
		ON vacation_schedules(user_id);
	CREATE INDEX IF NOT EXISTS idx_schedules_status
		ON vacation_schedules(status);

	-- Composite index for window queries (hot path for conflict checks)
	CREATE INDEX IF NOT EXISTS idx_schedules_user_dates
		ON vacation_schedules(user_id, start_date, end_date);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Reset clears all data. Dev and demo use only.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, table := range []string{"vacation_schedules", "employees", "departments"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to reset %s: %w", table, err)
		}
	}
	return nil
}

// =============================================================================
// DIRECTORY (leave.Directory interface)
// =============================================================================

const employeeColumns = `id, name, email, annual_vacation_days, vacation_days_used,
	carried_over_days, on_demand_days_used, circumstantial_days_used,
	department_id, supervisor_id, employment_start, is_active`

// GetEmployee returns the employee snapshot or nil when unknown.
func (s *Store) GetEmployee(ctx context.Context, id leave.EmployeeID) (*leave.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE id = ?`, id)
	emp, err := scanEmployee(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}
	return emp, nil
}

// GetSchedulesForUser returns all schedules belonging to the user.
func (s *Store) GetSchedulesForUser(ctx context.Context, id leave.EmployeeID) ([]leave.VacationSchedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, user_id, start_date, end_date, status, leave_type
		FROM vacation_schedules
		WHERE user_id = ?
		ORDER BY start_date ASC, id ASC
	`
	return s.querySchedules(ctx, query, id)
}

// GetDepartmentRoster returns all members of a department.
func (s *Store) GetDepartmentRoster(ctx context.Context, id leave.DepartmentID) ([]leave.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE department_id = ? ORDER BY id ASC`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query roster: %w", err)
	}
	defer rows.Close()

	var result []leave.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *emp)
	}
	return result, rows.Err()
}

// GetDepartmentSchedulesInRange returns department members' schedules
// intersecting [start, end].
func (s *Store) GetDepartmentSchedulesInRange(ctx context.Context, id leave.DepartmentID, start, end leave.Date) ([]leave.VacationSchedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT vs.id, vs.user_id, vs.start_date, vs.end_date, vs.status, vs.leave_type
		FROM vacation_schedules vs
		JOIN employees e ON e.id = vs.user_id
		WHERE e.department_id = ?
		  AND vs.end_date >= ? AND vs.start_date <= ?
		ORDER BY vs.start_date ASC, vs.id ASC
	`
	return s.querySchedules(ctx, query, id, start.String(), end.String())
}

// GetSupervisor resolves the user's supervisor or nil when none.
func (s *Store) GetSupervisor(ctx context.Context, id leave.EmployeeID) (*leave.Employee, error) {
	emp, err := s.GetEmployee(ctx, id)
	if err != nil || emp == nil || !emp.HasSupervisor() {
		return nil, err
	}
	return s.GetEmployee(ctx, emp.SupervisorID)
}

// =============================================================================
// EMPLOYEE / DEPARTMENT CRUD
// =============================================================================

// SaveEmployee inserts or replaces an employee record.
func (s *Store) SaveEmployee(ctx context.Context, e leave.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT OR REPLACE INTO employees
		(id, name, email, annual_vacation_days, vacation_days_used, carried_over_days,
		 on_demand_days_used, circumstantial_days_used, department_id, supervisor_id,
		 employment_start, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		e.ID, e.Name, e.Email,
		e.AnnualVacationDays, e.VacationDaysUsed, e.CarriedOverVacationDays,
		e.OnDemandVacationDaysUsed, e.CircumstantialLeaveDaysUsed,
		e.DepartmentID, nullString(string(e.SupervisorID)),
		e.EmploymentStart.String(), e.IsActive,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to save employee: %w", err)
	}
	return nil
}

// ListEmployees returns all employee records.
func (s *Store) ListEmployees(ctx context.Context) ([]leave.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+employeeColumns+` FROM employees ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var result []leave.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *emp)
	}
	return result, rows.Err()
}

// SaveDepartment inserts or replaces a department.
func (s *Store) SaveDepartment(ctx context.Context, d leave.Department) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO departments (id, name, created_at) VALUES (?, ?, ?)`,
		d.ID, d.Name, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save department: %w", err)
	}
	return nil
}

// GetDepartment returns a department or nil when unknown.
func (s *Store) GetDepartment(ctx context.Context, id leave.DepartmentID) (*leave.Department, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var d leave.Department
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name FROM departments WHERE id = ?`, id).Scan(&d.ID, &d.Name)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get department: %w", err)
	}
	return &d, nil
}

// ListDepartments returns all departments.
func (s *Store) ListDepartments(ctx context.Context) ([]leave.Department, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM departments ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	defer rows.Close()

	var result []leave.Department
	for rows.Next() {
		var d leave.Department
		if err := rows.Scan(&d.ID, &d.Name); err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	return result, rows.Err()
}

// =============================================================================
// SCHEDULE CRUD + LIFECYCLE
// =============================================================================

// SaveSchedule inserts a schedule. The range invariant is enforced here
// so malformed spans never reach the engine.
func (s *Store) SaveSchedule(ctx context.Context, vs leave.VacationSchedule) error {
	if vs.EndDate.Before(vs.StartDate) {
		return leave.ErrInvalidScheduleRange
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC().Format(time.RFC3339)
	query := `
		INSERT INTO vacation_schedules
		(id, user_id, start_date, end_date, status, leave_type, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		vs.ID, vs.UserID, vs.StartDate.String(), vs.EndDate.String(),
		vs.Status, vs.LeaveType, now, now)
	if err != nil {
		return fmt.Errorf("failed to save schedule: %w", err)
	}
	return nil
}

// GetSchedule returns a schedule or nil when unknown.
func (s *Store) GetSchedule(ctx context.Context, id leave.ScheduleID) (*leave.VacationSchedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, start_date, end_date, status, leave_type
		FROM vacation_schedules WHERE id = ?`, id)
	vs, err := scanSchedule(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get schedule: %w", err)
	}
	return vs, nil
}

// ListSchedulesByStatus returns all schedules in the given status.
func (s *Store) ListSchedulesByStatus(ctx context.Context, status leave.ScheduleStatus) ([]leave.VacationSchedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, user_id, start_date, end_date, status, leave_type
		FROM vacation_schedules
		WHERE status = ?
		ORDER BY start_date ASC, id ASC
	`
	return s.querySchedules(ctx, query, status)
}

// UpdateScheduleStatus moves a schedule through its lifecycle, rejecting
// illegal transitions.
func (s *Store) UpdateScheduleStatus(ctx context.Context, id leave.ScheduleID, next leave.ScheduleStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var current leave.ScheduleStatus
	err := s.db.QueryRowContext(ctx,
		`SELECT status FROM vacation_schedules WHERE id = ?`, id).Scan(&current)
	if err == sql.ErrNoRows {
		return leave.ErrScheduleNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to load schedule status: %w", err)
	}

	if !current.CanTransitionTo(next) {
		return &leave.StatusTransitionError{ScheduleID: id, From: current, To: next}
	}

	_, err = s.db.ExecContext(ctx,
		`UPDATE vacation_schedules SET status = ?, updated_at = ? WHERE id = ?`,
		next, time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("failed to update schedule status: %w", err)
	}
	return nil
}

// =============================================================================
// SCAN HELPERS
// =============================================================================

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row rowScanner) (*leave.Employee, error) {
	var (
		e               leave.Employee
		email           sql.NullString
		supervisorID    sql.NullString
		employmentStart string
	)
	err := row.Scan(
		&e.ID, &e.Name, &email,
		&e.AnnualVacationDays, &e.VacationDaysUsed, &e.CarriedOverVacationDays,
		&e.OnDemandVacationDaysUsed, &e.CircumstantialLeaveDaysUsed,
		&e.DepartmentID, &supervisorID, &employmentStart, &e.IsActive,
	)
	if err != nil {
		return nil, err
	}
	e.Email = email.String
	e.SupervisorID = leave.EmployeeID(supervisorID.String)
	e.EmploymentStart, err = leave.ParseDate(employmentStart)
	if err != nil {
		return nil, fmt.Errorf("corrupt employment_start for employee %s: %w", e.ID, err)
	}
	return &e, nil
}

func scanSchedule(row rowScanner) (*leave.VacationSchedule, error) {
	var (
		vs         leave.VacationSchedule
		start, end string
	)
	if err := row.Scan(&vs.ID, &vs.UserID, &start, &end, &vs.Status, &vs.LeaveType); err != nil {
		return nil, err
	}
	var err error
	if vs.StartDate, err = leave.ParseDate(start); err != nil {
		return nil, fmt.Errorf("corrupt start_date for schedule %s: %w", vs.ID, err)
	}
	if vs.EndDate, err = leave.ParseDate(end); err != nil {
		return nil, fmt.Errorf("corrupt end_date for schedule %s: %w", vs.ID, err)
	}
	return &vs, nil
}

func (s *Store) querySchedules(ctx context.Context, query string, args ...any) ([]leave.VacationSchedule, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query schedules: %w", err)
	}
	defer rows.Close()

	var result []leave.VacationSchedule
	for rows.Next() {
		vs, err := scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *vs)
	}
	return result, rows.Err()
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
