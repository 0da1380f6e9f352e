/*
errors.go - Centralized error types for the leave engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  Validation failures are NOT errors: the eligibility and conflict
  components return structured verdicts so pre-submit UI checks can
  display messages without exception-handling overhead. The errors here
  cover the read path and the schedule lifecycle only.

ERROR CATEGORIES:
  1. Lookup errors - Missing employees/departments/schedules
  2. Schedule errors - Invalid ranges, illegal status transitions

USAGE:
  if errors.Is(err, leave.ErrEmployeeNotFound) { ... }
*/
package leave

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrEmployeeNotFound is returned by store operations that require an
	// existing employee record.
	ErrEmployeeNotFound = errors.New("employee not found")

	// ErrDepartmentNotFound is returned when a referenced department doesn't exist.
	ErrDepartmentNotFound = errors.New("department not found")

	// ErrScheduleNotFound is returned when a referenced schedule doesn't exist.
	ErrScheduleNotFound = errors.New("schedule not found")

	// ErrInvalidScheduleRange is returned when a schedule ends before it starts.
	ErrInvalidScheduleRange = errors.New("invalid schedule range: end before start")

	// ErrInvalidStatusTransition is returned when a schedule lifecycle rule
	// is violated (e.g. reactivating a completed schedule).
	ErrInvalidStatusTransition = errors.New("invalid schedule status transition")
)

// IsNotFound returns true if the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrEmployeeNotFound) ||
		errors.Is(err, ErrDepartmentNotFound) ||
		errors.Is(err, ErrScheduleNotFound)
}

// =============================================================================
// VERDICT TAXONOMY - Carried inside result values, never thrown
// =============================================================================

// ErrorKind classifies why a validation verdict is negative. The zero
// value means "no failure".
type ErrorKind string

const (
	KindNone                 ErrorKind = ""
	KindNotFound             ErrorKind = "not_found"
	KindInvalidRange         ErrorKind = "invalid_range"
	KindLimitExceeded        ErrorKind = "limit_exceeded"
	KindDocumentationMissing ErrorKind = "documentation_missing"
	// KindDefensiveUnknown is used only by the conflict detector when the
	// subject of the check cannot be resolved at all.
	KindDefensiveUnknown ErrorKind = "defensive_unknown"
)

// =============================================================================
// STRUCTURED ERRORS
// =============================================================================

// StatusTransitionError carries the offending transition.
type StatusTransitionError struct {
	ScheduleID ScheduleID
	From       ScheduleStatus
	To         ScheduleStatus
}

func (e *StatusTransitionError) Error() string {
	return fmt.Sprintf("schedule %s: cannot transition from %s to %s", e.ScheduleID, e.From, e.To)
}

func (e *StatusTransitionError) Unwrap() error {
	return ErrInvalidStatusTransition
}
