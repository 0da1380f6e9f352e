/*
Package eligibility validates whether a specific leave request is allowable.

PURPOSE:
  One admissibility check per leave type (Annual, OnDemand,
  Circumstantial, Sick) on top of the balances computed by the leave
  package. Every check is idempotent and side-effect-free: it never
  mutates the employee's counters. Counter updates happen in the approval
  workflow once a request is actually approved.

VERDICTS, NOT ERRORS:
  A failed check is a structured Result with CanTake=false and a
  human-readable message, never a Go error. Errors are reserved for the
  read path into the Directory (store failures).

MESSAGES:
  User-facing messages are Polish - the portal's primary language - and
  match the wording the frontend expects verbatim.

SEE ALSO:
  - reasons.go: Circumstantial reason-to-category mapping
  - conflict: Scheduling-risk checks run after eligibility passes
*/
package eligibility

import (
	"context"
	"fmt"

	"github.com/atlashr/leave-engine/leave"
)

// =============================================================================
// RESULT - Structured eligibility verdict
// =============================================================================

// Result is the outcome of an eligibility check. Diagnostic fields are
// populated per leave type; zero values mean "not applicable".
type Result struct {
	CanTake      bool
	ErrorKind    leave.ErrorKind
	ErrorMessage string

	LeaveType     leave.LeaveType
	DaysRequested int
	DaysRemaining int
	Year          int

	// Circumstantial diagnostics
	ReasonCategory          string
	MaxAllowedDays          int
	DocumentationRequired   bool
	DocumentationSufficient bool
}

// User-facing messages (Polish, matched verbatim by the frontend).
const (
	msgUserNotFound     = "Użytkownik nie istnieje"
	msgInvalidDateRange = "Nieprawidłowy zakres dat urlopu"
	msgOnDemandCapUsed  = "Wykorzystano już wszystkie 4 dni urlopu na żądanie w tym roku"
)

// =============================================================================
// REQUEST & DISPATCH
// =============================================================================

// Request is a leave request to validate.
type Request struct {
	UserID           leave.EmployeeID
	Type             leave.LeaveType
	StartDate        leave.Date
	EndDate          leave.Date
	Reason           string // circumstantial only
	HasDocumentation bool   // circumstantial only
}

// Validator runs per-leave-type admissibility checks. Stateless; safe for
// concurrent use across goroutines.
type Validator struct {
	Directory leave.Directory
}

func New(dir leave.Directory) *Validator {
	return &Validator{Directory: dir}
}

// Validate dispatches to the check for the request's leave type. The
// switch is exhaustive over the closed LeaveType set; an unknown type is
// a programming error, not a user-facing verdict.
func (v *Validator) Validate(ctx context.Context, req Request) (Result, error) {
	switch req.Type {
	case leave.LeaveAnnual:
		return v.ValidateAnnual(ctx, req.UserID, req.StartDate, req.EndDate)
	case leave.LeaveOnDemand:
		return v.ValidateOnDemand(ctx, req.UserID, req.StartDate, req.EndDate)
	case leave.LeaveCircumstantial:
		return v.ValidateCircumstantial(ctx, req.UserID, req.StartDate, req.EndDate, req.Reason, req.HasDocumentation)
	case leave.LeaveSick:
		return v.ValidateSick(ctx, req.UserID, req.StartDate, req.EndDate)
	default:
		return Result{}, fmt.Errorf("unknown leave type %q", req.Type)
	}
}

// =============================================================================
// SHARED PRE-CHECK
// =============================================================================

// resolve runs the checks shared by every leave type: the employee must
// exist and the range must not be inverted. A nil employee with an empty
// Result means the pre-checks passed.
func (v *Validator) resolve(ctx context.Context, userID leave.EmployeeID, start, end leave.Date, lt leave.LeaveType) (*leave.Employee, Result, error) {
	emp, err := v.Directory.GetEmployee(ctx, userID)
	if err != nil {
		return nil, Result{}, err
	}
	if emp == nil {
		return nil, Result{
			CanTake:      false,
			ErrorKind:    leave.KindNotFound,
			ErrorMessage: msgUserNotFound,
			LeaveType:    lt,
		}, nil
	}
	if end.Before(start) {
		return nil, Result{
			CanTake:      false,
			ErrorKind:    leave.KindInvalidRange,
			ErrorMessage: msgInvalidDateRange,
			LeaveType:    lt,
		}, nil
	}
	return emp, Result{}, nil
}

// =============================================================================
// PER-TYPE CHECKS
// =============================================================================

// ValidateSick always passes the request (statutory: sick leave cannot be
// refused), after the shared pre-checks.
func (v *Validator) ValidateSick(ctx context.Context, userID leave.EmployeeID, start, end leave.Date) (Result, error) {
	_, failed, err := v.resolve(ctx, userID, start, end, leave.LeaveSick)
	if err != nil || failed.ErrorKind != leave.KindNone {
		return failed, err
	}
	return Result{
		CanTake:       true,
		LeaveType:     leave.LeaveSick,
		DaysRequested: leave.BusinessDaysBetween(start, end),
		Year:          start.Year(),
	}, nil
}

// ValidateAnnual checks the request against the employee's remaining
// annual allowance (base grant - used + carryover).
func (v *Validator) ValidateAnnual(ctx context.Context, userID leave.EmployeeID, start, end leave.Date) (Result, error) {
	emp, failed, err := v.resolve(ctx, userID, start, end, leave.LeaveAnnual)
	if err != nil || failed.ErrorKind != leave.KindNone {
		return failed, err
	}

	requested := leave.BusinessDaysBetween(start, end)
	available := leave.AvailableAnnualDays(*emp)

	res := Result{
		LeaveType:     leave.LeaveAnnual,
		DaysRequested: requested,
		DaysRemaining: available,
		Year:          start.Year(),
	}

	if requested > available {
		res.ErrorKind = leave.KindLimitExceeded
		res.ErrorMessage = fmt.Sprintf(
			"Niewystarczająca liczba dni urlopu wypoczynkowego. Dostępne: %d dni, żądano: %d dni",
			available, requested)
		return res, nil
	}

	res.CanTake = true
	return res, nil
}

// ValidateOnDemand checks the request against the statutory 4-day cap.
// Two distinct failure messages: the cap is fully used vs. too few days
// remain for the requested span.
func (v *Validator) ValidateOnDemand(ctx context.Context, userID leave.EmployeeID, start, end leave.Date) (Result, error) {
	emp, failed, err := v.resolve(ctx, userID, start, end, leave.LeaveOnDemand)
	if err != nil || failed.ErrorKind != leave.KindNone {
		return failed, err
	}

	requested := leave.BusinessDaysBetween(start, end)
	remaining := leave.RemainingOnDemandDays(*emp)

	res := Result{
		LeaveType:     leave.LeaveOnDemand,
		DaysRequested: requested,
		DaysRemaining: remaining,
		Year:          start.Year(),
	}

	if emp.OnDemandVacationDaysUsed >= leave.OnDemandYearlyCap {
		res.ErrorKind = leave.KindLimitExceeded
		res.ErrorMessage = msgOnDemandCapUsed
		return res, nil
	}
	if requested > remaining {
		res.ErrorKind = leave.KindLimitExceeded
		res.ErrorMessage = fmt.Sprintf(
			"Niewystarczająca liczba dni urlopu na żądanie. Dostępne: %d dni, żądano: %d dni",
			remaining, requested)
		return res, nil
	}

	res.CanTake = true
	return res, nil
}

// ValidateCircumstantial maps the free-text reason to a category and
// checks the category's day cap and documentation requirement.
func (v *Validator) ValidateCircumstantial(ctx context.Context, userID leave.EmployeeID, start, end leave.Date, reason string, hasDocumentation bool) (Result, error) {
	_, failed, err := v.resolve(ctx, userID, start, end, leave.LeaveCircumstantial)
	if err != nil || failed.ErrorKind != leave.KindNone {
		return failed, err
	}

	requested := leave.BusinessDaysBetween(start, end)
	category := MapReason(reason)

	res := Result{
		LeaveType:               leave.LeaveCircumstantial,
		DaysRequested:           requested,
		Year:                    start.Year(),
		ReasonCategory:          category.Name,
		MaxAllowedDays:          category.MaxDays,
		DocumentationRequired:   category.DocumentationRequired,
		DocumentationSufficient: !category.DocumentationRequired || hasDocumentation,
	}

	if requested > category.MaxDays {
		res.ErrorKind = leave.KindLimitExceeded
		res.ErrorMessage = fmt.Sprintf(
			"Urlop okolicznościowy z powodu '%s' nie może przekroczyć %d dni. Żądano: %d dni",
			category.Name, category.MaxDays, requested)
		return res, nil
	}
	if category.DocumentationRequired && !hasDocumentation {
		res.ErrorKind = leave.KindDocumentationMissing
		res.ErrorMessage = fmt.Sprintf(
			"Urlop okolicznościowy z powodu '%s' wymaga udokumentowania", category.Name)
		return res, nil
	}

	res.CanTake = true
	return res, nil
}
