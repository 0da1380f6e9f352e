/*
Package conflict detects scheduling risks for a proposed leave window.

PURPOSE:
  Answers "is it operationally safe to approve this leave?" after
  eligibility has passed. Three independent checks feed one report:

  1. Overlap:    The requester's own existing schedules intersecting the
                 window. Always Critical - nobody can be on two leaves at
                 once - and any hit blocks automatic approval.
  2. Coverage:   How much of the department roster would remain staffed.
                 Judged against a configurable minimum percentage;
                 Warning when below it, Critical when nobody is left.
  3. Supervisor: An overlapping schedule of the requester's supervisor.
                 Warning only - it flags manual review, never blocks.

  An unresolvable requester yields a single Critical conflict and
  CanBeApproved=false: when the subject of the check is unknown,
  the detector refuses to green-light anything.

SEVERITY:
  Critical blocks automatic approval. Warning flags the request for
  manual review only. CanBeApproved is simply "no Critical present".

SEE ALSO:
  - coverage.go: Roster coverage arithmetic
  - eligibility: Per-leave-type admissibility, run before this
*/
package conflict

import (
	"context"
	"fmt"

	"github.com/atlashr/leave-engine/leave"
)

// =============================================================================
// CONFLICT REPORT TYPES
// =============================================================================

type Type string

const (
	OverlappingVacation   Type = "overlapping_vacation"
	InsufficientCoverage  Type = "insufficient_coverage"
	SupervisorUnavailable Type = "supervisor_unavailable"
)

type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
)

// Conflict is a single detected scheduling risk.
type Conflict struct {
	Type     Type
	Severity Severity
	Message  string

	// Kind is set only on the defensive conflict emitted for an
	// unresolvable requester, so callers can tell it apart from a real
	// overlap.
	Kind leave.ErrorKind

	// The offending schedule and its owner, when the conflict is tied to one.
	ScheduleID leave.ScheduleID
	EmployeeID leave.EmployeeID
}

// Report is the aggregate verdict for a proposed window.
type Report struct {
	HasConflicts  bool
	Conflicts     []Conflict
	Coverage      CoverageAnalysis
	CanBeApproved bool
}

// =============================================================================
// DETECTOR
// =============================================================================

// Config tunes the detector. The coverage threshold is deliberately a
// configuration value, not a constant: the two observed extremes (fully
// staffed is fine, fully absent is not) leave the exact cutoff to the
// deploying organization.
type Config struct {
	// MinimumCoveragePercent is the lowest acceptable staffed share of a
	// department roster during the window. Default 50.
	MinimumCoveragePercent float64
}

func DefaultConfig() Config {
	return Config{MinimumCoveragePercent: 50}
}

// Detector runs the scheduling-risk checks. Stateless apart from its
// config; safe for concurrent use.
type Detector struct {
	Directory leave.Directory
	Config    Config
}

func New(dir leave.Directory, cfg Config) *Detector {
	if cfg.MinimumCoveragePercent <= 0 {
		cfg = DefaultConfig()
	}
	return &Detector{Directory: dir, Config: cfg}
}

// Check produces the conflict report for the user's proposed [start, end]
// window. An unresolvable requester - unknown id or a store failure on
// that first lookup - is deliberately folded into the defensive report
// rather than returned as an error: the caller is a pre-submit check and
// must always get a verdict for the subject. Read failures on the
// secondary lookups (schedules, roster, supervisor) are returned as
// errors.
func (d *Detector) Check(ctx context.Context, userID leave.EmployeeID, start, end leave.Date) (Report, error) {
	emp, err := d.Directory.GetEmployee(ctx, userID)
	if err != nil || emp == nil {
		// Defensive default: something is wrong, do not auto-approve.
		return Report{
			HasConflicts: true,
			Conflicts: []Conflict{{
				Type:     OverlappingVacation,
				Severity: SeverityCritical,
				Message:  fmt.Sprintf("Nie można zweryfikować pracownika %s - zgłoszenie wymaga ręcznej weryfikacji", userID),
				Kind:     leave.KindDefensiveUnknown,
			}},
			CanBeApproved: false,
		}, nil
	}

	var conflicts []Conflict

	overlaps, err := d.checkOwnOverlaps(ctx, emp, start, end)
	if err != nil {
		return Report{}, err
	}
	conflicts = append(conflicts, overlaps...)

	coverage, coverageConflicts, err := d.checkCoverage(ctx, emp, start, end)
	if err != nil {
		return Report{}, err
	}
	conflicts = append(conflicts, coverageConflicts...)

	supervisor, err := d.checkSupervisor(ctx, emp, start, end)
	if err != nil {
		return Report{}, err
	}
	conflicts = append(conflicts, supervisor...)

	return Report{
		HasConflicts:  len(conflicts) > 0,
		Conflicts:     conflicts,
		Coverage:      coverage,
		CanBeApproved: !anyCritical(conflicts),
	}, nil
}

// checkOwnOverlaps emits a Critical conflict for every existing schedule
// of the same user intersecting the window. Cancelled records are ignored.
func (d *Detector) checkOwnOverlaps(ctx context.Context, emp *leave.Employee, start, end leave.Date) ([]Conflict, error) {
	schedules, err := d.Directory.GetSchedulesForUser(ctx, emp.ID)
	if err != nil {
		return nil, err
	}

	var conflicts []Conflict
	for _, s := range schedules {
		if !s.Status.BlocksScheduling() {
			continue
		}
		if !s.Overlaps(start, end) {
			continue
		}
		conflicts = append(conflicts, Conflict{
			Type:       OverlappingVacation,
			Severity:   SeverityCritical,
			Message:    fmt.Sprintf("Termin pokrywa się z istniejącym urlopem %s - %s", s.StartDate, s.EndDate),
			ScheduleID: s.ID,
			EmployeeID: emp.ID,
		})
	}
	return conflicts, nil
}

// checkSupervisor emits a Warning when the requester's supervisor has an
// overlapping schedule in the same window.
func (d *Detector) checkSupervisor(ctx context.Context, emp *leave.Employee, start, end leave.Date) ([]Conflict, error) {
	if !emp.HasSupervisor() {
		return nil, nil
	}
	sup, err := d.Directory.GetSupervisor(ctx, emp.ID)
	if err != nil {
		return nil, err
	}
	if sup == nil {
		return nil, nil
	}

	schedules, err := d.Directory.GetSchedulesForUser(ctx, sup.ID)
	if err != nil {
		return nil, err
	}

	var conflicts []Conflict
	for _, s := range schedules {
		if !s.Status.BlocksScheduling() || !s.Overlaps(start, end) {
			continue
		}
		conflicts = append(conflicts, Conflict{
			Type:       SupervisorUnavailable,
			Severity:   SeverityWarning,
			Message:    fmt.Sprintf("Przełożony %s jest nieobecny w terminie %s - %s", sup.Name, s.StartDate, s.EndDate),
			ScheduleID: s.ID,
			EmployeeID: sup.ID,
		})
	}
	return conflicts, nil
}

func anyCritical(conflicts []Conflict) bool {
	for _, c := range conflicts {
		if c.Severity == SeverityCritical {
			return true
		}
	}
	return false
}
