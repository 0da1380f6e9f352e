package conflict

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/atlashr/leave-engine/leave"
)

// =============================================================================
// COVERAGE ANALYSIS - Who is left to keep the lights on?
// =============================================================================

// CoverageAnalysis describes department staffing during the proposed
// window, counting the requester as unavailable.
type CoverageAnalysis struct {
	TeamSize           int
	MembersUnavailable int
	CoveragePercentage float64 // 0..100
	IsAdequateCoverage bool
}

var oneHundred = decimal.NewFromInt(100)

// checkCoverage resolves the active roster of the requester's department
// and counts members whose schedules intersect the window. The requester
// is always counted as unavailable. Coverage below the configured
// minimum yields a Warning; a fully absent team yields a Critical.
func (d *Detector) checkCoverage(ctx context.Context, emp *leave.Employee, start, end leave.Date) (CoverageAnalysis, []Conflict, error) {
	roster, err := d.Directory.GetDepartmentRoster(ctx, emp.DepartmentID)
	if err != nil {
		return CoverageAnalysis{}, nil, err
	}

	active := make(map[leave.EmployeeID]bool)
	for _, member := range roster {
		if member.IsActive {
			active[member.ID] = true
		}
	}
	teamSize := len(active)
	if teamSize == 0 {
		// Roster could not be resolved at all; treat like a single-person
		// team going fully absent.
		active[emp.ID] = true
		teamSize = 1
	}

	schedules, err := d.Directory.GetDepartmentSchedulesInRange(ctx, emp.DepartmentID, start, end)
	if err != nil {
		return CoverageAnalysis{}, nil, err
	}

	unavailable := map[leave.EmployeeID]bool{emp.ID: true}
	for _, s := range schedules {
		if s.UserID == emp.ID {
			continue
		}
		if !active[s.UserID] {
			continue
		}
		if s.Status.BlocksScheduling() && s.Overlaps(start, end) {
			unavailable[s.UserID] = true
		}
	}

	analysis := computeCoverage(teamSize, len(unavailable), d.Config.MinimumCoveragePercent)

	var conflicts []Conflict
	if !analysis.IsAdequateCoverage {
		severity := SeverityWarning
		if analysis.CoveragePercentage == 0 {
			severity = SeverityCritical
		}
		conflicts = append(conflicts, Conflict{
			Type:     InsufficientCoverage,
			Severity: severity,
			Message: fmt.Sprintf(
				"Obsada zespołu spadłaby do %.0f%% (%d z %d osób nieobecnych)",
				analysis.CoveragePercentage, analysis.MembersUnavailable, analysis.TeamSize),
			EmployeeID: emp.ID,
		})
	}

	return analysis, conflicts, nil
}

// computeCoverage derives the staffed percentage. decimal arithmetic
// keeps 1/3-style rosters from accumulating float error before rounding.
func computeCoverage(teamSize, membersUnavailable int, minimumPercent float64) CoverageAnalysis {
	if membersUnavailable > teamSize {
		membersUnavailable = teamSize
	}

	pct := decimal.NewFromInt(int64(teamSize - membersUnavailable)).
		Mul(oneHundred).
		Div(decimal.NewFromInt(int64(teamSize))).
		Round(2)
	coverage := pct.InexactFloat64()

	return CoverageAnalysis{
		TeamSize:           teamSize,
		MembersUnavailable: membersUnavailable,
		CoveragePercentage: coverage,
		IsAdequateCoverage: coverage >= minimumPercent,
	}
}
