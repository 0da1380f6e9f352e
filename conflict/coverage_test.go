package conflict_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlashr/leave-engine/conflict"
	"github.com/atlashr/leave-engine/leave"
	"github.com/atlashr/leave-engine/store/memory"
)

func seedTeam(store *memory.Store, dept string, size int) {
	for i := 1; i <= size; i++ {
		store.PutEmployee(member(fmt.Sprintf("emp-%d", i), dept))
	}
}

func TestCoverage_FullyStaffedTeamIsAdequate(t *testing.T) {
	// GIVEN: A 10-person team with no other absences
	// WHEN: One member requests leave
	// THEN: 90% coverage, adequate, no conflict

	store := memory.New()
	seedTeam(store, "dept-1", 10)

	d := conflict.New(store, conflict.DefaultConfig())
	report, err := d.Check(context.Background(), "emp-1",
		date(2025, time.July, 7), date(2025, time.July, 11))
	require.NoError(t, err)

	assert.Equal(t, 10, report.Coverage.TeamSize)
	assert.Equal(t, 1, report.Coverage.MembersUnavailable)
	assert.InDelta(t, 90.0, report.Coverage.CoveragePercentage, 0.01)
	assert.True(t, report.Coverage.IsAdequateCoverage)
	assert.True(t, report.CanBeApproved)
	assert.Zero(t, countByType(report.Conflicts, conflict.InsufficientCoverage))
}

func TestCoverage_TwoPersonTeamFullyAbsentIsCritical(t *testing.T) {
	// GIVEN: A 2-person team where the only colleague is already on leave
	//        for the full requested window
	// THEN: 0% coverage, Critical conflict, approval blocked

	store := memory.New()
	seedTeam(store, "dept-1", 2)
	mustPut(t, store, schedule("s-2", "emp-2",
		date(2025, time.July, 1), date(2025, time.July, 31), leave.StatusActive))

	d := conflict.New(store, conflict.DefaultConfig())
	report, err := d.Check(context.Background(), "emp-1",
		date(2025, time.July, 7), date(2025, time.July, 11))
	require.NoError(t, err)

	assert.Equal(t, 0.0, report.Coverage.CoveragePercentage)
	assert.False(t, report.Coverage.IsAdequateCoverage)
	assert.False(t, report.CanBeApproved)

	require.Equal(t, 1, countByType(report.Conflicts, conflict.InsufficientCoverage))
	for _, c := range report.Conflicts {
		if c.Type == conflict.InsufficientCoverage {
			assert.Equal(t, conflict.SeverityCritical, c.Severity)
		}
	}
}

func TestCoverage_BelowThresholdIsWarning(t *testing.T) {
	// GIVEN: A 4-person team with 2 members already absent
	// WHEN: A third requests overlapping leave (25% coverage remains)
	// THEN: Warning-level conflict; approval is NOT blocked

	store := memory.New()
	seedTeam(store, "dept-1", 4)
	mustPut(t, store, schedule("s-2", "emp-2",
		date(2025, time.July, 7), date(2025, time.July, 11), leave.StatusScheduled))
	mustPut(t, store, schedule("s-3", "emp-3",
		date(2025, time.July, 9), date(2025, time.July, 18), leave.StatusActive))

	d := conflict.New(store, conflict.DefaultConfig())
	report, err := d.Check(context.Background(), "emp-1",
		date(2025, time.July, 7), date(2025, time.July, 11))
	require.NoError(t, err)

	assert.Equal(t, 3, report.Coverage.MembersUnavailable)
	assert.InDelta(t, 25.0, report.Coverage.CoveragePercentage, 0.01)
	assert.False(t, report.Coverage.IsAdequateCoverage)

	require.Equal(t, 1, countByType(report.Conflicts, conflict.InsufficientCoverage))
	for _, c := range report.Conflicts {
		if c.Type == conflict.InsufficientCoverage {
			assert.Equal(t, conflict.SeverityWarning, c.Severity)
		}
	}
	assert.True(t, report.CanBeApproved, "a coverage warning alone must not block approval")
}

func TestCoverage_ThresholdIsConfigurable(t *testing.T) {
	// With the minimum dropped to 20%, a 4-person team down to 25%
	// coverage is still considered adequate.
	store := memory.New()
	seedTeam(store, "dept-1", 4)
	mustPut(t, store, schedule("s-2", "emp-2",
		date(2025, time.July, 7), date(2025, time.July, 11), leave.StatusScheduled))
	mustPut(t, store, schedule("s-3", "emp-3",
		date(2025, time.July, 7), date(2025, time.July, 11), leave.StatusActive))

	d := conflict.New(store, conflict.Config{MinimumCoveragePercent: 20})
	report, err := d.Check(context.Background(), "emp-1",
		date(2025, time.July, 7), date(2025, time.July, 11))
	require.NoError(t, err)

	assert.InDelta(t, 25.0, report.Coverage.CoveragePercentage, 0.01)
	assert.True(t, report.Coverage.IsAdequateCoverage)
	assert.Zero(t, countByType(report.Conflicts, conflict.InsufficientCoverage))
}

func TestCoverage_InactiveMembersAreNotOnTheRoster(t *testing.T) {
	// GIVEN: A 3-person department where one member is inactive
	// THEN: Team size is 2 for coverage purposes

	store := memory.New()
	seedTeam(store, "dept-1", 2)
	former := member("emp-former", "dept-1")
	former.IsActive = false
	store.PutEmployee(former)

	d := conflict.New(store, conflict.DefaultConfig())
	report, err := d.Check(context.Background(), "emp-1",
		date(2025, time.July, 7), date(2025, time.July, 11))
	require.NoError(t, err)

	assert.Equal(t, 2, report.Coverage.TeamSize)
	assert.InDelta(t, 50.0, report.Coverage.CoveragePercentage, 0.01)
	assert.True(t, report.Coverage.IsAdequateCoverage, "50%% meets the default 50%% minimum")
}

func TestCoverage_OneThirdTeamRoundsCleanly(t *testing.T) {
	// 3-person team, 1 unavailable: 66.67% after rounding to 2 places.
	store := memory.New()
	seedTeam(store, "dept-1", 3)

	d := conflict.New(store, conflict.DefaultConfig())
	report, err := d.Check(context.Background(), "emp-1",
		date(2025, time.July, 7), date(2025, time.July, 11))
	require.NoError(t, err)

	assert.InDelta(t, 66.67, report.Coverage.CoveragePercentage, 0.001)
}
