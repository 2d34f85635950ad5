package evaluation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrm/internal/domain/auth"
)

func TestScopeCommutesWithAggregation(t *testing.T) {
	records := []Record{
		rec("a", 2024, time.January, 4.0, "Elementary"),
		rec("a", 2024, time.April, 4.0, "Elementary"),
		rec("a", 2024, time.July, 4.0, "Elementary"),
		rec("a", 2024, time.October, 5.0, "Elementary"),
		rec("b", 2024, time.March, 3.0, "Elementary", "College"),
		rec("c", 2024, time.March, 5.0, "College"),
		rec("c", 2024, time.September, 5.0, "College"),
		rec("d", 2024, time.March, 2.0, "Junior High School"),
	}
	scopedFirst := Aggregate(ScopeTo(records, "Elementary"), 2024)
	aggregatedFirst := ScopeTotals(Aggregate(records, 2024), "Elementary")
	assert.Equal(t, aggregatedFirst, scopedFirst)
	assert.Equal(t, []string{"a", "b"}, totalIDs(scopedFirst))
}

func TestScopeToEmptyDepartmentPassesThrough(t *testing.T) {
	records := []Record{rec("a", 2024, time.January, 4.0, "College")}
	assert.Equal(t, records, ScopeTo(records, ""))
}

func TestScopeToExactName(t *testing.T) {
	records := []Record{
		rec("a", 2024, time.January, 4.0, "Pre Elementary"),
		rec("b", 2024, time.January, 4.0, "Elementary"),
	}
	assert.Equal(t, []string{"b"}, employeeIDs(ScopeTo(records, "Elementary")))
}

func TestViewerFor(t *testing.T) {
	admin, err := ViewerFor(auth.RoleAdmin, "Elementary")
	require.NoError(t, err)
	assert.False(t, admin.Scoped())
	assert.Empty(t, admin.Scope())
	assert.True(t, admin.Can(ViewReset))

	coordinator, err := ViewerFor(auth.RoleCoordinator, " Elementary ")
	require.NoError(t, err)
	assert.True(t, coordinator.Scoped())
	assert.Equal(t, "Elementary", coordinator.Scope())
	assert.True(t, coordinator.Can(ViewTotals))
	assert.False(t, coordinator.Can(ViewReset))

	_, err = ViewerFor(auth.RoleCoordinator, "")
	assert.ErrorIs(t, err, ErrScopeRequired)

	_, err = ViewerFor("Janitor", "")
	assert.ErrorIs(t, err, ErrUnknownRole)

	employee, err := ViewerFor(auth.RoleEmployee, "")
	require.NoError(t, err)
	assert.False(t, employee.Can(ViewHistory))
}

func TestHRCannotReset(t *testing.T) {
	hr, err := ViewerFor(auth.RoleHR, "")
	require.NoError(t, err)
	assert.True(t, hr.Can(ViewEligibility))
	assert.False(t, hr.Can(ViewReset))
}
