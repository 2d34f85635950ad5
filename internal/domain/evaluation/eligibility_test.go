package evaluation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEligibilityRequiresEnoughEvaluations(t *testing.T) {
	two := []Record{
		rec("e1", 2024, time.March, 4.1, "College"),
		rec("e1", 2024, time.September, 4.3, "College"),
	}
	result := Evaluate(two)
	require.Len(t, result.Eligible, 1)
	assert.Equal(t, "e1", result.Eligible[0].EmployeeID)
	assert.Equal(t, 4.2, result.Eligible[0].AverageScore)
	assert.Equal(t, 2, result.Eligible[0].EvaluationCount)
	assert.Empty(t, result.NotEligible)

	one := []Record{rec("e1", 2024, time.March, 5.0, "College")}
	result = Evaluate(one)
	assert.Empty(t, result.Eligible)
	assert.Empty(t, result.NotEligible)
}

func TestEligibilityQuarterNeedsFour(t *testing.T) {
	records := []Record{
		rec("e1", 2024, time.January, 5, "Elementary"),
		rec("e1", 2024, time.April, 5, "Elementary"),
		rec("e1", 2024, time.July, 5, "Elementary"),
	}
	assert.Empty(t, Evaluate(records).Eligible)

	records = append(records, rec("e1", 2024, time.October, 1, "Elementary"))
	result := Evaluate(records)
	assert.Empty(t, result.Eligible)
	assert.Equal(t, []string{"Employee e1"}, result.NotEligible)
}

func TestEligibilitySpansYears(t *testing.T) {
	records := []Record{
		rec("e1", 2023, time.March, 4.5, "College"),
		rec("e1", 2024, time.March, 4.5, "College"),
	}
	result := Evaluate(records)
	require.Len(t, result.Eligible, 1)
}

func TestEligibilityAssistantFlagIsInformational(t *testing.T) {
	records := []Record{
		rec("e1", 2024, time.March, 4.2, "College"),
		rec("e1", 2024, time.September, 4.2, "College"),
		rec("e2", 2024, time.March, 4.0, "College"),
		rec("e2", 2024, time.September, 4.0, "College"),
	}
	for i := range records {
		records[i].PositionName = "Teacher Assistant"
	}
	result := Evaluate(records)
	require.Len(t, result.Eligible, 1)
	assert.True(t, result.Eligible[0].IsAssistant)
	assert.Equal(t, []string{"Employee e2"}, result.NotEligible)
}

func TestEligibilityCustomThreshold(t *testing.T) {
	records := []Record{
		rec("e1", 2024, time.March, 4.0, "College"),
		rec("e1", 2024, time.September, 4.0, "College"),
	}
	assert.Len(t, EvaluateWithThreshold(records, 4.0).Eligible, 1)
	assert.Empty(t, EvaluateWithThreshold(records, 4.01).Eligible)
}

func TestNotEligibleFallsBackToID(t *testing.T) {
	records := []Record{
		{EmployeeID: "e9", Date: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), FinalScore: 2},
		{EmployeeID: "e9", Date: time.Date(2024, time.August, 1, 0, 0, 0, 0, time.UTC), FinalScore: 2},
	}
	assert.Equal(t, []string{"e9"}, Evaluate(records).NotEligible)
}

func TestRequiredPeriods(t *testing.T) {
	assert.Equal(t, 4, RequiredPeriods([]string{"Elementary"}))
	assert.Equal(t, 4, RequiredPeriods([]string{"Elementary", "College"}))
	assert.Equal(t, 2, RequiredPeriods([]string{"College"}))
	assert.Equal(t, 2, RequiredPeriods(nil))
}

func TestEmptyInputLeavesNoState(t *testing.T) {
	records := []Record{
		rec("e1", 2024, time.March, 4.5, "College"),
		rec("e1", 2024, time.September, 4.5, "College"),
	}
	require.NotEmpty(t, Evaluate(records).Eligible)

	b := Organize(nil)
	for _, p := range append(append([]Period{}, SemesterPeriods...), QuarterPeriods...) {
		assert.Empty(t, b.Get(p))
	}
	assert.Empty(t, Aggregate(nil, 2024))
	result := Evaluate(nil)
	assert.Empty(t, result.Eligible)
	assert.Empty(t, result.NotEligible)
}
