package evaluation

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderEligibilityReport(t *testing.T) {
	result := Eligibility{
		Eligible: []EligibleEmployee{
			{EmployeeID: "a", EmployeeName: "Ana Cruz", Departments: []string{"College"}, AverageScore: 4.5, EvaluationCount: 2},
			{EmployeeID: "b", EmployeeName: "Ben Tan", Departments: []string{"Elementary"}, AverageScore: 4.25, EvaluationCount: 4, IsAssistant: true},
		},
		NotEligible: []string{"Carl Uy"},
	}
	var buf bytes.Buffer
	err := RenderEligibilityReport(&buf, result, DefaultBonusThreshold, time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestRenderEligibilityReportEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderEligibilityReport(&buf, Eligibility{}, DefaultBonusThreshold, time.Now()))
	assert.NotZero(t, buf.Len())
}
