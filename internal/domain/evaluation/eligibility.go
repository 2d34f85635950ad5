package evaluation

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

type candidate struct {
	employee EligibleEmployee
	scores   []float64
}

// Evaluate decides bonus eligibility across all years of records using
// DefaultBonusThreshold.
func Evaluate(records []Record) Eligibility {
	return EvaluateWithThreshold(records, DefaultBonusThreshold)
}

// EvaluateWithThreshold partitions employees with enough evaluations for
// their regime into eligible and not eligible. Employees below the required
// count appear in neither list. The assistant flag is informational and does
// not change the threshold.
func EvaluateWithThreshold(records []Record, threshold float64) Eligibility {
	byEmployee := map[string]*candidate{}
	var order []string
	for _, r := range records {
		if !isValid(r) {
			continue
		}
		c, ok := byEmployee[r.EmployeeID]
		if !ok {
			c = &candidate{employee: EligibleEmployee{
				EmployeeID:   r.EmployeeID,
				EmployeeName: r.EmployeeName,
				Departments:  slices.Clone(r.EmployeeDepartments),
				PositionName: r.PositionName,
				IsAssistant:  IsAssistant(r.PositionName),
			}}
			byEmployee[r.EmployeeID] = c
			order = append(order, r.EmployeeID)
		}
		c.scores = append(c.scores, r.FinalScore)
	}

	result := Eligibility{Eligible: []EligibleEmployee{}, NotEligible: []string{}}
	limit := decimal.NewFromFloat(threshold)
	for _, id := range order {
		c := byEmployee[id]
		if len(c.scores) < RequiredPeriods(c.employee.Departments) {
			continue
		}
		mean := meanOf(c.scores)
		if mean.GreaterThanOrEqual(limit) {
			c.employee.AverageScore = mean.Round(2).InexactFloat64()
			c.employee.EvaluationCount = len(c.scores)
			result.Eligible = append(result.Eligible, c.employee)
			continue
		}
		result.NotEligible = append(result.NotEligible, displayName(c.employee))
	}
	return result
}

// RequiredPeriods is the evaluation count needed before eligibility is judged.
func RequiredPeriods(departments []string) int {
	return requiredPeriods[Classify(departments).Primary()]
}

func IsAssistant(positionName string) bool {
	return strings.Contains(strings.ToLower(positionName), "assistant")
}

func displayName(e EligibleEmployee) string {
	if strings.TrimSpace(e.EmployeeName) != "" {
		return e.EmployeeName
	}
	return e.EmployeeID
}
