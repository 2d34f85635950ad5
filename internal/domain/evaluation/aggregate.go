package evaluation

import (
	"slices"
	"sort"

	"github.com/shopspring/decimal"
)

// Aggregate folds the records dated in year into one total per employee.
//
// Each record overwrites the semester and quarter slot its date falls in, so
// when several evaluations share a period the last one processed wins. The
// combined total is set only when every slot of the employee's regime is
// filled; quarter-based employees are gated on Q1..Q4 even if they also
// belong to a semester-based department.
func Aggregate(records []Record, year int) []EmployeeTotalScore {
	byEmployee := map[string]*EmployeeTotalScore{}
	var order []string

	for _, r := range records {
		if !isValid(r) || r.Date.Year() != year {
			continue
		}
		t, ok := byEmployee[r.EmployeeID]
		if !ok {
			t = &EmployeeTotalScore{
				EmployeeID:   r.EmployeeID,
				EmployeeName: r.EmployeeName,
				Departments:  slices.Clone(r.EmployeeDepartments),
			}
			byEmployee[r.EmployeeID] = t
			order = append(order, r.EmployeeID)
		}
		t.EvaluationCount++
		score := r.FinalScore
		*t.slot(SemesterOf(r.Date)) = &score
		*t.slot(QuarterOf(r.Date)) = &score
	}

	out := make([]EmployeeTotalScore, 0, len(order))
	for _, id := range order {
		t := byEmployee[id]
		c := Classify(t.Departments)
		t.IsQuarterBased = c.IsQuarterBased
		t.IsSemesterBased = c.IsSemesterBased
		switch {
		case c.IsQuarterBased:
			t.TotalScore = completeMean(t.Q1, t.Q2, t.Q3, t.Q4)
		case c.IsSemesterBased:
			t.TotalScore = completeMean(t.S1, t.S2)
		}
		out = append(out, *t)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].TotalScore, out[j].TotalScore
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		}
		return *a > *b
	})
	return out
}

// completeMean returns nil unless every slot holds a score.
func completeMean(slots ...*float64) *float64 {
	values := make([]float64, 0, len(slots))
	for _, s := range slots {
		if s == nil {
			return nil
		}
		values = append(values, *s)
	}
	mean := meanOf(values).InexactFloat64()
	return &mean
}

func meanOf(values []float64) decimal.Decimal {
	if len(values) == 0 {
		return decimal.Zero
	}
	sum := decimal.Zero
	for _, v := range values {
		sum = sum.Add(decimal.NewFromFloat(v))
	}
	return sum.Div(decimal.NewFromInt(int64(len(values))))
}

func (t *EmployeeTotalScore) slot(period Period) **float64 {
	switch period {
	case PeriodS1:
		return &t.S1
	case PeriodS2:
		return &t.S2
	case PeriodQ1:
		return &t.Q1
	case PeriodQ2:
		return &t.Q2
	case PeriodQ3:
		return &t.Q3
	default:
		return &t.Q4
	}
}

// Score returns the slot value for period, if filled.
func (t EmployeeTotalScore) Score(period Period) (float64, bool) {
	p := *t.slot(period)
	if p == nil {
		return 0, false
	}
	return *p, true
}

// SemesterTotals keeps the employees belonging to the semester regime.
func SemesterTotals(totals []EmployeeTotalScore) []EmployeeTotalScore {
	return filterTotals(totals, func(t EmployeeTotalScore) bool { return t.IsSemesterBased })
}

// QuarterTotals keeps the employees belonging to the quarter regime.
func QuarterTotals(totals []EmployeeTotalScore) []EmployeeTotalScore {
	return filterTotals(totals, func(t EmployeeTotalScore) bool { return t.IsQuarterBased })
}

func filterTotals(totals []EmployeeTotalScore, keep func(EmployeeTotalScore) bool) []EmployeeTotalScore {
	out := make([]EmployeeTotalScore, 0, len(totals))
	for _, t := range totals {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

// Years lists the distinct years with at least one valid record, newest first.
func Years(records []Record) []int {
	seen := map[int]struct{}{}
	years := make([]int, 0)
	for _, r := range records {
		if !isValid(r) {
			continue
		}
		y := r.Date.Year()
		if _, ok := seen[y]; ok {
			continue
		}
		seen[y] = struct{}{}
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}

// LatestYear returns the most recent year with data, or fallback when there is none.
func LatestYear(records []Record, fallback int) int {
	if years := Years(records); len(years) > 0 {
		return years[0]
	}
	return fallback
}
