package evaluation

const (
	RegimeQuarter      Regime = "quarter"
	RegimeSemester     Regime = "semester"
	RegimeUnclassified Regime = "unclassified"

	PeriodS1 Period = "S1"
	PeriodS2 Period = "S2"
	PeriodQ1 Period = "Q1"
	PeriodQ2 Period = "Q2"
	PeriodQ3 Period = "Q3"
	PeriodQ4 Period = "Q4"

	// DefaultBonusThreshold is the minimum mean final score for bonus eligibility.
	DefaultBonusThreshold = 4.2

	MinScore = 1.0
	MaxScore = 5.0
)

var SemesterPeriods = []Period{PeriodS1, PeriodS2}

var QuarterPeriods = []Period{PeriodQ1, PeriodQ2, PeriodQ3, PeriodQ4}

// requiredPeriods is the number of evaluations an employee needs before the
// eligibility check considers them.
var requiredPeriods = map[Regime]int{
	RegimeQuarter:      len(QuarterPeriods),
	RegimeSemester:     len(SemesterPeriods),
	RegimeUnclassified: len(SemesterPeriods),
}
