package evaluation

import "time"

// PeriodOf maps the calendar month of date to its label under regime.
// Unclassified dates fall back to the semester labels.
func PeriodOf(date time.Time, regime Regime) Period {
	month := int(date.Month()) - 1
	if regime == RegimeQuarter {
		return QuarterPeriods[month/3]
	}
	return SemesterPeriods[month/6]
}

func SemesterOf(date time.Time) Period {
	return PeriodOf(date, RegimeSemester)
}

func QuarterOf(date time.Time) Period {
	return PeriodOf(date, RegimeQuarter)
}

// PeriodsFor lists the labels that make up a full year under regime.
func PeriodsFor(regime Regime) []Period {
	if regime == RegimeQuarter {
		return QuarterPeriods
	}
	return SemesterPeriods
}
