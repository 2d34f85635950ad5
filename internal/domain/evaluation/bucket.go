package evaluation

import (
	"slices"
	"sort"
)

// Organize files every valid record into one semester bucket and one quarter
// bucket, each ordered by final score descending. Ties keep input order.
func Organize(records []Record) Buckets {
	var b Buckets
	for _, r := range records {
		if !isValid(r) {
			continue
		}
		b.add(SemesterOf(r.Date), r)
		b.add(QuarterOf(r.Date), r)
	}
	for _, period := range append(slices.Clone(SemesterPeriods), QuarterPeriods...) {
		bucket := b.slot(period)
		sort.SliceStable(*bucket, func(i, j int) bool {
			return (*bucket)[i].FinalScore > (*bucket)[j].FinalScore
		})
	}
	return b
}

// Get returns the records filed under period.
func (b Buckets) Get(period Period) []Record {
	if slot := b.slot(period); slot != nil {
		return *slot
	}
	return nil
}

func (b *Buckets) add(period Period, r Record) {
	slot := b.slot(period)
	*slot = append(*slot, r)
}

func (b *Buckets) slot(period Period) *[]Record {
	switch period {
	case PeriodS1:
		return &b.S1
	case PeriodS2:
		return &b.S2
	case PeriodQ1:
		return &b.Q1
	case PeriodQ2:
		return &b.Q2
	case PeriodQ3:
		return &b.Q3
	case PeriodQ4:
		return &b.Q4
	}
	return nil
}

// History selects the buckets of regime and keeps only records of employees
// belonging to it. A non-empty department narrows the view further.
func History(b Buckets, regime Regime, department string) HistoryView {
	view := HistoryView{Regime: regime, Periods: make([]PeriodBucket, 0, len(PeriodsFor(regime)))}
	for _, period := range PeriodsFor(regime) {
		records := make([]Record, 0)
		for _, r := range b.Get(period) {
			if !Classify(r.EmployeeDepartments).Includes(regime) {
				continue
			}
			if department != "" && !inDepartment(r, department) {
				continue
			}
			records = append(records, r)
		}
		view.Periods = append(view.Periods, PeriodBucket{Period: period, Records: records})
	}
	return view
}
