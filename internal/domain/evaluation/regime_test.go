package evaluation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		quarter  bool
		semester bool
	}{
		{"elementary", []string{"Elementary"}, true, false},
		{"pre elementary", []string{"Pre Elementary"}, true, false},
		{"pre-elementary", []string{"pre-elementary"}, true, false},
		{"junior high", []string{"Junior High School"}, true, false},
		{"highschool", []string{"HighSchool Dept"}, true, false},
		{"senior high school", []string{"Senior High School"}, false, true},
		{"senior-high", []string{"Senior-High"}, false, true},
		{"college", []string{"College of Nursing"}, false, true},
		{"unrelated", []string{"Finance"}, false, false},
		{"no departments", nil, false, false},
		{"multi department", []string{"Elementary", "College"}, true, true},
		{"padded", []string{"  ELEMENTARY  "}, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Classify(tt.input)
			assert.Equal(t, tt.quarter, c.IsQuarterBased)
			assert.Equal(t, tt.semester, c.IsSemesterBased)
		})
	}
}

func TestRegimeOf(t *testing.T) {
	assert.Equal(t, RegimeQuarter, RegimeOf("Elementary"))
	assert.Equal(t, RegimeSemester, RegimeOf("Senior High School"))
	assert.Equal(t, RegimeUnclassified, RegimeOf("Accounting"))
}

func TestClassificationIncludes(t *testing.T) {
	both := Classification{IsQuarterBased: true, IsSemesterBased: true}
	assert.True(t, both.Includes(RegimeQuarter))
	assert.True(t, both.Includes(RegimeSemester))
	assert.False(t, both.Includes(RegimeUnclassified))
	assert.True(t, Classification{}.Includes(RegimeUnclassified))
}

func TestParseRegime(t *testing.T) {
	r, ok := ParseRegime(" Quarter ")
	assert.True(t, ok)
	assert.Equal(t, RegimeQuarter, r)

	_, ok = ParseRegime("yearly")
	assert.False(t, ok)
}

func TestPeriodOfIsTotal(t *testing.T) {
	valid := map[Period]bool{}
	for _, p := range append(append([]Period{}, SemesterPeriods...), QuarterPeriods...) {
		valid[p] = true
	}
	for _, regime := range []Regime{RegimeQuarter, RegimeSemester, RegimeUnclassified} {
		for month := time.January; month <= time.December; month++ {
			p := PeriodOf(time.Date(2024, month, 1, 0, 0, 0, 0, time.UTC), regime)
			assert.True(t, valid[p], "regime %s month %s gave %q", regime, month, p)
		}
	}
}

func TestPeriodBoundaries(t *testing.T) {
	day := func(m time.Month, d int) time.Time { return time.Date(2024, m, d, 23, 59, 0, 0, time.UTC) }

	assert.Equal(t, PeriodQ1, QuarterOf(day(time.March, 31)))
	assert.Equal(t, PeriodQ2, QuarterOf(day(time.April, 1)))
	assert.Equal(t, PeriodQ3, QuarterOf(day(time.September, 30)))
	assert.Equal(t, PeriodQ4, QuarterOf(day(time.October, 1)))
	assert.Equal(t, PeriodS1, SemesterOf(day(time.June, 30)))
	assert.Equal(t, PeriodS2, SemesterOf(day(time.July, 1)))
}
