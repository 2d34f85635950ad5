package evaluation

import "strings"

// regimeRule matches a lower-cased department name.
type regimeRule struct {
	regime  Regime
	anyOf   []string
	exclude []string
}

// Rules are evaluated independently; a name may satisfy one, both or neither.
var regimeRules = []regimeRule{
	{regime: RegimeQuarter, anyOf: []string{"pre elementary", "pre-elementary", "elementary"}},
	{regime: RegimeQuarter, anyOf: []string{"high school", "highschool"}, exclude: []string{"senior"}},
	{regime: RegimeSemester, anyOf: []string{"college", "senior high", "senior-high"}},
}

func (r regimeRule) matches(name string) bool {
	for _, token := range r.exclude {
		if strings.Contains(name, token) {
			return false
		}
	}
	for _, token := range r.anyOf {
		if strings.Contains(name, token) {
			return true
		}
	}
	return false
}

// Classify reports which regimes any of the given department names belong to.
func Classify(names []string) Classification {
	var c Classification
	for _, name := range names {
		normalized := strings.ToLower(strings.TrimSpace(name))
		if normalized == "" {
			continue
		}
		for _, rule := range regimeRules {
			if !rule.matches(normalized) {
				continue
			}
			switch rule.regime {
			case RegimeQuarter:
				c.IsQuarterBased = true
			case RegimeSemester:
				c.IsSemesterBased = true
			}
		}
	}
	return c
}

// RegimeOf classifies a single department name. A name that satisfies both
// rules reports RegimeQuarter.
func RegimeOf(name string) Regime {
	return Classify([]string{name}).Primary()
}

// Primary collapses the membership flags into one regime, quarter first.
func (c Classification) Primary() Regime {
	switch {
	case c.IsQuarterBased:
		return RegimeQuarter
	case c.IsSemesterBased:
		return RegimeSemester
	default:
		return RegimeUnclassified
	}
}

// Includes reports membership in the given regime. Membership is inclusive:
// an employee in both kinds of department belongs to both.
func (c Classification) Includes(regime Regime) bool {
	switch regime {
	case RegimeQuarter:
		return c.IsQuarterBased
	case RegimeSemester:
		return c.IsSemesterBased
	case RegimeUnclassified:
		return !c.IsQuarterBased && !c.IsSemesterBased
	}
	return false
}

func ParseRegime(value string) (Regime, bool) {
	switch Regime(strings.ToLower(strings.TrimSpace(value))) {
	case RegimeQuarter:
		return RegimeQuarter, true
	case RegimeSemester:
		return RegimeSemester, true
	}
	return "", false
}
