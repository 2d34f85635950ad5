package evaluation

import (
	"math"
	"strings"
)

func invalidReason(r Record) string {
	switch {
	case strings.TrimSpace(r.EmployeeID) == "":
		return "missing employee id"
	case r.Date.IsZero():
		return "missing evaluation date"
	case math.IsNaN(r.FinalScore) || math.IsInf(r.FinalScore, 0):
		return "final score is not a number"
	}
	return ""
}

// Validate splits records into the usable subset and one error per rejected
// record. A rejected record never stops the remaining ones from being kept.
func Validate(records []Record) ([]Record, []*InvalidRecordError) {
	valid := make([]Record, 0, len(records))
	var rejected []*InvalidRecordError
	for i, r := range records {
		if reason := invalidReason(r); reason != "" {
			rejected = append(rejected, &InvalidRecordError{Index: i, EmployeeID: r.EmployeeID, Reason: reason})
			continue
		}
		valid = append(valid, r)
	}
	return valid, rejected
}

func isValid(r Record) bool {
	return invalidReason(r) == ""
}

// ValidateSubmission checks a new evaluation before it is stored.
func ValidateSubmission(s Submission) error {
	switch {
	case strings.TrimSpace(s.EmployeeID) == "":
		return invalidSubmission("employee id required")
	case s.Date.IsZero():
		return invalidSubmission("evaluation date required")
	case math.IsNaN(s.FinalScore) || s.FinalScore < MinScore || s.FinalScore > MaxScore:
		return invalidSubmission("final score must be between 1 and 5")
	}
	return nil
}

func invalidSubmission(reason string) error {
	return &submissionError{reason: reason}
}

type submissionError struct {
	reason string
}

func (e *submissionError) Error() string { return e.reason }

func (e *submissionError) Unwrap() error { return ErrInvalidSubmission }
