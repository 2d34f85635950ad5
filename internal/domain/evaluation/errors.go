package evaluation

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidRecord     = errors.New("invalid evaluation record")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidSubmission = errors.New("invalid evaluation submission")
	ErrUnknownRole       = errors.New("unknown role")
	ErrScopeRequired     = errors.New("scoped role requires a department")
)

// InvalidRecordError names a record that was excluded from processing.
type InvalidRecordError struct {
	Index      int
	EmployeeID string
	Reason     string
}

func (e *InvalidRecordError) Error() string {
	return fmt.Sprintf("evaluation record %d (employee %q): %s", e.Index, e.EmployeeID, e.Reason)
}

func (e *InvalidRecordError) Is(target error) bool {
	return target == ErrInvalidRecord
}
