package evaluation

import (
	"context"
	"fmt"
	"time"

	"hrm/internal/domain/auth"
	"hrm/internal/requestctx"
)

// Observer receives engine run statistics. It may be nil.
type Observer interface {
	ObserveEvaluationRun(operation string, records, rejected int, duration time.Duration)
}

type Service struct {
	Store     StoreAPI
	Threshold float64
	Observer  Observer
	Now       func() time.Time
}

func NewService(store StoreAPI, threshold float64, observer Observer) *Service {
	if threshold <= 0 {
		threshold = DefaultBonusThreshold
	}
	return &Service{Store: store, Threshold: threshold, Observer: observer, Now: time.Now}
}

// ResolveViewer turns the caller's role into a Viewer, looking up the
// coordinator's department when the role is scoped.
func (s *Service) ResolveViewer(ctx context.Context, tenantID, userID, role string) (Viewer, error) {
	department := ""
	if role == auth.RoleCoordinator {
		name, err := s.Store.CoordinatorDepartment(ctx, tenantID, userID)
		if err != nil {
			return Viewer{}, fmt.Errorf("coordinator department lookup: %w", err)
		}
		department = name
	}
	return ViewerFor(role, department)
}

// load fetches the tenant's records, drops malformed ones and applies the
// viewer's scope. Everything computed afterwards sees only this population.
func (s *Service) load(ctx context.Context, tenantID string, viewer Viewer) ([]Record, int, error) {
	raw, err := s.Store.ListRecords(ctx, tenantID)
	if err != nil {
		return nil, 0, err
	}
	valid, rejected := Validate(raw)
	logger := requestctx.Logger(ctx)
	for _, rej := range rejected {
		logger.Warn("evaluation record rejected", "tenantId", tenantID, "index", rej.Index, "employeeId", rej.EmployeeID, "reason", rej.Reason)
	}
	return ScopeTo(valid, viewer.Scope()), len(rejected), nil
}

func (s *Service) observe(operation string, records, rejected int, start time.Time) {
	if s.Observer != nil {
		s.Observer.ObserveEvaluationRun(operation, records, rejected, time.Since(start))
	}
}

func (s *Service) PeriodHistory(ctx context.Context, tenantID string, viewer Viewer, regime Regime, department string) (HistoryView, error) {
	if !viewer.Can(ViewHistory) {
		return HistoryView{}, ErrForbidden
	}
	start := time.Now()
	records, rejected, err := s.load(ctx, tenantID, viewer)
	if err != nil {
		return HistoryView{}, err
	}
	if viewer.Scoped() {
		department = ""
	}
	view := History(Organize(records), regime, department)
	s.observe("history", len(records), rejected, start)
	return view, nil
}

// YearlyTotals aggregates year, or the most recent year with data when year is zero.
func (s *Service) YearlyTotals(ctx context.Context, tenantID string, viewer Viewer, year int) (TotalsReport, error) {
	if !viewer.Can(ViewTotals) {
		return TotalsReport{}, ErrForbidden
	}
	start := time.Now()
	records, rejected, err := s.load(ctx, tenantID, viewer)
	if err != nil {
		return TotalsReport{}, err
	}
	if year == 0 {
		year = LatestYear(records, s.Now().Year())
	}
	totals := Aggregate(records, year)
	report := TotalsReport{
		Year:     year,
		Years:    Years(records),
		Semester: SemesterTotals(totals),
		Quarter:  QuarterTotals(totals),
	}
	s.observe("totals", len(records), rejected, start)
	return report, nil
}

func (s *Service) Eligibility(ctx context.Context, tenantID string, viewer Viewer) (Eligibility, error) {
	if !viewer.Can(ViewEligibility) {
		return Eligibility{}, ErrForbidden
	}
	start := time.Now()
	records, rejected, err := s.load(ctx, tenantID, viewer)
	if err != nil {
		return Eligibility{}, err
	}
	result := EvaluateWithThreshold(records, s.Threshold)
	s.observe("eligibility", len(records), rejected, start)
	return result, nil
}

// Submit stores a new evaluation. Scoped viewers may only evaluate employees
// of their own department.
func (s *Service) Submit(ctx context.Context, tenantID string, viewer Viewer, submission Submission) (string, error) {
	if !viewer.Can(ViewSubmit) {
		return "", ErrForbidden
	}
	if err := ValidateSubmission(submission); err != nil {
		return "", err
	}
	if viewer.Scoped() {
		departments, err := s.Store.EmployeeDepartments(ctx, tenantID, submission.EmployeeID)
		if err != nil {
			return "", fmt.Errorf("employee departments lookup: %w", err)
		}
		if !hasDepartment(departments, viewer.Scope()) {
			return "", ErrForbidden
		}
	}
	return s.Store.CreateEvaluation(ctx, tenantID, submission)
}

// Reset deletes every evaluation of the tenant. Derived views recompute from
// the now empty record set on the next read.
func (s *Service) Reset(ctx context.Context, tenantID string, viewer Viewer) (int64, error) {
	if !viewer.Can(ViewReset) {
		return 0, ErrForbidden
	}
	return s.Store.ResetEvaluations(ctx, tenantID)
}

// Departments lists the department names the viewer may filter by.
func (s *Service) Departments(ctx context.Context, tenantID string, viewer Viewer) ([]string, error) {
	if viewer.Scoped() {
		return []string{viewer.Department}, nil
	}
	return s.Store.ListDepartmentNames(ctx, tenantID)
}

func (s *Service) EmployeeIDByUserID(ctx context.Context, tenantID, userID string) (string, error) {
	return s.Store.EmployeeIDByUserID(ctx, tenantID, userID)
}
