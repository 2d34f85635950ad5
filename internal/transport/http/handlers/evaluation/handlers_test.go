package evaluationhandler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrm/internal/domain/audit"
	"hrm/internal/domain/auth"
	"hrm/internal/domain/evaluation"
	"hrm/internal/transport/http/middleware"
)

type fakeStore struct {
	records     []evaluation.Record
	submitted   []evaluation.Submission
	coordinator string
	coordErr    error
}

func (f *fakeStore) ListRecords(context.Context, string) ([]evaluation.Record, error) {
	return f.records, nil
}

func (f *fakeStore) ListDepartmentNames(context.Context, string) ([]string, error) {
	return []string{"College", "Elementary"}, nil
}

func (f *fakeStore) CreateEvaluation(_ context.Context, _ string, s evaluation.Submission) (string, error) {
	f.submitted = append(f.submitted, s)
	return "ev-1", nil
}

func (f *fakeStore) ResetEvaluations(context.Context, string) (int64, error) {
	n := int64(len(f.records))
	f.records = nil
	return n, nil
}

func (f *fakeStore) CoordinatorDepartment(context.Context, string, string) (string, error) {
	return f.coordinator, f.coordErr
}

func (f *fakeStore) EmployeeDepartments(_ context.Context, _ string, employeeID string) ([]string, error) {
	var departments []string
	for _, r := range f.records {
		if r.EmployeeID == employeeID {
			departments = r.EmployeeDepartments
		}
	}
	return departments, nil
}

func (f *fakeStore) EmployeeIDByUserID(context.Context, string, string) (string, error) {
	return "evaluator-1", nil
}

// rolePerms answers permission checks from the static role table, using the
// role name as the role id.
type rolePerms struct{}

func (rolePerms) HasPermission(_ context.Context, roleID, permission string) (bool, error) {
	for _, perm := range auth.RolePermissions[roleID] {
		if perm == permission {
			return true, nil
		}
	}
	return false, nil
}

type recordingAudit struct{ entries []audit.Entry }

func (r *recordingAudit) Record(_ context.Context, entry audit.Entry) error {
	r.entries = append(r.entries, entry)
	return nil
}

func record(id string, month time.Month, score float64, departments ...string) evaluation.Record {
	return evaluation.Record{
		EmployeeID:          id,
		EmployeeName:        "Employee " + id,
		Date:                time.Date(2024, month, 10, 0, 0, 0, 0, time.UTC),
		FinalScore:          score,
		EmployeeDepartments: departments,
	}
}

func fixture() *fakeStore {
	return &fakeStore{coordinator: "Elementary", records: []evaluation.Record{
		record("elem", time.January, 4.5, "Elementary"),
		record("elem", time.April, 4.5, "Elementary"),
		record("elem", time.July, 4.5, "Elementary"),
		record("elem", time.October, 4.5, "Elementary"),
		record("col", time.March, 3.0, "College"),
		record("col", time.September, 3.5, "College"),
	}}
}

type harness struct {
	router http.Handler
	store  *fakeStore
	audit  *recordingAudit
}

func newHarness() harness {
	store := fixture()
	recorder := &recordingAudit{}
	svc := evaluation.NewService(store, evaluation.DefaultBonusThreshold, nil)
	svc.Now = func() time.Time { return time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC) }
	h := NewHandler(svc, rolePerms{}, recorder, nil)
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return harness{router: r, store: store, audit: recorder}
}

func (hs harness) do(method, path, body, role string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req = req.WithContext(middleware.WithUser(req.Context(), auth.UserContext{UserID: "u1", TenantID: "t1", RoleID: role, RoleName: role}))
	rec := httptest.NewRecorder()
	hs.router.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code string `json:"code"`
	} `json:"error"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out any) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	if out != nil {
		require.NoError(t, json.Unmarshal(env.Data, out))
	}
	return env
}

func TestTotalsDefaultsToLatestYear(t *testing.T) {
	hs := newHarness()
	rec := hs.do(http.MethodGet, "/evaluations/totals", "", auth.RoleHR)
	require.Equal(t, http.StatusOK, rec.Code)

	var report evaluation.TotalsReport
	decode(t, rec, &report)
	assert.Equal(t, 2024, report.Year)
	require.Len(t, report.Quarter, 1)
	require.Len(t, report.Semester, 1)
	require.NotNil(t, report.Semester[0].TotalScore)
	assert.InDelta(t, 3.25, *report.Semester[0].TotalScore, 1e-9)
}

func TestTotalsRejectsBadYear(t *testing.T) {
	rec := newHarness().do(http.MethodGet, "/evaluations/totals?year=abc", "", auth.RoleHR)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPeriodsRequiresRegime(t *testing.T) {
	hs := newHarness()
	assert.Equal(t, http.StatusBadRequest, hs.do(http.MethodGet, "/evaluations/periods", "", auth.RoleHR).Code)
	assert.Equal(t, http.StatusBadRequest, hs.do(http.MethodGet, "/evaluations/periods?regime=yearly", "", auth.RoleHR).Code)

	rec := hs.do(http.MethodGet, "/evaluations/periods?regime=semester", "", auth.RoleHR)
	require.Equal(t, http.StatusOK, rec.Code)
	var view evaluation.HistoryView
	decode(t, rec, &view)
	require.Len(t, view.Periods, 2)
	assert.Len(t, view.Periods[0].Records, 1)
}

func TestCoordinatorEligibilityIsScoped(t *testing.T) {
	rec := newHarness().do(http.MethodGet, "/evaluations/eligibility", "", auth.RoleCoordinator)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Eligible    []evaluation.EligibleEmployee `json:"eligible"`
		NotEligible []string                      `json:"notEligible"`
	}
	decode(t, rec, &body)
	require.Len(t, body.Eligible, 1)
	assert.Equal(t, "elem", body.Eligible[0].EmployeeID)
	assert.Empty(t, body.NotEligible)
}

func TestCoordinatorWithoutDepartmentIsForbidden(t *testing.T) {
	hs := newHarness()
	hs.store.coordinator = ""
	rec := hs.do(http.MethodGet, "/evaluations/totals", "", auth.RoleCoordinator)
	require.Equal(t, http.StatusForbidden, rec.Code)
	env := decode(t, rec, nil)
	require.NotNil(t, env.Error)
	assert.Equal(t, "scope_unavailable", env.Error.Code)
}

func TestCoordinatorLookupFailureIsServerError(t *testing.T) {
	hs := newHarness()
	hs.store.coordErr = errors.New("connection refused")
	rec := hs.do(http.MethodGet, "/evaluations/totals", "", auth.RoleCoordinator)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	env := decode(t, rec, nil)
	require.NotNil(t, env.Error)
	assert.Equal(t, "evaluation_failed", env.Error.Code)
}

func TestCoordinatorSubmitOutsideDepartmentIsForbidden(t *testing.T) {
	hs := newHarness()
	hs.store.records = append(hs.store.records,
		record("6b0e2a52-3d4c-4f7e-8f0a-1c2d3e4f5a6b", time.May, 4.0, "College"),
		record("7c1f3b63-4e5d-4a8f-9a1b-2d3e4f5a6b7c", time.May, 4.0, "Elementary"),
	)

	rec := hs.do(http.MethodPost, "/evaluations", `{"employeeId":"6b0e2a52-3d4c-4f7e-8f0a-1c2d3e4f5a6b","date":"2024-11-02","finalScore":4}`, auth.RoleCoordinator)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, hs.store.submitted)

	rec = hs.do(http.MethodPost, "/evaluations", `{"employeeId":"7c1f3b63-4e5d-4a8f-9a1b-2d3e4f5a6b7c","date":"2024-11-02","finalScore":4}`, auth.RoleCoordinator)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Len(t, hs.store.submitted, 1)
}

func TestEmployeeRoleCannotReadEvaluations(t *testing.T) {
	rec := newHarness().do(http.MethodGet, "/evaluations/eligibility", "", auth.RoleEmployee)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestEligibilityReportIsPDF(t *testing.T) {
	rec := newHarness().do(http.MethodGet, "/evaluations/eligibility/report.pdf", "", auth.RoleAdmin)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))
	assert.Equal(t, "attachment; filename=bonus-eligibility-2024-12-01.pdf", rec.Header().Get("Content-Disposition"))
}

func TestSubmitEvaluation(t *testing.T) {
	hs := newHarness()
	rec := hs.do(http.MethodPost, "/evaluations", `{"employeeId":"6b0e2a52-3d4c-4f7e-8f0a-1c2d3e4f5a6b","date":"2024-11-02","finalScore":4.75}`, auth.RoleHR)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.Len(t, hs.store.submitted, 1)
	assert.Equal(t, "evaluator-1", hs.store.submitted[0].EvaluatorID)
	require.Len(t, hs.audit.entries, 1)
	assert.Equal(t, audit.ActionEvaluationSubmit, hs.audit.entries[0].Action)
}

func TestSubmitValidation(t *testing.T) {
	hs := newHarness()
	rec := hs.do(http.MethodPost, "/evaluations", `{"employeeId":"","date":"nope","finalScore":9}`, auth.RoleHR)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, hs.store.submitted)
}

func TestSubmitRejectsMalformedIDs(t *testing.T) {
	hs := newHarness()
	rec := hs.do(http.MethodPost, "/evaluations", `{"employeeId":"col","evaluatorId":"x","date":"2024-11-02","finalScore":4}`, auth.RoleHR)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "evaluatorId")
	assert.Empty(t, hs.store.submitted)
}

func TestResetRequiresAdmin(t *testing.T) {
	hs := newHarness()
	assert.Equal(t, http.StatusForbidden, hs.do(http.MethodDelete, "/evaluations", "", auth.RoleHR).Code)

	rec := hs.do(http.MethodDelete, "/evaluations", "", auth.RoleAdmin)
	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]int64
	decode(t, rec, &body)
	assert.Equal(t, int64(6), body["deleted"])

	rec = hs.do(http.MethodGet, "/evaluations/totals", "", auth.RoleAdmin)
	var report evaluation.TotalsReport
	decode(t, rec, &report)
	assert.Equal(t, 2024, report.Year)
	assert.Empty(t, report.Quarter)
	assert.Empty(t, report.Semester)
}

func TestDepartmentsForCoordinator(t *testing.T) {
	rec := newHarness().do(http.MethodGet, "/evaluations/departments", "", auth.RoleCoordinator)
	var names []string
	decode(t, rec, &names)
	assert.Equal(t, []string{"Elementary"}, names)
}
