/*
handlers_test.go - HTTP-level tests for the REST API

Tests exercise the full router (middleware included) against an in-memory
store: employee CRUD, attendance recording with derived status, the leave
workflow, end-to-end payroll run creation, and the admin guard rails.
*/
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/payroll-engine/config"
	"github.com/warp/payroll-engine/seed"
	"github.com/warp/payroll-engine/store/sqlite"
)

func newTestAPI(t *testing.T) (http.Handler, *sqlite.Store) {
	t.Helper()
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	cfg := config.Config{
		Environment:    "development",
		Port:           8080,
		DBPath:         ":memory:",
		AllowedOrigins: []string{"*"},
	}
	return NewRouter(NewHandler(store, cfg, nil)), store
}

func doRequest(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(out), "body: %s", rec.Body.String())
}

func monthlyEmployeeRequest(email string) CreateEmployeeRequest {
	return CreateEmployeeRequest{
		Name:       "Maria Santos",
		Email:      email,
		Role:       "Engineer",
		Department: "Engineering",
		SalaryType: "monthly",
		SalaryRate: "30000",
		HireDate:   "2023-04-01",
	}
}

func createEmployee(t *testing.T, router http.Handler, email string) EmployeeDTO {
	t.Helper()
	rec := doRequest(t, router, http.MethodPost, "/api/employees", monthlyEmployeeRequest(email))
	require.Equal(t, http.StatusCreated, rec.Code, "body: %s", rec.Body.String())
	var dto EmployeeDTO
	decodeBody(t, rec, &dto)
	return dto
}

// =============================================================================
// EMPLOYEES
// =============================================================================

func TestEmployeeCRUD(t *testing.T) {
	// GIVEN: An empty store
	// WHEN: Creating, reading, and updating an employee over HTTP
	// THEN: Mutable fields change; email and salary type stay fixed

	router, _ := newTestAPI(t)

	created := createEmployee(t, router, "maria@techcorp.ph")
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "monthly", created.SalaryType)
	assert.True(t, created.SalaryRate.Equal(decimal.NewFromInt(30000)))
	assert.True(t, created.OvertimeRate.Equal(decimal.NewFromFloat(1.25)), "default overtime multiplier")
	assert.Equal(t, "active", created.Status)

	rec := doRequest(t, router, http.MethodGet, "/api/employees", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []EmployeeDTO
	decodeBody(t, rec, &list)
	require.Len(t, list, 1)

	// The update tries to switch email and salary type; both are pinned.
	update := monthlyEmployeeRequest("someone-else@techcorp.ph")
	update.Name = "Maria Santos-Cruz"
	update.SalaryType = "daily"
	update.SalaryRate = "32000"
	rec = doRequest(t, router, http.MethodPut, "/api/employees/"+created.ID, update)
	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())
	var updated EmployeeDTO
	decodeBody(t, rec, &updated)
	assert.Equal(t, "Maria Santos-Cruz", updated.Name)
	assert.Equal(t, "maria@techcorp.ph", updated.Email)
	assert.Equal(t, "monthly", updated.SalaryType)
	assert.True(t, updated.SalaryRate.Equal(decimal.NewFromInt(32000)))
}

func TestCreateEmployee_Validation(t *testing.T) {
	router, _ := newTestAPI(t)

	missing := monthlyEmployeeRequest("x@techcorp.ph")
	missing.Name = ""
	rec := doRequest(t, router, http.MethodPost, "/api/employees", missing)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	badType := monthlyEmployeeRequest("y@techcorp.ph")
	badType.SalaryType = "weekly"
	rec = doRequest(t, router, http.MethodPost, "/api/employees", badType)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	badRate := monthlyEmployeeRequest("z@techcorp.ph")
	badRate.SalaryRate = "-100"
	rec = doRequest(t, router, http.MethodPost, "/api/employees", badRate)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateEmployee_DuplicateEmail(t *testing.T) {
	router, _ := newTestAPI(t)
	createEmployee(t, router, "dup@techcorp.ph")

	rec := doRequest(t, router, http.MethodPost, "/api/employees", monthlyEmployeeRequest("dup@techcorp.ph"))
	assert.Equal(t, http.StatusConflict, rec.Code)

	var errResp ErrorResponse
	decodeBody(t, rec, &errResp)
	assert.NotEmpty(t, errResp.Error)
}

func TestGetEmployee_NotFound(t *testing.T) {
	router, _ := newTestAPI(t)
	rec := doRequest(t, router, http.MethodGet, "/api/employees/no-such-id", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// =============================================================================
// ATTENDANCE
// =============================================================================

func TestRecordAttendance_DerivesStatus(t *testing.T) {
	// GIVEN: An employee
	// WHEN: Recording a day with a 08:30 clock-in
	// THEN: Hours, forgiven-grace late minutes, and the late status are derived

	router, _ := newTestAPI(t)
	emp := createEmployee(t, router, "clock@techcorp.ph")

	rec := doRequest(t, router, http.MethodPost, "/api/attendance", RecordAttendanceRequest{
		EmployeeID: emp.ID,
		Date:       "2026-03-02",
		TimeIn:     "08:30",
		TimeOut:    "17:00",
	})
	require.Equal(t, http.StatusCreated, rec.Code, "body: %s", rec.Body.String())

	var day AttendanceDTO
	decodeBody(t, rec, &day)
	assert.Equal(t, "late", day.Status)
	assert.True(t, day.RegularHours.Equal(decimal.NewFromFloat(8.5)))
	assert.True(t, day.LateMinutes.Equal(decimal.NewFromInt(20)), "grace minutes are forgiven")
	assert.True(t, day.UndertimeMinutes.IsZero())

	// Same employee, same day: rejected.
	rec = doRequest(t, router, http.MethodPost, "/api/attendance", RecordAttendanceRequest{
		EmployeeID: emp.ID,
		Date:       "2026-03-02",
		TimeIn:     "08:00",
		TimeOut:    "17:00",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// The record shows up in a range query.
	rec = doRequest(t, router, http.MethodGet,
		"/api/employees/"+emp.ID+"/attendance?start=2026-03-01&end=2026-03-15", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var days []AttendanceDTO
	decodeBody(t, rec, &days)
	assert.Len(t, days, 1)
}

func TestRecordAttendance_UnknownEmployee(t *testing.T) {
	router, _ := newTestAPI(t)
	rec := doRequest(t, router, http.MethodPost, "/api/attendance", RecordAttendanceRequest{
		EmployeeID: "ghost",
		Date:       "2026-03-02",
		TimeIn:     "08:00",
		TimeOut:    "17:00",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// =============================================================================
// LEAVES
// =============================================================================

func TestLeaveWorkflow(t *testing.T) {
	// GIVEN: An employee with the opening annual balance
	// WHEN: Filing and approving a three-day vacation (Mon-Wed)
	// THEN: The request is approved and the balance debited

	router, _ := newTestAPI(t)
	emp := createEmployee(t, router, "leave@techcorp.ph")

	rec := doRequest(t, router, http.MethodPost, "/api/leaves", CreateLeaveRequest{
		EmployeeID: emp.ID,
		Type:       "vacation",
		StartDate:  "2026-03-02",
		EndDate:    "2026-03-04",
		Reason:     "family trip",
	})
	require.Equal(t, http.StatusCreated, rec.Code, "body: %s", rec.Body.String())
	var leave LeaveDTO
	decodeBody(t, rec, &leave)
	assert.Equal(t, "pending", leave.Status)
	assert.Equal(t, 3, leave.DaysCount)

	rec = doRequest(t, router, http.MethodPost, "/api/leaves/"+leave.ID+"/approve?approver=hr-1", nil)
	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())
	decodeBody(t, rec, &leave)
	assert.Equal(t, "approved", leave.Status)
	assert.Equal(t, "hr-1", leave.ApprovedBy)

	rec = doRequest(t, router, http.MethodGet,
		"/api/employees/"+emp.ID+"/leave-balance?year=2026", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var balance LeaveBalanceDTO
	decodeBody(t, rec, &balance)
	assert.True(t, balance.VacationBalance.Equal(decimal.NewFromInt(12)))
	assert.True(t, balance.VacationUsed.Equal(decimal.NewFromInt(3)))
	assert.True(t, balance.SickBalance.Equal(decimal.NewFromInt(15)), "sick credits untouched")
}

func TestRejectLeave(t *testing.T) {
	router, _ := newTestAPI(t)
	emp := createEmployee(t, router, "reject@techcorp.ph")

	rec := doRequest(t, router, http.MethodPost, "/api/leaves", CreateLeaveRequest{
		EmployeeID: emp.ID,
		Type:       "sick",
		StartDate:  "2026-03-09",
		EndDate:    "2026-03-09",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var leave LeaveDTO
	decodeBody(t, rec, &leave)

	rec = doRequest(t, router, http.MethodPost,
		"/api/leaves/"+leave.ID+"/reject?approver=hr-1",
		RejectLeaveRequest{Reason: "coverage needed"})
	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())
	decodeBody(t, rec, &leave)
	assert.Equal(t, "rejected", leave.Status)
	assert.Equal(t, "coverage needed", leave.RejectionReason)

	// A rejected request never touches the balance.
	rec = doRequest(t, router, http.MethodGet,
		"/api/employees/"+emp.ID+"/leave-balance?year=2026", nil)
	var balance LeaveBalanceDTO
	decodeBody(t, rec, &balance)
	assert.True(t, balance.SickBalance.Equal(decimal.NewFromInt(15)))
	assert.True(t, balance.SickUsed.IsZero())
}

func TestCreateLeave_NoWorkingDays(t *testing.T) {
	// A weekend-only range has zero payable days and is rejected outright.
	router, _ := newTestAPI(t)
	emp := createEmployee(t, router, "weekend@techcorp.ph")

	rec := doRequest(t, router, http.MethodPost, "/api/leaves", CreateLeaveRequest{
		EmployeeID: emp.ID,
		Type:       "vacation",
		StartDate:  "2026-03-07",
		EndDate:    "2026-03-08",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLeaveBalance_DefaultsWhenUntracked(t *testing.T) {
	// No balance row yet: the API reports the opening annual credits.
	router, _ := newTestAPI(t)
	emp := createEmployee(t, router, "fresh@techcorp.ph")

	rec := doRequest(t, router, http.MethodGet,
		"/api/employees/"+emp.ID+"/leave-balance?year=2026", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var balance LeaveBalanceDTO
	decodeBody(t, rec, &balance)
	assert.True(t, balance.SickBalance.Equal(decimal.NewFromInt(15)))
	assert.True(t, balance.VacationBalance.Equal(decimal.NewFromInt(15)))
	assert.True(t, balance.VacationUsed.IsZero())
}

// =============================================================================
// HOLIDAYS AND COMPANY
// =============================================================================

func TestHolidayEndpoints(t *testing.T) {
	router, _ := newTestAPI(t)

	rec := doRequest(t, router, http.MethodPost, "/api/holidays", CreateHolidayRequest{
		Name: "Company Anniversary",
		Date: "2026-09-15",
		Type: "special",
	})
	require.Equal(t, http.StatusCreated, rec.Code, "body: %s", rec.Body.String())
	var holiday HolidayDTO
	decodeBody(t, rec, &holiday)
	assert.Equal(t, "special", holiday.Type)

	// Second holiday on the same date is a conflict.
	rec = doRequest(t, router, http.MethodPost, "/api/holidays", CreateHolidayRequest{
		Name: "Duplicate Day",
		Date: "2026-09-15",
		Type: "regular",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Unknown type is rejected before hitting the store.
	rec = doRequest(t, router, http.MethodPost, "/api/holidays", CreateHolidayRequest{
		Name: "Mystery Day",
		Date: "2026-10-01",
		Type: "floating",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, router, http.MethodDelete, "/api/holidays/"+holiday.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/api/holidays", nil)
	var list []HolidayDTO
	decodeBody(t, rec, &list)
	assert.Empty(t, list)
}

func TestCompanyProfile(t *testing.T) {
	router, _ := newTestAPI(t)

	rec := doRequest(t, router, http.MethodGet, "/api/company", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code, "profile starts unset")

	rec = doRequest(t, router, http.MethodPut, "/api/company", CompanyProfileDTO{
		CompanyName: "TechCorp Philippines Inc.",
		Address:     "BGC, Taguig",
		Email:       "hr@techcorp.ph",
		TaxID:       "123-456-789-000",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/api/company", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var profile CompanyProfileDTO
	decodeBody(t, rec, &profile)
	assert.Equal(t, "TechCorp Philippines Inc.", profile.CompanyName)
	assert.Equal(t, "123-456-789-000", profile.TaxID)
}

// =============================================================================
// CONFIG DOCUMENTS
// =============================================================================

func TestConfigEndpoints(t *testing.T) {
	router, _ := newTestAPI(t)

	rec := doRequest(t, router, http.MethodGet, "/api/configs/benefits/2024", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, "no tables saved for 2024 yet")

	rec = doRequest(t, router, http.MethodPut, "/api/configs/benefits/2024", ConfigDTO{
		Document: json.RawMessage(seed.DefaultBenefitsJSON()),
	})
	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())

	rec = doRequest(t, router, http.MethodGet, "/api/configs/benefits/2024", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var cfg ConfigDTO
	decodeBody(t, rec, &cfg)
	assert.Equal(t, 2024, cfg.Year)
	assert.NotEmpty(t, cfg.Document)

	// Documents that don't parse as bracket tables are rejected.
	rec = doRequest(t, router, http.MethodPut, "/api/configs/tax/2024", ConfigDTO{
		Document: json.RawMessage(`{"not": "brackets"}`),
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// =============================================================================
// PAYROLL RUNS
// =============================================================================

func saveStatutoryConfigs(t *testing.T, store *sqlite.Store, year int) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, store.SaveBenefitsConfig(ctx, year, seed.DefaultBenefitsJSON()))
	require.NoError(t, store.SaveTaxConfig(ctx, year, seed.DefaultTaxJSON()))
}

func TestCreateRun_EndToEnd(t *testing.T) {
	// GIVEN: Statutory tables for 2026, one employee, one attendance day
	// WHEN: Creating a semi-monthly run over HTTP
	// THEN: The run lands as a draft with a computed entry, contribution
	//       breakdown, and payslip; finalizing freezes it

	router, store := newTestAPI(t)
	saveStatutoryConfigs(t, store, 2026)
	emp := createEmployee(t, router, "run@techcorp.ph")

	rec := doRequest(t, router, http.MethodPost, "/api/attendance", RecordAttendanceRequest{
		EmployeeID: emp.ID,
		Date:       "2026-03-02",
		TimeIn:     "08:00",
		TimeOut:    "17:00",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, router, http.MethodPost, "/api/payroll/runs", CreateRunRequest{
		StartDate: "2026-03-01",
		EndDate:   "2026-03-15",
		Type:      "semi-monthly",
	})
	require.Equal(t, http.StatusCreated, rec.Code, "body: %s", rec.Body.String())
	var run RunDTO
	decodeBody(t, rec, &run)
	assert.Equal(t, "draft", run.Status)
	assert.Equal(t, 1, run.Entries)

	rec = doRequest(t, router, http.MethodGet, "/api/payroll/runs/"+run.ID+"/entries", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var entries []EntryDTO
	decodeBody(t, rec, &entries)
	require.Len(t, entries, 1)
	entry := entries[0]
	assert.Equal(t, emp.ID, entry.EmployeeID)
	assert.True(t, entry.Gross.GreaterThan(decimal.Zero))
	assert.True(t, entry.Net.GreaterThan(decimal.Zero))
	assert.Contains(t, entry.Deductions, "sss")
	assert.Contains(t, entry.Deductions, "philhealth")
	assert.Contains(t, entry.Deductions, "pagibig")
	assert.False(t, entry.IsFinalized)

	rec = doRequest(t, router, http.MethodGet, "/api/payroll/entries/"+entry.ID+"/contributions", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var contrib ContributionDTO
	decodeBody(t, rec, &contrib)
	assert.True(t, contrib.TotalEmployee.GreaterThan(decimal.Zero))
	assert.True(t, contrib.TotalEmployer.GreaterThan(contrib.TotalEmployee),
		"employer shoulders the larger statutory share")

	rec = doRequest(t, router, http.MethodGet, "/api/payroll/entries/"+entry.ID+"/payslip", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var slip PayslipDTO
	decodeBody(t, rec, &slip)
	assert.Equal(t, entry.ID, slip.EntryID)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(slip.Document, &doc))
	assert.Equal(t, entry.Net.String(), doc["net"], "document freezes the computed net")

	// Finalize, then verify the entry is frozen too.
	rec = doRequest(t, router, http.MethodPost, "/api/payroll/runs/"+run.ID+"/finalize", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &run)
	assert.Equal(t, "finalized", run.Status)

	rec = doRequest(t, router, http.MethodGet, "/api/payroll/entries/"+entry.ID, nil)
	decodeBody(t, rec, &entry)
	assert.True(t, entry.IsFinalized)

	// Payslip history for the employee.
	rec = doRequest(t, router, http.MethodGet, "/api/employees/"+emp.ID+"/payslips", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var slips []PayslipDTO
	decodeBody(t, rec, &slips)
	assert.Len(t, slips, 1)
}

func TestCreateRun_OverlapRejected(t *testing.T) {
	router, store := newTestAPI(t)
	saveStatutoryConfigs(t, store, 2026)
	createEmployee(t, router, "overlap@techcorp.ph")

	first := CreateRunRequest{StartDate: "2026-03-01", EndDate: "2026-03-15", Type: "semi-monthly"}
	rec := doRequest(t, router, http.MethodPost, "/api/payroll/runs", first)
	require.Equal(t, http.StatusCreated, rec.Code)

	overlapping := CreateRunRequest{StartDate: "2026-03-10", EndDate: "2026-03-25", Type: "semi-monthly"}
	rec = doRequest(t, router, http.MethodPost, "/api/payroll/runs", overlapping)
	assert.Equal(t, http.StatusConflict, rec.Code)

	adjacent := CreateRunRequest{StartDate: "2026-03-16", EndDate: "2026-03-31", Type: "semi-monthly"}
	rec = doRequest(t, router, http.MethodPost, "/api/payroll/runs", adjacent)
	assert.Equal(t, http.StatusCreated, rec.Code, "body: %s", rec.Body.String())
}

func TestCreateRun_MissingConfig(t *testing.T) {
	// No statutory tables for the period year: nothing is persisted.
	router, store := newTestAPI(t)
	createEmployee(t, router, "noconfig@techcorp.ph")

	rec := doRequest(t, router, http.MethodPost, "/api/payroll/runs", CreateRunRequest{
		StartDate: "2026-03-01",
		EndDate:   "2026-03-15",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	n, err := store.CountRows(context.Background(), "payroll_runs")
	require.NoError(t, err)
	assert.Zero(t, n, "a rejected run must not leave a row behind")
}

func TestGetRun_NotFound(t *testing.T) {
	router, _ := newTestAPI(t)
	rec := doRequest(t, router, http.MethodGet, "/api/payroll/runs/no-such-run", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// =============================================================================
// ADMIN
// =============================================================================

func TestAdminSeedAndReset(t *testing.T) {
	router, store := newTestAPI(t)

	rec := doRequest(t, router, http.MethodPost, "/api/admin/seed?seed=42", nil)
	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())
	var result map[string]int
	decodeBody(t, rec, &result)
	assert.Greater(t, result["created"], 0)

	// Wrong phrase: refused, data intact.
	rec = doRequest(t, router, http.MethodPost, "/api/admin/reset",
		ResetRequest{Confirmation: "delete all data"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	n, err := store.CountRows(context.Background(), "employees")
	require.NoError(t, err)
	assert.Equal(t, 8, n)

	// Exact phrase: everything goes.
	rec = doRequest(t, router, http.MethodPost, "/api/admin/reset",
		ResetRequest{Confirmation: seed.ConfirmationPhrase})
	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())
	n, err = store.CountRows(context.Background(), "employees")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestAdminReset_ProductionGuard(t *testing.T) {
	// A production-looking deployment refuses even the exact phrase.
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	cfg := config.Config{
		Environment:    "production",
		Port:           8080,
		DBPath:         ":memory:",
		AllowedOrigins: []string{"*"},
	}
	router := NewRouter(NewHandler(store, cfg, nil))

	rec := doRequest(t, router, http.MethodPost, "/api/admin/reset",
		ResetRequest{Confirmation: seed.ConfirmationPhrase})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestSummary(t *testing.T) {
	router, _ := newTestAPI(t)

	rec := doRequest(t, router, http.MethodPost, "/api/admin/seed?seed=42", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/api/summary", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var summary SummaryDTO
	decodeBody(t, rec, &summary)
	assert.Equal(t, 8, summary.TotalEmployees)
	assert.Equal(t, 8, summary.ActiveEmployees)
	assert.Equal(t, 1, summary.PayrollRuns)
	assert.Equal(t, 8, summary.Payslips)
	assert.Greater(t, summary.AttendanceRecords, 0)
	assert.Equal(t, 6, summary.Holidays)
}

func TestHealthz(t *testing.T) {
	router, _ := newTestAPI(t)
	rec := doRequest(t, router, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
