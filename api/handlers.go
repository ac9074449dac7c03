/*
handlers.go - HTTP API handlers for the payroll service

PURPOSE:
  Exposes the payroll engine and store via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Employees:
    GET    /api/employees                       List employees
    POST   /api/employees                       Create employee
    GET    /api/employees/{id}                  Get employee details
    PUT    /api/employees/{id}                  Update employee
    GET    /api/employees/{id}/attendance       Attendance in a date range
    GET    /api/employees/{id}/leaves           Leave history
    GET    /api/employees/{id}/leave-balance    Annual credit balance
    GET    /api/employees/{id}/payslips         Payslip history

  Attendance:
    POST   /api/attendance                      Record one employee-day

  Leaves:
    POST   /api/leaves                          File a request
    POST   /api/leaves/{id}/approve             Approve (debits balance)
    POST   /api/leaves/{id}/reject              Reject with reason

  Payroll:
    POST   /api/payroll/runs                    Create run + compute entries
    GET    /api/payroll/runs                    List runs
    GET    /api/payroll/runs/{id}               Run details
    GET    /api/payroll/runs/{id}/entries       Entries of a run
    POST   /api/payroll/runs/{id}/finalize      Freeze the run
    GET    /api/payroll/entries/{id}            One entry
    GET    /api/payroll/entries/{id}/contributions
    GET    /api/payroll/entries/{id}/payslip

  Reference:
    GET/POST /api/holidays, DELETE /api/holidays/{id}
    GET/PUT  /api/company
    GET/PUT  /api/configs/benefits/{year}, /api/configs/tax/{year}

  Summary:
    GET    /api/summary                         Dashboard counts

  Admin (development):
    POST   /api/admin/seed                      Idempotent seeding
    POST   /api/admin/reset                     Guarded destructive reset

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 403: Production guard / confirmation mismatch
  - 404: Resource not found
  - 409: Conflict (duplicates, overlapping periods)
  - 422: Missing configuration for the requested period
  - 500: Internal errors

SECURITY NOTE:
  No authentication middleware. Users exist as reference rows only.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/warp/payroll-engine/config"
	"github.com/warp/payroll-engine/payroll"
	"github.com/warp/payroll-engine/seed"
	"github.com/warp/payroll-engine/store/sqlite"
)

const dateLayout = "2006-01-02"

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store  *sqlite.Store
	Config config.Config
	Logger *log.Logger
}

// NewHandler wires a handler set around the store.
func NewHandler(store *sqlite.Store, cfg config.Config, logger *log.Logger) *Handler {
	return &Handler{Store: store, Config: cfg, Logger: logger}
}

// =============================================================================
// EMPLOYEES
// =============================================================================

// ListEmployees returns all employees, optionally filtered by ?status=.
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	status := payroll.EmployeeStatus(r.URL.Query().Get("status"))
	employees, err := h.Store.ListEmployees(r.Context(), status)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list employees", err)
		return
	}
	dtos := make([]EmployeeDTO, 0, len(employees))
	for _, e := range employees {
		dtos = append(dtos, toEmployeeDTO(e))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetEmployee returns one employee by ID.
func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	e, err := h.Store.GetEmployee(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toEmployeeDTO(e))
}

// CreateEmployee validates and inserts a new employee.
func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	e, err := employeeFromRequest(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}
	created, err := h.Store.CreateEmployee(r.Context(), e)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toEmployeeDTO(created))
}

// UpdateEmployee rewrites mutable employee fields.
func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	existing, err := h.Store.GetEmployee(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	var req CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	updated, err := employeeFromRequest(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}
	updated.ID = existing.ID
	updated.Email = existing.Email
	updated.SalaryType = existing.SalaryType // fixed at creation
	if updated.Status == "" {
		updated.Status = existing.Status
	}
	if err := h.Store.UpdateEmployee(r.Context(), updated); err != nil {
		writeDomainError(w, err)
		return
	}
	refreshed, err := h.Store.GetEmployee(r.Context(), existing.ID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toEmployeeDTO(refreshed))
}

func employeeFromRequest(req CreateEmployeeRequest) (payroll.Employee, error) {
	if req.Name == "" || req.Email == "" {
		return payroll.Employee{}, errors.New("name and email are required")
	}
	salaryType := payroll.SalaryType(req.SalaryType)
	if !salaryType.Valid() {
		return payroll.Employee{}, errors.New("salary_type must be hourly, daily, or monthly")
	}
	rate, err := decimal.NewFromString(req.SalaryRate)
	if err != nil || rate.Sign() <= 0 {
		return payroll.Employee{}, errors.New("salary_rate must be a positive decimal string")
	}
	hireDate, err := time.Parse(dateLayout, req.HireDate)
	if err != nil {
		return payroll.Employee{}, errors.New("hire_date must be YYYY-MM-DD")
	}

	overtime := decimal.NewFromFloat(1.25)
	if req.OvertimeRate != "" {
		if overtime, err = decimal.NewFromString(req.OvertimeRate); err != nil {
			return payroll.Employee{}, errors.New("overtime_rate must be a decimal string")
		}
	}
	night := decimal.NewFromFloat(1.10)
	if req.NightRate != "" {
		if night, err = decimal.NewFromString(req.NightRate); err != nil {
			return payroll.Employee{}, errors.New("night_rate must be a decimal string")
		}
	}

	var allowances map[string]decimal.Decimal
	if len(req.Allowances) > 0 {
		allowances = make(map[string]decimal.Decimal, len(req.Allowances))
		for k, v := range req.Allowances {
			d, err := decimal.NewFromString(v)
			if err != nil {
				return payroll.Employee{}, errors.New("allowance " + k + " must be a decimal string")
			}
			allowances[k] = d
		}
	}

	return payroll.Employee{
		Name:         req.Name,
		Email:        req.Email,
		Contact:      req.Contact,
		Role:         req.Role,
		Department:   req.Department,
		SalaryType:   salaryType,
		SalaryRate:   rate,
		Allowances:   allowances,
		OvertimeRate: overtime,
		NightRate:    night,
		Status:       payroll.EmployeeActive,
		HireDate:     hireDate,
	}, nil
}

// =============================================================================
// ATTENDANCE
// =============================================================================

// RecordAttendance records one employee-day. Hours, late/undertime minutes,
// and status are derived from the clock times when not supplied.
func (h *Handler) RecordAttendance(w http.ResponseWriter, r *http.Request) {
	var req RecordAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	day, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD", nil)
		return
	}
	if _, err := h.Store.GetEmployee(r.Context(), req.EmployeeID); err != nil {
		writeDomainError(w, err)
		return
	}

	rec := payroll.AttendanceRecord{
		EmployeeID:       req.EmployeeID,
		Date:             day,
		TimeIn:           req.TimeIn,
		TimeOut:          req.TimeOut,
		Shift:            payroll.ShiftDay,
		RegularHours:     decimal.Zero,
		OvertimeHours:    decimal.Zero,
		NightHours:       decimal.Zero,
		LateMinutes:      decimal.Zero,
		UndertimeMinutes: decimal.Zero,
		Notes:            req.Notes,
	}
	if req.Shift != "" {
		rec.Shift = payroll.ShiftType(req.Shift)
	}
	if req.Overtime != "" {
		if rec.OvertimeHours, err = decimal.NewFromString(req.Overtime); err != nil {
			writeError(w, http.StatusBadRequest, "overtime_hours must be a decimal string", nil)
			return
		}
	}
	if req.NightHours != "" {
		if rec.NightHours, err = decimal.NewFromString(req.NightHours); err != nil {
			writeError(w, http.StatusBadRequest, "night_hours must be a decimal string", nil)
			return
		}
	}

	if req.TimeIn != "" && req.TimeOut != "" {
		rec.RegularHours = payroll.WorkHours(req.TimeIn, req.TimeOut)
		rec.LateMinutes = payroll.LateMinutes(req.TimeIn, "08:00")
		rec.UndertimeMinutes = payroll.UndertimeMinutes(req.TimeOut, "17:00")
	}
	rec.Status = payroll.DetermineStatus(req.TimeIn, rec.RegularHours, rec.LateMinutes, rec.UndertimeMinutes)

	if holiday, err := h.Store.GetHolidayByDate(r.Context(), day); err == nil && holiday != nil {
		rec.IsHoliday = true
		rec.HolidayID = holiday.ID
	}

	created, err := h.Store.CreateAttendance(r.Context(), rec)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toAttendanceDTO(created))
}

// GetEmployeeAttendance returns records in ?start=&end= (defaults to the
// current semi-monthly period).
func (h *Handler) GetEmployeeAttendance(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")
	period, err := periodFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}
	records, err := h.Store.ListAttendanceInPeriod(r.Context(), employeeID, period)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list attendance", err)
		return
	}
	dtos := make([]AttendanceDTO, 0, len(records))
	for _, rec := range records {
		dtos = append(dtos, toAttendanceDTO(rec))
	}
	writeJSON(w, http.StatusOK, dtos)
}

func periodFromQuery(r *http.Request) (payroll.Period, error) {
	start, end := r.URL.Query().Get("start"), r.URL.Query().Get("end")
	if start == "" && end == "" {
		return payroll.SemiMonthlyPeriodFor(time.Now().UTC()), nil
	}
	s, err := time.Parse(dateLayout, start)
	if err != nil {
		return payroll.Period{}, errors.New("start must be YYYY-MM-DD")
	}
	e, err := time.Parse(dateLayout, end)
	if err != nil {
		return payroll.Period{}, errors.New("end must be YYYY-MM-DD")
	}
	p := payroll.Period{Start: s, End: e}
	if !p.Valid() {
		return payroll.Period{}, errors.New("end before start")
	}
	return p, nil
}

// =============================================================================
// LEAVES
// =============================================================================

// CreateLeave files a pending request. Day count excludes weekends and
// holidays.
func (h *Handler) CreateLeave(w http.ResponseWriter, r *http.Request) {
	var req CreateLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "start_date must be YYYY-MM-DD", nil)
		return
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "end_date must be YYYY-MM-DD", nil)
		return
	}
	if _, err := h.Store.GetEmployee(r.Context(), req.EmployeeID); err != nil {
		writeDomainError(w, err)
		return
	}

	holidays, err := h.Store.ListHolidays(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load holidays", err)
		return
	}
	leave := payroll.Leave{
		EmployeeID: req.EmployeeID,
		Type:       payroll.LeaveType(req.Type),
		StartDate:  start,
		EndDate:    end,
		Reason:     req.Reason,
	}
	leave.DaysCount = payroll.LeaveWorkingDays(leave, holidays)
	if leave.DaysCount == 0 {
		writeError(w, http.StatusBadRequest, "No working days in the requested range", nil)
		return
	}

	created, err := h.Store.CreateLeave(r.Context(), leave)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toLeaveDTO(created))
}

// ApproveLeave transitions pending -> approved and debits the balance.
func (h *Handler) ApproveLeave(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	approver := r.URL.Query().Get("approver")
	if err := h.Store.ApproveLeave(r.Context(), id, approver); err != nil {
		writeDomainError(w, err)
		return
	}
	leave, err := h.Store.GetLeave(r.Context(), id)
	if err != nil || leave == nil {
		writeError(w, http.StatusInternalServerError, "Failed to reload leave", err)
		return
	}
	writeJSON(w, http.StatusOK, toLeaveDTO(*leave))
}

// RejectLeave transitions pending -> rejected.
func (h *Handler) RejectLeave(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req RejectLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	approver := r.URL.Query().Get("approver")
	if err := h.Store.RejectLeave(r.Context(), id, approver, req.Reason); err != nil {
		writeDomainError(w, err)
		return
	}
	leave, err := h.Store.GetLeave(r.Context(), id)
	if err != nil || leave == nil {
		writeError(w, http.StatusInternalServerError, "Failed to reload leave", err)
		return
	}
	writeJSON(w, http.StatusOK, toLeaveDTO(*leave))
}

// GetEmployeeLeaves returns an employee's leave history.
func (h *Handler) GetEmployeeLeaves(w http.ResponseWriter, r *http.Request) {
	leaves, err := h.Store.ListLeavesByEmployee(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list leaves", err)
		return
	}
	dtos := make([]LeaveDTO, 0, len(leaves))
	for _, l := range leaves {
		dtos = append(dtos, toLeaveDTO(l))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetLeaveBalance returns the ?year= balance (defaults to the current year).
func (h *Handler) GetLeaveBalance(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")
	year := time.Now().UTC().Year()
	if v := r.URL.Query().Get("year"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "year must be an integer", nil)
			return
		}
		year = parsed
	}
	balance, err := h.Store.GetLeaveBalance(r.Context(), employeeID, year)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get balance", err)
		return
	}
	if balance == nil {
		opening := payroll.NewAnnualBalance(employeeID, year)
		balance = &opening
	}
	writeJSON(w, http.StatusOK, LeaveBalanceDTO{
		EmployeeID:      employeeID,
		Year:            year,
		SickBalance:     balance.SickBalance,
		VacationBalance: balance.VacationBalance,
		SickUsed:        balance.SickUsed,
		VacationUsed:    balance.VacationUsed,
	})
}

// =============================================================================
// HOLIDAYS AND COMPANY
// =============================================================================

// ListHolidays returns the full calendar.
func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	holidays, err := h.Store.ListHolidays(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list holidays", err)
		return
	}
	dtos := make([]HolidayDTO, 0, len(holidays))
	for _, hd := range holidays {
		dtos = append(dtos, toHolidayDTO(hd))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateHoliday adds a calendar entry.
func (h *Handler) CreateHoliday(w http.ResponseWriter, r *http.Request) {
	var req CreateHolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	day, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD", nil)
		return
	}
	hType := payroll.HolidayType(req.Type)
	if hType != payroll.HolidayRegular && hType != payroll.HolidaySpecial {
		writeError(w, http.StatusBadRequest, "type must be regular or special", nil)
		return
	}
	if existing, err := h.Store.GetHolidayByDate(r.Context(), day); err == nil && existing != nil {
		writeError(w, http.StatusConflict, "A holiday already exists on that date", nil)
		return
	}
	created, err := h.Store.CreateHoliday(r.Context(), payroll.Holiday{
		Name:        req.Name,
		Date:        day,
		Type:        hType,
		Description: req.Description,
		Recurring:   req.Recurring,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create holiday", err)
		return
	}
	writeJSON(w, http.StatusCreated, toHolidayDTO(created))
}

// DeleteHoliday removes a calendar entry.
func (h *Handler) DeleteHoliday(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteHoliday(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete holiday", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetCompanyProfile returns the company row.
func (h *Handler) GetCompanyProfile(w http.ResponseWriter, r *http.Request) {
	p, err := h.Store.GetCompanyProfile(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get company profile", err)
		return
	}
	if p == nil {
		writeError(w, http.StatusNotFound, "Company profile not set", nil)
		return
	}
	writeJSON(w, http.StatusOK, CompanyProfileDTO{
		CompanyName:   p.CompanyName,
		Address:       p.Address,
		ContactNumber: p.ContactNumber,
		Email:         p.Email,
		TaxID:         p.TaxID,
	})
}

// SaveCompanyProfile upserts the company row.
func (h *Handler) SaveCompanyProfile(w http.ResponseWriter, r *http.Request) {
	var req CompanyProfileDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.CompanyName == "" {
		writeError(w, http.StatusBadRequest, "company_name is required", nil)
		return
	}
	err := h.Store.SaveCompanyProfile(r.Context(), payroll.CompanyProfile{
		CompanyName:   req.CompanyName,
		Address:       req.Address,
		ContactNumber: req.ContactNumber,
		Email:         req.Email,
		TaxID:         req.TaxID,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save company profile", err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

// =============================================================================
// CONFIG DOCUMENTS
// =============================================================================

// GetBenefitsConfig returns the contribution tables for {year}.
func (h *Handler) GetBenefitsConfig(w http.ResponseWriter, r *http.Request) {
	h.getConfig(w, r, h.Store.GetBenefitsConfig)
}

// GetTaxConfig returns the withholding schedule for {year}.
func (h *Handler) GetTaxConfig(w http.ResponseWriter, r *http.Request) {
	h.getConfig(w, r, h.Store.GetTaxConfig)
}

func (h *Handler) getConfig(w http.ResponseWriter, r *http.Request, get func(ctx context.Context, year int) (string, error)) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "year must be an integer", nil)
		return
	}
	doc, err := get(r.Context(), year)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ConfigDTO{Year: year, Document: json.RawMessage(doc)})
}

// SaveBenefitsConfig replaces the contribution tables for {year}.
func (h *Handler) SaveBenefitsConfig(w http.ResponseWriter, r *http.Request) {
	h.saveConfig(w, r, h.Store.SaveBenefitsConfig)
}

// SaveTaxConfig replaces the withholding schedule for {year}.
func (h *Handler) SaveTaxConfig(w http.ResponseWriter, r *http.Request) {
	h.saveConfig(w, r, h.Store.SaveTaxConfig)
}

func (h *Handler) saveConfig(w http.ResponseWriter, r *http.Request, save func(ctx context.Context, year int, doc string) error) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "year must be an integer", nil)
		return
	}
	var req ConfigDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := save(r.Context(), year, string(req.Document)); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid config document", err)
		return
	}
	writeJSON(w, http.StatusOK, ConfigDTO{Year: year, Document: req.Document})
}

// =============================================================================
// PAYROLL
// =============================================================================

// CreateRun creates a payroll run and computes one entry per active
// employee. The period must not overlap any existing run, and both config
// documents must exist for the period year; either failure leaves nothing
// persisted except the run rejection itself.
func (h *Handler) CreateRun(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req CreateRunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "start_date must be YYYY-MM-DD", nil)
		return
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "end_date must be YYYY-MM-DD", nil)
		return
	}
	runType := payroll.RunType(req.Type)
	if runType == "" {
		runType = payroll.RunSemiMonthly
	}
	period := payroll.Period{Start: start, End: end}

	// Resolve config before creating anything: a missing table must fail
	// the whole operation, not leave an empty run behind.
	engine, err := h.engineFor(ctx, period.Start.Year())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	run, err := h.Store.CreateRun(ctx, payroll.PayrollRun{
		StartDate: start,
		EndDate:   end,
		Type:      runType,
		Status:    payroll.RunDraft,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	count, err := h.computeEntries(ctx, engine, run, period)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	dto := toRunDTO(run)
	dto.Entries = count
	writeJSON(w, http.StatusCreated, dto)
}

func (h *Handler) engineFor(ctx context.Context, year int) (payroll.Engine, error) {
	benefitsDoc, err := h.Store.GetBenefitsConfig(ctx, year)
	if err != nil {
		return payroll.Engine{}, err
	}
	taxDoc, err := h.Store.GetTaxConfig(ctx, year)
	if err != nil {
		return payroll.Engine{}, err
	}
	return payroll.NewEngine(year, benefitsDoc, taxDoc)
}

func (h *Handler) computeEntries(ctx context.Context, engine payroll.Engine, run payroll.PayrollRun, period payroll.Period) (int, error) {
	holidays, err := h.Store.ListHolidays(ctx)
	if err != nil {
		return 0, err
	}
	employees, err := h.Store.ListEmployees(ctx, payroll.EmployeeActive)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, emp := range employees {
		attendance, err := h.Store.ListAttendanceInPeriod(ctx, emp.ID, period)
		if err != nil {
			return count, err
		}
		leaves, err := h.Store.ListApprovedLeavesInPeriod(ctx, emp.ID, period)
		if err != nil {
			return count, err
		}
		entry, contrib, err := engine.ComputeEntry(payroll.ComputeInput{
			Employee:   emp,
			Period:     period,
			Attendance: attendance,
			Leaves:     leaves,
			Holidays:   holidays,
		})
		if err != nil {
			return count, err
		}
		entry.RunID = run.ID
		slip, err := payroll.GeneratePayslip(entry, period, time.Now().UTC())
		if err != nil {
			return count, err
		}
		if _, err := h.Store.SaveEntryArtifacts(ctx, entry, contrib, slip); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// ListRuns returns all runs.
func (h *Handler) ListRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := h.Store.ListRuns(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list runs", err)
		return
	}
	dtos := make([]RunDTO, 0, len(runs))
	for _, run := range runs {
		dtos = append(dtos, toRunDTO(run))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetRun returns one run.
func (h *Handler) GetRun(w http.ResponseWriter, r *http.Request) {
	run, err := h.Store.GetRun(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRunDTO(run))
}

// GetRunEntries returns a run's entries.
func (h *Handler) GetRunEntries(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "id")
	if _, err := h.Store.GetRun(r.Context(), runID); err != nil {
		writeDomainError(w, err)
		return
	}
	entries, err := h.Store.ListEntriesByRun(r.Context(), runID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list entries", err)
		return
	}
	dtos := make([]EntryDTO, 0, len(entries))
	for _, e := range entries {
		dtos = append(dtos, toEntryDTO(e))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// FinalizeRun freezes a draft run and its entries.
func (h *Handler) FinalizeRun(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "id")
	if err := h.Store.FinalizeRun(r.Context(), runID); err != nil {
		writeDomainError(w, err)
		return
	}
	run, err := h.Store.GetRun(r.Context(), runID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRunDTO(run))
}

// GetEntry returns one payroll entry.
func (h *Handler) GetEntry(w http.ResponseWriter, r *http.Request) {
	entry, err := h.Store.GetEntry(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get entry", err)
		return
	}
	if entry == nil {
		writeError(w, http.StatusNotFound, "Entry not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toEntryDTO(*entry))
}

// GetEntryContributions returns an entry's statutory breakdown.
func (h *Handler) GetEntryContributions(w http.ResponseWriter, r *http.Request) {
	contrib, err := h.Store.GetContributionsByEntry(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get contributions", err)
		return
	}
	if contrib == nil {
		writeError(w, http.StatusNotFound, "Contributions not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, ContributionDTO{
		EntryID:       contrib.EntryID,
		SSSEmployee:   contrib.SSSEmployee,
		SSSEmployer:   contrib.SSSEmployer,
		PhilEmployee:  contrib.PhilEmployee,
		PhilEmployer:  contrib.PhilEmployer,
		PagEmployee:   contrib.PagEmployee,
		PagEmployer:   contrib.PagEmployer,
		TotalEmployee: contrib.TotalEmployee,
		TotalEmployer: contrib.TotalEmployer,
		BaseSalary:    contrib.BaseSalary,
	})
}

// GetEntryPayslip returns the frozen snapshot for an entry.
func (h *Handler) GetEntryPayslip(w http.ResponseWriter, r *http.Request) {
	slip, err := h.Store.GetPayslipByEntry(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get payslip", err)
		return
	}
	if slip == nil {
		writeError(w, http.StatusNotFound, "Payslip not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toPayslipDTO(*slip))
}

// GetEmployeePayslips returns an employee's payslip history.
func (h *Handler) GetEmployeePayslips(w http.ResponseWriter, r *http.Request) {
	slips, err := h.Store.ListPayslipsByEmployee(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list payslips", err)
		return
	}
	dtos := make([]PayslipDTO, 0, len(slips))
	for _, slip := range slips {
		dtos = append(dtos, toPayslipDTO(slip))
	}
	writeJSON(w, http.StatusOK, dtos)
}

func toPayslipDTO(p payroll.Payslip) PayslipDTO {
	return PayslipDTO{
		ID:         p.ID,
		EntryID:    p.EntryID,
		EmployeeID: p.EmployeeID,
		Document:   json.RawMessage(p.Document),
		Version:    p.Version,
		CreatedAt:  p.CreatedAt,
	}
}

// =============================================================================
// SUMMARY
// =============================================================================

// GetSummary returns dashboard counts across the main tables.
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	active, err := h.Store.ListEmployees(ctx, payroll.EmployeeActive)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to build summary", err)
		return
	}

	summary := SummaryDTO{ActiveEmployees: len(active)}
	counts := []struct {
		table string
		dest  *int
	}{
		{"employees", &summary.TotalEmployees},
		{"attendance", &summary.AttendanceRecords},
		{"leaves", &summary.LeaveRequests},
		{"holidays", &summary.Holidays},
		{"payroll_runs", &summary.PayrollRuns},
		{"payslips", &summary.Payslips},
	}
	for _, c := range counts {
		n, err := h.Store.CountRows(ctx, c.table)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to build summary", err)
			return
		}
		*c.dest = n
	}
	writeJSON(w, http.StatusOK, summary)
}

// =============================================================================
// ADMIN - development helpers
// =============================================================================

// SeedDatabase runs one idempotent seeding pass. ?seed= fixes the random
// source for reproducible data.
func (h *Handler) SeedDatabase(w http.ResponseWriter, r *http.Request) {
	var seedValue int64
	if v := r.URL.Query().Get("seed"); v != "" {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "seed must be an integer", nil)
			return
		}
		seedValue = parsed
	}
	seeder := seed.New(h.Store, seedValue, h.Logger)
	if err := seeder.Run(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Seeding failed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"created": seeder.Created(),
		"skipped": seeder.Skipped(),
	})
}

// ResetDatabase deletes everything. Refused in production-like deployments
// and without the exact confirmation phrase.
func (h *Handler) ResetDatabase(w http.ResponseWriter, r *http.Request) {
	var req ResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := seed.Reset(r.Context(), h.Store, h.Config, req.Confirmation, h.Logger); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "reset complete"})
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeDomainError maps domain errors onto HTTP statuses. Anything
// unrecognized is a 500.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case payroll.IsNotFound(err):
		writeError(w, http.StatusNotFound, err.Error(), nil)
	case payroll.IsDuplicate(err), errors.Is(err, payroll.ErrOverlappingRun):
		writeError(w, http.StatusConflict, err.Error(), nil)
	case errors.Is(err, payroll.ErrMissingBenefitsConfig),
		errors.Is(err, payroll.ErrMissingTaxConfig):
		writeError(w, http.StatusUnprocessableEntity, err.Error(), nil)
	case errors.Is(err, payroll.ErrProductionGuard),
		errors.Is(err, payroll.ErrConfirmationMismatch):
		writeError(w, http.StatusForbidden, err.Error(), nil)
	case payroll.IsClientError(err):
		writeError(w, http.StatusBadRequest, err.Error(), nil)
	default:
		writeError(w, http.StatusInternalServerError, "Internal error", err)
	}
}
