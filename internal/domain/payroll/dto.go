package payroll

import (
	"github.com/payrollph/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== PERIOD DTOs ==========

type CreatePeriodRequest struct {
	Name      string `json:"name,omitempty"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	PayMode   string `json:"pay_mode"`
}

func (r *CreatePeriodRequest) Validate() error {
	var errs validator.ValidationErrors

	start, okStart := validator.IsValidDate(r.StartDate)
	if !okStart {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be YYYY-MM-DD"})
	}
	end, okEnd := validator.IsValidDate(r.EndDate)
	if !okEnd {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be YYYY-MM-DD"})
	}
	if okStart && okEnd && start.After(end) {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must not be after end_date"})
	}
	if !PayMode(r.PayMode).Valid() {
		errs = append(errs, validator.ValidationError{Field: "pay_mode", Message: "must be MONTHLY, FIRST_HALF or SECOND_HALF"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PeriodResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	PayMode   string `json:"pay_mode"`
}

// ========== RULE DTOs ==========

type UpdateRuleRequest struct {
	BranchID                  string
	TaxRatePercent            *decimal.Decimal `json:"tax_rate_percent,omitempty"`
	PremiumRatePercent        *decimal.Decimal `json:"premium_rate_percent,omitempty"`
	LatePenaltyPerMinute      *decimal.Decimal `json:"late_penalty_per_minute,omitempty"`
	UndertimePenaltyPerMinute *decimal.Decimal `json:"undertime_penalty_per_minute,omitempty"`
	GraceMinutes              *int             `json:"grace_minutes,omitempty"`
	WorkStart                 *string          `json:"work_start,omitempty"`
	WorkEnd                   *string          `json:"work_end,omitempty"`
	DailyHoursRequired        *int             `json:"daily_hours_required,omitempty"`
	LunchBreakRequired        *bool            `json:"lunch_break_required,omitempty"`
}

func (r *UpdateRuleRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.TaxRatePercent != nil && r.TaxRatePercent.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "tax_rate_percent", Message: "must be non-negative"})
	}
	if r.PremiumRatePercent != nil && r.PremiumRatePercent.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "premium_rate_percent", Message: "must be non-negative"})
	}
	if r.LatePenaltyPerMinute != nil && r.LatePenaltyPerMinute.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "late_penalty_per_minute", Message: "must be non-negative"})
	}
	if r.UndertimePenaltyPerMinute != nil && r.UndertimePenaltyPerMinute.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "undertime_penalty_per_minute", Message: "must be non-negative"})
	}
	if r.GraceMinutes != nil && *r.GraceMinutes < 0 {
		errs = append(errs, validator.ValidationError{Field: "grace_minutes", Message: "must be non-negative"})
	}
	if r.WorkStart != nil && !validator.IsValidClock(*r.WorkStart) {
		errs = append(errs, validator.ValidationError{Field: "work_start", Message: "must be HH:MM"})
	}
	if r.WorkEnd != nil && !validator.IsValidClock(*r.WorkEnd) {
		errs = append(errs, validator.ValidationError{Field: "work_end", Message: "must be HH:MM"})
	}
	if r.DailyHoursRequired != nil && *r.DailyHoursRequired <= 0 {
		errs = append(errs, validator.ValidationError{Field: "daily_hours_required", Message: "must be positive"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RuleResponse struct {
	BranchID                  string          `json:"branch_id"`
	TaxRatePercent            decimal.Decimal `json:"tax_rate_percent"`
	PremiumRatePercent        decimal.Decimal `json:"premium_rate_percent"`
	LatePenaltyPerMinute      decimal.Decimal `json:"late_penalty_per_minute"`
	UndertimePenaltyPerMinute decimal.Decimal `json:"undertime_penalty_per_minute"`
	GraceMinutes              int             `json:"grace_minutes"`
	WorkStart                 string          `json:"work_start"`
	WorkEnd                   string          `json:"work_end"`
	DailyHoursRequired        int             `json:"daily_hours_required"`
	LunchBreakRequired        bool            `json:"lunch_break_required"`
}

// ========== BATCH DTOs ==========

type ProcessBatchRequest struct {
	BranchID       string  `json:"branch_id"`
	PeriodID       string  `json:"period_id"`
	EmploymentType *string `json:"employment_type,omitempty"`
}

func (r *ProcessBatchRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.BranchID) {
		errs = append(errs, validator.ValidationError{Field: "branch_id", Message: "is required"})
	}
	if validator.IsEmpty(r.PeriodID) {
		errs = append(errs, validator.ValidationError{Field: "period_id", Message: "is required"})
	}
	if r.EmploymentType != nil && !validator.IsInSlice(*r.EmploymentType, []string{"COS", "JO"}) {
		errs = append(errs, validator.ValidationError{Field: "employment_type", Message: "must be COS or JO"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type BatchResponse struct {
	ID               string          `json:"id"`
	BranchID         string          `json:"branch_id"`
	PeriodID         string          `json:"period_id"`
	Name             string          `json:"name"`
	Status           string          `json:"status"`
	TotalsNet        decimal.Decimal `json:"totals_net"`
	TotalsDeductions decimal.Decimal `json:"totals_deductions"`
	ProcessedBy      *string         `json:"processed_by,omitempty"`
	ProcessedAt      *string         `json:"processed_at,omitempty"`
	ItemCount        int             `json:"item_count"`
}

type ItemResponse struct {
	ID               string          `json:"id"`
	ProfileID        string          `json:"profile_id"`
	EmployeeName     string          `json:"employee_name"`
	EmploymentType   string          `json:"employment_type"`
	BasePay          decimal.Decimal `json:"base_pay"`
	PremiumPay       decimal.Decimal `json:"premium_pay"`
	OvertimePay      decimal.Decimal `json:"overtime_pay"`
	GrossPay         decimal.Decimal `json:"gross_pay"`
	DaysPresent      int             `json:"days_present"`
	DaysAbsent       int             `json:"days_absent"`
	LateMinutes      int             `json:"late_minutes"`
	UndertimeMinutes int             `json:"undertime_minutes"`
	LatePenalty      decimal.Decimal `json:"late_penalty"`
	UndertimePenalty decimal.Decimal `json:"undertime_penalty"`
	SSS              decimal.Decimal `json:"sss"`
	PagIbig          decimal.Decimal `json:"pagibig"`
	PhilHealth       decimal.Decimal `json:"philhealth"`
	GovTotal         decimal.Decimal `json:"gov_total"`
	TaxTotal         decimal.Decimal `json:"tax_total"`
	DeductionsTotal  decimal.Decimal `json:"deductions_total"`
	NetPay           decimal.Decimal `json:"net_pay"`
	Issues           string          `json:"issues,omitempty"`
	Meta             ItemMeta        `json:"meta"`
}

// PreviewResponse is the on-demand per-employee preview, computed without
// committing a batch. Monetary figures are formatted to 2 decimal places.
type PreviewResponse struct {
	ProfileID  string `json:"profile_id"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	Base       string `json:"base"`
	Premium    string `json:"premium"`
	OT         string `json:"ot"`
	Late       int    `json:"late"`
	Undertime  int    `json:"undertime"`
	Absences   int    `json:"absences"`
	Deductions string `json:"deductions"`
	Net        string `json:"net"`
	Issues     string `json:"issues,omitempty"`
}

// ========== DTR DTOs ==========

// DTRDayResponse is one row of the Daily Time Record projection.
type DTRDayResponse struct {
	Date       string  `json:"date"`
	Day        string  `json:"day"`
	TimeIn     *string `json:"time_in,omitempty"`
	TimeOut    *string `json:"time_out,omitempty"`
	TotalHours string  `json:"total_hours"`
	Late       int     `json:"late"`
	Undertime  int     `json:"undertime"`
	Status     string  `json:"status"`
	NonWorking *string `json:"non_working,omitempty"`
}

type DTRResponse struct {
	ProfileID   string           `json:"profile_id"`
	Name        string           `json:"name"`
	PeriodStart string           `json:"period_start"`
	PeriodEnd   string           `json:"period_end"`
	MatchedKey  string           `json:"matched_key"`
	Days        []DTRDayResponse `json:"days"`
}
