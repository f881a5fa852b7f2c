package employee

import (
	"github.com/payrollph/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateProfileRequest struct {
	Username       string          `json:"username"`
	FullName       string          `json:"full_name"`
	BranchID       string          `json:"branch_id"`
	EmploymentType string          `json:"employment_type"`
	DailyRate      decimal.Decimal `json:"daily_rate"`
	MonthlySalary  decimal.Decimal `json:"monthly_salary"`
	HasPremium     bool            `json:"has_premium"`
}

func (r *CreateProfileRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Username) {
		errs = append(errs, validator.ValidationError{Field: "username", Message: "is required"})
	}
	if validator.IsEmpty(r.BranchID) {
		errs = append(errs, validator.ValidationError{Field: "branch_id", Message: "is required"})
	}
	if !EmploymentType(r.EmploymentType).Valid() {
		errs = append(errs, validator.ValidationError{Field: "employment_type", Message: "must be COS or JO"})
	}
	if r.DailyRate.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "daily_rate", Message: "must be non-negative"})
	}
	if r.MonthlySalary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "monthly_salary", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateProfileRequest struct {
	ID             string
	FullName       *string          `json:"full_name,omitempty"`
	BranchID       *string          `json:"branch_id,omitempty"`
	EmploymentType *string          `json:"employment_type,omitempty"`
	DailyRate      *decimal.Decimal `json:"daily_rate,omitempty"`
	MonthlySalary  *decimal.Decimal `json:"monthly_salary,omitempty"`
	HasPremium     *bool            `json:"has_premium,omitempty"`
}

func (r *UpdateProfileRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmploymentType != nil && !EmploymentType(*r.EmploymentType).Valid() {
		errs = append(errs, validator.ValidationError{Field: "employment_type", Message: "must be COS or JO"})
	}
	if r.DailyRate != nil && r.DailyRate.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "daily_rate", Message: "must be non-negative"})
	}
	if r.MonthlySalary != nil && r.MonthlySalary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "monthly_salary", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ProfileResponse struct {
	ID             string          `json:"id"`
	Username       string          `json:"username"`
	FullName       string          `json:"full_name"`
	EmployeeNo     int64           `json:"employee_no"`
	BranchID       string          `json:"branch_id"`
	EmploymentType string          `json:"employment_type"`
	DailyRate      decimal.Decimal `json:"daily_rate"`
	MonthlySalary  decimal.Decimal `json:"monthly_salary"`
	HasPremium     bool            `json:"has_premium"`
	IsApproved     bool            `json:"is_approved"`
}

type UpdateContributionRequest struct {
	ProfileID       string
	SSS             *decimal.Decimal `json:"sss,omitempty"`
	PagIbig         *decimal.Decimal `json:"pagibig,omitempty"`
	PhilHealthMode  *string          `json:"philhealth_mode,omitempty"`
	PhilHealthValue *decimal.Decimal `json:"philhealth_value,omitempty"`
}

func (r *UpdateContributionRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.SSS != nil && r.SSS.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "sss", Message: "must be non-negative"})
	}
	if r.PagIbig != nil && r.PagIbig.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "pagibig", Message: "must be non-negative"})
	}
	if r.PhilHealthMode != nil {
		mode := PhilHealthMode(*r.PhilHealthMode)
		if mode != PhilHealthPercent && mode != PhilHealthFixed {
			errs = append(errs, validator.ValidationError{Field: "philhealth_mode", Message: "must be 'percent' or 'fixed'"})
		}
	}
	if r.PhilHealthValue != nil && r.PhilHealthValue.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "philhealth_value", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ContributionResponse struct {
	ProfileID       string          `json:"profile_id"`
	SSS             decimal.Decimal `json:"sss"`
	PagIbig         decimal.Decimal `json:"pagibig"`
	PhilHealthMode  string          `json:"philhealth_mode"`
	PhilHealthValue decimal.Decimal `json:"philhealth_value"`
}
