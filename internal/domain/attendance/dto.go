package attendance

import (
	"time"

	"github.com/payrollph/payroll-backend-go/internal/pkg/validator"
)

type CreateAttendanceRequest struct {
	EmployeeKey string `json:"employee_key"`
	FullName    string `json:"full_name,omitempty"`
	Department  string `json:"department,omitempty"`
	BranchID    string `json:"branch_id"`
	Timestamp   string `json:"timestamp"`
	Status      string `json:"status"`
}

func (r *CreateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeKey) {
		errs = append(errs, validator.ValidationError{Field: "employee_key", Message: "is required"})
	}
	if validator.IsEmpty(r.BranchID) {
		errs = append(errs, validator.ValidationError{Field: "branch_id", Message: "is required"})
	}
	if _, ok := validator.IsValidDateTime(r.Timestamp); !ok {
		errs = append(errs, validator.ValidationError{Field: "timestamp", Message: "must be an ISO8601 timestamp with timezone"})
	}
	if !Status(r.Status).Valid() {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be CHECK_IN, CHECK_OUT or UNKNOWN"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateAttendanceRequest struct {
	ID        string
	Timestamp *string `json:"timestamp,omitempty"`
	Status    *string `json:"status,omitempty"`
}

func (r *UpdateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Timestamp != nil {
		if _, ok := validator.IsValidDateTime(*r.Timestamp); !ok {
			errs = append(errs, validator.ValidationError{Field: "timestamp", Message: "must be an ISO8601 timestamp with timezone"})
		}
	}
	if r.Status != nil && !Status(*r.Status).Valid() {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be CHECK_IN, CHECK_OUT or UNKNOWN"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AttendanceResponse struct {
	ID          string    `json:"id"`
	EmployeeKey string    `json:"employee_key"`
	FullName    string    `json:"full_name,omitempty"`
	Department  string    `json:"department,omitempty"`
	BranchID    string    `json:"branch_id"`
	Timestamp   time.Time `json:"timestamp"`
	Status      string    `json:"status"`
}

type ListFilter struct {
	BranchID    *string
	EmployeeKey *string
	StartDate   *time.Time
	EndDate     *time.Time
	Page        int
	Limit       int
}
