package response

import (
	"errors"
	"net/http"

	"github.com/payrollph/payroll-backend-go/internal/domain/attendance"
	"github.com/payrollph/payroll-backend-go/internal/domain/branch"
	"github.com/payrollph/payroll-backend-go/internal/domain/employee"
	"github.com/payrollph/payroll-backend-go/internal/domain/holiday"
	"github.com/payrollph/payroll-backend-go/internal/domain/payroll"
	"github.com/payrollph/payroll-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Branch domain errors
	case errors.Is(err, branch.ErrBranchNotFound):
		NotFound(w, "Branch not found")
	case errors.Is(err, branch.ErrBranchNameExists):
		Conflict(w, "Branch name already exists")
	case errors.Is(err, branch.ErrBranchReferenced):
		Conflict(w, "Branch is referenced by other records")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrDuplicateRecord):
		Conflict(w, "Duplicate attendance record")

	// Employee domain errors
	case errors.Is(err, employee.ErrProfileNotFound):
		NotFound(w, "Employee profile not found")
	case errors.Is(err, employee.ErrUsernameExists):
		Conflict(w, "Username already exists")
	case errors.Is(err, employee.ErrContributionNotFound):
		NotFound(w, "Employee contribution not found")

	// Holiday domain errors
	case errors.Is(err, holiday.ErrSuspensionNotFound):
		NotFound(w, "Holiday or suspension not found")
	case errors.Is(err, holiday.ErrDuplicateDate):
		Conflict(w, "Holiday or suspension already recorded for this date")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrRuleNotFound):
		NotFound(w, "Payroll rule not found")
	case errors.Is(err, payroll.ErrPeriodNotFound):
		NotFound(w, "Payroll period not found")
	case errors.Is(err, payroll.ErrBatchNotFound):
		NotFound(w, "Payroll batch not found")
	case errors.Is(err, payroll.ErrItemNotFound):
		NotFound(w, "Payroll item not found")
	case errors.Is(err, payroll.ErrNoApprovedProfile):
		BadRequest(w, "No approved employee profiles in branch", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
