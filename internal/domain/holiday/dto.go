package holiday

import (
	"github.com/payrollph/payroll-backend-go/internal/pkg/validator"
)

type CreateSuspensionRequest struct {
	Date     string  `json:"date"`
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Scope    string  `json:"scope"`
	BranchID *string `json:"branch_id,omitempty"`
	Region   *string `json:"region,omitempty"`
}

func (r *CreateSuspensionRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be YYYY-MM-DD"})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if !Type(r.Type).Valid() {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "must be holiday, suspension or special"})
	}
	if !Scope(r.Scope).Valid() {
		errs = append(errs, validator.ValidationError{Field: "scope", Message: "must be nationwide, region or branch"})
	}
	if Scope(r.Scope) == ScopeBranch && (r.BranchID == nil || validator.IsEmpty(*r.BranchID)) {
		errs = append(errs, validator.ValidationError{Field: "branch_id", Message: "is required for branch scope"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SuspensionResponse struct {
	ID       string  `json:"id"`
	Date     string  `json:"date"`
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Scope    string  `json:"scope"`
	BranchID *string `json:"branch_id,omitempty"`
	Region   *string `json:"region,omitempty"`
}
