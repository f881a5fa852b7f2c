package branch

import (
	"github.com/payrollph/payroll-backend-go/internal/pkg/validator"
)

type CreateBranchRequest struct {
	Name   string `json:"name"`
	Region string `json:"region,omitempty"`
}

func (r *CreateBranchRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateBranchRequest struct {
	ID     string
	Name   *string `json:"name,omitempty"`
	Region *string `json:"region,omitempty"`
}

type BranchResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Region string `json:"region,omitempty"`
}
