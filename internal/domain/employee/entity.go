package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type EmploymentType string

const (
	// TypeCOS is Contract of Service: fixed monthly salary.
	TypeCOS EmploymentType = "COS"
	// TypeJO is Job Order: paid per day present.
	TypeJO EmploymentType = "JO"
)

func (t EmploymentType) Valid() bool {
	return t == TypeCOS || t == TypeJO
}

// Profile is one employee. EmployeeNo is a stable numeric identifier kept
// alongside the username because biometric devices report either one as
// the attendance key.
type Profile struct {
	ID             string
	Username       string
	FullName       string
	EmployeeNo     int64
	BranchID       string
	EmploymentType EmploymentType
	DailyRate      decimal.Decimal
	MonthlySalary  decimal.Decimal
	HasPremium     bool
	IsApproved     bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type PhilHealthMode string

const (
	PhilHealthPercent PhilHealthMode = "percent"
	PhilHealthFixed   PhilHealthMode = "fixed"
)

// Contribution holds the employee's fixed government contribution amounts.
// PhilHealth is either a fixed amount or a percentage of base pay.
type Contribution struct {
	ID              string
	ProfileID       string
	SSS             decimal.Decimal
	PagIbig         decimal.Decimal
	PhilHealthMode  PhilHealthMode
	PhilHealthValue decimal.Decimal
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// DefaultContribution returns the documented lazy-creation defaults:
// SSS 760.00, Pag-IBIG 400.00, PhilHealth 5% of base pay.
func DefaultContribution(profileID string) Contribution {
	return Contribution{
		ProfileID:       profileID,
		SSS:             decimal.NewFromInt(760),
		PagIbig:         decimal.NewFromInt(400),
		PhilHealthMode:  PhilHealthPercent,
		PhilHealthValue: decimal.NewFromInt(5),
	}
}
