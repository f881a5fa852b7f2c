package payroll

import (
	"strings"

	"github.com/payrollph/payroll-backend-go/internal/domain/employee"
	"github.com/payrollph/payroll-backend-go/internal/domain/payroll"
	"github.com/payrollph/payroll-backend-go/internal/service/reconcile"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Computation is one employee's fully itemized pay for a period. All
// monetary fields are exact decimals; rounding happens only at output
// formatting.
type Computation struct {
	BasePay          decimal.Decimal
	PremiumPay       decimal.Decimal
	OvertimePay      decimal.Decimal
	GrossPay         decimal.Decimal
	LatePenalty      decimal.Decimal
	UndertimePenalty decimal.Decimal
	SSS              decimal.Decimal
	PagIbig          decimal.Decimal
	PhilHealth       decimal.Decimal
	GovTotal         decimal.Decimal
	TaxTotal         decimal.Decimal
	DeductionsTotal  decimal.Decimal
	NetPay           decimal.Decimal
	DaysPresent      int
	DaysAbsent       int
	LateMinutes      int
	UndertimeMinutes int
	Issues           []string
}

// IssuesText joins the advisory issues for storage in the item row.
func (c Computation) IssuesText() string {
	return strings.Join(c.Issues, "; ")
}

// Compute derives the full compensation for one employee.
//
// JO staff earn dailyRate x daysPresent. COS staff earn the monthly
// salary, or half of it for half-month periods. Overtime is a constant
// zero: attendance data carries no overtime-hours source, and the field
// is kept only so exports have a stable shape.
func Compute(
	profile employee.Profile,
	period payroll.Period,
	rule payroll.Rule,
	contrib employee.Contribution,
	sum reconcile.Summary,
) Computation {
	c := Computation{
		OvertimePay:      decimal.Zero,
		DaysPresent:      sum.DaysPresent,
		DaysAbsent:       sum.DaysAbsent,
		LateMinutes:      sum.LateMinutes,
		UndertimeMinutes: sum.UndertimeMinutes,
	}

	// Base pay
	switch profile.EmploymentType {
	case employee.TypeJO:
		c.BasePay = profile.DailyRate.Mul(decimal.NewFromInt(int64(sum.DaysPresent)))
	default: // COS
		if period.PayMode == payroll.PayModeMonthly {
			c.BasePay = profile.MonthlySalary
		} else {
			c.BasePay = profile.MonthlySalary.Div(decimal.NewFromInt(2))
		}
	}

	// Premium
	c.PremiumPay = decimal.Zero
	if profile.HasPremium {
		c.PremiumPay = c.BasePay.Mul(rule.PremiumRatePercent.Div(hundred))
	}

	c.GrossPay = c.BasePay.Add(c.PremiumPay).Add(c.OvertimePay)

	// Penalties
	c.LatePenalty = rule.LatePenaltyPerMinute.Mul(decimal.NewFromInt(int64(sum.LateMinutes)))
	c.UndertimePenalty = rule.UndertimePenaltyPerMinute.Mul(decimal.NewFromInt(int64(sum.UndertimeMinutes)))

	// Government contributions
	c.SSS = contrib.SSS
	c.PagIbig = contrib.PagIbig
	if contrib.PhilHealthMode == employee.PhilHealthFixed {
		c.PhilHealth = contrib.PhilHealthValue
	} else {
		c.PhilHealth = c.BasePay.Mul(contrib.PhilHealthValue.Div(hundred))
	}
	c.GovTotal = c.SSS.Add(c.PagIbig).Add(c.PhilHealth)

	// Tax
	c.TaxTotal = decimal.Zero
	if c.GrossPay.IsPositive() {
		c.TaxTotal = c.GrossPay.Mul(rule.TaxRatePercent.Div(hundred))
	}

	// Net, clamped at zero
	c.DeductionsTotal = c.LatePenalty.Add(c.UndertimePenalty).Add(c.GovTotal).Add(c.TaxTotal)
	c.NetPay = c.GrossPay.Sub(c.DeductionsTotal)
	if c.NetPay.IsNegative() {
		c.NetPay = decimal.Zero
	}

	if sum.HasMissingLogs {
		c.Issues = append(c.Issues, "Missing logs")
	}
	if rule.LunchBreakRequired {
		// Lunch is not tracked as separate events; advisory only.
		c.Issues = append(c.Issues, "Lunch break not tracked")
	}

	return c
}
