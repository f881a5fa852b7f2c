package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayMode enum
type PayMode string

const (
	PayModeMonthly    PayMode = "MONTHLY"
	PayModeFirstHalf  PayMode = "FIRST_HALF"
	PayModeSecondHalf PayMode = "SECOND_HALF"
)

func (m PayMode) Valid() bool {
	switch m {
	case PayModeMonthly, PayModeFirstHalf, PayModeSecondHalf:
		return true
	}
	return false
}

// Period is an inclusive date range. StartDate <= EndDate is enforced at
// creation; a period referenced by a completed batch is treated as
// immutable by convention.
type Period struct {
	ID        string
	Name      string
	StartDate time.Time
	EndDate   time.Time
	PayMode   PayMode
	CreatedAt time.Time
}

// Rule is the per-branch work-hour and deduction rule set. Exactly one per
// branch, lazily created with defaults on first access.
//
// WorkStart/WorkEnd are wall-clock strings ("08:00", "17:00") interpreted
// on each calendar date in the reconciliation timezone.
type Rule struct {
	ID                        string
	BranchID                  string
	TaxRatePercent            decimal.Decimal
	PremiumRatePercent        decimal.Decimal
	LatePenaltyPerMinute      decimal.Decimal
	UndertimePenaltyPerMinute decimal.Decimal
	GraceMinutes              int
	WorkStart                 string
	WorkEnd                   string
	DailyHoursRequired        int
	LunchBreakRequired        bool
	CreatedAt                 time.Time
	UpdatedAt                 time.Time
}

// DefaultRule returns the documented lazy-creation defaults: tax 5%,
// premium 20%, late penalty 1.50/min, undertime penalty 2.00/min,
// 15 minutes grace, work hours 08:00-17:00.
func DefaultRule(branchID string) Rule {
	return Rule{
		BranchID:                  branchID,
		TaxRatePercent:            decimal.NewFromInt(5),
		PremiumRatePercent:        decimal.NewFromInt(20),
		LatePenaltyPerMinute:      decimal.NewFromFloat(1.50),
		UndertimePenaltyPerMinute: decimal.NewFromFloat(2.00),
		GraceMinutes:              15,
		WorkStart:                 "08:00",
		WorkEnd:                   "17:00",
		DailyHoursRequired:        8,
		LunchBreakRequired:        true,
	}
}

// BatchStatus enum
type BatchStatus string

const (
	BatchStatusDraft     BatchStatus = "draft"
	BatchStatusCompleted BatchStatus = "completed"
)

// Batch is the idempotent payroll snapshot for one (branch, period).
// Reprocessing deletes and recreates all child items in one transaction.
type Batch struct {
	ID               string
	BranchID         string
	PeriodID         string
	Name             string
	Status           BatchStatus
	TotalsNet        decimal.Decimal
	TotalsDeductions decimal.Decimal
	ProcessedBy      *string
	ProcessedAt      *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ItemMeta records which attendance key matched during reconciliation and
// the period bounds the item was computed against. Stored as JSONB.
type ItemMeta struct {
	MatchedKey  string `json:"matched_key"`
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
}

// Item is one employee's fully itemized computed result within a batch.
// Items are never mutated in place; reprocessing replaces the whole set.
type Item struct {
	ID               string
	BatchID          string
	ProfileID        string
	EmployeeName     string
	EmploymentType   string
	BasePay          decimal.Decimal
	PremiumPay       decimal.Decimal
	OvertimePay      decimal.Decimal
	GrossPay         decimal.Decimal
	DaysPresent      int
	DaysAbsent       int
	LateMinutes      int
	UndertimeMinutes int
	LatePenalty      decimal.Decimal
	UndertimePenalty decimal.Decimal
	SSS              decimal.Decimal
	PagIbig          decimal.Decimal
	PhilHealth       decimal.Decimal
	GovTotal         decimal.Decimal
	TaxTotal         decimal.Decimal
	DeductionsTotal  decimal.Decimal
	NetPay           decimal.Decimal
	Issues           string
	Meta             ItemMeta
	CreatedAt        time.Time
}
