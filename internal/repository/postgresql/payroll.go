package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/payrollph/payroll-backend-go/internal/domain/payroll"
	"github.com/payrollph/payroll-backend-go/internal/pkg/database"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

// ========== RULES ==========

const ruleColumns = `id, branch_id, tax_rate_percent, premium_rate_percent,
	late_penalty_per_minute, undertime_penalty_per_minute, grace_minutes,
	work_start, work_end, daily_hours_required, lunch_break_required,
	created_at, updated_at`

func scanRule(row pgx.Row) (payroll.Rule, error) {
	var rule payroll.Rule
	err := row.Scan(
		&rule.ID, &rule.BranchID, &rule.TaxRatePercent, &rule.PremiumRatePercent,
		&rule.LatePenaltyPerMinute, &rule.UndertimePenaltyPerMinute, &rule.GraceMinutes,
		&rule.WorkStart, &rule.WorkEnd, &rule.DailyHoursRequired, &rule.LunchBreakRequired,
		&rule.CreatedAt, &rule.UpdatedAt,
	)
	return rule, err
}

// EnsureRule lazily creates the branch rule row with defaults. The insert
// is ON CONFLICT DO NOTHING against the branch_id uniqueness constraint,
// so concurrent first reads converge on a single row.
func (r *payrollRepository) EnsureRule(ctx context.Context, branchID string) (payroll.Rule, error) {
	q := GetQuerier(ctx, r.db)

	def := payroll.DefaultRule(branchID)
	insert := `
		INSERT INTO payroll_rules (id, branch_id, tax_rate_percent, premium_rate_percent,
			late_penalty_per_minute, undertime_penalty_per_minute, grace_minutes,
			work_start, work_end, daily_hours_required, lunch_break_required)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (branch_id) DO NOTHING
	`
	if _, err := q.Exec(ctx, insert,
		uuid.NewString(), branchID, def.TaxRatePercent, def.PremiumRatePercent,
		def.LatePenaltyPerMinute, def.UndertimePenaltyPerMinute, def.GraceMinutes,
		def.WorkStart, def.WorkEnd, def.DailyHoursRequired, def.LunchBreakRequired,
	); err != nil {
		if isForeignKeyViolation(err) {
			return payroll.Rule{}, payroll.ErrRuleNotFound
		}
		return payroll.Rule{}, fmt.Errorf("failed to ensure payroll rule: %w", err)
	}

	return r.GetRuleByBranch(ctx, branchID)
}

func (r *payrollRepository) GetRuleByBranch(ctx context.Context, branchID string) (payroll.Rule, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + ruleColumns + ` FROM payroll_rules WHERE branch_id = $1`

	rule, err := scanRule(q.QueryRow(ctx, query, branchID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Rule{}, payroll.ErrRuleNotFound
		}
		return payroll.Rule{}, fmt.Errorf("failed to get payroll rule: %w", err)
	}

	return rule, nil
}

func (r *payrollRepository) UpdateRule(ctx context.Context, rule payroll.Rule) (payroll.Rule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_rules
		SET tax_rate_percent = $2, premium_rate_percent = $3,
			late_penalty_per_minute = $4, undertime_penalty_per_minute = $5,
			grace_minutes = $6, work_start = $7, work_end = $8,
			daily_hours_required = $9, lunch_break_required = $10, updated_at = NOW()
		WHERE branch_id = $1
		RETURNING id, updated_at
	`

	err := q.QueryRow(ctx, query,
		rule.BranchID, rule.TaxRatePercent, rule.PremiumRatePercent,
		rule.LatePenaltyPerMinute, rule.UndertimePenaltyPerMinute,
		rule.GraceMinutes, rule.WorkStart, rule.WorkEnd,
		rule.DailyHoursRequired, rule.LunchBreakRequired,
	).Scan(&rule.ID, &rule.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Rule{}, payroll.ErrRuleNotFound
		}
		return payroll.Rule{}, fmt.Errorf("failed to update payroll rule: %w", err)
	}

	return rule, nil
}

// ========== PERIODS ==========

const periodColumns = `id, name, start_date, end_date, pay_mode, created_at`

func scanPeriod(row pgx.Row) (payroll.Period, error) {
	var p payroll.Period
	err := row.Scan(&p.ID, &p.Name, &p.StartDate, &p.EndDate, &p.PayMode, &p.CreatedAt)
	return p, err
}

func (r *payrollRepository) CreatePeriod(ctx context.Context, period payroll.Period) (payroll.Period, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_periods (id, name, start_date, end_date, pay_mode)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`

	period.ID = uuid.NewString()
	err := q.QueryRow(ctx, query,
		period.ID, period.Name, period.StartDate, period.EndDate, period.PayMode,
	).Scan(&period.CreatedAt)
	if err != nil {
		return payroll.Period{}, fmt.Errorf("failed to create payroll period: %w", err)
	}

	return period, nil
}

func (r *payrollRepository) GetPeriodByID(ctx context.Context, id string) (payroll.Period, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + periodColumns + ` FROM payroll_periods WHERE id = $1`

	period, err := scanPeriod(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Period{}, payroll.ErrPeriodNotFound
		}
		return payroll.Period{}, fmt.Errorf("failed to get payroll period: %w", err)
	}

	return period, nil
}

func (r *payrollRepository) ListPeriods(ctx context.Context) ([]payroll.Period, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + periodColumns + ` FROM payroll_periods ORDER BY start_date DESC`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll periods: %w", err)
	}
	defer rows.Close()

	var periods []payroll.Period
	for rows.Next() {
		p, err := scanPeriod(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll period: %w", err)
		}
		periods = append(periods, p)
	}

	return periods, rows.Err()
}

// ========== BATCHES ==========

const batchColumns = `id, branch_id, period_id, name, status, totals_net,
	totals_deductions, processed_by, processed_at, created_at, updated_at`

func scanBatch(row pgx.Row) (payroll.Batch, error) {
	var b payroll.Batch
	err := row.Scan(
		&b.ID, &b.BranchID, &b.PeriodID, &b.Name, &b.Status, &b.TotalsNet,
		&b.TotalsDeductions, &b.ProcessedBy, &b.ProcessedAt, &b.CreatedAt, &b.UpdatedAt,
	)
	return b, err
}

// EnsureBatch resolves the unique (branch, period) batch row, creating it
// on first run. The insert is ON CONFLICT DO NOTHING against the
// (branch_id, period_id) uniqueness constraint, so two concurrent first
// runs converge on the same row.
func (r *payrollRepository) EnsureBatch(ctx context.Context, batch payroll.Batch) (payroll.Batch, error) {
	q := GetQuerier(ctx, r.db)

	insert := `
		INSERT INTO payroll_batches (id, branch_id, period_id, name, status, totals_net, totals_deductions)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (branch_id, period_id) DO NOTHING
	`
	if _, err := q.Exec(ctx, insert,
		uuid.NewString(), batch.BranchID, batch.PeriodID, batch.Name, batch.Status,
		batch.TotalsNet, batch.TotalsDeductions,
	); err != nil {
		return payroll.Batch{}, fmt.Errorf("failed to ensure payroll batch: %w", err)
	}

	query := `SELECT ` + batchColumns + ` FROM payroll_batches WHERE branch_id = $1 AND period_id = $2`

	b, err := scanBatch(q.QueryRow(ctx, query, batch.BranchID, batch.PeriodID))
	if err != nil {
		return payroll.Batch{}, fmt.Errorf("failed to get payroll batch: %w", err)
	}

	return b, nil
}

func (r *payrollRepository) UpdateBatch(ctx context.Context, batch payroll.Batch) (payroll.Batch, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_batches
		SET name = $2, status = $3, totals_net = $4, totals_deductions = $5,
			processed_by = $6, processed_at = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		batch.ID, batch.Name, batch.Status, batch.TotalsNet, batch.TotalsDeductions,
		batch.ProcessedBy, batch.ProcessedAt,
	).Scan(&batch.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Batch{}, payroll.ErrBatchNotFound
		}
		return payroll.Batch{}, fmt.Errorf("failed to update payroll batch: %w", err)
	}

	return batch, nil
}

func (r *payrollRepository) GetBatchByID(ctx context.Context, id string) (payroll.Batch, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + batchColumns + ` FROM payroll_batches WHERE id = $1`

	b, err := scanBatch(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Batch{}, payroll.ErrBatchNotFound
		}
		return payroll.Batch{}, fmt.Errorf("failed to get payroll batch: %w", err)
	}

	return b, nil
}

func (r *payrollRepository) ListBatches(ctx context.Context, branchID *string) ([]payroll.Batch, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + batchColumns + ` FROM payroll_batches`
	var args []interface{}
	if branchID != nil {
		query += ` WHERE branch_id = $1`
		args = append(args, *branchID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll batches: %w", err)
	}
	defer rows.Close()

	var batches []payroll.Batch
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll batch: %w", err)
		}
		batches = append(batches, b)
	}

	return batches, rows.Err()
}

// ========== ITEMS ==========

const itemColumns = `id, batch_id, profile_id, employee_name, employment_type,
	base_pay, premium_pay, overtime_pay, gross_pay,
	days_present, days_absent, late_minutes, undertime_minutes,
	late_penalty, undertime_penalty, sss, pagibig, philhealth,
	gov_total, tax_total, deductions_total, net_pay, issues, meta, created_at`

func scanItem(row pgx.Row) (payroll.Item, error) {
	var (
		item payroll.Item
		meta []byte
	)
	err := row.Scan(
		&item.ID, &item.BatchID, &item.ProfileID, &item.EmployeeName, &item.EmploymentType,
		&item.BasePay, &item.PremiumPay, &item.OvertimePay, &item.GrossPay,
		&item.DaysPresent, &item.DaysAbsent, &item.LateMinutes, &item.UndertimeMinutes,
		&item.LatePenalty, &item.UndertimePenalty, &item.SSS, &item.PagIbig, &item.PhilHealth,
		&item.GovTotal, &item.TaxTotal, &item.DeductionsTotal, &item.NetPay,
		&item.Issues, &meta, &item.CreatedAt,
	)
	if err != nil {
		return payroll.Item{}, err
	}
	if len(meta) > 0 {
		if err := json.Unmarshal(meta, &item.Meta); err != nil {
			return payroll.Item{}, fmt.Errorf("failed to decode item meta: %w", err)
		}
	}
	return item, nil
}

func (r *payrollRepository) DeleteItemsByBatch(ctx context.Context, batchID string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM payroll_items WHERE batch_id = $1`, batchID); err != nil {
		return fmt.Errorf("failed to delete payroll items: %w", err)
	}

	return nil
}

func (r *payrollRepository) InsertItem(ctx context.Context, item payroll.Item) (payroll.Item, error) {
	q := GetQuerier(ctx, r.db)

	meta, err := json.Marshal(item.Meta)
	if err != nil {
		return payroll.Item{}, fmt.Errorf("failed to encode item meta: %w", err)
	}

	query := `
		INSERT INTO payroll_items (id, batch_id, profile_id, employee_name, employment_type,
			base_pay, premium_pay, overtime_pay, gross_pay,
			days_present, days_absent, late_minutes, undertime_minutes,
			late_penalty, undertime_penalty, sss, pagibig, philhealth,
			gov_total, tax_total, deductions_total, net_pay, issues, meta)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
			$13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24)
		RETURNING created_at
	`

	item.ID = uuid.NewString()
	err = q.QueryRow(ctx, query,
		item.ID, item.BatchID, item.ProfileID, item.EmployeeName, item.EmploymentType,
		item.BasePay, item.PremiumPay, item.OvertimePay, item.GrossPay,
		item.DaysPresent, item.DaysAbsent, item.LateMinutes, item.UndertimeMinutes,
		item.LatePenalty, item.UndertimePenalty, item.SSS, item.PagIbig, item.PhilHealth,
		item.GovTotal, item.TaxTotal, item.DeductionsTotal, item.NetPay, item.Issues, meta,
	).Scan(&item.CreatedAt)
	if err != nil {
		return payroll.Item{}, fmt.Errorf("failed to insert payroll item: %w", err)
	}

	return item, nil
}

func (r *payrollRepository) ListItemsByBatch(ctx context.Context, batchID string) ([]payroll.Item, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + itemColumns + ` FROM payroll_items WHERE batch_id = $1 ORDER BY employee_name`

	rows, err := q.Query(ctx, query, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll items: %w", err)
	}
	defer rows.Close()

	var items []payroll.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll item: %w", err)
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

func (r *payrollRepository) GetItemByID(ctx context.Context, id string) (payroll.Item, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + itemColumns + ` FROM payroll_items WHERE id = $1`

	item, err := scanItem(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Item{}, payroll.ErrItemNotFound
		}
		return payroll.Item{}, fmt.Errorf("failed to get payroll item: %w", err)
	}

	return item, nil
}
