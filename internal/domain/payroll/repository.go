package payroll

import "context"

// PayrollRepository defines data access for rules, periods, batches and
// items. Mutating batch/item methods participate in the materializer's
// transaction through the querier carried in ctx.
type PayrollRepository interface {
	// Rules
	EnsureRule(ctx context.Context, branchID string) (Rule, error)
	GetRuleByBranch(ctx context.Context, branchID string) (Rule, error)
	UpdateRule(ctx context.Context, rule Rule) (Rule, error)

	// Periods
	CreatePeriod(ctx context.Context, period Period) (Period, error)
	GetPeriodByID(ctx context.Context, id string) (Period, error)
	ListPeriods(ctx context.Context) ([]Period, error)

	// Batches
	EnsureBatch(ctx context.Context, batch Batch) (Batch, error)
	UpdateBatch(ctx context.Context, batch Batch) (Batch, error)
	GetBatchByID(ctx context.Context, id string) (Batch, error)
	ListBatches(ctx context.Context, branchID *string) ([]Batch, error)

	// Items
	DeleteItemsByBatch(ctx context.Context, batchID string) error
	InsertItem(ctx context.Context, item Item) (Item, error)
	ListItemsByBatch(ctx context.Context, batchID string) ([]Item, error)
	GetItemByID(ctx context.Context, id string) (Item, error)
}
