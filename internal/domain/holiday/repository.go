package holiday

import (
	"context"
	"time"
)

type SuspensionRepository interface {
	Create(ctx context.Context, s Suspension) (Suspension, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, branchID *string) ([]Suspension, error)

	// ListForDate returns every record matching a calendar date that is
	// visible to the branch: nationwide, region, or scoped to that branch.
	ListForDate(ctx context.Context, branchID string, date time.Time) ([]Suspension, error)
}
