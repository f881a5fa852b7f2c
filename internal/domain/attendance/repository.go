package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	Create(ctx context.Context, record Record) (Record, error)
	GetByID(ctx context.Context, id string) (Record, error)
	Update(ctx context.Context, record Record) (Record, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]Record, int64, error)

	// ListByEmployeePeriod returns every record for one employee key in a
	// branch with start <= timestamp < end, ordered by timestamp ascending.
	ListByEmployeePeriod(ctx context.Context, branchID, employeeKey string, start, end time.Time) ([]Record, error)
}
