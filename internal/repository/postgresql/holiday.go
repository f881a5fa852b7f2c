package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/payrollph/payroll-backend-go/internal/domain/holiday"
	"github.com/payrollph/payroll-backend-go/internal/pkg/database"
)

type suspensionRepository struct {
	db *database.DB
}

func NewSuspensionRepository(db *database.DB) holiday.SuspensionRepository {
	return &suspensionRepository{db: db}
}

const suspensionColumns = `id, date, name, type, scope, branch_id, region, created_at`

func scanSuspension(row pgx.Row) (holiday.Suspension, error) {
	var s holiday.Suspension
	err := row.Scan(&s.ID, &s.Date, &s.Name, &s.Type, &s.Scope, &s.BranchID, &s.Region, &s.CreatedAt)
	return s, err
}

func (r *suspensionRepository) Create(ctx context.Context, s holiday.Suspension) (holiday.Suspension, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO work_suspensions (id, date, name, type, scope, branch_id, region)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`

	s.ID = uuid.NewString()
	err := q.QueryRow(ctx, query, s.ID, s.Date, s.Name, s.Type, s.Scope, s.BranchID, s.Region).Scan(&s.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return holiday.Suspension{}, holiday.ErrDuplicateDate
		}
		return holiday.Suspension{}, fmt.Errorf("failed to create suspension: %w", err)
	}

	return s, nil
}

func (r *suspensionRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM work_suspensions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete suspension: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return holiday.ErrSuspensionNotFound
	}

	return nil
}

func (r *suspensionRepository) List(ctx context.Context, branchID *string) ([]holiday.Suspension, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + suspensionColumns + ` FROM work_suspensions`
	var args []interface{}
	if branchID != nil {
		query += ` WHERE scope != 'branch' OR branch_id = $1`
		args = append(args, *branchID)
	}
	query += ` ORDER BY date DESC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list suspensions: %w", err)
	}
	defer rows.Close()

	return collectSuspensions(rows)
}

// ListForDate returns the suspensions in effect for a branch on a date:
// nationwide entries, region entries matching the branch region, and
// entries scoped to the branch itself.
func (r *suspensionRepository) ListForDate(ctx context.Context, branchID string, date time.Time) ([]holiday.Suspension, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + suspensionColumns + `
		FROM work_suspensions s
		WHERE s.date = $2
		  AND (
			s.scope = 'nationwide'
			OR (s.scope = 'region' AND s.region = (SELECT region FROM branches WHERE id = $1))
			OR (s.scope = 'branch' AND s.branch_id = $1)
		  )
		ORDER BY s.scope
	`

	rows, err := q.Query(ctx, query, branchID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list suspensions for date: %w", err)
	}
	defer rows.Close()

	return collectSuspensions(rows)
}

func collectSuspensions(rows pgx.Rows) ([]holiday.Suspension, error) {
	var suspensions []holiday.Suspension
	for rows.Next() {
		s, err := scanSuspension(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan suspension: %w", err)
		}
		suspensions = append(suspensions, s)
	}

	return suspensions, rows.Err()
}
