package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/payrollph/payroll-backend-go/internal/domain/employee"
	"github.com/payrollph/payroll-backend-go/internal/pkg/database"
)

type profileRepository struct {
	db *database.DB
}

func NewProfileRepository(db *database.DB) employee.ProfileRepository {
	return &profileRepository{db: db}
}

const profileColumns = `id, username, full_name, employee_no, branch_id, employment_type,
	daily_rate, monthly_salary, has_premium, is_approved, created_at, updated_at`

func scanProfile(row pgx.Row) (employee.Profile, error) {
	var p employee.Profile
	err := row.Scan(
		&p.ID, &p.Username, &p.FullName, &p.EmployeeNo, &p.BranchID, &p.EmploymentType,
		&p.DailyRate, &p.MonthlySalary, &p.HasPremium, &p.IsApproved, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func (r *profileRepository) Create(ctx context.Context, p employee.Profile) (employee.Profile, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO user_profiles (id, username, full_name, branch_id, employment_type,
			daily_rate, monthly_salary, has_premium, is_approved)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, false)
		RETURNING employee_no, is_approved, created_at, updated_at
	`

	p.ID = uuid.NewString()
	err := q.QueryRow(ctx, query,
		p.ID, p.Username, p.FullName, p.BranchID, p.EmploymentType,
		p.DailyRate, p.MonthlySalary, p.HasPremium,
	).Scan(&p.EmployeeNo, &p.IsApproved, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return employee.Profile{}, employee.ErrUsernameExists
		}
		return employee.Profile{}, fmt.Errorf("failed to create profile: %w", err)
	}

	return p, nil
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (employee.Profile, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + profileColumns + ` FROM user_profiles WHERE id = $1`

	p, err := scanProfile(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Profile{}, employee.ErrProfileNotFound
		}
		return employee.Profile{}, fmt.Errorf("failed to get profile: %w", err)
	}

	return p, nil
}

func (r *profileRepository) List(ctx context.Context, branchID *string) ([]employee.Profile, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + profileColumns + ` FROM user_profiles`
	var args []interface{}
	if branchID != nil {
		query += ` WHERE branch_id = $1`
		args = append(args, *branchID)
	}
	query += ` ORDER BY full_name`

	return r.queryProfiles(ctx, q, query, args...)
}

func (r *profileRepository) ListApprovedByBranch(ctx context.Context, branchID string, employmentType *employee.EmploymentType) ([]employee.Profile, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + profileColumns + ` FROM user_profiles WHERE branch_id = $1 AND is_approved = true`
	args := []interface{}{branchID}
	if employmentType != nil {
		query += ` AND employment_type = $2`
		args = append(args, *employmentType)
	}
	query += ` ORDER BY full_name`

	return r.queryProfiles(ctx, q, query, args...)
}

func (r *profileRepository) queryProfiles(ctx context.Context, q database.Querier, query string, args ...interface{}) ([]employee.Profile, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []employee.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, p)
	}

	return profiles, rows.Err()
}

func (r *profileRepository) Update(ctx context.Context, p employee.Profile) (employee.Profile, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE user_profiles
		SET full_name = $2, branch_id = $3, employment_type = $4,
			daily_rate = $5, monthly_salary = $6, has_premium = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		p.ID, p.FullName, p.BranchID, p.EmploymentType,
		p.DailyRate, p.MonthlySalary, p.HasPremium,
	).Scan(&p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Profile{}, employee.ErrProfileNotFound
		}
		return employee.Profile{}, fmt.Errorf("failed to update profile: %w", err)
	}

	return p, nil
}

func (r *profileRepository) SetApproved(ctx context.Context, id string, approved bool) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE user_profiles SET is_approved = $2, updated_at = NOW() WHERE id = $1`, id, approved)
	if err != nil {
		return fmt.Errorf("failed to set approval: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrProfileNotFound
	}

	return nil
}

// ========== CONTRIBUTIONS ==========

type contributionRepository struct {
	db *database.DB
}

func NewContributionRepository(db *database.DB) employee.ContributionRepository {
	return &contributionRepository{db: db}
}

const contributionColumns = `id, profile_id, sss, pagibig, philhealth_mode, philhealth_value, created_at, updated_at`

func scanContribution(row pgx.Row) (employee.Contribution, error) {
	var c employee.Contribution
	err := row.Scan(
		&c.ID, &c.ProfileID, &c.SSS, &c.PagIbig,
		&c.PhilHealthMode, &c.PhilHealthValue, &c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}

// EnsureDefault is race-safe under concurrent first reads: the insert is
// ON CONFLICT DO NOTHING against the profile_id uniqueness constraint,
// then the current row is read back.
func (r *contributionRepository) EnsureDefault(ctx context.Context, profileID string) (employee.Contribution, error) {
	q := GetQuerier(ctx, r.db)

	def := employee.DefaultContribution(profileID)
	insert := `
		INSERT INTO employee_contributions (id, profile_id, sss, pagibig, philhealth_mode, philhealth_value)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (profile_id) DO NOTHING
	`
	if _, err := q.Exec(ctx, insert,
		uuid.NewString(), profileID, def.SSS, def.PagIbig, def.PhilHealthMode, def.PhilHealthValue,
	); err != nil {
		return employee.Contribution{}, fmt.Errorf("failed to ensure contribution: %w", err)
	}

	return r.GetByProfileID(ctx, profileID)
}

func (r *contributionRepository) GetByProfileID(ctx context.Context, profileID string) (employee.Contribution, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + contributionColumns + ` FROM employee_contributions WHERE profile_id = $1`

	c, err := scanContribution(q.QueryRow(ctx, query, profileID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Contribution{}, employee.ErrContributionNotFound
		}
		return employee.Contribution{}, fmt.Errorf("failed to get contribution: %w", err)
	}

	return c, nil
}

func (r *contributionRepository) Update(ctx context.Context, c employee.Contribution) (employee.Contribution, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employee_contributions
		SET sss = $2, pagibig = $3, philhealth_mode = $4, philhealth_value = $5, updated_at = NOW()
		WHERE profile_id = $1
		RETURNING id, updated_at
	`

	err := q.QueryRow(ctx, query,
		c.ProfileID, c.SSS, c.PagIbig, c.PhilHealthMode, c.PhilHealthValue,
	).Scan(&c.ID, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Contribution{}, employee.ErrContributionNotFound
		}
		return employee.Contribution{}, fmt.Errorf("failed to update contribution: %w", err)
	}

	return c, nil
}
