package employee

import "context"

type ProfileRepository interface {
	Create(ctx context.Context, p Profile) (Profile, error)
	GetByID(ctx context.Context, id string) (Profile, error)
	List(ctx context.Context, branchID *string) ([]Profile, error)

	// ListApprovedByBranch returns approved profiles in a branch, optionally
	// restricted to one employment type.
	ListApprovedByBranch(ctx context.Context, branchID string, employmentType *EmploymentType) ([]Profile, error)

	Update(ctx context.Context, p Profile) (Profile, error)
	SetApproved(ctx context.Context, id string, approved bool) error
}

type ContributionRepository interface {
	// EnsureDefault creates the default contribution row for a profile if
	// none exists, then returns the current row. Implementations must be
	// race-safe (upsert, not check-then-create).
	EnsureDefault(ctx context.Context, profileID string) (Contribution, error)

	GetByProfileID(ctx context.Context, profileID string) (Contribution, error)
	Update(ctx context.Context, c Contribution) (Contribution, error)
}
