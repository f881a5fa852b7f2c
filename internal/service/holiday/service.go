package holiday

import (
	"context"
	"fmt"
	"time"

	"github.com/payrollph/payroll-backend-go/internal/domain/holiday"
)

// Service resolves whether a calendar date is non-working for a branch.
// The result is a pass-through hook for future holiday-pay rules; the
// calculator does not currently alter pay based on it.
type Service struct {
	suspensionRepo holiday.SuspensionRepository
}

func NewService(suspensionRepo holiday.SuspensionRepository) *Service {
	return &Service{suspensionRepo: suspensionRepo}
}

// IsNonWorkingDay returns the matching record for the date, or nil when
// the date is a working day. Scope precedence: nationwide, then region,
// then branch. Overlapping matches are not an error; the first by
// precedence wins.
func (s *Service) IsNonWorkingDay(ctx context.Context, branchID string, date time.Time) (*holiday.Suspension, error) {
	matches, err := s.suspensionRepo.ListForDate(ctx, branchID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to look up holiday/suspension for %s: %w", date.Format("2006-01-02"), err)
	}
	if len(matches) == 0 {
		return nil, nil
	}

	for _, scope := range []holiday.Scope{holiday.ScopeNationwide, holiday.ScopeRegion, holiday.ScopeBranch} {
		for i := range matches {
			if matches[i].Scope == scope {
				return &matches[i], nil
			}
		}
	}
	return &matches[0], nil
}
