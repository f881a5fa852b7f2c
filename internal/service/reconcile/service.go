package reconcile

import (
	"context"
	"fmt"
	"time"

	"github.com/payrollph/payroll-backend-go/internal/domain/attendance"
	"github.com/payrollph/payroll-backend-go/internal/domain/payroll"
)

// Keys are the candidate attendance identifiers for one profile, in
// priority order: the login username first, then the numeric employee
// number as fallback. Biometric exports are inconsistent about which one
// they carry.
type Keys struct {
	Username   string
	EmployeeNo string
}

type Service struct {
	attendanceRepo attendance.AttendanceRepository
	loc            *time.Location
}

func NewService(attendanceRepo attendance.AttendanceRepository, loc *time.Location) *Service {
	return &Service{attendanceRepo: attendanceRepo, loc: loc}
}

// Location returns the timezone all reconciliation happens in.
func (s *Service) Location() *time.Location {
	return s.loc
}

// Resolution reports which candidate key was used and how many records it
// matched. Records == 0 means neither key matched and the summary is
// all-absent under the username key.
type Resolution struct {
	MatchedKey string
	Records    int
}

// Reconcile loads the employee's events for the period and summarizes
// them.
//
// When the username matches any rows the fallback is never consulted, so
// two keys matching disjoint sets resolves deterministically to the
// username set.
func (s *Service) Reconcile(ctx context.Context, branchID string, keys Keys, start, end time.Time, rule payroll.Rule) (Summary, Resolution, error) {
	qStart := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, s.loc)
	qEnd := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, s.loc).AddDate(0, 0, 1)

	res := Resolution{MatchedKey: keys.Username}
	records, err := s.attendanceRepo.ListByEmployeePeriod(ctx, branchID, keys.Username, qStart, qEnd)
	if err != nil {
		return Summary{}, Resolution{}, fmt.Errorf("failed to load attendance for %q: %w", keys.Username, err)
	}

	if len(records) == 0 && keys.EmployeeNo != "" {
		fallback, err := s.attendanceRepo.ListByEmployeePeriod(ctx, branchID, keys.EmployeeNo, qStart, qEnd)
		if err != nil {
			return Summary{}, Resolution{}, fmt.Errorf("failed to load attendance for %q: %w", keys.EmployeeNo, err)
		}
		if len(fallback) > 0 {
			records = fallback
			res.MatchedKey = keys.EmployeeNo
		}
	}

	res.Records = len(records)
	return BuildSummary(records, start, end, rule, s.loc), res, nil
}
