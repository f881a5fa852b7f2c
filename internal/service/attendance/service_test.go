package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/payrollph/payroll-backend-go/internal/domain/attendance"
	"github.com/payrollph/payroll-backend-go/internal/domain/branch"
	"github.com/payrollph/payroll-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var manila = time.FixedZone("PST-PH", 8*3600)

type fakeBranchRepo struct {
	branch.BranchRepository
	branches map[string]branch.Branch
}

func (f *fakeBranchRepo) GetByID(_ context.Context, id string) (branch.Branch, error) {
	b, ok := f.branches[id]
	if !ok {
		return branch.Branch{}, branch.ErrBranchNotFound
	}
	return b, nil
}

type fakeAttendanceRepo struct {
	attendance.AttendanceRepository
	records    map[string]attendance.Record
	lastFilter attendance.ListFilter
	nextID     int
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: map[string]attendance.Record{}}
}

func (f *fakeAttendanceRepo) Create(_ context.Context, record attendance.Record) (attendance.Record, error) {
	for _, existing := range f.records {
		if existing.EmployeeKey == record.EmployeeKey &&
			existing.Timestamp.Equal(record.Timestamp) &&
			existing.Status == record.Status &&
			existing.BranchID == record.BranchID {
			return attendance.Record{}, attendance.ErrDuplicateRecord
		}
	}
	f.nextID++
	record.ID = "rec-" + string(rune('0'+f.nextID))
	f.records[record.ID] = record
	return record, nil
}

func (f *fakeAttendanceRepo) GetByID(_ context.Context, id string) (attendance.Record, error) {
	r, ok := f.records[id]
	if !ok {
		return attendance.Record{}, attendance.ErrRecordNotFound
	}
	return r, nil
}

func (f *fakeAttendanceRepo) List(_ context.Context, filter attendance.ListFilter) ([]attendance.Record, int64, error) {
	f.lastFilter = filter
	var result []attendance.Record
	for _, r := range f.records {
		result = append(result, r)
	}
	return result, int64(len(result)), nil
}

func newTestService() (*Service, *fakeAttendanceRepo) {
	repo := newFakeAttendanceRepo()
	branchRepo := &fakeBranchRepo{branches: map[string]branch.Branch{
		"branch-1": {ID: "branch-1", Name: "Main Office"},
	}}
	return NewService(repo, branchRepo, manila), repo
}

func TestCreate_NormalizesTimezone(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService()

	// 00:00 UTC is 08:00 in the reconciliation timezone.
	created, err := svc.Create(context.Background(), attendance.CreateAttendanceRequest{
		EmployeeKey: "jdoe",
		BranchID:    "branch-1",
		Timestamp:   "2025-03-03T00:00:00Z",
		Status:      "CHECK_IN",
	})

	require.NoError(t, err)
	assert.Equal(t, "08:00", created.Timestamp.Format("15:04"))
	assert.Equal(t, "CHECK_IN", created.Status)
}

func TestCreate_RejectsUnknownBranch(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), attendance.CreateAttendanceRequest{
		EmployeeKey: "jdoe",
		BranchID:    "branch-404",
		Timestamp:   "2025-03-03T00:00:00Z",
		Status:      "CHECK_IN",
	})

	assert.ErrorIs(t, err, branch.ErrBranchNotFound)
}

func TestCreate_ValidationFailure(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), attendance.CreateAttendanceRequest{
		EmployeeKey: "",
		BranchID:    "branch-1",
		Timestamp:   "yesterday",
		Status:      "IN",
	})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	details := verrs.ToMap()
	assert.Contains(t, details, "employee_key")
	assert.Contains(t, details, "timestamp")
	assert.Contains(t, details, "status")
}

func TestCreate_DuplicateRejected(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService()

	req := attendance.CreateAttendanceRequest{
		EmployeeKey: "jdoe",
		BranchID:    "branch-1",
		Timestamp:   "2025-03-03T00:00:00Z",
		Status:      "CHECK_IN",
	}

	_, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, attendance.ErrDuplicateRecord)
}

func TestList_AppliesPagingDefaults(t *testing.T) {
	t.Parallel()
	svc, repo := newTestService()

	_, _, err := svc.List(context.Background(), attendance.ListFilter{Page: 0, Limit: 0})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.lastFilter.Page)
	assert.Equal(t, 50, repo.lastFilter.Limit)

	_, _, err = svc.List(context.Background(), attendance.ListFilter{Page: 2, Limit: 500})
	require.NoError(t, err)
	assert.Equal(t, 2, repo.lastFilter.Page)
	assert.Equal(t, 50, repo.lastFilter.Limit)
}
