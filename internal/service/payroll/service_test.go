package payroll

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/payrollph/payroll-backend-go/internal/domain/attendance"
	"github.com/payrollph/payroll-backend-go/internal/domain/branch"
	"github.com/payrollph/payroll-backend-go/internal/domain/employee"
	"github.com/payrollph/payroll-backend-go/internal/domain/holiday"
	"github.com/payrollph/payroll-backend-go/internal/domain/payroll"
	holidayService "github.com/payrollph/payroll-backend-go/internal/service/holiday"
	"github.com/payrollph/payroll-backend-go/internal/service/reconcile"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var manila = time.FixedZone("PST-PH", 8*3600)

// ========== FAKES ==========

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

type fakeProfileRepo struct {
	employee.ProfileRepository
	profiles []employee.Profile
}

func (f *fakeProfileRepo) GetByID(_ context.Context, id string) (employee.Profile, error) {
	for _, p := range f.profiles {
		if p.ID == id {
			return p, nil
		}
	}
	return employee.Profile{}, employee.ErrProfileNotFound
}

func (f *fakeProfileRepo) ListApprovedByBranch(_ context.Context, branchID string, employmentType *employee.EmploymentType) ([]employee.Profile, error) {
	var result []employee.Profile
	for _, p := range f.profiles {
		if p.BranchID != branchID || !p.IsApproved {
			continue
		}
		if employmentType != nil && p.EmploymentType != *employmentType {
			continue
		}
		result = append(result, p)
	}
	return result, nil
}

type fakeContribRepo struct {
	employee.ContributionRepository
	overrides map[string]employee.Contribution
}

func (f *fakeContribRepo) EnsureDefault(_ context.Context, profileID string) (employee.Contribution, error) {
	if c, ok := f.overrides[profileID]; ok {
		return c, nil
	}
	return employee.DefaultContribution(profileID), nil
}

type fakeAttendanceRepo struct {
	attendance.AttendanceRepository
	byKey map[string][]attendance.Record
}

func (f *fakeAttendanceRepo) ListByEmployeePeriod(_ context.Context, _, employeeKey string, _, _ time.Time) ([]attendance.Record, error) {
	return f.byKey[employeeKey], nil
}

type fakeSuspensionRepo struct {
	holiday.SuspensionRepository
	forDate []holiday.Suspension
}

func (f *fakeSuspensionRepo) ListForDate(_ context.Context, _ string, _ time.Time) ([]holiday.Suspension, error) {
	return f.forDate, nil
}

type fakePayrollRepo struct {
	rules   map[string]payroll.Rule
	periods map[string]payroll.Period
	batches map[string]payroll.Batch
	items   map[string][]payroll.Item
	nextID  int
}

func newFakePayrollRepo() *fakePayrollRepo {
	return &fakePayrollRepo{
		rules:   map[string]payroll.Rule{},
		periods: map[string]payroll.Period{},
		batches: map[string]payroll.Batch{},
		items:   map[string][]payroll.Item{},
	}
}

func (f *fakePayrollRepo) id() string {
	f.nextID++
	return "id-" + strconv.Itoa(f.nextID)
}

func (f *fakePayrollRepo) EnsureRule(_ context.Context, branchID string) (payroll.Rule, error) {
	if r, ok := f.rules[branchID]; ok {
		return r, nil
	}
	r := payroll.DefaultRule(branchID)
	r.ID = f.id()
	f.rules[branchID] = r
	return r, nil
}

func (f *fakePayrollRepo) GetRuleByBranch(_ context.Context, branchID string) (payroll.Rule, error) {
	r, ok := f.rules[branchID]
	if !ok {
		return payroll.Rule{}, payroll.ErrRuleNotFound
	}
	return r, nil
}

func (f *fakePayrollRepo) UpdateRule(_ context.Context, rule payroll.Rule) (payroll.Rule, error) {
	f.rules[rule.BranchID] = rule
	return rule, nil
}

func (f *fakePayrollRepo) CreatePeriod(_ context.Context, period payroll.Period) (payroll.Period, error) {
	period.ID = f.id()
	f.periods[period.ID] = period
	return period, nil
}

func (f *fakePayrollRepo) GetPeriodByID(_ context.Context, id string) (payroll.Period, error) {
	p, ok := f.periods[id]
	if !ok {
		return payroll.Period{}, payroll.ErrPeriodNotFound
	}
	return p, nil
}

func (f *fakePayrollRepo) ListPeriods(_ context.Context) ([]payroll.Period, error) {
	var result []payroll.Period
	for _, p := range f.periods {
		result = append(result, p)
	}
	return result, nil
}

func (f *fakePayrollRepo) EnsureBatch(_ context.Context, batch payroll.Batch) (payroll.Batch, error) {
	for _, b := range f.batches {
		if b.BranchID == batch.BranchID && b.PeriodID == batch.PeriodID {
			return b, nil
		}
	}
	batch.ID = f.id()
	f.batches[batch.ID] = batch
	return batch, nil
}

func (f *fakePayrollRepo) UpdateBatch(_ context.Context, batch payroll.Batch) (payroll.Batch, error) {
	if _, ok := f.batches[batch.ID]; !ok {
		return payroll.Batch{}, payroll.ErrBatchNotFound
	}
	f.batches[batch.ID] = batch
	return batch, nil
}

func (f *fakePayrollRepo) GetBatchByID(_ context.Context, id string) (payroll.Batch, error) {
	b, ok := f.batches[id]
	if !ok {
		return payroll.Batch{}, payroll.ErrBatchNotFound
	}
	return b, nil
}

func (f *fakePayrollRepo) ListBatches(_ context.Context, branchID *string) ([]payroll.Batch, error) {
	var result []payroll.Batch
	for _, b := range f.batches {
		if branchID != nil && b.BranchID != *branchID {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

func (f *fakePayrollRepo) DeleteItemsByBatch(_ context.Context, batchID string) error {
	delete(f.items, batchID)
	return nil
}

func (f *fakePayrollRepo) InsertItem(_ context.Context, item payroll.Item) (payroll.Item, error) {
	item.ID = f.id()
	f.items[item.BatchID] = append(f.items[item.BatchID], item)
	return item, nil
}

func (f *fakePayrollRepo) ListItemsByBatch(_ context.Context, batchID string) ([]payroll.Item, error) {
	return f.items[batchID], nil
}

func (f *fakePayrollRepo) GetItemByID(_ context.Context, id string) (payroll.Item, error) {
	for _, items := range f.items {
		for _, item := range items {
			if item.ID == id {
				return item, nil
			}
		}
	}
	return payroll.Item{}, payroll.ErrItemNotFound
}

func passthroughTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// ========== FIXTURE ==========

type fixture struct {
	svc         *PayrollServiceImpl
	payrollRepo *fakePayrollRepo
	profileRepo *fakeProfileRepo
	periodID    string
}

func day(d, hour, min int) time.Time {
	return time.Date(2025, time.March, d, hour, min, 0, 0, manila)
}

func present(key string, d int) []attendance.Record {
	return []attendance.Record{
		{EmployeeKey: key, BranchID: "branch-1", Timestamp: day(d, 8, 0), Status: attendance.StatusCheckIn},
		{EmployeeKey: key, BranchID: "branch-1", Timestamp: day(d, 17, 0), Status: attendance.StatusCheckOut},
	}
}

func newFixture(t *testing.T, profiles []employee.Profile, byKey map[string][]attendance.Record) *fixture {
	t.Helper()

	payrollRepo := newFakePayrollRepo()
	period, err := payrollRepo.CreatePeriod(context.Background(), payroll.Period{
		Name:      "March 1-5",
		StartDate: day(1, 0, 0),
		EndDate:   day(5, 0, 0),
		PayMode:   payroll.PayModeFirstHalf,
	})
	require.NoError(t, err)

	profileRepo := &fakeProfileRepo{profiles: profiles}
	branchRepo := &fakeBranchRepo{branches: map[string]branch.Branch{
		"branch-1": {ID: "branch-1", Name: "Main Office"},
	}}

	reconciler := reconcile.NewService(&fakeAttendanceRepo{byKey: byKey}, manila)
	holidaySvc := holidayService.NewService(&fakeSuspensionRepo{})

	svc := NewPayrollService(
		passthroughTx,
		payrollRepo,
		profileRepo,
		&fakeContribRepo{},
		branchRepo,
		reconciler,
		holidaySvc,
	)

	return &fixture{svc: svc, payrollRepo: payrollRepo, profileRepo: profileRepo, periodID: period.ID}
}

func approvedJO(id, username string, employeeNo int64) employee.Profile {
	return employee.Profile{
		ID:             id,
		Username:       username,
		FullName:       "Juan dela Cruz",
		EmployeeNo:     employeeNo,
		BranchID:       "branch-1",
		EmploymentType: employee.TypeJO,
		DailyRate:      decimal.NewFromInt(500),
		IsApproved:     true,
	}
}

// ========== TESTS ==========

func TestProcessBatch_MaterializesItems(t *testing.T) {
	t.Parallel()
	fx := newFixture(t,
		[]employee.Profile{approvedJO("p1", "jdoe", 1042)},
		map[string][]attendance.Record{"jdoe": present("jdoe", 3)},
	)

	batch, items, err := fx.svc.ProcessBatch(context.Background(), payroll.ProcessBatchRequest{
		BranchID: "branch-1",
		PeriodID: fx.periodID,
	}, "admin-1")

	require.NoError(t, err)
	require.Len(t, items, 1)

	item := items[0]
	assert.Equal(t, "p1", item.ProfileID)
	assert.Equal(t, 1, item.DaysPresent)
	assert.Equal(t, 4, item.DaysAbsent)
	assert.Equal(t, "500.00", item.BasePay.StringFixed(2))
	assert.Equal(t, "jdoe", item.Meta.MatchedKey)
	assert.Equal(t, "2025-03-01", item.Meta.PeriodStart)
	assert.Equal(t, "2025-03-05", item.Meta.PeriodEnd)

	assert.Equal(t, string(payroll.BatchStatusCompleted), batch.Status)
	assert.Equal(t, 1, batch.ItemCount)
	require.NotNil(t, batch.ProcessedBy)
	assert.Equal(t, "admin-1", *batch.ProcessedBy)
	assert.NotNil(t, batch.ProcessedAt)
	assert.True(t, batch.TotalsNet.Equal(item.NetPay))
	assert.True(t, batch.TotalsDeductions.Equal(item.DeductionsTotal))
}

func TestProcessBatch_ConvergesOnConcurrentlyCreatedBatch(t *testing.T) {
	t.Parallel()
	fx := newFixture(t,
		[]employee.Profile{approvedJO("p1", "jdoe", 1042)},
		map[string][]attendance.Record{"jdoe": present("jdoe", 3)},
	)

	// A concurrent run already inserted the (branch, period) row.
	fx.payrollRepo.batches["batch-race"] = payroll.Batch{
		ID:               "batch-race",
		BranchID:         "branch-1",
		PeriodID:         fx.periodID,
		Status:           payroll.BatchStatusDraft,
		TotalsNet:        decimal.Zero,
		TotalsDeductions: decimal.Zero,
	}

	batch, items, err := fx.svc.ProcessBatch(context.Background(), payroll.ProcessBatchRequest{
		BranchID: "branch-1",
		PeriodID: fx.periodID,
	}, "admin-1")

	require.NoError(t, err)
	assert.Equal(t, "batch-race", batch.ID)
	assert.Equal(t, string(payroll.BatchStatusCompleted), batch.Status)
	require.Len(t, items, 1)
	require.Len(t, fx.payrollRepo.batches, 1)
}

func TestProcessBatch_RerunIsIdempotent(t *testing.T) {
	t.Parallel()
	fx := newFixture(t,
		[]employee.Profile{approvedJO("p1", "jdoe", 1042)},
		map[string][]attendance.Record{"jdoe": present("jdoe", 3)},
	)
	req := payroll.ProcessBatchRequest{BranchID: "branch-1", PeriodID: fx.periodID}

	first, firstItems, err := fx.svc.ProcessBatch(context.Background(), req, "admin-1")
	require.NoError(t, err)
	second, secondItems, err := fx.svc.ProcessBatch(context.Background(), req, "admin-1")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, secondItems, len(firstItems))
	assert.True(t, first.TotalsNet.Equal(second.TotalsNet))
	assert.True(t, first.TotalsDeductions.Equal(second.TotalsDeductions))

	// The stored set was replaced, not appended to.
	stored, err := fx.payrollRepo.ListItemsByBatch(context.Background(), second.ID)
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestProcessBatch_ReprocessPicksUpProfileChanges(t *testing.T) {
	t.Parallel()
	fx := newFixture(t,
		[]employee.Profile{approvedJO("p1", "jdoe", 1042)},
		map[string][]attendance.Record{"jdoe": present("jdoe", 3)},
	)
	req := payroll.ProcessBatchRequest{BranchID: "branch-1", PeriodID: fx.periodID}

	_, before, err := fx.svc.ProcessBatch(context.Background(), req, "admin-1")
	require.NoError(t, err)
	assert.True(t, before[0].PremiumPay.IsZero())

	fx.profileRepo.profiles[0].HasPremium = true

	batch, after, err := fx.svc.ProcessBatch(context.Background(), req, "admin-1")
	require.NoError(t, err)
	require.Len(t, after, 1)
	// 20% of base 500.
	assert.Equal(t, "100.00", after[0].PremiumPay.StringFixed(2))
	assert.True(t, batch.TotalsNet.Equal(after[0].NetPay))
}

func TestProcessBatch_UnmatchedKeyYieldsAbsentWithIssue(t *testing.T) {
	t.Parallel()
	fx := newFixture(t,
		[]employee.Profile{approvedJO("p1", "jdoe", 1042)},
		map[string][]attendance.Record{},
	)

	_, items, err := fx.svc.ProcessBatch(context.Background(), payroll.ProcessBatchRequest{
		BranchID: "branch-1",
		PeriodID: fx.periodID,
	}, "admin-1")

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 0, items[0].DaysPresent)
	assert.Equal(t, 5, items[0].DaysAbsent)
	assert.Contains(t, items[0].Issues, "No attendance records matched")
}

func TestProcessBatch_EmployeeNoFallbackRecordedInMeta(t *testing.T) {
	t.Parallel()
	fx := newFixture(t,
		[]employee.Profile{approvedJO("p1", "jdoe", 1042)},
		map[string][]attendance.Record{"1042": present("1042", 3)},
	)

	_, items, err := fx.svc.ProcessBatch(context.Background(), payroll.ProcessBatchRequest{
		BranchID: "branch-1",
		PeriodID: fx.periodID,
	}, "admin-1")

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "1042", items[0].Meta.MatchedKey)
	assert.Equal(t, 1, items[0].DaysPresent)
}

func TestProcessBatch_EmploymentTypeFilter(t *testing.T) {
	t.Parallel()
	cos := employee.Profile{
		ID:             "p2",
		Username:       "msantos",
		FullName:       "Maria Santos",
		EmployeeNo:     1043,
		BranchID:       "branch-1",
		EmploymentType: employee.TypeCOS,
		MonthlySalary:  decimal.NewFromInt(30000),
		IsApproved:     true,
	}
	fx := newFixture(t,
		[]employee.Profile{approvedJO("p1", "jdoe", 1042), cos},
		map[string][]attendance.Record{},
	)

	typeJO := "JO"
	_, items, err := fx.svc.ProcessBatch(context.Background(), payroll.ProcessBatchRequest{
		BranchID:       "branch-1",
		PeriodID:       fx.periodID,
		EmploymentType: &typeJO,
	}, "admin-1")

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "p1", items[0].ProfileID)
}

func TestProcessBatch_EmptyRosterRejected(t *testing.T) {
	t.Parallel()
	fx := newFixture(t, nil, map[string][]attendance.Record{})

	_, _, err := fx.svc.ProcessBatch(context.Background(), payroll.ProcessBatchRequest{
		BranchID: "branch-1",
		PeriodID: fx.periodID,
	}, "admin-1")

	assert.ErrorIs(t, err, payroll.ErrNoApprovedProfile)
}

func TestProcessBatch_UnknownPeriodRejected(t *testing.T) {
	t.Parallel()
	fx := newFixture(t, []employee.Profile{approvedJO("p1", "jdoe", 1042)}, nil)

	_, _, err := fx.svc.ProcessBatch(context.Background(), payroll.ProcessBatchRequest{
		BranchID: "branch-1",
		PeriodID: "missing",
	}, "admin-1")

	assert.ErrorIs(t, err, payroll.ErrPeriodNotFound)
}

func TestPreview_MatchesMaterializedFigures(t *testing.T) {
	t.Parallel()
	fx := newFixture(t,
		[]employee.Profile{approvedJO("p1", "jdoe", 1042)},
		map[string][]attendance.Record{"jdoe": present("jdoe", 3)},
	)

	previews, err := fx.svc.Preview(context.Background(), "branch-1", fx.periodID, nil)
	require.NoError(t, err)
	require.Len(t, previews, 1)

	_, items, err := fx.svc.ProcessBatch(context.Background(), payroll.ProcessBatchRequest{
		BranchID: "branch-1",
		PeriodID: fx.periodID,
	}, "admin-1")
	require.NoError(t, err)
	require.Len(t, items, 1)

	assert.Equal(t, items[0].BasePay.StringFixed(2), previews[0].Base)
	assert.Equal(t, items[0].NetPay.StringFixed(2), previews[0].Net)
	assert.Equal(t, items[0].DeductionsTotal.StringFixed(2), previews[0].Deductions)
	assert.Equal(t, items[0].DaysAbsent, previews[0].Absences)
}

func TestDailyTimeRecord_ProjectsDays(t *testing.T) {
	t.Parallel()
	fx := newFixture(t,
		[]employee.Profile{approvedJO("p1", "jdoe", 1042)},
		map[string][]attendance.Record{"jdoe": present("jdoe", 3)},
	)

	dtr, err := fx.svc.DailyTimeRecord(context.Background(), "p1", fx.periodID)
	require.NoError(t, err)

	assert.Equal(t, "jdoe", dtr.MatchedKey)
	assert.Equal(t, "2025-03-01", dtr.PeriodStart)
	assert.Equal(t, "2025-03-05", dtr.PeriodEnd)
	require.Len(t, dtr.Days, 5)

	assert.Equal(t, "Absent", dtr.Days[0].Status)
	presentDay := dtr.Days[2]
	assert.Equal(t, "Present", presentDay.Status)
	require.NotNil(t, presentDay.TimeIn)
	assert.Equal(t, "08:00", *presentDay.TimeIn)
	require.NotNil(t, presentDay.TimeOut)
	assert.Equal(t, "17:00", *presentDay.TimeOut)
	assert.Equal(t, "9.00", presentDay.TotalHours)
}
