package master

import (
	"context"
	"testing"
	"time"

	"github.com/payrollph/payroll-backend-go/internal/domain/branch"
	"github.com/payrollph/payroll-backend-go/internal/domain/employee"
	"github.com/payrollph/payroll-backend-go/internal/domain/holiday"
	"github.com/payrollph/payroll-backend-go/internal/domain/payroll"
	"github.com/payrollph/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

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

type fakeSuspensionRepo struct {
	holiday.SuspensionRepository
	created []holiday.Suspension
}

func (f *fakeSuspensionRepo) Create(_ context.Context, s holiday.Suspension) (holiday.Suspension, error) {
	s.ID = "susp-1"
	f.created = append(f.created, s)
	return s, nil
}

type fakeRuleRepo struct {
	payroll.PayrollRepository
	rules map[string]payroll.Rule
}

func (f *fakeRuleRepo) EnsureRule(_ context.Context, branchID string) (payroll.Rule, error) {
	if r, ok := f.rules[branchID]; ok {
		return r, nil
	}
	r := payroll.DefaultRule(branchID)
	r.ID = "rule-" + branchID
	f.rules[branchID] = r
	return r, nil
}

func (f *fakeRuleRepo) UpdateRule(_ context.Context, rule payroll.Rule) (payroll.Rule, error) {
	f.rules[rule.BranchID] = rule
	return rule, nil
}

type fakeContribRepo struct {
	employee.ContributionRepository
	contribs map[string]employee.Contribution
}

func (f *fakeContribRepo) EnsureDefault(_ context.Context, profileID string) (employee.Contribution, error) {
	if c, ok := f.contribs[profileID]; ok {
		return c, nil
	}
	c := employee.DefaultContribution(profileID)
	f.contribs[profileID] = c
	return c, nil
}

func (f *fakeContribRepo) Update(_ context.Context, c employee.Contribution) (employee.Contribution, error) {
	f.contribs[c.ProfileID] = c
	return c, nil
}

type fakeProfileRepo struct {
	employee.ProfileRepository
	profiles map[string]employee.Profile
}

func (f *fakeProfileRepo) GetByID(_ context.Context, id string) (employee.Profile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return employee.Profile{}, employee.ErrProfileNotFound
	}
	return p, nil
}

func (f *fakeProfileRepo) SetApproved(_ context.Context, id string, approved bool) error {
	p, ok := f.profiles[id]
	if !ok {
		return employee.ErrProfileNotFound
	}
	p.IsApproved = approved
	f.profiles[id] = p
	return nil
}

func newTestService() (*Service, *fakeRuleRepo, *fakeSuspensionRepo, *fakeProfileRepo, *fakeContribRepo) {
	branchRepo := &fakeBranchRepo{branches: map[string]branch.Branch{
		"branch-1": {ID: "branch-1", Name: "Main Office", Region: "NCR"},
	}}
	suspensionRepo := &fakeSuspensionRepo{}
	ruleRepo := &fakeRuleRepo{rules: map[string]payroll.Rule{}}
	profileRepo := &fakeProfileRepo{profiles: map[string]employee.Profile{
		"p1": {ID: "p1", Username: "jdoe", BranchID: "branch-1", EmploymentType: employee.TypeJO},
	}}
	contribRepo := &fakeContribRepo{contribs: map[string]employee.Contribution{}}

	svc := NewMasterService(branchRepo, suspensionRepo, ruleRepo, profileRepo, contribRepo)
	return svc, ruleRepo, suspensionRepo, profileRepo, contribRepo
}

// ========== TESTS ==========

func TestGetRule_LazyDefaults(t *testing.T) {
	t.Parallel()
	svc, _, _, _, _ := newTestService()

	rule, err := svc.GetRule(context.Background(), "branch-1")

	require.NoError(t, err)
	assert.Equal(t, "5", rule.TaxRatePercent.String())
	assert.Equal(t, "20", rule.PremiumRatePercent.String())
	assert.Equal(t, "1.5", rule.LatePenaltyPerMinute.String())
	assert.Equal(t, "2", rule.UndertimePenaltyPerMinute.String())
	assert.Equal(t, 15, rule.GraceMinutes)
	assert.Equal(t, "08:00", rule.WorkStart)
	assert.Equal(t, "17:00", rule.WorkEnd)
}

func TestUpdateRule_PatchesOnlyProvidedFields(t *testing.T) {
	t.Parallel()
	svc, ruleRepo, _, _, _ := newTestService()

	grace := 10
	tax := decimal.NewFromInt(8)
	updated, err := svc.UpdateRule(context.Background(), payroll.UpdateRuleRequest{
		BranchID:       "branch-1",
		GraceMinutes:   &grace,
		TaxRatePercent: &tax,
	})

	require.NoError(t, err)
	assert.Equal(t, 10, updated.GraceMinutes)
	assert.Equal(t, "8", updated.TaxRatePercent.String())
	// Untouched fields keep their defaults.
	assert.Equal(t, "20", updated.PremiumRatePercent.String())
	assert.Equal(t, "08:00", updated.WorkStart)

	stored := ruleRepo.rules["branch-1"]
	assert.Equal(t, 10, stored.GraceMinutes)
}

func TestUpdateRule_RejectsInvalidClock(t *testing.T) {
	t.Parallel()
	svc, _, _, _, _ := newTestService()

	bad := "25:00"
	_, err := svc.UpdateRule(context.Background(), payroll.UpdateRuleRequest{
		BranchID:  "branch-1",
		WorkStart: &bad,
	})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "work_start")
}

func TestCreateSuspension_BranchScopeRequiresKnownBranch(t *testing.T) {
	t.Parallel()
	svc, _, _, _, _ := newTestService()

	missing := "branch-404"
	_, err := svc.CreateSuspension(context.Background(), holiday.CreateSuspensionRequest{
		Date:     "2025-06-12",
		Name:     "Branch closure",
		Type:     "suspension",
		Scope:    "branch",
		BranchID: &missing,
	})

	assert.ErrorIs(t, err, branch.ErrBranchNotFound)
}

func TestCreateSuspension_Nationwide(t *testing.T) {
	t.Parallel()
	svc, _, suspensionRepo, _, _ := newTestService()

	created, err := svc.CreateSuspension(context.Background(), holiday.CreateSuspensionRequest{
		Date:  "2025-06-12",
		Name:  "Independence Day",
		Type:  "holiday",
		Scope: "nationwide",
	})

	require.NoError(t, err)
	assert.Equal(t, "Independence Day", created.Name)
	require.Len(t, suspensionRepo.created, 1)
	assert.Equal(t, time.Date(2025, time.June, 12, 0, 0, 0, 0, time.UTC), suspensionRepo.created[0].Date)
}

func TestApproveProfile(t *testing.T) {
	t.Parallel()
	svc, _, _, profileRepo, _ := newTestService()

	require.NoError(t, svc.ApproveProfile(context.Background(), "p1"))
	assert.True(t, profileRepo.profiles["p1"].IsApproved)

	assert.ErrorIs(t, svc.ApproveProfile(context.Background(), "p404"), employee.ErrProfileNotFound)
}

func TestGetContribution_LazyDefaults(t *testing.T) {
	t.Parallel()
	svc, _, _, _, contribRepo := newTestService()

	contrib, err := svc.GetContribution(context.Background(), "p1")

	require.NoError(t, err)
	assert.Equal(t, "760", contrib.SSS.String())
	assert.Equal(t, "400", contrib.PagIbig.String())
	assert.Equal(t, "percent", contrib.PhilHealthMode)
	assert.Equal(t, "5", contrib.PhilHealthValue.String())
	assert.Contains(t, contribRepo.contribs, "p1")
}
