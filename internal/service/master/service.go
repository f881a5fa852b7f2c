package master

import (
	"context"
	"time"

	"github.com/payrollph/payroll-backend-go/internal/domain/branch"
	"github.com/payrollph/payroll-backend-go/internal/domain/employee"
	"github.com/payrollph/payroll-backend-go/internal/domain/holiday"
	"github.com/payrollph/payroll-backend-go/internal/domain/payroll"
)

// Service covers master-data administration: branches, holiday calendar,
// payroll rules, employee profiles and contributions, payroll periods.
type Service struct {
	branchRepo  branch.BranchRepository
	holidayRepo holiday.SuspensionRepository
	payrollRepo payroll.PayrollRepository
	profileRepo employee.ProfileRepository
	contribRepo employee.ContributionRepository
}

func NewMasterService(
	branchRepo branch.BranchRepository,
	holidayRepo holiday.SuspensionRepository,
	payrollRepo payroll.PayrollRepository,
	profileRepo employee.ProfileRepository,
	contribRepo employee.ContributionRepository,
) *Service {
	return &Service{
		branchRepo:  branchRepo,
		holidayRepo: holidayRepo,
		payrollRepo: payrollRepo,
		profileRepo: profileRepo,
		contribRepo: contribRepo,
	}
}

// ========== BRANCHES ==========

func (s *Service) CreateBranch(ctx context.Context, req branch.CreateBranchRequest) (branch.BranchResponse, error) {
	if err := req.Validate(); err != nil {
		return branch.BranchResponse{}, err
	}

	created, err := s.branchRepo.Create(ctx, branch.Branch{Name: req.Name, Region: req.Region})
	if err != nil {
		return branch.BranchResponse{}, err
	}
	return mapBranch(created), nil
}

func (s *Service) ListBranches(ctx context.Context) ([]branch.BranchResponse, error) {
	branches, err := s.branchRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]branch.BranchResponse, 0, len(branches))
	for _, b := range branches {
		result = append(result, mapBranch(b))
	}
	return result, nil
}

func (s *Service) UpdateBranch(ctx context.Context, req branch.UpdateBranchRequest) (branch.BranchResponse, error) {
	current, err := s.branchRepo.GetByID(ctx, req.ID)
	if err != nil {
		return branch.BranchResponse{}, err
	}

	if req.Name != nil {
		current.Name = *req.Name
	}
	if req.Region != nil {
		current.Region = *req.Region
	}

	updated, err := s.branchRepo.Update(ctx, current)
	if err != nil {
		return branch.BranchResponse{}, err
	}
	return mapBranch(updated), nil
}

func (s *Service) DeleteBranch(ctx context.Context, id string) error {
	return s.branchRepo.Delete(ctx, id)
}

// ========== HOLIDAYS / SUSPENSIONS ==========

func (s *Service) CreateSuspension(ctx context.Context, req holiday.CreateSuspensionRequest) (holiday.SuspensionResponse, error) {
	if err := req.Validate(); err != nil {
		return holiday.SuspensionResponse{}, err
	}

	date, _ := time.Parse("2006-01-02", req.Date)

	if holiday.Scope(req.Scope) == holiday.ScopeBranch {
		if _, err := s.branchRepo.GetByID(ctx, *req.BranchID); err != nil {
			return holiday.SuspensionResponse{}, err
		}
	}

	created, err := s.holidayRepo.Create(ctx, holiday.Suspension{
		Date:     date,
		Name:     req.Name,
		Type:     holiday.Type(req.Type),
		Scope:    holiday.Scope(req.Scope),
		BranchID: req.BranchID,
		Region:   req.Region,
	})
	if err != nil {
		return holiday.SuspensionResponse{}, err
	}
	return mapSuspension(created), nil
}

func (s *Service) ListSuspensions(ctx context.Context, branchID *string) ([]holiday.SuspensionResponse, error) {
	suspensions, err := s.holidayRepo.List(ctx, branchID)
	if err != nil {
		return nil, err
	}

	result := make([]holiday.SuspensionResponse, 0, len(suspensions))
	for _, h := range suspensions {
		result = append(result, mapSuspension(h))
	}
	return result, nil
}

func (s *Service) DeleteSuspension(ctx context.Context, id string) error {
	return s.holidayRepo.Delete(ctx, id)
}

// ========== PAYROLL RULES ==========

// GetRule lazily creates the branch's rule set with defaults on first
// access.
func (s *Service) GetRule(ctx context.Context, branchID string) (payroll.RuleResponse, error) {
	if _, err := s.branchRepo.GetByID(ctx, branchID); err != nil {
		return payroll.RuleResponse{}, err
	}

	rule, err := s.payrollRepo.EnsureRule(ctx, branchID)
	if err != nil {
		return payroll.RuleResponse{}, err
	}
	return mapRule(rule), nil
}

func (s *Service) UpdateRule(ctx context.Context, req payroll.UpdateRuleRequest) (payroll.RuleResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.RuleResponse{}, err
	}

	if _, err := s.branchRepo.GetByID(ctx, req.BranchID); err != nil {
		return payroll.RuleResponse{}, err
	}

	rule, err := s.payrollRepo.EnsureRule(ctx, req.BranchID)
	if err != nil {
		return payroll.RuleResponse{}, err
	}

	if req.TaxRatePercent != nil {
		rule.TaxRatePercent = *req.TaxRatePercent
	}
	if req.PremiumRatePercent != nil {
		rule.PremiumRatePercent = *req.PremiumRatePercent
	}
	if req.LatePenaltyPerMinute != nil {
		rule.LatePenaltyPerMinute = *req.LatePenaltyPerMinute
	}
	if req.UndertimePenaltyPerMinute != nil {
		rule.UndertimePenaltyPerMinute = *req.UndertimePenaltyPerMinute
	}
	if req.GraceMinutes != nil {
		rule.GraceMinutes = *req.GraceMinutes
	}
	if req.WorkStart != nil {
		rule.WorkStart = *req.WorkStart
	}
	if req.WorkEnd != nil {
		rule.WorkEnd = *req.WorkEnd
	}
	if req.DailyHoursRequired != nil {
		rule.DailyHoursRequired = *req.DailyHoursRequired
	}
	if req.LunchBreakRequired != nil {
		rule.LunchBreakRequired = *req.LunchBreakRequired
	}

	updated, err := s.payrollRepo.UpdateRule(ctx, rule)
	if err != nil {
		return payroll.RuleResponse{}, err
	}
	return mapRule(updated), nil
}

// ========== PERIODS ==========

func (s *Service) CreatePeriod(ctx context.Context, req payroll.CreatePeriodRequest) (payroll.PeriodResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PeriodResponse{}, err
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)

	name := req.Name
	if name == "" {
		name = req.StartDate + " to " + req.EndDate
	}

	created, err := s.payrollRepo.CreatePeriod(ctx, payroll.Period{
		Name:      name,
		StartDate: start,
		EndDate:   end,
		PayMode:   payroll.PayMode(req.PayMode),
	})
	if err != nil {
		return payroll.PeriodResponse{}, err
	}
	return mapPeriod(created), nil
}

func (s *Service) ListPeriods(ctx context.Context) ([]payroll.PeriodResponse, error) {
	periods, err := s.payrollRepo.ListPeriods(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]payroll.PeriodResponse, 0, len(periods))
	for _, p := range periods {
		result = append(result, mapPeriod(p))
	}
	return result, nil
}

// ========== PROFILES ==========

func (s *Service) CreateProfile(ctx context.Context, req employee.CreateProfileRequest) (employee.ProfileResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.ProfileResponse{}, err
	}

	if _, err := s.branchRepo.GetByID(ctx, req.BranchID); err != nil {
		return employee.ProfileResponse{}, err
	}

	created, err := s.profileRepo.Create(ctx, employee.Profile{
		Username:       req.Username,
		FullName:       req.FullName,
		BranchID:       req.BranchID,
		EmploymentType: employee.EmploymentType(req.EmploymentType),
		DailyRate:      req.DailyRate,
		MonthlySalary:  req.MonthlySalary,
		HasPremium:     req.HasPremium,
	})
	if err != nil {
		return employee.ProfileResponse{}, err
	}
	return mapProfile(created), nil
}

func (s *Service) ListProfiles(ctx context.Context, branchID *string) ([]employee.ProfileResponse, error) {
	profiles, err := s.profileRepo.List(ctx, branchID)
	if err != nil {
		return nil, err
	}

	result := make([]employee.ProfileResponse, 0, len(profiles))
	for _, p := range profiles {
		result = append(result, mapProfile(p))
	}
	return result, nil
}

func (s *Service) UpdateProfile(ctx context.Context, req employee.UpdateProfileRequest) (employee.ProfileResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.ProfileResponse{}, err
	}

	current, err := s.profileRepo.GetByID(ctx, req.ID)
	if err != nil {
		return employee.ProfileResponse{}, err
	}

	if req.FullName != nil {
		current.FullName = *req.FullName
	}
	if req.BranchID != nil {
		if _, err := s.branchRepo.GetByID(ctx, *req.BranchID); err != nil {
			return employee.ProfileResponse{}, err
		}
		current.BranchID = *req.BranchID
	}
	if req.EmploymentType != nil {
		current.EmploymentType = employee.EmploymentType(*req.EmploymentType)
	}
	if req.DailyRate != nil {
		current.DailyRate = *req.DailyRate
	}
	if req.MonthlySalary != nil {
		current.MonthlySalary = *req.MonthlySalary
	}
	if req.HasPremium != nil {
		current.HasPremium = *req.HasPremium
	}

	updated, err := s.profileRepo.Update(ctx, current)
	if err != nil {
		return employee.ProfileResponse{}, err
	}
	return mapProfile(updated), nil
}

func (s *Service) ApproveProfile(ctx context.Context, id string) error {
	if _, err := s.profileRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.profileRepo.SetApproved(ctx, id, true)
}

// ========== CONTRIBUTIONS ==========

// GetContribution lazily creates the default contribution row on first
// access.
func (s *Service) GetContribution(ctx context.Context, profileID string) (employee.ContributionResponse, error) {
	if _, err := s.profileRepo.GetByID(ctx, profileID); err != nil {
		return employee.ContributionResponse{}, err
	}

	contrib, err := s.contribRepo.EnsureDefault(ctx, profileID)
	if err != nil {
		return employee.ContributionResponse{}, err
	}
	return mapContribution(contrib), nil
}

func (s *Service) UpdateContribution(ctx context.Context, req employee.UpdateContributionRequest) (employee.ContributionResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.ContributionResponse{}, err
	}

	if _, err := s.profileRepo.GetByID(ctx, req.ProfileID); err != nil {
		return employee.ContributionResponse{}, err
	}

	contrib, err := s.contribRepo.EnsureDefault(ctx, req.ProfileID)
	if err != nil {
		return employee.ContributionResponse{}, err
	}

	if req.SSS != nil {
		contrib.SSS = *req.SSS
	}
	if req.PagIbig != nil {
		contrib.PagIbig = *req.PagIbig
	}
	if req.PhilHealthMode != nil {
		contrib.PhilHealthMode = employee.PhilHealthMode(*req.PhilHealthMode)
	}
	if req.PhilHealthValue != nil {
		contrib.PhilHealthValue = *req.PhilHealthValue
	}

	updated, err := s.contribRepo.Update(ctx, contrib)
	if err != nil {
		return employee.ContributionResponse{}, err
	}
	return mapContribution(updated), nil
}

// ========== MAPPERS ==========

func mapBranch(b branch.Branch) branch.BranchResponse {
	return branch.BranchResponse{ID: b.ID, Name: b.Name, Region: b.Region}
}

func mapSuspension(h holiday.Suspension) holiday.SuspensionResponse {
	return holiday.SuspensionResponse{
		ID:       h.ID,
		Date:     h.Date.Format("2006-01-02"),
		Name:     h.Name,
		Type:     string(h.Type),
		Scope:    string(h.Scope),
		BranchID: h.BranchID,
		Region:   h.Region,
	}
}

func mapRule(r payroll.Rule) payroll.RuleResponse {
	return payroll.RuleResponse{
		BranchID:                  r.BranchID,
		TaxRatePercent:            r.TaxRatePercent,
		PremiumRatePercent:        r.PremiumRatePercent,
		LatePenaltyPerMinute:      r.LatePenaltyPerMinute,
		UndertimePenaltyPerMinute: r.UndertimePenaltyPerMinute,
		GraceMinutes:              r.GraceMinutes,
		WorkStart:                 r.WorkStart,
		WorkEnd:                   r.WorkEnd,
		DailyHoursRequired:        r.DailyHoursRequired,
		LunchBreakRequired:        r.LunchBreakRequired,
	}
}

func mapPeriod(p payroll.Period) payroll.PeriodResponse {
	return payroll.PeriodResponse{
		ID:        p.ID,
		Name:      p.Name,
		StartDate: p.StartDate.Format("2006-01-02"),
		EndDate:   p.EndDate.Format("2006-01-02"),
		PayMode:   string(p.PayMode),
	}
}

func mapProfile(p employee.Profile) employee.ProfileResponse {
	return employee.ProfileResponse{
		ID:             p.ID,
		Username:       p.Username,
		FullName:       p.FullName,
		EmployeeNo:     p.EmployeeNo,
		BranchID:       p.BranchID,
		EmploymentType: string(p.EmploymentType),
		DailyRate:      p.DailyRate,
		MonthlySalary:  p.MonthlySalary,
		HasPremium:     p.HasPremium,
		IsApproved:     p.IsApproved,
	}
}

func mapContribution(c employee.Contribution) employee.ContributionResponse {
	return employee.ContributionResponse{
		ProfileID:       c.ProfileID,
		SSS:             c.SSS,
		PagIbig:         c.PagIbig,
		PhilHealthMode:  string(c.PhilHealthMode),
		PhilHealthValue: c.PhilHealthValue,
	}
}
