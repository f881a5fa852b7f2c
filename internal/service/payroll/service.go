package payroll

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/payrollph/payroll-backend-go/internal/domain/branch"
	"github.com/payrollph/payroll-backend-go/internal/domain/employee"
	"github.com/payrollph/payroll-backend-go/internal/domain/payroll"
	holidayService "github.com/payrollph/payroll-backend-go/internal/service/holiday"
	"github.com/payrollph/payroll-backend-go/internal/service/reconcile"
	"github.com/shopspring/decimal"
)

const issueNoAttendance = "No attendance records matched"

// TxRunner executes fn atomically. Repositories invoked inside fn observe
// the transaction through ctx, so the delete-then-insert replacement of a
// batch commits as a whole or not at all.
type TxRunner func(ctx context.Context, fn func(ctx context.Context) error) error

type PayrollServiceImpl struct {
	runTx       TxRunner
	payrollRepo payroll.PayrollRepository
	profileRepo employee.ProfileRepository
	contribRepo employee.ContributionRepository
	branchRepo  branch.BranchRepository
	reconciler  *reconcile.Service
	holidaySvc  *holidayService.Service
}

func NewPayrollService(
	runTx TxRunner,
	payrollRepo payroll.PayrollRepository,
	profileRepo employee.ProfileRepository,
	contribRepo employee.ContributionRepository,
	branchRepo branch.BranchRepository,
	reconciler *reconcile.Service,
	holidaySvc *holidayService.Service,
) *PayrollServiceImpl {
	return &PayrollServiceImpl{
		runTx:       runTx,
		payrollRepo: payrollRepo,
		profileRepo: profileRepo,
		contribRepo: contribRepo,
		branchRepo:  branchRepo,
		reconciler:  reconciler,
		holidaySvc:  holidaySvc,
	}
}

// resolveScope validates the branch and period references for a request.
// Invalid references reject the whole operation; defaults are never
// substituted.
func (s *PayrollServiceImpl) resolveScope(ctx context.Context, branchID, periodID string) (branch.Branch, payroll.Period, payroll.Rule, error) {
	br, err := s.branchRepo.GetByID(ctx, branchID)
	if err != nil {
		return branch.Branch{}, payroll.Period{}, payroll.Rule{}, err
	}

	period, err := s.payrollRepo.GetPeriodByID(ctx, periodID)
	if err != nil {
		return branch.Branch{}, payroll.Period{}, payroll.Rule{}, err
	}

	// Missing rule is configuration absence, not an error: created lazily
	// with defaults.
	rule, err := s.payrollRepo.EnsureRule(ctx, branchID)
	if err != nil {
		return branch.Branch{}, payroll.Period{}, payroll.Rule{}, fmt.Errorf("failed to resolve payroll rule for branch %s: %w", branchID, err)
	}

	return br, period, rule, nil
}

func (s *PayrollServiceImpl) computeForProfile(
	ctx context.Context,
	profile employee.Profile,
	period payroll.Period,
	rule payroll.Rule,
) (Computation, reconcile.Summary, reconcile.Resolution, error) {
	keys := reconcile.Keys{
		Username:   profile.Username,
		EmployeeNo: strconv.FormatInt(profile.EmployeeNo, 10),
	}

	sum, res, err := s.reconciler.Reconcile(ctx, profile.BranchID, keys, period.StartDate, period.EndDate, rule)
	if err != nil {
		return Computation{}, reconcile.Summary{}, reconcile.Resolution{}, fmt.Errorf("reconcile employee %s (branch %s, period %s): %w", profile.ID, profile.BranchID, period.ID, err)
	}

	contrib, err := s.contribRepo.EnsureDefault(ctx, profile.ID)
	if err != nil {
		return Computation{}, reconcile.Summary{}, reconcile.Resolution{}, fmt.Errorf("resolve contribution for employee %s: %w", profile.ID, err)
	}

	comp := Compute(profile, period, rule, contrib, sum)
	if res.Records == 0 {
		comp.Issues = append(comp.Issues, issueNoAttendance)
	}

	return comp, sum, res, nil
}

// ProcessBatch materializes the payroll snapshot for (branch, period).
// The existing item set, if any, is replaced in one transaction: readers
// see either the old complete set or the new one, never a partial one.
func (s *PayrollServiceImpl) ProcessBatch(ctx context.Context, req payroll.ProcessBatchRequest, processedBy string) (payroll.BatchResponse, []payroll.ItemResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.BatchResponse{}, nil, err
	}

	br, period, rule, err := s.resolveScope(ctx, req.BranchID, req.PeriodID)
	if err != nil {
		return payroll.BatchResponse{}, nil, err
	}

	var typeFilter *employee.EmploymentType
	if req.EmploymentType != nil {
		t := employee.EmploymentType(*req.EmploymentType)
		typeFilter = &t
	}

	profiles, err := s.profileRepo.ListApprovedByBranch(ctx, req.BranchID, typeFilter)
	if err != nil {
		return payroll.BatchResponse{}, nil, fmt.Errorf("failed to list approved employees for branch %s: %w", req.BranchID, err)
	}
	if len(profiles) == 0 {
		return payroll.BatchResponse{}, nil, fmt.Errorf("branch %s: %w", req.BranchID, payroll.ErrNoApprovedProfile)
	}

	var (
		batch payroll.Batch
		items []payroll.Item
	)

	err = s.runTx(ctx, func(ctx context.Context) error {
		batch, err = s.payrollRepo.EnsureBatch(ctx, payroll.Batch{
			BranchID:         req.BranchID,
			PeriodID:         req.PeriodID,
			Name:             deriveBatchName(br, period),
			Status:           payroll.BatchStatusDraft,
			TotalsNet:        decimal.Zero,
			TotalsDeductions: decimal.Zero,
		})
		if err != nil {
			return fmt.Errorf("resolve batch (branch %s, period %s): %w", req.BranchID, req.PeriodID, err)
		}

		// Full replace: the batch is always recomputed from scratch.
		if err := s.payrollRepo.DeleteItemsByBatch(ctx, batch.ID); err != nil {
			return fmt.Errorf("clear items for batch %s: %w", batch.ID, err)
		}

		totalsNet := decimal.Zero
		totalsDeductions := decimal.Zero
		items = items[:0]

		for _, profile := range profiles {
			comp, _, res, err := s.computeForProfile(ctx, profile, period, rule)
			if err != nil {
				// Any unrecovered per-employee failure rolls back the
				// whole batch; partial snapshots are never visible.
				return err
			}

			item, err := s.payrollRepo.InsertItem(ctx, buildItem(batch.ID, profile, period, comp, res.MatchedKey))
			if err != nil {
				return fmt.Errorf("insert item for employee %s (branch %s, period %s): %w", profile.ID, req.BranchID, req.PeriodID, err)
			}

			totalsNet = totalsNet.Add(item.NetPay)
			totalsDeductions = totalsDeductions.Add(item.DeductionsTotal)
			items = append(items, item)
		}

		now := time.Now()
		batch.TotalsNet = totalsNet
		batch.TotalsDeductions = totalsDeductions
		batch.Status = payroll.BatchStatusCompleted
		if processedBy != "" {
			batch.ProcessedBy = &processedBy
		}
		batch.ProcessedAt = &now

		batch, err = s.payrollRepo.UpdateBatch(ctx, batch)
		if err != nil {
			return fmt.Errorf("finalize batch %s: %w", batch.ID, err)
		}
		return nil
	})
	if err != nil {
		return payroll.BatchResponse{}, nil, err
	}

	return mapBatchResponse(batch, len(items)), mapItemResponses(items), nil
}

// Preview computes per-employee figures for a branch and period without
// touching any batch.
func (s *PayrollServiceImpl) Preview(ctx context.Context, branchID, periodID string, employmentType *string) ([]payroll.PreviewResponse, error) {
	_, period, rule, err := s.resolveScope(ctx, branchID, periodID)
	if err != nil {
		return nil, err
	}

	var typeFilter *employee.EmploymentType
	if employmentType != nil {
		t := employee.EmploymentType(*employmentType)
		typeFilter = &t
	}

	profiles, err := s.profileRepo.ListApprovedByBranch(ctx, branchID, typeFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved employees for branch %s: %w", branchID, err)
	}

	previews := make([]payroll.PreviewResponse, 0, len(profiles))
	for _, profile := range profiles {
		comp, _, _, err := s.computeForProfile(ctx, profile, period, rule)
		if err != nil {
			return nil, err
		}

		previews = append(previews, payroll.PreviewResponse{
			ProfileID:  profile.ID,
			Name:       profile.FullName,
			Type:       string(profile.EmploymentType),
			Base:       comp.BasePay.StringFixed(2),
			Premium:    comp.PremiumPay.StringFixed(2),
			OT:         comp.OvertimePay.StringFixed(2),
			Late:       comp.LateMinutes,
			Undertime:  comp.UndertimeMinutes,
			Absences:   comp.DaysAbsent,
			Deductions: comp.DeductionsTotal.StringFixed(2),
			Net:        comp.NetPay.StringFixed(2),
			Issues:     comp.IssuesText(),
		})
	}

	return previews, nil
}

// DailyTimeRecord projects one employee's reconciled period day by day.
func (s *PayrollServiceImpl) DailyTimeRecord(ctx context.Context, profileID, periodID string) (payroll.DTRResponse, error) {
	profile, err := s.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		return payroll.DTRResponse{}, err
	}

	_, period, rule, err := s.resolveScope(ctx, profile.BranchID, periodID)
	if err != nil {
		return payroll.DTRResponse{}, err
	}

	keys := reconcile.Keys{
		Username:   profile.Username,
		EmployeeNo: strconv.FormatInt(profile.EmployeeNo, 10),
	}
	sum, res, err := s.reconciler.Reconcile(ctx, profile.BranchID, keys, period.StartDate, period.EndDate, rule)
	if err != nil {
		return payroll.DTRResponse{}, err
	}

	days := make([]payroll.DTRDayResponse, 0, len(sum.Days))
	for _, day := range sum.Days {
		row := payroll.DTRDayResponse{
			Date:       day.Date.Format("2006-01-02"),
			Day:        day.Date.Weekday().String(),
			TotalHours: decimal.NewFromInt(int64(day.WorkedMinutes)).Div(decimal.NewFromInt(60)).StringFixed(2),
			Late:       day.LateMinutes,
			Undertime:  day.UndertimeMinutes,
			Status:     string(day.Status),
		}
		if day.TimeIn != nil {
			v := day.TimeIn.Format("15:04")
			row.TimeIn = &v
		}
		if day.TimeOut != nil {
			v := day.TimeOut.Format("15:04")
			row.TimeOut = &v
		}

		if susp, err := s.holidaySvc.IsNonWorkingDay(ctx, profile.BranchID, day.Date); err == nil && susp != nil {
			name := susp.Name
			row.NonWorking = &name
		}

		days = append(days, row)
	}

	return payroll.DTRResponse{
		ProfileID:   profile.ID,
		Name:        profile.FullName,
		PeriodStart: period.StartDate.Format("2006-01-02"),
		PeriodEnd:   period.EndDate.Format("2006-01-02"),
		MatchedKey:  res.MatchedKey,
		Days:        days,
	}, nil
}

// ========== READ SIDE ==========

func (s *PayrollServiceImpl) GetBatch(ctx context.Context, id string) (payroll.BatchResponse, []payroll.ItemResponse, error) {
	batch, err := s.payrollRepo.GetBatchByID(ctx, id)
	if err != nil {
		return payroll.BatchResponse{}, nil, err
	}

	items, err := s.payrollRepo.ListItemsByBatch(ctx, id)
	if err != nil {
		return payroll.BatchResponse{}, nil, fmt.Errorf("failed to list items for batch %s: %w", id, err)
	}

	return mapBatchResponse(batch, len(items)), mapItemResponses(items), nil
}

func (s *PayrollServiceImpl) ListBatches(ctx context.Context, branchID *string) ([]payroll.BatchResponse, error) {
	batches, err := s.payrollRepo.ListBatches(ctx, branchID)
	if err != nil {
		return nil, err
	}

	result := make([]payroll.BatchResponse, 0, len(batches))
	for _, b := range batches {
		items, err := s.payrollRepo.ListItemsByBatch(ctx, b.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list items for batch %s: %w", b.ID, err)
		}
		result = append(result, mapBatchResponse(b, len(items)))
	}
	return result, nil
}

// ========== HELPERS ==========

func deriveBatchName(br branch.Branch, period payroll.Period) string {
	label := period.Name
	if label == "" {
		label = fmt.Sprintf("%s to %s", period.StartDate.Format("2006-01-02"), period.EndDate.Format("2006-01-02"))
	}
	return fmt.Sprintf("%s payroll %s", br.Name, label)
}

func buildItem(batchID string, profile employee.Profile, period payroll.Period, comp Computation, matchedKey string) payroll.Item {
	return payroll.Item{
		BatchID:          batchID,
		ProfileID:        profile.ID,
		EmployeeName:     profile.FullName,
		EmploymentType:   string(profile.EmploymentType),
		BasePay:          comp.BasePay,
		PremiumPay:       comp.PremiumPay,
		OvertimePay:      comp.OvertimePay,
		GrossPay:         comp.GrossPay,
		DaysPresent:      comp.DaysPresent,
		DaysAbsent:       comp.DaysAbsent,
		LateMinutes:      comp.LateMinutes,
		UndertimeMinutes: comp.UndertimeMinutes,
		LatePenalty:      comp.LatePenalty,
		UndertimePenalty: comp.UndertimePenalty,
		SSS:              comp.SSS,
		PagIbig:          comp.PagIbig,
		PhilHealth:       comp.PhilHealth,
		GovTotal:         comp.GovTotal,
		TaxTotal:         comp.TaxTotal,
		DeductionsTotal:  comp.DeductionsTotal,
		NetPay:           comp.NetPay,
		Issues:           comp.IssuesText(),
		Meta: payroll.ItemMeta{
			MatchedKey:  matchedKey,
			PeriodStart: period.StartDate.Format("2006-01-02"),
			PeriodEnd:   period.EndDate.Format("2006-01-02"),
		},
	}
}

func mapBatchResponse(b payroll.Batch, itemCount int) payroll.BatchResponse {
	var processedAt *string
	if b.ProcessedAt != nil {
		str := b.ProcessedAt.Format(time.RFC3339)
		processedAt = &str
	}

	return payroll.BatchResponse{
		ID:               b.ID,
		BranchID:         b.BranchID,
		PeriodID:         b.PeriodID,
		Name:             b.Name,
		Status:           string(b.Status),
		TotalsNet:        b.TotalsNet,
		TotalsDeductions: b.TotalsDeductions,
		ProcessedBy:      b.ProcessedBy,
		ProcessedAt:      processedAt,
		ItemCount:        itemCount,
	}
}

func mapItemResponses(items []payroll.Item) []payroll.ItemResponse {
	result := make([]payroll.ItemResponse, 0, len(items))
	for _, it := range items {
		result = append(result, payroll.ItemResponse{
			ID:               it.ID,
			ProfileID:        it.ProfileID,
			EmployeeName:     it.EmployeeName,
			EmploymentType:   it.EmploymentType,
			BasePay:          it.BasePay,
			PremiumPay:       it.PremiumPay,
			OvertimePay:      it.OvertimePay,
			GrossPay:         it.GrossPay,
			DaysPresent:      it.DaysPresent,
			DaysAbsent:       it.DaysAbsent,
			LateMinutes:      it.LateMinutes,
			UndertimeMinutes: it.UndertimeMinutes,
			LatePenalty:      it.LatePenalty,
			UndertimePenalty: it.UndertimePenalty,
			SSS:              it.SSS,
			PagIbig:          it.PagIbig,
			PhilHealth:       it.PhilHealth,
			GovTotal:         it.GovTotal,
			TaxTotal:         it.TaxTotal,
			DeductionsTotal:  it.DeductionsTotal,
			NetPay:           it.NetPay,
			Issues:           it.Issues,
			Meta:             it.Meta,
		})
	}
	return result
}
