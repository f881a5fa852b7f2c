package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/payrollph/payroll-backend-go/internal/domain/branch"
	"github.com/payrollph/payroll-backend-go/internal/domain/employee"
	"github.com/payrollph/payroll-backend-go/internal/domain/holiday"
	"github.com/payrollph/payroll-backend-go/internal/domain/payroll"
	"github.com/payrollph/payroll-backend-go/internal/handler/http/response"
	masterService "github.com/payrollph/payroll-backend-go/internal/service/master"
)

// MasterHandler serves the master data surface: branches, holidays and
// suspensions, per-branch payroll rules, periods, employee profiles and
// contributions.
type MasterHandler interface {
	CreateBranch(w http.ResponseWriter, r *http.Request)
	ListBranches(w http.ResponseWriter, r *http.Request)
	UpdateBranch(w http.ResponseWriter, r *http.Request)
	DeleteBranch(w http.ResponseWriter, r *http.Request)

	CreateSuspension(w http.ResponseWriter, r *http.Request)
	ListSuspensions(w http.ResponseWriter, r *http.Request)
	DeleteSuspension(w http.ResponseWriter, r *http.Request)

	GetRule(w http.ResponseWriter, r *http.Request)
	UpdateRule(w http.ResponseWriter, r *http.Request)

	CreatePeriod(w http.ResponseWriter, r *http.Request)
	ListPeriods(w http.ResponseWriter, r *http.Request)

	CreateProfile(w http.ResponseWriter, r *http.Request)
	ListProfiles(w http.ResponseWriter, r *http.Request)
	UpdateProfile(w http.ResponseWriter, r *http.Request)
	ApproveProfile(w http.ResponseWriter, r *http.Request)

	GetContribution(w http.ResponseWriter, r *http.Request)
	UpdateContribution(w http.ResponseWriter, r *http.Request)
}

type masterHandlerImpl struct {
	masterService *masterService.Service
}

func NewMasterHandler(svc *masterService.Service) MasterHandler {
	return &masterHandlerImpl{masterService: svc}
}

// ========== BRANCHES ==========

func (h *masterHandlerImpl) CreateBranch(w http.ResponseWriter, r *http.Request) {
	var req branch.CreateBranchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.masterService.CreateBranch(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Branch created", result)
}

func (h *masterHandlerImpl) ListBranches(w http.ResponseWriter, r *http.Request) {
	result, err := h.masterService.ListBranches(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *masterHandlerImpl) UpdateBranch(w http.ResponseWriter, r *http.Request) {
	var req branch.UpdateBranchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.masterService.UpdateBranch(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Branch updated", result)
}

func (h *masterHandlerImpl) DeleteBranch(w http.ResponseWriter, r *http.Request) {
	if err := h.masterService.DeleteBranch(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Branch deleted", nil)
}

// ========== HOLIDAYS / SUSPENSIONS ==========

func (h *masterHandlerImpl) CreateSuspension(w http.ResponseWriter, r *http.Request) {
	var req holiday.CreateSuspensionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.masterService.CreateSuspension(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Holiday/suspension created", result)
}

func (h *masterHandlerImpl) ListSuspensions(w http.ResponseWriter, r *http.Request) {
	var branchID *string
	if v := r.URL.Query().Get("branch_id"); v != "" {
		branchID = &v
	}

	result, err := h.masterService.ListSuspensions(r.Context(), branchID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *masterHandlerImpl) DeleteSuspension(w http.ResponseWriter, r *http.Request) {
	if err := h.masterService.DeleteSuspension(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Holiday/suspension deleted", nil)
}

// ========== PAYROLL RULES ==========

func (h *masterHandlerImpl) GetRule(w http.ResponseWriter, r *http.Request) {
	result, err := h.masterService.GetRule(r.Context(), chi.URLParam(r, "branchID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *masterHandlerImpl) UpdateRule(w http.ResponseWriter, r *http.Request) {
	var req payroll.UpdateRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.BranchID = chi.URLParam(r, "branchID")

	result, err := h.masterService.UpdateRule(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll rule updated", result)
}

// ========== PERIODS ==========

func (h *masterHandlerImpl) CreatePeriod(w http.ResponseWriter, r *http.Request) {
	var req payroll.CreatePeriodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.masterService.CreatePeriod(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll period created", result)
}

func (h *masterHandlerImpl) ListPeriods(w http.ResponseWriter, r *http.Request) {
	result, err := h.masterService.ListPeriods(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ========== PROFILES ==========

func (h *masterHandlerImpl) CreateProfile(w http.ResponseWriter, r *http.Request) {
	var req employee.CreateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.masterService.CreateProfile(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employee profile created", result)
}

func (h *masterHandlerImpl) ListProfiles(w http.ResponseWriter, r *http.Request) {
	var branchID *string
	if v := r.URL.Query().Get("branch_id"); v != "" {
		branchID = &v
	}

	result, err := h.masterService.ListProfiles(r.Context(), branchID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *masterHandlerImpl) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req employee.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.masterService.UpdateProfile(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee profile updated", result)
}

func (h *masterHandlerImpl) ApproveProfile(w http.ResponseWriter, r *http.Request) {
	if err := h.masterService.ApproveProfile(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee profile approved", nil)
}

// ========== CONTRIBUTIONS ==========

func (h *masterHandlerImpl) GetContribution(w http.ResponseWriter, r *http.Request) {
	result, err := h.masterService.GetContribution(r.Context(), chi.URLParam(r, "profileID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *masterHandlerImpl) UpdateContribution(w http.ResponseWriter, r *http.Request) {
	var req employee.UpdateContributionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ProfileID = chi.URLParam(r, "profileID")

	result, err := h.masterService.UpdateContribution(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee contribution updated", result)
}
