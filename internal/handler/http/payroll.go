package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/payrollph/payroll-backend-go/internal/domain/payroll"
	"github.com/payrollph/payroll-backend-go/internal/handler/http/response"
	"github.com/payrollph/payroll-backend-go/internal/pkg/jwt"
	payrollService "github.com/payrollph/payroll-backend-go/internal/service/payroll"
)

type PayrollHandler interface {
	ProcessBatch(w http.ResponseWriter, r *http.Request)
	GetBatch(w http.ResponseWriter, r *http.Request)
	ListBatches(w http.ResponseWriter, r *http.Request)
	Preview(w http.ResponseWriter, r *http.Request)
	DailyTimeRecord(w http.ResponseWriter, r *http.Request)
	DownloadPayslip(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService *payrollService.PayrollServiceImpl
}

func NewPayrollHandler(svc *payrollService.PayrollServiceImpl) PayrollHandler {
	return &payrollHandlerImpl{payrollService: svc}
}

type batchWithItems struct {
	Batch payroll.BatchResponse  `json:"batch"`
	Items []payroll.ItemResponse `json:"items"`
}

// ProcessBatch implements PayrollHandler. Reprocessing an existing
// (branch, period) batch replaces its items wholesale.
func (h *payrollHandlerImpl) ProcessBatch(w http.ResponseWriter, r *http.Request) {
	var req payroll.ProcessBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	processedBy, err := jwt.UserIDFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, "Missing or invalid token")
		return
	}

	batch, items, err := h.payrollService.ProcessBatch(r.Context(), req, processedBy)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll batch processed", batchWithItems{Batch: batch, Items: items})
}

// GetBatch implements PayrollHandler.
func (h *payrollHandlerImpl) GetBatch(w http.ResponseWriter, r *http.Request) {
	batch, items, err := h.payrollService.GetBatch(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, batchWithItems{Batch: batch, Items: items})
}

// ListBatches implements PayrollHandler.
func (h *payrollHandlerImpl) ListBatches(w http.ResponseWriter, r *http.Request) {
	var branchID *string
	if v := r.URL.Query().Get("branch_id"); v != "" {
		branchID = &v
	}

	batches, err := h.payrollService.ListBatches(r.Context(), branchID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, batches)
}

// Preview implements PayrollHandler. Computes per-employee figures for a
// branch and period without persisting anything.
func (h *payrollHandlerImpl) Preview(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	branchID := q.Get("branch_id")
	periodID := q.Get("period_id")
	if branchID == "" || periodID == "" {
		response.BadRequest(w, "branch_id and period_id are required", nil)
		return
	}

	var employmentType *string
	if v := q.Get("employment_type"); v != "" {
		employmentType = &v
	}

	result, err := h.payrollService.Preview(r.Context(), branchID, periodID, employmentType)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// DailyTimeRecord implements PayrollHandler.
func (h *payrollHandlerImpl) DailyTimeRecord(w http.ResponseWriter, r *http.Request) {
	periodID := r.URL.Query().Get("period_id")
	if periodID == "" {
		response.BadRequest(w, "period_id is required", nil)
		return
	}

	result, err := h.payrollService.DailyTimeRecord(r.Context(), chi.URLParam(r, "profileID"), periodID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// DownloadPayslip implements PayrollHandler. Streams the payslip for one
// payroll item as a PDF attachment.
func (h *payrollHandlerImpl) DownloadPayslip(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemID")

	pdf, err := h.payrollService.GeneratePayslipPDF(r.Context(), itemID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="payslip-%s.pdf"`, itemID))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}
