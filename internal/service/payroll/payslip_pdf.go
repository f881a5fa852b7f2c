package payroll

import (
	"bytes"
	"context"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

// GeneratePayslipPDF renders one payroll item as an A4 payslip.
func (s *PayrollServiceImpl) GeneratePayslipPDF(ctx context.Context, itemID string) ([]byte, error) {
	item, err := s.payrollRepo.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	batch, err := s.payrollRepo.GetBatchByID(ctx, item.BatchID)
	if err != nil {
		return nil, err
	}

	br, err := s.branchRepo.GetByID(ctx, batch.BranchID)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s (%s)", item.EmployeeName, item.EmploymentType))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Branch: %s", br.Name))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s to %s", item.Meta.PeriodStart, item.Meta.PeriodEnd))
	pdf.Ln(10)

	line := func(label string, amount decimal.Decimal) {
		pdf.Cell(100, 7, label)
		pdf.CellFormat(40, 7, amount.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.Ln(7)
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Earnings")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	line("Base pay", item.BasePay)
	line("Premium", item.PremiumPay)
	line("Overtime", item.OvertimePay)
	line("Gross", item.GrossPay)
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Deductions")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	line(fmt.Sprintf("Late penalty (%d min)", item.LateMinutes), item.LatePenalty)
	line(fmt.Sprintf("Undertime penalty (%d min)", item.UndertimeMinutes), item.UndertimePenalty)
	line("SSS", item.SSS)
	line("Pag-IBIG", item.PagIbig)
	line("PhilHealth", item.PhilHealth)
	line("Tax", item.TaxTotal)
	line("Total deductions", item.DeductionsTotal)
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 12)
	line("NET PAY", item.NetPay)

	if item.Issues != "" {
		pdf.Ln(5)
		pdf.SetFont("Helvetica", "I", 10)
		pdf.Cell(0, 7, fmt.Sprintf("Notes: %s", item.Issues))
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render payslip for item %s: %w", itemID, err)
	}

	return buf.Bytes(), nil
}
