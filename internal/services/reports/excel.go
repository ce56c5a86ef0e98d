package reports

import (
	"fmt"

	"clubadmin/internal/models"
	"clubadmin/internal/payments"

	"github.com/xuri/excelize/v2"
)

const (
	paymentsSheet = "Payments"
	summarySheet  = "Summary"
)

var paymentHeader = []string{
	"Payment ID", "Member", "Period", "Amount", "State",
	"Method", "Paid on", "Receipt", "Notes",
}

// BuildPeriodReport renders the treasury workbook the club downloads each
// month: one sheet with the (already filtered) payment rows, one with the
// aggregate numbers. Member names are resolved from the supplied list;
// unknown members show their raw id so the row is still inspectable.
func BuildPeriodReport(period *models.Period, paymentList []models.Payment, members []models.Member, stats payments.Statistics) (*excelize.File, error) {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", paymentsSheet)

	nameByID := make(map[string]string, len(members))
	for _, m := range members {
		nameByID[m.ID] = m.FullName
	}

	for col, h := range paymentHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(paymentsSheet, cell, h); err != nil {
			return nil, err
		}
	}

	for i, p := range paymentList {
		name := nameByID[p.MemberID]
		if name == "" {
			name = p.MemberID
		}

		paidOn := ""
		if p.PaidOn != nil {
			paidOn = p.PaidOn.Format("2006-01-02")
		}

		amount, _ := p.Amount.Float64()
		row := []any{
			p.ID, name, p.Period.String(), amount, p.State.String(),
			p.PaymentMethod, paidOn, p.ReceiptRef, p.Notes,
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(paymentsSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	if err := writeSummary(f, period, stats); err != nil {
		return nil, err
	}

	return f, nil
}

func writeSummary(f *excelize.File, period *models.Period, stats payments.Statistics) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return err
	}

	scope := "all periods"
	if period != nil {
		scope = period.String()
	}

	totalAmount, _ := stats.TotalAmount.Float64()
	paidAmount, _ := stats.PaidAmount.Float64()
	outstanding, _ := stats.OutstandingAmount.Float64()

	rows := [][]any{
		{"Period", scope},
		{"Total payments", stats.Total},
		{"Total amount", totalAmount},
		{"Collected amount", paidAmount},
		{"Outstanding amount", outstanding},
		{"Collection rate %", stats.CollectionRate},
	}
	for _, s := range models.States {
		rows = append(rows, []any{
			fmt.Sprintf("%s count", s),
			stats.CountByState[s],
		})
		rows = append(rows, []any{
			fmt.Sprintf("%s %%", s),
			stats.PercentageByState[s],
		})
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
