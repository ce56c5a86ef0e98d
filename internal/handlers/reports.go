package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"clubadmin/internal/payments"
	"clubadmin/internal/services/reports"
)

// ExportReport handles GET /reports/payments.xlsx?period=M/YYYY and
// streams the treasury workbook.
func (h *Handlers) ExportReport(w http.ResponseWriter, r *http.Request) {
	period, err := parsePeriodParam(r)
	if err != nil {
		h.Error(w, err)
		return
	}

	paymentList, err := h.Svc.ListPayments(r.Context(), period, nil)
	if err != nil {
		h.Error(w, err)
		return
	}
	members, err := h.Svc.ListMembers(r.Context())
	if err != nil {
		h.Error(w, err)
		return
	}

	stats := payments.ComputeStatistics(paymentList)

	f, err := reports.BuildPeriodReport(period, paymentList, members, stats)
	if err != nil {
		h.Error(w, err)
		return
	}
	defer f.Close()

	name := "payments-all.xlsx"
	if period != nil {
		name = fmt.Sprintf("payments-%s.xlsx", strings.ReplaceAll(period.String(), "/", "-"))
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	if err := f.Write(w); err != nil {
		h.Logger.Printf("[HTTP][ERR] report write: %v", err)
	}
}
