package payments

import (
	"github.com/shopspring/decimal"

	"clubadmin/internal/models"
)

// MemberRollup is the per-member tally of payments by state. Derived on
// demand from whatever collection the caller supplies, never cached.
type MemberRollup struct {
	Member   models.Member        `json:"member"`
	Total    int                  `json:"total"`
	ByState  map[models.State]int `json:"by_state"`
	Payments []models.Payment     `json:"payments,omitempty"`
}

// Statistics is the global (or period-filtered, the caller filters first)
// snapshot fed to the treasury dashboard.
type Statistics struct {
	Total             int                      `json:"total"`
	CountByState      map[models.State]int     `json:"count_by_state"`
	PercentageByState map[models.State]float64 `json:"percentage_by_state"`
	TotalAmount       decimal.Decimal          `json:"total_amount"`
	PaidAmount        decimal.Decimal          `json:"paid_amount"`
	OutstandingAmount decimal.Decimal          `json:"outstanding_amount"`
	CollectionRate    float64                  `json:"collection_rate"`
}

// RollupByMember groups payments by member and tallies counts per state.
// A payment whose member id matches nothing in members is excluded from the
// result and reported as an integrity warning; one bad row must not sink
// the whole report.
func RollupByMember(paymentList []models.Payment, members []models.Member) (map[string]*MemberRollup, []IntegrityWarning) {
	byID := make(map[string]models.Member, len(members))
	for _, m := range members {
		byID[m.ID] = m
	}

	rollups := make(map[string]*MemberRollup, len(members))
	var warnings []IntegrityWarning

	for _, p := range paymentList {
		member, ok := byID[p.MemberID]
		if !ok {
			warnings = append(warnings, IntegrityWarning{
				PaymentID: p.ID,
				MemberID:  p.MemberID,
				Reason:    "references unknown member",
			})
			continue
		}

		r := rollups[p.MemberID]
		if r == nil {
			r = &MemberRollup{Member: member, ByState: newStateCounts()}
			rollups[p.MemberID] = r
		}
		r.Total++
		r.ByState[p.State]++
		r.Payments = append(r.Payments, p)
	}

	return rollups, warnings
}

// ComputeStatistics rolls a payment list up into dashboard numbers. All
// percentages are defined as 0 for an empty list; an empty month must
// render as zeros, not crash the dashboard.
func ComputeStatistics(paymentList []models.Payment) Statistics {
	stats := Statistics{
		Total:             len(paymentList),
		CountByState:      newStateCounts(),
		PercentageByState: make(map[models.State]float64, len(models.States)),
		TotalAmount:       decimal.Zero,
		PaidAmount:        decimal.Zero,
		OutstandingAmount: decimal.Zero,
	}

	for _, p := range paymentList {
		stats.CountByState[p.State]++
		stats.TotalAmount = stats.TotalAmount.Add(p.Amount)
		if p.State == models.StatePaid {
			stats.PaidAmount = stats.PaidAmount.Add(p.Amount)
		} else {
			stats.OutstandingAmount = stats.OutstandingAmount.Add(p.Amount)
		}
	}

	for _, s := range models.States {
		stats.PercentageByState[s] = percentage(stats.CountByState[s], stats.Total)
	}

	if stats.TotalAmount.IsPositive() {
		rate, _ := stats.PaidAmount.Div(stats.TotalAmount).Mul(decimal.NewFromInt(100)).Float64()
		stats.CollectionRate = rate
	}

	return stats
}

func newStateCounts() map[models.State]int {
	counts := make(map[models.State]int, len(models.States))
	for _, s := range models.States {
		counts[s] = 0
	}
	return counts
}

func percentage(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total) * 100
}
