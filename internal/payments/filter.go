package payments

import "clubadmin/internal/models"

// FilterByPeriod returns the payments whose canonical period equals period,
// preserving input order. A nil period means no filtering.
func FilterByPeriod(paymentList []models.Payment, period *models.Period) []models.Payment {
	if period == nil {
		return paymentList
	}

	out := make([]models.Payment, 0, len(paymentList))
	for _, p := range paymentList {
		if p.Period.Equal(*period) {
			out = append(out, p)
		}
	}
	return out
}

// FilterByState returns the payments in the given state, preserving input
// order. Composes with FilterByPeriod ahead of ComputeStatistics.
func FilterByState(paymentList []models.Payment, state models.State) []models.Payment {
	out := make([]models.Payment, 0, len(paymentList))
	for _, p := range paymentList {
		if p.State == state {
			out = append(out, p)
		}
	}
	return out
}
