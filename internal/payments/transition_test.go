package payments

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clubadmin/internal/models"
)

func pendingPayment() models.Payment {
	return models.Payment{
		ID:        "pay-1",
		MemberID:  "mem-1",
		Period:    models.Period{Month: 5, Year: 2025},
		Amount:    decimal.NewFromInt(1500),
		State:     models.StatePending,
		CreatedAt: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestPaidRequiresMethod(t *testing.T) {
	p := pendingPayment()

	got, err := ApplyTransition(p, models.StatePaid, TransitionOptions{})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "payment method required", verr.Msg)
	assert.Equal(t, p, got, "failed transition must leave the record unchanged")
}

func TestPaidSetsMethodAndDate(t *testing.T) {
	p := pendingPayment()

	got, err := ApplyTransition(p, models.StatePaid, TransitionOptions{Method: "cash"})

	require.NoError(t, err)
	assert.Equal(t, models.StatePaid, got.State)
	assert.Equal(t, "cash", got.PaymentMethod)
	require.NotNil(t, got.PaidOn)
	assert.WithinDuration(t, time.Now().UTC(), *got.PaidOn, time.Minute)
	assert.True(t, got.Amount.Equal(p.Amount), "transitions never touch the amount")
}

func TestPaidKeepsSuppliedReceipt(t *testing.T) {
	p := pendingPayment()

	got, err := ApplyTransition(p, models.StatePaid, TransitionOptions{
		Method:     "transfer",
		ReceiptRef: "s3://receipts/pay-1/abc",
	})

	require.NoError(t, err)
	assert.Equal(t, "s3://receipts/pay-1/abc", got.ReceiptRef)
}

func TestPaidKeepsAlreadyAttachedReceipt(t *testing.T) {
	p := pendingPayment()
	p.ReceiptRef = "s3://receipts/pay-1/old"

	got, err := ApplyTransition(p, models.StatePaid, TransitionOptions{Method: "cash"})

	require.NoError(t, err)
	assert.Equal(t, "s3://receipts/pay-1/old", got.ReceiptRef)
}

func TestLeavingPaidClearsDateAndMethod(t *testing.T) {
	p := pendingPayment()
	paid, err := ApplyTransition(p, models.StatePaid, TransitionOptions{Method: "cash"})
	require.NoError(t, err)

	for _, target := range []models.State{models.StatePending, models.StateOverdue, models.StateRejected} {
		got, err := ApplyTransition(paid, target, TransitionOptions{})
		require.NoError(t, err)
		assert.Nil(t, got.PaidOn, "target %s", target)
		assert.Empty(t, got.PaymentMethod, "target %s", target)
		assert.Equal(t, target, got.State)
	}
}

func TestRejectedCarriesNotes(t *testing.T) {
	p := pendingPayment()

	got, err := ApplyTransition(p, models.StateRejected, TransitionOptions{Notes: "duplicate charge"})

	require.NoError(t, err)
	assert.Equal(t, models.StateRejected, got.State)
	assert.Equal(t, "duplicate charge", got.Notes)
}

func TestNoOpTransitionIsIdempotent(t *testing.T) {
	p := pendingPayment()

	once, err := ApplyTransition(p, p.State, TransitionOptions{})
	require.NoError(t, err)
	assert.Equal(t, p, once)

	twice, err := ApplyTransition(once, once.State, TransitionOptions{})
	require.NoError(t, err)
	assert.Equal(t, once, twice)
}

func TestPaidToPaidKeepsOriginalDate(t *testing.T) {
	p := pendingPayment()
	paid, err := ApplyTransition(p, models.StatePaid, TransitionOptions{Method: "cash"})
	require.NoError(t, err)

	again, err := ApplyTransition(paid, models.StatePaid, TransitionOptions{})
	require.NoError(t, err)
	assert.Equal(t, paid.PaidOn, again.PaidOn)
	assert.Equal(t, paid.PaymentMethod, again.PaymentMethod)
}

func TestAnyStateMayReachAnyState(t *testing.T) {
	// The console has always offered the full dropdown; rejected -> paid
	// included.
	for _, from := range models.States {
		for _, to := range models.States {
			p := pendingPayment()
			p.State = from
			if from == models.StatePaid {
				now := time.Now().UTC()
				p.PaidOn = &now
				p.PaymentMethod = "cash"
			}

			opts := TransitionOptions{}
			if to == models.StatePaid {
				opts.Method = "transfer"
			}

			got, err := ApplyTransition(p, to, opts)
			require.NoError(t, err, "%s -> %s", from, to)
			assert.Equal(t, to, got.State)
		}
	}
}

func TestUnknownTargetState(t *testing.T) {
	p := pendingPayment()

	got, err := ApplyTransition(p, models.State("cancelled"), TransitionOptions{})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, p, got)
}

func TestTransitionDoesNotMutateInput(t *testing.T) {
	p := pendingPayment()
	before := p

	_, err := ApplyTransition(p, models.StatePaid, TransitionOptions{Method: "cash"})

	require.NoError(t, err)
	assert.Equal(t, before, p)
}
