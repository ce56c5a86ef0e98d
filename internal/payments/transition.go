package payments

import (
	"time"

	"clubadmin/internal/models"
)

// TransitionOptions carries the optional extras of a state change. Method is
// mandatory when the target state is paid; Notes is free-form in any state
// and conventionally holds the reason when rejecting.
type TransitionOptions struct {
	Method     string
	ReceiptRef string
	Notes      string
}

// ApplyTransition moves a payment to target and returns the resulting
// record. The input is never mutated; on error the caller's record stands
// unchanged, so a single transition is all-or-nothing.
//
// Any state may move to any other state, including back out of rejected.
// The legal-move question was deliberately left open by the club and the
// dropdown has always offered the full set, so no pair is forbidden here.
// What is enforced:
//
//   - entering paid requires a non-empty payment method, stamps PaidOn and
//     keeps whatever receipt reference is supplied or already attached;
//   - leaving paid clears PaidOn and the method;
//   - re-applying the current state with no extras is a no-op.
func ApplyTransition(p models.Payment, target models.State, opts TransitionOptions) (models.Payment, error) {
	if !target.Valid() {
		return p, &ValidationError{Msg: "unknown target state: " + target.String()}
	}

	// Entering paid needs a method on the resulting record. A payment
	// that is already paid keeps its stored method, which is what makes
	// the paid -> paid no-op legal.
	if target == models.StatePaid && p.PaymentMethod == "" && opts.Method == "" {
		return p, &ValidationError{Msg: "payment method required"}
	}

	out := p

	switch {
	case target == models.StatePaid:
		if opts.Method != "" {
			out.PaymentMethod = opts.Method
		}
		if opts.ReceiptRef != "" {
			out.ReceiptRef = opts.ReceiptRef
		}
		if p.State != models.StatePaid || out.PaidOn == nil {
			now := time.Now().UTC()
			out.PaidOn = &now
		}
	case p.State == models.StatePaid:
		out.PaidOn = nil
		out.PaymentMethod = ""
		if opts.ReceiptRef != "" {
			out.ReceiptRef = opts.ReceiptRef
		}
	default:
		if opts.ReceiptRef != "" {
			out.ReceiptRef = opts.ReceiptRef
		}
	}

	if opts.Notes != "" {
		out.Notes = opts.Notes
	}

	out.State = target
	if !equalExceptTimestamps(p, out) {
		out.UpdatedAt = time.Now().UTC()
	}
	return out, nil
}

func equalExceptTimestamps(a, b models.Payment) bool {
	return a.State == b.State &&
		a.PaymentMethod == b.PaymentMethod &&
		a.ReceiptRef == b.ReceiptRef &&
		a.Notes == b.Notes &&
		(a.PaidOn == nil) == (b.PaidOn == nil)
}
