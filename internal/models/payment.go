package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is a member's fee for one billing period.
//
// Invariants maintained by the transition logic:
//   - PaymentMethod and PaidOn are set if and only if State == paid.
//   - Amount is fixed at creation; transitions never touch it.
//   - ReceiptRef may be set in any state but only means anything while paid.
type Payment struct {
	ID            string          `json:"id"`
	MemberID      string          `json:"member_id"`
	Period        Period          `json:"period"`
	Amount        decimal.Decimal `json:"amount"`
	State         State           `json:"state"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	ReceiptRef    string          `json:"receipt_ref,omitempty"`
	PaidOn        *time.Time      `json:"paid_on,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
