package payments

import "fmt"

// ValidationError rejects an operation before any side effect happens: a
// transition missing its payment method, an oversized or non-image receipt.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// UploadError wraps a receipt-store failure. The transition the upload was
// part of must not have been applied when this is returned.
type UploadError struct {
	Err error
}

func (e *UploadError) Error() string { return "receipt upload failed: " + e.Err.Error() }
func (e *UploadError) Unwrap() error { return e.Err }

// NotFoundError reports a payment or member id absent from the collection
// the caller supplied.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string { return fmt.Sprintf("%s %q not found", e.Kind, e.ID) }

// IntegrityWarning is non-fatal: aggregation skips the offending payment,
// finishes with partial results and surfaces these for observability.
type IntegrityWarning struct {
	PaymentID string `json:"payment_id"`
	MemberID  string `json:"member_id"`
	Reason    string `json:"reason"`
}

func (w IntegrityWarning) String() string {
	return fmt.Sprintf("payment %s: %s (member %q)", w.PaymentID, w.Reason, w.MemberID)
}
