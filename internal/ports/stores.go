package ports

import (
	"context"
	"io"

	"clubadmin/internal/models"
)

type PaymentStore interface {
	ListAll(ctx context.Context) ([]models.Payment, error)
	GetByID(ctx context.Context, id string) (models.Payment, error)
	Create(ctx context.Context, p models.Payment) error
	UpdateState(ctx context.Context, p models.Payment) error
}

type MemberStore interface {
	ListAll(ctx context.Context) ([]models.Member, error)
	GetByID(ctx context.Context, id string) (models.Member, error)
}

// ReceiptUpload is the validated receipt image handed to the object store.
type ReceiptUpload struct {
	PaymentID   string
	MemberID    string
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// ReceiptStore durably stores a receipt image and returns the opaque
// reference recorded on the payment. Store must not be called until the
// upload has passed validation; it must complete before any state change
// that depends on the receipt is committed.
type ReceiptStore interface {
	Store(ctx context.Context, upload ReceiptUpload) (string, error)
}
