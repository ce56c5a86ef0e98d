package receipts

import (
	"context"
	"fmt"
	"path"
	"strings"

	"clubadmin/internal/config/connections/s3"
	"clubadmin/internal/payments"
	"clubadmin/internal/ports"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

// MaxSize is the receipt image ceiling. The old console rejected anything
// over 5 MB and the mobile clients rely on that limit.
const MaxSize = 5 << 20

// Validate fails fast on anything that is not an image or is oversized, so
// no network call is made for an upload that can never be accepted.
func Validate(upload ports.ReceiptUpload) error {
	if !strings.HasPrefix(upload.ContentType, "image/") {
		return &payments.ValidationError{Msg: fmt.Sprintf("receipt must be an image, got %q", upload.ContentType)}
	}
	if upload.Size > MaxSize {
		return &payments.ValidationError{Msg: fmt.Sprintf("receipt exceeds 5 MB limit (%d bytes)", upload.Size)}
	}
	return nil
}

// Store writes receipt images into the service bucket under a
// per-payment prefix.
type Store struct {
	s3 *s3.S3
}

func NewStore(s3c *s3.S3) *Store {
	return &Store{s3: s3c}
}

func (s *Store) Store(ctx context.Context, upload ports.ReceiptUpload) (string, error) {
	if err := Validate(upload); err != nil {
		return "", err
	}

	key := fmt.Sprintf("receipts/%s/%s%s", upload.PaymentID, uuid.NewString(), path.Ext(upload.Filename))

	size := upload.Size
	if size <= 0 {
		size = -1
	}

	_, err := s.s3.Client.PutObject(ctx, s.s3.Bucket, key, upload.Body, size,
		minio.PutObjectOptions{ContentType: upload.ContentType})
	if err != nil {
		return "", &payments.UploadError{Err: err}
	}

	return fmt.Sprintf("s3://%s/%s", s.s3.Bucket, key), nil
}
