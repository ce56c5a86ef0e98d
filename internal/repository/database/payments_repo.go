package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clubadmin/internal/config/connections/postgres"
	"clubadmin/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type PaymentRepo struct {
	pg *postgres.Postgres
}

func NewPaymentRepo(pg *postgres.Postgres) *PaymentRepo {
	return &PaymentRepo{pg: pg}
}

const paymentColumns = `
	id, member_id, period_month, period_year, amount::text, state,
	COALESCE(payment_method, ''), COALESCE(receipt_ref, ''), paid_on,
	COALESCE(notes, ''), created_at, updated_at
`

const selectPaymentsQuery = `
	SELECT ` + paymentColumns + `
	FROM payments
	ORDER BY period_year, period_month, created_at, id
`

func (r *PaymentRepo) ListAll(ctx context.Context) ([]models.Payment, error) {
	rows, err := r.pg.Pool.Query(ctx, selectPaymentsQuery)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	return scanPayments(rows)
}

const selectPaymentByIDQuery = `
	SELECT ` + paymentColumns + `
	FROM payments
	WHERE id = $1::uuid
`

func (r *PaymentRepo) GetByID(ctx context.Context, id string) (models.Payment, error) {
	row := r.pg.Pool.QueryRow(ctx, selectPaymentByIDQuery, id)
	p, err := scanPayment(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Payment{}, ErrNotFound
	}
	if err != nil {
		return models.Payment{}, fmt.Errorf("get payment %s: %w", id, err)
	}
	return p, nil
}

const insertPaymentQuery = `
	INSERT INTO payments (
		id, member_id, period_month, period_year, amount, state,
		payment_method, receipt_ref, paid_on, notes, created_at, updated_at
	)
	VALUES (
		$1::uuid, $2::uuid, $3::int, $4::int, $5::numeric, $6::text,
		NULLIF($7, ''), NULLIF($8, ''), $9, NULLIF($10, ''), NOW(), NOW()
	)
`

func (r *PaymentRepo) Create(ctx context.Context, p models.Payment) error {
	_, err := r.pg.Pool.Exec(ctx, insertPaymentQuery,
		p.ID, p.MemberID, p.Period.Month, p.Period.Year,
		p.Amount.String(), string(p.State),
		p.PaymentMethod, p.ReceiptRef, p.PaidOn, p.Notes,
	)
	if err != nil {
		return fmt.Errorf("insert payment %s: %w", p.ID, err)
	}
	return nil
}

const updatePaymentStateQuery = `
	UPDATE payments
	SET state = $2::text,
	    payment_method = NULLIF($3, ''),
	    receipt_ref = NULLIF($4, ''),
	    paid_on = $5,
	    notes = NULLIF($6, ''),
	    updated_at = NOW()
	WHERE id = $1::uuid
`

// UpdateState persists the outcome of an applied transition. Amount and
// period are deliberately not in the statement; transitions never change
// them.
func (r *PaymentRepo) UpdateState(ctx context.Context, p models.Payment) error {
	tag, err := r.pg.Pool.Exec(ctx, updatePaymentStateQuery,
		p.ID, string(p.State), p.PaymentMethod, p.ReceiptRef, p.PaidOn, p.Notes,
	)
	if err != nil {
		return fmt.Errorf("update payment %s: %w", p.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanPayments(rows pgx.Rows) ([]models.Payment, error) {
	paymentList := make([]models.Payment, 0)
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		paymentList = append(paymentList, p)
	}
	return paymentList, rows.Err()
}

func scanPayment(row pgx.Row) (models.Payment, error) {
	var (
		p         models.Payment
		amountRaw string
		stateRaw  string
		paidOn    *time.Time
	)

	err := row.Scan(
		&p.ID, &p.MemberID, &p.Period.Month, &p.Period.Year,
		&amountRaw, &stateRaw,
		&p.PaymentMethod, &p.ReceiptRef, &paidOn,
		&p.Notes, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return models.Payment{}, err
	}

	p.Amount, err = decimal.NewFromString(amountRaw)
	if err != nil {
		return models.Payment{}, fmt.Errorf("amount %q: %w", amountRaw, err)
	}

	// Canonicalize at the boundary: rows written by the old console may
	// still carry legacy spellings.
	p.State, err = models.ParseState(stateRaw)
	if err != nil {
		return models.Payment{}, err
	}

	p.PaidOn = paidOn
	return p, nil
}
