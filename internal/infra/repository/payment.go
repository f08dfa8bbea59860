package repository

import (
	"context"

	"cinebook/internal/domain/payment"
	"cinebook/internal/infra"
	"cinebook/internal/infra/db"
)

type PaymentRepository struct {
	db db.DBTX
}

func NewPaymentRepository(dbtx db.DBTX) *PaymentRepository {
	return &PaymentRepository{db: dbtx}
}

func (r *PaymentRepository) Create(ctx context.Context, p *payment.Payment) error {
	const query = `
		INSERT INTO payments (
			id, booking_id, amount_cents, last_four,
			expiry_month, expiry_year, status, transaction_id, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
	`

	_, err := r.db.Exec(ctx, query,
		p.ID(),
		p.BookingID(),
		p.Amount().Cents(),
		p.LastFour(),
		p.ExpiryMonth(),
		p.ExpiryYear(),
		p.Status().String(),
		p.TransactionID().String(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create payment", err)
	}

	return nil
}
