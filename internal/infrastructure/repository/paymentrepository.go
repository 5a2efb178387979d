package repository

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/kinetix-inc/kinetix/internal/domain/billing"
	"github.com/kinetix-inc/kinetix/internal/infrastructure/persistence/models"
	"github.com/kinetix-inc/kinetix/internal/shared/db"
	"github.com/kinetix-inc/kinetix/internal/shared/logger"
)

type PaymentRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewPaymentRepository(db *gorm.DB, logger logger.Interface) billing.PaymentRepository {
	return &PaymentRepositoryImpl{
		db:     db,
		logger: logger,
	}
}

func (r *PaymentRepositoryImpl) Create(ctx context.Context, payment *billing.Payment) error {
	model := &models.PaymentModel{
		InvoiceID: payment.InvoiceID(),
		MemberID:  payment.MemberID(),
		Amount:    payment.Amount(),
		Method:    string(payment.Method()),
		Reference: payment.Reference(),
		PaidAt:    payment.PaidAt(),
		Notes:     payment.Notes(),
		CreatedAt: payment.CreatedAt(),
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create payment", "error", err, "invoice_id", payment.InvoiceID())
		return fmt.Errorf("failed to create payment: %w", err)
	}

	if err := payment.SetID(model.ID); err != nil {
		return err
	}

	r.logger.Infow("payment created successfully",
		"payment_id", model.ID,
		"invoice_id", payment.InvoiceID(),
		"amount", payment.Amount().String(),
	)
	return nil
}

func (r *PaymentRepositoryImpl) ListByInvoice(ctx context.Context, invoiceID uint) ([]*billing.Payment, error) {
	var paymentModels []*models.PaymentModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("invoice_id = ?", invoiceID).
		Order("paid_at ASC").
		Find(&paymentModels).Error
	if err != nil {
		r.logger.Errorw("failed to list payments", "error", err, "invoice_id", invoiceID)
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	payments := make([]*billing.Payment, 0, len(paymentModels))
	for _, model := range paymentModels {
		payment, err := billing.ReconstructPayment(
			model.ID,
			model.InvoiceID,
			model.MemberID,
			model.Amount,
			billing.PaymentMethod(model.Method),
			model.Reference,
			model.PaidAt,
			model.Notes,
			model.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to convert payment model ID %d: %w", model.ID, err)
		}
		payments = append(payments, payment)
	}

	return payments, nil
}

func (r *PaymentRepositoryImpl) SumByInvoice(ctx context.Context, invoiceID uint) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	err := db.GetTxFromContext(ctx, r.db).Model(&models.PaymentModel{}).
		Where("invoice_id = ?", invoiceID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum).Error
	if err != nil {
		r.logger.Errorw("failed to sum payments", "error", err, "invoice_id", invoiceID)
		return decimal.Zero, fmt.Errorf("failed to sum payments: %w", err)
	}

	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}
