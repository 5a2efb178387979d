package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/kinetix-inc/kinetix/internal/domain/billing"
	"github.com/kinetix-inc/kinetix/internal/infrastructure/persistence/models"
	"github.com/kinetix-inc/kinetix/internal/shared/constants"
	"github.com/kinetix-inc/kinetix/internal/shared/db"
	"github.com/kinetix-inc/kinetix/internal/shared/errors"
	"github.com/kinetix-inc/kinetix/internal/shared/logger"
)

type InvoiceRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewInvoiceRepository(db *gorm.DB, logger logger.Interface) billing.InvoiceRepository {
	return &InvoiceRepositoryImpl{
		db:     db,
		logger: logger,
	}
}

func (r *InvoiceRepositoryImpl) Create(ctx context.Context, invoice *billing.Invoice) error {
	model := r.toModel(invoice)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create invoice", "error", err, "invoice_number", invoice.InvoiceNumber())
		return fmt.Errorf("failed to create invoice: %w", err)
	}

	if err := invoice.SetID(model.ID); err != nil {
		return err
	}

	r.logger.Infow("invoice created successfully",
		"invoice_id", model.ID,
		"invoice_number", invoice.InvoiceNumber(),
		"total", invoice.Total().String(),
	)
	return nil
}

func (r *InvoiceRepositoryImpl) Update(ctx context.Context, invoice *billing.Invoice) error {
	model := r.toModel(invoice)

	result := db.GetTxFromContext(ctx, r.db).Model(&models.InvoiceModel{}).
		Where("id = ?", invoice.ID()).
		Updates(map[string]interface{}{
			"status":     model.Status,
			"notes":      model.Notes,
			"updated_at": model.UpdatedAt,
		})

	if result.Error != nil {
		r.logger.Errorw("failed to update invoice", "error", result.Error, "invoice_id", invoice.ID())
		return fmt.Errorf("failed to update invoice: %w", result.Error)
	}

	return nil
}

func (r *InvoiceRepositoryImpl) GetByID(ctx context.Context, id uint) (*billing.Invoice, error) {
	var model models.InvoiceModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("invoice not found")
		}
		r.logger.Errorw("failed to get invoice by ID", "error", err, "invoice_id", id)
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}

	return r.toEntity(&model)
}

func (r *InvoiceRepositoryImpl) GetByNumber(ctx context.Context, invoiceNumber string) (*billing.Invoice, error) {
	var model models.InvoiceModel
	if err := db.GetTxFromContext(ctx, r.db).Where("invoice_number = ?", invoiceNumber).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("invoice not found")
		}
		r.logger.Errorw("failed to get invoice by number", "error", err, "invoice_number", invoiceNumber)
		return nil, fmt.Errorf("failed to get invoice by number: %w", err)
	}

	return r.toEntity(&model)
}

func (r *InvoiceRepositoryImpl) List(ctx context.Context, offset, limit int, filter billing.InvoiceListFilter) ([]*billing.Invoice, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.InvoiceModel{})

	if filter.MemberID != nil {
		query = query.Where("member_id = ?", *filter.MemberID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count invoices", "error", err)
		return nil, 0, fmt.Errorf("failed to count invoices: %w", err)
	}

	var invoiceModels []*models.InvoiceModel
	if err := query.Offset(offset).Limit(limit).Order("created_at DESC").Find(&invoiceModels).Error; err != nil {
		r.logger.Errorw("failed to list invoices", "error", err)
		return nil, 0, fmt.Errorf("failed to list invoices: %w", err)
	}

	invoices := make([]*billing.Invoice, 0, len(invoiceModels))
	for _, model := range invoiceModels {
		invoice, err := r.toEntity(model)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to convert invoice model ID %d: %w", model.ID, err)
		}
		invoices = append(invoices, invoice)
	}

	return invoices, total, nil
}

func (r *InvoiceRepositoryImpl) toEntity(model *models.InvoiceModel) (*billing.Invoice, error) {
	var dueDate *time.Time
	if model.DueDate != nil {
		t := time.Time(*model.DueDate)
		dueDate = &t
	}

	return billing.ReconstructInvoice(billing.ReconstructInvoiceParams{
		ID:             model.ID,
		InvoiceNumber:  model.InvoiceNumber,
		MemberID:       model.MemberID,
		SubscriptionID: model.SubscriptionID,
		Subtotal:       model.Subtotal,
		DiscountAmount: model.DiscountAmount,
		TaxAmount:      model.TaxAmount,
		Total:          model.Total,
		CouponCode:     model.CouponCode,
		Status:         billing.InvoiceStatus(model.Status),
		IssuedAt:       model.IssuedAt,
		DueDate:        dueDate,
		Notes:          model.Notes,
		CreatedAt:      model.CreatedAt,
		UpdatedAt:      model.UpdatedAt,
	})
}

func (r *InvoiceRepositoryImpl) toModel(invoice *billing.Invoice) *models.InvoiceModel {
	var dueDate *datatypes.Date
	if invoice.DueDate() != nil {
		d := datatypes.Date(*invoice.DueDate())
		dueDate = &d
	}

	return &models.InvoiceModel{
		ID:             invoice.ID(),
		InvoiceNumber:  invoice.InvoiceNumber(),
		MemberID:       invoice.MemberID(),
		SubscriptionID: invoice.SubscriptionID(),
		Subtotal:       invoice.Subtotal(),
		DiscountAmount: invoice.DiscountAmount(),
		TaxAmount:      invoice.TaxAmount(),
		Total:          invoice.Total(),
		Currency:       constants.DefaultCurrency,
		CouponCode:     invoice.CouponCode(),
		Status:         string(invoice.Status()),
		IssuedAt:       invoice.IssuedAt(),
		DueDate:        dueDate,
		Notes:          invoice.Notes(),
		CreatedAt:      invoice.CreatedAt(),
		UpdatedAt:      invoice.UpdatedAt(),
	}
}
