package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/kinetix-inc/kinetix/internal/domain/member"
	"github.com/kinetix-inc/kinetix/internal/infrastructure/persistence/models"
	"github.com/kinetix-inc/kinetix/internal/shared/db"
	"github.com/kinetix-inc/kinetix/internal/shared/errors"
	"github.com/kinetix-inc/kinetix/internal/shared/logger"
)

type MemberRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewMemberRepository(db *gorm.DB, logger logger.Interface) member.Repository {
	return &MemberRepositoryImpl{
		db:     db,
		logger: logger,
	}
}

func (r *MemberRepositoryImpl) Create(ctx context.Context, m *member.Member) error {
	model := r.toModel(m)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create member", "error", err, "member_number", m.MemberNumber())
		return fmt.Errorf("failed to create member: %w", err)
	}

	if err := m.SetID(model.ID); err != nil {
		return err
	}

	r.logger.Infow("member created successfully", "member_id", model.ID, "member_number", m.MemberNumber())
	return nil
}

func (r *MemberRepositoryImpl) Update(ctx context.Context, m *member.Member) error {
	model := r.toModel(m)

	result := db.GetTxFromContext(ctx, r.db).Model(&models.MemberModel{}).
		Where("id = ?", m.ID()).
		Updates(map[string]interface{}{
			"name":       model.Name,
			"email":      model.Email,
			"phone":      model.Phone,
			"status":     model.Status,
			"notes":      model.Notes,
			"updated_at": model.UpdatedAt,
		})

	if result.Error != nil {
		r.logger.Errorw("failed to update member", "error", result.Error, "member_id", m.ID())
		return fmt.Errorf("failed to update member: %w", result.Error)
	}

	return nil
}

func (r *MemberRepositoryImpl) GetByID(ctx context.Context, id uint) (*member.Member, error) {
	var model models.MemberModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("member not found")
		}
		r.logger.Errorw("failed to get member by ID", "error", err, "member_id", id)
		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	return r.toEntity(&model)
}

func (r *MemberRepositoryImpl) GetByNumber(ctx context.Context, memberNumber string) (*member.Member, error) {
	var model models.MemberModel
	if err := db.GetTxFromContext(ctx, r.db).Where("member_number = ?", memberNumber).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("member not found")
		}
		r.logger.Errorw("failed to get member by number", "error", err, "member_number", memberNumber)
		return nil, fmt.Errorf("failed to get member by number: %w", err)
	}

	return r.toEntity(&model)
}

func (r *MemberRepositoryImpl) List(ctx context.Context, offset, limit int, search string) ([]*member.Member, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.MemberModel{})
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name LIKE ? OR email LIKE ? OR member_number LIKE ?", pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count members", "error", err)
		return nil, 0, fmt.Errorf("failed to count members: %w", err)
	}

	var memberModels []*models.MemberModel
	if err := query.Offset(offset).Limit(limit).Order("created_at DESC").Find(&memberModels).Error; err != nil {
		r.logger.Errorw("failed to list members", "error", err)
		return nil, 0, fmt.Errorf("failed to list members: %w", err)
	}

	members := make([]*member.Member, 0, len(memberModels))
	for _, model := range memberModels {
		m, err := r.toEntity(model)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to convert member model ID %d: %w", model.ID, err)
		}
		members = append(members, m)
	}

	return members, total, nil
}

func (r *MemberRepositoryImpl) ListContacts(ctx context.Context, activeOnly bool) ([]member.Contact, error) {
	query := r.db.WithContext(ctx).Model(&models.MemberModel{}).Where("email <> ''")
	if activeOnly {
		query = query.Where("status = ?", string(member.StatusActive))
	}

	var rows []struct {
		ID    uint
		Name  string
		Email string
	}
	if err := query.Select("id", "name", "email").Order("id ASC").Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list member contacts", "error", err)
		return nil, fmt.Errorf("failed to list member contacts: %w", err)
	}

	contacts := make([]member.Contact, 0, len(rows))
	for _, row := range rows {
		contacts = append(contacts, member.Contact{
			MemberID: row.ID,
			Name:     row.Name,
			Email:    row.Email,
		})
	}

	return contacts, nil
}

func (r *MemberRepositoryImpl) Delete(ctx context.Context, id uint) error {
	result := db.GetTxFromContext(ctx, r.db).Delete(&models.MemberModel{}, id)
	if result.Error != nil {
		r.logger.Errorw("failed to delete member", "error", result.Error, "member_id", id)
		return fmt.Errorf("failed to delete member: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("member not found")
	}

	r.logger.Infow("member deleted successfully", "member_id", id)
	return nil
}

func (r *MemberRepositoryImpl) toEntity(model *models.MemberModel) (*member.Member, error) {
	return member.Reconstruct(
		model.ID,
		model.MemberNumber,
		model.Name,
		model.Email,
		model.Phone,
		member.Status(model.Status),
		model.Notes,
		model.JoinedAt,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (r *MemberRepositoryImpl) toModel(m *member.Member) *models.MemberModel {
	return &models.MemberModel{
		ID:           m.ID(),
		MemberNumber: m.MemberNumber(),
		Name:         m.Name(),
		Email:        m.Email(),
		Phone:        m.Phone(),
		Status:       string(m.Status()),
		Notes:        m.Notes(),
		JoinedAt:     m.JoinedAt(),
		CreatedAt:    m.CreatedAt(),
		UpdatedAt:    m.UpdatedAt(),
	}
}
