package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/kinetix-inc/kinetix/internal/domain/catalog"
	"github.com/kinetix-inc/kinetix/internal/infrastructure/persistence/models"
	"github.com/kinetix-inc/kinetix/internal/shared/db"
	"github.com/kinetix-inc/kinetix/internal/shared/errors"
	"github.com/kinetix-inc/kinetix/internal/shared/logger"
)

type PackageRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewPackageRepository(db *gorm.DB, logger logger.Interface) catalog.Repository {
	return &PackageRepositoryImpl{
		db:     db,
		logger: logger,
	}
}

func (r *PackageRepositoryImpl) Create(ctx context.Context, pkg *catalog.Package) error {
	model := r.toModel(pkg)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create package", "error", err, "name", pkg.Name())
		return fmt.Errorf("failed to create package: %w", err)
	}

	if err := pkg.SetID(model.ID); err != nil {
		return err
	}

	r.logger.Infow("package created successfully", "package_id", model.ID, "name", pkg.Name())
	return nil
}

func (r *PackageRepositoryImpl) Update(ctx context.Context, pkg *catalog.Package) error {
	model := r.toModel(pkg)

	result := db.GetTxFromContext(ctx, r.db).Model(&models.PackageModel{}).
		Where("id = ?", pkg.ID()).
		Updates(map[string]interface{}{
			"name":          model.Name,
			"description":   model.Description,
			"duration_days": model.DurationDays,
			"price":         model.Price,
			"visit_quota":   model.VisitQuota,
			"vip":           model.VIP,
			"active":        model.Active,
			"updated_at":    model.UpdatedAt,
		})

	if result.Error != nil {
		r.logger.Errorw("failed to update package", "error", result.Error, "package_id", pkg.ID())
		return fmt.Errorf("failed to update package: %w", result.Error)
	}

	return nil
}

func (r *PackageRepositoryImpl) GetByID(ctx context.Context, id uint) (*catalog.Package, error) {
	var model models.PackageModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("package not found")
		}
		r.logger.Errorw("failed to get package by ID", "error", err, "package_id", id)
		return nil, fmt.Errorf("failed to get package: %w", err)
	}

	return r.toEntity(&model)
}

func (r *PackageRepositoryImpl) List(ctx context.Context, offset, limit int, activeOnly bool) ([]*catalog.Package, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.PackageModel{})
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count packages", "error", err)
		return nil, 0, fmt.Errorf("failed to count packages: %w", err)
	}

	var packageModels []*models.PackageModel
	if err := query.Offset(offset).Limit(limit).Order("created_at DESC").Find(&packageModels).Error; err != nil {
		r.logger.Errorw("failed to list packages", "error", err)
		return nil, 0, fmt.Errorf("failed to list packages: %w", err)
	}

	packages, err := r.toEntities(packageModels)
	if err != nil {
		return nil, 0, err
	}

	return packages, total, nil
}

func (r *PackageRepositoryImpl) Delete(ctx context.Context, id uint) error {
	result := db.GetTxFromContext(ctx, r.db).Delete(&models.PackageModel{}, id)
	if result.Error != nil {
		r.logger.Errorw("failed to delete package", "error", result.Error, "package_id", id)
		return fmt.Errorf("failed to delete package: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("package not found")
	}

	r.logger.Infow("package deleted successfully", "package_id", id)
	return nil
}

func (r *PackageRepositoryImpl) toEntity(model *models.PackageModel) (*catalog.Package, error) {
	return catalog.Reconstruct(
		model.ID,
		model.Name,
		model.Description,
		model.DurationDays,
		model.Price,
		model.VisitQuota,
		model.VIP,
		model.Active,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (r *PackageRepositoryImpl) toModel(pkg *catalog.Package) *models.PackageModel {
	return &models.PackageModel{
		ID:           pkg.ID(),
		Name:         pkg.Name(),
		Description:  pkg.Description(),
		DurationDays: pkg.DurationDays(),
		Price:        pkg.Price(),
		VisitQuota:   pkg.VisitQuota(),
		VIP:          pkg.IsVIP(),
		Active:       pkg.IsActive(),
		CreatedAt:    pkg.CreatedAt(),
		UpdatedAt:    pkg.UpdatedAt(),
	}
}

func (r *PackageRepositoryImpl) toEntities(packageModels []*models.PackageModel) ([]*catalog.Package, error) {
	packages := make([]*catalog.Package, 0, len(packageModels))
	for _, model := range packageModels {
		pkg, err := r.toEntity(model)
		if err != nil {
			return nil, fmt.Errorf("failed to convert package model ID %d: %w", model.ID, err)
		}
		packages = append(packages, pkg)
	}
	return packages, nil
}
