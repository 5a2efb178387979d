package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kinetix-inc/kinetix/internal/domain/sequence"
	"github.com/kinetix-inc/kinetix/internal/infrastructure/persistence/models"
	"github.com/kinetix-inc/kinetix/internal/shared/db"
	"github.com/kinetix-inc/kinetix/internal/shared/logger"
)

type SequenceRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewSequenceRepository(db *gorm.DB, logger logger.Interface) sequence.Repository {
	return &SequenceRepositoryImpl{
		db:     db,
		logger: logger,
	}
}

// Next allocates the next value of a named counter. The counter row is
// locked for the remainder of the surrounding transaction, so concurrent
// allocations serialize and a rolled-back transaction releases its number
// slot without gaps in later allocations.
func (r *SequenceRepositoryImpl) Next(ctx context.Context, name string) (uint64, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var model models.SequenceModel
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("name = ?", name).
		First(&model).Error
	if err == gorm.ErrRecordNotFound {
		model = models.SequenceModel{Name: name, Value: 1, UpdatedAt: time.Now().UTC()}
		if err := tx.Create(&model).Error; err != nil {
			r.logger.Errorw("failed to create sequence", "error", err, "name", name)
			return 0, fmt.Errorf("failed to create sequence %s: %w", name, err)
		}
		return 1, nil
	}
	if err != nil {
		r.logger.Errorw("failed to lock sequence", "error", err, "name", name)
		return 0, fmt.Errorf("failed to lock sequence %s: %w", name, err)
	}

	next := model.Value + 1
	err = tx.Model(&models.SequenceModel{}).
		Where("name = ?", name).
		Updates(map[string]interface{}{
			"value":      next,
			"updated_at": time.Now().UTC(),
		}).Error
	if err != nil {
		r.logger.Errorw("failed to increment sequence", "error", err, "name", name)
		return 0, fmt.Errorf("failed to increment sequence %s: %w", name, err)
	}

	return next, nil
}
