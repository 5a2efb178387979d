package usecases

import (
	"context"
	"fmt"

	"github.com/kinetix-inc/kinetix/internal/domain/catalog"
	"github.com/kinetix-inc/kinetix/internal/shared/logger"
)

type DeletePackageUseCase struct {
	packageRepo catalog.Repository
	logger      logger.Interface
}

func NewDeletePackageUseCase(packageRepo catalog.Repository, logger logger.Interface) *DeletePackageUseCase {
	return &DeletePackageUseCase{
		packageRepo: packageRepo,
		logger:      logger,
	}
}

func (uc *DeletePackageUseCase) Execute(ctx context.Context, packageID uint) error {
	if _, err := uc.packageRepo.GetByID(ctx, packageID); err != nil {
		uc.logger.Errorw("failed to get package", "error", err, "package_id", packageID)
		return err
	}

	if err := uc.packageRepo.Delete(ctx, packageID); err != nil {
		uc.logger.Errorw("failed to delete package", "error", err, "package_id", packageID)
		return fmt.Errorf("failed to delete package: %w", err)
	}

	uc.logger.Infow("package deleted", "package_id", packageID)
	return nil
}
