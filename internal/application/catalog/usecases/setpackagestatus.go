package usecases

import (
	"context"
	"fmt"

	"github.com/kinetix-inc/kinetix/internal/domain/catalog"
	"github.com/kinetix-inc/kinetix/internal/shared/logger"
)

// SetPackageStatusUseCase activates or retires a package. Retired packages
// stay listed for history but cannot be sold.
type SetPackageStatusUseCase struct {
	packageRepo catalog.Repository
	logger      logger.Interface
}

func NewSetPackageStatusUseCase(packageRepo catalog.Repository, logger logger.Interface) *SetPackageStatusUseCase {
	return &SetPackageStatusUseCase{
		packageRepo: packageRepo,
		logger:      logger,
	}
}

func (uc *SetPackageStatusUseCase) Execute(ctx context.Context, packageID uint, active bool) (*catalog.Package, error) {
	pkg, err := uc.packageRepo.GetByID(ctx, packageID)
	if err != nil {
		uc.logger.Errorw("failed to get package", "error", err, "package_id", packageID)
		return nil, err
	}

	if active {
		pkg.Activate()
	} else {
		pkg.Deactivate()
	}

	if err := uc.packageRepo.Update(ctx, pkg); err != nil {
		uc.logger.Errorw("failed to update package status", "error", err, "package_id", packageID)
		return nil, fmt.Errorf("failed to update package: %w", err)
	}

	uc.logger.Infow("package status changed", "package_id", packageID, "active", active)
	return pkg, nil
}
