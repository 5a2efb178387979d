package usecases

import (
	"context"

	"github.com/kinetix-inc/kinetix/internal/domain/catalog"
	"github.com/kinetix-inc/kinetix/internal/shared/logger"
)

type GetPackageUseCase struct {
	packageRepo catalog.Repository
	logger      logger.Interface
}

func NewGetPackageUseCase(packageRepo catalog.Repository, logger logger.Interface) *GetPackageUseCase {
	return &GetPackageUseCase{
		packageRepo: packageRepo,
		logger:      logger,
	}
}

func (uc *GetPackageUseCase) Execute(ctx context.Context, packageID uint) (*catalog.Package, error) {
	pkg, err := uc.packageRepo.GetByID(ctx, packageID)
	if err != nil {
		uc.logger.Errorw("failed to get package", "error", err, "package_id", packageID)
		return nil, err
	}
	return pkg, nil
}
