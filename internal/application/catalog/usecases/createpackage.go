package usecases

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/kinetix-inc/kinetix/internal/domain/catalog"
	"github.com/kinetix-inc/kinetix/internal/shared/logger"
)

type CreatePackageCommand struct {
	Name         string
	Description  string
	DurationDays int
	Price        decimal.Decimal
	VisitQuota   *int
	VIP          bool
}

type CreatePackageUseCase struct {
	packageRepo catalog.Repository
	logger      logger.Interface
}

func NewCreatePackageUseCase(packageRepo catalog.Repository, logger logger.Interface) *CreatePackageUseCase {
	return &CreatePackageUseCase{
		packageRepo: packageRepo,
		logger:      logger,
	}
}

func (uc *CreatePackageUseCase) Execute(ctx context.Context, cmd CreatePackageCommand) (*catalog.Package, error) {
	pkg, err := catalog.NewPackage(cmd.Name, cmd.Description, cmd.DurationDays, cmd.Price, cmd.VisitQuota, cmd.VIP)
	if err != nil {
		uc.logger.Warnw("invalid package input", "error", err, "name", cmd.Name)
		return nil, fmt.Errorf("invalid package: %w", err)
	}

	if err := uc.packageRepo.Create(ctx, pkg); err != nil {
		uc.logger.Errorw("failed to create package", "error", err, "name", cmd.Name)
		return nil, fmt.Errorf("failed to create package: %w", err)
	}

	uc.logger.Infow("package created", "package_id", pkg.ID(), "name", pkg.Name())
	return pkg, nil
}
