package usecases

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/kinetix-inc/kinetix/internal/domain/catalog"
	"github.com/kinetix-inc/kinetix/internal/shared/logger"
)

type UpdatePackageCommand struct {
	PackageID    uint
	Name         string
	Description  string
	DurationDays int
	Price        decimal.Decimal
	VisitQuota   *int
	VIP          bool
}

// UpdatePackageUseCase edits a catalog package. Existing subscriptions are
// unaffected because they hold their own snapshot of the terms.
type UpdatePackageUseCase struct {
	packageRepo catalog.Repository
	logger      logger.Interface
}

func NewUpdatePackageUseCase(packageRepo catalog.Repository, logger logger.Interface) *UpdatePackageUseCase {
	return &UpdatePackageUseCase{
		packageRepo: packageRepo,
		logger:      logger,
	}
}

func (uc *UpdatePackageUseCase) Execute(ctx context.Context, cmd UpdatePackageCommand) (*catalog.Package, error) {
	pkg, err := uc.packageRepo.GetByID(ctx, cmd.PackageID)
	if err != nil {
		uc.logger.Errorw("failed to get package", "error", err, "package_id", cmd.PackageID)
		return nil, err
	}

	if err := pkg.Update(cmd.Name, cmd.Description, cmd.DurationDays, cmd.Price, cmd.VisitQuota, cmd.VIP); err != nil {
		uc.logger.Warnw("invalid package update", "error", err, "package_id", cmd.PackageID)
		return nil, fmt.Errorf("invalid package: %w", err)
	}

	if err := uc.packageRepo.Update(ctx, pkg); err != nil {
		uc.logger.Errorw("failed to update package", "error", err, "package_id", cmd.PackageID)
		return nil, fmt.Errorf("failed to update package: %w", err)
	}

	uc.logger.Infow("package updated", "package_id", pkg.ID(), "name", pkg.Name())
	return pkg, nil
}
