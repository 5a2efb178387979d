package usecases

import (
	"context"
	"fmt"

	"github.com/kinetix-inc/kinetix/internal/domain/catalog"
	"github.com/kinetix-inc/kinetix/internal/shared/logger"
	"github.com/kinetix-inc/kinetix/internal/shared/utils"
)

type ListPackagesQuery struct {
	Pagination utils.Pagination
	ActiveOnly bool
}

type ListPackagesResult struct {
	Packages []*catalog.Package
	Total    int64
}

type ListPackagesUseCase struct {
	packageRepo catalog.Repository
	logger      logger.Interface
}

func NewListPackagesUseCase(packageRepo catalog.Repository, logger logger.Interface) *ListPackagesUseCase {
	return &ListPackagesUseCase{
		packageRepo: packageRepo,
		logger:      logger,
	}
}

func (uc *ListPackagesUseCase) Execute(ctx context.Context, query ListPackagesQuery) (*ListPackagesResult, error) {
	packages, total, err := uc.packageRepo.List(ctx, query.Pagination.Offset(), query.Pagination.PageSize, query.ActiveOnly)
	if err != nil {
		uc.logger.Errorw("failed to list packages", "error", err)
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}

	return &ListPackagesResult{Packages: packages, Total: total}, nil
}
