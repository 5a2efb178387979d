package usecases

import (
	"context"
	"fmt"

	"github.com/kinetix-inc/kinetix/internal/domain/member"
	"github.com/kinetix-inc/kinetix/internal/shared/logger"
	"github.com/kinetix-inc/kinetix/internal/shared/utils"
)

type ListMembersQuery struct {
	Pagination utils.Pagination
	Search     string
}

type ListMembersResult struct {
	Members []*member.Member
	Total   int64
}

type ListMembersUseCase struct {
	memberRepo member.Repository
	logger     logger.Interface
}

func NewListMembersUseCase(memberRepo member.Repository, logger logger.Interface) *ListMembersUseCase {
	return &ListMembersUseCase{
		memberRepo: memberRepo,
		logger:     logger,
	}
}

func (uc *ListMembersUseCase) Execute(ctx context.Context, query ListMembersQuery) (*ListMembersResult, error) {
	members, total, err := uc.memberRepo.List(ctx, query.Pagination.Offset(), query.Pagination.PageSize, query.Search)
	if err != nil {
		uc.logger.Errorw("failed to list members", "error", err)
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	return &ListMembersResult{Members: members, Total: total}, nil
}
