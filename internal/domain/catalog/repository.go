package catalog

import "context"

// Repository persists packages.
type Repository interface {
	Create(ctx context.Context, pkg *Package) error
	Update(ctx context.Context, pkg *Package) error
	GetByID(ctx context.Context, id uint) (*Package, error)
	List(ctx context.Context, offset, limit int, activeOnly bool) ([]*Package, int64, error)
	Delete(ctx context.Context, id uint) error
}
