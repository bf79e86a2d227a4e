package repository

import (
	"context"

	"github.com/storecore/commerce/internal/domain/entity"
)

// ProductRepository is the persistence contract the product domain
// service depends on. Implementations must return errs.NotFound-kind
// errors for missing ids and provide read-your-write consistency per
// call.
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	Update(ctx context.Context, p *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	ListByCategory(ctx context.Context, categoryID string) ([]*entity.Product, error)
	// ExistsByNameInCategory reports whether an active product with the
	// given name (case-insensitive) exists in the category, excluding
	// excludeID when non-empty.
	ExistsByNameInCategory(ctx context.Context, name, categoryID, excludeID string) (bool, error)
	// UpdateStock applies a compare-and-set on the stock quantity: the
	// write succeeds only if the stored quantity still equals expected.
	// A lost race must surface as a Conflict-kind error so the caller
	// can re-read and retry.
	UpdateStock(ctx context.Context, id string, expected, next int) error
	SearchByText(ctx context.Context, query string, limit int) ([]*entity.Product, error)
	Count(ctx context.Context) (int64, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
}
