package repository

import (
	"context"

	"github.com/storecore/commerce/internal/domain/entity"
)

// CategoryRepository is the persistence contract for categories.
type CategoryRepository interface {
	Create(ctx context.Context, c *entity.Category) error
	Update(ctx context.Context, c *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	List(ctx context.Context) ([]*entity.Category, error)
	Count(ctx context.Context) (int64, error)
}
