package repository

import (
	"context"

	"github.com/storecore/commerce/internal/domain/entity"
)

// UserRepository is the persistence contract for user accounts.
// GetByEmail matches against the normalized address.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	Update(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ListByRole(ctx context.Context, role string) ([]*entity.User, error)
	Count(ctx context.Context) (int64, error)
}
