package application

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/storecore/commerce/internal/domain/entity"
)

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, p *entity.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, p *entity.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	args := m.Called(ctx, id)
	if p, ok := args.Get(0).(*entity.Product); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductRepository) ListByCategory(ctx context.Context, categoryID string) ([]*entity.Product, error) {
	args := m.Called(ctx, categoryID)
	if ps, ok := args.Get(0).([]*entity.Product); ok {
		return ps, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductRepository) ExistsByNameInCategory(ctx context.Context, name, categoryID, excludeID string) (bool, error) {
	args := m.Called(ctx, name, categoryID, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) UpdateStock(ctx context.Context, id string, expected, next int) error {
	return m.Called(ctx, id, expected, next).Error(0)
}

func (m *MockProductRepository) SearchByText(ctx context.Context, query string, limit int) ([]*entity.Product, error) {
	args := m.Called(ctx, query, limit)
	if ps, ok := args.Get(0).([]*entity.Product); ok {
		return ps, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Create(ctx context.Context, c *entity.Category) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCategoryRepository) Update(ctx context.Context, c *entity.Category) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	args := m.Called(ctx, id)
	if c, ok := args.Get(0).(*entity.Category); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCategoryRepository) List(ctx context.Context) ([]*entity.Category, error) {
	args := m.Called(ctx)
	if cs, ok := args.Get(0).([]*entity.Category); ok {
		return cs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCategoryRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
