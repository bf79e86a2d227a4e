package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/storecore/commerce/internal/domain/entity"
	"github.com/storecore/commerce/internal/domain/repository"
)

// CategoryService manages the category lifecycle. Deactivation does
// not cascade to products; it only blocks new assignments.
type CategoryService struct {
	categories repository.CategoryRepository
	logger     *logrus.Logger
}

func NewCategoryService(categories repository.CategoryRepository, logger *logrus.Logger) *CategoryService {
	return &CategoryService{categories: categories, logger: logger}
}

func (s *CategoryService) Create(ctx context.Context, name, description string) (*entity.Category, error) {
	c, err := entity.NewCategory(name, description)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	c.ID = uuid.NewString()
	c.CreatedAt = now
	c.UpdatedAt = now
	if err := s.categories.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CategoryService) Update(ctx context.Context, id, name, description string) (*entity.Category, error) {
	c, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := c.Rename(name); err != nil {
		return nil, err
	}
	c.Description = description
	c.UpdatedAt = time.Now().UTC()
	if err := s.categories.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CategoryService) Deactivate(ctx context.Context, id string) error {
	c, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return err
	}
	c.Deactivate()
	c.UpdatedAt = time.Now().UTC()
	return s.categories.Update(ctx, c)
}

func (s *CategoryService) Activate(ctx context.Context, id string) error {
	c, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return err
	}
	c.Activate()
	c.UpdatedAt = time.Now().UTC()
	return s.categories.Update(ctx, c)
}

func (s *CategoryService) FindByID(ctx context.Context, id string) (*entity.Category, error) {
	return s.categories.GetByID(ctx, id)
}

func (s *CategoryService) List(ctx context.Context) ([]*entity.Category, error) {
	return s.categories.List(ctx)
}
