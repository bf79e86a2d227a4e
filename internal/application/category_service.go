package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/storecore/commerce/internal/domain/entity"
	domainsvc "github.com/storecore/commerce/internal/domain/service"
)

// CategoryService is the application boundary for categories.
type CategoryService struct {
	Domain *domainsvc.CategoryService
	Logger *logrus.Logger
}

func NewCategoryService(domain *domainsvc.CategoryService, logger *logrus.Logger) *CategoryService {
	return &CategoryService{Domain: domain, Logger: logger}
}

type CategoryView struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toCategoryView(c *entity.Category) *CategoryView {
	return &CategoryView{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Active:      c.Active,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func (s *CategoryService) Create(ctx context.Context, name, description string) (*CategoryView, error) {
	const op = "create category"
	c, err := s.Domain.Create(ctx, name, description)
	if err != nil {
		return nil, opErr(op, err)
	}
	return toCategoryView(c), nil
}

func (s *CategoryService) Update(ctx context.Context, id, name, description string) (*CategoryView, error) {
	const op = "update category"
	c, err := s.Domain.Update(ctx, id, name, description)
	if err != nil {
		return nil, opErr(op, err)
	}
	return toCategoryView(c), nil
}

func (s *CategoryService) Deactivate(ctx context.Context, id string) error {
	const op = "deactivate category"
	if err := s.Domain.Deactivate(ctx, id); err != nil {
		return opErr(op, err)
	}
	return nil
}

func (s *CategoryService) Activate(ctx context.Context, id string) error {
	const op = "activate category"
	if err := s.Domain.Activate(ctx, id); err != nil {
		return opErr(op, err)
	}
	return nil
}

func (s *CategoryService) Get(ctx context.Context, id string) (*CategoryView, error) {
	const op = "get category"
	c, err := s.Domain.FindByID(ctx, id)
	if err != nil {
		return nil, opErr(op, err)
	}
	return toCategoryView(c), nil
}

func (s *CategoryService) List(ctx context.Context) ([]*CategoryView, error) {
	const op = "list categories"
	list, err := s.Domain.List(ctx)
	if err != nil {
		return nil, opErr(op, err)
	}
	out := make([]*CategoryView, 0, len(list))
	for _, c := range list {
		out = append(out, toCategoryView(c))
	}
	return out, nil
}
