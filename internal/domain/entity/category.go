package entity

import (
	"strings"
	"time"

	"github.com/storecore/commerce/internal/domain/errs"
)

const minCategoryNameLength = 3

// Category groups products. Inactive categories cannot receive new or
// moved products, but products already assigned keep their reference.
type Category struct {
	ID          string
	Name        string
	Description string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewCategory builds an active category, validating invariants at
// construction. ID and timestamps are stamped by the domain service.
func NewCategory(name, description string) (*Category, error) {
	name = strings.TrimSpace(name)
	if len(name) < minCategoryNameLength {
		return nil, errs.Newf(errs.Validation, "category name must be at least %d characters", minCategoryNameLength)
	}
	return &Category{
		Name:        name,
		Description: strings.TrimSpace(description),
		Active:      true,
	}, nil
}

// Rename validates and applies a new name.
func (c *Category) Rename(name string) error {
	name = strings.TrimSpace(name)
	if len(name) < minCategoryNameLength {
		return errs.Newf(errs.Validation, "category name must be at least %d characters", minCategoryNameLength)
	}
	c.Name = name
	return nil
}

func (c *Category) Deactivate() { c.Active = false }
func (c *Category) Activate()   { c.Active = true }
