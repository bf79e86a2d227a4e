package entity

import (
	"strings"
	"time"

	"github.com/storecore/commerce/internal/domain/errs"
	"github.com/storecore/commerce/internal/domain/valueobject"
)

// Product is the catalog aggregate root. Cross-aggregate rules
// (name uniqueness within the category, category activity) live in
// service.ProductService; everything checkable on the product alone is
// enforced here.
type Product struct {
	ID            string
	Name          string
	Description   string
	Price         valueobject.Money
	StockQuantity int
	CategoryID    string
	ImageURL      string
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewProduct builds an active product. The price must be strictly
// positive: a sellable product cannot be free even though Money itself
// allows zero.
func NewProduct(name, description string, price valueobject.Money, stockQuantity int, categoryID string) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errs.New(errs.Validation, "product name must not be empty")
	}
	if !price.IsPositive() {
		return nil, errs.Newf(errs.Validation, "product price must be positive, got %s", price)
	}
	if stockQuantity < 0 {
		return nil, errs.Newf(errs.Validation, "stock quantity must not be negative, got %d", stockQuantity)
	}
	if categoryID == "" {
		return nil, errs.New(errs.Validation, "product requires a category")
	}
	return &Product{
		Name:          name,
		Description:   strings.TrimSpace(description),
		Price:         price,
		StockQuantity: stockQuantity,
		CategoryID:    categoryID,
		Active:        true,
	}, nil
}

// ChangePrice enforces the strictly-positive price rule.
func (p *Product) ChangePrice(price valueobject.Money) error {
	if !price.IsPositive() {
		return errs.Newf(errs.Validation, "product price must be positive, got %s", price)
	}
	p.Price = price
	return nil
}

// AdjustStock applies a signed delta, failing when the result would go
// negative. The caller persists the change.
func (p *Product) AdjustStock(delta int) error {
	next := p.StockQuantity + delta
	if next < 0 {
		return errs.Newf(errs.Conflict, "insufficient stock: have %d, requested %d", p.StockQuantity, -delta)
	}
	p.StockQuantity = next
	return nil
}

// Deactivate takes the product off the catalog. Products with stock on
// hand cannot be deactivated.
func (p *Product) Deactivate() error {
	if p.StockQuantity > 0 {
		return errs.Newf(errs.Conflict, "cannot deactivate product with %d units in stock", p.StockQuantity)
	}
	p.Active = false
	return nil
}

// NameEquals compares product names case-insensitively, the same rule
// used for uniqueness within a category.
func (p *Product) NameEquals(name string) bool {
	return strings.EqualFold(p.Name, strings.TrimSpace(name))
}
