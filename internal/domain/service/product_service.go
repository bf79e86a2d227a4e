package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/storecore/commerce/internal/domain/entity"
	"github.com/storecore/commerce/internal/domain/errs"
	"github.com/storecore/commerce/internal/domain/repository"
	"github.com/storecore/commerce/internal/domain/valueobject"
)

// largeAdjustmentThreshold marks stock movements worth flagging in the
// logs. Crossing it does not change behavior.
const largeAdjustmentThreshold = 100

// stockRetryAttempts bounds the re-read-and-retry loop when the
// optimistic stock write loses a race.
const stockRetryAttempts = 3

// ProductService enforces the catalog rules that span aggregates:
// name uniqueness within a category and the active-category
// constraint. Single-aggregate invariants live on entity.Product.
type ProductService struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	logger     *logrus.Logger
}

func NewProductService(products repository.ProductRepository, categories repository.CategoryRepository, logger *logrus.Logger) *ProductService {
	return &ProductService{products: products, categories: categories, logger: logger}
}

// Create validates and persists a new product. All rule checks run
// before the persistence call, so a failed create never writes.
func (s *ProductService) Create(ctx context.Context, name, description string, price valueobject.Money, stockQuantity int, categoryID string) (*entity.Product, error) {
	p, err := entity.NewProduct(name, description, price, stockQuantity, categoryID)
	if err != nil {
		return nil, err
	}
	if err := s.requireActiveCategory(ctx, p.CategoryID); err != nil {
		return nil, err
	}
	taken, err := s.products.ExistsByNameInCategory(ctx, p.Name, p.CategoryID, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, errs.Newf(errs.Validation, "product name %q already exists in category", p.Name)
	}

	now := time.Now().UTC()
	p.ID = uuid.NewString()
	p.CreatedAt = now
	p.UpdatedAt = now
	if err := s.products.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Update re-validates every basic rule and re-checks name uniqueness
// only when the name actually changed. The original id and createdAt
// are preserved.
func (s *ProductService) Update(ctx context.Context, id, name, description string, price valueobject.Money, stockQuantity int) (*entity.Product, error) {
	existing, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	updated, err := entity.NewProduct(name, description, price, stockQuantity, existing.CategoryID)
	if err != nil {
		return nil, err
	}
	if !existing.NameEquals(updated.Name) {
		taken, err := s.products.ExistsByNameInCategory(ctx, updated.Name, existing.CategoryID, existing.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, errs.Newf(errs.Validation, "product name %q already exists in category", updated.Name)
		}
	}

	existing.Name = updated.Name
	existing.Description = updated.Description
	existing.Price = updated.Price
	existing.StockQuantity = updated.StockQuantity
	existing.UpdatedAt = time.Now().UTC()
	if err := s.products.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// AdjustStock applies a signed delta to the stock quantity. The write
// is a compare-and-set against the quantity that was read, so two
// concurrent adjustments cannot race past the non-negative check; a
// lost race is re-read and retried a bounded number of times.
func (s *ProductService) AdjustStock(ctx context.Context, id string, delta int) (*entity.Product, error) {
	if delta > largeAdjustmentThreshold || delta < -largeAdjustmentThreshold {
		s.logger.WithFields(logrus.Fields{
			"product_id": id,
			"delta":      delta,
		}).Warn("large stock adjustment")
	}

	var lastErr error
	for attempt := 0; attempt < stockRetryAttempts; attempt++ {
		p, err := s.load(ctx, id)
		if err != nil {
			return nil, err
		}
		expected := p.StockQuantity
		if err := p.AdjustStock(delta); err != nil {
			return nil, err
		}
		err = s.products.UpdateStock(ctx, id, expected, p.StockQuantity)
		if err == nil {
			p.UpdatedAt = time.Now().UTC()
			return p, nil
		}
		if !errs.IsConflict(err) {
			return nil, err
		}
		lastErr = err
		s.logger.WithFields(logrus.Fields{
			"product_id": id,
			"attempt":    attempt + 1,
		}).Debug("stock adjustment lost optimistic race, retrying")
	}
	return nil, errs.Wrap(errs.Conflict, "stock adjustment kept losing concurrent updates", lastErr)
}

// ChangeCategory moves the product to another active category. The
// uniqueness check runs against the target category, excluding the
// product's own id since the product itself is the one moving.
func (s *ProductService) ChangeCategory(ctx context.Context, id, newCategoryID string) (*entity.Product, error) {
	p, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.requireActiveCategory(ctx, newCategoryID); err != nil {
		return nil, err
	}
	taken, err := s.products.ExistsByNameInCategory(ctx, p.Name, newCategoryID, p.ID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, errs.Newf(errs.Validation, "product name %q already exists in target category", p.Name)
	}

	p.CategoryID = newCategoryID
	p.UpdatedAt = time.Now().UTC()
	if err := s.products.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// UpdatePrice replaces the price, enforcing the strictly-positive rule.
func (s *ProductService) UpdatePrice(ctx context.Context, id string, price valueobject.Money) (*entity.Product, error) {
	p, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := p.ChangePrice(price); err != nil {
		return nil, err
	}
	p.UpdatedAt = time.Now().UTC()
	if err := s.products.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Deactivate takes the product off the catalog. Only products with
// zero stock can be deactivated; afterwards FindByID no longer
// returns them.
func (s *ProductService) Deactivate(ctx context.Context, id string) error {
	p, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := p.Deactivate(); err != nil {
		return err
	}
	p.UpdatedAt = time.Now().UTC()
	return s.products.Update(ctx, p)
}

// SetImageURL records the uploaded product image location.
func (s *ProductService) SetImageURL(ctx context.Context, id, url string) (*entity.Product, error) {
	p, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	p.ImageURL = url
	p.UpdatedAt = time.Now().UTC()
	if err := s.products.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// FindByID returns the product unchanged, or a not-found error.
// Deactivated products are reported as not found.
func (s *ProductService) FindByID(ctx context.Context, id string) (*entity.Product, error) {
	return s.load(ctx, id)
}

// ListByCategory returns the active products of a category.
func (s *ProductService) ListByCategory(ctx context.Context, categoryID string) ([]*entity.Product, error) {
	return s.products.ListByCategory(ctx, categoryID)
}

// SearchByText runs the repository's text search over active products.
func (s *ProductService) SearchByText(ctx context.Context, query string, limit int) ([]*entity.Product, error) {
	return s.products.SearchByText(ctx, query, limit)
}

func (s *ProductService) load(ctx context.Context, id string) (*entity.Product, error) {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.Active {
		return nil, errs.Newf(errs.NotFound, "product %s not found", id)
	}
	return p, nil
}

func (s *ProductService) requireActiveCategory(ctx context.Context, categoryID string) error {
	c, err := s.categories.GetByID(ctx, categoryID)
	if err != nil {
		return err
	}
	if !c.Active {
		return errs.Newf(errs.Validation, "category %s is not active", categoryID)
	}
	return nil
}
