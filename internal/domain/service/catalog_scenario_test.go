package service

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storecore/commerce/internal/domain/entity"
	"github.com/storecore/commerce/internal/domain/errs"
	"github.com/storecore/commerce/internal/domain/valueobject"
)

// In-memory repositories backing the end-to-end catalog scenario.
// They implement the same contracts the postgres adapters do,
// including the compare-and-set stock write.

type memProductRepo struct {
	mu       sync.Mutex
	products map[string]entity.Product
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{products: make(map[string]entity.Product)}
}

func (r *memProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[p.ID] = *p
	return nil
}

func (r *memProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[p.ID]; !ok {
		return errs.Newf(errs.NotFound, "product %s not found", p.ID)
	}
	r.products[p.ID] = *p
	return nil
}

func (r *memProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, errs.Newf(errs.NotFound, "product %s not found", id)
	}
	cp := p
	return &cp, nil
}

func (r *memProductRepo) ListByCategory(_ context.Context, categoryID string) ([]*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Product
	for _, p := range r.products {
		if p.CategoryID == categoryID && p.Active {
			cp := p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memProductRepo) ExistsByNameInCategory(_ context.Context, name, categoryID, excludeID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.Active && p.CategoryID == categoryID && p.ID != excludeID && strings.EqualFold(p.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (r *memProductRepo) UpdateStock(_ context.Context, id string, expected, next int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return errs.Newf(errs.NotFound, "product %s not found", id)
	}
	if p.StockQuantity != expected {
		return errs.New(errs.Conflict, "stock changed concurrently")
	}
	p.StockQuantity = next
	r.products[id] = p
	return nil
}

func (r *memProductRepo) SearchByText(_ context.Context, query string, limit int) ([]*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q := strings.ToLower(query)
	var out []*entity.Product
	for _, p := range r.products {
		if !p.Active {
			continue
		}
		if strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.Description), q) {
			cp := p
			out = append(out, &cp)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (r *memProductRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.products)), nil
}

func (r *memProductRepo) ExistsByID(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.products[id]
	return ok, nil
}

type memCategoryRepo struct {
	mu         sync.Mutex
	categories map[string]entity.Category
}

func newMemCategoryRepo() *memCategoryRepo {
	return &memCategoryRepo{categories: make(map[string]entity.Category)}
}

func (r *memCategoryRepo) Create(_ context.Context, c *entity.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.categories[c.ID] = *c
	return nil
}

func (r *memCategoryRepo) Update(_ context.Context, c *entity.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.categories[c.ID]; !ok {
		return errs.Newf(errs.NotFound, "category %s not found", c.ID)
	}
	r.categories[c.ID] = *c
	return nil
}

func (r *memCategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.categories[id]
	if !ok {
		return nil, errs.Newf(errs.NotFound, "category %s not found", id)
	}
	cp := c
	return &cp, nil
}

func (r *memCategoryRepo) List(_ context.Context) ([]*entity.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Category, 0, len(r.categories))
	for _, c := range r.categories {
		cp := c
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memCategoryRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.categories)), nil
}

// TestCatalogScenario walks the full product lifecycle against
// in-memory repositories: create a category and a product, collide on
// a case-different duplicate name, drain the stock, and deactivate.
func TestCatalogScenario(t *testing.T) {
	ctx := context.Background()
	products := newMemProductRepo()
	categories := newMemCategoryRepo()
	logger := newTestLogger()
	catalogSvc := NewCategoryService(categories, logger)
	productSvc := NewProductService(products, categories, logger)

	electronics, err := catalogSvc.Create(ctx, "Electronics", "gadgets and gizmos")
	require.NoError(t, err)
	require.NotEmpty(t, electronics.ID)
	assert.True(t, electronics.Active)

	widget, err := productSvc.Create(ctx, "Widget", "a fine widget", valueobject.MustMoney("9.99", "USD"), 5, electronics.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, widget.ID)
	assert.Equal(t, 5, widget.StockQuantity)

	// Case-different duplicate in the same category is rejected.
	_, err = productSvc.Create(ctx, "widget", "", valueobject.MustMoney("4.99", "USD"), 1, electronics.ID)
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))
	assert.Contains(t, err.Error(), "already exists")

	// Drain the stock to zero.
	adjusted, err := productSvc.AdjustStock(ctx, widget.ID, -5)
	require.NoError(t, err)
	assert.Equal(t, 0, adjusted.StockQuantity)

	// One more would go negative.
	_, err = productSvc.AdjustStock(ctx, widget.ID, -1)
	require.Error(t, err)
	assert.True(t, errs.IsConflict(err))
	unchanged, err := productSvc.FindByID(ctx, widget.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, unchanged.StockQuantity, "failed adjustment must not write")

	// Deactivation is allowed at zero stock and hides the product.
	require.NoError(t, productSvc.Deactivate(ctx, widget.ID))
	_, err = productSvc.FindByID(ctx, widget.ID)
	assert.True(t, errs.IsNotFound(err))

	// The name is free again once the holder is inactive.
	_, err = productSvc.Create(ctx, "Widget", "", valueobject.MustMoney("14.99", "USD"), 2, electronics.ID)
	require.NoError(t, err)
}

func TestCatalogScenarioInactiveCategory(t *testing.T) {
	ctx := context.Background()
	products := newMemProductRepo()
	categories := newMemCategoryRepo()
	logger := newTestLogger()
	catalogSvc := NewCategoryService(categories, logger)
	productSvc := NewProductService(products, categories, logger)

	discontinued, err := catalogSvc.Create(ctx, "Discontinued", "")
	require.NoError(t, err)
	require.NoError(t, catalogSvc.Deactivate(ctx, discontinued.ID))

	_, err = productSvc.Create(ctx, "Widget", "", valueobject.MustMoney("9.99", "USD"), 1, discontinued.ID)
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))

	// Moving an existing product there is rejected too.
	active, err := catalogSvc.Create(ctx, "Electronics", "")
	require.NoError(t, err)
	p, err := productSvc.Create(ctx, "Widget", "", valueobject.MustMoney("9.99", "USD"), 1, active.ID)
	require.NoError(t, err)
	_, err = productSvc.ChangeCategory(ctx, p.ID, discontinued.ID)
	assert.True(t, errs.IsValidation(err))
}
