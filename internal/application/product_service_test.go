package application

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/storecore/commerce/internal/domain/entity"
	"github.com/storecore/commerce/internal/domain/errs"
	domainsvc "github.com/storecore/commerce/internal/domain/service"
	"github.com/storecore/commerce/internal/domain/valueobject"
)

func newTestLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newProductApp(products *MockProductRepository, categories *MockCategoryRepository) *ProductService {
	logger := newTestLogger()
	domain := domainsvc.NewProductService(products, categories, logger)
	// No GCS, ES or Redis: those paths are best-effort and stay off
	// when the clients are nil.
	return NewProductService(domain, nil, "", nil, "", nil, logger)
}

func activeCategory(id string) *entity.Category {
	c, _ := entity.NewCategory("Electronics", "gadgets")
	c.ID = id
	return c
}

func storedProduct(id string, stock int) *entity.Product {
	p, _ := entity.NewProduct("Widget", "a widget", valueobject.MustMoney("9.99", "USD"), stock, "cat-1")
	p.ID = id
	return p
}

func TestProductServiceCreateInvalidPriceDoesNotPersist(t *testing.T) {
	products := new(MockProductRepository)
	categories := new(MockCategoryRepository)
	svc := newProductApp(products, categories)

	_, err := svc.Create(context.Background(), CreateProductCommand{
		Name:          "Widget",
		PriceAmount:   "not-a-number",
		PriceCurrency: "USD",
		StockQuantity: 5,
		CategoryID:    "cat-1",
	})

	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))
	products.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	categories.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestProductServiceCreateWrapsOperation(t *testing.T) {
	products := new(MockProductRepository)
	categories := new(MockCategoryRepository)
	svc := newProductApp(products, categories)

	categories.On("GetByID", mock.Anything, "cat-1").Return(activeCategory("cat-1"), nil)
	products.On("ExistsByNameInCategory", mock.Anything, "Widget", "cat-1", "").Return(true, nil)

	_, err := svc.Create(context.Background(), CreateProductCommand{
		Name:          "Widget",
		PriceAmount:   "9.99",
		PriceCurrency: "USD",
		StockQuantity: 5,
		CategoryID:    "cat-1",
	})

	require.Error(t, err)
	assert.True(t, errs.IsConflict(err), "duplicate name must stay a conflict through wrapping")
	assert.Contains(t, err.Error(), "create product:")
	products.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProductServiceGetNotFoundKindPreserved(t *testing.T) {
	products := new(MockProductRepository)
	categories := new(MockCategoryRepository)
	svc := newProductApp(products, categories)

	products.On("GetByID", mock.Anything, "missing").
		Return(nil, errs.Newf(errs.NotFound, "product missing not found"))

	_, err := svc.Get(context.Background(), "missing")

	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
	assert.Contains(t, err.Error(), "get product:")
}

func TestProductServiceAdjustStockConflictKindPreserved(t *testing.T) {
	products := new(MockProductRepository)
	categories := new(MockCategoryRepository)
	svc := newProductApp(products, categories)

	products.On("GetByID", mock.Anything, "p-1").Return(storedProduct("p-1", 1), nil)

	_, err := svc.AdjustStock(context.Background(), "p-1", -5)

	require.Error(t, err)
	assert.True(t, errs.IsConflict(err))
	products.AssertNotCalled(t, "UpdateStock", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
