package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storecore/commerce/internal/domain/errs"
	"github.com/storecore/commerce/internal/domain/valueobject"
)

func TestNewProduct(t *testing.T) {
	price := valueobject.MustMoney("9.99", "USD")

	tests := []struct {
		name       string
		pname      string
		price      valueobject.Money
		stock      int
		categoryID string
		wantErr    bool
	}{
		{name: "valid", pname: "Widget", price: price, stock: 5, categoryID: "cat-1"},
		{name: "zero stock allowed", pname: "Widget", price: price, stock: 0, categoryID: "cat-1"},
		{name: "empty name", pname: "  ", price: price, stock: 5, categoryID: "cat-1", wantErr: true},
		{name: "zero price", pname: "Widget", price: valueobject.MustMoney("0", "USD"), stock: 5, categoryID: "cat-1", wantErr: true},
		{name: "negative stock", pname: "Widget", price: price, stock: -1, categoryID: "cat-1", wantErr: true},
		{name: "missing category", pname: "Widget", price: price, stock: 5, categoryID: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProduct(tt.pname, "desc", tt.price, tt.stock, tt.categoryID)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errs.IsValidation(err))
				return
			}
			require.NoError(t, err)
			assert.True(t, p.Active, "new products start active")
			assert.Equal(t, tt.stock, p.StockQuantity)
		})
	}
}

func TestProductAdjustStock(t *testing.T) {
	p, err := NewProduct("Widget", "", valueobject.MustMoney("9.99", "USD"), 5, "cat-1")
	require.NoError(t, err)

	require.NoError(t, p.AdjustStock(-5))
	assert.Equal(t, 0, p.StockQuantity)

	err = p.AdjustStock(-1)
	require.Error(t, err)
	assert.True(t, errs.IsConflict(err))
	assert.Equal(t, 0, p.StockQuantity, "failed adjustment must not change stock")

	require.NoError(t, p.AdjustStock(10))
	assert.Equal(t, 10, p.StockQuantity)
}

func TestProductDeactivate(t *testing.T) {
	p, err := NewProduct("Widget", "", valueobject.MustMoney("9.99", "USD"), 3, "cat-1")
	require.NoError(t, err)

	err = p.Deactivate()
	require.Error(t, err)
	assert.True(t, errs.IsConflict(err))
	assert.True(t, p.Active)

	require.NoError(t, p.AdjustStock(-3))
	require.NoError(t, p.Deactivate())
	assert.False(t, p.Active)
}

func TestProductChangePrice(t *testing.T) {
	p, err := NewProduct("Widget", "", valueobject.MustMoney("9.99", "USD"), 0, "cat-1")
	require.NoError(t, err)

	err = p.ChangePrice(valueobject.MustMoney("0", "USD"))
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))

	require.NoError(t, p.ChangePrice(valueobject.MustMoney("19.99", "USD")))
	assert.True(t, p.Price.Equal(valueobject.MustMoney("19.99", "USD")))
}

func TestProductNameEquals(t *testing.T) {
	p, err := NewProduct("Widget", "", valueobject.MustMoney("9.99", "USD"), 0, "cat-1")
	require.NoError(t, err)

	assert.True(t, p.NameEquals("widget"))
	assert.True(t, p.NameEquals(" WIDGET "))
	assert.False(t, p.NameEquals("gadget"))
}
