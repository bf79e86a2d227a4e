package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/storecore/commerce/internal/domain/entity"
	"github.com/storecore/commerce/internal/domain/errs"
)

func TestCategoryServiceCreate(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		categories := new(MockCategoryRepository)
		categories.On("Create", mock.Anything, mock.AnythingOfType("*entity.Category")).Return(nil)
		svc := NewCategoryService(categories, newTestLogger())

		c, err := svc.Create(context.Background(), "Electronics", "gadgets")
		require.NoError(t, err)
		assert.NotEmpty(t, c.ID)
		assert.True(t, c.Active)
		categories.AssertExpectations(t)
	})

	t.Run("short name fails before persistence", func(t *testing.T) {
		categories := new(MockCategoryRepository)
		svc := NewCategoryService(categories, newTestLogger())

		_, err := svc.Create(context.Background(), "TV", "")
		assert.True(t, errs.IsValidation(err))
		categories.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestCategoryServiceUpdate(t *testing.T) {
	categories := new(MockCategoryRepository)
	categories.On("GetByID", mock.Anything, "cat-1").Return(&entity.Category{ID: "cat-1", Name: "Electronics", Active: true}, nil)
	categories.On("Update", mock.Anything, mock.AnythingOfType("*entity.Category")).Return(nil)
	svc := NewCategoryService(categories, newTestLogger())

	c, err := svc.Update(context.Background(), "cat-1", "Gadgets", "renamed")
	require.NoError(t, err)
	assert.Equal(t, "Gadgets", c.Name)
	assert.Equal(t, "renamed", c.Description)
}

func TestCategoryServiceDeactivate(t *testing.T) {
	categories := new(MockCategoryRepository)
	categories.On("GetByID", mock.Anything, "cat-1").Return(&entity.Category{ID: "cat-1", Name: "Electronics", Active: true}, nil)
	categories.On("Update", mock.Anything, mock.MatchedBy(func(c *entity.Category) bool { return !c.Active })).Return(nil)
	svc := NewCategoryService(categories, newTestLogger())

	require.NoError(t, svc.Deactivate(context.Background(), "cat-1"))
	categories.AssertExpectations(t)
}
