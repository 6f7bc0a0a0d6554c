package finance

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProductData(t *testing.T) {
	groupID := uuid.New()
	cat := uuid.New()

	p, err := NewProductData(groupID, "  Milk  ", []uuid.UUID{cat, cat, uuid.Nil})
	require.NoError(t, err)
	assert.Equal(t, groupID, p.GroupID)
	assert.Equal(t, "Milk", p.Name)
	assert.Equal(t, []uuid.UUID{cat}, p.CategoryIDs)

	_, err = NewProductData(uuid.Nil, "Milk", nil)
	assert.Error(t, err)

	_, err = NewProductData(groupID, "   ", nil)
	assert.Error(t, err)
}

func TestProductDataCategoryLimit(t *testing.T) {
	ids := make([]uuid.UUID, MaxCategoriesPerProduct+1)
	for i := range ids {
		ids[i] = uuid.New()
	}

	_, err := NewProductData(uuid.New(), "Milk", ids)
	assert.Error(t, err)

	p, err := NewProductData(uuid.New(), "Milk", ids[:MaxCategoriesPerProduct])
	require.NoError(t, err)
	assert.Len(t, p.CategoryIDs, MaxCategoriesPerProduct)

	err = p.SetCategories(ids)
	assert.Error(t, err)
	assert.Len(t, p.CategoryIDs, MaxCategoriesPerProduct)
}

func TestProductDataHasCategorySet(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	p, err := NewProductData(uuid.New(), "Milk", []uuid.UUID{a, b})
	require.NoError(t, err)

	assert.True(t, p.HasCategorySet([]uuid.UUID{b, a}))
	assert.True(t, p.HasCategorySet([]uuid.UUID{a, b, a}))
	assert.False(t, p.HasCategorySet([]uuid.UUID{a}))
	assert.False(t, p.HasCategorySet(nil))
	assert.False(t, p.HasCategorySet([]uuid.UUID{a, uuid.New()}))

	empty, err := NewProductData(uuid.New(), "Bread", nil)
	require.NoError(t, err)
	assert.True(t, empty.HasCategorySet(nil))
}

func TestProductDataUpdate(t *testing.T) {
	p, err := NewProductData(uuid.New(), "Milk", nil)
	require.NoError(t, err)

	require.NoError(t, p.Rename(" Whole Milk "))
	assert.Equal(t, "Whole Milk", p.Name)
	assert.Error(t, p.Rename(""))

	require.NoError(t, p.SetDescription(" 1L bottle "))
	assert.Equal(t, "1L bottle", p.Description)
}
