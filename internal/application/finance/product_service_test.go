package finance

import (
	"context"
	"testing"

	"github.com/financetracking/backend/internal/domain/finance"
	"github.com/financetracking/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type productServiceMocks struct {
	productRepo  *mockProductRepo
	categoryRepo *mockCategoryRepo
	receiptRepo  *mockReceiptRepo
}

func newProductService() (*ProductService, productServiceMocks) {
	m := productServiceMocks{
		productRepo:  new(mockProductRepo),
		categoryRepo: new(mockCategoryRepo),
		receiptRepo:  new(mockReceiptRepo),
	}
	svc := NewProductService(m.productRepo, m.categoryRepo, m.receiptRepo, zap.NewNop())
	return svc, m
}

func strPtr(s string) *string { return &s }

func TestProductServiceListResolvesCategoryNames(t *testing.T) {
	svc, m := newProductService()

	groupID := uuid.New()
	dairy, err := finance.NewCategory(groupID, "Dairy", "#FFFFFF")
	require.NoError(t, err)
	milk := mustProduct(t, groupID, "Milk", []uuid.UUID{dairy.ID})

	m.productRepo.On("ListByGroup", mock.Anything, groupID).Return([]finance.ProductData{*milk}, nil)
	m.categoryRepo.On("ListByGroup", mock.Anything, groupID).Return([]finance.Category{*dairy}, nil)

	dtos, err := svc.List(context.Background(), groupID)
	require.NoError(t, err)
	require.Len(t, dtos, 1)
	assert.Equal(t, "Milk", dtos[0].Name)
	assert.Equal(t, []string{"Dairy"}, dtos[0].Categories)
}

func TestProductServiceUpdatePatchesFields(t *testing.T) {
	svc, m := newProductService()

	groupID := uuid.New()
	dairy, err := finance.NewCategory(groupID, "Dairy", "#FFFFFF")
	require.NoError(t, err)
	milk := mustProduct(t, groupID, "Milk", nil)

	m.productRepo.On("FindByID", mock.Anything, milk.ID).Return(milk, nil)
	m.categoryRepo.On("FindByID", mock.Anything, dairy.ID).Return(dairy, nil)
	m.categoryRepo.On("ListByGroup", mock.Anything, groupID).Return([]finance.Category{*dairy}, nil)
	m.productRepo.On("Save", mock.Anything, milk).Return(nil)

	categoryIDs := []uuid.UUID{dairy.ID}
	dto, err := svc.Update(context.Background(), UpdateProductInput{
		GroupID:     groupID,
		ProductID:   milk.ID,
		Name:        strPtr("Whole Milk"),
		Description: strPtr("1L bottle"),
		CategoryIDs: &categoryIDs,
	})
	require.NoError(t, err)
	assert.Equal(t, "Whole Milk", dto.Name)
	assert.Equal(t, "1L bottle", dto.Description)
	assert.Equal(t, []string{"Dairy"}, dto.Categories)
}

func TestProductServiceUpdateRejectsForeignCategory(t *testing.T) {
	svc, m := newProductService()

	groupID := uuid.New()
	foreign, err := finance.NewCategory(uuid.New(), "Elsewhere", "#FFFFFF")
	require.NoError(t, err)
	milk := mustProduct(t, groupID, "Milk", nil)

	m.productRepo.On("FindByID", mock.Anything, milk.ID).Return(milk, nil)
	m.categoryRepo.On("FindByID", mock.Anything, foreign.ID).Return(foreign, nil)

	categoryIDs := []uuid.UUID{foreign.ID}
	_, err = svc.Update(context.Background(), UpdateProductInput{
		GroupID:     groupID,
		ProductID:   milk.ID,
		CategoryIDs: &categoryIDs,
	})
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "BAD_REQUEST", domainErr.Code)
	m.productRepo.AssertNotCalled(t, "Save")
}

func TestProductServiceDeleteRejectsReferencedProduct(t *testing.T) {
	svc, m := newProductService()

	groupID := uuid.New()
	milk := mustProduct(t, groupID, "Milk", nil)

	m.productRepo.On("FindByID", mock.Anything, milk.ID).Return(milk, nil)
	m.receiptRepo.On("CountItemsByProduct", mock.Anything, milk.ID).Return(int64(2), nil)

	err := svc.Delete(context.Background(), groupID, milk.ID)
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "BAD_REQUEST", domainErr.Code)
	m.productRepo.AssertNotCalled(t, "Delete")
}

func TestProductServiceDeleteRemovesUnreferencedProduct(t *testing.T) {
	svc, m := newProductService()

	groupID := uuid.New()
	milk := mustProduct(t, groupID, "Milk", nil)

	m.productRepo.On("FindByID", mock.Anything, milk.ID).Return(milk, nil)
	m.receiptRepo.On("CountItemsByProduct", mock.Anything, milk.ID).Return(int64(0), nil)
	m.productRepo.On("Delete", mock.Anything, milk.ID).Return(nil)

	require.NoError(t, svc.Delete(context.Background(), groupID, milk.ID))
	m.productRepo.AssertCalled(t, "Delete", mock.Anything, milk.ID)
}

func TestProductServiceHidesForeignProducts(t *testing.T) {
	svc, m := newProductService()

	foreign := mustProduct(t, uuid.New(), "Milk", nil)
	m.productRepo.On("FindByID", mock.Anything, foreign.ID).Return(foreign, nil)

	_, err := svc.Get(context.Background(), uuid.New(), foreign.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
