package service

import (
	"testing"

	"github.com/asifdev/trendcart-backend/internal/app/model"
	"github.com/asifdev/trendcart-backend/internal/app/repository"
	"github.com/asifdev/trendcart-backend/internal/db"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCategoryServiceTest(t *testing.T) (CategoryService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	categoryRepo := repository.NewCategoryRepository(testDB)
	return NewCategoryService(categoryRepo), testDB
}

func TestCategoryService_CreateAndGet(t *testing.T) {
	categoryService, _ := setupCategoryServiceTest(t)

	category, err := categoryService.CreateCategory("Electronics", "https://img/cat.jpg")
	require.NoError(t, err)
	assert.Equal(t, "Electronics", category.Name)

	fetched, err := categoryService.GetCategory(category.ID)
	require.NoError(t, err)
	assert.Equal(t, category.ID, fetched.ID)

	_, err = categoryService.GetCategory(9999)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestCategoryService_UpdateCategory(t *testing.T) {
	categoryService, _ := setupCategoryServiceTest(t)

	category, err := categoryService.CreateCategory("Electronics", "")
	require.NoError(t, err)

	updated, err := categoryService.UpdateCategory(category.ID, "Gadgets", "https://img/new.jpg")
	require.NoError(t, err)
	assert.Equal(t, "Gadgets", updated.Name)
	assert.Equal(t, "https://img/new.jpg", updated.ImageURL)

	_, err = categoryService.UpdateCategory(9999, "Ghost", "")
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestCategoryService_DeleteCategory_Empty(t *testing.T) {
	categoryService, _ := setupCategoryServiceTest(t)

	category, err := categoryService.CreateCategory("Electronics", "")
	require.NoError(t, err)

	require.NoError(t, categoryService.DeleteCategory(category.ID))

	_, err = categoryService.GetCategory(category.ID)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestCategoryService_DeleteCategory_WithProducts(t *testing.T) {
	categoryService, testDB := setupCategoryServiceTest(t)

	category, err := categoryService.CreateCategory("Electronics", "")
	require.NoError(t, err)

	testDB.Create(&model.Product{
		Name:              "Blocker",
		CategoryID:        category.ID,
		Price:             decimal.NewFromFloat(10.00),
		QuantityAvailable: 1,
	})

	err = categoryService.DeleteCategory(category.ID)
	assert.ErrorIs(t, err, ErrCategoryInUse)

	// Category survives the refused delete
	_, err = categoryService.GetCategory(category.ID)
	assert.NoError(t, err)
}

func TestCategoryService_DeleteCategory_WithSubCategories(t *testing.T) {
	categoryService, _ := setupCategoryServiceTest(t)

	category, err := categoryService.CreateCategory("Electronics", "")
	require.NoError(t, err)

	_, err = categoryService.CreateSubCategory(category.ID, "Phones")
	require.NoError(t, err)

	err = categoryService.DeleteCategory(category.ID)
	assert.ErrorIs(t, err, ErrCategoryInUse)
}

func TestCategoryService_CreateSubCategory(t *testing.T) {
	categoryService, _ := setupCategoryServiceTest(t)

	category, err := categoryService.CreateCategory("Electronics", "")
	require.NoError(t, err)

	subCategory, err := categoryService.CreateSubCategory(category.ID, "Phones")
	require.NoError(t, err)
	assert.Equal(t, category.ID, subCategory.CategoryID)

	_, err = categoryService.CreateSubCategory(9999, "Orphans")
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestCategoryService_UpdateSubCategory(t *testing.T) {
	categoryService, _ := setupCategoryServiceTest(t)

	category, err := categoryService.CreateCategory("Electronics", "")
	require.NoError(t, err)
	other, err := categoryService.CreateCategory("Books", "")
	require.NoError(t, err)

	subCategory, err := categoryService.CreateSubCategory(category.ID, "Phones")
	require.NoError(t, err)

	updated, err := categoryService.UpdateSubCategory(subCategory.ID, other.ID, "Paperbacks")
	require.NoError(t, err)
	assert.Equal(t, other.ID, updated.CategoryID)
	assert.Equal(t, "Paperbacks", updated.Name)

	_, err = categoryService.UpdateSubCategory(subCategory.ID, 9999, "Nowhere")
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestCategoryService_DeleteSubCategory_WithProducts(t *testing.T) {
	categoryService, testDB := setupCategoryServiceTest(t)

	category, err := categoryService.CreateCategory("Electronics", "")
	require.NoError(t, err)
	subCategory, err := categoryService.CreateSubCategory(category.ID, "Phones")
	require.NoError(t, err)

	testDB.Create(&model.Product{
		Name:              "Blocker",
		CategoryID:        category.ID,
		SubCategoryID:     &subCategory.ID,
		Price:             decimal.NewFromFloat(10.00),
		QuantityAvailable: 1,
	})

	err = categoryService.DeleteSubCategory(subCategory.ID)
	assert.ErrorIs(t, err, ErrSubCategoryInUse)
}

func TestCategoryService_DeleteSubCategory(t *testing.T) {
	categoryService, _ := setupCategoryServiceTest(t)

	category, err := categoryService.CreateCategory("Electronics", "")
	require.NoError(t, err)
	subCategory, err := categoryService.CreateSubCategory(category.ID, "Phones")
	require.NoError(t, err)

	require.NoError(t, categoryService.DeleteSubCategory(subCategory.ID))

	_, err = categoryService.GetSubCategory(subCategory.ID)
	assert.ErrorIs(t, err, ErrSubCategoryNotFound)
}
