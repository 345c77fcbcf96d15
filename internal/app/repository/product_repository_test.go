package repository

import (
	"testing"
	"time"

	"github.com/asifdev/trendcart-backend/internal/app/model"
	"github.com/asifdev/trendcart-backend/internal/db"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupProductTest(t *testing.T) (*gorm.DB, ProductRepository, *model.Category) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	repo := NewProductRepository(testDB)

	category := &model.Category{Name: "Electronics"}
	testDB.Create(category)

	return testDB, repo, category
}

func TestProductRepository_CreateAndFindByID(t *testing.T) {
	_, repo, category := setupProductTest(t)

	product := &model.Product{
		Name:              "Wireless Mouse",
		Description:       "A mouse",
		CategoryID:        category.ID,
		Price:             decimal.NewFromFloat(29.99),
		QuantityAvailable: 15,
		Images: []model.ProductImage{
			{ImageURL: "https://img/mouse.jpg", IsMain: true},
		},
	}
	err := repo.Create(product)
	require.NoError(t, err)
	assert.NotZero(t, product.ID)

	found, err := repo.FindByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Wireless Mouse", found.Name)
	assert.Equal(t, "Electronics", found.Category.Name)
	require.Len(t, found.Images, 1)
	require.NotNil(t, found.MainImage())
	assert.Equal(t, "https://img/mouse.jpg", found.MainImage().ImageURL)
}

func TestProductRepository_FindWithFilter_Category(t *testing.T) {
	testDB, repo, category := setupProductTest(t)

	other := &model.Category{Name: "Books"}
	testDB.Create(other)

	testDB.Create(&model.Product{Name: "Mouse", CategoryID: category.ID, Price: decimal.NewFromFloat(29.99), QuantityAvailable: 5})
	testDB.Create(&model.Product{Name: "Novel", CategoryID: other.ID, Price: decimal.NewFromFloat(9.99), QuantityAvailable: 5})

	products, err := repo.FindWithFilter(ProductFilter{CategoryID: &category.ID})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Mouse", products[0].Name)
}

func TestProductRepository_FindWithFilter_SubCategory(t *testing.T) {
	testDB, repo, category := setupProductTest(t)

	subCategory := &model.SubCategory{CategoryID: category.ID, Name: "Mice"}
	testDB.Create(subCategory)

	testDB.Create(&model.Product{Name: "Mouse", CategoryID: category.ID, SubCategoryID: &subCategory.ID, Price: decimal.NewFromFloat(29.99), QuantityAvailable: 5})
	testDB.Create(&model.Product{Name: "Keyboard", CategoryID: category.ID, Price: decimal.NewFromFloat(49.99), QuantityAvailable: 5})

	products, err := repo.FindWithFilter(ProductFilter{SubCategoryID: &subCategory.ID})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Mouse", products[0].Name)
}

func TestProductRepository_FindWithFilter_PriceSort(t *testing.T) {
	testDB, repo, category := setupProductTest(t)

	testDB.Create(&model.Product{Name: "Cheap", CategoryID: category.ID, Price: decimal.NewFromFloat(5.00), QuantityAvailable: 5})
	testDB.Create(&model.Product{Name: "Pricey", CategoryID: category.ID, Price: decimal.NewFromFloat(500.00), QuantityAvailable: 5})
	testDB.Create(&model.Product{Name: "Middle", CategoryID: category.ID, Price: decimal.NewFromFloat(50.00), QuantityAvailable: 5})

	products, err := repo.FindWithFilter(ProductFilter{SortBy: ProductSortPriceAsc})
	require.NoError(t, err)
	require.Len(t, products, 3)
	assert.Equal(t, "Cheap", products[0].Name)
	assert.Equal(t, "Pricey", products[2].Name)

	products, err = repo.FindWithFilter(ProductFilter{SortBy: ProductSortPriceDesc})
	require.NoError(t, err)
	assert.Equal(t, "Pricey", products[0].Name)
}

func TestProductRepository_FindWithFilter_LimitOffset(t *testing.T) {
	testDB, repo, category := setupProductTest(t)

	for _, name := range []string{"A", "B", "C", "D", "E"} {
		testDB.Create(&model.Product{Name: name, CategoryID: category.ID, Price: decimal.NewFromFloat(10.00), QuantityAvailable: 5})
	}

	products, err := repo.FindWithFilter(ProductFilter{SortBy: ProductSortPriceAsc, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, products, 2)

	products, err = repo.FindWithFilter(ProductFilter{SortBy: ProductSortPriceAsc, Limit: 2, Offset: 4})
	require.NoError(t, err)
	assert.Len(t, products, 1)
}

func TestProductRepository_FindWithFilter_SearchSpansCategoryNames(t *testing.T) {
	testDB, repo, category := setupProductTest(t)

	subCategory := &model.SubCategory{CategoryID: category.ID, Name: "Headphones"}
	testDB.Create(subCategory)

	testDB.Create(&model.Product{Name: "Bass Buds", CategoryID: category.ID, SubCategoryID: &subCategory.ID, Price: decimal.NewFromFloat(59.99), QuantityAvailable: 5})
	testDB.Create(&model.Product{Name: "Desk Lamp", CategoryID: category.ID, Price: decimal.NewFromFloat(19.99), QuantityAvailable: 5})

	// Product name match
	products, err := repo.FindWithFilter(ProductFilter{Search: "Buds"})
	require.NoError(t, err)
	assert.Len(t, products, 1)

	// Subcategory name match pulls the product in
	products, err = repo.FindWithFilter(ProductFilter{Search: "Headphones"})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Bass Buds", products[0].Name)

	// Category name match returns everything filed under it
	products, err = repo.FindWithFilter(ProductFilter{Search: "Electronics"})
	require.NoError(t, err)
	assert.Len(t, products, 2)
}

func TestProductRepository_Suggest(t *testing.T) {
	testDB, repo, category := setupProductTest(t)

	subCategory := &model.SubCategory{CategoryID: category.ID, Name: "Earbuds"}
	testDB.Create(subCategory)
	testDB.Create(&model.Product{Name: "Earmuffs", CategoryID: category.ID, Price: decimal.NewFromFloat(10.00), QuantityAvailable: 5})

	suggestions, err := repo.Suggest("ear", 5)
	require.NoError(t, err)
	assert.Contains(t, suggestions.Products, "Earmuffs")
	assert.Contains(t, suggestions.SubCategories, "Earbuds")
	assert.Empty(t, suggestions.Categories)
}

func TestProductRepository_FindRelated(t *testing.T) {
	testDB, repo, category := setupProductTest(t)

	var firstID uint
	for i, name := range []string{"A", "B", "C"} {
		p := &model.Product{Name: name, CategoryID: category.ID, Price: decimal.NewFromFloat(10.00), QuantityAvailable: 5}
		testDB.Create(p)
		if i == 0 {
			firstID = p.ID
		}
	}

	related, err := repo.FindRelated(category.ID, firstID, 4)
	require.NoError(t, err)
	assert.Len(t, related, 2)
	for _, p := range related {
		assert.NotEqual(t, firstID, p.ID)
	}
}

func TestProductRepository_DecrementStock(t *testing.T) {
	testDB, repo, category := setupProductTest(t)

	product := &model.Product{Name: "Scarce", CategoryID: category.ID, Price: decimal.NewFromFloat(10.00), QuantityAvailable: 5}
	testDB.Create(product)

	rows, err := repo.DecrementStock(product.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	var refreshed model.Product
	testDB.First(&refreshed, product.ID)
	assert.Equal(t, 2, refreshed.QuantityAvailable)

	// Taking more than remains matches no rows and changes nothing
	rows, err = repo.DecrementStock(product.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)

	testDB.First(&refreshed, product.ID)
	assert.Equal(t, 2, refreshed.QuantityAvailable)
}

func TestProductRepository_IncrementStock(t *testing.T) {
	testDB, repo, category := setupProductTest(t)

	product := &model.Product{Name: "Restocked", CategoryID: category.ID, Price: decimal.NewFromFloat(10.00), QuantityAvailable: 2}
	testDB.Create(product)

	err := repo.IncrementStock(product.ID, 4)
	require.NoError(t, err)

	var refreshed model.Product
	testDB.First(&refreshed, product.ID)
	assert.Equal(t, 6, refreshed.QuantityAvailable)
}

func TestProductRepository_RefreshBestSellers(t *testing.T) {
	testDB, repo, category := setupProductTest(t)

	popular := &model.Product{Name: "Popular", CategoryID: category.ID, Price: decimal.NewFromFloat(10.00), QuantityAvailable: 50}
	testDB.Create(popular)
	slow := &model.Product{Name: "Slow", CategoryID: category.ID, Price: decimal.NewFromFloat(10.00), QuantityAvailable: 50, BestSelling: true}
	testDB.Create(slow)

	user := &model.User{Email: "buyer@example.com", Username: "buyer", PasswordHash: "hash", Role: model.RoleUser}
	testDB.Create(user)

	order := &model.Order{
		UserID:         user.ID,
		ShippingCharge: decimal.NewFromFloat(70.00),
		TotalPrice:     decimal.NewFromFloat(100.00),
		Status:         model.OrderStatusDelivered,
		Items: []model.OrderItem{
			{ProductID: popular.ID, ProductName: "Popular", Price: decimal.NewFromFloat(10.00), Quantity: 3},
		},
	}
	testDB.Create(order)

	// Pending orders don't count toward sales
	pending := &model.Order{
		UserID:         user.ID,
		ShippingCharge: decimal.NewFromFloat(70.00),
		TotalPrice:     decimal.NewFromFloat(100.00),
		Status:         model.OrderStatusPending,
		Items: []model.OrderItem{
			{ProductID: slow.ID, ProductName: "Slow", Price: decimal.NewFromFloat(10.00), Quantity: 9},
		},
	}
	testDB.Create(pending)

	err := repo.RefreshBestSellers(8, time.Now().Add(-30*24*time.Hour))
	require.NoError(t, err)

	var refreshed model.Product
	testDB.First(&refreshed, popular.ID)
	assert.True(t, refreshed.BestSelling)

	// The stale flag was cleared
	testDB.First(&refreshed, slow.ID)
	assert.False(t, refreshed.BestSelling)
}

func TestProductRepository_SliderImages(t *testing.T) {
	_, repo, _ := setupProductTest(t)

	image := &model.SliderImage{Title: "Summer Sale", ImageURL: "https://img/banner.jpg"}
	require.NoError(t, repo.CreateSliderImage(image))

	images, err := repo.FindSliderImages()
	require.NoError(t, err)
	assert.Len(t, images, 1)

	require.NoError(t, repo.DeleteSliderImage(image.ID))

	images, err = repo.FindSliderImages()
	require.NoError(t, err)
	assert.Len(t, images, 0)

	err = repo.DeleteSliderImage(image.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
