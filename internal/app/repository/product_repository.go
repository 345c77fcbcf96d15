package repository

import (
	"fmt"
	"time"

	"github.com/asifdev/trendcart-backend/internal/app/model"
	"github.com/asifdev/trendcart-backend/pkg/logger"
	"gorm.io/gorm"
)

type ProductSort string

const (
	ProductSortPriceAsc  ProductSort = "price_asc"
	ProductSortPriceDesc ProductSort = "price_desc"
	ProductSortNewest    ProductSort = "newest"
)

type ProductFilter struct {
	CategoryID    *uint
	SubCategoryID *uint
	Search        string
	BestSelling   *bool
	SortBy        ProductSort
	Limit         int
	Offset        int
}

type SearchSuggestions struct {
	Products      []string
	Categories    []string
	SubCategories []string
}

type ProductRepository interface {
	// WithTx returns a repository bound to the given transaction.
	WithTx(tx *gorm.DB) ProductRepository
	Create(product *model.Product) error
	FindAll() ([]model.Product, error)
	FindWithFilter(filter ProductFilter) ([]model.Product, error)
	FindByID(id uint) (*model.Product, error)
	FindRelated(categoryID, excludeID uint, limit int) ([]model.Product, error)
	Suggest(term string, limit int) (SearchSuggestions, error)
	Update(product *model.Product) error
	Delete(id uint) error
	DecrementStock(id uint, quantity int) (int64, error)
	IncrementStock(id uint, quantity int) error
	FindMainImageURLs(productIDs []uint) (map[uint]string, error)
	RefreshBestSellers(topN int, since time.Time) error

	FindSliderImages() ([]model.SliderImage, error)
	CreateSliderImage(image *model.SliderImage) error
	DeleteSliderImage(id uint) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) WithTx(tx *gorm.DB) ProductRepository {
	return &productRepository{db: tx}
}

func (r *productRepository) Create(product *model.Product) error {
	logger.Debug("Creating product in database", map[string]interface{}{
		"name":        product.Name,
		"category_id": product.CategoryID,
	})

	if err := r.db.Create(product).Error; err != nil {
		logger.Error("Failed to create product in database", err, map[string]interface{}{
			"name":        product.Name,
			"category_id": product.CategoryID,
		})
		return err
	}

	logger.Debug("Product created in database", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
	})
	return nil
}

func (r *productRepository) baseQuery() *gorm.DB {
	return r.db.Model(&model.Product{}).
		Preload("Category").
		Preload("SubCategory").
		Preload("Images")
}

func (r *productRepository) FindAll() ([]model.Product, error) {
	return r.FindWithFilter(ProductFilter{})
}

func (r *productRepository) FindWithFilter(filter ProductFilter) ([]model.Product, error) {
	logger.Debug("Finding products with filter", map[string]interface{}{
		"category_id":    filter.CategoryID,
		"subcategory_id": filter.SubCategoryID,
		"search":         filter.Search,
		"best_selling":   filter.BestSelling,
		"sort_by":        filter.SortBy,
		"limit":          filter.Limit,
		"offset":         filter.Offset,
	})

	query := r.baseQuery()

	if filter.CategoryID != nil {
		query = query.Where("products.category_id = ?", *filter.CategoryID)
	}
	if filter.SubCategoryID != nil {
		query = query.Where("products.sub_category_id = ?", *filter.SubCategoryID)
	}
	if filter.BestSelling != nil {
		query = query.Where("products.best_selling = ?", *filter.BestSelling)
	}

	// Search spans product text and the names of the category tree so
	// "shoes" matches products filed under a Shoes category even when
	// the product text never says so.
	if filter.Search != "" {
		like := fmt.Sprintf("%%%s%%", filter.Search)
		query = query.
			Joins("JOIN categories ON categories.id = products.category_id").
			Joins("LEFT JOIN sub_categories ON sub_categories.id = products.sub_category_id").
			Where("products.name LIKE ? OR products.description LIKE ? OR categories.name LIKE ? OR sub_categories.name LIKE ?",
				like, like, like, like).
			Distinct("products.*")
	}

	switch filter.SortBy {
	case ProductSortPriceAsc:
		query = query.Order("products.price ASC")
	case ProductSortPriceDesc:
		query = query.Order("products.price DESC")
	case ProductSortNewest:
		fallthrough
	default:
		query = query.Order("products.created_at DESC")
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var products []model.Product
	if err := query.Find(&products).Error; err != nil {
		logger.Error("Failed to find products with filter", err, map[string]interface{}{
			"search": filter.Search,
		})
		return nil, err
	}

	logger.Debug("Products found with filter", map[string]interface{}{
		"count": len(products),
	})
	return products, nil
}

func (r *productRepository) FindByID(id uint) (*model.Product, error) {
	logger.Debug("Finding product by ID in database", map[string]interface{}{
		"product_id": id,
	})

	var product model.Product
	if err := r.baseQuery().First(&product, id).Error; err != nil {
		logger.Debug("Product not found in database", map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}

	return &product, nil
}

// FindRelated returns a random sample of other products from the same
// category. RANDOM() is understood by both postgres and sqlite.
func (r *productRepository) FindRelated(categoryID, excludeID uint, limit int) ([]model.Product, error) {
	logger.Debug("Finding related products in database", map[string]interface{}{
		"category_id": categoryID,
		"exclude_id":  excludeID,
		"limit":       limit,
	})

	var products []model.Product
	if err := r.baseQuery().
		Where("products.category_id = ? AND products.id <> ?", categoryID, excludeID).
		Order("RANDOM()").
		Limit(limit).
		Find(&products).Error; err != nil {
		logger.Error("Failed to find related products in database", err, map[string]interface{}{
			"category_id": categoryID,
		})
		return nil, err
	}

	logger.Debug("Related products found in database", map[string]interface{}{
		"count": len(products),
	})
	return products, nil
}

func (r *productRepository) Suggest(term string, limit int) (SearchSuggestions, error) {
	logger.Debug("Building search suggestions", map[string]interface{}{
		"term":  term,
		"limit": limit,
	})

	result := SearchSuggestions{}
	like := fmt.Sprintf("%%%s%%", term)

	if err := r.db.Model(&model.Product{}).
		Where("name LIKE ?", like).
		Distinct().
		Order("name ASC").
		Limit(limit).
		Pluck("name", &result.Products).Error; err != nil {
		logger.Error("Failed to fetch product name suggestions", err, nil)
		return result, err
	}

	if err := r.db.Model(&model.Category{}).
		Where("name LIKE ?", like).
		Distinct().
		Order("name ASC").
		Limit(limit).
		Pluck("name", &result.Categories).Error; err != nil {
		logger.Error("Failed to fetch category name suggestions", err, nil)
		return result, err
	}

	if err := r.db.Model(&model.SubCategory{}).
		Where("name LIKE ?", like).
		Distinct().
		Order("name ASC").
		Limit(limit).
		Pluck("name", &result.SubCategories).Error; err != nil {
		logger.Error("Failed to fetch subcategory name suggestions", err, nil)
		return result, err
	}

	logger.Debug("Search suggestions built", map[string]interface{}{
		"products":      len(result.Products),
		"categories":    len(result.Categories),
		"subcategories": len(result.SubCategories),
	})
	return result, nil
}

func (r *productRepository) Update(product *model.Product) error {
	logger.Debug("Updating product in database", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
	})

	if err := r.db.Save(product).Error; err != nil {
		logger.Error("Failed to update product in database", err, map[string]interface{}{
			"product_id": product.ID,
		})
		return err
	}

	logger.Debug("Product updated in database", map[string]interface{}{
		"product_id": product.ID,
	})
	return nil
}

func (r *productRepository) Delete(id uint) error {
	logger.Debug("Deleting product from database", map[string]interface{}{
		"product_id": id,
	})

	result := r.db.Delete(&model.Product{}, id)
	if result.Error != nil {
		logger.Error("Failed to delete product from database", result.Error, map[string]interface{}{
			"product_id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	logger.Debug("Product deleted from database", map[string]interface{}{
		"product_id": id,
	})
	return nil
}

// DecrementStock subtracts quantity only while enough stock remains.
// The conditional UPDATE makes concurrent checkouts race on the database
// row instead of on stale in-memory reads; a zero rows-affected result
// means the stock was gone by the time the write landed.
func (r *productRepository) DecrementStock(id uint, quantity int) (int64, error) {
	logger.Debug("Decrementing product stock in database", map[string]interface{}{
		"product_id": id,
		"quantity":   quantity,
	})

	result := r.db.Model(&model.Product{}).
		Where("id = ? AND quantity_available >= ?", id, quantity).
		Update("quantity_available", gorm.Expr("quantity_available - ?", quantity))
	if result.Error != nil {
		logger.Error("Failed to decrement product stock in database", result.Error, map[string]interface{}{
			"product_id": id,
			"quantity":   quantity,
		})
		return 0, result.Error
	}

	logger.Debug("Product stock decrement attempted", map[string]interface{}{
		"product_id":    id,
		"quantity":      quantity,
		"rows_affected": result.RowsAffected,
	})
	return result.RowsAffected, nil
}

// IncrementStock restores quantity, e.g. when an order is canceled.
// A product deleted since the order was placed simply matches no rows.
func (r *productRepository) IncrementStock(id uint, quantity int) error {
	logger.Debug("Incrementing product stock in database", map[string]interface{}{
		"product_id": id,
		"quantity":   quantity,
	})

	if err := r.db.Model(&model.Product{}).
		Where("id = ?", id).
		Update("quantity_available", gorm.Expr("quantity_available + ?", quantity)).Error; err != nil {
		logger.Error("Failed to increment product stock in database", err, map[string]interface{}{
			"product_id": id,
			"quantity":   quantity,
		})
		return err
	}

	return nil
}

// RefreshBestSellers recomputes the best_selling flag from delivered
// order volume since the given cutoff, keeping the top N products.
func (r *productRepository) RefreshBestSellers(topN int, since time.Time) error {
	logger.Debug("Refreshing best sellers", map[string]interface{}{
		"top_n": topN,
		"since": since,
	})

	return r.db.Transaction(func(tx *gorm.DB) error {
		var topIDs []uint
		if err := tx.Table("order_items").
			Select("order_items.product_id").
			Joins("JOIN orders ON orders.id = order_items.order_id").
			Where("orders.status = ? AND orders.created_at >= ?", model.OrderStatusDelivered, since).
			Group("order_items.product_id").
			Order("SUM(order_items.quantity) DESC").
			Limit(topN).
			Pluck("order_items.product_id", &topIDs).Error; err != nil {
			logger.Error("Failed to compute best-selling products", err, nil)
			return err
		}

		if err := tx.Model(&model.Product{}).
			Where("best_selling = ?", true).
			Update("best_selling", false).Error; err != nil {
			logger.Error("Failed to clear best-selling flags", err, nil)
			return err
		}

		if len(topIDs) > 0 {
			if err := tx.Model(&model.Product{}).
				Where("id IN ?", topIDs).
				Update("best_selling", true).Error; err != nil {
				logger.Error("Failed to set best-selling flags", err, nil)
				return err
			}
		}

		logger.Info("Best sellers refreshed", map[string]interface{}{
			"count": len(topIDs),
		})
		return nil
	})
}

// FindMainImageURLs maps each given product id to its main image URL.
// Products without a main image, or gone entirely, are simply absent
// from the result.
func (r *productRepository) FindMainImageURLs(productIDs []uint) (map[uint]string, error) {
	urls := make(map[uint]string, len(productIDs))
	if len(productIDs) == 0 {
		return urls, nil
	}

	var images []model.ProductImage
	if err := r.db.Where("product_id IN ? AND is_main = ?", productIDs, true).Find(&images).Error; err != nil {
		logger.Error("Failed to find main product images in database", err, nil)
		return nil, err
	}
	for i := range images {
		urls[images[i].ProductID] = images[i].ImageURL
	}
	return urls, nil
}

func (r *productRepository) FindSliderImages() ([]model.SliderImage, error) {
	logger.Debug("Finding slider images in database", nil)

	var images []model.SliderImage
	if err := r.db.Order("created_at DESC").Find(&images).Error; err != nil {
		logger.Error("Failed to find slider images in database", err, nil)
		return nil, err
	}

	return images, nil
}

func (r *productRepository) CreateSliderImage(image *model.SliderImage) error {
	logger.Debug("Creating slider image in database", map[string]interface{}{
		"title": image.Title,
	})

	if err := r.db.Create(image).Error; err != nil {
		logger.Error("Failed to create slider image in database", err, map[string]interface{}{
			"title": image.Title,
		})
		return err
	}

	return nil
}

func (r *productRepository) DeleteSliderImage(id uint) error {
	logger.Debug("Deleting slider image from database", map[string]interface{}{
		"slider_image_id": id,
	})

	result := r.db.Delete(&model.SliderImage{}, id)
	if result.Error != nil {
		logger.Error("Failed to delete slider image from database", result.Error, map[string]interface{}{
			"slider_image_id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
