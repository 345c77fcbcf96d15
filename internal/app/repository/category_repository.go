package repository

import (
	"errors"

	"github.com/asifdev/trendcart-backend/internal/app/model"
	"github.com/asifdev/trendcart-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrCategoryHasDependents    = errors.New("category has subcategories or products")
	ErrSubCategoryHasDependents = errors.New("subcategory has products")
)

type CategoryRepository interface {
	Create(category *model.Category) error
	FindAll() ([]model.Category, error)
	FindByID(id uint) (*model.Category, error)
	Update(category *model.Category) error
	Delete(id uint) error

	CreateSubCategory(subCategory *model.SubCategory) error
	FindAllSubCategories() ([]model.SubCategory, error)
	FindSubCategoryByID(id uint) (*model.SubCategory, error)
	UpdateSubCategory(subCategory *model.SubCategory) error
	DeleteSubCategory(id uint) error
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(category *model.Category) error {
	logger.Debug("Creating category in database", map[string]interface{}{
		"name": category.Name,
	})

	if err := r.db.Create(category).Error; err != nil {
		logger.Error("Failed to create category in database", err, map[string]interface{}{
			"name": category.Name,
		})
		return err
	}

	logger.Debug("Category created in database", map[string]interface{}{
		"category_id": category.ID,
		"name":        category.Name,
	})
	return nil
}

func (r *categoryRepository) FindAll() ([]model.Category, error) {
	logger.Debug("Finding all categories in database", nil)

	var categories []model.Category
	if err := r.db.Preload("SubCategories").
		Order("name ASC").
		Find(&categories).Error; err != nil {
		logger.Error("Failed to find categories in database", err, nil)
		return nil, err
	}

	logger.Debug("Categories found in database", map[string]interface{}{
		"count": len(categories),
	})
	return categories, nil
}

func (r *categoryRepository) FindByID(id uint) (*model.Category, error) {
	logger.Debug("Finding category by ID in database", map[string]interface{}{
		"category_id": id,
	})

	var category model.Category
	if err := r.db.Preload("SubCategories").First(&category, id).Error; err != nil {
		logger.Debug("Category not found in database", map[string]interface{}{
			"category_id": id,
		})
		return nil, err
	}

	return &category, nil
}

func (r *categoryRepository) Update(category *model.Category) error {
	logger.Debug("Updating category in database", map[string]interface{}{
		"category_id": category.ID,
		"name":        category.Name,
	})

	if err := r.db.Save(category).Error; err != nil {
		logger.Error("Failed to update category in database", err, map[string]interface{}{
			"category_id": category.ID,
		})
		return err
	}

	logger.Debug("Category updated in database", map[string]interface{}{
		"category_id": category.ID,
	})
	return nil
}

// Delete refuses to remove a category that still has subcategories or
// products attached. The guard keeps catalog references intact instead
// of relying on database cascade behavior.
func (r *categoryRepository) Delete(id uint) error {
	logger.Debug("Deleting category from database", map[string]interface{}{
		"category_id": id,
	})

	return r.db.Transaction(func(tx *gorm.DB) error {
		var subCount int64
		if err := tx.Model(&model.SubCategory{}).
			Where("category_id = ?", id).
			Count(&subCount).Error; err != nil {
			return err
		}

		var productCount int64
		if err := tx.Model(&model.Product{}).
			Where("category_id = ?", id).
			Count(&productCount).Error; err != nil {
			return err
		}

		if subCount > 0 || productCount > 0 {
			logger.Warn("Category delete blocked by dependents", map[string]interface{}{
				"category_id":      id,
				"subcategory_rows": subCount,
				"product_rows":     productCount,
			})
			return ErrCategoryHasDependents
		}

		result := tx.Delete(&model.Category{}, id)
		if result.Error != nil {
			logger.Error("Failed to delete category from database", result.Error, map[string]interface{}{
				"category_id": id,
			})
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		logger.Debug("Category deleted from database", map[string]interface{}{
			"category_id": id,
		})
		return nil
	})
}

func (r *categoryRepository) CreateSubCategory(subCategory *model.SubCategory) error {
	logger.Debug("Creating subcategory in database", map[string]interface{}{
		"name":        subCategory.Name,
		"category_id": subCategory.CategoryID,
	})

	if err := r.db.Create(subCategory).Error; err != nil {
		logger.Error("Failed to create subcategory in database", err, map[string]interface{}{
			"name":        subCategory.Name,
			"category_id": subCategory.CategoryID,
		})
		return err
	}

	logger.Debug("Subcategory created in database", map[string]interface{}{
		"subcategory_id": subCategory.ID,
		"name":           subCategory.Name,
	})
	return nil
}

func (r *categoryRepository) FindAllSubCategories() ([]model.SubCategory, error) {
	logger.Debug("Finding all subcategories in database", nil)

	var subCategories []model.SubCategory
	if err := r.db.Preload("Category").
		Order("name ASC").
		Find(&subCategories).Error; err != nil {
		logger.Error("Failed to find subcategories in database", err, nil)
		return nil, err
	}

	logger.Debug("Subcategories found in database", map[string]interface{}{
		"count": len(subCategories),
	})
	return subCategories, nil
}

func (r *categoryRepository) FindSubCategoryByID(id uint) (*model.SubCategory, error) {
	logger.Debug("Finding subcategory by ID in database", map[string]interface{}{
		"subcategory_id": id,
	})

	var subCategory model.SubCategory
	if err := r.db.Preload("Category").First(&subCategory, id).Error; err != nil {
		logger.Debug("Subcategory not found in database", map[string]interface{}{
			"subcategory_id": id,
		})
		return nil, err
	}

	return &subCategory, nil
}

func (r *categoryRepository) UpdateSubCategory(subCategory *model.SubCategory) error {
	logger.Debug("Updating subcategory in database", map[string]interface{}{
		"subcategory_id": subCategory.ID,
		"name":           subCategory.Name,
	})

	if err := r.db.Save(subCategory).Error; err != nil {
		logger.Error("Failed to update subcategory in database", err, map[string]interface{}{
			"subcategory_id": subCategory.ID,
		})
		return err
	}

	logger.Debug("Subcategory updated in database", map[string]interface{}{
		"subcategory_id": subCategory.ID,
	})
	return nil
}

// DeleteSubCategory refuses to remove a subcategory that still has
// products attached.
func (r *categoryRepository) DeleteSubCategory(id uint) error {
	logger.Debug("Deleting subcategory from database", map[string]interface{}{
		"subcategory_id": id,
	})

	return r.db.Transaction(func(tx *gorm.DB) error {
		var productCount int64
		if err := tx.Model(&model.Product{}).
			Where("sub_category_id = ?", id).
			Count(&productCount).Error; err != nil {
			return err
		}

		if productCount > 0 {
			logger.Warn("Subcategory delete blocked by dependents", map[string]interface{}{
				"subcategory_id": id,
				"product_rows":   productCount,
			})
			return ErrSubCategoryHasDependents
		}

		result := tx.Delete(&model.SubCategory{}, id)
		if result.Error != nil {
			logger.Error("Failed to delete subcategory from database", result.Error, map[string]interface{}{
				"subcategory_id": id,
			})
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		logger.Debug("Subcategory deleted from database", map[string]interface{}{
			"subcategory_id": id,
		})
		return nil
	})
}
