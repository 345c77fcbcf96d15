package service

import (
	"errors"

	"github.com/asifdev/trendcart-backend/internal/app/model"
	"github.com/asifdev/trendcart-backend/internal/app/repository"
	"github.com/asifdev/trendcart-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound    = errors.New("category not found")
	ErrSubCategoryNotFound = errors.New("subcategory not found")
	ErrCategoryInUse       = errors.New("category still has subcategories or products")
	ErrSubCategoryInUse    = errors.New("subcategory still has products")
)

type CategoryService interface {
	ListCategories() ([]model.Category, error)
	GetCategory(id uint) (*model.Category, error)
	CreateCategory(name, imageURL string) (*model.Category, error)
	UpdateCategory(id uint, name, imageURL string) (*model.Category, error)
	DeleteCategory(id uint) error

	ListSubCategories() ([]model.SubCategory, error)
	GetSubCategory(id uint) (*model.SubCategory, error)
	CreateSubCategory(categoryID uint, name string) (*model.SubCategory, error)
	UpdateSubCategory(id uint, categoryID uint, name string) (*model.SubCategory, error)
	DeleteSubCategory(id uint) error
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) ListCategories() ([]model.Category, error) {
	logger.Debug("Listing categories", nil)
	return s.categoryRepo.FindAll()
}

func (s *categoryService) GetCategory(id uint) (*model.Category, error) {
	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

func (s *categoryService) CreateCategory(name, imageURL string) (*model.Category, error) {
	logger.Info("Creating category", map[string]interface{}{
		"name": name,
	})

	category := &model.Category{
		Name:     name,
		ImageURL: imageURL,
	}
	if err := s.categoryRepo.Create(category); err != nil {
		logger.Error("Failed to create category", err, map[string]interface{}{
			"name": name,
		})
		return nil, err
	}

	logger.Info("Category created", map[string]interface{}{
		"category_id": category.ID,
		"name":        name,
	})
	return category, nil
}

func (s *categoryService) UpdateCategory(id uint, name, imageURL string) (*model.Category, error) {
	logger.Info("Updating category", map[string]interface{}{
		"category_id": id,
	})

	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	category.Name = name
	if imageURL != "" {
		category.ImageURL = imageURL
	}

	if err := s.categoryRepo.Update(category); err != nil {
		logger.Error("Failed to update category", err, map[string]interface{}{
			"category_id": id,
		})
		return nil, err
	}

	return category, nil
}

func (s *categoryService) DeleteCategory(id uint) error {
	logger.Info("Deleting category", map[string]interface{}{
		"category_id": id,
	})

	err := s.categoryRepo.Delete(id)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrCategoryHasDependents):
		return ErrCategoryInUse
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrCategoryNotFound
	default:
		return err
	}
}

func (s *categoryService) ListSubCategories() ([]model.SubCategory, error) {
	logger.Debug("Listing subcategories", nil)
	return s.categoryRepo.FindAllSubCategories()
}

func (s *categoryService) GetSubCategory(id uint) (*model.SubCategory, error) {
	subCategory, err := s.categoryRepo.FindSubCategoryByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubCategoryNotFound
		}
		return nil, err
	}
	return subCategory, nil
}

func (s *categoryService) CreateSubCategory(categoryID uint, name string) (*model.SubCategory, error) {
	logger.Info("Creating subcategory", map[string]interface{}{
		"category_id": categoryID,
		"name":        name,
	})

	if _, err := s.categoryRepo.FindByID(categoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	subCategory := &model.SubCategory{
		CategoryID: categoryID,
		Name:       name,
	}
	if err := s.categoryRepo.CreateSubCategory(subCategory); err != nil {
		logger.Error("Failed to create subcategory", err, map[string]interface{}{
			"category_id": categoryID,
			"name":        name,
		})
		return nil, err
	}

	return subCategory, nil
}

func (s *categoryService) UpdateSubCategory(id uint, categoryID uint, name string) (*model.SubCategory, error) {
	logger.Info("Updating subcategory", map[string]interface{}{
		"subcategory_id": id,
	})

	subCategory, err := s.categoryRepo.FindSubCategoryByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubCategoryNotFound
		}
		return nil, err
	}

	if categoryID != 0 && categoryID != subCategory.CategoryID {
		if _, err := s.categoryRepo.FindByID(categoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
		subCategory.CategoryID = categoryID
	}
	subCategory.Name = name

	if err := s.categoryRepo.UpdateSubCategory(subCategory); err != nil {
		logger.Error("Failed to update subcategory", err, map[string]interface{}{
			"subcategory_id": id,
		})
		return nil, err
	}

	return subCategory, nil
}

func (s *categoryService) DeleteSubCategory(id uint) error {
	logger.Info("Deleting subcategory", map[string]interface{}{
		"subcategory_id": id,
	})

	err := s.categoryRepo.DeleteSubCategory(id)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrSubCategoryHasDependents):
		return ErrSubCategoryInUse
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrSubCategoryNotFound
	default:
		return err
	}
}
