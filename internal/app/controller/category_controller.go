package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/asifdev/trendcart-backend/internal/app/service"
	apperrors "github.com/asifdev/trendcart-backend/internal/errors"
	"github.com/asifdev/trendcart-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type CategoryController struct {
	categoryService service.CategoryService
}

func NewCategoryController(categoryService service.CategoryService) *CategoryController {
	return &CategoryController{
		categoryService: categoryService,
	}
}

type CategoryRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=100"`
	ImageURL string `json:"image_url"`
}

type SubCategoryRequest struct {
	CategoryID uint   `json:"category_id" binding:"required"`
	Name       string `json:"name" binding:"required,min=1,max=100"`
}

// ListCategories returns the full category tree
// GET /api/v1/categories
func (ctrl *CategoryController) ListCategories(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	categories, err := ctrl.categoryService.ListCategories()
	if err != nil {
		log.Error("Failed to list categories", err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list categories")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"categories": categories,
		"count":      len(categories),
	})
}

// GetCategory returns one category with its subcategories
// GET /api/v1/categories/:id
func (ctrl *CategoryController) GetCategory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid category ID")
		return
	}

	category, err := ctrl.categoryService.GetCategory(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			apperrors.NotFound(c, apperrors.CatalogCategoryNotFound, "Category not found")
			return
		}
		log.Error("Failed to get category", err, map[string]interface{}{
			"category_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get category")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"category": category,
	})
}

// CreateCategory adds a category (admin)
// POST /api/v1/admin/categories
func (ctrl *CategoryController) CreateCategory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid create category request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid category data")
		return
	}

	category, err := ctrl.categoryService.CreateCategory(req.Name, req.ImageURL)
	if err != nil {
		log.Error("Failed to create category", err, map[string]interface{}{
			"name": req.Name,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create category")
		return
	}

	log.Info("Category created by admin", map[string]interface{}{
		"category_id": category.ID,
		"name":        category.Name,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Category created successfully",
		"category": category,
	})
}

// UpdateCategory edits a category (admin)
// PUT /api/v1/admin/categories/:id
func (ctrl *CategoryController) UpdateCategory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid category ID")
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid category data")
		return
	}

	category, err := ctrl.categoryService.UpdateCategory(uint(id), req.Name, req.ImageURL)
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			apperrors.NotFound(c, apperrors.CatalogCategoryNotFound, "Category not found")
			return
		}
		log.Error("Failed to update category", err, map[string]interface{}{
			"category_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update category")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Category updated successfully",
		"category": category,
	})
}

// DeleteCategory removes an empty category (admin). Categories that
// still hold subcategories or products are refused.
// DELETE /api/v1/admin/categories/:id
func (ctrl *CategoryController) DeleteCategory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid category ID")
		return
	}

	if err := ctrl.categoryService.DeleteCategory(uint(id)); err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryNotFound):
			apperrors.NotFound(c, apperrors.CatalogCategoryNotFound, "Category not found")
		case errors.Is(err, service.ErrCategoryInUse):
			log.Warn("Category delete refused: still in use", map[string]interface{}{
				"category_id": id,
			})
			apperrors.Conflict(c, apperrors.CatalogCategoryInUse, "Category still has subcategories or products")
		default:
			log.Error("Failed to delete category", err, map[string]interface{}{
				"category_id": id,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "delete category")
		}
		return
	}

	log.Info("Category deleted by admin", map[string]interface{}{
		"category_id": id,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Category deleted successfully",
	})
}

// ListSubCategories returns every subcategory
// GET /api/v1/subcategories
func (ctrl *CategoryController) ListSubCategories(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	subCategories, err := ctrl.categoryService.ListSubCategories()
	if err != nil {
		log.Error("Failed to list subcategories", err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list subcategories")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"subcategories": subCategories,
		"count":         len(subCategories),
	})
}

// CreateSubCategory adds a subcategory under a category (admin)
// POST /api/v1/admin/subcategories
func (ctrl *CategoryController) CreateSubCategory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req SubCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid subcategory data")
		return
	}

	subCategory, err := ctrl.categoryService.CreateSubCategory(req.CategoryID, req.Name)
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			apperrors.NotFound(c, apperrors.CatalogCategoryNotFound, "Parent category not found")
			return
		}
		log.Error("Failed to create subcategory", err, map[string]interface{}{
			"category_id": req.CategoryID,
			"name":        req.Name,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create subcategory")
		return
	}

	log.Info("Subcategory created by admin", map[string]interface{}{
		"subcategory_id": subCategory.ID,
		"category_id":    req.CategoryID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Subcategory created successfully",
		"subcategory": subCategory,
	})
}

// UpdateSubCategory edits a subcategory (admin)
// PUT /api/v1/admin/subcategories/:id
func (ctrl *CategoryController) UpdateSubCategory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid subcategory ID")
		return
	}

	var req SubCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid subcategory data")
		return
	}

	subCategory, err := ctrl.categoryService.UpdateSubCategory(uint(id), req.CategoryID, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSubCategoryNotFound):
			apperrors.NotFound(c, apperrors.CatalogSubCategoryNotFound, "Subcategory not found")
		case errors.Is(err, service.ErrCategoryNotFound):
			apperrors.NotFound(c, apperrors.CatalogCategoryNotFound, "Parent category not found")
		default:
			log.Error("Failed to update subcategory", err, map[string]interface{}{
				"subcategory_id": id,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update subcategory")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Subcategory updated successfully",
		"subcategory": subCategory,
	})
}

// DeleteSubCategory removes an empty subcategory (admin)
// DELETE /api/v1/admin/subcategories/:id
func (ctrl *CategoryController) DeleteSubCategory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid subcategory ID")
		return
	}

	if err := ctrl.categoryService.DeleteSubCategory(uint(id)); err != nil {
		switch {
		case errors.Is(err, service.ErrSubCategoryNotFound):
			apperrors.NotFound(c, apperrors.CatalogSubCategoryNotFound, "Subcategory not found")
		case errors.Is(err, service.ErrSubCategoryInUse):
			log.Warn("Subcategory delete refused: still in use", map[string]interface{}{
				"subcategory_id": id,
			})
			apperrors.Conflict(c, apperrors.CatalogSubCategoryInUse, "Subcategory still has products")
		default:
			log.Error("Failed to delete subcategory", err, map[string]interface{}{
				"subcategory_id": id,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "delete subcategory")
		}
		return
	}

	log.Info("Subcategory deleted by admin", map[string]interface{}{
		"subcategory_id": id,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Subcategory deleted successfully",
	})
}
