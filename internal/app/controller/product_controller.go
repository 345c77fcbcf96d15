package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/asifdev/trendcart-backend/internal/app/repository"
	"github.com/asifdev/trendcart-backend/internal/app/service"
	apperrors "github.com/asifdev/trendcart-backend/internal/errors"
	"github.com/asifdev/trendcart-backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type ProductController struct {
	productService service.ProductService
}

func NewProductController(productService service.ProductService) *ProductController {
	return &ProductController{
		productService: productService,
	}
}

type ProductRequest struct {
	Name              string           `json:"name" binding:"required,min=1,max=200"`
	Description       string           `json:"description"`
	CategoryID        uint             `json:"category_id" binding:"required"`
	SubCategoryID     *uint            `json:"sub_category_id"`
	Price             decimal.Decimal  `json:"price" binding:"required"`
	OldPrice          *decimal.Decimal `json:"old_price"`
	QuantityAvailable int              `json:"quantity_available"`
	ImageURLs         []string         `json:"image_urls"`
	MainImageIndex    int              `json:"main_image_index"`
}

func (req *ProductRequest) toInput() service.ProductInput {
	return service.ProductInput{
		Name:              req.Name,
		Description:       req.Description,
		CategoryID:        req.CategoryID,
		SubCategoryID:     req.SubCategoryID,
		Price:             req.Price,
		OldPrice:          req.OldPrice,
		QuantityAvailable: req.QuantityAvailable,
		ImageURLs:         req.ImageURLs,
		MainImageIndex:    req.MainImageIndex,
	}
}

func parseProductFilter(c *gin.Context) repository.ProductFilter {
	filter := repository.ProductFilter{}

	if v, err := strconv.ParseUint(c.Query("category_id"), 10, 32); err == nil {
		id := uint(v)
		filter.CategoryID = &id
	}
	if v, err := strconv.ParseUint(c.Query("subcategory_id"), 10, 32); err == nil {
		id := uint(v)
		filter.SubCategoryID = &id
	}
	if c.Query("best_selling") == "true" {
		best := true
		filter.BestSelling = &best
	}
	switch c.Query("sort") {
	case "price_asc":
		filter.SortBy = repository.ProductSortPriceAsc
	case "price_desc":
		filter.SortBy = repository.ProductSortPriceDesc
	default:
		filter.SortBy = repository.ProductSortNewest
	}
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 {
		filter.Limit = v
	}
	if v, err := strconv.Atoi(c.Query("offset")); err == nil && v > 0 {
		filter.Offset = v
	}

	return filter
}

// ListProducts returns products, filterable by category and subcategory
// GET /api/v1/products
func (ctrl *ProductController) ListProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	products, err := ctrl.productService.ListProducts(parseProductFilter(c))
	if err != nil {
		log.Error("Failed to list products", err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list products")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
	})
}

// GetProduct returns one product with its images and category
// GET /api/v1/products/:id
func (ctrl *ProductController) GetProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product ID")
		return
	}

	product, err := ctrl.productService.GetProduct(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.CatalogProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to get product", err, map[string]interface{}{
			"product_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get product")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product": product,
	})
}

// GetRelatedProducts returns a random sample of same-category products
// GET /api/v1/products/:id/related
func (ctrl *ProductController) GetRelatedProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product ID")
		return
	}

	products, err := ctrl.productService.GetRelatedProducts(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.CatalogProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to get related products", err, map[string]interface{}{
			"product_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get related products")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
	})
}

// CreateProduct adds a product (admin)
// POST /api/v1/admin/products
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid create product request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid product data")
		return
	}

	product, err := ctrl.productService.CreateProduct(req.toInput())
	if err != nil {
		ctrl.respondCatalogError(c, err, "create product")
		return
	}

	log.Info("Product created by admin", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Product created successfully",
		"product": product,
	})
}

// UpdateProduct edits a product (admin)
// PUT /api/v1/admin/products/:id
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product ID")
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid product data")
		return
	}

	product, err := ctrl.productService.UpdateProduct(uint(id), req.toInput())
	if err != nil {
		ctrl.respondCatalogError(c, err, "update product")
		return
	}

	log.Info("Product updated by admin", map[string]interface{}{
		"product_id": id,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Product updated successfully",
		"product": product,
	})
}

// DeleteProduct removes a product (admin). Past order lines keep their
// snapshots, so history is unaffected.
// DELETE /api/v1/admin/products/:id
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product ID")
		return
	}

	if err := ctrl.productService.DeleteProduct(uint(id)); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.CatalogProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to delete product", err, map[string]interface{}{
			"product_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "delete product")
		return
	}

	log.Info("Product deleted by admin", map[string]interface{}{
		"product_id": id,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Product deleted successfully",
	})
}

type SliderImageRequest struct {
	Title    string `json:"title" binding:"max=200"`
	ImageURL string `json:"image_url" binding:"required,url"`
}

// ListSliderImages returns the homepage banners (admin)
// GET /api/v1/admin/slider-images
func (ctrl *ProductController) ListSliderImages(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	images, err := ctrl.productService.ListSliderImages()
	if err != nil {
		log.Error("Failed to list slider images", err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list slider images")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"slider_images": images,
		"count":         len(images),
	})
}

// CreateSliderImage adds a homepage banner (admin)
// POST /api/v1/admin/slider-images
func (ctrl *ProductController) CreateSliderImage(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req SliderImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid slider image request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "A valid image URL is required")
		return
	}

	image, err := ctrl.productService.CreateSliderImage(req.Title, req.ImageURL)
	if err != nil {
		log.Error("Failed to create slider image", err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create slider image")
		return
	}

	log.Info("Slider image created by admin", map[string]interface{}{
		"slider_image_id": image.ID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message":      "Slider image created successfully",
		"slider_image": image,
	})
}

// DeleteSliderImage removes a homepage banner (admin)
// DELETE /api/v1/admin/slider-images/:id
func (ctrl *ProductController) DeleteSliderImage(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid slider image ID")
		return
	}

	if err := ctrl.productService.DeleteSliderImage(uint(id)); err != nil {
		if errors.Is(err, service.ErrSliderImageNotFound) {
			apperrors.NotFound(c, apperrors.CatalogSliderImageNotFound, "Slider image not found")
			return
		}
		log.Error("Failed to delete slider image", err, map[string]interface{}{
			"slider_image_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "delete slider image")
		return
	}

	log.Info("Slider image deleted by admin", map[string]interface{}{
		"slider_image_id": id,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Slider image deleted successfully",
	})
}

func (ctrl *ProductController) respondCatalogError(c *gin.Context, err error, context string) {
	log := middleware.GetLoggerFromContext(c)

	switch {
	case errors.Is(err, service.ErrProductNotFound):
		apperrors.NotFound(c, apperrors.CatalogProductNotFound, "Product not found")
	case errors.Is(err, service.ErrCategoryNotFound):
		apperrors.NotFound(c, apperrors.CatalogCategoryNotFound, "Category not found")
	case errors.Is(err, service.ErrSubCategoryNotFound):
		apperrors.NotFound(c, apperrors.CatalogSubCategoryNotFound, "Subcategory not found")
	case errors.Is(err, service.ErrSubCategoryMismatch):
		apperrors.BadRequest(c, apperrors.CatalogSubCategoryMismatch, "Subcategory does not belong to the selected category")
	case errors.Is(err, service.ErrInvalidPrice):
		apperrors.BadRequest(c, apperrors.CatalogInvalidPrice, "Product price must not be negative")
	default:
		log.Error("Catalog operation failed", err, map[string]interface{}{
			"context": context,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, context)
	}
}
