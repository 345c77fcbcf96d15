package controller

import (
	"net/http"
	"strings"

	"github.com/asifdev/trendcart-backend/internal/app/service"
	apperrors "github.com/asifdev/trendcart-backend/internal/errors"
	"github.com/asifdev/trendcart-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// CatalogController serves the storefront-facing aggregate endpoints:
// the home page payload, full-text search, and search suggestions.
type CatalogController struct {
	productService service.ProductService
	cartService    service.CartService
}

func NewCatalogController(productService service.ProductService, cartService service.CartService) *CatalogController {
	return &CatalogController{
		productService: productService,
		cartService:    cartService,
	}
}

// Home returns everything the landing page renders in one call. With a
// valid token the payload also carries the product ids already in the
// visitor's cart; guests get the same payload without them.
// GET /api/v1/home
func (ctrl *CatalogController) Home(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	data, err := ctrl.productService.GetHomeData()
	if err != nil {
		log.Error("Failed to assemble home data", err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "load home page")
		return
	}

	response := gin.H{
		"slider_images": data.SliderImages,
		"categories":    data.Categories,
		"best_selling":  data.BestSelling,
		"new_arrivals":  data.NewArrivals,
	}

	if userID, authed := middleware.GetUserID(c); authed {
		cartProductIDs, err := ctrl.cartService.GetCartProductIDs(userID)
		if err != nil {
			log.Error("Failed to fetch cart product ids", err, map[string]interface{}{
				"user_id": userID,
			})
		} else {
			response["cart_product_ids"] = cartProductIDs
		}
	}

	c.JSON(http.StatusOK, response)
}

// Search runs a product search across names, descriptions, and the
// category tree
// GET /api/v1/search?q=term
func (ctrl *CatalogController) Search(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	term := strings.TrimSpace(c.Query("q"))

	products, err := ctrl.productService.SearchProducts(term)
	if err != nil {
		log.Error("Search failed", err, map[string]interface{}{
			"term": term,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "search products")
		return
	}

	log.Info("Search completed", map[string]interface{}{
		"term":  term,
		"count": len(products),
	})

	c.JSON(http.StatusOK, gin.H{
		"query":    term,
		"products": products,
		"count":    len(products),
	})
}

// Suggest returns typeahead suggestions grouped by kind
// GET /api/v1/search/suggest?q=term
func (ctrl *CatalogController) Suggest(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	term := strings.TrimSpace(c.Query("q"))

	suggestions, err := ctrl.productService.Suggest(term)
	if err != nil {
		log.Error("Failed to build suggestions", err, map[string]interface{}{
			"term": term,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "search suggestions")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"results": gin.H{
			"products":      suggestions.Products,
			"categories":    suggestions.Categories,
			"subcategories": suggestions.SubCategories,
		},
	})
}
