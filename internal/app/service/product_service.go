package service

import (
	"errors"

	"github.com/asifdev/trendcart-backend/internal/app/model"
	"github.com/asifdev/trendcart-backend/internal/app/repository"
	"github.com/asifdev/trendcart-backend/pkg/logger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound     = errors.New("product not found")
	ErrSubCategoryMismatch = errors.New("subcategory does not belong to category")
	ErrInvalidPrice        = errors.New("invalid product price")
	ErrSliderImageNotFound = errors.New("slider image not found")
)

const (
	relatedProductLimit = 4
	newArrivalLimit     = 8
	suggestionLimit     = 5
)

type ProductInput struct {
	Name              string
	Description       string
	CategoryID        uint
	SubCategoryID     *uint
	Price             decimal.Decimal
	OldPrice          *decimal.Decimal
	QuantityAvailable int
	ImageURLs         []string
	MainImageIndex    int
}

// HomeData is everything the storefront landing page needs in one call.
type HomeData struct {
	SliderImages []model.SliderImage `json:"slider_images"`
	Categories   []model.Category    `json:"categories"`
	BestSelling  []model.Product     `json:"best_selling"`
	NewArrivals  []model.Product     `json:"new_arrivals"`
}

type ProductService interface {
	GetHomeData() (*HomeData, error)
	ListProducts(filter repository.ProductFilter) ([]model.Product, error)
	GetProduct(id uint) (*model.Product, error)
	GetRelatedProducts(productID uint) ([]model.Product, error)
	SearchProducts(term string) ([]model.Product, error)
	Suggest(term string) (repository.SearchSuggestions, error)
	CreateProduct(input ProductInput) (*model.Product, error)
	UpdateProduct(id uint, input ProductInput) (*model.Product, error)
	DeleteProduct(id uint) error
	ListSliderImages() ([]model.SliderImage, error)
	CreateSliderImage(title, imageURL string) (*model.SliderImage, error)
	DeleteSliderImage(id uint) error
}

type productService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
) ProductService {
	return &productService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

func (s *productService) GetHomeData() (*HomeData, error) {
	logger.Debug("Assembling home data", nil)

	sliderImages, err := s.productRepo.FindSliderImages()
	if err != nil {
		return nil, err
	}

	categories, err := s.categoryRepo.FindAll()
	if err != nil {
		return nil, err
	}

	bestSelling := true
	bestSellers, err := s.productRepo.FindWithFilter(repository.ProductFilter{
		BestSelling: &bestSelling,
	})
	if err != nil {
		return nil, err
	}

	newArrivals, err := s.productRepo.FindWithFilter(repository.ProductFilter{
		SortBy: repository.ProductSortNewest,
		Limit:  newArrivalLimit,
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Home data assembled", map[string]interface{}{
		"slider_images": len(sliderImages),
		"categories":    len(categories),
		"best_selling":  len(bestSellers),
		"new_arrivals":  len(newArrivals),
	})
	return &HomeData{
		SliderImages: sliderImages,
		Categories:   categories,
		BestSelling:  bestSellers,
		NewArrivals:  newArrivals,
	}, nil
}

func (s *productService) ListProducts(filter repository.ProductFilter) ([]model.Product, error) {
	logger.Debug("Listing products", map[string]interface{}{
		"category_id":    filter.CategoryID,
		"subcategory_id": filter.SubCategoryID,
	})
	return s.productRepo.FindWithFilter(filter)
}

func (s *productService) GetProduct(id uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

// GetRelatedProducts returns up to four random products that share the
// product's category.
func (s *productService) GetRelatedProducts(productID uint) ([]model.Product, error) {
	product, err := s.GetProduct(productID)
	if err != nil {
		return nil, err
	}

	return s.productRepo.FindRelated(product.CategoryID, product.ID, relatedProductLimit)
}

func (s *productService) SearchProducts(term string) ([]model.Product, error) {
	logger.Debug("Searching products", map[string]interface{}{
		"term": term,
	})

	if term == "" {
		return []model.Product{}, nil
	}

	return s.productRepo.FindWithFilter(repository.ProductFilter{Search: term})
}

func (s *productService) Suggest(term string) (repository.SearchSuggestions, error) {
	if term == "" {
		return repository.SearchSuggestions{}, nil
	}
	return s.productRepo.Suggest(term, suggestionLimit)
}

func (s *productService) validateCatalogRefs(categoryID uint, subCategoryID *uint) error {
	if _, err := s.categoryRepo.FindByID(categoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}

	if subCategoryID != nil {
		subCategory, err := s.categoryRepo.FindSubCategoryByID(*subCategoryID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSubCategoryNotFound
			}
			return err
		}
		if subCategory.CategoryID != categoryID {
			logger.Warn("Subcategory does not belong to category", map[string]interface{}{
				"category_id":    categoryID,
				"subcategory_id": *subCategoryID,
				"parent_id":      subCategory.CategoryID,
			})
			return ErrSubCategoryMismatch
		}
	}

	return nil
}

func (s *productService) CreateProduct(input ProductInput) (*model.Product, error) {
	logger.Info("Creating product", map[string]interface{}{
		"name":        input.Name,
		"category_id": input.CategoryID,
	})

	if input.Price.IsNegative() {
		return nil, ErrInvalidPrice
	}

	if err := s.validateCatalogRefs(input.CategoryID, input.SubCategoryID); err != nil {
		return nil, err
	}

	product := &model.Product{
		Name:              input.Name,
		Description:       input.Description,
		CategoryID:        input.CategoryID,
		SubCategoryID:     input.SubCategoryID,
		Price:             input.Price,
		OldPrice:          input.OldPrice,
		QuantityAvailable: input.QuantityAvailable,
	}

	for i, url := range input.ImageURLs {
		product.Images = append(product.Images, model.ProductImage{
			ImageURL: url,
			IsMain:   i == input.MainImageIndex,
		})
	}

	if err := s.productRepo.Create(product); err != nil {
		if errors.Is(err, model.ErrNegativePrice) {
			return nil, ErrInvalidPrice
		}
		logger.Error("Failed to create product", err, map[string]interface{}{
			"name": input.Name,
		})
		return nil, err
	}

	logger.Info("Product created", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
	})
	return product, nil
}

func (s *productService) UpdateProduct(id uint, input ProductInput) (*model.Product, error) {
	logger.Info("Updating product", map[string]interface{}{
		"product_id": id,
	})

	product, err := s.GetProduct(id)
	if err != nil {
		return nil, err
	}

	if input.Price.IsNegative() {
		return nil, ErrInvalidPrice
	}

	if err := s.validateCatalogRefs(input.CategoryID, input.SubCategoryID); err != nil {
		return nil, err
	}

	product.Name = input.Name
	product.Description = input.Description
	product.CategoryID = input.CategoryID
	product.SubCategoryID = input.SubCategoryID
	product.Price = input.Price
	product.OldPrice = input.OldPrice
	product.QuantityAvailable = input.QuantityAvailable

	if err := s.productRepo.Update(product); err != nil {
		if errors.Is(err, model.ErrNegativePrice) {
			return nil, ErrInvalidPrice
		}
		logger.Error("Failed to update product", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}

	logger.Info("Product updated", map[string]interface{}{
		"product_id": id,
	})
	return product, nil
}

func (s *productService) DeleteProduct(id uint) error {
	logger.Info("Deleting product", map[string]interface{}{
		"product_id": id,
	})

	err := s.productRepo.Delete(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrProductNotFound
	}
	return err
}

func (s *productService) ListSliderImages() ([]model.SliderImage, error) {
	return s.productRepo.FindSliderImages()
}

func (s *productService) CreateSliderImage(title, imageURL string) (*model.SliderImage, error) {
	logger.Info("Creating slider image", map[string]interface{}{
		"title": title,
	})

	image := &model.SliderImage{
		Title:    title,
		ImageURL: imageURL,
	}
	if err := s.productRepo.CreateSliderImage(image); err != nil {
		return nil, err
	}
	return image, nil
}

func (s *productService) DeleteSliderImage(id uint) error {
	logger.Info("Deleting slider image", map[string]interface{}{
		"slider_image_id": id,
	})

	err := s.productRepo.DeleteSliderImage(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrSliderImageNotFound
	}
	return err
}
