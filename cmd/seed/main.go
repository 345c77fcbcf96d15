package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/asifdev/trendcart-backend/config"
	"github.com/asifdev/trendcart-backend/internal/app/model"
	"github.com/asifdev/trendcart-backend/internal/db"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// Imports a catalog from an xlsx workbook. Expected columns:
// Category | SubCategory | Name | Description | Price | Old Price | Quantity | Image URL
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	rows, err := readCatalogRows(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Total products to import: %d\n", len(rows))

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	imported, err := importCatalog(db.GetDB(), rows)
	if err != nil {
		log.Fatal("Failed to import catalog:", err)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total products imported: %d\n", imported)
}

type catalogRow struct {
	Category    string
	SubCategory string
	Name        string
	Description string
	Price       decimal.Decimal
	OldPrice    *decimal.Decimal
	Quantity    int
	ImageURL    string
}

func readCatalogRows(filePath string) ([]catalogRow, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	raw, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(raw) < 2 {
		return nil, fmt.Errorf("sheet %s has no data rows", sheetName)
	}

	cell := func(row []string, i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	var rows []catalogRow
	for i, row := range raw[1:] {
		name := cell(row, 2)
		if name == "" {
			continue
		}

		price, err := decimal.NewFromString(cell(row, 4))
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid price %q", i+2, cell(row, 4))
		}

		var oldPrice *decimal.Decimal
		if v := cell(row, 5); v != "" {
			p, err := decimal.NewFromString(v)
			if err != nil {
				return nil, fmt.Errorf("row %d: invalid old price %q", i+2, v)
			}
			oldPrice = &p
		}

		quantity := 1
		if v := cell(row, 6); v != "" {
			q, err := strconv.Atoi(v)
			if err != nil {
				return nil, fmt.Errorf("row %d: invalid quantity %q", i+2, v)
			}
			quantity = q
		}

		rows = append(rows, catalogRow{
			Category:    cell(row, 0),
			SubCategory: cell(row, 1),
			Name:        name,
			Description: cell(row, 3),
			Price:       price,
			OldPrice:    oldPrice,
			Quantity:    quantity,
			ImageURL:    cell(row, 7),
		})
	}

	return rows, nil
}

// importCatalog upserts the category tree and inserts the products.
// Categories and subcategories are matched by name so the import can be
// re-run against an existing catalog.
func importCatalog(gdb *gorm.DB, rows []catalogRow) (int, error) {
	imported := 0

	err := gdb.Transaction(func(tx *gorm.DB) error {
		categories := map[string]*model.Category{}
		subCategories := map[string]*model.SubCategory{}

		for _, row := range rows {
			category, ok := categories[row.Category]
			if !ok {
				category = &model.Category{Name: row.Category}
				if err := tx.Where("name = ?", row.Category).FirstOrCreate(category).Error; err != nil {
					return fmt.Errorf("category %q: %w", row.Category, err)
				}
				categories[row.Category] = category
			}

			var subCategoryID *uint
			if row.SubCategory != "" {
				key := row.Category + "/" + row.SubCategory
				subCategory, ok := subCategories[key]
				if !ok {
					subCategory = &model.SubCategory{
						CategoryID: category.ID,
						Name:       row.SubCategory,
					}
					if err := tx.Where("category_id = ? AND name = ?", category.ID, row.SubCategory).
						FirstOrCreate(subCategory).Error; err != nil {
						return fmt.Errorf("subcategory %q: %w", row.SubCategory, err)
					}
					subCategories[key] = subCategory
				}
				subCategoryID = &subCategory.ID
			}

			product := model.Product{
				Name:              row.Name,
				Description:       row.Description,
				CategoryID:        category.ID,
				SubCategoryID:     subCategoryID,
				Price:             row.Price,
				OldPrice:          row.OldPrice,
				QuantityAvailable: row.Quantity,
			}
			if row.ImageURL != "" {
				product.Images = []model.ProductImage{
					{ImageURL: row.ImageURL, IsMain: true},
				}
			}

			if err := tx.Create(&product).Error; err != nil {
				return fmt.Errorf("product %q: %w", row.Name, err)
			}
			imported++
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return imported, nil
}
