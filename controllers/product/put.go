package productController

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tilemart/storefront-api/models"
	"gorm.io/gorm"
)

// UpdateProductInput uses pointers so absent fields are left untouched.
type UpdateProductInput struct {
	Title        *string  `json:"title"`
	Description  *string  `json:"description"`
	Price        *float64 `json:"price"`
	PerBoxPrice  *float64 `json:"perBoxPrice"`
	CategoryID   *uint    `json:"category_id"`
	Image        *string  `json:"image"`
	Stock        *int     `json:"stock"`
	Material     *string  `json:"material"`
	Application  *string  `json:"application"`
	Size         *string  `json:"size"`
	Color        *string  `json:"color"`
	QtyPerBox    *int     `json:"qtyPerBox"`
	CoverageArea *string  `json:"coverageArea"`
	NoOfBoxes    *int     `json:"noOfBoxes"`
}

// PUT /admin/products/:id
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		var product models.Product
		if err := db.Preload("Category").First(&product, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		var input UpdateProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if input.Price != nil && *input.Price < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Price cannot be negative"})
			return
		}
		if input.PerBoxPrice != nil && *input.PerBoxPrice < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Per-box price cannot be negative"})
			return
		}
		if input.Stock != nil && *input.Stock < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Stock cannot be negative"})
			return
		}

		if input.CategoryID != nil {
			var category models.Category
			if err := db.First(&category, *input.CategoryID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					c.JSON(http.StatusBadRequest, gin.H{"error": "Category does not exist"})
					return
				}
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch category"})
				return
			}
			product.CategoryID = category.ID
			product.Category = category
		}

		if input.Title != nil {
			product.Title = *input.Title
		}
		if input.Description != nil {
			product.Description = *input.Description
		}
		if input.Price != nil {
			product.Price = *input.Price
		}
		if input.PerBoxPrice != nil {
			product.PerBoxPrice = *input.PerBoxPrice
		}
		if input.Image != nil {
			product.Image = *input.Image
		}
		if input.Stock != nil {
			product.Stock = *input.Stock
		}
		if input.Material != nil {
			product.Material = *input.Material
		}
		if input.Application != nil {
			product.Application = *input.Application
		}
		if input.Size != nil {
			product.Size = *input.Size
		}
		if input.Color != nil {
			product.Color = *input.Color
		}
		if input.QtyPerBox != nil {
			product.QtyPerBox = *input.QtyPerBox
		}
		if input.CoverageArea != nil {
			product.CoverageArea = *input.CoverageArea
		}
		if input.NoOfBoxes != nil {
			product.NoOfBoxes = *input.NoOfBoxes
		}

		if err := db.Save(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}

		c.JSON(http.StatusOK, product)
	}
}
