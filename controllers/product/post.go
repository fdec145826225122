package productController

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tilemart/storefront-api/models"
	"gorm.io/gorm"
)

type ProductInput struct {
	Title        string  `json:"title" binding:"required"`
	Description  string  `json:"description"`
	Price        float64 `json:"price" binding:"min=0"`
	PerBoxPrice  float64 `json:"perBoxPrice" binding:"min=0"`
	CategoryID   uint    `json:"category_id" binding:"required"`
	Image        string  `json:"image"`
	Stock        int     `json:"stock" binding:"min=0"`
	Material     string  `json:"material"`
	Application  string  `json:"application"`
	Size         string  `json:"size"`
	Color        string  `json:"color"`
	QtyPerBox    int     `json:"qtyPerBox"`
	CoverageArea string  `json:"coverageArea"`
	NoOfBoxes    int     `json:"noOfBoxes"`
}

// POST /admin/products
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var category models.Category
		if err := db.First(&category, input.CategoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Category does not exist"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch category"})
			return
		}

		product := models.Product{
			Title:        input.Title,
			Description:  input.Description,
			Price:        input.Price,
			PerBoxPrice:  input.PerBoxPrice,
			CategoryID:   category.ID,
			Category:     category,
			Image:        input.Image,
			Stock:        input.Stock,
			Material:     input.Material,
			Application:  input.Application,
			Size:         input.Size,
			Color:        input.Color,
			QtyPerBox:    input.QtyPerBox,
			CoverageArea: input.CoverageArea,
			NoOfBoxes:    input.NoOfBoxes,
		}

		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}

		c.JSON(http.StatusCreated, product)
	}
}
