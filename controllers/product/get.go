package productController

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tilemart/storefront-api/models"
	"gorm.io/gorm"
)

// GET /products?q=&category_id=
// q is matched case-insensitively as a substring over the catalog's text
// fields, the same set the manage screen searches. No pagination.
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Preload("Category").Order("created_at DESC")

		if categoryID := c.Query("category_id"); categoryID != "" {
			cid, err := strconv.ParseUint(categoryID, 10, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category_id"})
				return
			}
			query = query.Where("category_id = ?", uint(cid))
		}

		var products []models.Product
		if err := query.Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		if q := strings.ToLower(c.Query("q")); q != "" {
			filtered := make([]models.Product, 0, len(products))
			for _, p := range products {
				if productMatches(p, q) {
					filtered = append(filtered, p)
				}
			}
			products = filtered
		}

		c.JSON(http.StatusOK, products)
	}
}

func productMatches(p models.Product, q string) bool {
	haystack := strings.ToLower(strings.Join([]string{
		p.Title, p.Description, p.Category.Name,
		p.Material, p.Application, p.Size, p.Color, p.CoverageArea,
	}, " "))
	return strings.Contains(haystack, q)
}

// GET /products/:id
func GetProductByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		idParam := c.Param("id")
		id, err := strconv.Atoi(idParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		var product models.Product
		if err := db.Preload("Category").First(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
			}
			return
		}
		c.JSON(http.StatusOK, product)
	}
}
