package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	productController "github.com/tilemart/storefront-api/controllers/product"
	"gorm.io/gorm"
)

// SetupCatalogRoutes registers the public browsing endpoints. Anyone can
// browse products and categories; a session is only needed to buy.
func SetupCatalogRoutes(r *gin.Engine, db *gorm.DB) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/products", productController.GetProducts(db))        // GET /products
	r.GET("/products/:id", productController.GetProductByID(db)) // GET /products/:id

	r.GET("/categories", productController.GetAllCategories(db))    // GET /categories
	r.GET("/categories/:id", productController.GetCategoryByID(db)) // GET /categories/:id
}
