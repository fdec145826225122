package adminControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tilemart/storefront-api/models"
	"gorm.io/gorm"
)

const lowStockThreshold = 10

// GET /admin/dashboard
// Counters the admin landing page shows: totals plus pending orders and
// low-stock products.
func GetDashboardStats(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var userCount, productCount, categoryCount, orderCount int64
		var pendingOrders, lowStockCount int64

		counts := []struct {
			model interface{}
			dest  *int64
			scope func(*gorm.DB) *gorm.DB
		}{
			{&models.User{}, &userCount, nil},
			{&models.Product{}, &productCount, nil},
			{&models.Category{}, &categoryCount, nil},
			{&models.Order{}, &orderCount, nil},
			{&models.Order{}, &pendingOrders, func(q *gorm.DB) *gorm.DB {
				return q.Where("status = ?", models.OrderStatusPending)
			}},
			{&models.Product{}, &lowStockCount, func(q *gorm.DB) *gorm.DB {
				return q.Where("stock < ?", lowStockThreshold)
			}},
		}

		for _, cnt := range counts {
			q := db.Model(cnt.model)
			if cnt.scope != nil {
				q = cnt.scope(q)
			}
			if err := q.Count(cnt.dest).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute dashboard stats"})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"users":         userCount,
			"products":      productCount,
			"categories":    categoryCount,
			"orders":        orderCount,
			"pendingOrders": pendingOrders,
			"lowStockItems": lowStockCount,
		})
	}
}
