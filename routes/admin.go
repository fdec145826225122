package routes

import (
	"github.com/gin-gonic/gin"
	adminControllers "github.com/tilemart/storefront-api/controllers/admin"
	cartControllers "github.com/tilemart/storefront-api/controllers/cart"
	orderControllers "github.com/tilemart/storefront-api/controllers/order"
	productController "github.com/tilemart/storefront-api/controllers/product"
	userControllers "github.com/tilemart/storefront-api/controllers/user"
	"github.com/tilemart/storefront-api/middleware"
	"gorm.io/gorm"
)

// SetupAdminRoutes registers all "/admin/*" endpoints. Requires a valid
// session with the admin role.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateToken, middleware.RequireAdmin)
	{
		// ---- Dashboard ----
		adminGroup.GET("/dashboard", adminControllers.GetDashboardStats(db))

		// ---- Product management ----
		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.GET("", productController.GetProducts(db))
			productAdmin.POST("", productController.CreateProduct(db))
			productAdmin.PUT("/:id", productController.UpdateProduct(db))
			productAdmin.DELETE("/:id", productController.DeleteProduct(db))
			productAdmin.GET("/export-excel", productController.ExportProductsToExcel(db))
		}

		// ---- Category management ----
		categoryAdmin := adminGroup.Group("/categories")
		{
			categoryAdmin.GET("", productController.GetAllCategories(db))
			categoryAdmin.POST("", productController.CreateCategory(db))
			categoryAdmin.PUT("/:id", productController.UpdateCategory(db))
			categoryAdmin.DELETE("/:id", productController.DeleteCategory(db))
		}

		// ---- User management ----
		userAdmin := adminGroup.Group("/users")
		{
			userAdmin.GET("", userControllers.GetAllUsers(db))
			userAdmin.PUT("/:id", userControllers.AdminUpdateUser(db))
			userAdmin.DELETE("/:id", userControllers.AdminDeleteUser(db))
		}

		// ---- Order management ----
		orderAdmin := adminGroup.Group("/orders")
		{
			orderAdmin.GET("", orderControllers.GetAllOrdersHandler(db))
			orderAdmin.GET("/:orderID", orderControllers.GetOrderByIDHandler(db))
			orderAdmin.PUT("/:orderID/status", orderControllers.UpdateOrderStatusHandler(db))
			orderAdmin.DELETE("/:orderID", orderControllers.DeleteOrderHandler(db))
		}

		// ---- Carts ----
		adminGroup.GET("/user-cart/:user_id", cartControllers.GetAdminUserCart(db))
	}

	// Live order feed; the browser WebSocket API cannot set an Authorization
	// header, so the upgrade endpoint sits outside the JWT group.
	r.GET("/admin/orders/ws", orderControllers.OrderWebSocketHandler)
}
