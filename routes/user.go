package routes

import (
	"github.com/gin-gonic/gin"
	cartControllers "github.com/tilemart/storefront-api/controllers/cart"
	orderControllers "github.com/tilemart/storefront-api/controllers/order"
	userControllers "github.com/tilemart/storefront-api/controllers/user"
	"github.com/tilemart/storefront-api/middleware"
	"gorm.io/gorm"
)

// SetupUserRoutes registers all "/user/*" endpoints. Requires JWT middleware.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB) {
	userGroup := r.Group("/user")
	userGroup.Use(middleware.ValidateToken)
	{
		// ---- Profile ----
		userGroup.GET("/", userControllers.GetUser(db))    // GET /user/
		userGroup.PUT("/", userControllers.UpdateUser(db)) // PUT /user/

		// ---- Shopping cart ----
		cartGroup := userGroup.Group("/cart")
		{
			cartGroup.GET("/", cartControllers.GetUserCart(db))                  // GET /user/cart
			cartGroup.POST("/", cartControllers.UpdateCartItem(db))              // POST /user/cart
			cartGroup.DELETE("/:product_id", cartControllers.DeleteCartItem(db)) // DELETE /user/cart/:product_id
			cartGroup.DELETE("/", cartControllers.ClearUserCart(db))             // DELETE /user/cart
		}

		// ---- Checkout + order history ----
		userGroup.POST("/orders", orderControllers.PlaceOrderHandler(db))   // POST /user/orders
		userGroup.GET("/orders", orderControllers.GetUserOrdersHandler(db)) // GET /user/orders
	}
}
