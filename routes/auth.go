package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/tilemart/storefront-api/auth"
	"github.com/tilemart/storefront-api/middleware"
	"gorm.io/gorm"
)

// SetupAuthRoutes registers the "/auth/*" endpoints.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/signup", auth.SignupHandler(db)) // POST /auth/signup
		authGroup.POST("/login", auth.LoginHandler(db))   // POST /auth/login

		authGroup.GET("/me", middleware.ValidateToken, auth.MeHandler(db)) // GET /auth/me
	}
}
