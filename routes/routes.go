package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry-point that wires up the public, user and
// admin route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	// Public auth + catalog routes (no middleware)
	SetupAuthRoutes(r, db)
	SetupCatalogRoutes(r, db)

	// User routes (JWT-protected)
	SetupUserRoutes(r, db)

	// Admin routes (JWT + role-protected)
	SetupAdminRoutes(r, db)
}
