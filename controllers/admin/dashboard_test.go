package adminControllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/tilemart/storefront-api/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{}, &models.Category{}, &models.Product{},
		&models.Order{}, &models.OrderItem{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func TestDashboardStats(t *testing.T) {
	db := setupTestDB(t)

	assert.NoError(t, db.Create(&models.Category{Name: "Tiles"}).Error)
	assert.NoError(t, db.Create(&models.Product{Title: "Ceramic Floor Tile", Stock: 200}).Error)
	assert.NoError(t, db.Create(&models.Product{Title: "Nearly Gone Tile", Stock: 3}).Error)
	assert.NoError(t, db.Create(&models.User{ID: "u1", Email: "asha@example.com", PasswordHash: "x"}).Error)
	assert.NoError(t, db.Create(&models.Order{UserID: "u1", Status: models.OrderStatusPending}).Error)
	assert.NoError(t, db.Create(&models.Order{UserID: "u1", Status: models.OrderStatusDelivered}).Error)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin/dashboard", GetDashboardStats(db))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/admin/dashboard", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var stats map[string]int64
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.EqualValues(t, 1, stats["users"])
	assert.EqualValues(t, 2, stats["products"])
	assert.EqualValues(t, 1, stats["categories"])
	assert.EqualValues(t, 2, stats["orders"])
	assert.EqualValues(t, 1, stats["pendingOrders"])
	assert.EqualValues(t, 1, stats["lowStockItems"])
}
