package userControllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
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
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func authAs(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	}
}

func setupRouter(db *gorm.DB, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/user/", authAs(userID), GetUser(db))
	r.PUT("/user/", authAs(userID), UpdateUser(db))
	r.GET("/admin/users", GetAllUsers(db))
	r.PUT("/admin/users/:id", AdminUpdateUser(db))
	r.DELETE("/admin/users/:id", AdminDeleteUser(db))
	return r
}

func seedUser(t *testing.T, db *gorm.DB, email, username, phone string, role models.Role) models.User {
	user := models.User{
		ID:          uuid.NewString(),
		Email:       email,
		Username:    username,
		PhoneNumber: phone,
		Role:        role,
	}
	if err := user.SetPassword("initial-pass"); err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func doJSON(r *gin.Engine, method, path string, payload interface{}) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if payload != nil {
		json.NewEncoder(&body).Encode(payload)
	}
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestGetProfile(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "asha@example.com", "asha", "9876543210", models.RoleClient)
	r := setupRouter(db, user.ID)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/user/", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "asha@example.com")
	assert.NotContains(t, w.Body.String(), "initial-pass")
}

func TestUpdateProfile(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "asha@example.com", "asha", "9876543210", models.RoleClient)
	r := setupRouter(db, user.ID)

	username := "asha_r"
	password := "new-secret"
	w := doJSON(r, "PUT", "/user/", UpdateProfileInput{Username: &username, Password: &password})
	assert.Equal(t, http.StatusOK, w.Code)

	var got models.User
	assert.NoError(t, db.First(&got, "id = ?", user.ID).Error)
	assert.Equal(t, "asha_r", got.Username)
	assert.Equal(t, "9876543210", got.PhoneNumber, "unspecified fields stay untouched")
	assert.True(t, got.VerifyPassword("new-secret"))
	assert.False(t, got.VerifyPassword("initial-pass"))
}

func TestUpdateProfileCannotChangeRole(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "asha@example.com", "asha", "9876543210", models.RoleClient)
	r := setupRouter(db, user.ID)

	// The profile input has no role field; a role key in the body is ignored.
	w := doJSON(r, "PUT", "/user/", map[string]string{"role": "admin"})
	assert.Equal(t, http.StatusOK, w.Code)

	var got models.User
	assert.NoError(t, db.First(&got, "id = ?", user.ID).Error)
	assert.Equal(t, models.RoleClient, got.Role)
}

func TestAdminListUsersSearch(t *testing.T) {
	db := setupTestDB(t)
	seedUser(t, db, "asha@example.com", "asha", "9876543210", models.RoleClient)
	seedUser(t, db, "ben@example.com", "ben", "1234567890", models.RoleAdmin)
	r := setupRouter(db, "ignored")

	cases := []struct {
		q    string
		want int
	}{
		{"asha", 1},
		{"ASHA", 1},
		{"example.com", 2},
		{"admin", 1}, // role match
		{"123456", 1},
		{"nobody", 0},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/admin/users?q="+tc.q, nil)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)

		var users []models.User
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &users))
		assert.Len(t, users, tc.want, "q=%q", tc.q)
	}
}

func TestAdminPromoteUser(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "asha@example.com", "asha", "9876543210", models.RoleClient)
	r := setupRouter(db, "ignored")

	role := "admin"
	w := doJSON(r, "PUT", "/admin/users/"+user.ID, AdminUpdateUserInput{Role: &role})
	assert.Equal(t, http.StatusOK, w.Code)

	var got models.User
	assert.NoError(t, db.First(&got, "id = ?", user.ID).Error)
	assert.Equal(t, models.RoleAdmin, got.Role)
}

func TestAdminInvalidRoleRejected(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "asha@example.com", "asha", "9876543210", models.RoleClient)
	r := setupRouter(db, "ignored")

	role := "superuser"
	w := doJSON(r, "PUT", "/admin/users/"+user.ID, AdminUpdateUserInput{Role: &role})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminResetPassword(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "asha@example.com", "asha", "9876543210", models.RoleClient)
	r := setupRouter(db, "ignored")

	password := "reset-by-admin"
	w := doJSON(r, "PUT", "/admin/users/"+user.ID, AdminUpdateUserInput{Password: &password})
	assert.Equal(t, http.StatusOK, w.Code)

	var got models.User
	assert.NoError(t, db.First(&got, "id = ?", user.ID).Error)
	assert.True(t, got.VerifyPassword("reset-by-admin"))
}

func TestAdminDeleteUser(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "asha@example.com", "asha", "9876543210", models.RoleClient)
	r := setupRouter(db, "ignored")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/admin/users/"+user.ID, nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.User{}).Count(&count)
	assert.Zero(t, count)
}

func TestAdminDeleteUnknownUser(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db, "ignored")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/admin/users/"+uuid.NewString(), nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
