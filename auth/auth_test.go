package auth

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/tilemart/storefront-api/middleware"
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

func setupRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	t.Setenv("JWT_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/auth/signup", SignupHandler(db))
	r.POST("/auth/login", LoginHandler(db))
	r.GET("/auth/me", middleware.ValidateToken, MeHandler(db))
	return r
}

func doJSON(r *gin.Engine, method, path string, payload interface{}, token string) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if payload != nil {
		json.NewEncoder(&body).Encode(payload)
	}
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	r.ServeHTTP(w, req)
	return w
}

func signup(r *gin.Engine, email, password string) *httptest.ResponseRecorder {
	return doJSON(r, "POST", "/auth/signup", map[string]string{
		"email":       email,
		"password":    password,
		"username":    strings.Split(email, "@")[0],
		"phoneNumber": "9876543210",
	}, "")
}

type sessionResponse struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

func TestSignupCreatesClient(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(t, db)

	w := signup(r, "asha@example.com", "hunter22")
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp sessionResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, models.RoleClient, resp.User.Role)
	assert.NotEmpty(t, resp.Token)
	assert.NotContains(t, w.Body.String(), "hunter22", "password must never be serialized")

	var stored models.User
	assert.NoError(t, db.Where("email = ?", "asha@example.com").First(&stored).Error)
	assert.NotEqual(t, "hunter22", stored.PasswordHash)
	assert.True(t, stored.VerifyPassword("hunter22"))
}

func TestSignupDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(t, db)

	assert.Equal(t, http.StatusCreated, signup(r, "asha@example.com", "hunter22").Code)
	assert.Equal(t, http.StatusConflict, signup(r, "asha@example.com", "other-pass").Code)
}

func TestLoginReturnsMatchingUser(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(t, db)
	signup(r, "asha@example.com", "hunter22")
	signup(r, "ben@example.com", "hunter22")

	w := doJSON(r, "POST", "/auth/login", map[string]string{
		"email":    "asha@example.com",
		"password": "hunter22",
	}, "")
	assert.Equal(t, http.StatusOK, w.Code)

	var resp sessionResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "asha@example.com", resp.User.Email)
	assert.NotEmpty(t, resp.Token)
}

func TestLoginWrongPassword(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(t, db)
	signup(r, "asha@example.com", "hunter22")

	w := doJSON(r, "POST", "/auth/login", map[string]string{
		"email":    "asha@example.com",
		"password": "wrong",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginUnknownEmail(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(t, db)

	w := doJSON(r, "POST", "/auth/login", map[string]string{
		"email":    "ghost@example.com",
		"password": "whatever",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMeReturnsCurrentUser(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(t, db)

	var resp sessionResponse
	assert.NoError(t, json.Unmarshal(signup(r, "asha@example.com", "hunter22").Body.Bytes(), &resp))

	w := doJSON(r, "GET", "/auth/me", nil, resp.Token)
	assert.Equal(t, http.StatusOK, w.Code)

	var user models.User
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
	assert.Equal(t, resp.User.ID, user.ID)
}

func TestMeAfterUserDeleted(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(t, db)

	var resp sessionResponse
	assert.NoError(t, json.Unmarshal(signup(r, "asha@example.com", "hunter22").Body.Bytes(), &resp))

	// A stale token must not keep a deleted account logged in.
	assert.NoError(t, db.Delete(&models.User{}, "id = ?", resp.User.ID).Error)

	w := doJSON(r, "GET", "/auth/me", nil, resp.Token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMeWithoutToken(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(t, db)

	w := doJSON(r, "GET", "/auth/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMeWithGarbageToken(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(t, db)

	w := doJSON(r, "GET", "/auth/me", nil, "not.a.token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
