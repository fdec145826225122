package userControllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tilemart/storefront-api/models"
	"gorm.io/gorm"
)

type UpdateProfileInput struct {
	Username    *string `json:"username"`
	PhoneNumber *string `json:"phoneNumber"`
	Password    *string `json:"password"`
}

type AdminUpdateUserInput struct {
	Username    *string `json:"username"`
	PhoneNumber *string `json:"phoneNumber"`
	Role        *string `json:"role"`
	Password    *string `json:"password"`
}

// GET /user/
func GetUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := c.Get("user_id")

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		c.JSON(http.StatusOK, user)
	}
}

// PUT /user/
// Profile edits cover username, phone and password. Role stays whatever it
// is; only admins change roles.
func UpdateUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := c.Get("user_id")

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		var input UpdateProfileInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if input.Username != nil {
			user.Username = *input.Username
		}
		if input.PhoneNumber != nil {
			user.PhoneNumber = *input.PhoneNumber
		}
		if input.Password != nil && *input.Password != "" {
			if err := user.SetPassword(*input.Password); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process password"})
				return
			}
		}

		if err := db.Save(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
			return
		}

		c.JSON(http.StatusOK, user)
	}
}

// GET /admin/users?q=
// q matches username, email, phone, role and id, the same fields the manage
// screen searches.
func GetAllUsers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var users []models.User
		if err := db.Order("created_at DESC").Find(&users).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
			return
		}

		if q := strings.ToLower(c.Query("q")); q != "" {
			filtered := make([]models.User, 0, len(users))
			for _, u := range users {
				haystack := strings.ToLower(strings.Join([]string{
					u.Username, u.Email, u.PhoneNumber, string(u.Role), u.ID,
				}, " "))
				if strings.Contains(haystack, q) {
					filtered = append(filtered, u)
				}
			}
			users = filtered
		}

		c.JSON(http.StatusOK, users)
	}
}

// PUT /admin/users/:id
func AdminUpdateUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var user models.User
		if err := db.First(&user, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		var input AdminUpdateUserInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if input.Role != nil {
			role := models.Role(*input.Role)
			if role != models.RoleClient && role != models.RoleAdmin {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
				return
			}
			user.Role = role
		}
		if input.Username != nil {
			user.Username = *input.Username
		}
		if input.PhoneNumber != nil {
			user.PhoneNumber = *input.PhoneNumber
		}
		if input.Password != nil && *input.Password != "" {
			if err := user.SetPassword(*input.Password); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process password"})
				return
			}
		}

		if err := db.Save(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
			return
		}

		c.JSON(http.StatusOK, user)
	}
}

// DELETE /admin/users/:id
func AdminDeleteUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := db.Delete(&models.User{}, "id = ?", c.Param("id"))
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
	}
}
