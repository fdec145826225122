package cartControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tilemart/storefront-api/models"
	"gorm.io/gorm"
)

type CartItemInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity"`
}

// CartItemView is a cart line merged with the product's current price and
// stock. Prices are never stored on the cart itself.
type CartItemView struct {
	ProductID   uint    `json:"product_id"`
	Title       string  `json:"title"`
	Image       string  `json:"image"`
	PerBoxPrice float64 `json:"perBoxPrice"`
	Stock       int     `json:"stock"`
	Quantity    int     `json:"quantity"`
	LineTotal   float64 `json:"line_total"`
}

type CartView struct {
	ID    *uint          `json:"id"`
	Items []CartItemView `json:"items"`
	Total float64        `json:"total"`
}

// clampQuantity keeps the requested quantity within [1, stock].
func clampQuantity(requested, stock int) int {
	if requested < 1 {
		requested = 1
	}
	if requested > stock {
		requested = stock
	}
	return requested
}

// GET /user/cart
// A user with no persisted cart gets an empty view with no id.
func GetUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		view, err := buildCartView(db, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

func buildCartView(db *gorm.DB, userID string) (CartView, error) {
	view := CartView{Items: []CartItemView{}}

	var cart models.Cart
	err := db.Preload("Items").Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return view, nil
	}
	if err != nil {
		return view, err
	}

	view.ID = &cart.CartID
	for _, item := range cart.Items {
		row := CartItemView{ProductID: item.ProductID, Quantity: item.Quantity}

		var product models.Product
		if err := db.First(&product, item.ProductID).Error; err == nil {
			row.Title = product.Title
			row.Image = product.Image
			row.PerBoxPrice = product.PerBoxPrice
			row.Stock = product.Stock
		}
		row.LineTotal = row.PerBoxPrice * float64(row.Quantity)
		view.Total += row.LineTotal
		view.Items = append(view.Items, row)
	}
	return view, nil
}

// POST /user/cart
// Sets the quantity for a product, clamped to [1, stock]. Creates the cart
// record on the first add.
func UpdateCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		var input CartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var product models.Product
		if err := db.First(&product, input.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Product does not exist"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate product"})
			return
		}

		if product.Stock < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product is out of stock"})
			return
		}
		quantity := clampQuantity(input.Quantity, product.Stock)

		// Cart and first line are written in one transaction; a failed item
		// insert must not leave an empty cart behind.
		var item models.CartItem
		created := false
		err := db.Transaction(func(tx *gorm.DB) error {
			var cart models.Cart
			err := tx.Where("user_id = ?", userID).First(&cart).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				cart = models.Cart{UserID: userID}
				if err := tx.Create(&cart).Error; err != nil {
					return err
				}
			} else if err != nil {
				return err
			}

			err = tx.Where("cart_id = ? AND product_id = ?", cart.CartID, input.ProductID).First(&item).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				item = models.CartItem{
					CartID:    cart.CartID,
					ProductID: product.ID,
					Quantity:  quantity,
					AddedAt:   time.Now(),
				}
				created = true
				return tx.Create(&item).Error
			}
			if err != nil {
				return err
			}

			item.Quantity = quantity
			item.AddedAt = time.Now()
			return tx.Save(&item).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
			return
		}

		if created {
			c.JSON(http.StatusCreated, item)
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

// DELETE /user/cart/:product_id
// Removing the last line deletes the cart record itself; an empty cart is
// never persisted.
func DeleteCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)
		productID := c.Param("product_id")

		var cart models.Cart
		if err := db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User cart not found"})
			return
		}

		result := db.Where("cart_id = ? AND product_id = ?", cart.CartID, productID).Delete(&models.CartItem{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
			return
		}

		var remaining int64
		if err := db.Model(&models.CartItem{}).Where("cart_id = ?", cart.CartID).Count(&remaining).Error; err == nil && remaining == 0 {
			if err := db.Delete(&cart).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete empty cart"})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{"message": "Cart item deleted"})
	}
}

// DELETE /user/cart
func ClearUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		var cart models.Cart
		if err := db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusOK, gin.H{"message": "Cart is already empty"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user cart"})
			return
		}

		if err := db.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
			return
		}
		if err := db.Delete(&cart).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}

// GET /admin/user-cart/:user_id
func GetAdminUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("user_id")
		if userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
			return
		}

		view, err := buildCartView(db, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		c.JSON(http.StatusOK, view)
	}
}
