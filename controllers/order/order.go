package orderControllers

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tilemart/storefront-api/models"
	"gorm.io/gorm"
)

// -------- Request Structs --------

type PlaceOrderRequest struct {
	Shipping      models.ShippingDetails `json:"shippingDetails" binding:"required"`
	PaymentMethod string                 `json:"paymentMethod" binding:"required"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// -------- Helpers --------

// Same patterns the storefront checkout form enforces.
var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\d{10,15}$`)
)

func mapOrderStatus(status string) (models.OrderStatus, error) {
	switch strings.ToLower(status) {
	case string(models.OrderStatusPending):
		return models.OrderStatusPending, nil
	case string(models.OrderStatusProcessing):
		return models.OrderStatusProcessing, nil
	case string(models.OrderStatusShipped):
		return models.OrderStatusShipped, nil
	case string(models.OrderStatusDelivered):
		return models.OrderStatusDelivered, nil
	case string(models.OrderStatusCancelled):
		return models.OrderStatusCancelled, nil
	default:
		return "", errors.New("invalid order status")
	}
}

func mapPaymentMethod(method string) (models.PaymentMethod, error) {
	switch strings.ToLower(method) {
	case string(models.PaymentMethodCOD):
		return models.PaymentMethodCOD, nil
	case string(models.PaymentMethodOnline):
		return models.PaymentMethodOnline, nil
	default:
		return "", errors.New("invalid payment method")
	}
}

// validateShipping checks every required field before anything is written.
func validateShipping(s models.ShippingDetails) error {
	required := map[string]string{
		"firstname":   s.FirstName,
		"lastname":    s.LastName,
		"address":     s.Address,
		"state":       s.State,
		"postalCode":  s.PostalCode,
		"country":     s.Country,
		"email":       s.Email,
		"phonenumber": s.PhoneNumber,
	}
	var missing []string
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required shipping fields: %s", strings.Join(missing, ", "))
	}
	if !emailPattern.MatchString(s.Email) {
		return errors.New("invalid email address")
	}
	if !phonePattern.MatchString(s.PhoneNumber) {
		return errors.New("phone number must be 10-15 digits")
	}
	return nil
}

// -------- Core Logic --------

// PlaceOrder converts the user's cart into an order snapshot and deletes the
// cart, all inside one transaction. Each line's price is fetched fresh at
// checkout; quantities are not re-checked against stock and stock is not
// decremented (inventory bookkeeping is manual).
func PlaceOrder(db *gorm.DB, userID string, req PlaceOrderRequest) (models.Order, error) {
	var order models.Order

	paymentMethod, err := mapPaymentMethod(req.PaymentMethod)
	if err != nil {
		return order, err
	}
	if err := validateShipping(req.Shipping); err != nil {
		return order, err
	}

	var cart models.Cart
	if err := db.Preload("Items").Where("user_id = ?", userID).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return order, errors.New("cart is empty")
		}
		return order, err
	}
	if len(cart.Items) == 0 {
		return order, errors.New("cart is empty")
	}

	status := models.OrderStatusProcessing
	if paymentMethod == models.PaymentMethodCOD {
		status = models.OrderStatusPending
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		var total float64
		var orderItems []models.OrderItem

		for _, item := range cart.Items {
			var product models.Product
			if err := tx.First(&product, item.ProductID).Error; err != nil {
				return fmt.Errorf("failed to fetch product %d", item.ProductID)
			}

			total += product.PerBoxPrice * float64(item.Quantity)
			orderItems = append(orderItems, models.OrderItem{
				ProductID:   item.ProductID,
				Title:       product.Title,
				PerBoxPrice: product.PerBoxPrice,
				Quantity:    item.Quantity,
			})
		}

		order = models.Order{
			UserID:        userID,
			Items:         orderItems,
			Shipping:      req.Shipping,
			PaymentMethod: paymentMethod,
			Status:        status,
			Total:         total,
			CreatedAt:     time.Now(),
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		// A failed cart delete rolls the order back; the two writes
		// succeed or fail together.
		if err := tx.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&cart).Error
	})
	if err != nil {
		return models.Order{}, err
	}

	return order, nil
}

// -------- Views --------

// OrderItemView is a stored order line with the product's current image
// merged in for display. Snapshot fields stay frozen; a deleted product
// just loses its image.
type OrderItemView struct {
	ProductID   uint    `json:"product_id"`
	Title       string  `json:"title"`
	Image       string  `json:"image"`
	PerBoxPrice float64 `json:"perBoxPrice"`
	Quantity    int     `json:"quantity"`
}

type OrderView struct {
	ID            uint                   `json:"id"`
	UserID        string                 `json:"user_id"`
	Items         []OrderItemView        `json:"items"`
	Shipping      models.ShippingDetails `json:"shippingDetails"`
	PaymentMethod models.PaymentMethod   `json:"paymentMethod"`
	Status        models.OrderStatus     `json:"status"`
	Total         float64                `json:"total"`
	CreatedAt     time.Time              `json:"created_at"`
}

func buildOrderView(db *gorm.DB, order models.Order) OrderView {
	view := OrderView{
		ID:            order.ID,
		UserID:        order.UserID,
		Items:         make([]OrderItemView, 0, len(order.Items)),
		Shipping:      order.Shipping,
		PaymentMethod: order.PaymentMethod,
		Status:        order.Status,
		Total:         order.Total,
		CreatedAt:     order.CreatedAt,
	}
	for _, item := range order.Items {
		row := OrderItemView{
			ProductID:   item.ProductID,
			Title:       item.Title,
			PerBoxPrice: item.PerBoxPrice,
			Quantity:    item.Quantity,
		}
		var product models.Product
		if err := db.First(&product, item.ProductID).Error; err == nil {
			row.Image = product.Image
		}
		view.Items = append(view.Items, row)
	}
	return view
}

// -------- Handlers --------

// POST /user/orders
func PlaceOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		var req PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		order, err := PlaceOrder(db, userID, req)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		broadcastNewOrder(order)
		c.JSON(http.StatusCreated, order)
	}
}

// GET /user/orders
// Each line carries the product's current image; the rest of the line is the
// checkout-time snapshot.
func GetUserOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var orders []models.Order
		if err := db.
			Where("user_id = ?", userIDVal).
			Preload("Items").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}

		views := make([]OrderView, 0, len(orders))
		for _, order := range orders {
			views = append(views, buildOrderView(db, order))
		}
		c.JSON(http.StatusOK, views)
	}
}

// GET /admin/orders?user_id=&q=
// q is a case-insensitive substring match over the same fields the manage
// screen searches: id, status, payment method, total, shipping details.
func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Preload("Items").Order("created_at DESC")
		if userID := c.Query("user_id"); userID != "" {
			query = query.Where("user_id = ?", userID)
		}

		var orders []models.Order
		if err := query.Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}

		if q := strings.ToLower(c.Query("q")); q != "" {
			filtered := make([]models.Order, 0, len(orders))
			for _, order := range orders {
				if orderMatches(order, q) {
					filtered = append(filtered, order)
				}
			}
			orders = filtered
		}

		c.JSON(http.StatusOK, orders)
	}
}

func orderMatches(order models.Order, q string) bool {
	s := order.Shipping
	haystack := strings.ToLower(strings.Join([]string{
		fmt.Sprint(order.ID),
		string(order.Status),
		string(order.PaymentMethod),
		fmt.Sprint(order.Total),
		s.FirstName, s.LastName, s.CompanyName, s.Address,
		s.State, s.PostalCode, s.Country, s.Email, s.PhoneNumber,
	}, " "))
	return strings.Contains(haystack, q)
}

// GET /admin/orders/:orderID
func GetOrderByIDHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("orderID")
		if id == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderID is required"})
			return
		}

		var order models.Order
		if err := db.Preload("Items").First(&order, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			return
		}

		c.JSON(http.StatusOK, order)
	}
}

// PUT /admin/orders/:orderID/status
// Status is the only mutable order field.
func UpdateOrderStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")
		if orderID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderID is required"})
			return
		}
		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		newStatus, err := mapOrderStatus(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		result := db.Model(&models.Order{}).Where("id = ?", orderID).
			Update("status", newStatus)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order status updated successfully"})
	}
}

// DELETE /admin/orders/:orderID
func DeleteOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")
		if orderID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderID is required"})
			return
		}
		var deleted int64
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("order_id = ?", orderID).
				Delete(&models.OrderItem{}).Error; err != nil {
				return err
			}
			result := tx.Where("id = ?", orderID).Delete(&models.Order{})
			deleted = result.RowsAffected
			return result.Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete order"})
			return
		}
		if deleted == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
	}
}
