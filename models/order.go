package models

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"    // placed, awaiting handling (COD)
	OrderStatusProcessing OrderStatus = "processing" // placed with online payment
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

type PaymentMethod string

const (
	PaymentMethodCOD    PaymentMethod = "cod"
	PaymentMethodOnline PaymentMethod = "online"
)

// ShippingDetails is embedded in Order; captured verbatim at checkout.
type ShippingDetails struct {
	FirstName   string `json:"firstname"`
	LastName    string `json:"lastname"`
	CompanyName string `json:"companyname,omitempty"`
	Address     string `json:"address"`
	State       string `json:"state"`
	PostalCode  string `json:"postalCode"`
	Country     string `json:"country"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phonenumber"`
}

// Order is a checkout-time snapshot; only Status changes afterwards. Total
// and line items are never recalculated from current product prices.
type Order struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	UserID        string          `gorm:"not null;index" json:"user_id"`
	Items         []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Shipping      ShippingDetails `gorm:"embedded;embeddedPrefix:shipping_" json:"shippingDetails"`
	PaymentMethod PaymentMethod   `gorm:"type:VARCHAR(10)" json:"paymentMethod"`
	Status        OrderStatus     `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	Total         float64         `json:"total"`
	CreatedAt     time.Time       `json:"created_at"`
}

type OrderItem struct {
	ID          uint    `gorm:"primaryKey" json:"-"`
	OrderID     uint    `gorm:"index" json:"-"`
	ProductID   uint    `json:"product_id"`
	Title       string  `json:"title"`
	PerBoxPrice float64 `json:"perBoxPrice"`
	Quantity    int     `json:"quantity"`
}
