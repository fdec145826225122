package models

import "time"

type Product struct {
	ID          uint     `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string   `gorm:"not null" json:"title"`
	Description string   `json:"description"`
	Price       float64  `gorm:"not null" json:"price"`
	PerBoxPrice float64  `json:"perBoxPrice"`
	CategoryID  uint     `gorm:"index" json:"category_id"`
	Category    Category `gorm:"foreignKey:CategoryID" json:"category"`
	Image       string   `json:"image"`
	Stock       int      `json:"stock"`

	// Optional attributes, mostly used by the tiles catalog.
	Material     string `json:"material,omitempty"`
	Application  string `json:"application,omitempty"`
	Size         string `json:"size,omitempty"`
	Color        string `json:"color,omitempty"`
	QtyPerBox    int    `json:"qtyPerBox,omitempty"`
	CoverageArea string `json:"coverageArea,omitempty"`
	NoOfBoxes    int    `json:"noOfBoxes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
