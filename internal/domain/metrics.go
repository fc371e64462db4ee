package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category Model (goods_category table)
type Category struct {
	ID   uint64 `gorm:"primaryKey" json:"id"`          // Primary key
	Name string `gorm:"size:100;not null" json:"name"` // Display name
}

// TableName keeps the legacy table name
func (Category) TableName() string { return "goods_category" }

// OrderGoods Model (order_goods table), one sold line item
type OrderGoods struct {
	ID         uint64          `gorm:"primaryKey" json:"id"`                     // Primary key
	CategoryID uint64          `gorm:"index;not null" json:"categoryId"`         // Category reference
	Price      decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"price"` // Unit price
	Number     int             `gorm:"not null" json:"number"`                   // Quantity sold
	CreatedAt  time.Time       `gorm:"autoCreateTime" json:"createdAt"`          // Sale timestamp
}

// TableName keeps the legacy table name
func (OrderGoods) TableName() string { return "order_goods" }

// Comment Model (comment table), counted on the dashboard
type Comment struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`            // Primary key
	Content   string    `gorm:"size:500" json:"content"`         // Comment body
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"` // Creation timestamp
}

// TableName keeps the legacy table name
func (Comment) TableName() string { return "comment" }

// Overview holds the dashboard headline totals
type Overview struct {
	TotalUser     int64           `json:"totalUser"`     // Number of accounts
	TotalComment  int64           `json:"totalComment"`  // Number of comments
	TotalPrice    decimal.Decimal `json:"totalPrice"`    // Sales amount
	TotalShopping int64           `json:"totalShopping"` // Units sold
}
