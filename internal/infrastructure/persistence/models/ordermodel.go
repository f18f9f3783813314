package models

import "time"

// OrderModel is the GORM model for the orders table
type OrderModel struct {
	ID         uint      `gorm:"primaryKey;autoIncrement"`
	Reference  string    `gorm:"column:reference;type:varchar(36);not null;index"`
	UserID     uint      `gorm:"column:user_id;not null;index"`
	Status     string    `gorm:"column:status;type:varchar(20);default:pending"` // pending, paid, shipped, cancelled
	TotalCents int64     `gorm:"column:total_cents;not null"`
	TenantID   uint      `gorm:"column:tenant_id;not null;default:1;index"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel is the GORM model for the order_items table
type OrderItemModel struct {
	ID         uint      `gorm:"primaryKey;autoIncrement"`
	OrderID    uint      `gorm:"column:order_id;not null;index"`
	PaintingID uint      `gorm:"column:painting_id;not null"`
	Quantity   int       `gorm:"column:quantity;not null;default:1"`
	PriceCents int64     `gorm:"column:price_cents;not null"` // unit price at order time
	TenantID   uint      `gorm:"column:tenant_id;not null;default:1;index"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName returns the table name for GORM
func (OrderItemModel) TableName() string {
	return "order_items"
}
