package models

import "time"

// CartModel is the GORM model for the carts table
type CartModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	UserID    uint      `gorm:"column:user_id;not null;index"`
	Status    string    `gorm:"column:status;type:varchar(20);default:open"` // open, checked_out
	TenantID  uint      `gorm:"column:tenant_id;not null;default:1;index"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName returns the table name for GORM
func (CartModel) TableName() string {
	return "carts"
}

// CartItemModel is the GORM model for the cart_items table
type CartItemModel struct {
	ID         uint      `gorm:"primaryKey;autoIncrement"`
	CartID     uint      `gorm:"column:cart_id;not null;index"`
	PaintingID uint      `gorm:"column:painting_id;not null;index"`
	Quantity   int       `gorm:"column:quantity;not null;default:1"`
	TenantID   uint      `gorm:"column:tenant_id;not null;default:1;index"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName returns the table name for GORM
func (CartItemModel) TableName() string {
	return "cart_items"
}
