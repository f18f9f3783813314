package models

import "time"

// PaintingModel is the GORM model for the paintings catalog table
type PaintingModel struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"`
	UserID      uint      `gorm:"column:user_id;index"`
	Title       string    `gorm:"column:title;type:varchar(255);not null"`
	Description string    `gorm:"column:description;type:text"`
	Technique   string    `gorm:"column:technique;type:varchar(100)"`
	WidthCm     int       `gorm:"column:width_cm"`
	HeightCm    int       `gorm:"column:height_cm"`
	PriceCents  int64     `gorm:"column:price_cents;not null"`
	ImageURL    string    `gorm:"column:image_url;type:varchar(512)"`
	// no default tag: gorm would omit a false value from the INSERT
	Available   bool      `gorm:"column:available"`
	TenantID    uint      `gorm:"column:tenant_id;not null;default:1;index"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName returns the table name for GORM
func (PaintingModel) TableName() string {
	return "paintings"
}
