package models

import "time"

// FavoriteModel is the GORM model for the favorites table.
// A user can favorite a painting at most once per tenant; the migrator
// enforces this with a composite unique index.
type FavoriteModel struct {
	ID         uint      `gorm:"primaryKey;autoIncrement"`
	UserID     uint      `gorm:"column:user_id;not null;index;uniqueIndex:idx_favorites_user_painting_tenant"`
	PaintingID uint      `gorm:"column:painting_id;not null;index;uniqueIndex:idx_favorites_user_painting_tenant"`
	TenantID   uint      `gorm:"column:tenant_id;not null;default:1;index;uniqueIndex:idx_favorites_user_painting_tenant"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName returns the table name for GORM
func (FavoriteModel) TableName() string {
	return "favorites"
}
