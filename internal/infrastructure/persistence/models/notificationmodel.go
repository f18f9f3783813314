package models

import "time"

// NotificationModel is the GORM model for the notifications table
type NotificationModel struct {
	ID         uint      `gorm:"primaryKey;autoIncrement"`
	UserID     uint      `gorm:"column:user_id;not null;index"`
	Title      string    `gorm:"column:title;type:varchar(255);not null"`
	Body       string    `gorm:"column:body;type:text"`
	ReadStatus string    `gorm:"column:read_status;type:varchar(10);default:unread"`
	TenantID   uint      `gorm:"column:tenant_id;not null;default:1;index"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName returns the table name for GORM
func (NotificationModel) TableName() string {
	return "notifications"
}
