package models

import (
	"time"

	"gorm.io/datatypes"
)

// CustomRequestModel is the GORM model for the custom_requests table.
// Attachments holds metadata of uploaded reference images as JSON.
type CustomRequestModel struct {
	ID          uint           `gorm:"primaryKey;autoIncrement"`
	UserID      uint           `gorm:"column:user_id;index"`
	Email       string         `gorm:"column:email;type:varchar(255);not null"`
	Subject     string         `gorm:"column:subject;type:varchar(255);not null"`
	Message     string         `gorm:"column:message;type:text"`
	Attachments datatypes.JSON `gorm:"column:attachments"`
	Status      string         `gorm:"column:status;type:varchar(20);default:new"` // new, in_progress, closed
	TenantID    uint           `gorm:"column:tenant_id;not null;default:1;index"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName returns the table name for GORM
func (CustomRequestModel) TableName() string {
	return "custom_requests"
}
