package models

import "time"

// UserModel is the GORM model for the users table
type UserModel struct {
	ID           uint      `gorm:"primaryKey;autoIncrement"`
	Email        string    `gorm:"column:email;type:varchar(255);not null;index"`
	PasswordHash string    `gorm:"column:password_hash;type:varchar(255);not null"`
	Name         string    `gorm:"column:name;type:varchar(255)"`
	IsAdmin      bool      `gorm:"column:is_admin;default:false"`
	TenantID     uint      `gorm:"column:tenant_id;not null;default:1;index"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}
