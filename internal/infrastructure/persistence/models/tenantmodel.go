// Package models contains the GORM models backing the storefront schema.
// Every business table carries a tenant_id column; the tenants table itself
// is the directory those values are resolved against.
package models

import "time"

// TenantModel is the GORM model for the tenants directory table.
type TenantModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	Host      string    `gorm:"column:host;type:varchar(255);not null;uniqueIndex"`
	Name      string    `gorm:"column:name;type:varchar(255)"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName returns the table name for GORM
func (TenantModel) TableName() string {
	return "tenants"
}
