package models

import "time"

// SaasSiteModel is the GORM model for the saas_sites table. It tracks the
// provisioning lifecycle of one tenant's storefront and anchors the
// backfill auditor's domain matching.
type SaasSiteModel struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"`
	UserID      uint      `gorm:"column:user_id;index"`
	Status      string    `gorm:"column:status;type:varchar(20);default:pending"` // pending, approved, active
	SandboxURL  string    `gorm:"column:sandbox_url;type:varchar(512)"`
	FinalDomain string    `gorm:"column:final_domain;type:varchar(255)"`
	TenantID    uint      `gorm:"column:tenant_id;not null;default:1;index"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName returns the table name for GORM
func (SaasSiteModel) TableName() string {
	return "saas_sites"
}
