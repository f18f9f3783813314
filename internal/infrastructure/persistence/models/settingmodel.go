package models

import "time"

// SettingModel is the GORM model for the settings table. The pair
// (key, tenant_id) is unique; writes go through the settings service which
// upserts on that index.
type SettingModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	Key       string    `gorm:"column:key;type:varchar(255);not null;uniqueIndex:idx_settings_key_tenant_id"`
	Value     string    `gorm:"column:value;type:text"`
	TenantID  uint      `gorm:"column:tenant_id;not null;default:1;index;uniqueIndex:idx_settings_key_tenant_id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName returns the table name for GORM
func (SettingModel) TableName() string {
	return "settings"
}
