package models

import (
	"time"

	"gorm.io/datatypes"
)

// StripeEventModel is the GORM model for the stripe_events dedup table.
// One row per received webhook event id; duplicates are acknowledged
// without being re-applied.
type StripeEventModel struct {
	ID        uint           `gorm:"primaryKey;autoIncrement"`
	EventID   string         `gorm:"column:event_id;type:varchar(255);not null;index"`
	EventType string         `gorm:"column:event_type;type:varchar(100);not null"`
	Payload   datatypes.JSON `gorm:"column:payload"`
	TenantID  uint           `gorm:"column:tenant_id;not null;default:1;index"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
}

// TableName returns the table name for GORM
func (StripeEventModel) TableName() string {
	return "stripe_events"
}
