package models

import "time"

// ExhibitionModel is the GORM model for the exhibitions table
type ExhibitionModel struct {
	ID          uint       `gorm:"primaryKey;autoIncrement"`
	Title       string     `gorm:"column:title;type:varchar(255);not null"`
	Description string     `gorm:"column:description;type:text"`
	Location    string     `gorm:"column:location;type:varchar(255)"`
	StartsAt    *time.Time `gorm:"column:starts_at"`
	EndsAt      *time.Time `gorm:"column:ends_at"`
	TenantID    uint       `gorm:"column:tenant_id;not null;default:1;index"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName returns the table name for GORM
func (ExhibitionModel) TableName() string {
	return "exhibitions"
}
