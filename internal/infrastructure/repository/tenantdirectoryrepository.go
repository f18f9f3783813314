package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"galerie/internal/domain/tenant"
	"galerie/internal/infrastructure/persistence/models"
)

// TenantDirectoryRepository implements tenant.Directory over the tenants
// table. The directory itself is not tenant-scoped.
type TenantDirectoryRepository struct {
	db *gorm.DB
}

func NewTenantDirectoryRepository(db *gorm.DB) *TenantDirectoryRepository {
	return &TenantDirectoryRepository{db: db}
}

func (r *TenantDirectoryRepository) FindByHost(ctx context.Context, host string) (*tenant.Tenant, error) {
	var model models.TenantModel
	err := r.db.WithContext(ctx).Where("host = ?", host).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find tenant by host: %w", err)
	}
	return toTenant(&model), nil
}

func (r *TenantDirectoryRepository) List(ctx context.Context) ([]*tenant.Tenant, error) {
	var modelList []*models.TenantModel
	if err := r.db.WithContext(ctx).Order("id").Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}

	tenants := make([]*tenant.Tenant, 0, len(modelList))
	for _, m := range modelList {
		tenants = append(tenants, toTenant(m))
	}
	return tenants, nil
}

func (r *TenantDirectoryRepository) Create(ctx context.Context, t *tenant.Tenant) error {
	model := models.TenantModel{
		ID:   t.ID,
		Host: t.Host,
		Name: t.Name,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return fmt.Errorf("failed to create tenant: %w", err)
	}
	t.ID = model.ID
	t.CreatedAt = model.CreatedAt
	return nil
}

func toTenant(m *models.TenantModel) *tenant.Tenant {
	return &tenant.Tenant{
		ID:        m.ID,
		Host:      m.Host,
		Name:      m.Name,
		CreatedAt: m.CreatedAt,
	}
}
