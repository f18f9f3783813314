package repository

import (
	"context"
	stderrors "errors"
	"fmt"

	"gorm.io/gorm"

	"galerie/internal/infrastructure/persistence/models"
)

type StripeEventRepository struct {
	tdb TenantDB
}

func NewStripeEventRepository(tdb TenantDB) *StripeEventRepository {
	return &StripeEventRepository{tdb: tdb}
}

// RecordIfNew stores a webhook event unless the same event id was already
// seen for this tenant. Returns true when the event is new and should be
// processed.
func (r *StripeEventRepository) RecordIfNew(ctx context.Context, event *models.StripeEventModel) (bool, error) {
	var existing models.StripeEventModel
	err := r.tdb.Scoped(ctx).Where("event_id = ?", event.EventID).First(&existing).Error
	if err == nil {
		return false, nil
	}
	if !stderrors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("failed to check stripe event: %w", err)
	}

	event.TenantID = r.tdb.TenantID()
	if err := r.tdb.Unscoped(ctx).Create(event).Error; err != nil {
		return false, fmt.Errorf("failed to record stripe event: %w", err)
	}
	return true, nil
}
