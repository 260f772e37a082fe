package repository

import (
	"context"

	"mfgtrack/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HistoryRepository is the append-only status transition ledger.
// There is deliberately no update or delete here.
type HistoryRepository interface {
	Append(ctx context.Context, entry *model.OrderStatusHistory) error
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]model.OrderStatusHistory, error)
}

type historyRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) HistoryRepository {
	return &historyRepository{db: db}
}

func (r *historyRepository) Append(ctx context.Context, entry *model.OrderStatusHistory) error {
	return GetDB(ctx, r.db).Create(entry).Error
}

// ListByOrder reads the ledger back in chronological order
func (r *historyRepository) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]model.OrderStatusHistory, error) {
	var entries []model.OrderStatusHistory
	if err := GetDB(ctx, r.db).
		Preload("Actor").
		Where("order_id = ?", orderID).
		Order("changed_at ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
