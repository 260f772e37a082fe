package repository

import (
	"context"

	"mfgtrack/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RouteRepository persists the manufacturing chain: route steps and their
// execution logs.
type RouteRepository interface {
	CreateStep(ctx context.Context, step *model.RouteStep) error
	GetStep(ctx context.Context, id uuid.UUID) (*model.RouteStep, error)
	MaxStepNo(ctx context.Context, itemID uuid.UUID) (int, error)
	UpdateStepStatus(ctx context.Context, id uuid.UUID, status string) error
	CreateLog(ctx context.Context, entry *model.OperationLog) error
	GetLog(ctx context.Context, id uuid.UUID) (*model.OperationLog, error)
	UpdateLog(ctx context.Context, entry *model.OperationLog) error
}

type routeRepository struct {
	db *gorm.DB
}

func NewRouteRepository(db *gorm.DB) RouteRepository {
	return &routeRepository{db: db}
}

func (r *routeRepository) CreateStep(ctx context.Context, step *model.RouteStep) error {
	return GetDB(ctx, r.db).Create(step).Error
}

func (r *routeRepository) GetStep(ctx context.Context, id uuid.UUID) (*model.RouteStep, error) {
	var step model.RouteStep
	if err := GetDB(ctx, r.db).
		Preload("Operation").
		Preload("Workshop").
		First(&step, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &step, nil
}

// MaxStepNo returns the highest step_no of an item's route, 0 when the
// route is still empty. New steps must come strictly after it.
func (r *routeRepository) MaxStepNo(ctx context.Context, itemID uuid.UUID) (int, error) {
	var result struct {
		MaxNo int
	}
	err := GetDB(ctx, r.db).Model(&model.RouteStep{}).
		Select("COALESCE(MAX(step_no), 0) as max_no").
		Where("order_item_id = ?", itemID).
		Scan(&result).Error
	return result.MaxNo, err
}

func (r *routeRepository) UpdateStepStatus(ctx context.Context, id uuid.UUID, status string) error {
	result := GetDB(ctx, r.db).Model(&model.RouteStep{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *routeRepository) CreateLog(ctx context.Context, entry *model.OperationLog) error {
	return GetDB(ctx, r.db).Create(entry).Error
}

func (r *routeRepository) GetLog(ctx context.Context, id uuid.UUID) (*model.OperationLog, error) {
	var entry model.OperationLog
	if err := GetDB(ctx, r.db).First(&entry, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *routeRepository) UpdateLog(ctx context.Context, entry *model.OperationLog) error {
	return GetDB(ctx, r.db).Save(entry).Error
}
