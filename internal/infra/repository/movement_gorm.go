package repository

import (
	"context"

	"garage/internal/domain/model"
	repo "garage/internal/repository"

	"gorm.io/gorm"
)

type StockMovementGormRepository struct {
	db *gorm.DB
}

// DI
func NewStockMovementGormRepository(db *gorm.DB) *StockMovementGormRepository {
	return &StockMovementGormRepository{db: db}
}

// 台帳行の追記。UpdateやDeleteは提供しない
func (r *StockMovementGormRepository) Create(ctx context.Context, m model.StockMovement) (model.StockMovement, error) {
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return model.StockMovement{}, err
	}
	return m, nil
}

// 履歴一覧。新しい順
func (r *StockMovementGormRepository) List(ctx context.Context, q repo.MovementListQuery) ([]model.StockMovement, int64, error) {
	var movements []model.StockMovement
	var total int64

	tx := r.db.WithContext(ctx).Model(&model.StockMovement{}).
		Where("tenant_id = ?", q.TenantID)

	if q.PartID != nil {
		tx = tx.Where("part_id = ?", *q.PartID)
	}
	if q.WarehouseID != nil {
		tx = tx.Where("warehouse_id = ?", *q.WarehouseID)
	}
	if q.Type != nil {
		tx = tx.Where("type = ?", *q.Type)
	}

	//total（件数）
	if err := tx.Count(&total).Error; err != nil {
		return []model.StockMovement{}, 0, err
	}

	tx = tx.Order("created_at desc").Order("id desc")

	offset := (q.Page - 1) * q.Limit
	if err := tx.Offset(offset).Limit(q.Limit).Find(&movements).Error; err != nil {
		return []model.StockMovement{}, 0, err
	}

	return movements, total, nil
}

// (part, warehouse)の全履歴を古い順で返す
func (r *StockMovementGormRepository) ListAllForPair(ctx context.Context, tenantID string, partID int64, warehouseID int64) ([]model.StockMovement, error) {
	var movements []model.StockMovement
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND part_id = ? AND warehouse_id = ?", tenantID, partID, warehouseID).
		Order("created_at asc").Order("id asc").
		Find(&movements).Error
	if err != nil {
		return nil, err
	}
	return movements, nil
}
