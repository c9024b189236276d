package repository

import (
	"context"
	"errors"

	"garage/internal/domain/model"
	repo "garage/internal/repository"

	"gorm.io/gorm"
)

type WarehouseGormRepository struct {
	db *gorm.DB
}

// DI
func NewWarehouseGormRepository(db *gorm.DB) *WarehouseGormRepository {
	return &WarehouseGormRepository{db: db}
}

// テナントの全倉庫を名前順で返す
func (r *WarehouseGormRepository) ListByTenant(ctx context.Context, tenantID string) ([]model.Warehouse, error) {
	var warehouses []model.Warehouse
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("name asc").Order("id asc").
		Find(&warehouses).Error
	if err != nil {
		return nil, err
	}
	return warehouses, nil
}

// IDで倉庫を取得。他テナントの倉庫は「存在しない扱い」
func (r *WarehouseGormRepository) FindByID(ctx context.Context, tenantID string, id int64) (model.Warehouse, error) {
	var w model.Warehouse
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&w).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Warehouse{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Warehouse{}, err
	}
	return w, nil
}

// 倉庫の作成
func (r *WarehouseGormRepository) Create(ctx context.Context, w model.Warehouse) (model.Warehouse, error) {
	if err := r.db.WithContext(ctx).Create(&w).Error; err != nil {
		return model.Warehouse{}, err
	}
	return w, nil
}

// 倉庫の更新
func (r *WarehouseGormRepository) Update(ctx context.Context, w model.Warehouse) error {
	res := r.db.WithContext(ctx).Model(&model.Warehouse{}).
		Where("tenant_id = ? AND id = ?", w.TenantID, w.ID).
		Updates(map[string]interface{}{
			"name":      w.Name,
			"code":      w.Code,
			"address":   w.Address,
			"is_active": w.IsActive,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
