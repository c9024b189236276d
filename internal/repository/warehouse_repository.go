package repository

import (
	"context"

	"garage/internal/domain/model"
)

// 倉庫の永続化だけを約束。
type WarehouseRepository interface {
	// テナントの全倉庫を名前順で返す
	ListByTenant(ctx context.Context, tenantID string) ([]model.Warehouse, error)
	FindByID(ctx context.Context, tenantID string, id int64) (model.Warehouse, error)

	Create(ctx context.Context, w model.Warehouse) (model.Warehouse, error)
	Update(ctx context.Context, w model.Warehouse) error
}
