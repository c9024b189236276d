package repository

import (
	"context"

	"garage/internal/domain/model"
)

// 台帳履歴の絞り込み条件
type MovementListQuery struct {
	TenantID    string
	Page        int
	Limit       int
	PartID      *int64
	WarehouseID *int64
	Type        *model.MovementType
}

// 在庫台帳の永続化を約束。追記と読み取りのみで、更新・削除は提供しない。
type StockMovementRepository interface {
	Create(ctx context.Context, m model.StockMovement) (model.StockMovement, error)

	// 新しい順
	List(ctx context.Context, q MovementListQuery) ([]model.StockMovement, int64, error)

	// (part, warehouse)の全履歴を古い順で返す（台帳からの再構築用）
	ListAllForPair(ctx context.Context, tenantID string, partID int64, warehouseID int64) ([]model.StockMovement, error)
}
