package repository

import (
	"context"
	"errors"

	"garage/internal/domain/model"
)

// 同時書き込みで安全にマージできない競合（遅延作成のユニーク制約違反など）
var ErrConflict = errors.New("conflict")

// 在庫一覧の検索条件
type StockListQuery struct {
	TenantID    string
	Page        int
	Limit       int
	Search      string
	WarehouseID *int64
	LowStock    bool
}

// 在庫一覧の1行（部品・倉庫のサマリ込み）
type StockListRow struct {
	ID            int64  `json:"id"`
	PartID        int64  `json:"part_id"`
	WarehouseID   int64  `json:"warehouse_id"`
	Quantity      int64  `json:"quantity"`
	Reserved      int64  `json:"reserved"`
	PartName      string `json:"part_name"`
	SKU           string `json:"sku"`
	MinStock      int64  `json:"min_stock"`
	WarehouseName string `json:"warehouse_name"`
	WarehouseCode string `json:"warehouse_code"`
}

// 部品ごとの集計条件
type StockSummaryQuery struct {
	TenantID    string
	Page        int
	Limit       int
	Search      string
	WarehouseID *int64
}

// 部品ごとの集計1行
type StockSummaryRow struct {
	PartID        int64  `json:"part_id"`
	PartName      string `json:"part_name"`
	SKU           string `json:"sku"`
	MinStock      int64  `json:"min_stock"`
	TotalQuantity int64  `json:"total_quantity"`
	TotalReserved int64  `json:"total_reserved"`
}

// 在庫ビュー（warehouse_stocks）の永続化を約束。
// 書き込みは台帳処理（トランザクション内）からのみ行う。
type WarehouseStockRepository interface {
	// FOR UPDATEで行ロックして取得。無ければErrNotFound
	FindForUpdate(ctx context.Context, tenantID string, partID int64, warehouseID int64) (model.WarehouseStock, error)

	// 初回の入出庫での遅延作成。ユニーク制約違反はErrConflict
	Create(ctx context.Context, s model.WarehouseStock) (model.WarehouseStock, error)

	// 行ロック取得済みの行の数量・引当を更新
	UpdateLevels(ctx context.Context, id int64, quantity int64, reserved int64) error

	// 部品の全倉庫合計（Aggregator用の全件再集計）
	SumQuantityByPart(ctx context.Context, tenantID string, partID int64) (int64, error)

	// 読み取り側
	List(ctx context.Context, q StockListQuery) ([]StockListRow, int64, error)
	SummarizeByPart(ctx context.Context, q StockSummaryQuery) ([]StockSummaryRow, int64, error)
	ListByPartIDs(ctx context.Context, tenantID string, partIDs []int64, warehouseID *int64) ([]StockListRow, error)
}
