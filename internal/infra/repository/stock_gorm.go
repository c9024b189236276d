package repository

import (
	"context"
	"errors"
	"strings"

	"garage/internal/domain/model"
	repo "garage/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WarehouseStockGormRepository struct {
	db *gorm.DB
}

// DI
func NewWarehouseStockGormRepository(db *gorm.DB) *WarehouseStockGormRepository {
	return &WarehouseStockGormRepository{db: db}
}

// (part, warehouse)の行をFOR UPDATEでロックして取得する。
// トランザクション終了までロックが保持され、同じ行への同時更新は直列化される。
func (r *WarehouseStockGormRepository) FindForUpdate(ctx context.Context, tenantID string, partID int64, warehouseID int64) (model.WarehouseStock, error) {
	var s model.WarehouseStock
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("tenant_id = ? AND part_id = ? AND warehouse_id = ?", tenantID, partID, warehouseID).
		First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.WarehouseStock{}, repo.ErrNotFound
	}
	if err != nil {
		return model.WarehouseStock{}, err
	}
	return s, nil
}

// 初回の入出庫での遅延作成。
// 同じ(part, warehouse)を同時に作ろうとした場合はユニーク制約で片方が負けるのでErrConflictを返す
func (r *WarehouseStockGormRepository) Create(ctx context.Context, s model.WarehouseStock) (model.WarehouseStock, error) {
	if err := r.db.WithContext(ctx).Create(&s).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return model.WarehouseStock{}, repo.ErrConflict
		}
		return model.WarehouseStock{}, err
	}
	return s, nil
}

// ロック取得済みの行の数量・引当を更新
func (r *WarehouseStockGormRepository) UpdateLevels(ctx context.Context, id int64, quantity int64, reserved int64) error {
	res := r.db.WithContext(ctx).Model(&model.WarehouseStock{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"quantity": quantity,
			"reserved": reserved,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 部品の全倉庫合計。毎回の全件再集計で、差分更新の取りこぼしが残らないようにする
func (r *WarehouseStockGormRepository) SumQuantityByPart(ctx context.Context, tenantID string, partID int64) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.WarehouseStock{}).
		Where("tenant_id = ? AND part_id = ?", tenantID, partID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

// 在庫ビュー一覧。部品・倉庫のサマリをJOINして返す
func (r *WarehouseStockGormRepository) List(ctx context.Context, q repo.StockListQuery) ([]repo.StockListRow, int64, error) {
	var rows []repo.StockListRow
	var total int64

	tx := r.stockJoinQuery(ctx, q.TenantID, q.Search, q.WarehouseID)

	// 発注点割れ（quantity <= min_stock）の絞り込み
	if q.LowStock {
		tx = tx.Where("warehouse_stocks.quantity <= parts.min_stock")
	}

	//total（件数）
	if err := tx.Count(&total).Error; err != nil {
		return []repo.StockListRow{}, 0, err
	}

	tx = tx.Select(`warehouse_stocks.id, warehouse_stocks.part_id, warehouse_stocks.warehouse_id,
		warehouse_stocks.quantity, warehouse_stocks.reserved,
		parts.name AS part_name, parts.sku, parts.min_stock,
		warehouses.name AS warehouse_name, warehouses.code AS warehouse_code`).
		Order("parts.name asc").Order("warehouse_stocks.id asc")

	offset := (q.Page - 1) * q.Limit
	if err := tx.Offset(offset).Limit(q.Limit).Scan(&rows).Error; err != nil {
		return []repo.StockListRow{}, 0, err
	}

	return rows, total, nil
}

// 部品単位の集計（全倉庫、またはwarehouseID指定で1倉庫）
func (r *WarehouseStockGormRepository) SummarizeByPart(ctx context.Context, q repo.StockSummaryQuery) ([]repo.StockSummaryRow, int64, error) {
	var rows []repo.StockSummaryRow
	var total int64

	//対象部品数（ページング用）
	countTx := r.stockJoinQuery(ctx, q.TenantID, q.Search, q.WarehouseID)
	if err := countTx.Distinct("warehouse_stocks.part_id").Count(&total).Error; err != nil {
		return []repo.StockSummaryRow{}, 0, err
	}

	tx := r.stockJoinQuery(ctx, q.TenantID, q.Search, q.WarehouseID).
		Select(`parts.id AS part_id, parts.name AS part_name, parts.sku, parts.min_stock,
			COALESCE(SUM(warehouse_stocks.quantity), 0) AS total_quantity,
			COALESCE(SUM(warehouse_stocks.reserved), 0) AS total_reserved`).
		Group("parts.id, parts.name, parts.sku, parts.min_stock").
		Order("parts.name asc").Order("parts.id asc")

	offset := (q.Page - 1) * q.Limit
	if err := tx.Offset(offset).Limit(q.Limit).Scan(&rows).Error; err != nil {
		return []repo.StockSummaryRow{}, 0, err
	}

	return rows, total, nil
}

// 集計の内訳用。指定部品の倉庫別在庫を返す
func (r *WarehouseStockGormRepository) ListByPartIDs(ctx context.Context, tenantID string, partIDs []int64, warehouseID *int64) ([]repo.StockListRow, error) {
	if len(partIDs) == 0 {
		return []repo.StockListRow{}, nil
	}

	tx := r.stockJoinQuery(ctx, tenantID, "", warehouseID).
		Where("warehouse_stocks.part_id IN ?", partIDs).
		Select(`warehouse_stocks.id, warehouse_stocks.part_id, warehouse_stocks.warehouse_id,
			warehouse_stocks.quantity, warehouse_stocks.reserved,
			parts.name AS part_name, parts.sku, parts.min_stock,
			warehouses.name AS warehouse_name, warehouses.code AS warehouse_code`).
		Order("warehouse_stocks.part_id asc").Order("warehouses.name asc")

	var rows []repo.StockListRow
	if err := tx.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// 一覧・集計共通のJOINと絞り込み
func (r *WarehouseStockGormRepository) stockJoinQuery(ctx context.Context, tenantID string, search string, warehouseID *int64) *gorm.DB {
	tx := r.db.WithContext(ctx).Table("warehouse_stocks").
		Joins("JOIN parts ON parts.id = warehouse_stocks.part_id").
		Joins("JOIN warehouses ON warehouses.id = warehouse_stocks.warehouse_id").
		Where("warehouse_stocks.tenant_id = ?", tenantID).
		Where("parts.deleted_at IS NULL")

	if strings.TrimSpace(search) != "" {
		like := "%" + strings.TrimSpace(search) + "%"
		tx = tx.Where("parts.name ILIKE ? OR parts.sku ILIKE ?", like, like)
	}
	if warehouseID != nil {
		tx = tx.Where("warehouse_stocks.warehouse_id = ?", *warehouseID)
	}
	return tx
}
