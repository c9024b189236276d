package repository

import (
	"context"

	repo "garage/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	parts      repo.PartRepository
	warehouses repo.WarehouseRepository
	stocks     repo.WarehouseStockRepository
	movements  repo.StockMovementRepository
}

func (r *txReposGorm) Parts() repo.PartRepository              { return r.parts }
func (r *txReposGorm) Warehouses() repo.WarehouseRepository    { return r.warehouses }
func (r *txReposGorm) Stocks() repo.WarehouseStockRepository   { return r.stocks }
func (r *txReposGorm) Movements() repo.StockMovementRepository { return r.movements }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			parts:      NewPartGormRepository(tx),
			warehouses: NewWarehouseGormRepository(tx),
			stocks:     NewWarehouseStockGormRepository(tx),
			movements:  NewStockMovementGormRepository(tx),
		}
		return fn(r)
	})
}
