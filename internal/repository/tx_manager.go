package repository

import "context"

// トランザクション内で使う約束
type TxRepos interface {
	Parts() PartRepository
	Warehouses() WarehouseRepository
	Stocks() WarehouseStockRepository
	Movements() StockMovementRepository
}

// UsecaseからTxの開始/commit/rollbackを隠す。
// fnがエラーを返せば全てロールバックされ、台帳とビューが食い違った状態は残らない。
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}
