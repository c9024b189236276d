package repository

import (
	"context"
	"errors"

	"garage/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 一覧検索
type PartListQuery struct {
	TenantID string
	Page     int
	Limit    int
	Q        string
}

// 部品マスタの永続化（保存・取得）だけを約束。
type PartRepository interface {
	List(ctx context.Context, q PartListQuery) ([]model.Part, int64, error)
	FindByID(ctx context.Context, tenantID string, id int64) (model.Part, error)

	Create(ctx context.Context, p model.Part) (model.Part, error)
	Update(ctx context.Context, p model.Part) error
	SoftDelete(ctx context.Context, tenantID string, id int64) error

	// current_stockの再同期。台帳処理と同一トランザクション内でのみ呼ぶ
	UpdateCurrentStock(ctx context.Context, tenantID string, partID int64, total int64) error
}
