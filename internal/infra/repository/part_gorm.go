package repository

import (
	"context"
	"errors"
	"strings"

	"garage/internal/domain/model"
	repo "garage/internal/repository"

	"gorm.io/gorm"
)

type PartGormRepository struct {
	db *gorm.DB
}

// DI
func NewPartGormRepository(db *gorm.DB) *PartGormRepository {
	return &PartGormRepository{db: db}
}

// テナントの部品を、検索/ページング付きで返す。
func (r *PartGormRepository) List(ctx context.Context, q repo.PartListQuery) ([]model.Part, int64, error) {
	var parts []model.Part
	var total int64

	tx := r.db.WithContext(ctx).Model(&model.Part{}).Where("tenant_id = ?", q.TenantID)

	// q name/sku/oem_numberを対象
	if strings.TrimSpace(q.Q) != "" {
		like := "%" + strings.TrimSpace(q.Q) + "%"
		tx = tx.Where("name ILIKE ? OR sku ILIKE ? OR oem_number ILIKE ?", like, like, like)
	}

	//total（件数）
	if err := tx.Count(&total).Error; err != nil {
		return []model.Part{}, 0, err
	}

	tx = tx.Order("name asc").Order("id asc")

	offset := (q.Page - 1) * q.Limit
	if err := tx.Offset(offset).Limit(q.Limit).Find(&parts).Error; err != nil {
		return []model.Part{}, 0, err
	}

	return parts, total, nil
}

// IDで部品を取得。他テナントの部品は「存在しない扱い」
func (r *PartGormRepository) FindByID(ctx context.Context, tenantID string, id int64) (model.Part, error) {
	var p model.Part
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Part{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Part{}, err
	}
	return p, nil
}

// 部品の作成
func (r *PartGormRepository) Create(ctx context.Context, p model.Part) (model.Part, error) {
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return model.Part{}, err
	}
	return p, nil
}

// 部品の更新。current_stockはここでは触らない（台帳側の責務）
func (r *PartGormRepository) Update(ctx context.Context, p model.Part) error {
	res := r.db.WithContext(ctx).Model(&model.Part{}).
		Where("tenant_id = ? AND id = ?", p.TenantID, p.ID).
		Updates(map[string]interface{}{
			"name":       p.Name,
			"sku":        p.SKU,
			"brand":      p.Brand,
			"oem_number": p.OEMNumber,
			"cost_price": p.CostPrice,
			"sell_price": p.SellPrice,
			"min_stock":  p.MinStock,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 部品削除
func (r *PartGormRepository) SoftDelete(ctx context.Context, tenantID string, id int64) error {
	res := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Delete(&model.Part{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// current_stockを全倉庫合計の再集計値で上書きする
func (r *PartGormRepository) UpdateCurrentStock(ctx context.Context, tenantID string, partID int64, total int64) error {
	res := r.db.WithContext(ctx).Model(&model.Part{}).
		Where("tenant_id = ? AND id = ?", tenantID, partID).
		Update("current_stock", total)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
