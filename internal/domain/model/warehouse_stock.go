package model

import "time"

// (part, warehouse)ごとの現在在庫。台帳から導出される読み取り用キャッシュ。
// 初回の入出庫で遅延作成し、数量0になっても行は消さない（履歴として有効）。
// 不変条件: Quantity >= 0 かつ Quantity - Reserved >= 0
type WarehouseStock struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	TenantID    string    `gorm:"type:uuid;not null;index" json:"tenant_id"`
	PartID      int64     `gorm:"not null;uniqueIndex:idx_part_warehouse" json:"part_id"`
	WarehouseID int64     `gorm:"not null;uniqueIndex:idx_part_warehouse" json:"warehouse_id"`
	Quantity    int64     `gorm:"not null;default:0" json:"quantity"`
	Reserved    int64     `gorm:"not null;default:0" json:"reserved"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// 引当可能数。保存せず常に計算で出す
func (s WarehouseStock) Available() int64 {
	return s.Quantity - s.Reserved
}
