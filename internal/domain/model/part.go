package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// 部品マスタ。
// CurrentStockは全倉庫のwarehouse_stocks.quantity合計の非正規化キャッシュで、
// 台帳（stock_movements）から常に再構築できる値。直接更新してはいけない。
type Part struct {
	ID           int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	TenantID     string          `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Name         string          `gorm:"type:varchar(255);not null" json:"name"`
	SKU          string          `gorm:"type:varchar(100);index" json:"sku"`
	Brand        string          `gorm:"type:varchar(100)" json:"brand"`
	OEMNumber    string          `gorm:"type:varchar(100)" json:"oem_number"`
	CostPrice    decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"cost_price"`
	SellPrice    decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"sell_price"`
	CurrentStock int64           `gorm:"not null;default:0" json:"current_stock"`
	MinStock     int64           `gorm:"not null;default:0" json:"min_stock"`
	CreatedAt    time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt  `gorm:"index" json:"-"`
}
