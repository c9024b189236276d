package model

import (
	"fmt"
	"time"
)

type MovementType string

const (
	MovementPurchase    MovementType = "PURCHASE"     // 仕入入庫
	MovementReturn      MovementType = "RETURN"       // 返品入庫
	MovementTransferIn  MovementType = "TRANSFER_IN"  // 倉庫間移動の受入側
	MovementConsumption MovementType = "CONSUMPTION"  // 作業での消費（引当を解放して消費）
	MovementTransferOut MovementType = "TRANSFER_OUT" // 倉庫間移動の払出側
	MovementAdjustment  MovementType = "ADJUSTMENT"   // 棚卸調整（符号付き）
	MovementReserved    MovementType = "RESERVED"     // 引当
	MovementUnreserved  MovementType = "UNRESERVED"   // 引当解除
)

// 在庫台帳。追記専用で、作成後の更新・削除は禁止。
// warehouse_stocksとparts.current_stockはこの台帳から導出されるキャッシュにすぎない。
type StockMovement struct {
	ID          int64        `gorm:"primaryKey;autoIncrement" json:"id"`
	TenantID    string       `gorm:"type:uuid;not null;index" json:"tenant_id"`
	PartID      int64        `gorm:"not null;index" json:"part_id"`
	WarehouseID int64        `gorm:"not null;index" json:"warehouse_id"`
	Type        MovementType `gorm:"type:varchar(20);not null;index" json:"type"`
	Quantity    int64        `gorm:"not null" json:"quantity"`
	Reference   string       `gorm:"type:varchar(100)" json:"reference"`
	ReferenceID string       `gorm:"type:varchar(100);index" json:"reference_id"`
	Notes       string       `gorm:"type:text" json:"notes"`
	UserID      *string      `gorm:"type:uuid" json:"user_id"`
	CreatedAt   time.Time    `gorm:"not null;autoCreateTime;index" json:"created_at"`
}

// IsValid は既知の移動種別かどうかを返す
func (t MovementType) IsValid() bool {
	switch t {
	case MovementPurchase, MovementReturn, MovementTransferIn,
		MovementConsumption, MovementTransferOut, MovementAdjustment,
		MovementReserved, MovementUnreserved:
		return true
	}
	return false
}

// Deltas は移動種別ごとの(数量増減, 引当増減)を返す。
// quantityはADJUSTMENT以外は非負、ADJUSTMENTのみ符号付き。
//
//	PURCHASE/RETURN/TRANSFER_IN: (+q, 0)
//	CONSUMPTION:                 (-q, -q)
//	TRANSFER_OUT:                (-q, 0)
//	ADJUSTMENT:                  (q, 0)
//	RESERVED:                    (0, +q)
//	UNRESERVED:                  (0, -q)
func (t MovementType) Deltas(quantity int64) (quantityDelta int64, reserveDelta int64, err error) {
	switch t {
	case MovementPurchase, MovementReturn, MovementTransferIn:
		return quantity, 0, nil
	case MovementConsumption:
		return -quantity, -quantity, nil
	case MovementTransferOut:
		return -quantity, 0, nil
	case MovementAdjustment:
		return quantity, 0, nil
	case MovementReserved:
		return 0, quantity, nil
	case MovementUnreserved:
		return 0, -quantity, nil
	default:
		return 0, 0, fmt.Errorf("unknown movement type: %s", t)
	}
}
