package model

import "time"

// 倉庫・部品マスタ更新など
type AuditAction string

const (
	//倉庫を作成した操作。
	AuditActionCreateWarehouse AuditAction = "CREATE_WAREHOUSE"
	//倉庫を更新した操作。
	AuditActionUpdateWarehouse AuditAction = "UPDATE_WAREHOUSE"
	//部品マスタを更新した操作。
	AuditActionUpdatePart AuditAction = "UPDATE_PART"
)

// 何に対する操作か
type AuditResourceType string

const (
	//倉庫に対する操作。
	AuditResourceWarehouse AuditResourceType = "warehouse"

	//部品に対する操作。
	AuditResourcePart AuditResourceType = "part"
)

// 監査ログ（マスタ変更ログ）。
// 「誰が」「何を」「どの対象に」「どう変えたか」を残す。
// 在庫の増減そのものはstock_movementsが台帳として記録するのでここには入れない。
type AuditLog struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	//テナントID
	TenantID string `gorm:"type:uuid;not null;index" json:"tenant_id"`

	//操作したスタッフのID。
	ActorUserID string `gorm:"type:uuid;not null;index" json:"actor_user_id"`

	//Actionは操作の種類（CREATE_WAREHOUSE / UPDATE_PART など）。
	Action AuditAction `gorm:"type:varchar(50);not null;index" json:"action"`

	//対象の種類（warehouse / part）。
	ResourceType AuditResourceType `gorm:"type:varchar(50);not null;index" json:"resource_type"`

	//対象のID。
	ResourceID int64 `gorm:"not null;index" json:"resource_id"`

	//JSON文字列で保存する。
	BeforeJSON string `gorm:"type:text" json:"before_json"`

	//JSON文字列で保存する。
	AfterJSON string `gorm:"type:text" json:"after_json"`

	//作成時刻
	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}
