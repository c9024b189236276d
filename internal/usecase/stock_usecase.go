package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"garage/internal/domain/model"
	repo "garage/internal/repository"

	"github.com/google/uuid"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// 在庫エンジン。
// 全ての在庫変更はappendMovementを通り、1トランザクション内で
// 台帳追記 → warehouse_stocks更新 → parts.current_stock再集計を行う。
type StockUsecase struct {
	tx repo.TransactionManager
}

// DI
func NewStockUsecase(tx repo.TransactionManager) *StockUsecase {
	return &StockUsecase{tx: tx}
}

// =====================
// 入庫（仕入）
// =====================

type ReceiveItemInput struct {
	PartID   int64
	Quantity int64
	Notes    string
}

type ReceiveStockInput struct {
	WarehouseID int64
	Items       []ReceiveItemInput
	Reference   string
}

// 明細ごとの結果。失敗した明細はErrorにメッセージが入り、Movementはnilになる
type ReceiveItemResult struct {
	PartID   int64                `json:"part_id"`
	Movement *model.StockMovement `json:"movement,omitempty"`
	Error    string               `json:"error,omitempty"`
}

// ReceiveStock は複数部品の入庫をまとめて受け付ける。
// 明細ごとに独立したトランザクションで処理し、途中で失敗しても
// 成功済みの明細はそのまま確定する（結果は明細単位で返す契約）。
func (u *StockUsecase) ReceiveStock(ctx context.Context, tenantID string, userID string, in ReceiveStockInput) ([]ReceiveItemResult, error) {
	if tenantID == "" {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.WarehouseID <= 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid warehouse_id")
	}
	if len(in.Items) == 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "items required")
	}
	if len(in.Items) > 100 {
		return nil, NewHTTPError(http.StatusBadRequest, "too many items")
	}

	results := make([]ReceiveItemResult, 0, len(in.Items))

	for _, item := range in.Items {
		if item.PartID <= 0 {
			results = append(results, ReceiveItemResult{PartID: item.PartID, Error: "invalid part_id"})
			continue
		}
		if item.Quantity <= 0 {
			results = append(results, ReceiveItemResult{PartID: item.PartID, Error: "quantity must be > 0"})
			continue
		}

		var m model.StockMovement
		err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
			var err error
			m, err = u.appendMovement(ctx, r, movementInput{
				tenantID:    tenantID,
				partID:      item.PartID,
				warehouseID: in.WarehouseID,
				mType:       model.MovementPurchase,
				quantity:    item.Quantity,
				reference:   strings.TrimSpace(in.Reference),
				notes:       strings.TrimSpace(item.Notes),
				userID:      userIDPtr(userID),
			})
			return err
		})
		if err != nil {
			results = append(results, ReceiveItemResult{PartID: item.PartID, Error: errMessage(err)})
			continue
		}
		results = append(results, ReceiveItemResult{PartID: item.PartID, Movement: &m})
	}

	return results, nil
}

// =====================
// 棚卸調整
// =====================

type AdjustStockInput struct {
	PartID      int64
	WarehouseID int64
	NewQuantity int64
	Notes       string
}

// AdjustStock は実地棚卸の数え直し結果に合わせて在庫を補正する。
// 差分は行ロックを取った現在値から計算するので、同時更新と競合しない。
// 差分0なら台帳に何も書かずnilを返す。
func (u *StockUsecase) AdjustStock(ctx context.Context, tenantID string, userID string, in AdjustStockInput) (*model.StockMovement, error) {
	if tenantID == "" {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.PartID <= 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid part_id")
	}
	if in.WarehouseID <= 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid warehouse_id")
	}
	if in.NewQuantity < 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "new_quantity must be >= 0")
	}

	var result *model.StockMovement

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//差分計算の基準となる現在値を行ロック付きで読む
		cur, err := r.Stocks().FindForUpdate(ctx, tenantID, in.PartID, in.WarehouseID)
		if err != nil && err != repo.ErrNotFound {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		//行が無ければ現在値0として扱う（初回調整で行を遅延作成する）

		diff := in.NewQuantity - cur.Quantity
		if diff == 0 {
			//変更なし。台帳は汚さない
			result = nil
			return nil
		}

		m, err := u.appendMovement(ctx, r, movementInput{
			tenantID:    tenantID,
			partID:      in.PartID,
			warehouseID: in.WarehouseID,
			mType:       model.MovementAdjustment,
			quantity:    diff,
			notes:       strings.TrimSpace(in.Notes),
			userID:      userIDPtr(userID),
		})
		if err != nil {
			return err
		}
		result = &m
		return nil
	})

	if err != nil {
		return nil, err
	}
	return result, nil
}

// =====================
// 倉庫間移動
// =====================

type TransferStockInput struct {
	PartID          int64
	FromWarehouseID int64
	ToWarehouseID   int64
	Quantity        int64
	Notes           string
}

type TransferStockOutput struct {
	Out model.StockMovement `json:"out"`
	In  model.StockMovement `json:"in"`
}

// TransferStock は払出と受入の2行を1つの移動として記録する。
// 両方コミットされるか、どちらも残らないかのどちらかしかない。
// 引当可能数のチェックは払出元の行ロックを保持したまま行うので、
// チェックと払出の間に他の操作が割り込むことはない。
func (u *StockUsecase) TransferStock(ctx context.Context, tenantID string, userID string, in TransferStockInput) (*TransferStockOutput, error) {
	if tenantID == "" {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.PartID <= 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid part_id")
	}
	if in.FromWarehouseID <= 0 || in.ToWarehouseID <= 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid warehouse_id")
	}
	if in.FromWarehouseID == in.ToWarehouseID {
		return nil, NewHTTPError(http.StatusBadRequest, "same warehouse")
	}
	if in.Quantity <= 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "quantity must be > 0")
	}

	var out TransferStockOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//払出元の在庫を行ロックして引当可能数を確認
		src, err := r.Stocks().FindForUpdate(ctx, tenantID, in.PartID, in.FromWarehouseID)
		if err == repo.ErrNotFound {
			//在庫行が無い＝引当可能数0
			return NewHTTPError(http.StatusConflict, "insufficient stock")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if src.Available() < in.Quantity {
			return NewHTTPError(http.StatusConflict, "insufficient stock")
		}

		//両脚を同じreference_idで結ぶ
		refID := uuid.NewString()
		notes := strings.TrimSpace(in.Notes)

		outM, err := u.appendMovement(ctx, r, movementInput{
			tenantID:    tenantID,
			partID:      in.PartID,
			warehouseID: in.FromWarehouseID,
			mType:       model.MovementTransferOut,
			quantity:    in.Quantity,
			reference:   "TRANSFER",
			referenceID: refID,
			notes:       notes,
			userID:      userIDPtr(userID),
		})
		if err != nil {
			return err
		}

		inM, err := u.appendMovement(ctx, r, movementInput{
			tenantID:    tenantID,
			partID:      in.PartID,
			warehouseID: in.ToWarehouseID,
			mType:       model.MovementTransferIn,
			quantity:    in.Quantity,
			reference:   "TRANSFER",
			referenceID: refID,
			notes:       notes,
			userID:      userIDPtr(userID),
		})
		if err != nil {
			return err
		}

		out = TransferStockOutput{Out: outM, In: inM}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &out, nil
}

// =====================
// 引当・消費・返品
// =====================

// ReserveStock は作業予定の部品を引当てる（消費はしない）。
func (u *StockUsecase) ReserveStock(ctx context.Context, tenantID string, userID string, partID, warehouseID, quantity int64, reference string, notes string) (*model.StockMovement, error) {
	return u.simpleMovement(ctx, tenantID, userID, model.MovementReserved, partID, warehouseID, quantity, reference, notes)
}

// ReleaseStock は引当を解除する。
func (u *StockUsecase) ReleaseStock(ctx context.Context, tenantID string, userID string, partID, warehouseID, quantity int64, reference string, notes string) (*model.StockMovement, error) {
	return u.simpleMovement(ctx, tenantID, userID, model.MovementUnreserved, partID, warehouseID, quantity, reference, notes)
}

// ConsumeStock は引当済みの部品を作業で消費する。
// 引当と在庫を同時に減らすため、先にReserveStockされていることが前提
func (u *StockUsecase) ConsumeStock(ctx context.Context, tenantID string, userID string, partID, warehouseID, quantity int64, reference string, notes string) (*model.StockMovement, error) {
	return u.simpleMovement(ctx, tenantID, userID, model.MovementConsumption, partID, warehouseID, quantity, reference, notes)
}

// ReturnStock は顧客返品・部品返却の入庫。
func (u *StockUsecase) ReturnStock(ctx context.Context, tenantID string, userID string, partID, warehouseID, quantity int64, reference string, notes string) (*model.StockMovement, error) {
	return u.simpleMovement(ctx, tenantID, userID, model.MovementReturn, partID, warehouseID, quantity, reference, notes)
}

func (u *StockUsecase) simpleMovement(ctx context.Context, tenantID string, userID string, mType model.MovementType, partID, warehouseID, quantity int64, reference string, notes string) (*model.StockMovement, error) {
	if tenantID == "" {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if partID <= 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid part_id")
	}
	if warehouseID <= 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid warehouse_id")
	}
	if quantity <= 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "quantity must be > 0")
	}

	var m model.StockMovement
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		var err error
		m, err = u.appendMovement(ctx, r, movementInput{
			tenantID:    tenantID,
			partID:      partID,
			warehouseID: warehouseID,
			mType:       mType,
			quantity:    quantity,
			reference:   strings.TrimSpace(reference),
			notes:       strings.TrimSpace(notes),
			userID:      userIDPtr(userID),
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// =====================
// 台帳追記の本体
// =====================

type movementInput struct {
	tenantID    string
	partID      int64
	warehouseID int64
	mType       model.MovementType
	quantity    int64 // ADJUSTMENTのみ符号付き
	reference   string
	referenceID string
	notes       string
	userID      *string
}

// appendMovement は呼び出し元のトランザクション内で、
//  1. 部品・倉庫がテナントのものか確認
//  2. 台帳行を追記
//  3. warehouse_stocksを行ロック付きでupsert
//  4. parts.current_stockを全倉庫合計で再集計
//
// を行う。どこかで失敗すればトランザクションごと巻き戻る。
func (u *StockUsecase) appendMovement(ctx context.Context, r repo.TxRepos, in movementInput) (model.StockMovement, error) {
	//部品の存在確認＋テナント所有チェック
	if _, err := r.Parts().FindByID(ctx, in.tenantID, in.partID); err != nil {
		if err == repo.ErrNotFound {
			return model.StockMovement{}, NewHTTPError(http.StatusNotFound, "part not found")
		}
		return model.StockMovement{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	//倉庫の存在確認＋テナント所有チェック
	if _, err := r.Warehouses().FindByID(ctx, in.tenantID, in.warehouseID); err != nil {
		if err == repo.ErrNotFound {
			return model.StockMovement{}, NewHTTPError(http.StatusNotFound, "warehouse not found")
		}
		return model.StockMovement{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	qtyDelta, resDelta, err := in.mType.Deltas(in.quantity)
	if err != nil {
		return model.StockMovement{}, NewHTTPError(http.StatusBadRequest, "invalid movement type")
	}

	//現在行を行ロックで取得（無ければ遅延作成する）
	cur, err := r.Stocks().FindForUpdate(ctx, in.tenantID, in.partID, in.warehouseID)
	exists := true
	if err == repo.ErrNotFound {
		exists = false
		cur = model.WarehouseStock{
			TenantID:    in.tenantID,
			PartID:      in.partID,
			WarehouseID: in.warehouseID,
		}
	} else if err != nil {
		return model.StockMovement{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	newQty := cur.Quantity + qtyDelta
	newRes := cur.Reserved + resDelta

	//不変条件: quantity >= 0 / reserved >= 0 / quantity - reserved >= 0
	if newRes < 0 {
		return model.StockMovement{}, NewHTTPError(http.StatusConflict, "insufficient reserved")
	}
	if newQty < 0 || newQty-newRes < 0 {
		return model.StockMovement{}, NewHTTPError(http.StatusConflict, "insufficient stock")
	}

	//台帳行を追記（作成後は二度と更新しない）
	m, err := r.Movements().Create(ctx, model.StockMovement{
		TenantID:    in.tenantID,
		PartID:      in.partID,
		WarehouseID: in.warehouseID,
		Type:        in.mType,
		Quantity:    in.quantity,
		Reference:   in.reference,
		ReferenceID: in.referenceID,
		Notes:       in.notes,
		UserID:      in.userID,
		CreatedAt:   time.Now(),
	})
	if err != nil {
		return model.StockMovement{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//ビューのupsert
	if exists {
		if err := r.Stocks().UpdateLevels(ctx, cur.ID, newQty, newRes); err != nil {
			return model.StockMovement{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
	} else {
		cur.Quantity = newQty
		cur.Reserved = newRes
		if _, err := r.Stocks().Create(ctx, cur); err != nil {
			if err == repo.ErrConflict {
				//同じ(part, warehouse)の遅延作成が同時に走った。呼び出し側でリトライ可能
				return model.StockMovement{}, NewHTTPError(http.StatusConflict, "conflict")
			}
			return model.StockMovement{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}

	//Aggregator: 全倉庫合計を再集計してcurrent_stockを同期
	total, err := r.Stocks().SumQuantityByPart(ctx, in.tenantID, in.partID)
	if err != nil {
		return model.StockMovement{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if err := r.Parts().UpdateCurrentStock(ctx, in.tenantID, in.partID, total); err != nil {
		return model.StockMovement{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return m, nil
}

func userIDPtr(userID string) *string {
	if userID == "" {
		return nil
	}
	return &userID
}

func errMessage(err error) string {
	if he, ok := AsHTTPError(err); ok {
		return he.Message
	}
	return "internal error"
}
