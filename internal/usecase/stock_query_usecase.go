package usecase

import (
	"context"
	"net/http"
	"strings"

	"garage/internal/domain/model"
	repo "garage/internal/repository"
)

// 一覧系レスポンス共通のメタ情報
type ListMeta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

func newListMeta(total int64, page int, limit int) ListMeta {
	pages := int(total) / limit
	if int(total)%limit != 0 {
		pages++
	}
	return ListMeta{Total: total, Page: page, Limit: limit, TotalPages: pages}
}

// 読み取り専用の在庫照会。状態は一切変更しない
type StockQueryUsecase struct {
	warehouses repo.WarehouseRepository
	stocks     repo.WarehouseStockRepository
	movements  repo.StockMovementRepository
}

// DI
func NewStockQueryUsecase(
	warehouses repo.WarehouseRepository,
	stocks repo.WarehouseStockRepository,
	movements repo.StockMovementRepository,
) *StockQueryUsecase {
	return &StockQueryUsecase{
		warehouses: warehouses,
		stocks:     stocks,
		movements:  movements,
	}
}

// =====================
// 倉庫一覧
// =====================

func (u *StockQueryUsecase) ListWarehouses(ctx context.Context, tenantID string) ([]model.Warehouse, error) {
	if tenantID == "" {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	warehouses, err := u.warehouses.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return warehouses, nil
}

// =====================
// 在庫一覧
// =====================

type ListStockInput struct {
	Page        int
	Limit       int
	Search      string
	WarehouseID *int64
	LowStock    bool
}

type StockRowOutput struct {
	ID            int64  `json:"id"`
	PartID        int64  `json:"part_id"`
	PartName      string `json:"part_name"`
	SKU           string `json:"sku"`
	MinStock      int64  `json:"min_stock"`
	WarehouseID   int64  `json:"warehouse_id"`
	WarehouseName string `json:"warehouse_name"`
	WarehouseCode string `json:"warehouse_code"`
	Quantity      int64  `json:"quantity"`
	Reserved      int64  `json:"reserved"`
	Available     int64  `json:"available"`
}

type StockListOutput struct {
	Data []StockRowOutput `json:"data"`
	Meta ListMeta         `json:"meta"`
}

func (u *StockQueryUsecase) ListStock(ctx context.Context, tenantID string, in ListStockInput) (StockListOutput, error) {
	if tenantID == "" {
		return StockListOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err := validatePaging(in.Page, in.Limit); err != nil {
		return StockListOutput{}, err
	}
	if len(in.Search) > 100 {
		return StockListOutput{}, NewHTTPError(http.StatusBadRequest, "search too long")
	}

	rows, total, err := u.stocks.List(ctx, repo.StockListQuery{
		TenantID:    tenantID,
		Page:        in.Page,
		Limit:       in.Limit,
		Search:      strings.TrimSpace(in.Search),
		WarehouseID: in.WarehouseID,
		LowStock:    in.LowStock,
	})
	if err != nil {
		return StockListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	data := make([]StockRowOutput, 0, len(rows))
	for _, row := range rows {
		data = append(data, toStockRowOutput(row))
	}

	return StockListOutput{
		Data: data,
		Meta: newListMeta(total, in.Page, in.Limit),
	}, nil
}

// =====================
// 部品別サマリ
// =====================

type StockSummaryInput struct {
	Page        int
	Limit       int
	Search      string
	WarehouseID *int64
}

type WarehouseBreakdown struct {
	WarehouseID   int64  `json:"warehouse_id"`
	WarehouseName string `json:"warehouse_name"`
	Quantity      int64  `json:"quantity"`
	Reserved      int64  `json:"reserved"`
	Available     int64  `json:"available"`
}

type StockSummaryRowOutput struct {
	PartID        int64                `json:"part_id"`
	PartName      string               `json:"part_name"`
	SKU           string               `json:"sku"`
	MinStock      int64                `json:"min_stock"`
	TotalQuantity int64                `json:"total_quantity"`
	TotalReserved int64                `json:"total_reserved"`
	Available     int64                `json:"available"`
	Warehouses    []WarehouseBreakdown `json:"warehouses"`
}

type StockSummaryOutput struct {
	Data []StockSummaryRowOutput `json:"data"`
	Meta ListMeta                `json:"meta"`
}

// StockSummary は部品ごとに全倉庫（またはwarehouse_id指定で1倉庫）の
// 合計と倉庫別内訳を返す。
func (u *StockQueryUsecase) StockSummary(ctx context.Context, tenantID string, in StockSummaryInput) (StockSummaryOutput, error) {
	if tenantID == "" {
		return StockSummaryOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err := validatePaging(in.Page, in.Limit); err != nil {
		return StockSummaryOutput{}, err
	}
	if len(in.Search) > 100 {
		return StockSummaryOutput{}, NewHTTPError(http.StatusBadRequest, "search too long")
	}

	rows, total, err := u.stocks.SummarizeByPart(ctx, repo.StockSummaryQuery{
		TenantID:    tenantID,
		Page:        in.Page,
		Limit:       in.Limit,
		Search:      strings.TrimSpace(in.Search),
		WarehouseID: in.WarehouseID,
	})
	if err != nil {
		return StockSummaryOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//このページに載る部品の倉庫別内訳をまとめて引く
	partIDs := make([]int64, 0, len(rows))
	for _, row := range rows {
		partIDs = append(partIDs, row.PartID)
	}
	levels, err := u.stocks.ListByPartIDs(ctx, tenantID, partIDs, in.WarehouseID)
	if err != nil {
		return StockSummaryOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	breakdowns := make(map[int64][]WarehouseBreakdown, len(rows))
	for _, lv := range levels {
		breakdowns[lv.PartID] = append(breakdowns[lv.PartID], WarehouseBreakdown{
			WarehouseID:   lv.WarehouseID,
			WarehouseName: lv.WarehouseName,
			Quantity:      lv.Quantity,
			Reserved:      lv.Reserved,
			Available:     lv.Quantity - lv.Reserved,
		})
	}

	data := make([]StockSummaryRowOutput, 0, len(rows))
	for _, row := range rows {
		wbs := breakdowns[row.PartID]
		if wbs == nil {
			wbs = []WarehouseBreakdown{}
		}
		data = append(data, StockSummaryRowOutput{
			PartID:        row.PartID,
			PartName:      row.PartName,
			SKU:           row.SKU,
			MinStock:      row.MinStock,
			TotalQuantity: row.TotalQuantity,
			TotalReserved: row.TotalReserved,
			Available:     row.TotalQuantity - row.TotalReserved,
			Warehouses:    wbs,
		})
	}

	return StockSummaryOutput{
		Data: data,
		Meta: newListMeta(total, in.Page, in.Limit),
	}, nil
}

// =====================
// 台帳履歴
// =====================

type ListMovementsInput struct {
	Page        int
	Limit       int
	PartID      *int64
	WarehouseID *int64
	Type        *string
}

type MovementListOutput struct {
	Data []model.StockMovement `json:"data"`
	Meta ListMeta              `json:"meta"`
}

func (u *StockQueryUsecase) ListMovements(ctx context.Context, tenantID string, in ListMovementsInput) (MovementListOutput, error) {
	if tenantID == "" {
		return MovementListOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err := validatePaging(in.Page, in.Limit); err != nil {
		return MovementListOutput{}, err
	}

	var mType *model.MovementType
	if in.Type != nil && *in.Type != "" {
		t := model.MovementType(*in.Type)
		if !t.IsValid() {
			return MovementListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid type")
		}
		mType = &t
	}

	movements, total, err := u.movements.List(ctx, repo.MovementListQuery{
		TenantID:    tenantID,
		Page:        in.Page,
		Limit:       in.Limit,
		PartID:      in.PartID,
		WarehouseID: in.WarehouseID,
		Type:        mType,
	})
	if err != nil {
		return MovementListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return MovementListOutput{
		Data: movements,
		Meta: newListMeta(total, in.Page, in.Limit),
	}, nil
}

func validatePaging(page int, limit int) error {
	if page < 1 {
		return NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if limit < 1 || limit > 100 {
		return NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	return nil
}

func toStockRowOutput(row repo.StockListRow) StockRowOutput {
	return StockRowOutput{
		ID:            row.ID,
		PartID:        row.PartID,
		PartName:      row.PartName,
		SKU:           row.SKU,
		MinStock:      row.MinStock,
		WarehouseID:   row.WarehouseID,
		WarehouseName: row.WarehouseName,
		WarehouseCode: row.WarehouseCode,
		Quantity:      row.Quantity,
		Reserved:      row.Reserved,
		Available:     row.Quantity - row.Reserved,
	}
}
