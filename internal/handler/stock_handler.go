package handler

import (
	"context"
	"net/http"
	"strconv"

	"garage/internal/domain/model"
	mw "garage/internal/middleware"
	"garage/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

// contextからテナントIDを取り出す
func tenantFromCtx(c echo.Context) string {
	if v, ok := c.Get(mw.CtxTenantIDKey).(string); ok {
		return v
	}
	return ""
}

// contextからユーザーIDを取り出す
func userFromCtx(c echo.Context) string {
	if v, ok := c.Get(mw.CtxUserIDKey).(string); ok {
		return v
	}
	return ""
}

// /stock の在庫エンジンAPI
type StockHandler struct {
	uc    *usecase.StockUsecase
	query *usecase.StockQueryUsecase
}

// DI
func NewStockHandler(uc *usecase.StockUsecase, query *usecase.StockQueryUsecase) *StockHandler {
	return &StockHandler{uc: uc, query: query}
}

// 在庫のルートを登録
func (h *StockHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/stock", h.list)
	g.GET("/stock/summary", h.summary)
	g.GET("/stock/movements", h.movements)

	g.POST("/stock/receive", h.receive)
	g.POST("/stock/adjust", h.adjust)
	g.POST("/stock/transfer", h.transfer)
	g.POST("/stock/reserve", h.reserve)
	g.POST("/stock/release", h.release)
	g.POST("/stock/consume", h.consume)
	g.POST("/stock/return", h.returnStock)
}

// =====================
// 読み取り
// =====================

func (h *StockHandler) list(c echo.Context) error {
	page, limit, ok := pagingParams(c)
	if !ok {
		return nil
	}

	warehouseID, ok := optionalInt64Param(c, "warehouse_id")
	if !ok {
		return nil
	}

	out, err := h.query.ListStock(c.Request().Context(), tenantFromCtx(c), usecase.ListStockInput{
		Page:        page,
		Limit:       limit,
		Search:      c.QueryParam("search"),
		WarehouseID: warehouseID,
		LowStock:    c.QueryParam("low_stock") == "true",
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *StockHandler) summary(c echo.Context) error {
	page, limit, ok := pagingParams(c)
	if !ok {
		return nil
	}

	warehouseID, ok := optionalInt64Param(c, "warehouse_id")
	if !ok {
		return nil
	}

	out, err := h.query.StockSummary(c.Request().Context(), tenantFromCtx(c), usecase.StockSummaryInput{
		Page:        page,
		Limit:       limit,
		Search:      c.QueryParam("search"),
		WarehouseID: warehouseID,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *StockHandler) movements(c echo.Context) error {
	page, limit, ok := pagingParams(c)
	if !ok {
		return nil
	}

	partID, ok := optionalInt64Param(c, "part_id")
	if !ok {
		return nil
	}
	warehouseID, ok := optionalInt64Param(c, "warehouse_id")
	if !ok {
		return nil
	}

	var mType *string
	if v := c.QueryParam("type"); v != "" {
		mType = &v
	}

	out, err := h.query.ListMovements(c.Request().Context(), tenantFromCtx(c), usecase.ListMovementsInput{
		Page:        page,
		Limit:       limit,
		PartID:      partID,
		WarehouseID: warehouseID,
		Type:        mType,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

// =====================
// 書き込み
// =====================

type receiveItemRequest struct {
	PartID   int64  `json:"part_id"`
	Quantity int64  `json:"quantity"`
	Notes    string `json:"notes"`
}

type receiveRequest struct {
	WarehouseID int64                `json:"warehouse_id"`
	Items       []receiveItemRequest `json:"items"`
	Reference   string               `json:"reference"`
}

func (h *StockHandler) receive(c echo.Context) error {
	var req receiveRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	items := make([]usecase.ReceiveItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, usecase.ReceiveItemInput{
			PartID:   it.PartID,
			Quantity: it.Quantity,
			Notes:    it.Notes,
		})
	}

	results, err := h.uc.ReceiveStock(c.Request().Context(), tenantFromCtx(c), userFromCtx(c), usecase.ReceiveStockInput{
		WarehouseID: req.WarehouseID,
		Items:       items,
		Reference:   req.Reference,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"results": results})
}

type adjustRequest struct {
	PartID      int64  `json:"part_id"`
	WarehouseID int64  `json:"warehouse_id"`
	NewQuantity int64  `json:"new_quantity"`
	Notes       string `json:"notes"`
}

func (h *StockHandler) adjust(c echo.Context) error {
	var req adjustRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	m, err := h.uc.AdjustStock(c.Request().Context(), tenantFromCtx(c), userFromCtx(c), usecase.AdjustStockInput{
		PartID:      req.PartID,
		WarehouseID: req.WarehouseID,
		NewQuantity: req.NewQuantity,
		Notes:       req.Notes,
	})
	if err != nil {
		return writeError(c, err)
	}

	//差分なしならmovementはnull
	return c.JSON(http.StatusOK, map[string]interface{}{"movement": m})
}

type transferRequest struct {
	PartID          int64  `json:"part_id"`
	FromWarehouseID int64  `json:"from_warehouse_id"`
	ToWarehouseID   int64  `json:"to_warehouse_id"`
	Quantity        int64  `json:"quantity"`
	Notes           string `json:"notes"`
}

func (h *StockHandler) transfer(c echo.Context) error {
	var req transferRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.TransferStock(c.Request().Context(), tenantFromCtx(c), userFromCtx(c), usecase.TransferStockInput{
		PartID:          req.PartID,
		FromWarehouseID: req.FromWarehouseID,
		ToWarehouseID:   req.ToWarehouseID,
		Quantity:        req.Quantity,
		Notes:           req.Notes,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

type simpleMovementRequest struct {
	PartID      int64  `json:"part_id"`
	WarehouseID int64  `json:"warehouse_id"`
	Quantity    int64  `json:"quantity"`
	Reference   string `json:"reference"`
	Notes       string `json:"notes"`
}

func (h *StockHandler) reserve(c echo.Context) error {
	return h.simpleMovement(c, h.uc.ReserveStock)
}

func (h *StockHandler) release(c echo.Context) error {
	return h.simpleMovement(c, h.uc.ReleaseStock)
}

func (h *StockHandler) consume(c echo.Context) error {
	return h.simpleMovement(c, h.uc.ConsumeStock)
}

func (h *StockHandler) returnStock(c echo.Context) error {
	return h.simpleMovement(c, h.uc.ReturnStock)
}

func (h *StockHandler) simpleMovement(
	c echo.Context,
	fn func(ctx context.Context, tenantID string, userID string, partID, warehouseID, quantity int64, reference string, notes string) (*model.StockMovement, error),
) error {
	var req simpleMovementRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	m, err := fn(c.Request().Context(), tenantFromCtx(c), userFromCtx(c),
		req.PartID, req.WarehouseID, req.Quantity, req.Reference, req.Notes)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"movement": m})
}

// =====================
// クエリパラメータ共通
// =====================

// page（default 1）/ limit（default 20）。
// 不正値のときはレスポンスを書いてfalseを返す
func pagingParams(c echo.Context) (int, int, bool) {
	page := 1
	if v := c.QueryParam("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			_ = c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid page"})
			return 0, 0, false
		}
		page = p
	}

	limit := 20
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			_ = c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
			return 0, 0, false
		}
		limit = l
	}

	return page, limit, true
}

func optionalInt64Param(c echo.Context, name string) (*int64, bool) {
	v := c.QueryParam(name)
	if v == "" {
		return nil, true
	}
	x, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		_ = c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid " + name})
		return nil, false
	}
	return &x, true
}
