package handler

import (
	"net/http"
	"strconv"

	"garage/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /warehouses のAPI
type WarehouseHandler struct {
	uc    *usecase.WarehouseUsecase
	query *usecase.StockQueryUsecase
}

// DI
func NewWarehouseHandler(uc *usecase.WarehouseUsecase, query *usecase.StockQueryUsecase) *WarehouseHandler {
	return &WarehouseHandler{uc: uc, query: query}
}

// 倉庫のルートを登録。作成と更新はMANAGERのみ
func (h *WarehouseHandler) RegisterRoutes(g *echo.Group, managerOnly echo.MiddlewareFunc) {
	g.GET("/warehouses", h.list)
	g.POST("/warehouses", h.create, managerOnly)
	g.PATCH("/warehouses/:id", h.update, managerOnly)
}

func (h *WarehouseHandler) list(c echo.Context) error {
	out, err := h.query.ListWarehouses(c.Request().Context(), tenantFromCtx(c))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"data": out})
}

type warehouseRequest struct {
	Name     string `json:"name"`
	Code     string `json:"code"`
	Address  string `json:"address"`
	IsActive *bool  `json:"is_active"`
}

func (h *WarehouseHandler) create(c echo.Context) error {
	var req warehouseRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	w, err := h.uc.CreateWarehouse(c.Request().Context(), tenantFromCtx(c), userFromCtx(c), usecase.CreateWarehouseInput{
		Name:    req.Name,
		Code:    req.Code,
		Address: req.Address,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, w)
}

func (h *WarehouseHandler) update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req warehouseRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	//is_active省略時は有効のまま
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	w, err := h.uc.UpdateWarehouse(c.Request().Context(), tenantFromCtx(c), userFromCtx(c), id, usecase.UpdateWarehouseInput{
		Name:     req.Name,
		Code:     req.Code,
		Address:  req.Address,
		IsActive: isActive,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, w)
}
