package handler

import (
	"net/http"
	"strconv"

	"garage/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /parts のAPI
type PartHandler struct {
	uc *usecase.PartUsecase
}

// DI
func NewPartHandler(uc *usecase.PartUsecase) *PartHandler {
	return &PartHandler{uc: uc}
}

// 部品マスタのルートを登録。削除はMANAGERのみ
func (h *PartHandler) RegisterRoutes(g *echo.Group, managerOnly echo.MiddlewareFunc) {
	g.GET("/parts", h.list)
	g.GET("/parts/:id", h.get)
	g.POST("/parts", h.create)
	g.PATCH("/parts/:id", h.update)
	g.DELETE("/parts/:id", h.delete, managerOnly)
}

func (h *PartHandler) list(c echo.Context) error {
	page, limit, ok := pagingParams(c)
	if !ok {
		return nil
	}

	out, err := h.uc.ListParts(c.Request().Context(), tenantFromCtx(c), usecase.ListPartsInput{
		Page:  page,
		Limit: limit,
		Q:     c.QueryParam("q"),
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *PartHandler) get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	p, err := h.uc.GetPart(c.Request().Context(), tenantFromCtx(c), id)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, p)
}

type partRequest struct {
	Name      string `json:"name"`
	SKU       string `json:"sku"`
	Brand     string `json:"brand"`
	OEMNumber string `json:"oem_number"`
	CostPrice string `json:"cost_price"`
	SellPrice string `json:"sell_price"`
	MinStock  int64  `json:"min_stock"`
}

func (r partRequest) toInput() usecase.PartInput {
	return usecase.PartInput{
		Name:      r.Name,
		SKU:       r.SKU,
		Brand:     r.Brand,
		OEMNumber: r.OEMNumber,
		CostPrice: r.CostPrice,
		SellPrice: r.SellPrice,
		MinStock:  r.MinStock,
	}
}

func (h *PartHandler) create(c echo.Context) error {
	var req partRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	p, err := h.uc.CreatePart(c.Request().Context(), tenantFromCtx(c), userFromCtx(c), req.toInput())
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, p)
}

func (h *PartHandler) update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req partRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.uc.UpdatePart(c.Request().Context(), tenantFromCtx(c), userFromCtx(c), id, req.toInput()); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *PartHandler) delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.DeletePart(c.Request().Context(), tenantFromCtx(c), userFromCtx(c), id); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
