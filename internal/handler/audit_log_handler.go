package handler

import (
	"net/http"

	"garage/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /audit-logs のAPI
type AuditLogHandler struct {
	uc *usecase.AuditLogUsecase
}

// DI
func NewAuditLogHandler(uc *usecase.AuditLogUsecase) *AuditLogHandler {
	return &AuditLogHandler{uc: uc}
}

// 監査ログはMANAGERのみ閲覧できる
func (h *AuditLogHandler) RegisterRoutes(g *echo.Group, managerOnly echo.MiddlewareFunc) {
	g.GET("/audit-logs", h.list, managerOnly)
}

func (h *AuditLogHandler) list(c echo.Context) error {
	page, limit, ok := pagingParams(c)
	if !ok {
		return nil
	}

	var action, resourceType *string
	if v := c.QueryParam("action"); v != "" {
		action = &v
	}
	if v := c.QueryParam("resource_type"); v != "" {
		resourceType = &v
	}

	logs, err := h.uc.ListAuditLogs(c.Request().Context(), tenantFromCtx(c), usecase.ListAuditLogsInput{
		Page:         page,
		Limit:        limit,
		Action:       action,
		ResourceType: resourceType,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"data": logs})
}
