package usecase

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"garage/internal/domain/model"
	repo "garage/internal/repository"
)

type WarehouseUsecase struct {
	warehouses repo.WarehouseRepository
	auditRepo  repo.AuditLogRepository
}

// DI
func NewWarehouseUsecase(warehouses repo.WarehouseRepository, auditRepo repo.AuditLogRepository) *WarehouseUsecase {
	return &WarehouseUsecase{
		warehouses: warehouses,
		auditRepo:  auditRepo,
	}
}

type CreateWarehouseInput struct {
	Name    string
	Code    string
	Address string
}

func (u *WarehouseUsecase) CreateWarehouse(ctx context.Context, tenantID string, userID string, in CreateWarehouseInput) (model.Warehouse, error) {
	if tenantID == "" || userID == "" {
		return model.Warehouse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if strings.TrimSpace(in.Name) == "" {
		return model.Warehouse{}, NewHTTPError(http.StatusBadRequest, "name required")
	}

	now := time.Now()
	w, err := u.warehouses.Create(ctx, model.Warehouse{
		TenantID:  tenantID,
		Name:      strings.TrimSpace(in.Name),
		Code:      strings.TrimSpace(in.Code),
		Address:   in.Address,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return model.Warehouse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//監査ログを作成（倉庫作成）
	if err := u.auditRepo.Create(ctx, model.AuditLog{
		TenantID:     tenantID,
		ActorUserID:  userID,
		Action:       model.AuditActionCreateWarehouse,
		ResourceType: model.AuditResourceWarehouse,
		ResourceID:   w.ID,
		AfterJSON:    warehouseJSON(w),
		CreatedAt:    time.Now(),
	}); err != nil {
		return model.Warehouse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return w, nil
}

type UpdateWarehouseInput struct {
	Name     string
	Code     string
	Address  string
	IsActive bool
}

// 倉庫の更新。削除は提供せず、IsActive=falseで受払を止める運用
func (u *WarehouseUsecase) UpdateWarehouse(ctx context.Context, tenantID string, userID string, warehouseID int64, in UpdateWarehouseInput) (model.Warehouse, error) {
	if tenantID == "" || userID == "" {
		return model.Warehouse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if warehouseID <= 0 {
		return model.Warehouse{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if strings.TrimSpace(in.Name) == "" {
		return model.Warehouse{}, NewHTTPError(http.StatusBadRequest, "name required")
	}

	//変更前（before）
	before, err := u.warehouses.FindByID(ctx, tenantID, warehouseID)
	if err == repo.ErrNotFound {
		return model.Warehouse{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Warehouse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	updated := model.Warehouse{
		ID:       warehouseID,
		TenantID: tenantID,
		Name:     strings.TrimSpace(in.Name),
		Code:     strings.TrimSpace(in.Code),
		Address:  in.Address,
		IsActive: in.IsActive,
	}
	if err := u.warehouses.Update(ctx, updated); err != nil {
		if err == repo.ErrNotFound {
			return model.Warehouse{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return model.Warehouse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//監査ログを作成（倉庫更新）
	if err := u.auditRepo.Create(ctx, model.AuditLog{
		TenantID:     tenantID,
		ActorUserID:  userID,
		Action:       model.AuditActionUpdateWarehouse,
		ResourceType: model.AuditResourceWarehouse,
		ResourceID:   warehouseID,
		BeforeJSON:   warehouseJSON(before),
		AfterJSON:    warehouseJSON(updated),
		CreatedAt:    time.Now(),
	}); err != nil {
		return model.Warehouse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return updated, nil
}

func warehouseJSON(w model.Warehouse) string {
	return fmt.Sprintf(`{"name":%q,"code":%q,"is_active":%t}`, w.Name, w.Code, w.IsActive)
}
