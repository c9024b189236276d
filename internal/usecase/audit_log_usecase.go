package usecase

import (
	"context"
	"net/http"

	"garage/internal/domain/model"
	repo "garage/internal/repository"
)

type AuditLogUsecase struct {
	auditRepo repo.AuditLogRepository
}

// DI
func NewAuditLogUsecase(auditRepo repo.AuditLogRepository) *AuditLogUsecase {
	return &AuditLogUsecase{auditRepo: auditRepo}
}

type ListAuditLogsInput struct {
	Page         int
	Limit        int
	Action       *string
	ResourceType *string
}

// ListAuditLogs はテナントの監査ログを新しい順で返す。
// 件数の総数は持たないので、メタは返さずページ送りのみ
func (u *AuditLogUsecase) ListAuditLogs(ctx context.Context, tenantID string, in ListAuditLogsInput) ([]model.AuditLog, error) {
	if tenantID == "" {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err := validatePaging(in.Page, in.Limit); err != nil {
		return nil, err
	}

	filter := repo.AuditLogFilter{
		TenantID: tenantID,
		Limit:    in.Limit,
		Offset:   (in.Page - 1) * in.Limit,
	}
	if in.Action != nil && *in.Action != "" {
		a := model.AuditAction(*in.Action)
		filter.Action = &a
	}
	if in.ResourceType != nil && *in.ResourceType != "" {
		rt := model.AuditResourceType(*in.ResourceType)
		filter.ResourceType = &rt
	}

	logs, err := u.auditRepo.List(ctx, filter)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if logs == nil {
		logs = []model.AuditLog{}
	}
	return logs, nil
}
