package usecase

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"garage/internal/domain/model"
	repo "garage/internal/repository"

	"github.com/shopspring/decimal"
)

type PartUsecase struct {
	parts     repo.PartRepository
	auditRepo repo.AuditLogRepository
}

// DI
func NewPartUsecase(parts repo.PartRepository, auditRepo repo.AuditLogRepository) *PartUsecase {
	return &PartUsecase{
		parts:     parts,
		auditRepo: auditRepo,
	}
}

type ListPartsInput struct {
	Page  int
	Limit int
	Q     string
}

type PartListOutput struct {
	Data []model.Part `json:"data"`
	Meta ListMeta     `json:"meta"`
}

func (u *PartUsecase) ListParts(ctx context.Context, tenantID string, in ListPartsInput) (PartListOutput, error) {
	if tenantID == "" {
		return PartListOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err := validatePaging(in.Page, in.Limit); err != nil {
		return PartListOutput{}, err
	}
	if len(in.Q) > 100 {
		return PartListOutput{}, NewHTTPError(http.StatusBadRequest, "q too long")
	}

	parts, total, err := u.parts.List(ctx, repo.PartListQuery{
		TenantID: tenantID,
		Page:     in.Page,
		Limit:    in.Limit,
		Q:        strings.TrimSpace(in.Q),
	})
	if err != nil {
		return PartListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return PartListOutput{
		Data: parts,
		Meta: newListMeta(total, in.Page, in.Limit),
	}, nil
}

func (u *PartUsecase) GetPart(ctx context.Context, tenantID string, partID int64) (model.Part, error) {
	if tenantID == "" {
		return model.Part{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if partID <= 0 {
		return model.Part{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	p, err := u.parts.FindByID(ctx, tenantID, partID)
	if err == repo.ErrNotFound {
		return model.Part{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Part{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

type PartInput struct {
	Name      string
	SKU       string
	Brand     string
	OEMNumber string
	CostPrice string // decimal文字列
	SellPrice string // decimal文字列
	MinStock  int64
}

func (u *PartUsecase) CreatePart(ctx context.Context, tenantID string, userID string, in PartInput) (model.Part, error) {
	if tenantID == "" || userID == "" {
		return model.Part{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	cost, sell, err := u.validatePartInput(in)
	if err != nil {
		return model.Part{}, err
	}

	now := time.Now()
	p, err := u.parts.Create(ctx, model.Part{
		TenantID:  tenantID,
		Name:      strings.TrimSpace(in.Name),
		SKU:       strings.TrimSpace(in.SKU),
		Brand:     strings.TrimSpace(in.Brand),
		OEMNumber: strings.TrimSpace(in.OEMNumber),
		CostPrice: cost,
		SellPrice: sell,
		MinStock:  in.MinStock,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return model.Part{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

func (u *PartUsecase) UpdatePart(ctx context.Context, tenantID string, userID string, partID int64, in PartInput) error {
	if tenantID == "" || userID == "" {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if partID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	cost, sell, err := u.validatePartInput(in)
	if err != nil {
		return err
	}

	//変更前（before）
	before, err := u.parts.FindByID(ctx, tenantID, partID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	updated := model.Part{
		ID:        partID,
		TenantID:  tenantID,
		Name:      strings.TrimSpace(in.Name),
		SKU:       strings.TrimSpace(in.SKU),
		Brand:     strings.TrimSpace(in.Brand),
		OEMNumber: strings.TrimSpace(in.OEMNumber),
		CostPrice: cost,
		SellPrice: sell,
		MinStock:  in.MinStock,
	}
	if err := u.parts.Update(ctx, updated); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//監査ログを作成（部品マスタ更新）
	if err := u.auditRepo.Create(ctx, model.AuditLog{
		TenantID:     tenantID,
		ActorUserID:  userID,
		Action:       model.AuditActionUpdatePart,
		ResourceType: model.AuditResourcePart,
		ResourceID:   partID,
		BeforeJSON:   partJSON(before),
		AfterJSON:    partJSON(updated),
		CreatedAt:    time.Now(),
	}); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return nil
}

func (u *PartUsecase) DeletePart(ctx context.Context, tenantID string, userID string, partID int64) error {
	if tenantID == "" || userID == "" {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if partID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	err := u.parts.SoftDelete(ctx, tenantID, partID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *PartUsecase) validatePartInput(in PartInput) (decimal.Decimal, decimal.Decimal, error) {
	if strings.TrimSpace(in.Name) == "" {
		return decimal.Zero, decimal.Zero, NewHTTPError(http.StatusBadRequest, "name required")
	}
	if in.MinStock < 0 {
		return decimal.Zero, decimal.Zero, NewHTTPError(http.StatusBadRequest, "min_stock must be >= 0")
	}

	cost := decimal.Zero
	if strings.TrimSpace(in.CostPrice) != "" {
		var err error
		cost, err = decimal.NewFromString(in.CostPrice)
		if err != nil || cost.IsNegative() {
			return decimal.Zero, decimal.Zero, NewHTTPError(http.StatusBadRequest, "invalid cost_price")
		}
	}

	sell := decimal.Zero
	if strings.TrimSpace(in.SellPrice) != "" {
		var err error
		sell, err = decimal.NewFromString(in.SellPrice)
		if err != nil || sell.IsNegative() {
			return decimal.Zero, decimal.Zero, NewHTTPError(http.StatusBadRequest, "invalid sell_price")
		}
	}

	return cost, sell, nil
}

func partJSON(p model.Part) string {
	return fmt.Sprintf(`{"name":%q,"sku":%q,"min_stock":%d}`, p.Name, p.SKU, p.MinStock)
}
