package usecase

import (
	"context"
	"net/http"
	"testing"

	"garage/internal/domain/model"
	repo "garage/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// Mocks（衝突回避の命名）
// =====================

type PartRepoMock struct{ mock.Mock }

func (m *PartRepoMock) List(ctx context.Context, q repo.PartListQuery) ([]model.Part, int64, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.Part)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *PartRepoMock) FindByID(ctx context.Context, tenantID string, id int64) (model.Part, error) {
	args := m.Called(ctx, tenantID, id)
	p, _ := args.Get(0).(model.Part)
	return p, args.Error(1)
}

func (m *PartRepoMock) Create(ctx context.Context, p model.Part) (model.Part, error) {
	args := m.Called(ctx, p)
	created, _ := args.Get(0).(model.Part)
	return created, args.Error(1)
}

func (m *PartRepoMock) Update(ctx context.Context, p model.Part) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *PartRepoMock) SoftDelete(ctx context.Context, tenantID string, id int64) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *PartRepoMock) UpdateCurrentStock(ctx context.Context, tenantID string, partID int64, total int64) error {
	panic("not used in PartUsecase tests")
}

type PartAuditRepoMock struct{ mock.Mock }

func (m *PartAuditRepoMock) Create(ctx context.Context, log model.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *PartAuditRepoMock) List(ctx context.Context, filter repo.AuditLogFilter) ([]model.AuditLog, error) {
	panic("not used in PartUsecase tests")
}

// =====================
// Tests
// =====================

func TestCreatePart_ParsesDecimalPrices(t *testing.T) {
	parts := new(PartRepoMock)
	uc := NewPartUsecase(parts, new(PartAuditRepoMock))

	parts.On("Create", mock.Anything, mock.MatchedBy(func(p model.Part) bool {
		return p.TenantID == testTenant &&
			p.CostPrice.Equal(decimal.RequireFromString("12.50")) &&
			p.SellPrice.Equal(decimal.RequireFromString("29.99"))
	})).Return(model.Part{ID: 1, TenantID: testTenant, Name: "Brake Pad"}, nil)

	p, err := uc.CreatePart(context.Background(), testTenant, testUser, PartInput{
		Name:      "Brake Pad",
		SKU:       "BP-001",
		CostPrice: "12.50",
		SellPrice: "29.99",
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), p.ID)
	parts.AssertExpectations(t)
}

func TestCreatePart_RejectsBadPrices(t *testing.T) {
	uc := NewPartUsecase(new(PartRepoMock), new(PartAuditRepoMock))
	ctx := context.Background()

	_, err := uc.CreatePart(ctx, testTenant, testUser, PartInput{Name: "X", CostPrice: "abc"})
	assertHTTPStatus(t, err, http.StatusBadRequest)

	_, err = uc.CreatePart(ctx, testTenant, testUser, PartInput{Name: "X", SellPrice: "-1"})
	assertHTTPStatus(t, err, http.StatusBadRequest)

	_, err = uc.CreatePart(ctx, testTenant, testUser, PartInput{Name: "", SellPrice: "1"})
	assertHTTPStatus(t, err, http.StatusBadRequest)

	_, err = uc.CreatePart(ctx, testTenant, testUser, PartInput{Name: "X", MinStock: -1})
	assertHTTPStatus(t, err, http.StatusBadRequest)
}

func TestUpdatePart_AuditsBeforeAfter(t *testing.T) {
	parts := new(PartRepoMock)
	audit := new(PartAuditRepoMock)
	uc := NewPartUsecase(parts, audit)

	parts.On("FindByID", mock.Anything, testTenant, int64(1)).
		Return(model.Part{ID: 1, TenantID: testTenant, Name: "Brake Pad", SKU: "BP-001"}, nil)
	parts.On("Update", mock.Anything, mock.MatchedBy(func(p model.Part) bool {
		return p.ID == 1 && p.Name == "Brake Pad Rear"
	})).Return(nil)
	audit.On("Create", mock.Anything, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.Action == model.AuditActionUpdatePart && l.BeforeJSON != l.AfterJSON
	})).Return(nil)

	err := uc.UpdatePart(context.Background(), testTenant, testUser, 1, PartInput{
		Name: "Brake Pad Rear",
		SKU:  "BP-001",
	})
	assert.NoError(t, err)
	audit.AssertExpectations(t)
}

func TestUpdatePart_NotFound(t *testing.T) {
	parts := new(PartRepoMock)
	uc := NewPartUsecase(parts, new(PartAuditRepoMock))

	parts.On("FindByID", mock.Anything, testTenant, int64(42)).
		Return(model.Part{}, repo.ErrNotFound)

	err := uc.UpdatePart(context.Background(), testTenant, testUser, 42, PartInput{Name: "X"})
	assertHTTPStatus(t, err, http.StatusNotFound)
}

func TestDeletePart_SoftDeletes(t *testing.T) {
	parts := new(PartRepoMock)
	uc := NewPartUsecase(parts, new(PartAuditRepoMock))

	parts.On("SoftDelete", mock.Anything, testTenant, int64(1)).Return(nil)

	err := uc.DeletePart(context.Background(), testTenant, testUser, 1)
	assert.NoError(t, err)
	parts.AssertExpectations(t)
}

func TestListParts_QTooLong(t *testing.T) {
	uc := NewPartUsecase(new(PartRepoMock), new(PartAuditRepoMock))

	long := make([]byte, 101)
	for i := range long {
		long[i] = 'a'
	}
	_, err := uc.ListParts(context.Background(), testTenant, ListPartsInput{Page: 1, Limit: 20, Q: string(long)})
	assertHTTPStatus(t, err, http.StatusBadRequest)
}
