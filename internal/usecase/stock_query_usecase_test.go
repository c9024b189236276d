package usecase

import (
	"context"
	"net/http"
	"testing"

	"garage/internal/domain/model"
	repo "garage/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// Mocks（衝突回避の命名）
// =====================

type QueryWarehouseRepoMock struct{ mock.Mock }

func (m *QueryWarehouseRepoMock) ListByTenant(ctx context.Context, tenantID string) ([]model.Warehouse, error) {
	args := m.Called(ctx, tenantID)
	items, _ := args.Get(0).([]model.Warehouse)
	return items, args.Error(1)
}

func (m *QueryWarehouseRepoMock) FindByID(ctx context.Context, tenantID string, id int64) (model.Warehouse, error) {
	panic("not used in StockQueryUsecase tests")
}

func (m *QueryWarehouseRepoMock) Create(ctx context.Context, w model.Warehouse) (model.Warehouse, error) {
	panic("not used in StockQueryUsecase tests")
}

func (m *QueryWarehouseRepoMock) Update(ctx context.Context, w model.Warehouse) error {
	panic("not used in StockQueryUsecase tests")
}

type QueryStockRepoMock struct{ mock.Mock }

func (m *QueryStockRepoMock) FindForUpdate(ctx context.Context, tenantID string, partID int64, warehouseID int64) (model.WarehouseStock, error) {
	panic("not used in StockQueryUsecase tests")
}

func (m *QueryStockRepoMock) Create(ctx context.Context, s model.WarehouseStock) (model.WarehouseStock, error) {
	panic("not used in StockQueryUsecase tests")
}

func (m *QueryStockRepoMock) UpdateLevels(ctx context.Context, id int64, quantity int64, reserved int64) error {
	panic("not used in StockQueryUsecase tests")
}

func (m *QueryStockRepoMock) SumQuantityByPart(ctx context.Context, tenantID string, partID int64) (int64, error) {
	panic("not used in StockQueryUsecase tests")
}

func (m *QueryStockRepoMock) List(ctx context.Context, q repo.StockListQuery) ([]repo.StockListRow, int64, error) {
	args := m.Called(ctx, q)
	rows, _ := args.Get(0).([]repo.StockListRow)
	return rows, args.Get(1).(int64), args.Error(2)
}

func (m *QueryStockRepoMock) SummarizeByPart(ctx context.Context, q repo.StockSummaryQuery) ([]repo.StockSummaryRow, int64, error) {
	args := m.Called(ctx, q)
	rows, _ := args.Get(0).([]repo.StockSummaryRow)
	return rows, args.Get(1).(int64), args.Error(2)
}

func (m *QueryStockRepoMock) ListByPartIDs(ctx context.Context, tenantID string, partIDs []int64, warehouseID *int64) ([]repo.StockListRow, error) {
	args := m.Called(ctx, tenantID, partIDs, warehouseID)
	rows, _ := args.Get(0).([]repo.StockListRow)
	return rows, args.Error(1)
}

type QueryMovementRepoMock struct{ mock.Mock }

func (m *QueryMovementRepoMock) Create(ctx context.Context, mv model.StockMovement) (model.StockMovement, error) {
	panic("not used in StockQueryUsecase tests")
}

func (m *QueryMovementRepoMock) List(ctx context.Context, q repo.MovementListQuery) ([]model.StockMovement, int64, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.StockMovement)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *QueryMovementRepoMock) ListAllForPair(ctx context.Context, tenantID string, partID int64, warehouseID int64) ([]model.StockMovement, error) {
	panic("not used in StockQueryUsecase tests")
}

func newQueryUsecase() (*QueryWarehouseRepoMock, *QueryStockRepoMock, *QueryMovementRepoMock, *StockQueryUsecase) {
	w := new(QueryWarehouseRepoMock)
	s := new(QueryStockRepoMock)
	mv := new(QueryMovementRepoMock)
	return w, s, mv, NewStockQueryUsecase(w, s, mv)
}

// =====================
// Tests
// =====================

func TestListWarehouses_Success(t *testing.T) {
	w, _, _, uc := newQueryUsecase()
	w.On("ListByTenant", mock.Anything, testTenant).Return([]model.Warehouse{
		{ID: 1, TenantID: testTenant, Name: "Main"},
	}, nil)

	out, err := uc.ListWarehouses(context.Background(), testTenant)
	assert.NoError(t, err)
	assert.Len(t, out, 1)
	w.AssertExpectations(t)
}

func TestListWarehouses_Unauthorized(t *testing.T) {
	_, _, _, uc := newQueryUsecase()
	_, err := uc.ListWarehouses(context.Background(), "")
	assertHTTPStatus(t, err, http.StatusUnauthorized)
}

func TestListStock_ComputesAvailableAndMeta(t *testing.T) {
	_, s, _, uc := newQueryUsecase()
	s.On("List", mock.Anything, mock.MatchedBy(func(q repo.StockListQuery) bool {
		return q.TenantID == testTenant && q.Page == 2 && q.Limit == 10 && q.LowStock
	})).Return([]repo.StockListRow{
		{ID: 1, PartID: 1, WarehouseID: 1, Quantity: 8, Reserved: 3, PartName: "Brake Pad"},
	}, int64(25), nil)

	out, err := uc.ListStock(context.Background(), testTenant, ListStockInput{Page: 2, Limit: 10, LowStock: true})
	assert.NoError(t, err)
	assert.Len(t, out.Data, 1)
	assert.Equal(t, int64(5), out.Data[0].Available)
	assert.Equal(t, int64(25), out.Meta.Total)
	assert.Equal(t, 2, out.Meta.Page)
	//25件/10件 → 3ページ
	assert.Equal(t, 3, out.Meta.TotalPages)
}

func TestListStock_PagingBounds(t *testing.T) {
	_, _, _, uc := newQueryUsecase()
	ctx := context.Background()

	_, err := uc.ListStock(ctx, testTenant, ListStockInput{Page: 0, Limit: 10})
	assertHTTPStatus(t, err, http.StatusBadRequest)

	_, err = uc.ListStock(ctx, testTenant, ListStockInput{Page: 1, Limit: 0})
	assertHTTPStatus(t, err, http.StatusBadRequest)

	_, err = uc.ListStock(ctx, testTenant, ListStockInput{Page: 1, Limit: 101})
	assertHTTPStatus(t, err, http.StatusBadRequest)
}

func TestStockSummary_BuildsBreakdown(t *testing.T) {
	_, s, _, uc := newQueryUsecase()

	s.On("SummarizeByPart", mock.Anything, mock.Anything).Return([]repo.StockSummaryRow{
		{PartID: 1, PartName: "Brake Pad", TotalQuantity: 10, TotalReserved: 4},
		{PartID: 2, PartName: "Oil Filter", TotalQuantity: 0, TotalReserved: 0},
	}, int64(2), nil)
	s.On("ListByPartIDs", mock.Anything, testTenant, []int64{1, 2}, (*int64)(nil)).Return([]repo.StockListRow{
		{PartID: 1, WarehouseID: 1, WarehouseName: "Main", Quantity: 7, Reserved: 4},
		{PartID: 1, WarehouseID: 2, WarehouseName: "Van", Quantity: 3, Reserved: 0},
	}, nil)

	out, err := uc.StockSummary(context.Background(), testTenant, StockSummaryInput{Page: 1, Limit: 20})
	assert.NoError(t, err)
	assert.Len(t, out.Data, 2)

	first := out.Data[0]
	assert.Equal(t, int64(6), first.Available)
	assert.Len(t, first.Warehouses, 2)
	assert.Equal(t, int64(3), first.Warehouses[0].Available)

	//内訳の無い部品は空配列（nullにしない）
	assert.NotNil(t, out.Data[1].Warehouses)
	assert.Len(t, out.Data[1].Warehouses, 0)
}

func TestListMovements_ValidatesType(t *testing.T) {
	_, _, _, uc := newQueryUsecase()

	bad := "purchase"
	_, err := uc.ListMovements(context.Background(), testTenant, ListMovementsInput{Page: 1, Limit: 20, Type: &bad})
	assertHTTPStatus(t, err, http.StatusBadRequest)
}

func TestListMovements_PassesFilters(t *testing.T) {
	_, _, mv, uc := newQueryUsecase()

	partID := int64(7)
	mType := "PURCHASE"
	mv.On("List", mock.Anything, mock.MatchedBy(func(q repo.MovementListQuery) bool {
		return q.TenantID == testTenant && q.PartID != nil && *q.PartID == 7 &&
			q.Type != nil && *q.Type == model.MovementPurchase
	})).Return([]model.StockMovement{{ID: 1}}, int64(1), nil)

	out, err := uc.ListMovements(context.Background(), testTenant, ListMovementsInput{
		Page: 1, Limit: 20, PartID: &partID, Type: &mType,
	})
	assert.NoError(t, err)
	assert.Len(t, out.Data, 1)
	assert.Equal(t, 1, out.Meta.TotalPages)
	mv.AssertExpectations(t)
}

func TestNewListMeta_Rounding(t *testing.T) {
	assert.Equal(t, 0, newListMeta(0, 1, 20).TotalPages)
	assert.Equal(t, 1, newListMeta(20, 1, 20).TotalPages)
	assert.Equal(t, 2, newListMeta(21, 1, 20).TotalPages)
}
