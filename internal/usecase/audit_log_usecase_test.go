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

type AuditListRepoMock struct{ mock.Mock }

func (m *AuditListRepoMock) Create(ctx context.Context, log model.AuditLog) error {
	panic("not used in AuditLogUsecase tests")
}

func (m *AuditListRepoMock) List(ctx context.Context, filter repo.AuditLogFilter) ([]model.AuditLog, error) {
	args := m.Called(ctx, filter)
	logs, _ := args.Get(0).([]model.AuditLog)
	return logs, args.Error(1)
}

func TestListAuditLogs_BuildsFilter(t *testing.T) {
	audit := new(AuditListRepoMock)
	uc := NewAuditLogUsecase(audit)

	audit.On("List", mock.Anything, mock.MatchedBy(func(f repo.AuditLogFilter) bool {
		return f.TenantID == testTenant && f.Limit == 20 && f.Offset == 20 &&
			f.Action != nil && *f.Action == model.AuditActionUpdatePart
	})).Return([]model.AuditLog{{ID: 1}}, nil)

	action := "UPDATE_PART"
	logs, err := uc.ListAuditLogs(context.Background(), testTenant, ListAuditLogsInput{
		Page: 2, Limit: 20, Action: &action,
	})
	assert.NoError(t, err)
	assert.Len(t, logs, 1)
	audit.AssertExpectations(t)
}

func TestListAuditLogs_EmptyIsNotNil(t *testing.T) {
	audit := new(AuditListRepoMock)
	uc := NewAuditLogUsecase(audit)

	audit.On("List", mock.Anything, mock.Anything).Return(nil, nil)

	logs, err := uc.ListAuditLogs(context.Background(), testTenant, ListAuditLogsInput{Page: 1, Limit: 20})
	assert.NoError(t, err)
	assert.NotNil(t, logs)
	assert.Len(t, logs, 0)
}

func TestListAuditLogs_Unauthorized(t *testing.T) {
	uc := NewAuditLogUsecase(new(AuditListRepoMock))

	_, err := uc.ListAuditLogs(context.Background(), "", ListAuditLogsInput{Page: 1, Limit: 20})
	assertHTTPStatus(t, err, http.StatusUnauthorized)
}
