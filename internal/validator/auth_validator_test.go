package validator

import (
	"context"
	"testing"

	"garage/internal/domain/model"
	"garage/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type ValidatorUserRepoMock struct{ mock.Mock }

func (m *ValidatorUserRepoMock) Create(ctx context.Context, user *model.User) error {
	panic("not used in validator tests")
}

func (m *ValidatorUserRepoMock) FindByID(ctx context.Context, userID string) (*model.User, error) {
	panic("not used in validator tests")
}

func (m *ValidatorUserRepoMock) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *ValidatorUserRepoMock) Update(ctx context.Context, user *model.User) error {
	panic("not used in validator tests")
}

func TestValidateRegister(t *testing.T) {
	users := new(ValidatorUserRepoMock)
	users.On("FindByEmail", mock.Anything, "new@garage.test").Return(nil, repository.ErrUserNotFound)
	users.On("FindByEmail", mock.Anything, "taken@garage.test").Return(&model.User{ID: "u1"}, nil)

	v := NewAuthValidator(users)
	ctx := context.Background()

	assert.NoError(t, v.ValidateRegister(ctx, "new@garage.test", "password123"))

	assert.Equal(t, ErrInvalidInput, v.ValidateRegister(ctx, "", "password123"))
	assert.Equal(t, ErrInvalidInput, v.ValidateRegister(ctx, "not-an-email", "password123"))
	assert.Equal(t, ErrInvalidInput, v.ValidateRegister(ctx, "new@garage.test", "short"))
	assert.Equal(t, ErrEmailAlreadyUsed, v.ValidateRegister(ctx, "taken@garage.test", "password123"))
}

func TestValidateLogin(t *testing.T) {
	v := NewAuthValidator(new(ValidatorUserRepoMock))
	ctx := context.Background()

	assert.NoError(t, v.ValidateLogin(ctx, "m@garage.test", "x"))
	assert.Equal(t, ErrInvalidInput, v.ValidateLogin(ctx, "", "x"))
	assert.Equal(t, ErrInvalidInput, v.ValidateLogin(ctx, "m@garage.test", ""))
	assert.Equal(t, ErrInvalidInput, v.ValidateLogin(ctx, "nope", "x"))
}
