package service

import (
	"CurrentCalc/internal/model"
	"CurrentCalc/internal/repo"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// мок для repo.UserRepository
type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetUserByLogin(ctx context.Context, login string) (*model.User, error) {
	args := m.Called(ctx, login)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) UpdateUser(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

var _ repo.UserRepository = (*mockUserRepo)(nil)

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()
	m := new(mockUserRepo)
	svc := NewUserService(m)

	t.Run("ok when login free", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetUserByLogin", mock.Anything, "john").Return((*model.User)(nil), gorm.ErrRecordNotFound).Once()
		m.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
			// пароль хешируется, ID присваивается до записи
			return u.Login == "john" && u.ID != "" &&
				bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("p@ss")) == nil
		})).Return(&model.User{ID: "u-10", Login: "john"}, nil).Once()

		user, err := svc.Register(ctx, "john", "p@ss", false)
		assert.NoError(t, err)
		assert.Equal(t, "u-10", user.ID)
		m.AssertExpectations(t)
	})

	t.Run("conflict when login taken", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetUserByLogin", mock.Anything, "john").Return(&model.User{ID: "u-1", Login: "john"}, nil).Once()

		user, err := svc.Register(ctx, "john", "p@ss", false)
		assert.Nil(t, user)
		assert.ErrorIs(t, err, ErrLoginTaken)
		m.AssertExpectations(t)
	})

	t.Run("empty credentials rejected", func(t *testing.T) {
		m.ExpectedCalls = nil
		_, err := svc.Register(ctx, "", "p@ss", false)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		_, err = svc.Register(ctx, "john", "", false)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestUserService_Authenticate(t *testing.T) {
	ctx := context.Background()
	m := new(mockUserRepo)
	svc := NewUserService(m)

	hash, _ := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	stored := &model.User{ID: "u-1", Login: "john", Password: string(hash)}

	t.Run("ok with valid password", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetUserByLogin", mock.Anything, "john").Return(stored, nil).Once()

		u, err := svc.Authenticate(ctx, "john", "secret")
		assert.NoError(t, err)
		assert.Equal(t, "u-1", u.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetUserByLogin", mock.Anything, "john").Return(stored, nil).Once()

		_, err := svc.Authenticate(ctx, "john", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown login", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetUserByLogin", mock.Anything, "ghost").Return((*model.User)(nil), gorm.ErrRecordNotFound).Once()

		_, err := svc.Authenticate(ctx, "ghost", "secret")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestTokenRegistry(t *testing.T) {
	r := NewTokenRegistry(time.Hour)

	assert.False(t, r.IsRevoked("jti-1"))
	r.Revoke("jti-1")
	assert.True(t, r.IsRevoked("jti-1"))
	assert.False(t, r.IsRevoked("jti-2"))

	// пустой jti игнорируется
	r.Revoke("")
	assert.False(t, r.IsRevoked(""))
}

func TestTokenRegistry_Expiry(t *testing.T) {
	r := NewTokenRegistry(-time.Second) // записи рождаются уже просроченными
	r.Revoke("jti-old")
	assert.False(t, r.IsRevoked("jti-old"))
}
