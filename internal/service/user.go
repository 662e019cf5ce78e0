package service

import (
	"CurrentCalc/internal/model"
	"CurrentCalc/internal/repo"
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	// ErrLoginTaken — логин уже занят при регистрации.
	ErrLoginTaken = errors.New("login already in use")
	// ErrInvalidCredentials — неверная пара логин/пароль.
	ErrInvalidCredentials = errors.New("invalid login or password")
)

// UserService — регистрация, аутентификация и профиль пользователя.
type UserService struct {
	repo repo.UserRepository
}

func NewUserService(r repo.UserRepository) *UserService {
	return &UserService{repo: r}
}

// Register создаёт пользователя с bcrypt-хешем пароля.
func (s *UserService) Register(ctx context.Context, login, password string, isModerator bool) (*model.User, error) {
	if login == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	if _, err := s.repo.GetUserByLogin(ctx, login); err == nil {
		return nil, ErrLoginTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &model.User{
		ID:          uuid.NewString(),
		Login:       login,
		Password:    string(hash),
		IsModerator: isModerator,
	}
	return s.repo.CreateUser(ctx, u)
}

// Authenticate проверяет логин/пароль и возвращает пользователя.
func (s *UserService) Authenticate(ctx context.Context, login, password string) (*model.User, error) {
	u, err := s.repo.GetUserByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// GetByLogin возвращает профиль пользователя.
func (s *UserService) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	return s.repo.GetUserByLogin(ctx, login)
}

// UpdatePassword меняет пароль пользователя (сам пользователь, /users/{login}/me).
func (s *UserService) UpdatePassword(ctx context.Context, login, newPassword string) (*model.User, error) {
	u, err := s.repo.GetUserByLogin(ctx, login)
	if err != nil {
		return nil, err
	}
	if newPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		u.Password = string(hash)
	}
	if err := s.repo.UpdateUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
