package service

import (
	"context"
	"errors"

	"CurrentCalc/internal/cli/api"
	climodel "CurrentCalc/internal/cli/model"
	"CurrentCalc/internal/cli/repo"
	"CurrentCalc/internal/cli/store"
)

// ErrNotAuthenticated — операция требует входа, а токена нет.
var ErrNotAuthenticated = errors.New("сначала выполните вход (signin)")

// AuthService — вход/выход и контекст пользователя на клиенте.
type AuthService struct {
	api    *api.Client
	tokens repo.TokenStore
	users  repo.UserContextStore
	store  *store.Store
}

// NewAuthService создаёт сервис авторизации.
func NewAuthService(apiClient *api.Client, tokens repo.TokenStore, users repo.UserContextStore, st *store.Store) *AuthService {
	return &AuthService{api: apiClient, tokens: tokens, users: users, store: st}
}

// SignUp регистрирует пользователя.
func (s *AuthService) SignUp(ctx context.Context, login, password string) error {
	return s.api.SignUp(ctx, login, password)
}

// SignIn выполняет вход и сохраняет токен и логин локально.
func (s *AuthService) SignIn(ctx context.Context, login, password string) error {
	token, err := s.api.SignIn(ctx, login, password)
	if err != nil {
		return err
	}
	if err := s.tokens.Save(token); err != nil {
		return err
	}
	return s.users.SaveLogin(login)
}

// SignOut отзывает токен на сервере (best-effort) и чистит локальное
// состояние: токен, логин, проекцию корзины.
func (s *AuthService) SignOut(ctx context.Context) error {
	remoteErr := s.api.SignOut(ctx)
	if err := s.tokens.Clear(); err != nil {
		return err
	}
	if err := s.users.ClearLogin(); err != nil {
		return err
	}
	s.store.ClearCalculation()
	return remoteErr
}

// CurrentLogin возвращает логин вошедшего пользователя.
func (s *AuthService) CurrentLogin() (string, error) {
	login, err := s.users.LoadLogin()
	if err != nil {
		return "", ErrNotAuthenticated
	}
	if _, err := s.tokens.Load(); err != nil {
		return "", ErrNotAuthenticated
	}
	return login, nil
}

// Profile возвращает профиль вошедшего пользователя.
func (s *AuthService) Profile(ctx context.Context) (*climodel.User, error) {
	login, err := s.CurrentLogin()
	if err != nil {
		return nil, err
	}
	return s.api.GetProfile(ctx, login)
}

// UpdatePassword меняет пароль вошедшего пользователя.
func (s *AuthService) UpdatePassword(ctx context.Context, newPassword string) error {
	login, err := s.CurrentLogin()
	if err != nil {
		return err
	}
	return s.api.UpdateProfile(ctx, login, newPassword)
}
