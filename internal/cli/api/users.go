package api

import (
	"context"
	"fmt"
	"net/http"

	climodel "CurrentCalc/internal/cli/model"
)

// SignUp регистрирует нового пользователя.
func (c *Client) SignUp(ctx context.Context, login, password string) error {
	body := map[string]string{"login": login, "password": password}
	return c.do(ctx, http.MethodPost, "/api/v1/users/signup", nil, body, nil)
}

// SignIn выполняет вход и возвращает bearer-токен.
func (c *Client) SignIn(ctx context.Context, login, password string) (string, error) {
	body := map[string]string{"login": login, "password": password}
	var out struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/v1/users/signin", nil, body, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}

// SignOut отзывает текущий токен на сервере.
func (c *Client) SignOut(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/v1/users/signout", nil, nil, nil)
}

// GetProfile возвращает профиль пользователя.
func (c *Client) GetProfile(ctx context.Context, login string) (*climodel.User, error) {
	var u climodel.User
	path := fmt.Sprintf("/api/v1/users/%s/me", login)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateProfile меняет пароль пользователя.
func (c *Client) UpdateProfile(ctx context.Context, login, newPassword string) error {
	body := map[string]string{"password": newPassword}
	path := fmt.Sprintf("/api/v1/users/%s/me", login)
	return c.do(ctx, http.MethodPut, path, nil, body, nil)
}
