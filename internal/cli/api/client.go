package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"CurrentCalc/internal/cli/repo"
)

// DefaultTimeout — предел ожидания ответа сервера; зависший запрос
// не должен вечно держать флаг загрузки.
const DefaultTimeout = 10 * time.Second

// StatusError — не-2xx ответ сервера: HTTP-статус и описание из тела
// {"description": "..."}, если оно было.
type StatusError struct {
	Code        int
	Description string
}

func (e *StatusError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("server returned status %d: %s", e.Code, e.Description)
	}
	return fmt.Sprintf("server returned status %d", e.Code)
}

// Client — типизированный клиент Catalog Service. Все вызовы проходят
// через единый do(): подстановка bearer-токена, JSON-заголовки,
// классификация ответа.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  repo.TokenStore
}

// New создаёт клиента. tokens может быть nil — тогда запросы идут без авторизации.
func New(baseURL string, tokens repo.TokenStore) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
		tokens:  tokens,
	}
}

// do выполняет запрос и декодирует 2xx-ответ в out (если out != nil и тело непустое).
// Не-2xx превращается в *StatusError; спец-случаи (404 корзины, 409 добавления)
// обрабатывают вызывающие методы.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload any, out any) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	if c.tokens != nil {
		if token, err := c.tokens.Load(); err == nil && token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		se := &StatusError{Code: resp.StatusCode}
		var eb struct {
			Description string `json:"description"`
		}
		if json.Unmarshal(raw, &eb) == nil {
			se.Description = eb.Description
		}
		return se
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// IsStatus сообщает, является ли err ошибкой сервера с данным HTTP-статусом.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == code
}
