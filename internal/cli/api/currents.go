package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	climodel "CurrentCalc/internal/cli/model"
)

// CurrentFilters — фильтры списка заявок; даты в формате YYYY-MM-DD.
type CurrentFilters struct {
	FromDate string
	ToDate   string
	Status   string
}

// ListCurrentCalculations возвращает заявки пользователя (модератору — все).
func (c *Client) ListCurrentCalculations(ctx context.Context, f CurrentFilters) ([]climodel.CurrentCalculation, error) {
	q := url.Values{}
	if f.FromDate != "" {
		q.Set("from-date", f.FromDate)
	}
	if f.ToDate != "" {
		q.Set("to-date", f.ToDate)
	}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	var list []climodel.CurrentCalculation
	if err := c.do(ctx, http.MethodGet, "/api/v1/current-calculations/current-calculations", q, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// GetCurrentCart возвращает черновик-корзину. 404 — не ошибка: черновика
// просто нет, возвращается (nil, nil).
func (c *Client) GetCurrentCart(ctx context.Context) (*climodel.CurrentCalculation, error) {
	var cart climodel.CurrentCalculation
	err := c.do(ctx, http.MethodGet, "/api/v1/current-calculations/current-cart", nil, nil, &cart)
	if err != nil {
		if IsStatus(err, http.StatusNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if cart.Status == "" {
		cart.Status = climodel.StatusDraft
	}
	return &cart, nil
}

// GetCurrentCalculation возвращает заявку с устройствами.
func (c *Client) GetCurrentCalculation(ctx context.Context, id uint) (*climodel.CurrentCalculation, error) {
	var out climodel.CurrentCalculation
	path := fmt.Sprintf("/api/v1/current-calculations/%d", id)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// EditCurrentCalculation меняет напряжение бортовой сети черновика.
func (c *Client) EditCurrentCalculation(ctx context.Context, id uint, voltage float64) (*climodel.CurrentCalculation, error) {
	body := map[string]float64{"voltage_bord": voltage}
	var out climodel.CurrentCalculation
	path := fmt.Sprintf("/api/v1/current-calculations/%d/edit-current-calculations", id)
	if err := c.do(ctx, http.MethodPut, path, nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FormCurrentCalculation переводит черновик в статус formed.
func (c *Client) FormCurrentCalculation(ctx context.Context, id uint) (*climodel.CurrentCalculation, error) {
	var out climodel.CurrentCalculation
	path := fmt.Sprintf("/api/v1/current-calculations/%d/form", id)
	if err := c.do(ctx, http.MethodPut, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteCurrentCalculation удаляет черновик.
func (c *Client) DeleteCurrentCalculation(ctx context.Context, id uint) error {
	path := fmt.Sprintf("/api/v1/current-calculations/%d/delete-current-calculations", id)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}
