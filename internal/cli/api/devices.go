package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	climodel "CurrentCalc/internal/cli/model"
)

// ListDevices возвращает каталог; query фильтрует по подстроке имени.
func (c *Client) ListDevices(ctx context.Context, query string) ([]climodel.Device, error) {
	q := url.Values{}
	if query != "" {
		q.Set("device_query", query)
	}
	var devices []climodel.Device
	if err := c.do(ctx, http.MethodGet, "/api/v1/devices", q, nil, &devices); err != nil {
		return nil, err
	}
	return devices, nil
}

// GetDevice возвращает устройство по ID.
func (c *Client) GetDevice(ctx context.Context, id uint) (*climodel.Device, error) {
	var d climodel.Device
	path := fmt.Sprintf("/api/v1/devices/%d", id)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// AddToCurrentCalculation добавляет устройство в черновик. 409 от сервера —
// не ошибка: устройство уже в расчёте, возвращается alreadyAdded=true.
func (c *Client) AddToCurrentCalculation(ctx context.Context, deviceID uint) (cart *climodel.CurrentCalculation, alreadyAdded bool, err error) {
	var out climodel.CurrentCalculation
	path := fmt.Sprintf("/api/v1/devices/%d/add-to-current-calculation", deviceID)
	err = c.do(ctx, http.MethodPost, path, nil, nil, &out)
	if err != nil {
		if IsStatus(err, http.StatusConflict) {
			return nil, true, nil
		}
		return nil, false, err
	}
	return &out, false, nil
}
