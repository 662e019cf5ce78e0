package api

import (
	"context"
	"fmt"
	"net/http"

	climodel "CurrentCalc/internal/cli/model"
)

// UpdateCurrentDevice меняет количество устройства в строке заявки.
// Сервер пересчитывает ток и возвращает обновлённую строку.
func (c *Client) UpdateCurrentDevice(ctx context.Context, currentID, deviceID uint, amount int) (*climodel.CurrentDevice, error) {
	body := map[string]int{"amount": amount}
	var out climodel.CurrentDevice
	path := fmt.Sprintf("/api/v1/current-devices/%d/%d", currentID, deviceID)
	if err := c.do(ctx, http.MethodPut, path, nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteCurrentDevice удаляет устройство из заявки.
func (c *Client) DeleteCurrentDevice(ctx context.Context, currentID, deviceID uint) error {
	path := fmt.Sprintf("/api/v1/current-devices/%d/%d", currentID, deviceID)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}
