package service

import (
	"CurrentCalc/internal/model"
	"CurrentCalc/internal/repo"
	"context"
	"errors"

	"gorm.io/gorm"
)

// DeviceService — чтение каталога устройств.
type DeviceService struct {
	repo repo.DeviceRepository
}

func NewDeviceService(r repo.DeviceRepository) *DeviceService {
	return &DeviceService{repo: r}
}

// List возвращает устройства, отфильтрованные по подстроке имени.
func (s *DeviceService) List(ctx context.Context, query string) ([]model.Device, error) {
	return s.repo.ListDevices(ctx, query)
}

// Get возвращает устройство по ID или ErrNotFound.
func (s *DeviceService) Get(ctx context.Context, id uint) (*model.Device, error) {
	d, err := s.repo.GetDevice(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return d, nil
}
