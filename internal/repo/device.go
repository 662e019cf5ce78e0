package repo

import (
	"CurrentCalc/internal/model"
	"context"
	"strings"

	"gorm.io/gorm"
)

// DeviceRepository — доступ к каталогу устройств.
type DeviceRepository interface {
	// ListDevices возвращает неудалённые устройства; query фильтрует по
	// подстроке имени без учёта регистра.
	ListDevices(ctx context.Context, query string) ([]model.Device, error)
	GetDevice(ctx context.Context, id uint) (*model.Device, error)
	CreateDevice(ctx context.Context, d *model.Device) (*model.Device, error)
	UpdateDevice(ctx context.Context, d *model.Device) error
}

type deviceRepo struct {
	db *gorm.DB
}

// NewDeviceRepository создаёт реализацию репозитория для Device.
func NewDeviceRepository(db *gorm.DB) DeviceRepository {
	return &deviceRepo{db: db}
}

func (r *deviceRepo) ListDevices(ctx context.Context, query string) ([]model.Device, error) {
	tx := r.db.WithContext(ctx).Where("is_delete = ?", false)
	if query != "" {
		tx = tx.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(query)+"%")
	}
	var devices []model.Device
	if err := tx.Order("id").Find(&devices).Error; err != nil {
		return nil, err
	}
	return devices, nil
}

func (r *deviceRepo) GetDevice(ctx context.Context, id uint) (*model.Device, error) {
	var d model.Device
	if err := r.db.WithContext(ctx).Where("id = ? AND is_delete = ?", id, false).First(&d).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *deviceRepo) CreateDevice(ctx context.Context, d *model.Device) (*model.Device, error) {
	if err := r.db.WithContext(ctx).Create(d).Error; err != nil {
		return nil, err
	}
	return d, nil
}

func (r *deviceRepo) UpdateDevice(ctx context.Context, d *model.Device) error {
	return r.db.WithContext(ctx).Save(d).Error
}
