package repo

import (
	"CurrentCalc/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
)

// CurrentFilters — фильтры списка заявок (по датам формирования и статусу).
type CurrentFilters struct {
	FromDate *time.Time
	ToDate   *time.Time
	Status   string
	// CreatorID непустой — только заявки этого пользователя (не-модератор).
	CreatorID string
}

// CurrentRepository — доступ к заявкам на расчёт и их связям с устройствами.
type CurrentRepository interface {
	// GetDraftByCreator возвращает черновик пользователя (с устройствами)
	// или gorm.ErrRecordNotFound.
	GetDraftByCreator(ctx context.Context, creatorID string) (*model.CurrentCalculation, error)
	GetByID(ctx context.Context, id uint) (*model.CurrentCalculation, error)
	Create(ctx context.Context, c *model.CurrentCalculation) (*model.CurrentCalculation, error)
	Save(ctx context.Context, c *model.CurrentCalculation) error
	List(ctx context.Context, f CurrentFilters) ([]model.CurrentCalculation, error)

	AddDevice(ctx context.Context, cd *model.CurrentDevice) error
	GetDeviceLink(ctx context.Context, currentID, deviceID uint) (*model.CurrentDevice, error)
	SaveDeviceLink(ctx context.Context, cd *model.CurrentDevice) error
	RemoveDeviceLink(ctx context.Context, currentID, deviceID uint) error
}

type currentRepo struct {
	db *gorm.DB
}

// NewCurrentRepository создаёт реализацию репозитория для CurrentCalculation.
func NewCurrentRepository(db *gorm.DB) CurrentRepository {
	return &currentRepo{db: db}
}

func (r *currentRepo) GetDraftByCreator(ctx context.Context, creatorID string) (*model.CurrentCalculation, error) {
	var c model.CurrentCalculation
	err := r.db.WithContext(ctx).
		Preload("Devices").Preload("Devices.Device").
		Where("creator_id = ? AND status = ?", creatorID, model.StatusDraft).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *currentRepo) GetByID(ctx context.Context, id uint) (*model.CurrentCalculation, error) {
	var c model.CurrentCalculation
	err := r.db.WithContext(ctx).
		Preload("Devices").Preload("Devices.Device").
		Preload("Creator").Preload("Moderator").
		Where("id = ? AND status <> ?", id, model.StatusDeleted).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *currentRepo) Create(ctx context.Context, c *model.CurrentCalculation) (*model.CurrentCalculation, error) {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

func (r *currentRepo) Save(ctx context.Context, c *model.CurrentCalculation) error {
	return r.db.WithContext(ctx).Omit("Devices", "Creator", "Moderator").Save(c).Error
}

func (r *currentRepo) List(ctx context.Context, f CurrentFilters) ([]model.CurrentCalculation, error) {
	// черновики и удалённые в списке заявок не показываются
	tx := r.db.WithContext(ctx).
		Preload("Creator").Preload("Moderator").
		Where("status NOT IN ?", []string{model.StatusDraft, model.StatusDeleted})
	if f.CreatorID != "" {
		tx = tx.Where("creator_id = ?", f.CreatorID)
	}
	if f.Status != "" {
		tx = tx.Where("status = ?", model.NormalizeStatus(f.Status))
	}
	if f.FromDate != nil {
		tx = tx.Where("form_date >= ?", *f.FromDate)
	}
	if f.ToDate != nil {
		tx = tx.Where("form_date < ?", f.ToDate.AddDate(0, 0, 1))
	}
	var list []model.CurrentCalculation
	if err := tx.Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *currentRepo) AddDevice(ctx context.Context, cd *model.CurrentDevice) error {
	return r.db.WithContext(ctx).Create(cd).Error
}

func (r *currentRepo) GetDeviceLink(ctx context.Context, currentID, deviceID uint) (*model.CurrentDevice, error) {
	var cd model.CurrentDevice
	err := r.db.WithContext(ctx).Preload("Device").
		Where("current_id = ? AND device_id = ?", currentID, deviceID).
		First(&cd).Error
	if err != nil {
		return nil, err
	}
	return &cd, nil
}

func (r *currentRepo) SaveDeviceLink(ctx context.Context, cd *model.CurrentDevice) error {
	return r.db.WithContext(ctx).Omit("Device").Save(cd).Error
}

func (r *currentRepo) RemoveDeviceLink(ctx context.Context, currentID, deviceID uint) error {
	return r.db.WithContext(ctx).
		Where("current_id = ? AND device_id = ?", currentID, deviceID).
		Delete(&model.CurrentDevice{}).Error
}
