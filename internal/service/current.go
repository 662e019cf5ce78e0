package service

import (
	"CurrentCalc/internal/model"
	"CurrentCalc/internal/repo"
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// ErrNoDraft — у пользователя нет черновика (404 на current-cart).
	ErrNoDraft = errors.New("no draft calculation")
	// ErrAlreadyAdded — устройство уже есть в черновике (409 на add).
	ErrAlreadyAdded = errors.New("device already in calculation")
	// ErrNotDraft — мутация заявки вне статуса draft.
	ErrNotDraft = errors.New("only draft calculations can be modified")
	// ErrEmptyCalculation — попытка сформировать заявку без устройств.
	ErrEmptyCalculation = errors.New("calculation has no devices")
	// ErrForbidden — заявка принадлежит другому пользователю.
	ErrForbidden = errors.New("calculation belongs to another user")
	// ErrNotFound — заявка/устройство не найдены.
	ErrNotFound = errors.New("not found")
	// ErrBadAmount — количество меньше 1.
	ErrBadAmount = errors.New("amount must be at least 1")
	// ErrBadVoltage — напряжение вне диапазона (0, 48].
	ErrBadVoltage = errors.New("voltage must be in (0, 48]")
	// ErrBadStatus — недопустимый целевой статус при завершении.
	ErrBadStatus = errors.New("status must be completed or rejected")
)

// MaxVoltageBord — верхняя граница напряжения бортовой сети, В.
const MaxVoltageBord = 48

// DefaultVoltageBord — напряжение нового черновика, В.
const DefaultVoltageBord = 12

// LineAmperage вычисляет ток строки заявки: мощность устройства с учётом
// количества и коэффициента запаса, делённая на напряжение сети и КПД.
// Нулевые/отрицательные знаменатели заменяются номиналом устройства.
func LineAmperage(d *model.Device, amount int, voltageBord float64) float64 {
	if d == nil || amount < 1 {
		return 0
	}
	voltage := voltageBord
	if voltage <= 0 {
		voltage = d.VoltageNominal
	}
	if voltage <= 0 {
		return 0
	}
	reserve := d.CoeffReserve
	if reserve <= 0 {
		reserve = 1
	}
	efficiency := d.CoeffEfficiency
	if efficiency <= 0 || efficiency > 1 {
		efficiency = 1
	}
	return float64(amount) * d.PowerNominal * reserve / (voltage * efficiency)
}

// CurrentService — серверные правила жизненного цикла заявки:
// один черновик на пользователя, мутации только в draft, пересчёт
// токов при каждом изменении черновика.
type CurrentService struct {
	currents repo.CurrentRepository
	devices  repo.DeviceRepository
	logger   *zap.SugaredLogger
}

func NewCurrentService(currents repo.CurrentRepository, devices repo.DeviceRepository, logger *zap.SugaredLogger) *CurrentService {
	return &CurrentService{currents: currents, devices: devices, logger: logger}
}

// GetCart возвращает черновик пользователя или ErrNoDraft.
func (s *CurrentService) GetCart(ctx context.Context, userID string) (*model.CurrentCalculation, error) {
	c, err := s.currents.GetDraftByCreator(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoDraft
		}
		return nil, err
	}
	return c, nil
}

// AddDevice добавляет устройство в черновик, создавая черновик при
// необходимости. Повторное добавление — ErrAlreadyAdded.
func (s *CurrentService) AddDevice(ctx context.Context, userID string, deviceID uint) (*model.CurrentCalculation, error) {
	device, err := s.devices.GetDevice(ctx, deviceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	draft, err := s.currents.GetDraftByCreator(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		draft, err = s.currents.Create(ctx, &model.CurrentCalculation{
			Status:      model.StatusDraft,
			CreatorID:   userID,
			VoltageBord: DefaultVoltageBord,
		})
		if err != nil {
			return nil, err
		}
		s.logger.Infow("draft created", "current_id", draft.ID, "user_id", userID)
	} else if err != nil {
		return nil, err
	}

	if _, err := s.currents.GetDeviceLink(ctx, draft.ID, deviceID); err == nil {
		return nil, ErrAlreadyAdded
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	cd := &model.CurrentDevice{
		CurrentID: draft.ID,
		DeviceID:  deviceID,
		Amount:    1,
		Amperage:  LineAmperage(device, 1, draft.VoltageBord),
	}
	if err := s.currents.AddDevice(ctx, cd); err != nil {
		return nil, err
	}
	return s.currents.GetByID(ctx, draft.ID)
}

// getOwnedDraft загружает заявку и проверяет владельца и статус draft.
func (s *CurrentService) getOwnedDraft(ctx context.Context, userID string, currentID uint) (*model.CurrentCalculation, error) {
	c, err := s.currents.GetByID(ctx, currentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if c.CreatorID != userID {
		return nil, ErrForbidden
	}
	if !model.CanEdit(c.Status) {
		return nil, ErrNotDraft
	}
	return c, nil
}

// UpdateAmount меняет количество устройства в черновике и пересчитывает ток строки.
func (s *CurrentService) UpdateAmount(ctx context.Context, userID string, currentID, deviceID uint, amount int) (*model.CurrentDevice, error) {
	if amount < 1 {
		return nil, ErrBadAmount
	}
	c, err := s.getOwnedDraft(ctx, userID, currentID)
	if err != nil {
		return nil, err
	}
	cd, err := s.currents.GetDeviceLink(ctx, currentID, deviceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	cd.Amount = amount
	cd.Amperage = LineAmperage(cd.Device, amount, c.VoltageBord)
	if err := s.currents.SaveDeviceLink(ctx, cd); err != nil {
		return nil, err
	}
	return cd, nil
}

// RemoveDevice удаляет связь устройства с черновиком.
func (s *CurrentService) RemoveDevice(ctx context.Context, userID string, currentID, deviceID uint) (*model.CurrentCalculation, error) {
	if _, err := s.getOwnedDraft(ctx, userID, currentID); err != nil {
		return nil, err
	}
	if _, err := s.currents.GetDeviceLink(ctx, currentID, deviceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := s.currents.RemoveDeviceLink(ctx, currentID, deviceID); err != nil {
		return nil, err
	}
	return s.currents.GetByID(ctx, currentID)
}

// EditVoltage меняет напряжение бортовой сети черновика и пересчитывает токи всех строк.
func (s *CurrentService) EditVoltage(ctx context.Context, userID string, currentID uint, voltage float64) (*model.CurrentCalculation, error) {
	if voltage <= 0 || voltage > MaxVoltageBord {
		return nil, ErrBadVoltage
	}
	c, err := s.getOwnedDraft(ctx, userID, currentID)
	if err != nil {
		return nil, err
	}
	c.VoltageBord = voltage
	if err := s.currents.Save(ctx, c); err != nil {
		return nil, err
	}
	for i := range c.Devices {
		cd := &c.Devices[i]
		cd.Amperage = LineAmperage(cd.Device, cd.Amount, voltage)
		if err := s.currents.SaveDeviceLink(ctx, cd); err != nil {
			return nil, err
		}
	}
	return s.currents.GetByID(ctx, currentID)
}

// Form переводит черновик в formed. Требует хотя бы одно устройство.
func (s *CurrentService) Form(ctx context.Context, userID string, currentID uint) (*model.CurrentCalculation, error) {
	c, err := s.getOwnedDraft(ctx, userID, currentID)
	if err != nil {
		return nil, err
	}
	if len(c.Devices) == 0 {
		return nil, ErrEmptyCalculation
	}
	now := time.Now()
	c.Status = model.StatusFormed
	c.FormDate = &now
	if err := s.currents.Save(ctx, c); err != nil {
		return nil, err
	}
	s.logger.Infow("calculation formed", "current_id", c.ID, "user_id", userID)
	return s.currents.GetByID(ctx, currentID)
}

// Finish — модераторское завершение: formed → completed|rejected.
func (s *CurrentService) Finish(ctx context.Context, moderatorID string, currentID uint, status string) (*model.CurrentCalculation, error) {
	status = model.NormalizeStatus(status)
	if status != model.StatusCompleted && status != model.StatusRejected {
		return nil, ErrBadStatus
	}
	c, err := s.currents.GetByID(ctx, currentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if c.Status != model.StatusFormed {
		return nil, ErrNotDraft
	}
	now := time.Now()
	c.Status = status
	c.FinishDate = &now
	c.ModeratorID = &moderatorID
	if err := s.currents.Save(ctx, c); err != nil {
		return nil, err
	}
	return s.currents.GetByID(ctx, currentID)
}

// Delete — логическое удаление черновика. Допускается и при наличии
// устройств: удаление уничтожает черновик целиком.
func (s *CurrentService) Delete(ctx context.Context, userID string, currentID uint) error {
	c, err := s.getOwnedDraft(ctx, userID, currentID)
	if err != nil {
		return err
	}
	c.Status = model.StatusDeleted
	return s.currents.Save(ctx, c)
}

// List возвращает заявки с фильтрами; не-модератор видит только свои.
func (s *CurrentService) List(ctx context.Context, userID string, isModerator bool, f repo.CurrentFilters) ([]model.CurrentCalculation, error) {
	if !isModerator {
		f.CreatorID = userID
	}
	return s.currents.List(ctx, f)
}

// GetDetail возвращает заявку с устройствами; не-модератор видит только свою.
func (s *CurrentService) GetDetail(ctx context.Context, userID string, isModerator bool, currentID uint) (*model.CurrentCalculation, error) {
	c, err := s.currents.GetByID(ctx, currentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !isModerator && c.CreatorID != userID {
		return nil, ErrForbidden
	}
	return c, nil
}

// TotalAmperage — суммарный ток заявки по строкам (отсутствующие значения — 0).
func TotalAmperage(c *model.CurrentCalculation) float64 {
	if c == nil {
		return 0
	}
	var total float64
	for _, cd := range c.Devices {
		total += cd.Amperage
	}
	return total
}
