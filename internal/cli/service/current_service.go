package service

import (
	"context"
	"fmt"

	"CurrentCalc/internal/cli/api"
	climodel "CurrentCalc/internal/cli/model"
	"CurrentCalc/internal/cli/store"
)

// CurrentService — оркестратор работы с заявкой на клиенте: статусные гварды
// и валидация выполняются ДО сетевого вызова, стор остаётся единственным
// владельцем проекции корзины.
type CurrentService struct {
	api   *api.Client
	store *store.Store
}

// NewCurrentService создаёт сервис заявок.
func NewCurrentService(apiClient *api.Client, st *store.Store) *CurrentService {
	return &CurrentService{api: apiClient, store: st}
}

// Store возвращает стор сервиса (для команд вывода).
func (s *CurrentService) Store() *store.Store {
	return s.store
}

// LoadCart загружает черновик-корзину. Отсутствие черновика — не ошибка:
// в стор кладётся nil.
func (s *CurrentService) LoadCart(ctx context.Context) (*climodel.CurrentCalculation, error) {
	s.store.SetCartLoading(true)
	defer s.store.SetCartLoading(false)

	cart, err := s.api.GetCurrentCart(ctx)
	if err != nil {
		return nil, err
	}
	s.store.SetCart(cart)
	return cart, nil
}

// AddDevice добавляет устройство в черновик. alreadyAdded=true означает,
// что устройство уже было в расчёте (это не ошибка).
func (s *CurrentService) AddDevice(ctx context.Context, deviceID uint) (alreadyAdded bool, err error) {
	cart, already, err := s.api.AddToCurrentCalculation(ctx, deviceID)
	if err != nil {
		s.store.Notify("error", err.Error())
		return false, err
	}
	if already {
		s.store.Notify("success", "Устройство уже в расчёте")
		return true, nil
	}
	if cart != nil {
		s.store.SetCart(cart)
	} else if _, err := s.LoadCart(ctx); err != nil {
		return false, err
	}
	s.store.Notify("success", "Устройство добавлено в расчёт")
	return false, nil
}

// editableCart возвращает корзину, если она существует и редактируема.
func (s *CurrentService) editableCart(ctx context.Context) (*climodel.CurrentCalculation, error) {
	cart := s.store.Cart()
	if cart == nil {
		var err error
		cart, err = s.LoadCart(ctx)
		if err != nil {
			return nil, err
		}
	}
	if cart == nil {
		return nil, climodel.ErrEmptyCalculation
	}
	if !climodel.CanEdit(cart.Status) {
		return nil, climodel.ErrEditNotAllowed
	}
	return cart, nil
}

// SetAmountBuffer меняет локальный буфер количества строки без сетевого вызова.
func (s *CurrentService) SetAmountBuffer(ctx context.Context, deviceID uint, amount int) error {
	if _, err := s.editableCart(ctx); err != nil {
		return err
	}
	if err := climodel.ValidateAmount(amount); err != nil {
		return err
	}
	if !s.store.SetPendingAmount(deviceID, amount) {
		return fmt.Errorf("устройство %d не найдено в расчёте", deviceID)
	}
	return nil
}

// SaveAmount сохраняет количество устройства. Запрос уходит только если буфер
// отличается от подтверждённого значения; устаревший ответ (его обогнала
// более новая правка) отбрасывается и стор не трогает.
func (s *CurrentService) SaveAmount(ctx context.Context, deviceID uint, amount int) error {
	cart, err := s.editableCart(ctx)
	if err != nil {
		return err
	}
	if err := climodel.ValidateAmount(amount); err != nil {
		return err
	}
	if !s.store.SetPendingAmount(deviceID, amount) {
		return fmt.Errorf("устройство %d не найдено в расчёте", deviceID)
	}

	seq, pending, ok := s.store.BeginAmountSave(deviceID)
	if !ok {
		// буфер совпадает с подтверждённым значением — сохранять нечего
		return nil
	}

	if _, err := s.api.UpdateCurrentDevice(ctx, cart.CurrentID, deviceID, pending); err != nil {
		s.store.FinishAmountSave(deviceID, seq, 0, true)
		s.store.Notify("error", err.Error())
		return err
	}
	if s.store.FinishAmountSave(deviceID, seq, pending, false) {
		if _, err := s.LoadCart(ctx); err != nil {
			return err
		}
		s.store.Notify("success", "Количество сохранено")
	}
	return nil
}

// RemoveDevice убирает устройство из черновика: строка исчезает из проекции
// сразу, авторитетная перезагрузка подтверждает (или восстанавливает) её.
func (s *CurrentService) RemoveDevice(ctx context.Context, deviceID uint) error {
	cart, err := s.editableCart(ctx)
	if err != nil {
		return err
	}
	s.store.RemoveDeviceOptimistic(deviceID)
	if err := s.api.DeleteCurrentDevice(ctx, cart.CurrentID, deviceID); err != nil {
		s.store.Notify("error", err.Error())
		if _, lerr := s.LoadCart(ctx); lerr != nil {
			return lerr
		}
		return err
	}
	if _, err := s.LoadCart(ctx); err != nil {
		return err
	}
	s.store.Notify("success", "Устройство удалено из расчёта")
	return nil
}

// SaveVoltage меняет напряжение бортовой сети черновика. Совпадающее с
// текущим значение — no-op без сетевого вызова.
func (s *CurrentService) SaveVoltage(ctx context.Context, voltage float64) error {
	cart, err := s.editableCart(ctx)
	if err != nil {
		return err
	}
	if err := climodel.ValidateVoltage(voltage); err != nil {
		return err
	}
	if voltage == cart.VoltageBord {
		return nil
	}

	s.store.SetVoltageSaving(true)
	defer s.store.SetVoltageSaving(false)

	updated, err := s.api.EditCurrentCalculation(ctx, cart.CurrentID, voltage)
	if err != nil {
		s.store.Notify("error", err.Error())
		return err
	}
	s.store.SetCart(updated)
	s.store.Notify("success", "Напряжение сохранено")
	return nil
}

// Form переводит черновик в статус formed. Пустой черновик отклоняется
// до сетевого вызова.
func (s *CurrentService) Form(ctx context.Context) (*climodel.CurrentCalculation, error) {
	cart, err := s.editableCart(ctx)
	if err != nil {
		return nil, err
	}
	if len(cart.Devices) == 0 {
		return nil, climodel.ErrEmptyCalculation
	}
	formed, err := s.api.FormCurrentCalculation(ctx, cart.CurrentID)
	if err != nil {
		s.store.Notify("error", err.Error())
		return nil, err
	}
	s.store.ClearCalculation()
	s.store.Notify("success", "Заявка сформирована")
	return formed, nil
}

// Delete удаляет черновик целиком (вместе с устройствами).
func (s *CurrentService) Delete(ctx context.Context) error {
	cart, err := s.editableCart(ctx)
	if err != nil {
		return err
	}
	if err := s.api.DeleteCurrentCalculation(ctx, cart.CurrentID); err != nil {
		s.store.Notify("error", err.Error())
		return err
	}
	s.store.ClearCalculation()
	s.store.Notify("success", "Черновик удалён")
	return nil
}

// List возвращает заявки с нормализованными статусами.
func (s *CurrentService) List(ctx context.Context, f api.CurrentFilters) ([]climodel.CurrentCalculation, error) {
	list, err := s.api.ListCurrentCalculations(ctx, f)
	if err != nil {
		return nil, err
	}
	for i := range list {
		list[i].Status = climodel.NormalizeStatus(list[i].Status)
	}
	return list, nil
}

// Detail загружает заявку и публикует её в стор.
func (s *CurrentService) Detail(ctx context.Context, id uint) (*climodel.CurrentCalculation, error) {
	c, err := s.api.GetCurrentCalculation(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Status = climodel.NormalizeStatus(c.Status)
	s.store.SetDetail(c)
	return c, nil
}
